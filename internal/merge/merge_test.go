package merge

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lungoruscello/acled-concat/internal/acled"
)

func ev(t *testing.T, id, day string, ts float64, fname string) acled.Event {
	t.Helper()
	d, err := time.Parse(acled.DateLayout, day)
	require.NoError(t, err)
	return acled.Event{
		ID:    id,
		Date:  d,
		TSKey: ts,
		Fields: map[string]string{
			acled.ColEventID:   id,
			acled.ColEventDate: day,
			acled.ColTimestamp: strconv.FormatFloat(ts, 'f', -1, 64),
			acled.ColOrigFname: fname,
		},
	}
}

func ds(events ...acled.Event) *acled.Dataset {
	return &acled.Dataset{Events: events}
}

func ids(d *acled.Dataset) []string {
	out := make([]string, len(d.Events))
	for i, e := range d.Events {
		out[i] = e.ID
	}
	return out
}

func provenance(d *acled.Dataset) []string {
	out := make([]string, len(d.Events))
	for i, e := range d.Events {
		out[i] = e.Fields[acled.ColOrigFname]
	}
	return out
}

func TestTwo_MergesAndDeduplicates(t *testing.T) {
	shardA := ds(
		ev(t, "ABC01", "2020-01-01", 1, "01-acled_mock.csv"),
		ev(t, "ABC02", "2020-12-31", 1, "01-acled_mock.csv"),
		ev(t, "XYZ01", "2020-12-31", 1, "01-acled_mock.csv"),
	)
	shardB := ds(
		ev(t, "ABC02", "2020-12-31", 9, "02-acled_mock.csv"),
		ev(t, "ABC03", "2021-02-01", 9, "02-acled_mock.csv"),
		ev(t, "XYZ01", "2020-12-31", 9, "02-acled_mock.csv"),
		ev(t, "XYZ02", "2021-02-01", 9, "02-acled_mock.csv"),
	)

	merged, err := Two(shardA, shardB)
	require.NoError(t, err)
	require.Len(t, merged.Events, 5)

	wantIDs := []string{"ABC01", "ABC02", "XYZ01", "ABC03", "XYZ02"}
	if diff := cmp.Diff(wantIDs, ids(merged)); diff != "" {
		t.Errorf("id order mismatch (-want +got):\n%s", diff)
	}

	// The duplicated events survive with the newer shard's version.
	wantProv := []string{
		"01-acled_mock.csv",
		"02-acled_mock.csv",
		"02-acled_mock.csv",
		"02-acled_mock.csv",
		"02-acled_mock.csv",
	}
	if diff := cmp.Diff(wantProv, provenance(merged)); diff != "" {
		t.Errorf("provenance mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, merged.DuplicateIDs())
}

func TestTwo_AccumulatorVersionWinsWhenNewer(t *testing.T) {
	acc := ds(ev(t, "ABC01", "2020-06-01", 9, "01-acled_mock.csv"))
	next := ds(
		ev(t, "ABC01", "2020-06-01", 1, "02-acled_mock.csv"),
		ev(t, "ABC02", "2020-06-01", 1, "02-acled_mock.csv"),
	)

	merged, err := Two(acc, next)
	require.NoError(t, err)
	require.Len(t, merged.Events, 2)
	assert.Equal(t, "01-acled_mock.csv", merged.Events[0].Fields[acled.ColOrigFname])
	assert.Equal(t, float64(9), merged.Events[0].TSKey)
}

func TestTwo_EqualTimestampTieIncomingWins(t *testing.T) {
	acc := ds(ev(t, "ABC01", "2020-06-01", 5, "01-acled_mock.csv"))
	next := ds(ev(t, "ABC01", "2020-06-01", 5, "02-acled_mock.csv"))

	merged, err := Two(acc, next)
	require.NoError(t, err)
	require.Len(t, merged.Events, 1)
	assert.Equal(t, "02-acled_mock.csv", merged.Events[0].Fields[acled.ColOrigFname])
}

func TestTwo_DateGapFails(t *testing.T) {
	acc := ds(ev(t, "ABC01", "2020-12-31", 1, "01-acled_mock.csv"))
	next := ds(ev(t, "ABC99", "2099-12-31", 1, "03-acled_mock.csv"))

	_, err := Two(acc, next)
	require.Error(t, err)

	var verr *acled.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "must have overlapping dates")
	assert.Contains(t, err.Error(), "03-acled_mock.csv")
}

func TestTwo_TouchingDatesSucceed(t *testing.T) {
	// Equal boundary dates count as overlap; only a strict gap fails.
	acc := ds(ev(t, "ABC01", "2020-12-31", 1, "01-acled_mock.csv"))
	next := ds(ev(t, "ABC02", "2020-12-31", 1, "02-acled_mock.csv"))

	merged, err := Two(acc, next)
	require.NoError(t, err)
	assert.Len(t, merged.Events, 2)
}

func TestTwo_EmptyShardFails(t *testing.T) {
	full := ds(ev(t, "ABC01", "2020-06-01", 1, "01-acled_mock.csv"))
	empty := ds()

	for _, pair := range [][2]*acled.Dataset{{full, empty}, {empty, full}} {
		_, err := Two(pair[0], pair[1])
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty ACLED shards")
	}
}

func TestFold(t *testing.T) {
	shards := []*acled.Dataset{
		ds(
			ev(t, "ABC01", "2020-01-01", 1, "01-acled_mock.csv"),
			ev(t, "ABC02", "2020-06-01", 1, "01-acled_mock.csv"),
		),
		ds(
			ev(t, "ABC02", "2020-06-01", 2, "02-acled_mock.csv"),
			ev(t, "ABC03", "2020-12-01", 2, "02-acled_mock.csv"),
		),
		ds(
			ev(t, "ABC03", "2020-12-01", 3, "03-acled_mock.csv"),
			ev(t, "ABC04", "2021-03-01", 3, "03-acled_mock.csv"),
		),
	}

	var steps []int
	merged, err := Fold(shards, func(step int, acc *acled.Dataset) {
		steps = append(steps, step)
		assert.Empty(t, acc.DuplicateIDs(), "duplicates after step %d", step)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, steps)
	assert.Equal(t, []string{"ABC01", "ABC02", "ABC03", "ABC04"}, ids(merged))
	assert.Equal(t, []string{
		"01-acled_mock.csv",
		"02-acled_mock.csv",
		"03-acled_mock.csv",
		"03-acled_mock.csv",
	}, provenance(merged))
}

func TestFold_RequiresTwoShards(t *testing.T) {
	_, err := Fold([]*acled.Dataset{ds(ev(t, "A", "2020-01-01", 1, "x"))}, nil)
	require.Error(t, err)

	var verr *acled.ValidationError
	assert.ErrorAs(t, err, &verr)
}
