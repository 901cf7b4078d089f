package acled

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lungoruscello/acled-concat/internal/isocode"
)

// dateLayouts are the event_date representations seen across ACLED export
// generations, tried in order.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"02 January 2006",
	"2 January 2006",
	"02-Jan-2006",
	"2-Jan-06",
}

// ParseDate parses an event_date value from any known ACLED export layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// timestampKey maps a raw timestamp value onto a totally ordered sort key.
// Modern exports carry unix seconds; very old ones carry datetimes.
func timestampKey(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		// NaN is unordered and infinities are not real edit times; both
		// would corrupt the dedup ordering rather than fail loudly.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, Invalidf("timestamp %q is not a finite value", s)
		}
		return v, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return float64(t.Unix()), nil
}

// Normalize enforces the fixed retained schema on a freshly loaded shard:
// it synthesizes iso3 from the numeric iso code when the shard predates the
// three-letter column, verifies every retained column is present, computes
// the timestamp sort key, and projects each row down to exactly
// RetainedColumns. columns is the shard's header (plus the provenance
// column the loader appended).
func Normalize(columns []string, events []Event) (*Dataset, error) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	if !present[ColISO3] && present[ColISO] {
		unknown := make(map[string]bool)
		for i := range events {
			raw := strings.TrimSpace(events[i].Fields[ColISO])
			code, err := strconv.Atoi(raw)
			if err != nil {
				unknown[raw] = true
				continue
			}
			alpha3, ok := isocode.Alpha3(code)
			if !ok {
				unknown[raw] = true
				continue
			}
			events[i].Fields[ColISO3] = alpha3
		}
		if len(unknown) > 0 {
			return nil, Invalidf(
				"the following numerical ISO codes could not be mapped to a three-letter equivalent: %s",
				strings.Join(sortedKeys(unknown), ", "))
		}
		present[ColISO3] = true
	}

	var missing []string
	for _, c := range RetainedColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, Invalidf("missing expected columns: %s", strings.Join(missing, ", "))
	}

	for i := range events {
		key, err := timestampKey(events[i].Fields[ColTimestamp])
		if err != nil {
			return nil, Invalidf("unparseable timestamp %q for event %s",
				events[i].Fields[ColTimestamp], events[i].ID)
		}
		events[i].TSKey = key

		projected := make(map[string]string, len(RetainedColumns))
		for _, c := range RetainedColumns {
			projected[c] = events[i].Fields[c]
		}
		events[i].Fields = projected
	}

	return &Dataset{Events: events}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
