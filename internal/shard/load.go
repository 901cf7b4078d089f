package shard

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lungoruscello/acled-concat/internal/acled"
)

// Load reads one shard into a normalized dataset. It parses the event_date
// column, tags every row with the file's base name for provenance, and
// delegates schema enforcement to acled.Normalize.
func Load(path string) (*acled.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shard: %w", err)
	}
	defer f.Close()

	fname := filepath.Base(path)

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing shard %s: %w", fname, err)
	}
	if len(records) == 0 {
		return nil, acled.Invalidf("shard %s has no header row", fname)
	}

	header := records[0]
	dateIdx := -1
	for i, col := range header {
		if col == acled.ColEventDate {
			dateIdx = i
		}
	}
	if dateIdx == -1 {
		return nil, acled.Invalidf("shard %s has no %s column", fname, acled.ColEventDate)
	}

	events := make([]acled.Event, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		date, err := acled.ParseDate(record[dateIdx])
		if err != nil {
			return nil, acled.Invalidf("shard %s row %d: unparseable %s %q",
				fname, rowNum+2, acled.ColEventDate, record[dateIdx])
		}

		fields := make(map[string]string, len(header)+1)
		for i, col := range header {
			fields[col] = record[i]
		}
		fields[acled.ColEventDate] = date.Format(acled.DateLayout)
		fields[acled.ColOrigFname] = fname

		events = append(events, acled.Event{
			ID:     fields[acled.ColEventID],
			Date:   date,
			Fields: fields,
		})
	}

	columns := header
	if !contains(columns, acled.ColOrigFname) {
		columns = append(append([]string{}, header...), acled.ColOrigFname)
	}

	ds, err := acled.Normalize(columns, events)
	if err != nil {
		return nil, fmt.Errorf("shard %s: %w", fname, err)
	}
	return ds, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
