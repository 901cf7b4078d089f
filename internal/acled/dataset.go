package acled

import (
	"sort"
	"time"
)

// Dataset is an in-memory table of normalized events. It is the unit the
// merge engine folds over: each shard loads into one Dataset, and the
// accumulated result is itself a Dataset.
type Dataset struct {
	Events []Event
}

// Empty reports whether the dataset holds no events.
func (d *Dataset) Empty() bool { return len(d.Events) == 0 }

// MinDate returns the earliest event date. Callers must check Empty first.
func (d *Dataset) MinDate() time.Time {
	min := d.Events[0].Date
	for _, e := range d.Events[1:] {
		if e.Date.Before(min) {
			min = e.Date
		}
	}
	return min
}

// MaxDate returns the latest event date. Callers must check Empty first.
func (d *Dataset) MaxDate() time.Time {
	max := d.Events[0].Date
	for _, e := range d.Events[1:] {
		if e.Date.After(max) {
			max = e.Date
		}
	}
	return max
}

// SortByDateID orders events by (event_date, event_id_cnty) ascending, the
// canonical order of the consolidated output.
func (d *Dataset) SortByDateID() {
	sort.SliceStable(d.Events, func(i, j int) bool {
		a, b := d.Events[i], d.Events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}

// DuplicateIDs returns every event_id_cnty that appears more than once,
// sorted. A merged dataset must always return an empty slice here.
func (d *Dataset) DuplicateIDs() []string {
	seen := make(map[string]int, len(d.Events))
	for _, e := range d.Events {
		seen[e.ID]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}
