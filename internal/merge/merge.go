// Package merge folds normalized ACLED shards into one deduplicated,
// chronologically ordered dataset. Shards are combined pairwise, left to
// right, so a date gap is caught at the exact pair of exports where it
// occurs.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lungoruscello/acled-concat/internal/acled"
)

// StepFunc observes the accumulator after each fold step. step counts from
// 1 (the first merge of shards[0] and shards[1]).
type StepFunc func(step int, acc *acled.Dataset)

// Fold reduces an ordered sequence of shards into one dataset via Two.
// After every step it verifies the accumulator holds no duplicate event
// IDs. onStep may be nil.
func Fold(shards []*acled.Dataset, onStep StepFunc) (*acled.Dataset, error) {
	if len(shards) < 2 {
		return nil, acled.Invalidf("at least two shards are required to merge, got %d", len(shards))
	}

	acc := shards[0]
	for i, next := range shards[1:] {
		merged, err := Two(acc, next)
		if err != nil {
			return nil, err
		}
		if dups := merged.DuplicateIDs(); len(dups) > 0 {
			return nil, fmt.Errorf("duplicate event ids survived fold step %d: %s",
				i+1, strings.Join(dups, ", "))
		}
		acc = merged
		if onStep != nil {
			onStep(i+1, acc)
		}
	}
	return acc, nil
}

// Two merges two temporally contiguous datasets. The accumulated coverage
// must reach the incoming shard's earliest date, otherwise the consolidated
// output would silently skip a date range. Events sharing an ID are
// deduplicated by keeping the version with the highest timestamp; on an
// exact timestamp tie the incoming shard's row wins, since the union lists
// acc's rows first and the per-ID sort is stable.
func Two(acc, next *acled.Dataset) (*acled.Dataset, error) {
	if acc.Empty() || next.Empty() {
		return nil, acled.Invalidf("cannot merge empty ACLED shards")
	}

	accMax := acc.MaxDate()
	nextMin := next.MinDate()
	if accMax.Before(nextMin) {
		return nil, acled.Invalidf(
			"ACLED shards must have overlapping dates to avoid data gaps: "+
				"accumulated coverage ends %s but %s starts %s",
			accMax.Format(acled.DateLayout),
			next.Events[0].Fields[acled.ColOrigFname],
			nextMin.Format(acled.DateLayout))
	}

	union := make([]acled.Event, 0, len(acc.Events)+len(next.Events))
	union = append(union, acc.Events...)
	union = append(union, next.Events...)

	// Stable by construction: equal (ID, TSKey) pairs keep union order.
	sort.SliceStable(union, func(i, j int) bool {
		if union[i].ID != union[j].ID {
			return union[i].ID < union[j].ID
		}
		return union[i].TSKey < union[j].TSKey
	})

	// Keep the last row of each ID group, i.e. the latest edit.
	deduped := make([]acled.Event, 0, len(union))
	for i, e := range union {
		if i+1 == len(union) || union[i+1].ID != e.ID {
			deduped = append(deduped, e)
		}
	}

	merged := &acled.Dataset{Events: deduped}
	merged.SortByDateID()
	return merged, nil
}
