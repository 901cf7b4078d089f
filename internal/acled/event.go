// Package acled holds the consolidated ACLED data model: the fixed
// retained-column schema, the Event record, and the Dataset table that the
// merge engine folds over.
package acled

import "time"

// Well-known column names.
const (
	ColEventID   = "event_id_cnty"
	ColEventDate = "event_date"
	ColISO       = "iso"
	ColISO3      = "iso3"
	ColTimestamp = "timestamp"
	ColOrigFname = "_orig_fname"
)

// RetainedColumns is the canonical output schema, in order. Every
// normalized dataset carries exactly these columns.
var RetainedColumns = []string{
	ColEventID, ColISO, ColISO3, ColEventDate, "year",
	"time_precision", "event_type", "sub_event_type",
	"actor1", "assoc_actor_1", "inter1", "actor2", "assoc_actor_2",
	"inter2", "interaction", "region", "country",
	"admin1", "admin2", "admin3", "location", "latitude", "longitude",
	"geo_precision", "source", "source_scale", "notes", "fatalities",
	ColTimestamp, ColOrigFname,
}

// Event is one conflict-event record. ID is the dedup key; when the same ID
// appears in more than one shard, the version with the higher TSKey wins.
type Event struct {
	ID    string    // event_id_cnty
	Date  time.Time // event_date, date precision only
	TSKey float64   // total-order key derived from the timestamp column

	// Fields holds the raw string value of every retained column,
	// carried through unchanged to the output file.
	Fields map[string]string
}

// DateLayout is the normalized event_date representation used on output.
const DateLayout = "2006-01-02"
