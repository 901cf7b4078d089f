package acled

import "fmt"

// ValidationError reports invalid input data: badly named shard files,
// missing columns, unmappable country codes, or temporal gaps between
// consecutive shards. Every offender is enumerated in the message, not just
// the first one found.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Invalidf builds a ValidationError with fmt.Sprintf semantics.
func Invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
