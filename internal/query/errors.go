package query

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyUpdate is returned when an update has no settable columns.
	ErrEmptyUpdate = errors.New("query: no columns to update")

	// ErrInvalidFilter is matched by every *InvalidFilterError.
	ErrInvalidFilter = errors.New("query: invalid filter")
)

// InvalidFilterError reports a lower bound that exceeds its upper bound, or a
// bound that is not a finite number (Reason set).
type InvalidFilterError struct {
	Field  string
	Min    any
	Max    any
	Reason string
}

func (e *InvalidFilterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("min_%s (%v) cannot be greater than max_%s (%v)", e.Field, e.Min, e.Field, e.Max)
}

func (e *InvalidFilterError) Is(target error) bool { return target == ErrInvalidFilter }
