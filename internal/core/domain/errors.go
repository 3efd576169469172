package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyTrend is returned when a narrative is requested over a trend
// with zero entries. It is raised rather than producing a misleading
// default trend sentence.
var ErrEmptyTrend = errors.New("daily trend has no entries")

// ErrModelUnavailable signals that no trained prediction model exists at
// the configured location. It distinguishes "never trained" from a
// persistence failure.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// MissingInputError reports a required column absent in a context that
// demands strictness (training). It is fatal to the operation it occurs
// in and names the stage and field so the failure is actionable.
type MissingInputError struct {
	Stage string
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.Stage, e.Field)
}
