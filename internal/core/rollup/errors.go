package rollup

import (
	"errors"
	"fmt"
)

// ErrUnknownRollup is returned when a rollup name is not registered.
var ErrUnknownRollup = errors.New("unknown rollup")

// RawAccessError reports that the raw store could not be read during a refresh.
// The rollup's current snapshot is left untouched.
type RawAccessError struct {
	Rollup string
	Err    error
}

func (e *RawAccessError) Error() string {
	return fmt.Sprintf("rollup %s: raw data access failed: %v", e.Rollup, e.Err)
}

func (e *RawAccessError) Unwrap() error { return e.Err }

// DefinitionError reports raw data the definition cannot aggregate, such as an
// unknown enum value or a missing timestamp it groups on.
type DefinitionError struct {
	Rollup string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("rollup %s: %s", e.Rollup, e.Reason)
}

func definitionErrorf(rollup string, format string, args ...interface{}) error {
	return &DefinitionError{Rollup: rollup, Reason: fmt.Sprintf(format, args...)}
}
