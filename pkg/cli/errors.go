package cli

import "errors"

var (
	// ErrViolationsFound is returned by lint when findings should fail the run
	ErrViolationsFound = errors.New("lint violations found")

	// ErrUnknownFormat is returned for an unsupported --format value
	ErrUnknownFormat = errors.New("unknown output format")
)
