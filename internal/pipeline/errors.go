package pipeline

import "errors"

var (
	// ErrIncompleteConfiguration is returned by Build when one or more
	// pipeline slots were never set. The error message names every missing
	// slot so callers can fix all of them in one pass.
	ErrIncompleteConfiguration = errors.New("incomplete pipeline configuration")

	// ErrBuilderReused is returned by Build when the builder already ran.
	// Call Reset to reconfigure and build again.
	ErrBuilderReused = errors.New("pipeline builder already used")
)
