package generator

import "errors"

// Generation errors.
// These errors are returned by the Registry and by the built-in generators.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Call sites wrap the sentinels with fmt.Errorf
// to add the tag or field that triggered the error.
var (
	// ErrUnknownReportType is returned when a report type tag has no
	// registered generator. The wrapped message names the tag.
	ErrUnknownReportType = errors.New("unknown report type")

	// ErrInvalidInput is returned when a payload is missing a required
	// field or carries a field of the wrong shape. The wrapped message
	// names the offending field.
	ErrInvalidInput = errors.New("invalid report input")
)
