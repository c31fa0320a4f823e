package format

import "errors"

// Formatting errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Call sites wrap the sentinels with fmt.Errorf
// to add the tag or the validation detail.
var (
	// ErrUnknownFormat is returned when a format tag has no registered
	// formatter. The wrapped message names the tag.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrUnsupportedContent is returned when report content cannot be
	// rendered: empty content, invalid UTF-8, or embedded NUL bytes.
	ErrUnsupportedContent = errors.New("unsupported report content")
)
