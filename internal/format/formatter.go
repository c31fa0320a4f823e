package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Formatter defines the interface that all output formats must implement.
// A formatter renders report content for one presentation format.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows formatters to carry configuration state
// 2. It provides a Name() method that doubles as the format tag carried
//    by rendered reports and used for file extensions
// 3. It keeps custom formatters registered at runtime on equal footing
//    with the built-in ones
type Formatter interface {
	// Format renders the given report content. The informational content
	// must be preserved verbatim inside the returned envelope. Returns an
	// error wrapping ErrUnsupportedContent if the content is not
	// renderable text.
	Format(content string) (string, error)

	// Name returns the format tag the formatter is registered under.
	Name() string
}

// validateContent checks that report content is renderable text. All
// built-in formatters share this check so that a payload smuggling binary
// data fails the same way regardless of the chosen format.
func validateContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content is empty", ErrUnsupportedContent)
	}
	if !utf8.ValidString(content) {
		return fmt.Errorf("%w: content is not valid UTF-8", ErrUnsupportedContent)
	}
	if strings.ContainsRune(content, '\x00') {
		return fmt.Errorf("%w: content contains NUL bytes", ErrUnsupportedContent)
	}
	return nil
}
