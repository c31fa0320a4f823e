package format

import "html"

// TagHTML is the registry tag of the HTML formatter.
const TagHTML = "html"

// HTML renders report content as a minimal HTML document. The content is
// placed inside a pre element so the ASCII layout of generated reports
// survives in a browser, and it is escaped so report data can never inject
// markup.
type HTML struct{}

// NewHTML creates an HTML formatter.
func NewHTML() *HTML { return &HTML{} }

// Name returns the registry tag for the HTML format.
func (f *HTML) Name() string { return TagHTML }

// Format wraps the escaped content in the HTML document envelope.
func (f *HTML) Format(content string) (string, error) {
	if err := validateContent(content); err != nil {
		return "", err
	}
	return "<html><body><pre>" + html.EscapeString(content) + "</pre></body></html>", nil
}
