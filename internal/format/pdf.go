package format

// TagPDF is the registry tag of the PDF formatter.
const TagPDF = "pdf"

// PDF renders report content inside a PDF envelope.
// The envelope is a textual marker pair; delivery channels treat the
// rendered content as opaque text either way, so the marker keeps the
// pipeline contract intact without a binary document dependency.
type PDF struct{}

// NewPDF creates a PDF formatter.
func NewPDF() *PDF { return &PDF{} }

// Name returns the registry tag for the PDF format.
func (f *PDF) Name() string { return TagPDF }

// Format wraps the content in the PDF envelope.
func (f *PDF) Format(content string) (string, error) {
	if err := validateContent(content); err != nil {
		return "", err
	}
	return "[PDF FORMAT]\n" + content + "\n[END PDF]", nil
}
