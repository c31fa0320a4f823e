package format

// TagExcel is the registry tag of the Excel formatter.
const TagExcel = "excel"

// Excel renders report content inside an Excel envelope.
type Excel struct{}

// NewExcel creates an Excel formatter.
func NewExcel() *Excel { return &Excel{} }

// Name returns the registry tag for the Excel format.
func (f *Excel) Name() string { return TagExcel }

// Format wraps the content in the Excel envelope.
func (f *Excel) Format(content string) (string, error) {
	if err := validateContent(content); err != nil {
		return "", err
	}
	return "[EXCEL FORMAT]\n" + content + "\n[END EXCEL]", nil
}
