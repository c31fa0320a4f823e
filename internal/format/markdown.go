package format

import (
	"fmt"
	"strings"

	"github.com/nao1215/markdown"
)

// TagMarkdown is the registry tag of the Markdown formatter.
const TagMarkdown = "markdown"

// Markdown renders report content as a Markdown document for documentation
// and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type Markdown struct{}

// NewMarkdown creates a Markdown formatter.
func NewMarkdown() *Markdown { return &Markdown{} }

// Name returns the registry tag for the Markdown format.
func (f *Markdown) Name() string { return TagMarkdown }

// Format wraps the content in a fenced code block inside a small Markdown
// document. The code fence keeps the ASCII layout of generated reports
// intact in rendered views.
func (f *Markdown) Format(content string) (string, error) {
	if err := validateContent(content); err != nil {
		return "", err
	}

	var sb strings.Builder
	md := markdown.NewMarkdown(&sb)
	md.H1("Report")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, content)
	md.PlainText("")
	md.HorizontalRule()
	md.PlainTextf("*Generated by reportpipe*")
	if err := md.Build(); err != nil {
		return "", fmt.Errorf("markdown rendering: %w", err)
	}

	return sb.String(), nil
}
