package generator

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reportpipe/reportpipe/internal/model"
)

// Generator defines the interface that all report generators must implement.
// A generator owns one report family: it validates the raw payload, computes
// the family's aggregates, and produces an immutable Report.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows generators to carry configuration state (clock, locale)
// 2. It provides a Name() method for logging and registry bookkeeping
// 3. It keeps custom generators registered at runtime on equal footing
//    with the built-in ones
type Generator interface {
	// Generate builds a report from the raw payload. The payload must be
	// treated as read-only; implementations that need to reshape data work
	// on copies. Returns an error wrapping ErrInvalidInput when the payload
	// does not match the family's expected shape.
	Generate(payload map[string]any) (model.Report, error)

	// Name returns the report type tag the generator is registered under.
	Name() string
}

// bannerWidth is the width of the ASCII banners framing generated reports.
const bannerWidth = 60

// settings carries the knobs shared by all built-in generators.
type settings struct {
	// now supplies generation timestamps. Injectable for deterministic tests.
	now func() time.Time

	// printer renders currency amounts and counts with locale-aware digit
	// grouping ("$1,234.50" rather than "$1234.5").
	printer *message.Printer
}

// Option configures a built-in generator.
// This follows the functional options pattern for clean API design.
type Option func(*settings)

// WithClock sets the time source used for generation timestamps.
// If not set, time.Now is used.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithLanguage sets the locale used to render amounts and counts.
// If not set, English number formatting is used.
func WithLanguage(tag language.Tag) Option {
	return func(s *settings) {
		s.printer = message.NewPrinter(tag)
	}
}

// newSettings applies opts on top of the defaults.
func newSettings(opts []Option) settings {
	s := settings{
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// money renders a positive or negative amount as a currency string.
func (s settings) money(amount float64) string {
	return s.printer.Sprintf("$%.2f", amount)
}

// count renders an integer count with digit grouping.
func (s settings) count(n int64) string {
	return s.printer.Sprintf("%d", n)
}

// writeBanner writes the framed report title.
func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(centered(title, bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
}

// writeRule writes a thin section separator.
func writeRule(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n")
}

// centered pads s with leading spaces so it sits in the middle of width
// columns. Strings wider than the banner are returned unchanged.
func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

// timestampLayout is the layout of the generation timestamp printed in
// report bodies.
const timestampLayout = "2006-01-02 15:04:05"
