package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FormatRaw is the format tag of a freshly generated report before any
// formatter has rendered it.
const FormatRaw = "raw"

// Report is the product of a single generation run. It carries the rendered
// content together with the identifying tags and metadata that the delivery
// and history layers need.
//
// Design decision: Report is an immutable value type. All fields are
// unexported and only reachable through accessors, the metadata accessor
// returns a defensive copy, and rendering produces a new Report instead of
// mutating the receiver. Immutability is what makes it safe to hand the same
// Report to a delivery strategy, the history ledger, and the caller without
// coordination.
type Report struct {
	// id uniquely identifies the report across runs and processes.
	id string

	// reportType is the registry tag of the generator that produced the
	// report ("sales", "inventory", "financial", ...).
	reportType string

	// format is the registry tag of the formatter that rendered the current
	// content. It is FormatRaw until a formatter has run.
	format string

	// content is the textual report body in its current rendering.
	content string

	// createdAt is the generation timestamp. Rendering preserves it.
	createdAt time.Time

	// metadata holds generator-computed key figures (totals, periods,
	// counts) keyed by short snake_case names.
	metadata map[string]string
}

// New creates a report for the given type tag with a fresh ID and the
// current time as creation timestamp. The metadata map is copied, so the
// caller may keep mutating its own map afterwards.
func New(reportType, content string, metadata map[string]string) Report {
	return NewAt(reportType, content, metadata, time.Now())
}

// NewAt is New with an explicit creation timestamp. Generators use it so the
// timestamp printed inside the content and the one carried by the Report are
// the same instant, and tests use it for deterministic reports.
func NewAt(reportType, content string, metadata map[string]string, createdAt time.Time) Report {
	return Report{
		id:         uuid.NewString(),
		reportType: reportType,
		format:     FormatRaw,
		content:    content,
		createdAt:  createdAt,
		metadata:   copyMetadata(metadata),
	}
}

// Rendered returns a new Report carrying the formatted content and the tag
// of the formatter that produced it. ID, type, creation timestamp, and
// metadata are shared with the receiver; the receiver itself is unchanged.
func (r Report) Rendered(format, content string) Report {
	next := r
	next.format = format
	next.content = content
	return next
}

// ID returns the unique report identifier.
func (r Report) ID() string { return r.id }

// Type returns the generator tag the report was produced under.
func (r Report) Type() string { return r.reportType }

// Format returns the formatter tag of the current content, or FormatRaw if
// no formatter has run yet.
func (r Report) Format() string { return r.format }

// Content returns the report body in its current rendering.
func (r Report) Content() string { return r.content }

// CreatedAt returns the generation timestamp.
func (r Report) CreatedAt() time.Time { return r.createdAt }

// Metadata returns a copy of the report metadata. Mutating the returned map
// does not affect the report.
func (r Report) Metadata() map[string]string {
	return copyMetadata(r.metadata)
}

// MetadataValue returns a single metadata value and whether it is present.
func (r Report) MetadataValue(key string) (string, bool) {
	v, ok := r.metadata[key]
	return v, ok
}

// IsZero reports whether r is the zero Report, i.e. was never produced by a
// generator. Callers use it to distinguish "no report" from an empty one.
func (r Report) IsZero() bool {
	return r.id == ""
}

// reportJSON is the serialized form of Report. The immutable type itself has
// unexported fields, so JSON output goes through this intermediate struct.
type reportJSON struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Format    string            `json:"format"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// MarshalJSON serializes the report for CLI output and archive storage.
// There is intentionally no UnmarshalJSON: reports are only ever created by
// generators, never reconstructed from JSON.
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		ID:        r.id,
		Type:      r.reportType,
		Format:    r.format,
		Content:   r.content,
		CreatedAt: r.createdAt,
		Metadata:  copyMetadata(r.metadata),
	})
}

// copyMetadata returns an independent copy of m. A nil or empty map yields
// nil so that zero-metadata reports stay comparable.
func copyMetadata(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
