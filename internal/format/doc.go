// Package format renders generated report content into presentation formats.
//
// Each output format (pdf, excel, html, markdown) is implemented as a
// Formatter strategy looked up through a Registry keyed by short format
// tags. Formatters receive the raw textual content and return a rendered
// envelope around it; the informational content itself is always preserved
// verbatim.
//
// Design decision: Formatters transform strings rather than writing to an
// io.Writer because the rendered content has to travel onward through
// delivery strategies and into the history ledger. Keeping rendering a pure
// string transformation lets the pipeline hand the same rendered content to
// a file, an email body, and a cloud object without re-rendering.
package format
