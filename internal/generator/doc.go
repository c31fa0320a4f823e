// Package generator turns raw business payloads into Report values.
//
// Each report family (sales, inventory, financial) is implemented as a
// Generator strategy. Strategies are looked up through a Registry keyed by
// short type tags, so new report families can be added at runtime without
// touching the pipeline. The built-in generators share one Option set for
// clock and locale injection.
//
// Design decision: The payload stays a plain map[string]any rather than a
// typed struct per family because payloads arrive from JSON files, config
// samples, and tests in loosely typed form. Each generator validates and
// decodes exactly the fields it needs and reports violations through
// ErrInvalidInput, which keeps malformed input an input error instead of a
// decode panic. Generators never mutate the payload.
package generator
