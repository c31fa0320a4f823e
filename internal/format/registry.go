package format

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps format tags to formatter strategies. The orchestrator owns
// one Registry instance; there is no package-level default, so separate
// services never share registration state.
//
// Design decision: Lookups vastly outnumber registrations, so the map is
// guarded by a sync.RWMutex rather than a plain Mutex. Registered formatters
// must be safe for concurrent use because a single instance serves all runs.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// DefaultRegistry creates a registry with the built-in formatters (pdf,
// excel, html, markdown) registered under their canonical tags.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{
		NewPDF(),
		NewExcel(),
		NewHTML(),
		NewMarkdown(),
	} {
		// Built-in tags are non-empty constants, so Register cannot fail.
		_ = r.Register(f.Name(), f)
	}
	return r
}

// Register adds a formatter under the given tag. Registering an existing tag
// replaces the previous formatter for all subsequent Create calls; reports
// already rendered by the old formatter are unaffected.
func (r *Registry) Register(tag string, f Formatter) error {
	if tag == "" {
		return fmt.Errorf("format tag cannot be empty")
	}
	if f == nil {
		return fmt.Errorf("formatter for tag %q cannot be nil", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.formatters[tag] = f
	return nil
}

// Create returns the formatter registered under tag.
// Returns an error wrapping ErrUnknownFormat if the tag is not known.
func (r *Registry) Create(tag string) (Formatter, error) {
	r.mu.RLock()
	f, ok := r.formatters[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
	}
	return f, nil
}

// Tags returns the registered format tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.formatters))
	for tag := range r.formatters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
