package generator

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps report type tags to generator strategies. The orchestrator
// owns one Registry instance; there is no package-level default, so separate
// services never share registration state.
//
// Design decision: Lookups vastly outnumber registrations (registration
// happens at startup, lookups on every run), so the map is guarded by a
// sync.RWMutex rather than a plain Mutex. Registered generators must be safe
// for concurrent use because a single instance serves all runs.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty generator registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// DefaultRegistry creates a registry with the built-in generators (sales,
// inventory, financial) registered under their canonical tags. The options
// are applied to every built-in generator.
func DefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry()
	for _, gen := range []Generator{
		NewSales(opts...),
		NewInventory(opts...),
		NewFinancial(opts...),
	} {
		// Built-in tags are non-empty constants, so Register cannot fail.
		_ = r.Register(gen.Name(), gen)
	}
	return r
}

// Register adds a generator under the given tag. Registering an existing tag
// replaces the previous generator for all subsequent Create calls; reports
// already produced by the old generator are unaffected.
func (r *Registry) Register(tag string, gen Generator) error {
	if tag == "" {
		return fmt.Errorf("report type tag cannot be empty")
	}
	if gen == nil {
		return fmt.Errorf("generator for tag %q cannot be nil", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.generators[tag] = gen
	return nil
}

// Create returns the generator registered under tag.
// Returns an error wrapping ErrUnknownReportType if the tag is not known.
func (r *Registry) Create(tag string) (Generator, error) {
	r.mu.RLock()
	gen, ok := r.generators[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, tag)
	}
	return gen, nil
}

// Tags returns the registered report type tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.generators))
	for tag := range r.generators {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
