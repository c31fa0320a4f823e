package delivery

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps channel tags to delivery strategies. The orchestrator owns
// one Registry instance; there is no package-level default, so separate
// services never share registration state.
//
// Unlike the generator and format registries there is no DefaultRegistry:
// every channel needs a collaborator (transport, filesystem, cloud client)
// that only the embedding application can provide, so channels are always
// registered explicitly.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Strategy
}

// NewRegistry creates an empty delivery registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]Strategy),
	}
}

// Register adds a strategy under the given tag. Registering an existing tag
// replaces the previous strategy for all subsequent Create calls.
func (r *Registry) Register(tag string, s Strategy) error {
	if tag == "" {
		return fmt.Errorf("delivery channel tag cannot be empty")
	}
	if s == nil {
		return fmt.Errorf("delivery strategy for tag %q cannot be nil", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels[tag] = s
	return nil
}

// Create returns the strategy registered under tag.
// Returns an error wrapping ErrUnknownChannel if the tag is not known.
func (r *Registry) Create(tag string) (Strategy, error) {
	r.mu.RLock()
	s, ok := r.channels[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, tag)
	}
	return s, nil
}

// Tags returns the registered channel tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.channels))
	for tag := range r.channels {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
