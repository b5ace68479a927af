package player

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a player for one seat. seed is derived per seat so bots at
// the same table do not share a random sequence.
type Factory func(name string, seed int64) Player

// Registry maps bot kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with the built-in bots registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("random", func(name string, seed int64) Player { return NewRandom(name, seed) })
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(kind)] = f
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds a player of the given kind.
func (r *Registry) New(kind, name string, seed int64) (Player, error) {
	r.mu.RLock()
	f, ok := r.factories[strings.ToLower(kind)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown player kind %q (have %s)", kind, strings.Join(r.Kinds(), ", "))
	}
	return f(name, seed), nil
}
