package graph

import (
	"fmt"
	"sort"

	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

// Registry maps graph kind names to factories.
type Registry struct {
	kinds map[string]func(scene.Backend) *Graph
}

func NewRegistry() *Registry {
	r := &Registry{
		kinds: make(map[string]func(scene.Backend) *Graph),
	}

	r.kinds["bar"] = func(b scene.Backend) *Graph { return New(b, DefaultOptions(series.KindBar)) }
	r.kinds["scatter"] = func(b scene.Backend) *Graph { return New(b, DefaultOptions(series.KindScatter)) }
	r.kinds["surface"] = func(b scene.Backend) *Graph { return New(b, DefaultOptions(series.KindSurface)) }

	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, fn func(scene.Backend) *Graph) {
	r.kinds[name] = fn
}

func (r *Registry) Get(name string, b scene.Backend) (*Graph, error) {
	fn, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown graph kind: %s", name)
	}
	return fn(b), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
