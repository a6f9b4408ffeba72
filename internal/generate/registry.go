// Package generate produces sample data sets by name for presets, scene
// files and the command line.
package generate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/datavis3d/internal/data"
)

var ErrUnknownGenerator = errors.New("generate: unknown generator")

// Size is the requested extent of a generated data set. Scatter
// generators use Items; bar and surface generators use Rows and Columns.
type Size struct {
	Rows, Columns, Items int
	Seed                 int64
}

type Registry struct {
	bars     map[string]func(Size) [][]float64
	scatter  map[string]func(Size) []data.ScatterItem
	surfaces map[string]func(Size) []data.SurfaceRow
}

func NewRegistry() *Registry {
	r := &Registry{
		bars:     make(map[string]func(Size) [][]float64),
		scatter:  make(map[string]func(Size) []data.ScatterItem),
		surfaces: make(map[string]func(Size) []data.SurfaceRow),
	}

	r.bars["seasonal"] = func(s Size) [][]float64 { return Values(Seasonal, s.Rows, s.Columns) }
	r.bars["ramp"] = func(s Size) [][]float64 { return Values(Ramp, s.Rows, s.Columns) }
	r.bars["wave"] = func(s Size) [][]float64 { return Values(Wave, s.Rows, s.Columns) }

	r.scatter["lorenz"] = func(s Size) []data.ScatterItem { return Trajectory(NewLorenz(), s.Items, 4, 500, 0.005) }
	r.scatter["rossler"] = func(s Size) []data.ScatterItem { return Trajectory(NewRossler(), s.Items, 10, 1000, 0.01) }
	r.scatter["cloud"] = func(s Size) []data.ScatterItem { return Cloud(s.Items, s.Seed) }
	r.scatter["helix"] = func(s Size) []data.ScatterItem { return Helix(s.Items) }

	r.surfaces["sinc"] = func(s Size) []data.SurfaceRow { return Grid(Sinc, s.Rows, s.Columns) }
	r.surfaces["ripple"] = func(s Size) []data.SurfaceRow { return Grid(Ripple, s.Rows, s.Columns) }
	r.surfaces["saddle"] = func(s Size) []data.SurfaceRow { return Grid(Saddle, s.Rows, s.Columns) }

	return r
}

func (r *Registry) Bars(name string, s Size) ([][]float64, error) {
	fn, ok := r.bars[name]
	if !ok {
		return nil, fmt.Errorf("%w: bars %s", ErrUnknownGenerator, name)
	}
	return fn(s), nil
}

func (r *Registry) Scatter(name string, s Size) ([]data.ScatterItem, error) {
	fn, ok := r.scatter[name]
	if !ok {
		return nil, fmt.Errorf("%w: scatter %s", ErrUnknownGenerator, name)
	}
	return fn(s), nil
}

func (r *Registry) Surface(name string, s Size) ([]data.SurfaceRow, error) {
	fn, ok := r.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: surface %s", ErrUnknownGenerator, name)
	}
	return fn(s), nil
}

// List returns the generator names for a graph kind name.
func (r *Registry) List(kind string) []string {
	var names []string
	switch kind {
	case "bar":
		names = keys(r.bars)
	case "scatter":
		names = keys(r.scatter)
	case "surface":
		names = keys(r.surfaces)
	}
	sort.Strings(names)
	return names
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
