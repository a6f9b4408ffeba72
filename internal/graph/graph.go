// Package graph drives one 3D graph: it owns the axes, the series and the
// geometry generators, and turns accumulated changes into scene updates
// once per Sync.
package graph

import (
	"sync"

	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/bars"
	"github.com/san-kum/datavis3d/internal/custom"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/scatter"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
	"github.com/san-kum/datavis3d/internal/surface"
)

// Dirty is the set of pending changes consumed by Sync.
type Dirty uint8

const (
	DirtyData Dirty = 1 << iota
	DirtySeriesVisuals
	DirtyAxisRange
	DirtyAxisFormatter
	DirtySelection
	DirtyCamera
	DirtyScaling
	DirtyCustomItems

	DirtyAll Dirty = 1<<iota - 1
)

// geometry are the changes that move or restyle item primitives.
const geometry = DirtyData | DirtySeriesVisuals | DirtyAxisRange | DirtyAxisFormatter | DirtyScaling

func (d Dirty) Has(f Dirty) bool { return d&f != 0 }

// Frame is the result of one sync pass. Item primitives live in the
// backend; the frame carries the decoration and selection.
type Frame struct {
	Sequence  int
	Kind      series.Kind
	Camera    gridlayout.Camera
	Layout    gridlayout.Layout
	Selection selection.Target
	Mode      selection.Mode
	// Slice is the cross section through the selection, nil unless the
	// mode slices and something is selected.
	Slice *Slice
	// CustomLabels are the custom labels inside the axes.
	CustomLabels []custom.PlacedLabel
	// CustomSelection indexes the selected custom item, -1 for none.
	CustomSelection int
	// Synced are the changes this pass consumed.
	Synced Dirty
}

// Graph is driven from a single goroutine. Only Close may run
// concurrently with Sync or Pick.
type Graph struct {
	mu      sync.Mutex
	closed  bool
	backend scene.Backend

	opts    Options
	axes    [3]*axis.Axis
	helpers [3]*axis.Helper
	series  []series.Series
	dirty   Dirty
	camera  gridlayout.Camera

	resolver   *selection.Resolver
	barScaling *scaling.BarScaling
	height     scaling.Height
	value      scaling.ValueState
	points     int

	bars    *bars.Generator
	scatter *scatter.Generator
	surface *surface.Generator

	custom       *custom.Generator
	items        []*custom.Item
	labels       []*custom.Label
	placedLabels []custom.PlacedLabel
	selectedItem int

	sequence int
}

func New(b scene.Backend, opts Options) *Graph {
	g := &Graph{
		backend:    b,
		opts:       opts,
		dirty:      DirtyAll,
		camera:     gridlayout.DefaultCamera(),
		resolver:   selection.NewResolver(opts.SelectionMode),
		barScaling: scaling.NewBarScaling(),
		custom:     custom.NewGenerator(b),

		selectedItem: -1,
	}
	if opts.Kind == series.KindBar {
		g.axes = [3]*axis.Axis{
			axis.NewCategoryAxis(axis.OrientationX),
			axis.NewValueAxis(axis.OrientationY),
			axis.NewCategoryAxis(axis.OrientationZ),
		}
	} else {
		g.axes = [3]*axis.Axis{
			axis.NewValueAxis(axis.OrientationX),
			axis.NewValueAxis(axis.OrientationY),
			axis.NewValueAxis(axis.OrientationZ),
		}
	}
	for i, a := range g.axes {
		g.helpers[i] = axis.NewHelper(a)
	}
	g.newGenerators()
	return g
}

func (g *Graph) newGenerators() {
	instanced := g.opts.Optimization == OptimizationStatic
	switch g.opts.Kind {
	case series.KindBar:
		g.bars = bars.NewGenerator(g.backend, instanced)
	case series.KindScatter:
		g.scatter = scatter.NewGenerator(g.backend, instanced)
	case series.KindSurface:
		g.surface = surface.NewGenerator(g.backend)
	}
}

func (g *Graph) closeGenerators() {
	if g.bars != nil {
		g.bars.Close()
	}
	if g.scatter != nil {
		g.scatter.Close()
	}
	if g.surface != nil {
		g.surface.Close()
	}
}

func (g *Graph) Kind() series.Kind         { return g.opts.Kind }
func (g *Graph) Options() Options          { return g.opts }
func (g *Graph) Backend() scene.Backend    { return g.backend }
func (g *Graph) AxisX() *axis.Axis         { return g.axes[0] }
func (g *Graph) AxisY() *axis.Axis         { return g.axes[1] }
func (g *Graph) AxisZ() *axis.Axis         { return g.axes[2] }
func (g *Graph) Camera() gridlayout.Camera { return g.camera }

// SetAxis replaces the axis of the same orientation.
func (g *Graph) SetAxis(a *axis.Axis) {
	i := int(a.Orientation)
	g.axes[i] = a
	g.helpers[i] = axis.NewHelper(a)
	g.dirty |= DirtyAxisRange | DirtyAxisFormatter
}

// Helper returns the scene mapping of the axis along o as of the last
// sync pass.
func (g *Graph) Helper(o axis.Orientation) *axis.Helper { return g.helpers[o] }

// MarkDirty forces the given changes to be processed on the next Sync.
func (g *Graph) MarkDirty(d Dirty) { g.dirty |= d }

func (g *Graph) Series() []series.Series {
	return append([]series.Series(nil), g.series...)
}

func (g *Graph) indexOf(s series.Series) int {
	for i, c := range g.series {
		if c == s {
			return i
		}
	}
	return -1
}

func (g *Graph) AddSeries(s series.Series) error {
	if g.closed {
		return ErrClosed
	}
	if s.Kind() != g.opts.Kind {
		return &SeriesError{Series: s.Name(), Op: "add", Wrapped: ErrKindMismatch}
	}
	if g.indexOf(s) >= 0 {
		return &SeriesError{Series: s.Name(), Op: "add", Wrapped: ErrDuplicateSeries}
	}
	g.series = append(g.series, s)
	g.dirty |= DirtyData
	logging.Logger().Debug("series added", "series", s.Name(), "kind", s.Kind().String())
	return nil
}

// RemoveSeries detaches s and destroys its primitives. A selection on s
// is cleared.
func (g *Graph) RemoveSeries(s series.Series) error {
	i := g.indexOf(s)
	if i < 0 {
		return &SeriesError{Series: s.Name(), Op: "remove", Wrapped: ErrUnknownSeries}
	}
	g.series = append(g.series[:i], g.series[i+1:]...)
	switch v := s.(type) {
	case *series.Bar:
		g.bars.Remove(v)
		v.SetSelected(series.InvalidCoord)
	case *series.Scatter:
		g.scatter.Remove(v)
		v.SetSelected(series.InvalidIndex)
	case *series.Surface:
		g.surface.Remove(v)
		v.SetSelected(series.InvalidCoord)
	}
	g.resolver.SeriesRemoved(s)
	g.dirty |= DirtyData
	return nil
}

func (g *Graph) SelectionMode() selection.Mode { return g.resolver.Mode() }

// SetSelectionMode changes the selection behaviour. A slice mode without
// exactly one of row and column is ignored and reported as false.
func (g *Graph) SetSelectionMode(m selection.Mode) bool {
	if !g.resolver.SetMode(m) {
		return false
	}
	g.opts.SelectionMode = m
	return true
}

// Selected is the current selection; Valid is false when nothing is
// selected.
func (g *Graph) Selected() selection.Target { return g.resolver.Selected() }

// SetSelectedBar selects the bar at c of s. Coordinates outside the data
// clear the selection.
func (g *Graph) SetSelectedBar(s *series.Bar, c series.Coord) error {
	return g.selectTarget(s, selection.Target{Series: s, Coord: c})
}

// SetSelectedItem selects scatter item i of s. An invalid index clears the
// selection.
func (g *Graph) SetSelectedItem(s *series.Scatter, i int) error {
	return g.selectTarget(s, selection.PointTarget(s, i))
}

// SetSelectedPoint selects the surface grid point at c of s.
func (g *Graph) SetSelectedPoint(s *series.Surface, c series.Coord) error {
	return g.selectTarget(s, selection.Target{Series: s, Coord: c})
}

func (g *Graph) selectTarget(s series.Series, t selection.Target) error {
	if g.indexOf(s) < 0 {
		return &SeriesError{Series: s.Name(), Op: "select", Wrapped: ErrUnknownSeries}
	}
	if !exists(t) {
		g.resolver.Clear()
		return nil
	}
	g.selectedItem = -1
	g.resolver.Select(t)
	return nil
}

func (g *Graph) ClearSelection() { g.resolver.Clear() }

// exists reports whether t addresses an item present in its proxy.
func exists(t selection.Target) bool {
	if !t.Valid() {
		return false
	}
	c := t.Coord
	switch s := t.Series.(type) {
	case *series.Bar:
		_, ok := s.Proxy.ItemAt(c.Row, c.Col)
		return ok
	case *series.Scatter:
		_, ok := s.Proxy.ItemAt(c.Col)
		return ok
	case *series.Surface:
		_, ok := s.Proxy.ItemAt(c.Row, c.Col)
		return ok
	}
	return false
}

// SetOptimization switches between per item and instanced primitives.
// Existing primitives are destroyed and rebuilt on the next Sync.
func (g *Graph) SetOptimization(o Optimization) {
	if o == g.opts.Optimization {
		return
	}
	g.opts.Optimization = o
	if g.opts.Kind == series.KindSurface || g.closed {
		return
	}
	g.closeGenerators()
	g.newGenerators()
	g.dirty |= DirtyData | DirtySelection
}

func (g *Graph) SetCamera(c gridlayout.Camera) {
	if c == g.camera {
		return
	}
	g.camera = c
	g.dirty |= DirtyCamera
}

func (g *Graph) SetBarSpec(spec scaling.BarSpec) {
	g.opts.BarSpec = spec
	g.dirty |= DirtyScaling
}

func (g *Graph) SetSeriesMargin(m scaling.Size) {
	g.opts.SeriesMargin = m
	g.dirty |= DirtyScaling
}

func (g *Graph) SetFloorLevel(f float64) {
	g.opts.FloorLevel = f
	g.dirty |= DirtyScaling | DirtyData
}

// SetMargin sets the background margin; a negative margin derives it.
func (g *Graph) SetMargin(m float64) {
	g.opts.Margin = m
	g.dirty |= DirtyScaling
}

func (g *Graph) SetAspectRatio(r float64) {
	g.opts.AspectRatio = r
	g.dirty |= DirtyScaling
}

func (g *Graph) SetHorizontalAspectRatio(r float64) {
	g.opts.HorizontalAspectRatio = r
	g.dirty |= DirtyScaling
}

// Pick selects the frontmost item under the screen point. Missing every
// item clears the selection.
func (g *Graph) Pick(x, y float64) (selection.Target, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return selection.Target{Coord: series.InvalidCoord}, ErrClosed
	}
	hits := g.backend.Pick(x, y)
	g.selectedItem = -1
	for _, h := range hits {
		if it, ok := g.custom.Lookup(h); ok {
			g.selectedItem = g.customIndex(it)
			g.resolver.Clear()
			return g.resolver.Selected(), nil
		}
		if _, ok := g.lookup(h); ok {
			break
		}
	}
	return g.resolver.Resolve(hits, g.lookup), nil
}

func (g *Graph) lookup(h scene.Hit) (selection.Target, bool) {
	switch g.opts.Kind {
	case series.KindBar:
		if s, c, ok := g.bars.Lookup(h); ok {
			return selection.Target{Series: s, Coord: c}, true
		}
	case series.KindScatter:
		if s, i, ok := g.scatter.Lookup(h); ok {
			return selection.PointTarget(s, i), true
		}
	case series.KindSurface:
		if s, c, ok := g.surface.Lookup(h); ok {
			return selection.Target{Series: s, Coord: c}, true
		}
	}
	return selection.Target{}, false
}

// Close destroys every primitive and detaches the backend. It is safe to
// call more than once.
func (g *Graph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	g.closeGenerators()
	g.custom.Close()
	g.backend = nil
	return nil
}
