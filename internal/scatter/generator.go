// Package scatter places the points of scatter series and the selection
// indicator.
package scatter

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

// IndicatorScale enlarges the selection indicator over the point it marks.
const IndicatorScale = 1.1

// Params are the graph wide inputs of one sync pass. The helpers carry
// the value scaling of their axis.
type Params struct {
	X, Y, Z *axis.Helper
	// ScaleY is the vertical half extent used for range gradients.
	ScaleY float64
	// Points is the number of visible points across all series.
	Points int
}

// Point is the placement of one item.
type Point struct {
	Transform scene.Transform
	Hidden    bool
}

type seriesState struct {
	series    *series.Scatter
	handles   []scene.Handle
	instanced scene.Handle
	points    []Point
	textures  series.Textures
	baked     bool
	dirty     bool
}

// Generator owns the primitives of every scatter series.
type Generator struct {
	backend   scene.Backend
	instanced bool
	states    map[*series.Scatter]*seriesState
	byHandle  map[scene.Handle]*seriesState

	indicator scene.Handle
	indMesh   scene.Mesh
	selSeries *series.Scatter
	selIndex  int
}

func NewGenerator(b scene.Backend, instanced bool) *Generator {
	return &Generator{
		backend:   b,
		instanced: instanced,
		states:    make(map[*series.Scatter]*seriesState),
		byHandle:  make(map[scene.Handle]*seriesState),
		selIndex:  series.InvalidIndex,
	}
}

func (g *Generator) Instanced() bool { return g.instanced }

// MarkDirty schedules s for placement on the next Sync.
func (g *Generator) MarkDirty(s *series.Scatter) {
	if st, ok := g.states[s]; ok {
		st.dirty = true
	}
}

func (g *Generator) MarkAllDirty() {
	for _, st := range g.states {
		st.dirty = true
	}
}

// Restyle rebakes the gradients of s and places it again.
func (g *Generator) Restyle(s *series.Scatter) {
	if st, ok := g.states[s]; ok {
		st.baked = false
		st.dirty = true
	}
}

// Sync places every dirty series of list.
func (g *Generator) Sync(list []*series.Scatter, p Params) error {
	size := scaling.PointSize(p.Points)
	for _, s := range list {
		st, ok := g.states[s]
		if !ok {
			st = &seriesState{series: s, dirty: true}
			g.states[s] = st
			if err := g.create(st); err != nil {
				return err
			}
		}
		n := s.Proxy.ItemCount()
		switch {
		case !g.instanced && len(st.handles) != n:
			if !st.dirty {
				logging.Logger().Warn("scatter count differs from data, regenerating",
					"series", s.Name(), "points", len(st.handles), "items", n)
			}
			g.destroy(st)
			if err := g.create(st); err != nil {
				return err
			}
			st.dirty = true
		case g.instanced && !st.dirty && len(st.points) != n:
			logging.Logger().Warn("scatter count differs from data, rebuilding instances",
				"series", s.Name(), "points", len(st.points), "items", n)
			st.dirty = true
		}
		if !st.baked {
			series.ReleaseTextures(g.backend, &st.textures)
			tex, err := series.BakeTextures(g.backend, s.Style())
			if err != nil {
				return fmt.Errorf("bake %q gradients: %w", s.Name(), err)
			}
			st.textures, st.baked = tex, true
		}
		if st.dirty {
			g.place(st, p, size)
			st.dirty = false
		}
	}
	g.updateIndicator()
	return nil
}

func (g *Generator) create(st *seriesState) error {
	s := st.series
	mesh := s.Style().Mesh
	if g.instanced {
		h, err := g.backend.CreatePrimitive(scene.KindInstanced, mesh)
		if err != nil {
			return fmt.Errorf("create points %q: %w", s.Name(), err)
		}
		st.instanced = h
		g.byHandle[h] = st
		return nil
	}
	n := s.Proxy.ItemCount()
	st.handles = make([]scene.Handle, 0, n)
	for i := 0; i < n; i++ {
		h, err := g.backend.CreatePrimitive(scene.KindItem, mesh)
		if err != nil {
			return fmt.Errorf("create point %q %d: %w", s.Name(), i, err)
		}
		st.handles = append(st.handles, h)
		g.byHandle[h] = st
	}
	return nil
}

func (g *Generator) destroy(st *seriesState) {
	for _, h := range st.handles {
		g.backend.DestroyPrimitive(h)
		delete(g.byHandle, h)
	}
	st.handles = nil
	if st.instanced.Valid() {
		g.backend.DestroyPrimitive(st.instanced)
		delete(g.byHandle, st.instanced)
		st.instanced = scene.Handle{}
	}
	st.points = nil
}

func (g *Generator) place(st *seriesState, p Params, pointSize float64) {
	s := st.series
	style := s.Style()
	size := style.ItemSize / scaling.ItemScaler
	if size == 0 {
		size = pointSize
	}

	items := s.Proxy.Items()
	st.points = make([]Point, len(items))
	var instances []scene.Instance
	if g.instanced {
		instances = make([]scene.Instance, len(items))
	}
	for i, it := range items {
		pt := Place(it, p, size, style.MeshRotation)
		pt.Hidden = pt.Hidden || !s.Visible()
		st.points[i] = pt
		m := style.Material(series.RoleBase, RangeGradientPosition(pt.Transform.Position[1], p.ScaleY), st.textures)

		if g.instanced {
			instances[i] = scene.Instance{Transform: pt.Transform, Color: m.Color, Hidden: pt.Hidden}
			continue
		}
		h := st.handles[i]
		g.backend.SetTransform(h, pt.Transform)
		g.backend.SetMaterial(h, m)
		g.backend.SetVisible(h, !pt.Hidden)
		g.backend.SetPickable(h, !pt.Hidden)
	}
	if g.instanced {
		g.backend.SetInstances(st.instanced, instances)
		g.backend.SetMaterial(st.instanced, scene.Material{Texture: st.textures[series.RoleBase], Smooth: style.MeshSmooth})
		g.backend.SetVisible(st.instanced, s.Visible())
		g.backend.SetPickable(st.instanced, s.Visible())
	}
}

// Place computes the transform of one item. Items outside any axis range
// come back hidden.
func Place(it data.ScatterItem, p Params, size float64, mesh mgl64.Quat) Point {
	rot := it.Rotation
	if rot == (mgl64.Quat{}) {
		rot = mgl64.QuatIdent()
	}
	v := it.Position
	return Point{
		Transform: scene.Transform{
			Position: mgl64.Vec3{p.X.ItemPositionAt(v[0]), p.Y.ItemPositionAt(v[1]), p.Z.ItemPositionAt(v[2])},
			Rotation: rot.Mul(mesh),
			Scale:    mgl64.Vec3{size, size, size},
		},
		Hidden: !inRange(p.X, v[0]) || !inRange(p.Y, v[1]) || !inRange(p.Z, v[2]),
	}
}

func inRange(h *axis.Helper, v float64) bool {
	return v >= h.Min() && v <= h.Max()
}

// RangeGradientPosition is where a point at height y looks up a range
// gradient.
func RangeGradientPosition(y, scaleY float64) float64 {
	if scaleY == 0 {
		return 0.5
	}
	return (y + scaleY) * 0.5 / scaleY
}

// Points returns the last placement of every item of s.
func (g *Generator) Points(s *series.Scatter) []Point {
	if st, ok := g.states[s]; ok {
		return st.points
	}
	return nil
}

// Lookup maps a pick hit back to its series and item index.
func (g *Generator) Lookup(hit scene.Hit) (*series.Scatter, int, bool) {
	st, ok := g.byHandle[hit.Handle]
	if !ok || !st.series.Visible() {
		return nil, series.InvalidIndex, false
	}
	if g.instanced {
		if hit.Instance < 0 || hit.Instance >= len(st.points) {
			return nil, series.InvalidIndex, false
		}
		return st.series, hit.Instance, true
	}
	for i, h := range st.handles {
		if h == hit.Handle {
			return st.series, i, true
		}
	}
	return nil, series.InvalidIndex, false
}

// SetSelection moves the indicator onto item i of s. A nil series or an
// invalid index hides it.
func (g *Generator) SetSelection(s *series.Scatter, i int) {
	g.selSeries, g.selIndex = s, i
	g.updateIndicator()
}

// Indicator returns the indicator primitive, invalid until a selection
// was made.
func (g *Generator) Indicator() scene.Handle { return g.indicator }

func (g *Generator) updateIndicator() {
	pt, ok := g.selectedPoint()
	if !ok {
		if g.indicator.Valid() {
			g.backend.SetVisible(g.indicator, false)
		}
		return
	}
	mesh := g.selSeries.Style().Mesh
	if g.indicator.Valid() && g.indMesh != mesh {
		g.backend.DestroyPrimitive(g.indicator)
		g.indicator = scene.Handle{}
	}
	if !g.indicator.Valid() {
		h, err := g.backend.CreatePrimitive(scene.KindItem, mesh)
		if err != nil {
			logging.Logger().Warn("selection indicator unavailable", "error", err)
			return
		}
		g.indicator, g.indMesh = h, mesh
		g.backend.SetPickable(h, false)
	}
	t := pt.Transform
	t.Scale = t.Scale.Mul(IndicatorScale)
	style := g.selSeries.Style()
	g.backend.SetTransform(g.indicator, t)
	g.backend.SetMaterial(g.indicator, style.Material(series.RoleSingleHighlight, 1, g.states[g.selSeries].textures))
	g.backend.SetVisible(g.indicator, true)
}

func (g *Generator) selectedPoint() (Point, bool) {
	if g.selSeries == nil || g.selIndex < 0 {
		return Point{}, false
	}
	st, ok := g.states[g.selSeries]
	if !ok || g.selIndex >= len(st.points) {
		return Point{}, false
	}
	pt := st.points[g.selIndex]
	return pt, !pt.Hidden
}

// Remove destroys the primitives of s and drops a selection on it.
func (g *Generator) Remove(s *series.Scatter) {
	st, ok := g.states[s]
	if !ok {
		return
	}
	g.destroy(st)
	series.ReleaseTextures(g.backend, &st.textures)
	delete(g.states, s)
	if g.selSeries == s {
		g.SetSelection(nil, series.InvalidIndex)
	}
}

func (g *Generator) Close() {
	for s := range g.states {
		g.Remove(s)
	}
	if g.indicator.Valid() {
		g.backend.DestroyPrimitive(g.indicator)
		g.indicator = scene.Handle{}
	}
}
