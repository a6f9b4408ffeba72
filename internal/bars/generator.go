package bars

import (
	"fmt"

	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

// StateFunc reports the selection state of a bar, as a colour role.
type StateFunc func(s *series.Bar, c series.Coord) series.Role

type item struct {
	handle scene.Handle
	coord  series.Coord
	bar    Bar
}

type seriesState struct {
	series      *series.Bar
	items       []item
	instanced   scene.Handle
	instances   []scene.Instance
	bars        []Bar
	textures    series.Textures
	baked       bool
	visualIndex int
	regenerate  bool
}

// Generator owns the primitives of every bar series. In instanced mode a
// series is a single primitive with one instance per bar.
type Generator struct {
	backend   scene.Backend
	instanced bool
	states    map[*series.Bar]*seriesState
	byHandle  map[scene.Handle]*seriesState
	order     []*series.Bar
}

func NewGenerator(b scene.Backend, instanced bool) *Generator {
	return &Generator{
		backend:   b,
		instanced: instanced,
		states:    make(map[*series.Bar]*seriesState),
		byHandle:  make(map[scene.Handle]*seriesState),
	}
}

func (g *Generator) Instanced() bool { return g.instanced }

// Regenerate drops the primitives of s so the next Sync creates them anew.
func (g *Generator) Regenerate(s *series.Bar) {
	if st, ok := g.states[s]; ok {
		st.regenerate = true
	}
}

// Restyle rebakes the gradient textures of s on the next Sync.
func (g *Generator) Restyle(s *series.Bar) {
	if st, ok := g.states[s]; ok {
		st.baked = false
	}
}

// Sync brings the primitives of list in line with their data and places
// them. Only series whose item count changed are recreated.
func (g *Generator) Sync(list []*series.Bar, p Params, state StateFunc) error {
	g.order = list
	visible := 0
	for _, s := range list {
		st, ok := g.states[s]
		if !ok {
			st = &seriesState{series: s, regenerate: true}
			g.states[s] = st
		}
		if !st.regenerate && g.count(st) != s.Proxy.ItemCount() {
			logging.Logger().Warn("bar count differs from data, regenerating",
				"series", s.Name(), "bars", g.count(st), "items", s.Proxy.ItemCount())
			st.regenerate = true
		}
		if st.regenerate {
			g.destroy(st)
			if err := g.create(st); err != nil {
				return err
			}
			st.regenerate = false
		}
		st.visualIndex = -1
		if s.Visible() {
			st.visualIndex = visible
			visible++
		}
	}

	layout := NewLayout(p, visible)
	for _, s := range list {
		st := g.states[s]
		if !st.baked {
			series.ReleaseTextures(g.backend, &st.textures)
			tex, err := series.BakeTextures(g.backend, s.Style())
			if err != nil {
				return fmt.Errorf("bake %q gradients: %w", s.Name(), err)
			}
			st.textures, st.baked = tex, true
		}
		st.bars = st.bars[:0]
		if g.instanced {
			g.placeInstanced(st, layout, state)
		} else {
			g.place(st, layout, state)
		}
	}
	return nil
}

func (g *Generator) count(st *seriesState) int {
	if g.instanced {
		return len(st.instances)
	}
	return len(st.items)
}

func (g *Generator) create(st *seriesState) error {
	s := st.series
	mesh := s.Style().Mesh
	if g.instanced {
		h, err := g.backend.CreatePrimitive(scene.KindInstanced, mesh)
		if err != nil {
			return fmt.Errorf("create bars %q: %w", s.Name(), err)
		}
		st.instanced = h
		st.instances = make([]scene.Instance, s.Proxy.ItemCount())
		g.byHandle[h] = st
		return nil
	}
	st.items = st.items[:0]
	for r, row := range s.Proxy.Rows() {
		for c := range row {
			h, err := g.backend.CreatePrimitive(scene.KindItem, mesh)
			if err != nil {
				return fmt.Errorf("create bar %q (%d,%d): %w", s.Name(), r, c, err)
			}
			st.items = append(st.items, item{handle: h, coord: series.Coord{Row: r, Col: c}})
			g.byHandle[h] = st
		}
	}
	return nil
}

func (g *Generator) destroy(st *seriesState) {
	for _, it := range st.items {
		g.backend.DestroyPrimitive(it.handle)
		delete(g.byHandle, it.handle)
	}
	st.items = nil
	if st.instanced.Valid() {
		g.backend.DestroyPrimitive(st.instanced)
		delete(g.byHandle, st.instanced)
		st.instanced = scene.Handle{}
	}
	st.instances = nil
}

func (g *Generator) place(st *seriesState, l Layout, state StateFunc) {
	s := st.series
	style := s.Style()
	for i := range st.items {
		it := &st.items[i]
		v, _ := s.Proxy.ItemAt(it.coord.Row, it.coord.Col)
		it.bar = l.Place(it.coord, st.visualIndex, v.Value, v.Rotation, style.MeshRotation)
		st.bars = append(st.bars, it.bar)

		visible := s.Visible() && !it.bar.Hidden()
		g.backend.SetTransform(it.handle, it.bar.Transform)
		g.backend.SetVisible(it.handle, visible)
		g.backend.SetPickable(it.handle, visible)
		g.backend.SetMaterial(it.handle, style.Material(state(s, it.coord),
			RangeGradientPosition(it.bar.Transform.Position[1]), st.textures))
	}
}

func (g *Generator) placeInstanced(st *seriesState, l Layout, state StateFunc) {
	s := st.series
	style := s.Style()
	k := 0
	for r, row := range s.Proxy.Rows() {
		for c, v := range row {
			coord := series.Coord{Row: r, Col: c}
			b := l.Place(coord, st.visualIndex, v.Value, v.Rotation, style.MeshRotation)
			st.bars = append(st.bars, b)
			m := style.Material(state(s, coord), RangeGradientPosition(b.Transform.Position[1]), st.textures)
			st.instances[k] = scene.Instance{Transform: b.Transform, Color: m.Color, Hidden: b.Hidden()}
			k++
		}
	}
	g.backend.SetInstances(st.instanced, st.instances)
	g.backend.SetVisible(st.instanced, s.Visible())
	g.backend.SetPickable(st.instanced, s.Visible())
	g.backend.SetMaterial(st.instanced, scene.Material{Texture: st.textures[series.RoleBase], Smooth: style.MeshSmooth})
}

// Recolor reapplies selection colouring without placing bars again.
func (g *Generator) Recolor(state StateFunc) {
	for _, s := range g.order {
		st, ok := g.states[s]
		if !ok || len(st.bars) != g.count(st) {
			continue
		}
		style := s.Style()
		if !g.instanced {
			for _, it := range st.items {
				g.backend.SetMaterial(it.handle, style.Material(state(s, it.coord),
					RangeGradientPosition(it.bar.Transform.Position[1]), st.textures))
			}
			continue
		}
		k := 0
		for r, row := range s.Proxy.Rows() {
			for c := range row {
				if k >= len(st.instances) {
					break
				}
				m := style.Material(state(s, series.Coord{Row: r, Col: c}),
					RangeGradientPosition(st.bars[k].Transform.Position[1]), st.textures)
				st.instances[k].Color = m.Color
				k++
			}
		}
		g.backend.SetInstances(st.instanced, st.instances)
	}
}

// Lookup maps a pick hit back to its series and coordinate.
func (g *Generator) Lookup(hit scene.Hit) (*series.Bar, series.Coord, bool) {
	st, ok := g.byHandle[hit.Handle]
	if !ok || !st.series.Visible() {
		return nil, series.InvalidCoord, false
	}
	if g.instanced {
		if hit.Instance < 0 || hit.Instance >= len(st.instances) {
			return nil, series.InvalidCoord, false
		}
		return st.series, instanceCoord(st.series, hit.Instance), true
	}
	for _, it := range st.items {
		if it.handle == hit.Handle {
			return st.series, it.coord, true
		}
	}
	return nil, series.InvalidCoord, false
}

func instanceCoord(s *series.Bar, k int) series.Coord {
	for r, row := range s.Proxy.Rows() {
		if k < len(row) {
			return series.Coord{Row: r, Col: k}
		}
		k -= len(row)
	}
	return series.InvalidCoord
}

// Bars returns the last placement of every item of s in row major order.
func (g *Generator) Bars(s *series.Bar) []Bar {
	st, ok := g.states[s]
	if !ok {
		return nil
	}
	return st.bars
}

// Handle returns the primitive of the bar at c, for per item mode.
func (g *Generator) Handle(s *series.Bar, c series.Coord) (scene.Handle, bool) {
	st, ok := g.states[s]
	if !ok {
		return scene.Handle{}, false
	}
	for _, it := range st.items {
		if it.coord == c {
			return it.handle, true
		}
	}
	return scene.Handle{}, false
}

// Remove destroys the primitives of s.
func (g *Generator) Remove(s *series.Bar) {
	st, ok := g.states[s]
	if !ok {
		return
	}
	g.destroy(st)
	series.ReleaseTextures(g.backend, &st.textures)
	delete(g.states, s)
}

// Close destroys every primitive the generator created.
func (g *Generator) Close() {
	for s := range g.states {
		g.Remove(s)
	}
}
