package surface

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

// PointerScale is the size of the selection pointer.
const PointerScale = 0.03

type entry struct {
	series  *series.Surface
	handle  scene.Handle
	mesh    Mesh
	texture scene.TextureID
	dirty   bool
}

// Generator owns one surface primitive per series and the shared
// selection pointer.
type Generator struct {
	backend  scene.Backend
	entries  map[*series.Surface]*entry
	byHandle map[scene.Handle]*entry
	pointer  scene.Handle
}

func NewGenerator(b scene.Backend) *Generator {
	return &Generator{
		backend:  b,
		entries:  make(map[*series.Surface]*entry),
		byHandle: make(map[scene.Handle]*entry),
	}
}

// MarkDirty forces a rebuild of s on the next Sync.
func (g *Generator) MarkDirty(s *series.Surface) {
	if e, ok := g.entries[s]; ok {
		e.dirty = true
	}
}

func (g *Generator) MarkAllDirty() {
	for _, e := range g.entries {
		e.dirty = true
	}
}

// Sync creates missing primitives and rebuilds every dirty mesh.
func (g *Generator) Sync(list []*series.Surface, h Helpers) error {
	for _, s := range list {
		e, ok := g.entries[s]
		if !ok {
			handle, err := g.backend.CreatePrimitive(scene.KindSurface, scene.MeshUser)
			if err != nil {
				return fmt.Errorf("create surface %q: %w", s.Name(), err)
			}
			e = &entry{series: s, handle: handle, dirty: true}
			g.entries[s] = e
			g.byHandle[handle] = e
		}
		if !e.dirty {
			continue
		}
		if err := g.rebuild(e, h); err != nil {
			return err
		}
		e.dirty = false
	}
	return nil
}

func (g *Generator) rebuild(e *entry, h Helpers) error {
	s := e.series
	st := s.Style()
	var grad gradient.Gradient
	if st.UsesGradient() {
		grad = st.BaseGradient
	}

	m, ok := Build(s.Proxy.Rows(), h, Options{Flat: s.FlatShading, Gradient: grad})
	e.mesh = m
	g.releaseTexture(e)
	if !ok {
		g.backend.SetVisible(e.handle, false)
		g.backend.SetPickable(e.handle, false)
		return nil
	}

	md := *m.Data
	if s.DrawMode&series.DrawSurface == 0 {
		md.Indices = nil
	}
	if s.DrawMode&series.DrawWireframe == 0 {
		md.GridIndices = nil
	}
	if err := g.backend.SetMesh(e.handle, &md); err != nil {
		return err
	}

	mat := scene.Material{Color: gradient.ToRGBA(st.BaseColor), Smooth: !s.FlatShading}
	if st.UsesGradient() {
		e.texture = g.backend.CreateTexture(m.Texture)
		mat.Texture = e.texture
		mat.Color = gradient.ToRGBA(grad.At(0.5))
	}
	g.backend.SetMaterial(e.handle, mat)
	g.backend.SetVisible(e.handle, s.Visible())
	g.backend.SetPickable(e.handle, s.Visible() && s.DrawMode&series.DrawSurface != 0)
	return nil
}

func (g *Generator) releaseTexture(e *entry) {
	if e.texture != 0 {
		g.backend.DestroyTexture(e.texture)
		e.texture = 0
	}
}

// Lookup maps a pick hit to the series and grid point under it.
func (g *Generator) Lookup(hit scene.Hit) (*series.Surface, series.Coord, bool) {
	e, ok := g.byHandle[hit.Handle]
	if !ok || hit.Vertex < 0 || hit.Vertex >= len(e.mesh.Coords) {
		return nil, series.InvalidCoord, false
	}
	return e.series, e.mesh.Coords[hit.Vertex], true
}

// Mesh returns the last built mesh of s.
func (g *Generator) Mesh(s *series.Surface) (Mesh, bool) {
	e, ok := g.entries[s]
	if !ok {
		return Mesh{}, false
	}
	return e.mesh, true
}

// SetSelection moves the pointer onto grid point c of s, or hides it.
func (g *Generator) SetSelection(s *series.Surface, c series.Coord, h Helpers) error {
	if !g.pointer.Valid() {
		p, err := g.backend.CreatePrimitive(scene.KindItem, scene.MeshSphere)
		if err != nil {
			return fmt.Errorf("create selection pointer: %w", err)
		}
		g.pointer = p
		g.backend.SetPickable(p, false)
	}
	if s == nil {
		return g.backend.SetVisible(g.pointer, false)
	}
	it, ok := s.Proxy.ItemAt(c.Row, c.Col)
	if !ok || !s.Visible() {
		return g.backend.SetVisible(g.pointer, false)
	}
	t := scene.IdentityTransform()
	t.Position = h.place(it)
	t.Scale = mgl64.Vec3{PointerScale, PointerScale, PointerScale}
	g.backend.SetTransform(g.pointer, t)
	g.backend.SetMaterial(g.pointer, scene.Material{Color: gradient.ToRGBA(s.Style().SingleHighlightColor)})
	return g.backend.SetVisible(g.pointer, true)
}

// Remove destroys the primitive of s.
func (g *Generator) Remove(s *series.Surface) {
	e, ok := g.entries[s]
	if !ok {
		return
	}
	g.releaseTexture(e)
	g.backend.DestroyPrimitive(e.handle)
	delete(g.byHandle, e.handle)
	delete(g.entries, s)
}

// Close destroys every primitive the generator created.
func (g *Generator) Close() {
	for s := range g.entries {
		g.Remove(s)
	}
	if g.pointer.Valid() {
		g.backend.DestroyPrimitive(g.pointer)
		g.pointer = scene.Handle{}
	}
}
