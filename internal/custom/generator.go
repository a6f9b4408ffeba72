package custom

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/logging"
	"github.com/san-kum/datavis3d/internal/scene"
)

// Mapper maps data positions through the helpers of the graph axes.
type Mapper struct {
	X, Y, Z *axis.Helper
}

func (m Mapper) helpers() [3]*axis.Helper { return [3]*axis.Helper{m.X, m.Y, m.Z} }

// Position returns the scene position of p and whether p lies inside
// every axis. Absolute positions are taken as they are.
func (m Mapper) Position(p mgl64.Vec3, absolute bool) (mgl64.Vec3, bool) {
	if absolute {
		return p, true
	}
	var out mgl64.Vec3
	inside := true
	for i, h := range m.helpers() {
		out[i] = h.SceneAt(p[i])
		inside = inside && h.Contains(p[i])
	}
	return out, inside
}

// Scaling converts s to scene units. Absolute scaling is already in scene
// units; relative scaling is in axis units.
func (m Mapper) Scaling(s mgl64.Vec3, absolute bool) mgl64.Vec3 {
	if absolute {
		return s
	}
	for i, h := range m.helpers() {
		s[i] *= h.UnitScale()
	}
	return s
}

// PlacedLabel is a custom label resolved into the scene.
type PlacedLabel struct {
	Index      int
	Text       string
	Position   mgl64.Vec3
	Color      color.RGBA
	Background color.RGBA
}

// PlaceLabels resolves the visible labels that fall inside the axes.
func PlaceLabels(labels []*Label, m Mapper) []PlacedLabel {
	var out []PlacedLabel
	for i, l := range labels {
		l.TakeChanges()
		if !l.Visible() {
			continue
		}
		pos, inside := m.Position(l.Position(), l.PositionAbsolute())
		if !inside {
			continue
		}
		out = append(out, PlacedLabel{
			Index:      i,
			Text:       l.Text(),
			Position:   pos,
			Color:      gradient.ToRGBA(l.Color()),
			Background: gradient.ToRGBA(l.BackgroundColor()),
		})
	}
	return out
}

type entry struct {
	handle  scene.Handle
	mesh    scene.Mesh
	texture scene.TextureID
}

// Generator owns one primitive per custom item.
type Generator struct {
	backend  scene.Backend
	entries  map[*Item]*entry
	byHandle map[scene.Handle]*Item
}

func NewGenerator(b scene.Backend) *Generator {
	return &Generator{
		backend:  b,
		entries:  make(map[*Item]*entry),
		byHandle: make(map[scene.Handle]*Item),
	}
}

// Sync places the items of list. Unchanged items keep their placement
// unless all is set, which the graph does when the axes or scaling moved.
func (g *Generator) Sync(list []*Item, m Mapper, all bool) error {
	for _, it := range list {
		c := it.TakeChanges()
		e, ok := g.entries[it]
		if ok && e.mesh != it.Mesh() {
			g.destroy(it, e)
			ok = false
		}
		if !ok {
			h, err := g.backend.CreatePrimitive(scene.KindItem, it.Mesh())
			if err != nil {
				return err
			}
			e = &entry{handle: h, mesh: it.Mesh()}
			g.entries[it] = e
			g.byHandle[h] = it
			c |= ChangePlacement | ChangeVisuals | ChangeTexture
		}
		if c&ChangeTexture != 0 {
			g.releaseTexture(e)
			if t := it.Texture(); t != nil {
				e.texture = g.backend.CreateTexture(*t)
			}
			c |= ChangeVisuals
		}
		if c&ChangeVisuals != 0 {
			g.backend.SetMaterial(e.handle, scene.Material{Color: gradient.ToRGBA(it.Color()), Texture: e.texture})
		}
		if all || c&ChangePlacement != 0 {
			g.place(it, e, m)
		}
	}
	return nil
}

func (g *Generator) place(it *Item, e *entry, m Mapper) {
	pos, inside := m.Position(it.Position(), it.PositionAbsolute())
	visible := it.Visible() && inside
	g.backend.SetTransform(e.handle, scene.Transform{
		Position: pos,
		Rotation: it.Rotation(),
		Scale:    m.Scaling(it.Scaling(), it.ScalingAbsolute()),
	})
	g.backend.SetVisible(e.handle, visible)
	g.backend.SetPickable(e.handle, visible)
}

// Lookup maps a pick hit to the item it landed on.
func (g *Generator) Lookup(h scene.Hit) (*Item, bool) {
	it, ok := g.byHandle[h.Handle]
	return it, ok
}

// Handle returns the primitive of it, invalid before its first Sync.
func (g *Generator) Handle(it *Item) scene.Handle {
	if e, ok := g.entries[it]; ok {
		return e.handle
	}
	return scene.Handle{}
}

func (g *Generator) releaseTexture(e *entry) {
	if e.texture != 0 {
		g.backend.DestroyTexture(e.texture)
		e.texture = 0
	}
}

func (g *Generator) destroy(it *Item, e *entry) {
	if err := g.backend.DestroyPrimitive(e.handle); err != nil {
		logging.Logger().Debug("destroy custom item", "handle", e.handle.String(), "error", err)
	}
	g.releaseTexture(e)
	delete(g.byHandle, e.handle)
	delete(g.entries, it)
}

// Remove destroys the primitive and texture of it.
func (g *Generator) Remove(it *Item) {
	if e, ok := g.entries[it]; ok {
		g.destroy(it, e)
	}
}

func (g *Generator) Close() {
	for it, e := range g.entries {
		g.destroy(it, e)
	}
}
