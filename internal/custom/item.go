// Package custom places user supplied items and labels in the data space
// of a graph, next to the series.
package custom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/scene"
)

// Change is the set of pending edits of an item or label.
type Change uint8

const (
	ChangePlacement Change = 1 << iota
	ChangeVisuals
	ChangeMesh
	ChangeTexture
)

// DefaultScaling is the scale of a new item.
var DefaultScaling = mgl64.Vec3{0.1, 0.1, 0.1}

var defaultColor = gradient.MustParseHex("#ffffff")

// Item is a mesh placed at a data position. Position is in axis units
// unless PositionAbsolute is set, in which case it is a scene position.
// Scaling is in scene units unless ScalingAbsolute is cleared, in which
// case it is in axis units.
type Item struct {
	mesh     scene.Mesh
	texture  *scene.Texture
	position mgl64.Vec3
	scaling  mgl64.Vec3
	rotation mgl64.Quat
	color    colorful.Color
	visible  bool

	positionAbsolute bool
	scalingAbsolute  bool

	changes Change
}

func NewItem(mesh scene.Mesh, position mgl64.Vec3) *Item {
	return &Item{
		mesh:            mesh,
		position:        position,
		scaling:         DefaultScaling,
		rotation:        mgl64.QuatIdent(),
		color:           defaultColor,
		visible:         true,
		scalingAbsolute: true,
		changes:         ChangePlacement | ChangeVisuals | ChangeMesh,
	}
}

func (it *Item) Mesh() scene.Mesh        { return it.mesh }
func (it *Item) Position() mgl64.Vec3    { return it.position }
func (it *Item) Scaling() mgl64.Vec3     { return it.scaling }
func (it *Item) Rotation() mgl64.Quat    { return it.rotation }
func (it *Item) Color() colorful.Color   { return it.color }
func (it *Item) Visible() bool           { return it.visible }
func (it *Item) PositionAbsolute() bool  { return it.positionAbsolute }
func (it *Item) ScalingAbsolute() bool   { return it.scalingAbsolute }
func (it *Item) Texture() *scene.Texture { return it.texture }

func (it *Item) SetMesh(m scene.Mesh) {
	if m != it.mesh {
		it.mesh = m
		it.changes |= ChangeMesh
	}
}

func (it *Item) SetPosition(p mgl64.Vec3) {
	if p != it.position {
		it.position = p
		it.changes |= ChangePlacement
	}
}

func (it *Item) SetScaling(s mgl64.Vec3) {
	if s != it.scaling {
		it.scaling = s
		it.changes |= ChangePlacement
	}
}

func (it *Item) SetRotation(q mgl64.Quat) {
	if q != it.rotation {
		it.rotation = q
		it.changes |= ChangePlacement
	}
}

// SetRotationAxisAndAngle rotates the item by degrees about axis.
func (it *Item) SetRotationAxisAndAngle(axis mgl64.Vec3, degrees float64) {
	it.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(degrees), axis.Normalize()))
}

func (it *Item) SetColor(c colorful.Color) {
	if c != it.color {
		it.color = c
		it.changes |= ChangeVisuals
	}
}

func (it *Item) SetVisible(v bool) {
	if v != it.visible {
		it.visible = v
		it.changes |= ChangePlacement
	}
}

func (it *Item) SetPositionAbsolute(a bool) {
	if a != it.positionAbsolute {
		it.positionAbsolute = a
		it.changes |= ChangePlacement
	}
}

func (it *Item) SetScalingAbsolute(a bool) {
	if a != it.scalingAbsolute {
		it.scalingAbsolute = a
		it.changes |= ChangePlacement
	}
}

// SetTexture replaces the item texture; nil removes it.
func (it *Item) SetTexture(t *scene.Texture) {
	it.texture = t
	it.changes |= ChangeTexture
}

// TakeChanges returns and resets the pending edits.
func (it *Item) TakeChanges() Change {
	c := it.changes
	it.changes = 0
	return c
}

// Label is text anchored at a data position. Labels have no primitive;
// the renderer draws them from the frame.
type Label struct {
	text       string
	position   mgl64.Vec3
	color      colorful.Color
	background colorful.Color
	visible    bool

	positionAbsolute bool

	changes Change
}

func NewLabel(text string, position mgl64.Vec3) *Label {
	return &Label{
		text:       text,
		position:   position,
		color:      defaultColor,
		background: colorful.Color{},
		visible:    true,
		changes:    ChangePlacement | ChangeVisuals,
	}
}

func (l *Label) Text() string                    { return l.text }
func (l *Label) Position() mgl64.Vec3            { return l.position }
func (l *Label) Color() colorful.Color           { return l.color }
func (l *Label) BackgroundColor() colorful.Color { return l.background }
func (l *Label) Visible() bool                   { return l.visible }
func (l *Label) PositionAbsolute() bool          { return l.positionAbsolute }

func (l *Label) SetText(s string) {
	if s != l.text {
		l.text = s
		l.changes |= ChangeVisuals
	}
}

func (l *Label) SetPosition(p mgl64.Vec3) {
	if p != l.position {
		l.position = p
		l.changes |= ChangePlacement
	}
}

func (l *Label) SetColor(c colorful.Color) {
	if c != l.color {
		l.color = c
		l.changes |= ChangeVisuals
	}
}

func (l *Label) SetBackgroundColor(c colorful.Color) {
	if c != l.background {
		l.background = c
		l.changes |= ChangeVisuals
	}
}

func (l *Label) SetVisible(v bool) {
	if v != l.visible {
		l.visible = v
		l.changes |= ChangePlacement
	}
}

func (l *Label) SetPositionAbsolute(a bool) {
	if a != l.positionAbsolute {
		l.positionAbsolute = a
		l.changes |= ChangePlacement
	}
}

// TakeChanges returns and resets the pending edits.
func (l *Label) TakeChanges() Change {
	c := l.changes
	l.changes = 0
	return c
}
