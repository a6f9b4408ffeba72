// Package series holds the datasets a graph renders together with their
// visual style and selection.
package series

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/scene"
)

type Kind int

const (
	KindBar Kind = iota
	KindScatter
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindScatter:
		return "scatter"
	case KindSurface:
		return "surface"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindBar, KindScatter, KindSurface} {
		if k.String() == s {
			return k, true
		}
	}
	return KindBar, false
}

type ColorStyle int

const (
	ColorUniform ColorStyle = iota
	ColorObjectGradient
	ColorRangeGradient
)

func (c ColorStyle) String() string {
	switch c {
	case ColorObjectGradient:
		return "object"
	case ColorRangeGradient:
		return "range"
	}
	return "uniform"
}

func ParseColorStyle(s string) (ColorStyle, bool) {
	for _, c := range []ColorStyle{ColorUniform, ColorObjectGradient, ColorRangeGradient} {
		if c.String() == s {
			return c, true
		}
	}
	return ColorUniform, false
}

// Coord addresses a bar or surface grid point. Scatter items use Col for
// the item index.
type Coord struct {
	Row, Col int
}

var InvalidCoord = Coord{Row: -1, Col: -1}

const InvalidIndex = -1

func (c Coord) Valid() bool { return c.Row >= 0 && c.Col >= 0 }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Style is the look of one series.
type Style struct {
	Mesh         scene.Mesh
	MeshSmooth   bool
	MeshRotation mgl64.Quat
	ColorStyle   ColorStyle

	BaseColor               colorful.Color
	BaseGradient            gradient.Gradient
	SingleHighlightColor    colorful.Color
	SingleHighlightGradient gradient.Gradient
	MultiHighlightColor     colorful.Color
	MultiHighlightGradient  gradient.Gradient

	// ItemSize is the scatter point size; zero derives it from the
	// number of visible points.
	ItemSize float64
}

var (
	defaultBase  = gradient.MustParseHex("#80c342")
	defaultHigh  = gradient.MustParseHex("#14aaff")
	defaultMulti = gradient.MustParseHex("#6400aa")
)

func DefaultStyle(k Kind) Style {
	s := Style{
		Mesh:                    scene.MeshBevelBar,
		MeshRotation:            mgl64.QuatIdent(),
		BaseColor:               defaultBase,
		BaseGradient:            gradient.Linear(colorful.Color{}, defaultBase),
		SingleHighlightColor:    defaultHigh,
		SingleHighlightGradient: gradient.Linear(colorful.Color{}, defaultHigh),
		MultiHighlightColor:     defaultMulti,
		MultiHighlightGradient:  gradient.Linear(colorful.Color{}, defaultMulti),
	}
	switch k {
	case KindScatter:
		s.Mesh = scene.MeshSphere
	case KindSurface:
		s.Mesh = scene.MeshUser
		s.ColorStyle = ColorRangeGradient
	}
	return s
}

func (s Style) UsesGradient() bool { return s.ColorStyle != ColorUniform }

// Change flags series edits for the next sync pass.
type Change uint8

const (
	ChangeVisuals Change = 1 << iota
	ChangeMesh
	ChangeVisibility
)

// Series is one dataset plus its visual style.
type Series interface {
	Kind() Kind
	Name() string
	Style() Style
	SetStyle(Style)
	Visible() bool
	SetVisible(bool)
	TakeChanges() Change
	// TakeDataChanges consumes the proxy's structural change set.
	TakeDataChanges() data.Change
}

type base struct {
	name    string
	style   Style
	visible bool
	changes Change
}

func newBase(name string, k Kind) base {
	return base{name: name, style: DefaultStyle(k), visible: true}
}

func (b *base) Name() string  { return b.name }
func (b *base) Style() Style  { return b.style }
func (b *base) Visible() bool { return b.visible }

func (b *base) SetStyle(s Style) {
	if s.Mesh != b.style.Mesh || s.MeshSmooth != b.style.MeshSmooth {
		b.changes |= ChangeMesh
	}
	b.style = s
	b.changes |= ChangeVisuals
}

func (b *base) SetVisible(v bool) {
	if v == b.visible {
		return
	}
	b.visible = v
	b.changes |= ChangeVisibility
}

func (b *base) TakeChanges() Change {
	c := b.changes
	b.changes = 0
	return c
}

// Bar is a bar series.
type Bar struct {
	base
	Proxy    *data.BarProxy
	selected Coord
}

func NewBar(name string, proxy *data.BarProxy) *Bar {
	if proxy == nil {
		proxy = data.NewBarProxy()
	}
	return &Bar{base: newBase(name, KindBar), Proxy: proxy, selected: InvalidCoord}
}

func (s *Bar) Kind() Kind                   { return KindBar }
func (s *Bar) TakeDataChanges() data.Change { return s.Proxy.TakeChanges() }
func (s *Bar) Selected() Coord              { return s.selected }
func (s *Bar) SetSelected(c Coord)          { s.selected = c }

// Scatter is a scatter series.
type Scatter struct {
	base
	Proxy    *data.ScatterProxy
	selected int
}

func NewScatter(name string, proxy *data.ScatterProxy) *Scatter {
	if proxy == nil {
		proxy = data.NewScatterProxy()
	}
	return &Scatter{base: newBase(name, KindScatter), Proxy: proxy, selected: InvalidIndex}
}

func (s *Scatter) Kind() Kind                   { return KindScatter }
func (s *Scatter) TakeDataChanges() data.Change { return s.Proxy.TakeChanges() }
func (s *Scatter) Selected() int                { return s.selected }
func (s *Scatter) SetSelected(i int)            { s.selected = i }

type DrawMode int

const (
	DrawSurface DrawMode = 1 << iota
	DrawWireframe

	DrawSurfaceAndWireframe = DrawSurface | DrawWireframe
)

func (m DrawMode) String() string {
	switch m {
	case DrawSurface:
		return "surface"
	case DrawWireframe:
		return "wireframe"
	case DrawSurfaceAndWireframe:
		return "both"
	}
	return "none"
}

func ParseDrawMode(s string) (DrawMode, bool) {
	for _, m := range []DrawMode{DrawSurface, DrawWireframe, DrawSurfaceAndWireframe} {
		if m.String() == s {
			return m, true
		}
	}
	return DrawSurfaceAndWireframe, false
}

// Surface is a surface series.
type Surface struct {
	base
	Proxy       *data.SurfaceProxy
	FlatShading bool
	DrawMode    DrawMode
	selected    Coord
}

func NewSurface(name string, proxy *data.SurfaceProxy) *Surface {
	if proxy == nil {
		proxy = data.NewSurfaceProxy()
	}
	return &Surface{
		base:     newBase(name, KindSurface),
		Proxy:    proxy,
		DrawMode: DrawSurfaceAndWireframe,
		selected: InvalidCoord,
	}
}

func (s *Surface) Kind() Kind                   { return KindSurface }
func (s *Surface) TakeDataChanges() data.Change { return s.Proxy.TakeChanges() }
func (s *Surface) Selected() Coord              { return s.selected }
func (s *Surface) SetSelected(c Coord)          { s.selected = c }

// SetFlatShading switches between shared and per triangle vertices.
func (s *Surface) SetFlatShading(flat bool) {
	if flat == s.FlatShading {
		return
	}
	s.FlatShading = flat
	s.changes |= ChangeMesh
}
