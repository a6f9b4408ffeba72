// Package gradient blends colour stops into lookup colours and textures.
package gradient

import (
	"errors"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrNoStops = errors.New("gradient: no stops")

// Stop is a colour at a position in [0,1].
type Stop struct {
	Position float64
	Color    colorful.Color
}

// Gradient is an ordered copy of its stops.
type Gradient struct {
	stops []Stop
}

func New(stops ...Stop) Gradient {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return Gradient{stops: sorted}
}

// Linear is a two stop gradient from a to b.
func Linear(a, b colorful.Color) Gradient {
	return New(Stop{0, a}, Stop{1, b})
}

func (g Gradient) Stops() []Stop { return g.stops }
func (g Gradient) Empty() bool   { return len(g.stops) == 0 }

// At returns the colour at t, clamped to the first and last stop.
func (g Gradient) At(t float64) colorful.Color {
	switch len(g.stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return g.stops[0].Color
	}

	idx := sort.Search(len(g.stops), func(i int) bool {
		return g.stops[i].Position >= t
	})
	if idx == 0 {
		return g.stops[0].Color
	}
	if idx >= len(g.stops) {
		return g.stops[len(g.stops)-1].Color
	}

	a, b := g.stops[idx-1], g.stops[idx]
	if a.Position == b.Position {
		return a.Color
	}
	return a.Color.BlendRgb(b.Color, (t-a.Position)/(b.Position-a.Position)).Clamped()
}

// RGBA is At converted to an opaque 8 bit colour.
func (g Gradient) RGBA(t float64) color.RGBA {
	return ToRGBA(g.At(t))
}

// Texture samples the gradient into a horizontal strip of width texels.
func (g Gradient) Texture(width int) ([]color.RGBA, error) {
	if g.Empty() {
		return nil, ErrNoStops
	}
	if width < 1 {
		width = 1
	}
	out := make([]color.RGBA, width)
	for i := range out {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		out[i] = g.RGBA(t)
	}
	return out, nil
}

func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseHex reads "#rrggbb" or "#rgb".
func ParseHex(s string) (colorful.Color, error) {
	return colorful.Hex(s)
}

// MustParseHex is ParseHex for literals.
func MustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
