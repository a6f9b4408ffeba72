package gradient

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestAtClampsAndBlends(t *testing.T) {
	g := New(
		Stop{1, colorful.Color{R: 1}},
		Stop{0, colorful.Color{B: 1}},
	)

	if c := g.At(-1); c.B != 1 || c.R != 0 {
		t.Errorf("expected first stop below range, got %+v", c)
	}
	if c := g.At(2); c.R != 1 || c.B != 0 {
		t.Errorf("expected last stop above range, got %+v", c)
	}
	c := g.At(0.25)
	if math.Abs(c.R-0.25) > 1e-9 || math.Abs(c.B-0.75) > 1e-9 {
		t.Errorf("expected quarter blend, got %+v", c)
	}
}

func TestTexture(t *testing.T) {
	g := Linear(colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1})
	tex, err := g.Texture(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(tex) != 3 {
		t.Fatalf("expected 3 texels, got %d", len(tex))
	}
	if tex[0].R != 0 || tex[2].R != 255 || tex[2].A != 255 {
		t.Errorf("unexpected strip ends %v %v", tex[0], tex[2])
	}
	if tex[1].R < 127 || tex[1].R > 128 {
		t.Errorf("expected mid grey, got %v", tex[1])
	}

	if _, err := (Gradient{}).Texture(4); err != ErrNoStops {
		t.Errorf("expected ErrNoStops, got %v", err)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if ToRGBA(c).R != 255 || ToRGBA(c).G != 0 {
		t.Errorf("expected red, got %v", ToRGBA(c))
	}
	if _, err := ParseHex("not a colour"); err == nil {
		t.Error("expected error for invalid hex")
	}
}
