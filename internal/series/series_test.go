package series

import (
	"testing"

	"github.com/san-kum/datavis3d/internal/scene"
)

func TestStyleChanges(t *testing.T) {
	s := NewBar("sales", nil)
	if s.TakeChanges() != 0 {
		t.Error("new series should have no pending changes")
	}

	st := s.Style()
	st.BaseColor = st.SingleHighlightColor
	s.SetStyle(st)
	if c := s.TakeChanges(); c != ChangeVisuals {
		t.Errorf("expected visuals change, got %b", c)
	}

	st.Mesh = scene.MeshCylinder
	s.SetStyle(st)
	if c := s.TakeChanges(); c&ChangeMesh == 0 {
		t.Errorf("expected mesh change, got %b", c)
	}

	s.SetVisible(true)
	if s.TakeChanges() != 0 {
		t.Error("unchanged visibility should not be flagged")
	}
	s.SetVisible(false)
	if s.TakeChanges() != ChangeVisibility {
		t.Error("expected visibility change")
	}
}

func TestDefaults(t *testing.T) {
	if NewBar("b", nil).Selected() != InvalidCoord {
		t.Error("bar selection should start invalid")
	}
	if NewScatter("s", nil).Selected() != InvalidIndex {
		t.Error("scatter selection should start invalid")
	}
	surf := NewSurface("f", nil)
	if surf.DrawMode != DrawSurfaceAndWireframe || !surf.Style().UsesGradient() {
		t.Errorf("unexpected surface defaults %v %v", surf.DrawMode, surf.Style().ColorStyle)
	}
	surf.SetFlatShading(true)
	if surf.TakeChanges() != ChangeMesh {
		t.Error("flat shading should flag a mesh change")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindBar, KindScatter, KindSurface} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("round trip failed for %v", k)
		}
	}
	if _, ok := ParseKind("pie"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestParseStyleNames(t *testing.T) {
	if c, ok := ParseColorStyle("range"); !ok || c != ColorRangeGradient {
		t.Errorf("expected range gradient, got %v", c)
	}
	if m, ok := ParseDrawMode("wireframe"); !ok || m != DrawWireframe {
		t.Errorf("expected wireframe, got %v", m)
	}
	if _, ok := ParseDrawMode("dots"); ok {
		t.Error("unknown draw mode should not parse")
	}
}

func TestMaterial(t *testing.T) {
	st := DefaultStyle(KindBar)
	m := st.Material(RoleSingleHighlight, 0.3, Textures{})
	if m.Texture != 0 || m.Color.B != 255 {
		t.Errorf("expected uniform highlight colour, got %+v", m)
	}

	rec := scene.NewRecorder()
	st.ColorStyle = ColorRangeGradient
	tex, err := BakeTextures(rec, st)
	if err != nil {
		t.Fatal(err)
	}
	if tex[RoleBase] == 0 || tex[RoleMultiHighlight] == 0 {
		t.Fatalf("expected baked textures, got %v", tex)
	}

	low := st.Material(RoleBase, 0, tex)
	high := st.Material(RoleBase, 1, tex)
	if low.Texture != tex[RoleBase] || low.GradientPosition != 0 {
		t.Errorf("unexpected range material %+v", low)
	}
	if low.Color.G >= high.Color.G {
		t.Errorf("expected gradient to brighten, got %v and %v", low.Color, high.Color)
	}
}
