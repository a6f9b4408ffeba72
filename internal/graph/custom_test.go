package graph

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"

	"github.com/san-kum/datavis3d/internal/custom"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

func TestCustomItemOnBarGraph(t *testing.T) {
	Expect := NewWithT(t).Expect
	g, rec, s := barGraph(t, OptimizationDefault)
	it := custom.NewItem(scene.MeshSphere, mgl64.Vec3{0, 3, 0.25})
	Expect(g.AddCustomItem(it)).To(Equal(0))
	Expect(g.AddCustomItem(it)).To(Equal(0))
	Expect(g.CustomItems()).To(HaveLen(1))

	_, err := g.Sync()
	Expect(err).NotTo(HaveOccurred())
	p, ok := rec.Primitive(g.custom.Handle(it))
	Expect(ok).To(BeTrue())
	Expect(p.Transform.Position.ApproxEqual(mgl64.Vec3{-10, 1, 5})).To(BeTrue(), "got %v", p.Transform.Position)
	Expect(p.Visible).To(BeTrue())

	tgt, err := g.Pick(-10, 1.05)
	Expect(err).NotTo(HaveOccurred())
	Expect(tgt.Valid()).To(BeFalse())
	sel, i := g.SelectedCustomItem()
	Expect(sel).To(Equal(it))
	Expect(i).To(Equal(0))
	f, _ := g.Sync()
	Expect(f.CustomSelection).To(Equal(0))

	tgt, _ = g.Pick(10, 0.3)
	Expect(tgt.Series).To(Equal(series.Series(s)))
	Expect(tgt.Coord).To(Equal(series.Coord{Row: 0, Col: 1}))
	_, i = g.SelectedCustomItem()
	Expect(i).To(Equal(-1))
}

func TestCustomItemFollowsAxisRange(t *testing.T) {
	g, rec, _ := barGraph(t, OptimizationDefault)
	it := custom.NewItem(scene.MeshCube, mgl64.Vec3{1, 3, 1})
	g.AddCustomItem(it)
	g.Sync()

	g.AxisY().SetRange(-1, 7)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	p, _ := rec.Primitive(g.custom.Handle(it))
	if !approx(p.Transform.Position[1], 0) {
		t.Errorf("expected the item at mid height, got %f", p.Transform.Position[1])
	}

	g.AxisY().SetRange(-1, 2)
	g.Sync()
	if p, _ := rec.Primitive(g.custom.Handle(it)); p.Visible {
		t.Error("expected an item above the range to be hidden")
	}
}

func TestRemoveCustomItems(t *testing.T) {
	g, rec, _ := barGraph(t, OptimizationDefault)
	base := rec.Len()
	a := custom.NewItem(scene.MeshCube, mgl64.Vec3{0, 1, 0})
	b := custom.NewItem(scene.MeshCube, mgl64.Vec3{1, 1, 1})
	c := custom.NewItem(scene.MeshPyramid, mgl64.Vec3{1, 1, 1})
	for _, it := range []*custom.Item{a, b, c} {
		g.AddCustomItem(it)
	}
	g.Sync()
	if rec.Len() != base+7 {
		t.Fatalf("expected 3 custom primitives, got %d", rec.Len()-base-4)
	}
	g.selectedItem = 2

	if n := g.RemoveCustomItemsAt(mgl64.Vec3{1, 1, 1}); n != 2 {
		t.Errorf("expected 2 items removed, got %d", n)
	}
	if _, i := g.SelectedCustomItem(); i != -1 {
		t.Errorf("expected the selection dropped with its item, got %d", i)
	}
	if rec.Len() != base+5 {
		t.Errorf("expected one custom primitive left, got %d", rec.Len()-base-4)
	}

	g.RemoveCustomItem(b)
	g.RemoveCustomItem(a)
	if len(g.CustomItems()) != 0 || rec.Len() != base+4 {
		t.Errorf("expected no custom items left, got %d", len(g.CustomItems()))
	}
}

func TestCustomItemsReleasedOnClose(t *testing.T) {
	g, rec, _ := barGraph(t, OptimizationDefault)
	it := custom.NewItem(scene.MeshCube, mgl64.Vec3{0, 1, 0})
	tex := scene.Texture{Width: 1, Height: 1, Pix: []color.RGBA{{A: 255}}}
	it.SetTexture(&tex)
	g.AddCustomItem(it)
	g.Sync()
	g.Close()
	if rec.Len() != 0 || rec.TextureCount() != 0 {
		t.Errorf("expected an empty backend, got %d primitives and %d textures", rec.Len(), rec.TextureCount())
	}
}

func TestCustomLabelsInFrame(t *testing.T) {
	g, _, _ := barGraph(t, OptimizationDefault)
	in := custom.NewLabel("peak", mgl64.Vec3{1, 3, 1})
	out := custom.NewLabel("lost", mgl64.Vec3{5, 3, 1})
	if g.AddCustomLabel(in) != 0 || g.AddCustomLabel(out) != 1 || g.AddCustomLabel(in) != 0 {
		t.Fatal("expected stable label indexes")
	}
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(f.CustomLabels) != 1 {
		t.Fatalf("expected 1 label inside the axes, got %d", len(f.CustomLabels))
	}
	if l := f.CustomLabels[0]; l.Text != "peak" || !l.Position.ApproxEqual(mgl64.Vec3{10, 1, -10}) {
		t.Errorf("unexpected label %+v", l)
	}

	g.RemoveCustomLabel(in)
	f, _ = g.Sync()
	if len(f.CustomLabels) != 0 || len(g.CustomLabels()) != 1 {
		t.Errorf("expected only the outside label left, got %d placed", len(f.CustomLabels))
	}
}

func TestBarSliceFollowsSelection(t *testing.T) {
	g, _, s := barGraph(t, OptimizationDefault)
	if g.SetSelectionMode(selection.ModeItem | selection.ModeSlice) {
		t.Fatal("expected slicing without row or column to be refused")
	}
	if g.SelectionMode() != selection.ModeItem {
		t.Errorf("expected the mode unchanged, got %v", g.SelectionMode())
	}

	if !g.SetSelectionMode(selection.ModeItemAndRow | selection.ModeSlice) {
		t.Fatal("expected row slicing to be accepted")
	}
	f, _ := g.Sync()
	if f.Slice != nil {
		t.Error("expected no slice without a selection")
	}

	g.SetSelectedBar(s, series.Coord{Row: 1, Col: 0})
	f, _ = g.Sync()
	if f.Slice == nil || !f.Slice.Row || f.Slice.Index != 1 || len(f.Slice.Series) != 1 {
		t.Fatalf("expected a slice through row 1, got %+v", f.Slice)
	}
	ss := f.Slice.Series[0]
	if len(ss.Values) != 2 || ss.Values[0] != 3 || ss.Values[1] != -1 || ss.Selected != 0 {
		t.Errorf("expected row values [3 -1] with item 0 selected, got %v selected %d", ss.Values, ss.Selected)
	}

	g.SetSelectionMode(selection.ModeItemAndColumn | selection.ModeSlice)
	g.SetSelectedBar(s, series.Coord{Row: 0, Col: 1})
	f, _ = g.Sync()
	if f.Slice == nil || f.Slice.Row || f.Slice.Index != 1 {
		t.Fatalf("expected a slice through column 1, got %+v", f.Slice)
	}
	if ss := f.Slice.Series[0]; ss.Values[0] != 2 || ss.Values[1] != -1 || ss.Selected != 0 {
		t.Errorf("expected column values [2 -1], got %v", ss.Values)
	}

	g.ClearSelection()
	if f, _ = g.Sync(); f.Slice != nil {
		t.Error("expected the slice to end with the selection")
	}
}

func TestSurfaceSlice(t *testing.T) {
	g := New(scene.NewRecorder(), DefaultOptions(series.KindSurface))
	p := data.NewSurfaceProxy()
	p.ResetArray([]data.SurfaceRow{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 2, Z: 1}},
	})
	s := series.NewSurface("s", p)
	g.AddSeries(s)
	g.SetSelectionMode(selection.ModeItemAndColumn | selection.ModeSlice)
	g.SetSelectedPoint(s, series.Coord{Row: 1, Col: 1})
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if f.Slice == nil || f.Slice.Row || f.Slice.Label != "1.0" {
		t.Fatalf("expected a column slice at x 1.0, got %+v", f.Slice)
	}
	ss := f.Slice.Series[0]
	if ss.Positions[0] != 0 || ss.Positions[1] != 1 || ss.Values[0] != 1 || ss.Values[1] != 2 || ss.Selected != 1 {
		t.Errorf("unexpected column slice %+v", ss)
	}
}
