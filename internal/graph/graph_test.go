package graph

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func barGraph(t *testing.T, opt Optimization) (*Graph, *scene.Recorder, *series.Bar) {
	t.Helper()
	rec := scene.NewRecorder()
	rec.SetProjector(scene.Orthographic{})
	opts := DefaultOptions(series.KindBar)
	opts.MaxSceneSize = 40
	opts.Optimization = opt
	g := New(rec, opts)
	s := series.NewBar("b", data.NewBarProxyFromValues([][]float64{{1, 2}, {3, -1}}))
	if err := g.AddSeries(s); err != nil {
		t.Fatalf("add series: %v", err)
	}
	return g, rec, s
}

func TestBarGraphSync(t *testing.T) {
	g, rec, s := barGraph(t, OptimizationDefault)
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if f.Sequence != 1 || f.Kind != series.KindBar {
		t.Errorf("expected first bar frame, got sequence %d kind %v", f.Sequence, f.Kind)
	}
	if y := g.AxisY(); y.Min() != -1 || y.Max() != 3 {
		t.Errorf("expected auto range [-1,3], got [%f,%f]", y.Min(), y.Max())
	}
	if rec.Len() != 4 {
		t.Fatalf("expected 4 primitives, got %d", rec.Len())
	}

	want := [][3]float64{{-10, -0.25, 10}, {10, 0, 10}, {-10, 0.25, -10}, {10, -0.75, -10}}
	for i, b := range g.bars.Bars(s) {
		p := b.Transform.Position
		if !approx(p[0], want[i][0]) || !approx(p[1], want[i][1]) || !approx(p[2], want[i][2]) {
			t.Errorf("bar %d: expected %v, got %v", i, want[i], p)
		}
	}

	if len(f.Layout.Lines) == 0 || len(f.Layout.Labels) == 0 {
		t.Error("expected grid lines and labels in the frame")
	}
	if f.Synced&DirtyData == 0 {
		t.Errorf("expected the first pass to consume data changes, got %b", f.Synced)
	}
}

func TestReversedValueAxisBars(t *testing.T) {
	g, _, s := barGraph(t, OptimizationDefault)
	g.AxisY().SetReversed(true)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Floor sits at +0.5, larger values hang further down.
	want := []struct{ y, h float64 }{{0.25, -0.25}, {0, -0.5}, {-0.25, -0.75}, {0.75, 0.25}}
	for i, b := range g.bars.Bars(s) {
		p, sc := b.Transform.Position, b.Transform.Scale
		if !approx(p[1], want[i].y) || !approx(b.Height, want[i].h) {
			t.Errorf("bar %d: expected y %g height %g, got y %f height %f", i, want[i].y, want[i].h, p[1], b.Height)
		}
		if lo, hi := p[1]-sc[1], p[1]+sc[1]; lo < -1-1e-9 || hi > 1+1e-9 {
			t.Errorf("bar %d: expected span inside [-1,1], got [%f,%f]", i, lo, hi)
		}
	}
	if !approx(g.height.BackgroundAdjustment, -0.5) {
		t.Errorf("expected floor adjustment -0.5, got %f", g.height.BackgroundAdjustment)
	}
}

func TestSyncClearsFlags(t *testing.T) {
	g, _, _ := barGraph(t, OptimizationDefault)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if f.Synced != 0 {
		t.Errorf("expected nothing pending on the second pass, got %b", f.Synced)
	}

	g.SetCamera(gridlayout.Camera{XRotation: 135, YRotation: 20, Zoom: 100})
	f, _ = g.Sync()
	if f.Synced != DirtyCamera {
		t.Errorf("expected only the camera change, got %b", f.Synced)
	}
	if !f.Layout.Flipped.X {
		t.Error("expected the camera to flip x")
	}
}

func TestProxyEditRepositions(t *testing.T) {
	g, _, s := barGraph(t, OptimizationDefault)
	g.Sync()

	if err := s.Proxy.SetItem(0, 0, data.BarItem{Value: 3}); err != nil {
		t.Fatalf("set item: %v", err)
	}
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if f.Synced&DirtyData == 0 {
		t.Errorf("expected data change, got %b", f.Synced)
	}
	if h := g.bars.Bars(s)[0].Height; !approx(h, 0.75) {
		t.Errorf("expected the edited bar to match the tallest, got height %f", h)
	}
}

func TestPickSelectsBar(t *testing.T) {
	g, rec, s := barGraph(t, OptimizationDefault)
	g.Sync()

	tgt, err := g.Pick(-10, 0.8)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if tgt.Series != s || tgt.Coord != (series.Coord{Row: 1, Col: 0}) {
		t.Fatalf("expected (1,0) of b, got %v", tgt.Coord)
	}

	f, _ := g.Sync()
	if f.Synced&DirtySelection == 0 {
		t.Errorf("expected a selection change, got %b", f.Synced)
	}
	if s.Selected() != (series.Coord{Row: 1, Col: 0}) {
		t.Errorf("expected series to mirror the selection, got %v", s.Selected())
	}
	h, _ := g.bars.Handle(s, series.Coord{Row: 1, Col: 0})
	p, _ := rec.Primitive(h)
	if p.Material.Color != gradient.ToRGBA(s.Style().SingleHighlightColor) {
		t.Errorf("expected highlight colour, got %v", p.Material.Color)
	}

	if tgt, _ := g.Pick(500, 500); tgt.Valid() {
		t.Error("expected a miss to clear the selection")
	}
	g.Sync()
	if s.Selected().Valid() {
		t.Errorf("expected cleared series selection, got %v", s.Selected())
	}
}

func TestRowModeHighlightsRow(t *testing.T) {
	for _, opt := range []Optimization{OptimizationDefault, OptimizationStatic} {
		g, rec, s := barGraph(t, opt)
		g.SetSelectionMode(selection.ModeItemAndRow)
		if err := g.SetSelectedBar(s, series.Coord{Row: 1, Col: 0}); err != nil {
			t.Fatalf("select: %v", err)
		}
		g.Sync()

		multi := gradient.ToRGBA(s.Style().MultiHighlightColor)
		single := gradient.ToRGBA(s.Style().SingleHighlightColor)
		var nMulti, nSingle int
		for _, e := range rec.Entries() {
			colors := []scene.Instance{{Color: e.Material.Color}}
			if e.Kind == scene.KindInstanced {
				colors = e.Instances
			}
			for _, c := range colors {
				switch c.Color {
				case multi:
					nMulti++
				case single:
					nSingle++
				}
			}
		}
		if nSingle != 1 || nMulti != 1 {
			t.Errorf("%v: expected one item and one row highlight, got %d and %d", opt, nSingle, nMulti)
		}
	}
}

func TestSelectOutsideDataClears(t *testing.T) {
	g, _, s := barGraph(t, OptimizationDefault)
	g.SetSelectedBar(s, series.Coord{Row: 0, Col: 1})
	if !g.Selected().Valid() {
		t.Fatal("expected a selection")
	}
	g.SetSelectedBar(s, series.Coord{Row: 5, Col: 0})
	if g.Selected().Valid() {
		t.Error("expected out of range coordinate to clear the selection")
	}

	g.SetSelectedBar(s, series.Coord{Row: 1, Col: 1})
	s.Proxy.RemoveRows(1, 1)
	g.Sync()
	if g.Selected().Valid() || s.Selected().Valid() {
		t.Error("expected removing the selected row to clear the selection")
	}
}

func TestSeriesErrors(t *testing.T) {
	g, _, _ := barGraph(t, OptimizationDefault)

	err := g.AddSeries(series.NewScatter("s", nil))
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected kind mismatch, got %v", err)
	}
	var se *SeriesError
	if !errors.As(err, &se) || se.Series != "s" || se.Op != "add" {
		t.Errorf("expected series error for s, got %v", err)
	}

	if err := g.RemoveSeries(series.NewBar("other", nil)); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("expected unknown series, got %v", err)
	}
	if err := g.SetSelectedBar(series.NewBar("other", nil), series.Coord{}); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("expected unknown series on select, got %v", err)
	}
}

func TestRemoveSeries(t *testing.T) {
	g, rec, s := barGraph(t, OptimizationDefault)
	g.Sync()
	g.SetSelectedBar(s, series.Coord{Row: 0, Col: 0})

	if err := g.RemoveSeries(s); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected primitives destroyed, got %d", rec.Len())
	}
	if g.Selected().Valid() {
		t.Error("expected the selection to go with the series")
	}
	if len(g.Series()) != 0 {
		t.Errorf("expected no series, got %d", len(g.Series()))
	}
}

func TestSwitchOptimizationRebuilds(t *testing.T) {
	g, rec, _ := barGraph(t, OptimizationDefault)
	g.Sync()
	g.SetOptimization(OptimizationStatic)
	if rec.Len() != 0 {
		t.Fatalf("expected old primitives destroyed, got %d", rec.Len())
	}
	g.Sync()
	if rec.Len() != 1 {
		t.Errorf("expected one instanced primitive, got %d", rec.Len())
	}
	if rec.Entries()[0].Kind != scene.KindInstanced {
		t.Errorf("expected instanced primitive, got %v", rec.Entries()[0].Kind)
	}
}

func TestCloseThenSync(t *testing.T) {
	g, rec, _ := barGraph(t, OptimizationDefault)
	g.Sync()
	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected primitives destroyed, got %d", rec.Len())
	}
	f, err := g.Sync()
	if err != nil || f.Sequence != 0 || len(f.Layout.Lines) != 0 {
		t.Errorf("expected an empty frame, got %+v %v", f.Sequence, err)
	}
	if _, err := g.Pick(0, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("expected closed error, got %v", err)
	}
	if err := g.Close(); err != nil {
		t.Errorf("expected second close to succeed, got %v", err)
	}
}

func TestScatterGraph(t *testing.T) {
	Expect := NewWithT(t).Expect

	rec := scene.NewRecorder()
	g := New(rec, DefaultOptions(series.KindScatter))
	p := data.NewScatterProxy()
	p.AddItems([]data.ScatterItem{
		data.NewScatterItem(0, 0, 0),
		data.NewScatterItem(1, 1, 1),
		data.NewScatterItem(2, 2, 2),
	})
	s := series.NewScatter("s", p)
	Expect(g.AddSeries(s)).To(Succeed())

	_, err := g.Sync()
	Expect(err).NotTo(HaveOccurred())
	Expect(g.AxisX().Min()).To(Equal(0.0))
	Expect(g.AxisX().Max()).To(Equal(2.0))
	Expect(rec.Len()).To(Equal(3))

	pts := g.scatter.Points(s)
	Expect(pts).To(HaveLen(3))
	Expect(pts[0].Transform.Position[0]).To(BeNumerically("~", -2, 1e-9))
	Expect(pts[0].Transform.Position[1]).To(BeNumerically("~", -1, 1e-9))
	Expect(pts[0].Transform.Position[2]).To(BeNumerically("~", 2, 1e-9))
	Expect(pts[1].Transform.Position.Len()).To(BeNumerically("~", 0, 1e-9))

	Expect(g.SetSelectedItem(s, 2)).To(Succeed())
	_, err = g.Sync()
	Expect(err).NotTo(HaveOccurred())
	Expect(s.Selected()).To(Equal(2))
	ind, ok := rec.Primitive(g.scatter.Indicator())
	Expect(ok).To(BeTrue())
	Expect(ind.Visible).To(BeTrue())
	Expect(ind.Transform.Position).To(Equal(pts[2].Transform.Position))

	p.AddItem(data.NewScatterItem(4, 4, 4))
	_, err = g.Sync()
	Expect(err).NotTo(HaveOccurred())
	Expect(g.AxisX().Max()).To(Equal(4.0))
	Expect(g.scatter.Points(s)[2].Transform.Position[0]).To(BeNumerically("~", 0, 1e-9))
}

func TestFixedRangeHidesOutsidePoints(t *testing.T) {
	g := New(scene.NewRecorder(), DefaultOptions(series.KindScatter))
	p := data.NewScatterProxy()
	p.AddItems([]data.ScatterItem{data.NewScatterItem(0, 0, 0), data.NewScatterItem(5, 0, 0)})
	s := series.NewScatter("s", p)
	g.AddSeries(s)
	g.AxisX().SetRange(-1, 1)
	g.Sync()

	pts := g.scatter.Points(s)
	if pts[0].Hidden || !pts[1].Hidden {
		t.Errorf("expected only the point outside x to be hidden, got %v and %v", pts[0].Hidden, pts[1].Hidden)
	}
	if g.AxisX().Max() != 1 {
		t.Errorf("expected the fixed range to stay, got %f", g.AxisX().Max())
	}
}

func TestSurfaceGraph(t *testing.T) {
	g := New(scene.NewRecorder(), DefaultOptions(series.KindSurface))
	p := data.NewSurfaceProxy()
	err := p.ResetArray([]data.SurfaceRow{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 2, Z: 1}},
	})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	s := series.NewSurface("s", p)
	g.AddSeries(s)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if y := g.AxisY(); y.Min() != 0 || y.Max() != 2 {
		t.Errorf("expected y range [0,2], got [%f,%f]", y.Min(), y.Max())
	}
	if _, ok := g.surface.Mesh(s); !ok {
		t.Fatal("expected a surface mesh")
	}

	if err := g.SetSelectedPoint(s, series.Coord{Row: 1, Col: 1}); err != nil {
		t.Fatalf("select: %v", err)
	}
	f, err := g.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if s.Selected() != (series.Coord{Row: 1, Col: 1}) || f.Selection.Series != s {
		t.Errorf("expected (1,1) selected, got %v", s.Selected())
	}
}

func TestTexturesReleasedOnRebuild(t *testing.T) {
	rec := scene.NewRecorder()
	g := New(rec, DefaultOptions(series.KindSurface))
	p := data.NewSurfaceProxy()
	p.ResetArray([]data.SurfaceRow{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 2, Z: 1}},
	})
	s := series.NewSurface("s", p)
	g.AddSeries(s)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	live := rec.TextureCount()
	if live != 1 {
		t.Fatalf("expected one surface texture, got %d", live)
	}

	for i := range 10 {
		p.SetItem(1, 1, data.SurfaceItem{X: 1, Y: float64(3 + i), Z: 1})
		if _, err := g.Sync(); err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
		if rec.TextureCount() != live {
			t.Fatalf("edit %d: expected %d live textures, got %d", i, live, rec.TextureCount())
		}
	}

	g.Close()
	if rec.TextureCount() != 0 {
		t.Errorf("expected textures released on close, got %d", rec.TextureCount())
	}
}

func TestBarRestyleReleasesTextures(t *testing.T) {
	g, rec, s := barGraph(t, OptimizationDefault)
	st := s.Style()
	st.ColorStyle = series.ColorRangeGradient
	s.SetStyle(st)
	if _, err := g.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if rec.TextureCount() != 3 {
		t.Fatalf("expected three role textures, got %d", rec.TextureCount())
	}
	for i := range 5 {
		st.BaseColor = gradient.MustParseHex("#102030")
		st.BaseGradient = gradient.Linear(st.BaseColor, st.SingleHighlightColor)
		s.SetStyle(st)
		if _, err := g.Sync(); err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
	}
	if rec.TextureCount() != 3 {
		t.Errorf("expected three live textures after restyles, got %d", rec.TextureCount())
	}
	if err := g.RemoveSeries(s); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.TextureCount() != 0 {
		t.Errorf("expected textures released with the series, got %d", rec.TextureCount())
	}
}

func TestCategoryLabelsFollowProxy(t *testing.T) {
	g, _, s := barGraph(t, OptimizationDefault)
	s.Proxy.SetColumnLabels([]string{"Q1", "Q2"})
	g.Sync()
	if got := g.AxisX().Labels(); len(got) != 2 || got[0] != "Q1" {
		t.Errorf("expected proxy column labels, got %v", got)
	}
	if g.AxisZ().Kind != axis.KindCategory {
		t.Error("expected a category z axis")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	names := r.List()
	if len(names) != 3 || names[0] != "bar" || names[2] != "surface" {
		t.Errorf("unexpected kinds %v", names)
	}
	g, err := r.Get("scatter", scene.NewRecorder())
	if err != nil || g.Kind() != series.KindScatter {
		t.Errorf("expected scatter graph, got %v", err)
	}
	if _, err := r.Get("pie", scene.NewRecorder()); err == nil {
		t.Error("expected unknown kind to fail")
	}
}
