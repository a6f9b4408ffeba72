package viz

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/custom"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

var red = color.RGBA{255, 0, 0, 255}

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, red)
	c.Set(3, 3, red)

	if !c.Lit(0, 0) || !c.Lit(3, 3) {
		t.Error("expected both dots lit")
	}
	if c.Lit(1, 0) {
		t.Error("expected neighbour dot unlit")
	}
	if c.Grid[0][0] != blank|0x1 || c.Grid[0][1] != blank|0x80 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}

	c.Set(-1, 0, red)
	c.Set(100, 100, red)
	c.Clear()
	if c.Lit(0, 0) || c.Colors[0][0] != (color.RGBA{}) {
		t.Error("expected clear canvas")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 2)
	c.DrawLine(0, 0, 19, 7, red)

	if !c.Lit(0, 0) || !c.Lit(19, 7) {
		t.Error("expected both endpoints lit")
	}
	if lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n"); len(lines) != 2 {
		t.Errorf("expected 2 rows, got %d", len(lines))
	}
}

func TestCanvasTextKeepsCells(t *testing.T) {
	c := NewCanvas(10, 1)
	c.Text(10, 0, "abc", red)
	c.Set(8, 0, red)

	if got := string(c.Grid[0][4:7]); got != "abc" {
		t.Errorf("expected abc centred, got %q", got)
	}
	if c.Lit(8, 0) {
		t.Error("expected text cells to ignore dots")
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, red)
	bg := color.RGBA{0, 0, 0, 255}
	img := c.Image(4, bg)

	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("expected 8x8 image, got %v", b)
	}
	if img.RGBAAt(1, 1) != red {
		t.Errorf("expected dot pixel red, got %v", img.RGBAAt(1, 1))
	}
	if img.RGBAAt(2, 0) != bg {
		t.Errorf("expected background, got %v", img.RGBAAt(2, 0))
	}
}

func TestCameraProject(t *testing.T) {
	cam := &Camera{Orbit: gridlayout.Camera{Zoom: 100}, Width: 40, Height: 40, Radius: 2}

	x, y, d := cam.Project(mgl64.Vec3{1, 0, 0})
	if math.Abs(x-30) > 1e-9 || math.Abs(y-20) > 1e-9 || math.Abs(d) > 1e-9 {
		t.Errorf("expected (30, 20, 0), got (%f, %f, %f)", x, y, d)
	}
	_, y, _ = cam.Project(mgl64.Vec3{0, 1, 0})
	if math.Abs(y-10) > 1e-9 {
		t.Errorf("expected y up to map to 10, got %f", y)
	}
	_, _, d = cam.Project(mgl64.Vec3{0, 0, 1})
	if math.Abs(d+1) > 1e-9 {
		t.Errorf("expected point towards the viewer at depth -1, got %f", d)
	}

	cam.Orbit.Zoom = 200
	x, _, _ = cam.Project(mgl64.Vec3{1, 0, 0})
	if math.Abs(x-40) > 1e-9 {
		t.Errorf("expected doubled offset at zoom 200, got %f", x)
	}
}

func TestCameraRotateClamps(t *testing.T) {
	cam := NewCamera(NewCanvas(10, 10))
	cam.Rotate(200, 100)

	if cam.Orbit.XRotation != 155 {
		t.Errorf("expected wrapped rotation 155, got %f", cam.Orbit.XRotation)
	}
	if cam.Orbit.YRotation != 90 {
		t.Errorf("expected clamped tilt 90, got %f", cam.Orbit.YRotation)
	}
	for range 50 {
		cam.ZoomOut()
	}
	if cam.Orbit.Zoom != MinZoom {
		t.Errorf("expected zoom floor %f, got %f", MinZoom, cam.Orbit.Zoom)
	}
}

func barGraph(t *testing.T, values [][]float64) (*graph.Graph, *scene.Recorder, *series.Bar) {
	t.Helper()
	rec := scene.NewRecorder()
	g := graph.New(rec, graph.DefaultOptions(series.KindBar))
	s := series.NewBar("test", data.NewBarProxyFromValues(values))
	if err := g.AddSeries(s); err != nil {
		t.Fatal(err)
	}
	return g, rec, s
}

func TestRendererDrawsGraph(t *testing.T) {
	g, rec, _ := barGraph(t, [][]float64{{1, 2}, {3, 4}})
	f, err := g.Sync()
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(NewCanvas(60, 20), GetTheme("minimal"))
	r.Draw(rec, f)

	lit := 0
	w, h := r.Canvas.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Canvas.Lit(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected the graph to light dots")
	}
	if r.Camera.Orbit != f.Camera {
		t.Error("expected the camera to follow the frame")
	}
}

func TestViewerKeys(t *testing.T) {
	g, rec, s := barGraph(t, [][]float64{{5}})
	v := NewViewer(g, rec, ViewerOptions{Theme: "ocean"})

	m, _ := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = m.(Viewer)
	if g.SelectionMode() != selection.ModeItemAndRow {
		t.Errorf("expected item|row after tab, got %v", g.SelectionMode())
	}

	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = m.(Viewer)
	if sel := g.Selected(); !sel.Valid() || sel.Series != s {
		t.Fatalf("expected the centred bar picked, got %+v", sel)
	}
	if !strings.Contains(Describe(v.frame.Selection), "= 5") {
		t.Errorf("unexpected description %q", Describe(v.frame.Selection))
	}

	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	v = m.(Viewer)
	if g.Selected().Valid() {
		t.Error("expected c to clear the selection")
	}

	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v = m.(Viewer)
	if g.Camera().XRotation != -40 {
		t.Errorf("expected orbit to -40, got %f", g.Camera().XRotation)
	}

	m, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	v = m.(Viewer)
	if Themes[v.theme].Name != "sunset" {
		t.Errorf("expected next theme sunset, got %s", Themes[v.theme].Name)
	}
	if v.View() == "" {
		t.Error("expected a view")
	}

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected q to quit")
	}
}

func TestRecordingEncodes(t *testing.T) {
	r := NewRecording()
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != ErrNoFrames {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7, red)
	r.Capture(c, GetTheme("retro"))
	r.Capture(c, GetTheme("retro"))
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("GIF8")) {
		t.Error("expected GIF data")
	}
}

func TestProfile(t *testing.T) {
	_, _, s := barGraph(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	p := Profile(selection.Target{Series: s, Coord: series.Coord{Row: 1, Col: 0}})
	if len(p) != 3 || p[2] != 6 {
		t.Errorf("expected second row, got %v", p)
	}
	if Profile(selection.Target{Coord: series.InvalidCoord}) != nil {
		t.Error("expected no profile without a selection")
	}
}

func TestGradientText(t *testing.T) {
	if GradientText("", "#000000", "#ffffff") != "" {
		t.Error("expected empty output")
	}
	if GradientText("ab", "nope", "#ffffff") != "ab" {
		t.Error("expected plain text for bad colours")
	}
}

func TestRendererDrawsCustomLabels(t *testing.T) {
	g, rec, _ := barGraph(t, [][]float64{{1, 2}, {3, 4}})
	lb := custom.NewLabel("ZZ", mgl64.Vec3{0.5, 2, 0.5})
	lb.SetColor(gradient.MustParseHex("#ff0000"))
	g.AddCustomLabel(lb)
	f, err := g.Sync()
	if err != nil {
		t.Fatal(err)
	}
	if len(f.CustomLabels) != 1 {
		t.Fatalf("expected the label in the frame, got %d", len(f.CustomLabels))
	}
	r := NewRenderer(NewCanvas(60, 20), GetTheme("minimal"))
	r.Draw(rec, f)
	found := false
	for y, row := range r.Canvas.Grid {
		if i := strings.Index(string(row), "ZZ"); i >= 0 {
			found = r.Canvas.Colors[y][len([]rune(string(row)[:i]))] == red
		}
	}
	if !found {
		t.Error("expected the custom label drawn in its colour")
	}
}

func TestSliceCaption(t *testing.T) {
	sl := &graph.Slice{Row: true, Index: 2, Series: []graph.SliceSeries{{Values: []float64{1, 2}}}}
	if got := SliceCaption(sl); got != "Row 2" {
		t.Errorf("expected Row 2, got %q", got)
	}
	sl.Row, sl.Label = false, "Q3"
	if got := SliceCaption(sl); got != "Column Q3" {
		t.Errorf("expected Column Q3, got %q", got)
	}
	if v := SliceValues(sl); len(v) != 2 {
		t.Errorf("expected the first series values, got %v", v)
	}
	if SliceValues(nil) != nil {
		t.Error("expected no values without a slice")
	}
}

func TestViewerShowsSlice(t *testing.T) {
	g, rec, s := barGraph(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	g.SetSelectionMode(selection.ModeItemAndRow | selection.ModeSlice)
	g.SetSelectedBar(s, series.Coord{Row: 1, Col: 1})
	v := NewViewer(g, rec, ViewerOptions{})
	m, _ := v.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	v = m.(Viewer)
	if v.frame.Slice == nil {
		t.Fatal("expected a slice in the frame")
	}
	if !strings.Contains(v.View(), "Row 1") {
		t.Error("expected the slice chart caption in the panel")
	}
}
