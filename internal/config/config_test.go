package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

func TestDefaultScene(t *testing.T) {
	s := DefaultScene("bar")

	if s.Kind != "bar" {
		t.Errorf("expected kind bar, got %s", s.Kind)
	}
	if len(s.Series) != 1 || s.Series[0].Generator == "" {
		t.Errorf("expected one generated series, got %+v", s.Series)
	}
	if s.Margin >= 0 {
		t.Error("expected derived margin by default")
	}
}

func TestGetPreset(t *testing.T) {
	s, err := GetPreset("bar", "wave")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if s.Series[0].Generator != "wave" {
		t.Errorf("expected wave generator, got %s", s.Series[0].Generator)
	}

	s.Series[0].Generator = "ramp"
	again, _ := GetPreset("bar", "wave")
	if again.Series[0].Generator != "wave" {
		t.Error("expected presets to be copied")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("bar", "nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected unknown preset, got %v", err)
	}
	if _, err := GetPreset("pie", "wave"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected unknown kind, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("surface")
	if len(presets) != 3 || presets[0] != "ripple" {
		t.Errorf("unexpected surface presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent kind")
	}
	if kinds := ListKinds(); len(kinds) != 3 {
		t.Errorf("expected three kinds, got %v", kinds)
	}
}

func TestEveryPresetBuilds(t *testing.T) {
	for _, kind := range ListKinds() {
		for _, name := range ListPresets(kind) {
			s, _ := GetPreset(kind, name)
			g, err := s.Build(scene.NewRecorder())
			if err != nil {
				t.Errorf("%s/%s: build: %v", kind, name, err)
				continue
			}
			if _, err := g.Sync(); err != nil {
				t.Errorf("%s/%s: sync: %v", kind, name, err)
			}
			if len(g.Series()) != len(s.Series) {
				t.Errorf("%s/%s: expected %d series, got %d", kind, name, len(s.Series), len(g.Series()))
			}
			g.Close()
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	s, _ := GetPreset("bar", "stacked")
	lo, hi := -5.0, 25.0
	s.Axes.Y.Min, s.Axes.Y.Max = &lo, &hi
	if err := Save(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Series) != 2 || got.Series[1].BaseColor != "#14aaff" {
		t.Errorf("expected both series back, got %+v", got.Series)
	}
	if got.Axes.Y.Max == nil || *got.Axes.Y.Max != 25 {
		t.Error("expected the fixed y range back")
	}

	g, err := got.Build(scene.NewRecorder())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.AxisY().Max() != 25 || g.AxisY().AutoAdjust {
		t.Errorf("expected fixed y range, got max %f", g.AxisY().Max())
	}
	if g.SelectionMode() != selection.ModeItem|selection.ModeMultiSeries {
		t.Errorf("expected item|multi selection, got %v", g.SelectionMode())
	}
}

func TestLoadInlineData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.yaml")
	doc := `kind: scatter
optimization: static
series:
  - name: inline
    points:
      - [0, 0, 0]
      - [1, 2, 3]
    mesh: cube
    base_color: "#ff0000"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Camera.Zoom != DefaultZoom {
		t.Errorf("expected defaults under the file, got zoom %f", s.Camera.Zoom)
	}

	g, err := s.Build(scene.NewRecorder())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Options().Optimization != graph.OptimizationStatic {
		t.Error("expected static optimization")
	}
	sc := g.Series()[0].(*series.Scatter)
	if sc.Proxy.ItemCount() != 2 || sc.Style().Mesh != scene.MeshCube {
		t.Errorf("unexpected series %d items mesh %v", sc.Proxy.ItemCount(), sc.Style().Mesh)
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pie.yaml")
	os.WriteFile(path, []byte("kind: pie\n"), 0644)
	if _, err := Load(path); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected unknown kind, got %v", err)
	}
}

func TestBuildRejectsBadStyle(t *testing.T) {
	s := DefaultScene("bar")
	s.Series[0].Mesh = "teapot"
	if _, err := s.Build(scene.NewRecorder()); err == nil {
		t.Error("expected unknown mesh to fail")
	}
	s = DefaultScene("bar")
	s.Series[0].Generator = "nope"
	if _, err := s.Build(scene.NewRecorder()); err == nil {
		t.Error("expected unknown generator to fail")
	}
}

func TestLoadCustomItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marked.yaml")
	doc := `kind: bar
selection: item|column|slice
series:
  - name: v
    values: [[1, 2], [3, 4]]
custom_items:
  - mesh: pyramid
    position: [1, 4, 0]
    scale: [0.2]
    color: "#00ff00"
  - mesh: cube
    position: [0, 0, 0]
    absolute: true
    relative_scale: true
custom_labels:
  - text: max
    position: [1, 4, 1]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g, err := s.Build(scene.NewRecorder())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	items := g.CustomItems()
	if len(items) != 2 || items[0].Mesh() != scene.MeshPyramid || items[0].Scaling()[1] != 0.2 {
		t.Fatalf("unexpected custom items %+v", items)
	}
	if !items[1].PositionAbsolute() || items[1].ScalingAbsolute() {
		t.Error("expected the second item absolute with relative scaling")
	}
	if len(g.CustomLabels()) != 1 || g.CustomLabels()[0].Text() != "max" {
		t.Errorf("unexpected labels %d", len(g.CustomLabels()))
	}
	if g.SelectionMode() != selection.ModeItemAndColumn|selection.ModeSlice {
		t.Errorf("expected column slicing, got %v", g.SelectionMode())
	}
}

func TestLoadRejectsBadSliceMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.yaml")
	os.WriteFile(path, []byte("kind: bar\nselection: item|slice\n"), 0644)
	if _, err := Load(path); !errors.Is(err, ErrBadSelection) {
		t.Errorf("expected a bad selection error, got %v", err)
	}
}

func TestBuildRejectsBadCustomItem(t *testing.T) {
	s := DefaultScene("bar")
	s.CustomItems = []CustomItemConfig{{Mesh: "cube", Scale: []float64{1, 2}}}
	if _, err := s.Build(scene.NewRecorder()); err == nil {
		t.Error("expected a two value scale to fail")
	}
}
