package config

import (
	"fmt"
	"sort"
)

func preset(kind string, edit func(s *Scene)) *Scene {
	s := DefaultScene(kind)
	edit(s)
	return s
}

var Presets = map[string]map[string]*Scene{
	"bar": {
		"seasonal": preset("bar", func(s *Scene) {
			s.Axes.Y.Title = "Revenue"
			s.Series[0].ColumnLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
		}),
		"wave": preset("bar", func(s *Scene) {
			s.Series = []SeriesConfig{{Name: "wave", Generator: "wave", Rows: 10, Columns: 10, ColorStyle: "range"}}
			s.Selection = "item|row|column"
			s.CustomItems = []CustomItemConfig{{Mesh: "arrow", Position: [3]float64{4.5, 0, 4.5}, Scale: []float64{0.5}, Color: "#ff6b35"}}
			s.CustomLabels = []CustomLabelConfig{{Text: "centre", Position: [3]float64{4.5, 0, 4.5}}}
		}),
		"stacked": preset("bar", func(s *Scene) {
			s.Series = []SeriesConfig{
				{Name: "ramp", Generator: "ramp", Rows: 4, Columns: 6},
				{Name: "seasonal", Generator: "seasonal", Rows: 4, Columns: 6, BaseColor: "#14aaff"},
			}
			s.Bars.SeriesMarginX = 0.2
			s.Selection = "item|multiseries"
		}),
		"instanced": preset("bar", func(s *Scene) {
			s.Optimization = "static"
			s.Series = []SeriesConfig{{Name: "large", Generator: "seasonal", Rows: 40, Columns: 40}}
		}),
	},
	"scatter": {
		"lorenz": preset("scatter", func(s *Scene) {
			s.Series[0].ColorStyle = "range"
		}),
		"rossler": preset("scatter", func(s *Scene) {
			s.Series = []SeriesConfig{{Name: "rossler", Generator: "rossler", Items: 800, ItemSize: 0.05}}
		}),
		"cloud": preset("scatter", func(s *Scene) {
			s.Series = []SeriesConfig{
				{Name: "a", Generator: "cloud", Items: 300, Seed: 1},
				{Name: "b", Generator: "cloud", Items: 300, Seed: 2, BaseColor: "#ff6b35", Mesh: "cube"},
			}
			s.Optimization = "static"
		}),
		"helix": preset("scatter", func(s *Scene) {
			s.Series = []SeriesConfig{{Name: "helix", Generator: "helix", Items: 200}}
			s.Value.HorizontalAspectRatio = 1
		}),
	},
	"surface": {
		"sinc": preset("surface", func(s *Scene) {
			s.Selection = "item|row|slice"
		}),
		"ripple": preset("surface", func(s *Scene) {
			s.Series[0].Generator = "ripple"
			s.Series[0].DrawMode = "wireframe"
		}),
		"saddle": preset("surface", func(s *Scene) {
			s.Series[0].Generator = "saddle"
			s.Series[0].FlatShading = true
			s.Series[0].Gradient = []string{"#0000ff", "#00ff00", "#ff0000"}
		}),
	},
}

// GetPreset returns a copy of the named preset so callers may edit it.
func GetPreset(kind, name string) (*Scene, error) {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	s, ok := kindPresets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, kind, name)
	}
	c := *s
	c.Series = append([]SeriesConfig(nil), s.Series...)
	c.CustomItems = append([]CustomItemConfig(nil), s.CustomItems...)
	c.CustomLabels = append([]CustomLabelConfig(nil), s.CustomLabels...)
	return &c, nil
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListKinds returns the graph kinds that have presets.
func ListKinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
