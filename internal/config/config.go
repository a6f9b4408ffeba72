package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

const (
	DefaultTheme     = "cyberpunk"
	DefaultRows      = 8
	DefaultColumns   = 12
	DefaultItems     = 600
	DefaultXRotation = -45.0
	DefaultYRotation = 20.0
	DefaultZoom      = 100.0
)

var (
	ErrUnknownKind   = errors.New("config: unknown graph kind")
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrBadSelection  = errors.New("config: invalid selection mode")
)

// Scene is a graph description as stored in a scene file.
type Scene struct {
	Kind         string         `yaml:"kind"`
	Theme        string         `yaml:"theme"`
	Optimization string         `yaml:"optimization"`
	Selection    string         `yaml:"selection"`
	Margin       float64        `yaml:"margin"`
	Camera       CameraConfig   `yaml:"camera"`
	Axes         AxesConfig     `yaml:"axes"`
	Bars         BarsConfig     `yaml:"bars"`
	Value        ValueConfig    `yaml:"value"`
	Series       []SeriesConfig `yaml:"series"`

	CustomItems  []CustomItemConfig  `yaml:"custom_items,omitempty"`
	CustomLabels []CustomLabelConfig `yaml:"custom_labels,omitempty"`
}

// CustomItemConfig places a mesh at a data position. Scale is in scene
// units unless RelativeScale is set.
type CustomItemConfig struct {
	Mesh          string     `yaml:"mesh"`
	Position      [3]float64 `yaml:"position"`
	Scale         []float64  `yaml:"scale,omitempty"`
	Rotation      float64    `yaml:"rotation,omitempty"`
	Color         string     `yaml:"color,omitempty"`
	Absolute      bool       `yaml:"absolute,omitempty"`
	RelativeScale bool       `yaml:"relative_scale,omitempty"`
}

type CustomLabelConfig struct {
	Text     string     `yaml:"text"`
	Position [3]float64 `yaml:"position"`
	Color    string     `yaml:"color,omitempty"`
	Absolute bool       `yaml:"absolute,omitempty"`
}

type CameraConfig struct {
	XRotation float64 `yaml:"x_rotation"`
	YRotation float64 `yaml:"y_rotation"`
	Zoom      float64 `yaml:"zoom"`
}

type AxesConfig struct {
	X AxisConfig `yaml:"x"`
	Y AxisConfig `yaml:"y"`
	Z AxisConfig `yaml:"z"`
}

// AxisConfig leaves the axis range automatic unless both Min and Max are
// set.
type AxisConfig struct {
	Title       string   `yaml:"title"`
	Min         *float64 `yaml:"min,omitempty"`
	Max         *float64 `yaml:"max,omitempty"`
	Segments    int      `yaml:"segments,omitempty"`
	SubSegments int      `yaml:"sub_segments,omitempty"`
	Reversed    bool     `yaml:"reversed,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	LogBase     float64  `yaml:"log_base,omitempty"`
	Labels      []string `yaml:"labels,omitempty"`
}

type BarsConfig struct {
	ThicknessRatio float64 `yaml:"thickness_ratio"`
	SpacingX       float64 `yaml:"spacing_x"`
	SpacingZ       float64 `yaml:"spacing_z"`
	Relative       bool    `yaml:"relative"`
	SeriesMarginX  float64 `yaml:"series_margin_x"`
	SeriesMarginZ  float64 `yaml:"series_margin_z"`
	FloorLevel     float64 `yaml:"floor_level"`
	MaxSceneSize   float64 `yaml:"max_scene_size"`
	Uniform        bool    `yaml:"uniform"`
}

type ValueConfig struct {
	AspectRatio           float64 `yaml:"aspect_ratio"`
	HorizontalAspectRatio float64 `yaml:"horizontal_aspect_ratio"`
}

// SeriesConfig takes its data from exactly one of Generator, HeightMap,
// Values, Points or Grid.
type SeriesConfig struct {
	Name        string   `yaml:"name"`
	Hidden      bool     `yaml:"hidden,omitempty"`
	Mesh        string   `yaml:"mesh,omitempty"`
	Smooth      bool     `yaml:"smooth,omitempty"`
	ColorStyle  string   `yaml:"color_style,omitempty"`
	BaseColor   string   `yaml:"base_color,omitempty"`
	Gradient    []string `yaml:"gradient,omitempty"`
	ItemSize    float64  `yaml:"item_size,omitempty"`
	FlatShading bool     `yaml:"flat_shading,omitempty"`
	DrawMode    string   `yaml:"draw_mode,omitempty"`

	Generator string `yaml:"generator,omitempty"`
	Rows      int    `yaml:"rows,omitempty"`
	Columns   int    `yaml:"columns,omitempty"`
	Items     int    `yaml:"items,omitempty"`
	Seed      int64  `yaml:"seed,omitempty"`

	HeightMap *HeightMapConfig `yaml:"height_map,omitempty"`

	Values       [][]float64    `yaml:"values,omitempty"`
	RowLabels    []string       `yaml:"row_labels,omitempty"`
	ColumnLabels []string       `yaml:"column_labels,omitempty"`
	Points       [][3]float64   `yaml:"points,omitempty"`
	Grid         [][][3]float64 `yaml:"grid,omitempty"`
}

type HeightMapConfig struct {
	Path      string  `yaml:"path"`
	MinX      float64 `yaml:"min_x"`
	MaxX      float64 `yaml:"max_x"`
	MinZ      float64 `yaml:"min_z"`
	MaxZ      float64 `yaml:"max_z"`
	MinY      float64 `yaml:"min_y"`
	MaxY      float64 `yaml:"max_y"`
	AutoScale bool    `yaml:"auto_scale"`
}

func DefaultScene(kind string) *Scene {
	s := &Scene{
		Kind:         kind,
		Theme:        DefaultTheme,
		Optimization: "default",
		Selection:    "item",
		Margin:       -1,
		Camera: CameraConfig{
			XRotation: DefaultXRotation,
			YRotation: DefaultYRotation,
			Zoom:      DefaultZoom,
		},
		Bars: BarsConfig{
			ThicknessRatio: 1,
			SpacingX:       1,
			SpacingZ:       1,
			Relative:       true,
		},
		Value: ValueConfig{AspectRatio: 2},
	}
	switch kind {
	case "bar":
		s.Series = []SeriesConfig{{Name: "bars", Generator: "seasonal", Rows: DefaultRows, Columns: DefaultColumns}}
	case "scatter":
		s.Series = []SeriesConfig{{Name: "points", Generator: "lorenz", Items: DefaultItems}}
	case "surface":
		s.Series = []SeriesConfig{{Name: "surface", Generator: "sinc", Rows: 32, Columns: 32}}
	}
	return s
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var probe struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	s := DefaultScene(probe.Kind)
	s.Series = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the names a scene refers to.
func (s *Scene) Validate() error {
	if _, ok := series.ParseKind(s.Kind); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	if _, ok := selection.ParseMode(s.Selection); !ok {
		return fmt.Errorf("%w: %q", ErrBadSelection, s.Selection)
	}
	for i, c := range s.CustomItems {
		if _, ok := scene.ParseMesh(c.Mesh); !ok {
			return fmt.Errorf("custom item %d: unknown mesh %q", i, c.Mesh)
		}
	}
	return nil
}
