package graph

import (
	"strings"

	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/selection"
	"github.com/san-kum/datavis3d/internal/series"
)

// Optimization selects how item primitives are submitted.
type Optimization int

const (
	// OptimizationDefault creates one primitive per item.
	OptimizationDefault Optimization = iota
	// OptimizationStatic keeps one instanced primitive per series.
	OptimizationStatic
)

func (o Optimization) String() string {
	if o == OptimizationStatic {
		return "static"
	}
	return "default"
}

func ParseOptimization(s string) (Optimization, bool) {
	switch strings.ToLower(s) {
	case "", "default":
		return OptimizationDefault, true
	case "static", "instanced":
		return OptimizationStatic, true
	}
	return OptimizationDefault, false
}

type Options struct {
	Kind          series.Kind
	Optimization  Optimization
	SelectionMode selection.Mode
	// Margin is the background margin; below zero derives it.
	Margin float64

	BarSpec       scaling.BarSpec
	SeriesMargin  scaling.Size
	FloorLevel    float64
	MaxSceneSize  float64
	UniformSeries bool

	AspectRatio           float64
	HorizontalAspectRatio float64
}

func DefaultOptions(k series.Kind) Options {
	return Options{
		Kind:          k,
		SelectionMode: selection.ModeItem,
		Margin:        -1,
		BarSpec:       scaling.DefaultBarSpec(),
		AspectRatio:   scaling.DefaultAspect,
	}
}
