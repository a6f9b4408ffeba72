// Package scaling computes the scene scale factors shared by the geometry
// generators, grid layout and labels of a graph.
package scaling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const DefaultMaxSceneSize = 40.0

// Size is a width (X) and height (Z) pair.
type Size struct {
	W, H float64
}

// BarSpec is the user facing bar geometry: thickness ratio of X to Z and
// the gap between bars, relative to the thickness or absolute.
type BarSpec struct {
	ThicknessRatio float64
	Spacing        Size
	Relative       bool
}

func DefaultBarSpec() BarSpec {
	return BarSpec{ThicknessRatio: 1, Spacing: Size{1, 1}, Relative: true}
}

func (s BarSpec) Thickness() Size {
	r := s.ThicknessRatio
	if r <= 0 {
		r = 1
	}
	return Size{1, 1 / r}
}

func (s BarSpec) BarSpacing() Size {
	t := s.Thickness()
	if s.Relative {
		return Size{t.W * 2 * (s.Spacing.W + 1), t.H * 2 * (s.Spacing.H + 1)}
	}
	return Size{t.W*2 + s.Spacing.W*2, t.H*2 + s.Spacing.H*2}
}

// BarInput is everything bar scaling depends on.
type BarInput struct {
	Rows, Columns int
	Spec          BarSpec
	SeriesMargin  Size
	// MaxSceneSize of zero is derived from the counts.
	MaxSceneSize float64
	// RequestedMargin below zero means no background margin.
	RequestedMargin float64
}

// BarState is the derived scaling of a bar graph.
type BarState struct {
	Thickness    Size
	Spacing      Size
	MaxSceneSize float64

	RowWidth     float64
	ColumnDepth  float64
	MaxDimension float64
	ScaleFactor  float64

	// XScale and ZScale are the scale of a single bar.
	XScale, ZScale float64
	// XScaleFactor and ZScaleFactor are the half extents of the graph.
	XScaleFactor, ZScaleFactor float64

	HBackgroundMargin   float64
	VBackgroundMargin   float64
	ScaleWithBackground mgl64.Vec3
	Scale               mgl64.Vec3

	Valid bool
}

// AutoMaxSceneSize keeps the footprint of non square grids bounded.
func AutoMaxSceneSize(rows, cols int) float64 {
	if rows < 1 || cols < 1 {
		return DefaultMaxSceneSize
	}
	r, c := float64(rows), float64(cols)
	ratio := math.Min(c/r, r/c)
	return 2 * math.Sqrt(ratio*c*r)
}

// ComputeBar derives the whole state from in. Empty grids are computed as
// a single slot so the result is always finite.
func ComputeBar(in BarInput) BarState {
	rows, cols := in.Rows, in.Columns
	valid := rows > 0 && cols > 0
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	s := BarState{
		Thickness:    in.Spec.Thickness(),
		Spacing:      in.Spec.BarSpacing(),
		MaxSceneSize: in.MaxSceneSize,
		Valid:        valid,
	}
	if s.MaxSceneSize <= 0 {
		s.MaxSceneSize = AutoMaxSceneSize(rows, cols)
	}

	s.RowWidth = float64(cols) * s.Spacing.W * 0.5
	s.ColumnDepth = float64(rows) * s.Spacing.H * 0.5
	s.MaxDimension = math.Max(s.RowWidth, s.ColumnDepth)
	s.ScaleFactor = math.Min(
		float64(cols)*(s.MaxDimension/s.MaxSceneSize),
		float64(rows)*(s.MaxDimension/s.MaxSceneSize))

	s.XScale = s.Thickness.W / s.ScaleFactor
	s.ZScale = s.Thickness.H / s.ScaleFactor
	s.XScale -= s.XScale * in.SeriesMargin.W
	s.ZScale -= s.ZScale * in.SeriesMargin.H

	s.XScaleFactor = s.RowWidth / s.ScaleFactor
	s.ZScaleFactor = s.ColumnDepth / s.ScaleFactor

	if in.RequestedMargin >= 0 {
		s.HBackgroundMargin = in.RequestedMargin
		s.VBackgroundMargin = in.RequestedMargin
	}
	s.Scale = mgl64.Vec3{s.XScaleFactor, 1, s.ZScaleFactor}
	s.ScaleWithBackground = mgl64.Vec3{
		s.XScaleFactor + s.HBackgroundMargin,
		1 + s.VBackgroundMargin,
		s.ZScaleFactor + s.HBackgroundMargin,
	}
	return s
}

// BarScaling caches a BarState and recomputes it whole when any input
// changed since the last read.
type BarScaling struct {
	in    BarInput
	state BarState
	stale bool
}

func NewBarScaling() *BarScaling {
	return &BarScaling{in: BarInput{Spec: DefaultBarSpec(), RequestedMargin: -1}, stale: true}
}

func (b *BarScaling) Input() BarInput { return b.in }

func (b *BarScaling) SetInput(in BarInput) {
	if in != b.in {
		b.in = in
		b.stale = true
	}
}

// SetCounts updates the sample counts; the max scene size follows them
// unless it was fixed.
func (b *BarScaling) SetCounts(rows, cols int) {
	in := b.in
	in.Rows, in.Columns = rows, cols
	b.SetInput(in)
}

func (b *BarScaling) SetSpec(spec BarSpec) {
	in := b.in
	in.Spec = spec
	b.SetInput(in)
}

func (b *BarScaling) SetSeriesMargin(m Size) {
	in := b.in
	in.SeriesMargin = m
	b.SetInput(in)
}

func (b *BarScaling) SetRequestedMargin(m float64) {
	in := b.in
	in.RequestedMargin = m
	b.SetInput(in)
}

func (b *BarScaling) Invalidate() { b.stale = true }

func (b *BarScaling) State() BarState {
	if b.stale {
		b.state = ComputeBar(b.in)
		b.stale = false
	}
	return b.state
}
