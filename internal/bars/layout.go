// Package bars places one box per bar series item.
package bars

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/scaling"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

var upVector = mgl64.Vec3{0, 1, 0}

// Params are the graph wide inputs of one sync pass.
type Params struct {
	Scaling scaling.BarState
	Height  scaling.Height
	Y       *axis.Helper
	// SeriesMargin is the share of a series slot left empty.
	SeriesMargin scaling.Size
	// Uniform scales Z like X when several series share a slot.
	Uniform bool
}

// Layout is the per pass placement derived from Params.
type Layout struct {
	Params
	Visible      int
	SeriesStep   float64
	SeriesStart  float64
	SeriesScaleX float64
	SeriesScaleZ float64
	// ZeroPosition is the forward normalized position of the floor.
	ZeroPosition float64
}

func NewLayout(p Params, visible int) Layout {
	l := Layout{Params: p, Visible: visible}
	if visible < 1 {
		visible = 1
	}
	l.SeriesStep = 1 / float64(visible)
	l.SeriesScaleX = l.SeriesStep
	l.SeriesStart = SeriesStart(visible, p.SeriesMargin.W)
	l.SeriesScaleZ = 1
	if p.Uniform {
		l.SeriesScaleZ = l.SeriesScaleX
	}
	l.ZeroPosition = p.Y.Axis.PositionAt(p.Height.ActualFloor)
	return l
}

// SeriesStart is the lateral offset of the first of n series sharing a
// category slot.
func SeriesStart(n int, margin float64) float64 {
	step := 1 / float64(n)
	return -((float64(n) - 1) * 0.5) * (step - step*margin)
}

// SeriesOffset is the offset of the series at visual index i relative to
// the slot centre.
func (l Layout) SeriesOffset(i int) float64 {
	return l.SeriesStart + l.SeriesStep*(float64(i)-float64(i)*l.SeriesMargin.W)
}

// Bar is the placement of one item.
type Bar struct {
	Transform scene.Transform
	Height    float64
}

func (b Bar) Hidden() bool { return b.Height == 0 }

// Place computes the transform of the item at c of the series at visual
// index visualIndex. rotation is in degrees about the vertical axis.
func (l Layout) Place(c series.Coord, visualIndex int, value, rotation float64, mesh mgl64.Quat) Bar {
	st := l.Scaling
	// Height works on the forward position and mirrors the result itself.
	h := l.Height.BarHeight(l.Y.Axis.PositionAt(value), l.ZeroPosition, l.Y.Reversed())

	rot := mgl64.QuatIdent()
	if rotation != 0 {
		rot = mgl64.QuatRotate(mgl64.DegToRad(rotation), upVector)
	}
	if h < 0 {
		rot = rot.Mul(mgl64.QuatRotate(mgl64.DegToRad(-180), mgl64.Vec3{1, 0, 0}))
	}
	rot = rot.Mul(mesh)

	seriesPos := l.SeriesOffset(visualIndex) + 0.5
	colPos := (float64(c.Col) + seriesPos) * st.Spacing.W
	rowPos := (float64(c.Row) + 0.5) * st.Spacing.H

	return Bar{
		Transform: scene.Transform{
			Position: mgl64.Vec3{
				(colPos - st.RowWidth) / st.ScaleFactor,
				h - l.Height.BackgroundAdjustment,
				(st.ColumnDepth - rowPos) / st.ScaleFactor,
			},
			Rotation: rot,
			Scale: mgl64.Vec3{
				st.XScale * l.SeriesScaleX,
				math.Abs(h),
				st.ZScale * l.SeriesScaleZ,
			},
		},
		Height: h,
	}
}

// RangeGradientPosition is where a bar centred at y looks up a range
// gradient.
func RangeGradientPosition(y float64) float64 {
	return (y + 1) * 0.5
}
