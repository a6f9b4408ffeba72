package gridlayout

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/scaling"
)

const (
	DefaultLabelMargin = 0.1
	// DefaultLabelScale is the scene size of one label pixel.
	DefaultLabelScale = 0.005
	// textPadding is added to every label width, in pixels.
	textPadding = 12
)

type Wall int

const (
	WallFloor Wall = iota
	WallSide
	WallBack
)

func (w Wall) String() string {
	switch w {
	case WallSide:
		return "side"
	case WallBack:
		return "back"
	}
	return "floor"
}

// Categories describes the category slots of a bar graph. Grid lines run
// between slots and labels sit at slot centres on the floor level.
type Categories struct {
	Rows, Columns int
	State         scaling.BarState
	// FloorLevel is the scene height of the bar floor.
	FloorLevel float64
}

func NewCategories(rows, cols int, st scaling.BarState, h scaling.Height) *Categories {
	return &Categories{Rows: rows, Columns: cols, State: st, FloorLevel: -h.BackgroundAdjustment}
}

func (c *Categories) columnLine(i int) float64 {
	return (float64(i)*c.State.Spacing.W - c.State.RowWidth) / c.State.ScaleFactor
}

func (c *Categories) rowLine(i int) float64 {
	return (c.State.ColumnDepth - float64(i)*c.State.Spacing.H) / c.State.ScaleFactor
}

func (c *Categories) columnCentre(i int) float64 {
	return ((float64(i)+0.5)*c.State.Spacing.W - c.State.RowWidth) / c.State.ScaleFactor
}

func (c *Categories) rowCentre(i int) float64 {
	return (c.State.ColumnDepth - (float64(i)+0.5)*c.State.Spacing.H) / c.State.ScaleFactor
}

// Input is everything the layout depends on.
type Input struct {
	X, Y, Z *axis.Axis
	// Scale is the half extent of the plot volume per axis.
	Scale mgl64.Vec3
	// Margin grows the background beyond Scale.
	Margin mgl64.Vec3
	Camera Camera
	// Categories is set for bar graphs, whose X and Z axes are category
	// axes.
	Categories *Categories
	// VerticalLines adds the vertical wall lines of the X and Z axes.
	VerticalLines bool
	LabelMargin   float64
	LabelScale    float64
	// LabelWidth measures label text in pixels. Nil uses the built in
	// fixed width face.
	LabelWidth func(string) float64
}

func (in Input) background() mgl64.Vec3 { return in.Scale.Add(in.Margin) }

// Line is one grid line segment in scene space. Rotation orients a unit
// line mesh lying along its local X axis.
type Line struct {
	Axis     axis.Orientation
	Wall     Wall
	Sub      bool
	Start    mgl64.Vec3
	End      mgl64.Vec3
	Rotation mgl64.Quat
}

// Label is one tick label.
type Label struct {
	Axis     axis.Orientation
	Wall     Wall
	Text     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Width is the scene width shared by all labels of the axis.
	Width float64
}

type Title struct {
	Axis     axis.Orientation
	Text     string
	Visible  bool
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Layout is the full decoration of one frame.
type Layout struct {
	Flipped         Flipped
	BackgroundEuler mgl64.Vec3
	Background      mgl64.Quat
	BackgroundScale mgl64.Vec3
	Lines           []Line
	Labels          []Label
	Titles          [3]Title
}

func Compute(in Input) Layout {
	if in.LabelMargin == 0 {
		in.LabelMargin = DefaultLabelMargin
	}
	if in.LabelScale == 0 {
		in.LabelScale = DefaultLabelScale
	}
	if in.LabelWidth == nil {
		in.LabelWidth = TextWidth
	}
	f := FlippedFrom(in.Camera)
	bgEuler := BackgroundEuler(f)
	l := Layout{
		Flipped:         f,
		BackgroundEuler: bgEuler,
		Background:      EulerVec(bgEuler),
		BackgroundScale: in.background(),
	}
	l.Lines = gridLines(in, f)
	l.Labels, l.Titles = labels(in, f)
	return l
}

// valuePosition maps a normalized axis position onto the scene axis of
// orientation o, reversal aware. Z grows towards the viewer as the value
// decreases.
func valuePosition(a *axis.Axis, p float64, scale mgl64.Vec3) float64 {
	if a.Reversed() {
		p = 1 - p
	}
	switch a.Orientation {
	case axis.OrientationX:
		return p*2*scale[0] - scale[0]
	case axis.OrientationY:
		return p*2*scale[1] - scale[1]
	}
	return p*-2*scale[2] + scale[2]
}

// axisLines returns the major or sub grid line positions of an axis in
// scene units.
func axisLines(in Input, a *axis.Axis, sub bool) []float64 {
	if c := in.Categories; c != nil && a.Orientation != axis.OrientationY {
		if sub {
			return nil
		}
		if a.Orientation == axis.OrientationX {
			out := make([]float64, c.Columns+1)
			for i := range out {
				out[i] = c.columnLine(i)
			}
			return out
		}
		out := make([]float64, c.Rows+1)
		for i := range out {
			out[i] = c.rowLine(i)
		}
		return out
	}
	src := a.GridPositions()
	if sub {
		src = a.SubGridPositions()
	}
	out := make([]float64, len(src))
	for i, p := range src {
		out[i] = valuePosition(a, p, in.Scale)
	}
	return out
}

func gridLines(in Input, f Flipped) []Line {
	bg := in.background()
	var lines []Line
	add := func(o axis.Orientation, w Wall, sub bool, rot mgl64.Quat, pos []float64, seg func(v float64) (mgl64.Vec3, mgl64.Vec3)) {
		for _, v := range pos {
			s, e := seg(v)
			lines = append(lines, Line{Axis: o, Wall: w, Sub: sub, Start: s, End: e, Rotation: rot})
		}
	}

	floorY := -bg[1]
	floorZRot := mgl64.Vec3{90, 0, 180}
	floorXRot := mgl64.Vec3{-90, 90, 0}
	if f.Y {
		floorY = bg[1]
		floorZRot[2] = 0
		floorXRot[2] = 180
	}
	sideX := -bg[0]
	sideVertRot := mgl64.Vec3{0, 90, 0}
	sideHorizRot := mgl64.Vec3{180, -90, 0}
	if f.X {
		sideX = bg[0]
		sideVertRot[1] = -90
		sideHorizRot[1] = 90
	}
	backZ := -bg[2]
	backHorizRot := mgl64.Vec3{}
	backVertRot := mgl64.Vec3{}
	if f.Z {
		backZ = bg[2]
		backHorizRot[0] = 180
		backVertRot[1] = 180
	}

	for _, sub := range []bool{false, true} {
		xs := axisLines(in, in.X, sub)
		ys := axisLines(in, in.Y, sub)
		zs := axisLines(in, in.Z, sub)

		add(axis.OrientationZ, WallFloor, sub, EulerVec(floorZRot), zs, func(z float64) (mgl64.Vec3, mgl64.Vec3) {
			return mgl64.Vec3{-bg[0], floorY, z}, mgl64.Vec3{bg[0], floorY, z}
		})
		add(axis.OrientationX, WallFloor, sub, EulerVec(floorXRot), xs, func(x float64) (mgl64.Vec3, mgl64.Vec3) {
			return mgl64.Vec3{x, floorY, -bg[2]}, mgl64.Vec3{x, floorY, bg[2]}
		})
		add(axis.OrientationY, WallSide, sub, EulerVec(sideHorizRot), ys, func(y float64) (mgl64.Vec3, mgl64.Vec3) {
			return mgl64.Vec3{sideX, y, -bg[2]}, mgl64.Vec3{sideX, y, bg[2]}
		})
		add(axis.OrientationY, WallBack, sub, EulerVec(backHorizRot), ys, func(y float64) (mgl64.Vec3, mgl64.Vec3) {
			return mgl64.Vec3{-bg[0], y, backZ}, mgl64.Vec3{bg[0], y, backZ}
		})
		if in.VerticalLines {
			add(axis.OrientationZ, WallSide, sub, EulerVec(sideVertRot), zs, func(z float64) (mgl64.Vec3, mgl64.Vec3) {
				return mgl64.Vec3{sideX, -bg[1], z}, mgl64.Vec3{sideX, bg[1], z}
			})
			add(axis.OrientationX, WallBack, sub, EulerVec(backVertRot), xs, func(x float64) (mgl64.Vec3, mgl64.Vec3) {
				return mgl64.Vec3{x, -bg[1], backZ}, mgl64.Vec3{x, bg[1], backZ}
			})
		}
	}
	return lines
}
