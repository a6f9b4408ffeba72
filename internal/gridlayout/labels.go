package gridlayout

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextWidth is the pixel width of s in the built in 7x13 face.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, s).Ceil())
}

// maxWidth is the shared scene width of the labels of one axis.
func maxWidth(in Input, texts []string) float64 {
	w := 0.0
	for _, t := range texts {
		w = math.Max(w, in.LabelWidth(t))
	}
	return (w + textPadding) * in.LabelScale
}

// autoAngle returns the auto rotation of a and the camera angles scaled
// by it.
func autoAngle(a *axis.Axis, c Camera) (angle, camX, camY float64) {
	angle = math.Max(0, math.Min(a.LabelAutoRotation, 90))
	frac := angle / 90
	return angle, c.XRotation * frac, c.YRotation * frac
}

// xLabelEuler orients the X axis labels lying on the floor edge.
func xLabelEuler(f Flipped, a, cx, cy float64) mgl64.Vec3 {
	if a == 0 {
		r := mgl64.Vec3{-90, 90, 0}
		if f.X {
			r[1] = -90
		}
		if f.Y {
			r[0] = 90
			if !f.X {
				r[1] = 90
			}
		}
		return r
	}
	r := mgl64.Vec3{0, 90, 0}
	if f.X {
		r[1] = -90
	}
	switch {
	case f.Y && f.Z && f.X:
		r[0] = 90 - (2*a-cx)*(a+cy)/a
		r[2] = -a - cy
	case f.Y && f.Z:
		r[0] = 90 - (2*a+cx)*(a+cy)/a
		r[2] = a + cy
	case f.Y && f.X:
		r[0] = 90 + cx*-(a+cy)/a
		r[2] = a + cy
	case f.Y:
		r[0] = 90 - cx*(-a-cy)/a
		r[2] = -a - cy
	case f.Z && f.X:
		r[0] = -90 + (2*a-cx)*(a-cy)/a
		r[2] = a - cy
	case f.Z:
		r[0] = -90 + (2*a+cx)*(a-cy)/a
		r[2] = -a + cy
	case f.X:
		r[0] = -90 - cx*(-a+cy)/a
		r[2] = -a + cy
	default:
		r[0] = -90 + cx*-(a-cy)/a
		r[2] = a - cy
	}
	return r
}

// zLabelEuler orients the Z axis labels lying on the floor edge.
func zLabelEuler(f Flipped, a, cx, cy float64) mgl64.Vec3 {
	r := mgl64.Vec3{-90, 0, 0}
	if f.Z {
		r[1] = 180
	}
	if f.Y {
		r[0] = 90
	}
	if a == 0 {
		return r
	}
	switch {
	case f.Y && f.Z && f.X:
		r[0] = 90 - (a-cx)*(-a-cy)/a
		r[2] = a + cy
	case f.Y && f.Z:
		r[0] = 90 + (a+cx)*(a+cy)/a
		r[2] = -a - cy
	case f.Y && f.X:
		r[0] = 90 + (a-cx)*-(a+cy)/a
		r[2] = -a - cy
	case f.Y:
		r[0] = 90 - (a+cx)*(a+cy)/a
		r[2] = a + cy
	case f.Z && f.X:
		r[0] = -90 + (a-cx)*(-a+cy)/a
		r[2] = -a + cy
	case f.Z:
		r[0] = -90 - (a+cx)*(a-cy)/a
		r[2] = a - cy
	case f.X:
		r[0] = -90 - (a-cx)*(-a+cy)/a
		r[2] = a - cy
	default:
		r[0] = -90 + (a+cx)*(a-cy)/a
		r[2] = -a + cy
	}
	return r
}

// yLabelEulers orients the Y axis labels on the side and back walls.
func yLabelEulers(f Flipped, a, cx, cy float64) (side, back mgl64.Vec3) {
	side = mgl64.Vec3{0, -90, 0}
	if a == 0 {
		if !f.X {
			side[1] = 90
		}
		if f.Z {
			back[1] = 180
		}
	} else {
		switch {
		case f.X && f.Z:
			back[1] = 180 + 2*a - cx
		case !f.X && f.Z:
			back[1] = 180 - 2*a - cx
		default:
			back[1] = -cx
		}
		if f.X {
			side[1] = -90 + a - cx
		} else {
			side[1] = 90 - a - cx
		}
	}
	side[0], back[0] = -cy, -cy
	return side, back
}

func axisLabels(a *axis.Axis) []string {
	if a == nil {
		return nil
	}
	return a.Labels()
}

func labels(in Input, f Flipped) ([]Label, [3]Title) {
	bg := in.background()
	var out []Label
	var titles [3]Title

	// X labels along the front or back floor edge.
	texts := axisLabels(in.X)
	a, cx, cy := autoAngle(in.X, in.Camera)
	euler := xLabelEuler(f, a, cx, cy)
	q := EulerVec(euler)
	width := maxWidth(in, texts)
	adj := width * 0.5
	trans := mgl64.Vec3{0, bg[1] + adj*math.Abs(math.Sin(mgl64.DegToRad(euler[2]))), bg[2] + adj + in.LabelMargin}
	if !f.Y {
		trans[1] = -trans[1]
	}
	if f.Z {
		trans[2] = -trans[2]
	}
	for i, t := range texts {
		p := trans
		if c := in.Categories; c != nil {
			p[0], p[1] = c.columnCentre(i), c.FloorLevel
		} else {
			p[0] = valuePosition(in.X, at(in.X.LabelPositions(), i), in.Scale)
		}
		out = append(out, Label{Axis: axis.OrientationX, Wall: WallFloor, Text: t, Position: p, Rotation: q, Width: width})
	}
	titles[0] = xTitle(in, f, euler, q, trans, width)

	// Y labels on the side wall and again on the back wall.
	texts = axisLabels(in.Y)
	a, cx, cy = autoAngle(in.Y, in.Camera)
	sideEuler, backEuler := yLabelEulers(f, a, cx, cy)
	sideQ, backQ := EulerVec(sideEuler), EulerVec(backEuler)
	width = maxWidth(in, texts)
	adj = width*0.5 + in.LabelMargin

	sideTrans := mgl64.Vec3{-bg[0], 0, bg[2] + adj}
	if f.X {
		sideTrans[0] = bg[0]
	}
	if f.Z {
		sideTrans[2] = -sideTrans[2]
	}
	backTrans := mgl64.Vec3{bg[0] + adj, 0, -bg[2]}
	if f.X {
		backTrans[0] = -backTrans[0]
	}
	if f.Z {
		backTrans[2] = bg[2]
	}
	positions := in.Y.LabelPositions()
	for i, t := range texts {
		y := valuePosition(in.Y, at(positions, i), in.Scale)
		s, b := sideTrans, backTrans
		s[1], b[1] = y, y
		out = append(out,
			Label{Axis: axis.OrientationY, Wall: WallSide, Text: t, Position: s, Rotation: sideQ, Width: width},
			Label{Axis: axis.OrientationY, Wall: WallBack, Text: t, Position: b, Rotation: backQ, Width: width})
	}
	titles[1] = yTitle(in, f, sideEuler, backEuler, sideQ, backQ, sideTrans, backTrans, width)

	// Z labels along the left or right floor edge.
	texts = axisLabels(in.Z)
	a, cx, cy = autoAngle(in.Z, in.Camera)
	euler = zLabelEuler(f, a, cx, cy)
	q = EulerVec(euler)
	width = maxWidth(in, texts)
	adj = width * 0.5
	trans = mgl64.Vec3{bg[0] + adj + in.LabelMargin, bg[1] + adj*math.Abs(math.Sin(mgl64.DegToRad(euler[2]))), 0}
	if f.X {
		trans[0] = -trans[0]
	}
	if !f.Y {
		trans[1] = -trans[1]
	}
	for i, t := range texts {
		p := trans
		if c := in.Categories; c != nil {
			p[1], p[2] = c.FloorLevel, c.rowCentre(i)
		} else {
			p[2] = valuePosition(in.Z, at(in.Z.LabelPositions(), i), in.Scale)
		}
		out = append(out, Label{Axis: axis.OrientationZ, Wall: WallFloor, Text: t, Position: p, Rotation: q, Width: width})
	}
	titles[2] = zTitle(in, f, euler, q, trans, width)
	return out, titles
}

func at(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func titleOffset(in Input, width float64) float64 {
	return 2 * (in.LabelMargin + width*0.5)
}

func newTitle(a *axis.Axis) Title {
	return Title{Axis: a.Orientation, Text: a.Title, Visible: a.TitleVisible && a.Title != ""}
}

func zeroStraight(deg float64) float64 {
	if deg == 180 || deg == -180 {
		return 0
	}
	return deg
}

func xTitle(in Input, f Flipped, labelEuler mgl64.Vec3, labelQ mgl64.Quat, trans mgl64.Vec3, width float64) Title {
	t := newTitle(in.X)
	off := titleOffset(in, width)
	rz := labelEuler[2]
	zRot, yRot := 0.0, 0.0
	xRot := -90 + rz
	offRot := rz
	extra := -90.0

	switch {
	case f.Y && f.Z:
		zRot = 180
		off = -off
		if f.X {
			offRot, extra = -offRot, -extra
		} else {
			xRot = -90 - rz
		}
	case f.Y:
		zRot, yRot = 180, 180
		if f.X {
			offRot = -offRot
			xRot = -90 - rz
		} else {
			extra = -extra
		}
	case f.Z:
		off = -off
		yRot = 180
		if f.X {
			offRot = -offRot
		} else {
			xRot = -90 - rz
			extra = -extra
		}
	case f.X:
		offRot = -offRot
		xRot = -90 - rz
		extra = -extra
	}

	offset := rot(axisX, zeroStraight(offRot)).Rotate(mgl64.Vec3{0, 0, off})
	trans[0] = 0
	t.Position = trans.Add(offset)
	if in.X.TitleFixed {
		t.Rotation = rot(axisZ, zRot).Mul(rot(axisY, yRot)).Mul(rot(axisX, xRot))
	} else {
		t.Rotation = labelQ.Mul(rot(axisZ, extra))
	}
	return t
}

// yTitle sits beside whichever Y label column faces the camera, centred
// vertically.
func yTitle(in Input, f Flipped, sideEuler, backEuler mgl64.Vec3, sideQ, backQ mgl64.Quat, sideTrans, backTrans mgl64.Vec3, width float64) Title {
	t := newTitle(in.Y)
	off := titleOffset(in, width)
	yRot, trans, total := sideEuler[1], sideTrans, sideQ
	if f.X == f.Z {
		yRot, trans, total = backEuler[1], backTrans, backQ
	}
	trans[1] = 0
	offset := rot(axisY, yRot).Rotate(mgl64.Vec3{-off, 0, 0})
	t.Position = trans.Add(offset)
	if in.Y.TitleFixed {
		t.Rotation = rot(axisY, yRot).Mul(rot(axisZ, 90))
	} else {
		t.Rotation = total.Mul(rot(axisZ, 90))
	}
	return t
}

func zTitle(in Input, f Flipped, labelEuler mgl64.Vec3, labelQ mgl64.Quat, trans mgl64.Vec3, width float64) Title {
	t := newTitle(in.Z)
	off := titleOffset(in, width)
	zRot := labelEuler[2]
	yRot, xRot, extra := -90.0, -90.0, 90.0

	if f.Y {
		xRot = 90
	}
	switch {
	case f.Z && f.X:
		zRot = -zRot
		off = -off
		if f.Y {
			extra = -extra
		}
	case f.Z:
		zRot = -zRot
		yRot = 90
		if !f.Y {
			extra = -extra
		}
	case f.X:
		off = -off
		if !f.Y {
			extra = -extra
		}
	default:
		yRot = 90
		if f.Y {
			extra = -extra
		}
	}

	offset := rot(axisZ, zeroStraight(zRot)).Rotate(mgl64.Vec3{off, 0, 0})
	trans[2] = 0
	t.Position = trans.Add(offset)
	if in.Z.TitleFixed {
		t.Rotation = rot(axisZ, zRot).Mul(rot(axisY, yRot)).Mul(rot(axisX, xRot))
	} else {
		t.Rotation = labelQ.Mul(rot(axisZ, extra))
	}
	return t
}
