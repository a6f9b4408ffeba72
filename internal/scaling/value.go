package scaling

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ItemScaler      = 3.0
	DefaultMinSize  = 0.01
	DefaultMaxSize  = 0.1
	DefaultAspect   = 2.0
	LineLengthScale = 0.02
)

// ValueInput drives scatter and surface scaling.
type ValueInput struct {
	XSpan, ZSpan float64
	// Aspect is the ratio of the horizontal extent to the height.
	Aspect float64
	// HorizontalAspect fixes X:Z; zero derives it from the axis spans.
	HorizontalAspect float64
	RequestedMargin  float64
	MaxItemSize      float64
}

// ValueState maps normalized axis positions into the scene:
// scene = position*Scale + Translate per axis.
type ValueState struct {
	ScaleWithBackground mgl64.Vec3
	Scale               mgl64.Vec3
	Translate           mgl64.Vec3
	HBackgroundMargin   float64
	VBackgroundMargin   float64
}

func ComputeValue(in ValueInput) ValueState {
	var s ValueState
	if in.RequestedMargin < 0 {
		if in.MaxItemSize > DefaultMaxSize {
			s.HBackgroundMargin = in.MaxItemSize / ItemScaler
		} else {
			s.HBackgroundMargin = DefaultMaxSize
		}
		s.VBackgroundMargin = s.HBackgroundMargin
	} else {
		s.HBackgroundMargin = in.RequestedMargin
		s.VBackgroundMargin = in.RequestedMargin
	}

	w, d := in.XSpan, in.ZSpan
	if in.HorizontalAspect > 0 {
		w, d = in.HorizontalAspect, 1
	}
	if w <= 0 {
		w = 1
	}
	if d <= 0 {
		d = 1
	}

	aspect := in.Aspect
	if aspect <= 0 {
		aspect = DefaultAspect
	}
	horizontal, scaleY := aspect, 1.0
	if aspect > 2 {
		horizontal, scaleY = 2, 2/aspect
	}

	factor := math.Max(w, d)
	scaleX := horizontal * w / factor
	scaleZ := horizontal * d / factor

	s.ScaleWithBackground = mgl64.Vec3{scaleX, scaleY, scaleZ}
	s.Scale = mgl64.Vec3{scaleX * 2, scaleY * 2, scaleZ * -2}
	s.Translate = mgl64.Vec3{-scaleX, -scaleY, scaleZ}
	return s
}

// PointSize is the default scatter item size for n visible points.
func PointSize(n int) float64 {
	if n < 1 {
		return DefaultMaxSize
	}
	return math.Max(DefaultMinSize, math.Min(2/math.Sqrt(float64(n)), DefaultMaxSize))
}
