package axis

import "math"

// Helper maps axis values into scene coordinates for one graph axis. The
// normalized position is reversed when the axis is, then scaled and
// translated: ItemPositionAt(min) == Translate and
// ItemPositionAt(max) == Translate+Scale for a forward axis.
type Helper struct {
	Axis      *Axis
	Scale     float64
	Translate float64
}

func NewHelper(a *Axis) *Helper {
	return &Helper{Axis: a, Scale: 1}
}

func (h *Helper) Min() float64 { return h.Axis.Min() }
func (h *Helper) Max() float64 { return h.Axis.Max() }

func (h *Helper) Reversed() bool { return h.Axis.Reversed() }

// PositionAt is the normalized, reversal aware position of v.
func (h *Helper) PositionAt(v float64) float64 {
	p := h.Axis.PositionAt(v)
	if h.Axis.Reversed() {
		p = 1 - p
	}
	return p
}

func (h *Helper) ItemPositionAt(v float64) float64 {
	return h.PositionAt(v)*h.Scale + h.Translate
}

func (h *Helper) GridPositionAt(i int) float64 {
	return at(h.Axis.GridPositions(), i)
}

func (h *Helper) SubGridPositionAt(i int) float64 {
	return at(h.Axis.SubGridPositions(), i)
}

func (h *Helper) LabelPositionAt(i int) float64 {
	return at(h.Axis.LabelPositions(), i)
}

func (h *Helper) GridCount() int    { return len(h.Axis.GridPositions()) }
func (h *Helper) SubGridCount() int { return len(h.Axis.SubGridPositions()) }

// CategoryPositionAt is the centre of category slot i.
func (h *Helper) CategoryPositionAt(i int) float64 {
	return (float64(i) + 0.5) / float64(h.Axis.CategoryCount())
}

// CategoryItemPositionAt maps a fractional category index into the
// scene. Whole indexes land on slot centres.
func (h *Helper) CategoryItemPositionAt(v float64) float64 {
	return (v+0.5)/float64(h.Axis.CategoryCount())*h.Scale + h.Translate
}

// Contains reports whether v lies inside the axis: the range of a value
// axis, or the slots of a category axis.
func (h *Helper) Contains(v float64) bool {
	if h.Axis.Kind == KindCategory {
		return v >= -0.5 && v <= float64(h.Axis.CategoryCount())-0.5
	}
	return v >= h.Axis.Min() && v <= h.Axis.Max()
}

// SceneAt maps v the way items of this axis are mapped.
func (h *Helper) SceneAt(v float64) float64 {
	if h.Axis.Kind == KindCategory {
		return h.CategoryItemPositionAt(v)
	}
	return h.ItemPositionAt(v)
}

// UnitScale is the scene length of one data unit along the axis.
func (h *Helper) UnitScale() float64 {
	span := float64(h.Axis.CategoryCount())
	if h.Axis.Kind != KindCategory {
		span = h.Axis.Max() - h.Axis.Min()
	}
	if span <= 0 {
		return math.Abs(h.Scale)
	}
	return math.Abs(h.Scale) / span
}

func at(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
