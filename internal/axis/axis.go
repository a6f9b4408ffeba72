package axis

import (
	"github.com/san-kum/datavis3d/internal/logging"
)

type Kind int

const (
	KindValue Kind = iota
	KindCategory
)

type Orientation int

const (
	OrientationX Orientation = iota
	OrientationY
	OrientationZ
)

func (o Orientation) String() string {
	switch o {
	case OrientationX:
		return "x"
	case OrientationY:
		return "y"
	case OrientationZ:
		return "z"
	}
	return "unknown"
}

const (
	DefaultSegments    = 5
	DefaultSubSegments = 1
	DefaultLabelFormat = "%.1f"
)

// Change is a set of pending axis modifications, consumed by the graph
// once per sync pass.
type Change uint8

const (
	ChangeRange Change = 1 << iota
	ChangeSegments
	ChangeReversed
	ChangeFormatter
	ChangeLabels
)

// Axis describes one of the three graph axes. Value axes map numbers
// through a Formatter; category axes place labels at evenly spaced slots.
type Axis struct {
	Kind              Kind
	Orientation       Orientation
	Title             string
	TitleVisible      bool
	TitleFixed        bool
	LabelFormat       string
	LabelAutoRotation float64
	AutoAdjust        bool

	min, max    float64
	segments    int
	subSegments int
	reversed    bool
	labels      []string
	formatter   Formatter
	stale       bool
	changes     Change
}

func NewValueAxis(o Orientation) *Axis {
	return &Axis{
		Kind:        KindValue,
		Orientation: o,
		TitleFixed:  true,
		LabelFormat: DefaultLabelFormat,
		AutoAdjust:  true,
		max:         10,
		segments:    DefaultSegments,
		subSegments: DefaultSubSegments,
		formatter:   &LinearFormatter{},
		stale:       true,
	}
}

func NewCategoryAxis(o Orientation, labels ...string) *Axis {
	a := &Axis{
		Kind:        KindCategory,
		Orientation: o,
		TitleFixed:  true,
		AutoAdjust:  true,
		segments:    1,
		subSegments: 1,
		formatter:   &LinearFormatter{},
		stale:       true,
	}
	a.labels = append([]string(nil), labels...)
	return a
}

func (a *Axis) Min() float64         { return a.min }
func (a *Axis) Max() float64         { return a.max }
func (a *Axis) Reversed() bool       { return a.reversed }
func (a *Axis) Segments() int        { return a.segments }
func (a *Axis) SubSegments() int     { return a.subSegments }
func (a *Axis) Formatter() Formatter { return a.formatter }

func (a *Axis) Labels() []string {
	if a.Kind == KindCategory {
		return a.labels
	}
	a.recalculate()
	out := make([]string, len(a.formatter.LabelPositions()))
	for i := range out {
		out[i] = a.formatter.Label(i, a.LabelFormat)
	}
	return out
}

// SetRange fixes the range and turns auto adjustment off. Swapped bounds
// are put back in order.
func (a *Axis) SetRange(min, max float64) {
	a.AutoAdjust = false
	a.setRange(min, max)
}

// AdjustRange applies a computed range while auto adjustment is on.
func (a *Axis) AdjustRange(min, max float64) {
	if !a.AutoAdjust {
		return
	}
	a.setRange(min, max)
}

func (a *Axis) setRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	if min == a.min && max == a.max {
		return
	}
	a.min, a.max = min, max
	a.stale = true
	a.changes |= ChangeRange
}

func (a *Axis) SetSegments(n int) {
	if n < 1 {
		n = 1
	}
	if n == a.segments {
		return
	}
	a.segments = n
	a.stale = true
	a.changes |= ChangeSegments
}

func (a *Axis) SetSubSegments(n int) {
	if n < 1 {
		n = 1
	}
	if n == a.subSegments {
		return
	}
	a.subSegments = n
	a.stale = true
	a.changes |= ChangeSegments
}

func (a *Axis) SetReversed(r bool) {
	if r == a.reversed {
		return
	}
	a.reversed = r
	a.changes |= ChangeReversed
}

// SetFormatter replaces the value formatter. Nil restores linear mapping.
func (a *Axis) SetFormatter(f Formatter) {
	if f == nil {
		f = &LinearFormatter{}
	}
	a.formatter = f
	a.stale = true
	a.changes |= ChangeFormatter
}

func (a *Axis) SetLabels(labels []string) {
	a.labels = append(a.labels[:0:0], labels...)
	a.changes |= ChangeLabels
}

// TakeChanges returns and clears the pending change set.
func (a *Axis) TakeChanges() Change {
	c := a.changes
	a.changes = 0
	return c
}

func (a *Axis) recalculate() {
	if !a.stale {
		return
	}
	a.stale = false
	if a.min == a.max {
		logging.Logger().Debug("zero span axis, items placed at center",
			"axis", a.Orientation.String(), "value", a.min)
	}
	a.segments, a.subSegments = a.formatter.Recalculate(a.min, a.max, a.segments, a.subSegments)
}

// PositionAt returns the normalized position of v in [0,1] for values
// inside the range. Reversal is applied by Helper, not here.
func (a *Axis) PositionAt(v float64) float64 {
	a.recalculate()
	return a.formatter.PositionAt(v)
}

func (a *Axis) ValueAt(pos float64) float64 {
	a.recalculate()
	return a.formatter.ValueAt(pos)
}

func (a *Axis) GridPositions() []float64 {
	a.recalculate()
	return a.formatter.GridPositions()
}

func (a *Axis) SubGridPositions() []float64 {
	a.recalculate()
	return a.formatter.SubGridPositions()
}

func (a *Axis) LabelPositions() []float64 {
	a.recalculate()
	return a.formatter.LabelPositions()
}

// CategoryCount is the number of category slots, at least one.
func (a *Axis) CategoryCount() int {
	if n := len(a.labels); n > 0 {
		return n
	}
	if n := int(a.max-a.min) + 1; n > 0 {
		return n
	}
	return 1
}
