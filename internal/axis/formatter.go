package axis

import (
	"fmt"
	"math"
	"strings"
)

// Formatter maps axis values to normalized positions and produces the
// grid, sub grid and label layout for a value axis.
type Formatter interface {
	// Recalculate rebuilds the layout and returns the segment counts in
	// effect, which a formatter may override.
	Recalculate(min, max float64, segments, subSegments int) (int, int)
	PositionAt(v float64) float64
	ValueAt(pos float64) float64
	GridPositions() []float64
	SubGridPositions() []float64
	LabelPositions() []float64
	Label(index int, format string) string
}

// LinearFormatter spaces grid lines evenly between min and max.
type LinearFormatter struct {
	min, max float64
	grid     []float64
	sub      []float64
	labels   []float64
	values   []float64
}

func (f *LinearFormatter) Recalculate(min, max float64, segments, subSegments int) (int, int) {
	if segments < 1 {
		segments = 1
	}
	if subSegments < 1 {
		subSegments = 1
	}
	f.min, f.max = min, max

	subGridCount := subSegments - 1
	step := 1.0 / float64(segments)
	subStep := 0.0
	if subGridCount > 0 {
		subStep = step / float64(subGridCount+1)
	}

	f.grid = make([]float64, segments+1)
	f.labels = make([]float64, segments+1)
	f.values = make([]float64, segments+1)
	f.sub = make([]float64, 0, segments*subGridCount)

	span := max - min
	for i := 0; i < segments; i++ {
		g := step * float64(i)
		f.grid[i], f.labels[i] = g, g
		f.values[i] = g*span + min
		for j := 0; j < subGridCount; j++ {
			f.sub = append(f.sub, g+subStep*float64(j+1))
		}
	}
	// exact end position, no accumulated rounding
	f.grid[segments], f.labels[segments], f.values[segments] = 1, 1, max
	return segments, subSegments
}

func (f *LinearFormatter) PositionAt(v float64) float64 {
	span := f.max - f.min
	if span == 0 {
		return 0.5
	}
	return (v - f.min) / span
}

func (f *LinearFormatter) ValueAt(pos float64) float64 {
	return pos*(f.max-f.min) + f.min
}

func (f *LinearFormatter) GridPositions() []float64    { return f.grid }
func (f *LinearFormatter) SubGridPositions() []float64 { return f.sub }
func (f *LinearFormatter) LabelPositions() []float64   { return f.labels }

func (f *LinearFormatter) Label(index int, format string) string {
	if index < 0 || index >= len(f.values) {
		return ""
	}
	return FormatValue(format, f.values[index])
}

// FormatValue renders v with a printf style format. Integer verbs
// receive the rounded value.
func FormatValue(format string, v float64) string {
	if format == "" {
		format = DefaultLabelFormat
	}
	switch verbOf(format) {
	case 'd', 'x', 'X', 'o', 'c':
		return fmt.Sprintf(format, int64(math.Round(v)))
	case 0:
		return format
	}
	return fmt.Sprintf(format, v)
}

func verbOf(format string) byte {
	i := strings.IndexByte(format, '%')
	for i >= 0 && i+1 < len(format) && format[i+1] == '%' {
		next := strings.IndexByte(format[i+2:], '%')
		if next < 0 {
			return 0
		}
		i += 2 + next
	}
	if i < 0 {
		return 0
	}
	for j := i + 1; j < len(format); j++ {
		c := format[j]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return c
		}
	}
	return 0
}
