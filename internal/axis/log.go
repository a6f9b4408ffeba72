package axis

import (
	"math"

	"github.com/san-kum/datavis3d/internal/logging"
)

// LogFormatter places values on a logarithmic scale. With a positive
// Base the segment count follows the number of decades in the range;
// a zero Base keeps the requested segment count and only the mapping
// becomes logarithmic.
type LogFormatter struct {
	Base           float64
	AutoSubGrid    bool
	ShowEdgeLabels bool

	LinearFormatter
	logMin, logMax float64
	normalizer     float64
	evenSegments   bool
}

func NewLogFormatter(base float64) *LogFormatter {
	if base < 0 || base == 1 {
		base = 0
	}
	return &LogFormatter{Base: base, AutoSubGrid: true, ShowEdgeLabels: true}
}

func (f *LogFormatter) Recalculate(min, max float64, segments, subSegments int) (int, int) {
	if min <= 0 {
		logging.Logger().Debug("log axis minimum must be positive, clamped", "min", min)
		min = 1
	}
	if max <= min {
		base := f.Base
		if base <= 1 {
			base = math.E
		}
		max = min * base
	}

	f.logMin = math.Log(min)
	f.logMax = math.Log(max)
	f.normalizer = f.logMax - f.logMin

	if f.Base > 1 {
		lnBase := math.Log(f.Base)
		logRange := f.normalizer / lnBase
		segments = int(math.Ceil(logRange - 1e-9))
		if segments < 1 {
			segments = 1
		}
		if f.AutoSubGrid {
			subSegments = int(math.Ceil(f.Base)) - 1
			if subSegments < 1 {
				subSegments = 1
			}
		}
		f.LinearFormatter.min, f.LinearFormatter.max = min, max
		f.grid = make([]float64, segments+1)
		f.labels = make([]float64, segments+1)
		for i := 0; i < segments; i++ {
			g := float64(i) / logRange
			f.grid[i], f.labels[i] = g, g
		}
		f.grid[segments], f.labels[segments] = 1, 1
		f.evenSegments = true
		if segments > 1 {
			lastDiff := 1 - f.labels[segments-1]
			firstDiff := f.labels[1] - f.labels[0]
			f.evenSegments = math.Abs(lastDiff-firstDiff) < 1e-6
		}
	} else {
		segments, subSegments = f.LinearFormatter.Recalculate(min, max, segments, subSegments)
		f.evenSegments = true
	}

	f.values = make([]float64, len(f.labels))
	for i, p := range f.labels {
		f.values[i] = f.ValueAt(p)
	}

	f.sub = f.sub[:0]
	subGridCount := subSegments - 1
	if subGridCount > 0 && len(f.grid) > 1 {
		firstRange := f.ValueAt(f.grid[1]) - min
		step := firstRange / float64(subGridCount+1)
		offsets := make([]float64, subGridCount)
		for i := range offsets {
			offsets[i] = f.PositionAt(min + float64(i+1)*step)
		}
		for i := 0; i < segments; i++ {
			for _, off := range offsets {
				f.sub = append(f.sub, math.Min(f.grid[i]+off, 1))
			}
		}
	}
	return segments, subSegments
}

func (f *LogFormatter) PositionAt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if f.normalizer == 0 {
		return 0.5
	}
	return (math.Log(v) - f.logMin) / f.normalizer
}

func (f *LogFormatter) ValueAt(pos float64) float64 {
	return math.Exp(pos*f.normalizer + f.logMin)
}

func (f *LogFormatter) Label(index int, format string) string {
	if index == len(f.labels)-1 && !f.evenSegments && !f.ShowEdgeLabels {
		return ""
	}
	return f.LinearFormatter.Label(index, format)
}
