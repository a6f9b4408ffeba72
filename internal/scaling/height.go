package scaling

import "math"

// Height is the floor relative height adjustment of a bar graph.
type Height struct {
	ActualFloor       float64
	HasNegativeValues bool
	NoZeroInRange     bool
	HeightNormalizer  float64
	GradientFraction  float64
	// BackgroundAdjustment moves the floor plane so that bars on both
	// sides of the floor fit into [-1,1].
	BackgroundAdjustment float64
}

// ComputeHeight derives the adjustment for a value axis [min,max].
func ComputeHeight(min, max, floor float64, reversed bool) Height {
	h := Height{ActualFloor: math.Max(min, math.Min(floor, max))}
	maxAbs := math.Abs(max - h.ActualFloor)

	h.HasNegativeValues = min < h.ActualFloor

	if max < h.ActualFloor {
		h.HeightNormalizer = math.Abs(min) - math.Abs(max)
		maxAbs = math.Abs(max) - math.Abs(min)
	} else {
		h.HeightNormalizer = max - min
	}
	if h.HeightNormalizer == 0 {
		h.HeightNormalizer = 1
	}

	if max <= h.ActualFloor || min >= h.ActualFloor {
		h.NoZeroInRange = true
		h.GradientFraction = 2
	} else {
		minAbs := math.Abs(min - h.ActualFloor)
		h.GradientFraction = math.Max(minAbs, maxAbs) / h.HeightNormalizer * 2
	}

	h.BackgroundAdjustment = (math.Max(0, math.Min(maxAbs/h.HeightNormalizer, 1)) - 0.5) * 2
	if reversed {
		h.BackgroundAdjustment = -h.BackgroundAdjustment
	}
	return h
}

// BarHeight turns a normalized item position p into the signed bar height
// relative to the floor at normalized position zero. p and zero are
// positions on the forward axis; a reversed axis mirrors the result.
func (h Height) BarHeight(p, zero float64, reversed bool) float64 {
	v := p
	switch {
	case h.NoZeroInRange && h.HasNegativeValues:
		v = math.Min(p-1, 0)
	case h.NoZeroInRange:
		v = math.Max(p, 0)
	default:
		v -= zero
	}
	if reversed {
		v = -v
	}
	return v
}
