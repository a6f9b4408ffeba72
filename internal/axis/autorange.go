package axis

// BarRange is the value axis range for bar data: the floor level is
// always inside the range and an all-equal data set spans one unit.
func BarRange(dataMin, dataMax, floor float64) (float64, float64) {
	min, max := dataMin, dataMax
	if floor < min {
		min = floor
	}
	if floor > max {
		max = floor
	}
	if min == max {
		max = min + 1
	}
	return min, max
}

// ScatterRange grows a degenerate range by one unit in both directions.
func ScatterRange(dataMin, dataMax float64) (float64, float64) {
	if dataMin == dataMax {
		return dataMin - 1, dataMax + 1
	}
	return dataMin, dataMax
}

// SurfaceRange grows a degenerate range upwards by one unit.
func SurfaceRange(dataMin, dataMax float64) (float64, float64) {
	if dataMin == dataMax {
		return dataMin, dataMax + 1
	}
	return dataMin, dataMax
}
