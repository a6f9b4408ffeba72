package surface

import (
	"sort"

	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/logging"
)

// Window is the visible sub rectangle of a surface grid. Cols and Rows
// are -1 when nothing overlaps the axis ranges.
type Window struct {
	Row, Col   int
	Rows, Cols int
}

var emptyWindow = Window{Row: -1, Col: -1, Rows: -1, Cols: -1}

func (w Window) Empty() bool { return w.Rows < 1 || w.Cols < 1 }

// SampleSpace finds the rows and columns whose x (row 0) and z (column 0)
// values fall inside the axis ranges. Either grid direction may be
// ascending or descending.
func SampleSpace(rows []data.SurfaceRow, ax, az *axis.Axis) Window {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return emptyWindow
	}
	first := rows[0]
	c0, c1, ok := searchRange(len(first), func(i int) float64 { return first[i].X }, ax.Min(), ax.Max())
	if !ok {
		logging.Logger().Debug("surface outside x range", "min", ax.Min(), "max", ax.Max())
		return emptyWindow
	}
	r0, r1, ok := searchRange(len(rows), func(i int) float64 { return rows[i][0].Z }, az.Min(), az.Max())
	if !ok {
		logging.Logger().Debug("surface outside z range", "min", az.Min(), "max", az.Max())
		return emptyWindow
	}
	return Window{Row: r0, Col: c0, Rows: r1 - r0 + 1, Cols: c1 - c0 + 1}
}

// searchRange returns the inclusive index range of the monotonic sequence
// at whose values lie in [lo, hi].
func searchRange(n int, at func(int) float64, lo, hi float64) (int, int, bool) {
	var start, end int
	if at(n-1) >= at(0) {
		start = sort.Search(n, func(i int) bool { return at(i) >= lo })
		end = sort.Search(n, func(i int) bool { return at(i) > hi }) - 1
	} else {
		start = sort.Search(n, func(i int) bool { return at(i) <= hi })
		end = sort.Search(n, func(i int) bool { return at(i) < lo }) - 1
	}
	if start >= n || end < 0 || start > end {
		return -1, -1, false
	}
	return start, end, true
}

// ascending reports the direction of the window along columns (x) and
// rows (z).
func ascending(rows []data.SurfaceRow) (x, z bool) {
	last := rows[len(rows)-1]
	return rows[0][len(rows[0])-1].X >= rows[0][0].X, last[0].Z >= rows[0][0].Z
}

// extract copies the window out of rows, widening single rows and columns
// into a two wide strip.
func extract(rows []data.SurfaceRow, w Window) ([]data.SurfaceRow, []int, []int) {
	rowIdx := make([]int, 0, max(w.Rows, 2))
	for i := 0; i < w.Rows; i++ {
		rowIdx = append(rowIdx, w.Row+i)
	}
	colIdx := make([]int, 0, max(w.Cols, 2))
	for j := 0; j < w.Cols; j++ {
		colIdx = append(colIdx, w.Col+j)
	}
	if len(rowIdx) == 1 {
		rowIdx = append(rowIdx, rowIdx[0])
	}
	if len(colIdx) == 1 {
		colIdx = append(colIdx, colIdx[0])
	}

	out := make([]data.SurfaceRow, len(rowIdx))
	for i, r := range rowIdx {
		out[i] = make(data.SurfaceRow, len(colIdx))
		for j, c := range colIdx {
			out[i][j] = rows[r][c]
		}
	}
	return out, rowIdx, colIdx
}
