package generate

import (
	"math"
	"math/rand"

	"github.com/san-kum/datavis3d/internal/data"
)

// Field is a height function over the unit square.
type Field func(x, z float64) float64

func Sinc(x, z float64) float64 {
	r := math.Hypot(x*16-8, z*16-8)
	if r == 0 {
		return 1
	}
	return math.Sin(r) / r
}

func Ripple(x, z float64) float64 {
	r := math.Hypot(x-0.5, z-0.5)
	return math.Cos(r*24) * math.Exp(-r*4)
}

func Saddle(x, z float64) float64 {
	u, v := x*2-1, z*2-1
	return u*u - v*v
}

// Grid samples f over [0,1]x[0,1] with rows along z and columns along x.
// Grids smaller than 2x2 are widened to 2x2.
func Grid(f Field, rows, cols int) []data.SurfaceRow {
	rows, cols = max(rows, 2), max(cols, 2)
	out := make([]data.SurfaceRow, rows)
	for r := range out {
		z := float64(r) / float64(rows-1)
		row := make(data.SurfaceRow, cols)
		for c := range row {
			x := float64(c) / float64(cols-1)
			row[c] = data.SurfaceItem{X: x, Y: f(x, z), Z: z}
		}
		out[r] = row
	}
	return out
}

// Table is a bar value function of the row and column index.
type Table func(r, c, rows, cols int) float64

func Seasonal(r, c, rows, cols int) float64 {
	season := math.Sin(float64(c) / float64(cols) * 2 * math.Pi)
	return 10 + float64(r)*2 + season*6
}

func Ramp(r, c, rows, cols int) float64 {
	return float64(r*cols + c + 1)
}

// Wave has both positive and negative values around a zero floor.
func Wave(r, c, rows, cols int) float64 {
	return math.Sin(float64(c)*0.7) * math.Cos(float64(r)*0.5) * 5
}

func Values(t Table, rows, cols int) [][]float64 {
	rows, cols = max(rows, 1), max(cols, 1)
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
		for c := range out[r] {
			out[r][c] = t(r, c, rows, cols)
		}
	}
	return out
}

// Cloud is a gaussian scatter around the origin, reproducible by seed.
func Cloud(n int, seed int64) []data.ScatterItem {
	rng := rand.New(rand.NewSource(seed))
	items := make([]data.ScatterItem, n)
	for i := range items {
		items[i] = data.NewScatterItem(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())
	}
	return items
}

// Helix winds n points three times around the vertical axis.
func Helix(n int) []data.ScatterItem {
	items := make([]data.ScatterItem, n)
	for i := range items {
		t := float64(i) / float64(max(n-1, 1))
		a := t * 6 * math.Pi
		items[i] = data.NewScatterItem(math.Cos(a), t*2-1, math.Sin(a))
	}
	return items
}
