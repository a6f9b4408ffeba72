package generate

import (
	"github.com/san-kum/datavis3d/internal/data"
)

// System is an autonomous three dimensional flow.
type System interface {
	Derive(s [3]float64) [3]float64
	Start() [3]float64
}

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Derive(s [3]float64) [3]float64 {
	return [3]float64{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}
}
func (l *Lorenz) Start() [3]float64 { return [3]float64{1, 1, 1} }

type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

func (r *Rossler) Derive(s [3]float64) [3]float64 {
	return [3]float64{-s[1] - s[2], s[0] + r.A*s[1], r.B + s[2]*(s[0]-r.C)}
}
func (r *Rossler) Start() [3]float64 { return [3]float64{1, 1, 1} }

func rk4(sys System, x [3]float64, dt float64) [3]float64 {
	k1 := sys.Derive(x)
	k2 := sys.Derive(axpy(x, k1, dt*0.5))
	k3 := sys.Derive(axpy(x, k2, dt*0.5))
	k4 := sys.Derive(axpy(x, k3, dt))
	dt6 := dt / 6.0
	var out [3]float64
	for i := range out {
		out[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func axpy(x, k [3]float64, h float64) [3]float64 {
	return [3]float64{x[0] + h*k[0], x[1] + h*k[1], x[2] + h*k[2]}
}

// Trajectory integrates sys and keeps every stride-th state as a scatter
// item after discarding the transient. The flow's z component becomes
// the item height.
func Trajectory(sys System, n, stride, transient int, dt float64) []data.ScatterItem {
	if stride < 1 {
		stride = 1
	}
	x := sys.Start()
	for i := 0; i < transient; i++ {
		x = rk4(sys, x, dt)
	}
	items := make([]data.ScatterItem, 0, n)
	for len(items) < n {
		for i := 0; i < stride; i++ {
			x = rk4(sys, x, dt)
		}
		items = append(items, data.NewScatterItem(x[0], x[2], x[1]))
	}
	return items
}
