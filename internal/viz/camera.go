package viz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/gridlayout"
)

const (
	MinZoom = 10.0
	MaxZoom = 500.0
)

// Camera projects scene space onto canvas dots with an orthographic view
// along the orbit camera. It satisfies scene.Projector, so picks made
// through a recorder use the same mapping as the drawing.
type Camera struct {
	Orbit         gridlayout.Camera
	Width, Height int
	// Radius is the scene half extent that fills the canvas at zoom 100.
	Radius        float64
}

func NewCamera(c *Canvas) *Camera {
	w, h := c.Dots()
	return &Camera{Orbit: gridlayout.DefaultCamera(), Width: w, Height: h, Radius: 2}
}

// Fit sizes the view to the background box of a layout.
func (c *Camera) Fit(l gridlayout.Layout) {
	if r := l.BackgroundScale.Len(); r > 0 {
		c.Radius = r
	}
}

func (c *Camera) Rotate(dx, dy float64) {
	c.Orbit.XRotation += dx
	for c.Orbit.XRotation > 180 {
		c.Orbit.XRotation -= 360
	}
	for c.Orbit.XRotation < -180 {
		c.Orbit.XRotation += 360
	}
	c.Orbit.YRotation = mgl64.Clamp(c.Orbit.YRotation+dy, -90, 90)
}

func (c *Camera) ZoomIn()  { c.Orbit.Zoom = min(MaxZoom, c.Orbit.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Orbit.Zoom = max(MinZoom, c.Orbit.Zoom/1.2) }

func (c *Camera) scale() float64 {
	r := c.Radius
	if r <= 0 {
		r = 1
	}
	zoom := c.Orbit.Zoom
	if zoom <= 0 {
		zoom = 100
	}
	return float64(min(c.Width, c.Height)) / (2 * r) * zoom / 100
}

// Project returns dot coordinates with y growing downwards. Depth grows
// away from the viewer.
func (c *Camera) Project(p mgl64.Vec3) (float64, float64, float64) {
	v := c.Orbit.TargetRotation().Inverse().Rotate(p)
	s := c.scale()
	return float64(c.Width)/2 + v[0]*s, float64(c.Height)/2 - v[1]*s, -v[2]
}

// Centre is the dot at the middle of the view.
func (c *Camera) Centre() (float64, float64) {
	return float64(c.Width) / 2, float64(c.Height) / 2
}
