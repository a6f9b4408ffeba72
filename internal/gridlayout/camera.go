// Package gridlayout positions the grid lines, tick labels and axis titles
// around the plot volume for the current camera.
package gridlayout

import (
	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Camera is an orbit camera around the plot centre. XRotation orbits
// around the vertical axis and YRotation tilts above or below the floor,
// both in degrees.
type Camera struct {
	XRotation float64
	YRotation float64
	Zoom      float64
}

func DefaultCamera() Camera {
	return Camera{XRotation: -45, YRotation: 20, Zoom: 100}
}

// TargetRotation is the orientation of the camera pivot, yaw applied
// after pitch.
func (c Camera) TargetRotation() mgl64.Quat {
	return rot(axisY, -c.XRotation).Mul(rot(axisX, -c.YRotation))
}

// Forward is the viewing direction in scene space.
func (c Camera) Forward() mgl64.Vec3 {
	return c.TargetRotation().Rotate(mgl64.Vec3{0, 0, -1})
}

// Flipped records which walls are mirrored to stay behind the data.
type Flipped struct {
	X, Y, Z bool
}

func FlippedFrom(c Camera) Flipped {
	f := c.Forward()
	return Flipped{
		X: f[0] > 0,
		Y: c.TargetRotation().V[0] > 0,
		Z: f[2] >= 0,
	}
}

// Euler composes degree rotations about X, Y and Z as Y * Z * X.
func Euler(x, y, z float64) mgl64.Quat {
	return rot(axisY, y).Mul(rot(axisZ, z)).Mul(rot(axisX, x))
}

func EulerVec(v mgl64.Vec3) mgl64.Quat { return Euler(v[0], v[1], v[2]) }

func rot(axis mgl64.Vec3, deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), axis)
}

// BackgroundEuler is the rotation of the open box background that keeps
// its three walls on the far side of the camera.
func BackgroundEuler(f Flipped) mgl64.Vec3 {
	if !f.Y {
		switch {
		case f.X && f.Z:
			return mgl64.Vec3{0, 90, 0}
		case !f.X && f.Z:
			return mgl64.Vec3{0, 0, 0}
		case f.X && !f.Z:
			return mgl64.Vec3{0, 180, 0}
		}
		return mgl64.Vec3{0, 270, 0}
	}
	switch {
	case f.X && f.Z:
		return mgl64.Vec3{0, 0, 180}
	case !f.X && f.Z:
		return mgl64.Vec3{0, 270, 180}
	case f.X && !f.Z:
		return mgl64.Vec3{0, 90, 180}
	}
	return mgl64.Vec3{0, 180, 180}
}
