// Package scene defines the rendering backend the geometry generators drive.
//
// Generators never draw. They create primitives, move them with a
// Transform, colour them with a Material and toggle visibility and
// pickability. A Backend turns that into pixels; Recorder keeps it in
// memory so a frame can be inspected, picked, rendered to a terminal or
// exported.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrUnknownHandle  = errors.New("scene: unknown primitive handle")
	ErrNilMesh        = errors.New("scene: nil mesh")
	ErrUnknownTexture = errors.New("scene: unknown texture")
)

// Handle references a primitive. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) Valid() bool { return h.gen != 0 }

func (h Handle) String() string {
	if !h.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%d.%d", h.index, h.gen)
}

// Index is a stable small integer for the handle's slot, used in exports.
func (h Handle) Index() int { return int(h.index) }

// Kind is how a primitive is drawn and picked.
type Kind int

const (
	KindItem Kind = iota
	KindInstanced
	KindSurface
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindInstanced:
		return "instanced"
	case KindSurface:
		return "surface"
	}
	return "unknown"
}

// Mesh is the built in shape of an item or instance.
type Mesh int

const (
	MeshBar Mesh = iota
	MeshCube
	MeshPyramid
	MeshCone
	MeshCylinder
	MeshBevelBar
	MeshBevelCube
	MeshSphere
	MeshMinimal
	MeshArrow
	MeshPoint
	MeshUser
)

var meshNames = map[Mesh]string{
	MeshBar:       "bar",
	MeshCube:      "cube",
	MeshPyramid:   "pyramid",
	MeshCone:      "cone",
	MeshCylinder:  "cylinder",
	MeshBevelBar:  "bevelbar",
	MeshBevelCube: "bevelcube",
	MeshSphere:    "sphere",
	MeshMinimal:   "minimal",
	MeshArrow:     "arrow",
	MeshPoint:     "point",
	MeshUser:      "user",
}

func (m Mesh) String() string {
	if n, ok := meshNames[m]; ok {
		return n
	}
	return "unknown"
}

// ParseMesh is the inverse of Mesh.String.
func ParseMesh(s string) (Mesh, bool) {
	for m, n := range meshNames {
		if n == s {
			return m, true
		}
	}
	return MeshBar, false
}

// Transform places a unit mesh spanning [-1,1] on every axis.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

func IdentityTransform() Transform {
	return Transform{Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
}

// Apply maps a mesh space point into scene space.
func (t Transform) Apply(v mgl64.Vec3) mgl64.Vec3 {
	s := mgl64.Vec3{v[0] * t.Scale[0], v[1] * t.Scale[1], v[2] * t.Scale[2]}
	return t.Position.Add(t.Rotation.Rotate(s))
}

// Corners returns the eight corners of the transformed unit box.
func (t Transform) Corners() [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		c := mgl64.Vec3{-1, -1, -1}
		if i&1 != 0 {
			c[0] = 1
		}
		if i&2 != 0 {
			c[1] = 1
		}
		if i&4 != 0 {
			c[2] = 1
		}
		out[i] = t.Apply(c)
	}
	return out
}

// TextureID references a texture owned by the backend. Zero means none.
type TextureID int

// Texture is a row major RGBA image.
type Texture struct {
	Width, Height int
	Pix           []color.RGBA
}

func (t Texture) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return color.RGBA{}
	}
	return t.Pix[y*t.Width+x]
}

// Material colours a primitive. Color is always the resolved colour;
// Texture and GradientPosition describe where it was looked up.
type Material struct {
	Color            color.RGBA
	Texture          TextureID
	GradientPosition float64
	Smooth           bool
}

// Instance is one entry of an instanced primitive.
type Instance struct {
	Transform Transform
	Color     color.RGBA
	Hidden    bool
}

// MeshData is a triangle mesh with an optional line list for its grid.
type MeshData struct {
	Vertices    []mgl64.Vec3
	Normals     []mgl64.Vec3
	UVs         []mgl64.Vec2
	Indices     []uint32
	GridIndices []uint32
}

// Hit is one primitive under a picked point. Instance is the instance
// index for instanced primitives and Vertex the nearest mesh vertex for
// surfaces; both are -1 when not applicable.
type Hit struct {
	Handle   Handle
	Instance int
	Vertex   int
	Depth    float64
}

// Projector maps scene space to screen space. Smaller depth is closer.
type Projector interface {
	Project(p mgl64.Vec3) (x, y, depth float64)
}

// Backend is what the geometry generators render into.
type Backend interface {
	CreatePrimitive(kind Kind, mesh Mesh) (Handle, error)
	DestroyPrimitive(h Handle) error

	SetTransform(h Handle, t Transform) error
	SetMaterial(h Handle, m Material) error
	SetVisible(h Handle, visible bool) error
	SetPickable(h Handle, pickable bool) error

	// SetInstances replaces the entries of a KindInstanced primitive.
	SetInstances(h Handle, instances []Instance) error
	// SetMesh replaces the mesh of a KindSurface primitive.
	SetMesh(h Handle, mesh *MeshData) error

	CreateTexture(tex Texture) TextureID
	// DestroyTexture releases a texture. Releasing zero is a no-op.
	DestroyTexture(id TextureID) error
	Pick(x, y float64) []Hit
}
