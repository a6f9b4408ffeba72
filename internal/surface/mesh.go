// Package surface turns surface grids into triangle meshes.
package surface

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/axis"
	"github.com/san-kum/datavis3d/internal/data"
	"github.com/san-kum/datavis3d/internal/gradient"
	"github.com/san-kum/datavis3d/internal/scene"
	"github.com/san-kum/datavis3d/internal/series"
)

var up = mgl64.Vec3{0, 1, 0}

// Helpers are the three axis mappings into scene space.
type Helpers struct {
	X, Y, Z *axis.Helper
}

func (h Helpers) place(it data.SurfaceItem) mgl64.Vec3 {
	return mgl64.Vec3{h.X.ItemPositionAt(it.X), h.Y.ItemPositionAt(it.Y), h.Z.ItemPositionAt(it.Z)}
}

// Options select the mesh variant.
type Options struct {
	Flat bool
	// Gradient colours the texture; an empty gradient leaves it white.
	Gradient gradient.Gradient
}

// Mesh is one rebuilt surface. Coords maps every vertex back to the data
// grid point it came from.
type Mesh struct {
	Window  Window
	Data    *scene.MeshData
	Texture scene.Texture
	Coords  []series.Coord
}

// Build windows rows against the X and Z axes and tessellates the visible
// part. The bool is false when nothing is visible.
func Build(rows []data.SurfaceRow, h Helpers, opts Options) (Mesh, bool) {
	w := SampleSpace(rows, h.X.Axis, h.Z.Axis)
	if w.Empty() {
		return Mesh{Window: w}, false
	}
	grid, rowIdx, colIdx := extract(rows, w)
	nr, nc := len(grid), len(grid[0])

	// The default winding faces up when scene x grows along a row and
	// scene z shrinks down the rows.
	xAsc, zAsc := ascending(grid)
	xDir := (xAsc != h.X.Reversed()) != (h.X.Scale < 0)
	zDir := (zAsc != h.Z.Reversed()) != (h.Z.Scale > 0)
	flip := xDir != zDir

	pos := make([]mgl64.Vec3, nr*nc)
	uvs := make([]mgl64.Vec2, nr*nc)
	coords := make([]series.Coord, nr*nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			k := i*nc + j
			pos[k] = h.place(grid[i][j])
			uvs[k] = mgl64.Vec2{float64(j) / float64(nc-1), float64(i) / float64(nr-1)}
			coords[k] = series.Coord{Row: rowIdx[i], Col: colIdx[j]}
		}
	}

	m := Mesh{Window: w, Texture: texture(grid, h.Y, opts.Gradient)}
	if opts.Flat {
		m.Data, m.Coords = flatMesh(pos, uvs, coords, nr, nc, flip)
	} else {
		m.Data = smoothMesh(pos, uvs, nr, nc, flip)
		m.Coords = coords
	}
	return m, true
}

// quad returns the two triangles of the cell at (i, j) as vertex indices.
func quad(i, j, nc int, flip bool) [6]uint32 {
	a := uint32(i*nc + j)
	b := a + 1
	c := uint32((i+1)*nc + j)
	d := c + 1
	if flip {
		return [6]uint32{a, c, b, b, c, d}
	}
	return [6]uint32{a, b, c, b, d, c}
}

func faceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

func normalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return up
	}
	return v.Normalize()
}

func smoothMesh(pos []mgl64.Vec3, uvs []mgl64.Vec2, nr, nc int, flip bool) *scene.MeshData {
	md := &scene.MeshData{
		Vertices: pos,
		UVs:      uvs,
		Normals:  make([]mgl64.Vec3, len(pos)),
		Indices:  make([]uint32, 0, 6*(nr-1)*(nc-1)),
	}
	for i := 0; i < nr-1; i++ {
		for j := 0; j < nc-1; j++ {
			q := quad(i, j, nc, flip)
			md.Indices = append(md.Indices, q[:]...)
			for t := 0; t < 6; t += 3 {
				n := faceNormal(pos[q[t]], pos[q[t+1]], pos[q[t+2]])
				for _, v := range q[t : t+3] {
					md.Normals[v] = md.Normals[v].Add(n)
				}
			}
		}
	}
	for k, n := range md.Normals {
		md.Normals[k] = normalize(n)
	}
	md.GridIndices = gridIndices(nr, nc, func(i, j int) uint32 { return uint32(i*nc + j) })
	return md
}

func flatMesh(pos []mgl64.Vec3, uvs []mgl64.Vec2, coords []series.Coord, nr, nc int, flip bool) (*scene.MeshData, []series.Coord) {
	tris := 2 * (nr - 1) * (nc - 1)
	md := &scene.MeshData{
		Vertices: make([]mgl64.Vec3, 0, 3*tris),
		Normals:  make([]mgl64.Vec3, 0, 3*tris),
		UVs:      make([]mgl64.Vec2, 0, 3*tris),
		Indices:  make([]uint32, 0, 3*tris),
	}
	out := make([]series.Coord, 0, 3*tris)
	// owner records one flat vertex per grid point for the grid lines.
	owner := make([]uint32, len(pos))
	for i := 0; i < nr-1; i++ {
		for j := 0; j < nc-1; j++ {
			q := quad(i, j, nc, flip)
			for t := 0; t < 6; t += 3 {
				n := normalize(faceNormal(pos[q[t]], pos[q[t+1]], pos[q[t+2]]))
				for _, v := range q[t : t+3] {
					idx := uint32(len(md.Vertices))
					owner[v] = idx
					md.Vertices = append(md.Vertices, pos[v])
					md.Normals = append(md.Normals, n)
					md.UVs = append(md.UVs, uvs[v])
					md.Indices = append(md.Indices, idx)
					out = append(out, coords[v])
				}
			}
		}
	}
	md.GridIndices = gridIndices(nr, nc, func(i, j int) uint32 { return owner[i*nc+j] })
	return md, out
}

// gridIndices is a line list: horizontal segments of every row, then the
// vertical segments of every column.
func gridIndices(nr, nc int, at func(i, j int) uint32) []uint32 {
	out := make([]uint32, 0, 2*nr*(nc-1)+2*nc*(nr-1))
	for i := 0; i < nr; i++ {
		for j := 0; j < nc-1; j++ {
			out = append(out, at(i, j), at(i, j+1))
		}
	}
	for i := 0; i < nr-1; i++ {
		for j := 0; j < nc; j++ {
			out = append(out, at(i, j), at(i+1, j))
		}
	}
	return out
}

// texture bakes the height of every grid point, normalized against the Y
// axis range, through g.
func texture(grid []data.SurfaceRow, hy *axis.Helper, g gradient.Gradient) scene.Texture {
	nr, nc := len(grid), len(grid[0])
	tex := scene.Texture{Width: nc, Height: nr, Pix: make([]color.RGBA, nr*nc)}
	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			c := white
			if !g.Empty() {
				c = g.RGBA(hy.Axis.PositionAt(grid[i][j].Y))
			}
			tex.Pix[i*nc+j] = c
		}
	}
	return tex
}
