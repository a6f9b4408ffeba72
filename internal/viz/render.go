package viz

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/graph"
	"github.com/san-kum/datavis3d/internal/gridlayout"
	"github.com/san-kum/datavis3d/internal/scene"
)

// boxEdges index the corners returned by scene.Transform.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

type stroke struct {
	x0, y0, x1, y1 int
	depth          float64
	color          color.RGBA
}

// Renderer draws recorder contents and frame decoration onto a canvas.
type Renderer struct {
	Canvas *Canvas
	Camera *Camera
	Theme  Theme
	// Labels writes tick labels and axis titles into the canvas cells.
	Labels bool

	strokes []stroke
}

func NewRenderer(c *Canvas, th Theme) *Renderer {
	return &Renderer{Canvas: c, Camera: NewCamera(c), Theme: th, Labels: true}
}

// Draw clears the canvas and paints f and the primitives of rec back to
// front.
func (r *Renderer) Draw(rec *scene.Recorder, f graph.Frame) {
	r.Canvas.Clear()
	r.strokes = r.strokes[:0]
	r.Camera.Orbit = f.Camera
	r.Camera.Fit(f.Layout)

	grid, sub := ToRGBA(r.Theme.Muted), ToRGBA(r.Theme.Background)
	for _, l := range f.Layout.Lines {
		c := grid
		if l.Sub {
			c = mix(grid, sub)
		}
		r.line(l.Start, l.End, c)
	}
	for _, e := range rec.Entries() {
		if !e.Visible {
			continue
		}
		switch e.Kind {
		case scene.KindItem:
			r.item(e.Mesh, e.Transform, e.Material.Color)
		case scene.KindInstanced:
			for _, in := range e.Instances {
				if !in.Hidden {
					r.item(e.Mesh, in.Transform, in.Color)
				}
			}
		case scene.KindSurface:
			r.surface(rec, e)
		}
	}

	sort.SliceStable(r.strokes, func(i, j int) bool { return r.strokes[i].depth > r.strokes[j].depth })
	for _, s := range r.strokes {
		r.Canvas.DrawLine(s.x0, s.y0, s.x1, s.y1, s.color)
	}
	if r.Labels {
		r.text(f.Layout)
		for _, lb := range f.CustomLabels {
			x, y, _ := r.Camera.Project(lb.Position)
			r.Canvas.Text(round(x), round(y), lb.Text, lb.Color)
		}
	}
}

func (r *Renderer) line(a, b mgl64.Vec3, c color.RGBA) {
	x0, y0, d0 := r.Camera.Project(a)
	x1, y1, d1 := r.Camera.Project(b)
	r.strokes = append(r.strokes, stroke{round(x0), round(y0), round(x1), round(y1), (d0 + d1) / 2, c})
}

func (r *Renderer) dot(p mgl64.Vec3, c color.RGBA) {
	x, y, d := r.Camera.Project(p)
	r.strokes = append(r.strokes, stroke{round(x), round(y), round(x), round(y), d, c})
}

// item draws a box outline, or a single dot when the box covers less
// than two dots on screen.
func (r *Renderer) item(m scene.Mesh, t scene.Transform, c color.RGBA) {
	corners := t.Corners()
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range corners {
		x, y, _ := r.Camera.Project(p)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	if m == scene.MeshPoint || (maxX-minX < 2 && maxY-minY < 2) {
		r.dot(t.Position, c)
		return
	}
	for _, e := range boxEdges {
		r.line(corners[e[0]], corners[e[1]], c)
	}
}

func (r *Renderer) surface(rec *scene.Recorder, e scene.Entry) {
	md := e.MeshData
	if md == nil {
		return
	}
	tex, textured := rec.Texture(e.Material.Texture)
	colorAt := func(i uint32) color.RGBA {
		if !textured || int(i) >= len(md.UVs) || tex.Width == 0 {
			return e.Material.Color
		}
		uv := md.UVs[i]
		return tex.At(round(uv[0]*float64(tex.Width-1)), round(uv[1]*float64(tex.Height-1)))
	}
	for k := 0; k+1 < len(md.GridIndices); k += 2 {
		a, b := md.GridIndices[k], md.GridIndices[k+1]
		r.line(e.Transform.Apply(md.Vertices[a]), e.Transform.Apply(md.Vertices[b]), colorAt(a))
	}
	if len(md.GridIndices) > 0 {
		return
	}
	for _, i := range md.Indices {
		r.dot(e.Transform.Apply(md.Vertices[i]), colorAt(i))
	}
}

// text places labels at their projected anchor cells. Later labels
// overwrite earlier ones where they overlap.
func (r *Renderer) text(l gridlayout.Layout) {
	c := ToRGBA(r.Theme.Text)
	for _, lb := range l.Labels {
		x, y, _ := r.Camera.Project(lb.Position)
		r.Canvas.Text(round(x), round(y), lb.Text, c)
	}
	title := ToRGBA(r.Theme.Accent)
	for _, t := range l.Titles {
		if t.Visible && t.Text != "" {
			x, y, _ := r.Camera.Project(t.Position)
			r.Canvas.Text(round(x), round(y), t.Text, title)
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{uint8((int(a.R) + int(b.R)) / 2), uint8((int(a.G) + int(b.G)) / 2), uint8((int(a.B) + int(b.B)) / 2), 255}
}
