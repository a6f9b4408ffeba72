package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/datavis3d/internal/gradient"
)

// Primitive is the recorded state of one scene object.
type Primitive struct {
	Kind      Kind
	Mesh      Mesh
	Transform Transform
	Material  Material
	Visible   bool
	Pickable  bool
	Instances []Instance
	MeshData  *MeshData
}

// Entry pairs a live primitive with its handle.
type Entry struct {
	Handle Handle
	Primitive
}

type slot struct {
	gen   uint32
	alive bool
	prim  Primitive
}

var _ Backend = (*Recorder)(nil)

// Recorder is an in-memory Backend. Freed slots are reused with a new
// generation so stale handles are rejected.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	slots     []slot
	free      []uint32
	textures  map[TextureID]Texture
	nextTex   TextureID
	projector Projector
	pickSlack float64
}

func NewRecorder() *Recorder {
	return &Recorder{pickSlack: 0.5, textures: make(map[TextureID]Texture)}
}

// SetProjector installs the projection used by Pick.
func (r *Recorder) SetProjector(p Projector) { r.projector = p }

// SetPickSlack widens item hit boxes by s screen units on every side.
func (r *Recorder) SetPickSlack(s float64) { r.pickSlack = s }

func (r *Recorder) CreatePrimitive(kind Kind, mesh Mesh) (Handle, error) {
	p := Primitive{
		Kind:      kind,
		Mesh:      mesh,
		Transform: IdentityTransform(),
		Visible:   true,
		Pickable:  true,
	}
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s := &r.slots[idx]
		s.gen++
		s.alive = true
		s.prim = p
		return Handle{index: idx, gen: s.gen}, nil
	}
	r.slots = append(r.slots, slot{gen: 1, alive: true, prim: p})
	return Handle{index: uint32(len(r.slots) - 1), gen: 1}, nil
}

func (r *Recorder) lookup(h Handle) (*Primitive, error) {
	if !h.Valid() || int(h.index) >= len(r.slots) {
		return nil, ErrUnknownHandle
	}
	s := &r.slots[h.index]
	if !s.alive || s.gen != h.gen {
		return nil, ErrUnknownHandle
	}
	return &s.prim, nil
}

func (r *Recorder) DestroyPrimitive(h Handle) error {
	if _, err := r.lookup(h); err != nil {
		return err
	}
	s := &r.slots[h.index]
	s.alive = false
	s.prim = Primitive{}
	r.free = append(r.free, h.index)
	return nil
}

func (r *Recorder) SetTransform(h Handle, t Transform) error {
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.Transform = t
	return nil
}

func (r *Recorder) SetMaterial(h Handle, m Material) error {
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.Material = m
	return nil
}

func (r *Recorder) SetVisible(h Handle, visible bool) error {
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.Visible = visible
	return nil
}

func (r *Recorder) SetPickable(h Handle, pickable bool) error {
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.Pickable = pickable
	return nil
}

func (r *Recorder) SetInstances(h Handle, instances []Instance) error {
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.Instances = append(p.Instances[:0], instances...)
	return nil
}

func (r *Recorder) SetMesh(h Handle, mesh *MeshData) error {
	if mesh == nil {
		return ErrNilMesh
	}
	p, err := r.lookup(h)
	if err != nil {
		return err
	}
	p.MeshData = mesh
	return nil
}

// CreateTexture stores tex under a fresh id. Ids are never reused.
func (r *Recorder) CreateTexture(tex Texture) TextureID {
	r.nextTex++
	r.textures[r.nextTex] = tex
	return r.nextTex
}

func (r *Recorder) DestroyTexture(id TextureID) error {
	if id == 0 {
		return nil
	}
	if _, ok := r.textures[id]; !ok {
		return ErrUnknownTexture
	}
	delete(r.textures, id)
	return nil
}

// TextureCount is the number of live textures.
func (r *Recorder) TextureCount() int { return len(r.textures) }

// CreateGradientTexture bakes g into a width x 1 texture.
func (r *Recorder) CreateGradientTexture(g gradient.Gradient, width int) (TextureID, error) {
	pix, err := g.Texture(width)
	if err != nil {
		return 0, err
	}
	return r.CreateTexture(Texture{Width: len(pix), Height: 1, Pix: pix}), nil
}

func (r *Recorder) Texture(id TextureID) (Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Primitive returns a copy of the recorded state of h.
func (r *Recorder) Primitive(h Handle) (Primitive, bool) {
	p, err := r.lookup(h)
	if err != nil {
		return Primitive{}, false
	}
	return *p, true
}

// Entries lists the live primitives in slot order.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, 0, len(r.slots)-len(r.free))
	for i := range r.slots {
		s := &r.slots[i]
		if s.alive {
			out = append(out, Entry{Handle: Handle{index: uint32(i), gen: s.gen}, Primitive: s.prim})
		}
	}
	return out
}

func (r *Recorder) Len() int { return len(r.slots) - len(r.free) }

// Reset destroys every primitive and texture.
func (r *Recorder) Reset() {
	r.slots = nil
	r.free = nil
	r.textures = make(map[TextureID]Texture)
}

// Pick returns the visible pickable primitives under (x, y), frontmost
// first. Nothing is hit without a projector.
func (r *Recorder) Pick(x, y float64) []Hit {
	if r.projector == nil {
		return nil
	}
	var hits []Hit
	for _, e := range r.Entries() {
		if !e.Visible || !e.Pickable {
			continue
		}
		switch e.Kind {
		case KindItem:
			if d, ok := r.boxHit(e.Transform, x, y); ok {
				hits = append(hits, Hit{Handle: e.Handle, Instance: -1, Vertex: -1, Depth: d})
			}
		case KindInstanced:
			best := Hit{Handle: e.Handle, Instance: -1, Vertex: -1, Depth: math.Inf(1)}
			for i, in := range e.Instances {
				if in.Hidden {
					continue
				}
				if d, ok := r.boxHit(in.Transform, x, y); ok && d < best.Depth {
					best.Instance, best.Depth = i, d
				}
			}
			if best.Instance >= 0 {
				hits = append(hits, best)
			}
		case KindSurface:
			if h, ok := r.surfaceHit(e, x, y); ok {
				hits = append(hits, h)
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Depth < hits[j].Depth })
	return hits
}

func (r *Recorder) boxHit(t Transform, x, y float64) (float64, bool) {
	minX, minY, depth := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range t.Corners() {
		px, py, d := r.projector.Project(c)
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		depth = math.Min(depth, d)
	}
	s := r.pickSlack
	if x < minX-s || x > maxX+s || y < minY-s || y > maxY+s {
		return 0, false
	}
	return depth, true
}

func (r *Recorder) surfaceHit(e Entry, x, y float64) (Hit, bool) {
	if e.MeshData == nil || len(e.MeshData.Vertices) == 0 {
		return Hit{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	best, bestDist, bestDepth := -1, math.Inf(1), 0.0
	for i, v := range e.MeshData.Vertices {
		px, py, d := r.projector.Project(e.Transform.Apply(v))
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		if dist := (px-x)*(px-x) + (py-y)*(py-y); dist < bestDist {
			best, bestDist, bestDepth = i, dist, d
		}
	}
	if x < minX || x > maxX || y < minY || y > maxY {
		return Hit{}, false
	}
	return Hit{Handle: e.Handle, Instance: -1, Vertex: best, Depth: bestDepth}, true
}

// Orthographic projects onto the XY plane looking down -Z.
type Orthographic struct{}

func (Orthographic) Project(p mgl64.Vec3) (float64, float64, float64) {
	return p[0], p[1], -p[2]
}
