package road

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one road mesh vertex.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Bounds is the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Mesh holds the generated road geometry: four vertices per
// cross-section in fixed order, and the triangle index buffer produced
// by Triangulate. A mesh is regenerated wholesale on every Generate
// call, never patched in place.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Empty reports whether the mesh has no drawable geometry.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// Positions returns the vertex positions as a flat slice, in vertex
// order. Used to hand the mesh to a ray-testable surface.
func (m *Mesh) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.Vertices))
	for i := range m.Vertices {
		out[i] = m.Vertices[i].Position
	}
	return out
}

// Frame converts host world coordinates into the road's local frame.
// The host supplies one; geometry code never touches the scene graph.
type Frame interface {
	ToLocal(p mgl32.Vec3) mgl32.Vec3
}

// IdentityFrame is a Frame for roads authored directly in local space.
type IdentityFrame struct{}

func (IdentityFrame) ToLocal(p mgl32.Vec3) mgl32.Vec3 { return p }

// OffsetFrame is a Frame for roads placed at a fixed world offset.
type OffsetFrame struct {
	Origin mgl32.Vec3
}

func (f OffsetFrame) ToLocal(p mgl32.Vec3) mgl32.Vec3 { return p.Sub(f.Origin) }

// MeshSink receives the mesh produced by each Generate call. The host
// attaches its renderer or collider behind this.
type MeshSink interface {
	PublishMesh(m *Mesh)
}

// DirectionPolicy selects how the facing direction at each centerline
// point is derived.
type DirectionPolicy int

const (
	// DirAveraged faces each interior point along the bisector of its
	// two adjacent segment directions; endpoints use their single
	// incident segment. Default: joints stay smooth.
	DirAveraged DirectionPolicy = iota
	// DirForward faces each point along its outgoing segment; the last
	// point reuses the previous segment. Kept for roads authored
	// against the old behavior, which kinks at the final joint.
	DirForward
)

// SmoothingPolicy selects the centerline smoothing applied by SetPath.
type SmoothingPolicy int

const (
	// SmoothAverage applies the biased moving average.
	SmoothAverage SmoothingPolicy = iota
	// SmoothSimplify applies Douglas-Peucker simplification.
	SmoothSimplify
	// SmoothNone stores the captured points as-is (deduplicated only).
	SmoothNone
)

// Smoothing configures centerline smoothing.
type Smoothing struct {
	Policy    SmoothingPolicy
	Window    int     // SmoothAverage sample count, odd and >= 1
	Tolerance float32 // SmoothSimplify perpendicular distance
}

// Params holds the road shape settings.
type Params struct {
	Width        float32
	Thickness    float32
	HitboxMargin float32
	Up           mgl32.Vec3
	Profile      Profile
	Direction    DirectionPolicy
	Smoothing    Smoothing
}

// DefaultParams returns road settings matching a single-lane dirt road.
func DefaultParams() Params {
	return Params{
		Width:        4,
		Thickness:    0.3,
		HitboxMargin: 0.25,
		Up:           mgl32.Vec3{0, 1, 0},
		Profile:      ProfileBasic,
		Direction:    DirAveraged,
		Smoothing:    Smoothing{Policy: SmoothAverage, Window: 5},
	}
}

// Validate checks the settings a builder cannot work without.
func (p Params) Validate() error {
	if p.Width < 0 {
		return fmt.Errorf("road width %v is negative", p.Width)
	}
	if p.Thickness < 0 {
		return fmt.Errorf("road thickness %v is negative", p.Thickness)
	}
	if p.Up.Len() == 0 {
		return fmt.Errorf("road up axis is the zero vector")
	}
	if p.Smoothing.Policy == SmoothAverage {
		if p.Smoothing.Window < 1 {
			return fmt.Errorf("smoothing window %d, want >= 1", p.Smoothing.Window)
		}
		if p.Smoothing.Window%2 == 0 {
			return fmt.Errorf("smoothing window %d is even, want odd", p.Smoothing.Window)
		}
	}
	return nil
}

// Builder turns a captured centerline into a road mesh. It owns the
// centerline exclusively; SetPath replaces it wholesale. Calls are not
// safe for concurrent use; the host serializes edits to one road.
type Builder struct {
	params Params
	frame  Frame
	sink   MeshSink

	centerline []mgl32.Vec3
	mesh       *Mesh
	hitbox     *Mesh
}

// NewBuilder creates a builder with the given road settings.
func NewBuilder(params Params) *Builder {
	return &Builder{
		params: params,
		frame:  IdentityFrame{},
		mesh:   &Mesh{},
		hitbox: &Mesh{},
	}
}

// SetFrame injects the world-to-local coordinate frame.
func (b *Builder) SetFrame(f Frame) {
	if f == nil {
		f = IdentityFrame{}
	}
	b.frame = f
}

// SetSink injects the mesh sink notified on every Generate and Clear.
func (b *Builder) SetSink(s MeshSink) {
	b.sink = s
}

// Params returns the current road settings.
func (b *Builder) Params() Params {
	return b.params
}

// SetPath converts the captured world-space points to the local frame,
// applies the configured smoothing, deduplicates coincident points and
// stores the result as the new centerline. Nothing is rebuilt until
// Generate is called.
func (b *Builder) SetPath(worldPoints []mgl32.Vec3) {
	local := make([]mgl32.Vec3, len(worldPoints))
	for i, p := range worldPoints {
		local[i] = b.frame.ToLocal(p)
	}

	switch b.params.Smoothing.Policy {
	case SmoothAverage:
		local = MovingAverage(local, b.params.Smoothing.Window)
	case SmoothSimplify:
		local = Simplify(local, b.params.Smoothing.Tolerance)
	}

	b.centerline = DedupConsecutive(local)
}

// Centerline returns the stored, smoothed centerline.
func (b *Builder) Centerline() []mgl32.Vec3 {
	return b.centerline
}

// Mesh returns the mesh produced by the last Generate call.
func (b *Builder) Mesh() *Mesh {
	return b.mesh
}

// Hitbox returns the collision mesh produced by the last Generate call.
// Empty unless the profile is ProfileExtended.
func (b *Builder) Hitbox() *Mesh {
	return b.hitbox
}

// Generate rebuilds the road mesh from the stored centerline and returns
// it. An empty centerline produces an empty mesh, not an error. The same
// centerline always produces an identical mesh.
func (b *Builder) Generate() *Mesh {
	sections := b.buildSections()

	b.mesh = assemble(sections, (*CrossSection).Corners)
	if b.params.Profile == ProfileExtended {
		b.hitbox = assemble(sections, (*CrossSection).HitCorners)
	} else {
		b.hitbox = &Mesh{}
	}

	if b.sink != nil {
		b.sink.PublishMesh(b.mesh)
	}
	return b.mesh
}

// Clear empties the centerline and the mesh.
func (b *Builder) Clear() {
	b.centerline = nil
	b.Generate()
}

// buildSections builds one cross-section per centerline point.
func (b *Builder) buildSections() []CrossSection {
	points := b.centerline
	if len(points) == 0 {
		return nil
	}

	sp := SectionParams{
		Width:        b.params.Width,
		Thickness:    b.params.Thickness,
		HitboxMargin: b.params.HitboxMargin,
		Profile:      b.params.Profile,
	}
	up := b.params.Up.Normalize()

	dirs := directions(points, b.params.Direction)
	sections := make([]CrossSection, len(points))
	for i := range points {
		sections[i] = BuildSection(points[i], dirs[i], up, sp)
	}
	return sections
}

// directions derives the facing direction for every centerline point.
// The centerline is already deduplicated, so every segment direction is
// well defined.
func directions(points []mgl32.Vec3, policy DirectionPolicy) []mgl32.Vec3 {
	dirs := make([]mgl32.Vec3, len(points))
	if len(points) < 2 {
		for i := range dirs {
			dirs[i] = mgl32.Vec3{0, 0, 1}
		}
		return dirs
	}

	switch policy {
	case DirForward:
		for i := 0; i < len(points)-1; i++ {
			dirs[i] = points[i+1].Sub(points[i]).Normalize()
		}
		dirs[len(points)-1] = dirs[len(points)-2]

	default: // DirAveraged
		for i := range points {
			switch i {
			case 0:
				dirs[i] = points[1].Sub(points[0]).Normalize()
			case len(points) - 1:
				dirs[i] = points[i].Sub(points[i-1]).Normalize()
			default:
				in := points[i].Sub(points[i-1]).Normalize()
				out := points[i+1].Sub(points[i]).Normalize()
				sum := in.Add(out)
				if sum.Len() < coincidentEpsilon {
					// Full 180-degree reversal; the bisector vanishes,
					// fall back to the incoming direction.
					dirs[i] = in
					continue
				}
				dirs[i] = sum.Normalize()
			}
		}
	}
	return dirs
}

// assemble flattens section corners into the vertex buffer, triangulates
// and computes smooth per-vertex normals.
func assemble(sections []CrossSection, corners func(*CrossSection) [4]mgl32.Vec3) *Mesh {
	m := &Mesh{}
	if len(sections) == 0 {
		return m
	}

	m.Vertices = make([]Vertex, 0, len(sections)*4)
	for i := range sections {
		for _, p := range corners(&sections[i]) {
			m.Vertices = append(m.Vertices, Vertex{Position: p})
		}
	}
	m.Indices = Triangulate(len(sections))
	recomputeNormals(m.Vertices, m.Indices)
	m.Bounds = computeBounds(m.Vertices)
	return m
}

// recomputeNormals assigns each vertex the normalized sum of the face
// normals of its adjacent triangles. Face normals are left unnormalized
// before summing, which weights the average by triangle area.
func recomputeNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		a := vertices[indices[t]].Position
		b := vertices[indices[t+1]].Position
		c := vertices[indices[t+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		vertices[indices[t]].Normal = vertices[indices[t]].Normal.Add(n)
		vertices[indices[t+1]].Normal = vertices[indices[t+1]].Normal.Add(n)
		vertices[indices[t+2]].Normal = vertices[indices[t+2]].Normal.Add(n)
	}

	for i := range vertices {
		if vertices[i].Normal.Len() < 1e-8 {
			vertices[i].Normal = mgl32.Vec3{0, 1, 0}
			continue
		}
		vertices[i].Normal = vertices[i].Normal.Normalize()
	}
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}
