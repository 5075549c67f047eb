package collide

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Hit describes the nearest intersection of a ray with a surface.
type Hit struct {
	Point    mgl32.Vec3
	Distance float32
	Triangle int // Index of the hit triangle (triple index / 3)
}

// MeshSurface wraps a triangle mesh for ray testing. The vertex and
// index slices are borrowed, not copied; the surface stays valid as long
// as the mesh it was built from is not mutated.
type MeshSurface struct {
	positions []mgl32.Vec3
	indices   []uint32
	bounds    AABB
}

// NewMeshSurface builds a ray-testable surface from vertex positions and
// a triangle index buffer.
func NewMeshSurface(positions []mgl32.Vec3, indices []uint32) *MeshSurface {
	s := &MeshSurface{positions: positions, indices: indices}
	if len(positions) > 0 {
		s.bounds = AABB{Min: positions[0], Max: positions[0]}
		for _, p := range positions[1:] {
			for i := 0; i < 3; i++ {
				if p[i] < s.bounds.Min[i] {
					s.bounds.Min[i] = p[i]
				}
				if p[i] > s.bounds.Max[i] {
					s.bounds.Max[i] = p[i]
				}
			}
		}
	}
	return s
}

// Bounds returns the surface's axis-aligned bounding box.
func (s *MeshSurface) Bounds() AABB {
	return s.bounds
}

// Empty reports whether the surface has no triangles.
func (s *MeshSurface) Empty() bool {
	return len(s.indices) < 3
}

// Raycast finds the nearest triangle intersection within maxDist.
// The box test rejects rays that miss the whole mesh before any
// per-triangle work.
func (s *MeshSurface) Raycast(r Ray, maxDist float32) (Hit, bool) {
	if s.Empty() {
		return Hit{}, false
	}
	if t, ok := r.IntersectAABB(s.bounds); !ok || t > maxDist {
		return Hit{}, false
	}

	best := Hit{Distance: maxDist}
	found := false
	for i := 0; i+2 < len(s.indices); i += 3 {
		a := s.positions[s.indices[i]]
		b := s.positions[s.indices[i+1]]
		c := s.positions[s.indices[i+2]]
		t, ok := r.intersectTriangle(a, b, c)
		if ok && t <= best.Distance {
			best = Hit{Point: r.At(t), Distance: t, Triangle: i / 3}
			found = true
		}
	}
	return best, found
}

// RaycastFarthest finds the farthest triangle intersection within
// maxDist. For a closed volume this is the exit face: a downward ray
// through a road slab reports the underside rather than the deck.
func (s *MeshSurface) RaycastFarthest(r Ray, maxDist float32) (Hit, bool) {
	if s.Empty() {
		return Hit{}, false
	}
	if t, ok := r.IntersectAABB(s.bounds); !ok || t > maxDist {
		return Hit{}, false
	}

	var best Hit
	found := false
	for i := 0; i+2 < len(s.indices); i += 3 {
		a := s.positions[s.indices[i]]
		b := s.positions[s.indices[i+1]]
		c := s.positions[s.indices[i+2]]
		t, ok := r.intersectTriangle(a, b, c)
		if ok && t <= maxDist && t >= best.Distance {
			best = Hit{Point: r.At(t), Distance: t, Triangle: i / 3}
			found = true
		}
	}
	return best, found
}

// intersectTriangle is the Moller-Trumbore ray/triangle test. Both
// triangle orientations count as hits; the road tube is closed, so a
// vertical terrain ray meets a front face before any back face.
func (r Ray) intersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	const eps = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false // Ray parallel to triangle plane
	}

	inv := 1 / det
	tv := r.Origin.Sub(a)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tv.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false // Intersection behind ray origin
	}
	return t, true
}
