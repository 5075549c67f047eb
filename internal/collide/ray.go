// Package collide provides ray tests against triangle meshes.
package collide

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a ray in 3D space.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3 // Normalized direction
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB creates an AABB from two corners, swapping per-axis extents so
// Min <= Max holds on every axis.
func NewAABB(min, max mgl32.Vec3) AABB {
	box := AABB{Min: min, Max: max}
	for i := 0; i < 3; i++ {
		if box.Min[i] > box.Max[i] {
			box.Min[i], box.Max[i] = box.Max[i], box.Min[i]
		}
	}
	return box
}

// Expand grows the box by d on every side.
func (b AABB) Expand(d float32) AABB {
	off := mgl32.Vec3{d, d, d}
	return AABB{Min: b.Min.Sub(off), Max: b.Max.Add(off)}
}

// IntersectAABB tests the ray against a box with the slab method.
// Returns the distance to the entry point; a ray starting inside the box
// has entry distance 0.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for i := 0; i < 3; i++ {
		if r.Dir[i] != 0 {
			t1 := (box.Min[i] - r.Origin[i]) / r.Dir[i]
			t2 := (box.Max[i] - r.Origin[i]) / r.Dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
