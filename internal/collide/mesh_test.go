package collide

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// unitQuad returns a horizontal unit quad at the given elevation,
// spanning x,z in [0,1].
func unitQuad(y float32) *MeshSurface {
	positions := []mgl32.Vec3{
		{0, y, 0}, {1, y, 0}, {0, y, 1}, {1, y, 1},
	}
	indices := []uint32{0, 1, 2, 1, 3, 2}
	return NewMeshSurface(positions, indices)
}

var down = mgl32.Vec3{0, -1, 0}

func TestRaycast_Hit(t *testing.T) {
	surface := unitQuad(1)
	ray := Ray{Origin: mgl32.Vec3{0.5, 2, 0.5}, Dir: down}

	hit, ok := surface.Raycast(ray, 10)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Distance < 0.999 || hit.Distance > 1.001 {
		t.Errorf("distance = %v, want ~1", hit.Distance)
	}
	if hit.Point.Y() < 0.999 || hit.Point.Y() > 1.001 {
		t.Errorf("hit elevation = %v, want ~1", hit.Point.Y())
	}
}

func TestRaycast_MissBeside(t *testing.T) {
	surface := unitQuad(1)
	ray := Ray{Origin: mgl32.Vec3{2.5, 2, 0.5}, Dir: down}

	if _, ok := surface.Raycast(ray, 10); ok {
		t.Error("ray beside the quad should miss")
	}
}

func TestRaycast_MissBeyondMaxDist(t *testing.T) {
	surface := unitQuad(1)
	ray := Ray{Origin: mgl32.Vec3{0.5, 10, 0.5}, Dir: down}

	if _, ok := surface.Raycast(ray, 5); ok {
		t.Error("hit beyond maxDist should be rejected")
	}
}

func TestRaycast_HitsBackFace(t *testing.T) {
	// The fitter casts downward through closed tubes; a ray entering
	// from below must still report the surface.
	surface := unitQuad(1)
	ray := Ray{Origin: mgl32.Vec3{0.5, 0, 0.5}, Dir: mgl32.Vec3{0, 1, 0}}

	if _, ok := surface.Raycast(ray, 10); !ok {
		t.Error("expected back-face hit")
	}
}

func TestRaycast_NearestOfStackedQuads(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1}, // Lower quad
		{0, 3, 0}, {1, 3, 0}, {0, 3, 1}, {1, 3, 1}, // Upper quad
	}
	indices := []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	surface := NewMeshSurface(positions, indices)

	ray := Ray{Origin: mgl32.Vec3{0.5, 5, 0.5}, Dir: down}
	hit, ok := surface.Raycast(ray, 10)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Point.Y() < 2.999 || hit.Point.Y() > 3.001 {
		t.Errorf("nearest hit elevation = %v, want ~3 (upper quad)", hit.Point.Y())
	}
}

func TestRaycast_InsideBoundsWithinMaxDist(t *testing.T) {
	// The bounds of a tall mesh exit far below a ray starting inside
	// them; a triangle within maxDist must still be reported.
	positions := []mgl32.Vec3{
		{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1},
		{0, 48, 0}, {1, 48, 0}, {0, 48, 1}, {1, 48, 1},
		{0, 100, 0}, {1, 100, 0}, {0, 100, 1}, {1, 100, 1},
	}
	indices := []uint32{
		0, 1, 2, 1, 3, 2,
		4, 5, 6, 5, 7, 6,
		8, 9, 10, 9, 11, 10,
	}
	surface := NewMeshSurface(positions, indices)

	ray := Ray{Origin: mgl32.Vec3{0.5, 50, 0.5}, Dir: down}
	hit, ok := surface.Raycast(ray, 5)
	if !ok {
		t.Fatal("expected hit inside tall bounds")
	}
	if hit.Point.Y() < 47.999 || hit.Point.Y() > 48.001 {
		t.Errorf("hit elevation = %v, want ~48", hit.Point.Y())
	}
}

func TestRaycastFarthest_HitsUnderside(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1}, // Lower quad
		{0, 3, 0}, {1, 3, 0}, {0, 3, 1}, {1, 3, 1}, // Upper quad
	}
	indices := []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6}
	surface := NewMeshSurface(positions, indices)

	ray := Ray{Origin: mgl32.Vec3{0.5, 5, 0.5}, Dir: down}
	hit, ok := surface.RaycastFarthest(ray, 10)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Point.Y() < 0.999 || hit.Point.Y() > 1.001 {
		t.Errorf("farthest hit elevation = %v, want ~1 (lower quad)", hit.Point.Y())
	}

	// Hits past maxDist are not considered.
	hit, ok = surface.RaycastFarthest(ray, 3)
	if !ok {
		t.Fatal("expected hit within maxDist")
	}
	if hit.Point.Y() < 2.999 || hit.Point.Y() > 3.001 {
		t.Errorf("capped farthest hit = %v, want ~3 (upper quad)", hit.Point.Y())
	}
}

func TestRaycast_EmptySurface(t *testing.T) {
	surface := NewMeshSurface(nil, nil)
	ray := Ray{Origin: mgl32.Vec3{0, 1, 0}, Dir: down}

	if _, ok := surface.Raycast(ray, 10); ok {
		t.Error("empty surface cannot be hit")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(mgl32.Vec3{1, -1, -1}, mgl32.Vec3{2, 1, 1})

	cases := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"toward", Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{1, 0, 0}}, true},
		{"away", Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{-1, 0, 0}}, false},
		{"parallel miss", Ray{Origin: mgl32.Vec3{0, 5, 0}, Dir: mgl32.Vec3{1, 0, 0}}, false},
		{"inside", Ray{Origin: mgl32.Vec3{1.5, 0, 0}, Dir: mgl32.Vec3{1, 0, 0}}, true},
	}
	for _, c := range cases {
		if _, hit := c.ray.IntersectAABB(box); hit != c.want {
			t.Errorf("%s: hit = %v, want %v", c.name, hit, c.want)
		}
	}

	t.Run("entry distance", func(t *testing.T) {
		ray := Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{1, 0, 0}}
		d, hit := ray.IntersectAABB(box)
		if !hit || d < 0.999 || d > 1.001 {
			t.Errorf("entry distance = %v, want ~1", d)
		}
	})

	t.Run("inside origin has entry distance zero", func(t *testing.T) {
		ray := Ray{Origin: mgl32.Vec3{1.5, 0, 0}, Dir: mgl32.Vec3{1, 0, 0}}
		d, hit := ray.IntersectAABB(box)
		if !hit || d != 0 {
			t.Errorf("entry distance = %v, want 0", d)
		}
	})
}

func TestAABB_Expand(t *testing.T) {
	box := NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}).Expand(0.5)
	if box.Min != (mgl32.Vec3{-0.5, -0.5, -0.5}) {
		t.Errorf("min = %v, want (-0.5,-0.5,-0.5)", box.Min)
	}
	if box.Max != (mgl32.Vec3{2.5, 2.5, 2.5}) {
		t.Errorf("max = %v, want (2.5,2.5,2.5)", box.Max)
	}
}

func TestNewAABB_SwapsExtents(t *testing.T) {
	box := NewAABB(mgl32.Vec3{2, 0, 5}, mgl32.Vec3{1, 3, -5})
	if box.Min.X() != 1 || box.Max.X() != 2 {
		t.Errorf("x extents not swapped: %v", box)
	}
	if box.Min.Z() != -5 || box.Max.Z() != 5 {
		t.Errorf("z extents not swapped: %v", box)
	}
}
