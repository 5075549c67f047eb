package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/strayfield/roadgrade/internal/collide"
)

// castClearance is how many vertical extents above the terrain top the
// fit rays start, so geometry poking past the configured bounds is still
// contacted (and clamped) instead of silently missed.
const castClearance = 2

// Report summarizes one fit pass. The fitter itself never logs; the
// caller decides what to do with the diagnostics.
type Report struct {
	Contacts   int // Cells whose ray hit the road mesh
	Smoothed   int // Non-contact cells recomputed in the blend ring
	OutOfRange int // Contact elevations clamped into [0,1]
}

// Fit grades the heightfield to the road: every cell under the mesh is
// raised or lowered to the road's underside, then a ring of neighboring
// cells within radius (Chebyshev distance) is blended toward the new
// surface. The heightfield is mutated in place; the pass is synchronous
// and touches no other state.
//
// The ground conforms to the bottom of the road, so each cell takes the
// farthest hit of its downward ray, which for the closed tube is the
// underside face.
//
// Ray casting is clipped to the mesh's bounding footprint, padded by
// half a cell so centers landing exactly on the boundary are scanned;
// cells outside it cannot be contacted, so the result is identical to a
// full-grid scan.
func Fit(hf *Heightfield, surface *collide.MeshSurface, radius int) Report {
	var rep Report
	if surface == nil || surface.Empty() {
		return rep
	}

	minX, minY, maxX, maxY := footprint(hf, surface.Bounds().Expand(hf.CellSize/2))
	top := hf.Origin.Y() + hf.VerticalExtent*(1+castClearance)
	down := mgl32.Vec3{0, -1, 0}
	maxDist := hf.VerticalExtent * (2 + castClearance)

	contacts := make(map[[2]int]struct{})
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			wx, wz := hf.WorldXZ(x, y)
			ray := collide.Ray{Origin: mgl32.Vec3{wx, top, wz}, Dir: down}

			hit, ok := surface.RaycastFarthest(ray, maxDist)
			if !ok {
				continue
			}

			contacts[[2]int{x, y}] = struct{}{}
			rep.Contacts++

			h := (hit.Point.Y() - hf.Origin.Y()) / hf.VerticalExtent
			if h < 0 {
				h = 0
				rep.OutOfRange++
			} else if h > 1 {
				h = 1
				rep.OutOfRange++
			}
			hf.Set(x, y, h)
		}
	}

	rep.Smoothed = smoothRing(hf, contacts, radius)
	return rep
}

// FitAll grades several heightfields against the same road surface, one
// independent pass each. A road crossing a tile border touches every
// tile it overlaps.
func FitAll(hfs []*Heightfield, surface *collide.MeshSurface, radius int) []Report {
	reports := make([]Report, len(hfs))
	for i, hf := range hfs {
		reports[i] = Fit(hf, surface, radius)
	}
	return reports
}

// smoothRing recomputes every non-contact cell within radius of a
// contact cell as the mean of its (edge-clamped) radius window, read
// from the pre-smoothing heights so the blend never cascades.
func smoothRing(hf *Heightfield, contacts map[[2]int]struct{}, radius int) int {
	if radius <= 0 || len(contacts) == 0 {
		return 0
	}

	marked := make(map[[2]int]struct{})
	for c := range contacts {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				x, y := c[0]+dx, c[1]+dy
				if !hf.InBounds(x, y) {
					continue
				}
				cell := [2]int{x, y}
				if _, isContact := contacts[cell]; isContact {
					continue
				}
				marked[cell] = struct{}{}
			}
		}
	}

	orig := hf.copyHeights()
	for cell := range marked {
		var sum float32
		n := 0
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				x, y := cell[0]+dx, cell[1]+dy
				if !hf.InBounds(x, y) {
					continue
				}
				sum += orig[x][y]
				n++
			}
		}
		hf.Set(cell[0], cell[1], sum/float32(n))
	}
	return len(marked)
}

// footprint returns the grid cell range overlapping the mesh bounds,
// clamped to the grid.
func footprint(hf *Heightfield, b collide.AABB) (minX, minY, maxX, maxY int) {
	minX, minY = hf.CellAt(b.Min.X(), b.Min.Z())
	maxX, maxY = hf.CellAt(b.Max.X(), b.Max.Z())

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > hf.Width-1 {
		maxX = hf.Width - 1
	}
	if maxY > hf.Height-1 {
		maxY = hf.Height - 1
	}
	return minX, minY, maxX, maxY
}
