// Package road builds a ribbon-like road mesh from a drawn centerline.
package road

import (
	"github.com/go-gl/mathgl/mgl32"
)

// coincidentEpsilon is the distance below which two consecutive path
// points are treated as the same point.
const coincidentEpsilon = 1e-5

// DedupConsecutive collapses runs of coincident consecutive points.
// Direction derivation divides by segment length, so duplicate points
// must be removed before cross-sections are built.
func DedupConsecutive(points []mgl32.Vec3) []mgl32.Vec3 {
	if len(points) < 2 {
		return points
	}

	out := make([]mgl32.Vec3, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points); i++ {
		if points[i].Sub(out[len(out)-1]).Len() > coincidentEpsilon {
			out = append(out, points[i])
		}
	}
	return out
}

// MovingAverage smooths a path with a biased moving average: the output
// point at index i is the mean of window consecutive input points centered
// at i, with indices outside the array clamped to the nearest endpoint.
// Clamping biases the average toward endpoint values, so the first and
// last points stay anchored instead of being pulled inward.
//
// Output length equals input length. A window of 1 is the identity.
// The window must be odd so it centers on i; the symmetric half-window
// would silently widen an even window to window+1 samples, which is why
// Params.Validate rejects even windows.
func MovingAverage(points []mgl32.Vec3, window int) []mgl32.Vec3 {
	if len(points) == 0 || window <= 1 {
		return points
	}

	half := window / 2
	out := make([]mgl32.Vec3, len(points))
	for i := range points {
		var sum mgl32.Vec3
		n := 0
		for j := i - half; j <= i+half; j++ {
			k := j
			if k < 0 {
				k = 0
			}
			if k > len(points)-1 {
				k = len(points) - 1
			}
			sum = sum.Add(points[k])
			n++
		}
		out[i] = sum.Mul(1 / float32(n))
	}
	return out
}

// Simplify reduces a path with recursive Douglas-Peucker simplification:
// points closer than tolerance to the line between retained neighbors are
// dropped. Paths of two or fewer points are returned unchanged. Unlike
// MovingAverage the output may be shorter than the input.
func Simplify(points []mgl32.Vec3, tolerance float32) []mgl32.Vec3 {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	simplifyRange(points, 0, len(points)-1, tolerance, keep)

	out := make([]mgl32.Vec3, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func simplifyRange(points []mgl32.Vec3, first, last int, tolerance float32, keep []bool) {
	if last-first < 2 {
		return
	}

	maxDist := float32(0)
	maxIdx := -1
	for i := first + 1; i < last; i++ {
		d := pointSegmentDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxIdx < 0 || maxDist <= tolerance {
		return
	}
	keep[maxIdx] = true
	simplifyRange(points, first, maxIdx, tolerance, keep)
	simplifyRange(points, maxIdx, last, tolerance, keep)
}

// pointSegmentDistance returns the distance from p to segment ab.
func pointSegmentDistance(p, a, b mgl32.Vec3) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}

	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Mul(t))
	return p.Sub(closest).Len()
}
