// Package terrain provides a normalized heightfield grid and the fitter
// that grades it to the underside of a road mesh.
package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Heightfield is a regular 2D grid of normalized heights in [0,1],
// addressed as Heights[x][y]. World mapping: cell (x,y) covers a
// CellSize square in the XZ plane starting at Origin, and a height of h
// sits at world elevation Origin.Y + h*VerticalExtent.
type Heightfield struct {
	Heights [][]float32
	Width   int
	Height  int

	CellSize       float32
	VerticalExtent float32
	Origin         mgl32.Vec3
}

// NewHeightfield allocates a width x height grid of zero heights.
func NewHeightfield(width, height int, cellSize, verticalExtent float32) (*Heightfield, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("heightfield size %dx%d, want positive", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("heightfield cell size %v, want positive", cellSize)
	}
	if verticalExtent <= 0 {
		return nil, fmt.Errorf("heightfield vertical extent %v, want positive", verticalExtent)
	}

	heights := make([][]float32, width)
	for x := range heights {
		heights[x] = make([]float32, height)
	}
	return &Heightfield{
		Heights:        heights,
		Width:          width,
		Height:         height,
		CellSize:       cellSize,
		VerticalExtent: verticalExtent,
	}, nil
}

// At returns the height at a grid cell.
func (h *Heightfield) At(x, y int) float32 {
	return h.Heights[x][y]
}

// Set writes the height at a grid cell.
func (h *Heightfield) Set(x, y int, v float32) {
	h.Heights[x][y] = v
}

// Fill sets every cell to v.
func (h *Heightfield) Fill(v float32) {
	for x := range h.Heights {
		for y := range h.Heights[x] {
			h.Heights[x][y] = v
		}
	}
}

// InBounds reports whether (x,y) is a valid cell.
func (h *Heightfield) InBounds(x, y int) bool {
	return x >= 0 && x < h.Width && y >= 0 && y < h.Height
}

// WorldXZ returns the world X/Z of a cell's center.
func (h *Heightfield) WorldXZ(x, y int) (float32, float32) {
	wx := h.Origin.X() + (float32(x)+0.5)*h.CellSize
	wz := h.Origin.Z() + (float32(y)+0.5)*h.CellSize
	return wx, wz
}

// CellAt returns the cell containing world X/Z, without clamping.
func (h *Heightfield) CellAt(wx, wz float32) (int, int) {
	x := int((wx - h.Origin.X()) / h.CellSize)
	y := int((wz - h.Origin.Z()) / h.CellSize)
	return x, y
}

// Elevation converts a cell height to a world elevation.
func (h *Heightfield) Elevation(x, y int) float32 {
	return h.Origin.Y() + h.Heights[x][y]*h.VerticalExtent
}

// copyHeights returns a deep copy of the height grid.
func (h *Heightfield) copyHeights() [][]float32 {
	out := make([][]float32, h.Width)
	for x := range out {
		out[x] = make([]float32, h.Height)
		copy(out[x], h.Heights[x])
	}
	return out
}
