package road

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Profile selects which corner points a cross-section carries.
type Profile int

const (
	// ProfileBasic keeps the four render corners.
	ProfileBasic Profile = iota
	// ProfileExtended adds the side midpoints and a separate, slightly
	// larger set of hitbox corners for a collision hull.
	ProfileExtended
)

// CrossSection is the rectangular profile of the road at one centerline
// point, perpendicular to the travel direction. Sections are transient:
// they are rebuilt from the centerline on every Generate call and never
// persisted.
type CrossSection struct {
	Center mgl32.Vec3

	TopLeft     mgl32.Vec3
	TopRight    mgl32.Vec3
	BottomLeft  mgl32.Vec3
	BottomRight mgl32.Vec3

	// Extended profile only.
	CenterLeft  mgl32.Vec3
	CenterRight mgl32.Vec3

	HitTopLeft     mgl32.Vec3
	HitTopRight    mgl32.Vec3
	HitBottomLeft  mgl32.Vec3
	HitBottomRight mgl32.Vec3

	Profile Profile
}

// SectionParams holds the dimensions used to build a cross-section.
type SectionParams struct {
	Width     float32
	Thickness float32
	// HitboxMargin widens the hitbox corners on each side. Only used by
	// ProfileExtended.
	HitboxMargin float32
	Profile      Profile
}

// BuildSection builds the cross-section at center, perpendicular to dir
// and to up. dir must be non-zero and not parallel to up; the builder
// guarantees this by deduplicating the centerline before deriving
// directions. Identical inputs always produce identical sections.
func BuildSection(center, dir, up mgl32.Vec3, p SectionParams) CrossSection {
	perp := dir.Cross(up).Normalize()
	vert := perp.Cross(dir).Normalize()

	cs := CrossSection{Center: center, Profile: p.Profile}
	cs.TopLeft, cs.TopRight, cs.BottomLeft, cs.BottomRight =
		rectCorners(center, perp, vert, p.Width, p.Thickness)

	if p.Profile == ProfileExtended {
		cs.CenterLeft = center.Add(perp.Mul(p.Width / 2))
		cs.CenterRight = center.Sub(perp.Mul(p.Width / 2))
		cs.HitTopLeft, cs.HitTopRight, cs.HitBottomLeft, cs.HitBottomRight =
			rectCorners(center, perp, vert, p.Width+p.HitboxMargin*2, p.Thickness+p.HitboxMargin*2)
	}
	return cs
}

// rectCorners returns the four corners of a width x thickness rectangle
// centered at center, spanned by the unit vectors perp and vert.
func rectCorners(center, perp, vert mgl32.Vec3, width, thickness float32) (tl, tr, bl, br mgl32.Vec3) {
	left := center.Add(perp.Mul(width / 2))
	right := center.Sub(perp.Mul(width / 2))
	halfUp := vert.Mul(thickness / 2)

	tl = left.Add(halfUp)
	bl = left.Sub(halfUp)
	tr = right.Add(halfUp)
	br = right.Sub(halfUp)
	return tl, tr, bl, br
}

// Corners returns the render corners in the fixed vertex-buffer order:
// topLeft, topRight, bottomLeft, bottomRight.
func (cs *CrossSection) Corners() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{cs.TopLeft, cs.TopRight, cs.BottomLeft, cs.BottomRight}
}

// HitCorners returns the hitbox corners in the same fixed order. Only
// meaningful for ProfileExtended sections.
func (cs *CrossSection) HitCorners() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{cs.HitTopLeft, cs.HitTopRight, cs.HitBottomLeft, cs.HitBottomRight}
}

// SwapLeft exchanges the whole left side of two sibling sections in
// place. All left-side points (top, center, bottom, hitbox) move
// together so a section's side stays coherent after the swap.
func SwapLeft(a, b *CrossSection) {
	a.TopLeft, b.TopLeft = b.TopLeft, a.TopLeft
	a.CenterLeft, b.CenterLeft = b.CenterLeft, a.CenterLeft
	a.BottomLeft, b.BottomLeft = b.BottomLeft, a.BottomLeft
	a.HitTopLeft, b.HitTopLeft = b.HitTopLeft, a.HitTopLeft
	a.HitBottomLeft, b.HitBottomLeft = b.HitBottomLeft, a.HitBottomLeft
}

// SwapRight exchanges the whole right side of two sibling sections in
// place.
func SwapRight(a, b *CrossSection) {
	a.TopRight, b.TopRight = b.TopRight, a.TopRight
	a.CenterRight, b.CenterRight = b.CenterRight, a.CenterRight
	a.BottomRight, b.BottomRight = b.BottomRight, a.BottomRight
	a.HitTopRight, b.HitTopRight = b.HitTopRight, a.HitTopRight
	a.HitBottomRight, b.HitBottomRight = b.HitBottomRight, a.HitBottomRight
}
