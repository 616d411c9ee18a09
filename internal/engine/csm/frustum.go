package csm

import "github.com/terravista/terravista/pkg/math"

// Corner ring indices. Near and far rings use the same order so that
// index k on both rings names the same frustum edge; the slicing lerp
// relies on this to produce geometrically valid wedges.
const (
	CornerTopRight = iota
	CornerBottomRight
	CornerBottomLeft
	CornerTopLeft
)

// ringNDC holds the clip-space x/y of each ring corner in ring order.
var ringNDC = [4][2]float32{
	{1, 1},   // top-right
	{1, -1},  // bottom-right
	{-1, -1}, // bottom-left
	{-1, 1},  // top-left
}

// Frustum holds the 8 corner vertices of a camera frustum (or one
// cascade of it) as a near ring and a far ring of 4 corners each.
type Frustum struct {
	Near [4]math.Vec3
	Far  [4]math.Vec3
}

// SetFromProjection computes the view-space frustum corners from a
// projection matrix by unprojecting the canonical clip-space cube.
// Far corners are clamped to maxFar (<= 0 disables the clamp): radially
// toward the origin for perspective projections, z-only for orthographic
// ones, whose far corners are not radial from the origin.
func (f *Frustum) SetFromProjection(proj math.Mat4, maxFar float32) {
	inv := proj.Inverse()
	perspective := proj.IsPerspective()

	for k, xy := range ringNDC {
		near := inv.Project(math.Vec3{X: xy[0], Y: xy[1], Z: -1})
		far := inv.Project(math.Vec3{X: xy[0], Y: xy[1], Z: 1})

		if maxFar > 0 {
			depth := math.Abs(far.Z)
			if depth > maxFar {
				if perspective {
					far = far.Scale(maxFar / depth)
				} else {
					far.Z *= maxFar / depth
				}
			}
		}

		f.Near[k] = near
		f.Far[k] = far
	}
}

// Split slices the frustum into len(fractions) cascades along the depth
// range. Cascade 0 keeps the main near ring and the last cascade keeps
// the main far ring, both copied rather than interpolated; interior
// rings are per-corner lerps between the main near and far rings at the
// boundary fractions. out is reused when it has capacity.
func (f *Frustum) Split(fractions []float32, out []Frustum) []Frustum {
	n := len(fractions)
	if cap(out) >= n {
		out = out[:n]
	} else {
		out = make([]Frustum, n)
	}

	for i := range out {
		c := &out[i]

		if i == 0 {
			c.Near = f.Near
		} else {
			t := fractions[i-1]
			for k := 0; k < 4; k++ {
				c.Near[k] = f.Near[k].Lerp(f.Far[k], t)
			}
		}

		if i == n-1 {
			c.Far = f.Far
		} else {
			t := fractions[i]
			for k := 0; k < 4; k++ {
				c.Far[k] = f.Near[k].Lerp(f.Far[k], t)
			}
		}
	}
	return out
}

// Transformed returns the frustum with all 8 corners transformed by m,
// e.g. from view space into light space.
func (f Frustum) Transformed(m math.Mat4) Frustum {
	var out Frustum
	for k := 0; k < 4; k++ {
		out.Near[k] = m.TransformVec3(f.Near[k])
		out.Far[k] = m.TransformVec3(f.Far[k])
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the 8 corners.
func (f Frustum) Bounds() AABB {
	b := NewAABB()
	for k := 0; k < 4; k++ {
		b.Extend(f.Near[k])
		b.Extend(f.Far[k])
	}
	return b
}
