package csm

import "github.com/terravista/terravista/pkg/math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB returns an empty box that any Extend call will initialize.
func NewAABB() AABB {
	const huge = float32(1e30)
	return AABB{
		Min: math.Vec3{X: huge, Y: huge, Z: huge},
		Max: math.Vec3{X: -huge, Y: -huge, Z: -huge},
	}
}

// Extend grows the box to include p.
func (b *AABB) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the center point of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent on each axis.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
