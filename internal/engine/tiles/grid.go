// Package tiles builds procedural terrain tile meshes. It stands in for
// the external tile-streaming service: the shadow subsystem only needs
// shadow-casting and receiving geometry, not real map data.
package tiles

import "github.com/terravista/terravista/pkg/math"

// Vertex is one terrain vertex: position, normal, base color.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// HeightFunc returns the terrain height at a world x/z position.
type HeightFunc func(x, z float32) float32

// RollingHills is a default height function: overlapping sine ridges
// that give the sun something to cast long shadows across.
func RollingHills(x, z float32) float32 {
	return 18*math.Sin(x*0.012)*math.Cos(z*0.009) +
		7*math.Sin(x*0.041+z*0.033) +
		2.5*math.Sin(z*0.11)
}

// Grid holds one tile's CPU-side mesh data.
type Grid struct {
	Vertices []Vertex
	Indices  []uint32
}

// BuildGrid tessellates a square tile of worldSize units into cells x
// cells quads centered on originX/originZ, sampling height from fn.
func BuildGrid(cells int, worldSize, originX, originZ float32, fn HeightFunc) *Grid {
	if cells < 1 {
		cells = 1
	}
	if fn == nil {
		fn = RollingHills
	}

	step := worldSize / float32(cells)
	half := worldSize / 2

	g := &Grid{
		Vertices: make([]Vertex, 0, (cells+1)*(cells+1)),
		Indices:  make([]uint32, 0, cells*cells*6),
	}

	for row := 0; row <= cells; row++ {
		for col := 0; col <= cells; col++ {
			x := originX - half + float32(col)*step
			z := originZ - half + float32(row)*step
			y := fn(x, z)

			// Normal from central differences of the height field
			n := math.Vec3{
				X: fn(x-step, z) - fn(x+step, z),
				Y: 2 * step,
				Z: fn(x, z-step) - fn(x, z+step),
			}.Normalize()

			// Darker in the valleys, lighter on the ridges
			shade := math.Clamp(0.55+y*0.01, 0.35, 0.8)

			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{n.X, n.Y, n.Z},
				Color:    [3]float32{shade * 0.55, shade * 0.72, shade * 0.4},
			})
		}
	}

	stride := uint32(cells + 1)
	for row := 0; row < cells; row++ {
		for col := 0; col < cells; col++ {
			tl := uint32(row)*stride + uint32(col)
			tr := tl + 1
			bl := tl + stride
			br := bl + 1

			g.Indices = append(g.Indices,
				tl, bl, tr,
				tr, bl, br,
			)
		}
	}

	return g
}
