package tiles

import (
	"testing"

	"github.com/terravista/terravista/pkg/math"
)

func flat(x, z float32) float32 { return 0 }

func TestBuildGridCounts(t *testing.T) {
	g := BuildGrid(4, 100, 0, 0, flat)

	if got, want := len(g.Vertices), 5*5; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if got, want := len(g.Indices), 4*4*6; got != want {
		t.Errorf("got %d indices, want %d", got, want)
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d out of range for %d vertices", idx, len(g.Vertices))
		}
	}
}

func TestBuildGridExtentAndOrigin(t *testing.T) {
	g := BuildGrid(2, 100, 500, -200, flat)

	minX, maxX := g.Vertices[0].Position[0], g.Vertices[0].Position[0]
	minZ, maxZ := g.Vertices[0].Position[2], g.Vertices[0].Position[2]
	for _, v := range g.Vertices {
		minX = min(minX, v.Position[0])
		maxX = max(maxX, v.Position[0])
		minZ = min(minZ, v.Position[2])
		maxZ = max(maxZ, v.Position[2])
	}

	if minX != 450 || maxX != 550 {
		t.Errorf("x extent [%f, %f], want [450, 550]", minX, maxX)
	}
	if minZ != -250 || maxZ != -150 {
		t.Errorf("z extent [%f, %f], want [-250, -150]", minZ, maxZ)
	}
}

func TestBuildGridSamplesHeightFunc(t *testing.T) {
	g := BuildGrid(2, 10, 0, 0, func(x, z float32) float32 {
		return x + 2*z
	})

	for _, v := range g.Vertices {
		want := v.Position[0] + 2*v.Position[2]
		if absf(v.Position[1]-want) > 1e-4 {
			t.Errorf("vertex at (%f, %f) has height %f, want %f",
				v.Position[0], v.Position[2], v.Position[1], want)
		}
	}
}

func TestBuildGridNormals(t *testing.T) {
	// Flat terrain: all normals point straight up.
	g := BuildGrid(3, 30, 0, 0, flat)
	for _, v := range g.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Fatalf("flat terrain normal = %v, want (0,1,0)", v.Normal)
		}
	}

	// A constant x-slope tilts every normal the same way, against the
	// slope, still unit length.
	g = BuildGrid(3, 30, 0, 0, func(x, z float32) float32 { return x })
	for _, v := range g.Vertices {
		n := math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
		if absf(n.Length()-1) > 1e-4 {
			t.Errorf("normal %v not unit length", n)
		}
		if n.X >= 0 || n.Y <= 0 || absf(n.Z) > 1e-5 {
			t.Errorf("slope normal = %v, want tilted toward -x", n)
		}
	}
}

func TestBuildGridWindingConsistent(t *testing.T) {
	g := BuildGrid(2, 20, 0, 0, flat)

	// Every triangle of a flat grid faces up under counter-clockwise
	// winding, so the terrain renders with back-face culling enabled.
	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Position
		b := g.Vertices[g.Indices[i+1]].Position
		c := g.Vertices[g.Indices[i+2]].Position

		av := math.Vec3{X: a[0], Y: a[1], Z: a[2]}
		bv := math.Vec3{X: b[0], Y: b[1], Z: b[2]}
		cv := math.Vec3{X: c[0], Y: c[1], Z: c[2]}
		n := bv.Sub(av).Cross(cv.Sub(av))
		if n.Y <= 0 {
			t.Fatalf("triangle %d winds downward: normal %v", i/3, n)
		}
	}
}

func TestBuildGridDefaults(t *testing.T) {
	// Zero cells and nil height function fall back to something usable.
	g := BuildGrid(0, 10, 0, 0, nil)
	if len(g.Vertices) != 4 || len(g.Indices) != 6 {
		t.Errorf("got %d vertices / %d indices, want 4 / 6", len(g.Vertices), len(g.Indices))
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
