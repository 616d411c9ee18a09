package csm

import (
	gomath "math"
	"testing"

	"github.com/terravista/terravista/pkg/math"
)

func testProjection() math.Mat4 {
	return math.Perspective(float32(gomath.Pi/3), 16.0/9.0, 1, 1000)
}

func TestFrustumCornerCorrespondence(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	for k := 0; k < 4; k++ {
		// View space looks down -Z: far corners lie further along the
		// view direction than their near partners.
		if f.Far[k].Z >= f.Near[k].Z {
			t.Errorf("corner %d: far z %f not beyond near z %f", k, f.Far[k].Z, f.Near[k].Z)
		}

		// Same edge means matching quadrant signs in x/y.
		if sign(f.Far[k].X) != sign(f.Near[k].X) || sign(f.Far[k].Y) != sign(f.Near[k].Y) {
			t.Errorf("corner %d: near %v and far %v are in different quadrants", k, f.Near[k], f.Far[k])
		}
	}

	// Ring order: top-right, bottom-right, bottom-left, top-left.
	n := f.Near
	if !(n[CornerTopRight].X > 0 && n[CornerTopRight].Y > 0) ||
		!(n[CornerBottomRight].X > 0 && n[CornerBottomRight].Y < 0) ||
		!(n[CornerBottomLeft].X < 0 && n[CornerBottomLeft].Y < 0) ||
		!(n[CornerTopLeft].X < 0 && n[CornerTopLeft].Y > 0) {
		t.Errorf("near ring not in expected order: %v", n)
	}
}

func TestFrustumNearFarDistances(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	for k := 0; k < 4; k++ {
		if absf(f.Near[k].Z+1) > 1e-3 {
			t.Errorf("near corner %d z = %f, want -1", k, f.Near[k].Z)
		}
		if absf(f.Far[k].Z+1000) > 0.5 {
			t.Errorf("far corner %d z = %f, want -1000", k, f.Far[k].Z)
		}
	}
}

func TestFrustumMaxFarPerspective(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 250)

	for k := 0; k < 4; k++ {
		if absf(f.Far[k].Z+250) > 0.5 {
			t.Errorf("clamped far corner %d z = %f, want -250", k, f.Far[k].Z)
		}

		// Perspective clamping scales radially: the clamped corner
		// stays on the ray from the origin through the original corner.
		var full Frustum
		full.SetFromProjection(testProjection(), 0)
		scaled := full.Far[k].Scale(250.0 / 1000.0)
		if scaled.Distance(f.Far[k]) > 0.5 {
			t.Errorf("corner %d not clamped radially: got %v, want %v", k, f.Far[k], scaled)
		}
	}
}

func TestFrustumMaxFarOrthographic(t *testing.T) {
	proj := math.Ortho(-100, 100, -50, 50, 1, 1000)

	var f Frustum
	f.SetFromProjection(proj, 250)

	for k := 0; k < 4; k++ {
		if absf(f.Far[k].Z+250) > 1e-2 {
			t.Errorf("ortho far corner %d z = %f, want -250", k, f.Far[k].Z)
		}

		// Only z is scaled: x/y keep the full ortho extent.
		if absf(absf(f.Far[k].X)-100) > 1e-3 || absf(absf(f.Far[k].Y)-50) > 1e-3 {
			t.Errorf("ortho far corner %d x/y changed by clamp: %v", k, f.Far[k])
		}
	}
}

func TestFrustumSplitPartition(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	fractions, err := Split(SchemePractical, 4, 1, 1000, DefaultLambda, nil)
	if err != nil {
		t.Fatal(err)
	}
	cascades := f.Split(fractions, nil)

	if len(cascades) != 4 {
		t.Fatalf("got %d cascades, want 4", len(cascades))
	}

	// First cascade near ring and last cascade far ring are copies of
	// the main frustum rings, not interpolations.
	for k := 0; k < 4; k++ {
		if cascades[0].Near[k] != f.Near[k] {
			t.Errorf("cascade 0 near[%d] = %v, want %v", k, cascades[0].Near[k], f.Near[k])
		}
		if cascades[3].Far[k] != f.Far[k] {
			t.Errorf("last cascade far[%d] = %v, want %v", k, cascades[3].Far[k], f.Far[k])
		}
	}

	// Adjacent cascades share their boundary ring exactly: no gaps, no
	// overlaps beyond the shared corners.
	for i := 0; i < 3; i++ {
		for k := 0; k < 4; k++ {
			if cascades[i].Far[k] != cascades[i+1].Near[k] {
				t.Errorf("cascade %d/%d boundary ring mismatch at corner %d: %v vs %v",
					i, i+1, k, cascades[i].Far[k], cascades[i+1].Near[k])
			}
		}
	}

	// Reconstructing the depth range from the boundary rings yields
	// the full [near, far] interval.
	if absf(cascades[0].Near[0].Z-f.Near[0].Z) > 1e-6 {
		t.Error("partition does not start at the main near ring")
	}
	if absf(cascades[3].Far[0].Z-f.Far[0].Z) > 1e-6 {
		t.Error("partition does not end at the main far ring")
	}
}

func TestFrustumSplitReusesSlice(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	buf := make([]Frustum, 0, 4)
	fractions := []float32{0.25, 0.5, 1}
	out := f.Split(fractions, buf)
	if len(out) != 3 {
		t.Fatalf("got %d cascades, want 3", len(out))
	}
	if &out[0] != &buf[:1][0] {
		t.Error("Split should reuse the provided backing array")
	}
}

func TestFrustumTransformed(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	shift := math.Translate(10, -5, 3)
	moved := f.Transformed(shift)
	for k := 0; k < 4; k++ {
		want := f.Near[k].Add(math.Vec3{X: 10, Y: -5, Z: 3})
		if moved.Near[k].Distance(want) > 1e-5 {
			t.Errorf("near corner %d: got %v, want %v", k, moved.Near[k], want)
		}
	}
}

func TestFrustumBounds(t *testing.T) {
	var f Frustum
	f.SetFromProjection(testProjection(), 0)

	b := f.Bounds()
	for k := 0; k < 4; k++ {
		for _, p := range []math.Vec3{f.Near[k], f.Far[k]} {
			if p.X < b.Min.X || p.X > b.Max.X ||
				p.Y < b.Min.Y || p.Y > b.Max.Y ||
				p.Z < b.Min.Z || p.Z > b.Max.Z {
				t.Errorf("corner %v outside bounds [%v, %v]", p, b.Min, b.Max)
			}
		}
	}
}

func sign(x float32) int {
	if x < 0 {
		return -1
	}
	return 1
}
