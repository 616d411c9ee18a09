package math

import (
	"math"
	"testing"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func vecClose(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) < eps && abs(a.Y-b.Y) < eps && abs(a.Z-b.Z) < eps
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3Translate(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestIsPerspective(t *testing.T) {
	p := Perspective(float32(math.Pi/3), 16.0/9.0, 1, 1000)
	if !p.IsPerspective() {
		t.Error("Perspective matrix should report IsPerspective")
	}
	o := Ortho(-10, 10, -10, 10, 1, 100)
	if o.IsPerspective() {
		t.Error("Ortho matrix should not report IsPerspective")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Perspective(1.0, 1.5, 1, 500).Mul(LookAt(Vec3{10, 20, 30}, Vec3{}, Vec3{Y: 1}))
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Identity()
	for i := 0; i < 16; i++ {
		if abs(id[i]-want[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, id[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("singular matrix inverse should fall back to identity")
	}
}

func TestLookAtOrigin(t *testing.T) {
	// Camera at +Z looking at origin: origin maps to -dist on the view z axis
	view := LookAt(Vec3{0, 0, 10}, Vec3{}, Vec3{Y: 1})
	got := view.TransformVec3(Vec3{})
	want := Vec3{0, 0, -10}
	if !vecClose(got, want, 1e-5) {
		t.Errorf("LookAt origin: got %v, want %v", got, want)
	}
}

func TestPerspectiveProjectNearFar(t *testing.T) {
	near, far := float32(1), float32(100)
	p := Perspective(float32(math.Pi/2), 1, near, far)

	// A point on the near plane projects to z = -1, far plane to z = +1
	nearNDC := p.Project(Vec3{0, 0, -near})
	farNDC := p.Project(Vec3{0, 0, -far})
	if abs(nearNDC.Z+1) > 1e-4 {
		t.Errorf("near plane NDC z = %f, want -1", nearNDC.Z)
	}
	if abs(farNDC.Z-1) > 1e-4 {
		t.Errorf("far plane NDC z = %f, want 1", farNDC.Z)
	}
}

func TestOrthoCenterMapsToOrigin(t *testing.T) {
	o := Ortho(-5, 15, -10, 20, 1, 101)
	center := Vec3{5, 5, -51}
	got := o.Project(center)
	if !vecClose(got, Vec3{}, 1e-5) {
		t.Errorf("ortho volume center should map to NDC origin, got %v", got)
	}
}

func TestMulVec4(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.MulVec4(Vec4{0, 0, 0, 1})
	want := Vec4{1, 2, 3, 1}
	if got != want {
		t.Errorf("MulVec4: got %v, want %v", got, want)
	}

	// Direction vectors (w=0) ignore translation
	dir := m.MulVec4(Vec4{1, 0, 0, 0})
	if dir != (Vec4{1, 0, 0, 0}) {
		t.Errorf("MulVec4 direction: got %v, want {1 0 0 0}", dir)
	}
}

func TestTransformDirection(t *testing.T) {
	m := Translate(5, 5, 5)
	got := m.TransformDirection(Vec3{1, 2, 3})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("TransformDirection should ignore translation: got %v, want %v", got, want)
	}
}
