package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
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

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0, 5}, Vec3{-1, 0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVec3(tt.in); got != tt.want {
				t.Errorf("TransformVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// (1,0,0) turns into (0,0,-1)
	if !near(got, Vec3{0, 0, -1}) {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	if !near(got, Vec3{0, 1, 0}) {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestCompose(t *testing.T) {
	// Scale first, then rotate 90 degrees about Z, then translate.
	m := Compose(Vec3{10, 0, 0}, Vec3{0, 0, float32(math.Pi / 2)}, Vec3{2, 2, 2})
	got := m.TransformVec3(Vec3{1, 0, 0})

	if !near(got, Vec3{10, 2, 0}) {
		t.Errorf("Compose: got %v, want (10, 2, 0)", got)
	}
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(Vec3{}, Vec3{}, Vec3{1, 1, 1})
	if m != Identity() {
		t.Errorf("Compose of neutral transform = %v, want identity", m)
	}
}

func near(a, b Vec3) bool {
	return abs(a.X-b.X) < 0.001 && abs(a.Y-b.Y) < 0.001 && abs(a.Z-b.Z) < 0.001
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
