package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	got := Vec2{3, 4}.Length()
	if got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Mul(t *testing.T) {
	got := Vec2{80, 60}.Mul(Vec2{2, 2})
	want := Vec2{160, 120}
	if got != want {
		t.Errorf("Vec2.Mul() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.9999 || l > 1.0001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 1, 1}.Distance(Vec3{4, 5, 1})
	if got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestVec3Angle(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same", Vec3{1, 0, 0}, Vec3{5, 0, 0}, 0},
		{"perpendicular", Vec3{1, 0, 0}, Vec3{0, 2, 0}, math.Pi / 2},
		{"opposite", Vec3{0, 0, 1}, Vec3{0, 0, -3}, math.Pi},
		{"zero", Vec3{}, Vec3{1, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Angle(tt.b)
			if math.Abs(float64(got)-tt.want) > 0.001 {
				t.Errorf("Angle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3Rotate(t *testing.T) {
	got := Vec3{1, 0, 0}.Rotate(90, Vec3{0, 0, 1})
	if !approxVec3(got, Vec3{0, 1, 0}, 0.0001) {
		t.Errorf("Rotate 90 about Z = %v, want (0, 1, 0)", got)
	}

	// Unnormalized axis behaves the same
	got = Vec3{1, 0, 0}.Rotate(90, Vec3{0, 0, 7})
	if !approxVec3(got, Vec3{0, 1, 0}, 0.0001) {
		t.Errorf("Rotate 90 about scaled Z = %v, want (0, 1, 0)", got)
	}

	// Zero axis is a no-op
	p := Vec3{1, 2, 3}
	if got := p.Rotate(45, Vec3{}); got != p {
		t.Errorf("Rotate about zero axis = %v, want %v", got, p)
	}
}

func TestVec3Axis(t *testing.T) {
	v := Vec3{1, 2, 3}
	for i, want := range []float32{1, 2, 3} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v, want %v", i, got, want)
		}
	}
	if got := v.SetAxis(1, 9); got != (Vec3{1, 9, 3}) {
		t.Errorf("SetAxis(1, 9) = %v", got)
	}
}
