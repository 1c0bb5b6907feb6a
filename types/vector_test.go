package types

import "testing"

func TestMinMaxVec3(t *testing.T) {
	v1 := XYZ(-1, 2, 3)
	v2 := XYZ(0, -2, 5)

	expMin := Vec3{-1, -2, 3}
	if min := MinVec3(v1, v2); min != expMin {
		t.Fatalf("expected min to be %v; got %v", expMin, min)
	}

	expMax := Vec3{0, 2, 5}
	if max := MaxVec3(v1, v2); max != expMax {
		t.Fatalf("expected max to be %v; got %v", expMax, max)
	}
}

func TestMaxComponent(t *testing.T) {
	specs := []struct {
		in  Vec3
		exp float32
	}{
		{Vec3{0, 0, 0}, 0},
		{Vec3{0.1, 0.7, 0.3}, 0.7},
		{Vec3{-1, -2, -0.5}, -0.5},
	}

	for idx, s := range specs {
		if got := s.in.MaxComponent(); got != s.exp {
			t.Fatalf("[spec %d] expected max component to be %f; got %f", idx, s.exp, got)
		}
	}
}

func TestArithmetic(t *testing.T) {
	if got := Splat3(0.5).Add(XYZ(1, 2, 3)).Sub(Vec3{1, 1, 1}).Mul(2); got != (Vec3{1, 3, 5}) {
		t.Fatalf("expected {1 3 5}; got %v", got)
	}
}
