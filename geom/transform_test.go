package geom

import (
	"math"
	"testing"
)

func TestPreservesAxisAlignment(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		want bool
	}{
		{"identity", Identity(), true},
		{"translation", Translation(10, 20, 0), true},
		{"scale", Scaling(2, 0.5, 1), true},
		{"negative scale", Scaling(-1, 1, 1), true},
		{"rotation 45deg", Rotation(math.Pi / 4), false},
		{"perspective", Perspective(100), true},
		{"perspective with x term", Transform{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0.01, 0, 0, 1}, false},
		{"swap axes", Transform{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, true},
		{"scale + translate", Translation(5, 5, 0).Mul(Scaling(2, 2, 1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.PreservesAxisAlignment(); got != tt.want {
				t.Errorf("PreservesAxisAlignment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformMulOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translation(10, 0, 0).Mul(Scaling(2, 2, 1))
	p, ok := m.TransformPoint(Pt(1, 1))
	if !ok {
		t.Fatal("TransformPoint() failed")
	}
	if p != Pt(12, 2) {
		t.Errorf("TransformPoint() = %v, want (12, 2)", p)
	}
}

func TestPreAndPostTranslate(t *testing.T) {
	s := Scaling(2, 2, 1)

	pre, _ := s.PreTranslate(Vec(5, 0)).TransformPoint(Pt(0, 0))
	if pre != Pt(10, 0) {
		t.Errorf("PreTranslate: got %v, want (10, 0)", pre)
	}
	post, _ := s.PostTranslate(Vec(5, 0)).TransformPoint(Pt(0, 0))
	if post != Pt(5, 0) {
		t.Errorf("PostTranslate: got %v, want (5, 0)", post)
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"identity", Identity()},
		{"translation", Translation(3, -4, 2)},
		{"scale", Scaling(2, 4, 1)},
		{"rotation", Rotation(0.3)},
		{"combined", Translation(10, 20, 0).Mul(Rotation(1.1)).Mul(Scaling(3, 0.5, 1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if !ok {
				t.Fatal("Inverse() reported singular matrix")
			}
			if got := tt.m.Mul(inv); !got.ApproxEqual(Identity(), 1e-5) {
				t.Errorf("m * inverse = %v, want identity", got)
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scaling(0, 1, 1)
	if m.IsInvertible() {
		t.Error("IsInvertible() = true for zero scale")
	}
	if _, ok := m.Inverse(); ok {
		t.Error("Inverse() succeeded for zero scale")
	}
}

func TestTransformRect(t *testing.T) {
	r := R(0, 0, 10, 20)

	got, ok := Translation(5, 5, 0).TransformRect(r)
	if !ok || got != R(5, 5, 10, 20) {
		t.Errorf("translated rect = %v, %v; want (5,5,10,20)", got, ok)
	}

	// A quarter turn swaps the extents.
	quarter := Transform{0, -1, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	got, ok = quarter.TransformRect(r)
	if !ok || got != R(-20, 0, 20, 10) {
		t.Errorf("rotated rect = %v, %v; want (-20,0,20,10)", got, ok)
	}
}

func TestTransformPointBehindViewer(t *testing.T) {
	m := Transform{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, -1}
	if _, ok := m.TransformPoint(Pt(1, 1)); ok {
		t.Error("TransformPoint() succeeded with negative w")
	}
}
