package geom

import (
	"image"
	"testing"
)

func TestRectIntersection(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Rect
		want   Rect
		wantOK bool
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), R(5, 5, 5, 5), true},
		{"contained", R(0, 0, 10, 10), R(2, 2, 3, 3), R(2, 2, 3, 3), true},
		{"touching", R(0, 0, 10, 10), R(10, 0, 5, 5), Rect{}, false},
		{"disjoint", R(0, 0, 1, 1), R(5, 5, 1, 1), Rect{}, false},
		{"max rect", MaxRect(), R(1, 2, 3, 4), R(1, 2, 3, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersection(tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Intersection() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := R(0, 0, 100, 100)
	if !outer.ContainsRect(R(10, 10, 20, 20)) {
		t.Error("expected inner rect to be contained")
	}
	if outer.ContainsRect(R(90, 90, 20, 20)) {
		t.Error("expected overflowing rect not to be contained")
	}
	if !outer.ContainsRect(R(500, 500, 0, 0)) {
		t.Error("empty rects are contained in every rect")
	}
}

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 10, 10).Union(R(20, 5, 5, 10))
	if got != R(0, 0, 25, 15) {
		t.Errorf("Union() = %v, want (0,0,25,15)", got)
	}
	if got := (Rect{}).Union(R(1, 1, 1, 1)); got != R(1, 1, 1, 1) {
		t.Errorf("Union() with empty = %v", got)
	}
}

func TestRoundOutAndIn(t *testing.T) {
	r := R(0.5, 1.25, 10, 10)
	if got, want := RoundOut(r), image.Rect(0, 1, 11, 12); got != want {
		t.Errorf("RoundOut() = %v, want %v", got, want)
	}
	if got, want := RoundIn(r), image.Rect(1, 2, 10, 11); got != want {
		t.Errorf("RoundIn() = %v, want %v", got, want)
	}
	if got := RoundIn(R(0.2, 0.2, 0.5, 0.5)); got != (image.Rectangle{}) {
		t.Errorf("RoundIn() of sub-pixel rect = %v, want empty", got)
	}
}
