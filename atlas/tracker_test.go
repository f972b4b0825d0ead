package atlas

import (
	"image"
	"math/rand/v2"
	"testing"
)

func TestBinFor(t *testing.T) {
	tests := []struct {
		size image.Point
		want bin
	}{
		{image.Pt(1, 1), 0},
		{image.Pt(15, 100), 0},
		{image.Pt(16, 16), 1},
		{image.Pt(100, 31), 1},
		{image.Pt(32, 32), 2},
		{image.Pt(512, 512), 2},
	}
	for _, tt := range tests {
		if got := binFor(tt.size); got != tt.want {
			t.Errorf("binFor(%v) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestTrackerExactFit(t *testing.T) {
	tr := NewTracker()
	tr.AddSlice(0, image.Pt(64, 64))

	s1, p1, ok := tr.Allocate(image.Pt(32, 64))
	if !ok || s1 != 0 || p1 != image.Pt(0, 0) {
		t.Fatalf("first Allocate() = %d, %v, %v; want 0, (0,0), true", s1, p1, ok)
	}
	s2, p2, ok := tr.Allocate(image.Pt(32, 64))
	if !ok || s2 != 0 || p2 != image.Pt(32, 0) {
		t.Fatalf("second Allocate() = %d, %v, %v; want 0, (32,0), true", s2, p2, ok)
	}
	if _, _, ok := tr.Allocate(image.Pt(1, 1)); ok {
		t.Fatal("third Allocate() succeeded on a full slice")
	}

	tr.Extend(1, image.Pt(64, 64), image.Pt(1, 1))
	s3, p3, ok := tr.Allocate(image.Pt(1, 1))
	if !ok || s3 != 1 {
		t.Fatalf("Allocate() after Extend = %d, %v, %v; want slice 1", s3, p3, ok)
	}
	if p3 == image.Pt(0, 0) {
		t.Error("Allocate() after Extend reused the origin taken by Extend")
	}
}

func TestTrackerZeroArea(t *testing.T) {
	tr := NewTracker()
	s, p, ok := tr.Allocate(image.Pt(0, 10))
	if !ok || s != 0 || p != (image.Point{}) {
		t.Errorf("Allocate(0x10) = %d, %v, %v; want 0, (0,0), true", s, p, ok)
	}
}

func TestTrackerSplitPrefersLargerPiece(t *testing.T) {
	tr := NewTracker()
	tr.AddSlice(0, image.Pt(100, 40))
	tr.Allocate(image.Pt(10, 10))

	// Right candidate 90x10 beats bottom 10x30, so right spans full height.
	rects := tr.FreeRects()
	want := map[image.Rectangle]bool{
		image.Rect(10, 0, 100, 40): true,
		image.Rect(0, 10, 10, 40):  true,
	}
	if len(rects) != 2 {
		t.Fatalf("FreeRects() = %v, want 2 rects", rects)
	}
	for _, fr := range rects {
		if !want[fr.Rect] {
			t.Errorf("unexpected free rect %v", fr.Rect)
		}
	}
}

func TestTrackerSearchesUpwardOnly(t *testing.T) {
	tr := NewTracker()
	// Only a small-bin rect is free: a 20x20 request may not use it.
	tr.AddSlice(0, image.Pt(200, 10))
	if _, _, ok := tr.Allocate(image.Pt(20, 20)); ok {
		t.Error("Allocate() granted a rect from a smaller bin")
	}
	// A 1x1 request may be served from a larger bin.
	tr2 := NewTracker()
	tr2.AddSlice(1, image.Pt(64, 64))
	if s, _, ok := tr2.Allocate(image.Pt(1, 1)); !ok || s != 1 {
		t.Errorf("Allocate(1x1) = %d, %v; want slice 1", s, ok)
	}
}

func TestTrackerSmallestAreaFit(t *testing.T) {
	first := NewTracker()
	best := NewTracker(WithSmallestAreaFit(true))
	for _, tr := range []*Tracker{first, best} {
		tr.AddSlice(0, image.Pt(200, 200))
		tr.AddSlice(1, image.Pt(40, 40))
	}
	if s, _, _ := first.Allocate(image.Pt(40, 40)); s != 0 {
		t.Errorf("first fit chose slice %d, want 0", s)
	}
	if s, _, _ := best.Allocate(image.Pt(40, 40)); s != 1 {
		t.Errorf("best area fit chose slice %d, want 1", s)
	}
}

func TestTrackerCoverageAndConservation(t *testing.T) {
	for _, smallest := range []bool{false, true} {
		rng := rand.New(rand.NewPCG(1, 2))
		tr := NewTracker(WithSmallestAreaFit(smallest))
		bounds := image.Rect(0, 0, 256, 256)
		tr.AddSlice(0, bounds.Size())

		var placed []image.Rectangle
		allocated := 0
		for i := 0; i < 500; i++ {
			size := image.Pt(1+rng.IntN(48), 1+rng.IntN(48))
			_, origin, ok := tr.Allocate(size)
			if !ok {
				continue
			}
			r := image.Rectangle{Min: origin, Max: origin.Add(size)}
			if !r.In(bounds) {
				t.Fatalf("allocation %v outside slice %v", r, bounds)
			}
			for _, other := range placed {
				if r.Overlaps(other) {
					t.Fatalf("allocation %v overlaps %v", r, other)
				}
			}
			for _, fr := range tr.FreeRects() {
				if fr.Rect.Overlaps(r) {
					t.Fatalf("free rect %v overlaps allocation %v", fr.Rect, r)
				}
			}
			placed = append(placed, r)
			allocated += size.X * size.Y

			if got := tr.FreeArea() + allocated; got != 256*256 {
				t.Fatalf("free + allocated = %d, want %d", got, 256*256)
			}
		}
		if len(placed) == 0 {
			t.Fatal("no allocation succeeded")
		}
	}
}

func TestTrackerClear(t *testing.T) {
	tr := NewTracker()
	tr.AddSlice(0, image.Pt(64, 64))
	tr.Clear()
	if tr.FreeArea() != 0 {
		t.Errorf("FreeArea() after Clear = %d", tr.FreeArea())
	}
}
