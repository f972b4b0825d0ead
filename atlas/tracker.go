// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas packs rectangles into the layers ("slices") of a texture
// atlas using guillotine splitting.
//
// Free space is kept as a list of rectangles sorted into size-class bins by
// their smaller dimension. An allocation searches from its own bin upward,
// takes a fitting rectangle and cuts the remainder in two, keeping the cut
// that leaves the larger piece as large as possible (the MINAS rule).
package atlas

import (
	"fmt"
	"image"
)

// SliceID identifies one layer of the atlas.
type SliceID uint32

// FreeRect is an unallocated region of a slice.
type FreeRect struct {
	Slice SliceID
	Rect  image.Rectangle
}

const numBins = 3

// minRectAxisSizes are the smallest dimensions accepted by each bin.
var minRectAxisSizes = [numBins]int{1, 16, 32}

type bin uint8

// binFor returns the largest bin whose threshold both dimensions reach.
func binFor(size image.Point) bin {
	for i := numBins - 1; i >= 0; i-- {
		if minRectAxisSizes[i] <= size.X && minRectAxisSizes[i] <= size.Y {
			return bin(i)
		}
	}
	panic(fmt.Sprintf("atlas: no bin for size %v", size))
}

// Tracker records the free space of any number of slices.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	bins         [numBins][]FreeRect
	smallestArea bool
}

// NewTracker creates a tracker with no slices.
func NewTracker(opts ...Option) *Tracker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Tracker{smallestArea: o.smallestArea}
}

// AddSlice makes the whole of a new slice available.
func (t *Tracker) AddSlice(slice SliceID, size image.Point) {
	t.push(slice, image.Rectangle{Max: size})
}

// Allocate finds room for a rectangle of the requested size. Zero-area
// requests succeed at the origin of slice 0. It returns false when no
// slice has room; the caller is expected to Extend with a new slice.
func (t *Tracker) Allocate(size image.Point) (SliceID, image.Point, bool) {
	if size.X == 0 || size.Y == 0 {
		return 0, image.Point{}, true
	}
	b, index, ok := t.findBest(size)
	if !ok {
		return 0, image.Point{}, false
	}

	list := t.bins[b]
	chosen := list[index]
	last := len(list) - 1
	list[index] = list[last]
	t.bins[b] = list[:last]

	t.splitGuillotine(chosen, size)
	return chosen.Slice, chosen.Rect.Min, true
}

// Extend bootstraps a new slice of totalSize by allocating requested at its
// origin and recording the rest as free.
func (t *Tracker) Extend(slice SliceID, totalSize, requested image.Point) {
	t.splitGuillotine(FreeRect{Slice: slice, Rect: image.Rectangle{Max: totalSize}}, requested)
}

// Clear forgets every free rectangle.
func (t *Tracker) Clear() {
	for i := range t.bins {
		t.bins[i] = t.bins[i][:0]
	}
}

// FreeRects returns a copy of every free rectangle.
func (t *Tracker) FreeRects() []FreeRect {
	var out []FreeRect
	for _, list := range t.bins {
		out = append(out, list...)
	}
	return out
}

// FreeArea returns the total free area across all slices.
func (t *Tracker) FreeArea() int {
	area := 0
	for _, list := range t.bins {
		for _, fr := range list {
			area += fr.Rect.Dx() * fr.Rect.Dy()
		}
	}
	return area
}

func (t *Tracker) findBest(size image.Point) (bin, int, bool) {
	for b := binFor(size); b < numBins; b++ {
		if i, ok := t.findInBin(b, size); ok {
			return b, i, true
		}
	}
	return 0, 0, false
}

func (t *Tracker) findInBin(b bin, size image.Point) (int, bool) {
	best, bestArea := -1, 0
	for i, fr := range t.bins[b] {
		if fr.Rect.Dx() < size.X || fr.Rect.Dy() < size.Y {
			continue
		}
		if !t.smallestArea {
			return i, true
		}
		area := fr.Rect.Dx() * fr.Rect.Dy()
		if best < 0 || area < bestArea {
			best, bestArea = i, area
		}
	}
	return best, best >= 0
}

// splitGuillotine returns the parts of chosen not covered by a size-sized
// allocation at its origin to the free lists.
func (t *Tracker) splitGuillotine(chosen FreeRect, size image.Point) {
	r := chosen.Rect
	right := image.Rect(r.Min.X+size.X, r.Min.Y, r.Max.X, r.Min.Y+size.Y)
	bottom := image.Rect(r.Min.X, r.Min.Y+size.Y, r.Min.X+size.X, r.Max.Y)

	// The larger candidate absorbs the corner; ties go to the right.
	if area(right) >= area(bottom) {
		right.Max.Y = r.Max.Y
	} else {
		bottom.Max.X = r.Max.X
	}

	if !right.Empty() {
		t.push(chosen.Slice, right)
	}
	if !bottom.Empty() {
		t.push(chosen.Slice, bottom)
	}
}

func (t *Tracker) push(slice SliceID, r image.Rectangle) {
	b := binFor(r.Size())
	t.bins[b] = append(t.bins[b], FreeRect{Slice: slice, Rect: r})
}

func area(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}
