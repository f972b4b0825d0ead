// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/scenegraph"
)

// Location is a placed rectangle.
type Location struct {
	Slice  SliceID
	Origin image.Point
	Size   image.Point
}

// Rect returns the occupied region within the slice.
func (l Location) Rect() image.Rectangle {
	return image.Rectangle{Min: l.Origin, Max: l.Origin.Add(l.Size)}
}

// Allocator places rectangles in equally sized slices, adding a slice
// whenever the existing ones are full.
type Allocator struct {
	tracker   *Tracker
	sliceSize image.Point
	slices    int
	maxSlices int
}

// NewAllocator creates an allocator without slices. The first allocation
// creates slice 0.
func NewAllocator(sliceSize image.Point, opts ...Option) *Allocator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Allocator{
		tracker:   NewTracker(opts...),
		sliceSize: sliceSize,
		maxSlices: o.maxSlices,
	}
}

// Slices returns the number of slices created so far.
func (a *Allocator) Slices() int {
	return a.slices
}

// SliceSize returns the size of every slice.
func (a *Allocator) SliceSize() image.Point {
	return a.sliceSize
}

// Tracker exposes the underlying free-space tracker.
func (a *Allocator) Tracker() *Tracker {
	return a.tracker
}

// Allocate places a rectangle of the given size.
func (a *Allocator) Allocate(size image.Point) (Location, error) {
	if size.X > a.sliceSize.X || size.Y > a.sliceSize.Y {
		return Location{}, fmt.Errorf("%w: %v > %v", ErrTooLarge, size, a.sliceSize)
	}
	if slice, origin, ok := a.tracker.Allocate(size); ok {
		return Location{Slice: slice, Origin: origin, Size: size}, nil
	}
	if a.slices >= a.maxSlices {
		return Location{}, ErrAtlasFull
	}

	slice := SliceID(a.slices)
	a.slices++
	a.tracker.Extend(slice, a.sliceSize, size)

	scenegraph.Logger().Debug("atlas: added slice",
		"slice", slice, "size", a.sliceSize, "slices", a.slices)
	return Location{Slice: slice, Size: size}, nil
}

// Reset forgets every slice and allocation.
func (a *Allocator) Reset() {
	a.tracker.Clear()
	a.slices = 0
}
