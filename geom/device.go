// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"image"
	"math"
)

// ToDevice scales a world rect by the device pixel scale.
func ToDevice(r Rect, scale float32) Rect {
	return r.Scale(scale)
}

// RoundOut returns the smallest integer rectangle containing r.
func RoundOut(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.MinX()))),
		int(math.Floor(float64(r.MinY()))),
		int(math.Ceil(float64(r.MaxX()))),
		int(math.Ceil(float64(r.MaxY()))),
	)
}

// RoundIn returns the largest integer rectangle contained in r, or the zero
// rectangle if none exists.
func RoundIn(r Rect) image.Rectangle {
	x0 := int(math.Ceil(float64(r.MinX())))
	y0 := int(math.Ceil(float64(r.MinY())))
	x1 := int(math.Floor(float64(r.MaxX())))
	y1 := int(math.Floor(float64(r.MaxY())))
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}
