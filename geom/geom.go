// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the float32 geometry shared by the clip/scroll tree,
// the clip store and the GPU cache encoders.
//
// Layout space uses the usual screen convention: origin at top-left, X grows
// right and Y grows down. Device space rectangles are integer
// [image.Rectangle] values produced by rounding layout rects after scaling.
package geom

import "math"

// Point is a position in layout or world space.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// ToVector returns the vector from the origin to p.
func (p Point) ToVector() Vector {
	return Vector{X: p.X, Y: p.Y}
}

// Vector is a displacement in layout space.
type Vector struct {
	X, Y float32
}

// Vec creates a Vector from x, y components.
func Vec(x, y float32) Vector {
	return Vector{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the difference of two vectors.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns the opposite vector.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Mul returns the vector scaled by s.
func (v Vector) Mul(s float32) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Round rounds both components to the nearest integer.
func (v Vector) Round() Vector {
	return Vector{X: round(v.X), Y: round(v.Y)}
}

// Size is a width and height in layout space.
type Size struct {
	W, H float32
}

// Sz creates a Size.
func Sz(w, h float32) Size {
	return Size{W: w, H: h}
}

// Area returns W*H.
func (s Size) Area() float32 {
	return s.W * s.H
}

// IsEmpty reports whether the size covers no area.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	Origin Point
	Size   Size
}

// R creates a Rect from position and size.
func R(x, y, w, h float32) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// RectFromPoints creates the rect spanning min to max.
func RectFromPoints(min, max Point) Rect {
	return Rect{Origin: min, Size: Size{W: max.X - min.X, H: max.Y - min.Y}}
}

// maxCoord keeps MaxRect well inside float32 range so sums never overflow.
const maxCoord = float32(1 << 30)

// MaxRect returns a rect large enough to contain any layout content. It is
// the identity element for Intersection.
func MaxRect() Rect {
	return R(-maxCoord/2, -maxCoord/2, maxCoord, maxCoord)
}

func (r Rect) MinX() float32 { return r.Origin.X }
func (r Rect) MinY() float32 { return r.Origin.Y }
func (r Rect) MaxX() float32 { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() float32 { return r.Origin.Y + r.Size.H }

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.MaxX(), Y: r.MaxY()}
}

// IsEmpty reports whether the rect covers no area.
func (r Rect) IsEmpty() bool {
	return r.Size.IsEmpty()
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vector) Rect {
	return Rect{Origin: r.Origin.Add(v), Size: r.Size}
}

// Scale returns r with origin and size multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return R(r.Origin.X*s, r.Origin.Y*s, r.Size.W*s, r.Size.H*s)
}

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// ContainsRect reports whether o lies entirely inside r. An empty o is
// contained in every rect.
func (r Rect) ContainsRect(o Rect) bool {
	return o.IsEmpty() ||
		(r.MinX() <= o.MinX() && o.MaxX() <= r.MaxX() &&
			r.MinY() <= o.MinY() && o.MaxY() <= r.MaxY())
}

// Intersection returns the overlap of r and o and whether it is non-empty.
func (r Rect) Intersection(o Rect) (Rect, bool) {
	x0 := max(r.MinX(), o.MinX())
	y0 := max(r.MinY(), o.MinY())
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return RectFromPoints(Pt(x0, y0), Pt(x1, y1)), true
}

// Union returns the smallest rect containing both r and o. Empty rects are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectFromPoints(
		Pt(min(r.MinX(), o.MinX()), min(r.MinY(), o.MinY())),
		Pt(max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())),
	)
}

// Inflate grows the rect by dx on the left and right and dy on the top and
// bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy float32) Rect {
	return R(r.Origin.X-dx, r.Origin.Y-dy, r.Size.W+2*dx, r.Size.H+2*dy)
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
