// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Transform is a 4x4 matrix in row-major order acting on column vectors:
//
//	| m0  m1  m2  m3  |   |x|
//	| m4  m5  m6  m7  | * |y|
//	| m8  m9  m10 m11 |   |z|
//	| m12 m13 m14 m15 |   |1|
//
// The translation lives in m3, m7 and m11; perspective in the bottom row.
type Transform f32.Mat4

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation transform.
func Translation(x, y, z float32) Transform {
	return Transform{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// TranslationVec creates a 2D translation transform from v.
func TranslationVec(v Vector) Transform {
	return Translation(v.X, v.Y, 0)
}

// Scaling creates a scale transform.
func Scaling(x, y, z float32) Transform {
	return Transform{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Rotation creates a rotation about the Z axis (angle in radians).
func Rotation(angle float32) Transform {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Transform{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective creates a CSS perspective transform with the given distance.
func Perspective(d float32) Transform {
	t := Identity()
	t[14] = -1 / d
	return t
}

// Mul returns t * o: the result applies o first, then t.
func (t Transform) Mul(o Transform) Transform {
	var r Transform
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += t[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// PreTranslate returns t * Translation(v): v is applied in t's local space.
func (t Transform) PreTranslate(v Vector) Transform {
	if v.IsZero() {
		return t
	}
	return t.Mul(TranslationVec(v))
}

// PostTranslate returns Translation(v) * t: v is applied after t.
func (t Transform) PostTranslate(v Vector) Transform {
	if v.IsZero() {
		return t
	}
	return TranslationVec(v).Mul(t)
}

// TransformPoint maps a 2D point through t. It returns false when the point
// ends up behind the viewer (w <= 0).
func (t Transform) TransformPoint(p Point) (Point, bool) {
	x := t[0]*p.X + t[1]*p.Y + t[3]
	y := t[4]*p.X + t[5]*p.Y + t[7]
	w := t[12]*p.X + t[13]*p.Y + t[15]
	if w <= 0 {
		return Point{}, false
	}
	if w != 1 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}, true
}

// TransformRect returns the axis-aligned bounding box of r mapped through t.
// It returns false if any corner could not be projected.
func (t Transform) TransformRect(r Rect) (Rect, bool) {
	corners := [4]Point{
		r.Origin,
		{X: r.MaxX(), Y: r.MinY()},
		{X: r.MinX(), Y: r.MaxY()},
		r.Max(),
	}
	var minP, maxP Point
	for i, c := range corners {
		p, ok := t.TransformPoint(c)
		if !ok {
			return Rect{}, false
		}
		if i == 0 {
			minP, maxP = p, p
			continue
		}
		minP = Point{X: min(minP.X, p.X), Y: min(minP.Y, p.Y)}
		maxP = Point{X: max(maxP.X, p.X), Y: max(maxP.Y, p.Y)}
	}
	return RectFromPoints(minP, maxP), true
}

// Determinant returns the determinant of the full 4x4 matrix.
func (t Transform) Determinant() float32 {
	inv := t.cofactors()
	return t[0]*inv[0] + t[1]*inv[4] + t[2]*inv[8] + t[3]*inv[12]
}

// IsInvertible reports whether t has an inverse.
func (t Transform) IsInvertible() bool {
	return t.Determinant() != 0
}

// Inverse returns the inverse of t, or false if t is singular.
func (t Transform) Inverse() (Transform, bool) {
	inv := t.cofactors()
	det := t[0]*inv[0] + t[1]*inv[4] + t[2]*inv[8] + t[3]*inv[12]
	if det == 0 {
		return Identity(), false
	}
	d := 1 / det
	for i := range inv {
		inv[i] *= d
	}
	return inv, true
}

// cofactors returns the transposed cofactor matrix (the adjugate) of t.
func (t Transform) cofactors() Transform {
	var inv Transform
	inv[0] = t[5]*t[10]*t[15] - t[5]*t[11]*t[14] - t[9]*t[6]*t[15] + t[9]*t[7]*t[14] + t[13]*t[6]*t[11] - t[13]*t[7]*t[10]
	inv[4] = -t[4]*t[10]*t[15] + t[4]*t[11]*t[14] + t[8]*t[6]*t[15] - t[8]*t[7]*t[14] - t[12]*t[6]*t[11] + t[12]*t[7]*t[10]
	inv[8] = t[4]*t[9]*t[15] - t[4]*t[11]*t[13] - t[8]*t[5]*t[15] + t[8]*t[7]*t[13] + t[12]*t[5]*t[11] - t[12]*t[7]*t[9]
	inv[12] = -t[4]*t[9]*t[14] + t[4]*t[10]*t[13] + t[8]*t[5]*t[14] - t[8]*t[6]*t[13] - t[12]*t[5]*t[10] + t[12]*t[6]*t[9]
	inv[1] = -t[1]*t[10]*t[15] + t[1]*t[11]*t[14] + t[9]*t[2]*t[15] - t[9]*t[3]*t[14] - t[13]*t[2]*t[11] + t[13]*t[3]*t[10]
	inv[5] = t[0]*t[10]*t[15] - t[0]*t[11]*t[14] - t[8]*t[2]*t[15] + t[8]*t[3]*t[14] + t[12]*t[2]*t[11] - t[12]*t[3]*t[10]
	inv[9] = -t[0]*t[9]*t[15] + t[0]*t[11]*t[13] + t[8]*t[1]*t[15] - t[8]*t[3]*t[13] - t[12]*t[1]*t[11] + t[12]*t[3]*t[9]
	inv[13] = t[0]*t[9]*t[14] - t[0]*t[10]*t[13] - t[8]*t[1]*t[14] + t[8]*t[2]*t[13] + t[12]*t[1]*t[10] - t[12]*t[2]*t[9]
	inv[2] = t[1]*t[6]*t[15] - t[1]*t[7]*t[14] - t[5]*t[2]*t[15] + t[5]*t[3]*t[14] + t[13]*t[2]*t[7] - t[13]*t[3]*t[6]
	inv[6] = -t[0]*t[6]*t[15] + t[0]*t[7]*t[14] + t[4]*t[2]*t[15] - t[4]*t[3]*t[14] - t[12]*t[2]*t[7] + t[12]*t[3]*t[6]
	inv[10] = t[0]*t[5]*t[15] - t[0]*t[7]*t[13] - t[4]*t[1]*t[15] + t[4]*t[3]*t[13] + t[12]*t[1]*t[7] - t[12]*t[3]*t[5]
	inv[14] = -t[0]*t[5]*t[14] + t[0]*t[6]*t[13] + t[4]*t[1]*t[14] - t[4]*t[2]*t[13] - t[12]*t[1]*t[6] + t[12]*t[2]*t[5]
	inv[3] = -t[1]*t[6]*t[11] + t[1]*t[7]*t[10] + t[5]*t[2]*t[11] - t[5]*t[3]*t[10] - t[9]*t[2]*t[7] + t[9]*t[3]*t[6]
	inv[7] = t[0]*t[6]*t[11] - t[0]*t[7]*t[10] - t[4]*t[2]*t[11] + t[4]*t[3]*t[10] + t[8]*t[2]*t[7] - t[8]*t[3]*t[6]
	inv[11] = -t[0]*t[5]*t[11] + t[0]*t[7]*t[9] + t[4]*t[1]*t[11] - t[4]*t[3]*t[9] - t[8]*t[1]*t[7] + t[8]*t[3]*t[5]
	inv[15] = t[0]*t[5]*t[10] - t[0]*t[6]*t[9] - t[4]*t[1]*t[10] + t[4]*t[2]*t[9] + t[8]*t[1]*t[6] - t[8]*t[2]*t[5]
	return inv
}

// HasPerspective reports whether the bottom row differs from (0, 0, _, 1)
// in the components that affect 2D points.
func (t Transform) HasPerspective() bool {
	return t[12] != 0 || t[13] != 0 || t[15] != 1
}

// PreservesAxisAlignment reports whether t maps axis-aligned 2D rects to
// axis-aligned rects: scale, translation and quarter-turn rotations only,
// with no perspective.
func (t Transform) PreservesAxisAlignment() bool {
	if t[12] != 0 || t[13] != 0 || t[15] == 0 {
		return false
	}
	return (t[1] == 0 && t[4] == 0) || (t[0] == 0 && t[5] == 0)
}

// IsTranslation2D reports whether t only translates in the XY plane.
func (t Transform) IsTranslation2D() bool {
	return t[0] == 1 && t[1] == 0 && t[4] == 0 && t[5] == 1 && !t.HasPerspective()
}

// Translation2D returns the XY translation component.
func (t Transform) Translation2D() Vector {
	return Vector{X: t[3], Y: t[7]}
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// ApproxEqual reports whether every element of t and o differs by at most eps.
func (t Transform) ApproxEqual(o Transform, eps float32) bool {
	for i := range t {
		d := t[i] - o[i]
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}
