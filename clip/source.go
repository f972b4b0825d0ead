// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package clip describes clip sources, stores them for the clip/scroll tree
// and accumulates them into clip chains.
package clip

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/scenegraph/geom"
)

// Mode selects whether a clip keeps the inside or the outside of its shape.
type Mode uint8

const (
	// ModeClip keeps content inside the shape.
	ModeClip Mode = iota
	// ModeClipOut keeps content outside the shape.
	ModeClipOut
)

func (m Mode) String() string {
	switch m {
	case ModeClip:
		return "Clip"
	case ModeClipOut:
		return "ClipOut"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// BorderRadius holds the elliptical radii of the four corners.
type BorderRadius struct {
	TopLeft, TopRight, BottomLeft, BottomRight geom.Size
}

// UniformRadius returns circular corners of radius r.
func UniformRadius(r float32) BorderRadius {
	s := geom.Sz(r, r)
	return BorderRadius{TopLeft: s, TopRight: s, BottomLeft: s, BottomRight: s}
}

// IsZero reports whether every corner is square.
func (b BorderRadius) IsZero() bool {
	return b == BorderRadius{}
}

// ImageKey identifies an image resource owned by the resource cache.
type ImageKey uint64

// Source is one clip primitive. It is implemented by Rectangle,
// RoundedRectangle and ImageMask.
type Source interface {
	isSource()
}

// Rectangle clips to an axis-aligned rect.
type Rectangle struct {
	Rect geom.Rect
	Mode Mode
}

// RoundedRectangle clips to a rect with rounded corners.
type RoundedRectangle struct {
	Rect  geom.Rect
	Radii BorderRadius
	Mode  Mode
}

// ImageMask clips by the alpha channel of an image placed at Rect.
type ImageMask struct {
	Image  ImageKey
	Rect   geom.Rect
	Repeat bool
}

func (Rectangle) isSource()        {}
func (RoundedRectangle) isSource() {}
func (ImageMask) isSource()        {}

// innerRectFactor approximates 1 - 1/sqrt(2), the part of a corner radius
// that lies outside the largest inscribed axis-aligned rect.
const innerRectFactor = 0.3

// innerRect returns the part of a rounded rect unaffected by its corners.
func innerRect(r geom.Rect, radii BorderRadius) (geom.Rect, bool) {
	k := float32(innerRectFactor)
	xl := ceil(k * max(radii.TopLeft.W, radii.BottomLeft.W))
	xr := floor(r.Size.W - k*max(radii.TopRight.W, radii.BottomRight.W))
	yt := ceil(k * max(radii.TopLeft.H, radii.TopRight.H))
	yb := floor(r.Size.H - k*max(radii.BottomLeft.H, radii.BottomRight.H))
	if xl > xr || yt > yb {
		return geom.Rect{}, false
	}
	return geom.R(r.Origin.X+xl, r.Origin.Y+yt, xr-xl, yb-yt), true
}

// localBounds computes the local inner and outer rects of a clip list.
// The inner rect is the region every clip leaves fully visible; the outer
// rect bounds everything any clip might leave visible. hasOuter is false
// when no finite bound exists.
func localBounds(sources []Source) (inner, outer geom.Rect, hasOuter bool) {
	if len(sources) == 0 {
		return geom.Rect{}, geom.Rect{}, false
	}

	canInner, canOuter := true, true
	localOuter, outerOK := geom.MaxRect(), true
	localInner, innerOK := geom.MaxRect(), true

loop:
	for _, s := range sources {
		switch s := s.(type) {
		case ImageMask:
			if s.Repeat {
				canInner, canOuter = false, false
				break loop
			}
			if outerOK {
				localOuter, outerOK = localOuter.Intersection(s.Rect)
			}
			canInner = false
			innerOK = false
		case Rectangle:
			if s.Mode == ModeClipOut {
				canInner = false
				break loop
			}
			if outerOK {
				localOuter, outerOK = localOuter.Intersection(s.Rect)
			}
			if innerOK {
				localInner, innerOK = localInner.Intersection(s.Rect)
			}
		case RoundedRectangle:
			if s.Mode == ModeClipOut {
				canInner = false
				break loop
			}
			if outerOK {
				localOuter, outerOK = localOuter.Intersection(s.Rect)
			}
			if innerOK {
				if ir, ok := innerRect(s.Rect, s.Radii); ok {
					localInner, innerOK = localInner.Intersection(ir)
				} else {
					innerOK = false
				}
			}
		default:
			panic(fmt.Sprintf("clip: unknown source %T", s))
		}
	}

	if canOuter {
		hasOuter = true
		if outerOK {
			outer = localOuter
		}
	}
	if canInner && innerOK {
		inner = localInner
	}
	return inner, outer, hasOuter
}

// ScreenBounds projects the local bounds through transform and scales them
// to device pixels. The inner rect is only computed for axis-aligned
// transforms; elsewhere it is empty. hasOuter mirrors the local outer rect.
func (s *Sources) ScreenBounds(transform geom.Transform, scale float32) (inner, outer image.Rectangle, hasOuter bool) {
	if transform.PreservesAxisAlignment() && !s.LocalInnerRect.IsEmpty() {
		if r, ok := transform.TransformRect(s.LocalInnerRect); ok {
			inner = geom.RoundIn(geom.ToDevice(r, scale))
		}
	}
	if !s.HasOuter {
		return inner, image.Rectangle{}, false
	}
	if r, ok := transform.TransformRect(s.LocalOuterRect); ok {
		outer = geom.RoundOut(geom.ToDevice(r, scale))
	}
	return inner, outer, true
}

func ceil(v float32) float32  { return float32(math.Ceil(float64(v))) }
func floor(v float32) float32 { return float32(math.Floor(float64(v))) }
