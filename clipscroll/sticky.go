// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"math"

	"github.com/gogpu/scenegraph/geom"
)

// Margin is an optional sticky margin.
type Margin struct {
	Value float32
	Set   bool
}

// Px returns a margin of v layout pixels.
func Px(v float32) Margin {
	return Margin{Value: v, Set: true}
}

// StickyMargins are the distances a sticky item keeps from each edge of
// its scrolling viewport. Unset sides do not stick.
type StickyMargins struct {
	Top, Right, Bottom, Left Margin
}

// StickyOffsetBounds limits the total sticky offset along one axis. The
// zero value allows no offset at all; use Unbounded for no limit.
type StickyOffsetBounds struct {
	Min, Max float32
}

// Unbounded returns bounds that never limit the offset.
func Unbounded() StickyOffsetBounds {
	return StickyOffsetBounds{Min: -math.MaxFloat32, Max: math.MaxFloat32}
}

func (b StickyOffsetBounds) clampAdjusted(v, adjust float32) float32 {
	return min(max(v+adjust, b.Min), b.Max) - adjust
}

// StickyFrame implements position: sticky against the nearest scrolling
// ancestor.
type StickyFrame struct {
	Margins          StickyMargins
	VerticalBounds   StickyOffsetBounds
	HorizontalBounds StickyOffsetBounds

	// PreviouslyAppliedOffset is the offset the scene builder already
	// baked into the item's position.
	PreviouslyAppliedOffset geom.Vector
	// CurrentOffset is the offset computed by the last tree update.
	CurrentOffset geom.Vector
}

func (*StickyFrame) isNodeType() {}

// offset returns the extra offset needed to keep rect, the sticky item's
// viewport in its scroll frame's content space, within viewport.
func (s *StickyFrame) offset(rect geom.Rect, scrollOffset geom.Vector, viewport geom.Rect) geom.Vector {
	m := s.Margins
	if !m.Top.Set && !m.Bottom.Set && !m.Left.Set && !m.Right.Set {
		return geom.Vector{}
	}

	// Work with the scrolled item against the unscrolled viewport.
	r := rect.Translate(scrollOffset)
	prev := s.PreviouslyAppliedOffset
	var off geom.Vector

	if m.Top.Set {
		edge := viewport.MinY() + m.Top.Value
		if r.MinY() < edge {
			off.Y = edge - r.MinY()
		} else if prev.Y > 0 && r.MinY() > edge {
			// Undo part of an offset that is no longer needed, never
			// overshooting the other way.
			off.Y = max(edge-r.MinY(), -prev.Y)
		}
	}
	if off.Y+prev.Y <= 0 && m.Bottom.Set {
		edge := viewport.MaxY() - m.Bottom.Value
		if r.MaxY() > edge {
			off.Y = edge - r.MaxY()
		} else if prev.Y < 0 && r.MaxY() < edge {
			off.Y = min(edge-r.MaxY(), -prev.Y)
		}
	}

	if m.Left.Set {
		edge := viewport.MinX() + m.Left.Value
		if r.MinX() < edge {
			off.X = edge - r.MinX()
		} else if prev.X > 0 && r.MinX() > edge {
			off.X = max(edge-r.MinX(), -prev.X)
		}
	}
	if off.X+prev.X <= 0 && m.Right.Set {
		edge := viewport.MaxX() - m.Right.Value
		if r.MaxX() > edge {
			off.X = edge - r.MaxX()
		} else if prev.X < 0 && r.MaxX() < edge {
			off.X = min(edge-r.MaxX(), -prev.X)
		}
	}

	off.Y = s.VerticalBounds.clampAdjusted(off.Y, prev.Y)
	off.X = s.HorizontalBounds.clampAdjusted(off.X, prev.X)
	return off
}
