// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"github.com/gogpu/scenegraph/geom"
)

// ScrollSensitivity controls which events may scroll a frame.
type ScrollSensitivity uint8

const (
	// ScriptAndInputEvents frames scroll from wheel and touch input as well
	// as from programmatic requests.
	ScriptAndInputEvents ScrollSensitivity = iota
	// Script frames only scroll programmatically.
	Script
)

// ScrollClamping selects whether a new scroll origin is limited to the
// scrollable area.
type ScrollClamping uint8

const (
	ToContentBounds ScrollClamping = iota
	NoClamping
)

// ScrollLocationKind selects the meaning of a ScrollLocation.
type ScrollLocationKind uint8

const (
	// ScrollDelta scrolls by a relative amount.
	ScrollDelta ScrollLocationKind = iota
	// ScrollStart jumps to the top.
	ScrollStart
	// ScrollEnd jumps to the bottom.
	ScrollEnd
)

// ScrollLocation describes a user scroll request.
type ScrollLocation struct {
	Kind  ScrollLocationKind
	Delta geom.Vector
}

// Delta returns a relative scroll request.
func Delta(v geom.Vector) ScrollLocation {
	return ScrollLocation{Kind: ScrollDelta, Delta: v}
}

// ScrollFrame is a node whose content can be moved within its viewport.
type ScrollFrame struct {
	// Offset is applied to the content; it is the negated scroll origin.
	Offset geom.Vector
	// ScrollableSize is how far the content extends past the viewport.
	ScrollableSize geom.Size
	Sensitivity    ScrollSensitivity

	ExternalID    ExternalScrollID
	HasExternalID bool
}

func (*ScrollFrame) isNodeType() {}

// Origin returns the scroll origin, the content point shown at the
// viewport's top-left corner.
func (s *ScrollFrame) Origin() geom.Point {
	return geom.Pt(-s.Offset.X, -s.Offset.Y)
}

// SensitiveToInputEvents reports whether wheel and touch input scroll the
// frame.
func (s *ScrollFrame) SensitiveToInputEvents() bool {
	return s.Sensitivity == ScriptAndInputEvents
}

// Scrollable reports whether the content is larger than the viewport.
func (s *ScrollFrame) Scrollable() bool {
	return s.ScrollableSize.W > 0 || s.ScrollableSize.H > 0
}

// SetScrollOrigin moves the frame so origin is at the viewport's top-left
// corner. It reports whether the offset changed. With ToContentBounds a
// frame that has nothing to scroll is left alone.
func (s *ScrollFrame) SetScrollOrigin(origin geom.Point, clamping ScrollClamping) bool {
	var offset geom.Vector
	switch clamping {
	case ToContentBounds:
		if !s.Scrollable() {
			return false
		}
		origin = geom.Pt(max(origin.X, 0), max(origin.Y, 0))
		offset = geom.Vec(
			clampOffset(-origin.X, s.ScrollableSize.W),
			clampOffset(-origin.Y, s.ScrollableSize.H),
		).Round()
	case NoClamping:
		offset = origin.ToVector().Neg()
	}
	if offset == s.Offset {
		return false
	}
	s.Offset = offset
	return true
}

// Scroll applies a user scroll request and reports whether the offset
// changed.
func (s *ScrollFrame) Scroll(loc ScrollLocation) bool {
	switch loc.Kind {
	case ScrollStart:
		if round(s.Offset.Y) >= 0 {
			return false
		}
		s.Offset.Y = 0
		return true
	case ScrollEnd:
		end := -s.ScrollableSize.H
		if round(s.Offset.Y) <= end {
			return false
		}
		s.Offset.Y = end
		return true
	}

	original := s.Offset
	if s.ScrollableSize.W > 0 {
		s.Offset.X = round(clampOffset(s.Offset.X+loc.Delta.X, s.ScrollableSize.W))
	}
	if s.ScrollableSize.H > 0 {
		s.Offset.Y = round(clampOffset(s.Offset.Y+loc.Delta.Y, s.ScrollableSize.H))
	}
	return s.Offset != original
}

// restore keeps the frame's new geometry but takes the offset of a frame
// from a previous tree.
func (s *ScrollFrame) restore(old ScrollFrame) {
	s.Offset = old.Offset
}

// clampOffset limits an offset to [-scrollable, 0].
func clampOffset(v, scrollable float32) float32 {
	return min(max(v, -scrollable), 0)
}

// ScrollStates carries scroll frames from a drained tree to its
// replacement, keyed by external id.
type ScrollStates map[ExternalScrollID]ScrollFrame

// ScrollNodeState reports the offset of one externally identified frame.
type ScrollNodeState struct {
	ID     ExternalScrollID
	Offset geom.Vector
}

type pendingScroll struct {
	origin   geom.Point
	clamping ScrollClamping
}
