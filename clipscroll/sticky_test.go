// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"testing"

	"github.com/gogpu/scenegraph/geom"
)

func TestStickyOffset(t *testing.T) {
	viewport := geom.R(0, 0, 100, 100)
	bounded := func(s StickyFrame) StickyFrame {
		if s.VerticalBounds == (StickyOffsetBounds{}) {
			s.VerticalBounds = Unbounded()
		}
		if s.HorizontalBounds == (StickyOffsetBounds{}) {
			s.HorizontalBounds = Unbounded()
		}
		return s
	}

	tests := []struct {
		name   string
		sticky StickyFrame
		rect   geom.Rect
		scroll geom.Vector
		want   geom.Vector
	}{
		{
			name:   "no margins",
			sticky: StickyFrame{},
			rect:   geom.R(0, -50, 10, 10),
			want:   geom.Vector{},
		},
		{
			name:   "top pushes down",
			sticky: bounded(StickyFrame{Margins: StickyMargins{Top: Px(0)}}),
			rect:   geom.R(0, 50, 100, 10),
			scroll: geom.Vec(0, -80),
			want:   geom.Vec(0, 30),
		},
		{
			name:   "top below edge",
			sticky: bounded(StickyFrame{Margins: StickyMargins{Top: Px(0)}}),
			rect:   geom.R(0, 50, 100, 10),
			scroll: geom.Vec(0, -20),
			want:   geom.Vector{},
		},
		{
			name: "top undoes applied offset",
			sticky: bounded(StickyFrame{
				Margins:                 StickyMargins{Top: Px(0)},
				PreviouslyAppliedOffset: geom.Vec(0, 20),
			}),
			rect: geom.R(0, 30, 100, 10),
			want: geom.Vec(0, -20),
		},
		{
			name:   "bottom pulls up",
			sticky: bounded(StickyFrame{Margins: StickyMargins{Bottom: Px(10)}}),
			rect:   geom.R(0, 150, 100, 10),
			want:   geom.Vec(0, -70),
		},
		{
			name:   "left pushes right",
			sticky: bounded(StickyFrame{Margins: StickyMargins{Left: Px(5)}}),
			rect:   geom.R(-20, 0, 10, 10),
			want:   geom.Vec(25, 0),
		},
		{
			name:   "right pulls left",
			sticky: bounded(StickyFrame{Margins: StickyMargins{Right: Px(0)}}),
			rect:   geom.R(95, 0, 10, 10),
			want:   geom.Vec(-5, 0),
		},
		{
			name: "bounded",
			sticky: StickyFrame{
				Margins:          StickyMargins{Top: Px(0)},
				VerticalBounds:   StickyOffsetBounds{Min: 0, Max: 10},
				HorizontalBounds: Unbounded(),
			},
			rect:   geom.R(0, 50, 100, 10),
			scroll: geom.Vec(0, -80),
			want:   geom.Vec(0, 10),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sticky.offset(tt.rect, tt.scroll, viewport)
			if got != tt.want {
				t.Errorf("offset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStickyFrameInTree(t *testing.T) {
	id := ExternalScrollID{ID: 1, Pipeline: testPipeline}
	tr := New()
	env := newFrameEnv()
	tr.AddReferenceFrame(0, 0, false, geom.R(0, 0, 100, 100), nil, nil, geom.Vector{}, testPipeline)
	tr.AddScrollFrame(1, 0, &id, testPipeline, geom.R(0, 0, 100, 100), geom.Sz(100, 1000), ScriptAndInputEvents)
	tr.AddStickyFrame(2, 1, geom.R(0, 50, 100, 10), StickyFrame{
		Margins:          StickyMargins{Top: Px(0)},
		VerticalBounds:   Unbounded(),
		HorizontalBounds: Unbounded(),
	}, testPipeline)
	tr.AddClipNode(3, 2, env.rect(0, 50, 100, 10), geom.R(0, 50, 100, 10), testPipeline)
	tr.FinalizeAndApplyPendingScrollOffsets(nil)

	tr.ScrollNode(geom.Pt(0, 80), id, ToContentBounds)
	env.update(tr)

	sf := tr.Node(2).Type.(*StickyFrame)
	if want := geom.Vec(0, 30); sf.CurrentOffset != want {
		t.Errorf("CurrentOffset = %v, want %v", sf.CurrentOffset, want)
	}
	if got := tr.Node(2).WorldViewportTransform.Translation2D(); got != geom.Vec(0, -50) {
		t.Errorf("sticky translation = %v, want (0, -50)", got)
	}
	// The clip under the sticky item stays pinned to the viewport top.
	cn := tr.Node(3).Type.(*ClipNode)
	if got := cn.ChainNode.ScreenOuterRect.Min.Y; got != 0 {
		t.Errorf("pinned clip top = %d, want 0", got)
	}

	tr.ScrollNode(geom.Pt(0, 10), id, ToContentBounds)
	env.update(tr)
	if got := sf.CurrentOffset; got != (geom.Vector{}) {
		t.Errorf("CurrentOffset after scrolling back = %v, want zero", got)
	}
}
