// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
	"github.com/gogpu/scenegraph/internal/arena"
)

// SourcesIndex addresses a Sources value in a Store.
type SourcesIndex uint32

// ItemKey is the GPU cache key of one clip item.
type ItemKey struct {
	Sources SourcesIndex
	Item    uint32
}

// ImageRequester is implemented by the resource cache that owns image
// masks. The store asks it to keep mask images resident.
type ImageRequester interface {
	RequestImage(key ImageKey)
}

type item struct {
	source   Source
	slot     gpucache.SlotID
	reserved bool
}

// Sources is the clip list of one clip node together with its local
// bounds.
type Sources struct {
	items []item

	// LocalInnerRect is fully visible through every clip. It is empty when
	// it cannot be computed.
	LocalInnerRect geom.Rect
	// LocalOuterRect bounds all visible content. Valid only if HasOuter.
	LocalOuterRect geom.Rect
	HasOuter       bool
}

// NewSources builds a clip list and computes its local bounds.
func NewSources(sources ...Source) Sources {
	s := Sources{items: make([]item, len(sources))}
	for i, src := range sources {
		s.items[i] = item{source: src}
	}
	s.LocalInnerRect, s.LocalOuterRect, s.HasOuter = localBounds(sources)
	return s
}

// Len returns the number of clip items.
func (s *Sources) Len() int {
	return len(s.items)
}

// Source returns item i.
func (s *Sources) Source(i int) Source {
	return s.items[i].source
}

// Slot returns the GPU cache slot of item i, once Store.Update reserved it.
func (s *Sources) Slot(i int) (gpucache.SlotID, bool) {
	it := s.items[i]
	return it.slot, it.reserved
}

// OnlyRectangular reports whether every item is a plain clip-in rectangle,
// which lets primitives skip mask rendering.
func (s *Sources) OnlyRectangular() bool {
	for _, it := range s.items {
		r, ok := it.source.(Rectangle)
		if !ok || r.Mode != ModeClip {
			return false
		}
	}
	return true
}

// Store owns the clip lists referenced by clip nodes.
//
// GPU cache slots are keyed by ItemKey, so a Store and the cache it feeds
// must be cleared and recycled together.
type Store struct {
	sources *arena.Storage[SourcesIndex, Sources]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sources: arena.New[SourcesIndex, Sources](16)}
}

// Insert adds a clip list and returns its index.
func (st *Store) Insert(s Sources) SourcesIndex {
	return st.sources.Push(s)
}

// At returns the clip list at i.
func (st *Store) At(i SourcesIndex) *Sources {
	return st.sources.At(i)
}

// Len returns the number of stored clip lists.
func (st *Store) Len() int {
	return st.sources.Len()
}

// Clear drops every clip list.
func (st *Store) Clear() {
	st.sources.Reset()
}

// Update requests GPU storage for every item of clip list i, reserving
// slots on first use, and asks images to keep mask images resident.
// images may be nil.
func (st *Store) Update(i SourcesIndex, cache *gpucache.Cache[ItemKey], images ImageRequester) {
	s := st.sources.At(i)
	for n := range s.items {
		it := &s.items[n]
		if !it.reserved {
			it.slot = cache.ReserveSlot(ItemKey{Sources: i, Item: uint32(n)})
			it.reserved = true
		}
		cache.RequestSlot(it.slot)
		if mask, ok := it.source.(ImageMask); ok && images != nil {
			images.RequestImage(mask.Image)
		}
	}
}

// BuildBlocks encodes the clip item named by key. It has the shape of a
// gpucache.BuildFunc so it can be passed to EndFrame directly.
func (st *Store) BuildBlocks(key ItemKey, w *gpucache.BlockWriter) {
	src := st.sources.At(key.Sources).items[key.Item].source
	switch src := src.(type) {
	case Rectangle:
		writeClipData(w, src.Rect, BorderRadius{}, src.Mode)
	case RoundedRectangle:
		writeClipData(w, src.Rect, src.Radii, src.Mode)
	case ImageMask:
		w.PushRect(src.Rect)
	}
}

// ClipDataBlocks is the number of blocks written for a rectangle or
// rounded rectangle clip.
const ClipDataBlocks = 10

// writeClipData writes the rect, the mode and the four corners (corner
// rect plus radii each).
func writeClipData(w *gpucache.BlockWriter, r geom.Rect, radii BorderRadius, mode Mode) {
	w.PushRect(r)
	w.Push(gpucache.BlockData{float32(mode), 0, 0, 0})
	corners := [4]struct {
		origin geom.Point
		radius geom.Size
	}{
		{r.Origin, radii.TopLeft},
		{geom.Pt(r.MaxX()-radii.TopRight.W, r.MinY()), radii.TopRight},
		{geom.Pt(r.MinX(), r.MaxY()-radii.BottomLeft.H), radii.BottomLeft},
		{geom.Pt(r.MaxX()-radii.BottomRight.W, r.MaxY()-radii.BottomRight.H), radii.BottomRight},
	}
	for _, c := range corners {
		w.PushRect(geom.Rect{Origin: c.origin, Size: c.radius})
		w.Push(gpucache.BlockData{c.radius.W, c.radius.H, 0, 0})
	}
}
