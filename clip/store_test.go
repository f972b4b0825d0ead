// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"testing"

	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
)

type recordingImages struct {
	keys []ImageKey
}

func (r *recordingImages) RequestImage(key ImageKey) {
	r.keys = append(r.keys, key)
}

func TestStoreUpdateAndBuild(t *testing.T) {
	st := NewStore()
	idx := st.Insert(NewSources(
		Rectangle{Rect: geom.R(0, 0, 10, 10)},
		RoundedRectangle{Rect: geom.R(0, 0, 10, 10), Radii: UniformRadius(2)},
		ImageMask{Image: 42, Rect: geom.R(0, 0, 4, 4)},
	))

	cache := gpucache.New[ItemKey]()
	images := &recordingImages{}

	cache.BeginFrame()
	st.Update(idx, cache, images)
	list := cache.EndFrame(nil, st.BuildBlocks)

	if len(images.keys) != 1 || images.keys[0] != 42 {
		t.Errorf("requested images = %v, want [42]", images.keys)
	}
	if len(list.Updates) != 3 {
		t.Fatalf("updates = %d, want 3", len(list.Updates))
	}
	wantBlocks := 2*ClipDataBlocks + 1
	if len(list.Blocks) != wantBlocks {
		t.Errorf("blocks = %d, want %d", len(list.Blocks), wantBlocks)
	}

	s := st.At(idx)
	for i := range s.Len() {
		id, ok := s.Slot(i)
		if !ok {
			t.Fatalf("item %d has no slot", i)
		}
		if a := cache.Address(id); !a.IsValid() {
			t.Errorf("item %d address = %v, want valid", i, a)
		}
	}

	// A second frame reuses the reserved slots and builds nothing.
	cache.BeginFrame()
	st.Update(idx, cache, nil)
	list = cache.EndFrame(nil, st.BuildBlocks)
	if !list.IsEmpty() {
		t.Errorf("second frame produced %d updates, want none", len(list.Updates))
	}
}

func TestWriteClipData(t *testing.T) {
	var blocks []gpucache.BlockData
	cache := gpucache.New[ItemKey]()
	st := NewStore()
	idx := st.Insert(NewSources(RoundedRectangle{
		Rect:  geom.R(0, 0, 100, 50),
		Radii: UniformRadius(5),
		Mode:  ModeClipOut,
	}))

	cache.BeginFrame()
	st.Update(idx, cache, nil)
	list := cache.EndFrame(nil, st.BuildBlocks)
	blocks = list.Blocks

	if len(blocks) != ClipDataBlocks {
		t.Fatalf("blocks = %d, want %d", len(blocks), ClipDataBlocks)
	}
	if want := (gpucache.BlockData{0, 0, 100, 50}); blocks[0] != want {
		t.Errorf("rect block = %v, want %v", blocks[0], want)
	}
	if blocks[1][0] != float32(ModeClipOut) {
		t.Errorf("mode block = %v, want mode %d", blocks[1], ModeClipOut)
	}
	// Bottom-right corner rect.
	if want := (gpucache.BlockData{95, 45, 5, 5}); blocks[8] != want {
		t.Errorf("bottom-right corner = %v, want %v", blocks[8], want)
	}
}

func TestStoreClear(t *testing.T) {
	st := NewStore()
	st.Insert(NewSources(Rectangle{Rect: geom.R(0, 0, 1, 1)}))
	st.Clear()
	if st.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", st.Len())
	}
}
