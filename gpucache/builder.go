// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

import (
	"github.com/gogpu/scenegraph/geom"
)

// BuildFunc writes the GPU blocks for key. It is called once for every slot
// that became pending since the last build, and again after eviction.
type BuildFunc[K comparable] func(key K, w *BlockWriter)

// BlockWriter appends blocks to the cache's staging buffer on behalf of a
// BuildFunc. The number of blocks pushed for one key decides its size class.
type BlockWriter struct {
	blocks *[]BlockData
	start  int
}

// Push appends raw blocks.
func (w *BlockWriter) Push(blocks ...BlockData) {
	*w.blocks = append(*w.blocks, blocks...)
}

// PushRect appends r as (x, y, width, height).
func (w *BlockWriter) PushRect(r geom.Rect) {
	w.Push(BlockData{r.Origin.X, r.Origin.Y, r.Size.W, r.Size.H})
}

// PushColor appends a premultiplied or straight RGBA color.
func (w *BlockWriter) PushColor(r, g, b, a float32) {
	w.Push(BlockData{r, g, b, a})
}

// PushTransform appends the four rows of t.
func (w *BlockWriter) PushTransform(t geom.Transform) {
	w.Push(
		BlockData{t[0], t[1], t[2], t[3]},
		BlockData{t[4], t[5], t[6], t[7]},
		BlockData{t[8], t[9], t[10], t[11]},
		BlockData{t[12], t[13], t[14], t[15]},
	)
}

// Len returns the number of blocks written for the current key.
func (w *BlockWriter) Len() int {
	return len(*w.blocks) - w.start
}
