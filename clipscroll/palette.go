// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"github.com/gogpu/scenegraph/clip"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
)

// TransformKind tells shaders whether the cheap axis-aligned path applies.
type TransformKind uint8

const (
	TransformAxisAligned TransformKind = iota
	TransformComplex
)

// TransformData is one palette entry.
type TransformData struct {
	Transform    geom.Transform
	InvTransform geom.Transform
	Kind         TransformKind
}

// invalidTransform is stored for nodes that cannot be rendered.
var invalidTransform = TransformData{
	Transform:    geom.Identity(),
	InvTransform: geom.Identity(),
	Kind:         TransformComplex,
}

// TransformBlocks is the number of GPU blocks per palette entry.
const TransformBlocks = 9

// TransformPalette is the flat array of node transforms produced by
// Tree.UpdateTree, indexed by each node's TransformIndex.
type TransformPalette struct {
	entries []TransformData
}

// NewTransformPalette creates a palette with n identity entries.
func NewTransformPalette(n int) *TransformPalette {
	p := &TransformPalette{entries: make([]TransformData, n)}
	for i := range p.entries {
		p.entries[i] = invalidTransform
	}
	return p
}

// Len returns the number of entries.
func (p *TransformPalette) Len() int {
	return len(p.entries)
}

// Set stores the entry for i, growing the palette if needed.
func (p *TransformPalette) Set(i clip.TransformIndex, d TransformData) {
	for int(i) >= len(p.entries) {
		p.entries = append(p.entries, invalidTransform)
	}
	p.entries[i] = d
}

// Get returns the entry for i.
func (p *TransformPalette) Get(i clip.TransformIndex) TransformData {
	return p.entries[i]
}

// BuildBlocks writes the entry for i: transform rows, inverse rows and a
// kind block. It has the shape of a gpucache.BuildFunc.
func (p *TransformPalette) BuildBlocks(i clip.TransformIndex, w *gpucache.BlockWriter) {
	d := p.entries[i]
	w.PushTransform(d.Transform)
	w.PushTransform(d.InvTransform)
	w.Push(gpucache.BlockData{float32(d.Kind), 0, 0, 0})
}

// Blocks returns every entry encoded as by BuildBlocks, in index order.
func (p *TransformPalette) Blocks() []gpucache.BlockData {
	out := make([]gpucache.BlockData, 0, len(p.entries)*TransformBlocks)
	for _, d := range p.entries {
		for _, t := range [2]geom.Transform{d.Transform, d.InvTransform} {
			out = append(out,
				gpucache.BlockData{t[0], t[1], t[2], t[3]},
				gpucache.BlockData{t[4], t[5], t[6], t[7]},
				gpucache.BlockData{t[8], t[9], t[10], t[11]},
				gpucache.BlockData{t[12], t[13], t[14], t[15]},
			)
		}
		out = append(out, gpucache.BlockData{float32(d.Kind), 0, 0, 0})
	}
	return out
}
