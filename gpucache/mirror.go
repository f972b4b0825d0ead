// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// bytesPerBlock is the size of one RGBA32F texel.
const bytesPerBlock = 16

// TextureDescriptor describes the GPU texture backing the cache.
type TextureDescriptor struct {
	Label  string
	Size   gputypes.Extent3D
	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage
}

// Mirror is a CPU copy of the cache texture. It applies update lists as the
// GPU would and tracks which rows changed since the last upload.
type Mirror struct {
	rows  [][MaxVertexTextureWidth]BlockData
	dirty []bool
}

// NewMirror creates an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Height returns the number of rows held by the mirror.
func (m *Mirror) Height() int {
	return len(m.rows)
}

// Apply performs the copies in list. The mirror grows to list.Height rows.
func (m *Mirror) Apply(list UpdateList) {
	for len(m.rows) < list.Height {
		m.rows = append(m.rows, [MaxVertexTextureWidth]BlockData{})
		m.dirty = append(m.dirty, true)
	}
	for _, u := range list.Updates {
		src := list.Blocks[u.BlockIndex : u.BlockIndex+u.BlockCount]
		v := int(u.Address.V)
		copy(m.rows[v][u.Address.U:], src)
		m.dirty[v] = true
	}
}

// Block returns the texel at a.
func (m *Mirror) Block(a Address) BlockData {
	return m.rows[a.V][a.U]
}

// DirtyRows returns the rows changed since the last upload.
func (m *Mirror) DirtyRows() []int {
	var rows []int
	for v, d := range m.dirty {
		if d {
			rows = append(rows, v)
		}
	}
	return rows
}

// Bytes encodes the whole texture as little-endian RGBA32F, row by row.
func (m *Mirror) Bytes() []byte {
	buf := make([]byte, len(m.rows)*MaxVertexTextureWidth*bytesPerBlock)
	off := 0
	for v := range m.rows {
		for _, b := range m.rows[v] {
			for _, f := range b {
				binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
				off += 4
			}
		}
	}
	return buf
}

// Upload writes the mirror into dst and clears the dirty rows.
func (m *Mirror) Upload(dst gpucontext.TextureUpdater) error {
	if len(m.rows) == 0 {
		return nil
	}
	if err := dst.UpdateData(m.Bytes()); err != nil {
		return fmt.Errorf("gpucache: texture upload failed: %w", err)
	}
	clear(m.dirty)
	return nil
}

// Descriptor returns the texture the mirror should be uploaded to.
func (m *Mirror) Descriptor() TextureDescriptor {
	return TextureDescriptor{
		Label: "gpucache",
		Size: gputypes.Extent3D{
			Width:              MaxVertexTextureWidth,
			Height:             uint32(max(len(m.rows), 1)),
			DepthOrArrayLayers: 1,
		},
		Format: gputypes.TextureFormatRGBA32Float,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}
