// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f32"
)

// MaxVertexTextureWidth is the width of the cache texture in blocks.
const MaxVertexTextureWidth = 1024

// DefaultMaxRows is the default height limit of the cache texture.
const DefaultMaxRows = 1024

// BlockData is one RGBA32F texel: the unit of GPU cache storage.
type BlockData = f32.Vec4

// Address locates a block in the cache texture. U is the column (in blocks)
// and V the row.
type Address struct {
	U, V uint16
}

// InvalidAddress is returned for slots that have no texture storage.
var InvalidAddress = Address{U: math.MaxUint16, V: math.MaxUint16}

// IsValid reports whether a is a real texture location.
func (a Address) IsValid() bool {
	return a != InvalidAddress
}

// Offset returns the linear block offset of a, as shaders address it.
func (a Address) Offset() int {
	return int(a.V)*MaxVertexTextureWidth + int(a.U)
}

func (a Address) String() string {
	if !a.IsValid() {
		return "Address(invalid)"
	}
	return fmt.Sprintf("Address(%d, %d)", a.U, a.V)
}

// Update describes one sparse copy: BlockCount blocks starting at
// BlockIndex in UpdateList.Blocks go to Address.
type Update struct {
	BlockIndex int
	BlockCount int
	Address    Address
}

// UpdateList is produced by EndFrame for the renderer to upload.
type UpdateList struct {
	// Height is the number of texture rows in use.
	Height int
	// Updates lists the copies to perform.
	Updates []Update
	// Blocks holds the data the updates refer to.
	Blocks []BlockData
}

// IsEmpty reports whether the list contains no copies.
func (l *UpdateList) IsEmpty() bool {
	return len(l.Updates) == 0
}
