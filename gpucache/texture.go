// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

import (
	"fmt"

	"github.com/gogpu/scenegraph"
	"github.com/gogpu/scenegraph/internal/arena"
)

type blockIndex uint32

const noBlock = ^blockIndex(0)

// block is one allocatable slot of a row.
type block struct {
	address Address
	next    blockIndex // free list link
}

// row is a slab of blocks of a single size class.
type row struct {
	blockCount int // blocks per allocation in this row
	firstBlock blockIndex
}

// sizeClass identifies one free list.
type sizeClass uint8

const (
	class1 sizeClass = iota
	class2
	class4
	class8
	classRow
	numSizeClasses
)

// classFor rounds blockCount up to its size class. It panics for counts
// that can never be stored.
func classFor(blockCount int) (sizeClass, int) {
	switch {
	case blockCount <= 0:
		panic(fmt.Sprintf("gpucache: cannot allocate %d blocks", blockCount))
	case blockCount == 1:
		return class1, 1
	case blockCount == 2:
		return class2, 2
	case blockCount <= 4:
		return class4, 4
	case blockCount <= 8:
		return class8, 8
	case blockCount <= MaxVertexTextureWidth:
		return classRow, MaxVertexTextureWidth
	default:
		panic(fmt.Sprintf("gpucache: cannot allocate %d blocks, limit is %d per resource",
			blockCount, MaxVertexTextureWidth))
	}
}

// Counters accumulates allocator statistics. A nil *Counters is accepted
// everywhere and ignored.
type Counters struct {
	AllocatedRows   int
	AllocatedBlocks int
	UpdatedBlocks   int
	FreedBlocks     int
}

func (c *Counters) add(rows, allocated, updated, freed int) {
	if c == nil {
		return
	}
	c.AllocatedRows += rows
	c.AllocatedBlocks += allocated
	c.UpdatedBlocks += updated
	c.FreedBlocks += freed
}

// Texture is the CPU-side bookkeeping of the cache texture: rows of slab
// allocators threaded onto one free list per size class.
type Texture struct {
	blocks    *arena.Storage[blockIndex, block]
	rows      []row
	freeLists [numSizeClasses]blockIndex
	updates   []Update
	maxRows   int
	allocated int
}

// NewTexture creates an empty texture that may grow to maxRows rows.
func NewTexture(maxRows int) *Texture {
	t := &Texture{
		blocks:  arena.New[blockIndex, block](MaxVertexTextureWidth),
		maxRows: maxRows,
	}
	for i := range t.freeLists {
		t.freeLists[i] = noBlock
	}
	return t
}

// Height returns the number of allocated rows.
func (t *Texture) Height() int {
	return len(t.rows)
}

// AllocatedBlocks returns the number of blocks currently handed out.
func (t *Texture) AllocatedBlocks() int {
	return t.allocated
}

// RowBlockCount returns the size class of row v.
func (t *Texture) RowBlockCount(v int) int {
	return t.rows[v].blockCount
}

// pushData allocates storage for blockCount blocks whose data starts at
// blockIdx in the pending buffer, and records the copy.
func (t *Texture) pushData(blockIdx, blockCount int, counters *Counters) Address {
	class, allocSize := classFor(blockCount)

	if t.freeLists[class] == noBlock {
		t.growRow(class, allocSize, counters)
	}

	head := t.freeLists[class]
	b := t.blocks.At(head)
	t.freeLists[class] = b.next
	b.next = noBlock
	t.allocated++

	t.updates = append(t.updates, Update{
		BlockIndex: blockIdx,
		BlockCount: blockCount,
		Address:    b.address,
	})
	counters.add(0, 1, blockCount, 0)
	return b.address
}

// growRow appends a row for class and threads its blocks onto the free list.
func (t *Texture) growRow(class sizeClass, allocSize int, counters *Counters) {
	if len(t.rows) >= t.maxRows {
		// TODO: reallocate a taller texture and copy the existing rows.
		panic(fmt.Sprintf("gpucache: texture exhausted at %d rows", t.maxRows))
	}
	v := len(t.rows)
	first := blockIndex(t.blocks.Len())
	t.rows = append(t.rows, row{blockCount: allocSize, firstBlock: first})

	prev := t.freeLists[class]
	for i := 0; i < MaxVertexTextureWidth/allocSize; i++ {
		idx := t.blocks.Push(block{
			address: Address{U: uint16(i * allocSize), V: uint16(v)},
			next:    prev,
		})
		prev = idx
	}
	t.freeLists[class] = prev
	counters.add(1, 0, 0, 0)

	scenegraph.Logger().Debug("gpucache: allocated texture row",
		"row", v, "block_size", allocSize)
}

// free returns the block at address to its row's free list.
func (t *Texture) free(address Address, counters *Counters) {
	v := int(address.V)
	if v >= len(t.rows) {
		panic(fmt.Sprintf("gpucache: free of %v outside texture height %d", address, len(t.rows)))
	}
	r := t.rows[v]
	class, _ := classFor(r.blockCount)
	idx := r.firstBlock + blockIndex(int(address.U)/r.blockCount)

	b := t.blocks.At(idx)
	b.next = t.freeLists[class]
	t.freeLists[class] = idx
	t.allocated--
	counters.add(0, 0, 0, 1)
}

// takeUpdates returns the recorded copies and starts a new list.
func (t *Texture) takeUpdates() []Update {
	u := t.updates
	t.updates = nil
	return u
}

// reset forgets every row but keeps the backing arrays.
func (t *Texture) reset() {
	t.blocks.Reset()
	t.rows = t.rows[:0]
	t.updates = t.updates[:0]
	t.allocated = 0
	for i := range t.freeLists {
		t.freeLists[i] = noBlock
	}
}
