// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

import (
	"fmt"

	"github.com/gogpu/scenegraph"
	"github.com/gogpu/scenegraph/internal/arena"
)

// FrameID counts frames since the cache was created or recycled.
type FrameID uint64

// SlotID is the handle returned by ReserveSlot.
type SlotID uint32

// noSlot terminates the intrusive slot lists.
const noSlot = ^SlotID(0)

// SlotState is the lifecycle state of a slot.
type SlotState uint8

const (
	// SlotEmpty slots are reserved but hold no texture storage.
	SlotEmpty SlotState = iota
	// SlotPending slots were requested this frame and await EndFrame.
	SlotPending
	// SlotOccupied slots own texture storage.
	SlotOccupied
)

func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "Empty"
	case SlotPending:
		return "Pending"
	case SlotOccupied:
		return "Occupied"
	default:
		return fmt.Sprintf("SlotState(%d)", uint8(s))
	}
}

type cacheSlot[K comparable] struct {
	key        K
	state      SlotState
	lastAccess FrameID
	address    Address
	next       SlotID // pending or occupied list link
}

// SlotInfo is a read-only view of a slot.
type SlotInfo struct {
	State      SlotState
	LastAccess FrameID
	Address    Address
}

// Stats describes the cache contents.
type Stats struct {
	Slots           int
	Pending         int
	Occupied        int
	Rows            int
	AllocatedBlocks int
}

// Cache maps caller keys to addresses in the cache texture, building the
// data of a key only when its slot has no storage.
//
// Cache is not safe for concurrent use.
type Cache[K comparable] struct {
	slots        *arena.Storage[SlotID, cacheSlot[K]]
	keys         map[K]SlotID
	pendingHead  SlotID
	occupiedHead SlotID

	texture       *Texture
	pendingBlocks []BlockData

	frame       FrameID
	evictionAge FrameID
}

// New creates an empty cache.
func New[K comparable](opts ...Option) *Cache[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K]{
		slots:        arena.New[SlotID, cacheSlot[K]](o.capacity),
		keys:         make(map[K]SlotID, o.capacity),
		pendingHead:  noSlot,
		occupiedHead: noSlot,
		texture:      NewTexture(o.maxRows),
		evictionAge:  o.evictionAge,
	}
}

// FrameID returns the current frame.
func (c *Cache[K]) FrameID() FrameID {
	return c.frame
}

// Len returns the number of reserved slots.
func (c *Cache[K]) Len() int {
	return c.slots.Len()
}

// Texture exposes the allocator for inspection.
func (c *Cache[K]) Texture() *Texture {
	return c.texture
}

// BeginFrame starts a new frame. EndFrame must have been called for the
// previous one.
func (c *Cache[K]) BeginFrame() {
	if len(c.pendingBlocks) != 0 {
		panic("gpucache: BeginFrame called with unflushed blocks; missing EndFrame")
	}
	c.frame++
}

// ReserveSlot registers key and returns its handle. Each key may be
// reserved once; a duplicate is a caller bug and panics.
func (c *Cache[K]) ReserveSlot(key K) SlotID {
	if _, ok := c.keys[key]; ok {
		panic(fmt.Sprintf("gpucache: key %v reserved twice", key))
	}
	id := c.slots.Push(cacheSlot[K]{
		key:     key,
		state:   SlotEmpty,
		address: InvalidAddress,
		next:    noSlot,
	})
	c.keys[key] = id
	return id
}

// Lookup returns the slot reserved for key.
func (c *Cache[K]) Lookup(key K) (SlotID, bool) {
	id, ok := c.keys[key]
	return id, ok
}

// RequestSlot marks the slot as used this frame. Empty slots become pending
// and are built by the next EndFrame. Repeated calls within a frame have no
// further effect.
func (c *Cache[K]) RequestSlot(id SlotID) {
	s := c.slots.At(id)
	switch s.state {
	case SlotEmpty:
		s.state = SlotPending
		s.next = c.pendingHead
		c.pendingHead = id
	case SlotPending:
	case SlotOccupied:
		s.lastAccess = c.frame
	}
}

// Invalidate drops the texture storage of the slot so the next request
// rebuilds it. Slots that are not occupied are left alone.
func (c *Cache[K]) Invalidate(id SlotID, counters *Counters) {
	s := c.slots.At(id)
	if s.state != SlotOccupied {
		return
	}
	prev := noSlot
	for cur := c.occupiedHead; cur != id; cur = c.slots.At(cur).next {
		prev = cur
	}
	if prev == noSlot {
		c.occupiedHead = s.next
	} else {
		c.slots.At(prev).next = s.next
	}
	c.texture.free(s.address, counters)
	s.state = SlotEmpty
	s.address = InvalidAddress
	s.next = noSlot
}

// EndFrame evicts stale slots, builds every pending slot with build and
// returns the texture updates produced this frame. The returned slices
// belong to the caller until they are handed back with Release.
func (c *Cache[K]) EndFrame(counters *Counters, build BuildFunc[K]) UpdateList {
	evicted := c.evict(counters)

	built := 0
	w := &BlockWriter{blocks: &c.pendingBlocks}
	for id := c.pendingHead; id != noSlot; {
		key := c.slots.At(id).key
		w.start = len(c.pendingBlocks)
		build(key, w)
		count := w.Len()
		if count == 0 {
			panic(fmt.Sprintf("gpucache: build for key %v wrote no blocks", key))
		}
		address := c.texture.pushData(w.start, count, counters)

		s := c.slots.At(id)
		next := s.next
		s.state = SlotOccupied
		s.address = address
		s.lastAccess = c.frame
		s.next = c.occupiedHead
		c.occupiedHead = id
		id = next
		built++
	}
	c.pendingHead = noSlot

	if evicted > 0 || built > 0 {
		scenegraph.Logger().Debug("gpucache: end frame",
			"frame", uint64(c.frame), "built", built, "evicted", evicted,
			"rows", c.texture.Height())
	}

	list := UpdateList{
		Height:  c.texture.Height(),
		Updates: c.texture.takeUpdates(),
		Blocks:  c.pendingBlocks,
	}
	c.pendingBlocks = nil
	return list
}

// Release hands the buffers of an applied update list back to the cache,
// which reuses them for a later frame. list must not be used afterwards.
// The staging buffers are empty between frames.
func (c *Cache[K]) Release(list UpdateList) {
	if cap(list.Blocks) > cap(c.pendingBlocks) {
		c.pendingBlocks = list.Blocks[:0]
	}
	if cap(list.Updates) > cap(c.texture.updates) {
		c.texture.updates = list.Updates[:0]
	}
}

// evict frees every occupied slot not requested within the eviction age.
func (c *Cache[K]) evict(counters *Counters) int {
	evicted := 0
	prev := noSlot
	for id := c.occupiedHead; id != noSlot; {
		s := c.slots.At(id)
		next := s.next
		if s.lastAccess+c.evictionAge <= c.frame {
			c.texture.free(s.address, counters)
			s.state = SlotEmpty
			s.address = InvalidAddress
			s.next = noSlot
			if prev == noSlot {
				c.occupiedHead = next
			} else {
				c.slots.At(prev).next = next
			}
			evicted++
		} else {
			prev = id
		}
		id = next
	}
	return evicted
}

// Address returns the texture location of the slot. The slot must have been
// requested this frame and built by EndFrame; anything else panics.
func (c *Cache[K]) Address(id SlotID) Address {
	s := c.slots.At(id)
	if s.state != SlotOccupied || s.lastAccess != c.frame {
		panic(fmt.Sprintf("gpucache: address of slot %d (key %v) read in state %v, last access %d, frame %d",
			id, s.key, s.state, s.lastAccess, c.frame))
	}
	return s.address
}

// Slot returns the state of a slot without side effects.
func (c *Cache[K]) Slot(id SlotID) SlotInfo {
	s := c.slots.At(id)
	return SlotInfo{State: s.state, LastAccess: s.lastAccess, Address: s.address}
}

// Stats returns a summary of the cache contents.
func (c *Cache[K]) Stats() Stats {
	st := Stats{
		Slots:           c.slots.Len(),
		Rows:            c.texture.Height(),
		AllocatedBlocks: c.texture.AllocatedBlocks(),
	}
	for id := c.pendingHead; id != noSlot; id = c.slots.At(id).next {
		st.Pending++
	}
	for id := c.occupiedHead; id != noSlot; id = c.slots.At(id).next {
		st.Occupied++
	}
	return st
}

// Recycle clears all slots, keys and texture rows while keeping the backing
// arrays, so the cache can serve an unrelated display list. Buffers still
// held by the caller from EndFrame are only reused once released.
func (c *Cache[K]) Recycle() {
	c.slots.Reset()
	clear(c.keys)
	c.pendingHead = noSlot
	c.occupiedHead = noSlot
	c.texture.reset()
	c.pendingBlocks = c.pendingBlocks[:0]
	c.frame = 0
}
