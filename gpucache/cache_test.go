package gpucache

import (
	"testing"
)

type testKey struct {
	id int
}

// pushN returns a build function writing n blocks per key and counting calls.
func pushN(n int, calls *int) BuildFunc[testKey] {
	return func(key testKey, w *BlockWriter) {
		*calls++
		for i := 0; i < n; i++ {
			w.Push(BlockData{float32(key.id), float32(i), 0, 1})
		}
	}
}

func runFrame(c *Cache[testKey], build BuildFunc[testKey], ids ...SlotID) UpdateList {
	c.BeginFrame()
	for _, id := range ids {
		c.RequestSlot(id)
	}
	return c.EndFrame(nil, build)
}

func TestCacheLifecycle(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	calls := 0
	build := pushN(2, &calls)

	// Frame 1: built.
	list := runFrame(c, build, k)
	addr := c.Address(k)
	if got := c.Texture().RowBlockCount(int(addr.V)); got != 2 {
		t.Errorf("row block count = %d, want 2", got)
	}
	if len(list.Updates) != 1 || len(list.Blocks) != 2 {
		t.Errorf("update list = %d updates, %d blocks; want 1, 2", len(list.Updates), len(list.Blocks))
	}

	// Frame 2: cached.
	list = runFrame(c, build, k)
	if calls != 1 {
		t.Errorf("build calls = %d, want 1", calls)
	}
	if !list.IsEmpty() {
		t.Errorf("frame 2 produced %d updates, want none", len(list.Updates))
	}
	if got := c.Address(k); got != addr {
		t.Errorf("Address() = %v, want %v", got, addr)
	}

	// Frames 3..12 without requests: evicted on the last one.
	for frame := 3; frame <= 12; frame++ {
		runFrame(c, build)
		want := SlotOccupied
		if frame == 12 {
			want = SlotEmpty
		}
		if got := c.Slot(k).State; got != want {
			t.Fatalf("frame %d: state = %v, want %v", frame, got, want)
		}
	}

	// Frame 13: reading the address is a contract violation.
	c.BeginFrame()
	mustPanic(t, "Address after eviction", func() { c.Address(k) })
}

func TestCacheRequestedEveryFrameNeverEvicted(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	calls := 0
	build := pushN(1, &calls)
	runFrame(c, build, k)
	first := c.Address(k)
	for range 5 * FramesBeforeEviction {
		runFrame(c, build, k)
		if got := c.Address(k); got != first {
			t.Fatalf("Address() = %v, want %v", got, first)
		}
	}
	if calls != 1 {
		t.Errorf("build calls = %d, want 1", calls)
	}
}

func TestCacheEvictionAfterExactAge(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	calls := 0
	runFrame(c, pushN(1, &calls), k)
	for i := 1; i <= FramesBeforeEviction; i++ {
		runFrame(c, pushN(1, &calls))
		evicted := c.Slot(k).State == SlotEmpty
		if evicted != (i == FramesBeforeEviction) {
			t.Fatalf("after %d idle frames: evicted = %v", i, evicted)
		}
	}
	if c.Texture().AllocatedBlocks() != 0 {
		t.Errorf("AllocatedBlocks() = %d after eviction, want 0", c.Texture().AllocatedBlocks())
	}
}

func TestCacheRequestIdempotent(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	calls := 0
	c.BeginFrame()
	c.RequestSlot(k)
	c.RequestSlot(k)
	c.RequestSlot(k)
	if st := c.Stats(); st.Pending != 1 {
		t.Errorf("Stats().Pending = %d, want 1", st.Pending)
	}
	list := c.EndFrame(nil, pushN(3, &calls))
	if calls != 1 {
		t.Errorf("build calls = %d, want 1", calls)
	}
	if len(list.Updates) != 1 {
		t.Errorf("len(Updates) = %d, want 1", len(list.Updates))
	}
	if st := c.Stats(); st.Occupied != 1 || st.Pending != 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestCacheRebuildAfterEviction(t *testing.T) {
	c := New[testKey](WithEvictionAge(2))
	k := c.ReserveSlot(testKey{4})
	calls := 0
	build := pushN(1, &calls)
	runFrame(c, build, k)
	runFrame(c, build)
	runFrame(c, build)
	if c.Slot(k).State != SlotEmpty {
		t.Fatalf("state = %v, want Empty", c.Slot(k).State)
	}
	runFrame(c, build, k)
	if calls != 2 {
		t.Errorf("build calls = %d, want 2", calls)
	}
	_ = c.Address(k)
}

func TestCacheContractViolations(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	mustPanic(t, "duplicate key", func() { c.ReserveSlot(testKey{1}) })

	c.BeginFrame()
	mustPanic(t, "Address of empty slot", func() { c.Address(k) })
	c.RequestSlot(k)
	mustPanic(t, "Address of pending slot", func() { c.Address(k) })
	mustPanic(t, "empty build", func() {
		c.EndFrame(nil, func(testKey, *BlockWriter) {})
	})
}

func TestCacheBlocksReferenceUpdates(t *testing.T) {
	c := New[testKey]()
	ids := []SlotID{
		c.ReserveSlot(testKey{1}),
		c.ReserveSlot(testKey{2}),
		c.ReserveSlot(testKey{3}),
	}
	calls := 0
	list := runFrame(c, pushN(3, &calls), ids...)
	if len(list.Blocks) != 9 {
		t.Fatalf("len(Blocks) = %d, want 9", len(list.Blocks))
	}
	for _, u := range list.Updates {
		id := list.Blocks[u.BlockIndex][0]
		for i := 0; i < u.BlockCount; i++ {
			if b := list.Blocks[u.BlockIndex+i]; b[0] != id || b[1] != float32(i) {
				t.Errorf("update %+v block %d = %v", u, i, b)
			}
		}
	}
}

func TestCacheRecycle(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{1})
	calls := 0
	runFrame(c, pushN(2, &calls), k)

	c.Recycle()
	if c.Len() != 0 || c.FrameID() != 0 || c.Texture().Height() != 0 {
		t.Errorf("after Recycle: Len=%d FrameID=%d Height=%d", c.Len(), c.FrameID(), c.Texture().Height())
	}
	// The key is free to be reserved again.
	k = c.ReserveSlot(testKey{1})
	runFrame(c, pushN(2, &calls), k)
	if got := c.Address(k); got.V != 0 {
		t.Errorf("Address() = %v, want row 0", got)
	}
}

func TestCacheLookup(t *testing.T) {
	c := New[testKey]()
	k := c.ReserveSlot(testKey{9})
	if id, ok := c.Lookup(testKey{9}); !ok || id != k {
		t.Errorf("Lookup() = %d, %v; want %d, true", id, ok, k)
	}
	if _, ok := c.Lookup(testKey{10}); ok {
		t.Error("Lookup() found an unreserved key")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New[testKey]()
	a := c.ReserveSlot(testKey{1})
	b := c.ReserveSlot(testKey{2})
	calls := 0
	build := pushN(2, &calls)
	runFrame(c, build, a, b)

	var counters Counters
	c.Invalidate(a, &counters)
	if c.Slot(a).State != SlotEmpty {
		t.Fatalf("state after Invalidate = %v, want Empty", c.Slot(a).State)
	}
	if counters.FreedBlocks != 1 {
		t.Errorf("FreedBlocks = %d, want 1", counters.FreedBlocks)
	}
	if st := c.Stats(); st.Occupied != 1 {
		t.Errorf("Occupied = %d, want 1", st.Occupied)
	}

	list := runFrame(c, build, a, b)
	if calls != 3 {
		t.Errorf("build calls = %d, want 3", calls)
	}
	if len(list.Updates) != 1 {
		t.Errorf("updates = %d, want 1", len(list.Updates))
	}
	_ = c.Address(a)
	_ = c.Address(b)

	// Pending and empty slots are unaffected.
	k := c.ReserveSlot(testKey{3})
	c.Invalidate(k, nil)
	if c.Slot(k).State != SlotEmpty {
		t.Errorf("state = %v, want Empty", c.Slot(k).State)
	}
}

func TestCacheReleaseReusesBuffers(t *testing.T) {
	c := New[testKey]()
	calls := 0
	build := pushN(3, &calls)

	a := c.ReserveSlot(testKey{1})
	first := runFrame(c, build, a)
	kept := first.Blocks[0]

	// Not released: the next frame must not write into the caller's list.
	b := c.ReserveSlot(testKey{2})
	second := runFrame(c, build, a, b)
	if first.Blocks[0] != kept {
		t.Fatalf("unreleased Blocks[0] = %v, want %v", first.Blocks[0], kept)
	}
	if &second.Blocks[0] == &first.Blocks[0] {
		t.Error("EndFrame reused a buffer that was never released")
	}

	c.Release(second)
	d := c.ReserveSlot(testKey{3})
	third := runFrame(c, build, a, b, d)
	if len(third.Blocks) != 3 || len(third.Updates) != 1 {
		t.Fatalf("third list = %d blocks, %d updates; want 3, 1", len(third.Blocks), len(third.Updates))
	}
	if &third.Blocks[0] != &second.Blocks[0] {
		t.Error("EndFrame did not reuse the released block buffer")
	}
	if &third.Updates[0] != &second.Updates[0] {
		t.Error("EndFrame did not reuse the released update buffer")
	}

	c.Release(third)
	c.Recycle()
	e := c.ReserveSlot(testKey{4})
	fourth := runFrame(c, build, e)
	if &fourth.Blocks[0] != &third.Blocks[0] {
		t.Error("Recycle dropped the released block buffer")
	}
}
