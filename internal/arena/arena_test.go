package arena

import "testing"

type nodeIndex uint32

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestPushAndAt(t *testing.T) {
	s := New[nodeIndex, string](0)
	a := s.Push("a")
	b := s.Push("b")
	if a != 0 || b != 1 {
		t.Fatalf("Push() indices = %d, %d; want 0, 1", a, b)
	}
	*s.At(b) = "bb"
	if got := s.Get(b); got != "bb" {
		t.Errorf("Get(%d) = %q, want %q", b, got, "bb")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestExtendRange(t *testing.T) {
	s := New[nodeIndex, int](4)
	s.Push(0)
	r := s.Extend(1, 2, 3)
	if r.Start != 1 || r.End != 4 || r.Len() != 3 {
		t.Fatalf("Extend() = %+v, want [1, 4)", r)
	}
	got := s.Slice(r)
	for i, v := range got {
		if v != i+1 {
			t.Errorf("Slice()[%d] = %d, want %d", i, v, i+1)
		}
	}
	if !r.Contains(3) || r.Contains(4) {
		t.Error("Contains() does not honour the half-open range")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	s := New[nodeIndex, int](0)
	s.Push(1)
	mustPanic(t, "At", func() { s.At(1) })
	mustPanic(t, "Get", func() { s.Get(5) })
	mustPanic(t, "Set", func() { s.Set(2, 0) })
}

func TestResetKeepsCapacity(t *testing.T) {
	s := New[nodeIndex, *int](0)
	v := 1
	for range 8 {
		s.Push(&v)
	}
	c := cap(s.items)
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if cap(s.items) != c {
		t.Errorf("cap after Reset = %d, want %d", cap(s.items), c)
	}
	if s.items[:c][0] != nil {
		t.Error("Reset() left stale pointers in the backing array")
	}
}

func TestGrowAndAll(t *testing.T) {
	s := New[nodeIndex, int](0)
	s.Grow(3, func() int { return 7 })
	n := 0
	for i, v := range s.All() {
		if *v != 7 {
			t.Errorf("item %d = %d, want 7", i, *v)
		}
		n++
	}
	if n != 3 {
		t.Errorf("All() yielded %d items, want 3", n)
	}
}
