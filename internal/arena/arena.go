// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package arena provides typed, append-only storage addressed by integer
// handles instead of pointers.
//
// Trees and intrusive lists throughout scenegraph are expressed with it: a
// child pointer becomes a slice of indices, a parent pointer an optional
// index, and a back-reference a plain index with no ownership implied.
package arena

import (
	"fmt"
	"iter"

	"golang.org/x/exp/constraints"
)

// Index is the constraint satisfied by handle types such as
// `type NodeIndex uint32`.
type Index interface {
	constraints.Unsigned
}

// Range is a half-open range of indices [Start, End) returned by Extend.
type Range[I Index] struct {
	Start, End I
}

// Len returns the number of indices in the range.
func (r Range[I]) Len() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End - r.Start)
}

// Contains reports whether i lies in the range.
func (r Range[I]) Contains(i I) bool {
	return i >= r.Start && i < r.End
}

// Storage is a growable array of T addressed only by I. There is no removal:
// logical deletion is recorded in the stored values themselves.
type Storage[I Index, T any] struct {
	items []T
}

// New returns a Storage with room for capacity items.
func New[I Index, T any](capacity int) *Storage[I, T] {
	return &Storage[I, T]{items: make([]T, 0, capacity)}
}

// Len returns the number of stored items.
func (s *Storage[I, T]) Len() int {
	return len(s.items)
}

// Push appends v and returns its index.
func (s *Storage[I, T]) Push(v T) I {
	i := I(len(s.items))
	s.items = append(s.items, v)
	return i
}

// Extend appends vs and returns the range of indices they occupy.
func (s *Storage[I, T]) Extend(vs ...T) Range[I] {
	start := I(len(s.items))
	s.items = append(s.items, vs...)
	return Range[I]{Start: start, End: I(len(s.items))}
}

// At returns a pointer to the item at i. The pointer is invalidated by the
// next Push or Extend. At panics if i is out of range.
func (s *Storage[I, T]) At(i I) *T {
	s.check(i)
	return &s.items[i]
}

// Get returns a copy of the item at i.
func (s *Storage[I, T]) Get(i I) T {
	s.check(i)
	return s.items[i]
}

// Set overwrites the item at i.
func (s *Storage[I, T]) Set(i I, v T) {
	s.check(i)
	s.items[i] = v
}

// Slice returns the items covered by r. The result aliases the storage.
func (s *Storage[I, T]) Slice(r Range[I]) []T {
	return s.items[r.Start:r.End]
}

// All iterates over every index and item.
func (s *Storage[I, T]) All() iter.Seq2[I, *T] {
	return func(yield func(I, *T) bool) {
		for i := range s.items {
			if !yield(I(i), &s.items[i]) {
				return
			}
		}
	}
}

// Reset empties the storage and keeps its backing array. Stale values are
// zeroed so they do not retain memory.
func (s *Storage[I, T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}

// Grow ensures the storage holds at least n items, filling new slots with
// fill.
func (s *Storage[I, T]) Grow(n int, fill func() T) {
	for len(s.items) < n {
		s.items = append(s.items, fill())
	}
}

func (s *Storage[I, T]) check(i I) {
	if uint64(i) >= uint64(len(s.items)) {
		panic(fmt.Sprintf("arena: index %d out of range [0, %d)", uint64(i), len(s.items)))
	}
}
