// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucache

// FramesBeforeEviction is the default number of frames an unrequested slot
// keeps its texture storage.
const FramesBeforeEviction = 10

// Option configures a Cache during creation.
//
// Example:
//
//	cache := gpucache.New[MyKey](gpucache.WithMaxRows(256))
type Option func(*options)

type options struct {
	maxRows     int
	evictionAge FrameID
	capacity    int
}

func defaultOptions() options {
	return options{
		maxRows:     DefaultMaxRows,
		evictionAge: FramesBeforeEviction,
		capacity:    64,
	}
}

// WithMaxRows limits the height of the cache texture. Allocating beyond it
// panics.
func WithMaxRows(rows int) Option {
	return func(o *options) {
		if rows > 0 {
			o.maxRows = rows
		}
	}
}

// WithEvictionAge sets how many frames an unrequested slot survives.
func WithEvictionAge(frames int) Option {
	return func(o *options) {
		if frames > 0 {
			o.evictionAge = FrameID(frames)
		}
	}
}

// WithCapacity preallocates bookkeeping for n slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
