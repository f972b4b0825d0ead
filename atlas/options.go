// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

// DefaultMaxSlices is the default number of layers an Allocator may create.
const DefaultMaxSlices = 16

// Option configures a Tracker or Allocator.
type Option func(*options)

type options struct {
	smallestArea bool
	maxSlices    int
}

func defaultOptions() options {
	return options{maxSlices: DefaultMaxSlices}
}

// WithSmallestAreaFit makes allocation scan a whole bin for the free
// rectangle with the least area (best area fit) instead of taking the
// first one that fits.
func WithSmallestAreaFit(enabled bool) Option {
	return func(o *options) {
		o.smallestArea = enabled
	}
}

// WithMaxSlices limits how many slices an Allocator creates.
func WithMaxSlices(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSlices = n
		}
	}
}
