// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package atlas

import "errors"

// Sentinel errors for atlas package.
var (
	// ErrAtlasFull is returned when every slice is full and no more may be added.
	ErrAtlasFull = errors.New("atlas: no slice has room and the slice limit is reached")

	// ErrTooLarge is returned when a request exceeds the slice size.
	ErrTooLarge = errors.New("atlas: requested size exceeds slice size")
)
