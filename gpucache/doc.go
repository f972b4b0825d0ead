// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucache keeps per-primitive GPU data in one growable float
// texture and rebuilds only what is missing.
//
// # Protocol
//
// Callers register keys once with [Cache.ReserveSlot] and then, every frame
// the resource is used:
//
//	cache.BeginFrame()
//	cache.RequestSlot(id)                   // any number of times
//	list := cache.EndFrame(nil, build)      // build runs for new slots only
//	addr := cache.Address(id)               // valid until the next frame
//
// Slots that are not requested for [FramesBeforeEviction] frames are
// evicted and their texture blocks recycled.
//
// # Texture layout
//
// The texture is [MaxVertexTextureWidth] RGBA32F texels wide. Each row is a
// slab dedicated to one block size class (1, 2, 4, 8 or a full row), so the
// allocator never fragments; a 3-block record occupies a 4-block slot.
// Rows are only appended.
//
// # Thread Safety
//
// Cache is not safe for concurrent use. It belongs to the frame builder.
package gpucache
