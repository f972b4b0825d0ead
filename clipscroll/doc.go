// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package clipscroll maintains the clip/scroll tree: reference frames,
// scroll frames, sticky frames and clip nodes, updated every frame into
// world transforms, coordinate systems and clip chains.
//
// # Frame flow
//
// The scene builder adds nodes with AddReferenceFrame, AddScrollFrame,
// AddStickyFrame and AddClipNode, then calls
// FinalizeAndApplyPendingScrollOffsets. Each frame the frame builder calls
// UpdateTree between gpucache.Cache.BeginFrame and EndFrame:
//
//	cache.BeginFrame()
//	palette := tree.UpdateTree(screen, scale, store, nil, cache, geom.Point{}, props)
//	updates := cache.EndFrame(&counters, store.BuildBlocks)
//	mirror.Apply(updates)
//	cache.Release(updates)
//
// Before a new display list replaces the tree, Drain returns the scroll
// positions so the rebuilt tree can restore them.
//
// # Coordinate systems
//
// Nodes share a coordinate system while their transforms stay
// axis-aligned relative to each other. Only reference frames can start a
// new one. Clips and primitives in the same coordinate system can be
// tested against each other with plain rects.
package clipscroll
