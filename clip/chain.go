// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

import (
	"image"
	"iter"

	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/internal/arena"
)

// TransformIndex addresses a spatial node's entry in the transform palette.
type TransformIndex uint32

// CoordinateSystemID is shared by nodes whose transforms are axis-aligned
// relative to each other.
type CoordinateSystemID uint32

// RootCoordinateSystem is the coordinate system of the root reference frame.
const RootCoordinateSystem CoordinateSystemID = 0

// Next returns the following id.
func (id CoordinateSystemID) Next() CoordinateSystemID {
	return id + 1
}

// ChainIndex addresses a Chain in the clip/scroll tree. Chain 0 is the
// tree-wide "no clip" chain covering the screen.
type ChainIndex uint32

// NoClipChain is the index of the empty root chain.
const NoClipChain ChainIndex = 0

// ChainNodeIndex addresses a ChainNode in a ChainNodes arena.
type ChainNodeIndex uint32

// NoChainNode terminates a chain.
const NoChainNode = ^ChainNodeIndex(0)

// WorkItem is what the renderer needs to apply one clip node: the
// transform to place it, its sources and its coordinate system.
type WorkItem struct {
	TransformIndex     TransformIndex
	Sources            SourcesIndex
	CoordinateSystemID CoordinateSystemID
}

// ChainNode is one clip node's contribution to a chain. Nodes are
// immutable once stored; chains share tails through Prev.
type ChainNode struct {
	WorkItem        WorkItem
	LocalClipRect   geom.Rect
	ScreenOuterRect image.Rectangle
	ScreenInnerRect image.Rectangle
	Prev            ChainNodeIndex
}

// ChainNodes is the per-frame arena holding chain nodes.
type ChainNodes struct {
	nodes *arena.Storage[ChainNodeIndex, ChainNode]
}

// NewChainNodes creates an empty arena.
func NewChainNodes() *ChainNodes {
	return &ChainNodes{nodes: arena.New[ChainNodeIndex, ChainNode](32)}
}

// At returns the node at i.
func (n *ChainNodes) At(i ChainNodeIndex) *ChainNode {
	return n.nodes.At(i)
}

// Len returns the number of stored nodes.
func (n *ChainNodes) Len() int {
	return n.nodes.Len()
}

// Reset drops every node. Chains referring to them become invalid.
func (n *ChainNodes) Reset() {
	n.nodes.Reset()
}

// Chain is an ordered list of clip nodes plus the screen rects they
// combine to.
type Chain struct {
	Parent    ChainIndex
	HasParent bool

	CombinedOuterScreenRect image.Rectangle
	CombinedInnerScreenRect image.Rectangle

	Head ChainNodeIndex
}

// EmptyChain returns a chain without clips covering screen.
func EmptyChain(screen image.Rectangle) Chain {
	return Chain{
		CombinedOuterScreenRect: screen,
		CombinedInnerScreenRect: screen,
		Head:                    NoChainNode,
	}
}

// WithNode returns a copy of c with node prepended. If the node's outer
// rect lies inside the chain's inner rect, the earlier clips cannot affect
// anything the node leaves visible and the link to them is dropped.
func (c Chain) WithNode(nodes *ChainNodes, node ChainNode) Chain {
	node.Prev = c.Head
	if node.ScreenOuterRect.In(c.CombinedInnerScreenRect) {
		node.Prev = NoChainNode
	}
	c.CombinedOuterScreenRect = c.CombinedOuterScreenRect.Intersect(node.ScreenOuterRect)
	c.CombinedInnerScreenRect = c.CombinedInnerScreenRect.Intersect(node.ScreenInnerRect)
	c.Head = nodes.nodes.Push(node)
	return c
}

// Culled returns a copy of c that clips everything away without adding a
// node.
func (c Chain) Culled() Chain {
	c.CombinedOuterScreenRect = image.Rectangle{}
	c.CombinedInnerScreenRect = image.Rectangle{}
	return c
}

// IsEmpty reports whether the chain has no clip nodes.
func (c Chain) IsEmpty() bool {
	return c.Head == NoChainNode
}

// Nodes iterates the chain from the most recently added node.
func (c Chain) Nodes(nodes *ChainNodes) iter.Seq2[ChainNodeIndex, *ChainNode] {
	return func(yield func(ChainNodeIndex, *ChainNode) bool) {
		for i := c.Head; i != NoChainNode; {
			n := nodes.At(i)
			if !yield(i, n) {
				return
			}
			i = n.Prev
		}
	}
}

// Len returns the number of clip nodes in the chain.
func (c Chain) Len(nodes *ChainNodes) int {
	n := 0
	for range c.Nodes(nodes) {
		n++
	}
	return n
}
