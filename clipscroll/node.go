// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"fmt"
	"math"

	"github.com/gogpu/scenegraph/clip"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
)

// NodeIndex addresses a node in a Tree. Indices are chosen by the scene
// builder.
type NodeIndex uint32

const (
	// RootReferenceFrame is the index of the tree's root.
	RootReferenceFrame NodeIndex = 0
	// TopmostScrollNode is the index of the root scroll frame.
	TopmostScrollNode NodeIndex = 1
	// NoNode names no node. Passed to ScrollNearestScrollingAncestor it
	// selects the topmost scroll node.
	NoNode NodeIndex = ^NodeIndex(0)
)

// NodeType is the kind-specific part of a node. It is implemented by
// Empty, *ScrollFrame, *StickyFrame, *ReferenceFrame and *ClipNode.
type NodeType interface {
	isNodeType()
}

// Empty marks an index that was skipped while building the tree.
type Empty struct{}

func (Empty) isNodeType() {}

// ReferenceFrame establishes a new transform for its subtree.
type ReferenceFrame struct {
	SourceTransform   PropertyBinding[geom.Transform]
	SourcePerspective geom.Transform
	// Origin is the frame's position in its parent reference frame.
	Origin geom.Vector

	// ResolvedTransform is the full local transform of the last update.
	ResolvedTransform geom.Transform
	// Invertible is false if the world transform of the last update had
	// no inverse.
	Invertible bool
}

func (*ReferenceFrame) isNodeType() {}

// ClipNode clips its subtree by a list of clip sources.
type ClipNode struct {
	Sources clip.SourcesIndex
	// Chain is where the node's clip chain is stored.
	Chain clip.ChainIndex
	// ChainNode is this node's contribution to chains, valid after an
	// update if HasChainNode is set.
	ChainNode    clip.ChainNode
	HasChainNode bool
}

func (*ClipNode) isNodeType() {}

// Node is one entry of the clip/scroll tree.
type Node struct {
	Parent    NodeIndex
	HasParent bool
	Children  []NodeIndex

	Pipeline PipelineID
	// LocalViewport is the node's rect in its parent's content space.
	LocalViewport geom.Rect
	Type          NodeType

	// WorldViewportTransform places the node's viewport in world space.
	WorldViewportTransform geom.Transform
	// WorldContentTransform places the node's content, including its own
	// scroll offset, in world space.
	WorldContentTransform geom.Transform

	CoordinateSystem clip.CoordinateSystemID
	// CoordinateSystemRelativeTransform maps the node's content into the
	// reference frame that started its coordinate system.
	CoordinateSystemRelativeTransform geom.Transform

	TransformIndex clip.TransformIndex
	// Invertible is false for nodes under a transform without inverse.
	// Their content is neither drawn nor used for clipping.
	Invertible bool
}

func newNode(pipeline PipelineID, parent NodeIndex, hasParent bool, viewport geom.Rect, typ NodeType) Node {
	return Node{
		Parent:                            parent,
		HasParent:                         hasParent,
		Pipeline:                          pipeline,
		LocalViewport:                     viewport,
		Type:                              typ,
		WorldViewportTransform:            geom.Identity(),
		WorldContentTransform:             geom.Identity(),
		CoordinateSystemRelativeTransform: geom.Identity(),
		Invertible:                        true,
	}
}

func emptyNode() Node {
	return newNode(PipelineID{}, 0, false, geom.Rect{}, Empty{})
}

// ScrollOffset returns the scroll offset of a scroll frame and zero for
// every other kind.
func (n *Node) ScrollOffset() geom.Vector {
	if s, ok := n.Type.(*ScrollFrame); ok {
		return s.Offset
	}
	return geom.Vector{}
}

// transformState is threaded down the tree during an update. Each child
// receives a copy.
type transformState struct {
	parentReferenceFrameTransform geom.Transform
	parentAccumulatedScrollOffset geom.Vector

	nearestScrollingAncestorOffset   geom.Vector
	nearestScrollingAncestorViewport geom.Rect

	parentClipChain clip.ChainIndex

	coordinateSystem                  clip.CoordinateSystemID
	coordinateSystemRelativeTransform geom.Transform

	invertible bool
}

// updateContext holds what one tree update needs besides the state.
type updateContext struct {
	nextCoordinateSystem clip.CoordinateSystemID
	scale                float32
	store                *clip.Store
	images               clip.ImageRequester
	cache                *gpucache.Cache[clip.ItemKey]
	props                *SceneProperties
	chains               []clip.Chain
	chainNodes           *clip.ChainNodes
}

// update recomputes the node's transforms and, for clip nodes, its chain.
func (n *Node) update(state *transformState, ctx *updateContext) {
	if !state.invertible {
		n.markUninvertible()
		n.updateUninvertibleClip(state, ctx)
		return
	}

	n.updateTransform(state, ctx)
	if !n.Invertible {
		n.markUninvertible()
		return
	}
	n.updateClip(state, ctx)
}

func (n *Node) markUninvertible() {
	n.Invertible = false
	n.WorldViewportTransform = geom.Identity()
	n.WorldContentTransform = geom.Identity()
}

func (n *Node) updateTransform(state *transformState, ctx *updateContext) {
	n.Invertible = true
	if rf, ok := n.Type.(*ReferenceFrame); ok {
		n.updateReferenceFrame(rf, state, ctx)
		return
	}

	var sticky geom.Vector
	if sf, ok := n.Type.(*StickyFrame); ok {
		sticky = sf.offset(n.LocalViewport, state.nearestScrollingAncestorOffset, state.nearestScrollingAncestorViewport)
		sf.CurrentOffset = sticky
	}

	// The viewport sits in the parent reference frame, moved by every
	// scroll offset in between and by our own sticky offset.
	accumulated := state.parentAccumulatedScrollOffset.Add(sticky)
	n.WorldViewportTransform = state.parentReferenceFrameTransform.PreTranslate(accumulated)

	scroll := n.ScrollOffset()
	n.WorldContentTransform = n.WorldViewportTransform.PreTranslate(scroll)

	n.CoordinateSystemRelativeTransform = state.coordinateSystemRelativeTransform.PreTranslate(accumulated.Add(scroll))
	n.CoordinateSystem = state.coordinateSystem
}

func (n *Node) updateReferenceFrame(rf *ReferenceFrame, state *transformState, ctx *updateContext) {
	source := ctx.props.ResolveTransform(rf.SourceTransform)
	rf.ResolvedTransform = geom.TranslationVec(rf.Origin).Mul(rf.SourcePerspective).Mul(source)

	// Scroll offsets between us and the parent reference frame move the
	// whole frame.
	relative := rf.ResolvedTransform.PostTranslate(state.parentAccumulatedScrollOffset)
	n.WorldViewportTransform = state.parentReferenceFrameTransform.Mul(relative)
	n.WorldContentTransform = n.WorldViewportTransform
	n.CoordinateSystem = state.coordinateSystem

	rf.Invertible = n.WorldViewportTransform.IsInvertible()
	if !rf.Invertible {
		n.Invertible = false
		return
	}

	combined := state.coordinateSystemRelativeTransform.Mul(relative)
	if combined.PreservesAxisAlignment() {
		n.CoordinateSystemRelativeTransform = combined
	} else {
		n.CoordinateSystemRelativeTransform = geom.Identity()
		state.coordinateSystem = ctx.nextCoordinateSystem
		ctx.nextCoordinateSystem = ctx.nextCoordinateSystem.Next()
	}
	n.CoordinateSystem = state.coordinateSystem
}

// updateClip builds the chain node of a clip node, prepends it to the
// parent chain and makes the result the chain for the subtree.
func (n *Node) updateClip(state *transformState, ctx *updateContext) {
	cn, ok := n.Type.(*ClipNode)
	if !ok {
		return
	}

	ctx.store.Update(cn.Sources, ctx.cache, ctx.images)
	sources := ctx.store.At(cn.Sources)
	inner, outer, hasOuter := sources.ScreenBounds(n.WorldViewportTransform, ctx.scale)
	if !hasOuter {
		panic(fmt.Sprintf("clipscroll: clip node with sources %d has no outer rect", cn.Sources))
	}
	localClip, _ := n.CoordinateSystemRelativeTransform.TransformRect(sources.LocalOuterRect)

	cn.ChainNode = clip.ChainNode{
		WorkItem: clip.WorkItem{
			TransformIndex:     n.TransformIndex,
			Sources:            cn.Sources,
			CoordinateSystemID: state.coordinateSystem,
		},
		LocalClipRect:   localClip,
		ScreenOuterRect: outer,
		ScreenInnerRect: inner,
		Prev:            clip.NoChainNode,
	}
	cn.HasChainNode = true

	chain := ctx.chains[state.parentClipChain].WithNode(ctx.chainNodes, cn.ChainNode)
	chain.Parent, chain.HasParent = state.parentClipChain, true
	ctx.chains[cn.Chain] = chain
	state.parentClipChain = cn.Chain
}

// updateUninvertibleClip gives a clip node under a singular transform a
// chain that culls everything and adds no clip of its own.
func (n *Node) updateUninvertibleClip(state *transformState, ctx *updateContext) {
	cn, ok := n.Type.(*ClipNode)
	if !ok {
		return
	}
	cn.HasChainNode = false
	chain := ctx.chains[state.parentClipChain].Culled()
	chain.Parent, chain.HasParent = state.parentClipChain, true
	ctx.chains[cn.Chain] = chain
	state.parentClipChain = cn.Chain
}

// transformData returns the node's palette entry.
func (n *Node) transformData() TransformData {
	if !n.Invertible {
		return invalidTransform
	}
	inv, ok := n.WorldContentTransform.Inverse()
	if !ok {
		return invalidTransform
	}
	kind := TransformAxisAligned
	if !n.WorldContentTransform.PreservesAxisAlignment() {
		kind = TransformComplex
	}
	return TransformData{Transform: n.WorldContentTransform, InvTransform: inv, Kind: kind}
}

// prepareStateForChildren derives the state the node's children see.
func (n *Node) prepareStateForChildren(state *transformState) {
	if !n.Invertible {
		state.invertible = false
		return
	}

	switch t := n.Type.(type) {
	case *StickyFrame:
		// The sticky offset moves the node itself, so children inherit it
		// like a scroll offset.
		state.parentAccumulatedScrollOffset = state.parentAccumulatedScrollOffset.Add(t.CurrentOffset)
	case *ScrollFrame:
		state.parentAccumulatedScrollOffset = state.parentAccumulatedScrollOffset.Add(t.Offset)
		state.nearestScrollingAncestorOffset = t.Offset
		state.nearestScrollingAncestorViewport = n.LocalViewport
	case *ReferenceFrame:
		state.parentReferenceFrameTransform = n.WorldViewportTransform
		state.parentAccumulatedScrollOffset = geom.Vector{}
		state.coordinateSystemRelativeTransform = n.CoordinateSystemRelativeTransform
		state.nearestScrollingAncestorViewport = state.nearestScrollingAncestorViewport.Translate(t.Origin.Neg())
	case *ClipNode:
	case Empty:
		panic("clipscroll: empty node remaining in tree")
	default:
		panic(fmt.Sprintf("clipscroll: unknown node type %T", t))
	}
}

// rayIntersects reports whether the world-space point lies in the node's
// viewport.
func (n *Node) rayIntersects(p geom.Point) bool {
	inv, ok := n.WorldViewportTransform.Inverse()
	if !ok {
		return false
	}
	local, ok := inv.TransformPoint(p)
	if !ok {
		return false
	}
	return n.LocalViewport.Contains(local)
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
