// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"image"

	"github.com/gogpu/scenegraph"
	"github.com/gogpu/scenegraph/clip"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
	"github.com/gogpu/scenegraph/internal/arena"
)

// ChainDescriptor declares a clip chain made of arbitrary clip nodes,
// optionally extending another chain.
type ChainDescriptor struct {
	Index     clip.ChainIndex
	Parent    clip.ChainIndex
	HasParent bool
	Clips     []NodeIndex
}

// Tree is the clip/scroll tree of one document. The scene builder adds
// nodes at indices it chooses; every frame UpdateTree recomputes world
// transforms and clip chains.
//
// Tree is not safe for concurrent use.
type Tree struct {
	nodes       *arena.Storage[NodeIndex, Node]
	chains      []clip.Chain
	chainNodes  *clip.ChainNodes
	descriptors []ChainDescriptor

	pendingScrolls     map[ExternalScrollID]pendingScroll
	pipelinesToDiscard map[PipelineID]struct{}
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:              arena.New[NodeIndex, Node](64),
		chains:             []clip.Chain{clip.EmptyChain(image.Rectangle{})},
		chainNodes:         clip.NewChainNodes(),
		pendingScrolls:     make(map[ExternalScrollID]pendingScroll),
		pipelinesToDiscard: make(map[PipelineID]struct{}),
	}
}

// Len returns the number of node slots, tombstones included.
func (t *Tree) Len() int {
	return t.nodes.Len()
}

// Node returns the node at i.
func (t *Tree) Node(i NodeIndex) *Node {
	return t.nodes.At(i)
}

// Chain returns the clip chain at i.
func (t *Tree) Chain(i clip.ChainIndex) clip.Chain {
	return t.chains[i]
}

// ChainNodes returns the arena backing the chains of the last update.
func (t *Tree) ChainNodes() *clip.ChainNodes {
	return t.chainNodes
}

// ChainCount returns the number of allocated clip chains.
func (t *Tree) ChainCount() int {
	return len(t.chains)
}

func (t *Tree) allocateChain() clip.ChainIndex {
	t.chains = append(t.chains, clip.EmptyChain(image.Rectangle{}))
	return clip.ChainIndex(len(t.chains) - 1)
}

// addNode stores n at index, filling any gap with Empty nodes, and links
// it to its parent.
func (t *Tree) addNode(n Node, index NodeIndex) {
	n.TransformIndex = clip.TransformIndex(index)
	if n.HasParent {
		p := t.nodes.At(n.Parent)
		p.Children = append(p.Children, index)
	}
	if int(index) < t.nodes.Len() {
		t.nodes.Set(index, n)
		return
	}
	t.nodes.Grow(int(index), emptyNode)
	t.nodes.Push(n)
}

// AddReferenceFrame adds a reference frame. The root reference frame has
// no parent. A nil source or perspective means identity. A zero Transform
// is singular and makes the frame and its subtree non-invertible.
func (t *Tree) AddReferenceFrame(
	index NodeIndex,
	parent NodeIndex, hasParent bool,
	rect geom.Rect,
	source *PropertyBinding[geom.Transform],
	perspective *geom.Transform,
	origin geom.Vector,
	pipeline PipelineID,
) {
	rf := &ReferenceFrame{
		SourceTransform:   Value(geom.Identity()),
		SourcePerspective: geom.Identity(),
		Origin:            origin,
		ResolvedTransform: geom.Identity(),
		Invertible:        true,
	}
	if source != nil {
		rf.SourceTransform = *source
	}
	if perspective != nil {
		rf.SourcePerspective = *perspective
	}
	t.addNode(newNode(pipeline, parent, hasParent, rect, rf), index)
}

// AddScrollFrame adds a scroll frame whose viewport is frame and whose
// content has the given size.
func (t *Tree) AddScrollFrame(
	index, parent NodeIndex,
	externalID *ExternalScrollID,
	pipeline PipelineID,
	frame geom.Rect,
	contentSize geom.Size,
	sensitivity ScrollSensitivity,
) {
	sf := &ScrollFrame{
		ScrollableSize: geom.Sz(
			max(contentSize.W-frame.Size.W, 0),
			max(contentSize.H-frame.Size.H, 0),
		),
		Sensitivity: sensitivity,
	}
	if externalID != nil {
		sf.ExternalID, sf.HasExternalID = *externalID, true
	}
	t.addNode(newNode(pipeline, parent, true, frame, sf), index)
}

// AddStickyFrame adds a sticky frame positioned at frame.
func (t *Tree) AddStickyFrame(index, parent NodeIndex, frame geom.Rect, info StickyFrame, pipeline PipelineID) {
	sf := info
	t.addNode(newNode(pipeline, parent, true, frame, &sf), index)
}

// AddClipNode adds a clip node for the clip list sources and returns the
// chain index that will hold its clip chain.
func (t *Tree) AddClipNode(index, parent NodeIndex, sources clip.SourcesIndex, rect geom.Rect, pipeline PipelineID) clip.ChainIndex {
	chain := t.allocateChain()
	cn := &ClipNode{Sources: sources, Chain: chain}
	t.addNode(newNode(pipeline, parent, true, rect, cn), index)
	return chain
}

// AddClipChainDescriptor declares a chain built from clips, extending
// parent if hasParent is set, and returns its index. The chain is built by
// every UpdateTree after the tree walk.
func (t *Tree) AddClipChainDescriptor(parent clip.ChainIndex, hasParent bool, clips []NodeIndex) clip.ChainIndex {
	index := t.allocateChain()
	t.descriptors = append(t.descriptors, ChainDescriptor{
		Index:     index,
		Parent:    parent,
		HasParent: hasParent,
		Clips:     clips,
	})
	return index
}

// UpdateTree recomputes every node reachable from the root reference
// frame and returns the transform palette for the frame. Clip sources are
// updated in store and their GPU slots requested from cache, which must be
// between BeginFrame and EndFrame. images and props may be nil.
func (t *Tree) UpdateTree(
	screen image.Rectangle,
	scale float32,
	store *clip.Store,
	images clip.ImageRequester,
	cache *gpucache.Cache[clip.ItemKey],
	pan geom.Point,
	props *SceneProperties,
) *TransformPalette {
	palette := NewTransformPalette(t.nodes.Len())
	if t.nodes.Len() == 0 {
		return palette
	}

	t.chainNodes.Reset()
	for i := range t.chains {
		t.chains[i] = clip.EmptyChain(image.Rectangle{})
	}
	t.chains[clip.NoClipChain] = clip.EmptyChain(screen)

	state := transformState{
		parentReferenceFrameTransform:     geom.TranslationVec(pan.ToVector()),
		parentClipChain:                   clip.NoClipChain,
		coordinateSystem:                  clip.RootCoordinateSystem,
		coordinateSystemRelativeTransform: geom.Identity(),
		invertible:                        true,
	}
	ctx := &updateContext{
		nextCoordinateSystem: clip.RootCoordinateSystem.Next(),
		scale:                scale,
		store:                store,
		images:               images,
		cache:                cache,
		props:                props,
		chains:               t.chains,
		chainNodes:           t.chainNodes,
	}
	visited := t.updateNode(RootReferenceFrame, state, ctx, palette)

	t.BuildClipChains(screen)

	scenegraph.Logger().Debug("clipscroll: tree updated",
		"nodes", t.nodes.Len(), "visited", visited,
		"coordinate_systems", int(ctx.nextCoordinateSystem),
		"chain_nodes", t.chainNodes.Len())
	return palette
}

// updateNode updates index and its subtree and returns the number of
// nodes visited. state is a copy owned by this call.
func (t *Tree) updateNode(index NodeIndex, state transformState, ctx *updateContext, palette *TransformPalette) int {
	if int(index) >= t.nodes.Len() {
		return 0
	}
	n := t.nodes.At(index)
	if _, ok := n.Type.(Empty); ok {
		return 0
	}

	n.update(&state, ctx)
	palette.Set(n.TransformIndex, n.transformData())
	if len(n.Children) == 0 {
		return 1
	}
	n.prepareStateForChildren(&state)

	visited := 1
	for _, child := range n.Children {
		visited += t.updateNode(child, state, ctx, palette)
	}
	return visited
}

// BuildClipChains resolves the declared chain descriptors against the
// chain nodes computed by the last tree walk.
func (t *Tree) BuildClipChains(screen image.Rectangle) {
	for _, d := range t.descriptors {
		chain := clip.EmptyChain(screen)
		if d.HasParent {
			chain = t.chains[d.Parent]
		}
		for _, ci := range d.Clips {
			if int(ci) >= t.nodes.Len() {
				scenegraph.Logger().Warn("clipscroll: clip chain references missing node",
					"chain", d.Index, "node", ci)
				continue
			}
			cn, ok := t.nodes.At(ci).Type.(*ClipNode)
			if !ok {
				scenegraph.Logger().Warn("clipscroll: clip chain references non-clip node",
					"chain", d.Index, "node", ci)
				continue
			}
			if !cn.HasChainNode {
				scenegraph.Logger().Warn("clipscroll: clip chain references clip node without chain node",
					"chain", d.Index, "node", ci)
				continue
			}
			chain = chain.WithNode(t.chainNodes, cn.ChainNode)
		}
		chain.Parent, chain.HasParent = d.Parent, d.HasParent
		t.chains[d.Index] = chain
	}
}

// Drain empties the tree and returns the scroll state of every externally
// identified scroll frame whose pipeline was not discarded.
func (t *Tree) Drain() ScrollStates {
	states := make(ScrollStates)
	for _, n := range t.nodes.All() {
		if _, discard := t.pipelinesToDiscard[n.Pipeline]; discard {
			continue
		}
		if sf, ok := n.Type.(*ScrollFrame); ok && sf.HasExternalID {
			states[sf.ExternalID] = *sf
		}
	}
	clear(t.pipelinesToDiscard)
	t.nodes.Reset()
	t.chains = append(t.chains[:0], clip.EmptyChain(image.Rectangle{}))
	t.chainNodes.Reset()
	t.descriptors = t.descriptors[:0]
	return states
}

// DiscardFrameStateForPipeline drops the scroll state of pipeline at the
// next Drain.
func (t *Tree) DiscardFrameStateForPipeline(pipeline PipelineID) {
	t.pipelinesToDiscard[pipeline] = struct{}{}
}
