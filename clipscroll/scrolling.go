// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"github.com/gogpu/scenegraph"
	"github.com/gogpu/scenegraph/geom"
)

// ScrollNode sets the scroll origin of the frame with external id id and
// reports whether its offset changed. If no such frame exists yet the
// request is kept and applied by FinalizeAndApplyPendingScrollOffsets.
func (t *Tree) ScrollNode(origin geom.Point, id ExternalScrollID, clamping ScrollClamping) bool {
	for _, n := range t.nodes.All() {
		if sf, ok := n.Type.(*ScrollFrame); ok && sf.HasExternalID && sf.ExternalID == id {
			return sf.SetScrollOrigin(origin, clamping)
		}
	}
	t.pendingScrolls[id] = pendingScroll{origin: origin, clamping: clamping}
	return false
}

// PendingScrollOffset returns a buffered scroll request for id.
func (t *Tree) PendingScrollOffset(id ExternalScrollID) (geom.Point, bool) {
	p, ok := t.pendingScrolls[id]
	return p.origin, ok
}

// FinalizeAndApplyPendingScrollOffsets restores offsets saved by Drain and
// then applies buffered ScrollNode requests to the frames they name.
func (t *Tree) FinalizeAndApplyPendingScrollOffsets(old ScrollStates) {
	for _, n := range t.nodes.All() {
		sf, ok := n.Type.(*ScrollFrame)
		if !ok || !sf.HasExternalID {
			continue
		}
		if prev, ok := old[sf.ExternalID]; ok {
			sf.restore(prev)
		}
		if p, ok := t.pendingScrolls[sf.ExternalID]; ok {
			sf.SetScrollOrigin(p.origin, p.clamping)
			delete(t.pendingScrolls, sf.ExternalID)
		}
	}
}

// ScrollNodeState returns the offsets of all externally identified scroll
// frames.
func (t *Tree) ScrollNodeState() []ScrollNodeState {
	var out []ScrollNodeState
	for _, n := range t.nodes.All() {
		if sf, ok := n.Type.(*ScrollFrame); ok && sf.HasExternalID {
			out = append(out, ScrollNodeState{ID: sf.ExternalID, Offset: sf.Offset})
		}
	}
	return out
}

// Scroll applies a user scroll at the world-space cursor position to the
// innermost input-sensitive scroll frame under it.
func (t *Tree) Scroll(loc ScrollLocation, cursor geom.Point) bool {
	if t.nodes.Len() == 0 {
		return false
	}
	return t.ScrollNearestScrollingAncestor(loc, t.FindScrollingNodeAt(cursor))
}

// ScrollNearestScrollingAncestor scrolls the first input-sensitive scroll
// frame found walking up from index. Without one, or when index is NoNode,
// the topmost scroll node is scrolled.
func (t *Tree) ScrollNearestScrollingAncestor(loc ScrollLocation, index NodeIndex) bool {
	if t.nodes.Len() == 0 {
		return false
	}
	target := t.nearestScrollingAncestor(index)
	if int(target) >= t.nodes.Len() {
		return false
	}
	sf, ok := t.nodes.At(target).Type.(*ScrollFrame)
	if !ok {
		scenegraph.Logger().Warn("clipscroll: tried to scroll a non-scroll node", "node", target)
		return false
	}
	return sf.Scroll(loc)
}

func (t *Tree) nearestScrollingAncestor(index NodeIndex) NodeIndex {
	for {
		if index == NoNode || int(index) >= t.nodes.Len() {
			return TopmostScrollNode
		}
		n := t.nodes.At(index)
		if sf, ok := n.Type.(*ScrollFrame); ok && sf.SensitiveToInputEvents() {
			return index
		}
		if !n.HasParent {
			return TopmostScrollNode
		}
		index = n.Parent
	}
}

// FindScrollingNodeAt returns the innermost input-sensitive scroll frame
// whose viewport contains the world-space point, or TopmostScrollNode.
// Later children are on top and are checked first.
func (t *Tree) FindScrollingNodeAt(p geom.Point) NodeIndex {
	if t.nodes.Len() == 0 {
		return TopmostScrollNode
	}
	if i, ok := t.findScrollingNodeIn(p, RootReferenceFrame); ok {
		return i
	}
	return TopmostScrollNode
}

func (t *Tree) findScrollingNodeIn(p geom.Point, index NodeIndex) (NodeIndex, bool) {
	n := t.nodes.At(index)
	for i := len(n.Children) - 1; i >= 0; i-- {
		if found, ok := t.findScrollingNodeIn(p, n.Children[i]); ok {
			return found, true
		}
	}
	sf, ok := n.Type.(*ScrollFrame)
	if !ok || !sf.SensitiveToInputEvents() {
		return 0, false
	}
	if n.rayIntersects(p) {
		return index, true
	}
	return 0, false
}
