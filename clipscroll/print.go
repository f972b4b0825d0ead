// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Print writes an indented dump of the subtree under the root reference
// frame to w.
func (t *Tree) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "clip_scroll tree")
	if t.nodes.Len() > 0 {
		t.printNode(bw, RootReferenceFrame, 1)
	}
	return bw.Flush()
}

func (t *Tree) printNode(w *bufio.Writer, index NodeIndex, depth int) {
	n := t.nodes.At(index)
	indent := strings.Repeat("  ", depth)

	switch typ := n.Type.(type) {
	case *ClipNode:
		fmt.Fprintf(w, "%sClip #%d sources=%d chain=%d\n", indent, index, typ.Sources, typ.Chain)
	case *ReferenceFrame:
		fmt.Fprintf(w, "%sReferenceFrame #%d origin=%v invertible=%v\n", indent, index, typ.Origin, typ.Invertible)
	case *ScrollFrame:
		fmt.Fprintf(w, "%sScrollFrame #%d offset=%v scrollable=%v\n", indent, index, typ.Offset, typ.ScrollableSize)
		if typ.HasExternalID {
			fmt.Fprintf(w, "%s  id: %v\n", indent, typ.ExternalID)
		}
	case *StickyFrame:
		fmt.Fprintf(w, "%sStickyFrame #%d offset=%v\n", indent, index, typ.CurrentOffset)
	case Empty:
		fmt.Fprintf(w, "%sEmpty #%d\n", indent, index)
	}

	fmt.Fprintf(w, "%s  viewport: %v\n", indent, n.LocalViewport)
	fmt.Fprintf(w, "%s  world viewport: %v\n", indent, n.WorldViewportTransform)
	fmt.Fprintf(w, "%s  world content: %v\n", indent, n.WorldContentTransform)
	fmt.Fprintf(w, "%s  coordinate system: %d\n", indent, n.CoordinateSystem)

	for _, child := range n.Children {
		t.printNode(w, child, depth+1)
	}
}
