// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import "fmt"

// PipelineID identifies the display list a node was built from.
type PipelineID struct {
	Namespace uint32
	Index     uint32
}

func (p PipelineID) String() string {
	return fmt.Sprintf("PipelineID(%d, %d)", p.Namespace, p.Index)
}

// ExternalScrollID is a scroll frame id that stays stable across tree
// rebuilds, so scroll positions survive a new display list.
type ExternalScrollID struct {
	ID       uint64
	Pipeline PipelineID
}

func (e ExternalScrollID) String() string {
	return fmt.Sprintf("ExternalScrollID(%d, %v)", e.ID, e.Pipeline)
}

// PropertyBindingKey names an animated property whose value is supplied
// per frame through SceneProperties.
type PropertyBindingKey struct {
	Namespace uint32
	ID        uint32
}

// IDSource hands out ids for one engine instance. Every counter is owned
// by the value, so independent engines in one process never collide. The
// zero value is not usable; call NewIDSource.
//
// IDSource is not safe for concurrent use.
type IDSource struct {
	namespace    uint32
	nextPipeline uint32
	nextScroll   uint64
	nextBinding  uint32
}

// NewIDSource creates a source whose ids carry namespace.
func NewIDSource(namespace uint32) *IDSource {
	return &IDSource{namespace: namespace}
}

// Namespace returns the namespace stamped on generated ids.
func (s *IDSource) Namespace() uint32 {
	return s.namespace
}

// NextPipeline returns a new pipeline id.
func (s *IDSource) NextPipeline() PipelineID {
	id := PipelineID{Namespace: s.namespace, Index: s.nextPipeline}
	s.nextPipeline++
	return id
}

// NextScrollID returns a new external scroll id within pipeline. Scroll ids
// are unique per source, not just per pipeline.
func (s *IDSource) NextScrollID(pipeline PipelineID) ExternalScrollID {
	id := ExternalScrollID{ID: s.nextScroll, Pipeline: pipeline}
	s.nextScroll++
	return id
}

// NextBindingKey returns a new property binding key.
func (s *IDSource) NextBindingKey() PropertyBindingKey {
	k := PropertyBindingKey{Namespace: s.namespace, ID: s.nextBinding}
	s.nextBinding++
	return k
}
