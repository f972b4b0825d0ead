// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clipscroll

import (
	"maps"

	"github.com/gogpu/scenegraph/geom"
)

// PropertyBinding is either a fixed value or a key that is resolved
// against SceneProperties, falling back to Value when the key has no
// value this frame.
type PropertyBinding[T any] struct {
	Key   PropertyBindingKey
	Value T
	Bound bool
}

// Value returns a binding to a fixed value.
func Value[T any](v T) PropertyBinding[T] {
	return PropertyBinding[T]{Value: v}
}

// Binding returns a binding to key with fallback as its default.
func Binding[T any](key PropertyBindingKey, fallback T) PropertyBinding[T] {
	return PropertyBinding[T]{Key: key, Value: fallback, Bound: true}
}

// PropertyValue is one animated value supplied for a frame.
type PropertyValue[T any] struct {
	Key   PropertyBindingKey
	Value T
}

// DynamicProperties is the set of animated values for one frame.
type DynamicProperties struct {
	Transforms []PropertyValue[geom.Transform]
	Floats     []PropertyValue[float32]
}

// SceneProperties resolves property bindings to their current values.
//
// New values are staged with SetProperties and take effect on
// FlushPendingUpdates, so a frame in progress never sees a half-applied
// set.
type SceneProperties struct {
	transforms map[PropertyBindingKey]geom.Transform
	floats     map[PropertyBindingKey]float32
	pending    *DynamicProperties
}

// NewSceneProperties creates an empty property set.
func NewSceneProperties() *SceneProperties {
	return &SceneProperties{
		transforms: make(map[PropertyBindingKey]geom.Transform),
		floats:     make(map[PropertyBindingKey]float32),
	}
}

// SetProperties stages a complete replacement of the current values.
func (p *SceneProperties) SetProperties(props DynamicProperties) {
	p.pending = &props
}

// FlushPendingUpdates applies staged values and reports whether anything
// changed.
func (p *SceneProperties) FlushPendingUpdates() bool {
	if p.pending == nil {
		return false
	}
	props := p.pending
	p.pending = nil

	transforms := make(map[PropertyBindingKey]geom.Transform, len(props.Transforms))
	for _, v := range props.Transforms {
		transforms[v.Key] = v.Value
	}
	floats := make(map[PropertyBindingKey]float32, len(props.Floats))
	for _, v := range props.Floats {
		floats[v.Key] = v.Value
	}

	changed := !maps.Equal(transforms, p.transforms) || !maps.Equal(floats, p.floats)
	p.transforms = transforms
	p.floats = floats
	return changed
}

// ResolveTransform returns the current value of b.
func (p *SceneProperties) ResolveTransform(b PropertyBinding[geom.Transform]) geom.Transform {
	if !b.Bound || p == nil {
		return b.Value
	}
	if v, ok := p.transforms[b.Key]; ok {
		return v
	}
	return b.Value
}

// ResolveFloat returns the current value of b.
func (p *SceneProperties) ResolveFloat(b PropertyBinding[float32]) float32 {
	if !b.Bound || p == nil {
		return b.Value
	}
	if v, ok := p.floats[b.Key]; ok {
		return v
	}
	return b.Value
}
