// Package scenegraph is the scene-graph and GPU resource caching core of a
// retained-mode 2D renderer.
//
// # Overview
//
// Every frame a frame builder pushes scroll offsets and animated property
// values into a [clipscroll.Tree], runs its update pass and reads back a
// transform palette plus a set of clip chains. Primitives then request
// slots in a [gpucache.Cache]; at the end of the frame the cache builds the
// pending slots and emits a sparse list of texture updates for the renderer
// to upload.
//
// # Packages
//
//   - geom: float32 points, rects and 4x4 transforms
//   - gpucache: slab-allocated, frame-evicting cache of GPU blocks
//   - atlas: guillotine rectangle packer for texture atlas layers
//   - clip: clip sources, clip store and clip chains
//   - clipscroll: the clip/scroll tree and its per-frame update
//   - config: TOML configuration for the tunables above
//
// # Threading
//
// None of the data structures lock. They are owned by the frame-building
// goroutine and driven in strict call order: BeginFrame, RequestSlot,
// EndFrame, Address for the cache; UpdateTree before reading the palette.
//
// [clipscroll.Tree]: https://pkg.go.dev/github.com/gogpu/scenegraph/clipscroll#Tree
// [gpucache.Cache]: https://pkg.go.dev/github.com/gogpu/scenegraph/gpucache#Cache
package scenegraph

// Version is the current version of the module.
const Version = "0.1.0"
