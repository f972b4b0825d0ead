// Command sgdemo drives the scene graph core for a number of frames: it
// builds a clip/scroll tree, scrolls it, updates the GPU caches and packs
// images into the atlas, logging what each stage does.
package main

import (
	"flag"
	"image"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/scenegraph"
	"github.com/gogpu/scenegraph/atlas"
	"github.com/gogpu/scenegraph/clip"
	"github.com/gogpu/scenegraph/clipscroll"
	"github.com/gogpu/scenegraph/config"
	"github.com/gogpu/scenegraph/geom"
	"github.com/gogpu/scenegraph/gpucache"
)

// byteCounter stands in for a GPU texture and records upload sizes.
type byteCounter struct {
	uploads int
	bytes   int
}

func (b *byteCounter) UpdateData(data []byte) error {
	b.uploads++
	b.bytes += len(data)
	return nil
}

// imageLog keeps the mask images requested by clip sources.
type imageLog map[clip.ImageKey]bool

func (l imageLog) RequestImage(key clip.ImageKey) { l[key] = true }

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		frames     = flag.Int("frames", 30, "number of frames to run")
		verbose    = flag.Bool("v", false, "debug logging")
		dump       = flag.Bool("dump", false, "print the tree after the last frame")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	scenegraph.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ids := clipscroll.NewIDSource(1)
	pipeline := ids.NextPipeline()
	scrollID := ids.NextScrollID(pipeline)
	spin := ids.NextBindingKey()

	store := clip.NewStore()
	tree := clipscroll.New()
	buildScene(tree, store, cfg, pipeline, scrollID, spin)
	tree.FinalizeAndApplyPendingScrollOffsets(nil)

	clipCache := gpucache.New[clip.ItemKey](cfg.GPUCacheOptions()...)
	transformCache := gpucache.New[clip.TransformIndex](cfg.GPUCacheOptions()...)
	clipMirror, transformMirror := gpucache.NewMirror(), gpucache.NewMirror()
	clipTexture, transformTexture := &byteCounter{}, &byteCounter{}
	images := imageLog{}
	props := clipscroll.NewSceneProperties()
	var counters gpucache.Counters

	for frame := range *frames {
		props.SetProperties(clipscroll.DynamicProperties{
			Transforms: []clipscroll.PropertyValue[geom.Transform]{
				{Key: spin, Value: geom.Rotation(float32(frame) * 0.05)},
			},
		})
		props.FlushPendingUpdates()
		tree.ScrollNode(geom.Pt(0, float32(frame*12)), scrollID, clipscroll.ToContentBounds)

		clipCache.BeginFrame()
		palette := tree.UpdateTree(cfg.Screen(), cfg.Frame.DevicePixelScale, store, images, clipCache, geom.Point{}, props)
		clipList := clipCache.EndFrame(&counters, store.BuildBlocks)
		clipMirror.Apply(clipList)
		clipCache.Release(clipList)

		transformCache.BeginFrame()
		for i := range palette.Len() {
			idx := clip.TransformIndex(i)
			id, ok := transformCache.Lookup(idx)
			if !ok {
				id = transformCache.ReserveSlot(idx)
			}
			// Transforms move every frame.
			transformCache.Invalidate(id, &counters)
			transformCache.RequestSlot(id)
		}
		transformList := transformCache.EndFrame(&counters, palette.BuildBlocks)
		transformMirror.Apply(transformList)
		transformCache.Release(transformList)

		if err := clipMirror.Upload(clipTexture); err != nil {
			log.Fatalf("Failed to upload clip data: %v", err)
		}
		if err := transformMirror.Upload(transformTexture); err != nil {
			log.Fatalf("Failed to upload transforms: %v", err)
		}
	}

	packed := packImages(cfg)

	st := clipCache.Stats()
	logger.Info("done",
		"frames", *frames,
		"nodes", tree.Len(),
		"clip_slots", st.Slots,
		"clip_rows", st.Rows,
		"allocated_rows", counters.AllocatedRows,
		"updated_blocks", counters.UpdatedBlocks,
		"clip_upload_bytes", clipTexture.bytes,
		"transform_upload_bytes", transformTexture.bytes,
		"mask_images", len(images),
		"atlas_images", packed)

	if *dump {
		if err := tree.Print(os.Stdout); err != nil {
			log.Fatalf("Failed to print tree: %v", err)
		}
	}
}

// buildScene creates a page: a scrolling document with a sticky header, a
// rotating card clipped by a rounded rect and a masked image.
func buildScene(tree *clipscroll.Tree, store *clip.Store, cfg config.Config, pipeline clipscroll.PipelineID,
	scrollID clipscroll.ExternalScrollID, spin clipscroll.PropertyBindingKey) {
	w, h := float32(cfg.Frame.Width), float32(cfg.Frame.Height)
	viewport := geom.R(0, 0, w, h)

	tree.AddReferenceFrame(clipscroll.RootReferenceFrame, 0, false, viewport, nil, nil, geom.Vector{}, pipeline)
	tree.AddScrollFrame(clipscroll.TopmostScrollNode, clipscroll.RootReferenceFrame, &scrollID, pipeline,
		viewport, geom.Sz(w, h*4), clipscroll.ScriptAndInputEvents)

	page := store.Insert(clip.NewSources(clip.Rectangle{Rect: geom.R(0, 0, w, h*4)}))
	pageChain := tree.AddClipNode(2, clipscroll.TopmostScrollNode, page, geom.R(0, 0, w, h*4), pipeline)

	tree.AddStickyFrame(3, 2, geom.R(0, 40, w, 60), clipscroll.StickyFrame{
		Margins:          clipscroll.StickyMargins{Top: clipscroll.Px(0)},
		VerticalBounds:   clipscroll.Unbounded(),
		HorizontalBounds: clipscroll.Unbounded(),
	}, pipeline)
	header := store.Insert(clip.NewSources(clip.Rectangle{Rect: geom.R(0, 40, w, 60)}))
	tree.AddClipNode(4, 3, header, geom.R(0, 40, w, 60), pipeline)

	rotation := clipscroll.Binding(spin, geom.Identity())
	tree.AddReferenceFrame(5, 2, true, geom.R(0, 0, 200, 200), &rotation, nil, geom.Vec(w/2, h/2), pipeline)
	card := store.Insert(clip.NewSources(
		clip.RoundedRectangle{Rect: geom.R(-100, -100, 200, 200), Radii: clip.UniformRadius(16)},
		clip.ImageMask{Image: 1, Rect: geom.R(-100, -100, 200, 200)},
	))
	cardChain := tree.AddClipNode(6, 5, card, geom.R(-100, -100, 200, 200), pipeline)

	tree.AddClipChainDescriptor(pageChain, true, []clipscroll.NodeIndex{4})
	tree.AddClipChainDescriptor(cardChain, true, []clipscroll.NodeIndex{4})
}

// packImages fills the atlas with a spread of image sizes and returns how
// many were placed.
func packImages(cfg config.Config) int {
	alloc := atlas.NewAllocator(cfg.SliceSize(), cfg.AtlasOptions()...)
	placed := 0
	for i := range 256 {
		size := image.Pt(16+(i*37)%240, 16+(i*53)%240)
		if _, err := alloc.Allocate(size); err != nil {
			scenegraph.Logger().Warn("atlas allocation failed", "size", size, "err", err)
			continue
		}
		placed++
	}
	scenegraph.Logger().Info("atlas packed", "images", placed, "slices", alloc.Slices())
	return placed
}
