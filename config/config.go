// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the engine configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/scenegraph/atlas"
	"github.com/gogpu/scenegraph/gpucache"
)

// Sentinel errors for config package.
var (
	// ErrInvalidGPUCache is returned for an unusable [gpu_cache] section.
	ErrInvalidGPUCache = errors.New("config: invalid gpu_cache section")

	// ErrInvalidAtlas is returned for an unusable [atlas] section.
	ErrInvalidAtlas = errors.New("config: invalid atlas section")

	// ErrInvalidFrame is returned for an unusable [frame] section.
	ErrInvalidFrame = errors.New("config: invalid frame section")

	// ErrUnknownKey is returned when the document contains keys that map
	// to no field.
	ErrUnknownKey = errors.New("config: unknown key")
)

// GPUCache configures the GPU resource cache.
type GPUCache struct {
	MaxRows     int `toml:"max_rows"`
	EvictionAge int `toml:"eviction_age"`
	Capacity    int `toml:"capacity"`
}

// Atlas configures the texture atlas allocator.
type Atlas struct {
	SliceWidth      int  `toml:"slice_width"`
	SliceHeight     int  `toml:"slice_height"`
	MaxSlices       int  `toml:"max_slices"`
	SmallestAreaFit bool `toml:"smallest_area_fit"`
}

// Frame describes the output surface.
type Frame struct {
	Width            int     `toml:"width"`
	Height           int     `toml:"height"`
	DevicePixelScale float32 `toml:"device_pixel_scale"`
}

// Config is the complete engine configuration.
type Config struct {
	GPUCache GPUCache `toml:"gpu_cache"`
	Atlas    Atlas    `toml:"atlas"`
	Frame    Frame    `toml:"frame"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		GPUCache: GPUCache{
			MaxRows:     gpucache.DefaultMaxRows,
			EvictionAge: gpucache.FramesBeforeEviction,
			Capacity:    64,
		},
		Atlas: Atlas{
			SliceWidth:  2048,
			SliceHeight: 2048,
			MaxSlices:   atlas.DefaultMaxSlices,
		},
		Frame: Frame{
			Width:            1280,
			Height:           720,
			DevicePixelScale: 1,
		},
	}
}

// Load reads and validates the configuration at path. Keys missing from
// the file keep their defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a TOML document, starting from Default.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	g := c.GPUCache
	switch {
	case g.MaxRows <= 0:
		return fmt.Errorf("%w: max_rows must be positive, got %d", ErrInvalidGPUCache, g.MaxRows)
	case g.EvictionAge <= 0:
		return fmt.Errorf("%w: eviction_age must be positive, got %d", ErrInvalidGPUCache, g.EvictionAge)
	case g.Capacity < 0:
		return fmt.Errorf("%w: capacity must not be negative, got %d", ErrInvalidGPUCache, g.Capacity)
	}

	a := c.Atlas
	switch {
	case a.SliceWidth <= 0 || a.SliceHeight <= 0:
		return fmt.Errorf("%w: slice size %dx%d", ErrInvalidAtlas, a.SliceWidth, a.SliceHeight)
	case a.MaxSlices <= 0:
		return fmt.Errorf("%w: max_slices must be positive, got %d", ErrInvalidAtlas, a.MaxSlices)
	}

	f := c.Frame
	switch {
	case f.Width <= 0 || f.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidFrame, f.Width, f.Height)
	case f.DevicePixelScale <= 0:
		return fmt.Errorf("%w: device_pixel_scale must be positive, got %g", ErrInvalidFrame, f.DevicePixelScale)
	}
	return nil
}

// GPUCacheOptions returns the gpucache options for c.
func (c Config) GPUCacheOptions() []gpucache.Option {
	return []gpucache.Option{
		gpucache.WithMaxRows(c.GPUCache.MaxRows),
		gpucache.WithEvictionAge(c.GPUCache.EvictionAge),
		gpucache.WithCapacity(c.GPUCache.Capacity),
	}
}

// AtlasOptions returns the atlas options for c.
func (c Config) AtlasOptions() []atlas.Option {
	return []atlas.Option{
		atlas.WithMaxSlices(c.Atlas.MaxSlices),
		atlas.WithSmallestAreaFit(c.Atlas.SmallestAreaFit),
	}
}

// SliceSize returns the atlas slice size.
func (c Config) SliceSize() image.Point {
	return image.Pt(c.Atlas.SliceWidth, c.Atlas.SliceHeight)
}

// Screen returns the frame rect in device pixels.
func (c Config) Screen() image.Rectangle {
	return image.Rect(0, 0, c.Frame.Width, c.Frame.Height)
}
