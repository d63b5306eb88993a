// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package importer turns image files and DDS textures into GX2 surfaces.
//
// Loading produces a Source: the texture's gx2.Settings plus one byte buffer
// per array layer. Bitmaps are held as uncompressed NRGBA bytes and are
// compressed (and mipmapped) when the Source is flattened. DDS payloads are
// already compressed and pass through untouched.
package importer

import (
	"path/filepath"
	"strings"

	"github.com/nigeltao/gx2/lib/gx2"
)

// DefaultFormat is the destination format of bitmaps when Options.Format is
// zero.
const DefaultFormat = gx2.FormatBC1UNorm

// Options are optional arguments to the Load functions. The zero value is
// valid and means to use the default configuration.
type Options struct {
	// Format is the destination format for bitmaps. DDS files keep their own
	// format. If zero, the default is DefaultFormat.
	Format gx2.Format

	// SRGB selects the sRGB variant of the destination format.
	SRGB bool

	// TileMode overrides the default tile mode, 2D_TILED_THIN1.
	TileMode *gx2.TileMode

	// Swizzle overrides the default bank swizzle seed, 4.
	Swizzle *uint32

	// NoMipmaps turns off mipmap generation for bitmaps.
	NoMipmaps bool

	// AlphaRef is the alpha test threshold used when compressing to BC1. If
	// zero, the default is 0.5.
	AlphaRef float32
}

// Source is a loaded texture, ready to be flattened and encoded.
//
// A Source is not modified after loading.
type Source struct {
	Settings gx2.Settings

	// Layers holds one buffer per array layer (cubemap face), at full
	// resolution. Compressed payloads may hold every mip level.
	Layers [][]byte

	// Compressed is whether Layers are already in Settings.Format.
	Compressed bool
}

// textureName returns a file name's base name without its extension.
func textureName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func newSettings(fileName string, opts *Options) gx2.Settings {
	s := gx2.DefaultSettings()
	s.Name = textureName(fileName)
	if opts == nil {
		return s
	}
	if opts.TileMode != nil {
		s.TileMode = *opts.TileMode
	}
	if opts.Swizzle != nil {
		s.Swizzle = *opts.Swizzle
	}
	if opts.AlphaRef != 0 {
		s.AlphaRef = opts.AlphaRef
	}
	s.SRGB = opts.SRGB
	return s
}
