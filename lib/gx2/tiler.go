// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

// SurfaceInfo is what a Tiler reports about one mip level of a surface.
type SurfaceInfo struct {
	// SurfaceSize is the level's size in bytes once tiled.
	SurfaceSize uint32
	// BaseAlign is the level's required start alignment in bytes. It must be
	// a power of two.
	BaseAlign uint32
	// Pitch is the row stride in elements.
	Pitch uint32
	// BitsPerPixel is the element size in bits.
	BitsPerPixel uint32
	// Height is the element row count after tile mode alignment.
	Height uint32
	Depth  uint32
	// TileMode is the mode the hardware actually uses for the level, which can
	// differ from the requested one for small mip levels.
	TileMode TileMode
}

// Tiler sizes and swizzles surfaces under a GPU's tiling rules.
//
// Implementations must be pure: the same arguments always give the same
// result, and no state is shared between calls.
type Tiler interface {
	// SurfaceInfo sizes mip level level of a width×height×depth surface.
	SurfaceInfo(f Format, width uint32, height uint32, depth uint32,
		dim SurfaceDim, tm TileMode, aa AAMode, level int) (SurfaceInfo, error)

	// Swizzle permutes the untiled bytes of one mip level into the tiled
	// layout. width and height are that level's pixel dimensions. src has
	// already been padded to the level's SurfaceSize.
	Swizzle(width uint32, height uint32, adjustedHeight uint32, f Format, tm TileMode,
		swizzle uint32, pitch uint32, bitsPerPixel uint32, src []byte) ([]byte, error)
}
