// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package linear implements gx2.Tiler for the untiled GX2 tile modes,
// LINEAR_GENERAL and LINEAR_ALIGNED.
//
// Linear surfaces store rows of elements one after another, each row padded
// to the pitch. An element is a pixel, or a 4×4 block for block compressed
// formats. The bank swizzle seed has no effect on them.
package linear

import (
	"errors"
	"fmt"

	"github.com/nigeltao/gx2/lib/gx2"
)

var ErrUnsupportedTileMode = errors.New("linear: unsupported tile mode")

// pipeInterleaveBytes is the base alignment of LINEAR_ALIGNED surfaces.
const pipeInterleaveBytes = 256

// Tiler is a gx2.Tiler for linear tile modes. The zero value is ready to use.
type Tiler struct{}

var _ gx2.Tiler = Tiler{}

func checkTileMode(tm gx2.TileMode) error {
	// LINEAR_SPECIAL surfaces are only ever produced by the GPU.
	if !tm.IsLinear() || (tm == gx2.TileModeLinearSpecial) {
		return fmt.Errorf("%w: %v", ErrUnsupportedTileMode, tm)
	}
	return nil
}

func nextPow2(n uint32) uint32 {
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// elements converts pixel dimensions to element dimensions.
func elements(f gx2.Format, width uint32, height uint32) (uint32, uint32) {
	if f.IsBlockCompressed() {
		return (width + 3) >> 2, (height + 3) >> 2
	}
	return width, height
}

// SurfaceInfo implements gx2.Tiler.
//
// Mip levels after the first are padded to power of two dimensions before
// the pitch is aligned.
func (Tiler) SurfaceInfo(f gx2.Format, width uint32, height uint32, depth uint32,
	dim gx2.SurfaceDim, tm gx2.TileMode, aa gx2.AAMode, level int) (gx2.SurfaceInfo, error) {

	bitsPerPixel := f.BitsPerPixel()
	if bitsPerPixel == 0 {
		return gx2.SurfaceInfo{}, fmt.Errorf("%w: %v", gx2.ErrUnsupportedFormat, f)
	} else if err := checkTileMode(tm); err != nil {
		return gx2.SurfaceInfo{}, err
	} else if aa != gx2.AAMode1X {
		return gx2.SurfaceInfo{}, fmt.Errorf("%w: multisampled linear surface", gx2.ErrBadArgument)
	} else if (width == 0) || (height == 0) || (level < 0) {
		return gx2.SurfaceInfo{}, gx2.ErrBadArgument
	}

	w := gx2.MipDimension(width, level)
	h := gx2.MipDimension(height, level)
	if level > 0 {
		w, h = nextPow2(w), nextPow2(h)
	}
	w, h = elements(f, w, h)

	bytesPerElement := bitsPerPixel >> 3
	pitchAlign, baseAlign := uint32(1), uint32(1)
	if tm == gx2.TileModeLinearAligned {
		pitchAlign = max(64, pipeInterleaveBytes/bytesPerElement)
		baseAlign = pipeInterleaveBytes
	}
	pitch := gx2.RoundUp(w, pitchAlign)
	d := max(1, depth)

	return gx2.SurfaceInfo{
		SurfaceSize:  pitch * h * d * bytesPerElement,
		BaseAlign:    baseAlign,
		Pitch:        pitch,
		BitsPerPixel: bitsPerPixel,
		Height:       h,
		Depth:        d,
		TileMode:     tm,
	}, nil
}

// Swizzle implements gx2.Tiler. It moves each tightly packed row of src to
// its pitch aligned position. The result has the same length as src.
func (Tiler) Swizzle(width uint32, height uint32, adjustedHeight uint32, f gx2.Format, tm gx2.TileMode,
	swizzle uint32, pitch uint32, bitsPerPixel uint32, src []byte) ([]byte, error) {

	if err := checkTileMode(tm); err != nil {
		return nil, err
	}
	bytesPerElement := int(bitsPerPixel >> 3)
	w, h := elements(f, width, height)
	if (bytesPerElement == 0) || (pitch < w) || (adjustedHeight < h) {
		return nil, gx2.ErrBadArgument
	}

	rowLength := int(w) * bytesPerElement
	stride := int(pitch) * bytesPerElement
	dst := make([]byte, len(src))
	for y := 0; y < int(h); y++ {
		s, d := y*rowLength, y*stride
		if ((s + rowLength) > len(src)) || ((d + rowLength) > len(dst)) {
			return nil, fmt.Errorf("%w: row %d is out of bounds", gx2.ErrBadArgument, y)
		}
		copy(dst[d:d+rowLength], src[s:s+rowLength])
	}
	return dst, nil
}
