// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

import (
	"fmt"
	"log/slog"
)

// Settings describe the texture that EncodeSurface builds.
//
// A Settings is a plain value. Loaders produce a fresh one per texture and
// nothing retains it after EncodeSurface returns.
type Settings struct {
	Name   string
	Width  uint32
	Height uint32
	// MipCount is the number of levels to encode, base level included. Zero
	// means one.
	MipCount uint32
	// Depth is always 1: volume textures are not supported.
	Depth uint32
	// ArrayLength is 6 for cubemaps and 1 otherwise.
	ArrayLength uint32
	Format      Format
	TileMode    TileMode
	// Swizzle is the bank swizzle seed, before it is packed into the
	// surface's swizzle field.
	Swizzle uint32
	CompSel [4]CompSel
	Dim     SurfaceDim
	AAMode  AAMode
	// AlphaRef is the alpha test threshold, in [0, 1], used when compressing
	// to formats with 1-bit alpha.
	AlphaRef        float32
	GenerateMipmaps bool
	SRGB            bool
}

// DefaultSettings returns the Settings used for a texture before its source
// is loaded.
func DefaultSettings() Settings {
	return Settings{
		Depth:       1,
		ArrayLength: 1,
		TileMode:    TileMode2DTiledThin1,
		Swizzle:     4,
		CompSel:     [4]CompSel{CompSelR, CompSelG, CompSelB, CompSelA},
		Dim:         SurfaceDim2D,
		AAMode:      AAMode1X,
		AlphaRef:    0.5,
	}
}

// Surface is an encoded GX2 surface: its header fields, its tiled base level
// and its tiled mip chain.
type Surface struct {
	Name     string
	Dim      SurfaceDim
	Width    uint32
	Height   uint32
	Depth    uint32
	NumMips  uint32
	Format   Format
	AAMode   AAMode
	Use      uint32
	TileMode TileMode
	// Swizzle is the packed swizzle field: 0 for tile modes that are not bank
	// swizzled, 0xD0000 | seed<<8 otherwise.
	Swizzle      uint32
	Alignment    uint32
	Pitch        uint32
	BitsPerPixel uint32
	// ImageSize is the tiled size of the base level.
	ImageSize uint32
	// MipSize is the total size of the mip chain, alignment gaps included.
	MipSize uint32
	// MipOffsets has one entry per level from 1 up. The first entry is
	// ImageSize, the others are the offset of that level within MipData.
	MipOffsets []uint32
	NumArray   uint32
	CompSel    [4]CompSel
	// Data is the tiled base level.
	Data []byte
	// MipData is the tiled levels 1 to NumMips-1, back to back.
	MipData []byte
}

// LogValue implements slog.LogValuer.
func (s *Surface) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dim", s.Dim.String()),
		slog.Any("width", s.Width),
		slog.Any("height", s.Height),
		slog.Any("depth", s.Depth),
		slog.Any("numMips", s.NumMips),
		slog.String("format", s.Format.String()),
		slog.String("aa", s.AAMode.String()),
		slog.Any("use", s.Use),
		slog.Any("imageSize", s.ImageSize),
		slog.Any("mipSize", s.MipSize),
		slog.String("tileMode", s.TileMode.String()),
		slog.String("swizzle", fmt.Sprintf("0x%X", s.Swizzle)),
		slog.Any("alignment", s.Alignment),
		slog.Any("pitch", s.Pitch),
		slog.Any("bitsPerPixel", s.BitsPerPixel),
		slog.Any("mipOffsets", s.MipOffsets),
		slog.Any("numArray", s.NumArray),
		slog.String("compSelR", s.CompSel[0].String()),
		slog.String("compSelG", s.CompSel[1].String()),
		slog.String("compSelB", s.CompSel[2].String()),
		slog.String("compSelA", s.CompSel[3].String()),
		slog.Int("dataLength", len(s.Data)),
		slog.Int("mipDataLength", len(s.MipData)),
	)
}

// EncodeOptions are arguments to EncodeSurface.
type EncodeOptions struct {
	// Tiler sizes and swizzles each level. It is required.
	Tiler Tiler

	// Observer receives per-level and per-surface diagnostics. If nil, they
	// are logged to Logger().
	Observer Observer
}

// packSwizzle returns the surface swizzle field for a seed under tile mode tm.
func packSwizzle(tm TileMode, seed uint32) uint32 {
	if !tm.bankSwizzled() {
		return 0
	}
	return 0xD0000 | (seed << 8)
}

// EncodeSurface tiles data, a flat buffer holding s.MipCount levels back to
// back (see PlanMip), into a Surface.
//
// It returns ErrEmptyImageData if data is empty, whatever the other arguments,
// and ErrUnsupportedDepth if the Tiler reports a depth other than 1. No level
// is swizzled in either case. A Tiler that reports a BaseAlign that is not a
// power of two makes it return ErrBadArgument.
func EncodeSurface(s Settings, data []byte, opts *EncodeOptions) (*Surface, error) {
	if (opts == nil) || (opts.Tiler == nil) {
		return nil, fmt.Errorf("%w: nil Tiler", ErrBadArgument)
	}
	tiler := opts.Tiler
	observer := opts.Observer
	if observer == nil {
		observer = logObserver{}
	}

	if len(data) == 0 {
		return nil, ErrEmptyImageData
	}

	bitsPerPixel := s.Format.BitsPerPixel()
	if bitsPerPixel == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, s.Format)
	}
	bpp := bitsPerPixel >> 3

	info, err := tiler.SurfaceInfo(s.Format, s.Width, s.Height, 1, SurfaceDim2D, s.TileMode, AAMode1X, 0)
	if err != nil {
		return nil, err
	}
	imageSize := info.SurfaceSize
	alignment := info.BaseAlign
	pitch := info.Pitch

	if info.Depth != 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, info.Depth)
	}

	swizzle := packSwizzle(s.TileMode, s.Swizzle)
	blockCompressed := s.Format.IsBlockCompressed()
	mipCount := max(1, s.MipCount)

	mipOffsets := []uint32(nil)
	swizzled := make([][]byte, 0, mipCount)
	mipSize := uint32(0)

	for level := 0; level < int(mipCount); level++ {
		offset, size := PlanMip(s.Width, s.Height, bpp, level, blockCompressed)
		if (uint64(offset) + uint64(size)) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: level %d needs bytes [%d, %d), have %d",
				ErrShortImageData, level, offset, uint64(offset)+uint64(size), len(data))
		}

		if level != 0 {
			info, err = tiler.SurfaceInfo(s.Format, s.Width, s.Height, 1, SurfaceDim2D, s.TileMode, AAMode1X, level)
			if err != nil {
				return nil, err
			}
		}
		if !validAlignment(info.BaseAlign) {
			return nil, fmt.Errorf("%w: level %d base alignment %d is not a power of two",
				ErrBadArgument, level, info.BaseAlign)
		}
		if info.SurfaceSize < size {
			return nil, fmt.Errorf("%w: level %d surface size %d is smaller than its %d bytes",
				ErrBadArgument, level, info.SurfaceSize, size)
		}

		padded := make([]byte, info.SurfaceSize)
		copy(padded, data[offset:offset+size])

		gap := RoundUp(mipSize, info.BaseAlign) - mipSize
		if level == 1 {
			mipOffsets = append(mipOffsets, imageSize)
		} else if level > 1 {
			mipOffsets = append(mipOffsets, mipSize+gap)
		}
		if level != 0 {
			mipSize += info.SurfaceSize + gap
		}

		width := MipDimension(s.Width, level)
		height := MipDimension(s.Height, level)
		tiled, err := tiler.Swizzle(width, height, info.Height, s.Format, info.TileMode,
			swizzle, info.Pitch, info.BitsPerPixel, padded)
		if err != nil {
			return nil, fmt.Errorf("gx2: swizzling level %d: %w", level, err)
		}

		out := make([]byte, int(gap)+len(tiled))
		copy(out[gap:], tiled)
		swizzled = append(swizzled, out)

		observer.ObserveLevel(LevelTrace{
			Level:          level,
			Width:          width,
			Height:         height,
			Offset:         offset,
			Size:           size,
			SurfaceSize:    info.SurfaceSize,
			Gap:            gap,
			SwizzledLength: len(out),
		})
	}

	mipDataLength := 0
	for _, level := range swizzled[1:] {
		mipDataLength += len(level)
	}
	mipData := make([]byte, 0, mipDataLength)
	for _, level := range swizzled[1:] {
		mipData = append(mipData, level...)
	}

	surf := &Surface{
		Name:         s.Name,
		Dim:          s.Dim,
		Width:        s.Width,
		Height:       s.Height,
		Depth:        1,
		NumMips:      uint32(len(swizzled)),
		Format:       s.Format,
		AAMode:       s.AAMode,
		Use:          1,
		TileMode:     s.TileMode,
		Swizzle:      swizzle,
		Alignment:    alignment,
		Pitch:        pitch,
		BitsPerPixel: bitsPerPixel,
		ImageSize:    imageSize,
		MipSize:      mipSize,
		MipOffsets:   mipOffsets,
		NumArray:     max(1, s.ArrayLength),
		CompSel:      s.CompSel,
		Data:         swizzled[0],
		MipData:      mipData,
	}
	observer.ObserveSurface(surf, len(data))
	return surf, nil
}
