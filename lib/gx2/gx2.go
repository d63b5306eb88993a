// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package gx2 builds GX2 texture surfaces: the tiled base level, mip chain
// and surface metadata that the Wii U's GPU texture unit reads.
//
// GX2 surfaces are usually wrapped in .gtx (GFX2) or .bfres container files.
// Writing those containers is left to the caller: this package produces the
// Surface value that such a writer serializes.
//
// The hardware address permutation ("swizzle") and the matching surface
// sizing rules are supplied by a Tiler. Package linear provides one for the
// linear tile modes.
package gx2

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadArgument       = errors.New("gx2: bad argument")
	ErrDecodeFailure     = errors.New("gx2: decode failure")
	ErrEmptyImageData    = errors.New("gx2: empty image data")
	ErrShortImageData    = errors.New("gx2: short image data")
	ErrUnsupportedDepth  = errors.New("gx2: unsupported depth")
	ErrUnsupportedFormat = errors.New("gx2: unsupported format")
)

// Format is a GX2 surface format code, as stored in the format field of a
// GX2Surface.
//
// Bits 0x3F select the hardware format. Bit 0x200 marks signed (SNORM) and
// bit 0x400 marks sRGB variants.
type Format uint32

const (
	FormatInvalid = Format(0x000)

	FormatR8UNorm          = Format(0x001)
	FormatR4G4UNorm        = Format(0x002)
	FormatR16UNorm         = Format(0x005)
	FormatR8G8UNorm        = Format(0x007)
	FormatR5G6B5UNorm      = Format(0x008)
	FormatR5G5B5A1UNorm    = Format(0x00A)
	FormatR4G4B4A4UNorm    = Format(0x00B)
	FormatA1B5G5R5UNorm    = Format(0x00C)
	FormatR10G10B10A2UNorm = Format(0x019)
	FormatR8G8B8A8UNorm    = Format(0x01A)
	FormatR8G8B8A8SRGB     = Format(0x41A)

	FormatBC1UNorm = Format(0x031)
	FormatBC1SRGB  = Format(0x431)
	FormatBC2UNorm = Format(0x032)
	FormatBC2SRGB  = Format(0x432)
	FormatBC3UNorm = Format(0x033)
	FormatBC3SRGB  = Format(0x433)
	FormatBC4UNorm = Format(0x034)
	FormatBC4SNorm = Format(0x234)
	FormatBC5UNorm = Format(0x035)
	FormatBC5SNorm = Format(0x235)
)

const (
	formatBitSigned = Format(0x200)
	formatBitSRGB   = Format(0x400)
	formatHWMask    = Format(0x03F)
)

var formatNames = map[Format]string{
	FormatR8UNorm:          "R8_UNORM",
	FormatR4G4UNorm:        "R4_G4_UNORM",
	FormatR16UNorm:         "R16_UNORM",
	FormatR8G8UNorm:        "R8_G8_UNORM",
	FormatR5G6B5UNorm:      "R5_G6_B5_UNORM",
	FormatR5G5B5A1UNorm:    "R5_G5_B5_A1_UNORM",
	FormatR4G4B4A4UNorm:    "R4_G4_B4_A4_UNORM",
	FormatA1B5G5R5UNorm:    "A1_B5_G5_R5_UNORM",
	FormatR10G10B10A2UNorm: "R10_G10_B10_A2_UNORM",
	FormatR8G8B8A8UNorm:    "R8_G8_B8_A8_UNORM",
	FormatR8G8B8A8SRGB:     "R8_G8_B8_A8_SRGB",
	FormatBC1UNorm:         "BC1_UNORM",
	FormatBC1SRGB:          "BC1_SRGB",
	FormatBC2UNorm:         "BC2_UNORM",
	FormatBC2SRGB:          "BC2_SRGB",
	FormatBC3UNorm:         "BC3_UNORM",
	FormatBC3SRGB:          "BC3_SRGB",
	FormatBC4UNorm:         "BC4_UNORM",
	FormatBC4SNorm:         "BC4_SNORM",
	FormatBC5UNorm:         "BC5_UNORM",
	FormatBC5SNorm:         "BC5_SNORM",
}

// ParseFormat returns the Format for a raw GX2 format code. It returns
// ErrUnsupportedFormat for codes that this package does not know.
func ParseFormat(code uint32) (Format, error) {
	f := Format(code)
	if _, ok := formatNames[f]; !ok {
		return FormatInvalid, fmt.Errorf("%w: code 0x%X", ErrUnsupportedFormat, code)
	}
	return f, nil
}

// ParseFormatName returns the Format whose String is name, ignoring case.
func ParseFormatName(name string) (Format, error) {
	for f, s := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return FormatInvalid, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(0x%X)", uint32(f))
}

// Valid returns whether f is one of the named Format constants.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// BitsPerPixel returns the number of bits per element. For block compressed
// formats an element is a 4×4 pixel block. It returns 0 for unknown formats.
func (f Format) BitsPerPixel() uint32 {
	if !f.Valid() {
		return 0
	}
	switch f & formatHWMask {
	case 0x01, 0x02:
		return 8
	case 0x05, 0x07, 0x08, 0x0A, 0x0B, 0x0C:
		return 16
	case 0x19, 0x1A:
		return 32
	case 0x31, 0x34:
		return 64
	case 0x32, 0x33, 0x35:
		return 128
	}
	return 0
}

// IsBlockCompressed returns whether f is one of the BC1 to BC5 formats.
func (f Format) IsBlockCompressed() bool {
	if !f.Valid() {
		return false
	}
	switch f & formatHWMask {
	case 0x31, 0x32, 0x33, 0x34, 0x35:
		return true
	}
	return false
}

// IsSRGB returns whether f stores color in the sRGB color space.
func (f Format) IsSRGB() bool {
	return f.Valid() && (f&formatBitSRGB) != 0
}

// IsSigned returns whether f is an SNORM format.
func (f Format) IsSigned() bool {
	return f.Valid() && (f&formatBitSigned) != 0
}

// WithSRGB returns the sRGB (srgb true) or linear (srgb false) sibling of f.
// Formats without an sRGB sibling are returned unchanged.
func (f Format) WithSRGB(srgb bool) Format {
	g := f &^ formatBitSRGB
	if srgb {
		g |= formatBitSRGB
	}
	if g.Valid() {
		return g
	}
	return f
}

// TileMode is a GX2 surface tile mode.
type TileMode uint32

const (
	TileModeDefault       = TileMode(0x00)
	TileModeLinearAligned = TileMode(0x01)
	TileMode1DTiledThin1  = TileMode(0x02)
	TileMode1DTiledThick  = TileMode(0x03)
	TileMode2DTiledThin1  = TileMode(0x04)
	TileMode2DTiledThin2  = TileMode(0x05)
	TileMode2DTiledThin4  = TileMode(0x06)
	TileMode2DTiledThick  = TileMode(0x07)
	TileMode2BTiledThin1  = TileMode(0x08)
	TileMode2BTiledThin2  = TileMode(0x09)
	TileMode2BTiledThin4  = TileMode(0x0A)
	TileMode2BTiledThick  = TileMode(0x0B)
	TileMode3DTiledThin1  = TileMode(0x0C)
	TileMode3DTiledThick  = TileMode(0x0D)
	TileMode3BTiledThin1  = TileMode(0x0E)
	TileMode3BTiledThick  = TileMode(0x0F)
	TileModeLinearSpecial = TileMode(0x10)
	TileModeLinearGeneral = TileModeDefault

	numTileModes = 0x11
)

var tileModeNames = [numTileModes]string{
	"LINEAR_GENERAL",
	"LINEAR_ALIGNED",
	"1D_TILED_THIN1",
	"1D_TILED_THICK",
	"2D_TILED_THIN1",
	"2D_TILED_THIN2",
	"2D_TILED_THIN4",
	"2D_TILED_THICK",
	"2B_TILED_THIN1",
	"2B_TILED_THIN2",
	"2B_TILED_THIN4",
	"2B_TILED_THICK",
	"3D_TILED_THIN1",
	"3D_TILED_THICK",
	"3B_TILED_THIN1",
	"3B_TILED_THICK",
	"LINEAR_SPECIAL",
}

func (t TileMode) String() string {
	if t < numTileModes {
		return tileModeNames[t]
	}
	return fmt.Sprintf("TileMode(%d)", uint32(t))
}

// IsLinear returns whether t lays rows out without tiling.
func (t TileMode) IsLinear() bool {
	return (t == TileModeLinearGeneral) || (t == TileModeLinearAligned) || (t == TileModeLinearSpecial)
}

// bankSwizzled returns whether t takes the bank/pipe swizzle seed.
func (t TileMode) bankSwizzled() bool {
	switch t {
	case TileModeLinearAligned, TileMode1DTiledThin1, TileMode1DTiledThick, TileModeLinearSpecial:
		return false
	}
	return true
}

// CompSel selects which source channel (or constant) feeds an output channel.
type CompSel uint8

const (
	CompSelR    = CompSel(0)
	CompSelG    = CompSel(1)
	CompSelB    = CompSel(2)
	CompSelA    = CompSel(3)
	CompSelZero = CompSel(4)
	CompSelOne  = CompSel(5)
)

func (c CompSel) String() string {
	switch c {
	case CompSelR:
		return "Red"
	case CompSelG:
		return "Green"
	case CompSelB:
		return "Blue"
	case CompSelA:
		return "Alpha"
	case CompSelZero:
		return "Zero"
	case CompSelOne:
		return "One"
	}
	return fmt.Sprintf("CompSel(%d)", uint8(c))
}

// AAMode is a surface's multisample mode.
type AAMode uint32

const (
	AAMode1X = AAMode(0)
	AAMode2X = AAMode(1)
	AAMode4X = AAMode(2)
	AAMode8X = AAMode(3)
)

func (a AAMode) String() string {
	if a <= AAMode8X {
		return fmt.Sprintf("%dX", 1<<a)
	}
	return fmt.Sprintf("AAMode(%d)", uint32(a))
}

// SurfaceDim is a surface's dimensionality.
type SurfaceDim uint32

const (
	SurfaceDim1D          = SurfaceDim(0)
	SurfaceDim2D          = SurfaceDim(1)
	SurfaceDim3D          = SurfaceDim(2)
	SurfaceDimCube        = SurfaceDim(3)
	SurfaceDim1DArray     = SurfaceDim(4)
	SurfaceDim2DArray     = SurfaceDim(5)
	SurfaceDim2DMSAA      = SurfaceDim(6)
	SurfaceDim2DMSAAArray = SurfaceDim(7)
)

var surfaceDimNames = [...]string{
	"1D", "2D", "3D", "CUBE", "1D_ARRAY", "2D_ARRAY", "2D_MSAA", "2D_MSAA_ARRAY",
}

func (d SurfaceDim) String() string {
	if int(d) < len(surfaceDimNames) {
		return surfaceDimNames[d]
	}
	return fmt.Sprintf("SurfaceDim(%d)", uint32(d))
}
