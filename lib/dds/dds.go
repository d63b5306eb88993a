// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dds reads and writes the header and payload of DDS (DirectDraw
// Surface) files.
//
// Only the container is handled: the payload is returned as stored, still
// block compressed, so that it can be passed on without recompression. The
// header structures and their I/O come from package bcn.
package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/woozymasta/bcn"
)

// Magic is the byte string prefix of every DDS file.
const Magic = "DDS "

// Caps2CubemapAllFaces is the Caps2 value of a cubemap that stores all six
// faces.
const Caps2CubemapAllFaces = 0xFE00

var (
	ErrBadArgument = errors.New("dds: bad argument")
	ErrNotADDSFile = errors.New("dds: not a DDS file")
	ErrTruncated   = errors.New("dds: truncated file")
)

// File is a decoded DDS file.
type File struct {
	Header bcn.DDSHeader
	// DX10 is nil unless the file has a DX10 extended header.
	DX10 *bcn.DDSHeaderDX10
	// Format is the payload's format, or bcn.FormatUnknown.
	Format bcn.Format
	// Payload is every byte after the headers: all mip levels of all faces.
	Payload []byte
}

// NewFile returns a File for a width×height payload of mipCount levels in
// format f. The header's flags, caps and pixel format are filled in.
func NewFile(width uint32, height uint32, mipCount uint32, f bcn.Format, payload []byte) (*File, error) {
	mipCount = max(1, mipCount)
	h := bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipCount,
		Caps:        bcn.DDSCapsTexture,
	}
	h.PixelFormat.Size = bcn.DDSPixelFormatSize
	if mipCount > 1 {
		h.Flags |= bcn.DDSFlagMipmapCount
		h.Caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	fourCC := ""
	switch f {
	case bcn.FormatDXT1:
		fourCC = "DXT1"
	case bcn.FormatDXT3:
		fourCC = "DXT3"
	case bcn.FormatDXT5:
		fourCC = "DXT5"
	case bcn.FormatBC4:
		fourCC = "ATI1"
	case bcn.FormatBC5:
		fourCC = "ATI2"
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		h.Flags |= bcn.DDSFlagPitch
		h.PitchOrLinearSize = 4 * width
		h.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		h.PixelFormat.RGBBitCount = 32
		h.PixelFormat.GBitMask = 0x0000FF00
		h.PixelFormat.ABitMask = 0xFF000000
		h.PixelFormat.RBitMask, h.PixelFormat.BBitMask = 0x000000FF, 0x00FF0000
		if f == bcn.FormatBGRA8 {
			h.PixelFormat.RBitMask, h.PixelFormat.BBitMask = 0x00FF0000, 0x000000FF
		}
	default:
		return nil, fmt.Errorf("%w: format %v", ErrBadArgument, f)
	}
	if fourCC != "" {
		h.Flags |= bcn.DDSFlagLinearSize
		h.PixelFormat.Flags = bcn.DDSPFFourCC
		h.PixelFormat.FourCC = MakeFourCC(fourCC)
	}

	return &File{Header: h, Format: f, Payload: payload}, nil
}

// IsCubemapAllFaces returns whether the file is a cubemap holding all six
// faces.
func (f *File) IsCubemapAllFaces() bool {
	return f.Header.Caps2 == Caps2CubemapAllFaces
}

// SetCubemapAllFaces marks f as a cubemap holding all six faces.
func (f *File) SetCubemapAllFaces() {
	f.Header.Caps2 = Caps2CubemapAllFaces
	f.Header.Caps |= bcn.DDSCapsComplex
}

// MipCount returns the number of mip levels, base level included. Files that
// do not set the count have one level.
func (f *File) MipCount() uint32 {
	return max(1, f.Header.MipMapCount)
}

// FourCC returns the pixel format's four character code, or "" if the pixel
// format does not use one.
func (f *File) FourCC() string {
	if (f.Header.PixelFormat.Flags & bcn.DDSPFFourCC) == 0 {
		return ""
	}
	return fourCCString(f.Header.PixelFormat.FourCC)
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v >> 0), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// MakeFourCC packs a four character code such as "DXT1" into a uint32.
func MakeFourCC(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

// Decode parses a DDS file held in data. The returned Payload aliases data.
func Decode(data []byte) (*File, error) {
	if (len(data) < len(Magic)) || (string(data[:len(Magic)]) != Magic) {
		return nil, ErrNotADDSFile
	}

	r := bytes.NewReader(data)
	h, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, readError(err)
	}
	dx10, err := bcn.ReadDDSHeaderDX10(r, h)
	if err != nil {
		return nil, readError(err)
	}

	return &File{
		Header:  *h,
		DX10:    dx10,
		Format:  detectFormat(h, dx10),
		Payload: data[len(data)-r.Len():],
	}, nil
}

func readError(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrTruncated
	case errors.Is(err, bcn.ErrInvalidDDSMagic),
		errors.Is(err, bcn.ErrInvalidDDSHeaderSize),
		errors.Is(err, bcn.ErrInvalidDDSPixelFormatSize):
		return fmt.Errorf("%w: %v", ErrNotADDSFile, err)
	}
	return err
}

func detectFormat(h *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) bcn.Format {
	if dx10 != nil {
		return dxgiFormat(dx10.DXGIFormat)
	}

	pf := &h.PixelFormat
	if (pf.Flags & bcn.DDSPFFourCC) != 0 {
		switch fourCCString(pf.FourCC) {
		case "DXT1":
			return bcn.FormatDXT1
		case "DXT2", "DXT3":
			return bcn.FormatDXT3
		case "DXT4", "DXT5":
			return bcn.FormatDXT5
		case "ATI1", "BC4U":
			return bcn.FormatBC4
		case "ATI2", "BC5U":
			return bcn.FormatBC5
		}
		return bcn.FormatUnknown
	}

	if ((pf.Flags & bcn.DDSPFRGB) != 0) && ((pf.Flags & bcn.DDSPFAlphaPixels) != 0) && (pf.RGBBitCount == 32) {
		switch {
		case (pf.RBitMask == 0x000000FF) && (pf.GBitMask == 0x0000FF00) &&
			(pf.BBitMask == 0x00FF0000) && (pf.ABitMask == 0xFF000000):
			return bcn.FormatRGBA8
		case (pf.RBitMask == 0x00FF0000) && (pf.GBitMask == 0x0000FF00) &&
			(pf.BBitMask == 0x000000FF) && (pf.ABitMask == 0xFF000000):
			return bcn.FormatBGRA8
		}
	}
	return bcn.FormatUnknown
}

func dxgiFormat(code uint32) bcn.Format {
	switch code {
	case 71, 72: // DXGI_FORMAT_BC1_UNORM{,_SRGB}
		return bcn.FormatDXT1
	case 74, 75: // DXGI_FORMAT_BC2_UNORM{,_SRGB}
		return bcn.FormatDXT3
	case 77, 78: // DXGI_FORMAT_BC3_UNORM{,_SRGB}
		return bcn.FormatDXT5
	case 80: // DXGI_FORMAT_BC4_UNORM
		return bcn.FormatBC4
	case 83: // DXGI_FORMAT_BC5_UNORM
		return bcn.FormatBC5
	case 87: // DXGI_FORMAT_B8G8R8A8_UNORM
		return bcn.FormatBGRA8
	case 28, 29: // DXGI_FORMAT_R8G8B8A8_UNORM{,_SRGB}
		return bcn.FormatRGBA8
	}
	return bcn.FormatUnknown
}

// IsSRGB returns whether a DX10 header names an sRGB DXGI format.
func (f *File) IsSRGB() bool {
	if f.DX10 == nil {
		return false
	}
	switch f.DX10.DXGIFormat {
	case 29, 72, 75, 78:
		return true
	}
	return false
}

// Encode writes f to w: the magic bytes, the header (its Size fields are
// filled in), the DX10 header if present and the payload.
func Encode(w io.Writer, f *File) error {
	if f == nil {
		return fmt.Errorf("%w: nil File", ErrBadArgument)
	}
	h := f.Header
	h.Size = bcn.DDSHeaderSize
	h.PixelFormat.Size = bcn.DDSPixelFormatSize
	if f.DX10 != nil {
		h.PixelFormat.Flags |= bcn.DDSPFFourCC
		h.PixelFormat.FourCC = bcn.DDSFourCCDX10
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return err
	}
	if err := bcn.WriteDDSHeader(w, &h); err != nil {
		return err
	}
	if f.DX10 != nil {
		// bcn reads the DX10 header but has no writer for it.
		if err := binary.Write(w, binary.LittleEndian, f.DX10); err != nil {
			return err
		}
	}
	_, err := w.Write(f.Payload)
	return err
}
