// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dds

import (
	"bytes"
	"errors"
	"testing"

	"github.com/woozymasta/bcn"
)

func encode(tt *testing.T, f *File) []byte {
	buf := &bytes.Buffer{}
	if err := Encode(buf, f); err != nil {
		tt.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func fourCCFile(fourCC string, width uint32, height uint32, mips uint32, caps2 uint32, payload []byte) *File {
	f := &File{Payload: payload}
	f.Header.Width = width
	f.Header.Height = height
	f.Header.MipMapCount = mips
	f.Header.Caps2 = caps2
	f.Header.PixelFormat.Flags = bcn.DDSPFFourCC
	f.Header.PixelFormat.FourCC = MakeFourCC(fourCC)
	return f
}

func TestDecode(tt *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 64*32/2)

	testCases := []struct {
		name    string
		file    *File
		format  bcn.Format
		fourCC  string
		cubemap bool
		mips    uint32
	}{
		{"dxt1", fourCCFile("DXT1", 64, 32, 7, 0, payload), bcn.FormatDXT1, "DXT1", false, 7},
		{"dxt3", fourCCFile("DXT3", 64, 32, 1, 0, payload), bcn.FormatDXT3, "DXT3", false, 1},
		{"dxt5 cubemap", fourCCFile("DXT5", 64, 32, 0, Caps2CubemapAllFaces, payload), bcn.FormatDXT5, "DXT5", true, 1},
		{"ati1", fourCCFile("ATI1", 64, 32, 2, 0x0200, payload), bcn.FormatBC4, "ATI1", false, 2},
		{"ati2", fourCCFile("ATI2", 64, 32, 2, 0, payload), bcn.FormatBC5, "ATI2", false, 2},
		{"etc1", fourCCFile("ETC1", 64, 32, 2, 0, payload), bcn.FormatUnknown, "ETC1", false, 2},
	}

	for _, tc := range testCases {
		f, err := Decode(encode(tt, tc.file))
		if err != nil {
			tt.Errorf("tc=%q: Decode: %v", tc.name, err)
			continue
		}
		if f.Format != tc.format {
			tt.Errorf("tc=%q: Format: got %v, want %v", tc.name, f.Format, tc.format)
		}
		if got := f.FourCC(); got != tc.fourCC {
			tt.Errorf("tc=%q: FourCC: got %q, want %q", tc.name, got, tc.fourCC)
		}
		if got := f.IsCubemapAllFaces(); got != tc.cubemap {
			tt.Errorf("tc=%q: IsCubemapAllFaces: got %t, want %t", tc.name, got, tc.cubemap)
		}
		if got := f.MipCount(); got != tc.mips {
			tt.Errorf("tc=%q: MipCount: got %d, want %d", tc.name, got, tc.mips)
		}
		if (f.Header.Width != 64) || (f.Header.Height != 32) {
			tt.Errorf("tc=%q: got %dx%d, want 64x32", tc.name, f.Header.Width, f.Header.Height)
		}
		if !bytes.Equal(f.Payload, payload) {
			tt.Errorf("tc=%q: Payload differs", tc.name)
		}
	}
}

func TestDecodeDX10(tt *testing.T) {
	f := &File{
		DX10:    &bcn.DDSHeaderDX10{DXGIFormat: 78, ResourceDimension: 3, ArraySize: 1},
		Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
	}
	f.Header.Width = 4
	f.Header.Height = 4

	got, err := Decode(encode(tt, f))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if got.DX10 == nil {
		tt.Fatalf("DX10 header is missing")
	}
	if got.Format != bcn.FormatDXT5 {
		tt.Errorf("Format: got %v, want DXT5", got.Format)
	}
	if !got.IsSRGB() {
		tt.Errorf("IsSRGB: got false, want true")
	}
	if !bytes.Equal(got.Payload, f.Payload) {
		tt.Errorf("Payload differs")
	}
}

func TestDecodeRGBMasks(tt *testing.T) {
	testCases := []struct {
		name       string
		r, g, b, a uint32
		want       bcn.Format
	}{
		{"rgba8", 0x000000FF, 0x0000FF00, 0x00FF0000, 0xFF000000, bcn.FormatRGBA8},
		{"bgra8", 0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000, bcn.FormatBGRA8},
		{"odd", 0x0000F800, 0x000007E0, 0x0000001F, 0, bcn.FormatUnknown},
	}

	for _, tc := range testCases {
		f := &File{Payload: make([]byte, 16)}
		f.Header.Width = 2
		f.Header.Height = 2
		f.Header.PixelFormat = bcn.DDSPixelFormat{
			Flags:       bcn.DDSPFRGB | bcn.DDSPFAlphaPixels,
			RGBBitCount: 32,
			RBitMask:    tc.r,
			GBitMask:    tc.g,
			BBitMask:    tc.b,
			ABitMask:    tc.a,
		}
		got, err := Decode(encode(tt, f))
		if err != nil {
			tt.Errorf("tc=%q: Decode: %v", tc.name, err)
			continue
		}
		if got.Format != tc.want {
			tt.Errorf("tc=%q: got %v, want %v", tc.name, got.Format, tc.want)
		}
		if got.FourCC() != "" {
			tt.Errorf("tc=%q: FourCC: got %q, want empty", tc.name, got.FourCC())
		}
	}
}

func TestDecodeErrors(tt *testing.T) {
	valid := encode(tt, fourCCFile("DXT1", 4, 4, 1, 0, make([]byte, 8)))

	badSize := append([]byte(nil), valid...)
	badSize[4] = 100

	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotADDSFile},
		{"magic", []byte("PKM 10\x00\x00"), ErrNotADDSFile},
		{"header size", badSize, ErrNotADDSFile},
		{"truncated", valid[:60], ErrTruncated},
	}

	for _, tc := range testCases {
		if _, err := Decode(tc.data); !errors.Is(err, tc.want) {
			tt.Errorf("tc=%q: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewFile(tt *testing.T) {
	testCases := []struct {
		format   bcn.Format
		mipCount uint32
		fourCC   string
	}{
		{bcn.FormatDXT1, 1, "DXT1"},
		{bcn.FormatDXT3, 3, "DXT3"},
		{bcn.FormatDXT5, 5, "DXT5"},
		{bcn.FormatBC4, 2, "ATI1"},
		{bcn.FormatBC5, 2, "ATI2"},
		{bcn.FormatRGBA8, 4, ""},
		{bcn.FormatBGRA8, 0, ""},
	}

	payload := make([]byte, 32)
	for _, tc := range testCases {
		f, err := NewFile(8, 4, tc.mipCount, tc.format, payload)
		if err != nil {
			tt.Errorf("format=%v: NewFile: %v", tc.format, err)
			continue
		}
		got, err := Decode(encode(tt, f))
		if err != nil {
			tt.Errorf("format=%v: Decode: %v", tc.format, err)
			continue
		}
		if got.Format != tc.format {
			tt.Errorf("format=%v: got format %v", tc.format, got.Format)
		}
		if got.FourCC() != tc.fourCC {
			tt.Errorf("format=%v: FourCC: got %q, want %q", tc.format, got.FourCC(), tc.fourCC)
		}
		if want := max(1, tc.mipCount); got.MipCount() != want {
			tt.Errorf("format=%v: MipCount: got %d, want %d", tc.format, got.MipCount(), want)
		}
		if hasMips := (got.Header.Caps & bcn.DDSCapsMipmap) != 0; hasMips != (tc.mipCount > 1) {
			tt.Errorf("format=%v: mipmap caps: got %t", tc.format, hasMips)
		}
		if (got.Header.Width != 8) || (got.Header.Height != 4) || got.IsCubemapAllFaces() {
			tt.Errorf("format=%v: got %dx%d, cubemap %t", tc.format, got.Header.Width, got.Header.Height, got.IsCubemapAllFaces())
		}
	}

	if _, err := NewFile(8, 4, 1, bcn.FormatUnknown, payload); !errors.Is(err, ErrBadArgument) {
		tt.Errorf("unknown format: got %v, want ErrBadArgument", err)
	}
}

func TestSetCubemapAllFaces(tt *testing.T) {
	f, err := NewFile(4, 4, 1, bcn.FormatDXT1, make([]byte, 6*8))
	if err != nil {
		tt.Fatalf("NewFile: %v", err)
	}
	f.SetCubemapAllFaces()

	got, err := Decode(encode(tt, f))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if !got.IsCubemapAllFaces() {
		tt.Errorf("IsCubemapAllFaces: got false, want true")
	}
	if (got.Header.Caps & bcn.DDSCapsComplex) == 0 {
		tt.Errorf("complex caps bit is not set")
	}
}

func TestEncodeNilFile(tt *testing.T) {
	if err := Encode(&bytes.Buffer{}, nil); !errors.Is(err, ErrBadArgument) {
		tt.Errorf("got %v, want ErrBadArgument", err)
	}
}
