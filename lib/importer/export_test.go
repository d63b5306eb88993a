// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/nigeltao/gx2/lib/dds"
	"github.com/nigeltao/gx2/lib/gx2"
)

func TestExportDDSRoundTrips(tt *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range m.Pix {
		m.Pix[i] = uint8(i * 3)
	}
	opts := &Options{Format: gx2.FormatBC3UNorm, TileMode: &linearAligned}
	src, err := LoadImage("stone.png", m, opts)
	if err != nil {
		tt.Fatalf("LoadImage: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := ExportDDS(buf, src); err != nil {
		tt.Fatalf("ExportDDS: %v", err)
	}
	reloaded, err := LoadDDS("stone.dds", buf.Bytes(), opts)
	if err != nil {
		tt.Fatalf("LoadDDS: %v", err)
	}

	// 16×16, 8×8, 4×4 and 2×2 pixels in 16 byte blocks.
	if got, want := len(reloaded.Layers[0]), 256+64+16+16; got != want {
		tt.Errorf("payload: got %d bytes, want %d", got, want)
	}
	if s := reloaded.Settings; (s.Format != gx2.FormatBC3UNorm) || (s.MipCount != 4) || (s.ArrayLength != 1) {
		tt.Errorf("got format %v, MipCount %d, ArrayLength %d", s.Format, s.MipCount, s.ArrayLength)
	}

	want, err := Encode(src, linearOptions())
	if err != nil {
		tt.Fatalf("Encode(image): %v", err)
	}
	got, err := Encode(reloaded, linearOptions())
	if err != nil {
		tt.Fatalf("Encode(DDS): %v", err)
	}
	if !bytes.Equal(got.Data, want.Data) || !bytes.Equal(got.MipData, want.MipData) {
		tt.Errorf("surfaces differ")
	}
}

func TestExportDDSCubemap(tt *testing.T) {
	payload := make([]byte, 6*128)
	for i := range payload {
		payload[i] = uint8(i)
	}
	src, err := LoadDDS("sky.dds", ddsBytes(tt, "DXT1", 16, 16, 1, dds.Caps2CubemapAllFaces, payload), nil)
	if err != nil {
		tt.Fatalf("LoadDDS: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := ExportDDS(buf, src); err != nil {
		tt.Fatalf("ExportDDS: %v", err)
	}
	f, err := dds.Decode(buf.Bytes())
	if err != nil {
		tt.Fatalf("dds.Decode: %v", err)
	}
	if !f.IsCubemapAllFaces() || (f.FourCC() != "DXT1") {
		tt.Errorf("got cubemap %t, FourCC %q", f.IsCubemapAllFaces(), f.FourCC())
	}
	if !bytes.Equal(f.Payload, payload) {
		tt.Errorf("payload differs")
	}
}

func TestExportDDSErrors(tt *testing.T) {
	if err := ExportDDS(&bytes.Buffer{}, nil); !errors.Is(err, gx2.ErrBadArgument) {
		tt.Errorf("nil source: got %v, want ErrBadArgument", err)
	}

	src, err := LoadImage("a.png", image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil)
	if err != nil {
		tt.Fatalf("LoadImage: %v", err)
	}
	src.Settings.Format = gx2.FormatBC4SNorm
	if err := ExportDDS(&bytes.Buffer{}, src); !errors.Is(err, gx2.ErrUnsupportedFormat) {
		tt.Errorf("signed format: got %v, want ErrUnsupportedFormat", err)
	}
}
