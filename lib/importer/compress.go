// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"fmt"
	"image"

	"github.com/nigeltao/gx2/lib/gx2"
	"github.com/woozymasta/bcn"
	xdraw "golang.org/x/image/draw"
)

// nrgbaImage wraps width×height NRGBA bytes without copying them.
func nrgbaImage(pix []byte, width uint32, height uint32) (*image.NRGBA, error) {
	if (width == 0) || (height == 0) {
		return nil, gx2.ErrEmptyImageData
	}
	if n := uint64(width) * uint64(height) * 4; uint64(len(pix)) != n {
		return nil, fmt.Errorf("%w: have %d bytes for %dx%d pixels, want %d",
			gx2.ErrShortImageData, len(pix), width, height, n)
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: 4 * int(width),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}, nil
}

// alphaTest returns a copy of m whose alpha is 0x00 below alphaRef and 0xFF
// otherwise, for formats with 1-bit alpha.
func alphaTest(m *image.NRGBA, alphaRef float32) *image.NRGBA {
	threshold := alphaRef * 0xFF
	pix := make([]byte, len(m.Pix))
	copy(pix, m.Pix)
	for i := 3; i < len(pix); i += 4 {
		if float32(pix[i]) < threshold {
			pix[i] = 0x00
		} else {
			pix[i] = 0xFF
		}
	}
	return &image.NRGBA{Pix: pix, Stride: m.Stride, Rect: m.Rect}
}

// compress converts one image to f's bytes. Uncompressed R8G8B8A8 is the
// identity; the block formats are encoded by bcn.
func compress(m *image.NRGBA, f gx2.Format, alphaRef float32) ([]byte, error) {
	bf, err := GX2ToSource(f)
	if err != nil {
		return nil, err
	}

	if bf == bcn.FormatRGBA8 {
		b := m.Bounds()
		ret := make([]byte, 0, 4*b.Dx()*b.Dy())
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			ret = append(ret, m.Pix[i:i+4*b.Dx()]...)
		}
		return ret, nil
	}

	if (bf == bcn.FormatDXT1) && (alphaRef > 0) {
		m = alphaTest(m, alphaRef)
	}
	data, _, _, err := bcn.EncodeImageWithOptions(m, bf, nil)
	if err != nil {
		return nil, fmt.Errorf("importer: compressing %dx%d to %v: %w", m.Rect.Dx(), m.Rect.Dy(), f, err)
	}
	return data, nil
}

// CompressAll compresses every full resolution layer to f.
//
// alphaRef is the alpha test threshold for BC1 and is ignored by the other
// formats. It returns gx2.ErrUnsupportedFormat if f has no compressor.
func CompressAll(layers [][]byte, width uint32, height uint32, f gx2.Format, alphaRef float32) ([][]byte, error) {
	ret := make([][]byte, 0, len(layers))
	for i, layer := range layers {
		m, err := nrgbaImage(layer, width, height)
		if err != nil {
			return nil, fmt.Errorf("importer: layer %d: %w", i, err)
		}
		c, err := compress(m, f, alphaRef)
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// GenerateMipChain compresses layer0 and mipCount successively halved copies
// of it, returning levels 0 to mipCount back to back.
//
// Each level is resized from the previous one to floor(w/2)×floor(h/2),
// clamped to at least 1×1.
func GenerateMipChain(layer0 []byte, width uint32, height uint32, f gx2.Format, alphaRef float32, mipCount uint32) ([]byte, error) {
	m, err := nrgbaImage(layer0, width, height)
	if err != nil {
		return nil, err
	}
	ret, err := compress(m, f, alphaRef)
	if err != nil {
		return nil, err
	}

	for level := uint32(1); level <= mipCount; level++ {
		b := m.Bounds()
		next := image.NewNRGBA(image.Rect(0, 0, max(1, b.Dx()/2), max(1, b.Dy()/2)))
		xdraw.CatmullRom.Scale(next, next.Bounds(), m, b, xdraw.Src, nil)
		m = next

		c, err := compress(m, f, alphaRef)
		if err != nil {
			return nil, fmt.Errorf("importer: mip level %d: %w", level, err)
		}
		ret = append(ret, c...)
	}
	return ret, nil
}
