// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/nigeltao/gx2/lib/dds"
	"github.com/nigeltao/gx2/lib/gx2"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps lower case file extensions to bitmap decoders.
//
// The decoders are called directly rather than through image.Decode: the tga
// package registers itself with an empty magic string, which would claim
// every input.
var decoders = map[string]decodeFunc{
	".bmp":  bmp.Decode,
	".gif":  gif.Decode,
	".jpeg": jpeg.Decode,
	".jpg":  jpeg.Decode,
	".png":  png.Decode,
	".tga":  tga.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
}

// magics identifies bitmaps whose file name has no known extension. A '?'
// matches any byte. Targa files have no magic and are the fallback.
var magics = []struct {
	magic  string
	decode decodeFunc
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
	{"RIFF????WEBP", webp.Decode},
}

func matchMagic(magic string, b []byte) bool {
	if len(magic) > len(b) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if (magic[i] != '?') && (magic[i] != b[i]) {
			return false
		}
	}
	return true
}

// sniff picks a decoder from r's first bytes. It returns a reader that still
// yields those bytes.
func sniff(r io.Reader) (decodeFunc, io.Reader) {
	br := bufio.NewReader(r)
	b, _ := br.Peek(12)
	for _, m := range magics {
		if matchMagic(m.magic, b) {
			return m.decode, br
		}
	}
	return tga.Decode, br
}

// LoadDDS loads a DDS file. Its payload is kept as is, as a single layer.
//
// The format comes from the file. It returns gx2.ErrUnsupportedFormat when
// GX2 has no equivalent.
func LoadDDS(fileName string, data []byte, opts *Options) (*Source, error) {
	f, err := dds.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", gx2.ErrDecodeFailure, fileName, err)
	}

	s := newSettings(fileName, opts)
	s.Width = f.Header.Width
	s.Height = f.Header.Height
	s.MipCount = f.MipCount()
	s.ArrayLength = 1
	if f.IsCubemapAllFaces() {
		s.ArrayLength = 6
		s.Dim = gx2.SurfaceDimCube
	}

	s.Format, err = SourceToGX2(f.Format, s.SRGB || f.IsSRGB())
	if err != nil {
		return nil, err
	}
	if len(f.Payload) == 0 {
		return nil, gx2.ErrEmptyImageData
	}

	return &Source{
		Settings:   s,
		Layers:     [][]byte{f.Payload},
		Compressed: true,
	}, nil
}

// LoadImage loads a decoded bitmap. Its pixels are converted to
// non-premultiplied R, G, B, A byte order, the order GX2 formats expect.
//
// Unless opts.NoMipmaps is set, the Source asks for gx2.TotalMipCount levels.
func LoadImage(fileName string, m image.Image, opts *Options) (*Source, error) {
	if m == nil {
		return nil, gx2.ErrBadArgument
	}
	b := m.Bounds()
	if b.Empty() {
		return nil, gx2.ErrEmptyImageData
	}

	s := newSettings(fileName, opts)
	s.Format = DefaultFormat
	if (opts != nil) && (opts.Format != 0) {
		s.Format = opts.Format
	}
	s.Format = s.Format.WithSRGB(s.SRGB)
	if _, err := GX2ToSource(s.Format); err != nil {
		return nil, err
	}

	pixels := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(pixels, pixels.Bounds(), m, b.Min, xdraw.Src)
	if len(pixels.Pix) == 0 {
		return nil, gx2.ErrEmptyImageData
	}

	s.Width = uint32(b.Dx())
	s.Height = uint32(b.Dy())
	s.MipCount = gx2.TotalMipCount(s.Width, s.Height)
	s.GenerateMipmaps = (opts == nil) || !opts.NoMipmaps

	return &Source{
		Settings: s,
		Layers:   [][]byte{pixels.Pix},
	}, nil
}

// LoadFile reads a texture from r, choosing the decoder by fileName's
// extension: ".dds" files are loaded by LoadDDS and ".bmp", ".gif", ".jpeg",
// ".jpg", ".png", ".tga", ".tif", ".tiff" and ".webp" files by that format's
// decoder. Other names are decoded by sniffing r's first bytes.
//
// Decoder failures are reported as gx2.ErrDecodeFailure.
func LoadFile(fileName string, r io.Reader, opts *Options) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".dds" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return LoadDDS(fileName, data, opts)
	}

	decode, ok := decoders[ext]
	if !ok {
		decode, r = sniff(r)
	}
	m, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", gx2.ErrDecodeFailure, fileName, err)
	}
	return LoadImage(fileName, m, opts)
}
