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

	"github.com/nigeltao/gx2/lib/gx2"
	"github.com/woozymasta/bcn"
)

// SourceToGX2 maps a DDS payload format to the GX2 format that stores the
// same bytes. srgb selects the sRGB variant where one exists.
func SourceToGX2(f bcn.Format, srgb bool) (gx2.Format, error) {
	g := gx2.FormatInvalid
	switch f {
	case bcn.FormatDXT1:
		g = gx2.FormatBC1UNorm
	case bcn.FormatDXT3:
		g = gx2.FormatBC2UNorm
	case bcn.FormatDXT5:
		g = gx2.FormatBC3UNorm
	case bcn.FormatBC4:
		g = gx2.FormatBC4UNorm
	case bcn.FormatBC5:
		g = gx2.FormatBC5UNorm
	case bcn.FormatRGBA8:
		g = gx2.FormatR8G8B8A8UNorm
	default:
		return gx2.FormatInvalid, fmt.Errorf("%w: source format %v", gx2.ErrUnsupportedFormat, f)
	}
	return g.WithSRGB(srgb), nil
}

// GX2ToSource is the inverse of SourceToGX2. It fails for GX2 formats that
// have no compressor.
func GX2ToSource(f gx2.Format) (bcn.Format, error) {
	if f.IsSigned() {
		return bcn.FormatUnknown, fmt.Errorf("%w: no compressor for signed %v", gx2.ErrUnsupportedFormat, f)
	}
	switch f {
	case gx2.FormatBC1UNorm, gx2.FormatBC1SRGB:
		return bcn.FormatDXT1, nil
	case gx2.FormatBC2UNorm, gx2.FormatBC2SRGB:
		return bcn.FormatDXT3, nil
	case gx2.FormatBC3UNorm, gx2.FormatBC3SRGB:
		return bcn.FormatDXT5, nil
	case gx2.FormatBC4UNorm:
		return bcn.FormatBC4, nil
	case gx2.FormatBC5UNorm:
		return bcn.FormatBC5, nil
	case gx2.FormatR8G8B8A8UNorm, gx2.FormatR8G8B8A8SRGB:
		return bcn.FormatRGBA8, nil
	}
	return bcn.FormatUnknown, fmt.Errorf("%w: no compressor for %v", gx2.ErrUnsupportedFormat, f)
}
