// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"errors"
	"testing"

	"github.com/nigeltao/gx2/lib/gx2"
	"github.com/woozymasta/bcn"
)

func TestSourceToGX2(tt *testing.T) {
	testCases := []struct {
		src  bcn.Format
		srgb bool
		want gx2.Format
	}{
		{bcn.FormatDXT1, false, gx2.FormatBC1UNorm},
		{bcn.FormatDXT1, true, gx2.FormatBC1SRGB},
		{bcn.FormatDXT3, false, gx2.FormatBC2UNorm},
		{bcn.FormatDXT3, true, gx2.FormatBC2SRGB},
		{bcn.FormatDXT5, false, gx2.FormatBC3UNorm},
		{bcn.FormatDXT5, true, gx2.FormatBC3SRGB},
		{bcn.FormatBC4, false, gx2.FormatBC4UNorm},
		{bcn.FormatBC4, true, gx2.FormatBC4UNorm},
		{bcn.FormatBC5, false, gx2.FormatBC5UNorm},
		{bcn.FormatRGBA8, false, gx2.FormatR8G8B8A8UNorm},
		{bcn.FormatRGBA8, true, gx2.FormatR8G8B8A8SRGB},
	}

	for _, tc := range testCases {
		got, err := SourceToGX2(tc.src, tc.srgb)
		if err != nil {
			tt.Errorf("src=%v, srgb=%t: %v", tc.src, tc.srgb, err)
		} else if got != tc.want {
			tt.Errorf("src=%v, srgb=%t: got %v, want %v", tc.src, tc.srgb, got, tc.want)
		}
	}

	for _, f := range []bcn.Format{bcn.FormatUnknown, bcn.FormatBGRA8} {
		if _, err := SourceToGX2(f, false); !errors.Is(err, gx2.ErrUnsupportedFormat) {
			tt.Errorf("src=%v: got %v, want ErrUnsupportedFormat", f, err)
		}
	}
}

func TestGX2ToSourceRoundTrips(tt *testing.T) {
	for _, f := range []gx2.Format{
		gx2.FormatBC1UNorm, gx2.FormatBC1SRGB,
		gx2.FormatBC2UNorm, gx2.FormatBC2SRGB,
		gx2.FormatBC3UNorm, gx2.FormatBC3SRGB,
		gx2.FormatBC4UNorm, gx2.FormatBC5UNorm,
		gx2.FormatR8G8B8A8UNorm, gx2.FormatR8G8B8A8SRGB,
	} {
		src, err := GX2ToSource(f)
		if err != nil {
			tt.Errorf("f=%v: GX2ToSource: %v", f, err)
			continue
		}
		g, err := SourceToGX2(src, f.IsSRGB())
		if err != nil {
			tt.Errorf("f=%v: SourceToGX2: %v", f, err)
		} else if g != f {
			tt.Errorf("f=%v: round trip: got %v", f, g)
		}
	}
}

func TestGX2ToSourceRejectsFormatsWithoutCompressor(tt *testing.T) {
	for _, f := range []gx2.Format{
		gx2.FormatInvalid,
		gx2.FormatBC4SNorm,
		gx2.FormatBC5SNorm,
		gx2.FormatR5G6B5UNorm,
		gx2.FormatR8UNorm,
		gx2.Format(0x999),
	} {
		if _, err := GX2ToSource(f); !errors.Is(err, gx2.ErrUnsupportedFormat) {
			tt.Errorf("f=%v: got %v, want ErrUnsupportedFormat", f, err)
		}
	}
}
