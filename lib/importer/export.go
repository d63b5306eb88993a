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
	"io"

	"github.com/nigeltao/gx2/lib/dds"
	"github.com/nigeltao/gx2/lib/gx2"
)

// ExportDDS writes src, after compression, as a DDS file: the untiled levels
// that Encode would tile. Compressed sources are written with their whole
// payload, cubemap faces included.
func ExportDDS(w io.Writer, src *Source) error {
	if src == nil {
		return gx2.ErrBadArgument
	}
	flat, s, err := src.Flatten()
	if err != nil {
		return fmt.Errorf("importer: %s: %w", s.Name, err)
	}
	bf, err := GX2ToSource(s.Format)
	if err != nil {
		return fmt.Errorf("importer: %s: %w", s.Name, err)
	}

	mipCount := max(1, s.MipCount)
	if !src.Compressed {
		offset, size := gx2.PlanMip(s.Width, s.Height, s.Format.BitsPerPixel()>>3,
			int(mipCount)-1, s.Format.IsBlockCompressed())
		n := uint64(offset) + uint64(size)
		if n > uint64(len(flat)) {
			return fmt.Errorf("importer: %s: %w", s.Name, gx2.ErrShortImageData)
		}
		flat = flat[:n]
	}

	f, err := dds.NewFile(s.Width, s.Height, mipCount, bf, flat)
	if err != nil {
		return fmt.Errorf("importer: %s: %w", s.Name, err)
	}
	if s.ArrayLength == 6 {
		f.SetCubemapAllFaces()
	}
	return dds.Encode(w, f)
}
