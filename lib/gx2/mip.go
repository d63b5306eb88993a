// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

// TotalMipCount returns how many mip levels below the base level a width×height
// image can be halved into.
//
// Each step halves a running limiting value (the larger dimension) and both
// dimensions independently. Counting stops as soon as either dimension reaches
// zero, so a 256×1 image has no mip levels and a 1×1 image has zero.
func TotalMipCount(width uint32, height uint32) (count uint32) {
	limit := max(width, height)
	for {
		limit >>= 1
		width /= 2
		height /= 2
		if (width == 0) || (height == 0) || (limit == 0) {
			return count
		}
		count++
	}
}

// MipDimension returns n at the given mip level: n shifted right by level,
// clamped to a minimum of 1.
func MipDimension(n uint32, level int) uint32 {
	if level >= 32 {
		return 1
	}
	return max(1, n>>uint(level))
}

// levelSize returns the byte size of one mip level. Block compressed levels
// count 4×4 blocks, so that bytesPerPixel means bytes per block.
func levelSize(width uint32, height uint32, bytesPerPixel uint32, level int, blockCompressed bool) uint32 {
	w := MipDimension(width, level)
	h := MipDimension(height, level)
	if blockCompressed {
		w = (w + 3) >> 2
		h = (h + 3) >> 2
	}
	return w * h * bytesPerPixel
}

// PlanMip returns where mip level level lives inside a flat buffer that holds
// levels 0, 1, 2, etc. back to back: offset is the summed size of the levels
// before it.
//
// Every level's dimensions are derived from the base dimensions by shifting,
// never from the previous level's, so rounding does not accumulate.
func PlanMip(width uint32, height uint32, bytesPerPixel uint32, level int, blockCompressed bool) (offset uint32, size uint32) {
	for sub := 0; sub < level; sub++ {
		offset += levelSize(width, height, bytesPerPixel, sub, blockCompressed)
	}
	return offset, levelSize(width, height, bytesPerPixel, level, blockCompressed)
}
