// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

import (
	"testing"
)

func TestTotalMipCount(tt *testing.T) {
	testCases := []struct {
		width, height uint32
		want          uint32
	}{
		{1, 1, 0},
		{2, 1, 0},
		{2, 2, 1},
		{3, 5, 1},
		{4, 4, 2},
		{64, 64, 6},
		{256, 1, 0},
		{256, 128, 7},
		{256, 256, 8},
		{1024, 512, 9},
		{1000, 1000, 9},
	}

	for _, tc := range testCases {
		if got := TotalMipCount(tc.width, tc.height); got != tc.want {
			tt.Errorf("%dx%d: got %d, want %d", tc.width, tc.height, got, tc.want)
		}
	}
}

func TestTotalMipCountIsMonotonic(tt *testing.T) {
	for h := uint32(1); h <= 130; h++ {
		for w := uint32(1); w <= 130; w++ {
			n := TotalMipCount(w, h)
			if m := TotalMipCount(w+1, h); m < n {
				tt.Fatalf("width %d -> %d, height %d: count fell from %d to %d", w, w+1, h, n, m)
			}
			if m := TotalMipCount(w, h+1); m < n {
				tt.Fatalf("width %d, height %d -> %d: count fell from %d to %d", w, h, h+1, n, m)
			}
		}
	}
}

func TestPlanMip(tt *testing.T) {
	testCases := []struct {
		width, height, bpp uint32
		level              int
		blockCompressed    bool
		wantOffset         uint32
		wantSize           uint32
	}{
		{256, 256, 4, 0, false, 0, 262144},
		{256, 256, 4, 1, false, 262144, 65536},
		{256, 256, 4, 2, false, 327680, 16384},
		{256, 256, 4, 8, false, 349520, 4},
		{5, 3, 2, 1, false, 30, 4},
		{5, 3, 2, 2, false, 34, 2},
		{16, 16, 8, 0, true, 0, 128},
		{16, 16, 8, 1, true, 128, 32},
		{16, 16, 8, 2, true, 160, 8},
		{16, 16, 8, 3, true, 168, 8},
		{16, 16, 8, 4, true, 176, 8},
		{6, 6, 16, 0, true, 0, 64},
		{6, 6, 16, 1, true, 64, 16},
	}

	for _, tc := range testCases {
		gotOffset, gotSize := PlanMip(tc.width, tc.height, tc.bpp, tc.level, tc.blockCompressed)
		if (gotOffset != tc.wantOffset) || (gotSize != tc.wantSize) {
			tt.Errorf("%dx%d bpp=%d level=%d bc=%t: got (%d, %d), want (%d, %d)",
				tc.width, tc.height, tc.bpp, tc.level, tc.blockCompressed,
				gotOffset, gotSize, tc.wantOffset, tc.wantSize)
		}
	}
}

func TestPlanMipIsContiguous(tt *testing.T) {
	for _, bc := range []bool{false, true} {
		next := uint32(0)
		for level := 0; level < 12; level++ {
			offset, size := PlanMip(300, 77, 8, level, bc)
			if offset != next {
				tt.Fatalf("bc=%t level=%d: offset %d, want %d", bc, level, offset, next)
			}
			next = offset + size
		}
	}
}

func TestMipDimension(tt *testing.T) {
	testCases := []struct {
		n     uint32
		level int
		want  uint32
	}{
		{256, 0, 256},
		{256, 3, 32},
		{5, 1, 2},
		{5, 3, 1},
		{5, 40, 1},
	}

	for _, tc := range testCases {
		if got := MipDimension(tc.n, tc.level); got != tc.want {
			tt.Errorf("MipDimension(%d, %d): got %d, want %d", tc.n, tc.level, got, tc.want)
		}
	}
}
