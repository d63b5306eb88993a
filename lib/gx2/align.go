// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

// blockGapReserve is the minimum separation, in bytes, between the end of one
// tiled mip block and the start of the next.
const blockGapReserve = 32

// RoundUp returns the smallest multiple of alignment that is not less than x.
// alignment must be a power of two.
//
// The arithmetic wraps like the hardware's 32-bit registers: RoundUp(0, a) is 0.
func RoundUp(x uint32, alignment uint32) uint32 {
	return ((x - 1) | (alignment - 1)) + 1
}

// AlignBlockGap returns the number of padding bytes to place after dataOffset
// so that the next block starts on an alignment boundary while leaving at
// least blockGapReserve bytes of separation. alignment must be a power of two.
// Zero is treated as 1.
//
// The result is always positive. dataOffset + gap + 32 is a multiple of
// alignment, evaluated without 32-bit wrap.
func AlignBlockGap(dataOffset uint32, alignment uint32) uint32 {
	a := uint64(max(1, alignment))
	start := uint64(dataOffset)
	for next := start; ; next += a {
		end := ((next - 1) | (a - 1)) + 1
		if end > (start + blockGapReserve) {
			return uint32(end - start - blockGapReserve)
		}
	}
}

// validAlignment returns whether a is a non-zero power of two.
func validAlignment(a uint32) bool {
	return (a != 0) && ((a & (a - 1)) == 0)
}
