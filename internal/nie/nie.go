// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package nie implements the NIE (Naive) image file format.
//
// It is an incomplete implementation (and hence an internal package), only
// providing what's needed by the github.com/nigeltao/gx2 module: dumping a
// normalized R, G, B, A layer buffer so that it can be inspected with other
// tools.
//
// NIE is specified at
// https://github.com/google/wuffs/blob/main/doc/spec/nie-spec.md
package nie

import (
	"errors"
)

var (
	ErrBadArgument = errors.New("nie: bad argument")
)

// EncodeBN4 encodes a width×height layer buffer, 4 bytes per pixel in R, G,
// B, A order, as a NIE file in BGRA order, non-premultiplied alpha, 4 bytes
// per pixel (8 bits per channel).
func EncodeBN4(width uint32, height uint32, rgba []byte) (ret []byte, retErr error) {
	if err := checkLength(width, height, rgba); err != nil {
		return nil, err
	}
	ret = make([]byte, 0, 16+len(rgba))
	ret = appendHeader(ret, '4', width, height)
	for i := 0; i < len(rgba); i += 4 {
		ret = append(ret, rgba[i+2], rgba[i+1], rgba[i+0], rgba[i+3])
	}
	return ret, nil
}

// EncodeBN8 is like EncodeBN4 but writes 8 bytes per pixel (16 bits per
// channel), replicating each 8 bit value into both bytes.
func EncodeBN8(width uint32, height uint32, rgba []byte) (ret []byte, retErr error) {
	if err := checkLength(width, height, rgba); err != nil {
		return nil, err
	}
	ret = make([]byte, 0, 16+2*len(rgba))
	ret = appendHeader(ret, '8', width, height)
	for i := 0; i < len(rgba); i += 4 {
		r, g, b, a := rgba[i+0], rgba[i+1], rgba[i+2], rgba[i+3]
		ret = append(ret,
			b, b,
			g, g,
			r, r,
			a, a,
		)
	}
	return ret, nil
}

func checkLength(width uint32, height uint32, rgba []byte) error {
	if (width > 0x7FFFFFFF) || (height > 0x7FFFFFFF) ||
		((uint64(width) * uint64(height) * 4) != uint64(len(rgba))) {
		return ErrBadArgument
	}
	return nil
}

func appendHeader(b []byte, depth byte, width uint32, height uint32) []byte {
	b = append(b, 0x6E, 0xC3, 0xAF, 0x45, 0xFF, 'b', 'n', depth)
	b = appendU32LE(b, width)
	return appendU32LE(b, height)
}

func appendU32LE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>0),
		uint8(u>>8),
		uint8(u>>16),
		uint8(u>>24),
	)
}
