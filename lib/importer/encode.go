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
	"context"
	"fmt"
	"runtime"

	"github.com/nigeltao/gx2/lib/gx2"
	"golang.org/x/sync/errgroup"
)

// Flatten returns src's bytes as the flat, level after level buffer that
// gx2.EncodeSurface takes, along with the Settings to encode it with.
//
// Compressed sources pass their first layer through. Bitmaps are compressed,
// with a generated mip chain unless mipmaps were turned off, in which case
// the returned Settings ask for a single level.
func (src *Source) Flatten() ([]byte, gx2.Settings, error) {
	s := src.Settings
	if (len(src.Layers) == 0) || (len(src.Layers[0]) == 0) {
		return nil, s, gx2.ErrEmptyImageData
	}

	if src.Compressed {
		return src.Layers[0], s, nil
	}

	if s.GenerateMipmaps {
		flat, err := GenerateMipChain(src.Layers[0], s.Width, s.Height, s.Format, s.AlphaRef, s.MipCount)
		return flat, s, err
	}

	layers, err := CompressAll(src.Layers, s.Width, s.Height, s.Format, s.AlphaRef)
	if err != nil {
		return nil, s, err
	}
	s.MipCount = 1
	return layers[0], s, nil
}

// Encode flattens src and encodes it into a GX2 surface.
//
// Errors are prefixed with the texture's name.
func Encode(src *Source, opts *gx2.EncodeOptions) (*gx2.Surface, error) {
	if src == nil {
		return nil, gx2.ErrBadArgument
	}
	flat, s, err := src.Flatten()
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", s.Name, err)
	}
	surf, err := gx2.EncodeSurface(s, flat, opts)
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", s.Name, err)
	}
	return surf, nil
}

// Job is one texture file for EncodeBatch.
type Job struct {
	// FileName picks the decoder (see LoadFile) and names the texture.
	FileName string
	Data     []byte
}

// Result is the outcome of one Job. Exactly one of Surface and Err is nil.
type Result struct {
	FileName string
	Surface  *gx2.Surface
	Err      error
}

// EncodeBatch loads and encodes every job, running them in parallel.
//
// Jobs are independent: a failing job records its error in its Result and
// the others carry on. Jobs that have not started when ctx is done fail with
// ctx's error. encodeOpts is shared by all jobs, so its Observer (if any)
// must be safe for concurrent use.
func EncodeBatch(ctx context.Context, jobs []Job, opts *Options, encodeOpts *gx2.EncodeOptions) []Result {
	results := make([]Result, len(jobs))

	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = encodeJob(ctx, job, opts, encodeOpts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func encodeJob(ctx context.Context, job Job, opts *Options, encodeOpts *gx2.EncodeOptions) Result {
	r := Result{FileName: job.FileName}
	if err := ctx.Err(); err != nil {
		r.Err = err
		return r
	}

	src, err := LoadFile(job.FileName, bytes.NewReader(job.Data), opts)
	if err != nil {
		r.Err = err
		return r
	}
	r.Surface, r.Err = Encode(src, encodeOpts)
	return r
}
