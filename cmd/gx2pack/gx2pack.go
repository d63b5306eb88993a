// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// gx2pack encodes images and DDS files as GX2 (Wii U GPU) texture surfaces.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/nigeltao/gx2/internal/nie"
	"github.com/nigeltao/gx2/lib/gx2"
	"github.com/nigeltao/gx2/lib/gx2/linear"
	"github.com/nigeltao/gx2/lib/importer"
)

var (
	formatFlag    = flag.String("format", "", "destination format for images")
	noMipmapsFlag = flag.Bool("nomipmaps", false, "whether to skip generating mipmaps for images")
	outputFlag    = flag.String("output", "", "output format")
	srgbFlag      = flag.Bool("srgb", false, "whether to use the sRGB variant of the format")
	swizzleFlag   = flag.Int("swizzle", -1, "bank swizzle seed, or -1 for the default")
	tileModeFlag  = flag.Int("tilemode", int(gx2.TileModeLinearAligned), "tile mode")
	verboseFlag   = flag.Bool("v", false, "whether to log every encoded level to stderr")
)

const usageStr = `gx2pack encodes images and DDS files as GX2 texture surfaces.

Usage: gx2pack [flags] [paths]

The paths to the input files are optional. If omitted, stdin is read (as an
image, not a DDS file).

Inputs are BMP, DDS, GIF, JPEG, PNG, TGA, TIFF or WEBP. DDS files keep their
own format. Images are compressed to the -format format, which is either a
name (such as BC3_UNORM) or a GX2 format code (such as 0x33). The default is
BC1_UNORM.

Flags (before the paths):

    -format=name        destination format for images
    -nomipmaps          only encode the base level of images
    -srgb               use the sRGB variant of the format
    -swizzle=n          bank swizzle seed (the default is 4)
    -tilemode=n         tile mode (the default is 1, LINEAR_ALIGNED)
    -v                  log every encoded level to stderr

    -output=info        print each surface's descriptor (this is the default)
    -output=raw         write the surface's image data then its mip data
    -output=nie-bn4     write the normalized base level as NIE
    -output=nie-bn8     write the normalized base level as 16-bit NIE
    -output=dds         write the compressed, untiled levels as DDS

Outputs other than info need exactly one input and are written to stdout.

Only the linear tile modes (0 and 1) are supported.
`

var (
	ErrBadFormatFlag = errors.New("main: bad -format flag")
	ErrBadOutputFlag = errors.New("main: bad -output flag")
)

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	if *verboseFlag {
		gx2.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts, err := importerOptions()
	if err != nil {
		return err
	}

	switch *outputFlag {
	case "", "info":
		// No-op.
	case "dds", "raw", "nie-bn4", "nie-bn8":
		if flag.NArg() > 1 {
			return fmt.Errorf("-output=%s takes at most one filename", *outputFlag)
		}
	default:
		return ErrBadOutputFlag
	}

	jobs, err := readJobs()
	if err != nil {
		return err
	}

	if strings.HasPrefix(*outputFlag, "nie-") {
		return dumpNIE(jobs[0], opts)
	} else if *outputFlag == "dds" {
		src, err := importer.LoadFile(jobs[0].FileName, bytes.NewReader(jobs[0].Data), opts)
		if err != nil {
			return err
		}
		return importer.ExportDDS(os.Stdout, src)
	}

	encodeOpts := &gx2.EncodeOptions{Tiler: linear.Tiler{}}
	results := importer.EncodeBatch(context.Background(), jobs, opts, encodeOpts)

	if *outputFlag == "raw" {
		if results[0].Err != nil {
			return results[0].Err
		}
		return writeRaw(os.Stdout, results[0].Surface)
	}

	numFailed := 0
	for _, r := range results {
		if r.Err != nil {
			numFailed++
			os.Stderr.WriteString(r.Err.Error() + "\n")
			continue
		}
		printInfo(os.Stdout, r.FileName, r.Surface)
	}
	if numFailed > 0 {
		return fmt.Errorf("%d of %d textures failed", numFailed, len(results))
	}
	return nil
}

func importerOptions() (*importer.Options, error) {
	opts := &importer.Options{
		SRGB:      *srgbFlag,
		NoMipmaps: *noMipmapsFlag,
	}

	if s := *formatFlag; s != "" {
		f, err := gx2.ParseFormatName(s)
		if err != nil {
			code, perr := strconv.ParseUint(s, 0, 32)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadFormatFlag, s)
			}
			if f, err = gx2.ParseFormat(uint32(code)); err != nil {
				return nil, err
			}
		}
		opts.Format = f
	}

	if (*tileModeFlag < 0) || (*tileModeFlag > int(gx2.TileModeLinearSpecial)) {
		return nil, fmt.Errorf("main: bad -tilemode flag: %d", *tileModeFlag)
	}
	tm := gx2.TileMode(*tileModeFlag)
	if !tm.IsLinear() {
		return nil, fmt.Errorf("main: bad -tilemode flag: %v is not a linear tile mode", tm)
	}
	opts.TileMode = &tm

	if *swizzleFlag >= 0 {
		swizzle := uint32(*swizzleFlag)
		opts.Swizzle = &swizzle
	}
	return opts, nil
}

func readJobs() ([]importer.Job, error) {
	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []importer.Job{{FileName: "stdin", Data: data}}, nil
	}

	jobs := make([]importer.Job, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, importer.Job{FileName: path, Data: data})
	}
	return jobs, nil
}

func dumpNIE(job importer.Job, opts *importer.Options) error {
	src, err := importer.LoadFile(job.FileName, bytes.NewReader(job.Data), opts)
	if err != nil {
		return err
	}
	if src.Compressed {
		return errors.New("main: -output=nie-* needs an image input, not a DDS file")
	}

	encode := nie.EncodeBN4
	if *outputFlag == "nie-bn8" {
		encode = nie.EncodeBN8
	}
	dst, err := encode(src.Settings.Width, src.Settings.Height, src.Layers[0])
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(dst)
	return err
}

func writeRaw(w io.Writer, surf *gx2.Surface) error {
	if _, err := w.Write(surf.Data); err != nil {
		return err
	}
	_, err := w.Write(surf.MipData)
	return err
}

func printInfo(w io.Writer, fileName string, surf *gx2.Surface) {
	fmt.Fprintf(w, "%s:\n", fileName)
	fmt.Fprintf(w, "  name          %s\n", surf.Name)
	fmt.Fprintf(w, "  dim           %v\n", surf.Dim)
	fmt.Fprintf(w, "  size          %dx%dx%d\n", surf.Width, surf.Height, surf.Depth)
	fmt.Fprintf(w, "  format        %v\n", surf.Format)
	fmt.Fprintf(w, "  aaMode        %v\n", surf.AAMode)
	fmt.Fprintf(w, "  tileMode      %v\n", surf.TileMode)
	fmt.Fprintf(w, "  swizzle       0x%X\n", surf.Swizzle)
	fmt.Fprintf(w, "  alignment     %d\n", surf.Alignment)
	fmt.Fprintf(w, "  pitch         %d\n", surf.Pitch)
	fmt.Fprintf(w, "  bitsPerPixel  %d\n", surf.BitsPerPixel)
	fmt.Fprintf(w, "  numMips       %d\n", surf.NumMips)
	fmt.Fprintf(w, "  numArray      %d\n", surf.NumArray)
	fmt.Fprintf(w, "  imageSize     %d\n", surf.ImageSize)
	fmt.Fprintf(w, "  mipSize       %d\n", surf.MipSize)
	fmt.Fprintf(w, "  mipOffsets    %v\n", surf.MipOffsets)
	fmt.Fprintf(w, "  compSel       %v %v %v %v\n", surf.CompSel[0], surf.CompSel[1], surf.CompSel[2], surf.CompSel[3])
}
