// Copyright 2025 The Gx2 Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package gx2

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger that receives surface diagnostics when an
// EncodeSurface call has no Observer of its own. By default nothing is
// logged. Passing nil restores that default.
//
// Diagnostics are logged at slog.LevelDebug.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LevelTrace describes one processed mip level.
type LevelTrace struct {
	Level int
	// Width and Height are the level's pixel dimensions.
	Width  uint32
	Height uint32
	// Offset and Size locate the level's window in the flat input buffer.
	Offset uint32
	Size   uint32
	// SurfaceSize is the padded size reported by the Tiler.
	SurfaceSize uint32
	// Gap is the number of alignment bytes placed before the level.
	Gap uint32
	// SwizzledLength is the length of the level's output, gap included.
	SwizzledLength int
}

// LogValue implements slog.LogValuer.
func (t LevelTrace) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("level", t.Level),
		slog.Any("width", t.Width),
		slog.Any("height", t.Height),
		slog.Any("offset", t.Offset),
		slog.Any("size", t.Size),
		slog.Any("surfaceSize", t.SurfaceSize),
		slog.Any("gap", t.Gap),
		slog.Int("swizzledLength", t.SwizzledLength),
	)
}

// Observer receives diagnostics from EncodeSurface. They exist to debug
// hardware addressing mismatches and never affect the produced Surface.
type Observer interface {
	ObserveLevel(t LevelTrace)
	ObserveSurface(s *Surface, inputLength int)
}

// logObserver forwards diagnostics to Logger().
type logObserver struct{}

func (logObserver) ObserveLevel(t LevelTrace) {
	Logger().Debug("gx2: swizzled level", slog.Any("trace", t))
}

func (logObserver) ObserveSurface(s *Surface, inputLength int) {
	Logger().Debug("gx2: surface",
		slog.String("name", s.Name),
		slog.Any("surface", s),
		slog.Int("realSize", inputLength),
	)
}
