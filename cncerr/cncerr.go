// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package cncerr defines the error taxonomy of spec.md §7 and a minimal
// logging seam so every component reports failures the same way the host
// driver code in the teacher library does: through the standard library log
// package, never by panicking out of interrupt-adjacent code.
package cncerr

import (
	"errors"
	"fmt"
)

// Kind is one of the five error classes spec.md §7 enumerates.
type Kind int

const (
	// ArgError is a nil input or a buffer too small to hold the frame.
	ArgError Kind = iota
	// FrameError is a bad header, tail, type or length.
	FrameError
	// RangeError is a field out of range, a full queue, or a safety rejection.
	RangeError
	// Overflow is a full SPI RX queue or response FIFO.
	Overflow
	// HardwareFault is a DMA error or a peripheral that never came ready.
	HardwareFault
)

func (k Kind) String() string {
	switch k {
	case ArgError:
		return "ArgError"
	case FrameError:
		return "FrameError"
	case RangeError:
		return "RangeError"
	case Overflow:
		return "Overflow"
	case HardwareFault:
		return "HardwareFault"
	default:
		return "Unknown"
	}
}

// Error is a cncerr.Kind carrying a message, satisfying the standard error
// interface and errors.Is against its Kind's sentinel.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// Is makes errors.Is(err, cncerr.ArgErr) etc. work without exposing *Error.
func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.Kind == e.Kind
	}
	return false
}

// New builds an *Error of the given kind.
func New(k Kind, msg string) *Error { return &Error{Kind: k, Msg: msg} }

// Newf builds an *Error of the given kind with a formatted message.
func Newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons, one per kind, with no message: use
// these as the `target` of errors.Is, not as returned errors.
var (
	ArgErr      = &Error{Kind: ArgError}
	FrameErr    = &Error{Kind: FrameError}
	RangeErr    = &Error{Kind: RangeError}
	OverflowErr = &Error{Kind: Overflow}
	HardwareErr = &Error{Kind: HardwareFault}
)

// Logger is the minimal logging seam every component depends on instead of
// the log package directly, so tests can substitute Recorder.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Recorder is a fake Logger that buffers lines in memory, mirroring the role
// conntest.Record/gpiotest.LogPinIO play for the teacher library's hardware
// fakes: something a test can assert against instead of scraping stdout.
type Recorder struct {
	Lines []string
}

// Printf implements Logger.
func (r *Recorder) Printf(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Discard implements Logger by dropping every line, for call sites that must
// pass a Logger but don't want one (matches periph cmd/ tools which log to
// ioutil.Discard in non-verbose mode).
type Discard struct{}

// Printf implements Logger.
func (Discard) Printf(string, ...interface{}) {}
