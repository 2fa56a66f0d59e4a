// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package queue implements the two bounded byte-frame FIFOs spec.md §3
// describes: ResponseFifo (outbound, main-task producer, SPI-round
// consumer) and RxFifo (inbound, DMA-completion producer, main-task
// consumer). Both are fixed-capacity ring buffers of copied frames, guarded
// by a mutex standing in for spec.md §5's disable-interrupts critical
// section.
package queue

import (
	"sync"

	"cncio.dev/x/motioncore/cncerr"
)

// MaxFrameLen is the protocol invariant from spec.md §3: no request or
// response frame exceeds 42 bytes.
const MaxFrameLen = 42

// entry is one queued frame, stored by value to avoid slice aliasing between
// push and pop.
type entry struct {
	buf [MaxFrameLen]byte
	n   int
}

// Fifo is a bounded FIFO of length-prefixed frames, each <= MaxFrameLen
// bytes. It backs both ResponseFifo and RxFifo; spec.md describes them with
// an identical contract (push/pop, Full/None/TooLarge) so one type serves
// both roles under different names.
type Fifo struct {
	mu   sync.Mutex
	buf  []entry
	head int
	tail int
	n    int
}

// New returns a Fifo with the given capacity (spec.md requires >= 8 for
// ResponseFifo; RxFifo's capacity is a config knob).
func New(capacity int) *Fifo {
	if capacity < 1 {
		capacity = 1
	}
	return &Fifo{buf: make([]entry, capacity)}
}

// Push copies frame into the FIFO. Returns cncerr.Overflow if full, or
// cncerr.ArgError if len(frame) exceeds MaxFrameLen.
func (f *Fifo) Push(frame []byte) error {
	if len(frame) > MaxFrameLen {
		return cncerr.New(cncerr.ArgError, "frame exceeds 42 bytes")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.n == len(f.buf) {
		return cncerr.New(cncerr.Overflow, "fifo full")
	}
	e := &f.buf[f.tail]
	e.n = copy(e.buf[:], frame)
	f.tail = (f.tail + 1) % len(f.buf)
	f.n++
	return nil
}

// Pop copies the oldest frame into out and returns its length. Returns
// (0, false, nil) if empty. Returns an ArgError-kind error, leaving the
// entry in place, if out is too small to hold it.
func (f *Fifo) Pop(out []byte) (n int, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.n == 0 {
		return 0, false, nil
	}
	e := &f.buf[f.head]
	if len(out) < e.n {
		return 0, false, cncerr.New(cncerr.ArgError, "pop buffer too small")
	}
	copy(out, e.buf[:e.n])
	f.head = (f.head + 1) % len(f.buf)
	f.n--
	return e.n, true, nil
}

// Len reports the number of queued frames.
func (f *Fifo) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

// Full reports whether the FIFO has no room for another frame — the
// condition spec.md §4.8 step 4 uses to choose the BUSY handshake byte.
func (f *Fifo) Full() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n == len(f.buf)
}

// Clear empties the FIFO, dropping every queued frame.
func (f *Fifo) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.head, f.tail, f.n = 0, 0, 0
}
