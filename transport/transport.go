// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package transport implements SpiTransport, spec.md §4.8: the 42-byte
// full-duplex DMA round, request-window extraction, handshake byte
// selection, and response TX priming.
package transport

import (
	"sync"

	"cncio.dev/x/motioncore/cncerr"
	"cncio.dev/x/motioncore/hal"
	"cncio.dev/x/motioncore/protocol"
	"cncio.dev/x/motioncore/queue"
)

// FrameLen is the fixed DMA round size, spec.md §6.
const FrameLen = protocol.MaxFrameLen

// Transport is SpiTransport.
type Transport struct {
	mu sync.Mutex

	rxQueue    *queue.Fifo
	peripheral hal.SPIPeripheral

	needRestart   bool
	forceBusyNext bool

	tx [FrameLen]byte
}

// New returns a Transport feeding extracted request frames into rxQueue and
// arming rounds on peripheral.
func New(rxQueue *queue.Fifo, peripheral hal.SPIPeripheral) *Transport {
	return &Transport{rxQueue: rxQueue, peripheral: peripheral}
}

// Overflow reasons, spec.md §4.8 step 3.
const (
	OverflowNone         = ""
	OverflowQueueFull    = "QUEUE_FULL"
	OverflowInvalidFrame = "INVALID_FRAME"
)

// OnRoundComplete processes one just-completed 42-byte RX buffer: it scans
// for a request window, pushes a found frame into rxQueue, and reports the
// overflow reason (if any) so the caller can log it. An all-poll-byte RX
// (every byte equal to the primary or alternate poll byte) carries no
// request and is not an error.
func (t *Transport) OnRoundComplete(rx []byte) (reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(rx) != FrameLen {
		return OverflowInvalidFrame
	}
	if isAllPollBytes(rx) {
		t.forceBusyNext = false
		return OverflowNone
	}

	headerAt := -1
	for i, b := range rx {
		if b == protocol.ReqHeader {
			headerAt = i
			break
		}
	}
	if headerAt == -1 {
		t.forceBusyNext = false
		return OverflowNone
	}

	tailAt := -1
	for i := headerAt; i < len(rx); i++ {
		if rx[i] == protocol.ReqTail {
			tailAt = i
			break
		}
	}
	if tailAt == -1 || tailAt-headerAt+1 > FrameLen {
		t.forceBusyNext = true
		return OverflowInvalidFrame
	}

	frame := rx[headerAt : tailAt+1]
	if err := t.rxQueue.Push(frame); err != nil {
		t.forceBusyNext = true
		return OverflowQueueFull
	}
	t.forceBusyNext = false
	return OverflowNone
}

func isAllPollBytes(rx []byte) bool {
	if len(rx) == 0 {
		return false
	}
	first := rx[0]
	if first != protocol.PollPrimary && first != protocol.PollAlternate {
		return false
	}
	for _, b := range rx {
		if b != first {
			return false
		}
	}
	return true
}

// NextHandshake chooses the handshake status byte for the next round,
// spec.md §4.8 step 4: BUSY if rxQueue is full or the last round's RX
// handling produced an overflow, READY otherwise.
func (t *Transport) NextHandshake() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.forceBusyNext || t.rxQueue.Full() {
		return protocol.HandshakeBusy
	}
	return protocol.HandshakeReady
}

// PrimeNext builds the next TX buffer and arms the peripheral for another
// round. pendingResp is the response frame (if any) drained from
// ResponseFifo by the main poll; nil/empty means no response is pending.
// Uses TX layout policy B (right-aligned, zero-padded) per spec.md §6 and
// §9: the payload occupies the last len(pendingResp) bytes of the 42-byte
// buffer, all preceding bytes are zero, so the host never observes a
// status byte ahead of a response header.
func (t *Transport) PrimeNext(pendingResp []byte) error {
	t.mu.Lock()
	status := byte(protocol.HandshakeReady)
	if t.forceBusyNext || t.rxQueue.Full() {
		status = protocol.HandshakeBusy
	}

	for i := range t.tx {
		t.tx[i] = 0
	}
	if len(pendingResp) > 0 {
		if len(pendingResp) > FrameLen {
			t.mu.Unlock()
			return cncerr.New(cncerr.ArgError, "response frame exceeds 42 bytes")
		}
		copy(t.tx[FrameLen-len(pendingResp):], pendingResp)
	} else {
		for i := range t.tx {
			t.tx[i] = status
		}
	}
	buf := t.tx
	t.mu.Unlock()

	if err := t.peripheral.Prime(buf[:]); err != nil {
		t.mu.Lock()
		t.needRestart = true
		t.mu.Unlock()
		return cncerr.New(cncerr.HardwareFault, "peripheral not ready")
	}
	t.mu.Lock()
	t.needRestart = false
	t.mu.Unlock()
	return nil
}

// NeedRestart reports whether the last PrimeNext call failed to arm the
// peripheral and must be retried by the main poll.
func (t *Transport) NeedRestart() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.needRestart
}
