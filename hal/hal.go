// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hal defines the boundary contracts between the motion core and the
// hardware it does not own: GPIO pins, the quadrature encoder counters, and
// the SPI DMA peripheral. Spec.md §1 places "the hardware-abstraction layer
// that toggles GPIO and reads timer/counter registers" and "board bring-up"
// out of scope for the core; this package is the seam — modelled on periph's
// conn/gpio.PinIO and conn.Conn, which play exactly this role for that
// library's device drivers. No implementation here touches real registers;
// cmd/motiond supplies software simulations that satisfy these interfaces.
package hal

import (
	"errors"
	"time"
)

// ErrNotReady is returned by SPIPeripheral.Prime when the peripheral cannot
// arm a new round right now; the caller sets need_restart and retries, per
// spec.md §4.8 step 6.
var ErrNotReady = errors.New("hal: spi peripheral not ready")

// Level is the state of a digital pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// Edge specifies which transitions DigitalIn.WaitForEdge should wake on.
type Edge uint8

const (
	NoEdge  Edge = 0
	Rising  Edge = 1
	Falling Edge = 2
	Both    Edge = 3
)

// DigitalOut is a single output pin: STEP, DIR or ENABLE for one axis.
type DigitalOut interface {
	// Out sets the pin level. Implementations must be safe to call from
	// interrupt-equivalent context (the step tick).
	Out(l Level) error
}

// DigitalIn is a single input pin with edge detection: an E-STOP line.
//
// WaitForEdge is what the safety EXTI ISR stands in for in this host
// simulation — spec.md §6 calls for "an asserting edge calls assert_estop
// from ISR context"; cmd/motiond runs a goroutine blocked in WaitForEdge to
// play that role.
type DigitalIn interface {
	Read() Level
	// WaitForEdge blocks until an edge of the configured kind occurs or
	// timeout elapses. A negative timeout waits forever.
	WaitForEdge(edge Edge, timeout time.Duration) bool
}

// Counter reads a quadrature-decoded hardware counter register, 16 or 32
// bits wide depending on the board's timer peripheral (spec.md §4.7, §3
// EncoderState). Width is reported so EncoderTracker can do the wraparound
// arithmetic in the counter's native signed width.
type Counter interface {
	// Read returns the raw counter value and its bit width (16 or 32).
	Read() (raw uint32, width uint8)
}

// SPIPeripheral is the 42-byte full-duplex DMA round primitive spec.md §4.8
// describes. Prime arms the next round's TX buffer; once the in-flight round
// completes, its RX bytes go to the owning transport.Transport's
// OnRoundComplete (cmd/motiond does this from its own round goroutine,
// standing in for the DMA-completion ISR).
type SPIPeripheral interface {
	// Prime arms tx as the buffer to send on the next round. Returns an
	// error (ErrNotReady in the halsim fake) if the peripheral was not
	// ready; the caller must set need_restart and retry, per spec.md §4.8
	// step 6.
	Prime(tx []byte) error
}

// Ticker is a monotonic tick source, standing in for the timer peripherals
// that drive the step and control ISRs. cmd/motiond's simulation uses
// time.Ticker; a real firmware image would drive Core.StepTick/ControlTick
// directly from its timer interrupt handlers instead of through this
// interface, which exists purely so the host harness can demonstrate the
// same cadence spec.md §5 describes.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}
