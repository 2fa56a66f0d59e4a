// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledsvc gives the out-of-scope LED service (spec.md §1, driven by
// the LED_CTRL opcode in §4.9/§6) a boundary contract plus a software-clock
// reference implementation. The PSC/ARR saturation policy spec.md §9 flags
// as an open question is resolved here, not silently changed: very low
// requested frequencies saturate at the slowest representable blink period
// instead of wrapping or erroring.
package ledsvc

import (
	"sync"

	"cncio.dev/x/motioncore/hal"
)

// Mode selects the LED's behaviour, the wire values carried by LED_CTRL.
type Mode uint8

const (
	ModeOff   Mode = 0
	ModeOn    Mode = 1
	ModeBlink Mode = 2
)

// Status codes for LedCtrlResp.
const (
	StatusOK      uint8 = 0
	StatusInvalid uint8 = 1
)

// Service is the LED_CTRL boundary contract: apply a requested mask, mode
// and blink frequency, reporting what was actually applied.
type Service interface {
	Apply(ledMask byte, mode Mode, frequencyCentiHz uint16) (appliedMask byte, status uint8)
}

// maxPeriodTicks is the saturation ceiling for the software clock's blink
// period — standing in for a real PWM timer's 16-bit ARR register, which is
// exactly where a real firmware's PSC/ARR calculation would saturate for
// frequencies below roughly 1 Hz (spec.md §9's open question).
const maxPeriodTicks = 65535

// SoftwareClock is a reference Service: it tracks, per call, the period (in
// abstract clock ticks at clockHz) the blink would run at, saturating
// rather than overflowing when the requested frequency is too low to
// represent.
type SoftwareClock struct {
	mu      sync.Mutex
	clockHz uint32
	pins    []hal.DigitalOut

	mask   byte
	mode   Mode
	period uint32
}

// NewSoftwareClock returns a SoftwareClock driving pins (one per bit of the
// LED mask, lowest bit first) at an internal tick rate of clockHz.
func NewSoftwareClock(clockHz uint32, pins []hal.DigitalOut) *SoftwareClock {
	return &SoftwareClock{clockHz: clockHz, pins: pins}
}

// Apply implements Service. A frequencyCentiHz of 0 under ModeBlink is
// treated as the slowest representable frequency rather than a divide by
// zero, consistent with the saturation policy rather than rejecting the
// request.
func (c *SoftwareClock) Apply(ledMask byte, mode Mode, frequencyCentiHz uint16) (appliedMask byte, status uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode > ModeBlink {
		return c.mask, StatusInvalid
	}

	c.mask = ledMask
	c.mode = mode

	switch mode {
	case ModeOff:
		c.period = 0
		c.drivePins(false)
	case ModeOn:
		c.period = 0
		c.drivePins(true)
	case ModeBlink:
		c.period = c.periodFor(frequencyCentiHz)
	}

	return c.mask, StatusOK
}

// periodFor computes the blink period in clock ticks, saturating at
// maxPeriodTicks for very low frequencies instead of overflowing.
func (c *SoftwareClock) periodFor(frequencyCentiHz uint16) uint32 {
	if frequencyCentiHz == 0 {
		return maxPeriodTicks
	}
	// period_ticks = clockHz / (frequencyCentiHz / 100) = clockHz*100/freq
	period := uint64(c.clockHz) * 100 / uint64(frequencyCentiHz)
	if period > maxPeriodTicks {
		return maxPeriodTicks
	}
	if period == 0 {
		return 1
	}
	return uint32(period)
}

func (c *SoftwareClock) drivePins(on hal.Level) {
	for i, pin := range c.pins {
		if c.mask&(1<<uint(i)) == 0 {
			continue
		}
		_ = pin.Out(on)
	}
}

// Tick sets the masked pins to the blink phase reached elapsedTicks clock
// ticks into the blink (on for the first half of each period, off for the
// second) when in ModeBlink, and does nothing otherwise. Real firmware
// would instead let the PWM timer's compare match toggle the pin in
// hardware; this is the software stand-in spec.md §1 places out of the
// core's scope.
func (c *SoftwareClock) Tick(elapsedTicks uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeBlink || c.period == 0 {
		return
	}
	phase := elapsedTicks % c.period
	c.drivePins(phase < c.period/2)
}

var _ Service = (*SoftwareClock)(nil)
