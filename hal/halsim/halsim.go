// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package halsim provides software-simulated implementations of the hal
// package's boundary interfaces, used by cmd/motiond and by tests that need
// a stand-in for real silicon. Modelled on periph's conntest/gpiotest
// packages, which exist for exactly this purpose: fakes a driver author can
// program and then assert against, instead of a real bus.
package halsim

import (
	"sync"
	"time"

	"cncio.dev/x/motioncore/hal"
)

// Pin is a fake hal.DigitalOut + hal.DigitalIn. Tests can read Level directly
// or call Trigger to simulate an external edge on an E-STOP line.
type Pin struct {
	mu    sync.Mutex
	level hal.Level
	edges chan hal.Level
}

// NewPin returns a Pin initialized Low with room to buffer a few edges.
func NewPin() *Pin {
	return &Pin{edges: make(chan hal.Level, 8)}
}

// Out implements hal.DigitalOut.
func (p *Pin) Out(l hal.Level) error {
	p.mu.Lock()
	p.level = l
	p.mu.Unlock()
	return nil
}

// Read implements hal.DigitalIn.
func (p *Pin) Read() hal.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// WaitForEdge implements hal.DigitalIn.
func (p *Pin) WaitForEdge(edge hal.Edge, timeout time.Duration) bool {
	if timeout < 0 {
		l := <-p.edges
		p.set(l)
		return true
	}
	select {
	case l := <-p.edges:
		p.set(l)
		return true
	case <-time.After(timeout):
		return false
	}
}

func (p *Pin) set(l hal.Level) {
	p.mu.Lock()
	p.level = l
	p.mu.Unlock()
}

// Trigger simulates an external edge, waking any goroutine blocked in
// WaitForEdge. Safe to call from a test goroutine standing in for an EXTI
// source.
func (p *Pin) Trigger(l hal.Level) {
	p.edges <- l
}

// Counter is a fake hal.Counter backed by a plain counter the test can drive
// with Advance, including through wraparound.
type Counter struct {
	mu    sync.Mutex
	raw   uint32
	width uint8
}

// NewCounter returns a Counter of the given bit width (16 or 32).
func NewCounter(width uint8) *Counter {
	return &Counter{width: width}
}

// Read implements hal.Counter.
func (c *Counter) Read() (uint32, uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw, c.width
}

// Advance adds delta counts to the raw register, wrapping at the configured
// width exactly as real hardware would.
func (c *Counter) Advance(delta int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mask := uint32(1)<<c.width - 1
	c.raw = (c.raw + uint32(delta)) & mask
}

// Ticker wraps time.Ticker behind hal.Ticker.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a Ticker firing at the given period.
func NewTicker(period time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(period)}
}

// C implements hal.Ticker.
func (t *Ticker) C() <-chan time.Time { return t.t.C }

// Stop implements hal.Ticker.
func (t *Ticker) Stop() { t.t.Stop() }

// SPIPeripheral fakes the 42-byte full-duplex DMA round primitive. Prime
// arms the next TX buffer and makes it available to a driving goroutine via
// LastTX; that goroutine is expected to pass whatever RX bytes the simulated
// host sent this round to transport.Transport.OnRoundComplete, standing in
// for the DMA-completion ISR.
type SPIPeripheral struct {
	mu      sync.Mutex
	lastTX  []byte
	primed  chan struct{}
	failing bool
}

// NewSPIPeripheral returns an SPIPeripheral ready for its first Prime call.
func NewSPIPeripheral() *SPIPeripheral {
	return &SPIPeripheral{primed: make(chan struct{}, 1)}
}

// Prime implements hal.SPIPeripheral.
func (p *SPIPeripheral) Prime(tx []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing {
		return hal.ErrNotReady
	}
	buf := make([]byte, len(tx))
	copy(buf, tx)
	p.lastTX = buf
	select {
	case p.primed <- struct{}{}:
	default:
	}
	return nil
}

// LastTX returns a copy of the most recently primed TX buffer.
func (p *SPIPeripheral) LastTX() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf := make([]byte, len(p.lastTX))
	copy(buf, p.lastTX)
	return buf
}

// SetFailing makes the next Prime call(s) report a hardware fault, to drive
// transport.Transport's need_restart retry path in tests.
func (p *SPIPeripheral) SetFailing(failing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing = failing
}

var (
	_ hal.DigitalOut    = (*Pin)(nil)
	_ hal.DigitalIn     = (*Pin)(nil)
	_ hal.Counter       = (*Counter)(nil)
	_ hal.Ticker        = (*Ticker)(nil)
	_ hal.SPIPeripheral = (*SPIPeripheral)(nil)
)
