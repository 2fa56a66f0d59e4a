// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motioncore

import (
	"time"

	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/dda"
	"cncio.dev/x/motioncore/ramp"
	"cncio.dev/x/motioncore/telemetry"
)

// StepTick runs one pass of DdaStepEngine across all three axes followed by
// the natural-done check, spec.md §4.5. This is the only code reachable
// from the step-ISR-equivalent context; cmd/motiond drives it from a
// goroutine at STEP_TICK_HZ.
func (c *Core) StepTick() {
	c.Executor.WithAxes(func(axes *[axis.Count]axis.State) {
		for a := 0; a < axis.Count; a++ {
			var pin dda.StepPin
			if int(a) < len(c.pins.Step) {
				pin = c.pins.Step[a]
			}
			if pin == nil {
				continue
			}
			dda.Tick(&axes[a], pin, c.cfg.StepHighTicks, c.cfg.StepLowTicks)
		}
	})
	c.Executor.CheckNaturalDone()
}

// ControlTick runs one pass of EncoderTracker, PositionLoop and RampPlanner
// across all three axes, spec.md §4.4/§4.7. Driven at CONTROL_TICK_HZ.
func (c *Core) ControlTick() {
	var in [axis.Count]ramp.AxisInput
	for a := 0; a < axis.Count; a++ {
		if c.pins.Enc[a] != nil {
			raw, width := c.pins.Enc[a].Read()
			if width != 0 {
				c.Encoders[a].Width = width
			}
			delta := c.Encoders[a].Update(raw)
			if a == int(axis.X) {
				c.lastEncDelta[a] = clampI8(int32(delta))
			}
		}
		in[a] = ramp.AxisInput{
			ActualSteps: c.Encoders[a].ActualSteps(c.cfg.BaseStepsPerRev, c.microstepFactor[a], c.cfg.EncCountsPerRev[a]),
			QueueRem:    c.Executor.QueueRemSteps(axis.Index(a)),
		}
	}

	c.Executor.WithAxes(func(axes *[axis.Count]axis.State) {
		results := c.Planner.Tick(axes, &in)
		for a := 0; a < axis.Count; a++ {
			c.lastPidErr[a] = results[a].PidErr
			c.Telemetry.Record(telemetry.Sample{
				At:           now(),
				Axis:         a,
				EmittedSteps: axes[a].EmittedSteps,
				VActualSps:   axes[a].VActualSps,
				PidErr:       results[a].PidErr,
			})
		}
	})
}

// now is a seam so tests can avoid depending on wall-clock time; production
// callers get the real clock.
var now = time.Now

// Poll drains SpiRxQueue into Router, pushes any synthesized response into
// ResponseFifo, and services the transport's need-restart flag — spec.md
// §4.8's "main poll" loop. Never blocks.
func (c *Core) Poll() {
	buf := make([]byte, 64)
	for {
		n, ok, err := c.RxQueue.Pop(buf)
		if err != nil {
			c.log.Printf("rx pop: %v", err)
			continue
		}
		if !ok {
			break
		}
		resp, err := c.Router.Dispatch(buf[:n])
		if err != nil {
			c.log.Printf("dispatch: %v", err)
			continue
		}
		if resp == nil {
			continue
		}
		if err := c.RespFifo.Push(resp); err != nil {
			c.log.Printf("response fifo full, dropping response: %v", err)
		}
	}

	if c.Transport.NeedRestart() {
		c.DrainResponseAndPrime()
	}
}

// DrainResponseAndPrime pops the oldest pending response (if any) from
// ResponseFifo and primes the transport for its next round, spec.md §4.8
// step 5. Intended to be called once per completed DMA round by the host
// harness, and opportunistically by Poll to retry a failed restart.
func (c *Core) DrainResponseAndPrime() error {
	buf := make([]byte, 42)
	n, ok, err := c.RespFifo.Pop(buf)
	if err != nil {
		c.log.Printf("response fifo pop: %v", err)
		return err
	}
	if !ok {
		return c.Transport.PrimeNext(nil)
	}
	return c.Transport.PrimeNext(buf[:n])
}
