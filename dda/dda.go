// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dda implements DdaStepEngine, spec.md §4.5: the Q16.16
// phase-accumulator step generator that runs once per axis at every step
// tick (default 50 kHz).
package dda

import (
	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/fixedpt"
	"cncio.dev/x/motioncore/hal"
)

// StepPin is the single output this engine drives: high on pulse start, low
// once the high-guard window elapses.
type StepPin = hal.DigitalOut

// Tick advances one axis by one step-tick period, per spec.md §4.5's four
// ordered cases, driving step high/low on pin. highTicks/lowTicks are the
// configured STEP_HIGH_TICKS/STEP_LOW_TICKS guard widths re-armed on each
// new pulse.
func Tick(st *axis.State, pin StepPin, highTicks, lowTicks uint8) {
	switch {
	case st.StepHighTicks > 0:
		st.StepHighTicks--
		if st.StepHighTicks == 0 {
			_ = pin.Out(hal.Low)
			st.StepLowTicks = lowTicks
		}
		return

	case st.StepLowTicks > 0:
		st.StepLowTicks--
		return

	case st.EnSettleTicks > 0:
		st.EnSettleTicks--
		return

	case st.DirSettleTicks > 0:
		st.DirSettleTicks--
		return

	case st.EmittedSteps < st.TotalSteps:
		st.DdaAccum = st.DdaAccum.Add(st.DdaInc)
		if st.DdaAccum.GEOne() {
			st.DdaAccum = st.DdaAccum.Sub(fixedpt.One)
			_ = pin.Out(hal.High)
			st.StepHighTicks = highTicks
			st.EmittedSteps++
			// Target tracks emission directly on every step, since there is
			// no independent target-position input in this engine.
			st.TargetSteps = st.EmittedSteps
		}
	}
}
