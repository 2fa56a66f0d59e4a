// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package axis holds AxisState, spec.md §3: the per-axis motion counters and
// gains owned by the segment executor and mutated by both the control tick
// (velocity/DDA increment) and the step tick (pulse timing, emitted_steps).
package axis

import "cncio.dev/x/motioncore/fixedpt"

// Index names the three controlled axes.
type Index int

const (
	X Index = 0
	Y Index = 1
	Z Index = 2
)

// Count is the number of axes this controller drives. Spec.md §1's
// non-goals cap this at three.
const Count = 3

// String names an axis for logging.
func (i Index) String() string {
	switch i {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// State is spec.md §3's AxisState: the step-generation and velocity-control
// counters for one axis, plus its PID gains. i_accum/prev_err/d_filt are not
// here — spec.md §4.6 places that state with PositionLoop, in package ramp.
type State struct {
	TotalSteps   uint32
	TargetSteps  uint32
	EmittedSteps uint32

	VelocityPerTick uint16
	Kp, Ki, Kd      uint16

	StepHighTicks  uint8
	StepLowTicks   uint8
	EnSettleTicks  uint8
	DirSettleTicks uint8

	DdaAccum fixedpt.Q16_16
	DdaInc   fixedpt.Q16_16

	VTargetSps uint32
	VActualSps uint32
	AccelSps2  uint32

	Dir            bool // true = forward, per dirMask bit convention
	MicrostepFactor uint16
}

// Remaining reports steps not yet emitted in the active segment.
func (s *State) Remaining() uint32 {
	if s.EmittedSteps >= s.TotalSteps {
		return 0
	}
	return s.TotalSteps - s.EmittedSteps
}

// InPulsePhase reports whether this axis currently holds a STEP pulse high
// or is in its low-guard window — the invariant spec.md §3 states as
// "exactly one of {step_high_ticks>0, step_low_ticks>0, neither}".
func (s *State) InPulsePhase() bool {
	return s.StepHighTicks > 0 || s.StepLowTicks > 0
}

// ResetForSegment reloads total/target/emitted and clears the pulse-timing
// guards ahead of a new segment, per spec.md §4.3's begin_segment. Velocity
// fields are handled by the caller, which knows whether to preserve
// VActualSps (spec.md §9: "preserve only when already RUNNING").
func (s *State) ResetForSegment(totalSteps uint32, dir bool, enSettle, dirSettle uint8) {
	s.TotalSteps = totalSteps
	s.TargetSteps = 0
	s.EmittedSteps = 0
	s.Dir = dir
	s.StepHighTicks = 0
	s.StepLowTicks = 0
	s.EnSettleTicks = enSettle
	s.DirSettleTicks = dirSettle
	s.DdaAccum = 0
}
