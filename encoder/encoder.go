// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package encoder implements EncoderTracker, spec.md §4.7: per-axis
// quadrature counter tracking with native-width wraparound arithmetic,
// origin capture, and absolute/relative position reporting.
package encoder

import "cncio.dev/x/motioncore/fixedpt"

// State is spec.md §3's EncoderState for one axis.
type State struct {
	LastRaw    uint32
	Width      uint8 // 16 or 32
	Position   int64 // accumulated signed counts
	Origin     int64
	OriginBase int32
}

// Update folds one freshly-read raw counter value into Position. The delta
// is computed in the counter's native signed width so a 16-bit counter's
// wraparound past 0/65535 still yields the correct small delta instead of a
// huge jump, per spec.md §4.7 step 2.
func (s *State) Update(raw uint32) int64 {
	var delta int64
	switch s.Width {
	case 16:
		delta = int64(int16(uint16(raw) - uint16(s.LastRaw)))
	default:
		delta = int64(int32(raw - s.LastRaw))
	}
	s.Position += delta
	s.LastRaw = raw
	return delta
}

// SetOrigin captures the current position as the new reference point.
// Subsequent AbsPosition/RelPosition calls report relative to this origin.
func (s *State) SetOrigin() {
	s.OriginBase = fixedpt.SaturateI32(s.Position)
	s.Origin = s.Position
}

// RelPosition is the signed count delta since the last SetOrigin.
func (s *State) RelPosition() int64 {
	return s.Position - s.Origin
}

// AbsPosition is the host-visible absolute position: the origin's saturated
// base plus the relative offset since that origin was captured.
func (s *State) AbsPosition() int32 {
	return fixedpt.SaturateI32(int64(s.OriginBase) + s.RelPosition())
}

// ActualSteps converts the relative encoder count into physical steps for
// the position loop, spec.md §4.4's unit-conversion rule:
// actual = enc_rel * (BASE_STEPS_PER_REV * microstepFactor) / ENC_COUNTS_PER_REV,
// saturated to i32.
func (s *State) ActualSteps(baseStepsPerRev uint32, microstepFactor uint16, encCountsPerRev uint32) int32 {
	if encCountsPerRev == 0 {
		return 0
	}
	num := s.RelPosition() * int64(baseStepsPerRev) * int64(microstepFactor)
	return fixedpt.SaturateI32(num / int64(encCountsPerRev))
}
