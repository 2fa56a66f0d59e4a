// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fixedpt implements the fixed-point number types used by the hot
// path of the motion core, where spec.md forbids floating-point math.
//
// The types mirror the role periph's devices.Milli plays for that project:
// a small integer-backed type with conversion helpers, kept out of the
// hot-path packages so the arithmetic rules live in one place.
package fixedpt

import "fmt"

// Q16_16 is a signed 16.16 fixed-point number, the representation
// DdaStepEngine uses for its phase accumulator and per-tick increment.
//
// One unit of Q16_16 is 1/65536. A value of One represents the quantity 1.0.
type Q16_16 int64

// One is the fixed-point representation of 1.0.
const One Q16_16 = 1 << 16

// FromSpsAndTickHz computes the DDA increment for a given step rate and tick
// frequency: inc = (sps << 16) / tickHz, per spec.md §4.4 step 7.
func FromSpsAndTickHz(sps uint32, tickHz uint32) Q16_16 {
	if tickHz == 0 {
		return 0
	}
	return Q16_16((int64(sps) << 16) / int64(tickHz))
}

// Add returns q+o. It exists so accumulator code reads as arithmetic rather
// than raw int64 manipulation.
func (q Q16_16) Add(o Q16_16) Q16_16 { return q + o }

// Sub returns q-o.
func (q Q16_16) Sub(o Q16_16) Q16_16 { return q - o }

// GEOne reports whether q >= 1.0, the DDA carry condition.
func (q Q16_16) GEOne() bool { return q >= One }

// Float64 returns the value as a float64, for logging and tests only — never
// used on the hot path.
func (q Q16_16) Float64() float64 {
	return float64(q) / float64(One)
}

func (q Q16_16) String() string {
	return fmt.Sprintf("%.5f", q.Float64())
}

// Q8 is an unsigned 8.8 fixed-point gain, the wire representation of the
// kp/ki/kd PID gains in MoveSegment (spec.md §3).
type Q8 uint16

// Apply multiplies an i32 error term by the gain and shifts back down by the
// Q8 fraction width, saturating is left to the caller since the shift alone
// can overflow for large errors — RampPlanner clamps the combined correction,
// not each term individually, per spec.md §4.4 step 4.
func (g Q8) Apply(v int32) int64 {
	return int64(v) * int64(g) >> 8
}

// Permille is a 0..1000 scale factor used by the cross-axis error throttle
// (spec.md §4.4 step 3).
type Permille uint16

// Scale applies the permille factor to a velocity in steps/s.
func (p Permille) Scale(v uint32) uint32 {
	return uint32((uint64(v) * uint64(p)) / 1000)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampU32 restricts v to [lo, hi] for unsigned 32-bit quantities.
func ClampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturateI32 saturates a 64-bit value into the int32 range, used when
// converting encoder position (i64) to the host-visible absolute offset
// (i32), per spec.md §4.7 set_origin.
func SaturateI32(v int64) int32 {
	const maxI32 = int64(1<<31 - 1)
	const minI32 = -maxI32 - 1
	if v > maxI32 {
		return int32(maxI32)
	}
	if v < minI32 {
		return int32(minI32)
	}
	return int32(v)
}
