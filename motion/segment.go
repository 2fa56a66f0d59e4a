// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package motion implements MoveQueue and SegmentExecutor, spec.md §4.3: the
// bounded ring of pending segments, the active-segment state machine, and
// natural/emergency termination.
package motion

import "cncio.dev/x/motioncore/axis"

// Segment is spec.md §3's MoveSegment: one queued move.
type Segment struct {
	FrameID byte
	DirMask byte // bit i = direction of axis i, 1 = forward

	V [axis.Count]uint16 // cruise velocity in k-steps/s
	S [axis.Count]uint32 // total physical steps to emit

	Kp [axis.Count]uint16
	Ki [axis.Count]uint16
	Kd [axis.Count]uint16
}

// Dir reports the commanded direction for axis a.
func (s Segment) Dir(a axis.Index) bool {
	return s.DirMask&(1<<uint(a)) != 0
}

// State is spec.md §3's MotionState.
type State uint8

const (
	Idle State = iota
	Queued
	Running
	Paused
	Stopping
	Done
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Queued:
		return "QUEUED"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case Stopping:
		return "STOPPING"
	case Done:
		return "DONE"
	case Error:
		return "ERROR"
	default:
		return "?"
	}
}
