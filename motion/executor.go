// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motion

import (
	"sync"

	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/config"
)

// Push status codes, spec.md §6 (ACK status for MOVE_QUEUE_ADD/START_MOVE).
const (
	StatusOK        uint8 = 0
	StatusInvalid   uint8 = 1
	StatusQueueFull uint8 = 2
)

// MoveEnd status codes, spec.md §6.
const (
	MoveEndNatural   uint8 = 0
	MoveEndHost      uint8 = 1
	MoveEndEmergency uint8 = 2
)

// PinDriver drives the DIR and ENABLE lines for one axis ahead of a
// segment, the hal-facing side of begin_segment that this package does not
// own directly (spec.md §1 excludes GPIO toggling from the core).
type PinDriver func(a axis.Index, dir bool, enable bool)

// DisableDriver releases the ENABLE output for one axis, used on emergency
// stop.
type DisableDriver func(a axis.Index)

// EmitMoveEnd is called with the frame id of the segment that just ended
// and its termination status. The caller is responsible for encoding and
// enqueueing the MOVE_END response frame (protocol/queue packages); this
// keeps Executor free of wire-format and transport concerns.
type EmitMoveEnd func(frameID byte, status uint8)

// Executor is SegmentExecutor, spec.md §4.3: owns MoveQueue, per-axis
// AxisState and MotionState, and the transition logic driven by host
// requests and the natural-done check run at step tick.
type Executor struct {
	mu    sync.Mutex
	Queue *Queue
	Axes  [axis.Count]axis.State
	State State

	hasActive     bool
	activeFrameID byte

	cfg config.Config

	OnBeginSegment PinDriver
	OnDisable      DisableDriver
	EmitMoveEnd    EmitMoveEnd
}

// NewExecutor returns an idle Executor with an empty queue of the
// configured capacity.
func NewExecutor(cfg config.Config) *Executor {
	return &Executor{
		Queue: NewQueue(cfg.MoveQueueCapacity),
		cfg:   cfg,
	}
}

// Push appends seg to the queue and advances MotionState IDLE|DONE ->
// QUEUED on success. Callers must perform the SafetyGate admission check
// before calling Push; this method only knows about queue capacity.
func (e *Executor) Push(seg Segment) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.Queue.Push(seg); err != nil {
		return StatusQueueFull
	}
	if e.State == Idle || e.State == Done {
		e.State = Queued
	}
	return StatusOK
}

// StartMove advances to RUNNING if a segment is already loaded or can be
// popped from the queue. Reports whether the move actually started and the
// resulting queue depth.
func (e *Executor) StartMove() (started bool, depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.State != Queued && e.State != Idle && e.State != Done {
		return false, e.Queue.Len()
	}
	if !e.hasActive {
		seg, ok := e.Queue.PopFront()
		if !ok {
			return false, e.Queue.Len()
		}
		e.beginSegmentLocked(seg)
	}
	e.State = Running
	return true, e.Queue.Len()
}

// beginSegmentLocked implements spec.md §4.3's begin_segment. Caller holds
// e.mu.
func (e *Executor) beginSegmentLocked(seg Segment) {
	wasRunning := e.State == Running
	e.hasActive = true
	e.activeFrameID = seg.FrameID
	maxSps := e.cfg.MaxSps()

	for a := 0; a < axis.Count; a++ {
		st := &e.Axes[a]
		dir := seg.Dir(axis.Index(a))
		st.ResetForSegment(seg.S[a], dir, e.cfg.EnableSettleTicks, e.cfg.DirSetupTicks)
		st.Kp, st.Ki, st.Kd = seg.Kp[a], seg.Ki[a], seg.Kd[a]
		st.VelocityPerTick = seg.V[a]

		vTarget := uint32(seg.V[a]) * 1000
		if vTarget > maxSps {
			vTarget = maxSps
		}
		st.VTargetSps = vTarget
		st.AccelSps2 = e.cfg.DefaultAccelSps2
		if !wasRunning {
			st.VActualSps = 0
		}

		if e.OnBeginSegment != nil {
			e.OnBeginSegment(axis.Index(a), dir, seg.S[a] > 0)
		}
	}
}

// clearActiveLocked drops the active segment without touching the queue.
// Caller holds e.mu.
func (e *Executor) clearActiveLocked() {
	e.hasActive = false
	for a := range e.Axes {
		e.Axes[a].TotalSteps = 0
		e.Axes[a].TargetSteps = 0
		e.Axes[a].EmittedSteps = 0
	}
}

// HostStop implements the move_end request: RUNNING|* -> STOPPING -> IDLE,
// emitting MOVE_END(host) if a frame was active.
func (e *Executor) HostStop() {
	e.mu.Lock()
	frameID := e.activeFrameID
	hadActive := e.hasActive
	e.State = Stopping
	e.clearActiveLocked()
	e.State = Idle
	e.mu.Unlock()

	if hadActive && e.EmitMoveEnd != nil {
		e.EmitMoveEnd(frameID, MoveEndHost)
	}
}

// EmergencyStop implements spec.md §4.10's emergency-stop entry: disable
// drivers, clear the queue, drop the active segment, transition via
// STOPPING -> IDLE, and emit MOVE_END(emergency) if a frame was active.
// Intended to be registered as a safety.Gate's EmergencyHandler.
func (e *Executor) EmergencyStop() {
	e.mu.Lock()
	frameID := e.activeFrameID
	hadActive := e.hasActive
	e.State = Stopping
	e.clearActiveLocked()
	e.Queue.Clear()
	for a := range e.Axes {
		e.Axes[a].StepHighTicks = 0
		e.Axes[a].StepLowTicks = 0
		if e.OnDisable != nil {
			e.OnDisable(axis.Index(a))
		}
	}
	e.State = Idle
	e.mu.Unlock()

	if hadActive && e.EmitMoveEnd != nil {
		e.EmitMoveEnd(frameID, MoveEndEmergency)
	}
}

// CheckNaturalDone implements spec.md §4.3's natural-done detection, called
// once per step tick after per-axis DDA updates. If every axis has emitted
// all its steps, no pulse is held, and there is no remaining work anywhere
// (active + queued), it chains to the next segment or finalises DONE.
func (e *Executor) CheckNaturalDone() {
	e.mu.Lock()
	if e.State != Running || !e.hasActive {
		e.mu.Unlock()
		return
	}
	for a := range e.Axes {
		st := &e.Axes[a]
		if st.EmittedSteps < st.TotalSteps || st.InPulsePhase() {
			e.mu.Unlock()
			return
		}
	}
	var globalRem uint32
	for a := range e.Axes {
		globalRem += e.Axes[a].Remaining() + e.Queue.RemSteps(axis.Index(a))
	}
	if globalRem != 0 {
		e.mu.Unlock()
		return
	}

	frameID := e.activeFrameID
	e.clearActiveLocked()
	seg, ok := e.Queue.PopFront()
	if ok {
		e.beginSegmentLocked(seg)
		e.State = Running
	} else {
		e.State = Done
	}
	e.mu.Unlock()

	if e.EmitMoveEnd != nil {
		e.EmitMoveEnd(frameID, MoveEndNatural)
	}
}

// Progress reports each axis's percent-complete for MOVE_QUEUE_STATUS.
func (e *Executor) Progress() (pct [axis.Count]uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for a := range e.Axes {
		st := &e.Axes[a]
		if st.TotalSteps == 0 {
			pct[a] = 100
			continue
		}
		pct[a] = uint8(uint64(st.EmittedSteps) * 100 / uint64(st.TotalSteps))
	}
	return pct
}

// Snapshot reports the executor's current MotionState and queue depth,
// used by MOVE_QUEUE_STATUS and tests.
func (e *Executor) Snapshot() (state State, depth int, hasActive bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.State, e.Queue.Len(), e.hasActive
}

// WithAxes runs fn with the executor locked, giving callers (RampPlanner,
// DdaStepEngine) safe access to the per-axis state array without exposing
// the lock itself.
func (e *Executor) WithAxes(fn func(axes *[axis.Count]axis.State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.Axes)
}

// QueueRemSteps reports queue_rem_steps[a] for use by RampPlanner's
// progress-mode remaining-distance calculation.
func (e *Executor) QueueRemSteps(a axis.Index) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Queue.RemSteps(a)
}
