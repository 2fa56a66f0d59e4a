// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package safety implements SafetyGate, spec.md §4.10: the E-STOP
// interlock that admits or rejects motion commands and drives the
// emergency-stop sequence on assertion.
package safety

import "sync"

// State is spec.md §3's SafetyState.
type State uint8

const (
	Normal State = iota
	EStop
	RecoveryWait
)

func (s State) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case EStop:
		return "ESTOP"
	case RecoveryWait:
		return "RECOVERY_WAIT"
	default:
		return "?"
	}
}

// EmergencyHandler is invoked synchronously from AssertEstop, after the
// gate's lock has been released. It is the "motion subsystem's
// emergency-stop entry" spec.md §4.10 describes: disable drivers, clear the
// queue, drop the active segment, and emit MOVE_END(emergency) if a frame
// was in flight.
type EmergencyHandler func()

// Gate is SafetyGate.
type Gate struct {
	mu      sync.Mutex
	state   State
	onEstop EmergencyHandler
}

// New returns a Gate in the Normal state. onEstop may be nil for tests that
// only exercise admission logic.
func New(onEstop EmergencyHandler) *Gate {
	return &Gate{onEstop: onEstop}
}

// IsSafe reports whether motion commands may be admitted. RecoveryWait is
// treated as safe: per spec.md §3, "RECOVERY_WAIT -> NORMAL on next
// successful admission" requires that an admission be possible while in
// RecoveryWait in the first place.
func (g *Gate) IsSafe() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state != EStop
}

// State reports the current SafetyState.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Admit reports whether a motion command may proceed, and if so collapses a
// RecoveryWait state back to Normal as a side effect of that first
// successful admission, per spec.md §3.
func (g *Gate) Admit() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == EStop {
		return false
	}
	if g.state == RecoveryWait {
		g.state = Normal
	}
	return true
}

// AssertEstop transitions NORMAL|RECOVERY_WAIT -> ESTOP and invokes the
// emergency handler. Idempotent: asserting while already in ESTOP is a
// no-op, since the handler has already run for this assertion.
func (g *Gate) AssertEstop() {
	g.mu.Lock()
	if g.state == EStop {
		g.mu.Unlock()
		return
	}
	g.state = EStop
	handler := g.onEstop
	g.mu.Unlock()
	if handler != nil {
		handler()
	}
}

// ReleaseEstop transitions ESTOP -> RECOVERY_WAIT. A release while not in
// ESTOP is a no-op.
func (g *Gate) ReleaseEstop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == EStop {
		g.state = RecoveryWait
	}
}
