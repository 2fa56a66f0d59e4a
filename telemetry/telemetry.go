// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package telemetry gives the out-of-scope CSV/binary telemetry emitter
// (spec.md §1) a narrow boundary contract so the motion core can report
// samples and errors without depending on the emitter's implementation.
package telemetry

import "time"

// Sample is one point of recorded motion telemetry.
type Sample struct {
	At           time.Time
	Axis         int
	EmittedSteps uint32
	VActualSps   uint32
	PidErr       int32
}

// Sink receives telemetry samples. The ring-buffer-backed CSV/binary
// emitter spec.md §1 excludes from the core is one implementation of this
// interface; cmd/motiond uses a simpler one for demonstration.
type Sink interface {
	Record(s Sample)
}

// Discard is a Sink that drops every sample, used where telemetry is wired
// but nothing consumes it (tests, minimal deployments).
type Discard struct{}

// Record implements Sink.
func (Discard) Record(Sample) {}

var _ Sink = Discard{}
