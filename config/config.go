// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config collects every compile/init-time knob spec.md §6 lists into
// one struct with documented defaults, so components take a *Config instead
// of reaching for package-level constants — the same role periph's
// host-specific "Opts" structs play for its device drivers.
package config

// Config holds every tunable named in spec.md §6.
type Config struct {
	// StepTickHz is the high-rate tick that advances the DDA and drives STEP
	// pulses. Default 50_000.
	StepTickHz uint32
	// ControlTickHz is the low-rate tick that updates encoders, runs the
	// position loop and recomputes DDA increments. Default 1_000.
	ControlTickHz uint32

	// StepHighTicks/StepLowTicks bound the minimum STEP pulse high/low time,
	// in step ticks.
	StepHighTicks uint8
	StepLowTicks  uint8
	// DirSetupTicks/EnableSettleTicks are the settle time, in step ticks,
	// after changing DIR or asserting ENABLE before the first pulse.
	DirSetupTicks     uint8
	EnableSettleTicks uint8

	// MoveQueueCapacity bounds the MoveQueue ring. Default 256.
	MoveQueueCapacity int
	// RespFifoCapacity bounds ResponseFifo. Default 8, spec.md requires >= 8.
	RespFifoCapacity int

	// DefaultAccelSps2 is the trapezoidal ramp's default acceleration, in
	// steps/s². Default 200_000.
	DefaultAccelSps2 uint32

	// PIDeadbandSteps, PIIClamp and PIShift parameterise the position loop
	// (spec.md §4.4 step 4).
	PIDeadbandSteps int32
	PIIClamp        int32
	PIShift         uint

	// ErrThrottleThreshold and ErrThrottleMinPermille parameterise the
	// cross-axis error throttle (spec.md §4.4 step 3).
	ErrThrottleThreshold   int32
	ErrThrottleMinPermille uint16

	// EncCountsPerRev is the compile-time encoder-counts-per-revolution table,
	// one entry per axis.
	EncCountsPerRev [3]uint32
	// BaseStepsPerRev is the motor's native steps per revolution before
	// microstepping. Default 400.
	BaseStepsPerRev uint32
}

// Default returns the configuration spec.md §6 lists as defaults.
func Default() Config {
	return Config{
		StepTickHz:             50_000,
		ControlTickHz:          1_000,
		StepHighTicks:          1,
		StepLowTicks:           1,
		DirSetupTicks:          5,
		EnableSettleTicks:      5,
		MoveQueueCapacity:      256,
		RespFifoCapacity:       8,
		DefaultAccelSps2:       200_000,
		PIDeadbandSteps:        10,
		PIIClamp:               200_000,
		PIShift:                8,
		ErrThrottleThreshold:   200,
		ErrThrottleMinPermille: 250,
		EncCountsPerRev:        [3]uint32{4000, 4000, 4000},
		BaseStepsPerRev:        400,
	}
}

// MaxSps is the hardware-derived upper bound on commanded velocity:
// STEP_TICK_HZ / (STEP_HIGH_TICKS + STEP_LOW_TICKS), per spec.md §4.4.
func (c Config) MaxSps() uint32 {
	div := uint32(c.StepHighTicks) + uint32(c.StepLowTicks)
	if div == 0 {
		return 0
	}
	return c.StepTickHz / div
}
