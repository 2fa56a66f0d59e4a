// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ramp implements RampPlanner and PositionLoop, spec.md §4.4 and
// §4.6: the control-tick pass that runs master-axis selection, the
// cross-axis error throttle, the PID position loop, and the trapezoidal
// velocity ramp, writing each axis's new v_actual_sps and dda_inc_q16.
//
// PositionLoop's state (i_accum, prev_err, d_filt) lives here rather than in
// package axis, per spec.md §4.6: it is "owned" conceptually by the position
// loop but only ever touched from this control-tick pass.
package ramp

import (
	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/config"
	"cncio.dev/x/motioncore/fixedpt"
)

// pidState is PositionLoop's per-axis state.
type pidState struct {
	iAccum  int32
	prevErr int32
	dFilt   int32
}

// Planner is RampPlanner + PositionLoop together.
type Planner struct {
	cfg config.Config
	pid [axis.Count]pidState

	// vAccum is the per-axis trapezoidal-ramp sub-step accumulator
	// (spec.md §4.4 step 5's "accumulator approach for discrete ramping").
	vAccum [axis.Count]uint32
}

// NewPlanner returns a Planner using cfg's tuning knobs.
func NewPlanner(cfg config.Config) *Planner {
	return &Planner{cfg: cfg}
}

// ResetAxis zeroes one axis's PID state and ramp accumulator, called from
// begin_segment per spec.md §4.6.
func (p *Planner) ResetAxis(a axis.Index) {
	p.pid[a] = pidState{}
	p.vAccum[a] = 0
}

// AxisInput bundles the per-axis facts Tick needs beyond axis.State itself:
// the encoder-derived actual position in physical steps, and how much work
// remains queued behind the active segment.
type AxisInput struct {
	ActualSteps int32
	QueueRem    uint32
}

// TickResult reports one axis's PID error (for MOVE_QUEUE_STATUS/
// ENCODER_STATUS, clamped to i8 by the caller) after a Tick pass.
type TickResult struct {
	PidErr int32
}

// Tick runs one control-tick pass over all three axes, per spec.md §4.4.
// axes and in are indexed by axis.Index; results are written back into
// axes[a].VActualSps and axes[a].DdaInc.
func (p *Planner) Tick(axes *[axis.Count]axis.State, in *[axis.Count]AxisInput) (results [axis.Count]TickResult) {
	activeRem := [axis.Count]uint32{}
	hasWork := [axis.Count]bool{}
	for a := 0; a < axis.Count; a++ {
		activeRem[a] = axes[a].Remaining()
		hasWork[a] = activeRem[a] > 0 || in[a].QueueRem > 0
	}

	master := p.selectMaster(axes, activeRem, in)

	for a := 0; a < axis.Count; a++ {
		st := &axes[a]
		if !hasWork[a] && st.TotalSteps == 0 {
			st.VActualSps = 0
			st.DdaInc = 0
			continue
		}

		vCmd := uint32(st.VelocityPerTick) * 1000

		desired := int64(st.EmittedSteps)
		actual := int64(in[a].ActualSteps)

		if axis.Index(a) != master {
			errAbs := desired - actual
			if errAbs < 0 {
				errAbs = -errAbs
			}
			vCmd = p.throttle(vCmd, uint32(errAbs))
		}

		vAdj, pidErr := p.positionLoop(axis.Index(a), st, desired, actual, vCmd)
		results[a] = TickResult{PidErr: pidErr}

		rem := activeRem[a] + in[a].QueueRem
		if axis.Index(a) != master {
			masterRem := activeRem[master] + in[master].QueueRem
			if masterRem > 0 {
				rem = masterRem
			}
		}

		p.trapezoidalStep(axis.Index(a), st, rem, vAdj)

		maxSps := p.cfg.MaxSps()
		if st.VActualSps > maxSps {
			st.VActualSps = maxSps
		}
		if rem == 0 {
			st.VActualSps = 0
		}
		st.DdaInc = fixedpt.FromSpsAndTickHz(st.VActualSps, p.cfg.StepTickHz)
	}
	return results
}

// selectMaster implements spec.md §4.4 step 2: the axis with the smallest
// emitted/total progress ratio among axes with remaining work, ties broken
// by axis index; fallback to the axis with the most total remaining work.
func (p *Planner) selectMaster(axes *[axis.Count]axis.State, activeRem [axis.Count]uint32, in *[axis.Count]AxisInput) axis.Index {
	best := -1
	var bestNum, bestDen uint64
	for a := 0; a < axis.Count; a++ {
		st := &axes[a]
		if st.TotalSteps == 0 {
			continue
		}
		if activeRem[a] == 0 && in[a].QueueRem == 0 {
			continue
		}
		num, den := uint64(st.EmittedSteps), uint64(st.TotalSteps)
		if best == -1 || num*bestDen < bestNum*den {
			best, bestNum, bestDen = a, num, den
		}
	}
	if best != -1 {
		return axis.Index(best)
	}

	best = 0
	var bestTotal uint64
	for a := 0; a < axis.Count; a++ {
		total := uint64(activeRem[a]) + uint64(in[a].QueueRem)
		if total > bestTotal {
			bestTotal, best = total, a
		}
	}
	return axis.Index(best)
}

// throttle implements spec.md §4.4 step 3's cross-axis error throttle.
func (p *Planner) throttle(vCmd uint32, errAbs uint32) uint32 {
	threshold := uint32(p.cfg.ErrThrottleThreshold)
	minPermille := p.cfg.ErrThrottleMinPermille
	if errAbs >= threshold {
		return fixedpt.Permille(minPermille).Scale(vCmd)
	}
	if threshold == 0 {
		return vCmd
	}
	span := 1000 - uint32(minPermille)
	scale := 1000 - (errAbs*span)/threshold
	return fixedpt.Permille(scale).Scale(vCmd)
}

// positionLoop implements spec.md §4.4 step 4's PID correction with
// anti-windup and a filtered derivative.
func (p *Planner) positionLoop(a axis.Index, st *axis.State, desired, actual int64, vCmd uint32) (vAdj uint32, errOut int32) {
	if st.Kp == 0 && st.Ki == 0 && st.Kd == 0 {
		return vCmd, 0
	}

	s := &p.pid[a]
	err := int32(desired - actual)
	if err < int32(p.cfg.PIDeadbandSteps) && err > -int32(p.cfg.PIDeadbandSteps) {
		err = 0
	}

	iAccum := fixedpt.Clamp(int64(s.iAccum)+int64(err), -int64(p.cfg.PIIClamp), int64(p.cfg.PIIClamp))
	dRaw := err - s.prevErr
	dFilt := s.dFilt + ((dRaw - s.dFilt) >> p.cfg.PIShift)

	corr := fixedpt.Q8(st.Kp).Apply(err) +
		fixedpt.Q8(st.Ki).Apply(int32(iAccum)) +
		fixedpt.Q8(st.Kd).Apply(dFilt)
	maxSps := int64(p.cfg.MaxSps())
	corr = fixedpt.Clamp(corr, -maxSps, maxSps)

	adj := fixedpt.Clamp(int64(vCmd)+corr, 0, maxSps)

	s.prevErr = err
	s.dFilt = int32(dFilt)
	if adj != 0 && adj != maxSps {
		s.iAccum = int32(iAccum)
	}

	return uint32(adj), err
}

// trapezoidalStep implements spec.md §4.4 step 5: a discrete accumulator
// that moves v_actual_sps in unit steps toward vAdj (or toward 0 once inside
// the brake distance), accel_sps2/1000 steps per call, so at the 1 kHz
// control tick the velocity changes by accel_sps2 per second.
func (p *Planner) trapezoidalStep(a axis.Index, st *axis.State, rem uint32, vAdj uint32) {
	p.vAccum[a] += st.AccelSps2
	for p.vAccum[a] >= 1000 {
		p.vAccum[a] -= 1000

		vActual := st.VActualSps
		sBrake := uint64(0)
		if st.AccelSps2 > 0 {
			sBrake = uint64(vActual) * uint64(vActual) / (2 * uint64(st.AccelSps2))
		}

		decelerate := uint64(rem) <= sBrake
		switch {
		case decelerate:
			if st.VActualSps > 0 {
				st.VActualSps--
			}
		case st.VActualSps < vAdj:
			st.VActualSps++
		case st.VActualSps > vAdj:
			st.VActualSps--
		}
	}
}
