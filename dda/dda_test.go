// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/fixedpt"
	"cncio.dev/x/motioncore/hal/halsim"
)

func TestTickEmitsStepOnAccumulatorCarry(t *testing.T) {
	pin := halsim.NewPin()
	st := axis.State{
		TotalSteps: 5,
		DdaInc:     fixedpt.One, // carries every tick
	}

	Tick(&st, pin, 2, 2)
	assert.Equal(t, uint32(1), st.EmittedSteps)
	assert.Equal(t, uint32(1), st.TargetSteps)
	assert.Equal(t, uint8(2), st.StepHighTicks)
}

func TestTickHoldsPulseForConfiguredWidth(t *testing.T) {
	pin := halsim.NewPin()
	st := axis.State{TotalSteps: 5, DdaInc: fixedpt.One}

	Tick(&st, pin, 2, 3)
	require.Equal(t, uint32(1), st.EmittedSteps)
	require.Equal(t, uint8(2), st.StepHighTicks)

	Tick(&st, pin, 2, 3)
	assert.Equal(t, uint8(1), st.StepHighTicks)
	assert.Equal(t, uint32(1), st.EmittedSteps, "no new step while pulse is held high")

	Tick(&st, pin, 2, 3)
	assert.Equal(t, uint8(0), st.StepHighTicks)
	assert.Equal(t, uint8(3), st.StepLowTicks)

	for i := 0; i < 3; i++ {
		Tick(&st, pin, 2, 3)
	}
	assert.Equal(t, uint8(0), st.StepLowTicks)
}

func TestTickRespectsEnableAndDirSettle(t *testing.T) {
	pin := halsim.NewPin()
	st := axis.State{
		TotalSteps:     5,
		DdaInc:         fixedpt.One,
		EnSettleTicks:  2,
		DirSettleTicks: 1,
	}

	Tick(&st, pin, 1, 1)
	assert.Equal(t, uint8(1), st.EnSettleTicks)
	assert.Equal(t, uint32(0), st.EmittedSteps)

	Tick(&st, pin, 1, 1)
	assert.Equal(t, uint8(0), st.EnSettleTicks)
	assert.Equal(t, uint8(1), st.DirSettleTicks)

	Tick(&st, pin, 1, 1)
	assert.Equal(t, uint8(0), st.DirSettleTicks)
	assert.Equal(t, uint32(0), st.EmittedSteps, "settle windows consume ticks before any step is emitted")

	Tick(&st, pin, 1, 1)
	assert.Equal(t, uint32(1), st.EmittedSteps)
}

func TestTickNeverEmitsPastTotalSteps(t *testing.T) {
	pin := halsim.NewPin()
	st := axis.State{TotalSteps: 1, EmittedSteps: 1, DdaInc: fixedpt.One}
	for i := 0; i < 5; i++ {
		Tick(&st, pin, 1, 1)
	}
	assert.Equal(t, uint32(1), st.EmittedSteps)
}

// TestEmittedStepsNeverExceedsTotal is spec.md §8's DDA property: for any
// increment and any number of ticks, emitted_steps never exceeds total_steps.
func TestEmittedStepsNeverExceedsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pin := halsim.NewPin()
		total := uint32(rapid.IntRange(0, 2000).Draw(rt, "total"))
		inc := fixedpt.Q16_16(rapid.IntRange(0, int(fixedpt.One)*2).Draw(rt, "inc"))
		st := axis.State{TotalSteps: total, DdaInc: inc}

		ticks := rapid.IntRange(0, 5000).Draw(rt, "ticks")
		for i := 0; i < ticks; i++ {
			Tick(&st, pin, 1, 1)
			if st.EmittedSteps > st.TotalSteps {
				rt.Fatalf("emitted_steps %d exceeded total_steps %d", st.EmittedSteps, st.TotalSteps)
			}
		}
	})
}
