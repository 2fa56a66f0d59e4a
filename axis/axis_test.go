// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemainingClampsAtZero(t *testing.T) {
	st := State{TotalSteps: 10, EmittedSteps: 10}
	assert.Equal(t, uint32(0), st.Remaining())

	st.EmittedSteps = 4
	assert.Equal(t, uint32(6), st.Remaining())
}

func TestInPulsePhase(t *testing.T) {
	var st State
	assert.False(t, st.InPulsePhase())

	st.StepHighTicks = 1
	assert.True(t, st.InPulsePhase())

	st.StepHighTicks = 0
	st.StepLowTicks = 1
	assert.True(t, st.InPulsePhase())
}

func TestResetForSegmentClearsPulseGuardsAndDda(t *testing.T) {
	st := State{
		TotalSteps:   50,
		EmittedSteps: 50,
		StepHighTicks: 2,
		StepLowTicks:  2,
		DdaAccum:      123,
	}
	st.ResetForSegment(200, true, 5, 3)

	assert.Equal(t, uint32(200), st.TotalSteps)
	assert.Equal(t, uint32(0), st.EmittedSteps)
	assert.Equal(t, uint32(0), st.TargetSteps)
	assert.True(t, st.Dir)
	assert.Equal(t, uint8(0), st.StepHighTicks)
	assert.Equal(t, uint8(0), st.StepLowTicks)
	assert.Equal(t, uint8(5), st.EnSettleTicks)
	assert.Equal(t, uint8(3), st.DirSettleTicks)
	assert.Zero(t, st.DdaAccum)
}

func TestIndexString(t *testing.T) {
	assert.Equal(t, "X", X.String())
	assert.Equal(t, "Y", Y.String())
	assert.Equal(t, "Z", Z.String())
	assert.Equal(t, "?", Index(9).String())
}
