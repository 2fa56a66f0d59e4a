// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestUpdateAccumulatesSignedDelta(t *testing.T) {
	var s State
	s.Width = 32
	delta := s.Update(10)
	assert.Equal(t, int64(10), delta)
	assert.Equal(t, int64(10), s.Position)

	delta = s.Update(7)
	assert.Equal(t, int64(-3), delta)
	assert.Equal(t, int64(7), s.Position)
}

func TestUpdateWraparound16Bit(t *testing.T) {
	var s State
	s.Width = 16
	s.Update(65534)
	delta := s.Update(2)
	assert.Equal(t, int64(4), delta)
}

func TestSetOriginZeroesRelPosition(t *testing.T) {
	var s State
	s.Width = 32
	s.Update(500)
	s.SetOrigin()
	assert.Equal(t, int64(0), s.RelPosition())
	assert.Equal(t, int32(500), s.AbsPosition())

	s.Update(510)
	assert.Equal(t, int64(10), s.RelPosition())
	assert.Equal(t, int32(510), s.AbsPosition())
}

func TestActualStepsUnitConversion(t *testing.T) {
	var s State
	s.Width = 32
	s.Update(4000)
	s.SetOrigin()
	s.Update(8000)

	got := s.ActualSteps(400, 1, 4000)
	assert.Equal(t, int32(400), got)
}

func TestActualStepsZeroCountsPerRevIsZero(t *testing.T) {
	var s State
	assert.Equal(t, int32(0), s.ActualSteps(400, 1, 0))
}

// TestRelPositionTracksArbitraryUpdateSequences checks that RelPosition
// always equals the sum of deltas reported by Update since the last
// SetOrigin, for any sequence of raw counter reads.
func TestRelPositionTracksArbitraryUpdateSequences(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var s State
		s.Width = 32
		s.SetOrigin()

		var want int64
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		for i := 0; i < n; i++ {
			raw := uint32(rapid.Int64Range(0, 1<<32-1).Draw(rt, "raw"))
			want += s.Update(raw)
		}
		if s.RelPosition() != want {
			rt.Fatalf("RelPosition()=%d, want %d", s.RelPosition(), want)
		}
	})
}
