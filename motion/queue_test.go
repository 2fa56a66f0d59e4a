// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"cncio.dev/x/motioncore/axis"
)

func TestQueuePushPopOrder(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.Push(Segment{FrameID: 1}))
	require.NoError(t, q.Push(Segment{FrameID: 2}))

	seg, ok := q.PopFront()
	require.True(t, ok)
	assert.Equal(t, byte(1), seg.FrameID)

	seg, ok = q.PopFront()
	require.True(t, ok)
	assert.Equal(t, byte(2), seg.FrameID)

	_, ok = q.PopFront()
	assert.False(t, ok)
}

func TestQueuePushFullReturnsError(t *testing.T) {
	q := NewQueue(2)
	require.NoError(t, q.Push(Segment{FrameID: 1}))
	require.NoError(t, q.Push(Segment{FrameID: 2}))
	assert.Error(t, q.Push(Segment{FrameID: 3}))
	assert.True(t, q.Full())
}

func TestQueueClearZeroesRemSteps(t *testing.T) {
	q := NewQueue(4)
	require.NoError(t, q.Push(Segment{S: [axis.Count]uint32{5, 5, 5}}))
	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, uint32(0), q.RemSteps(axis.X))
}

// TestRemStepsMatchesQueuedSum is spec.md §8's property test for MoveQueue:
// after any sequence of pushes and pops, RemSteps(a) equals the sum, over
// segments still queued, of seg.S[a].
func TestRemStepsMatchesQueuedSum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		q := NewQueue(8)
		var pending []Segment

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "pop") && len(pending) > 0 {
				seg, ok := q.PopFront()
				if !ok {
					rt.Fatalf("PopFront reported empty but pending has %d entries", len(pending))
				}
				if seg != pending[0] {
					rt.Fatalf("pop order mismatch: got %+v want %+v", seg, pending[0])
				}
				pending = pending[1:]
				continue
			}
			seg := Segment{
				FrameID: byte(rapid.IntRange(0, 255).Draw(rt, "frameID")),
				S: [axis.Count]uint32{
					uint32(rapid.IntRange(0, 1000).Draw(rt, "sx")),
					uint32(rapid.IntRange(0, 1000).Draw(rt, "sy")),
					uint32(rapid.IntRange(0, 1000).Draw(rt, "sz")),
				},
			}
			if err := q.Push(seg); err == nil {
				pending = append(pending, seg)
			}
		}

		for a := 0; a < axis.Count; a++ {
			var want uint32
			for _, seg := range pending {
				want += seg.S[a]
			}
			if q.RemSteps(axis.Index(a)) != want {
				rt.Fatalf("RemSteps(%d)=%d, want %d", a, q.RemSteps(axis.Index(a)), want)
			}
		}
	})
}
