// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFifoPushPopOrder(t *testing.T) {
	f := New(8)
	require.NoError(t, f.Push([]byte{1, 2, 3}))
	require.NoError(t, f.Push([]byte{4, 5}))

	out := make([]byte, MaxFrameLen)
	n, ok, err := f.Pop(out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, out[:n])

	n, ok, err = f.Pop(out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{4, 5}, out[:n])

	_, ok, err = f.Pop(out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFifoFullReturnsOverflow(t *testing.T) {
	f := New(2)
	require.NoError(t, f.Push([]byte{1}))
	require.NoError(t, f.Push([]byte{2}))
	err := f.Push([]byte{3})
	require.Error(t, err)
	assert.True(t, f.Full())
}

func TestFifoPopTooSmallLeavesEntryInPlace(t *testing.T) {
	f := New(2)
	require.NoError(t, f.Push([]byte{1, 2, 3}))
	_, ok, err := f.Pop(make([]byte, 1))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, f.Len())

	out := make([]byte, MaxFrameLen)
	n, ok, err := f.Pop(out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, out[:n])
}

func TestFifoPushTooLargeIsArgError(t *testing.T) {
	f := New(2)
	err := f.Push(make([]byte, MaxFrameLen+1))
	require.Error(t, err)
}

// TestFifoOrderProperty checks that arbitrary interleavings of push/pop keep
// delivery order equal to insertion order, spec.md §4.2's core contract.
func TestFifoOrderProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cap := rapid.IntRange(1, 16).Draw(rt, "cap")
		f := New(cap)
		var expected [][]byte
		var inflight int

		ops := rapid.IntRange(0, 40).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			if rapid.Bool().Draw(rt, "doPush") && inflight < cap {
				frame := rapid.SliceOfN(rapid.Byte(), 1, 6).Draw(rt, "frame")
				if err := f.Push(frame); err == nil {
					expected = append(expected, frame)
					inflight++
				}
			} else if len(expected) > 0 {
				out := make([]byte, MaxFrameLen)
				n, ok, err := f.Pop(out)
				if ok {
					if err != nil {
						rt.Fatalf("unexpected pop error: %v", err)
					}
					want := expected[0]
					expected = expected[1:]
					inflight--
					if string(out[:n]) != string(want) {
						rt.Fatalf("order violated: got %v want %v", out[:n], want)
					}
				}
			}
		}
	})
}
