// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motioncore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/config"
	"cncio.dev/x/motioncore/hal/halsim"
	"cncio.dev/x/motioncore/ledsvc"
	"cncio.dev/x/motioncore/motion"
	"cncio.dev/x/motioncore/protocol"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	cfg := config.Default()
	var pins Pins
	for a := 0; a < axis.Count; a++ {
		pins.Step[a] = halsim.NewPin()
		pins.Dir[a] = halsim.NewPin()
		pins.Enable[a] = halsim.NewPin()
		pins.Enc[a] = halsim.NewCounter(32)
	}
	pins.EStop = halsim.NewPin()
	pins.SPI = halsim.NewSPIPeripheral()
	led := ledsvc.NewSoftwareClock(1000, nil)
	return New(cfg, pins, led, nil)
}

// TestMoveQueueAddAckWireBytes is spec.md §8 scenario 1, driven through the
// full Router dispatch rather than the codec directly.
func TestMoveQueueAddAckWireBytes(t *testing.T) {
	c := newTestCore(t)

	reqBuf := make([]byte, 42)
	_, err := protocol.EncodeMoveQueueAddReq(reqBuf, protocol.MoveQueueAddReq{FrameID: 0x42})
	require.NoError(t, err)

	resp, err := c.Router.Dispatch(reqBuf)
	require.NoError(t, err)

	want := []byte{0xAB, 0x01, 0x42, 0x00, resp[4], 0x54}
	assert.Equal(t, want, resp)

	ack, ok, err := protocol.DecodeMoveQueueAddAck(resp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint8(0), ack.Status)
}

// TestLedCtrlRoundTripByteParity is spec.md §8 scenario 2.
func TestLedCtrlRoundTripByteParity(t *testing.T) {
	c := newTestCore(t)

	reqBuf := make([]byte, 9)
	_, err := protocol.EncodeLedCtrlReq(reqBuf, protocol.LedCtrlReq{
		FrameID: 0x10, LedMask: 0x01, Mode: 0x02, FrequencyCentiHz: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0x07, 0x10, 0x01, 0x02, 0x00, 0xC8, 0xDC, 0x55}, reqBuf)

	resp, err := c.Router.Dispatch(reqBuf)
	require.NoError(t, err)
	decoded, ok, err := protocol.DecodeLedCtrlResp(resp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte(0x10), decoded.FrameID)
}

// TestQueueAdmissionAndNaturalDone is spec.md §8 scenario 3.
func TestQueueAdmissionAndNaturalDone(t *testing.T) {
	c := newTestCore(t)

	seg := motion.Segment{
		FrameID: 1, DirMask: 0x07,
		V: [axis.Count]uint16{10, 10, 10},
		S: [axis.Count]uint32{1000, 1000, 1000},
	}
	status := c.Executor.Push(seg)
	require.Equal(t, motion.StatusOK, status)
	state, _, _ := c.Executor.Snapshot()
	assert.Equal(t, motion.Queued, state)

	started, _ := c.Executor.StartMove()
	require.True(t, started)
	state, _, _ = c.Executor.Snapshot()
	assert.Equal(t, motion.Running, state)

	c.ControlTick()
	for i := 0; i < 2_000_000; i++ {
		state, _, hasActive := c.Executor.Snapshot()
		if state == motion.Done {
			break
		}
		if !hasActive {
			break
		}
		c.StepTick()
	}

	state, _, _ = c.Executor.Snapshot()
	assert.Equal(t, motion.Done, state)

	out := make([]byte, 42)
	n, ok, err := c.RespFifo.Pop(out)
	require.NoError(t, err)
	require.True(t, ok)
	moveEnd, err := protocol.DecodeMoveEndResp(out[:n])
	require.NoError(t, err)
	assert.Equal(t, byte(1), moveEnd.FrameID)
	assert.Equal(t, protocol.MoveEndNatural, moveEnd.Status)
}

// TestQueueFull is spec.md §8 scenario 4.
func TestQueueFull(t *testing.T) {
	c := newTestCore(t)
	seg := motion.Segment{FrameID: 1, S: [axis.Count]uint32{10, 10, 10}}
	for i := 0; i < c.cfg.MoveQueueCapacity; i++ {
		require.Equal(t, motion.StatusOK, c.Executor.Push(seg))
	}
	status := c.Executor.Push(seg)
	assert.Equal(t, motion.StatusQueueFull, status)
	assert.Equal(t, c.cfg.MoveQueueCapacity, c.Executor.Queue.Len())
	assert.Equal(t, uint32(10*c.cfg.MoveQueueCapacity), c.Executor.Queue.RemSteps(axis.X))
}

// TestEStopDuringMotion is spec.md §8 scenario 5.
func TestEStopDuringMotion(t *testing.T) {
	c := newTestCore(t)
	seg := motion.Segment{FrameID: 9, DirMask: 0x07, V: [axis.Count]uint16{5, 5, 5}, S: [axis.Count]uint32{10000, 10000, 10000}}
	require.Equal(t, motion.StatusOK, c.Executor.Push(seg))
	started, _ := c.Executor.StartMove()
	require.True(t, started)

	c.ControlTick()
	for i := 0; i < 50; i++ {
		c.StepTick()
	}

	c.Safety.AssertEstop()

	state, _, _ := c.Executor.Snapshot()
	assert.Equal(t, motion.Idle, state)
	assert.Equal(t, 0, c.Executor.Queue.Len())
	for a := 0; a < axis.Count; a++ {
		var st axis.State
		c.Executor.WithAxes(func(axes *[axis.Count]axis.State) { st = axes[a] })
		assert.Equal(t, uint8(0), st.StepHighTicks)
	}

	out := make([]byte, 42)
	n, ok, err := c.RespFifo.Pop(out)
	require.NoError(t, err)
	require.True(t, ok)
	moveEnd, err := protocol.DecodeMoveEndResp(out[:n])
	require.NoError(t, err)
	assert.Equal(t, byte(9), moveEnd.FrameID)
	assert.Equal(t, protocol.MoveEndEmergency, moveEnd.Status)
}

// TestSpiBackPressure is spec.md §8 scenario 6.
func TestSpiBackPressure(t *testing.T) {
	c := newTestCore(t)
	// Fill RxQueue to capacity directly, standing in for a burst of rounds
	// whose requests outpace the main poll loop draining them.
	filler := make([]byte, 4)
	_, _ = protocol.EncodeStartMoveReq(filler, protocol.StartMoveReq{FrameID: 1})
	for !c.RxQueue.Full() {
		require.NoError(t, c.RxQueue.Push(filler))
	}

	reqBuf := make([]byte, 42)
	_, err := protocol.EncodeMoveQueueAddReq(reqBuf, protocol.MoveQueueAddReq{FrameID: 7})
	require.NoError(t, err)

	reason := c.Transport.OnRoundComplete(padTo42(reqBuf))
	assert.Equal(t, "QUEUE_FULL", reason)
	assert.Equal(t, protocol.HandshakeBusy, c.Transport.NextHandshake())
}

func padTo42(frame []byte) []byte {
	out := make([]byte, 42)
	copy(out, frame)
	for i := len(frame); i < 42; i++ {
		out[i] = protocol.PollPrimary
	}
	return out
}
