// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestMoveQueueAddAckWireBytes pins the literal encoded bytes from
// spec.md §8 scenario 1.
func TestMoveQueueAddAckWireBytes(t *testing.T) {
	buf := make([]byte, lenMoveQueueAddAck)
	n, err := EncodeMoveQueueAddAck(buf, MoveQueueAddAck{FrameID: 0x42, Status: 0})
	require.NoError(t, err)
	require.Equal(t, lenMoveQueueAddAck, n)

	want := []byte{0xAB, 0x01, 0x42, 0x00, bitXOR(buf, 1, 4), 0x54}
	assert.Equal(t, want, buf)

	got, ok, err := DecodeMoveQueueAddAck(buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, MoveQueueAddAck{FrameID: 0x42, Status: 0}, got)
}

// TestLedCtrlReqWireBytes pins the literal encoded bytes from spec.md §8
// scenario 2.
func TestLedCtrlReqWireBytes(t *testing.T) {
	buf := make([]byte, lenLedCtrlReq)
	n, err := EncodeLedCtrlReq(buf, LedCtrlReq{
		FrameID:          0x10,
		LedMask:          0x01,
		Mode:             0x02,
		FrequencyCentiHz: 200,
	})
	require.NoError(t, err)
	require.Equal(t, lenLedCtrlReq, n)

	want := []byte{0xAA, 0x07, 0x10, 0x01, 0x02, 0x00, 0xC8, 0xDC, 0x55}
	assert.Equal(t, want, buf)

	got, ok, err := DecodeLedCtrlReq(buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, LedCtrlReq{FrameID: 0x10, LedMask: 0x01, Mode: 0x02, FrequencyCentiHz: 200}, got)
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	buf := make([]byte, lenMoveQueueAddAck)
	_, _ = EncodeMoveQueueAddAck(buf, MoveQueueAddAck{FrameID: 1, Status: 0})
	buf[0] = 0x00
	_, _, err := DecodeMoveQueueAddAck(buf)
	require.Error(t, err)
}

func TestDecodeRejectsBadTail(t *testing.T) {
	buf := make([]byte, lenMoveQueueAddAck)
	_, _ = EncodeMoveQueueAddAck(buf, MoveQueueAddAck{FrameID: 1, Status: 0})
	buf[len(buf)-1] = 0x00
	_, _, err := DecodeMoveQueueAddAck(buf)
	require.Error(t, err)
}

func TestDecodeReportsParityMismatch(t *testing.T) {
	buf := make([]byte, lenMoveQueueAddAck)
	_, _ = EncodeMoveQueueAddAck(buf, MoveQueueAddAck{FrameID: 1, Status: 0})
	buf[3] ^= 0x01
	got, ok, err := DecodeMoveQueueAddAck(buf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint8(0x01), got.Status)
}

// TestMoveQueueAddRoundTrip checks arbitrary request payloads survive
// encode/decode exactly, with parity always matching on an untampered
// frame.
func TestMoveQueueAddRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		req := MoveQueueAddReq{
			FrameID: byte(rapid.Uint8().Draw(rt, "frameID")),
			DirMask: byte(rapid.Uint8().Draw(rt, "dirMask")),
			Vx:      uint16(rapid.Uint16().Draw(rt, "vx")),
			Vy:      uint16(rapid.Uint16().Draw(rt, "vy")),
			Vz:      uint16(rapid.Uint16().Draw(rt, "vz")),
			Sx:      uint32(rapid.Uint32().Draw(rt, "sx")),
			Sy:      uint32(rapid.Uint32().Draw(rt, "sy")),
			Sz:      uint32(rapid.Uint32().Draw(rt, "sz")),
			KpX:     uint16(rapid.Uint16().Draw(rt, "kpx")),
			KiX:     uint16(rapid.Uint16().Draw(rt, "kix")),
			KdX:     uint16(rapid.Uint16().Draw(rt, "kdx")),
		}
		buf := make([]byte, lenMoveQueueAddReq)
		_, err := EncodeMoveQueueAddReq(buf, req)
		if err != nil {
			rt.Fatalf("encode: %v", err)
		}
		got, ok, err := DecodeMoveQueueAddReq(buf)
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if !ok {
			rt.Fatalf("parity mismatch on untampered frame")
		}
		if got != req {
			rt.Fatalf("round trip mismatch: got %+v want %+v", got, req)
		}
	})
}

func TestRouterDispatchesByOpcode(t *testing.T) {
	r := NewRouter()
	r.Register(OpLedCtrl, func(req []byte) ([]byte, error) {
		return []byte{0xAB, byte(OpLedCtrl), req[2], StatusOK, req[3], 0, RespTail}, nil
	})

	reqBuf := make([]byte, lenLedCtrlReq)
	_, err := EncodeLedCtrlReq(reqBuf, LedCtrlReq{FrameID: 5, LedMask: 0x03, Mode: 1, FrequencyCentiHz: 50})
	require.NoError(t, err)

	resp, err := r.Dispatch(reqBuf)
	require.NoError(t, err)
	assert.Equal(t, byte(5), resp[2])
}

func TestRouterUnknownOpcodeIsFrameError(t *testing.T) {
	r := NewRouter()
	_, err := r.Dispatch([]byte{0xAA, 0x7F, 0x00, 0x55})
	require.Error(t, err)
}

func TestRouterDuplicateRegistrationPanics(t *testing.T) {
	r := NewRouter()
	r.Register(OpStartMove, func(req []byte) ([]byte, error) { return nil, nil })
	assert.Panics(t, func() {
		r.Register(OpStartMove, func(req []byte) ([]byte, error) { return nil, nil })
	})
}
