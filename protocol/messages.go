// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

import "cncio.dev/x/motioncore/cncerr"

// MoveQueueAddReq is the MOVE_QUEUE_ADD request payload, spec.md §6:
// direction mask, per-axis target velocity and step count, and per-axis PID
// gains for the segment. 42 bytes on the wire, the protocol maximum.
type MoveQueueAddReq struct {
	FrameID byte
	DirMask byte
	Vx, Vy, Vz          uint16
	Sx, Sy, Sz          uint32
	KpX, KpY, KpZ       uint16
	KiX, KiY, KiZ       uint16
	KdX, KdY, KdZ       uint16
}

const lenMoveQueueAddReq = 42

// EncodeMoveQueueAddReq writes req into buf, which must be at least
// lenMoveQueueAddReq bytes. Uses byte-XOR parity.
func EncodeMoveQueueAddReq(buf []byte, req MoveQueueAddReq) (int, error) {
	if len(buf) < lenMoveQueueAddReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_QUEUE_ADD request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpMoveQueueAdd)
	buf[2] = req.FrameID
	buf[3] = req.DirMask
	putU16(buf, 4, req.Vx)
	putU16(buf, 6, req.Vy)
	putU16(buf, 8, req.Vz)
	putU32(buf, 10, req.Sx)
	putU32(buf, 14, req.Sy)
	putU32(buf, 18, req.Sz)
	putU16(buf, 22, req.KpX)
	putU16(buf, 24, req.KpY)
	putU16(buf, 26, req.KpZ)
	putU16(buf, 28, req.KiX)
	putU16(buf, 30, req.KiY)
	putU16(buf, 32, req.KiZ)
	putU16(buf, 34, req.KdX)
	putU16(buf, 36, req.KdY)
	putU16(buf, 38, req.KdZ)
	writeParity(buf, parityByte, 40)
	buf[41] = ReqTail
	return lenMoveQueueAddReq, nil
}

// DecodeMoveQueueAddReq parses buf[:lenMoveQueueAddReq]. ok reports whether
// the parity byte matched; callers decide what to do with a mismatch.
func DecodeMoveQueueAddReq(buf []byte) (req MoveQueueAddReq, ok bool, err error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpMoveQueueAdd, lenMoveQueueAddReq); err != nil {
		return MoveQueueAddReq{}, false, err
	}
	req = MoveQueueAddReq{
		FrameID: buf[2],
		DirMask: buf[3],
		Vx:      getU16(buf, 4),
		Vy:      getU16(buf, 6),
		Vz:      getU16(buf, 8),
		Sx:      getU32(buf, 10),
		Sy:      getU32(buf, 14),
		Sz:      getU32(buf, 18),
		KpX:     getU16(buf, 22),
		KpY:     getU16(buf, 24),
		KpZ:     getU16(buf, 26),
		KiX:     getU16(buf, 28),
		KiY:     getU16(buf, 30),
		KiZ:     getU16(buf, 32),
		KdX:     getU16(buf, 34),
		KdY:     getU16(buf, 36),
		KdZ:     getU16(buf, 38),
	}
	return req, checkParity(buf, parityByte, 40), nil
}

// MoveQueueAddAck is the MOVE_QUEUE_ADD response: admission status only.
type MoveQueueAddAck struct {
	FrameID byte
	Status  uint8
}

const lenMoveQueueAddAck = 6

// EncodeMoveQueueAddAck writes ack into buf. Uses bit parity, matching
// spec.md §8 scenario 1's literal test vector.
func EncodeMoveQueueAddAck(buf []byte, ack MoveQueueAddAck) (int, error) {
	if len(buf) < lenMoveQueueAddAck {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_QUEUE_ADD ack")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpMoveQueueAddAck)
	buf[2] = ack.FrameID
	buf[3] = ack.Status
	writeParity(buf, parityBit, 4)
	buf[5] = RespTail
	return lenMoveQueueAddAck, nil
}

// DecodeMoveQueueAddAck parses buf[:lenMoveQueueAddAck].
func DecodeMoveQueueAddAck(buf []byte) (ack MoveQueueAddAck, ok bool, err error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpMoveQueueAddAck, lenMoveQueueAddAck); err != nil {
		return MoveQueueAddAck{}, false, err
	}
	ack = MoveQueueAddAck{FrameID: buf[2], Status: buf[3]}
	return ack, checkParity(buf, parityBit, 4), nil
}

// MoveQueueStatusReq carries no payload beyond the frame id.
type MoveQueueStatusReq struct {
	FrameID byte
}

const lenMoveQueueStatusReq = 4

func EncodeMoveQueueStatusReq(buf []byte, req MoveQueueStatusReq) (int, error) {
	if len(buf) < lenMoveQueueStatusReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_QUEUE_STATUS request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpMoveQueueStatus)
	buf[2] = req.FrameID
	buf[3] = ReqTail
	return lenMoveQueueStatusReq, nil
}

func DecodeMoveQueueStatusReq(buf []byte) (MoveQueueStatusReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpMoveQueueStatus, lenMoveQueueStatusReq); err != nil {
		return MoveQueueStatusReq{}, err
	}
	return MoveQueueStatusReq{FrameID: buf[2]}, nil
}

// MoveQueueStatusResp reports the executor's FSM state, per-axis PID error
// (clamped to int8) and per-axis percent-complete, spec.md §4.3 and §6.
type MoveQueueStatusResp struct {
	FrameID byte
	State   uint8
	PidErr  [3]int8
	Pct     [3]uint8
}

const lenMoveQueueStatusResp = 12

func EncodeMoveQueueStatusResp(buf []byte, r MoveQueueStatusResp) (int, error) {
	if len(buf) < lenMoveQueueStatusResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_QUEUE_STATUS response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpMoveQueueStatus)
	buf[2] = r.FrameID
	buf[3] = r.State
	buf[4] = byte(r.PidErr[0])
	buf[5] = byte(r.PidErr[1])
	buf[6] = byte(r.PidErr[2])
	buf[7] = r.Pct[0]
	buf[8] = r.Pct[1]
	buf[9] = r.Pct[2]
	writeParity(buf, parityBit, 10)
	buf[11] = RespTail
	return lenMoveQueueStatusResp, nil
}

func DecodeMoveQueueStatusResp(buf []byte) (r MoveQueueStatusResp, ok bool, err error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpMoveQueueStatus, lenMoveQueueStatusResp); err != nil {
		return MoveQueueStatusResp{}, false, err
	}
	r = MoveQueueStatusResp{
		FrameID: buf[2],
		State:   buf[3],
		PidErr:  [3]int8{int8(buf[4]), int8(buf[5]), int8(buf[6])},
		Pct:     [3]uint8{buf[7], buf[8], buf[9]},
	}
	return r, checkParity(buf, parityBit, 10), nil
}

// StartMoveReq carries no payload beyond the frame id.
type StartMoveReq struct {
	FrameID byte
}

const lenStartMoveReq = 4

func EncodeStartMoveReq(buf []byte, req StartMoveReq) (int, error) {
	if len(buf) < lenStartMoveReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for START_MOVE request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpStartMove)
	buf[2] = req.FrameID
	buf[3] = ReqTail
	return lenStartMoveReq, nil
}

func DecodeStartMoveReq(buf []byte) (StartMoveReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpStartMove, lenStartMoveReq); err != nil {
		return StartMoveReq{}, err
	}
	return StartMoveReq{FrameID: buf[2]}, nil
}

// StartMoveResp reports admission status and the resulting queue depth.
// No parity byte: 6 bytes is the envelope plus two payload bytes exactly.
type StartMoveResp struct {
	FrameID byte
	Status  uint8
	Depth   uint8
}

const lenStartMoveResp = 6

func EncodeStartMoveResp(buf []byte, r StartMoveResp) (int, error) {
	if len(buf) < lenStartMoveResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for START_MOVE response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpStartMove)
	buf[2] = r.FrameID
	buf[3] = r.Status
	buf[4] = r.Depth
	buf[5] = RespTail
	return lenStartMoveResp, nil
}

func DecodeStartMoveResp(buf []byte) (StartMoveResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpStartMove, lenStartMoveResp); err != nil {
		return StartMoveResp{}, err
	}
	return StartMoveResp{FrameID: buf[2], Status: buf[3], Depth: buf[4]}, nil
}

// MoveEndReq carries no payload beyond the frame id.
type MoveEndReq struct {
	FrameID byte
}

const lenMoveEndReq = 4

func EncodeMoveEndReq(buf []byte, req MoveEndReq) (int, error) {
	if len(buf) < lenMoveEndReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_END request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpMoveEnd)
	buf[2] = req.FrameID
	buf[3] = ReqTail
	return lenMoveEndReq, nil
}

func DecodeMoveEndReq(buf []byte) (MoveEndReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpMoveEnd, lenMoveEndReq); err != nil {
		return MoveEndReq{}, err
	}
	return MoveEndReq{FrameID: buf[2]}, nil
}

// MoveEndResp reports why the segment ended: MoveEndNatural, MoveEndHost or
// MoveEndEmergency.
type MoveEndResp struct {
	FrameID byte
	Status  uint8
}

const lenMoveEndResp = 5

func EncodeMoveEndResp(buf []byte, r MoveEndResp) (int, error) {
	if len(buf) < lenMoveEndResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for MOVE_END response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpMoveEnd)
	buf[2] = r.FrameID
	buf[3] = r.Status
	buf[4] = RespTail
	return lenMoveEndResp, nil
}

func DecodeMoveEndResp(buf []byte) (MoveEndResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpMoveEnd, lenMoveEndResp); err != nil {
		return MoveEndResp{}, err
	}
	return MoveEndResp{FrameID: buf[2], Status: buf[3]}, nil
}

// LedCtrlReq sets a software-PWM LED's mask, blink mode and blink frequency
// in centi-hertz (spec.md §8 scenario 2 / §9's PSC/ARR discussion).
type LedCtrlReq struct {
	FrameID          byte
	LedMask          byte
	Mode             byte
	FrequencyCentiHz uint16
}

const lenLedCtrlReq = 9

// EncodeLedCtrlReq writes req into buf using byte-XOR parity. Matches
// spec.md §8 scenario 2's literal byte vector for {frameId:0x10,
// ledMask:0x01, mode:2, frequency:200}.
func EncodeLedCtrlReq(buf []byte, req LedCtrlReq) (int, error) {
	if len(buf) < lenLedCtrlReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for LED_CTRL request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpLedCtrl)
	buf[2] = req.FrameID
	buf[3] = req.LedMask
	buf[4] = req.Mode
	putU16(buf, 5, req.FrequencyCentiHz)
	writeParity(buf, parityByte, 7)
	buf[8] = ReqTail
	return lenLedCtrlReq, nil
}

func DecodeLedCtrlReq(buf []byte) (req LedCtrlReq, ok bool, err error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpLedCtrl, lenLedCtrlReq); err != nil {
		return LedCtrlReq{}, false, err
	}
	req = LedCtrlReq{
		FrameID:          buf[2],
		LedMask:          buf[3],
		Mode:             buf[4],
		FrequencyCentiHz: getU16(buf, 5),
	}
	return req, checkParity(buf, parityByte, 7), nil
}

// LedCtrlResp echoes the applied mask alongside a status code.
type LedCtrlResp struct {
	FrameID     byte
	Status      uint8
	AppliedMask byte
}

const lenLedCtrlResp = 7

func EncodeLedCtrlResp(buf []byte, r LedCtrlResp) (int, error) {
	if len(buf) < lenLedCtrlResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for LED_CTRL response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpLedCtrl)
	buf[2] = r.FrameID
	buf[3] = r.Status
	buf[4] = r.AppliedMask
	writeParity(buf, parityByte, 5)
	buf[6] = RespTail
	return lenLedCtrlResp, nil
}

func DecodeLedCtrlResp(buf []byte) (r LedCtrlResp, ok bool, err error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpLedCtrl, lenLedCtrlResp); err != nil {
		return LedCtrlResp{}, false, err
	}
	r = LedCtrlResp{FrameID: buf[2], Status: buf[3], AppliedMask: buf[4]}
	return r, checkParity(buf, parityByte, 5), nil
}

// SetOriginReq rezeroes up to three axes. Mask uses the low 3 bits (X,Y,Z).
// Mode is carried on the wire and decoded, but the SET_ORIGIN handler does
// not act on it: every masked axis takes its current position as origin.
type SetOriginReq struct {
	FrameID byte
	Mask    byte
	Mode    byte
}

const lenSetOriginReq = 6

func EncodeSetOriginReq(buf []byte, req SetOriginReq) (int, error) {
	if len(buf) < lenSetOriginReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_ORIGIN request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpSetOrigin)
	buf[2] = req.FrameID
	buf[3] = req.Mask & 0x07
	buf[4] = req.Mode
	buf[5] = ReqTail
	return lenSetOriginReq, nil
}

func DecodeSetOriginReq(buf []byte) (SetOriginReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpSetOrigin, lenSetOriginReq); err != nil {
		return SetOriginReq{}, err
	}
	return SetOriginReq{FrameID: buf[2], Mask: buf[3] & 0x07, Mode: buf[4]}, nil
}

// SetOriginResp reports the resulting absolute position of all three axes
// after rezeroing, regardless of which were masked in.
type SetOriginResp struct {
	FrameID    byte
	X0, Y0, Z0 int32
}

const lenSetOriginResp = 16

func EncodeSetOriginResp(buf []byte, r SetOriginResp) (int, error) {
	if len(buf) < lenSetOriginResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_ORIGIN response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpSetOrigin)
	buf[2] = r.FrameID
	putU32(buf, 3, uint32(r.X0))
	putU32(buf, 7, uint32(r.Y0))
	putU32(buf, 11, uint32(r.Z0))
	buf[15] = RespTail
	return lenSetOriginResp, nil
}

func DecodeSetOriginResp(buf []byte) (SetOriginResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpSetOrigin, lenSetOriginResp); err != nil {
		return SetOriginResp{}, err
	}
	return SetOriginResp{
		FrameID: buf[2],
		X0:      int32(getU32(buf, 3)),
		Y0:      int32(getU32(buf, 7)),
		Z0:      int32(getU32(buf, 11)),
	}, nil
}

// EncoderStatusReq carries no payload beyond the frame id.
type EncoderStatusReq struct {
	FrameID byte
}

const lenEncoderStatusReq = 4

func EncodeEncoderStatusReq(buf []byte, req EncoderStatusReq) (int, error) {
	if len(buf) < lenEncoderStatusReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for ENCODER_STATUS request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpEncoderStatus)
	buf[2] = req.FrameID
	buf[3] = ReqTail
	return lenEncoderStatusReq, nil
}

func DecodeEncoderStatusReq(buf []byte) (EncoderStatusReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpEncoderStatus, lenEncoderStatusReq); err != nil {
		return EncoderStatusReq{}, err
	}
	return EncoderStatusReq{FrameID: buf[2]}, nil
}

// EncoderStatusResp reports per-axis PID error (clamped to int8), a
// one-byte scan-to-scan delta summary, and the full unwrapped absolute
// position for all three axes, spec.md §4.7.
type EncoderStatusResp struct {
	FrameID            byte
	PidErr             [3]int8
	Delta              int8
	AbsX, AbsY, AbsZ   int32
}

const lenEncoderStatusResp = 20

func EncodeEncoderStatusResp(buf []byte, r EncoderStatusResp) (int, error) {
	if len(buf) < lenEncoderStatusResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for ENCODER_STATUS response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpEncoderStatus)
	buf[2] = r.FrameID
	buf[3] = byte(r.PidErr[0])
	buf[4] = byte(r.PidErr[1])
	buf[5] = byte(r.PidErr[2])
	buf[6] = byte(r.Delta)
	putU32(buf, 7, uint32(r.AbsX))
	putU32(buf, 11, uint32(r.AbsY))
	putU32(buf, 15, uint32(r.AbsZ))
	buf[19] = RespTail
	return lenEncoderStatusResp, nil
}

func DecodeEncoderStatusResp(buf []byte) (EncoderStatusResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpEncoderStatus, lenEncoderStatusResp); err != nil {
		return EncoderStatusResp{}, err
	}
	return EncoderStatusResp{
		FrameID: buf[2],
		PidErr:  [3]int8{int8(buf[3]), int8(buf[4]), int8(buf[5])},
		Delta:   int8(buf[6]),
		AbsX:    int32(getU32(buf, 7)),
		AbsY:    int32(getU32(buf, 11)),
		AbsZ:    int32(getU32(buf, 15)),
	}, nil
}

// SetMicrostepsReq sets the microstep resolution for a single axis (0=X,
// 1=Y, 2=Z).
type SetMicrostepsReq struct {
	FrameID byte
	Axis    byte
	Ms      uint16
}

const lenSetMicrostepsReq = 7

func EncodeSetMicrostepsReq(buf []byte, req SetMicrostepsReq) (int, error) {
	if len(buf) < lenSetMicrostepsReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_MICROSTEPS request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpSetMicrosteps)
	buf[2] = req.FrameID
	buf[3] = req.Axis
	putU16(buf, 4, req.Ms)
	buf[6] = ReqTail
	return lenSetMicrostepsReq, nil
}

func DecodeSetMicrostepsReq(buf []byte) (SetMicrostepsReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpSetMicrosteps, lenSetMicrostepsReq); err != nil {
		return SetMicrostepsReq{}, err
	}
	return SetMicrostepsReq{FrameID: buf[2], Axis: buf[3], Ms: getU16(buf, 4)}, nil
}

// SetMicrostepsResp echoes the microstepping value actually applied,
// resolving spec.md §9's open question in favor of a detailed ACK rather
// than a bare status byte.
type SetMicrostepsResp struct {
	FrameID byte
	Ms      uint16
}

const lenSetMicrostepsResp = 6

func EncodeSetMicrostepsResp(buf []byte, r SetMicrostepsResp) (int, error) {
	if len(buf) < lenSetMicrostepsResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_MICROSTEPS response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpSetMicrosteps)
	buf[2] = r.FrameID
	putU16(buf, 3, r.Ms)
	buf[5] = RespTail
	return lenSetMicrostepsResp, nil
}

func DecodeSetMicrostepsResp(buf []byte) (SetMicrostepsResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpSetMicrosteps, lenSetMicrostepsResp); err != nil {
		return SetMicrostepsResp{}, err
	}
	return SetMicrostepsResp{FrameID: buf[2], Ms: getU16(buf, 3)}, nil
}

// SetMicrostepsAxesReq sets microstep resolution for all three axes in one
// round.
type SetMicrostepsAxesReq struct {
	FrameID              byte
	MsX, MsY, MsZ uint16
}

const lenSetMicrostepsAxesReq = 10

func EncodeSetMicrostepsAxesReq(buf []byte, req SetMicrostepsAxesReq) (int, error) {
	if len(buf) < lenSetMicrostepsAxesReq {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_MICROSTEPS_AXES request")
	}
	buf[0] = ReqHeader
	buf[1] = byte(OpSetMicrostepsAxes)
	buf[2] = req.FrameID
	putU16(buf, 3, req.MsX)
	putU16(buf, 5, req.MsY)
	putU16(buf, 7, req.MsZ)
	buf[9] = ReqTail
	return lenSetMicrostepsAxesReq, nil
}

func DecodeSetMicrostepsAxesReq(buf []byte) (SetMicrostepsAxesReq, error) {
	if err := validateEnvelope(buf, ReqHeader, ReqTail, OpSetMicrostepsAxes, lenSetMicrostepsAxesReq); err != nil {
		return SetMicrostepsAxesReq{}, err
	}
	return SetMicrostepsAxesReq{
		FrameID: buf[2],
		MsX:     getU16(buf, 3),
		MsY:     getU16(buf, 5),
		MsZ:     getU16(buf, 7),
	}, nil
}

// SetMicrostepsAxesResp echoes the applied per-axis values, the 10-byte
// detailed ACK spec.md §9's open question resolves this request to.
type SetMicrostepsAxesResp struct {
	FrameID              byte
	MsX, MsY, MsZ uint16
}

const lenSetMicrostepsAxesResp = 10

func EncodeSetMicrostepsAxesResp(buf []byte, r SetMicrostepsAxesResp) (int, error) {
	if len(buf) < lenSetMicrostepsAxesResp {
		return 0, cncerr.New(cncerr.ArgError, "buffer too small for SET_MICROSTEPS_AXES response")
	}
	buf[0] = RespHeader
	buf[1] = byte(OpSetMicrostepsAxes)
	buf[2] = r.FrameID
	putU16(buf, 3, r.MsX)
	putU16(buf, 5, r.MsY)
	putU16(buf, 7, r.MsZ)
	buf[9] = RespTail
	return lenSetMicrostepsAxesResp, nil
}

func DecodeSetMicrostepsAxesResp(buf []byte) (SetMicrostepsAxesResp, error) {
	if err := validateEnvelope(buf, RespHeader, RespTail, OpSetMicrostepsAxes, lenSetMicrostepsAxesResp); err != nil {
		return SetMicrostepsAxesResp{}, err
	}
	return SetMicrostepsAxesResp{
		FrameID: buf[2],
		MsX:     getU16(buf, 3),
		MsY:     getU16(buf, 5),
		MsZ:     getU16(buf, 7),
	}, nil
}
