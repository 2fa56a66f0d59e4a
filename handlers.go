// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package motioncore

import (
	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/ledsvc"
	"cncio.dev/x/motioncore/motion"
	"cncio.dev/x/motioncore/protocol"
)

// registerHandlers binds every opcode in spec.md §4.9 to its handler. Called
// once from New, before StepTick/ControlTick/Poll are ever invoked.
func (c *Core) registerHandlers() {
	c.Router.Register(protocol.OpMoveQueueAdd, c.handleMoveQueueAdd)
	c.Router.Register(protocol.OpMoveQueueStatus, c.handleMoveQueueStatus)
	c.Router.Register(protocol.OpStartMove, c.handleStartMove)
	c.Router.Register(protocol.OpMoveEnd, c.handleMoveEnd)
	c.Router.Register(protocol.OpLedCtrl, c.handleLedCtrl)
	c.Router.Register(protocol.OpSetOrigin, c.handleSetOrigin)
	c.Router.Register(protocol.OpEncoderStatus, c.handleEncoderStatus)
	c.Router.Register(protocol.OpSetMicrosteps, c.handleSetMicrosteps)
	c.Router.Register(protocol.OpSetMicrostepsAxes, c.handleSetMicrostepsAxes)
}

func (c *Core) handleMoveQueueAdd(req []byte) ([]byte, error) {
	r, ok, err := protocol.DecodeMoveQueueAddReq(req)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.log.Printf("MOVE_QUEUE_ADD parity mismatch, frame %d", r.FrameID)
	}

	status := protocol.StatusQueueFull
	if c.Safety.Admit() {
		seg := motion.Segment{
			FrameID: r.FrameID,
			DirMask: r.DirMask,
			V:       [axis.Count]uint16{r.Vx, r.Vy, r.Vz},
			S:       [axis.Count]uint32{r.Sx, r.Sy, r.Sz},
			Kp:      [axis.Count]uint16{r.KpX, r.KpY, r.KpZ},
			Ki:      [axis.Count]uint16{r.KiX, r.KiY, r.KiZ},
			Kd:      [axis.Count]uint16{r.KdX, r.KdY, r.KdZ},
		}
		status = c.Executor.Push(seg)
	} else {
		status = protocol.StatusInvalid
		c.log.Printf("MOVE_QUEUE_ADD blocked_safety frame %d", r.FrameID)
	}

	buf := make([]byte, 6)
	if _, err := protocol.EncodeMoveQueueAddAck(buf, protocol.MoveQueueAddAck{FrameID: r.FrameID, Status: status}); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleMoveQueueStatus(req []byte) ([]byte, error) {
	r, err := protocol.DecodeMoveQueueStatusReq(req)
	if err != nil {
		return nil, err
	}
	state, _, _ := c.Executor.Snapshot()
	pct := c.Executor.Progress()

	resp := protocol.MoveQueueStatusResp{
		FrameID: r.FrameID,
		State:   uint8(state),
		Pct:     pct,
	}
	for a := 0; a < axis.Count; a++ {
		resp.PidErr[a] = clampI8(c.lastPidErr[a])
	}

	buf := make([]byte, 12)
	if _, err := protocol.EncodeMoveQueueStatusResp(buf, resp); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleStartMove(req []byte) ([]byte, error) {
	r, err := protocol.DecodeStartMoveReq(req)
	if err != nil {
		return nil, err
	}

	status := protocol.StatusInvalid
	var depth int
	if c.Safety.Admit() {
		started, d := c.Executor.StartMove()
		depth = d
		if started {
			status = protocol.StatusOK
		}
	} else {
		_, depth, _ = c.Executor.Snapshot()
		c.log.Printf("START_MOVE blocked_safety frame %d", r.FrameID)
	}

	buf := make([]byte, 6)
	if _, err := protocol.EncodeStartMoveResp(buf, protocol.StartMoveResp{FrameID: r.FrameID, Status: status, Depth: uint8(depth)}); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleMoveEnd(req []byte) ([]byte, error) {
	r, err := protocol.DecodeMoveEndReq(req)
	if err != nil {
		return nil, err
	}
	_, _, hadActive := c.Executor.Snapshot()
	c.Executor.HostStop()
	if hadActive {
		// Executor.EmitMoveEnd already pushed the MOVE_END(host) frame.
		return nil, nil
	}
	buf := make([]byte, 5)
	if _, err := protocol.EncodeMoveEndResp(buf, protocol.MoveEndResp{FrameID: r.FrameID, Status: protocol.MoveEndHost}); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleLedCtrl(req []byte) ([]byte, error) {
	r, ok, err := protocol.DecodeLedCtrlReq(req)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.log.Printf("LED_CTRL parity mismatch, frame %d", r.FrameID)
	}

	status := uint8(ledsvc.StatusOK)
	var applied byte
	if c.Led != nil {
		applied, status = c.Led.Apply(r.LedMask, ledsvc.Mode(r.Mode), r.FrequencyCentiHz)
	}

	buf := make([]byte, 7)
	if _, err := protocol.EncodeLedCtrlResp(buf, protocol.LedCtrlResp{FrameID: r.FrameID, Status: status, AppliedMask: applied}); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleSetOrigin(req []byte) ([]byte, error) {
	r, err := protocol.DecodeSetOriginReq(req)
	if err != nil {
		return nil, err
	}
	for a := 0; a < axis.Count; a++ {
		if r.Mask&(1<<uint(a)) != 0 {
			c.Encoders[a].SetOrigin()
		}
	}

	resp := protocol.SetOriginResp{
		FrameID: r.FrameID,
		X0:      c.Encoders[axis.X].AbsPosition(),
		Y0:      c.Encoders[axis.Y].AbsPosition(),
		Z0:      c.Encoders[axis.Z].AbsPosition(),
	}
	buf := make([]byte, 16)
	if _, err := protocol.EncodeSetOriginResp(buf, resp); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleEncoderStatus(req []byte) ([]byte, error) {
	r, err := protocol.DecodeEncoderStatusReq(req)
	if err != nil {
		return nil, err
	}
	resp := protocol.EncoderStatusResp{
		FrameID: r.FrameID,
		AbsX:    c.Encoders[axis.X].AbsPosition(),
		AbsY:    c.Encoders[axis.Y].AbsPosition(),
		AbsZ:    c.Encoders[axis.Z].AbsPosition(),
		Delta:   c.lastEncDelta[axis.X],
	}
	for a := 0; a < axis.Count; a++ {
		resp.PidErr[a] = clampI8(c.lastPidErr[a])
	}
	buf := make([]byte, 20)
	if _, err := protocol.EncodeEncoderStatusResp(buf, resp); err != nil {
		return nil, err
	}
	return buf, nil
}

// wireToFactor converts the wire BE16 microstep value to the applied
// factor: 0 means 256, per spec.md §6.
func wireToFactor(v uint16) uint16 {
	if v == 0 {
		return 256
	}
	return v
}

func (c *Core) handleSetMicrosteps(req []byte) ([]byte, error) {
	r, err := protocol.DecodeSetMicrostepsReq(req)
	if err != nil {
		return nil, err
	}
	factor := wireToFactor(r.Ms)
	if int(r.Axis) < axis.Count {
		c.microstepFactor[r.Axis] = factor
	}
	buf := make([]byte, 6)
	if _, err := protocol.EncodeSetMicrostepsResp(buf, protocol.SetMicrostepsResp{FrameID: r.FrameID, Ms: r.Ms}); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Core) handleSetMicrostepsAxes(req []byte) ([]byte, error) {
	r, err := protocol.DecodeSetMicrostepsAxesReq(req)
	if err != nil {
		return nil, err
	}
	c.microstepFactor[axis.X] = wireToFactor(r.MsX)
	c.microstepFactor[axis.Y] = wireToFactor(r.MsY)
	c.microstepFactor[axis.Z] = wireToFactor(r.MsZ)

	buf := make([]byte, 10)
	resp := protocol.SetMicrostepsAxesResp{FrameID: r.FrameID, MsX: r.MsX, MsY: r.MsY, MsZ: r.MsZ}
	if _, err := protocol.EncodeSetMicrostepsAxesResp(buf, resp); err != nil {
		return nil, err
	}
	return buf, nil
}

func clampI8(v int32) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}
