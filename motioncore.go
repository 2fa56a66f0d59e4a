// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package motioncore is the repository root: it wires the HAL boundary, the
// protocol codec/router, the move-queue executor, the ramp/PID planner, the
// encoder trackers and the safety gate into one runnable Core, the way
// spec.md §2's data-flow diagram describes. It plays the role periph.go's
// driver registry plays for that library: a single place where every
// collaborator is constructed and registered before the scheduling loop
// (here, StepTick/ControlTick/Poll) starts running.
package motioncore

import (
	"log"

	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/cncerr"
	"cncio.dev/x/motioncore/config"
	"cncio.dev/x/motioncore/encoder"
	"cncio.dev/x/motioncore/hal"
	"cncio.dev/x/motioncore/ledsvc"
	"cncio.dev/x/motioncore/motion"
	"cncio.dev/x/motioncore/protocol"
	"cncio.dev/x/motioncore/queue"
	"cncio.dev/x/motioncore/ramp"
	"cncio.dev/x/motioncore/safety"
	"cncio.dev/x/motioncore/telemetry"
	"cncio.dev/x/motioncore/transport"
)

// stdLogAdapter routes cncerr.Logger calls through the standard library's
// log package, the teacher's own ambient logging style (periph's cmd/ tools
// and host/host.go both log through plain stdlib log rather than a
// structured logging library).
type stdLogAdapter struct{ l *log.Logger }

func (a stdLogAdapter) Printf(format string, args ...interface{}) { a.l.Printf(format, args...) }

// Pins bundles the HAL collaborators Core needs: one STEP/DIR/ENABLE output
// and one quadrature Counter per axis, one E-STOP input, and the SPI
// peripheral primitive. cmd/motiond supplies hal/halsim implementations;
// real firmware would supply register-backed ones (out of this core's
// scope per spec.md §1).
type Pins struct {
	Step   [axis.Count]hal.DigitalOut
	Dir    [axis.Count]hal.DigitalOut
	Enable [axis.Count]hal.DigitalOut
	Enc    [axis.Count]hal.Counter
	EStop  hal.DigitalIn
	SPI    hal.SPIPeripheral
}

// Core is the central aggregate: the only thing that mutates MoveQueue,
// AxisState, EncoderState, SafetyState and MotionState, per spec.md §3's
// ownership rule. StepTick and ControlTick are the only entry points
// reachable from interrupt-equivalent context.
type Core struct {
	cfg config.Config
	log cncerr.Logger

	pins Pins

	Executor  *motion.Executor
	Planner   *ramp.Planner
	Safety    *safety.Gate
	Encoders  [axis.Count]encoder.State
	RespFifo  *queue.Fifo
	RxQueue   *queue.Fifo
	Transport *transport.Transport
	Router    *protocol.Router
	Led       ledsvc.Service
	Telemetry telemetry.Sink

	microstepFactor [axis.Count]uint16
	lastPidErr      [axis.Count]int32
	lastEncDelta    [axis.Count]int8
}

// New constructs a fully wired Core: registers every Router handler and the
// safety gate's emergency handler before returning, matching spec.md §9's
// "dispatch table is resolved at init time; no dynamic registration after
// start."
func New(cfg config.Config, pins Pins, led ledsvc.Service, sink telemetry.Sink) *Core {
	if sink == nil {
		sink = telemetry.Discard{}
	}
	c := &Core{
		cfg:       cfg,
		log:       stdLogAdapter{log.Default()},
		pins:      pins,
		Executor:  motion.NewExecutor(cfg),
		Planner:   ramp.NewPlanner(cfg),
		RespFifo:  queue.New(cfg.RespFifoCapacity),
		RxQueue:   queue.New(cfg.MoveQueueCapacity),
		Router:    protocol.NewRouter(),
		Led:       led,
		Telemetry: sink,
	}
	for a := 0; a < axis.Count; a++ {
		c.microstepFactor[a] = 1
	}
	c.Transport = transport.New(c.RxQueue, pins.SPI)
	c.Safety = safety.New(c.Executor.EmergencyStop)

	c.Executor.OnBeginSegment = func(a axis.Index, dir bool, enable bool) {
		c.Planner.ResetAxis(a)
		if int(a) < len(c.pins.Dir) && c.pins.Dir[a] != nil {
			_ = c.pins.Dir[a].Out(hal.Level(dir))
		}
		if int(a) < len(c.pins.Enable) && c.pins.Enable[a] != nil {
			_ = c.pins.Enable[a].Out(hal.Level(enable))
		}
	}
	c.Executor.OnDisable = func(a axis.Index) {
		if int(a) < len(c.pins.Enable) && c.pins.Enable[a] != nil {
			_ = c.pins.Enable[a].Out(hal.Low)
		}
	}
	c.Executor.EmitMoveEnd = func(frameID byte, status uint8) {
		buf := make([]byte, 5)
		if _, err := protocol.EncodeMoveEndResp(buf, protocol.MoveEndResp{FrameID: frameID, Status: status}); err != nil {
			c.log.Printf("encode MOVE_END: %v", err)
			return
		}
		if err := c.RespFifo.Push(buf); err != nil {
			c.log.Printf("response fifo full, dropped MOVE_END frame %d: %v", frameID, err)
		}
	}

	for i := range c.Encoders {
		c.Encoders[i].Width = 32
		if pins.Enc[i] != nil {
			if _, width := pins.Enc[i].Read(); width != 0 {
				c.Encoders[i].Width = width
			}
		}
	}

	c.registerHandlers()
	return c
}

// Config returns the Core's configuration, primarily for tests.
func (c *Core) Config() config.Config { return c.cfg }
