// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command motiond is a host-side harness that wires a simulated HAL to
// motioncore.Core and drives the step tick, control tick and SPI DMA rounds
// from goroutines standing in for the step ISR, control ISR and
// DMA-completion ISR — the demonstrable "board bring-up" spec.md §1 places
// out of the core's scope. Modelled on periph's cmd/*/main.go tools:
// flag-configured, mainImpl() error, log output left at its default.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cncio.dev/x/motioncore"
	"cncio.dev/x/motioncore/axis"
	"cncio.dev/x/motioncore/config"
	"cncio.dev/x/motioncore/hal"
	"cncio.dev/x/motioncore/hal/halsim"
	"cncio.dev/x/motioncore/ledsvc"
	"cncio.dev/x/motioncore/protocol"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "motiond: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	runFor := flag.Duration("run", 2*time.Second, "how long to run the simulated core before exiting")
	flag.Parse()

	cfg := config.Default()

	var pins motioncore.Pins
	for a := 0; a < axis.Count; a++ {
		pins.Step[a] = halsim.NewPin()
		pins.Dir[a] = halsim.NewPin()
		pins.Enable[a] = halsim.NewPin()
		pins.Enc[a] = halsim.NewCounter(32)
	}
	estop := halsim.NewPin()
	pins.EStop = estop
	spi := halsim.NewSPIPeripheral()
	pins.SPI = spi

	ledPins := make([]hal.DigitalOut, axis.Count)
	for i := range ledPins {
		ledPins[i] = halsim.NewPin()
	}
	led := ledsvc.NewSoftwareClock(1000, ledPins)

	core := motioncore.New(cfg, pins, led, nil)

	stepTicker := halsim.NewTicker(time.Second / time.Duration(cfg.StepTickHz))
	controlTicker := halsim.NewTicker(time.Second / time.Duration(cfg.ControlTickHz))
	defer stepTicker.Stop()
	defer controlTicker.Stop()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-stepTicker.C():
				core.StepTick()
			case <-done:
				return
			}
		}
	}()
	go func() {
		for {
			select {
			case <-controlTicker.C():
				core.ControlTick()
			case <-done:
				return
			}
		}
	}()
	go func() {
		for {
			if edge := estop.WaitForEdge(hal.Both, -1); !edge {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			if estop.Read() == hal.High {
				core.Safety.AssertEstop()
			} else {
				core.Safety.ReleaseEstop()
			}
		}
	}()

	go runSPIRounds(core, spi, done)

	log.Printf("motiond: running for %s (step=%dHz control=%dHz)", *runFor, cfg.StepTickHz, cfg.ControlTickHz)
	time.Sleep(*runFor)
	close(done)
	return nil
}

// runSPIRounds drives the DMA-completion ISR stand-in: each round it polls
// the core and reprimes the transport, idling when there is nothing to do.
// A real SPI slave peripheral would call back into transport.Transport on
// every hardware-completed round instead of this fixed-interval loop.
func runSPIRounds(core *motioncore.Core, spi *halsim.SPIPeripheral, done <-chan struct{}) {
	roundPeriod := time.Millisecond
	t := time.NewTicker(roundPeriod)
	defer t.Stop()

	idleRX := make([]byte, protocol.MaxFrameLen)
	for i := range idleRX {
		idleRX[i] = protocol.PollPrimary
	}

	for {
		select {
		case <-done:
			return
		case <-t.C:
			core.Transport.OnRoundComplete(idleRX)
			core.Poll()
			if err := core.DrainResponseAndPrime(); err != nil {
				log.Printf("motiond: spi prime: %v", err)
			}
		}
	}
}
