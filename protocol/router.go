// Copyright 2026 The Motioncore Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

import "cncio.dev/x/motioncore/cncerr"

// Handler decodes a raw request frame and returns a raw response frame.
// Implementations are supplied by whoever registers them (the root
// motioncore package's handlers); Router only holds the dispatch table.
type Handler func(req []byte) (resp []byte, err error)

// Router dispatches decoded requests to a fixed opcode->Handler table,
// resolved once at construction time, spec.md §4.9: "the dispatch table is
// built once at startup; the main loop never mutates it." This mirrors the
// teacher library's driver Registry (periph.go's Register/MustRegister),
// which also commits to a fixed table before the scheduling loop starts.
type Router struct {
	handlers map[Opcode]Handler
}

// NewRouter returns a Router with an empty table. Call Register for each
// opcode before the first Dispatch.
func NewRouter() *Router {
	return &Router{handlers: make(map[Opcode]Handler)}
}

// Register binds a handler to an opcode. Panics on a duplicate opcode,
// since a double-registration is a programming error caught at startup, not
// a runtime condition to recover from.
func (r *Router) Register(op Opcode, h Handler) {
	if _, exists := r.handlers[op]; exists {
		panic("protocol: duplicate handler registration for opcode")
	}
	r.handlers[op] = h
}

// Dispatch reads the opcode at req[1] and invokes its registered handler.
// Returns a FrameError-kind error if req is too short to contain an opcode
// or no handler is registered for it.
func (r *Router) Dispatch(req []byte) ([]byte, error) {
	if len(req) < 2 {
		return nil, cncerr.New(cncerr.FrameError, "request too short to contain an opcode")
	}
	op := Opcode(req[1])
	h, ok := r.handlers[op]
	if !ok {
		return nil, cncerr.Newf(cncerr.FrameError, "no handler registered for opcode 0x%02x", op)
	}
	return h(req)
}
