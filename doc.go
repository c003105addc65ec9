// Package canvashost drives an opaque rendering engine from a host run loop.
//
// The engine owns everything about drawing and simulation. This module owns
// the rest: choosing a rendering backend, keeping the canvas the size of the
// window, routing keyboard and pointer input, and running two decoupled
// loops, one render call per display frame and a fixed 60 Hz simulation
// tick that catches up without ever scheduling a negative delay.
//
// # Architecture Overview
//
//	canvashost/
//	├── capability/      Backend selection (Primary or Fallback), probed once
//	├── canvas/          Canvas sizing and an in-memory gg drawing surface
//	├── engine/          Engine handle contract and the wazero binary loader
//	├── input/           Key events, directional controls, held-key map
//	├── schedule/        Render and simulation loops over abstract timers
//	├── host/            Real run loop and a deterministic virtual host
//	├── session/         Construction state machine and wiring
//	├── resource/        Handle table used for engine-side objects
//	├── errors/          Structured error types
//	├── internal/synth/  Forwarding WebAssembly module builder
//	├── internal/demo/   Demo engine written in Go
//	└── cmd/run/         Terminal and headless host program
//
// # Quick Start
//
//	loop := host.NewLoop(host.WithWindowSize(canvas.Size{Width: 800, Height: 600}))
//	go loop.Run(ctx)
//
//	mod, err := engine.Load(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer mod.Close(ctx)
//
//	surface := canvas.NewSurface(canvas.Size{})
//	probe := capability.NewProbe(capability.Accelerator())
//
//	loop.Post(func() {
//	    s, err := session.Initialize(ctx, loop, surface, probe, mod)
//	    if err != nil {
//	        log.Printf("engine failed to start: %v", err)
//	        return
//	    }
//	    _ = s // close with s.Close(ctx) on teardown
//	})
//
// # Threading
//
// Sessions, schedulers, routers and handles are single-threaded: every call
// happens on the host run loop. host.Loop accepts events from any goroutine
// and runs their listeners on the loop.
package canvashost
