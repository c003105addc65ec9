// Package engine loads rendering engines and exposes them as handles.
//
// An engine is an opaque object with a fixed surface: render, update,
// resize, key events, directional scrolling, leave and free. Handle is that
// surface; Factory produces handles for a canvas and a backend choice.
//
// # Binary engines
//
// Load compiles a core WebAssembly module with wazero and checks that it
// exports the engine ABI:
//
//	engine_create(width, height, fallback i32) -> i32   0 means failure
//	engine_render(h i32)
//	engine_update(h i32, tick f64)
//	engine_resize(h, width, height i32)
//	engine_key_event(h, action, code, modifiers i32)
//	engine_scroll_to_left(h i32)
//	engine_scroll_to_right(h i32)
//	engine_leave(h i32)
//	engine_free(h i32)
//
// The returned Module implements Factory. Host functions the module imports
// are supplied with WithImports; WithWASI adds wasi_snapshot_preview1.
//
// # Thread Safety
//
// Handles are NOT thread-safe. They are driven from a single run loop.
// Module.Create and Module.Close may be called from any goroutine.
package engine
