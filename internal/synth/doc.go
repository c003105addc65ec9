// Package synth builds small core WebAssembly modules that forward their
// exports to host functions.
//
// A forwarding module imports every function from one host module and
// re-exports a wrapper of the same name and signature:
//
//	b := synth.New("env")
//	b.Func("engine_create", []api.ValueType{i32, i32, i32}, []api.ValueType{i32})
//	wasm := b.Build()
//
// The result lets Go-implemented engines, and tests, be loaded through the
// same binary path as externally compiled ones.
package synth
