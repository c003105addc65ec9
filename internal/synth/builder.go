package synth

import (
	"github.com/tetratelabs/wazero/api"
)

// Builder assembles a forwarding module.
type Builder struct {
	host        string
	funcs       []function
	memoryPages uint32
	memory      bool
}

type function struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
}

// New creates a builder whose imports come from the host module named host.
func New(host string) *Builder {
	return &Builder{host: host}
}

// Func adds an imported function and an export forwarding to it.
func (b *Builder) Func(name string, params, results []api.ValueType) *Builder {
	b.funcs = append(b.funcs, function{name: name, params: params, results: results})
	return b
}

// Memory adds a local linear memory of pages exported as "memory".
func (b *Builder) Memory(pages uint32) *Builder {
	b.memory = true
	b.memoryPages = pages
	return b
}

// Len returns the number of forwarded functions.
func (b *Builder) Len() int {
	return len(b.funcs)
}

// Build generates the module bytes.
func (b *Builder) Build() []byte {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	if len(b.funcs) > 0 {
		wasm = appendSection(wasm, sectionType, b.typeSection())
		wasm = appendSection(wasm, sectionImport, b.importSection())
		wasm = appendSection(wasm, sectionFunction, b.functionSection())
	}
	if b.memory {
		wasm = appendSection(wasm, sectionMemory, b.memorySection())
	}
	wasm = appendSection(wasm, sectionExport, b.exportSection())
	if len(b.funcs) > 0 {
		wasm = appendSection(wasm, sectionCode, b.codeSection())
	}
	return wasm
}

// Each function gets its own type entry; index i serves both the import
// and the wrapper.
func (b *Builder) typeSection() []byte {
	out := appendU32(nil, uint32(len(b.funcs)))
	for _, f := range b.funcs {
		out = append(out, typeFunc)
		out = appendU32(out, uint32(len(f.params)))
		for _, t := range f.params {
			out = append(out, ValType(t))
		}
		out = appendU32(out, uint32(len(f.results)))
		for _, t := range f.results {
			out = append(out, ValType(t))
		}
	}
	return out
}

func (b *Builder) importSection() []byte {
	out := appendU32(nil, uint32(len(b.funcs)))
	for i, f := range b.funcs {
		out = appendName(out, b.host)
		out = appendName(out, f.name)
		out = append(out, kindFunc)
		out = appendU32(out, uint32(i))
	}
	return out
}

func (b *Builder) functionSection() []byte {
	out := appendU32(nil, uint32(len(b.funcs)))
	for i := range b.funcs {
		out = appendU32(out, uint32(i))
	}
	return out
}

func (b *Builder) memorySection() []byte {
	out := []byte{0x01, 0x00}
	return appendU32(out, b.memoryPages)
}

// Wrappers follow the imports in the function index space.
func (b *Builder) exportSection() []byte {
	n := len(b.funcs)
	if b.memory {
		n++
	}
	out := appendU32(nil, uint32(n))
	if b.memory {
		out = appendName(out, "memory")
		out = append(out, kindMemory, 0x00)
	}
	for i, f := range b.funcs {
		out = appendName(out, f.name)
		out = append(out, kindFunc)
		out = appendU32(out, uint32(len(b.funcs)+i))
	}
	return out
}

func (b *Builder) codeSection() []byte {
	out := appendU32(nil, uint32(len(b.funcs)))
	for i, f := range b.funcs {
		body := b.body(i, f)
		out = appendU32(out, uint32(len(body)))
		out = append(out, body...)
	}
	return out
}

func (b *Builder) body(importIdx int, f function) []byte {
	body := []byte{0x00} // no locals
	for i := range f.params {
		body = append(body, opLocalGet)
		body = appendU32(body, uint32(i))
	}
	body = append(body, opCall)
	body = appendU32(body, uint32(importIdx))
	return append(body, opEnd)
}
