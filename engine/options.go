package engine

// Option configures Load.
type Option func(*config)

type config struct {
	imports          []hostModule
	memoryLimitPages uint32
	wasi             bool
}

type hostModule struct {
	funcs map[string]any
	name  string
}

// WithImports registers host functions the engine module imports from
// module. Each value must be a Go function accepted by wazero's
// FunctionBuilder.WithFunc.
func WithImports(module string, funcs map[string]any) Option {
	return func(c *config) {
		c.imports = append(c.imports, hostModule{name: module, funcs: funcs})
	}
}

// WithWASI instantiates wasi_snapshot_preview1 before the engine module.
func WithWASI() Option {
	return func(c *config) {
		c.wasi = true
	}
}

// WithMemoryLimitPages caps engine memory in 64KiB pages. 0 keeps the
// wazero default.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *config) {
		c.memoryLimitPages = pages
	}
}
