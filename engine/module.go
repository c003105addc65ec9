package engine

import (
	"context"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/errors"
	"github.com/wippyai/canvas-host/resource"
)

// Module is a loaded engine binary. It implements Factory.
type Module struct {
	runtime  wazero.Runtime
	instance api.Module
	exports  map[string]api.Function
	handles  *resource.Table[*wasmHandle]
	mu       sync.Mutex
	closed   bool
}

// Load compiles and instantiates an engine module, validating the ABI
// exports before any handle can be created.
func Load(ctx context.Context, wasm []byte, opts ...Option) (*Module, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.memoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.memoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	m, err := instantiate(ctx, r, wasm, &cfg)
	if err != nil {
		_ = r.Close(ctx)
		return nil, err
	}
	return m, nil
}

func instantiate(ctx context.Context, r wazero.Runtime, wasm []byte, cfg *config) (*Module, error) {
	if cfg.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
			return nil, errors.Instantiation(err)
		}
	}
	for _, hm := range cfg.imports {
		if err := defineHostModule(ctx, r, hm); err != nil {
			return nil, err
		}
	}

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile engine module", err)
	}
	if err := validateExports(compiled.ExportedFunctions()); err != nil {
		return nil, err
	}

	// Reactor-style engines may export _initialize; _start is never run.
	modCfg := wazero.NewModuleConfig().
		WithName("engine").
		WithStartFunctions("_initialize")
	instance, err := r.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	m := &Module{
		runtime:  r,
		instance: instance,
		exports:  make(map[string]api.Function, len(ABI)),
		handles:  resource.NewTable[*wasmHandle](),
	}
	for _, e := range ABI {
		m.exports[e.Name] = instance.ExportedFunction(e.Name)
	}
	m.handles.Subscribe(resource.ObserverFunc(func(ev resource.Event) {
		Logger().Debug("engine handle", zap.Stringer("event", ev.Type), zap.Uint32("handle", uint32(ev.Handle)))
	}))
	return m, nil
}

func defineHostModule(ctx context.Context, r wazero.Runtime, hm hostModule) error {
	names := make([]string, 0, len(hm.funcs))
	for name := range hm.funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := r.NewHostModuleBuilder(hm.name)
	for _, name := range names {
		builder = builder.NewFunctionBuilder().WithFunc(hm.funcs[name]).Export(name)
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.New(errors.PhaseLoad, errors.KindInstantiation).
			Op(hm.name).
			Detail("define host module").
			Cause(err).
			Build()
	}
	return nil
}

func validateExports(defs map[string]api.FunctionDefinition) error {
	for _, e := range ABI {
		def, ok := defs[e.Name]
		if !ok {
			return errors.MissingExport(e.Name)
		}
		if !e.Sig.Matches(def.ParamTypes(), def.ResultTypes()) {
			got := Signature{Params: def.ParamTypes(), Results: def.ResultTypes()}
			return errors.Signature(e.Name, e.Sig.String(), got.String())
		}
	}
	return nil
}

// Create implements Factory. The canvas size at the time of the call is
// passed to engine_create; a zero result yields a nil handle and a nil
// error.
func (m *Module) Create(ctx context.Context, c canvas.Canvas, useFallback bool) (Handle, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, errors.Closed(errors.PhaseConstruct, "engine module")
	}

	size := c.Size()
	var fallback uint64
	if useFallback {
		fallback = 1
	}
	res, err := m.exports[ExportCreate].Call(ctx,
		api.EncodeI32(int32(size.Width)),
		api.EncodeI32(int32(size.Height)),
		fallback)
	if err != nil {
		return nil, errors.EngineCall(ExportCreate, err)
	}

	id := api.DecodeU32(res[0])
	if id == 0 {
		Logger().Warn("engine create returned no handle",
			zap.Int("width", size.Width),
			zap.Int("height", size.Height),
			zap.Bool("fallback", useFallback))
		return nil, nil
	}

	h := &wasmHandle{module: m, id: id, ctx: context.WithoutCancel(ctx)}
	key, err := m.handles.Insert(h)
	if err != nil {
		_, _ = m.exports[ExportFree].Call(ctx, uint64(id))
		return nil, errors.Closed(errors.PhaseConstruct, "engine module")
	}
	h.key = key
	return h, nil
}

// Live returns the number of handles not yet freed.
func (m *Module) Live() int {
	return m.handles.Len()
}

// Close frees every live handle and releases the runtime.
func (m *Module) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.handles.Each(func(_ resource.Handle, h *wasmHandle) bool {
		if err := h.Free(ctx); err != nil {
			Logger().Warn("free leftover engine handle", zap.Uint32("handle", h.id), zap.Error(err))
		}
		return true
	})
	_ = m.handles.Close()
	return m.runtime.Close(ctx)
}
