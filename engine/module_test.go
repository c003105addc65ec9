package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/errors"
	"github.com/wippyai/canvas-host/input"
	"github.com/wippyai/canvas-host/internal/synth"
)

// recorder is a host-side engine reached through a forwarding module.
type recorder struct {
	calls    []string
	nextID   uint32
	failNext bool
	trap     string
}

func (r *recorder) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) funcs() map[string]any {
	return map[string]any{
		ExportCreate: func(w, h, fb uint32) uint32 {
			r.record("create %d %d %d", int32(w), int32(h), fb)
			if r.failNext {
				return 0
			}
			r.nextID++
			return r.nextID
		},
		ExportRender: func(h uint32) {
			if r.trap == ExportRender {
				panic("render trap")
			}
			r.record("render %d", h)
		},
		ExportUpdate:        func(h uint32, tick float64) { r.record("update %d %g", h, tick) },
		ExportResize:        func(h, w, hgt uint32) { r.record("resize %d %d %d", h, w, hgt) },
		ExportKeyEvent:      func(h, action, code, mods uint32) { r.record("key %d %d %d %d", h, action, code, mods) },
		ExportScrollToLeft:  func(h uint32) { r.record("left %d", h) },
		ExportScrollToRight: func(h uint32) { r.record("right %d", h) },
		ExportLeave:         func(h uint32) { r.record("leave %d", h) },
		ExportFree:          func(h uint32) { r.record("free %d", h) },
	}
}

func abiModule(skip string) []byte {
	b := synth.New("env")
	for _, e := range ABI {
		if e.Name == skip {
			continue
		}
		b.Func(e.Name, e.Sig.Params, e.Sig.Results)
	}
	return b.Build()
}

func loadRecorder(t *testing.T) (*Module, *recorder) {
	t.Helper()
	rec := &recorder{}
	m, err := Load(context.Background(), abiModule(""), WithImports("env", rec.funcs()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m, rec
}

func TestLoad_CreateAndDrive(t *testing.T) {
	ctx := context.Background()
	m, rec := loadRecorder(t)

	surface := canvas.NewSurface(canvas.Size{Width: 640, Height: 480})
	h, err := m.Create(ctx, surface, true)
	if err != nil || h == nil {
		t.Fatalf("Create = %v, %v", h, err)
	}

	steps := []func() error{
		h.Render,
		func() error { return h.Update(ctx, 1.5) },
		func() error { return h.Resize(800, 600) },
		func() error { return h.KeyEvent(input.NewKeyEvent(input.KeyDown, "ArrowLeft", input.ModShift)) },
		h.ScrollToLeft,
		h.ScrollToRight,
		h.Leave,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := []string{
		"create 640 480 1",
		"render 1",
		"update 1 1.5",
		"resize 1 800 600",
		"key 1 1 37 1",
		"left 1",
		"right 1",
		"leave 1",
	}
	if strings.Join(rec.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("calls =\n%v\nwant\n%v", rec.calls, want)
	}
}

func TestModule_CreateFailure(t *testing.T) {
	m, rec := loadRecorder(t)
	rec.failNext = true

	h, err := m.Create(context.Background(), canvas.NewSurface(canvas.Size{Width: 10, Height: 10}), false)
	if err != nil {
		t.Fatalf("Create error = %v, want nil", err)
	}
	if h != nil {
		t.Fatal("expected nil handle when engine_create returns 0")
	}
	if m.Live() != 0 {
		t.Fatalf("Live = %d, want 0", m.Live())
	}
}

func TestHandle_FreeOnce(t *testing.T) {
	ctx := context.Background()
	m, rec := loadRecorder(t)

	h, err := m.Create(ctx, canvas.NewSurface(canvas.Size{Width: 1, Height: 1}), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := h.Free(ctx); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if m.Live() != 0 {
		t.Fatalf("Live after Free = %d", m.Live())
	}

	assertClosed(t, h.Free(ctx))
	assertClosed(t, h.Render())
	assertClosed(t, h.Update(ctx, 1))

	frees := 0
	for _, c := range rec.calls {
		if strings.HasPrefix(c, "free") {
			frees++
		}
	}
	if frees != 1 {
		t.Fatalf("engine_free called %d times, want 1", frees)
	}
}

func TestModule_CloseFreesLeftovers(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	m, err := Load(ctx, abiModule(""), WithImports("env", rec.funcs()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := m.Create(ctx, canvas.NewSurface(canvas.Size{Width: 2, Height: 2}), false); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if m.Live() != 3 {
		t.Fatalf("Live = %d, want 3", m.Live())
	}
	if err := m.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frees := 0
	for _, c := range rec.calls {
		if strings.HasPrefix(c, "free") {
			frees++
		}
	}
	if frees != 3 {
		t.Fatalf("frees = %d, want 3", frees)
	}

	_, err = m.Create(ctx, canvas.NewSurface(canvas.Size{}), false)
	assertClosed(t, err)
}

func TestHandle_TrapIsEngineCallError(t *testing.T) {
	ctx := context.Background()
	m, rec := loadRecorder(t)
	rec.trap = ExportRender

	h, err := m.Create(ctx, canvas.NewSurface(canvas.Size{Width: 1, Height: 1}), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	err = h.Render()
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("Render error = %T %v, want *errors.Error", err, err)
	}
	if e.Kind != errors.KindEngineCall || e.Op != ExportRender {
		t.Fatalf("error = %v", e)
	}
	if err := h.Update(ctx, 2); err != nil {
		t.Fatalf("handle unusable after trap: %v", err)
	}
}

func TestLoad_ValidatesExports(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		rec := &recorder{}
		_, err := Load(ctx, abiModule(ExportLeave), WithImports("env", rec.funcs()))
		e, ok := err.(*errors.Error)
		if !ok || e.Kind != errors.KindMissingExport || e.Op != ExportLeave {
			t.Fatalf("err = %v, want missing %s", err, ExportLeave)
		}
	})

	t.Run("signature", func(t *testing.T) {
		b := synth.New("env")
		for _, e := range ABI {
			params := e.Sig.Params
			if e.Name == ExportUpdate {
				params = []api.ValueType{api.ValueTypeI32, api.ValueTypeF32}
			}
			b.Func(e.Name, params, e.Sig.Results)
		}
		funcs := (&recorder{}).funcs()
		funcs[ExportUpdate] = func(uint32, float32) {}

		_, err := Load(ctx, b.Build(), WithImports("env", funcs))
		e, ok := err.(*errors.Error)
		if !ok || e.Kind != errors.KindSignature || e.Op != ExportUpdate {
			t.Fatalf("err = %v, want signature error on %s", err, ExportUpdate)
		}
		if !strings.Contains(e.Detail, "f64") || !strings.Contains(e.Detail, "f32") {
			t.Errorf("detail %q should name both types", e.Detail)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Load(ctx, []byte("not wasm"))
		e, ok := err.(*errors.Error)
		if !ok || e.Phase != errors.PhaseLoad {
			t.Fatalf("err = %v, want load error", err)
		}
	})

	t.Run("unresolved import", func(t *testing.T) {
		_, err := Load(ctx, abiModule(""))
		if err == nil {
			t.Fatal("expected error without host imports")
		}
	})
}

func TestSignature_String(t *testing.T) {
	s := Signature{Params: []api.ValueType{api.ValueTypeI32, api.ValueTypeF64}, Results: []api.ValueType{api.ValueTypeI32}}
	if got := s.String(); got != "(i32, f64) -> (i32)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestFactoryFunc(t *testing.T) {
	called := false
	f := FactoryFunc(func(_ context.Context, _ canvas.Canvas, fb bool) (Handle, error) {
		called = fb
		return nil, nil
	})
	_, _ = f.Create(context.Background(), canvas.NewSurface(canvas.Size{}), true)
	if !called {
		t.Fatal("FactoryFunc did not forward useFallback")
	}
}

func assertClosed(t *testing.T, err error) {
	t.Helper()
	e, ok := err.(*errors.Error)
	if !ok || e.Kind != errors.KindClosed {
		t.Fatalf("err = %v, want closed error", err)
	}
}
