package main

import (
	stderrors "errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wippyai/canvas-host/errors"
)

const sampleConfig = `
log = "run.log"

[engine]
wasm = "engine.wasm"
wasi = true

[session]
backend = "fallback"
rate = 30
fps = 24

[window]
width = 120
height = 40

[headless]
enabled = true
duration = "2s"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.Wasm != "engine.wasm" || !cfg.Engine.WASI {
		t.Fatalf("engine = %+v", cfg.Engine)
	}
	if cfg.Session.Backend != "fallback" || cfg.Session.Rate != 30 || cfg.Session.FPS != 24 {
		t.Fatalf("session = %+v", cfg.Session)
	}
	if cfg.Window.Width != 120 || cfg.Window.Height != 40 {
		t.Fatalf("window = %+v", cfg.Window)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}) {
		t.Fatalf("missing file: err = %v, want config invalid_input", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: cause not wrapped: %v", err)
	}
	_, err = loadConfig(writeConfig(t, "[session\nrate = "))
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData}) {
		t.Fatalf("malformed file: err = %v, want config invalid_data", err)
	}
}

func TestConfigApply_FlagsWin(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	opts := options{rate: 60, fps: 60, duration: 5 * time.Second}
	fs.IntVar(&opts.rate, "rate", 60, "")
	fs.StringVar(&opts.backend, "backend", "", "")
	if err := fs.Parse([]string{"-rate", "90"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := cfg.apply(&opts, setFlags(fs)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if opts.rate != 90 {
		t.Errorf("rate = %d, want flag value 90", opts.rate)
	}
	if opts.backend != "fallback" || opts.fps != 24 {
		t.Errorf("backend=%q fps=%d, want file values", opts.backend, opts.fps)
	}
	if opts.wasmFile != "engine.wasm" || !opts.wasi || !opts.headless {
		t.Errorf("engine options not applied: %+v", opts)
	}
	if opts.width != 120 || opts.height != 40 || opts.logFile != "run.log" {
		t.Errorf("window/log not applied: %+v", opts)
	}
	if opts.duration != 2*time.Second {
		t.Errorf("duration = %v, want 2s", opts.duration)
	}
}

func TestConfigApply_BadDuration(t *testing.T) {
	cfg := fileConfig{Headless: headlessConfig{Duration: "soon"}}
	var opts options
	err := cfg.apply(&opts, map[string]bool{})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput || e.Op != "headless.duration" {
		t.Fatalf("err = %v, want invalid headless.duration", err)
	}
}
