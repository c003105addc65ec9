package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/canvas-host/canvas"
	"github.com/wippyai/canvas-host/capability"
	"github.com/wippyai/canvas-host/engine"
	"github.com/wippyai/canvas-host/host"
	"github.com/wippyai/canvas-host/internal/demo"
	"github.com/wippyai/canvas-host/schedule"
	"github.com/wippyai/canvas-host/session"
)

// backendEnv overrides the probe when -backend is not given.
const backendEnv = "CANVAS_BACKEND"

type options struct {
	config   string
	wasmFile string
	backend  string
	logFile  string
	duration time.Duration
	rate     int
	fps      int
	width    int
	height   int
	demo     bool
	wasi     bool
	headless bool
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "Load settings from a TOML file")
	flag.StringVar(&opts.wasmFile, "wasm", "", "Path to engine wasm module")
	flag.BoolVar(&opts.demo, "demo", false, "Run the built-in demo engine")
	flag.StringVar(&opts.backend, "backend", "", "Backend: auto, primary or fallback (default $"+backendEnv+" or auto)")
	flag.IntVar(&opts.rate, "rate", schedule.TargetRate, "Simulation ticks per second")
	flag.IntVar(&opts.fps, "fps", host.DefaultRefreshRate, "Display frames per second")
	flag.StringVar(&opts.logFile, "log", "", "Write debug logs to file")
	flag.BoolVar(&opts.wasi, "wasi", false, "Provide wasi_snapshot_preview1 to the engine")
	flag.BoolVar(&opts.headless, "headless", false, "Run without the terminal UI and print stats")
	flag.DurationVar(&opts.duration, "duration", 5*time.Second, "Headless run time")
	flag.IntVar(&opts.width, "width", 0, "Canvas width (default: terminal width)")
	flag.IntVar(&opts.height, "height", 0, "Canvas height (default: terminal height)")
	flag.Parse()

	if opts.config != "" {
		cfg, err := loadConfig(opts.config)
		if err == nil {
			err = cfg.apply(&opts, setFlags(flag.CommandLine))
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if opts.wasmFile == "" && !opts.demo {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm <engine.wasm> [-backend auto|primary|fallback] [-rate 60] [-fps 60]")
		fmt.Fprintln(os.Stderr, "       run -demo")
		fmt.Fprintln(os.Stderr, "       run -demo -headless -duration 5s")
		fmt.Fprintln(os.Stderr, "       run -config run.toml")
		os.Exit(1)
	}

	logger, err := newLogger(opts.logFile, opts.headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	engine.SetLogger(logger.Named("engine"))
	session.SetLogger(logger.Named("session"))

	if opts.headless {
		err = runHeadless(opts, logger)
	} else {
		err = runInteractive(opts, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to path when set. Without a path the interactive UI owns
// the terminal, so only headless runs log to stderr.
func newLogger(path string, headless bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	switch {
	case path != "":
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	case headless:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return zap.NewNop(), nil
	}
	return cfg.Build()
}

// newProbe honors an explicit backend, then the environment, then probes.
func newProbe(flagValue string, profile termenv.Profile, logger *zap.Logger) (capability.Query, error) {
	value := flagValue
	if value == "" {
		value = os.Getenv(backendEnv)
	}
	b, forced, err := capability.ParseBackend(value)
	if err != nil {
		return nil, err
	}

	prober := capability.Any(capability.Accelerator(), capability.TrueColor(profile))
	if forced {
		prober = capability.Forced(b)
	}
	return capability.NewProbe(prober).WithLogger(logger.Named("probe")), nil
}

// loadEngine loads the demo engine or the engine module named by -wasm.
func loadEngine(ctx context.Context, opts options, surface *canvas.Surface, logger *zap.Logger) (*engine.Module, error) {
	var engineOpts []engine.Option
	if opts.wasi {
		engineOpts = append(engineOpts, engine.WithWASI())
	}

	if opts.demo {
		return demo.New(surface, logger.Named("demo")).Load(ctx, engineOpts...)
	}

	data, err := os.ReadFile(opts.wasmFile)
	if err != nil {
		return nil, fmt.Errorf("read engine: %w", err)
	}
	return engine.Load(ctx, data, engineOpts...)
}

// windowSize picks the flag size, else the terminal size, else 80x24.
func windowSize(opts options, fd int) canvas.Size {
	size := canvas.Size{Width: 80, Height: 24}
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			size = canvas.Size{Width: w, Height: h}
		}
	}
	if opts.width > 0 {
		size.Width = opts.width
	}
	if opts.height > 0 {
		size.Height = opts.height
	}
	return size
}

type started struct {
	session *session.Session
	err     error
}

// startSession initializes on the loop goroutine and waits for the result.
func startSession(ctx context.Context, loop *host.Loop, surface *canvas.Surface, probe capability.Query, factory engine.Factory, rate int) (*session.Session, error) {
	ch := make(chan started, 1)
	loop.Post(func() {
		s, err := session.Initialize(ctx, loop, surface, probe, factory, session.WithRate(rate))
		ch <- started{session: s, err: err}
	})
	select {
	case r := <-ch:
		return r.session, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func runHeadless(opts options, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	size := windowSize(opts, int(os.Stdout.Fd()))
	surface := canvas.NewSurface(canvas.Size{})

	mod, err := loadEngine(ctx, opts, surface, logger)
	if err != nil {
		return err
	}
	defer mod.Close(context.Background())

	probe, err := newProbe(opts.backend, termenv.Ascii, logger)
	if err != nil {
		return err
	}

	loop := host.NewLoop(host.WithRefreshRate(opts.fps), host.WithWindowSize(size), host.WithLogger(logger.Named("loop")))
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	s, err := startSession(ctx, loop, surface, probe, mod, opts.rate)
	if err != nil {
		loop.Close()
		<-done
		return err
	}

	<-done
	// The loop has stopped; the session is ours to close.
	stats := s.Stats()
	closeErr := s.Close(context.Background())

	fmt.Printf("backend:  %s\n", stats.Backend)
	fmt.Printf("canvas:   %s\n", stats.Size)
	fmt.Printf("frames:   %d (%.1f/s)\n", stats.Frames, float64(stats.Frames)/opts.duration.Seconds())
	fmt.Printf("ticks:    %d (%.1f/s)\n", stats.Ticks, float64(stats.Ticks)/opts.duration.Seconds())
	fmt.Printf("tick:     %.2f\n", stats.LastTick)
	fmt.Printf("errors:   %d\n", stats.Errors)
	return closeErr
}
