package main

import (
	"flag"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/canvas-host/errors"
)

// fileConfig is the optional run.toml layout. Flags given on the command
// line win over file values.
type fileConfig struct {
	Engine   engineConfig   `toml:"engine"`
	Session  sessionConfig  `toml:"session"`
	Window   windowConfig   `toml:"window"`
	Headless headlessConfig `toml:"headless"`
	Log      string         `toml:"log"`
}

type engineConfig struct {
	Wasm string `toml:"wasm"`
	Demo bool   `toml:"demo"`
	WASI bool   `toml:"wasi"`
}

type sessionConfig struct {
	// auto, primary or fallback
	Backend string `toml:"backend"`
	Rate    int    `toml:"rate"`
	FPS     int    `toml:"fps"`
}

type windowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type headlessConfig struct {
	Enabled  bool   `toml:"enabled"`
	Duration string `toml:"duration"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Op("read").Value(path).Cause(err).Detail("config file %s", path).Build()
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Op("parse").Value(path).Cause(err).Detail("config file %s", path).Build()
	}
	return cfg, nil
}

// setFlags returns the names of flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// apply copies non-zero file values into opts for flags not in set.
func (c fileConfig) apply(opts *options, set map[string]bool) error {
	str := func(name, v string, dst *string) {
		if v != "" && !set[name] {
			*dst = v
		}
	}
	num := func(name string, v int, dst *int) {
		if v > 0 && !set[name] {
			*dst = v
		}
	}
	on := func(name string, v bool, dst *bool) {
		if v && !set[name] {
			*dst = true
		}
	}

	str("wasm", c.Engine.Wasm, &opts.wasmFile)
	on("demo", c.Engine.Demo, &opts.demo)
	on("wasi", c.Engine.WASI, &opts.wasi)
	str("backend", c.Session.Backend, &opts.backend)
	num("rate", c.Session.Rate, &opts.rate)
	num("fps", c.Session.FPS, &opts.fps)
	num("width", c.Window.Width, &opts.width)
	num("height", c.Window.Height, &opts.height)
	on("headless", c.Headless.Enabled, &opts.headless)
	str("log", c.Log, &opts.logFile)

	if c.Headless.Duration != "" && !set["duration"] {
		d, err := time.ParseDuration(c.Headless.Duration)
		if err != nil {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Op("headless.duration").Value(c.Headless.Duration).Cause(err).Build()
		}
		opts.duration = d
	}
	return nil
}
