package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/canvas-host/schedule"
)

// Option configures Initialize.
type Option func(*config)

type config struct {
	logger   *zap.Logger
	onError  schedule.ErrorFunc
	interval time.Duration
}

// WithInterval sets the simulation interval. Non-positive values keep the
// 60 Hz default.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithRate sets the simulation rate in ticks per second.
func WithRate(hz int) Option {
	return func(c *config) {
		if hz > 0 {
			c.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithLogger overrides the package logger for one session.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithErrorHandler receives engine call failures. They are always logged;
// the loops keep running either way.
func WithErrorHandler(fn schedule.ErrorFunc) Option {
	return func(c *config) {
		c.onError = fn
	}
}
