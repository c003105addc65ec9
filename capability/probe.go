package capability

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Prober reports whether the high-performance capability is present.
type Prober interface {
	Supported() bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func() bool

// Supported calls f.
func (f ProberFunc) Supported() bool { return f() }

// Query is the capability view consumed by a session.
type Query interface {
	Backend() Backend
}

// Probe queries a Prober once and caches the answer.
type Probe struct {
	prober  Prober
	logger  *zap.Logger
	once    sync.Once
	backend Backend
}

// NewProbe creates a probe over p. A nil prober always selects Fallback.
func NewProbe(p Prober) *Probe {
	return &Probe{prober: p, logger: zap.NewNop()}
}

// WithLogger sets the logger used for the fallback diagnostic.
func (p *Probe) WithLogger(l *zap.Logger) *Probe {
	if l != nil {
		p.logger = l
	}
	return p
}

// Backend returns the selected backend, probing on first use.
func (p *Probe) Backend() Backend {
	p.once.Do(func() {
		p.backend = Fallback
		if p.prober != nil && p.prober.Supported() {
			p.backend = Primary
			return
		}
		p.logger.Info("high-performance backend unavailable, using fallback")
	})
	return p.backend
}

// Accelerator reports whether a gg GPU accelerator has been registered.
// GPU backends register themselves by blank import, e.g. github.com/gogpu/gg/gpu.
func Accelerator() Prober {
	return ProberFunc(func() bool {
		return gg.Accelerator() != nil
	})
}

// TrueColor reports whether a terminal supports 24-bit color output.
func TrueColor(profile termenv.Profile) Prober {
	return ProberFunc(func() bool {
		return profile == termenv.TrueColor
	})
}

// Forced always answers for b.
func Forced(b Backend) Prober {
	return ProberFunc(func() bool {
		return b == Primary
	})
}

// Any is supported when at least one prober is. Probers are asked in order
// and the first positive answer wins.
func Any(probers ...Prober) Prober {
	return ProberFunc(func() bool {
		for _, p := range probers {
			if p != nil && p.Supported() {
				return true
			}
		}
		return false
	})
}
