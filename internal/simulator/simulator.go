// Package simulator makes the local API feel like a remote one: it delays
// requests by a random latency and fails a configurable slice of write
// traffic so client code exercises its loading and rollback paths.
package simulator

import (
	"math/rand/v2"
	"time"

	"github.com/talentflow/ui-api/internal/core"
)

// LatencyPolicy draws a per-request artificial delay.
type LatencyPolicy interface {
	Delay() time.Duration
}

// UniformLatency draws uniformly from the half-open interval [Min, Max).
type UniformLatency struct {
	Min time.Duration
	Max time.Duration
}

// Delay returns the next artificial delay.
func (l UniformLatency) Delay() time.Duration {
	if l.Max <= l.Min {
		return l.Min
	}
	return l.Min + time.Duration(rand.Int64N(int64(l.Max-l.Min)))
}

// NoLatency disables artificial delay; used when the simulator is turned off
// and in tests that assert on timing.
type NoLatency struct{}

// Delay always returns zero.
func (NoLatency) Delay() time.Duration { return 0 }

// Injector fails write operations at configured rates. Reorders get their own
// rate so drag-and-drop rollback paths see failures often enough to matter.
type Injector struct {
	writeRate   float64
	reorderRate float64
	randFloat   func() float64
}

// InjectorOptions configures a rate-based Injector.
type InjectorOptions struct {
	// WriteRate is the failure probability for ordinary writes, 0..1.
	WriteRate float64
	// ReorderRate is the failure probability for reorder operations, 0..1.
	ReorderRate float64
	// RandFloat overrides the random source; nil uses the shared generator.
	RandFloat func() float64
}

// NewInjector creates a rate-based failure injector. Rates are clamped to
// [0, 1].
func NewInjector(opts InjectorOptions) *Injector {
	randFloat := opts.RandFloat
	if randFloat == nil {
		randFloat = rand.Float64
	}
	return &Injector{
		writeRate:   clampRate(opts.WriteRate),
		reorderRate: clampRate(opts.ReorderRate),
		randFloat:   randFloat,
	}
}

var _ core.FailureInjector = (*Injector)(nil)

// Decide reports whether this operation should fail artificially.
func (i *Injector) Decide(op core.Operation) bool {
	rate := i.writeRate
	if op == core.OpReorderJob {
		rate = i.reorderRate
	}
	if rate <= 0 {
		return false
	}
	return i.randFloat() < rate
}

// Static is a fixed-answer injector. Tests use Static(true) to prove a failed
// write leaves no partial state, and Static(false) to switch injection off.
type Static bool

var _ core.FailureInjector = Static(false)

// Decide always returns the configured answer.
func (s Static) Decide(core.Operation) bool { return bool(s) }

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
