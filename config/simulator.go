package config

import "time"

// SimulatorConfig tunes the request simulator: artificial latency on every
// API request, and injected failures on a slice of write traffic so clients
// exercise their error and rollback paths.
type SimulatorConfig struct {
	// Enabled turns the simulator on. When false the API answers with zero
	// artificial latency and never injects failures.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	// MinLatency is the inclusive lower bound of the per-request delay.
	MinLatency time.Duration `env:"MIN_LATENCY" envDefault:"200ms"`

	// MaxLatency is the exclusive upper bound of the per-request delay.
	MaxLatency time.Duration `env:"MAX_LATENCY" envDefault:"1200ms"`

	// WriteFailureRate is the probability that an ordinary write is failed
	// on purpose, in [0, 1].
	WriteFailureRate float64 `env:"WRITE_FAILURE_RATE" envDefault:"0.08"`

	// ReorderFailureRate is the probability that a reorder is failed on
	// purpose, in [0, 1]. Reorders fail more often so drag-and-drop rollback
	// paths get exercised.
	ReorderFailureRate float64 `env:"REORDER_FAILURE_RATE" envDefault:"0.10"`
}

// Sanitize applies guardrails to simulator configuration values: rates are
// clamped to [0, 1] and latency bounds are non-negative and ordered.
func (s *SimulatorConfig) Sanitize() {
	s.WriteFailureRate = clampUnit(s.WriteFailureRate)
	s.ReorderFailureRate = clampUnit(s.ReorderFailureRate)

	if s.MinLatency < 0 {
		s.MinLatency = 0
	}
	if s.MaxLatency < s.MinLatency {
		s.MaxLatency = s.MinLatency
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
