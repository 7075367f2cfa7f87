package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/talentflow/ui-api/internal/core"
)

func TestUniformLatency_StaysInHalfOpenInterval(t *testing.T) {
	policy := UniformLatency{Min: 200 * time.Millisecond, Max: 1200 * time.Millisecond}

	for i := 0; i < 1000; i++ {
		d := policy.Delay()
		assert.GreaterOrEqual(t, d, policy.Min)
		assert.Less(t, d, policy.Max)
	}
}

func TestUniformLatency_DegenerateInterval(t *testing.T) {
	policy := UniformLatency{Min: 300 * time.Millisecond, Max: 300 * time.Millisecond}
	assert.Equal(t, 300*time.Millisecond, policy.Delay())

	assert.Equal(t, time.Duration(0), NoLatency{}.Delay())
}

func TestInjector_RatesPerOperation(t *testing.T) {
	// a deterministic source draws 0.09: below the reorder rate, above the write rate
	injector := NewInjector(InjectorOptions{
		WriteRate:   0.08,
		ReorderRate: 0.10,
		RandFloat:   func() float64 { return 0.09 },
	})

	assert.False(t, injector.Decide(core.OpCreateJob))
	assert.False(t, injector.Decide(core.OpSubmitResponse))
	assert.True(t, injector.Decide(core.OpReorderJob))
}

func TestInjector_ZeroRateNeverFires(t *testing.T) {
	injector := NewInjector(InjectorOptions{
		WriteRate:   0,
		ReorderRate: 0,
		RandFloat:   func() float64 { return 0 },
	})

	for _, op := range []core.Operation{core.OpCreateJob, core.OpReorderJob, core.OpAddNote} {
		assert.False(t, injector.Decide(op))
	}
}

func TestInjector_ClampsRates(t *testing.T) {
	always := NewInjector(InjectorOptions{
		WriteRate:   1.5,
		ReorderRate: -2,
		RandFloat:   func() float64 { return 0.999 },
	})

	assert.True(t, always.Decide(core.OpUpdateCandidate))
	assert.False(t, always.Decide(core.OpReorderJob))
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).Decide(core.OpCreateJob))
	assert.False(t, Static(false).Decide(core.OpReorderJob))
}

func TestInjector_ObservedRateTracksConfiguredRate(t *testing.T) {
	injector := NewInjector(InjectorOptions{WriteRate: 0.08, ReorderRate: 0.10})

	const n = 20000
	failures := 0
	for i := 0; i < n; i++ {
		if injector.Decide(core.OpCreateJob) {
			failures++
		}
	}
	rate := float64(failures) / float64(n)
	assert.InDelta(t, 0.08, rate, 0.02)
}
