package latency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyStream_Reproducible(t *testing.T) {
	first := NewStream(42, 1, 10)
	second := NewStream(42, 1, 10)

	for i := 0; i < 1000; i++ {
		require.Equal(t, first.Next(), second.Next(), "sequence diverged at call %d", i)
	}
}

func TestLatencyStream_Bounds(t *testing.T) {
	s := NewStream(7, 2, 5)

	for i := 0; i < 1000; i++ {
		v := s.Next()
		assert.GreaterOrEqual(t, v, int64(2))
		assert.LessOrEqual(t, v, int64(5))
	}
}

func TestLatencyStream_FixedDelay(t *testing.T) {
	s := NewStream(1, 3, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, int64(3), s.Next())
	}
}

func TestLatencyGenerator_IndependentStreams(t *testing.T) {
	cfg := Config{
		APISeed:       100,
		ExecutionSeed: 200,
		APIMinTicks:   1,
		APIMaxTicks:   4,
		ExecMinTicks:  1,
		ExecMaxTicks:  8,
	}

	a := NewGenerator(cfg)
	b := NewGenerator(cfg)

	// Draining only the API stream of one generator must not disturb the
	// execution stream sequence.
	for i := 0; i < 50; i++ {
		a.NextAPIDelay()
	}
	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextExecutionDelay(), b.NextExecutionDelay())
	}
}

func TestLatencyGenerator_FillDelayComposition(t *testing.T) {
	cfg := Config{
		APISeed:       1,
		ExecutionSeed: 2,
		APIMinTicks:   2,
		APIMaxTicks:   2,
		ExecMinTicks:  3,
		ExecMaxTicks:  3,
	}

	g := NewGenerator(cfg)
	assert.Equal(t, int64(5), g.NextFillDelay())
}
