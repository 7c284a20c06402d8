package latency

import (
	"math/rand"
)

// Stream yields reproducible tick-count delays from one integer seed. The
// sequence depends only on the seed and the number of Next calls, never on
// wall-clock time or host speed.
type Stream struct {
	rng *rand.Rand
	min int64
	max int64
}

func NewStream(seed int64, minTicks, maxTicks int64) *Stream {
	if maxTicks < minTicks {
		maxTicks = minTicks
	}
	return &Stream{
		rng: rand.New(rand.NewSource(seed)),
		min: minTicks,
		max: maxTicks,
	}
}

func (s *Stream) Next() int64 {
	if s.max == s.min {
		return s.min
	}
	return s.min + s.rng.Int63n(s.max-s.min+1)
}

type Config struct {
	APISeed       int64
	ExecutionSeed int64
	APIMinTicks   int64
	APIMaxTicks   int64
	ExecMinTicks  int64
	ExecMaxTicks  int64
}

// Generator couples the two delay streams the fill pipeline draws from: the
// API round-trip and the market execution delay. The streams are seeded
// independently so either distribution can change without disturbing the
// other's sequence.
type Generator struct {
	api       *Stream
	execution *Stream
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{
		api:       NewStream(cfg.APISeed, cfg.APIMinTicks, cfg.APIMaxTicks),
		execution: NewStream(cfg.ExecutionSeed, cfg.ExecMinTicks, cfg.ExecMaxTicks),
	}
}

func (g *Generator) NextAPIDelay() int64 {
	return g.api.Next()
}

func (g *Generator) NextExecutionDelay() int64 {
	return g.execution.Next()
}

// NextFillDelay draws one delay from each stream;
// fill tick = signal tick + api delay + execution delay.
func (g *Generator) NextFillDelay() int64 {
	return g.api.Next() + g.execution.Next()
}
