package synthetic

import (
	"errors"
	"math/rand"
	"time"

	"tickforge/pkg/common"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

const tickGeneratorComponentName = "datasource.synthetic.generator"

var ErrEof = errors.New("EOF")

// Params fully describes a synthetic tick stream. Prices follow geometric
// Brownian motion with the given annualized drift and volatility; spread,
// volume and tick timing get their own noise processes on top.
type Params struct {
	StartTime  time.Time
	StartPrice fixed.Point
	// Spread is the full bid/ask spread around the model price.
	Spread fixed.Point
	Mu     fixed.Point
	Sigma  fixed.Point
	// DeltaT is the model time step as a fraction of a year.
	DeltaT fixed.Point
	Steps  int64

	AvgTickInterval time.Duration
	TickVariability float64

	AvgVolume      fixed.Point
	VolumeVariance float64

	SpreadVolatility float64
	MinSpread        fixed.Point
	MaxSpread        fixed.Point

	PriceDigits  int
	VolumeDigits int
}

// TickGenerator yields a reproducible synthetic tick stream: the sequence
// depends only on the seed of the supplied rng and the params, never on
// wall-clock time.
type TickGenerator struct {
	symbol string
	rng    *rand.Rand
	params Params

	// precomputed GBM step terms
	driftTerm     fixed.Point
	diffusionTerm fixed.Point

	step          int64
	lastTime      time.Time
	lastPrice     fixed.Point
	currentSpread fixed.Point
}

func NewTickGenerator(symbol string, rng *rand.Rand, params Params) *TickGenerator {
	halfVariance := params.Sigma.Mul(params.Sigma).Mul(fixed.PointFive)
	return &TickGenerator{
		symbol:        symbol,
		rng:           rng,
		params:        params,
		driftTerm:     params.Mu.Sub(halfVariance).Mul(params.DeltaT),
		diffusionTerm: params.Sigma.Mul(params.DeltaT.Sqrt()),
		lastTime:      params.StartTime,
		lastPrice:     params.StartPrice,
		currentSpread: params.Spread.DivInt64(2),
	}
}

func (g *TickGenerator) GetNext() (common.Tick, error) {
	var tick common.Tick

	if g.step >= g.params.Steps {
		return tick, ErrEof
	}

	z := g.rng.NormFloat64()
	deltaLog := g.driftTerm.Add(g.diffusionTerm.Mul(fixed.FromFloat64(z)))
	g.lastPrice = g.lastPrice.Mul(deltaLog.Exp())

	g.updateSpread()
	g.lastTime = g.lastTime.Add(g.nextInterval())
	g.step++

	tick.Ask = g.lastPrice.Add(g.currentSpread)
	tick.Bid = g.lastPrice.Sub(g.currentSpread)
	tick.AskVolume, tick.BidVolume = g.nextVolumes()
	tick.TimeStamp = g.lastTime

	g.addNoise(&tick)

	tick.Ask = tick.Ask.Rescale(g.params.PriceDigits)
	tick.Bid = tick.Bid.Rescale(g.params.PriceDigits)
	tick.AskVolume = tick.AskVolume.Rescale(g.params.VolumeDigits)
	tick.BidVolume = tick.BidVolume.Rescale(g.params.VolumeDigits)

	tick.Source = tickGeneratorComponentName
	tick.Symbol = g.symbol
	tick.ExecutionId = utility.GetExecutionID()
	tick.TraceID = utility.CreateTraceID()

	return tick, nil
}

// updateSpread lets the spread random-walk within its configured bounds.
func (g *TickGenerator) updateSpread() {
	if g.params.SpreadVolatility <= 0 {
		return
	}

	change := g.rng.NormFloat64() * g.params.SpreadVolatility
	next := g.currentSpread.Mul(fixed.FromFloat64(1.0 + change))

	switch {
	case next.Lt(g.params.MinSpread):
		g.currentSpread = g.params.MinSpread
	case next.Gt(g.params.MaxSpread):
		g.currentSpread = g.params.MaxSpread
	default:
		g.currentSpread = next
	}
}

// nextInterval draws an exponentially distributed tick interval, clamped
// so the stream neither stalls nor bursts unrealistically.
func (g *TickGenerator) nextInterval() time.Duration {
	if g.params.TickVariability <= 0 {
		return g.params.AvgTickInterval
	}

	mean := float64(g.params.AvgTickInterval.Nanoseconds())
	interval := g.rng.ExpFloat64() * mean

	lower := mean * (1.0 - g.params.TickVariability)
	upper := mean * (1.0 + g.params.TickVariability*3)

	if interval < lower {
		interval = lower
	} else if interval > upper {
		interval = upper
	}

	return time.Duration(int64(interval))
}

// nextVolumes draws log-normally distributed bid and ask volumes.
func (g *TickGenerator) nextVolumes() (askVol, bidVol fixed.Point) {
	askMult := fixed.FromFloat64(1.0 + g.rng.NormFloat64()*g.params.VolumeVariance).Exp()
	bidMult := fixed.FromFloat64(1.0 + g.rng.NormFloat64()*g.params.VolumeVariance).Exp()

	askVol = g.params.AvgVolume.Mul(askMult)
	bidVol = g.params.AvgVolume.Mul(bidMult)

	if askVol.Lte(fixed.Zero) {
		askVol = fixed.One
	}
	if bidVol.Lte(fixed.Zero) {
		bidVol = fixed.One
	}
	return askVol, bidVol
}

// addNoise jitters both sides slightly to mimic order book churn, keeping
// bid strictly below ask.
func (g *TickGenerator) addNoise(tick *common.Tick) {
	tickSize := g.currentSpread.DivInt64(10)

	tick.Ask = tick.Ask.Add(fixed.FromFloat64(g.rng.NormFloat64() * 0.1).Mul(tickSize))
	tick.Bid = tick.Bid.Add(fixed.FromFloat64(g.rng.NormFloat64() * 0.1).Mul(tickSize))

	if tick.Bid.Gte(tick.Ask) {
		mid := tick.Bid.Add(tick.Ask).DivInt64(2)
		tick.Bid = mid.Sub(tickSize)
		tick.Ask = mid.Add(tickSize)
	}
}
