package synthetic

import (
	"log/slog"
	"math/rand"
	"time"

	"tickforge/pkg/utility/fixed"
)

// NewEURUSDTickGenerator returns a generator preset with typical EURUSD
// market characteristics. Drift and volatility are annualized.
func NewEURUSDTickGenerator(symbol string, rng *rand.Rand, startTime time.Time, duration time.Duration, mu, sigma float64) *TickGenerator {

	const (
		startPrice    = 1.0550
		typicalSpread = 0.00003 // 0.3 pips
		minSpread     = 0.00001
		maxSpread     = 0.00006

		avgTickIntervalSeconds = 1
		tickTimingVariability  = 0.45

		avgVolumeUnits    = 1
		volumeVariability = 0.65

		spreadVolatility = 0.12

		priceDigits  = 5
		volumeDigits = 2
	)

	secondsPerYear := 365.25 * 24 * 3600
	steps := int64(duration.Seconds()) / avgTickIntervalSeconds

	generator := NewTickGenerator(symbol, rng, Params{
		StartTime:  startTime,
		StartPrice: fixed.FromFloat64(startPrice),
		Spread:     fixed.FromFloat64(typicalSpread),
		Mu:         fixed.FromFloat64(mu),
		Sigma:      fixed.FromFloat64(sigma),
		DeltaT:     fixed.FromFloat64(avgTickIntervalSeconds / secondsPerYear),
		Steps:      steps,

		AvgTickInterval: avgTickIntervalSeconds * time.Second,
		TickVariability: tickTimingVariability,

		AvgVolume:      fixed.FromInt(avgVolumeUnits, 0),
		VolumeVariance: volumeVariability,

		SpreadVolatility: spreadVolatility,
		MinSpread:        fixed.FromFloat64(minSpread),
		MaxSpread:        fixed.FromFloat64(maxSpread),

		PriceDigits:  priceDigits,
		VolumeDigits: volumeDigits,
	})

	slog.Debug("EURUSD synthetic tick generator configured",
		"duration", duration,
		"mu_annual", mu,
		"sigma_annual", sigma,
		"start_price", startPrice,
		"estimated_ticks", steps,
		"start_time", startTime,
	)

	return generator
}
