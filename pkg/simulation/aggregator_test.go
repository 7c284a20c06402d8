package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickforge/pkg/bus"
	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

var aggregatorTestStart = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func aggTick(ts time.Time, bid, ask string) common.Tick {
	return common.Tick{
		Symbol:    "EURUSD",
		TimeStamp: ts,
		Bid:       fixed.MustFromString(bid),
		Ask:       fixed.MustFromString(ask),
		BidVolume: fixed.One,
		AskVolume: fixed.One,
	}
}

// collectBars dispatches everything the aggregator posted and returns the
// bars in order.
func collectBars(t *testing.T, router *bus.Router) []common.Bar {
	t.Helper()

	var bars []common.Bar
	router.BarHandler = func(_ context.Context, bar common.Bar) {
		bars = append(bars, bar)
	}

	errDrained := errors.New("EOF")
	go router.ExecLoop(context.Background(), func() error { return errDrained })
	require.ErrorIs(t, <-router.Done(), errDrained)

	return bars
}

func TestAggregator_FlushesBarOnPeriodBoundary(t *testing.T) {
	router := bus.NewRouter(16)
	aggregator := NewAggregator(time.Minute, router)

	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart, "1.10000", "1.10002")))
	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart.Add(20*time.Second), "1.10010", "1.10012")))
	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart.Add(40*time.Second), "1.09990", "1.09992")))
	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart.Add(70*time.Second), "1.10020", "1.10022")))

	bars := collectBars(t, router)
	require.Len(t, bars, 1)

	bar := bars[0]
	assert.Equal(t, aggregatorTestStart, bar.TimeStamp)
	assert.Equal(t, time.Minute, bar.Period)
	assert.Equal(t, "EURUSD", bar.Symbol)
	assert.True(t, bar.Open.Eq(fixed.MustFromString("1.10001")), "open %s", bar.Open)
	assert.True(t, bar.High.Eq(fixed.MustFromString("1.10011")), "high %s", bar.High)
	assert.True(t, bar.Low.Eq(fixed.MustFromString("1.09991")), "low %s", bar.Low)
	assert.True(t, bar.Close.Eq(fixed.MustFromString("1.09991")), "close %s", bar.Close)
	assert.True(t, bar.Volume.Eq(fixed.FromInt(6, 0)), "volume %s", bar.Volume)
}

func TestAggregator_GapStartsFreshBar(t *testing.T) {
	router := bus.NewRouter(16)
	aggregator := NewAggregator(time.Minute, router)

	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart, "1.10000", "1.10002")))
	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart.Add(10*time.Minute), "1.10020", "1.10022")))
	require.NoError(t, aggregator.Flush())

	bars := collectBars(t, router)
	require.Len(t, bars, 2)

	assert.Equal(t, aggregatorTestStart, bars[0].TimeStamp)
	assert.Equal(t, aggregatorTestStart.Add(10*time.Minute), bars[1].TimeStamp)
	assert.True(t, bars[1].Open.Eq(bars[1].Close))
}

func TestAggregator_FlushEmitsPartialBar(t *testing.T) {
	router := bus.NewRouter(16)
	aggregator := NewAggregator(time.Minute, router)

	require.NoError(t, aggregator.OnTick(aggTick(aggregatorTestStart.Add(5*time.Second), "1.10000", "1.10002")))
	require.NoError(t, aggregator.Flush())
	require.NoError(t, aggregator.Flush())

	bars := collectBars(t, router)
	require.Len(t, bars, 1)
	assert.Equal(t, aggregatorTestStart, bars[0].TimeStamp)
	assert.True(t, bars[0].Volume.Eq(fixed.Two))
}
