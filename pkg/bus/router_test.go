package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

func TestBusRouter_PostAndDispatch(t *testing.T) {
	router := NewRouter(16)

	var got []common.Tick
	router.TickHandler = func(_ context.Context, tick common.Tick) {
		got = append(got, tick)
	}

	ticks := []common.Tick{
		{Index: 0, Bid: fixed.FromFloat64(1.1000), Ask: fixed.FromFloat64(1.1002)},
		{Index: 1, Bid: fixed.FromFloat64(1.1001), Ask: fixed.FromFloat64(1.1003)},
	}

	i := 0
	feed := func() error {
		if i >= len(ticks) {
			return errors.New("done")
		}
		err := router.Post(TickEvent, ticks[i])
		i++
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go router.ExecLoop(ctx, feed)
	require.Error(t, <-router.Done())

	require.Len(t, got, 2)
	assert.Equal(t, int64(0), got[0].Index)
	assert.Equal(t, int64(1), got[1].Index)
}

func TestBusRouter_PostCapacityReached(t *testing.T) {
	router := NewRouter(1)

	require.NoError(t, router.Post(TickEvent, common.Tick{}))
	require.Error(t, router.Post(TickEvent, common.Tick{}))

	stats := router.Statistics()
	assert.Equal(t, uint64(1), stats.PostCount)
	assert.Equal(t, uint64(1), stats.PostFails)
}

func TestBusRouter_NilHandlerIsNotAnError(t *testing.T) {
	router := NewRouter(4)
	require.NoError(t, router.Post(TradeEvent, common.TradeRecord{}))

	done := errors.New("done")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go router.ExecLoop(ctx, func() error { return done })
	require.ErrorIs(t, <-router.Done(), done)

	assert.Equal(t, uint64(0), router.Statistics().DispatchFails)
}

func TestBusRouter_InvalidPayloadCountsAsDispatchFail(t *testing.T) {
	router := NewRouter(4)
	router.TickHandler = func(context.Context, common.Tick) {}

	require.NoError(t, router.Post(TickEvent, "not a tick"))

	done := errors.New("done")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go router.ExecLoop(ctx, func() error { return done })
	require.ErrorIs(t, <-router.Done(), done)

	assert.Equal(t, uint64(1), router.Statistics().DispatchFails)
}

func TestBusRouter_MergeHandlers(t *testing.T) {
	var calls int
	merged := MergeHandlers[common.Tick](
		func(context.Context, common.Tick) { calls++ },
		func(context.Context, common.Tick) { calls++ },
	)
	merged(context.Background(), common.Tick{})
	assert.Equal(t, 2, calls)
}
