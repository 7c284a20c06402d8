package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

func fillTick(bid, ask string) common.Tick {
	return common.Tick{
		Bid: fixed.MustFromString(bid),
		Ask: fixed.MustFromString(ask),
	}
}

func TestFillRouter_EvaluateOpen(t *testing.T) {
	router := FillRouter{}

	testCases := []struct {
		name      string
		order     common.Order
		tick      common.Tick
		outcome   fillOutcome
		price     string
		maker     bool
		limitable string
	}{
		{
			name:    "market buy fills at ask",
			order:   common.Order{Type: common.OrderTypeMarket, Side: common.OrderSideBuy},
			tick:    fillTick("1.10000", "1.10002"),
			outcome: fillExecute,
			price:   "1.10002",
		},
		{
			name:    "market sell fills at bid",
			order:   common.Order{Type: common.OrderTypeMarket, Side: common.OrderSideSell},
			tick:    fillTick("1.10000", "1.10002"),
			outcome: fillExecute,
			price:   "1.10000",
		},
		{
			name: "buy limit waits above level",
			order: common.Order{
				Type: common.OrderTypeLimit, Side: common.OrderSideBuy,
				Price: fixed.MustFromString("1.09990"),
			},
			tick:    fillTick("1.10000", "1.10002"),
			outcome: fillWait,
		},
		{
			name: "buy limit fills at level when bid reaches it",
			order: common.Order{
				Type: common.OrderTypeLimit, Side: common.OrderSideBuy,
				Price: fixed.MustFromString("1.09990"),
			},
			tick:    fillTick("1.09988", "1.09990"),
			outcome: fillExecute,
			price:   "1.09990",
			maker:   true,
		},
		{
			name: "sell limit fills when ask rises to level",
			order: common.Order{
				Type: common.OrderTypeLimit, Side: common.OrderSideSell,
				Price: fixed.MustFromString("1.10010"),
			},
			tick:    fillTick("1.10009", "1.10011"),
			outcome: fillExecute,
			price:   "1.10010",
			maker:   true,
		},
		{
			name: "buy stop waits below trigger",
			order: common.Order{
				Type: common.OrderTypeStop, Side: common.OrderSideBuy,
				StopPrice: fixed.MustFromString("1.10100"),
			},
			tick:    fillTick("1.10000", "1.10002"),
			outcome: fillWait,
		},
		{
			name: "buy stop fills as market once ask breaches trigger",
			order: common.Order{
				Type: common.OrderTypeStop, Side: common.OrderSideBuy,
				StopPrice: fixed.MustFromString("1.10100"),
			},
			tick:    fillTick("1.10100", "1.10102"),
			outcome: fillExecute,
			price:   "1.10102",
		},
		{
			name: "sell stop fills as market once bid breaches trigger",
			order: common.Order{
				Type: common.OrderTypeStop, Side: common.OrderSideSell,
				StopPrice: fixed.MustFromString("1.09900"),
			},
			tick:    fillTick("1.09898", "1.09900"),
			outcome: fillExecute,
			price:   "1.09898",
		},
		{
			name: "stop limit converts instead of filling",
			order: common.Order{
				Type: common.OrderTypeStopLimit, Side: common.OrderSideBuy,
				StopPrice:  fixed.MustFromString("1.10100"),
				LimitPrice: fixed.MustFromString("1.10050"),
			},
			tick:      fillTick("1.10118", "1.10120"),
			outcome:   fillConvert,
			limitable: "1.10050",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision := router.EvaluateOpen(tc.order, tc.tick)

			assert.Equal(t, tc.outcome, decision.Outcome)
			if tc.price != "" {
				assert.True(t, decision.Price.Eq(fixed.MustFromString(tc.price)),
					"price %s", decision.Price.String())
			}
			assert.Equal(t, tc.maker, decision.Maker)
			if tc.limitable != "" {
				assert.True(t, decision.LimitPrice.Eq(fixed.MustFromString(tc.limitable)),
					"limit price %s", decision.LimitPrice.String())
			}
		})
	}
}

func TestFillRouter_EvaluateClose(t *testing.T) {
	router := FillRouter{}
	tick := fillTick("1.10000", "1.10002")

	long := router.EvaluateClose(common.PositionSideLong, tick)
	assert.Equal(t, fillExecute, long.Outcome)
	assert.True(t, long.Price.Eq(fixed.MustFromString("1.10000")))

	short := router.EvaluateClose(common.PositionSideShort, tick)
	assert.Equal(t, fillExecute, short.Outcome)
	assert.True(t, short.Price.Eq(fixed.MustFromString("1.10002")))
}
