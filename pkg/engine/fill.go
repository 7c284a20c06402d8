package engine

import (
	"tickforge/pkg/common"
	"tickforge/pkg/exchange"
	"tickforge/pkg/utility/fixed"
)

type fillOutcome int

const (
	// fillWait keeps the order pending for a later tick.
	fillWait fillOutcome = iota
	// fillExecute fills the order at Decision.Price on this tick.
	fillExecute
	// fillConvert turns a triggered stop-limit into a resting limit order.
	fillConvert
)

// Decision is the fill router's verdict for one pending order on one tick.
type Decision struct {
	Outcome fillOutcome
	Price   fixed.Point
	// Maker is true when the fill rested at a level (limit or stop-limit
	// fill), false when it crossed the spread.
	Maker bool
	// LimitPrice is the level a converted stop-limit rests at.
	LimitPrice fixed.Point
}

// FillRouter decides whether, at what price and under which fee schedule a
// pending order fills against the current tick. It is stateless; all state
// lives in the pending tracker.
type FillRouter struct{}

// EvaluateOpen resolves an open-action order against the tick. Market
// orders fill immediately at the entry side price. Limit orders fill at
// their level once it is reached. Stop orders fill as market once the stop
// is breached; stop-limits convert to limit orders instead.
func (FillRouter) EvaluateOpen(order common.Order, tick common.Tick) Decision {
	side := exchange.SideFromOrder(order.Side)

	switch order.Type {
	case common.OrderTypeMarket:
		return Decision{Outcome: fillExecute, Price: exchange.EntryPrice(side, tick)}

	case common.OrderTypeLimit:
		if exchange.LimitReached(order.Side, order.Price, tick) {
			return Decision{Outcome: fillExecute, Price: order.Price, Maker: true}
		}
		return Decision{Outcome: fillWait}

	case common.OrderTypeStop:
		if exchange.StopTriggered(order.Side, order.StopPrice, tick) {
			return Decision{Outcome: fillExecute, Price: exchange.EntryPrice(side, tick)}
		}
		return Decision{Outcome: fillWait}

	case common.OrderTypeStopLimit:
		if exchange.StopTriggered(order.Side, order.StopPrice, tick) {
			return Decision{Outcome: fillConvert, LimitPrice: order.LimitPrice}
		}
		return Decision{Outcome: fillWait}
	}

	return Decision{Outcome: fillWait}
}

// EvaluateClose resolves a close-action order: closes always cross the
// spread at the position's exit side price.
func (FillRouter) EvaluateClose(side common.PositionSide, tick common.Tick) Decision {
	return Decision{Outcome: fillExecute, Price: exchange.ExitPrice(side, tick)}
}
