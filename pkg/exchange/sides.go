package exchange

import (
	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

// Price side convention: a long position is entered at ask and exited at
// bid, a short position is entered at bid and exited at ask. Kept as pure
// functions so every call site shares one tested definition.

func EntryPrice(side common.PositionSide, tick common.Tick) fixed.Point {
	if side == common.PositionSideLong {
		return tick.Ask
	}
	return tick.Bid
}

func ExitPrice(side common.PositionSide, tick common.Tick) fixed.Point {
	if side == common.PositionSideLong {
		return tick.Bid
	}
	return tick.Ask
}

// ExitSidePrice returns the price the exit side of the position observes,
// which is also the side SL/TP triggers are evaluated against.
func ExitSidePrice(side common.PositionSide, tick common.Tick) fixed.Point {
	return ExitPrice(side, tick)
}

func SideFromOrder(side common.OrderSide) common.PositionSide {
	if side == common.OrderSideBuy {
		return common.PositionSideLong
	}
	return common.PositionSideShort
}

// StopLossHit reports whether the position's stop loss level is reached on
// this tick. Long positions trigger on bid falling to the level, short
// positions on ask rising to it.
func StopLossHit(position common.Position, tick common.Tick) bool {
	if position.StopLoss.IsZero() {
		return false
	}
	if position.Side == common.PositionSideLong {
		return tick.Bid.Lte(position.StopLoss)
	}
	return tick.Ask.Gte(position.StopLoss)
}

// TakeProfitHit mirrors StopLossHit for the take profit level.
func TakeProfitHit(position common.Position, tick common.Tick) bool {
	if position.TakeProfit.IsZero() {
		return false
	}
	if position.Side == common.PositionSideLong {
		return tick.Bid.Gte(position.TakeProfit)
	}
	return tick.Ask.Lte(position.TakeProfit)
}

// LimitReached reports whether a resting limit level is fillable: a buy
// limit fills once bid falls to the level, a sell limit once ask rises to
// it.
func LimitReached(side common.OrderSide, limit fixed.Point, tick common.Tick) bool {
	if side == common.OrderSideBuy {
		return tick.Bid.Lte(limit)
	}
	return tick.Ask.Gte(limit)
}

// StopTriggered reports whether a stop level is breached: a buy stop on ask
// rising to the level, a sell stop on bid falling to it.
func StopTriggered(side common.OrderSide, stop fixed.Point, tick common.Tick) bool {
	if side == common.OrderSideBuy {
		return tick.Ask.Gte(stop)
	}
	return tick.Bid.Lte(stop)
}
