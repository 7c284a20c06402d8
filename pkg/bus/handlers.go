package bus

import (
	"context"

	"tickforge/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type TickEventHandler EventHandler[common.Tick]
type BarEventHandler EventHandler[common.Bar]
type EquityEventHandler EventHandler[common.Equity]
type BalanceEventHandler EventHandler[common.Balance]
type PositionOpenEventHandler EventHandler[common.Position]
type PositionCloseEventHandler EventHandler[common.Position]
type PositionUpdateEventHandler EventHandler[common.Position]
type OrderEventHandler EventHandler[common.Order]
type OrderAcceptanceEventHandler EventHandler[common.OrderAccepted]
type OrderRejectionEventHandler EventHandler[common.OrderRejected]
type TradeEventHandler EventHandler[common.TradeRecord]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
