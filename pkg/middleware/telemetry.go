package middleware

import (
	"context"

	"go.uber.org/zap"

	"tickforge/pkg/bus"
	"tickforge/pkg/common"
)

type Telemetry struct {
	logger *zap.Logger

	tickEventCounter           int64
	barEventCounter            int64
	balanceEventCounter        int64
	equityEventCounter         int64
	positionOpenEventCounter   int64
	positionCloseEventCounter  int64
	positionUpdateEventCounter int64
	orderEventCounter          int64
	orderAcceptedEventCounter  int64
	orderRejectedEventCounter  int64
	tradeEventCounter          int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithTick(handler bus.TickEventHandler) bus.TickEventHandler {
	return func(ctx context.Context, tick common.Tick) {
		t.tickEventCounter++
		handler(ctx, tick)
	}
}

func (t *Telemetry) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		t.barEventCounter++
		handler(ctx, bar)
	}
}

func (t *Telemetry) WithBalance(handler bus.BalanceEventHandler) bus.BalanceEventHandler {
	return func(ctx context.Context, balance common.Balance) {
		t.balanceEventCounter++
		handler(ctx, balance)
	}
}

func (t *Telemetry) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		t.equityEventCounter++
		handler(ctx, equity)
	}
}

func (t *Telemetry) WithPositionOpen(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionOpenEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionClose(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionCloseEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionUpdate(handler bus.PositionUpdateEventHandler) bus.PositionUpdateEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionUpdateEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderAcceptance(handler bus.OrderAcceptanceEventHandler) bus.OrderAcceptanceEventHandler {
	return func(ctx context.Context, accepted common.OrderAccepted) {
		t.orderAcceptedEventCounter++
		handler(ctx, accepted)
	}
}

func (t *Telemetry) WithOrderRejection(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		t.orderRejectedEventCounter++
		handler(ctx, rejected)
	}
}

func (t *Telemetry) WithTrade(handler bus.TradeEventHandler) bus.TradeEventHandler {
	return func(ctx context.Context, trade common.TradeRecord) {
		t.tradeEventCounter++
		handler(ctx, trade)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Int64("tick_events", t.tickEventCounter),
		zap.Int64("bar_events", t.barEventCounter),
		zap.Int64("balance_events", t.balanceEventCounter),
		zap.Int64("equity_events", t.equityEventCounter),
		zap.Int64("position_open_events", t.positionOpenEventCounter),
		zap.Int64("position_close_events", t.positionCloseEventCounter),
		zap.Int64("position_update_events", t.positionUpdateEventCounter),
		zap.Int64("order_events", t.orderEventCounter),
		zap.Int64("order_accepted_events", t.orderAcceptedEventCounter),
		zap.Int64("order_rejected_events", t.orderRejectedEventCounter),
		zap.Int64("trade_events", t.tradeEventCounter))
}
