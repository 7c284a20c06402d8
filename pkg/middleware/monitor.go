package middleware

import (
	"context"
	"log/slog"

	"tickforge/pkg/bus"
	"tickforge/pkg/common"
)

type MonitorFlags uint16

const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorTicks
	MonitorBars
	MonitorEquity
	MonitorBalance
	MonitorPositionsOpened
	MonitorPositionsClosed
	MonitorPositionsUpdated
	MonitorOrders
	MonitorOrdersRejected
	MonitorOrdersAccepted
	MonitorTrades
)

type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithTick(handler bus.TickEventHandler) bus.TickEventHandler {
	return func(ctx context.Context, tick common.Tick) {
		if m.flags&MonitorTicks != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "tick", tick)
		}
		handler(ctx, tick)
	}
}

func (m *Monitor) WithBar(handler bus.BarEventHandler) bus.BarEventHandler {
	return func(ctx context.Context, bar common.Bar) {
		if m.flags&MonitorBars != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "bar", bar)
		}
		handler(ctx, bar)
	}
}

func (m *Monitor) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		if m.flags&MonitorEquity != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "equity", equity)
		}
		handler(ctx, equity)
	}
}

func (m *Monitor) WithBalance(handler bus.BalanceEventHandler) bus.BalanceEventHandler {
	return func(ctx context.Context, balance common.Balance) {
		if m.flags&MonitorBalance != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "balance", balance)
		}
		handler(ctx, balance)
	}
}

func (m *Monitor) WithPositionOpen(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsOpened != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_open", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionClose(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsClosed != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_close", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionUpdate(handler bus.PositionUpdateEventHandler) bus.PositionUpdateEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsUpdated != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_update", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrders != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderRejection(handler bus.OrderRejectionEventHandler) bus.OrderRejectionEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		if m.flags&MonitorOrdersRejected != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_rejected", rejected)
		}
		handler(ctx, rejected)
	}
}

func (m *Monitor) WithOrderAcceptance(handler bus.OrderAcceptanceEventHandler) bus.OrderAcceptanceEventHandler {
	return func(ctx context.Context, accepted common.OrderAccepted) {
		if m.flags&MonitorOrdersAccepted != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_accepted", accepted)
		}
		handler(ctx, accepted)
	}
}

func (m *Monitor) WithTrade(handler bus.TradeEventHandler) bus.TradeEventHandler {
	return func(ctx context.Context, trade common.TradeRecord) {
		if m.flags&MonitorTrades != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "trade", trade)
		}
		handler(ctx, trade)
	}
}
