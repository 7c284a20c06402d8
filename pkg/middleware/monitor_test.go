package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"tickforge/pkg/common"
)

func setupTestLogger(_ *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	return buf
}

func TestMiddlewareMonitor_NewMonitor(t *testing.T) {
	m := NewMonitor(MonitorTicks | MonitorBars)
	if m.flags != (MonitorTicks | MonitorBars) {
		t.Errorf("Expected flags %d, got %d", MonitorTicks|MonitorBars, m.flags)
	}
}

func TestMiddlewareMonitor_WithTick(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, tick common.Tick) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorTicks)
	wrapped := m.WithTick(handler)

	wrapped(context.Background(), common.Tick{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if !strings.Contains(buf.String(), "tick") {
		t.Error("Log entry not found")
	}
}

func TestMiddlewareMonitor_WithTickNoMonitor(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, tick common.Tick) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorNone)
	wrapped := m.WithTick(handler)

	wrapped(context.Background(), common.Tick{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if strings.Contains(buf.String(), "tick") {
		t.Error("Unexpected log entry")
	}
}

func TestMiddlewareMonitor_WithTickMonitorAll(t *testing.T) {
	buf := setupTestLogger(t)

	handler := func(ctx context.Context, tick common.Tick) {}

	m := NewMonitor(MonitorAll)
	wrapped := m.WithTick(handler)

	wrapped(context.Background(), common.Tick{})

	if !strings.Contains(buf.String(), "tick") {
		t.Error("Log entry not found")
	}
}

func TestMiddlewareMonitor_WithTrade(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, trade common.TradeRecord) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorTrades)
	wrapped := m.WithTrade(handler)

	wrapped(context.Background(), common.TradeRecord{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if !strings.Contains(buf.String(), "trade") {
		t.Error("Log entry not found")
	}
}

func TestMiddlewareMonitor_WithOrderRejection(t *testing.T) {
	buf := setupTestLogger(t)

	var handlerCalled bool
	handler := func(ctx context.Context, rejected common.OrderRejected) {
		handlerCalled = true
	}

	m := NewMonitor(MonitorOrdersRejected)
	wrapped := m.WithOrderRejection(handler)

	wrapped(context.Background(), common.OrderRejected{})

	if !handlerCalled {
		t.Error("Handler not called")
	}

	if !strings.Contains(buf.String(), "order_rejected") {
		t.Error("Log entry not found")
	}
}
