package broker

import (
	"context"
	"fmt"
)

type MockMode int

const (
	// ModeInstantFill acknowledges every order as broker-side complete.
	ModeInstantFill MockMode = iota
	// ModeDelayedFill acknowledges as pending and completes after a fixed
	// number of ticks.
	ModeDelayedFill
	// ModeRejectAll rejects every submission.
	ModeRejectAll
	// ModeAlwaysPending never resolves; used to exercise timeout and
	// force-close paths.
	ModeAlwaysPending
)

type mockOrder struct {
	req      Request
	fillTick int64
	canceled bool
}

// Mock is a deterministic in-process broker. Broker references are issued
// sequentially, so a fixed submission sequence always yields the same refs.
type Mock struct {
	mode      MockMode
	fillDelay int64

	refCounter int64
	orders     map[string]*mockOrder
}

func NewMock(mode MockMode, fillDelay int64) *Mock {
	return &Mock{
		mode:      mode,
		fillDelay: fillDelay,
		orders:    make(map[string]*mockOrder),
	}
}

func (m *Mock) ExecuteOrder(_ context.Context, req Request) Response {
	if m.mode == ModeRejectAll {
		return Response{Status: StatusRejected, Reason: "rejected by broker"}
	}

	m.refCounter++
	ref := fmt.Sprintf("mock-%d", m.refCounter)

	order := &mockOrder{req: req}
	switch m.mode {
	case ModeInstantFill:
		order.fillTick = req.SubmittedTick
	case ModeDelayedFill:
		order.fillTick = req.SubmittedTick + m.fillDelay
	case ModeAlwaysPending:
		order.fillTick = -1
	}
	m.orders[ref] = order

	if m.mode == ModeInstantFill {
		return Response{Status: StatusFilled, BrokerRef: ref}
	}
	return Response{Status: StatusPending, BrokerRef: ref}
}

func (m *Mock) CheckOrderStatus(_ context.Context, brokerRef string, currentTick int64) Response {
	order, ok := m.orders[brokerRef]
	if !ok {
		return Response{Status: StatusRejected, BrokerRef: brokerRef, Reason: "unknown broker reference"}
	}
	if order.canceled {
		return Response{Status: StatusRejected, BrokerRef: brokerRef, Reason: "order canceled"}
	}
	if order.fillTick >= 0 && currentTick >= order.fillTick {
		return Response{Status: StatusFilled, BrokerRef: brokerRef}
	}
	return Response{Status: StatusPending, BrokerRef: brokerRef}
}

func (m *Mock) CancelOrder(_ context.Context, brokerRef string) Response {
	order, ok := m.orders[brokerRef]
	if !ok {
		return Response{Status: StatusRejected, BrokerRef: brokerRef, Reason: "unknown broker reference"}
	}
	order.canceled = true
	delete(m.orders, brokerRef)
	return Response{Status: StatusFilled, BrokerRef: brokerRef}
}

func (m *Mock) ModifyOrder(_ context.Context, brokerRef string, changes Changes) Response {
	order, ok := m.orders[brokerRef]
	if !ok {
		return Response{Status: StatusRejected, BrokerRef: brokerRef, Reason: "unknown broker reference"}
	}
	if changes.HasPrice {
		order.req.Order.Price = changes.Price
	}
	if changes.HasStopPrice {
		order.req.Order.StopPrice = changes.StopPrice
	}
	if changes.HasStopLoss {
		order.req.Order.StopLoss = changes.StopLoss
	}
	if changes.HasTakeProfit {
		order.req.Order.TakeProfit = changes.TakeProfit
	}
	return Response{Status: StatusPending, BrokerRef: brokerRef}
}
