package broker

import (
	"context"

	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

type ResponseStatus int

const (
	StatusFilled ResponseStatus = iota
	StatusPending
	StatusRejected
)

func (s ResponseStatus) String() string {
	switch s {
	case StatusFilled:
		return "filled"
	case StatusPending:
		return "pending"
	case StatusRejected:
		return "rejected"
	}
	return "unknown"
}

// Request is one order submission as the broker sees it.
type Request struct {
	OrderId       common.OrderId
	Order         common.Order
	SubmittedTick int64
}

// Response is keyed by BrokerRef on the broker side; the engine keeps a
// reverse index from BrokerRef to its internal order id.
type Response struct {
	Status    ResponseStatus
	BrokerRef string
	Reason    string
}

// Changes carries the mutable order fields for a modify request. Nil-able
// semantics are expressed through the Has flags, not through zero values,
// so a modification to level zero stays representable.
type Changes struct {
	HasPrice      bool
	Price         fixed.Point
	HasStopPrice  bool
	StopPrice     fixed.Point
	HasStopLoss   bool
	StopLoss      fixed.Point
	HasTakeProfit bool
	TakeProfit    fixed.Point
}

// Adapter abstracts the broker side of order handling. The engine resolves
// deterministically given the adapter's responses; retries and transport
// concerns belong behind this interface, never in the engine.
type Adapter interface {
	ExecuteOrder(ctx context.Context, req Request) Response
	CheckOrderStatus(ctx context.Context, brokerRef string, currentTick int64) Response
	CancelOrder(ctx context.Context, brokerRef string) Response
	ModifyOrder(ctx context.Context, brokerRef string, changes Changes) Response
}
