package common

import (
	"time"

	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

type OrderId = int64
type OrderAction int
type OrderType int
type OrderSide int
type OrderStatus string

const (
	OrderActionOpen OrderAction = iota
	OrderActionClose
)

const (
	OrderTypeMarket OrderType = iota
	OrderTypeLimit
	OrderTypeStop
	OrderTypeStopLimit
)

const (
	OrderSideBuy OrderSide = iota
	OrderSideSell
)

// Terminal statuses are executed, rejected, timed-out and force-closed.
// A pending order may only move to one of the terminal statuses.
const (
	OrderStatusSubmitted   OrderStatus = "submitted"
	OrderStatusPending     OrderStatus = "pending"
	OrderStatusExecuted    OrderStatus = "executed"
	OrderStatusRejected    OrderStatus = "rejected"
	OrderStatusTimedOut    OrderStatus = "timed-out"
	OrderStatusForceClosed OrderStatus = "force-closed"
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeMarket:
		return "market"
	case OrderTypeLimit:
		return "limit"
	case OrderTypeStop:
		return "stop"
	case OrderTypeStopLimit:
		return "stop-limit"
	}
	return "unknown"
}

// Order carries a strategy's trading intent. The Type tag selects which of
// the level fields are meaningful: Price for limit orders, StopPrice for
// stop orders, StopPrice plus LimitPrice for stop-limit orders. An untagged
// payload is never passed around; every order is fully typed at submission.
type Order struct {
	Action     OrderAction `json:"action"`
	Type       OrderType   `json:"type"`
	Side       OrderSide   `json:"side"`
	Price      fixed.Point `json:"price,omitempty"`
	StopPrice  fixed.Point `json:"stop_price,omitempty"`
	LimitPrice fixed.Point `json:"limit_price,omitempty"`
	Lots       fixed.Point `json:"lots"`
	StopLoss   fixed.Point `json:"stop_loss,omitempty"`
	TakeProfit fixed.Point `json:"take_profit,omitempty"`
	PositionId PositionId  `json:"position_id,omitempty"`
	Comment    string      `json:"comment,omitempty"`

	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

// OrderResult is the engine's answer to a submission, recorded in the order
// history for executed, pending and rejected submissions alike.
type OrderResult struct {
	OrderId       OrderId     `json:"order_id"`
	Status        OrderStatus `json:"status"`
	PositionId    PositionId  `json:"position_id,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	SubmittedTick int64       `json:"submitted_tick"`
	ResolvedTick  int64       `json:"resolved_tick,omitempty"`
	OriginalOrder Order       `json:"original_order"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

type OrderRejected struct {
	OriginalOrder Order  `json:"original_order"`
	Reason        string `json:"reason,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

type OrderAccepted struct {
	OriginalOrder Order   `json:"original_order"`
	OrderId       OrderId `json:"order_id"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
