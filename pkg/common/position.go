package common

import (
	"time"

	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

type PositionSide int
type PositionStatus string
type PositionId = int64

const (
	PositionSideLong PositionSide = iota
	PositionSideShort
)

const (
	PositionStatusOpen            PositionStatus = "open"
	PositionStatusPartiallyClosed PositionStatus = "partially-closed"
	PositionStatusClosed          PositionStatus = "closed"
)

func (s PositionSide) String() string {
	if s == PositionSideShort {
		return "short"
	}
	return "long"
}

// Position is an open or partially closed holding. Lots shrinks through
// partial closes and never exceeds OriginalLots; the position leaves the
// open set once Lots reaches zero.
type Position struct {
	Id           PositionId     `json:"id"`
	Status       PositionStatus `json:"status"`
	Side         PositionSide   `json:"side"`
	Lots         fixed.Point    `json:"lots"`
	OriginalLots fixed.Point    `json:"original_lots"`
	EntryPrice   fixed.Point    `json:"entry_price"`
	EntryTick    int64          `json:"entry_tick"`
	EntryType    OrderType      `json:"entry_type"`
	StopLoss     fixed.Point    `json:"stop_loss,omitempty"`
	TakeProfit   fixed.Point    `json:"take_profit,omitempty"`
	Digits       int            `json:"digits"`
	ContractSize fixed.Point    `json:"contract_size"`
	Currency     string         `json:"currency"`

	Source        string              `json:"src,omitempty"`
	Symbol        string              `json:"symbol,omitempty"`
	ExecutionID   utility.ExecutionID `json:"eid,omitempty"`
	TraceID       utility.TraceID     `json:"tid,omitempty"`
	OrderTraceIDs []utility.TraceID   `json:"order_tid,omitempty"`
	TimeStamp     time.Time           `json:"ts"`
}
