package common

import (
	"time"

	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

type CloseType string
type CloseReason string

const (
	CloseTypeFull    CloseType = "full"
	CloseTypePartial CloseType = "partial"
)

const (
	CloseReasonTakeProfit  CloseReason = "tp-triggered"
	CloseReasonStopLoss    CloseReason = "sl-triggered"
	CloseReasonScenarioEnd CloseReason = "scenario-end"
	CloseReasonManual      CloseReason = "manual"
)

// TradeRecord is an immutable audit entry, one per close event. All records
// of one position share the same EntryPrice and EntryTick, and their Lots
// sum to the position's OriginalLots.
type TradeRecord struct {
	PositionId     PositionId   `json:"position_id"`
	Side           PositionSide `json:"side"`
	Digits         int          `json:"digits"`
	ContractSize   fixed.Point  `json:"contract_size"`
	Currency       string       `json:"currency"`
	EntryPrice     fixed.Point  `json:"entry_price"`
	ExitPrice      fixed.Point  `json:"exit_price"`
	EntryTick      int64        `json:"entry_tick"`
	ExitTick       int64        `json:"exit_tick"`
	Lots           fixed.Point  `json:"lots"`
	GrossPnL       fixed.Point  `json:"gross_pnl"`
	SpreadCost     fixed.Point  `json:"spread_cost"`
	CommissionCost fixed.Point  `json:"commission_cost"`
	SwapCost       fixed.Point  `json:"swap_cost"`
	TotalFees      fixed.Point  `json:"total_fees"`
	NetPnL         fixed.Point  `json:"net_pnl"`
	CloseType      CloseType    `json:"close_type"`
	CloseReason    CloseReason  `json:"close_reason"`

	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
