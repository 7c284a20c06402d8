package engine

import (
	"context"

	"tickforge/pkg/common"
	"tickforge/pkg/exchange/broker"
	"tickforge/pkg/utility/fixed"
)

// TradingAPI is the narrow surface handed to strategy code. Strategies
// never touch the ledger or pending tracker directly; everything goes
// through the executor.
type TradingAPI interface {
	OpenOrder(ctx context.Context, order common.Order) common.OrderResult
	ClosePosition(ctx context.Context, positionId common.PositionId, lots fixed.Point) common.OrderResult

	ModifyLimitOrder(ctx context.Context, id common.OrderId, changes broker.Changes) error
	ModifyStopOrder(ctx context.Context, id common.OrderId, changes broker.Changes) error
	CancelLimitOrder(ctx context.Context, id common.OrderId) error
	CancelStopOrder(ctx context.Context, id common.OrderId) error
	ModifyPosition(id common.PositionId, levels Levels) error

	AccountInfo() common.AccountInfo
	OpenPositions() []common.Position
	TradeHistory() []common.TradeRecord
}

var _ TradingAPI = (*Executor)(nil)
