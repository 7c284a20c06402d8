package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tickforge/pkg/bus"
	"tickforge/pkg/common"
	"tickforge/pkg/engine/latency"
	"tickforge/pkg/exchange"
	"tickforge/pkg/exchange/broker"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

const executorComponentName = "engine.executor"

// TeardownReason tags orders swept by CloseAllRemainingOrders.
const TeardownReason = "scenario_end"

var (
	ErrLimitOrderNotFound = errors.New("limit order not found")
	ErrStopOrderNotFound  = errors.New("stop order not found")
)

// Executor is the façade over the fill pipeline: it validates and submits
// orders, resolves them against the broker adapter and the seeded latency
// streams, scans open positions for SL/TP triggers, and owns the order
// history. Strictly single-threaded within a scenario; OnTick must be
// called exactly once per tick, before the strategy is invoked.
type Executor struct {
	symbols exchange.SymbolStore
	adapter broker.Adapter
	latency *latency.Generator
	ledger  *Ledger
	tracker *PendingTracker
	fills   FillRouter
	router  *bus.Router

	timeoutTicks int64
	enabledTypes map[common.OrderType]bool

	orderCounter common.OrderId
	currentTick  common.Tick
	hasTick      bool

	history      []common.OrderResult
	historyIndex map[common.OrderId]int
}

func NewExecutor(symbols exchange.SymbolStore, adapter broker.Adapter, cfg Config, opts ...Option) *Executor {
	e := &Executor{
		symbols:      symbols,
		adapter:      adapter,
		latency:      latency.NewGenerator(cfg.Latency),
		ledger:       NewLedger(cfg.Currency, cfg.StartBalance),
		tracker:      NewPendingTracker(),
		timeoutTicks: defaultPendingTimeoutTicks,
		historyIndex: make(map[common.OrderId]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnTick advances the engine one step: swap accrual, SL/TP trigger scan,
// pending-order resolution, timeout detection, in that order.
func (e *Executor) OnTick(ctx context.Context, tick common.Tick) {
	e.currentTick = tick
	e.hasTick = true

	e.ledger.AccrueSwaps(tick.TimeStamp)
	e.scanTriggers(tick)
	e.resolvePending(ctx, tick)

	for _, flagged := range e.tracker.CheckTimeouts(tick.Index) {
		slog.Warn("pending order timed out",
			"order_id", flagged.OrderId,
			"broker_ref", flagged.BrokerRef,
			"submitted_tick", flagged.SubmittedTick,
			"current_tick", tick.Index)
	}

	e.post(bus.BalanceEvent, common.Balance{
		Source:      executorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   tick.TimeStamp,
		Value:       e.ledger.Balance(),
	})
	e.post(bus.EquityEvent, common.Equity{
		Source:      executorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   tick.TimeStamp,
		Value:       e.ledger.Equity(tick),
	})
}

// OpenOrder validates and submits an open order. Validation failures and
// broker-side rejections return a rejected result, never an error; the
// scenario continues. An order whose fill conditions already hold on the
// current tick may return executed immediately.
func (e *Executor) OpenOrder(ctx context.Context, order common.Order) common.OrderResult {
	order.Action = common.OrderActionOpen

	info, err := e.symbols.Get(order.Symbol)
	if err != nil {
		return e.reject(order, fmt.Sprintf("unknown symbol %q", order.Symbol))
	}
	if e.enabledTypes != nil && !e.enabledTypes[order.Type] {
		return e.reject(order, fmt.Sprintf("order type %s disabled", order.Type))
	}
	if order.Lots.Lt(info.VolumeMin) {
		return e.reject(order, fmt.Sprintf("lots below volume minimum %s", info.VolumeMin.String()))
	}

	return e.submit(ctx, order)
}

// ClosePosition submits a close order for the position. Zero lots means
// full close; lots at or above the held size is treated as a full-close
// request. A second close while one is already in flight is rejected.
func (e *Executor) ClosePosition(ctx context.Context, positionId common.PositionId, lots fixed.Point) common.OrderResult {
	position, err := e.ledger.Position(positionId)
	if err != nil {
		return e.reject(common.Order{Action: common.OrderActionClose, PositionId: positionId},
			fmt.Sprintf("position %d not found", positionId))
	}
	if e.tracker.IsPendingClose(positionId) {
		return e.reject(common.Order{Action: common.OrderActionClose, PositionId: positionId},
			fmt.Sprintf("close of position %d already pending", positionId))
	}

	side := common.OrderSideSell
	if position.Side == common.PositionSideShort {
		side = common.OrderSideBuy
	}
	order := common.Order{
		Action:     common.OrderActionClose,
		Type:       common.OrderTypeMarket,
		Side:       side,
		Lots:       lots,
		PositionId: positionId,
		Symbol:     position.Symbol,
	}
	return e.submit(ctx, order)
}

// ModifyLimitOrder updates a resting limit order's level and protective
// prices. Returns ErrLimitOrderNotFound when the order already resolved or
// is not a limit order.
func (e *Executor) ModifyLimitOrder(ctx context.Context, id common.OrderId, changes broker.Changes) error {
	pending, ok := e.tracker.Get(id)
	if !ok || pending.Action != common.OrderActionOpen || pending.Order.Type != common.OrderTypeLimit {
		return ErrLimitOrderNotFound
	}
	if resp := e.adapter.ModifyOrder(ctx, pending.BrokerRef, changes); resp.Status == broker.StatusRejected {
		return fmt.Errorf("modify of order %d refused: %s", id, resp.Reason)
	}
	if changes.HasPrice {
		pending.Order.Price = changes.Price
	}
	applyProtectiveChanges(&pending.Order, changes)
	return nil
}

// ModifyStopOrder mirrors ModifyLimitOrder for stop and stop-limit orders.
func (e *Executor) ModifyStopOrder(ctx context.Context, id common.OrderId, changes broker.Changes) error {
	pending, ok := e.tracker.Get(id)
	if !ok || pending.Action != common.OrderActionOpen ||
		(pending.Order.Type != common.OrderTypeStop && pending.Order.Type != common.OrderTypeStopLimit) {
		return ErrStopOrderNotFound
	}
	if resp := e.adapter.ModifyOrder(ctx, pending.BrokerRef, changes); resp.Status == broker.StatusRejected {
		return fmt.Errorf("modify of order %d refused: %s", id, resp.Reason)
	}
	if changes.HasStopPrice {
		pending.Order.StopPrice = changes.StopPrice
	}
	applyProtectiveChanges(&pending.Order, changes)
	return nil
}

// CancelLimitOrder removes a resting limit order. Canceling an order that
// already resolved is a no-op returning ErrLimitOrderNotFound, never a
// fatal error.
func (e *Executor) CancelLimitOrder(ctx context.Context, id common.OrderId) error {
	return e.cancel(ctx, id, ErrLimitOrderNotFound, common.OrderTypeLimit)
}

func (e *Executor) CancelStopOrder(ctx context.Context, id common.OrderId) error {
	return e.cancel(ctx, id, ErrStopOrderNotFound, common.OrderTypeStop, common.OrderTypeStopLimit)
}

// ModifyPosition updates the SL/TP levels of an open position.
func (e *Executor) ModifyPosition(id common.PositionId, levels Levels) error {
	if err := e.ledger.Modify(id, levels); err != nil {
		return err
	}
	if position, err := e.ledger.Position(id); err == nil {
		e.post(bus.PositionUpdateEvent, position)
	}
	return nil
}

// CloseAllRemainingOrders is the scenario teardown sweep. Outstanding
// orders resolve as timed-out or force-closed anomalies; open positions are
// flattened through a synthetic path that mutates the ledger directly,
// bypassing the tracker, so legitimate end-of-run flattening is never
// counted as a stuck order.
func (e *Executor) CloseAllRemainingOrders() {
	tick := e.currentTick

	for _, cleared := range e.tracker.ClearPending(TeardownReason) {
		e.finalize(cleared.Order.OrderId, cleared.Status, cleared.Reason, 0, tick.Index)
		slog.Warn("order swept at teardown",
			"order_id", cleared.Order.OrderId,
			"status", cleared.Status,
			"submitted_tick", cleared.Order.SubmittedTick)
	}

	if !e.hasTick {
		return
	}
	for _, position := range e.ledger.Positions() {
		price := exchange.ExitPrice(position.Side, tick)
		record, err := e.ledger.FullClose(position.Id, price, tick.Index, common.CloseReasonScenarioEnd, tick.TimeStamp)
		if err != nil {
			slog.Error("teardown close failed", "position_id", position.Id, "error", err)
			continue
		}
		e.emitClose(record)
	}
}

func (e *Executor) OrderHistory() []common.OrderResult {
	history := make([]common.OrderResult, len(e.history))
	copy(history, e.history)
	return history
}

func (e *Executor) ExecutionStats() ExecutionStats {
	return FoldExecutionStats(e.history, e.ledger.History())
}

func (e *Executor) PendingStats() PendingOrderStats {
	return FoldPendingStats(e.history)
}

func (e *Executor) OpenPositions() []common.Position {
	return e.ledger.Positions()
}

func (e *Executor) TradeHistory() []common.TradeRecord {
	return e.ledger.History()
}

func (e *Executor) AccountInfo() common.AccountInfo {
	equity := e.ledger.Balance()
	if e.hasTick {
		equity = e.ledger.Equity(e.currentTick)
	}
	return common.AccountInfo{
		Currency:   e.ledger.currency,
		Balance:    e.ledger.Balance(),
		Equity:     equity,
		UsedMargin: e.ledger.UsedMargin(),
	}
}

// scanTriggers closes positions whose SL or TP level is reached. Trigger
// fills bypass the latency pipeline and execute at the exact level. When a
// tick breaches both levels the stop loss wins.
func (e *Executor) scanTriggers(tick common.Tick) {
	for _, position := range e.ledger.Positions() {
		var price fixed.Point
		var reason common.CloseReason

		switch {
		case exchange.StopLossHit(position, tick):
			price = position.StopLoss
			reason = common.CloseReasonStopLoss
		case exchange.TakeProfitHit(position, tick):
			price = position.TakeProfit
			reason = common.CloseReasonTakeProfit
		default:
			continue
		}

		record, err := e.ledger.FullClose(position.Id, price, tick.Index, reason, tick.TimeStamp)
		if err != nil {
			slog.Error("trigger close failed", "position_id", position.Id, "error", err)
			continue
		}
		e.emitClose(record)
	}
}

func (e *Executor) resolvePending(ctx context.Context, tick common.Tick) {
	for _, pending := range e.tracker.Pending() {
		e.resolveOne(ctx, pending, tick)
	}
}

// resolveOne advances one in-flight order against the tick. Resolution
// requires the broker to have completed the order on its side, the seeded
// fill tick to be reached, and the fill router's price condition to hold.
func (e *Executor) resolveOne(ctx context.Context, pending *PendingOrder, tick common.Tick) (common.OrderResult, bool) {
	if !pending.BrokerComplete {
		resp := e.adapter.CheckOrderStatus(ctx, pending.BrokerRef, tick.Index)
		switch resp.Status {
		case broker.StatusFilled:
			pending.BrokerComplete = true
		case broker.StatusRejected:
			e.tracker.Remove(pending.OrderId)
			return e.finalize(pending.OrderId, common.OrderStatusRejected, resp.Reason, 0, tick.Index), true
		}
	}
	if !pending.BrokerComplete || tick.Index < pending.ReadyTick {
		return common.OrderResult{}, false
	}

	if pending.Action == common.OrderActionClose {
		return e.resolveClose(pending, tick)
	}
	return e.resolveOpen(pending, tick)
}

func (e *Executor) resolveOpen(pending *PendingOrder, tick common.Tick) (common.OrderResult, bool) {
	info, err := e.symbols.Get(pending.Order.Symbol)
	if err != nil {
		e.tracker.Remove(pending.OrderId)
		return e.finalize(pending.OrderId, common.OrderStatusRejected, err.Error(), 0, tick.Index), true
	}

	decision := e.fills.EvaluateOpen(pending.Order, tick)
	switch decision.Outcome {
	case fillConvert:
		if err := e.tracker.ConvertToLimit(pending.OrderId, decision.LimitPrice); err != nil {
			slog.Error("stop-limit conversion failed", "order_id", pending.OrderId, "error", err)
		}
		return common.OrderResult{}, false

	case fillExecute:
		lots := pending.Order.Lots
		commission := info.Commission.PerLot(decision.Maker).Mul(lots)
		position := e.ledger.Open(
			exchange.SideFromOrder(pending.Order.Side), info, lots, decision.Price,
			tick.Index, pending.Order.Type, pending.Order.StopLoss, pending.Order.TakeProfit,
			tick.Spread(), commission, tick.TimeStamp)

		e.tracker.Remove(pending.OrderId)
		e.post(bus.PositionOpenEvent, position)
		return e.finalize(pending.OrderId, common.OrderStatusExecuted, "", position.Id, tick.Index), true
	}

	return common.OrderResult{}, false
}

func (e *Executor) resolveClose(pending *PendingOrder, tick common.Tick) (common.OrderResult, bool) {
	positionId := pending.Order.PositionId
	position, err := e.ledger.Position(positionId)
	if err != nil {
		e.tracker.Remove(pending.OrderId)
		return e.finalize(pending.OrderId, common.OrderStatusRejected,
			fmt.Sprintf("position %d not found", positionId), 0, tick.Index), true
	}

	decision := e.fills.EvaluateClose(position.Side, tick)

	var record common.TradeRecord
	lots := pending.Order.Lots
	if lots.IsZero() || lots.Gte(position.Lots) {
		record, err = e.ledger.FullClose(positionId, decision.Price, tick.Index, common.CloseReasonManual, tick.TimeStamp)
	} else {
		record, err = e.ledger.PartialClose(positionId, lots, decision.Price, tick.Index, common.CloseReasonManual, tick.TimeStamp)
	}
	if err != nil {
		e.tracker.Remove(pending.OrderId)
		return e.finalize(pending.OrderId, common.OrderStatusRejected, err.Error(), 0, tick.Index), true
	}

	e.tracker.Remove(pending.OrderId)
	e.emitClose(record)
	return e.finalize(pending.OrderId, common.OrderStatusExecuted, "", positionId, tick.Index), true
}

func (e *Executor) submit(ctx context.Context, order common.Order) common.OrderResult {
	e.orderCounter++
	id := e.orderCounter

	req := broker.Request{OrderId: id, Order: order, SubmittedTick: e.currentTick.Index}
	resp := e.adapter.ExecuteOrder(ctx, req)
	if resp.Status == broker.StatusRejected {
		return e.rejectWithId(id, order, resp.Reason)
	}

	e.tracker.Submit(PendingOrder{
		OrderId:        id,
		BrokerRef:      resp.BrokerRef,
		Action:         order.Action,
		Order:          order,
		SubmittedTick:  e.currentTick.Index,
		ReadyTick:      e.currentTick.Index + e.latency.NextFillDelay(),
		TimeoutTick:    e.currentTick.Index + e.timeoutTicks,
		BrokerComplete: resp.Status == broker.StatusFilled,
	})

	result := e.appendResult(id, order, common.OrderStatusPending, "")
	e.post(bus.OrderAcceptanceEvent, common.OrderAccepted{
		OriginalOrder: order,
		OrderId:       id,
		Source:        executorComponentName,
		ExecutionId:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		TimeStamp:     e.currentTick.TimeStamp,
	})

	// Zero-latency fills resolve on the submission tick.
	if e.hasTick {
		if stored, ok := e.tracker.Get(id); ok {
			if resolved, done := e.resolveOne(ctx, stored, e.currentTick); done {
				return resolved
			}
		}
	}
	return result
}

func (e *Executor) cancel(ctx context.Context, id common.OrderId, notFound error, types ...common.OrderType) error {
	pending, ok := e.tracker.Get(id)
	if !ok || pending.Action != common.OrderActionOpen {
		return notFound
	}
	matched := false
	for _, t := range types {
		if pending.Order.Type == t {
			matched = true
			break
		}
	}
	if !matched {
		return notFound
	}

	e.adapter.CancelOrder(ctx, pending.BrokerRef)
	e.tracker.Remove(id)
	e.finalize(id, common.OrderStatusRejected, "canceled", 0, e.currentTick.Index)
	return nil
}

func (e *Executor) reject(order common.Order, reason string) common.OrderResult {
	e.orderCounter++
	return e.rejectWithId(e.orderCounter, order, reason)
}

func (e *Executor) rejectWithId(id common.OrderId, order common.Order, reason string) common.OrderResult {
	result := e.appendResult(id, order, common.OrderStatusRejected, reason)
	result.ResolvedTick = e.currentTick.Index
	e.history[e.historyIndex[id]] = result

	e.post(bus.OrderRejectionEvent, common.OrderRejected{
		OriginalOrder: order,
		Reason:        reason,
		Source:        executorComponentName,
		ExecutionId:   utility.GetExecutionID(),
		TraceID:       utility.CreateTraceID(),
		TimeStamp:     e.currentTick.TimeStamp,
	})
	return result
}

func (e *Executor) appendResult(id common.OrderId, order common.Order, status common.OrderStatus, reason string) common.OrderResult {
	result := common.OrderResult{
		OrderId:       id,
		Status:        status,
		Reason:        reason,
		SubmittedTick: e.currentTick.Index,
		OriginalOrder: order,

		Source:      executorComponentName,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   e.currentTick.TimeStamp,
	}
	e.historyIndex[id] = len(e.history)
	e.history = append(e.history, result)
	return result
}

func (e *Executor) finalize(id common.OrderId, status common.OrderStatus, reason string,
	positionId common.PositionId, resolvedTick int64) common.OrderResult {

	idx, ok := e.historyIndex[id]
	if !ok {
		return common.OrderResult{}
	}
	result := e.history[idx]
	result.Status = status
	result.Reason = reason
	result.PositionId = positionId
	result.ResolvedTick = resolvedTick
	e.history[idx] = result

	if status == common.OrderStatusRejected {
		e.post(bus.OrderRejectionEvent, common.OrderRejected{
			OriginalOrder: result.OriginalOrder,
			Reason:        reason,
			Source:        executorComponentName,
			ExecutionId:   utility.GetExecutionID(),
			TraceID:       utility.CreateTraceID(),
			TimeStamp:     e.currentTick.TimeStamp,
		})
	}
	return result
}

func (e *Executor) emitClose(record common.TradeRecord) {
	e.post(bus.TradeEvent, record)
	if position, err := e.ledger.Position(record.PositionId); err == nil {
		e.post(bus.PositionUpdateEvent, position)
	} else {
		e.post(bus.PositionCloseEvent, common.Position{
			Id:       record.PositionId,
			Status:   common.PositionStatusClosed,
			Side:     record.Side,
			Symbol:   record.Symbol,
			Currency: record.Currency,
		})
	}
}

func (e *Executor) post(id bus.EventId, data interface{}) {
	if e.router == nil {
		return
	}
	if err := e.router.Post(id, data); err != nil {
		slog.Warn("event post failed", "event_id", id, "error", err)
	}
}

func applyProtectiveChanges(order *common.Order, changes broker.Changes) {
	if changes.HasStopLoss {
		order.StopLoss = changes.StopLoss
	}
	if changes.HasTakeProfit {
		order.TakeProfit = changes.TakeProfit
	}
}
