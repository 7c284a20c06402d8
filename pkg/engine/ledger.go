package engine

import (
	"errors"
	"fmt"
	"time"

	"tickforge/pkg/common"
	"tickforge/pkg/exchange"
	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

// Lot amounts are rounded to a fixed precision after every subtraction so
// repeated partial closes cannot drift away from the original size.
const lotScale = 8

var (
	ErrPositionNotFound = errors.New("position not found")
	ErrInvalidCloseLots = errors.New("close lots must be positive")
)

const ledgerComponentName = "engine.ledger"

// positionState couples the public position with its running fee accruals.
// Fees accrue on the open position; every close event takes its
// proportional share and leaves the remainder untouched.
type positionState struct {
	position   common.Position
	symbolInfo exchange.SymbolInfo

	spreadCost fixed.Point
	commission fixed.Point
	swaps      fixed.Point

	lastSwapDay time.Time
}

// Ledger is the single source of truth for balance, open positions and the
// append-only trade history. Only fill resolution mutates it; everything
// handed out is a copy.
type Ledger struct {
	currency string
	balance  fixed.Point

	idCounter common.PositionId
	open      []*positionState
	index     map[common.PositionId]*positionState
	history   []common.TradeRecord
}

func NewLedger(currency string, startBalance fixed.Point) *Ledger {
	return &Ledger{
		currency: currency,
		balance:  startBalance,
		index:    make(map[common.PositionId]*positionState),
	}
}

// Open records a new position filled at price on the given tick and returns
// its id. Commission is the already-determined open-side fee (maker or
// taker depending on how the entry filled); spread is the entry tick's
// quoted spread.
func (l *Ledger) Open(side common.PositionSide, info exchange.SymbolInfo, lots, price fixed.Point,
	tick int64, entryType common.OrderType, stopLoss, takeProfit fixed.Point,
	spread, commission fixed.Point, ts time.Time) common.Position {

	l.idCounter++
	lots = lots.Rescale(lotScale)

	state := &positionState{
		position: common.Position{
			Id:           l.idCounter,
			Status:       common.PositionStatusOpen,
			Side:         side,
			Lots:         lots,
			OriginalLots: lots,
			EntryPrice:   price,
			EntryTick:    tick,
			EntryType:    entryType,
			StopLoss:     stopLoss,
			TakeProfit:   takeProfit,
			Digits:       info.Digits,
			ContractSize: info.ContractSize,
			Currency:     l.currency,

			Source:      ledgerComponentName,
			Symbol:      info.SymbolName,
			ExecutionID: utility.GetExecutionID(),
			TraceID:     utility.CreateTraceID(),
			TimeStamp:   ts,
		},
		symbolInfo:  info,
		spreadCost:  spread.Mul(info.PointFactor()).Mul(info.TickValue).Mul(lots),
		commission:  commission,
		swaps:       fixed.Zero,
		lastSwapDay: ts.UTC().Truncate(24 * time.Hour),
	}

	l.open = append(l.open, state)
	l.index[state.position.Id] = state
	return state.position
}

// FullClose removes the position and appends one final trade record holding
// all remaining fee accrual.
func (l *Ledger) FullClose(id common.PositionId, price fixed.Point, tick int64,
	reason common.CloseReason, ts time.Time) (common.TradeRecord, error) {

	state, ok := l.index[id]
	if !ok {
		return common.TradeRecord{}, fmt.Errorf("full close of position %d: %w", id, ErrPositionNotFound)
	}

	record := l.buildRecord(state, state.position.Lots, price, tick, common.CloseTypeFull, reason, ts)
	state.spreadCost = fixed.Zero
	state.commission = fixed.Zero
	state.swaps = fixed.Zero

	state.position.Lots = fixed.Zero
	state.position.Status = common.PositionStatusClosed
	l.remove(id)

	l.balance = l.balance.Add(record.NetPnL)
	l.history = append(l.history, record)
	return record, nil
}

// PartialClose closes closeLots of the position. A request leaving less
// than the symbol's minimum volume open is promoted to a full close; this
// is a floating-point boundary correction, not a caller error.
func (l *Ledger) PartialClose(id common.PositionId, closeLots, price fixed.Point, tick int64,
	reason common.CloseReason, ts time.Time) (common.TradeRecord, error) {

	state, ok := l.index[id]
	if !ok {
		return common.TradeRecord{}, fmt.Errorf("partial close of position %d: %w", id, ErrPositionNotFound)
	}
	if closeLots.Lte(fixed.Zero) {
		return common.TradeRecord{}, ErrInvalidCloseLots
	}

	closeLots = closeLots.Rescale(lotScale)
	remaining := state.position.Lots.Sub(closeLots).Rescale(lotScale)
	if remaining.Lt(state.symbolInfo.VolumeMin) {
		return l.FullClose(id, price, tick, reason, ts)
	}

	ratio := closeLots.Div(state.position.Lots)

	record := l.buildRecord(state, closeLots, price, tick, common.CloseTypePartial, reason, ts)

	keep := fixed.One.Sub(ratio)
	state.spreadCost = state.spreadCost.Mul(keep)
	state.commission = state.commission.Mul(keep)
	state.swaps = state.swaps.Mul(keep)

	state.position.Lots = remaining
	state.position.Status = common.PositionStatusPartiallyClosed

	l.balance = l.balance.Add(record.NetPnL)
	l.history = append(l.history, record)
	return record, nil
}

type Levels struct {
	HasStopLoss   bool
	StopLoss      fixed.Point
	HasTakeProfit bool
	TakeProfit    fixed.Point
}

func (l *Ledger) Modify(id common.PositionId, levels Levels) error {
	state, ok := l.index[id]
	if !ok {
		return fmt.Errorf("modify of position %d: %w", id, ErrPositionNotFound)
	}
	if levels.HasStopLoss {
		state.position.StopLoss = levels.StopLoss
	}
	if levels.HasTakeProfit {
		state.position.TakeProfit = levels.TakeProfit
	}
	return nil
}

// AccrueSwaps charges the per-day swap for every UTC day boundary crossed
// since a position's last accrual.
func (l *Ledger) AccrueSwaps(ts time.Time) {
	day := ts.UTC().Truncate(24 * time.Hour)
	for _, state := range l.open {
		days := int64(day.Sub(state.lastSwapDay).Hours()) / 24
		if days <= 0 {
			continue
		}
		perDay := state.symbolInfo.SwapPerLotDay(state.position.Side).Mul(state.position.Lots)
		state.swaps = state.swaps.Add(perDay.MulInt64(days))
		state.lastSwapDay = day
	}
}

func (l *Ledger) Position(id common.PositionId) (common.Position, error) {
	state, ok := l.index[id]
	if !ok {
		return common.Position{}, fmt.Errorf("lookup of position %d: %w", id, ErrPositionNotFound)
	}
	return state.position, nil
}

// Positions returns copies of the open positions in open order.
func (l *Ledger) Positions() []common.Position {
	positions := make([]common.Position, 0, len(l.open))
	for _, state := range l.open {
		positions = append(positions, state.position)
	}
	return positions
}

func (l *Ledger) History() []common.TradeRecord {
	history := make([]common.TradeRecord, len(l.history))
	copy(history, l.history)
	return history
}

func (l *Ledger) Balance() fixed.Point {
	return l.balance
}

// Equity folds unrealized net profit at the given tick over the balance.
func (l *Ledger) Equity(tick common.Tick) fixed.Point {
	equity := l.balance
	for _, state := range l.open {
		exitPrice := exchange.ExitPrice(state.position.Side, tick)
		gross := grossPnL(state.position.Side, state.position.EntryPrice, exitPrice,
			state.symbolInfo, state.position.Lots)
		fees := state.spreadCost.Add(state.commission).Add(state.swaps)
		equity = equity.Add(gross.Sub(fees))
	}
	return equity
}

func (l *Ledger) UsedMargin() fixed.Point {
	margin := fixed.Zero
	for _, state := range l.open {
		if state.symbolInfo.Leverage.IsZero() {
			continue
		}
		notional := state.position.Lots.Mul(state.symbolInfo.ContractSize).Mul(state.position.EntryPrice)
		margin = margin.Add(notional.Div(state.symbolInfo.Leverage))
	}
	return margin
}

func (l *Ledger) buildRecord(state *positionState, closeLots, price fixed.Point, tick int64,
	closeType common.CloseType, reason common.CloseReason, ts time.Time) common.TradeRecord {

	ratio := fixed.One
	if closeType == common.CloseTypePartial {
		ratio = closeLots.Div(state.position.Lots)
	}

	spreadCost := state.spreadCost.Mul(ratio)
	commissionCost := state.commission.Mul(ratio)
	swapCost := state.swaps.Mul(ratio)
	totalFees := spreadCost.Add(commissionCost).Add(swapCost)

	gross := grossPnL(state.position.Side, state.position.EntryPrice, price, state.symbolInfo, closeLots)

	return common.TradeRecord{
		PositionId:     state.position.Id,
		Side:           state.position.Side,
		Digits:         state.position.Digits,
		ContractSize:   state.position.ContractSize,
		Currency:       state.position.Currency,
		EntryPrice:     state.position.EntryPrice,
		ExitPrice:      price,
		EntryTick:      state.position.EntryTick,
		ExitTick:       tick,
		Lots:           closeLots,
		GrossPnL:       gross,
		SpreadCost:     spreadCost,
		CommissionCost: commissionCost,
		SwapCost:       swapCost,
		TotalFees:      totalFees,
		NetPnL:         gross.Sub(totalFees),
		CloseType:      closeType,
		CloseReason:    reason,

		Source:      ledgerComponentName,
		Symbol:      state.position.Symbol,
		ExecutionId: utility.GetExecutionID(),
		TraceID:     utility.CreateTraceID(),
		TimeStamp:   ts,
	}
}

func (l *Ledger) remove(id common.PositionId) {
	delete(l.index, id)
	for idx, state := range l.open {
		if state.position.Id == id {
			l.open = append(l.open[:idx], l.open[idx+1:]...)
			return
		}
	}
}

// grossPnL converts a price move into account currency:
// points = (exit - entry) * 10^digits, sign flipped for shorts, then
// points * tick value * lots.
func grossPnL(side common.PositionSide, entry, exit fixed.Point, info exchange.SymbolInfo, lots fixed.Point) fixed.Point {
	diff := exit.Sub(entry)
	if side == common.PositionSideShort {
		diff = entry.Sub(exit)
	}
	points := diff.Mul(info.PointFactor())
	return points.Mul(info.TickValue).Mul(lots)
}
