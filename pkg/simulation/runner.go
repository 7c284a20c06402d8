package simulation

import (
	"context"
	"log/slog"
	"time"

	"tickforge/pkg/common"
	"tickforge/pkg/engine"
)

// Runner drives one backtest scenario: every tick goes to the execution
// engine first, then to the bar aggregator and the account audit, so
// downstream handlers always observe post-resolution state. Wire OnTick
// ahead of the strategy handler on the bus.
type Runner struct {
	executor   *engine.Executor
	aggregator *Aggregator
	audit      *Audit

	lastTick common.Tick
	hasTick  bool
}

func NewRunner(executor *engine.Executor, aggregator *Aggregator, snapshotInterval time.Duration) *Runner {
	return &Runner{
		executor:   executor,
		aggregator: aggregator,
		audit:      NewAudit(snapshotInterval),
	}
}

func (r *Runner) OnTick(ctx context.Context, tick common.Tick) {
	r.executor.OnTick(ctx, tick)

	if err := r.aggregator.OnTick(tick); err != nil {
		slog.Warn("unable to aggregate tick", "error", err)
	}

	info := r.executor.AccountInfo()
	r.audit.AddAccountSnapshot(info.Balance, info.Equity, tick.TimeStamp)

	r.lastTick = tick
	r.hasTick = true
}

// Finish tears the scenario down: pending orders are swept, open positions
// flattened at last observed prices, and the final report generated from
// the engine's histories.
func (r *Runner) Finish() Report {
	r.executor.CloseAllRemainingOrders()

	if err := r.aggregator.Flush(); err != nil {
		slog.Warn("unable to flush final bar", "error", err)
	}

	if r.hasTick {
		info := r.executor.AccountInfo()
		r.audit.ForceAccountSnapshot(info.Balance, info.Equity, r.lastTick.TimeStamp)
	}

	report := r.audit.GenerateReport(r.executor.TradeHistory())
	report.Execution = r.executor.ExecutionStats()
	report.Pending = r.executor.PendingStats()
	return report
}
