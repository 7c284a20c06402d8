package simulation

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"tickforge/pkg/engine"
	"tickforge/pkg/utility/fixed"
)

type Report struct {
	StartDate            time.Time
	EndDate              time.Time
	InitialEquity        fixed.Point
	FinalEquity          fixed.Point
	TotalProfit          fixed.Point
	AnnualizedReturn     fixed.Point
	MaxDrawdown          fixed.Point
	TotalTrades          int
	WinningTrades        int
	LosingTrades         int
	WinRate              fixed.Point
	Expectancy           fixed.Point
	ProfitFactor         fixed.Point
	AverageWin           fixed.Point
	AverageLoss          fixed.Point
	RiskRewardRatio      fixed.Point
	AverageTradeTicks    int64
	RecoveryFactor       fixed.Point
	SharpeRatio          fixed.Point
	SortinoRatio         fixed.Point
	AnnualizedVolatility fixed.Point

	Execution engine.ExecutionStats
	Pending   engine.PendingOrderStats
}

func (report Report) Print(logger *zap.Logger) {
	logger.Info("performance report",
		zap.String("initial_equity", report.InitialEquity.String()),
		zap.String("final_equity", report.FinalEquity.String()),
		zap.String("total_profit", fmt.Sprintf("%s%%", report.TotalProfit.String())),
		zap.String("annualized_return", fmt.Sprintf("%s%%", report.AnnualizedReturn.String())),
		zap.String("max_drawdown", fmt.Sprintf("%s%%", report.MaxDrawdown.String())),
		zap.String("recovery_factor", report.RecoveryFactor.String()),
	)

	logger.Info("trade statistics",
		zap.Int("total_trades", report.TotalTrades),
		zap.Int("winning_trades", report.WinningTrades),
		zap.Int("losing_trades", report.LosingTrades),
		zap.String("win_rate", fmt.Sprintf("%s%%", report.WinRate.String())),
		zap.String("expectancy", report.Expectancy.String()),
		zap.String("profit_factor", report.ProfitFactor.String()),
		zap.String("average_win", report.AverageWin.String()),
		zap.String("average_loss", report.AverageLoss.String()),
		zap.String("risk_reward_ratio", report.RiskRewardRatio.String()),
		zap.Int64("average_trade_ticks", report.AverageTradeTicks),
	)

	logger.Info("execution statistics",
		zap.Int64("orders_sent", report.Execution.OrdersSent),
		zap.Int64("orders_executed", report.Execution.OrdersExecuted),
		zap.Int64("orders_rejected", report.Execution.OrdersRejected),
		zap.Int64("sl_tp_triggered", report.Execution.SlTpTriggered),
		zap.Int64("pending_filled", report.Pending.Filled),
		zap.Int64("pending_rejected", report.Pending.Rejected),
		zap.Int64("pending_timed_out", report.Pending.TimedOut),
		zap.Int64("pending_force_closed", report.Pending.ForceClosed),
		zap.Float64("latency_avg_ticks", report.Pending.LatencyAvgTicks),
		zap.Int64("latency_min_ticks", report.Pending.LatencyMinTicks),
		zap.Int64("latency_max_ticks", report.Pending.LatencyMaxTicks),
		zap.Int("anomalies", len(report.Pending.Anomalies)),
	)

	logger.Info("risk metrics",
		zap.String("sharpe_ratio", report.SharpeRatio.String()),
		zap.String("sortino_ratio", report.SortinoRatio.String()),
		zap.String("annualized_volatility", fmt.Sprintf("%s%%", report.AnnualizedVolatility.String())),
	)
}
