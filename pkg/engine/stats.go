package engine

import (
	"tickforge/pkg/common"
)

// Anomaly describes an order that never resolved normally: it was still in
// flight when tracking ended, or was flagged as timed out before the sweep.
// Recorded for post-hoc analysis, never treated as an error.
type Anomaly struct {
	OrderId      common.OrderId     `json:"order_id"`
	Status       common.OrderStatus `json:"status"`
	Reason       string             `json:"reason,omitempty"`
	LatencyTicks int64              `json:"latency_ticks"`
}

// ExecutionStats are scenario-lifetime counters. Orders swept at teardown
// count as rejections here so OrdersSent == OrdersExecuted + OrdersRejected
// holds once every order is terminal; PendingOrderStats keeps the four-way
// outcome split.
type ExecutionStats struct {
	OrdersSent     int64 `json:"orders_sent"`
	OrdersExecuted int64 `json:"orders_executed"`
	OrdersRejected int64 `json:"orders_rejected"`
	SlTpTriggered  int64 `json:"sl_tp_triggered"`
}

// PendingOrderStats breaks resolved orders down by terminal outcome and
// carries the fill latency distribution in ticks.
type PendingOrderStats struct {
	Filled      int64 `json:"filled"`
	Rejected    int64 `json:"rejected"`
	TimedOut    int64 `json:"timed_out"`
	ForceClosed int64 `json:"force_closed"`

	LatencyAvgTicks float64 `json:"latency_avg_ticks"`
	LatencyMinTicks int64   `json:"latency_min_ticks"`
	LatencyMaxTicks int64   `json:"latency_max_ticks"`

	Anomalies []Anomaly `json:"anomalies,omitempty"`
}

func (s PendingOrderStats) TotalResolved() int64 {
	return s.Filled + s.Rejected + s.TimedOut + s.ForceClosed
}

// FoldExecutionStats derives the counters by folding over the order and
// trade histories. Stats are never mutated incrementally; folding the same
// histories twice yields identical values.
func FoldExecutionStats(orders []common.OrderResult, trades []common.TradeRecord) ExecutionStats {
	var stats ExecutionStats
	for _, result := range orders {
		stats.OrdersSent++
		switch result.Status {
		case common.OrderStatusExecuted:
			stats.OrdersExecuted++
		case common.OrderStatusRejected, common.OrderStatusTimedOut, common.OrderStatusForceClosed:
			stats.OrdersRejected++
		}
	}
	for _, trade := range trades {
		if trade.CloseReason == common.CloseReasonStopLoss || trade.CloseReason == common.CloseReasonTakeProfit {
			stats.SlTpTriggered++
		}
	}
	return stats
}

// FoldPendingStats derives the outcome split and latency distribution from
// the order history. Latency is measured in ticks from submission to
// resolution; only executed orders contribute to the distribution.
func FoldPendingStats(orders []common.OrderResult) PendingOrderStats {
	var stats PendingOrderStats
	var latencySum, latencyCount int64

	for _, result := range orders {
		latency := result.ResolvedTick - result.SubmittedTick

		switch result.Status {
		case common.OrderStatusExecuted:
			stats.Filled++
			latencySum += latency
			latencyCount++
			if latencyCount == 1 || latency < stats.LatencyMinTicks {
				stats.LatencyMinTicks = latency
			}
			if latency > stats.LatencyMaxTicks {
				stats.LatencyMaxTicks = latency
			}
		case common.OrderStatusRejected:
			stats.Rejected++
		case common.OrderStatusTimedOut:
			stats.TimedOut++
			stats.Anomalies = append(stats.Anomalies, Anomaly{
				OrderId:      result.OrderId,
				Status:       result.Status,
				Reason:       result.Reason,
				LatencyTicks: latency,
			})
		case common.OrderStatusForceClosed:
			stats.ForceClosed++
			stats.Anomalies = append(stats.Anomalies, Anomaly{
				OrderId:      result.OrderId,
				Status:       result.Status,
				Reason:       result.Reason,
				LatencyTicks: latency,
			})
		}
	}

	if latencyCount > 0 {
		stats.LatencyAvgTicks = float64(latencySum) / float64(latencyCount)
	}
	return stats
}
