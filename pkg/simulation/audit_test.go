package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

var auditTestStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func auditTrade(entryTick, exitTick int64, netPnL string) common.TradeRecord {
	return common.TradeRecord{
		Symbol:    "EURUSD",
		EntryTick: entryTick,
		ExitTick:  exitTick,
		NetPnL:    fixed.MustFromString(netPnL),
	}
}

func TestAudit_ThrottlesSnapshots(t *testing.T) {
	audit := NewAudit(time.Hour)

	for i := 0; i < 12; i++ {
		audit.AddAccountSnapshot(fixed.FromInt(10000, 0), fixed.FromInt(10000, 0),
			auditTestStart.Add(time.Duration(i)*10*time.Minute))
	}

	// first snapshot plus one per elapsed hour
	assert.Len(t, audit.accountSnapshots, 2)
}

func TestAudit_ForceSnapshotBypassesThrottle(t *testing.T) {
	audit := NewAudit(time.Hour)

	audit.AddAccountSnapshot(fixed.FromInt(10000, 0), fixed.FromInt(10000, 0), auditTestStart)
	audit.ForceAccountSnapshot(fixed.FromInt(10000, 0), fixed.FromInt(10050, 0), auditTestStart.Add(time.Minute))

	require.Len(t, audit.accountSnapshots, 2)
	assert.True(t, audit.accountSnapshots[1].equity.Eq(fixed.FromInt(10050, 0)))
}

func TestAudit_EmptyReportIsZero(t *testing.T) {
	audit := NewAudit(time.Hour)

	report := audit.GenerateReport(nil)

	assert.Zero(t, report.TotalTrades)
	assert.True(t, report.TotalProfit.IsZero())
}

func TestAudit_ReportEquityCurveMetrics(t *testing.T) {
	audit := NewAudit(time.Hour)

	equities := []int{10000, 10100, 10050, 10200}
	for i, equity := range equities {
		audit.ForceAccountSnapshot(fixed.FromInt(equity, 0), fixed.FromInt(equity, 0),
			auditTestStart.AddDate(0, 0, i))
	}

	report := audit.GenerateReport(nil)

	assert.True(t, report.InitialEquity.Eq(fixed.FromInt(10000, 0)))
	assert.True(t, report.FinalEquity.Eq(fixed.FromInt(10200, 0)))
	assert.True(t, report.TotalProfit.Eq(fixed.Two), "total profit %s", report.TotalProfit)
	assert.True(t, report.AnnualizedReturn.Gt(fixed.Zero))
	// peak 10100, trough 10050
	assert.True(t, report.MaxDrawdown.Gt(fixed.Zero))
	assert.True(t, report.MaxDrawdown.Lt(fixed.One), "drawdown %s", report.MaxDrawdown)
	assert.Equal(t, auditTestStart, report.StartDate)
	assert.Equal(t, auditTestStart.AddDate(0, 0, 3), report.EndDate)
}

func TestAudit_ReportTradeStatistics(t *testing.T) {
	audit := NewAudit(time.Hour)
	audit.ForceAccountSnapshot(fixed.FromInt(10000, 0), fixed.FromInt(10000, 0), auditTestStart)
	audit.ForceAccountSnapshot(fixed.FromInt(10100, 0), fixed.FromInt(10100, 0), auditTestStart.AddDate(0, 0, 1))

	trades := []common.TradeRecord{
		auditTrade(10, 20, "100"),
		auditTrade(30, 50, "50"),
		auditTrade(60, 70, "-50"),
	}

	report := audit.GenerateReport(trades)

	assert.Equal(t, 3, report.TotalTrades)
	assert.Equal(t, 2, report.WinningTrades)
	assert.Equal(t, 1, report.LosingTrades)
	assert.True(t, report.WinRate.Eq(fixed.MustFromString("66.67")), "win rate %s", report.WinRate)
	assert.True(t, report.AverageWin.Eq(fixed.FromInt(75, 0)), "average win %s", report.AverageWin)
	assert.True(t, report.AverageLoss.Eq(fixed.FromInt(50, 0)), "average loss %s", report.AverageLoss)
	assert.True(t, report.ProfitFactor.Eq(fixed.FromInt(3, 0)), "profit factor %s", report.ProfitFactor)
	assert.True(t, report.RiskRewardRatio.Eq(fixed.MustFromString("1.5")), "rr %s", report.RiskRewardRatio)
	assert.True(t, report.Expectancy.Rescale(2).Eq(fixed.MustFromString("33.33")), "expectancy %s", report.Expectancy)
	assert.Equal(t, int64(13), report.AverageTradeTicks)
}

func TestAudit_BreakEvenTradeCountsAsLoss(t *testing.T) {
	audit := NewAudit(time.Hour)
	audit.ForceAccountSnapshot(fixed.FromInt(10000, 0), fixed.FromInt(10000, 0), auditTestStart)

	report := audit.GenerateReport([]common.TradeRecord{auditTrade(0, 5, "0")})

	assert.Equal(t, 1, report.TotalTrades)
	assert.Equal(t, 0, report.WinningTrades)
	assert.Equal(t, 1, report.LosingTrades)
}
