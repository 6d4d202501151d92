package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func equityAt(v int64) common.Equity {
	return common.Equity{Value: fixed.FromInt64(v, 0)}
}

func TestAudit_EmptySession(t *testing.T) {
	report := NewAudit().GenerateReport()
	assert.Equal(t, int64(0), report.Ticks)
	assert.True(t, report.TotalProfit.IsZero())
}

func TestAudit_ProfitAndDrawdown(t *testing.T) {
	audit := NewAudit()
	ctx := context.Background()

	// peak at 12000, trough at 9000: 25% drawdown, +10% overall
	for _, v := range []int64{10_000, 12_000, 9_000, 11_000} {
		audit.OnEquity(ctx, equityAt(v))
	}

	report := audit.GenerateReport()
	assert.Equal(t, int64(4), report.Ticks)
	assert.True(t, fixed.FromInt64(10_000, 0).Eq(report.InitialEquity))
	assert.True(t, fixed.FromInt64(11_000, 0).Eq(report.FinalEquity))
	assert.True(t, fixed.FromInt64(10, 0).Eq(report.TotalProfit), "got %s", report.TotalProfit)
	assert.True(t, fixed.FromInt64(25, 0).Eq(report.MaxDrawdown), "got %s", report.MaxDrawdown)
}

func TestAudit_TradeStatistics(t *testing.T) {
	audit := NewAudit()
	ctx := context.Background()

	audit.OnEquity(ctx, equityAt(10_000))
	audit.OnEquity(ctx, equityAt(10_100))

	pnls := []int64{300, 100, -200, -200}
	for _, pnl := range pnls {
		audit.OnTrade(ctx, common.TradeRecord{
			Kind: common.InstrumentFutures,
			Pnl:  fixed.FromInt64(pnl, 0),
		})
	}

	report := audit.GenerateReport()
	assert.Equal(t, 4, report.TotalTrades)
	assert.Equal(t, 2, report.WinningTrades)
	assert.Equal(t, 2, report.LosingTrades)
	assert.True(t, fixed.FromInt64(50, 0).Eq(report.WinRate), "got %s", report.WinRate)
	assert.True(t, fixed.FromInt64(200, 0).Eq(report.AverageWin))
	assert.True(t, fixed.FromInt64(200, 0).Eq(report.AverageLoss))
	assert.True(t, fixed.One.Eq(report.ProfitFactor), "got %s", report.ProfitFactor)
	assert.True(t, fixed.One.Eq(report.RiskRewardRatio))
	assert.True(t, report.Expectancy.IsZero(), "got %s", report.Expectancy)
}

func TestAudit_SkipsSpotBuys(t *testing.T) {
	audit := NewAudit()
	ctx := context.Background()

	audit.OnEquity(ctx, equityAt(10_000))
	audit.OnTrade(ctx, common.TradeRecord{Kind: common.InstrumentSpot, Side: common.TradeSideBuy})
	audit.OnTrade(ctx, common.TradeRecord{
		Kind: common.InstrumentSpot,
		Side: common.TradeSideSell,
		Pnl:  fixed.FromInt64(50, 0),
	})

	report := audit.GenerateReport()
	assert.Equal(t, 1, report.TotalTrades)
	assert.Equal(t, 1, report.WinningTrades)
}

func TestAudit_AverageHoldTicks(t *testing.T) {
	audit := NewAudit()
	ctx := context.Background()

	audit.OnEquity(ctx, equityAt(10_000))
	audit.OnPositionClosed(ctx, common.Position{OpenedTick: 10, ClosedTick: 30})
	audit.OnPositionClosed(ctx, common.Position{OpenedTick: 40, ClosedTick: 50})

	report := audit.GenerateReport()
	assert.Equal(t, int64(15), report.AverageHoldTicks)
}

func TestAudit_RatiosFollowEquityDirection(t *testing.T) {
	audit := NewAudit()
	ctx := context.Background()

	// steady climb with one dip keeps vol non-zero
	for _, v := range []int64{10_000, 10_100, 10_050, 10_200, 10_300} {
		audit.OnEquity(ctx, equityAt(v))
	}
	up := audit.GenerateReport()
	assert.True(t, up.SharpeRatio.IsPos(), "got %s", up.SharpeRatio)
	assert.True(t, up.AnnualizedVolatility.IsPos())

	down := NewAudit()
	for _, v := range []int64{10_000, 9_900, 9_950, 9_800, 9_700} {
		down.OnEquity(ctx, equityAt(v))
	}
	assert.True(t, down.GenerateReport().SharpeRatio.IsNeg())
}
