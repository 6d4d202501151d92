// Package metrics turns the event stream into a session performance report.
package metrics

import (
	"context"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// Audit listens passively on the bus and accumulates the equity curve plus
// every realizing trade. Spot buys carry no realized P&L and are skipped.
type Audit struct {
	equities  []fixed.Point
	trades    []common.TradeRecord
	positions []common.Position
}

func NewAudit() *Audit {
	return &Audit{}
}

func (a *Audit) OnEquity(_ context.Context, equity common.Equity) {
	a.equities = append(a.equities, equity.Value)
}

func (a *Audit) OnTrade(_ context.Context, trade common.TradeRecord) {
	if trade.Kind == common.InstrumentSpot && trade.Side == common.TradeSideBuy {
		return
	}
	a.trades = append(a.trades, trade)
}

func (a *Audit) OnPositionClosed(_ context.Context, position common.Position) {
	a.positions = append(a.positions, position)
}

func (a *Audit) GenerateReport() Report {
	report := Report{}
	if len(a.equities) == 0 {
		return report
	}

	report.InitialEquity = a.equities[0]
	report.FinalEquity = a.equities[len(a.equities)-1]
	report.Ticks = int64(len(a.equities))
	report.TotalProfit = report.FinalEquity.Div(report.InitialEquity).Sub(fixed.One).MulInt64(100).Rescale(2)

	maxEquity := report.InitialEquity
	for _, eq := range a.equities {
		if eq.Gt(maxEquity) {
			maxEquity = eq
		}
		drawdown := maxEquity.Sub(eq).Div(maxEquity)
		if drawdown.Gt(report.MaxDrawdown) {
			report.MaxDrawdown = drawdown
		}
	}

	var (
		totalProfit fixed.Point
		totalLoss   fixed.Point
	)
	for _, trade := range a.trades {
		report.TotalTrades++
		if trade.Pnl.Gt(fixed.Zero) {
			totalProfit = totalProfit.Add(trade.Pnl)
			report.WinningTrades++
		} else {
			totalLoss = totalLoss.Add(trade.Pnl.Neg())
			report.LosingTrades++
		}
	}

	var totalHold int64
	for _, position := range a.positions {
		if position.ClosedTick > position.OpenedTick {
			totalHold += position.ClosedTick - position.OpenedTick
		}
	}
	if len(a.positions) > 0 {
		report.AverageHoldTicks = totalHold / int64(len(a.positions))
	}

	if report.WinningTrades > 0 {
		report.AverageWin = totalProfit.DivInt64(int64(report.WinningTrades))
	}
	if report.LosingTrades > 0 {
		report.AverageLoss = totalLoss.DivInt64(int64(report.LosingTrades))
	}
	if totalLoss.Gt(fixed.Zero) {
		report.ProfitFactor = totalProfit.Div(totalLoss)
	}
	if report.AverageLoss.Gt(fixed.Zero) {
		report.RiskRewardRatio = report.AverageWin.Div(report.AverageLoss)
	}
	if report.TotalTrades > 0 {
		report.Expectancy = totalProfit.Sub(totalLoss).DivInt64(int64(report.TotalTrades))
		report.WinRate = fixed.FromInt64(int64(report.WinningTrades), 0).DivInt64(int64(report.TotalTrades)).MulInt64(100).Rescale(2)
	}
	if report.MaxDrawdown.Gt(fixed.Zero) {
		report.RecoveryFactor = report.TotalProfit.Div(report.MaxDrawdown)
	}
	report.MaxDrawdown = report.MaxDrawdown.MulInt64(100).Rescale(2)

	tickReturns := a.tickReturns()
	meanReturn := fixed.Mean(tickReturns)
	vol := fixed.StdDev(tickReturns, meanReturn)

	if !meanReturn.IsZero() && !vol.IsZero() {
		report.AnnualizedVolatility = vol.Mul(fixed.Sqrt252).MulInt64(100).Rescale(2)
		report.SharpeRatio = fixed.SharpeRatio(tickReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
		report.SortinoRatio = fixed.SortinoRatio(tickReturns, fixed.Zero).Mul(fixed.Sqrt252).Rescale(5)
	}

	return report
}

// tickReturns treats each tick as one bar, so the annualized figures read
// the tick as a trading day.
func (a *Audit) tickReturns() []fixed.Point {
	var returns []fixed.Point
	for i := 1; i < len(a.equities); i++ {
		prev := a.equities[i-1]
		if !prev.IsPos() {
			continue
		}
		returns = append(returns, a.equities[i].Div(prev).Sub(fixed.One))
	}
	return returns
}
