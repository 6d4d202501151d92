package metrics

import (
	"fmt"
	"log/slog"

	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type Report struct {
	Ticks                int64
	InitialEquity        fixed.Point
	FinalEquity          fixed.Point
	TotalProfit          fixed.Point
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
	AverageHoldTicks     int64
	RecoveryFactor       fixed.Point
	SharpeRatio          fixed.Point
	SortinoRatio         fixed.Point
	AnnualizedVolatility fixed.Point
}

func (r Report) Print() {
	slog.Info("session report",
		"ticks", r.Ticks,
		"initial_equity", r.InitialEquity,
		"final_equity", r.FinalEquity,
		"total_profit", fmt.Sprintf("%s%%", r.TotalProfit),
		"max_drawdown", fmt.Sprintf("%s%%", r.MaxDrawdown),
		"recovery_factor", r.RecoveryFactor)

	slog.Info("trade statistics",
		"total_trades", r.TotalTrades,
		"winning_trades", r.WinningTrades,
		"losing_trades", r.LosingTrades,
		"win_rate", fmt.Sprintf("%s%%", r.WinRate),
		"expectancy", r.Expectancy,
		"profit_factor", r.ProfitFactor,
		"average_win", r.AverageWin,
		"average_loss", r.AverageLoss,
		"risk_reward_ratio", r.RiskRewardRatio,
		"average_hold_ticks", r.AverageHoldTicks)

	slog.Info("risk metrics",
		"sharpe_ratio", r.SharpeRatio,
		"sortino_ratio", r.SortinoRatio,
		"annualized_volatility", fmt.Sprintf("%s%%", r.AnnualizedVolatility))
}
