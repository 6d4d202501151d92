package middleware

import (
	"context"
	"log/slog"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorPrices
	MonitorCandles
	MonitorAccount
	MonitorEquity
	MonitorPositionsOpened
	MonitorPositionsClosed
	MonitorPositionsUpdated
	MonitorOrders
	MonitorOrdersRejected
	MonitorOrdersAccepted
	MonitorTrades
	MonitorRiskAlerts
	MonitorBotActions
)

type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithPrice(handler bus.PriceEventHandler) bus.PriceEventHandler {
	return func(ctx context.Context, point common.PricePoint) {
		if m.flags&MonitorPrices != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "price", point)
		}
		handler(ctx, point)
	}
}

func (m *Monitor) WithCandle(handler bus.CandleEventHandler) bus.CandleEventHandler {
	return func(ctx context.Context, candle common.Candle) {
		if m.flags&MonitorCandles != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "candle", candle)
		}
		handler(ctx, candle)
	}
}

func (m *Monitor) WithAccount(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, snapshot common.AccountSnapshot) {
		if m.flags&MonitorAccount != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "account", snapshot)
		}
		handler(ctx, snapshot)
	}
}

func (m *Monitor) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		if m.flags&MonitorEquity != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "equity", equity)
		}
		handler(ctx, equity)
	}
}

func (m *Monitor) WithPositionOpened(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsOpened != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_open", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionClosed(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsClosed != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_closed", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionUpdated(handler bus.PositionUpdateEventHandler) bus.PositionUpdateEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositionsUpdated != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position_update", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		if m.flags&MonitorOrders != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order", order)
		}
		handler(ctx, order)
	}
}

func (m *Monitor) WithOrderRejected(handler bus.OrderRejectedEventHandler) bus.OrderRejectedEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		if m.flags&MonitorOrdersRejected != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_rejected", rejected)
		}
		handler(ctx, rejected)
	}
}

func (m *Monitor) WithOrderAccepted(handler bus.OrderAcceptedEventHandler) bus.OrderAcceptedEventHandler {
	return func(ctx context.Context, accepted common.OrderAccepted) {
		if m.flags&MonitorOrdersAccepted != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "order_accepted", accepted)
		}
		handler(ctx, accepted)
	}
}

func (m *Monitor) WithTrade(handler bus.TradeEventHandler) bus.TradeEventHandler {
	return func(ctx context.Context, trade common.TradeRecord) {
		if m.flags&MonitorTrades != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "trade", trade)
		}
		handler(ctx, trade)
	}
}

func (m *Monitor) WithRiskAlert(handler bus.RiskAlertEventHandler) bus.RiskAlertEventHandler {
	return func(ctx context.Context, alert common.RiskAlert) {
		if m.flags&MonitorRiskAlerts != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "risk_alert", alert)
		}
		handler(ctx, alert)
	}
}

func (m *Monitor) WithBotAction(handler bus.BotActionEventHandler) bus.BotActionEventHandler {
	return func(ctx context.Context, action common.BotAction) {
		if m.flags&MonitorBotActions != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "bot_action", action)
		}
		handler(ctx, action)
	}
}
