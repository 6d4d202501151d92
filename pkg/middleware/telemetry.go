package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

type Telemetry struct {
	logger *zap.Logger

	priceEventCounter          int64
	candleEventCounter         int64
	accountEventCounter        int64
	equityEventCounter         int64
	positionOpenEventCounter   int64
	positionCloseEventCounter  int64
	positionUpdateEventCounter int64
	orderEventCounter          int64
	orderRejectedEventCounter  int64
	tradeEventCounter          int64
	riskAlertEventCounter      int64
	botActionEventCounter      int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithPrice(handler bus.PriceEventHandler) bus.PriceEventHandler {
	return func(ctx context.Context, point common.PricePoint) {
		t.priceEventCounter++
		handler(ctx, point)
	}
}

func (t *Telemetry) WithCandle(handler bus.CandleEventHandler) bus.CandleEventHandler {
	return func(ctx context.Context, candle common.Candle) {
		t.candleEventCounter++
		handler(ctx, candle)
	}
}

func (t *Telemetry) WithAccount(handler bus.AccountEventHandler) bus.AccountEventHandler {
	return func(ctx context.Context, snapshot common.AccountSnapshot) {
		t.accountEventCounter++
		handler(ctx, snapshot)
	}
}

func (t *Telemetry) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		t.equityEventCounter++
		handler(ctx, equity)
	}
}

func (t *Telemetry) WithPositionOpened(handler bus.PositionOpenEventHandler) bus.PositionOpenEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionOpenEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionClosed(handler bus.PositionCloseEventHandler) bus.PositionCloseEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionCloseEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionUpdated(handler bus.PositionUpdateEventHandler) bus.PositionUpdateEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionUpdateEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		t.orderEventCounter++
		handler(ctx, order)
	}
}

func (t *Telemetry) WithOrderRejected(handler bus.OrderRejectedEventHandler) bus.OrderRejectedEventHandler {
	return func(ctx context.Context, rejected common.OrderRejected) {
		t.orderRejectedEventCounter++
		handler(ctx, rejected)
	}
}

func (t *Telemetry) WithTrade(handler bus.TradeEventHandler) bus.TradeEventHandler {
	return func(ctx context.Context, trade common.TradeRecord) {
		t.tradeEventCounter++
		handler(ctx, trade)
	}
}

func (t *Telemetry) WithRiskAlert(handler bus.RiskAlertEventHandler) bus.RiskAlertEventHandler {
	return func(ctx context.Context, alert common.RiskAlert) {
		t.riskAlertEventCounter++
		handler(ctx, alert)
	}
}

func (t *Telemetry) WithBotAction(handler bus.BotActionEventHandler) bus.BotActionEventHandler {
	return func(ctx context.Context, action common.BotAction) {
		t.botActionEventCounter++
		handler(ctx, action)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Int64("price_events", t.priceEventCounter),
		zap.Int64("candle_events", t.candleEventCounter),
		zap.Int64("account_events", t.accountEventCounter),
		zap.Int64("equity_events", t.equityEventCounter),
		zap.Int64("position_open_events", t.positionOpenEventCounter),
		zap.Int64("position_close_events", t.positionCloseEventCounter),
		zap.Int64("position_update_events", t.positionUpdateEventCounter),
		zap.Int64("order_events", t.orderEventCounter),
		zap.Int64("order_rejected_events", t.orderRejectedEventCounter),
		zap.Int64("trade_events", t.tradeEventCounter),
		zap.Int64("risk_alert_events", t.riskAlertEventCounter),
		zap.Int64("bot_action_events", t.botActionEventCounter))
}
