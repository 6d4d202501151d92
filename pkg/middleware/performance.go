package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

// Performance accumulates per-event handler durations. Pair with a Telemetry
// on the same chain to get averages out of PrintStatistics.
type Performance struct {
	logger *zap.Logger

	totalPriceHandlerDur   time.Duration
	totalCandleHandlerDur  time.Duration
	totalOrderHandlerDur   time.Duration
	totalControlHandlerDur time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithPrice(handler bus.PriceEventHandler) bus.PriceEventHandler {
	return func(ctx context.Context, point common.PricePoint) {
		startTime := time.Now()
		handler(ctx, point)
		p.totalPriceHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithCandle(handler bus.CandleEventHandler) bus.CandleEventHandler {
	return func(ctx context.Context, candle common.Candle) {
		startTime := time.Now()
		handler(ctx, candle)
		p.totalCandleHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrder(handler bus.OrderEventHandler) bus.OrderEventHandler {
	return func(ctx context.Context, order common.Order) {
		startTime := time.Now()
		handler(ctx, order)
		p.totalOrderHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithControl(handler bus.ControlEventHandler) bus.ControlEventHandler {
	return func(ctx context.Context, control common.Control) {
		startTime := time.Now()
		handler(ctx, control)
		p.totalControlHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) PrintStatistics(t *Telemetry) {
	if t == nil {
		p.logger.Warn("telemetry is nil; cannot compute performance statistics")
		return
	}

	var fields []zap.Field

	if t.priceEventCounter > 0 {
		avg := p.totalPriceHandlerDur / time.Duration(t.priceEventCounter)
		fields = append(fields,
			zap.Duration("price_avg_duration", avg),
			zap.Duration("price_total_duration", p.totalPriceHandlerDur))
	}
	if t.candleEventCounter > 0 {
		avg := p.totalCandleHandlerDur / time.Duration(t.candleEventCounter)
		fields = append(fields,
			zap.Duration("candle_avg_duration", avg),
			zap.Duration("candle_total_duration", p.totalCandleHandlerDur))
	}
	if t.orderEventCounter > 0 {
		avg := p.totalOrderHandlerDur / time.Duration(t.orderEventCounter)
		fields = append(fields,
			zap.Duration("order_avg_duration", avg),
			zap.Duration("order_total_duration", p.totalOrderHandlerDur))
	}

	p.logger.Info("handler performance", fields...)
}
