package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

func TestChain_OrderOfComposition(t *testing.T) {
	var order []string

	wrapper := func(name string) func(bus.PriceEventHandler) bus.PriceEventHandler {
		return func(next bus.PriceEventHandler) bus.PriceEventHandler {
			return func(ctx context.Context, p common.PricePoint) {
				order = append(order, name)
				next(ctx, p)
			}
		}
	}

	handler := Chain(wrapper("outer"), wrapper("inner"))(func(context.Context, common.PricePoint) {
		order = append(order, "handler")
	})
	handler(context.Background(), common.PricePoint{})

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestChain_EmptyReturnsHandlerUnchanged(t *testing.T) {
	var called bool
	handler := Chain[bus.PriceEventHandler]()(func(context.Context, common.PricePoint) { called = true })
	handler(context.Background(), common.PricePoint{})
	assert.True(t, called)
}

func TestTelemetry_CountsAndForwards(t *testing.T) {
	telemetry := NewTelemetry(zap.NewNop())

	var forwarded int
	handler := telemetry.WithPrice(func(context.Context, common.PricePoint) { forwarded++ })
	for i := 0; i < 3; i++ {
		handler(context.Background(), common.PricePoint{})
	}

	assert.Equal(t, 3, forwarded)
	assert.Equal(t, int64(3), telemetry.priceEventCounter)
}

func TestMonitor_ForwardsRegardlessOfFlags(t *testing.T) {
	monitor := NewMonitor(MonitorNone)

	var count int
	handler := monitor.WithTrade(func(context.Context, common.TradeRecord) { count++ })
	handler(context.Background(), common.TradeRecord{})

	noisy := NewMonitor(MonitorAll)
	loud := noisy.WithTrade(func(context.Context, common.TradeRecord) { count++ })
	loud(context.Background(), common.TradeRecord{})

	assert.Equal(t, 2, count)
}
