package bus

import (
	"context"

	"github.com/coinedu/tradesim/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type PriceEventHandler EventHandler[common.PricePoint]
type CandleEventHandler EventHandler[common.Candle]
type AccountEventHandler EventHandler[common.AccountSnapshot]
type EquityEventHandler EventHandler[common.Equity]
type PositionOpenEventHandler EventHandler[common.Position]
type PositionCloseEventHandler EventHandler[common.Position]
type PositionUpdateEventHandler EventHandler[common.Position]
type OrderEventHandler EventHandler[common.Order]
type OrderRejectedEventHandler EventHandler[common.OrderRejected]
type OrderAcceptedEventHandler EventHandler[common.OrderAccepted]
type TradeEventHandler EventHandler[common.TradeRecord]
type RiskAlertEventHandler EventHandler[common.RiskAlert]
type BotActionEventHandler EventHandler[common.BotAction]
type ControlEventHandler EventHandler[common.Control]
type SnapshotEventHandler EventHandler[common.StateSnapshot]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
