package middleware

import (
	"context"

	"github.com/coinedu/tradesim/pkg/common"
)

//goland:noinspection ALL
var (
	NoopPriceHdl     = func(context.Context, common.PricePoint) {}
	NoopCandleHdl    = func(context.Context, common.Candle) {}
	NoopAccountHdl   = func(context.Context, common.AccountSnapshot) {}
	NoopEquityHdl    = func(context.Context, common.Equity) {}
	NoopPosOpnHdl    = func(context.Context, common.Position) {}
	NoopPosUpdHdl    = func(context.Context, common.Position) {}
	NoopPosClsHdl    = func(context.Context, common.Position) {}
	NoopOrderHdl     = func(context.Context, common.Order) {}
	NoopOrderRjctHdl = func(context.Context, common.OrderRejected) {}
	NoopOrderAccHdl  = func(context.Context, common.OrderAccepted) {}
	NoopTradeHdl     = func(context.Context, common.TradeRecord) {}
	NoopRiskHdl      = func(context.Context, common.RiskAlert) {}
	NoopBotActionHdl = func(context.Context, common.BotAction) {}
	NoopControlHdl   = func(context.Context, common.Control) {}
	NoopSnapshotHdl  = func(context.Context, common.StateSnapshot) {}
)
