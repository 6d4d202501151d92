package bus

type EventId uint8

const (
	PriceEvent EventId = iota
	CandleEvent
	AccountEvent
	EquityEvent
	PositionOpenEvent
	PositionCloseEvent
	PositionUpdateEvent
	OrderEvent
	OrderRejectedEvent
	OrderAcceptedEvent
	TradeEvent
	RiskAlertEvent
	BotActionEvent
	ControlEvent
	SnapshotEvent
)
