package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type OrderCommand int
type OrderType int

const (
	OrderCommandSpotTrade OrderCommand = iota
	OrderCommandPositionOpen
	OrderCommandPositionClose
	OrderCommandOptionTrade
	OrderCommandOptionExercise
)

const (
	OrderTypeMarket OrderType = iota
	OrderTypeLimit
)

// Order is a user action routed through the bus. Fields beyond the command's
// family are ignored: a spot trade reads Side/Type/Amount/LimitPrice, a
// position open reads Kind/Side/Margin/Leverage, an option trade reads the
// Option* fields, an exercise reads ContractId.
type Order struct {
	Command OrderCommand   `json:"command"`
	Kind    InstrumentKind `json:"kind,omitempty"`
	Side    TradeSide      `json:"side"`
	Type    OrderType      `json:"type"`

	Amount     fixed.Point `json:"amount,omitempty"`
	LimitPrice fixed.Point `json:"limit_price,omitempty"`

	Margin   fixed.Point `json:"margin,omitempty"`
	Leverage int64       `json:"leverage,omitempty"`

	OptionType    OptionType   `json:"option_type,omitempty"`
	OptionAction  OptionAction `json:"option_action,omitempty"`
	Strike        fixed.Point  `json:"strike,omitempty"`
	ExpiryTicks   int64        `json:"expiry_ticks,omitempty"`
	Contracts     fixed.Point  `json:"contracts,omitempty"`
	ContractId    OptionContractId `json:"contract_id,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

type OrderRejected struct {
	OriginalOrder Order  `json:"original_order"`
	Reason        string `json:"reason,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

type OrderAccepted struct {
	OriginalOrder Order `json:"original_order"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
