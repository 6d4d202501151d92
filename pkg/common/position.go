package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type InstrumentKind string
type PositionSide int
type PositionStatus string
type PositionId = int64

const (
	InstrumentSpot    InstrumentKind = "spot"
	InstrumentMargin  InstrumentKind = "margin"
	InstrumentFutures InstrumentKind = "futures"
	InstrumentOption  InstrumentKind = "option"
)

const (
	PositionSideLong PositionSide = iota
	PositionSideShort
)

const (
	PositionStatusOpen         PositionStatus = "open"
	PositionStatusMarginCalled PositionStatus = "margin-called"
	PositionStatusClosed       PositionStatus = "closed"
	PositionStatusLiquidated   PositionStatus = "liquidated"
)

// Position is one open leveraged exposure. The derived trigger prices
// (LiquidationPrice, MarginCallPrice) are fixed at open time and describe
// the trigger, not current state.
type Position struct {
	Id       PositionId     `json:"id"`
	Kind     InstrumentKind `json:"kind"`
	Status   PositionStatus `json:"status"`
	Side     PositionSide   `json:"side"`
	Size     fixed.Point    `json:"size"`
	Leverage int64          `json:"leverage"`

	EntryPrice fixed.Point `json:"entry_price"`
	ClosePrice fixed.Point `json:"close_price"`

	// Margin is the escrowed collateral for futures, or own funds for
	// a borrowed-spot position. Borrowed is non-zero for margin trades only.
	Margin   fixed.Point `json:"margin"`
	Borrowed fixed.Point `json:"borrowed"`

	LiquidationPrice fixed.Point `json:"liquidation_price"`
	MarginCallPrice  fixed.Point `json:"margin_call_price,omitempty"`
	MaintenanceRate  fixed.Point `json:"maintenance_rate"`

	GrossProfit fixed.Point `json:"gross_profit"`
	NetProfit   fixed.Point `json:"net_profit"`
	Interest    fixed.Point `json:"interest"`
	Fees        fixed.Point `json:"fees"`

	OpenedTick int64 `json:"opened_tick"`
	ClosedTick int64 `json:"closed_tick,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

func (s PositionSide) String() string {
	if s == PositionSideShort {
		return "short"
	}
	return "long"
}
