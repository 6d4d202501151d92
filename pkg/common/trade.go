package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type TradeSide int

const (
	TradeSideBuy TradeSide = iota
	TradeSideSell
)

// TradeRecord is an immutable audit entry, appended on every closing or
// settling event. Never mutated after creation.
type TradeRecord struct {
	Kind     InstrumentKind `json:"kind"`
	Side     TradeSide      `json:"side"`
	Price    fixed.Point    `json:"price"`
	Size     fixed.Point    `json:"size"`
	Fee      fixed.Point    `json:"fee"`
	Interest fixed.Point    `json:"interest"`
	Pnl      fixed.Point    `json:"pnl"`
	Tick     int64          `json:"tick"`
	Comment  string         `json:"comment,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

func (s TradeSide) String() string {
	if s == TradeSideSell {
		return "sell"
	}
	return "buy"
}

// PositionSide maps an order side to position direction: buys open longs,
// sells open shorts.
func (s TradeSide) PositionSide() PositionSide {
	if s == TradeSideSell {
		return PositionSideShort
	}
	return PositionSideLong
}
