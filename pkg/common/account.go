package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// AccountSnapshot is the ledger state at one point in time.
type AccountSnapshot struct {
	Cash          fixed.Point `json:"cash"`
	Holdings      fixed.Point `json:"holdings"`
	AvgEntryPrice fixed.Point `json:"avg_entry_price"`
	RealizedPnl   fixed.Point `json:"realized_pnl"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

// Equity is cash plus the mark-to-market value of open exposure.
type Equity struct {
	Value fixed.Point `json:"value"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
