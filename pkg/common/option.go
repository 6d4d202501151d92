package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type OptionType int
type OptionAction int
type OptionContractId = int64

const (
	OptionTypeCall OptionType = iota
	OptionTypePut
)

const (
	OptionActionBuy OptionAction = iota
	OptionActionSell
)

// OptionContract is a European-style cash-settled contract. Multiple
// contracts may be open concurrently; each is destroyed by expiry
// settlement or early exercise.
type OptionContract struct {
	Id       OptionContractId `json:"id"`
	Type     OptionType       `json:"type"`
	Action   OptionAction     `json:"action"`
	Strike   fixed.Point      `json:"strike"`
	Premium  fixed.Point      `json:"premium"`
	Contracts fixed.Point     `json:"contracts"`

	UnderlyingAtEntry fixed.Point `json:"underlying_at_entry"`
	OpenedTick        int64       `json:"opened_tick"`
	ExpiryTick        int64       `json:"expiry_tick"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

// Greeks are quoted the conventional way, theta per day and vega per 1% vol.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

func (t OptionType) String() string {
	if t == OptionTypePut {
		return "put"
	}
	return "call"
}

func (a OptionAction) String() string {
	if a == OptionActionSell {
		return "sell"
	}
	return "buy"
}
