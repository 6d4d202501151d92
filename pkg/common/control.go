package common

import (
	"time"

	"github.com/coinedu/tradesim/pkg/utility"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

type ControlCommand int

const (
	ControlPause ControlCommand = iota
	ControlResume
	ControlReset
	ControlSetSpeed
	ControlSetStrategy
	ControlToggleBot
)

// Control drives the clock and bot lifecycle. Like orders, controls are
// dispatched on the router goroutine so they never race a tick.
type Control struct {
	Command ControlCommand `json:"command"`

	SpeedLevel int    `json:"speed_level,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	BotEnabled bool   `json:"bot_enabled,omitempty"`

	StrategyParams map[string]fixed.Point `json:"strategy_params,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

type RiskAlertKind int

const (
	RiskAlertMarginCall RiskAlertKind = iota
	RiskAlertLiquidation
	RiskAlertOptionExpiry
)

// RiskAlert is an autonomous engine transition surfaced to the UI layer.
// Alerts are never errors; by the time one is posted the state change has
// already been applied.
type RiskAlert struct {
	Kind     RiskAlertKind `json:"alert"`
	Price    fixed.Point   `json:"price"`
	Position *Position     `json:"position,omitempty"`
	Contract *OptionContract `json:"contract,omitempty"`
	Message  string        `json:"message"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

// BotAction reports the instruction a strategy emitted on a tick.
type BotAction struct {
	Strategy string      `json:"strategy"`
	Side     TradeSide   `json:"side"`
	Notional fixed.Point `json:"notional"`
	Price    fixed.Point `json:"price"`
	Tick     int64       `json:"tick"`
	Comment  string      `json:"comment,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}

// StateSnapshot is the read model handed to external collaborators after
// every tick. It is a value copy; readers never touch engine state.
type StateSnapshot struct {
	Tick       int64           `json:"tick"`
	Price      fixed.Point     `json:"price"`
	Account    AccountSnapshot `json:"account"`
	Equity     fixed.Point     `json:"equity"`
	Position   *Position       `json:"position,omitempty"`
	Options    []OptionContract `json:"options,omitempty"`
	BotEnabled bool            `json:"bot_enabled"`
	Strategy   string          `json:"strategy,omitempty"`
	Paused     bool            `json:"paused"`
	SpeedLevel int             `json:"speed_level"`
	LastAction string          `json:"last_action,omitempty"`

	Source      string              `json:"src,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
