// Package strategy holds the bot decision functions. Each strategy inspects
// an immutable snapshot of the market and account each tick and emits zero
// or one trade instruction; per-strategy working memory lives inside the
// strategy value and is dropped on Reset.
package strategy

import (
	"errors"
	"fmt"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

var ErrInvalidParams = errors.New("invalid strategy parameters")

// Snapshot is the frozen view a strategy decides on. The engine builds it
// once per tick; strategies must not retain references past Decide.
type Snapshot struct {
	Tick     int64
	Price    fixed.Point
	Prices   []fixed.Point // oldest first
	Cash     fixed.Point
	Holdings fixed.Point
	Position *common.Position
	FeeRate  fixed.Point
}

// Instruction is a spot trade request in quote-currency notional.
type Instruction struct {
	Side     common.TradeSide
	Notional fixed.Point
	Comment  string
}

type Strategy interface {
	Name() string
	Decide(snapshot Snapshot) *Instruction
	Reset()
}

// Params are the user-supplied knobs, all numeric.
type Params = map[string]fixed.Point

// New builds a strategy by kind. Missing parameters fall back to defaults;
// out-of-range ones are rejected.
func New(kind string, params Params) (Strategy, error) {
	switch kind {
	case KindGrid:
		return NewGrid(
			param(params, "lower", fixed.Zero),
			param(params, "upper", fixed.Zero),
			paramInt(params, "grids", 10),
			param(params, "notional", defaultNotional),
		)
	case KindDCA:
		return NewDCA(
			paramInt(params, "interval", 10),
			param(params, "notional", defaultNotional),
		)
	case KindCrossover:
		return NewCrossover(
			int(paramInt(params, "short", 5)),
			int(paramInt(params, "long", 20)),
			param(params, "notional", defaultNotional),
		)
	case KindRSI:
		return NewRSIReversion(
			int(paramInt(params, "window", 14)),
			param(params, "oversold", fixed.FromInt64(30, 0)),
			param(params, "overbought", fixed.FromInt64(70, 0)),
			param(params, "notional", defaultNotional),
		)
	default:
		return nil, fmt.Errorf("%w: unknown strategy kind %q", ErrInvalidParams, kind)
	}
}

var defaultNotional = fixed.FromInt64(100, 0)

func param(params Params, key string, fallback fixed.Point) fixed.Point {
	if params == nil {
		return fallback
	}
	if v, ok := params[key]; ok {
		return v
	}
	return fallback
}

func paramInt(params Params, key string, fallback int64) int64 {
	v := param(params, key, fixed.FromInt64(fallback, 0))
	f, _ := v.Float64()
	return int64(f)
}

// sellAmount converts a notional into base units, capped at held amount.
func sellAmount(notional, price, holdings fixed.Point) fixed.Point {
	amount := notional.Div(price)
	return fixed.Min(amount, holdings)
}

// affordable reports whether cash covers notional plus the taker fee the
// execution adds on top. Checking notional alone would let a strategy
// advance its state on a trade the engine then refuses.
func affordable(snapshot Snapshot, notional fixed.Point) bool {
	cost := notional.Add(notional.Mul(snapshot.FeeRate))
	return !snapshot.Cash.Lt(cost)
}
