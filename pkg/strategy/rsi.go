package strategy

import (
	"fmt"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/indicators"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const KindRSI = "rsi"

// RSIReversion buys when RSI crosses under the oversold threshold and
// sells half the held position when it crosses over the overbought one.
type RSIReversion struct {
	rsi        *indicators.RSI
	oversold   fixed.Point
	overbought fixed.Point
	notional   fixed.Point

	havePrev bool
	prev     fixed.Point
}

func NewRSIReversion(window int, oversold, overbought, notional fixed.Point) (*RSIReversion, error) {
	if window <= 1 || !overbought.Gt(oversold) {
		return nil, fmt.Errorf("%w: rsi requires window > 1 and oversold < overbought", ErrInvalidParams)
	}
	if !notional.IsPos() {
		return nil, fmt.Errorf("%w: notional must be positive", ErrInvalidParams)
	}
	return &RSIReversion{
		rsi:        indicators.NewRSI(window),
		oversold:   oversold,
		overbought: overbought,
		notional:   notional,
	}, nil
}

func (r *RSIReversion) Name() string { return KindRSI }

func (r *RSIReversion) Decide(snapshot Snapshot) *Instruction {
	r.rsi.AddPoint(snapshot.Price)
	if !r.rsi.IsReady() {
		return nil
	}

	value, _ := r.rsi.Value()

	defer func() {
		r.prev = value
		r.havePrev = true
	}()

	if !r.havePrev {
		return nil
	}

	if r.prev.Gte(r.oversold) && value.Lt(r.oversold) {
		if !affordable(snapshot, r.notional) {
			return nil
		}
		return &Instruction{
			Side:     common.TradeSideBuy,
			Notional: r.notional,
			Comment:  fmt.Sprintf("rsi oversold at %s", value.Rescale(2)),
		}
	}

	if r.prev.Lte(r.overbought) && value.Gt(r.overbought) && snapshot.Holdings.IsPos() {
		half := snapshot.Holdings.Div(fixed.Two)
		return &Instruction{
			Side:     common.TradeSideSell,
			Notional: half.Mul(snapshot.Price),
			Comment:  fmt.Sprintf("rsi overbought at %s", value.Rescale(2)),
		}
	}

	return nil
}

func (r *RSIReversion) Reset() {
	r.rsi.Reset()
	r.havePrev = false
	r.prev = fixed.Zero
}
