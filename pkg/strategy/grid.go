package strategy

import (
	"fmt"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const KindGrid = "grid"

// Grid partitions [lower, upper] into equal bands and trades a fixed
// notional one band below/above the last fill. Inert outside the range.
type Grid struct {
	lower    fixed.Point
	upper    fixed.Point
	step     fixed.Point
	notional fixed.Point

	lastFill fixed.Point
}

func NewGrid(lower, upper fixed.Point, grids int64, notional fixed.Point) (*Grid, error) {
	if grids <= 0 || !upper.Gt(lower) || lower.IsNeg() {
		return nil, fmt.Errorf("%w: grid requires 0 <= lower < upper and grids > 0", ErrInvalidParams)
	}
	if !notional.IsPos() {
		return nil, fmt.Errorf("%w: notional must be positive", ErrInvalidParams)
	}
	return &Grid{
		lower:    lower,
		upper:    upper,
		step:     upper.Sub(lower).DivInt64(grids),
		notional: notional,
	}, nil
}

func (g *Grid) Name() string { return KindGrid }

func (g *Grid) Decide(snapshot Snapshot) *Instruction {
	price := snapshot.Price
	if price.Lt(g.lower) || price.Gt(g.upper) {
		return nil
	}

	if g.lastFill.IsZero() {
		if !affordable(snapshot, g.notional) {
			return nil
		}
		g.lastFill = price
		return &Instruction{
			Side:     common.TradeSideBuy,
			Notional: g.notional,
			Comment:  "grid entry",
		}
	}

	if band := g.lastFill.Sub(g.step); price.Lte(band) {
		if !affordable(snapshot, g.notional) {
			return nil
		}
		g.lastFill = price
		return &Instruction{
			Side:     common.TradeSideBuy,
			Notional: g.notional,
			Comment:  fmt.Sprintf("grid buy below %s", band),
		}
	}

	if band := g.lastFill.Add(g.step); price.Gte(band) {
		amount := sellAmount(g.notional, price, snapshot.Holdings)
		if amount.IsZero() {
			return nil
		}
		g.lastFill = price
		return &Instruction{
			Side:     common.TradeSideSell,
			Notional: amount.Mul(price),
			Comment:  fmt.Sprintf("grid sell above %s", band),
		}
	}

	return nil
}

func (g *Grid) Reset() {
	g.lastFill = fixed.Zero
}
