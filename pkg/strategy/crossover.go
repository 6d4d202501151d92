package strategy

import (
	"fmt"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/indicators"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const KindCrossover = "crossover"

// Crossover trades simple moving-average crossovers: a bullish cross buys a
// fixed notional, a bearish cross sells half the held position. No action
// until the long window has filled.
type Crossover struct {
	short    *indicators.SMA
	long     *indicators.SMA
	notional fixed.Point

	havePrev  bool
	prevShort fixed.Point
	prevLong  fixed.Point
}

func NewCrossover(shortWindow, longWindow int, notional fixed.Point) (*Crossover, error) {
	if shortWindow <= 0 || longWindow <= shortWindow {
		return nil, fmt.Errorf("%w: crossover requires 0 < short < long", ErrInvalidParams)
	}
	if !notional.IsPos() {
		return nil, fmt.Errorf("%w: notional must be positive", ErrInvalidParams)
	}
	return &Crossover{
		short:    indicators.NewSMA(shortWindow),
		long:     indicators.NewSMA(longWindow),
		notional: notional,
	}, nil
}

func (c *Crossover) Name() string { return KindCrossover }

func (c *Crossover) Decide(snapshot Snapshot) *Instruction {
	c.short.AddPoint(snapshot.Price)
	c.long.AddPoint(snapshot.Price)

	if !c.long.IsReady() {
		return nil
	}

	shortVal, _ := c.short.Value()
	longVal, _ := c.long.Value()

	defer func() {
		c.prevShort = shortVal
		c.prevLong = longVal
		c.havePrev = true
	}()

	if !c.havePrev {
		return nil
	}

	bullish := c.prevShort.Lte(c.prevLong) && shortVal.Gt(longVal)
	bearish := c.prevShort.Gte(c.prevLong) && shortVal.Lt(longVal)

	if bullish {
		if !affordable(snapshot, c.notional) {
			return nil
		}
		return &Instruction{
			Side:     common.TradeSideBuy,
			Notional: c.notional,
			Comment:  "bullish ma crossover",
		}
	}

	if bearish && snapshot.Holdings.IsPos() {
		half := snapshot.Holdings.Div(fixed.Two)
		return &Instruction{
			Side:     common.TradeSideSell,
			Notional: half.Mul(snapshot.Price),
			Comment:  "bearish ma crossover",
		}
	}

	return nil
}

func (c *Crossover) Reset() {
	c.short.Reset()
	c.long.Reset()
	c.havePrev = false
	c.prevShort = fixed.Zero
	c.prevLong = fixed.Zero
}
