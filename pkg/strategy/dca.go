package strategy

import (
	"fmt"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

const KindDCA = "dca"

// DCA buys a fixed notional every interval ticks, regardless of price.
type DCA struct {
	interval int64
	notional fixed.Point

	lastBuyTick int64
	hasBought   bool
}

func NewDCA(interval int64, notional fixed.Point) (*DCA, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive", ErrInvalidParams)
	}
	if !notional.IsPos() {
		return nil, fmt.Errorf("%w: notional must be positive", ErrInvalidParams)
	}
	return &DCA{
		interval: interval,
		notional: notional,
	}, nil
}

func (d *DCA) Name() string { return KindDCA }

func (d *DCA) Decide(snapshot Snapshot) *Instruction {
	if d.hasBought && snapshot.Tick-d.lastBuyTick < d.interval {
		return nil
	}
	if !affordable(snapshot, d.notional) {
		return nil
	}

	d.lastBuyTick = snapshot.Tick
	d.hasBought = true
	return &Instruction{
		Side:     common.TradeSideBuy,
		Notional: d.notional,
		Comment:  "dca buy",
	}
}

func (d *DCA) Reset() {
	d.lastBuyTick = 0
	d.hasBought = false
}
