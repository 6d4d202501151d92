package market

import (
	"context"
	"time"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility"
)

const aggregatorComponentName = "market.aggregator"

// Aggregator folds per-tick candles into coarser bars of windowTicks each.
// Completed bars go to the flush callback; a partial bar at reset is dropped.
type Aggregator struct {
	windowTicks int64
	flush       func(common.Candle)

	bar     common.Candle
	started bool
	count   int64
}

func NewAggregator(windowTicks int64, flush func(common.Candle)) *Aggregator {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Aggregator{
		windowTicks: windowTicks,
		flush:       flush,
	}
}

func (a *Aggregator) OnCandle(_ context.Context, candle common.Candle) {
	if !a.started {
		a.bar = candle
		a.bar.Source = aggregatorComponentName
		a.started = true
		a.count = 1
	} else {
		if candle.High.Gt(a.bar.High) {
			a.bar.High = candle.High
		}
		if candle.Low.Lt(a.bar.Low) {
			a.bar.Low = candle.Low
		}
		a.bar.Close = candle.Close
		a.bar.Volume = a.bar.Volume.Add(candle.Volume)
		a.bar.Tick = candle.Tick
		a.count++
	}

	if a.count >= a.windowTicks {
		a.bar.ExecutionId = utility.GetExecutionID()
		a.bar.TraceID = utility.CreateTraceID()
		a.bar.TimeStamp = time.Now()
		a.flush(a.bar)
		a.started = false
	}
}

func (a *Aggregator) Reset() {
	a.started = false
	a.count = 0
}
