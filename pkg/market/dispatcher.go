package market

import (
	"context"

	"github.com/coinedu/tradesim/pkg/bus"
	"github.com/coinedu/tradesim/pkg/common"
)

// CreateDispatcher pulls one tick from the source and posts it. Used as the
// clock callback in realtime mode and as the ExecLoop feed in fast-forward
// runs. The candle goes out first so state readers see a complete window
// when the price dispatch runs the tick logic.
func CreateDispatcher(r *bus.Router, src Source) func(context.Context) error {
	return func(_ context.Context) error {
		point, candle, err := src.Next()
		if err != nil {
			return err
		}
		if err = r.Post(bus.CandleEvent, candle); err != nil {
			return err
		}
		if err = r.Post(bus.PriceEvent, point); err != nil {
			return err
		}
		return nil
	}
}

// Limited caps a source at n ticks, then reports ErrEof. Gives fast-forward
// runs a finite horizon.
type Limited struct {
	src   Source
	limit int64
	count int64
}

func NewLimited(src Source, limit int64) *Limited {
	return &Limited{src: src, limit: limit}
}

func (l *Limited) Next() (common.PricePoint, common.Candle, error) {
	if l.count >= l.limit {
		return common.PricePoint{}, common.Candle{}, ErrEof
	}
	l.count++
	return l.src.Next()
}

func (l *Limited) Reset() {
	l.count = 0
	l.src.Reset()
}
