package indicators

import (
	"errors"

	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// RSI is the Relative Strength Index over a fixed window, computed from
// average gains vs average losses of consecutive closes. Bounded [0,100].
type RSI struct {
	windowSize int
	deltas     *fixed.RingBuffer

	hasLast bool
	last    fixed.Point
}

func NewRSI(windowSize int) *RSI {
	return &RSI{
		windowSize: windowSize,
		deltas:     fixed.NewRingBuffer(windowSize),
	}
}

func (r *RSI) AddPoint(p fixed.Point) {
	if r.hasLast {
		r.deltas.Add(p.Sub(r.last))
	}
	r.last = p
	r.hasLast = true
}

func (r *RSI) Value() (fixed.Point, error) {
	if !r.IsReady() {
		return fixed.Point{}, errors.New("not enough data")
	}

	gains := fixed.Zero
	losses := fixed.Zero
	for i := 0; i < r.deltas.Size(); i++ {
		delta := r.deltas.Get(i)
		if delta.IsPos() {
			gains = gains.Add(delta)
		} else {
			losses = losses.Add(delta.Abs())
		}
	}

	if losses.IsZero() {
		return fixed.Hundred, nil
	}

	rs := gains.Div(losses)
	return fixed.Hundred.Sub(fixed.Hundred.Div(fixed.One.Add(rs))), nil
}

func (r *RSI) IsReady() bool {
	return r.deltas.IsFull()
}

func (r *RSI) Reset() {
	r.deltas.Clear()
	r.hasLast = false
	r.last = fixed.Zero
}
