package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func snap(tick int64, price, cash, holdings int64) Snapshot {
	return Snapshot{
		Tick:     tick,
		Price:    fixed.FromInt64(price, 0),
		Cash:     fixed.FromInt64(cash, 0),
		Holdings: fixed.FromInt64(holdings, 0),
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []string{KindGrid, KindDCA, KindCrossover, KindRSI} {
		params := Params{}
		if kind == KindGrid {
			params = Params{
				"lower": fixed.FromInt64(100, 0),
				"upper": fixed.FromInt64(200, 0),
			}
		}
		s, err := New(kind, params)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, s.Name())
	}

	_, err := New("martingale", nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestGrid_Validation(t *testing.T) {
	notional := fixed.FromInt64(100, 0)

	_, err := NewGrid(fixed.FromInt64(200, 0), fixed.FromInt64(100, 0), 10, notional)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 0, notional)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.Zero)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestGrid_InertOutsideRange(t *testing.T) {
	g, err := NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.FromInt64(50, 0))
	require.NoError(t, err)

	assert.Nil(t, g.Decide(snap(1, 99, 10_000, 0)))
	assert.Nil(t, g.Decide(snap(2, 201, 10_000, 0)))
}

func TestGrid_TradesOneBandFromLastFill(t *testing.T) {
	// bands of 10 across [100, 200]
	g, err := NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.FromInt64(50, 0))
	require.NoError(t, err)

	// first in-range tick is the entry fill
	entry := g.Decide(snap(1, 150, 10_000, 0))
	require.NotNil(t, entry)
	assert.Equal(t, common.TradeSideBuy, entry.Side)

	// inside the band around the fill: nothing
	assert.Nil(t, g.Decide(snap(2, 145, 10_000, 1)))
	assert.Nil(t, g.Decide(snap(3, 155, 10_000, 1)))

	// one full band down: buy
	buy := g.Decide(snap(4, 140, 10_000, 1))
	require.NotNil(t, buy)
	assert.Equal(t, common.TradeSideBuy, buy.Side)

	// one full band up from the new fill: sell
	sell := g.Decide(snap(5, 150, 10_000, 1))
	require.NotNil(t, sell)
	assert.Equal(t, common.TradeSideSell, sell.Side)
}

func TestGrid_SellNeedsHoldings(t *testing.T) {
	g, err := NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.FromInt64(50, 0))
	require.NoError(t, err)

	require.NotNil(t, g.Decide(snap(1, 150, 10_000, 0)))
	assert.Nil(t, g.Decide(snap(2, 160, 10_000, 0)))
}

func TestGrid_CommentNamesTheBand(t *testing.T) {
	g, err := NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.FromInt64(50, 0))
	require.NoError(t, err)

	require.NotNil(t, g.Decide(snap(1, 150, 10_000, 0)))

	// fill at 138, one band below the 150 entry; the comment cites the
	// 140 trigger, not the fill price
	buy := g.Decide(snap(2, 138, 10_000, 1))
	require.NotNil(t, buy)
	assert.Contains(t, buy.Comment, "140")

	sell := g.Decide(snap(3, 150, 10_000, 2))
	require.NotNil(t, sell)
	assert.Contains(t, sell.Comment, "148")
}

func TestGrid_BuyRequiresFeeHeadroom(t *testing.T) {
	g, err := NewGrid(fixed.FromInt64(100, 0), fixed.FromInt64(200, 0), 10, fixed.FromInt64(50, 0))
	require.NoError(t, err)

	// cash covers the notional but not the fee charged on top
	broke := snap(1, 150, 50, 0)
	broke.FeeRate = fixed.FromInt64(1, 3)
	assert.Nil(t, g.Decide(broke))

	// nothing advanced; the next tick with headroom takes the entry
	funded := snap(2, 150, 51, 0)
	funded.FeeRate = fixed.FromInt64(1, 3)
	got := g.Decide(funded)
	require.NotNil(t, got)
	assert.Equal(t, common.TradeSideBuy, got.Side)
}

func TestDCA_BuyRequiresFeeHeadroom(t *testing.T) {
	d, err := NewDCA(5, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	broke := snap(1, 100, 100, 0)
	broke.FeeRate = fixed.FromInt64(1, 3)
	assert.Nil(t, d.Decide(broke))

	funded := snap(2, 100, 101, 0)
	funded.FeeRate = fixed.FromInt64(1, 3)
	require.NotNil(t, d.Decide(funded))
}

func TestDCA_BuysOnInterval(t *testing.T) {
	d, err := NewDCA(5, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	first := d.Decide(snap(1, 100, 10_000, 0))
	require.NotNil(t, first)
	assert.Equal(t, common.TradeSideBuy, first.Side)
	assert.True(t, fixed.FromInt64(100, 0).Eq(first.Notional))

	for tick := int64(2); tick < 6; tick++ {
		assert.Nil(t, d.Decide(snap(tick, 100, 10_000, 0)), "tick %d", tick)
	}

	assert.NotNil(t, d.Decide(snap(6, 100, 10_000, 0)))
}

func TestDCA_SkipsWhenBroke(t *testing.T) {
	d, err := NewDCA(1, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	assert.Nil(t, d.Decide(snap(1, 100, 50, 0)))

	// buys as soon as cash allows again
	assert.NotNil(t, d.Decide(snap(2, 100, 200, 0)))
}

func TestCrossover_InertUntilLongWindowFills(t *testing.T) {
	c, err := NewCrossover(2, 4, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	for tick := int64(1); tick <= 4; tick++ {
		assert.Nil(t, c.Decide(snap(tick, 100, 10_000, 0)), "tick %d", tick)
	}
}

func TestCrossover_BullishCrossBuys(t *testing.T) {
	c, err := NewCrossover(2, 4, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	// flat prices fill the windows, then a spike lifts the short average first
	for _, price := range []int64{100, 100, 100, 100, 100} {
		require.Nil(t, c.Decide(snap(0, price, 10_000, 0)))
	}

	got := c.Decide(snap(0, 140, 10_000, 0))
	require.NotNil(t, got)
	assert.Equal(t, common.TradeSideBuy, got.Side)
}

func TestCrossover_BearishCrossSellsHalf(t *testing.T) {
	c, err := NewCrossover(2, 4, fixed.FromInt64(100, 0))
	require.NoError(t, err)

	for _, price := range []int64{100, 100, 100, 100, 100} {
		require.Nil(t, c.Decide(snap(0, price, 10_000, 2)))
	}

	// a slump drags the short average under the long one
	got := c.Decide(snap(0, 60, 10_000, 2))
	require.NotNil(t, got)
	assert.Equal(t, common.TradeSideSell, got.Side)
	// half of 2 held units at price 60
	assert.True(t, fixed.FromInt64(60, 0).Eq(got.Notional), "got %s", got.Notional)

	// flat book: bearish cross is a no-op
	c.Reset()
	for _, price := range []int64{100, 100, 100, 100, 100} {
		require.Nil(t, c.Decide(snap(0, price, 10_000, 0)))
	}
	assert.Nil(t, c.Decide(snap(0, 60, 10_000, 0)))
}

func TestRSIReversion_Validation(t *testing.T) {
	notional := fixed.FromInt64(100, 0)

	_, err := NewRSIReversion(1, fixed.FromInt64(30, 0), fixed.FromInt64(70, 0), notional)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewRSIReversion(14, fixed.FromInt64(70, 0), fixed.FromInt64(30, 0), notional)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRSIReversion_BuysOnOversoldCross(t *testing.T) {
	r, err := NewRSIReversion(3, fixed.FromInt64(30, 0), fixed.FromInt64(70, 0), fixed.FromInt64(100, 0))
	require.NoError(t, err)

	// mixed drift keeps RSI mid-range while the window fills
	for _, price := range []int64{100, 102, 100, 102, 100} {
		require.Nil(t, r.Decide(snap(0, price, 10_000, 0)))
	}

	// three straight drops push RSI to 0, crossing under 30
	var got *Instruction
	for _, price := range []int64{96, 92, 88} {
		if got = r.Decide(snap(0, price, 10_000, 0)); got != nil {
			break
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, common.TradeSideBuy, got.Side)
}

func TestRSIReversion_SellsOnOverboughtCross(t *testing.T) {
	r, err := NewRSIReversion(3, fixed.FromInt64(30, 0), fixed.FromInt64(70, 0), fixed.FromInt64(100, 0))
	require.NoError(t, err)

	for _, price := range []int64{100, 102, 100, 102, 100} {
		require.Nil(t, r.Decide(snap(0, price, 10_000, 2)))
	}

	var got *Instruction
	for _, price := range []int64{104, 108, 112} {
		if got = r.Decide(snap(0, price, 10_000, 2)); got != nil {
			break
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, common.TradeSideSell, got.Side)
}
