package margin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

func TestMargin_Borrowed(t *testing.T) {
	own := fixed.FromInt64(1_000, 0)

	assert.True(t, fixed.FromInt64(2_000, 0).Eq(Borrowed(own, 3)))
	assert.True(t, fixed.FromInt64(1_000, 0).Eq(Borrowed(own, 2)))
}

func TestMargin_Interest(t *testing.T) {
	borrowed := fixed.FromInt64(2_000, 0)
	rate := fixed.FromInt64(1, 4) // 0.01% per tick

	assert.True(t, Interest(borrowed, rate, 0).IsZero())
	assert.True(t, Interest(borrowed, rate, -5).IsZero())

	// 2000 * 0.0001 * 10 = 2
	got := Interest(borrowed, rate, 10)
	assert.True(t, fixed.FromInt64(2, 0).Eq(got), "got %s", got)

	// accrual is linear in ticks held
	assert.True(t, Interest(borrowed, rate, 20).Eq(got.MulInt64(2)))
}

func TestMargin_TriggerOrdering(t *testing.T) {
	entry := fixed.FromInt64(65_000, 0)

	for _, ratio := range []int64{2, 3, 5, 10} {
		call := CallPrice(entry, common.PositionSideLong, ratio)
		liq := LiquidationPrice(entry, common.PositionSideLong, ratio)

		// a falling long crosses the warning before the forced close
		assert.True(t, call.Gt(liq), "ratio %d: call %s should sit above liq %s", ratio, call, liq)
		assert.True(t, liq.IsPos())

		callShort := CallPrice(entry, common.PositionSideShort, ratio)
		liqShort := LiquidationPrice(entry, common.PositionSideShort, ratio)
		assert.True(t, callShort.Lt(liqShort), "ratio %d: short call should sit below liq", ratio)
	}
}

func TestMargin_TriggerPrices(t *testing.T) {
	entry := fixed.FromInt64(60_000, 0)

	// ratio 4: cushion 0.25, call at entry*(1-0.125), liq at entry*(1-0.2125)
	call := CallPrice(entry, common.PositionSideLong, 4)
	liq := LiquidationPrice(entry, common.PositionSideLong, 4)

	assert.True(t, fixed.FromInt64(52_500, 0).Eq(call), "got %s", call)
	assert.True(t, fixed.FromInt64(47_250, 0).Eq(liq), "got %s", liq)
}

func TestMargin_CalledAndBreached(t *testing.T) {
	call := fixed.FromInt64(50_000, 0)
	liq := fixed.FromInt64(43_000, 0)

	assert.False(t, Called(common.PositionSideLong, fixed.FromInt64(51_000, 0), call))
	assert.True(t, Called(common.PositionSideLong, fixed.FromInt64(50_000, 0), call))
	assert.False(t, Breached(common.PositionSideLong, fixed.FromInt64(44_000, 0), liq))
	assert.True(t, Breached(common.PositionSideLong, fixed.FromInt64(42_999, 0), liq))
}

func TestMargin_ClosePnl(t *testing.T) {
	entry := fixed.FromInt64(100, 0)
	own := fixed.FromInt64(1_000, 0)

	// +5% on 3x exposure of 3000: +150
	pnl := ClosePnl(entry, fixed.FromInt64(105, 0), common.PositionSideLong, own, 3)
	assert.True(t, fixed.FromInt64(150, 0).Eq(pnl), "got %s", pnl)

	pnl = ClosePnl(entry, fixed.FromInt64(105, 0), common.PositionSideShort, own, 3)
	assert.True(t, fixed.FromInt64(-150, 0).Eq(pnl), "got %s", pnl)
}

func TestMargin_CloseReturn(t *testing.T) {
	own := fixed.FromInt64(1_000, 0)
	interest := fixed.FromInt64(2, 0)

	got := CloseReturn(own, fixed.FromInt64(150, 0), interest)
	assert.True(t, fixed.FromInt64(1_148, 0).Eq(got), "got %s", got)

	// losses beyond own funds are not clawed back
	assert.True(t, CloseReturn(own, fixed.FromInt64(-3_000, 0), interest).IsZero())
}
