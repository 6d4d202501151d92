package options

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coinedu/tradesim/pkg/common"
)

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, normCDF(0), 1e-7)
	assert.InDelta(t, 0.975, normCDF(1.96), 1e-4)
	assert.InDelta(t, 0.8413, normCDF(1), 1e-4)

	// mirror identity holds exactly
	for _, x := range []float64{0.1, 0.5, 1, 1.96, 3} {
		assert.Equal(t, 1.0, normCDF(x)+normCDF(-x))
	}

	assert.InDelta(t, 1.0, normCDF(8), 1e-9)
	assert.InDelta(t, 0.0, normCDF(-8), 1e-9)
}

func TestPrice_PutCallParity(t *testing.T) {
	const (
		s     = 65_000.0
		k     = 70_000.0
		tt    = 30.0 / 365
		r     = 0.03
		sigma = 0.6
	)

	call := Price(common.OptionTypeCall, s, k, tt, r, sigma)
	put := Price(common.OptionTypePut, s, k, tt, r, sigma)

	// C - P = S - K*exp(-rT)
	assert.InDelta(t, s-k*math.Exp(-r*tt), call-put, 1e-6)
}

func TestPrice_CollapsesToIntrinsicAtExpiry(t *testing.T) {
	assert.Equal(t, 5_000.0, Price(common.OptionTypeCall, 70_000, 65_000, 0, 0.03, 0.6))
	assert.Equal(t, 0.0, Price(common.OptionTypeCall, 60_000, 65_000, 0, 0.03, 0.6))
	assert.Equal(t, 5_000.0, Price(common.OptionTypePut, 60_000, 65_000, -1, 0.03, 0.6))
}

func TestPrice_Monotonicity(t *testing.T) {
	const (
		k     = 65_000.0
		tt    = 14.0 / 365
		r     = 0.03
		sigma = 0.6
	)

	// call premium rises with spot, put premium falls
	callLow := Price(common.OptionTypeCall, 60_000, k, tt, r, sigma)
	callHigh := Price(common.OptionTypeCall, 70_000, k, tt, r, sigma)
	assert.Greater(t, callHigh, callLow)

	putLow := Price(common.OptionTypePut, 60_000, k, tt, r, sigma)
	putHigh := Price(common.OptionTypePut, 70_000, k, tt, r, sigma)
	assert.Less(t, putHigh, putLow)

	// more time is worth more, and so is more vol
	assert.Greater(t, Price(common.OptionTypeCall, k, k, 60.0/365, r, sigma), Price(common.OptionTypeCall, k, k, 7.0/365, r, sigma))
	assert.Greater(t, Price(common.OptionTypeCall, k, k, tt, r, 0.9), Price(common.OptionTypeCall, k, k, tt, r, 0.3))
}

func TestIntrinsic(t *testing.T) {
	assert.Equal(t, 2_000.0, Intrinsic(common.OptionTypeCall, 67_000, 65_000))
	assert.Equal(t, 0.0, Intrinsic(common.OptionTypeCall, 64_000, 65_000))
	assert.Equal(t, 3_000.0, Intrinsic(common.OptionTypePut, 62_000, 65_000))
	assert.Equal(t, 0.0, Intrinsic(common.OptionTypePut, 66_000, 65_000))
}

func TestPriceGreeks(t *testing.T) {
	price, greeks := PriceGreeks(common.OptionTypeCall, 65_000, 65_000, 30.0/365, 0.03, 0.6)

	assert.InDelta(t, price, Price(common.OptionTypeCall, 65_000, 65_000, 30.0/365, 0.03, 0.6), 1e-12)
	assert.Greater(t, greeks.Delta, 0.0)
	assert.Less(t, greeks.Delta, 1.0)
	assert.Greater(t, greeks.Gamma, 0.0)
	assert.Greater(t, greeks.Vega, 0.0)
	assert.Less(t, greeks.Theta, 0.0)

	_, putGreeks := PriceGreeks(common.OptionTypePut, 65_000, 65_000, 30.0/365, 0.03, 0.6)
	assert.Less(t, putGreeks.Delta, 0.0)
	assert.Greater(t, putGreeks.Delta, -1.0)

	// delta parity: call delta - put delta = 1
	assert.InDelta(t, 1.0, greeks.Delta-putGreeks.Delta, 1e-12)

	expiredPrice, expiredGreeks := PriceGreeks(common.OptionTypeCall, 70_000, 65_000, 0, 0.03, 0.6)
	assert.Equal(t, 5_000.0, expiredPrice)
	assert.Equal(t, common.Greeks{}, expiredGreeks)
}

func TestSettlePnl(t *testing.T) {
	// buyer paid 500 per unit, settles at 2000 intrinsic, 2 contracts of 0.5
	got := SettlePnl(common.OptionActionBuy, 2_000, 500, 2, 0.5)
	assert.Equal(t, 1_500.0, got)

	// seller's book is the mirror image
	assert.Equal(t, -1_500.0, SettlePnl(common.OptionActionSell, 2_000, 500, 2, 0.5))

	// expiring worthless: buyer loses the premium, seller keeps it
	assert.Equal(t, -500.0, SettlePnl(common.OptionActionBuy, 0, 500, 1, 1))
	assert.Equal(t, 500.0, SettlePnl(common.OptionActionSell, 0, 500, 1, 1))
}
