// Package options prices European cash-settled contracts with the
// Black-Scholes model. All math runs in float64; callers convert to and
// from the ledger's fixed representation at the boundary.
package options

import (
	"math"

	"github.com/coinedu/tradesim/pkg/common"
)

// Price returns the Black-Scholes premium. At or past expiry (t <= 0) it
// collapses to intrinsic value.
func Price(typ common.OptionType, s, k, t, r, sigma float64) float64 {
	if t <= 0 {
		return Intrinsic(typ, s, k)
	}

	d1, d2 := d1d2(s, k, t, r, sigma)
	discount := k * math.Exp(-r*t)

	if typ == common.OptionTypeCall {
		return s*normCDF(d1) - discount*normCDF(d2)
	}
	return discount*normCDF(-d2) - s*normCDF(-d1)
}

// Intrinsic is the payoff of immediate exercise.
func Intrinsic(typ common.OptionType, s, k float64) float64 {
	if typ == common.OptionTypeCall {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// PriceGreeks returns the premium plus delta, gamma, theta per day and
// vega per 1% vol move.
func PriceGreeks(typ common.OptionType, s, k, t, r, sigma float64) (float64, common.Greeks) {
	if t <= 0 {
		return Intrinsic(typ, s, k), common.Greeks{}
	}

	d1, d2 := d1d2(s, k, t, r, sigma)
	sqrtT := math.Sqrt(t)
	pdfD1 := normPDF(d1)
	discount := k * math.Exp(-r*t)

	greeks := common.Greeks{
		Gamma: pdfD1 / (s * sigma * sqrtT),
		Vega:  s * pdfD1 * sqrtT / 100,
	}

	var price float64
	if typ == common.OptionTypeCall {
		price = s*normCDF(d1) - discount*normCDF(d2)
		greeks.Delta = normCDF(d1)
		greeks.Theta = (-s*pdfD1*sigma/(2*sqrtT) - r*discount*normCDF(d2)) / 365
	} else {
		price = discount*normCDF(-d2) - s*normCDF(-d1)
		greeks.Delta = normCDF(d1) - 1
		greeks.Theta = (-s*pdfD1*sigma/(2*sqrtT) + r*discount*normCDF(-d2)) / 365
	}

	return price, greeks
}

// SettlePnl is the buyer's P&L at settlement; a seller's is the negated figure.
func SettlePnl(action common.OptionAction, intrinsic, premium, contracts, unitSize float64) float64 {
	pnl := (intrinsic - premium) * contracts * unitSize
	if action == common.OptionActionSell {
		return -pnl
	}
	return pnl
}

func d1d2(s, k, t, r, sigma float64) (float64, float64) {
	sigSqrtT := sigma * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+sigma*sigma/2)*t) / sigSqrtT
	return d1, d1 - sigSqrtT
}
