// Package spot prices plain cash trades. No leverage, no liquidation;
// the worst case is total loss of invested cash.
package spot

import (
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// Fee is the taker fee charged on notional, both sides.
func Fee(price, amount, feeRate fixed.Point) fixed.Point {
	return price.Mul(amount).Mul(feeRate)
}

// BuyCost is the cash debited for a buy: price*amount*(1+feeRate).
func BuyCost(price, amount, feeRate fixed.Point) fixed.Point {
	return price.Mul(amount).Mul(fixed.One.Add(feeRate))
}

// SellProceeds is the cash credited for a sell: price*amount*(1-feeRate).
func SellProceeds(price, amount, feeRate fixed.Point) fixed.Point {
	return price.Mul(amount).Mul(fixed.One.Sub(feeRate))
}

// RealizedPnl marks a sell against the volume-weighted average entry of
// current holdings.
func RealizedPnl(avgEntry, price, amount fixed.Point) fixed.Point {
	return price.Sub(avgEntry).Mul(amount)
}
