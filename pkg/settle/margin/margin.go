// Package margin settles borrowed-spot positions. Amplification is modeled
// as an actual loan accruing interest per tick, and the position carries two
// trigger prices: a margin-call warning and a tighter liquidation price.
package margin

import (
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

var (
	// callCushionFactor places the margin-call warning halfway into the
	// leverage-implied cushion; liqCushionFactor places the forced close
	// at 85% of it.
	callCushionFactor = fixed.FromInt64(50, 2)
	liqCushionFactor  = fixed.FromInt64(85, 2)
)

// Borrowed is the loan taken to amplify own funds: (ratio-1) * ownFunds.
func Borrowed(ownFunds fixed.Point, ratio int64) fixed.Point {
	return ownFunds.MulInt64(ratio - 1)
}

// Interest accrues continuously per tick on the borrowed amount.
func Interest(borrowed, hourlyRate fixed.Point, ticksElapsed int64) fixed.Point {
	if ticksElapsed <= 0 {
		return fixed.Zero
	}
	return borrowed.Mul(hourlyRate).MulInt64(ticksElapsed)
}

// CallPrice is the warning threshold. Crossing it does not force-close.
func CallPrice(entry fixed.Point, side common.PositionSide, ratio int64) fixed.Point {
	return triggerPrice(entry, side, ratio, callCushionFactor)
}

// LiquidationPrice is the forced-close threshold, tighter than the call price.
func LiquidationPrice(entry fixed.Point, side common.PositionSide, ratio int64) fixed.Point {
	return triggerPrice(entry, side, ratio, liqCushionFactor)
}

func triggerPrice(entry fixed.Point, side common.PositionSide, ratio int64, factor fixed.Point) fixed.Point {
	cushion := fixed.One.DivInt64(ratio).Mul(factor)
	if side == common.PositionSideLong {
		return entry.Mul(fixed.One.Sub(cushion))
	}
	return entry.Mul(fixed.One.Add(cushion))
}

// Called reports whether price has crossed the margin-call threshold.
func Called(side common.PositionSide, price, callPrice fixed.Point) bool {
	if side == common.PositionSideLong {
		return price.Lte(callPrice)
	}
	return price.Gte(callPrice)
}

// Breached reports whether price has crossed the liquidation threshold.
func Breached(side common.PositionSide, price, liquidationPrice fixed.Point) bool {
	if side == common.PositionSideLong {
		return price.Lte(liquidationPrice)
	}
	return price.Gte(liquidationPrice)
}

// ClosePnl is the position P&L before interest: ±(price-entry)/entry * exposure,
// where exposure is ownFunds * ratio.
func ClosePnl(entry, price fixed.Point, side common.PositionSide, ownFunds fixed.Point, ratio int64) fixed.Point {
	move := price.Sub(entry).Div(entry)
	if side == common.PositionSideShort {
		move = move.Neg()
	}
	return move.Mul(ownFunds.MulInt64(ratio))
}

// CloseReturn is the cash returned on manual close: ownFunds + pnl - interest,
// floored at zero.
func CloseReturn(ownFunds, pnl, interest fixed.Point) fixed.Point {
	ret := ownFunds.Add(pnl).Sub(interest)
	if ret.IsNeg() {
		return fixed.Zero
	}
	return ret
}
