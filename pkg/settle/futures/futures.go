// Package futures settles isolated-margin perpetual positions. The margin
// is escrowed at open; a liquidation forfeits all of it, not just the loss.
package futures

import (
	"github.com/coinedu/tradesim/pkg/common"
	"github.com/coinedu/tradesim/pkg/utility/fixed"
)

// DefaultMaintenanceRate is the maintenance margin rate baked into the
// liquidation trigger.
var DefaultMaintenanceRate = fixed.FromInt64(5, 3)

// ContractValue is the notional controlled by the position: margin * leverage.
func ContractValue(margin fixed.Point, leverage int64) fixed.Point {
	return margin.MulInt64(leverage)
}

// LiquidationPrice is fixed at open time:
// long  entry * (1 - 1/L + maintenanceRate)
// short entry * (1 + 1/L - maintenanceRate)
func LiquidationPrice(entry fixed.Point, side common.PositionSide, leverage int64, maintenanceRate fixed.Point) fixed.Point {
	cushion := fixed.One.DivInt64(leverage)
	if side == common.PositionSideLong {
		return entry.Mul(fixed.One.Sub(cushion).Add(maintenanceRate))
	}
	return entry.Mul(fixed.One.Add(cushion).Sub(maintenanceRate))
}

// Breached reports whether price has crossed the liquidation trigger.
func Breached(side common.PositionSide, price, liquidationPrice fixed.Point) bool {
	if side == common.PositionSideLong {
		return price.Lte(liquidationPrice)
	}
	return price.Gte(liquidationPrice)
}

// ClosePnl for a manual close: ±(price-entry)/entry * contractValue,
// sign per direction.
func ClosePnl(entry, price fixed.Point, side common.PositionSide, contractValue fixed.Point) fixed.Point {
	move := price.Sub(entry).Div(entry)
	if side == common.PositionSideShort {
		move = move.Neg()
	}
	return move.Mul(contractValue)
}

// CloseReturn is the cash handed back on a manual close: margin + pnl,
// floored at zero. Losses beyond the margin stay with the house.
func CloseReturn(margin, pnl fixed.Point) fixed.Point {
	ret := margin.Add(pnl)
	if ret.IsNeg() {
		return fixed.Zero
	}
	return ret
}
