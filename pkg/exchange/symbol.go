package exchange

import (
	"tickforge/pkg/common"
	"tickforge/pkg/utility/fixed"
)

type SymbolClass string

const (
	Forex SymbolClass = "forex"
	Metal SymbolClass = "metal"
)

// FeeSchedule quotes per-lot commissions in account currency. The maker rate
// applies to fills that rested at a level (limit, stop-limit), the taker rate
// to fills that crossed the spread (market, triggered stop).
type FeeSchedule struct {
	MakerPerLot fixed.Point
	TakerPerLot fixed.Point
}

func (f FeeSchedule) PerLot(maker bool) fixed.Point {
	if maker {
		return f.MakerPerLot
	}
	return f.TakerPerLot
}

// SymbolInfo carries the immutable per-scenario contract terms of a symbol.
type SymbolInfo struct {
	SymbolName    string
	SymbolId      int64
	Class         SymbolClass
	QuoteCurrency string
	Digits        int
	ContractSize  fixed.Point
	// TickValue is the account-currency value of one point (10^-Digits of
	// price movement) for one lot.
	TickValue  fixed.Point
	VolumeMin  fixed.Point
	VolumeStep fixed.Point
	Leverage   fixed.Point
	Commission FeeSchedule
	// Swap per lot per day held, already signed (a positive value is a cost).
	SwapLongPerLotDay  fixed.Point
	SwapShortPerLotDay fixed.Point
}

func (s SymbolInfo) SwapPerLotDay(side common.PositionSide) fixed.Point {
	if side == common.PositionSideShort {
		return s.SwapShortPerLotDay
	}
	return s.SwapLongPerLotDay
}

// PointFactor is 10^Digits, converting a price difference into points.
func (s SymbolInfo) PointFactor() fixed.Point {
	return fixed.One.MulInt64(pow10(s.Digits))
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
