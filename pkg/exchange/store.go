package exchange

import (
	"errors"
	"fmt"
	"strings"

	"tickforge/pkg/utility/fixed"
)

var ErrSymbolNotPresent = errors.New("symbol is not present in symbol table")

type SymbolStore struct {
	symbols []SymbolInfo
}

func CreateSymbolStore(symbols ...SymbolInfo) SymbolStore {
	return SymbolStore{
		symbols: symbols,
	}
}

func (s SymbolStore) Contains(symbolName string) bool {
	_, err := s.Get(symbolName)
	return err == nil
}

func (s SymbolStore) Get(symbolName string) (SymbolInfo, error) {
	for _, symbol := range s.symbols {
		if strings.EqualFold(symbol.SymbolName, symbolName) {
			return symbol, nil
		}
	}
	return SymbolInfo{}, fmt.Errorf("unable to get symbol with name %s: %w", symbolName, ErrSymbolNotPresent)
}

func (s SymbolStore) MustGet(symbolName string) SymbolInfo {
	symbol, err := s.Get(symbolName)
	if err != nil {
		panic(err.Error())
	}
	return symbol
}

func CreateSymbolTestStore() SymbolStore {
	return CreateSymbolStore(
		SymbolInfo{
			SymbolName:    "EURUSD",
			Class:         Forex,
			QuoteCurrency: "USD",
			Digits:        5,
			ContractSize:  fixed.FromInt(100_000, 0),
			TickValue:     fixed.One,
			VolumeMin:     fixed.FromInt64(1, 2),
			VolumeStep:    fixed.FromInt64(1, 2),
			Leverage:      fixed.FromInt(30, 0),
			Commission: FeeSchedule{
				MakerPerLot: fixed.FromInt64(25, 1),
				TakerPerLot: fixed.FromInt64(35, 1),
			},
			SwapLongPerLotDay:  fixed.FromInt64(12, 1),
			SwapShortPerLotDay: fixed.FromInt64(8, 1),
		},
		SymbolInfo{
			SymbolName:    "USDJPY",
			Class:         Forex,
			QuoteCurrency: "JPY",
			Digits:        3,
			ContractSize:  fixed.FromInt(100_000, 0),
			TickValue:     fixed.FromFloat64(0.68),
			VolumeMin:     fixed.FromInt64(1, 2),
			VolumeStep:    fixed.FromInt64(1, 2),
			Leverage:      fixed.FromInt(30, 0),
			Commission: FeeSchedule{
				MakerPerLot: fixed.FromInt64(25, 1),
				TakerPerLot: fixed.FromInt64(35, 1),
			},
			SwapLongPerLotDay:  fixed.FromInt64(15, 1),
			SwapShortPerLotDay: fixed.FromInt64(5, 1),
		},
	)
}
