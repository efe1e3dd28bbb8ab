package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketPrice is the latest known price for a symbol
type MarketPrice struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// PriceSnapshot maps symbol to latest price. A missing symbol is a valid
// state, not an error.
type PriceSnapshot map[string]decimal.Decimal

// Price returns the price for symbol and whether one is known
func (s PriceSnapshot) Price(symbol string) (decimal.Decimal, bool) {
	if s == nil {
		return decimal.Zero, false
	}
	p, ok := s[symbol]
	return p, ok
}

// SnapshotFromPrices indexes a price list by symbol. Later entries win.
func SnapshotFromPrices(prices []*MarketPrice) PriceSnapshot {
	snapshot := make(PriceSnapshot, len(prices))
	for _, p := range prices {
		snapshot[p.Symbol] = p.Price
	}
	return snapshot
}
