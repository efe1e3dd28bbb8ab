package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a portfolio is created without one
const DefaultCurrency = "USD"

// Portfolio is a named collection of transactions owned by one user
type Portfolio struct {
	ID        int       `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeCurrency upper-cases code and falls back to DefaultCurrency
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// Holding is the derived open position for one symbol. It is never stored.
type Holding struct {
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
	MarketPrice decimal.Decimal `json:"market_price"`
	MarketValue decimal.Decimal `json:"market_value"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
	Realized    decimal.Decimal `json:"realized"`
}

// Closed reports whether the position has been fully liquidated
func (h Holding) Closed() bool {
	return h.Quantity.IsZero()
}

// UnrealizedPL returns market value minus cost basis
func (h Holding) UnrealizedPL() decimal.Decimal {
	return h.MarketValue.Sub(h.CostBasis)
}

// Round returns a copy with every amount rounded half away from zero
func (h Holding) Round(places int32) Holding {
	return Holding{
		Symbol:      h.Symbol,
		Quantity:    h.Quantity.Round(places),
		AvgCost:     h.AvgCost.Round(places),
		MarketPrice: h.MarketPrice.Round(places),
		MarketValue: h.MarketValue.Round(places),
		CostBasis:   h.CostBasis.Round(places),
		Realized:    h.Realized.Round(places),
	}
}

// PortfolioSummary aggregates the holdings of one portfolio
type PortfolioSummary struct {
	Holdings      []Holding       `json:"holdings"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalValue    decimal.Decimal `json:"total_value"`
	UnrealizedPL  decimal.Decimal `json:"unrealized_pl"`
	TotalRealized decimal.Decimal `json:"total_realized"`
}

// Round returns a presentation copy. Totals are rounded from the exact
// values rather than re-summed from rounded holdings.
func (s *PortfolioSummary) Round(places int32) *PortfolioSummary {
	holdings := make([]Holding, len(s.Holdings))
	for i, h := range s.Holdings {
		holdings[i] = h.Round(places)
	}
	return &PortfolioSummary{
		Holdings:      holdings,
		TotalCost:     s.TotalCost.Round(places),
		TotalValue:    s.TotalValue.Round(places),
		UnrealizedPL:  s.UnrealizedPL.Round(places),
		TotalRealized: s.TotalRealized.Round(places),
	}
}
