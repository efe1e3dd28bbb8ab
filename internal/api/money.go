package api

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

const displayPlaces = 2

// formatMoney renders amount in currency, e.g. "$1,600.00". Unknown
// currencies fall back to the plain amount followed by the code.
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(displayPlaces) + " " + currency
	}

	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// summaryDisplay holds the totals formatted for people
type summaryDisplay struct {
	TotalCost     string `json:"total_cost"`
	TotalValue    string `json:"total_value"`
	UnrealizedPL  string `json:"unrealized_pl"`
	TotalRealized string `json:"total_realized"`
}

type summaryResponse struct {
	Portfolio *models.Portfolio `json:"portfolio"`
	*models.PortfolioSummary
	Display summaryDisplay `json:"display"`
}

// newSummaryResponse rounds the summary for presentation. The engine
// never rounds, so this is the only place amounts lose precision.
func newSummaryResponse(p *models.Portfolio, s *models.PortfolioSummary) summaryResponse {
	rounded := s.Round(displayPlaces)
	return summaryResponse{
		Portfolio:        p,
		PortfolioSummary: rounded,
		Display: summaryDisplay{
			TotalCost:     formatMoney(rounded.TotalCost, p.Currency),
			TotalValue:    formatMoney(rounded.TotalValue, p.Currency),
			UnrealizedPL:  formatMoney(rounded.UnrealizedPL, p.Currency),
			TotalRealized: formatMoney(rounded.TotalRealized, p.Currency),
		},
	}
}
