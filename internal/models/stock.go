package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock represents a tradable symbol in the catalog along with its
// simulated quote
type Stock struct {
	ID               string          `json:"id"`
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Sector           string          `json:"sector,omitempty"`
	Industry         string          `json:"industry,omitempty"`
	Description      string          `json:"description,omitempty"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	PreviousClose    decimal.Decimal `json:"previous_close"`
	DayHigh          decimal.Decimal `json:"day_high"`
	DayLow           decimal.Decimal `json:"day_low"`
	Volume           int64           `json:"volume"`
	MarketCap        int64           `json:"market_cap,omitempty"`
	PERatio          decimal.Decimal `json:"pe_ratio,omitempty"`
	DividendYield    decimal.Decimal `json:"dividend_yield,omitempty"`
	FiftyTwoWeekHigh decimal.Decimal `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  decimal.Decimal `json:"fifty_two_week_low,omitempty"`
	Active           bool            `json:"active"`
	LastUpdated      time.Time       `json:"last_updated"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StockQuery filters the stock catalog listing
type StockQuery struct {
	Search string
	Sector string
	SortBy string
	Desc   bool
	Page   int
	Limit  int
}

// StockPage is one page of a catalog listing
type StockPage struct {
	Stocks      []*Stock `json:"stocks"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
	TotalStocks int      `json:"total_stocks"`
}
