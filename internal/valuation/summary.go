package valuation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// ClosedPositionPolicy decides whether fully liquidated symbols are listed
type ClosedPositionPolicy int

const (
	// IncludeClosed keeps zero-quantity holdings so their realized P&L
	// stays visible
	IncludeClosed ClosedPositionPolicy = iota
	// OmitClosed drops zero-quantity holdings from the summary
	OmitClosed
)

// Options configures a valuation run
type Options struct {
	Oversell OversellPolicy
	Closed   ClosedPositionPolicy
}

// SymbolHistory is one symbol's ordered slice of the ledger
type SymbolHistory struct {
	Symbol       string
	Transactions []*models.Transaction
}

// Order returns a copy of txs sorted by CreatedAt, with ID breaking ties.
// Equal keys keep their input order.
func Order(txs []*models.Transaction) []*models.Transaction {
	ordered := make([]*models.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return ordered
}

// GroupBySymbol splits an ordered ledger by symbol, in first-seen order
func GroupBySymbol(txs []*models.Transaction) []SymbolHistory {
	index := make(map[string]int)
	var groups []SymbolHistory
	for _, t := range txs {
		i, ok := index[t.Symbol]
		if !ok {
			i = len(groups)
			index[t.Symbol] = i
			groups = append(groups, SymbolHistory{Symbol: t.Symbol})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}
	return groups
}

// AssembleHolding prices a replayed position. A symbol absent from the
// snapshot is valued at zero.
func AssembleHolding(symbol string, pos Position, snapshot models.PriceSnapshot) models.Holding {
	price, ok := snapshot.Price(symbol)
	if !ok {
		price = decimal.Zero
	}

	costBasis := pos.CostBasis
	if pos.Quantity.IsZero() {
		costBasis = decimal.Zero
	}

	return models.Holding{
		Symbol:      symbol,
		Quantity:    pos.Quantity,
		AvgCost:     pos.AvgCost,
		MarketPrice: price,
		MarketValue: pos.Quantity.Mul(price),
		CostBasis:   costBasis,
		Realized:    pos.Realized,
	}
}

// Summarize totals holdings. The holdings slice is never nil.
func Summarize(holdings []models.Holding) *models.PortfolioSummary {
	if holdings == nil {
		holdings = []models.Holding{}
	}

	summary := &models.PortfolioSummary{
		Holdings:      holdings,
		TotalCost:     decimal.Zero,
		TotalValue:    decimal.Zero,
		TotalRealized: decimal.Zero,
	}
	for _, h := range holdings {
		summary.TotalCost = summary.TotalCost.Add(h.CostBasis)
		summary.TotalValue = summary.TotalValue.Add(h.MarketValue)
		summary.TotalRealized = summary.TotalRealized.Add(h.Realized)
	}
	summary.UnrealizedPL = summary.TotalValue.Sub(summary.TotalCost)
	return summary
}

// Compute values a ledger against a price snapshot. It does not modify
// txs or snapshot.
func Compute(txs []*models.Transaction, snapshot models.PriceSnapshot, opts Options) (*models.PortfolioSummary, error) {
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", t.ID, err)
		}
	}

	groups := GroupBySymbol(Order(txs))
	holdings := make([]models.Holding, 0, len(groups))
	for _, g := range groups {
		pos, err := Replay(g.Transactions, opts.Oversell)
		if err != nil {
			return nil, err
		}
		h := AssembleHolding(g.Symbol, pos, snapshot)
		if opts.Closed == OmitClosed && h.Closed() {
			continue
		}
		holdings = append(holdings, h)
	}

	return Summarize(holdings), nil
}
