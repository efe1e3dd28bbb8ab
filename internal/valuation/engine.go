// Package valuation derives holdings and portfolio totals from a
// transaction ledger and a price snapshot. Everything here is a pure
// function of its inputs; the Engine only adds the loading step.
package valuation

import (
	"context"
	"errors"
	"fmt"

	"github.com/trogers1052/portfolio-service/internal/models"
)

// ErrPortfolioNotFound is returned when the requested portfolio does not exist
var ErrPortfolioNotFound = errors.New("portfolio not found")

// Ledger loads portfolios and their transactions
type Ledger interface {
	PortfolioExists(ctx context.Context, portfolioID int) (bool, error)
	GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error)
}

// PriceSource returns the latest price snapshot
type PriceSource interface {
	Snapshot(ctx context.Context) (models.PriceSnapshot, error)
}

// Engine loads a portfolio's inputs and values them. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	ledger Ledger
	prices PriceSource
	opts   Options
}

// NewEngine creates a new Engine
func NewEngine(ledger Ledger, prices PriceSource, opts Options) *Engine {
	return &Engine{
		ledger: ledger,
		prices: prices,
		opts:   opts,
	}
}

// ComputeSummary values the portfolio identified by portfolioID.
// Ownership must already be checked by the caller.
func (e *Engine) ComputeSummary(ctx context.Context, portfolioID int) (*models.PortfolioSummary, error) {
	exists, err := e.ledger.PortfolioExists(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up portfolio %d: %w", portfolioID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrPortfolioNotFound, portfolioID)
	}

	txs, err := e.ledger.GetTransactionsByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	snapshot, err := e.prices.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price snapshot: %w", err)
	}

	return Compute(txs, snapshot, e.opts)
}
