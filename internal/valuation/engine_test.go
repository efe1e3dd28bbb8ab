package valuation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-service/internal/models"
)

type mockLedger struct {
	portfolios map[int][]*models.Transaction
	err        error
	loadCalls  int
	mu         sync.Mutex
}

func (m *mockLedger) PortfolioExists(ctx context.Context, portfolioID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.portfolios[portfolioID]
	return ok, nil
}

func (m *mockLedger) GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()
	return m.portfolios[portfolioID], nil
}

type staticPrices struct {
	snapshot models.PriceSnapshot
	err      error
}

func (s staticPrices) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	return s.snapshot, s.err
}

func TestEngineComputeSummary(t *testing.T) {
	ctx := context.Background()
	ledger := &mockLedger{portfolios: map[int][]*models.Transaction{
		1: {buy(1, "AAPL", "10", "100"), buy(2, "GOOGL", "5", "2000")},
		2: {},
	}}
	prices := staticPrices{snapshot: models.PriceSnapshot{"AAPL": dec("150"), "GOOGL": dec("2200")}}
	engine := NewEngine(ledger, prices, Options{})

	t.Run("values a portfolio", func(t *testing.T) {
		summary, err := engine.ComputeSummary(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, summary.Holdings, 2)
		assert.True(t, dec("12500").Equal(summary.TotalValue))
	})

	t.Run("empty portfolio", func(t *testing.T) {
		summary, err := engine.ComputeSummary(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, summary.Holdings)
		assert.True(t, summary.TotalValue.IsZero())
	})

	t.Run("unknown portfolio is not found", func(t *testing.T) {
		_, err := engine.ComputeSummary(ctx, 99)
		assert.ErrorIs(t, err, ErrPortfolioNotFound)
	})

	t.Run("ledger errors propagate", func(t *testing.T) {
		boom := errors.New("connection reset")
		e := NewEngine(&mockLedger{err: boom}, prices, Options{})
		_, err := e.ComputeSummary(ctx, 1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("price source errors propagate", func(t *testing.T) {
		boom := errors.New("redis down")
		e := NewEngine(ledger, staticPrices{err: boom}, Options{})
		_, err := e.ComputeSummary(ctx, 1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("concurrent calls agree", func(t *testing.T) {
		want, err := engine.ComputeSummary(ctx, 1)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]*models.PortfolioSummary, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = engine.ComputeSummary(ctx, 1)
			}(i)
		}
		wg.Wait()

		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}
