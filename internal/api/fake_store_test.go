package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/trogers1052/portfolio-service/internal/database"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// fakeStore is an in-memory Store that also serves as the valuation ledger
type fakeStore struct {
	mu           sync.Mutex
	portfolios   map[int]*models.Portfolio
	transactions []*models.Transaction
	prices       map[string]*models.MarketPrice
	stocks       []*models.Stock
	alerts       map[int]*models.Alert
	nextID       int
	pingErr      error
	lastQuery    models.StockQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		portfolios: map[int]*models.Portfolio{},
		prices:     map[string]*models.MarketPrice{},
		alerts:     map[int]*models.Alert{},
		nextID:     1,
	}
}

func (f *fakeStore) id() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) CreatePortfolio(ctx context.Context, p *models.Portfolio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.id()
	p.Currency = models.NormalizeCurrency(p.Currency)
	p.CreatedAt = time.Now()
	f.portfolios[p.ID] = p
	return nil
}

func (f *fakeStore) GetPortfolioByID(ctx context.Context, id int) (*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("portfolio %d: %w", id, database.ErrNotFound)
	}
	return p, nil
}

func (f *fakeStore) PortfolioExists(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.portfolios[id]
	return ok, nil
}

func (f *fakeStore) GetPortfoliosByOwner(ctx context.Context, ownerID string) ([]*models.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Portfolio{}
	for _, p := range f.portfolios {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) DeletePortfolio(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.portfolios[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.portfolios, id)
	return nil
}

func (f *fakeStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeStore) GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Transaction{}
	for _, t := range f.transactions {
		if t.PortfolioID == portfolioID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) GetMarketPrice(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prices[models.NormalizeSymbol(symbol)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetAllMarketPrices(ctx context.Context) ([]*models.MarketPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.MarketPrice{}
	for _, p := range f.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (f *fakeStore) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	prices, _ := f.GetAllMarketPrices(ctx)
	return models.SnapshotFromPrices(prices), nil
}

func (f *fakeStore) GetStock(ctx context.Context, symbol string) (*models.Stock, error) {
	for _, s := range f.stocks {
		if s.Symbol == models.NormalizeSymbol(symbol) {
			return s, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) SearchStocks(ctx context.Context, q models.StockQuery) (*models.StockPage, error) {
	f.lastQuery = q
	return &models.StockPage{Stocks: f.stocks, CurrentPage: q.Page, TotalPages: 1, TotalStocks: len(f.stocks)}, nil
}

func (f *fakeStore) GetSectors(ctx context.Context) ([]string, error) {
	return []string{"Financial Services", "Technology"}, nil
}

func (f *fakeStore) CreateAlert(ctx context.Context, a *models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id()
	f.alerts[a.ID] = a
	return nil
}

func (f *fakeStore) GetAlertByID(ctx context.Context, id int) (*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) GetAlertsByOwner(ctx context.Context, ownerID string) ([]*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Alert{}
	for _, a := range f.alerts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteAlert(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.alerts[id]; !ok {
		return errors.New("delete of missing alert")
	}
	delete(f.alerts, id)
	return nil
}
