package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// StockStore is the persistence the updater writes quotes to
type StockStore interface {
	GetActiveStocks(ctx context.Context) ([]*models.Stock, error)
	UpdateStockQuote(ctx context.Context, s *models.Stock) error
	UpsertMarketPrice(ctx context.Context, p *models.MarketPrice) error
}

// PriceCache receives the latest prices after each sweep
type PriceCache interface {
	SetMany(ctx context.Context, prices []*models.MarketPrice) error
}

// PricePublisher announces each new quote
type PricePublisher interface {
	PublishPriceUpdated(ctx context.Context, event *models.PriceEvent) error
}

// Updater runs one simulation sweep over the active catalog
type Updater struct {
	store     StockStore
	cache     PriceCache
	publisher PricePublisher
	sim       *Simulator
	log       zerolog.Logger
}

// NewUpdater creates an updater. cache and publisher may be nil.
func NewUpdater(store StockStore, cache PriceCache, publisher PricePublisher, sim *Simulator, log zerolog.Logger) *Updater {
	return &Updater{
		store:     store,
		cache:     cache,
		publisher: publisher,
		sim:       sim,
		log:       log.With().Str("component", "price_updater").Logger(),
	}
}

// Run moves every active stock once. A failure on one stock is logged and
// the sweep continues. It returns the number of stocks updated.
func (u *Updater) Run(ctx context.Context) (int, error) {
	stocks, err := u.store.GetActiveStocks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active stocks: %w", err)
	}

	start := time.Now()
	prices := make([]*models.MarketPrice, 0, len(stocks))
	for _, stock := range stocks {
		if err := ctx.Err(); err != nil {
			return len(prices), err
		}

		next := u.sim.Step(stock)
		if err := u.store.UpdateStockQuote(ctx, next); err != nil {
			u.log.Error().Err(err).Str("symbol", next.Symbol).Msg("Failed to update quote")
			continue
		}

		price := &models.MarketPrice{Symbol: next.Symbol, Price: next.CurrentPrice, Timestamp: next.LastUpdated}
		if err := u.store.UpsertMarketPrice(ctx, price); err != nil {
			u.log.Error().Err(err).Str("symbol", next.Symbol).Msg("Failed to store market price")
			continue
		}
		prices = append(prices, price)

		if u.publisher != nil {
			if err := u.publisher.PublishPriceUpdated(ctx, models.NewPriceEvent(next)); err != nil {
				u.log.Warn().Err(err).Str("symbol", next.Symbol).Msg("Failed to publish price event")
			}
		}
	}

	if u.cache != nil {
		if err := u.cache.SetMany(ctx, prices); err != nil {
			u.log.Warn().Err(err).Msg("Failed to refresh price cache")
		}
	}

	u.log.Info().
		Int("updated", len(prices)).
		Int("stocks", len(stocks)).
		Dur("elapsed", time.Since(start)).
		Msg("Updated stock prices")
	return len(prices), nil
}
