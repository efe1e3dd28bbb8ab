package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// CatalogStore is the persistence the seeder fills
type CatalogStore interface {
	SeedStocks(ctx context.Context, stocks []*models.Stock) (int, error)
	UpsertMarketPrice(ctx context.Context, p *models.MarketPrice) error
}

// Seeder loads the default catalog into an empty database
type Seeder struct {
	store CatalogStore
	cache PriceCache
	log   zerolog.Logger
}

// NewSeeder creates a seeder. cache may be nil.
func NewSeeder(store CatalogStore, cache PriceCache, log zerolog.Logger) *Seeder {
	return &Seeder{
		store: store,
		cache: cache,
		log:   log.With().Str("component", "seeder").Logger(),
	}
}

// Seed inserts the catalog and an initial market price per stock. It does
// nothing when stocks already exist.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	stocks := Catalog()
	n, err := s.store.SeedStocks(ctx, stocks)
	if err != nil {
		return 0, fmt.Errorf("failed to seed stocks: %w", err)
	}
	if n == 0 {
		s.log.Info().Msg("Stock data already exists")
		return 0, nil
	}

	prices := make([]*models.MarketPrice, 0, len(stocks))
	for _, stock := range stocks {
		price := &models.MarketPrice{Symbol: stock.Symbol, Price: stock.CurrentPrice, Timestamp: stock.LastUpdated}
		if err := s.store.UpsertMarketPrice(ctx, price); err != nil {
			return n, fmt.Errorf("failed to seed price for %s: %w", stock.Symbol, err)
		}
		prices = append(prices, price)
	}

	if s.cache != nil {
		if err := s.cache.SetMany(ctx, prices); err != nil {
			s.log.Warn().Err(err).Msg("Failed to warm price cache")
		}
	}

	s.log.Info().Int("stocks", n).Msg("Seeded stock catalog")
	return n, nil
}
