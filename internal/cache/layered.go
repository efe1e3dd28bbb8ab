package cache

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// Primary is the fast price store, normally a *PriceCache
type Primary interface {
	Snapshot(ctx context.Context) (models.PriceSnapshot, error)
	Get(ctx context.Context, symbol string) (*models.MarketPrice, error)
}

// Fallback is the durable price store
type Fallback interface {
	Snapshot(ctx context.Context) (models.PriceSnapshot, error)
	GetMarketPrice(ctx context.Context, symbol string) (*models.MarketPrice, error)
}

// LayeredPriceSource reads prices from the cache and falls back to the
// database when the cache is empty or unavailable.
type LayeredPriceSource struct {
	primary  Primary
	fallback Fallback
	log      zerolog.Logger
}

// NewLayeredPriceSource builds a price source over primary and fallback.
// A nil primary makes every read go to the fallback.
func NewLayeredPriceSource(primary Primary, fallback Fallback, log zerolog.Logger) *LayeredPriceSource {
	return &LayeredPriceSource{
		primary:  primary,
		fallback: fallback,
		log:      log.With().Str("component", "price_source").Logger(),
	}
}

// Snapshot implements valuation.PriceSource
func (s *LayeredPriceSource) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	if s.primary != nil {
		snapshot, err := s.primary.Snapshot(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("Price cache unavailable, reading from database")
		case len(snapshot) > 0:
			return snapshot, nil
		default:
			s.log.Debug().Msg("Price cache empty, reading from database")
		}
	}
	return s.fallback.Snapshot(ctx)
}

// Quote returns the latest price for one symbol
func (s *LayeredPriceSource) Quote(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	if s.primary != nil {
		p, err := s.primary.Get(ctx, symbol)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, ErrCacheMiss):
			s.log.Debug().Str("symbol", symbol).Msg("Price not cached, reading from database")
		default:
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache unavailable, reading from database")
		}
	}
	return s.fallback.GetMarketPrice(ctx, symbol)
}
