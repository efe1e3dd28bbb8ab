// Package pricing simulates market data for the stock catalog and pushes
// each new quote to the database, the price cache and Kafka.
package pricing

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
)

const (
	maxChange   = 0.04 // full width of the change band, centred on zero
	minVolume   = 1_000_000
	volumeRange = 99_000_000
	pricePlaces = 2
)

// Simulator moves quotes by a random walk. It is safe for concurrent use.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator creates a simulator drawing from rng. A nil rng is seeded
// from the clock.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng, now: time.Now}
}

// Step returns a copy of stock with a new quote. The price moves by a
// factor in [-2%, +2%), the day range widens to include it and volume is
// drawn from [1M, 100M). Prices are rounded to cents.
func (s *Simulator) Step(stock *models.Stock) *models.Stock {
	s.mu.Lock()
	change := (s.rng.Float64() - 0.5) * maxChange
	volume := s.rng.Int63n(volumeRange) + minVolume
	s.mu.Unlock()

	price := stock.CurrentPrice.Mul(decimal.NewFromFloat(1 + change))

	high := stock.DayHigh
	if high.IsZero() || price.GreaterThan(high) {
		high = price
	}
	low := stock.DayLow
	if low.IsZero() || price.LessThan(low) {
		low = price
	}

	next := *stock
	next.CurrentPrice = price.Round(pricePlaces)
	next.DayHigh = high.Round(pricePlaces)
	next.DayLow = low.Round(pricePlaces)
	next.Volume = volume
	next.LastUpdated = s.now()
	return &next
}
