package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-service/internal/models"
)

type fakeSource struct {
	snapshot models.PriceSnapshot
	err      error
	getErr   error
	calls    int
}

func (f *fakeSource) Snapshot(ctx context.Context) (models.PriceSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func (f *fakeSource) lookup(symbol string) (*models.MarketPrice, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.snapshot.Price(symbol)
	if !ok {
		return nil, ErrCacheMiss
	}
	return &models.MarketPrice{Symbol: symbol, Price: p}, nil
}

func (f *fakeSource) Get(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	return f.lookup(symbol)
}

func (f *fakeSource) GetMarketPrice(ctx context.Context, symbol string) (*models.MarketPrice, error) {
	return f.lookup(symbol)
}

func TestLayeredPriceSource(t *testing.T) {
	ctx := context.Background()
	dbPrices := models.PriceSnapshot{"AAPL": decimal.NewFromInt(150)}

	t.Run("uses cache when populated", func(t *testing.T) {
		primary := &fakeSource{snapshot: models.PriceSnapshot{"AAPL": decimal.NewFromInt(151)}}
		fallback := &fakeSource{snapshot: dbPrices}

		snapshot, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Snapshot(ctx)
		require.NoError(t, err)
		p, _ := snapshot.Price("AAPL")
		assert.True(t, decimal.NewFromInt(151).Equal(p))
		assert.Zero(t, fallback.calls)
	})

	t.Run("falls back when cache is empty", func(t *testing.T) {
		primary := &fakeSource{snapshot: models.PriceSnapshot{}}
		fallback := &fakeSource{snapshot: dbPrices}

		snapshot, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, dbPrices, snapshot)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("falls back when cache errors", func(t *testing.T) {
		primary := &fakeSource{err: errors.New("connection refused")}
		fallback := &fakeSource{snapshot: dbPrices}

		snapshot, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, dbPrices, snapshot)
	})

	t.Run("nil primary reads fallback only", func(t *testing.T) {
		fallback := &fakeSource{err: errors.New("db down")}

		_, err := NewLayeredPriceSource(nil, fallback, zerolog.Nop()).Snapshot(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestLayeredPriceSource_Quote(t *testing.T) {
	ctx := context.Background()
	dbPrices := models.PriceSnapshot{"AAPL": decimal.NewFromInt(150), "MSFT": decimal.NewFromInt(300)}

	t.Run("cache hit skips the database", func(t *testing.T) {
		primary := &fakeSource{snapshot: models.PriceSnapshot{"AAPL": decimal.NewFromInt(151)}}
		fallback := &fakeSource{snapshot: dbPrices}

		p, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Quote(ctx, "AAPL")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(151).Equal(p.Price))
		assert.Zero(t, fallback.calls)
	})

	t.Run("miss reads the database", func(t *testing.T) {
		primary := &fakeSource{snapshot: models.PriceSnapshot{"AAPL": decimal.NewFromInt(151)}}
		fallback := &fakeSource{snapshot: dbPrices}

		p, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Quote(ctx, "MSFT")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(300).Equal(p.Price))
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("cache error reads the database", func(t *testing.T) {
		primary := &fakeSource{getErr: errors.New("connection refused")}
		fallback := &fakeSource{snapshot: dbPrices}

		p, err := NewLayeredPriceSource(primary, fallback, zerolog.Nop()).Quote(ctx, "AAPL")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(150).Equal(p.Price))
	})

	t.Run("nil primary", func(t *testing.T) {
		fallback := &fakeSource{getErr: errors.New("db down")}

		_, err := NewLayeredPriceSource(nil, fallback, zerolog.Nop()).Quote(ctx, "AAPL")
		assert.EqualError(t, err, "db down")
	})
}
