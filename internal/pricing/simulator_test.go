package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/portfolio-service/internal/models"
)

func createTestStock(symbol string, price float64) *models.Stock {
	p := decimal.NewFromFloat(price)
	return &models.Stock{
		Symbol:       symbol,
		Name:         symbol + " Inc.",
		CurrentPrice: p,
		DayHigh:      p,
		DayLow:       p,
		Volume:       1,
		Active:       true,
	}
}

func TestSimulatorStep_StaysInBand(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(42)))
	stock := createTestStock("AAPL", 178.50)
	tolerance := decimal.NewFromFloat(0.005)

	for i := 0; i < 1000; i++ {
		next := sim.Step(stock)

		lower := stock.CurrentPrice.Mul(decimal.NewFromFloat(0.98)).Sub(tolerance)
		upper := stock.CurrentPrice.Mul(decimal.NewFromFloat(1.02)).Add(tolerance)
		require.True(t, next.CurrentPrice.GreaterThanOrEqual(lower), "price %s below band", next.CurrentPrice)
		require.True(t, next.CurrentPrice.LessThanOrEqual(upper), "price %s above band", next.CurrentPrice)

		require.True(t, next.DayHigh.GreaterThanOrEqual(next.CurrentPrice))
		require.True(t, next.DayLow.LessThanOrEqual(next.CurrentPrice))
		require.True(t, next.DayHigh.GreaterThanOrEqual(stock.DayHigh))
		require.True(t, next.DayLow.LessThanOrEqual(stock.DayLow))

		require.GreaterOrEqual(t, next.Volume, int64(1_000_000))
		require.Less(t, next.Volume, int64(100_000_000))

		require.True(t, next.CurrentPrice.Equal(next.CurrentPrice.Round(2)))
		stock = next
	}
}

func TestSimulatorStep_DoesNotMutateInput(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(1)))
	stock := createTestStock("MSFT", 378.25)

	next := sim.Step(stock)

	assert.True(t, decimal.NewFromFloat(378.25).Equal(stock.CurrentPrice))
	assert.Equal(t, int64(1), stock.Volume)
	assert.Equal(t, "MSFT", next.Symbol)
	assert.Equal(t, stock.Name, next.Name)
}

func TestSimulatorStep_InitialisesEmptyDayRange(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(7)))
	stock := &models.Stock{Symbol: "NEW", CurrentPrice: decimal.NewFromInt(100)}

	next := sim.Step(stock)

	assert.True(t, next.DayHigh.Equal(next.CurrentPrice))
	assert.True(t, next.DayLow.Equal(next.CurrentPrice))
}

func TestSimulatorStep_Deterministic(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	a := NewSimulator(rand.New(rand.NewSource(99)))
	b := NewSimulator(rand.New(rand.NewSource(99)))
	a.now = func() time.Time { return fixed }
	b.now = func() time.Time { return fixed }

	stock := createTestStock("NVDA", 878.25)
	assert.Equal(t, a.Step(stock), b.Step(stock))
	assert.Equal(t, fixed, a.Step(stock).LastUpdated)
}

func TestCatalog(t *testing.T) {
	stocks := Catalog()
	require.Len(t, stocks, 20)

	seen := map[string]bool{}
	for _, s := range stocks {
		assert.False(t, seen[s.Symbol], "duplicate symbol %s", s.Symbol)
		seen[s.Symbol] = true
		assert.True(t, s.Active)
		assert.True(t, s.CurrentPrice.IsPositive(), s.Symbol)
		assert.NotEmpty(t, s.Sector, s.Symbol)
	}

	assert.True(t, decimal.RequireFromString("178.50").Equal(stocks[0].CurrentPrice))

	stocks[0].CurrentPrice = decimal.Zero
	assert.True(t, Catalog()[0].CurrentPrice.IsPositive(), "each call returns fresh values")
}
