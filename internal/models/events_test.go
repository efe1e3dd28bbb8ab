package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceEvent(t *testing.T) {
	at := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	s := &Stock{Symbol: "AAPL", CurrentPrice: decimal.NewFromFloat(178.5), DayHigh: decimal.NewFromInt(180), DayLow: decimal.NewFromInt(176), Volume: 10, LastUpdated: at}

	e := NewPriceEvent(s)

	_, err := uuid.Parse(e.EventID)
	require.NoError(t, err)
	assert.Equal(t, EventPriceUpdated, e.EventType)
	assert.Equal(t, "AAPL", e.Symbol)
	assert.True(t, s.CurrentPrice.Equal(e.Price))
	assert.Equal(t, at, e.Timestamp)
}

func TestNewAlertAndTransactionEvents(t *testing.T) {
	a := &Alert{ID: 1, Symbol: "AAPL"}
	ae := NewAlertEvent(a, decimal.NewFromInt(201), time.Now())
	assert.Equal(t, EventAlertTriggered, ae.EventType)
	assert.Same(t, a, ae.Alert)

	tx := &Transaction{ID: 2}
	te := NewTransactionEvent(tx)
	assert.Equal(t, EventTransactionRecorded, te.EventType)
	assert.NotEqual(t, ae.EventID, te.EventID)
	assert.False(t, te.Timestamp.IsZero())
}
