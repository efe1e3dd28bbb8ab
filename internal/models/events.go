package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventPriceUpdated        = "PRICE_UPDATED"
	EventAlertTriggered      = "ALERT_TRIGGERED"
	EventTransactionRecorded = "TRANSACTION_RECORDED"
	EventTradeDetected       = "TRADE_DETECTED"
)

// PriceEvent is published after the simulator moves a quote
type PriceEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	DayHigh   decimal.Decimal `json:"day_high"`
	DayLow    decimal.Decimal `json:"day_low"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// AlertEvent is published when an alert flips to triggered
type AlertEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Alert     *Alert          `json:"alert"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionEvent is published after a transaction is appended to a ledger
type TransactionEvent struct {
	EventID     string       `json:"event_id"`
	EventType   string       `json:"event_type"`
	Transaction *Transaction `json:"transaction"`
	Timestamp   time.Time    `json:"timestamp"`
}

// TradeEvent is an inbound broker fill destined for a portfolio ledger
type TradeEvent struct {
	EventType string         `json:"event_type"`
	Source    string         `json:"source"`
	Timestamp string         `json:"timestamp"`
	Data      TradeEventData `json:"data"`
}

// TradeEventData carries the fill details. Numbers arrive as strings.
type TradeEventData struct {
	OrderID      string  `json:"order_id"`
	PortfolioID  int     `json:"portfolio_id"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	Quantity     string  `json:"quantity"`
	AveragePrice string  `json:"average_price"`
	ExecutedAt   *string `json:"executed_at,omitempty"`
}

// NewPriceEvent builds a PRICE_UPDATED event from a stock's current quote
func NewPriceEvent(s *Stock) *PriceEvent {
	return &PriceEvent{
		EventID:   uuid.NewString(),
		EventType: EventPriceUpdated,
		Symbol:    s.Symbol,
		Price:     s.CurrentPrice,
		DayHigh:   s.DayHigh,
		DayLow:    s.DayLow,
		Volume:    s.Volume,
		Timestamp: s.LastUpdated,
	}
}

// NewAlertEvent builds an ALERT_TRIGGERED event
func NewAlertEvent(a *Alert, price decimal.Decimal, at time.Time) *AlertEvent {
	return &AlertEvent{
		EventID:   uuid.NewString(),
		EventType: EventAlertTriggered,
		Alert:     a,
		Price:     price,
		Timestamp: at,
	}
}

// NewTransactionEvent builds a TRANSACTION_RECORDED event
func NewTransactionEvent(t *Transaction) *TransactionEvent {
	return &TransactionEvent{
		EventID:     uuid.NewString(),
		EventType:   EventTransactionRecorded,
		Transaction: t,
		Timestamp:   time.Now(),
	}
}
