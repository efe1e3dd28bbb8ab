package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of a ledger entry
type TransactionType string

// Transaction type constants
const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// ErrInvalidTransaction is returned when a transaction fails validation
var ErrInvalidTransaction = errors.New("invalid transaction")

// MaxScale is the number of decimal places the ledger stores for quantity
// and price
const MaxScale = 8

// ParseTransactionType normalizes s and returns the matching type
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TransactionTypeBuy, TransactionTypeSell:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, s)
	}
}

// Valid reports whether t is BUY or SELL
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Transaction is an immutable ledger entry owned by one portfolio.
// CreatedAt is the only ordering key; records sharing a timestamp are
// ordered by ID.
type Transaction struct {
	ID          int             `json:"id"`
	PortfolioID int             `json:"portfolio_id"`
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Type        TransactionType `json:"type"`
	ExternalID  string          `json:"external_id,omitempty"`
	Source      string          `json:"source,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction builds a validated transaction with a normalized symbol.
// The zero CreatedAt is left for the store to fill.
func NewTransaction(portfolioID int, symbol string, txType string, quantity, price decimal.Decimal) (*Transaction, error) {
	typ, err := ParseTransactionType(txType)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		PortfolioID: portfolioID,
		Symbol:      NormalizeSymbol(symbol),
		Quantity:    quantity,
		Price:       price,
		Type:        typ,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the invariants a ledger entry must satisfy
func (t *Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, t.Type)
	}
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidTransaction)
	}
	if t.Symbol != NormalizeSymbol(t.Symbol) {
		return fmt.Errorf("%w: symbol %q is not normalized", ErrInvalidTransaction, t.Symbol)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidTransaction, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidTransaction, t.Price)
	}
	if !fitsScale(t.Quantity) {
		return fmt.Errorf("%w: quantity %s has more than %d decimal places", ErrInvalidTransaction, t.Quantity, MaxScale)
	}
	if !fitsScale(t.Price) {
		return fmt.Errorf("%w: price %s has more than %d decimal places", ErrInvalidTransaction, t.Price, MaxScale)
	}
	return nil
}

// fitsScale ignores trailing zeros, so 1.5000000000 is accepted
func fitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MaxScale))
}

// Notional returns quantity * price
func (t *Transaction) Notional() decimal.Decimal {
	return t.Quantity.Mul(t.Price)
}

// NormalizeSymbol upper-cases and trims a ticker
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
