package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AlertCondition is the comparison an alert applies to the latest price
type AlertCondition string

// Alert condition constants
const (
	ConditionGreaterThan AlertCondition = "GT"
	ConditionLessThan    AlertCondition = "LT"
)

// ParseAlertCondition normalizes s and returns the matching condition
func ParseAlertCondition(s string) (AlertCondition, error) {
	switch c := AlertCondition(strings.ToUpper(strings.TrimSpace(s))); c {
	case ConditionGreaterThan, ConditionLessThan:
		return c, nil
	default:
		return "", fmt.Errorf("invalid alert condition: %q", s)
	}
}

// Alert is a one-shot price threshold owned by a user. Once Triggered it
// never resets.
type Alert struct {
	ID          int             `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Symbol      string          `json:"symbol"`
	Condition   AlertCondition  `json:"condition"`
	Threshold   decimal.Decimal `json:"threshold"`
	Triggered   bool            `json:"triggered"`
	TriggeredAt *time.Time      `json:"triggered_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Evaluate reports whether price satisfies the alert's condition
func (a *Alert) Evaluate(price decimal.Decimal) bool {
	switch a.Condition {
	case ConditionGreaterThan:
		return price.GreaterThan(a.Threshold)
	case ConditionLessThan:
		return price.LessThan(a.Threshold)
	default:
		return false
	}
}
