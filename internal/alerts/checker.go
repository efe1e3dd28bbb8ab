// Package alerts evaluates user price alerts against the latest prices.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/models"
	"github.com/trogers1052/portfolio-service/internal/valuation"
)

// Store is the alert persistence the checker needs
type Store interface {
	GetUntriggeredAlerts(ctx context.Context) ([]*models.Alert, error)
	MarkAlertTriggered(ctx context.Context, id int, at time.Time) (bool, error)
}

// Publisher announces triggered alerts
type Publisher interface {
	PublishAlertTriggered(ctx context.Context, event *models.AlertEvent) error
}

// Checker sweeps untriggered alerts and fires the ones whose condition holds
type Checker struct {
	store     Store
	prices    valuation.PriceSource
	publisher Publisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewChecker creates a checker. publisher may be nil.
func NewChecker(store Store, prices valuation.PriceSource, publisher Publisher, log zerolog.Logger) *Checker {
	return &Checker{
		store:     store,
		prices:    prices,
		publisher: publisher,
		log:       log.With().Str("component", "alert_checker").Logger(),
		now:       time.Now,
	}
}

// Run evaluates every untriggered alert once and returns those it fired.
// Alerts on symbols without a price are skipped.
func (c *Checker) Run(ctx context.Context) ([]*models.Alert, error) {
	pending, err := c.store.GetUntriggeredAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	snapshot, err := c.prices.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	var fired []*models.Alert
	for _, alert := range pending {
		price, ok := snapshot.Price(alert.Symbol)
		if !ok || !alert.Evaluate(price) {
			continue
		}

		at := c.now()
		updated, err := c.store.MarkAlertTriggered(ctx, alert.ID, at)
		if err != nil {
			c.log.Error().Err(err).Int("alert_id", alert.ID).Msg("Failed to mark alert triggered")
			continue
		}
		if !updated {
			// another sweep got there first
			continue
		}

		alert.Triggered = true
		alert.TriggeredAt = &at
		fired = append(fired, alert)

		c.log.Info().
			Int("alert_id", alert.ID).
			Str("owner_id", alert.OwnerID).
			Str("symbol", alert.Symbol).
			Str("condition", string(alert.Condition)).
			Str("threshold", alert.Threshold.String()).
			Str("price", price.String()).
			Msg("Alert triggered")

		if c.publisher != nil {
			if err := c.publisher.PublishAlertTriggered(ctx, models.NewAlertEvent(alert, price, at)); err != nil {
				c.log.Warn().Err(err).Int("alert_id", alert.ID).Msg("Failed to publish alert event")
			}
		}
	}
	return fired, nil
}
