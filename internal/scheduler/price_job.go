package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// PriceUpdater moves every active quote once
type PriceUpdater interface {
	Run(ctx context.Context) (int, error)
}

// AlertChecker fires alerts against the latest prices
type AlertChecker interface {
	Run(ctx context.Context) ([]*models.Alert, error)
}

// PriceUpdateJob refreshes simulated prices and then sweeps alerts
type PriceUpdateJob struct {
	ctx     context.Context
	updater PriceUpdater
	checker AlertChecker
	timeout time.Duration
	log     zerolog.Logger
}

// NewPriceUpdateJob creates the job. Every run derives its context from
// ctx, so cancelling ctx aborts an in-flight sweep.
func NewPriceUpdateJob(ctx context.Context, updater PriceUpdater, checker AlertChecker, timeout time.Duration, log zerolog.Logger) *PriceUpdateJob {
	return &PriceUpdateJob{
		ctx:     ctx,
		updater: updater,
		checker: checker,
		timeout: timeout,
		log:     log.With().Str("job", "price_update").Logger(),
	}
}

// Name implements Job
func (j *PriceUpdateJob) Name() string {
	return "price_update"
}

// Run implements Job
func (j *PriceUpdateJob) Run() error {
	ctx, cancel := context.WithTimeout(j.ctx, j.timeout)
	defer cancel()

	updated, err := j.updater.Run(ctx)
	if err != nil {
		return fmt.Errorf("price update failed: %w", err)
	}

	if j.checker == nil {
		return nil
	}
	fired, err := j.checker.Run(ctx)
	if err != nil {
		return fmt.Errorf("alert check failed: %w", err)
	}

	j.log.Debug().Int("updated", updated).Int("alerts_fired", len(fired)).Msg("Price cycle complete")
	return nil
}
