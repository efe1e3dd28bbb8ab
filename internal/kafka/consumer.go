package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/trogers1052/portfolio-service/internal/models"
	"github.com/trogers1052/portfolio-service/internal/valuation"
)

// ErrUnknownPortfolio is returned for fills addressed to a missing portfolio
var ErrUnknownPortfolio = errors.New("unknown portfolio")

// TransactionRepository defines the ledger operations the consumer needs
type TransactionRepository interface {
	PortfolioExists(ctx context.Context, id int) (bool, error)
	TransactionExistsByExternalID(ctx context.Context, externalID, source string) (bool, error)
	GetTransactionsByPortfolio(ctx context.Context, portfolioID int) ([]*models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error
}

// TransactionPublisher announces transactions appended from the stream
type TransactionPublisher interface {
	PublishTransactionRecorded(ctx context.Context, event *models.TransactionEvent) error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
	Config() kafka.ReaderConfig
}

// Consumer turns broker TRADE_DETECTED events into ledger transactions.
// Each fill is recorded once per (order_id, source). Under the reject
// policy a SELL the ledger cannot cover is not recorded.
type Consumer struct {
	reader    messageReader
	repo      TransactionRepository
	publisher TransactionPublisher
	opts      valuation.Options
	log       zerolog.Logger
}

// NewConsumer creates a new Kafka consumer for trade events. publisher may
// be nil.
func NewConsumer(brokers []string, topic, groupID string, repo TransactionRepository, publisher TransactionPublisher, opts valuation.Options, log zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:    reader,
		repo:      repo,
		publisher: publisher,
		opts:      opts,
		log:       log.With().Str("component", "trade_consumer").Logger(),
	}
}

// Start consumes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info().Str("topic", c.reader.Config().Topic).Msg("Starting Kafka consumer")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("Kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return c.reader.Close()
				}
				c.log.Error().Err(err).Msg("Error reading message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.log.Error().
					Err(err).
					Int("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("Error processing message")
			}
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var event models.TradeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal trade event: %w", err)
	}

	if event.EventType != models.EventTradeDetected {
		c.log.Debug().Str("event_type", event.EventType).Msg("Ignoring event")
		return nil
	}
	if event.Data.OrderID == "" {
		return fmt.Errorf("trade event from %s has no order_id", event.Source)
	}

	exists, err := c.repo.TransactionExistsByExternalID(ctx, event.Data.OrderID, event.Source)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate trade: %w", err)
	}
	if exists {
		c.log.Debug().
			Str("order_id", event.Data.OrderID).
			Str("source", event.Source).
			Msg("Trade already recorded, skipping")
		return nil
	}

	found, err := c.repo.PortfolioExists(ctx, event.Data.PortfolioID)
	if err != nil {
		return fmt.Errorf("failed to check portfolio: %w", err)
	}
	if !found {
		return fmt.Errorf("portfolio %d: %w", event.Data.PortfolioID, ErrUnknownPortfolio)
	}

	tx, err := convertEventToTransaction(event)
	if err != nil {
		return fmt.Errorf("failed to convert trade event: %w", err)
	}

	if err := c.checkCovered(ctx, tx); err != nil {
		return err
	}

	if err := c.repo.CreateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	c.log.Info().
		Int("portfolio_id", tx.PortfolioID).
		Str("type", string(tx.Type)).
		Str("quantity", tx.Quantity.String()).
		Str("symbol", tx.Symbol).
		Str("price", tx.Price.String()).
		Str("notional", tx.Notional().String()).
		Str("order_id", tx.ExternalID).
		Msg("Recorded trade")

	if c.publisher != nil {
		if err := c.publisher.PublishTransactionRecorded(ctx, models.NewTransactionEvent(tx)); err != nil {
			c.log.Warn().Err(err).Int("transaction_id", tx.ID).Msg("Failed to publish transaction event")
		}
	}
	return nil
}

// checkCovered replays the ledger with tx placed at its execution time. A
// SELL that would leave any point of the history short is refused, so the
// stored ledger always values under the reject policy.
func (c *Consumer) checkCovered(ctx context.Context, tx *models.Transaction) error {
	if tx.Type != models.TransactionTypeSell || c.opts.Oversell != valuation.OversellReject {
		return nil
	}

	existing, err := c.repo.GetTransactionsByPortfolio(ctx, tx.PortfolioID)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	if _, err := valuation.Compute(append(existing, tx), nil, c.opts); err != nil {
		c.log.Warn().
			Err(err).
			Int("portfolio_id", tx.PortfolioID).
			Str("symbol", tx.Symbol).
			Str("order_id", tx.ExternalID).
			Msg("Skipping trade the ledger cannot cover")
		return fmt.Errorf("rejected trade %s: %w", tx.ExternalID, err)
	}
	return nil
}

// convertEventToTransaction maps a TradeEvent to a validated ledger entry
func convertEventToTransaction(event models.TradeEvent) (*models.Transaction, error) {
	data := event.Data

	quantity, err := decimal.NewFromString(data.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %s: %w", data.Quantity, err)
	}

	price, err := decimal.NewFromString(data.AveragePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid price %s: %w", data.AveragePrice, err)
	}

	tx, err := models.NewTransaction(data.PortfolioID, data.Symbol, data.Side, quantity, price)
	if err != nil {
		return nil, err
	}

	tx.ExternalID = data.OrderID
	tx.Source = event.Source
	tx.CreatedAt = parseExecutedAt(data.ExecutedAt)
	return tx, nil
}

// parseExecutedAt accepts RFC3339 or a zone-less timestamp read as UTC,
// falling back to now
func parseExecutedAt(raw *string) time.Time {
	if raw == nil || *raw == "" {
		return time.Now()
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", *raw); err == nil {
		return t
	}
	return time.Now()
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
