package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/portfolio-service/internal/models"
)

// Topics names the outbound topics, one per event family
type Topics struct {
	Prices       string
	Alerts       string
	Transactions string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer handles publishing events to Kafka
type Producer struct {
	writer messageWriter
	topics Topics
	log    zerolog.Logger
}

// NewProducer creates a new Kafka producer. The topic is set per message.
func NewProducer(brokers []string, topics Topics, log zerolog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		topics: topics,
		log:    log.With().Str("component", "kafka_producer").Logger(),
	}
}

// PublishPriceUpdated publishes a price event keyed by symbol
func (p *Producer) PublishPriceUpdated(ctx context.Context, event *models.PriceEvent) error {
	return p.publish(ctx, p.topics.Prices, event.Symbol, event)
}

// PublishAlertTriggered publishes an alert event keyed by owner
func (p *Producer) PublishAlertTriggered(ctx context.Context, event *models.AlertEvent) error {
	key := ""
	if event.Alert != nil {
		key = event.Alert.OwnerID
	}
	return p.publish(ctx, p.topics.Alerts, key, event)
}

// PublishTransactionRecorded publishes a ledger event keyed by portfolio,
// so one portfolio's events stay ordered on a single partition
func (p *Producer) PublishTransactionRecorded(ctx context.Context, event *models.TransactionEvent) error {
	key := ""
	if event.Transaction != nil {
		key = strconv.Itoa(event.Transaction.PortfolioID)
	}
	return p.publish(ctx, p.topics.Transactions, key, event)
}

func (p *Producer) publish(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.log.Debug().Str("topic", topic).Str("key", key).Msg("Published event")
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
