package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	cfg  kafka.ReaderConfig
	msgs chan kafka.Message
	errs chan error

	mu         sync.Mutex
	closeCalls int
}

func newMockReader(topic string, buffer int) *mockReader {
	return &mockReader{
		cfg:  kafka.ReaderConfig{Topic: topic},
		msgs: make(chan kafka.Message, buffer),
		errs: make(chan error, buffer),
	}
}

func (r *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case err := <-r.errs:
		return kafka.Message{}, err
	case msg := <-r.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *mockReader) Close() error {
	r.mu.Lock()
	r.closeCalls++
	r.mu.Unlock()
	return nil
}

func (r *mockReader) CloseCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeCalls
}

func (r *mockReader) Config() kafka.ReaderConfig {
	return r.cfg
}

func TestConsumer_Start_consumesAndProcessesMessages(t *testing.T) {
	repo := NewMockRepository(1)
	repo.called = make(chan struct{}, 1)
	reader := newMockReader("trading.orders", 2)
	consumer := &Consumer{reader: reader, repo: repo, log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- consumer.Start(ctx)
	}()

	// a read error is logged and the loop keeps going
	reader.errs <- errors.New("broker unavailable")
	reader.msgs <- tradeMessage(t, 1, "order-1", "AAPL", "BUY", "10", "100", nil)

	select {
	case <-repo.called:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for trade to be processed")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for consumer to shut down")
	}

	txs := repo.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "AAPL", txs[0].Symbol)
	assert.Equal(t, 1, reader.CloseCalls())
}
