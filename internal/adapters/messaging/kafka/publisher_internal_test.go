package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleResult() domain.SyncResult {
	return domain.SyncResult{
		StartDate:         time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
		ReferenceCurrency: "PLN",
		TablesCreated:     3,
		RatesCreated:      3,
		FinishedAt:        time.Date(2025, 10, 22, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishSyncCompleted(t *testing.T) {
	w := &fakeWriter{}
	p := &SyncEventPublisher{writer: w}

	require.NoError(t, p.PublishSyncCompleted(context.Background(), sampleResult()))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "PLN", string(w.msgs[0].Key))

	var event SyncCompletedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &event))
	assert.Equal(t, "currency.sync.completed", event.EventType)
	assert.Equal(t, "2025-10-20", event.StartDate)
	assert.Equal(t, "2025-10-22", event.EndDate)
	assert.Equal(t, 3, event.TablesCreated)
	assert.Equal(t, 3, event.RatesCreated)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishSyncCompleted_WriterError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := &SyncEventPublisher{writer: &fakeWriter{err: boom}}

	err := p.PublishSyncCompleted(context.Background(), sampleResult())

	assert.ErrorIs(t, err, boom)
}
