package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

const publishTimeout = 10 * time.Second

// SyncCompletedEvent is published after a synchronization run commits.
type SyncCompletedEvent struct {
	EventType         string    `json:"event_type"`
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date"`
	ReferenceCurrency string    `json:"reference_currency"`
	TablesCreated     int       `json:"tables_created"`
	RatesCreated      int       `json:"rates_created"`
	FinishedAt        time.Time `json:"finished_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SyncEventPublisher writes SyncCompletedEvent messages to one topic.
type SyncEventPublisher struct {
	writer messageWriter
}

var _ portssvc.SyncEventPublisher = (*SyncEventPublisher)(nil)

// NewSyncEventPublisher creates a publisher for the given brokers and topic.
func NewSyncEventPublisher(brokers []string, topic string) *SyncEventPublisher {
	return &SyncEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishSyncCompleted sends one event keyed by the reference currency.
func (p *SyncEventPublisher) PublishSyncCompleted(ctx context.Context, result domain.SyncResult) error {
	msg, err := newSyncMessage(result)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish sync event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *SyncEventPublisher) Close() error {
	return p.writer.Close()
}

func newSyncMessage(result domain.SyncResult) (kafka.Message, error) {
	event := SyncCompletedEvent{
		EventType:         "currency.sync.completed",
		StartDate:         domain.FormatDate(result.StartDate),
		EndDate:           domain.FormatDate(result.EndDate),
		ReferenceCurrency: result.ReferenceCurrency,
		TablesCreated:     result.TablesCreated,
		RatesCreated:      result.RatesCreated,
		FinishedAt:        result.FinishedAt,
	}
	v, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal sync event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(result.ReferenceCurrency),
		Value: v,
		Time:  result.FinishedAt,
	}, nil
}
