// Package kafka publishes order integration events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"

	"github.com/twmb/franz-go/pkg/kgo"
)

// OrderChangedEvent is the wire format of an order state change. It carries
// the full current state of the order, so consumers never have to replay
// prior events to catch up.
type OrderChangedEvent struct {
	OrderID          string                     `json:"order_id"`
	Number           string                     `json:"number"`
	CustomerID       string                     `json:"customer_id"`
	AssignedAgentID  *string                    `json:"assigned_agent_id,omitempty"`
	CommercialStatus string                     `json:"commercial_status"`
	LogisticsStatus  string                     `json:"logistics_status"`
	TotalCents       int64                      `json:"total_cents"`
	Version          int                        `json:"version"`
	History          []OrderChangedHistoryEntry `json:"history"`
	OccurredAt       time.Time                  `json:"occurred_at"`
}

// OrderChangedHistoryEntry is one audit trail entry within the event payload.
type OrderChangedHistoryEntry struct {
	Seq     int       `json:"seq"`
	Label   string    `json:"label"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
	Note    string    `json:"note,omitempty"`
}

// OrderEventPublisher sends OrderChanged events through a franz-go producer.
// Records are keyed by order ID, so all events of one order land in the same
// partition and consumers see them in commit order.
type OrderEventPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewOrderEventPublisher creates a Kafka producer for order events.
func NewOrderEventPublisher(brokers []string, topic string, logger *slog.Logger) (*OrderEventPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("storefront"),
	)
	if err != nil {
		return nil, err
	}

	return &OrderEventPublisher{
		client: client,
		topic:  topic,
		logger: logger.With("component", "order_event_publisher"),
	}, nil
}

// PublishOrderChanged emits the order's current state. The produce is
// asynchronous: the committed transaction is already final, so a slow or
// unreachable broker only costs the notification, never the state change.
// Delivery failures are logged through the producer callback.
func (p *OrderEventPublisher) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(eventFromOrder(aggregate))
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(aggregate.ID().String()),
		Value: payload,
	}

	p.client.Produce(ctx, record, func(r *kgo.Record, produceErr error) {
		if produceErr != nil {
			p.logger.Error("order event delivery failed",
				"order_id", string(r.Key),
				"topic", r.Topic,
				"error", produceErr,
			)
		}
	})

	return nil
}

// Close flushes buffered records and releases the producer.
func (p *OrderEventPublisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.client.Flush(ctx); err != nil {
		p.logger.Error("flushing pending order events failed", "error", err)
	}
	p.client.Close()
}

// eventFromOrder maps the aggregate to its event payload.
func eventFromOrder(aggregate *order.Order) OrderChangedEvent {
	var agentID *string
	if id := aggregate.AssignedAgent(); id != nil {
		s := id.String()
		agentID = &s
	}

	history := make([]OrderChangedHistoryEntry, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, OrderChangedHistoryEntry{
			Seq:     entry.Seq(),
			Label:   entry.Label(),
			ActorID: entry.ActorID().String(),
			At:      entry.At(),
			Note:    entry.Note(),
		})
	}

	return OrderChangedEvent{
		OrderID:          aggregate.ID().String(),
		Number:           aggregate.Number().String(),
		CustomerID:       aggregate.CustomerID().String(),
		AssignedAgentID:  agentID,
		CommercialStatus: aggregate.CommercialStatus().String(),
		LogisticsStatus:  aggregate.LogisticsStatus().String(),
		TotalCents:       aggregate.TotalCents(),
		Version:          aggregate.Version(),
		History:          history,
		OccurredAt:       aggregate.UpdatedAt(),
	}
}
