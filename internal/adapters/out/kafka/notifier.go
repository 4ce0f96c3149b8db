// Package kafka publishes order lifecycle events to a Kafka topic.
//
// Publishing is best-effort: command handlers treat a failed publish as a
// logged warning, never as a reason to roll back the transaction. Messages
// are keyed by order id so all events for one order land on one partition
// and stay ordered.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"craftorders/internal/core/domain/model/order"
)

// orderEventPayload is the wire form of one lifecycle event.
type orderEventPayload struct {
	Event           string    `json:"event"`
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	TotalAmount     *float64  `json:"total_amount,omitempty"`
	EstimatedAmount *float64  `json:"estimated_amount,omitempty"`
	HasCustomItems  bool      `json:"has_custom_items"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Notifier implements ports.Notifier on top of a kafka-go writer.
type Notifier struct {
	writer *kafka.Writer
}

// NewNotifier builds a Notifier publishing to topic through the given
// brokers. brokersCSV is a comma-separated broker list; blank entries are
// ignored.
func NewNotifier(brokersCSV string, topic string) *Notifier {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Notify publishes one lifecycle event for the given order.
func (n *Notifier) Notify(ctx context.Context, event string, aggregate *order.Order) error {
	payload := orderEventPayload{
		Event:           event,
		OrderID:         aggregate.ID().String(),
		Status:          aggregate.Status().String(),
		TotalAmount:     aggregate.TotalAmount(),
		EstimatedAmount: aggregate.EstimatedAmount(),
		HasCustomItems:  aggregate.HasCustomItems(),
		OccurredAt:      time.Now().UTC(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(aggregate.ID().String()),
		Value: data,
		Time:  payload.OccurredAt,
	})
}

// Close flushes and closes the underlying writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
