package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mnogodumalon/terminboard/libs/kafkax"
)

// TopicAppointmentCreated carries one event per successfully submitted
// appointment request.
const TopicAppointmentCreated = "dashboard.appointment.created.v1"

// AppointmentCreated is the event payload. Timestamps are the raw wire
// strings from the record store.
type AppointmentCreated struct {
	AppointmentID string `json:"appointment_id"`
	RequestedAt   string `json:"requested_at,omitempty"`
	ServiceRef    string `json:"service_ref,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// Publisher emits dashboard domain events. It is optional: a nil Publisher
// drops every event, so callers never need to branch on configuration.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(brokers string, logger *slog.Logger) *Publisher {
	list := kafkax.SplitBrokers(brokers)
	if len(list) == 0 {
		return nil
	}
	return &Publisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  list,
			Topic:    TopicAppointmentCreated,
			Balancer: &kafka.Hash{},
		}),
		logger: logger,
	}
}

// AppointmentCreated publishes the event. Publish failures are logged, not
// propagated: the record is already stored and the intake response must not
// depend on the event bus.
func (p *Publisher) AppointmentCreated(ctx context.Context, evt AppointmentCreated) {
	if p == nil {
		return
	}
	if evt.CreatedAt == "" {
		evt.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("encode appointment event failed", "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.AppointmentID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(TopicAppointmentCreated)},
		},
	}
	msg.Headers = kafkax.InjectTraceHeaders(ctx, msg.Headers)

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("publish appointment event failed", "err", err, "appointment_id", evt.AppointmentID)
		return
	}
	p.logger.Info("appointment event published", "appointment_id", evt.AppointmentID)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
