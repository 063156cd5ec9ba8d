package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher fans room lifecycle events out to interested services
// (analytics, moderation). This is server-side plumbing only: browser
// clients still discover changes by polling.
type Publisher interface {
	Publish(ctx context.Context, eventType, roomID string, payload interface{}) error
}

// envelope is the wire format for one room event.
type envelope struct {
	EventID   string      `json:"eventId"`
	EventType string      `json:"eventType"`
	RoomID    string      `json:"roomId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NATSPublisher publishes room events on `<prefix>.<eventType>` subjects.
type NATSPublisher struct {
	nc            *nats.Conn
	subjectPrefix string
}

// NewNATSPublisher connects to NATS with reconnect handling.
func NewNATSPublisher(url, subjectPrefix string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	log.Info().Str("url", url).Str("prefix", subjectPrefix).Msg("connected to NATS for room events")
	return &NATSPublisher{nc: nc, subjectPrefix: subjectPrefix}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, eventType, roomID string, payload interface{}) error {
	subject := fmt.Sprintf("%s.%s", p.subjectPrefix, eventType)

	message, err := json.Marshal(envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		RoomID:    roomID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(subject, message); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection so buffered events are flushed.
func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		log.Error().Err(err).Msg("failed to drain NATS connection")
	}
}

// NoopPublisher is used when no message bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType, roomID string, payload interface{}) error {
	return nil
}
