// Package events publishes session lifecycle events to NATS.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher implements harvest.SessionObserver by publishing each event as
// JSON on <prefix>.<event type>.
type Publisher struct {
	conn   Conn
	prefix string
	logger harvest.Logger
}

// NewPublisher creates a publisher. An empty prefix uses the default subject
// prefix.
func NewPublisher(conn Conn, prefix string, logger harvest.Logger) *Publisher {
	if prefix == "" {
		prefix = constants.DefaultSubjectPrefix
	}

	return &Publisher{
		conn:   conn,
		prefix: prefix,
		logger: logger,
	}
}

// Dial connects to the NATS server at url.
func Dial(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{nats.Name(constants.DefaultUserAgent)}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Subject returns the subject an event type is published on.
func (p *Publisher) Subject(eventType harvest.SessionEventType) string {
	return p.prefix + "." + string(eventType)
}

// OnSessionEvent implements harvest.SessionObserver. Publish failures are
// logged and otherwise ignored.
func (p *Publisher) OnSessionEvent(event harvest.SessionEvent) {
	err := p.Publish(event)
	if err != nil && p.logger != nil {
		p.logger.Warn("Failed to publish session event", map[string]interface{}{
			"type":  string(event.Type),
			"error": err.Error(),
		})
	}
}

// Publish sends event on its subject.
func (p *Publisher) Publish(event harvest.SessionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding session event: %w", err)
	}

	subject := p.Subject(event.Type)

	err = p.conn.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	return nil
}
