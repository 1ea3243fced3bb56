package audit

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes audit lines to a NATS subject.
type NatsPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNatsPublisher connects to the NATS server at url and publishes to
// subject.
func NewNatsPublisher(url, subject string) (*NatsPublisher, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if subject == "" {
		subject = "auth.audit"
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to nats: %w", err)
	}
	return &NatsPublisher{nc: nc, subject: subject}, nil
}

// Publish sends one event line. A closed connection is reported as an error
// so the caller can log it; it must not be treated as fatal.
func (p *NatsPublisher) Publish(ctx context.Context, line string) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	if err := p.nc.Publish(p.subject, []byte(line)); err != nil {
		return fmt.Errorf("error publishing audit event: %w", err)
	}
	return nil
}

// Close drains the connection.
func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}

// NoopPublisher discards events; used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, line string) error { return nil }
func (NoopPublisher) Close()                                         {}
