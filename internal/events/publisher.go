package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher forwards events outside the process.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// drainTimeout bounds how long Close waits for buffered events to reach the server.
const drainTimeout = 5 * time.Second

// NATSPublisher publishes session events as JSON to NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	closed chan struct{}
}

// NewNATSPublisher connects to the NATS server at url. opts are applied before the
// publisher installs its own closed handler.
func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	closed := make(chan struct{})
	var once sync.Once
	opts = append(opts,
		nats.DrainTimeout(drainTimeout),
		nats.ClosedHandler(func(*nats.Conn) { once.Do(func() { close(closed) }) }),
	)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc, closed: closed}, nil
}

// Publish encodes event and sends it on topic. Delivery is fire-and-forget; ctx is only
// checked before sending.
func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event for %s: %w", topic, err)
	}
	if err := p.conn.Publish(topic, data); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close drains pending messages and blocks until the connection is closed or the drain
// timeout passes.
func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		if !errors.Is(err, nats.ErrConnectionClosed) {
			return fmt.Errorf("drain NATS connection: %w", err)
		}
		return nil
	}
	select {
	case <-p.closed:
		return nil
	case <-time.After(drainTimeout + time.Second):
		p.conn.Close()
		return errors.New("timed out draining NATS connection")
	}
}

// NoopPublisher is a Publisher that does nothing (used when NATS is not configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}

// Topic builds the subject for an event type, e.g. "unifin.wallet.connected".
func Topic(prefix string, t EventType) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Forward returns a handler that republishes every event through pub.
func Forward(pub Publisher, prefix string) EventHandler {
	return func(ctx context.Context, event Event) error {
		return pub.Publish(ctx, Topic(prefix, event.Type), event)
	}
}
