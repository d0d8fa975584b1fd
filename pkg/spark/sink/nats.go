package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// ErrNoSubject is returned by NewPublisher for an empty subject.
var ErrNoSubject = errors.New("sink: empty NATS subject")

// Publisher is an io.Writer that publishes every Write as one NATS message
// on a fixed subject. A head written straight into it arrives as many small
// messages; serialize with spark.WriteAtomic to get one message per head.
//
// The payload is copied by the connection, so the caller may reuse p.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher returns a Publisher for subject on nc. The connection is
// borrowed: closing it is the caller's job.
func NewPublisher(nc *nats.Conn, subject string) (*Publisher, error) {
	if subject == "" {
		return nil, ErrNoSubject
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

// Subject returns the subject messages are published on.
func (p *Publisher) Subject() string { return p.subject }

func (p *Publisher) Write(b []byte) (int, error) {
	if err := p.nc.Publish(p.subject, b); err != nil {
		return 0, fmt.Errorf("failed to publish to %q: %w", p.subject, err)
	}
	return len(b), nil
}

// Flush blocks until the server has processed everything published so far.
func (p *Publisher) Flush(ctx context.Context) error {
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush NATS.io connection: %w", err)
	}
	return nil
}
