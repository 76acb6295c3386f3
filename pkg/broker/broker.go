// Package broker publishes JSON messages to a RabbitMQ topic exchange.
package broker

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shashiranjanraj/shopdesk/pkg/metrics"
	"github.com/shashiranjanraj/shopdesk/pkg/reqid"
)

// Publisher sends a message under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// AMQP is a Publisher backed by one connection and one channel. The
// channel is not safe for concurrent use, so publishes are serialised.
type AMQP struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "broker: dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "broker: open channel")
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrapf(err, "broker: declare exchange %s", exchange)
	}

	return &AMQP{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends body as a persistent JSON message. The request id carried
// by ctx, if any, becomes the correlation id.
func (p *AMQP) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now().UTC(),
			CorrelationId: reqid.FromCtx(ctx),
			Body:          body,
		},
	)
	if err != nil {
		metrics.BrokerPublishes.WithLabelValues("failed").Inc()
		return errors.Wrapf(err, "broker: publish %s", routingKey)
	}
	metrics.BrokerPublishes.WithLabelValues("success").Inc()
	return nil
}

// Exchange is the name of the exchange messages are published to.
func (p *AMQP) Exchange() string { return p.exchange }

// Close closes the channel and the connection.
func (p *AMQP) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
