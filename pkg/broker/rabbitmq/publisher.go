package rabbitmq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func(ctx context.Context) (io.Closer, channel, error)

// Publisher sends order events on one channel and reopens the connection
// once the broker has closed it.
type Publisher struct {
	mu   sync.Mutex
	dial dialFunc
	log  *slog.Logger
	conn io.Closer
	ch   channel
}

func NewPublisher(conn *amqp.Connection, ch *amqp.Channel, url string, log *slog.Logger) *Publisher {
	return &Publisher{
		conn: conn,
		ch:   ch,
		log:  log,
		dial: func(ctx context.Context) (io.Closer, channel, error) {
			conn, ch, err := SetupConn(ctx, url, 1, log)
			if err != nil {
				return nil, nil, err
			}
			return conn, ch, nil
		},
	}
}

// Publish sends a persistent JSON message to the orders exchange. The
// routing key is the event type, e.g. "order.placed".
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.reconnect(ctx); err != nil {
			return err
		}
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Body:         body,
		},
	)
}

func (p *Publisher) reconnect(ctx context.Context) error {
	p.release()

	conn, ch, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("reconnect rabbitmq: %w", err)
	}
	p.conn, p.ch = conn, ch
	p.log.Info("rabbitmq channel reopened")
	return nil
}

// Close releases the current channel and connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release()
}

func (p *Publisher) release() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
