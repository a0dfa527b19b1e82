package outbox

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
)

// Publisher delivers one event body. rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

type EventStore interface {
	FetchUnpublished(ctx context.Context, limit int) ([]domain.Event, error)
	MarkPublished(ctx context.Context, ids []int64, at time.Time) error
}

// Relay polls the store and forwards pending events in id order. Delivery
// is at least once: an event published just before a crash is sent again.
type Relay struct {
	store    EventStore
	pub      Publisher
	log      *slog.Logger
	interval time.Duration
	batch    int
}

func NewRelay(store EventStore, pub Publisher, log *slog.Logger, interval time.Duration, batch int) *Relay {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if batch <= 0 {
		batch = 100
	}
	return &Relay{store: store, pub: pub, log: log, interval: interval, batch: batch}
}

// Run relays until ctx is done. Failures are logged and retried on the
// next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("outbox relay started", slog.Duration("interval", r.interval))
	for {
		if n, err := r.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.log.Warn("outbox relay pass failed", slog.Int("published", n), slog.Any("err", err))
		} else if n > 0 {
			r.log.Debug("outbox events published", slog.Int("count", n))
		}

		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce publishes one batch. It stops at the first publish error so
// later events never overtake an earlier one; what was sent is still
// marked.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.store.FetchUnpublished(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	sent := make([]int64, 0, len(events))
	var pubErr error
	for _, e := range events {
		if err := r.pub.Publish(ctx, string(e.Type), strconv.FormatInt(e.ID, 10), e.Payload); err != nil {
			pubErr = err
			break
		}
		sent = append(sent, e.ID)
	}

	if err := r.store.MarkPublished(ctx, sent, database.Now()); err != nil {
		return 0, err
	}
	return len(sent), pubErr
}

// LogPublisher writes events to the log. It stands in for the broker when
// none is configured.
type LogPublisher struct {
	Log *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, routingKey, messageID string, body []byte) error {
	p.Log.Info("order event",
		slog.String("type", routingKey),
		slog.String("id", messageID),
		slog.String("payload", string(body)),
	)
	return nil
}
