// Package outbox stores order events in the same transaction as the order
// change and relays them to a broker afterwards.
package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
)

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, e domain.Event) error {
	created := e.CreatedAt
	if created.IsZero() {
		created = database.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO order_events (order_id, type, payload, created_at)
		VALUES (?, ?, ?, ?)`, e.OrderID, string(e.Type), string(e.Payload), database.FormatTime(created))
	if err != nil {
		return fmt.Errorf("append %s event: %w", e.Type, err)
	}
	return nil
}

// FetchUnpublished returns up to limit pending events, oldest first.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, order_id, type, payload, created_at FROM order_events
		WHERE published_at IS NULL ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending events: %w", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e       domain.Event
			typ, pl string
			created database.Timestamp
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &typ, &pl, &created); err != nil {
			return nil, err
		}
		e.Type = domain.EventType(typ)
		e.Payload = []byte(pl)
		e.CreatedAt = created.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, database.FormatTime(at))
	for _, id := range ids {
		args = append(args, id)
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	_, err := s.db.ExecContext(ctx, `UPDATE order_events SET published_at = ? WHERE id IN (`+marks+`)`, args...)
	if err != nil {
		return fmt.Errorf("mark events published: %w", err)
	}
	return nil
}
