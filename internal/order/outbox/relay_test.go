package outbox_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dwikikusuma/shop-backoffice/internal/order/domain"
	"github.com/dwikikusuma/shop-backoffice/internal/order/outbox"
	"github.com/dwikikusuma/shop-backoffice/internal/testutil"
	"github.com/dwikikusuma/shop-backoffice/pkg/database"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	ids    []string
	keys   []string
	failAt int
}

func (r *recorder) Publish(_ context.Context, key, id string, _ []byte) error {
	if r.failAt > 0 && len(r.ids)+1 == r.failAt {
		return errors.New("broker down")
	}
	r.ids = append(r.ids, id)
	r.keys = append(r.keys, key)
	return nil
}

func appendEvents(t *testing.T, s *outbox.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := s.Append(context.Background(), domain.Event{
			OrderID: fmt.Sprintf("o%d", i),
			Type:    domain.EventOrderPlaced,
			Payload: []byte(`{}`),
		})
		require.NoError(t, err)
	}
}

func TestRelayPublishesInOrder(t *testing.T) {
	db := testutil.OpenDB(t)
	store := outbox.NewStore(db)
	appendEvents(t, store, 3)

	pub := &recorder{}
	relay := outbox.NewRelay(store, pub, logger.Discard(), 0, 2)

	n, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"1", "2", "3"}, pub.ids)
	assert.Equal(t, "order.placed", pub.keys[0])
}

func TestRelayStopsAtFirstFailure(t *testing.T) {
	db := testutil.OpenDB(t)
	store := outbox.NewStore(db)
	appendEvents(t, store, 3)

	pub := &recorder{failAt: 2}
	relay := outbox.NewRelay(store, pub, logger.Discard(), 0, 10)

	n, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)

	pending, err := store.FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(2), pending[0].ID)

	pub.failAt = 0
	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"1", "2", "3"}, pub.ids)
}

func TestMarkPublishedEmpty(t *testing.T) {
	db := testutil.OpenDB(t)
	assert.NoError(t, outbox.NewStore(db).MarkPublished(context.Background(), nil, database.Now()))
}
