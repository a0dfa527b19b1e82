package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTo(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			o := Order{Status: from}
			err := o.TransitionTo(to)

			switch {
			case from == StatusCancelled:
				assert.True(t, errors.Is(err, ErrCannotModifyCancelled), "%s -> %s", from, to)
				assert.Equal(t, from, o.Status)
			case from == StatusDelivered && to != StatusDelivered:
				assert.True(t, errors.Is(err, ErrCannotModifyDelivered), "%s -> %s", from, to)
				assert.Equal(t, from, o.Status)
			default:
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, o.Status)
			}
		}
	}
}

func TestCancel(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		o := Order{Status: StatusShipped}
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCancelled, o.Status)
	})
	t.Run("already cancelled", func(t *testing.T) {
		o := Order{Status: StatusCancelled}
		assert.True(t, errors.Is(o.Cancel(), ErrAlreadyCancelled))
	})
	t.Run("delivered", func(t *testing.T) {
		o := Order{Status: StatusDelivered}
		assert.True(t, errors.Is(o.Cancel(), ErrCannotCancelDelivered))
		assert.Equal(t, StatusDelivered, o.Status)
	})
}

func TestTotalsAndSale(t *testing.T) {
	o := New("c1")
	o.AddLine("p1", "A", "s1", decimal.NewFromInt(100), 2)
	o.AddLine("p2", "B", "s2", decimal.RequireFromString("9.99"), 1)
	o.AddLine("p3", "C", "s1", decimal.RequireFromString("0.50"), 4)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 2, o.Items[2].Position)
	assert.True(t, decimal.RequireFromString("211.99").Equal(o.Total()))

	sale, ok := o.SaleFor("s1")
	require.True(t, ok)
	assert.Len(t, sale.Items, 2)
	assert.True(t, decimal.NewFromInt(202).Equal(sale.MyTotal))
	assert.True(t, o.Total().Equal(sale.OrderTotal))

	_, ok = o.SaleFor("nobody")
	assert.False(t, ok)
}

func TestNewEvent(t *testing.T) {
	o := New("c1")
	o.ID = "o1"
	o.AddLine("p1", "A", "s1", decimal.NewFromInt(5), 3)
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	e, err := NewEvent(EventOrderPlaced, o, "", at)
	require.NoError(t, err)
	assert.Equal(t, "o1", e.OrderID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(e.Payload, &body))
	assert.Equal(t, "PENDING", body["status"])
	assert.Equal(t, "15", body["total"])
	assert.NotContains(t, body, "previous_status")
}
