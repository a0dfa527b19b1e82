package token

import (
	"testing"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT(t *testing.T) {
	p := auth.Principal{UserID: "u-1", Email: "ana@shop.io", Role: auth.RoleCollaborator}

	t.Run("round trip", func(t *testing.T) {
		j := NewJWT("secret", time.Hour)
		tok, exp, err := j.Issue(p)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		got, err := j.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, _, err := NewJWT("a", time.Hour).Issue(p)
		require.NoError(t, err)
		_, err = NewJWT("b", time.Hour).Verify(tok)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		j := NewJWT("secret", time.Minute)
		tok, _, err := j.Issue(p)
		require.NoError(t, err)

		j.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, err = j.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewJWT("secret", time.Hour).Verify("not.a.token")
		assert.Error(t, err)
	})
}
