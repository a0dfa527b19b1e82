package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/testutil"
	"github.com/dwikikusuma/shop-backoffice/internal/user/app"
	"github.com/dwikikusuma/shop-backoffice/internal/user/domain"
	"github.com/dwikikusuma/shop-backoffice/internal/user/infra/password"
	"github.com/dwikikusuma/shop-backoffice/internal/user/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/user/infra/token"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*app.Service, *app.Resolver) {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := sqlite.NewUserRepo(db)
	svc := app.NewService(repo, password.NewBcrypt(bcrypt.MinCost), token.NewJWT("test-secret", time.Hour))
	return svc, app.NewResolver(repo)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.RegisterCustomer(ctx, app.Input{Name: " Ana ", Email: "Ana@Shop.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@shop.io", u.Email)
	assert.Equal(t, auth.RoleCustomer, u.Role)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateCollaborator(ctx, app.Input{Name: "Other", Email: "ana@shop.io", Password: "secret2"})
		assert.True(t, errors.Is(err, app.ErrEmailInUse))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.RegisterCustomer(ctx, app.Input{Name: "", Email: "x@shop.io", Password: "secret1"})
		assert.True(t, errors.Is(err, apperr.ErrInvalid))
		_, err = svc.RegisterCustomer(ctx, app.Input{Name: "X", Email: "not-an-email", Password: "secret1"})
		assert.True(t, errors.Is(err, apperr.ErrInvalid))
		_, err = svc.RegisterCustomer(ctx, app.Input{Name: "X", Email: "x@shop.io", Password: "123"})
		assert.True(t, errors.Is(err, apperr.ErrInvalid))
	})

	t.Run("login ok", func(t *testing.T) {
		tok, err := svc.Login(ctx, "ANA@shop.io", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, tok.AccessToken)

		p, err := svc.Authenticate(ctx, tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, p.UserID)
		assert.Equal(t, auth.RoleCustomer, p.Role)
	})

	t.Run("bad password and unknown email fail alike", func(t *testing.T) {
		_, err := svc.Login(ctx, "ana@shop.io", "wrong")
		assert.True(t, errors.Is(err, app.ErrInvalidCredentials))
		_, err = svc.Login(ctx, "nobody@shop.io", "secret1")
		assert.True(t, errors.Is(err, app.ErrInvalidCredentials))
	})

	t.Run("inactive user cannot log in or authenticate", func(t *testing.T) {
		tok, err := svc.Login(ctx, "ana@shop.io", "secret1")
		require.NoError(t, err)

		_, err = svc.SetActive(ctx, u.ID, false)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "ana@shop.io", "secret1")
		assert.True(t, errors.Is(err, app.ErrInactiveUser))
		_, err = svc.Authenticate(ctx, tok.AccessToken)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

		_, err = svc.SetActive(ctx, u.ID, true)
		require.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "garbage")
		assert.True(t, errors.Is(err, app.ErrInvalidToken))
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.CreateCollaborator(ctx, app.Input{Name: "A", Email: "a@shop.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.CreateCollaborator(ctx, app.Input{Name: "B", Email: "b@shop.io", Password: "secret1"})
	require.NoError(t, err)

	t.Run("email taken by someone else", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, a.ID, app.Input{Name: "A", Email: "b@shop.io"})
		assert.True(t, errors.Is(err, app.ErrEmailInUse))
	})

	t.Run("empty password keeps hash", func(t *testing.T) {
		u, err := svc.UpdateUser(ctx, a.ID, app.Input{Name: "A2", Email: "a@shop.io"})
		require.NoError(t, err)
		assert.Equal(t, a.PasswordHash, u.PasswordHash)
		assert.Equal(t, "A2", u.Name)

		_, err = svc.Login(ctx, "a@shop.io", "secret1")
		assert.NoError(t, err)
	})

	t.Run("new password rehashes", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, a.ID, app.Input{Name: "A2", Email: "a@shop.io", Password: "newpass"})
		require.NoError(t, err)
		_, err = svc.Login(ctx, "a@shop.io", "newpass")
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, "missing", app.Input{Name: "A", Email: "z@shop.io"})
		assert.True(t, errors.Is(err, app.ErrUserNotFound))
	})
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	c, err := svc.CreateCollaborator(ctx, app.Input{Name: "Carl", Email: "carl@shop.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.CreateCollaborator(ctx, app.Input{Name: "Dana", Email: "dana@shop.io", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.RegisterCustomer(ctx, app.Input{Name: "Eve", Email: "eve@shop.io", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, c.ID, false)
	require.NoError(t, err)

	collabs, err := svc.ListUsers(ctx, domain.ListFilter{Role: auth.RoleCollaborator})
	require.NoError(t, err)
	require.Len(t, collabs, 2)
	assert.Equal(t, "Dana", collabs[0].Name, "active users first")

	inactive := false
	got, err := svc.ListUsers(ctx, domain.ListFilter{Role: auth.RoleCollaborator, Active: &inactive})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c.ID, got[0].ID)

	require.NoError(t, svc.DeleteUser(ctx, c.ID))
	_, err = svc.GetUser(ctx, c.ID)
	assert.True(t, errors.Is(err, app.ErrUserNotFound))
	assert.True(t, errors.Is(svc.DeleteUser(ctx, c.ID), app.ErrUserNotFound))
}

func TestDeleteUserWithProducts(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	svc := app.NewService(sqlite.NewUserRepo(db), password.NewBcrypt(bcrypt.MinCost), token.NewJWT("s", time.Hour))

	seller := testutil.SeedUser(t, db, "Seller", "seller@shop.io", "COLLABORATOR")
	testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: seller, Quantity: 1})

	err := svc.DeleteUser(ctx, seller)
	assert.True(t, errors.Is(err, app.ErrUserInUse))
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	svc, resolver := newTestService(t)

	cust, err := svc.RegisterCustomer(ctx, app.Input{Name: "C", Email: "c@shop.io", Password: "secret1"})
	require.NoError(t, err)
	collab, err := svc.CreateCollaborator(ctx, app.Input{Name: "K", Email: "k@shop.io", Password: "secret1"})
	require.NoError(t, err)
	admin, err := svc.EnsureAdmin(ctx, logger.Discard(), "admin@shop.io", "admin123")
	require.NoError(t, err)

	acc, err := resolver.Customer(ctx, cust.Principal())
	require.NoError(t, err)
	assert.Equal(t, cust.ID, acc.ID)

	_, err = resolver.Customer(ctx, collab.Principal())
	assert.True(t, errors.Is(err, app.ErrCustomerNotFound))

	acc, err = resolver.Collaborator(ctx, admin.Principal())
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, acc.Role)

	_, err = resolver.Collaborator(ctx, auth.Principal{Email: "ghost@shop.io"})
	assert.True(t, errors.Is(err, app.ErrCollaboratorNotFound))
	assert.Contains(t, err.Error(), "ghost@shop.io")
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	log := logger.Discard()

	first, err := svc.EnsureAdmin(ctx, log, "admin@shop.io", "admin123")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, first.Role)

	again, err := svc.EnsureAdmin(ctx, log, "admin@shop.io", "admin123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.SetActive(ctx, first.ID, false)
	require.NoError(t, err)

	revived, err := svc.EnsureAdmin(ctx, log, "admin@shop.io", "admin123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, revived.ID)
	assert.True(t, revived.Active)

	_, err = svc.Login(ctx, "admin@shop.io", "admin123")
	assert.NoError(t, err)
}
