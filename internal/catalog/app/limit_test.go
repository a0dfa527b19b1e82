package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/testutil"
	userapp "github.com/dwikikusuma/shop-backoffice/internal/user/app"
	usersqlite "github.com/dwikikusuma/shop-backoffice/internal/user/infra/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(title string) app.ProductInput {
	return app.ProductInput{
		Title:       title,
		Description: "a product",
		ImageURL:    "https://img.example/p.png",
		Price:       decimal.NewFromInt(100),
		Quantity:    5,
		Status:      "AVAILABLE",
		Category:    "ELECTRONICS",
	}
}

func TestValidateProductLimitBoundary(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	svc := app.NewService(sqlite.NewProductRepo(db), userapp.NewResolver(usersqlite.NewUserRepo(db)))

	sellerID := testutil.SeedUser(t, db, "Seller", "seller@shop.io", "COLLABORATOR")
	seller := auth.Principal{UserID: sellerID, Email: "seller@shop.io", Role: auth.RoleCollaborator}

	for i := 0; i < 9; i++ {
		testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Quantity: 1})
	}
	testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Status: "OUT_OF_STOCK"})
	testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Quantity: 2, Status: "DISCONTINUED"})

	t.Run("nine available may create one more", func(t *testing.T) {
		require.NoError(t, svc.ValidateProductLimit(ctx, sellerID))
		p, err := svc.CreateProduct(ctx, seller, input("tenth"))
		require.NoError(t, err)
		assert.Equal(t, "Seller", p.SellerName)
	})

	t.Run("ten available is rejected", func(t *testing.T) {
		err := svc.ValidateProductLimit(ctx, sellerID)
		assert.True(t, errors.Is(err, app.ErrLimitExceeded))

		before := testutil.Count(t, db, "products")
		_, err = svc.CreateProduct(ctx, seller, input("eleventh"))
		assert.True(t, errors.Is(err, app.ErrLimitExceeded))
		assert.Equal(t, before, testutil.Count(t, db, "products"))
	})

	t.Run("other sellers are unaffected", func(t *testing.T) {
		otherID := testutil.SeedUser(t, db, "Other", "other@shop.io", "COLLABORATOR")
		assert.NoError(t, svc.ValidateProductLimit(ctx, otherID))
	})
}

func TestProductRepoQueries(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	repo := sqlite.NewProductRepo(db)
	svc := app.NewService(repo, userapp.NewResolver(usersqlite.NewUserRepo(db)))

	sellerID := testutil.SeedUser(t, db, "Seller", "seller@shop.io", "COLLABORATOR")
	for i := 0; i < 5; i++ {
		testutil.SeedProduct(t, db, testutil.Product{
			CollaboratorID: sellerID,
			Title:          fmt.Sprintf("Gadget %d", i),
			Quantity:       1,
			Category:       "ELECTRONICS",
		})
	}
	testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Title: "Cookbook", Quantity: 1, Category: "BOOKS"})
	testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Title: "Old gadget", Status: "DISCONTINUED"})

	t.Run("public listing by category", func(t *testing.T) {
		all, err := svc.ListPublic(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 6)

		books, err := svc.ListPublic(ctx, "books")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Cookbook", books[0].Title)
		assert.Equal(t, "Seller", books[0].SellerName)
	})

	t.Run("inactive", func(t *testing.T) {
		inactive, err := svc.ListInactive(ctx)
		require.NoError(t, err)
		require.Len(t, inactive, 1)
		assert.Equal(t, domain.StatusDiscontinued, inactive[0].Status)
	})

	t.Run("search pages with cursor", func(t *testing.T) {
		page1, next, err := svc.Search(ctx, "gadget", "", 3, "")
		require.NoError(t, err)
		assert.Len(t, page1, 3)
		require.NotEmpty(t, next)

		page2, next2, err := svc.Search(ctx, "gadget", "", 3, next)
		require.NoError(t, err)
		assert.Len(t, page2, 2)
		assert.Empty(t, next2)

		seen := map[string]bool{}
		for _, p := range append(page1, page2...) {
			assert.False(t, seen[p.ID])
			seen[p.ID] = true
		}
	})

	t.Run("bad cursor", func(t *testing.T) {
		_, _, err := svc.Search(ctx, "", "", 10, "nope")
		assert.Error(t, err)
	})

	t.Run("stock compare and set", func(t *testing.T) {
		id := testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: sellerID, Quantity: 2})
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)

		p.Reserve(2)
		require.NoError(t, repo.SaveStock(ctx, p, 2))
		qty, status := testutil.ProductStock(t, db, id)
		assert.Equal(t, 0, qty)
		assert.Equal(t, "OUT_OF_STOCK", status)

		err = repo.SaveStock(ctx, p, 2)
		assert.True(t, errors.Is(err, sqlite.ErrStockConflict))
	})
}
