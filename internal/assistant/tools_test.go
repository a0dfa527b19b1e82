package assistant

import (
	"context"
	"encoding/json"
	"testing"

	catalogapp "github.com/dwikikusuma/shop-backoffice/internal/catalog/app"
	catalogsqlite "github.com/dwikikusuma/shop-backoffice/internal/catalog/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/internal/testutil"
	userapp "github.com/dwikikusuma/shop-backoffice/internal/user/app"
	usersqlite "github.com/dwikikusuma/shop-backoffice/internal/user/infra/sqlite"
	"github.com/dwikikusuma/shop-backoffice/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv       *Server
	lampID    string
	bookID    string
	retiredID string
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.OpenDB(t)
	seller := testutil.SeedUser(t, db, "Sam Seller", "sam@shop.test", "COLLABORATOR")

	f := fixture{}
	f.lampID = testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: seller, Title: "Desk Lamp", Price: "25.5", Quantity: 4, Category: "HOME"})
	f.bookID = testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: seller, Title: "Go Book", Quantity: 2, Category: "BOOKS"})
	f.retiredID = testutil.SeedProduct(t, db, testutil.Product{CollaboratorID: seller, Title: "Old Lamp", Quantity: 1, Status: "DISCONTINUED", Category: "HOME"})

	catalog := catalogapp.NewService(catalogsqlite.NewProductRepo(db), userapp.NewResolver(usersqlite.NewUserRepo(db)))
	f.srv = NewServer(catalog, logger.Discard())
	return f
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

type searchResult struct {
	Products   []productView `json:"products"`
	Count      int           `json:"count"`
	NextCursor string        `json:"next_cursor"`
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("matches title and skips discontinued", func(t *testing.T) {
		res, err := f.srv.handleSearchProducts(ctx, call("search_products", map[string]interface{}{"query": "lamp"}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var out searchResult
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		require.Equal(t, 1, out.Count)
		assert.Equal(t, f.lampID, out.Products[0].ID)
		assert.Equal(t, "25.50", out.Products[0].Price)
		assert.Equal(t, "Sam Seller", out.Products[0].Seller)
		assert.Empty(t, out.NextCursor)
	})

	t.Run("category filter", func(t *testing.T) {
		res, err := f.srv.handleSearchProducts(ctx, call("search_products", map[string]interface{}{"category": "books"}))
		require.NoError(t, err)

		var out searchResult
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		require.Equal(t, 1, out.Count)
		assert.Equal(t, f.bookID, out.Products[0].ID)
	})

	t.Run("pages with cursor", func(t *testing.T) {
		seen := map[string]bool{}
		cursor := ""
		for i := 0; i < 3; i++ {
			args := map[string]interface{}{"limit": float64(1)}
			if cursor != "" {
				args["cursor"] = cursor
			}
			res, err := f.srv.handleSearchProducts(ctx, call("search_products", args))
			require.NoError(t, err)

			var out searchResult
			require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
			for _, p := range out.Products {
				seen[p.ID] = true
			}
			cursor = out.NextCursor
			if cursor == "" {
				break
			}
		}
		assert.Equal(t, map[string]bool{f.lampID: true, f.bookID: true}, seen)
	})

	t.Run("rejects out of range limit", func(t *testing.T) {
		res, err := f.srv.handleSearchProducts(ctx, call("search_products", map[string]interface{}{"limit": float64(500)}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("unknown category is a tool error", func(t *testing.T) {
		res, err := f.srv.handleSearchProducts(ctx, call("search_products", map[string]interface{}{"category": "GARDEN"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "GARDEN")
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	t.Run("returns discontinued products too", func(t *testing.T) {
		res, err := f.srv.handleGetProduct(ctx, call("get_product", map[string]interface{}{"id": f.retiredID}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var out productView
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.Equal(t, "Old Lamp", out.Title)
		assert.Equal(t, "DISCONTINUED", out.Status)
	})

	t.Run("missing id", func(t *testing.T) {
		res, err := f.srv.handleGetProduct(ctx, call("get_product", map[string]interface{}{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("unknown product", func(t *testing.T) {
		res, err := f.srv.handleGetProduct(ctx, call("get_product", map[string]interface{}{"id": "nope"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "not found")
	})
}

func TestListCategories(t *testing.T) {
	f := setup(t)

	res, err := f.srv.handleListCategories(context.Background(), call("list_categories", nil))
	require.NoError(t, err)

	var out struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Len(t, out.Categories, 9)
	assert.Equal(t, "ELECTRONICS", out.Categories[0])
}
