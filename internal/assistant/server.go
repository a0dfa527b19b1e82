// Package assistant exposes a read-only view of the catalog as MCP tools so
// an LLM client can browse products.
package assistant

import (
	"context"
	"log/slog"

	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "shop-catalog-assistant"
	ServerVersion = "1.0.0"
)

// Catalog is the read side the tools need. *catalogapp.Service satisfies it.
type Catalog interface {
	Search(ctx context.Context, query, category string, limit int, cursor string) ([]domain.Product, string, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

type Server struct {
	mcp     *server.MCPServer
	catalog Catalog
	log     *slog.Logger
}

func NewServer(catalog Catalog, log *slog.Logger) *Server {
	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion),
		catalog: catalog,
		log:     log,
	}

	s.mcp.AddTool(searchProductsTool(), s.handleSearchProducts)
	s.mcp.AddTool(getProductTool(), s.handleGetProduct)
	s.mcp.AddTool(listCategoriesTool(), s.handleListCategories)

	return s
}

// Serve speaks MCP on stdio until the client disconnects.
func (s *Server) Serve() error {
	s.log.Info("assistant serving on stdio")
	return server.ServeStdio(s.mcp)
}
