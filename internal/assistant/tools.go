package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultLimit = 10

type productView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Seller      string `json:"seller"`
}

func toView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Quantity:    p.Quantity,
		Status:      string(p.Status),
		Category:    string(p.Category),
		Seller:      p.SellerName,
	}
}

func (s *Server) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit := getIntDefault(args, "limit", defaultLimit)
	if limit < 1 || limit > 100 {
		return mcp.NewToolResultError("limit must be between 1 and 100"), nil
	}

	products, next, err := s.catalog.Search(ctx,
		getStringDefault(args, "query", ""),
		getStringDefault(args, "category", ""),
		limit,
		getStringDefault(args, "cursor", ""),
	)
	if err != nil {
		return s.failure("search_products", err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"products":    views,
		"count":       len(views),
		"next_cursor": next,
	})), nil
}

func (s *Server) handleGetProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	id := getStringDefault(args, "id", "")
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return s.failure("get_product", err)
	}
	return mcp.NewToolResultText(formatJSON(toView(p))), nil
}

func (s *Server) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"categories": categoryNames(),
	})), nil
}

// failure turns client-side errors into tool errors the model can read and
// keeps anything else opaque.
func (s *Server) failure(tool string, err error) (*mcp.CallToolResult, error) {
	if apperr.KindOf(err) == apperr.KindUnexpected {
		s.log.Error("tool failed", slog.String("tool", tool), slog.Any("err", err))
		return nil, fmt.Errorf("%s failed", tool)
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
