package assistant

import (
	"github.com/dwikikusuma/shop-backoffice/internal/catalog/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

func categoryNames() []string {
	out := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, string(c))
	}
	return out
}

func searchProductsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_products",
		Description: "Search purchasable products by text in title or description",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to look for; empty lists everything",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Restrict to one category",
					"enum":        categoryNames(),
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of products to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"cursor": map[string]interface{}{
					"type":        "string",
					"description": "next_cursor from a previous call",
				},
			},
		},
	}
}

func getProductTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_product",
		Description: "Fetch one product by id, whatever its status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Product id",
				},
			},
			Required: []string{"id"},
		},
	}
}

func listCategoriesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_categories",
		Description: "List the product categories",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
