package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"quotecomposer/services"
)

// LoadProducts returns the product catalog in sort order. With no product
// records the built-in sample catalog is used.
func LoadProducts(app *pocketbase.PocketBase) ([]services.Product, error) {
	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return nil, fmt.Errorf("products collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "sort_order", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	if len(records) == 0 {
		return services.SampleProducts, nil
	}

	products := make([]services.Product, 0, len(records))
	for _, r := range records {
		price := decimal.NewFromFloat(cast.ToFloat64(r.Get("price")))
		products = append(products, services.Product{
			ID:          r.Id,
			ProductName: r.GetString("name"),
			Description: r.GetString("description"),
			Price:       price.StringFixed(2),
			Category:    r.GetString("category"),
			SKU:         r.GetString("sku"),
			Stock:       cast.ToInt(r.Get("stock")),
		})
	}
	return products, nil
}

// LoadSignees returns the users offered by signature blocks, falling back
// to the built-in sample users.
func LoadSignees(app *pocketbase.PocketBase) ([]services.User, error) {
	col, err := app.FindCollectionByNameOrId("signees")
	if err != nil {
		return nil, fmt.Errorf("signees collection not found: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "sort_order", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("query signees: %w", err)
	}
	if len(records) == 0 {
		return services.SampleUsers, nil
	}

	users := make([]services.User, 0, len(records))
	for _, r := range records {
		users = append(users, services.User{
			ID:    r.Id,
			Name:  r.GetString("name"),
			Email: r.GetString("email"),
			Role:  cast.ToString(r.Get("role")),
		})
	}
	return users, nil
}
