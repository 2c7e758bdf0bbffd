package services

import (
	"sort"
	"strings"
)

// Product is a read-only catalog entry used to populate pick-lists.
type Product struct {
	ID          string
	ProductName string
	Description string
	Price       string
	Category    string
	SKU         string
	Stock       int
}

// AllCategories is the pseudo-category that disables category filtering.
const AllCategories = "All"

// SampleProducts is the catalog seeded into the products collection.
var SampleProducts = []Product{
	{ID: "1", ProductName: "MacBook Pro M2", Description: "14-inch MacBook Pro with M2 chip, 16GB RAM, 512GB SSD", Price: "1999.99", Category: "Laptops", SKU: "LAP-MB-001", Stock: 15},
	{ID: "2", ProductName: "Dell XPS 15", Description: "15-inch Dell XPS with Intel i9, 32GB RAM, 1TB SSD", Price: "1799.99", Category: "Laptops", SKU: "LAP-DL-002", Stock: 8},
	{ID: "3", ProductName: `LG 32" 4K Monitor`, Description: "32-inch 4K UHD Monitor with HDR support", Price: "699.99", Category: "Monitors", SKU: "MON-LG-001", Stock: 20},
	{ID: "4", ProductName: `Samsung 27" Gaming Monitor`, Description: "27-inch 165Hz Gaming Monitor with G-Sync", Price: "449.99", Category: "Monitors", SKU: "MON-SM-002", Stock: 12},
	{ID: "5", ProductName: "Logitech MX Master 3", Description: "Wireless Performance Mouse with customizable buttons", Price: "99.99", Category: "Accessories", SKU: "ACC-LG-001", Stock: 30},
	{ID: "6", ProductName: "Keychron K3", Description: "Low-profile Mechanical Keyboard with RGB", Price: "89.99", Category: "Accessories", SKU: "ACC-KC-002", Stock: 25},
	{ID: "7", ProductName: "iPhone 15 Pro", Description: "256GB iPhone 15 Pro with A17 Pro chip", Price: "1199.99", Category: "Phones", SKU: "PHN-IP-001", Stock: 10},
	{ID: "8", ProductName: "Samsung S24 Ultra", Description: "512GB S24 Ultra with S Pen and AI features", Price: "1299.99", Category: "Phones", SKU: "PHN-SS-002", Stock: 15},
}

// FindProduct looks a product up by id.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FilterProducts applies the product list drawer filters: a case-insensitive
// search over name, description and SKU, and an exact category match.
// An empty category or AllCategories matches everything.
func FilterProducts(products []Product, search, category string) []Product {
	term := strings.ToLower(strings.TrimSpace(search))
	var out []Product
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns AllCategories followed by the distinct categories in
// alphabetical order.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return append([]string{AllCategories}, cats...)
}

// QuickPick returns the first n products for the empty-row dropdown.
func QuickPick(products []Product, n int) []Product {
	if n < 0 || n >= len(products) {
		return products
	}
	return products[:n]
}

// ToForm converts a catalog product into a product form with quantity 1
// and no discount.
func (p Product) ToForm() ProductForm {
	return ProductForm{
		ProductName: p.ProductName,
		Description: p.Description,
		Quantity:    "1",
		Price:       p.Price,
		Discount:    "0",
	}
}
