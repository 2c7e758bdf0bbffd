package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"quotecomposer/services"
)

// welcomeContent is the body of the seeded sample document.
const welcomeContent = `<h1>Welcome to Quote Composer</h1>` +
	`<p>Place the cursor in a paragraph and use <strong>Insert Quote Table</strong> to add a priced product table.</p>` +
	`<p><br></p>`

// Seed fills the products and signees collections from the built-in
// catalog and creates a sample document. Each collection is seeded only
// while it is empty, so Seed is safe to call on every startup.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedIfEmpty(app, "products", func(col *core.Collection) error {
		for i, p := range services.SampleProducts {
			r := core.NewRecord(col)
			r.Set("name", p.ProductName)
			r.Set("description", p.Description)
			r.Set("price", cast.ToFloat64(p.Price))
			r.Set("category", p.Category)
			r.Set("sku", p.SKU)
			r.Set("stock", p.Stock)
			r.Set("sort_order", i+1)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("save product %q: %w", p.ProductName, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := seedIfEmpty(app, "signees", func(col *core.Collection) error {
		for i, u := range services.SampleUsers {
			r := core.NewRecord(col)
			r.Set("name", u.Name)
			r.Set("email", u.Email)
			r.Set("role", u.Role)
			r.Set("sort_order", i+1)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("save signee %q: %w", u.Name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return seedIfEmpty(app, "documents", func(col *core.Collection) error {
		r := core.NewRecord(col)
		r.Set("title", "Sample Quote")
		r.Set("content", welcomeContent)
		return app.Save(r)
	})
}

// seedIfEmpty runs fill when the named collection has no records.
func seedIfEmpty(app *pocketbase.PocketBase, name string, fill func(*core.Collection) error) error {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", name, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query %s: %w", name, err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Printf("seed: %s collection is empty – inserting seed data …", name)
	if err := fill(col); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
