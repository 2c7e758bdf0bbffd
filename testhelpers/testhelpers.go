// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestDocument creates a document record with the given title and
// body markup and returns it.
func CreateTestDocument(t *testing.T, app *pocketbase.PocketBase, title, content string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("documents")
	if err != nil {
		t.Fatalf("failed to find documents collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("content", content)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test document: %v", err)
	}

	return record
}

// CreateTestProduct creates a catalog product record and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name string, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("description", name+" description")
	record.Set("price", price)
	record.Set("category", "Accessories")
	record.Set("sku", "TST-001")
	record.Set("stock", 3)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestSignee creates a signee record and returns it.
func CreateTestSignee(t *testing.T, app *pocketbase.PocketBase, name, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("signees")
	if err != nil {
		t.Fatalf("failed to find signees collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("email", strings.ToLower(strings.ReplaceAll(name, " ", "."))+"@example.com")
	record.Set("role", role)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test signee: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
