package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotecomposer/collections"
	"quotecomposer/config"
	"quotecomposer/handlers"
)

func main() {
	app := pocketbase.New()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	editor := handlers.NewEditor(app, cfg)

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/documents", handlers.HandleDocumentList(app))
		se.Router.POST("/documents", handlers.HandleDocumentCreate(app))

		// ── Product import files ─────────────────────────────────
		se.Router.GET("/products/import-template", handlers.HandleImportTemplate())
		se.Router.POST("/products/import-errors", handlers.HandleImportErrorReport())

		// ── Editor (document-scoped) ─────────────────────────────
		// Widget URLs are relative to /documents/{id}/
		doc := se.Router.Group("/documents/{id}")
		doc.BindFunc(handlers.DocumentMiddleware(app))

		doc.GET("", handlers.HandleDocumentRedirect())
		doc.DELETE("", handlers.HandleDocumentDelete(editor))
		doc.GET("/{$}", handlers.HandleEditorPage(editor))
		doc.PUT("/content", handlers.HandleContentSave(editor))

		// Quote tables
		doc.POST("/tables", handlers.HandleTableInsert(editor))
		doc.DELETE("/tables/{table}", handlers.HandleTableDelete(editor))
		doc.GET("/tables/{table}/export/{format}", handlers.HandleTableExport(editor))
		doc.POST("/tables/{table}/title", handlers.HandleTableTitle(editor))
		doc.POST("/tables/{table}/description", handlers.HandleTableDescription(editor))
		doc.POST("/tables/{table}/description/toggle", handlers.HandleDescriptionToggle(editor))
		doc.POST("/tables/{table}/columns/{column}", handlers.HandleColumnVisible(editor))
		doc.POST("/tables/{table}/theme/{theme}", handlers.HandleTheme(editor))
		doc.POST("/tables/{table}/selection/{mode}", handlers.HandleSelectionMode(editor))
		doc.POST("/tables/{table}/tax", handlers.HandleTaxRate(editor))

		// Rows: inline cells, inclusion and drag reorder
		doc.POST("/tables/{table}/rows/{row}/cells/{field}", handlers.HandleCell(editor))
		doc.POST("/tables/{table}/rows/{row}/include", handlers.HandleInclude(editor))
		doc.POST("/tables/{table}/drag/start", handlers.HandleDragStart(editor))
		doc.POST("/tables/{table}/drag/over", handlers.HandleDragOver(editor))
		doc.POST("/tables/{table}/drag/drop", handlers.HandleDrop(editor))
		doc.POST("/tables/{table}/drag/end", handlers.HandleDragEnd(editor))

		// Products
		doc.GET("/tables/{table}/products/new", handlers.HandleProductNew(editor))
		doc.GET("/tables/{table}/products/{row}/edit", handlers.HandleProductEdit(editor))
		doc.POST("/tables/{table}/products", handlers.HandleProductSubmit(editor))
		doc.DELETE("/tables/{table}/products/{row}", handlers.HandleProductDelete(editor))
		doc.GET("/tables/{table}/quick-pick", handlers.HandleQuickPick(editor))
		doc.GET("/tables/{table}/catalog", handlers.HandleCatalog(editor))
		doc.POST("/tables/{table}/catalog/{product}", handlers.HandleCatalogAdd(editor))

		// Product import
		doc.GET("/tables/{table}/import", handlers.HandleImportDrawer(editor))
		doc.POST("/tables/{table}/import", handlers.HandleImportValidate(editor))
		doc.POST("/tables/{table}/import/commit", handlers.HandleImportCommit(editor))

		// Popup menus
		doc.POST("/menus/toggle", handlers.HandleMenuToggle(editor))
		doc.POST("/menus/close", handlers.HandleMenuClose(editor))

		// Signature blocks
		doc.POST("/signatures", handlers.HandleSignatureInsert(editor))
		doc.POST("/signatures/{signature}/signee/{user}", handlers.HandleSigneeSelect(editor))

		// Redirect home to documents list
		se.Router.GET("/{$}", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/documents")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
