package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// DocumentListItem is one row of the document list.
type DocumentListItem struct {
	ID         string
	Title      string
	Updated    string
	TableCount int
}

// DocumentListData drives the document list page.
type DocumentListData struct {
	Items []DocumentListItem
}

// DocumentListPage renders the full document list page.
func DocumentListPage(data DocumentListData) templ.Component {
	return Page("Documents", DocumentListContent(data))
}

// DocumentListContent renders the list without the page shell, for HTMX swaps.
func DocumentListContent(data DocumentListData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "page", "id", "document-list")
		h.open("div", "class", "card")
		h.raw(`<div style="display: flex; justify-content: space-between; align-items: center; margin-bottom: 16px;"><h1 style="margin: 0; font-size: 22px;">Documents</h1>`)
		h.open("form",
			"hx-post", "/documents",
			"style", "display: flex; gap: 8px;",
		)
		h.raw(`<input type="text" name="title" placeholder="New document title" required style="padding: 8px; border: 1px solid #ddd; border-radius: 4px;">`)
		h.raw(`<button type="submit" class="btn">Create</button>`)
		h.close("form")
		h.raw(`</div>`)

		if len(data.Items) == 0 {
			h.raw(`<p class="empty-documents" style="color: #888;">No documents yet.</p>`)
		} else {
			h.open("table", "style", "width: 100%; border-collapse: collapse;")
			h.raw(`<thead><tr style="text-align: left; color: #666;"><th>Title</th><th>Quote tables</th><th>Updated</th><th></th></tr></thead>`)
			h.open("tbody")
			for _, item := range data.Items {
				h.open("tr", "class", "document-row", "data-document-id", item.ID, "style", "border-top: 1px solid #eee;")
				h.open("td", "style", "padding: 10px 0;")
				h.open("a", "href", "/documents/"+item.ID+"/")
				h.text(item.Title)
				h.close("a")
				h.close("td")
				h.open("td")
				h.text(strconv.Itoa(item.TableCount))
				h.close("td")
				h.open("td")
				h.text(item.Updated)
				h.close("td")
				h.open("td", "style", "text-align: right;")
				h.open("button",
					"type", "button",
					"class", "btn btn-secondary delete-document-btn",
					"hx-delete", "/documents/"+item.ID,
					"hx-confirm", "Delete this document?",
					"hx-target", "#document-list",
					"hx-swap", "outerHTML",
				)
				h.text("Delete")
				h.close("button")
				h.close("td")
				h.close("tr")
			}
			h.close("tbody")
			h.close("table")
		}

		h.close("div")
		h.close("div")
		return h.err
	})
}
