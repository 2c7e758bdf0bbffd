package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// SummaryView holds the formatted totals beneath a quote table.
type SummaryView struct {
	TableID   string
	Subtotal  string
	TaxRate   string
	TaxAmount string
	Total     string
}

// QuoteSummary renders the subtotal, tax and total block.
func QuoteSummary(v SummaryView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div", "class", "quote-summary", "style", "padding: 12px; display: flex; flex-direction: column; align-items: flex-end; gap: 6px;")

		line := func(label, class, value string) {
			h.open("div", "class", "summary-line", "style", "display: flex; gap: 24px;")
			h.open("span", "class", "summary-label")
			h.text(label)
			h.close("span")
			h.open("span", "class", class, "style", "min-width: 100px; text-align: right;")
			h.text(value)
			h.close("span")
			h.close("div")
		}

		line("Subtotal", "subtotal-value", v.Subtotal)

		h.open("div", "class", "summary-line tax-line", "style", "display: flex; gap: 24px; align-items: center;")
		h.raw(`<span class="summary-label">Tax (<span class="tax-rate-value">`)
		h.text(v.TaxRate)
		h.raw(`</span>%)</span>`)
		h.open("button",
			"type", "button",
			"class", "edit-tax-btn",
			"style", "background: none; border: 1px solid #ddd; border-radius: 4px; cursor: pointer; font-size: 0.8em;",
			"hx-post", "tables/"+v.TableID+"/tax",
			"hx-prompt", "Enter new tax rate (%):",
		)
		h.text("Edit")
		h.close("button")
		h.open("span", "class", "tax-amount-value", "style", "min-width: 100px; text-align: right;")
		h.text(v.TaxAmount)
		h.close("span")
		h.close("div")

		h.open("div", "class", "summary-line total-line", "style", "display: flex; gap: 24px; font-weight: 600;")
		h.raw(`<span class="summary-label">Total</span>`)
		h.open("span", "class", "total-value", "style", "min-width: 100px; text-align: right;")
		h.text(v.Total)
		h.close("span")
		h.close("div")

		h.close("div")
		return h.err
	})
}
