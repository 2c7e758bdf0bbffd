package quotetable

import (
	"context"
	"fmt"
	"log"

	"github.com/PuerkitoBio/goquery"

	"quotecomposer/services"
	"quotecomposer/templates"
)

func summaryView(tableID string, s services.QuoteSummary) templates.SummaryView {
	return templates.SummaryView{
		TableID:   tableID,
		Subtotal:  services.FormatMoney(s.Subtotal),
		TaxRate:   s.TaxRate.String(),
		TaxAmount: services.FormatMoney(s.TaxAmount),
		Total:     services.FormatMoney(s.Total),
	}
}

// summaryLines reads every product row of table as raw cell text.
func summaryLines(table *goquery.Selection) []services.SummaryLine {
	var lines []services.SummaryLine
	table.Find(productRows).Each(func(_ int, row *goquery.Selection) {
		lines = append(lines, services.SummaryLine{
			QuantityText: cellText(row, services.KindQuantity),
			PriceText:    cellText(row, services.KindPrice),
			DiscountText: cellText(row, services.KindDiscount),
			Included:     isIncluded(row),
		})
	})
	return lines
}

// Summarize computes the totals of table from its rows.
func Summarize(table *goquery.Selection) services.QuoteSummary {
	return services.ComputeSummary(summaryLines(table), ConfigOf(table).TaxRate)
}

// RefreshSummary recomputes the totals of table and rewrites the summary
// block, recreating it before the footer when it is missing.
func RefreshSummary(table *goquery.Selection) (services.QuoteSummary, error) {
	tableID := table.AttrOr("data-quote-id", "")
	s := Summarize(table)
	view := summaryView(tableID, s)

	block := table.Find(".quote-summary").First()
	if block.Length() == 0 {
		html, err := templates.RenderString(context.Background(), templates.QuoteSummary(view))
		if err != nil {
			return s, fmt.Errorf("render summary: %w", err)
		}
		if footer := table.Find(".quote-footer").First(); footer.Length() > 0 {
			footer.BeforeHtml(html)
		} else {
			table.AppendHtml(html)
		}
		return s, nil
	}

	for class, value := range map[string]string{
		".subtotal-value":   view.Subtotal,
		".tax-rate-value":   view.TaxRate,
		".tax-amount-value": view.TaxAmount,
		".total-value":      view.Total,
	} {
		el := block.Find(class).First()
		if el.Length() == 0 {
			log.Printf("quotetable: summary of %s has no %s", tableID, class)
			continue
		}
		el.SetText(value)
	}
	return s, nil
}
