package quotetable

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"quotecomposer/services"
)

type stubPrompter struct {
	confirm  bool
	confirms []string
	alerts   []string
}

func (p *stubPrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.confirm
}

func (p *stubPrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

type fixture struct {
	doc     *Document
	ctrl    *Controller
	prompt  *stubPrompter
	tableID string
}

// newFixture inserts one table with cfg after an intro paragraph.
func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	doc, err := NewDocument("<p>Intro</p>")
	require.NoError(t, err)
	doc.SetCursor(doc.Select(nil, "p").First(), 0)

	prompt := &stubPrompter{confirm: true}
	ctrl := NewController(doc, prompt, NewState())
	id, err := ctrl.InsertQuoteTable(cfg)
	require.NoError(t, err)
	return &fixture{doc: doc, ctrl: ctrl, prompt: prompt, tableID: id}
}

func (f *fixture) table(t *testing.T) *goquery.Selection {
	t.Helper()
	table, err := f.ctrl.Table(f.tableID)
	require.NoError(t, err)
	return table
}

func (f *fixture) text(t *testing.T, selector string) string {
	t.Helper()
	return strings.TrimSpace(f.table(t).Find(selector).First().Text())
}

func (f *fixture) rows(t *testing.T) *goquery.Selection {
	t.Helper()
	return f.table(t).Find(productRows)
}

func (f *fixture) add(t *testing.T, name, qty, price, discount string) string {
	t.Helper()
	id, err := f.ctrl.AddProduct(f.tableID, form(name, qty, price, discount))
	require.NoError(t, err)
	return id
}

func form(name, qty, price, discount string) services.ProductForm {
	return services.ProductForm{ProductName: name, Quantity: qty, Price: price, Discount: discount}
}

func rowIDs(rows *goquery.Selection) []string {
	var ids []string
	rows.Each(func(_ int, r *goquery.Selection) {
		ids = append(ids, r.AttrOr("data-row-id", ""))
	})
	return ids
}
