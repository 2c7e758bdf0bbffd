package quotetable

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"quotecomposer/services"
)

const (
	confirmDeleteProduct = "Are you sure you want to delete this product?"
	confirmDeleteTable   = "Are you sure you want to delete this quote table?"
	alertNestedTable     = "Cannot insert a quote table inside a quote title or description."
	alertInvalidTaxRate  = "Please enter a valid tax rate (must be a positive number)."
)

// State is the interaction state of one open document that is not part of
// the markup: the active menu, drag gestures and cell edit snapshots.
type State struct {
	Menus   MenuTracker
	drags   map[string]*DragState
	focused map[string]string
}

// NewState returns an idle state.
func NewState() *State {
	return &State{
		drags:   make(map[string]*DragState),
		focused: make(map[string]string),
	}
}

// Drag returns the drag state of a table.
func (s *State) Drag(tableID string) DragState {
	if d, ok := s.drags[tableID]; ok {
		return *d
	}
	return DragState{}
}

func (s *State) drag(tableID string) *DragState {
	d, ok := s.drags[tableID]
	if !ok {
		d = &DragState{}
		s.drags[tableID] = d
	}
	return d
}

func cellKey(tableID, rowID string, field services.NumericKind) string {
	return tableID + "|" + rowID + "|" + string(field)
}

// Controller applies user gestures to the quote tables of one document.
type Controller struct {
	host   Host
	prompt Prompter
	state  *State
}

// NewController binds a controller to a host document.
func NewController(host Host, prompt Prompter, state *State) *Controller {
	if state == nil {
		state = NewState()
	}
	return &Controller{host: host, prompt: prompt, state: state}
}

// State returns the interaction state the controller updates.
func (c *Controller) State() *State {
	return c.state
}

// Table finds a table root by id.
func (c *Controller) Table(tableID string) (*goquery.Selection, error) {
	table := c.host.Select(nil, `.quote-block[data-quote-id="`+tableID+`"]`).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return table, nil
}

func findRow(table *goquery.Selection, rowID string) (*goquery.Selection, error) {
	row := table.Find(`.quote-row[data-row-id="` + rowID + `"]`).First()
	if row.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	return row, nil
}

func (c *Controller) tableRow(tableID, rowID string) (*goquery.Selection, *goquery.Selection, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return nil, nil, err
	}
	row, err := findRow(table, rowID)
	if err != nil {
		return nil, nil, err
	}
	return table, row, nil
}

// rerender brings every derived part of a table in line with its rows:
// empty state, theme colors and the summary.
func (c *Controller) rerender(table *goquery.Selection) error {
	syncEmptyRow(table)
	if err := ApplyTheme(table, ConfigOf(table).Theme); err != nil {
		log.Printf("quotetable: reapply theme: %v", err)
	}
	if _, err := RefreshSummary(table); err != nil {
		return err
	}
	return nil
}

// InsertQuoteTable inserts a new table after the cursor's block, followed by
// an empty paragraph that receives the cursor.
func (c *Controller) InsertQuoteTable(cfg Config) (string, error) {
	if c.host.Selection().Closest(".quote-title-editable, .quote-description-editable").Length() > 0 {
		c.prompt.Alert(alertNestedTable)
		return "", ErrCursorInEditableField
	}

	id := NewTableID()
	html, err := BuildTable(id, cfg)
	if err != nil {
		return "", err
	}
	if err := c.host.InsertFragment(html + "<p><br></p>"); err != nil {
		return "", err
	}
	table, err := c.Table(id)
	if err != nil {
		return "", err
	}
	if err := c.rerender(table); err != nil {
		return "", err
	}
	if p := table.NextFiltered("p"); p.Length() > 0 {
		c.host.SetCursor(p, 0)
	}
	c.host.NotifyChanged()
	return id, nil
}

// addRow renders r into table. In only-one mode it replaces every
// existing row.
func addRow(table *goquery.Selection, r Row) error {
	cfg := ConfigOf(table)
	html, err := RenderRow(table.AttrOr("data-quote-id", ""), r, cfg)
	if err != nil {
		return fmt.Errorf("render row: %w", err)
	}
	body := table.Find(".quote-body").First()
	if body.Length() == 0 {
		return fmt.Errorf("%w: %s has no body", ErrTableNotFound, table.AttrOr("id", ""))
	}
	if cfg.SelectionMode == OnlyOne {
		table.Find(productRows).Remove()
	}
	body.AppendHtml(html)
	return nil
}

// AddProduct appends a product row built from form and returns its id.
func (c *Controller) AddProduct(tableID string, form services.ProductForm) (string, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return "", err
	}
	form.RowID = ""
	r := RowFromForm(form)
	if err := addRow(table, r); err != nil {
		return "", err
	}
	if err := c.rerender(table); err != nil {
		return "", err
	}
	c.host.NotifyChanged()
	return r.ID, nil
}

// SubmitProduct handles the product form: with the id of an existing row
// it replaces that row in place, otherwise it adds a new one.
func (c *Controller) SubmitProduct(tableID string, form services.ProductForm) (string, error) {
	if form.RowID == "" {
		return c.AddProduct(tableID, form)
	}
	table, row, err := c.tableRow(tableID, form.RowID)
	if errors.Is(err, ErrRowNotFound) {
		return c.AddProduct(tableID, form)
	}
	if err != nil {
		return "", err
	}

	r := RowFromForm(form)
	r.Included = isIncluded(row)
	html, err := RenderRow(tableID, r, ConfigOf(table))
	if err != nil {
		return "", fmt.Errorf("render row: %w", err)
	}
	row.ReplaceWithHtml(html)
	c.state.Menus.clear()
	if err := c.rerender(table); err != nil {
		return "", err
	}
	c.host.NotifyChanged()
	return r.ID, nil
}

// ImportProducts appends one row per form and returns the new row ids.
func (c *Controller) ImportProducts(tableID string, forms []services.ProductForm) ([]string, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(forms))
	for _, form := range forms {
		form.RowID = ""
		r := RowFromForm(form)
		if err := addRow(table, r); err != nil {
			return ids, err
		}
		ids = append(ids, r.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if err := c.rerender(table); err != nil {
		return ids, err
	}
	c.host.NotifyChanged()
	return ids, nil
}

// AddCatalogProduct adds a catalog product with quantity 1 and no discount.
func (c *Controller) AddCatalogProduct(tableID string, p services.Product) (string, error) {
	return c.AddProduct(tableID, p.ToForm())
}

// EditProduct returns the edit form prefill for a row.
func (c *Controller) EditProduct(tableID, rowID string) (services.ProductForm, error) {
	_, row, err := c.tableRow(tableID, rowID)
	if err != nil {
		return services.ProductForm{}, err
	}
	c.closeActive()
	return ReadRow(row).Form(), nil
}

// DeleteProduct removes a row after confirmation. It reports whether the
// row was removed.
func (c *Controller) DeleteProduct(tableID, rowID string) (bool, error) {
	table, row, err := c.tableRow(tableID, rowID)
	if err != nil {
		return false, err
	}
	if !c.prompt.Confirm(confirmDeleteProduct) {
		return false, nil
	}
	c.closeActive()
	row.Remove()
	if c.state.Drag(tableID).RowID == rowID {
		c.state.drag(tableID).reset()
	}
	if err := c.rerender(table); err != nil {
		return true, err
	}
	c.host.NotifyChanged()
	return true, nil
}

func editableKind(field string) (services.NumericKind, error) {
	kind := services.NumericKind(field)
	if !services.ValidKind(kind) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return kind, nil
}

func (c *Controller) editableCell(tableID, rowID, field string) (*goquery.Selection, *goquery.Selection, *goquery.Selection, services.NumericKind, error) {
	kind, err := editableKind(field)
	if err != nil {
		return nil, nil, nil, "", err
	}
	table, row, err := c.tableRow(tableID, rowID)
	if err != nil {
		return nil, nil, nil, "", err
	}
	el := cell(row, kind)
	if el.Length() == 0 {
		return nil, nil, nil, "", fmt.Errorf("%w: %q not in row %s", ErrUnknownField, field, rowID)
	}
	return table, row, el, kind, nil
}

// FocusCell snapshots a cell's text so that RevertCell can restore it.
func (c *Controller) FocusCell(tableID, rowID, field string) error {
	_, _, el, kind, err := c.editableCell(tableID, rowID, field)
	if err != nil {
		return err
	}
	c.state.focused[cellKey(tableID, rowID, kind)] = strings.TrimSpace(el.Text())
	return nil
}

// CommitCell stores edited cell text: the value is parsed, the cell shows
// its normalized form and the amount and summary follow.
func (c *Controller) CommitCell(tableID, rowID, field, text string) (string, error) {
	table, row, el, kind, err := c.editableCell(tableID, rowID, field)
	if err != nil {
		return "", err
	}
	_, display := services.NormalizeCell(text, kind)
	el.SetText(display)
	delete(c.state.focused, cellKey(tableID, rowID, kind))

	refreshAmount(row)
	if _, err := RefreshSummary(table); err != nil {
		return display, err
	}
	c.host.NotifyChanged()
	return display, nil
}

// RevertCell restores the text a cell had when it was focused.
func (c *Controller) RevertCell(tableID, rowID, field string) (string, error) {
	table, row, el, kind, err := c.editableCell(tableID, rowID, field)
	if err != nil {
		return "", err
	}
	key := cellKey(tableID, rowID, kind)
	text, ok := c.state.focused[key]
	if !ok {
		return strings.TrimSpace(el.Text()), nil
	}
	delete(c.state.focused, key)
	el.SetText(text)

	refreshAmount(row)
	if _, err := RefreshSummary(table); err != nil {
		return text, err
	}
	c.host.NotifyChanged()
	return text, nil
}

// SetIncluded sets the inclusion checkbox of an all-optional row.
func (c *Controller) SetIncluded(tableID, rowID string, checked bool) error {
	table, row, err := c.tableRow(tableID, rowID)
	if err != nil {
		return err
	}
	box := row.Find(".product-checkbox").First()
	if box.Length() == 0 {
		log.Printf("quotetable: row %s has no inclusion checkbox", rowID)
		return nil
	}
	if checked {
		box.SetAttr("checked", "")
	} else {
		box.RemoveAttr("checked")
	}
	setStyle(row, "opacity", restingOpacity(row))
	if _, err := RefreshSummary(table); err != nil {
		return err
	}
	c.host.NotifyChanged()
	return nil
}

// SetColumnVisible shows or hides one column of a table.
func (c *Controller) SetColumnVisible(tableID, column string, visible bool) error {
	table, err := c.Table(tableID)
	if err != nil {
		return err
	}
	cfg := ConfigOf(table)
	available := false
	for _, col := range cfg.AvailableColumns() {
		if col == column {
			available = true
		}
	}
	if !available {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	vis := cfg.Columns
	if err := vis.Set(column, visible); err != nil {
		return err
	}
	UpdateTableColumns(table, vis)
	if _, err := RefreshSummary(table); err != nil {
		return err
	}
	c.host.NotifyChanged()
	return nil
}

// SetTaxRate changes the tax rate from user input. Anything but a
// non-negative number is rejected with a warning and changes nothing.
func (c *Controller) SetTaxRate(tableID, text string) (decimal.Decimal, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := ParseTaxRate(text)
	if err != nil {
		c.prompt.Alert(alertInvalidTaxRate)
		return ConfigOf(table).TaxRate, err
	}
	table.SetAttr("data-tax-rate", rate.String())
	if _, err := RefreshSummary(table); err != nil {
		return rate, err
	}
	c.host.NotifyChanged()
	return rate, nil
}

// SetTheme applies a theme from the theme menu and closes the menu.
func (c *Controller) SetTheme(tableID, themeID string) error {
	table, err := c.Table(tableID)
	if err != nil {
		return err
	}
	if err := ApplyTheme(table, themeID); err != nil {
		return err
	}
	c.closeActive()
	c.host.NotifyChanged()
	return nil
}

// SetSelectionMode switches the selection mode and returns the number of
// rows dropped by a switch to only-one.
func (c *Controller) SetSelectionMode(tableID, mode string) (int, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return 0, err
	}
	m, err := ParseSelectionMode(mode)
	if err != nil {
		return 0, err
	}
	dropped, err := ApplySelectionMode(table, m)
	if err != nil {
		return dropped, err
	}
	c.closeActive()
	if err := c.rerender(table); err != nil {
		return dropped, err
	}
	c.host.NotifyChanged()
	return dropped, nil
}

// ToggleDescription shows or hides the description area and reports
// whether it is now visible.
func (c *Controller) ToggleDescription(tableID string) (bool, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return false, err
	}
	container := table.Find(".quote-description-container").First()
	if container.Length() == 0 {
		log.Printf("quotetable: table %s has no description area", tableID)
		return false, nil
	}
	visible := isHidden(container)
	show(container, visible)
	label := "+ Add description"
	if visible {
		label = "- Hide description"
	}
	table.Find(".description-toggle-btn").First().SetText(label)
	c.host.NotifyChanged()
	return visible, nil
}

// SetTitle replaces the table title text.
func (c *Controller) SetTitle(tableID, text string) error {
	return c.setEditable(tableID, ".quote-title-editable", text)
}

// SetDescription replaces the table description text.
func (c *Controller) SetDescription(tableID, text string) error {
	return c.setEditable(tableID, ".quote-description-editable", text)
}

func (c *Controller) setEditable(tableID, selector, text string) error {
	table, err := c.Table(tableID)
	if err != nil {
		return err
	}
	el := table.Find(selector).First()
	if el.Length() == 0 {
		log.Printf("quotetable: table %s has no %s", tableID, selector)
		return nil
	}
	el.SetText(strings.TrimSpace(text))
	c.host.NotifyChanged()
	return nil
}

// DeleteTable removes a whole table after confirmation.
func (c *Controller) DeleteTable(tableID string) (bool, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return false, err
	}
	if !c.prompt.Confirm(confirmDeleteTable) {
		return false, nil
	}
	if active, ok := c.state.Menus.Active(); ok && active.TableID == tableID {
		c.state.Menus.clear()
	}
	delete(c.state.drags, tableID)
	table.Remove()
	c.host.NotifyChanged()
	return true, nil
}

// ExportTable collects the printable content of a table and the
// document's signature blocks.
func (c *Controller) ExportTable(tableID string) (services.ExportData, error) {
	table, err := c.Table(tableID)
	if err != nil {
		return services.ExportData{}, err
	}
	cfg := ConfigOf(table)
	data := services.ExportData{
		Title:       strings.TrimSpace(table.Find(".quote-title-editable").First().Text()),
		Description: strings.TrimSpace(table.Find(".quote-description-editable").First().Text()),
		Columns:     cfg.VisibleColumns(),
		Summary:     Summarize(table),
	}
	table.Find(productRows).Each(func(i int, row *goquery.Selection) {
		r := ReadRow(row)
		data.Rows = append(data.Rows, services.ExportRow{
			Index:       i + 1,
			ProductName: r.ProductName,
			Description: r.Description,
			Quantity:    services.FormatNumeric(r.Quantity, services.KindQuantity),
			Price:       services.FormatNumeric(r.Price, services.KindPrice),
			Discount:    services.FormatNumeric(r.Discount, services.KindDiscount),
			Amount:      services.FormatMoney(r.Amount()),
			Included:    r.Included,
		})
	})
	data.Signatures = c.signatures()
	return data, nil
}
