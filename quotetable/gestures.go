package quotetable

import (
	"fmt"
	"log"

	"github.com/PuerkitoBio/goquery"

	"quotecomposer/services"
)

// menuElement finds the popup panel of a menu target.
func (c *Controller) menuElement(target MenuTarget) (*goquery.Selection, error) {
	if target.Kind == MenuSignee {
		block, err := c.signatureBlock(target.SignatureID)
		if err != nil {
			return nil, err
		}
		return block.Find(".user-dropdown").First(), nil
	}

	table, err := c.Table(target.TableID)
	if err != nil {
		return nil, err
	}
	switch target.Kind {
	case MenuRow:
		row, err := findRow(table, target.RowID)
		if err != nil {
			return nil, err
		}
		return row.Find(".dropdown-menu").First(), nil
	case MenuOptions, MenuTheme, MenuSelection:
		return table.Find(`.quote-menu[data-menu-kind="` + string(target.Kind) + `"] .menu-panel`).First(), nil
	}
	return nil, fmt.Errorf("unknown menu kind %q", target.Kind)
}

// closeActive closes the active menu and any stray open popup.
func (c *Controller) closeActive() {
	c.state.Menus.clear()
	closeMenuElements(c.host.Select(nil, ".open"))
}

// ToggleMenu opens target, closing whatever menu was open, or closes
// target when it is the open menu.
func (c *Controller) ToggleMenu(target MenuTarget) (bool, error) {
	panel, err := c.menuElement(target)
	if err != nil {
		return false, err
	}
	if panel.Length() == 0 {
		log.Printf("quotetable: no %s menu for %+v", target.Kind, target)
		return false, nil
	}

	active, ok := c.state.Menus.Active()
	c.closeActive()
	if ok && active == target {
		c.host.NotifyChanged()
		return false, nil
	}
	openMenuElement(panel)
	c.state.Menus.set(target)
	c.host.NotifyChanged()
	return true, nil
}

// CloseMenus handles a pointer event outside the open menu.
func (c *Controller) CloseMenus() {
	if _, ok := c.state.Menus.Active(); !ok && c.host.Select(nil, ".open").Length() == 0 {
		return
	}
	c.closeActive()
	c.host.NotifyChanged()
}

// StartDrag begins dragging a row by its handle.
func (c *Controller) StartDrag(tableID, rowID string) error {
	table, row, err := c.tableRow(tableID, rowID)
	if err != nil {
		return err
	}
	c.clearDrag(table)
	c.state.drag(tableID).start(rowID)
	row.AddClass("dragging")
	setStyle(row, "opacity", "0.5")
	c.host.NotifyChanged()
	return nil
}

// DragOver shows the insertion line above or below the hovered row.
func (c *Controller) DragOver(tableID, rowID string, offsetY, height float64) error {
	d := c.state.Drag(tableID)
	if d.Phase != DragDragging {
		return nil
	}
	table, err := c.Table(tableID)
	if err != nil {
		return err
	}
	table.Find(".drop-indicator").Remove()
	if rowID == "" || rowID == d.RowID {
		c.host.NotifyChanged()
		return nil
	}
	row, err := findRow(table, rowID)
	if err != nil {
		return err
	}
	if row.HasClass("empty-row") {
		return nil
	}
	theme, ok := services.FindTheme(ConfigOf(table).Theme)
	if !ok {
		theme, _ = services.FindTheme(services.DefaultThemeID)
	}
	row.AppendHtml(indicatorHTML(dropPosition(offsetY, height), theme.AccentColor))
	c.host.NotifyChanged()
	return nil
}

// Drop moves the dragged row next to the row it was dropped on. When no
// row is given the last shown indicator decides the position.
func (c *Controller) Drop(tableID, rowID string, offsetY, height float64) error {
	d := c.state.Drag(tableID)
	if d.Phase != DragDragging {
		return nil
	}
	table, err := c.Table(tableID)
	if err != nil {
		return err
	}
	defer c.host.NotifyChanged()

	dragged, err := findRow(table, d.RowID)
	if err != nil {
		c.clearDrag(table)
		return err
	}

	var target *goquery.Selection
	pos := dropPosition(offsetY, height)
	if rowID != "" {
		target, err = findRow(table, rowID)
		if err != nil {
			c.clearDrag(table)
			return err
		}
	} else if ind := table.Find(".drop-indicator").First(); ind.Length() > 0 {
		target = ind.Parent()
		pos = DropPosition(ind.AttrOr("data-position", string(DropAfter)))
	}

	c.clearDrag(table)
	if target == nil || target.HasClass("empty-row") || target.AttrOr("data-row-id", "") == d.RowID {
		return nil
	}
	if pos == DropBefore {
		target.BeforeSelection(dragged)
	} else {
		target.AfterSelection(dragged)
	}
	return c.rerender(table)
}

// EndDrag cancels a drag that ended without a drop.
func (c *Controller) EndDrag(tableID string) error {
	if c.state.Drag(tableID).Phase != DragDragging {
		return nil
	}
	table, err := c.Table(tableID)
	if err != nil {
		c.state.drag(tableID).reset()
		return err
	}
	c.clearDrag(table)
	c.host.NotifyChanged()
	return nil
}

// clearDrag is the common exit of every drag path: indicators removed,
// opacity restored, state idle.
func (c *Controller) clearDrag(table *goquery.Selection) {
	table.Find(".drop-indicator").Remove()
	table.Find(".quote-row.dragging").Each(func(_ int, row *goquery.Selection) {
		row.RemoveClass("dragging")
		setStyle(row, "opacity", restingOpacity(row))
	})
	c.state.drag(table.AttrOr("data-quote-id", "")).reset()
}
