package quotetable

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// MenuKind names a popup family.
type MenuKind string

const (
	MenuOptions   MenuKind = "options"
	MenuTheme     MenuKind = "theme"
	MenuSelection MenuKind = "selection"
	MenuRow       MenuKind = "row"
	MenuSignee    MenuKind = "signee"
)

// ParseMenuKind validates a menu kind name.
func ParseMenuKind(s string) (MenuKind, error) {
	switch k := MenuKind(s); k {
	case MenuOptions, MenuTheme, MenuSelection, MenuRow, MenuSignee:
		return k, nil
	}
	return "", fmt.Errorf("unknown menu kind %q", s)
}

// MenuTarget identifies one popup instance.
type MenuTarget struct {
	Kind        MenuKind
	TableID     string
	RowID       string
	SignatureID string
}

// MenuTracker holds the single active menu of a document. Opening a menu
// closes the previous one; any outside pointer event closes it.
type MenuTracker struct {
	active *MenuTarget
}

// Active returns the open menu, if any.
func (t *MenuTracker) Active() (MenuTarget, bool) {
	if t.active == nil {
		return MenuTarget{}, false
	}
	return *t.active, true
}

func (t *MenuTracker) set(target MenuTarget) {
	t.active = &target
}

func (t *MenuTracker) clear() {
	t.active = nil
}

const menuElements = ".menu-panel, .dropdown-menu, .user-dropdown"

func openMenuElement(sel *goquery.Selection) {
	sel.AddClass("open")
	setStyle(sel, "display", "block")
}

func closeMenuElements(sel *goquery.Selection) {
	sel.Filter(menuElements).Each(func(_ int, s *goquery.Selection) {
		s.RemoveClass("open")
		setStyle(s, "display", "none")
	})
}
