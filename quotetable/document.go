// Package quotetable keeps quote table widgets consistent with the rich-text
// document that contains them. The document tree is the only store: every
// operation reads the widget state back from its markup, mutates it and
// tells the host the content changed.
package quotetable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Host is the editor surface the widgets live in.
type Host interface {
	// Select finds elements under scope, or in the whole document when scope is nil.
	Select(scope *goquery.Selection, selector string) *goquery.Selection
	// InsertFragment inserts markup after the block holding the cursor.
	InsertFragment(fragment string) error
	// NotifyChanged must be called after every mutation.
	NotifyChanged()
	// Selection returns the element holding the cursor, possibly empty.
	Selection() *goquery.Selection
	SetCursor(node *goquery.Selection, offset int)
	EncodeText(s string) string
}

// Prompter asks the user for confirmation and shows blocking warnings.
type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

// Document is a Host over a parsed HTML document.
type Document struct {
	doc       *goquery.Document
	cursor    *goquery.Selection
	offset    int
	listeners []func()
	revision  int
}

var _ Host = (*Document)(nil)

// NewDocument parses the body content of an editor document.
func NewDocument(content string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) body() *goquery.Selection {
	return d.doc.Find("body").First()
}

func (d *Document) Select(scope *goquery.Selection, selector string) *goquery.Selection {
	if scope == nil {
		return d.doc.Find(selector)
	}
	return scope.Find(selector)
}

func (d *Document) InsertFragment(fragment string) error {
	body := d.body()
	if body.Length() == 0 {
		return fmt.Errorf("insert fragment: document has no body")
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body.Get(0))
	if err != nil {
		return fmt.Errorf("insert fragment: %w", err)
	}
	if anchor := d.cursorBlock(); anchor.Length() > 0 {
		anchor.AfterNodes(nodes...)
	} else {
		body.AppendNodes(nodes...)
	}
	return nil
}

// cursorBlock returns the top-level block that contains the cursor.
func (d *Document) cursorBlock() *goquery.Selection {
	if d.cursor == nil {
		return d.none()
	}
	for sel := d.cursor.First(); sel.Length() > 0; sel = sel.Parent() {
		if sel.Parent().Is("body") {
			return sel
		}
	}
	return d.none()
}

func (d *Document) none() *goquery.Selection {
	return d.doc.Selection.Slice(0, 0)
}

// OnChange registers fn to run on every NotifyChanged.
func (d *Document) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

func (d *Document) NotifyChanged() {
	d.revision++
	for _, fn := range d.listeners {
		fn()
	}
}

// Revision counts change notifications since the document was loaded.
func (d *Document) Revision() int {
	return d.revision
}

func (d *Document) Selection() *goquery.Selection {
	if d.cursor == nil {
		return d.none()
	}
	return d.cursor
}

func (d *Document) SetCursor(node *goquery.Selection, offset int) {
	d.cursor = node
	d.offset = offset
}

// CursorOffset returns the offset passed to the last SetCursor.
func (d *Document) CursorOffset() int {
	return d.offset
}

func (d *Document) EncodeText(s string) string {
	return html.EscapeString(s)
}

// HTML returns the live body markup, open menus and drag artifacts included.
func (d *Document) HTML() string {
	out, err := d.body().Html()
	if err != nil {
		return ""
	}
	return out
}

// Content returns the body markup to persist: drop indicators removed,
// dragged rows restored and menus closed.
func (d *Document) Content() (string, error) {
	clone := d.body().Clone()
	clone.Find(".drop-indicator").Remove()
	clone.Find(".quote-row.dragging").Each(func(_ int, row *goquery.Selection) {
		row.RemoveClass("dragging")
		setStyle(row, "opacity", restingOpacity(row))
	})
	closeMenuElements(clone.Find(".open"))
	out, err := clone.Html()
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	return strings.TrimSpace(out), nil
}
