package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// EditorData drives the document editor page. Content is the live document
// markup and is written unescaped.
type EditorData struct {
	ID      string
	Title   string
	Content string
}

// editorScript reports the cursor position with insert requests and turns
// clicks outside an open popup into a menus/close request.
const editorScript = `
function quoteCursor() {
  var content = document.getElementById("document-content");
  var sel = window.getSelection();
  var out = {cursorBlock: "", cursorTable: "", cursorField: ""};
  if (!sel || sel.rangeCount === 0) return out;
  var node = sel.anchorNode;
  if (node && node.nodeType === 3) node = node.parentElement;
  if (!node || !content.contains(node)) return out;
  var field = node.closest(".quote-title-editable, .quote-description-editable");
  if (field) {
    out.cursorTable = field.closest(".quote-block").dataset.quoteId;
    out.cursorField = field.classList.contains("quote-title-editable") ? "title" : "description";
  }
  while (node.parentElement && node.parentElement !== content) node = node.parentElement;
  out.cursorBlock = String(Array.prototype.indexOf.call(content.children, node));
  return out;
}
document.addEventListener("click", function (evt) {
  if (!document.querySelector("#document-content .open")) return;
  if (evt.target.closest(".menu-panel, .dropdown-menu, .user-dropdown, .menu-opener, .three-dots-btn, .user-select-display")) return;
  htmx.ajax("POST", "menus/close", {target: "#document-content", swap: "innerHTML"});
});
document.body.addEventListener("closeDrawer", function () {
  document.getElementById("drawer").innerHTML = "";
});
`

// EditorPage renders the full editor page.
func EditorPage(data EditorData) templ.Component {
	return Page(data.Title, EditorContent(data))
}

// EditorContent renders the toolbar, the editable document and the
// drawer host.
func EditorContent(data EditorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div",
			"class", "page editor",
			"data-document-id", data.ID,
			"hx-target", "#document-content",
			"hx-swap", "innerHTML",
		)
		h.open("div", "class", "editor-toolbar", "style", "display: flex; gap: 8px; align-items: center; margin-bottom: 12px;")
		h.raw(`<a href="/documents" class="btn btn-secondary">&larr; Documents</a>`)
		h.open("h1", "class", "document-title", "style", "flex: 1; margin: 0; font-size: 20px;")
		h.text(data.Title)
		h.close("h1")
		h.open("button",
			"type", "button",
			"class", "btn insert-quote-table-btn",
			"hx-post", "tables",
			"hx-vals", "js:{...quoteCursor()}",
		)
		h.text("Insert Quote Table")
		h.close("button")
		h.open("button",
			"type", "button",
			"class", "btn btn-secondary insert-signature-btn",
			"hx-post", "signatures",
			"hx-vals", "js:{...quoteCursor()}",
		)
		h.text("Insert Signature")
		h.close("button")
		h.close("div")

		h.open("div", "class", "card")
		h.open("div",
			"id", "document-content",
			"class", "document-content",
			"contenteditable", "true",
			"style", "min-height: 400px; outline: none;",
		)
		h.raw(data.Content)
		h.close("div")
		h.close("div")
		// typing outside the widgets saves the whole body
		h.open("div",
			"class", "content-autosave",
			"hx-put", "content",
			"hx-trigger", "input[!target.closest('.quote-block, .signature-block')] from:#document-content delay:1s",
			"hx-vals", "js:{content: document.getElementById('document-content').innerHTML}",
			"hx-swap", "none",
		)
		h.close("div")

		h.raw(`<div id="drawer"></div>`)
		h.raw("<script>" + editorScript + "</script>")
		h.close("div")
		return h.err
	})
}
