package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quotecomposer/services"
)

// SignatureBlock renders a signature block with a signee dropdown.
func SignatureBlock(id string, users []services.User) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.open("div",
			"id", id,
			"class", "signature-block",
			"contenteditable", "false",
			"style", "margin: 20px auto; padding: 15px; border: 1px solid #ddd; border-radius: 8px; background-color: #f9f9f9; width: 30%;",
		)
		h.raw(`<div class="signature-header" style="margin-bottom: 15px; padding-bottom: 10px;"><h3 style="margin: 0; font-size: 16px; color: #333;">Signature Block</h3></div>`)
		h.open("div", "class", "signature-user-selection")
		h.raw(`<div style="display: block; margin-bottom: 5px; font-weight: 500;">Select Signee(s)</div>`)
		h.open("div", "class", "user-select-wrapper", "style", "position: relative;")
		h.open("div",
			"class", "user-select-display",
			"data-signature-id", id,
			"style", "width: 100%; padding: 8px 12px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box; cursor: pointer; display: flex; justify-content: space-between;",
			"hx-post", "menus/toggle",
			"hx-vals", hxVals(map[string]string{"kind": "signee", "signature": id}),
		)
		h.open("span", "class", "selected-user-name")
		h.text("Select a user...")
		h.close("span")
		h.raw("<span>&#9662;</span>")
		h.close("div")
		h.open("div",
			"class", "user-dropdown",
			"style", "display: none; position: absolute; width: 100%; max-height: 200px; overflow-y: auto; background: white; border: 1px solid #ddd; z-index: 1000;",
		)
		for _, u := range users {
			h.open("div",
				"class", "user-option",
				"data-user-id", u.ID,
				"style", "padding: 8px 12px; cursor: pointer; border-bottom: 1px solid #f0f0f0;",
				"hx-post", "signatures/"+id+"/signee/"+u.ID,
			)
			h.open("div", "style", "font-weight: 500;")
			h.text(u.Name)
			h.close("div")
			h.open("div", "style", "font-size: 12px; color: #666;")
			h.text(u.Email + " - " + u.Role)
			h.close("div")
			h.close("div")
		}
		h.close("div")
		h.close("div")
		h.close("div")
		h.close("div")
		return h.err
	})
}
