// Package templates holds the templ components that emit the quote table
// widget markup and the editor pages around it.
package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"
)

// RenderString renders c into a string, for fragments that are inserted
// into a document tree instead of written to a response.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// htmlWriter accumulates the first write error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// attrIf writes a boolean attribute when on is set.
func (h *htmlWriter) attrIf(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

// open writes a start tag with attribute pairs.
func (h *htmlWriter) open(tag string, attrs ...string) {
	h.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	h.raw(">")
}

func (h *htmlWriter) close(tag string) {
	h.raw("</" + tag + ">")
}

// child renders a nested component into the same writer.
func (h *htmlWriter) child(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// hxVals encodes static hx-vals.
func hxVals(vals map[string]string) string {
	data, err := json.Marshal(vals)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// hiddenStyle appends display: none to style when hidden.
func hiddenStyle(style string, hidden bool) string {
	if hidden {
		return style + " display: none;"
	}
	return style
}
