package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const pageStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f5f5; color: #333; }
.page { max-width: 1100px; margin: 0 auto; padding: 24px; }
.card { background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.08); padding: 24px; }
.btn { padding: 8px 14px; border-radius: 4px; border: 1px solid #4CAF50; background: #4CAF50; color: #fff; cursor: pointer; text-decoration: none; font-size: 14px; }
.btn-secondary { background: #fff; color: #333; border-color: #ddd; }
.toast { position: fixed; right: 24px; bottom: 24px; padding: 12px 16px; border-radius: 6px; color: #fff; z-index: 3000; }
.toast-success { background: #16a34a; } .toast-error { background: #dc2626; } .toast-warning { background: #d97706; } .toast-info { background: #2563eb; }
#drawer:empty { display: none; }
#drawer { position: fixed; top: 0; right: 0; bottom: 0; width: 420px; background: #fff; box-shadow: -2px 0 12px rgba(0,0,0,0.15); overflow-y: auto; z-index: 2000; }
`

// toastScript shows showToast events and the flash_toast cookie set before
// full-page redirects.
const toastScript = `
function showToast(message, type) {
  var el = document.createElement("div");
  el.className = "toast toast-" + (type || "info");
  el.textContent = message;
  document.body.appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
}
document.body.addEventListener("showToast", function (evt) { showToast(evt.detail.message, evt.detail.type); });
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  document.cookie = "flash_toast=; Max-Age=0; path=/";
  try { var t = JSON.parse(decodeURIComponent(m[1])); showToast(t.message, t.type); } catch (e) {}
})();
`

// Page wraps content in the HTML document shell.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(w)
		h.raw("<!DOCTYPE html>")
		h.open("html", "lang", "en")
		h.raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.open("title")
		h.text(title + " · Quote Composer")
		h.close("title")
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw("<style>" + pageStyle + "</style>")
		h.raw("</head>")
		h.open("body")
		h.child(ctx, content)
		h.raw("<script>" + toastScript + "</script>")
		h.close("body")
		h.close("html")
		return h.err
	})
}
