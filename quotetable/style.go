package quotetable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type declaration struct {
	prop  string
	value string
}

func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value + ";"
	}
	return strings.Join(parts, " ")
}

// setStyle sets one inline style property on every element of sel,
// keeping the other declarations in place. An empty value removes it.
func setStyle(sel *goquery.Selection, prop, value string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		decls := parseStyle(style)
		out := decls[:0]
		found := false
		for _, d := range decls {
			if d.prop == prop {
				if found || value == "" {
					continue
				}
				d.value = value
				found = true
			}
			out = append(out, d)
		}
		if !found && value != "" {
			out = append(out, declaration{prop: prop, value: value})
		}
		if len(out) == 0 {
			s.RemoveAttr("style")
			return
		}
		s.SetAttr("style", formatStyle(out))
	})
}

// styleOf returns an inline style property of the first element of sel.
func styleOf(sel *goquery.Selection, prop string) string {
	style, _ := sel.First().Attr("style")
	for _, d := range parseStyle(style) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

func show(sel *goquery.Selection, visible bool) {
	if visible {
		setStyle(sel, "display", "")
		return
	}
	setStyle(sel, "display", "none")
}

func isHidden(sel *goquery.Selection) bool {
	return styleOf(sel, "display") == "none"
}
