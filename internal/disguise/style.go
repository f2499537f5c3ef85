package disguise

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/parser"
)

type declaration struct {
	name  string
	value string
}

// parseStyle tokenizes an inline style attribute. ok is false when the
// attribute is not valid CSS and must be left alone.
func parseStyle(style string) (decls []declaration, ok bool) {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil, true
	}
	// A trailing declaration without ";" is otherwise dropped by the parser.
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}

	parsed, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, false
	}
	for _, d := range parsed {
		name := strings.ToLower(strings.TrimSpace(d.Property))
		if name == "" {
			continue
		}
		value := d.Value
		if d.Important {
			value += " !important"
		}
		decls = append(decls, declaration{name: name, value: value})
	}
	return decls, true
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.name+": "+d.value)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

func styleProperty(sel *goquery.Selection, name string) string {
	style, _ := sel.Attr("style")
	decls, _ := parseStyle(style)
	for _, d := range decls {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

func writeStyle(sel *goquery.Selection, decls []declaration) {
	if style := formatStyle(decls); style != "" {
		sel.SetAttr("style", style)
		return
	}
	sel.RemoveAttr("style")
}

// removeStyleProperty drops name from the inline style of every node in sel.
func removeStyleProperty(sel *goquery.Selection, name string) {
	sel.Each(func(_ int, node *goquery.Selection) {
		style, ok := node.Attr("style")
		if !ok {
			return
		}
		decls, parsed := parseStyle(style)
		if !parsed {
			return
		}
		kept := decls[:0]
		for _, d := range decls {
			if d.name != name {
				kept = append(kept, d)
			}
		}
		writeStyle(node, kept)
	})
}

// setStyleProperty sets name on the inline style of every node in sel,
// replacing any previous value.
func setStyleProperty(sel *goquery.Selection, name, value string) {
	sel.Each(func(_ int, node *goquery.Selection) {
		style, _ := node.Attr("style")
		decls, parsed := parseStyle(style)
		if !parsed {
			node.SetAttr("style", strings.TrimRight(strings.TrimSpace(style), ";")+"; "+name+": "+value+";")
			return
		}
		replaced := false
		for i := range decls {
			if decls[i].name == name {
				decls[i].value = value
				replaced = true
			}
		}
		if !replaced {
			decls = append(decls, declaration{name: name, value: value})
		}
		writeStyle(node, decls)
	})
}
