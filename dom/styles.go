package dom

import (
	"sort"
	"strings"
	"unicode"

	"github.com/npillmayer/domchain/dom/style/cssom/douceuradapter"
	"golang.org/x/net/html"
)

// Styles are inline style properties to set on an element. Keys may be
// given in CSS notation ("background-color") or as DOM style object
// properties ("backgroundColor"). An empty value removes a property.
type Styles map[string]string

// CSSPropertyName converts a style object property name to CSS notation:
//
//     backgroundColor  →  background-color
//     webkitTransform  →  -webkit-transform
//     cssFloat         →  float
//
// Names already in CSS notation are returned lower-cased.
func CSSPropertyName(key string) string {
	key = strings.TrimSpace(key)
	if key == "cssFloat" {
		return "float"
	}
	if strings.HasPrefix(key, "--") { // custom properties are case-sensitive
		return key
	}
	if strings.ContainsRune(key, '-') {
		return strings.ToLower(key)
	}
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	name := b.String()
	for _, vendor := range []string{"webkit-", "moz-", "ms-"} {
		if strings.HasPrefix(name, vendor) && key != name {
			return "-" + name
		}
	}
	return name
}

// inlineStyles parses the style attribute of n. Malformed content is treated
// as empty, the way browsers drop what they cannot parse.
func inlineStyles(n *html.Node) []douceuradapter.Declaration {
	text, ok := getAttr(n, "style")
	if !ok {
		return nil
	}
	rule, err := douceuradapter.ParseInline(text)
	if err != nil {
		tracer().Debugf("dom: ignoring malformed style attribute %q: %v", text, err)
		return nil
	}
	return rule.DeclarationList()
}

// setInlineStyles merges styles into the style attribute of n. Existing
// properties keep their position, new ones are appended in key order.
// Assignments which would spill into other declarations are skipped.
func setInlineStyles(n *html.Node, styles Styles) {
	decls := inlineStyles(n)
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := CSSPropertyName(k)
		value := strings.TrimSpace(styles[k])
		if value == "" {
			decls = removeDeclaration(decls, name)
			continue
		}
		d, ok := declaration(name, value)
		if !ok {
			tracer().Debugf("dom: ignoring style %q: %q", k, styles[k])
			continue
		}
		if i := indexOfDeclaration(decls, name); i >= 0 {
			decls[i] = d
			decls = append(decls[:i+1], removeDeclaration(decls[i+1:], name)...)
		} else {
			decls = append(decls, d)
		}
	}
	setAttr(n, "style", douceuradapter.FormatInline(decls))
}

// declaration returns the declaration for assigning value to a property.
// Names or values which do not parse back to exactly this one declaration
// are rejected.
func declaration(name, value string) (douceuradapter.Declaration, bool) {
	d := douceuradapter.Declaration{Property: name, Value: value}
	if v := strings.TrimSuffix(value, "!important"); v != value {
		d.Value, d.Important = strings.TrimSpace(v), true
	}
	if name == "" || d.Value == "" {
		return d, false
	}
	rule, err := douceuradapter.ParseInline(douceuradapter.FormatInline([]douceuradapter.Declaration{d}))
	if err != nil {
		return d, false
	}
	decls := rule.DeclarationList()
	if len(decls) != 1 || decls[0] != d {
		return d, false
	}
	return d, true
}

func indexOfDeclaration(decls []douceuradapter.Declaration, name string) int {
	for i, d := range decls {
		if d.Property == name {
			return i
		}
	}
	return -1
}

func removeDeclaration(decls []douceuradapter.Declaration, name string) []douceuradapter.Declaration {
	j := 0
	for _, d := range decls {
		if d.Property != name {
			decls[j] = d
			j++
		}
	}
	return decls[:j]
}

// inlineStyle returns the value of an inline style property; the last
// declaration of a property wins.
func inlineStyle(n *html.Node, name string) string {
	decls := inlineStyles(n)
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].Property == name {
			return decls[i].Value
		}
	}
	return ""
}
