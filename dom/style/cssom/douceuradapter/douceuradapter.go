/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/domchain/dom/style"
	"github.com/npillmayer/domchain/dom/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Parse parses CSS source text into a stylesheet.
func Parse(source string) (*CSSStyles, error) {
	c, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return Wrap(c), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
	}
}

// Rules returns all the qualified rules of a stylesheet. @-rules are not
// supported and left out.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		rules = append(rules, Rule(*r))
	}
	return rules
}

func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule in source order,
// e.g. "margin-top". Keys declared more than once are listed once.
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	seen := make(map[string]bool, len(r.Declarations))
	for _, d := range r.Declarations {
		if seen[d.Property] {
			continue
		}
		seen[d.Property] = true
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key with this rule, e.g. "15px".
// If a key is declared more than once, the last declaration wins.
func (r Rule) Value(key string) style.Property {
	if d := r.last(key); d != nil {
		return style.Property(d.Value)
	}
	return style.NullStyle
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.last(key); d != nil {
		return d.Important
	}
	return false
}

func (r Rule) last(key string) *css.Declaration {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == key {
			return r.Declarations[i]
		}
	}
	return nil
}

var _ cssom.Rule = Rule{}

// ParseInline parses the content of an element's `style` attribute, e.g.
// "color: red; margin: 0 4px", into a rule without selector.
// Declarations without a value are dropped.
func ParseInline(declarations string) (Rule, error) {
	text := strings.TrimSpace(declarations)
	if text == "" {
		return Rule{Kind: css.QualifiedRule}, nil
	}
	// the parser assigns a value only when a declaration is terminated
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return Rule{}, err
	}
	kept := decls[:0]
	for _, d := range decls {
		if d.Property != "" && d.Value != "" {
			kept = append(kept, d)
		}
	}
	return Rule{Kind: css.QualifiedRule, Declarations: kept}, nil
}

// Declaration is a single inline style declaration.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// DeclarationList returns the declarations of a rule in source order.
func (r Rule) DeclarationList() []Declaration {
	decls := make([]Declaration, len(r.Declarations))
	for i, d := range r.Declarations {
		decls[i] = Declaration{Property: d.Property, Value: d.Value, Important: d.Important}
	}
	return decls
}

// FormatInline serializes declarations in the format of a `style` attribute.
func FormatInline(decls []Declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";")
	}
	return b.String()
}

// ExtractStyleElements visits an HTML parse tree and searches for embedded
// <style>s. It returns the content of style-elements as style sheets, in
// document order. Style elements which fail to parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			if c, err := parser.Parse(textOf(n)); err == nil {
				sheets = append(sheets, Wrap(c))
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	if htmldoc != nil {
		walk(htmldoc)
	}
	return sheets
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			b.WriteString(ch.Data)
		}
	}
	return b.String()
}
