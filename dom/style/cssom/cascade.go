package cssom

import (
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/domchain/dom/style"
	"golang.org/x/net/html"
)

// CSSOM holds the stylesheets taking part in the cascade.
type CSSOM struct {
	sheets []scopedSheet
}

type scopedSheet struct {
	origin Origin
	sheet  StyleSheet
}

// NewCSSOM creates a CSSOM with an optional user-agent stylesheet.
func NewCSSOM(userAgent StyleSheet) *CSSOM {
	cssom := &CSSOM{}
	if userAgent != nil {
		cssom.AddStyles(userAgent, UserAgentOrigin)
	}
	return cssom
}

// AddStyles appends a stylesheet of a given origin. Sheets added later win
// over earlier ones for declarations of equal importance and specificity.
func (cssom *CSSOM) AddStyles(sheet StyleSheet, origin Origin) {
	if sheet == nil || sheet.Empty() {
		return
	}
	cssom.sheets = append(cssom.sheets, scopedSheet{origin: origin, sheet: sheet})
}

// Size returns the number of stylesheets in the CSSOM.
func (cssom *CSSOM) Size() int {
	return len(cssom.sheets)
}

// InlineStyles returns the inline style rule of an element, or nil.
type InlineStyles func(*html.Node) Rule

// ComputedStyles holds the property maps computed for the element nodes of
// a document tree.
type ComputedStyles struct {
	styles   map[*html.Node]*style.PropertyMap
	defaults *style.PropertyMap
}

// Styles returns the property map computed for n. For a document node it
// returns the root defaults. It is a css.StyleLookup.
func (cs *ComputedStyles) Styles(n *html.Node) *style.PropertyMap {
	if cs == nil || n == nil {
		return nil
	}
	if n.Type == html.DocumentNode {
		return cs.defaults
	}
	return cs.styles[n]
}

// Size returns the number of styled nodes.
func (cs *ComputedStyles) Size() int {
	if cs == nil {
		return 0
	}
	return len(cs.styles)
}

type compiledRule struct {
	origin    Origin
	rule      Rule
	selectors cascadia.SelectorGroup
	order     int
}

type declaration struct {
	key       string
	value     style.Property
	important bool
	origin    Origin
	spec      cascadia.Specificity
	order     int
}

// Style computes the styles for every element below root. defaults are the
// root property defaults used for inheritance; inline may be nil.
//
// Rules with selectors cascadia cannot parse are skipped, just as a browser
// drops them.
func (cssom *CSSOM) Style(root *html.Node, inline InlineStyles, defaults *style.PropertyMap) *ComputedStyles {
	rules := cssom.compile()
	cs := &ComputedStyles{
		styles:   make(map[*html.Node]*style.PropertyMap),
		defaults: defaults,
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			cs.styles[n] = styleNode(n, rules, inline)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	tracer().Debugf("cssom: computed styles for %d elements from %d rules", len(cs.styles), len(rules))
	return cs
}

func (cssom *CSSOM) compile() []compiledRule {
	var rules []compiledRule
	order := 0
	for _, s := range cssom.sheets {
		for _, r := range s.sheet.Rules() {
			group, err := cascadia.ParseGroup(r.Selector())
			if err != nil {
				tracer().Infof("cssom: skipping rule with selector %q: %v", r.Selector(), err)
				continue
			}
			rules = append(rules, compiledRule{
				origin:    s.origin,
				rule:      r,
				selectors: group,
				order:     order,
			})
			order++
		}
	}
	return rules
}

func styleNode(n *html.Node, rules []compiledRule, inline InlineStyles) *style.PropertyMap {
	var decls []declaration
	for _, r := range rules {
		spec, ok := matchSpecificity(r.selectors, n)
		if !ok {
			continue
		}
		decls = appendDeclarations(decls, r.rule, r.origin, spec, r.order)
	}
	if inline != nil {
		if r := inline(n); r != nil {
			decls = appendDeclarations(decls, r, InlineOrigin, cascadia.Specificity{}, len(rules))
		}
	}
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].less(decls[j])
	})
	pmap := style.NewPropertyMap()
	for _, d := range decls {
		pmap.Add(d.key, d.value)
	}
	return pmap
}

// matchSpecificity returns the highest specificity of all selectors in group
// matching n.
func matchSpecificity(group cascadia.SelectorGroup, n *html.Node) (cascadia.Specificity, bool) {
	var best cascadia.Specificity
	found := false
	for _, sel := range group {
		if !sel.Match(n) {
			continue
		}
		if s := sel.Specificity(); !found || best.Less(s) {
			best = s
		}
		found = true
	}
	return best, found
}

func appendDeclarations(decls []declaration, r Rule, origin Origin, spec cascadia.Specificity, order int) []declaration {
	for _, key := range r.Properties() {
		decls = append(decls, declaration{
			key:       key,
			value:     r.Value(key),
			important: r.IsImportant(key),
			origin:    origin,
			spec:      spec,
			order:     order,
		})
	}
	return decls
}

// precedence ranks importance and origin:
// UA < author < inline < author!important < inline!important < UA!important.
func (d declaration) precedence() int {
	if !d.important {
		return int(d.origin)
	}
	switch d.origin {
	case AuthorOrigin:
		return 3
	case InlineOrigin:
		return 4
	}
	return 5
}

func (d declaration) less(other declaration) bool {
	if p, q := d.precedence(), other.precedence(); p != q {
		return p < q
	}
	if d.origin == InlineOrigin && other.origin == InlineOrigin {
		return false
	}
	if d.spec != other.spec {
		return d.spec.Less(other.spec)
	}
	return d.order < other.order
}
