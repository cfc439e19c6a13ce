package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/domchain/dom/layout"
	"github.com/npillmayer/domchain/dom/style"
	"github.com/npillmayer/domchain/dom/style/cssom"
	"github.com/npillmayer/domchain/dom/style/cssom/douceuradapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a host document: a tree of HTML nodes together with the
// environment needed to style and lay it out.
//
// A Document is not safe for concurrent use. Clients mutating the tree from
// more than one goroutine have to synchronize access themselves.
type Document struct {
	root      *html.Node // node of type html.DocumentNode
	conf      config
	userAgent *douceuradapter.CSSStyles
}

// NewDocument creates an empty document with <html>, <head> and <body>
// elements.
func NewDocument(opts ...Option) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htm := newElement("html")
	htm.AppendChild(newElement("head"))
	htm.AppendChild(newElement("body"))
	root.AppendChild(htm)
	return newDocument(root, opts)
}

// Parse creates a document from HTML markup. Missing structural elements
// are inserted as described in the HTML5 parsing algorithm.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkup, err)
	}
	return newDocument(root, opts), nil
}

func newDocument(root *html.Node, opts []Option) *Document {
	doc := &Document{root: root, conf: defaultConfig()}
	for _, opt := range opts {
		opt(&doc.conf)
	}
	if strings.TrimSpace(doc.conf.userAgentCSS) != "" {
		ua, err := douceuradapter.Parse(doc.conf.userAgentCSS)
		if err != nil {
			tracer().Errorf("dom: cannot parse user-agent stylesheet: %v", err)
		} else {
			doc.userAgent = ua
		}
	}
	return doc
}

func newElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// Node returns the document node.
func (doc *Document) Node() *html.Node {
	return doc.root
}

// Root returns the document element, usually <html>.
func (doc *Document) Root() *Element {
	return doc.Augment(firstDescendant(doc.root, NodeIsElement))
}

// Head returns the <head> element, or nil.
func (doc *Document) Head() *Element {
	return doc.Augment(firstDescendant(doc.root, NodeHasTag("head")))
}

// Body returns the <body> element, or nil.
func (doc *Document) Body() *Element {
	return doc.Augment(firstDescendant(doc.root, NodeHasTag("body")))
}

// Render writes the document as HTML to w.
func (doc *Document) Render(w io.Writer) error {
	return html.Render(w, doc.root)
}

func (doc *Document) String() string {
	var b strings.Builder
	if err := doc.Render(&b); err != nil {
		return fmt.Sprintf("<!-- %v -->", err)
	}
	return b.String()
}

// Stylesheets returns the stylesheets of all <style> elements of the
// document, in document order.
func (doc *Document) Stylesheets() []*douceuradapter.CSSStyles {
	return douceuradapter.ExtractStyleElements(doc.root)
}

// --- Query and creation ----------------------------------------------------

// SelectorError is returned for selectors which cannot be compiled.
// It matches ErrSelector with errors.Is and unwraps to the cause.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrSelector, e.Selector, e.Err)
}

// Unwrap returns the error of the selector compiler.
func (e *SelectorError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSelector) hold.
func (e *SelectorError) Is(target error) bool {
	return target == ErrSelector
}

func compileSelector(selector string) (cascadia.SelectorGroup, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, &SelectorError{Selector: selector, Err: fmt.Errorf("empty selector")}
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Err: err}
	}
	return group, nil
}

// scope returns the node to search below.
func (doc *Document) scope(parent *Element) (*html.Node, error) {
	if parent == nil {
		return doc.root, nil
	}
	if parent.err != nil {
		return nil, parent.err
	}
	return parent.node, nil
}

// Query returns the first element in document order below parent which
// matches a CSS selector. If parent is nil, the whole document is searched.
// If no element matches, Query returns nil without an error.
//
// Selector lists (`h1, h2`) are supported. Compiling the selector may fail
// with an error matching ErrSelector.
func (doc *Document) Query(selector string, parent *Element) (*Element, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	scope, err := doc.scope(parent)
	if err != nil {
		return nil, err
	}
	n := firstDescendant(scope, func(n *html.Node) bool {
		return NodeIsElement(n) && sel.Match(n)
	})
	tracer().Debugf("dom: query %q: found=%v", selector, n != nil)
	return doc.Augment(n), nil
}

// QueryAll returns all elements below parent matching a CSS selector, in
// document order. If parent is nil, the whole document is searched.
// If no element matches, QueryAll returns an empty slice.
func (doc *Document) QueryAll(selector string, parent *Element) ([]*Element, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	scope, err := doc.scope(parent)
	if err != nil {
		return nil, err
	}
	nodes := descendants(scope, func(n *html.Node) bool {
		return NodeIsElement(n) && sel.Match(n)
	})
	elements := make([]*Element, len(nodes))
	for i, n := range nodes {
		elements[i] = doc.Augment(n)
	}
	tracer().Debugf("dom: query-all %q: %d matches", selector, len(elements))
	return elements, nil
}

// Create creates a new element, not yet attached to the document.
//
// Props are applied in order of their keys; recognized properties are:
//
//     id, className, title, lang, dir, name, type, value, href, src, alt,
//     placeholder, role, htmlFor           string-valued attributes
//     tabIndex                             integer-valued attribute
//     hidden, disabled, checked, readOnly,
//     required, selected                   boolean attributes
//     textContent                          text of the element
//     style                                inline styles, string or Styles
//
// Other keys fail with ErrUnknownProperty, values of the wrong type with
// ErrPropertyValue. Invalid tag names fail with ErrInvalidTagName.
//
// innerHTML is optional. Several markup arguments are concatenated in order
// before parsing, i.e. Create("ul", nil, "<li>a</li>", "<li>b</li>") equals
// Create("ul", nil, "<li>a</li><li>b</li>"). The markup is parsed as a
// fragment in the context of the new element and replaces its content. It
// is not sanitized in any way.
func (doc *Document) Create(tagName string, props Props, innerHTML ...string) (*Element, error) {
	if !isValidName(tagName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTagName, tagName)
	}
	n := newElement(strings.ToLower(tagName))
	if err := applyProps(n, props); err != nil {
		return nil, err
	}
	if markup := strings.Join(innerHTML, ""); markup != "" {
		if err := setInnerHTML(n, markup); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("dom: created <%s> with %d properties", n.Data, len(props))
	return doc.Augment(n), nil
}

// isValidName checks the rules browsers use for tag and attribute names: a
// letter followed by name characters, no whitespace or markup delimiters.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i == 0 && (r == '_' || r == ':'):
		case i == 0:
			return false
		case r >= '0' && r <= '9', r == '-', r == '.', r == '_', r == ':':
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}

func setInnerHTML(n *html.Node, markup string) error {
	context := n
	if n.Type != html.ElementNode {
		context = nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarkup, err)
	}
	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// SetStyle sets inline style properties of e and returns e. Property names
// may be given in CSS notation or in camel case ("backgroundColor"), an empty
// value removes a property. Names and values are not validated; properties
// unknown to the layout are simply not used.
func (doc *Document) SetStyle(e *Element, styles Styles) (*Element, error) {
	if e == nil {
		return nil, ErrNoElement
	}
	if e.err != nil {
		return e, e.err
	}
	setInlineStyles(e.node, styles)
	return e, nil
}

// Augment wraps an HTML node into an Element. A nil node results in a nil
// element. Augmenting a node more than once is harmless: every element
// wrapping the same node behaves identically.
func (doc *Document) Augment(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: doc}
}

// --- Styles and layout -----------------------------------------------------

// ComputedStyles runs the style cascade over the document. The cascade
// consists of the user-agent stylesheet, all <style> elements and the
// inline styles of elements.
func (doc *Document) ComputedStyles() *cssom.ComputedStyles {
	c := cssom.NewCSSOM(nil)
	if doc.userAgent != nil {
		c.AddStyles(doc.userAgent, cssom.UserAgentOrigin)
	}
	for _, sheet := range doc.Stylesheets() {
		c.AddStyles(sheet, cssom.AuthorOrigin)
	}
	fontSize := style.Property(fmt.Sprintf("%gpx", doc.conf.fontSize))
	defaults := style.InitializeDefaultPropertyValues(fontSize, nil)
	return c.Style(doc.root, inlineRule, defaults)
}

func inlineRule(n *html.Node) cssom.Rule {
	text, ok := getAttr(n, "style")
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	rule, err := douceuradapter.ParseInline(text)
	if err != nil {
		return nil
	}
	return rule
}

// layout performs a complete style and layout pass.
func (doc *Document) layout() *layout.Boxes {
	styles := doc.ComputedStyles()
	engine := layout.NewEngine(doc.conf.viewportWidth, doc.conf.viewportHeight)
	engine.FontSize = doc.conf.fontSize
	engine.LineHeight = doc.conf.lineHeight
	return engine.Layout(doc.root, styles.Styles)
}
