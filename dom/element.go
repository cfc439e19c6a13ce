package dom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/domchain/dom/w3cdom"
	"golang.org/x/net/html"
)

// Element wraps an HTML node of a document and offers chainable helpers
// for it. Elements are created by Document.Augment and by the query and
// create operations of a Document.
//
// An element does not own its node; several elements may wrap the same
// node. The helpers Add, Create, SetStyle and Attr record the first error
// they encounter on the element they return. Helpers called on an element with
// an error do nothing. Chain helpers called on a nil element return nil.
type Element struct {
	node *html.Node
	doc  *Document
	err  error
}

var _ w3cdom.Element = &Element{}

func failed(doc *Document, err error) *Element {
	return &Element{doc: doc, err: err}
}

func (e *Element) fail(err error) *Element {
	if e.err == nil {
		e.err = err
	}
	return e
}

// Err returns the first error recorded while chaining helpers.
func (e *Element) Err() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Node returns the wrapped HTML node. It is nil for elements carrying an
// error from their creation.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Document returns the document the element belongs to.
func (e *Element) Document() *Document {
	if e == nil {
		return nil
	}
	return e.doc
}

func (e *Element) ok() bool {
	return e != nil && e.err == nil && e.node != nil
}

// --- Chaining helpers ------------------------------------------------------

// Access is the result of Attr. In write mode it carries the element
// which has been written to; in read mode it additionally carries the value
// of the attribute, if present.
type Access struct {
	element *Element
	value   string
	present bool
	written bool
}

// Element returns the element Attr has been called on, for further chaining.
func (a Access) Element() *Element {
	return a.element
}

// Value returns the attribute value and whether the attribute is present.
// After a write it returns the value written.
func (a Access) Value() (string, bool) {
	return a.value, a.present
}

// IsWrite is true if Attr has set the attribute.
func (a Access) IsWrite() bool {
	return a.written
}

// Err returns the error recorded on the element, e.g. for an attempt to
// write an attribute with an invalid name.
func (a Access) Err() error {
	return a.element.Err()
}

func (a Access) String() string {
	if !a.present {
		return "<absent>"
	}
	return a.value
}

// Attr reads or writes an attribute. If a value is given which is not
// “falsy”, the attribute is set to its textual form and Attr is in write
// mode. Otherwise Attr reads the attribute.
//
// Falsy values are nil, false, "", numeric zero and NaN. Hence
//
//     e.Attr("data-count", 0)
//     e.Attr("title", "")
//
// read the attributes instead of setting them. Use SetAttribute to set an
// attribute to such a value.
//
// Writing an attribute with an invalid name records ErrInvalidAttrName on
// the element and leaves the attribute untouched.
func (e *Element) Attr(key string, value ...any) Access {
	acc := Access{element: e}
	if !e.ok() {
		return acc
	}
	key = strings.ToLower(key)
	if len(value) > 0 && !isFalsy(value[0]) {
		if !isValidName(key) {
			e.fail(fmt.Errorf("attr: %w: %q", ErrInvalidAttrName, key))
			return acc
		}
		s, ok := stringValue(value[0])
		if !ok {
			s = fmt.Sprint(value[0])
		}
		setAttr(e.node, key, s)
		acc.value, acc.present, acc.written = s, true, true
		return acc
	}
	acc.value, acc.present = getAttr(e.node, key)
	return acc
}

// Rect returns the border box of the element relative to the viewport. It
// performs a style and layout pass over the whole document on each call.
// Elements not attached to their document, not rendered or carrying an
// error report an empty rect at the origin.
func (e *Element) Rect() w3cdom.DOMRect {
	if !e.ok() || e.doc == nil || rootOf(e.node) != e.doc.root {
		return w3cdom.DOMRect{}
	}
	r, _ := e.doc.layout().Rect(e.node)
	return r
}

// GetBoundingClientRect is an alias for Rect.
func (e *Element) GetBoundingClientRect() w3cdom.DOMRect {
	return e.Rect()
}

// Add appends child as the last child of e and returns e. If child is
// currently attached elsewhere, it is moved. Adding an ancestor of e (or e
// itself) is an error.
func (e *Element) Add(child *Element) *Element {
	if e == nil || e.err != nil {
		return e
	}
	if child == nil {
		return e.fail(fmt.Errorf("add: %w", ErrNoElement))
	}
	if child.err != nil {
		return e.fail(child.err)
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == child.node {
			return e.fail(fmt.Errorf("add: %w: <%s> contains <%s>", ErrHierarchy,
				child.node.Data, e.node.Data))
		}
	}
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	return e
}

// Create creates a new element (see Document.Create), appends it as the
// last child of e and returns the new child.
func (e *Element) Create(tagName string, props Props, innerHTML ...string) *Element {
	if e == nil {
		return nil
	}
	if e.err != nil {
		return failed(e.doc, e.err)
	}
	child, err := e.doc.Create(tagName, props, innerHTML...)
	if err != nil {
		return failed(e.doc, err)
	}
	e.Add(child)
	return child
}

// SetStyle sets inline style properties (see Document.SetStyle) and
// returns e.
func (e *Element) SetStyle(styles Styles) *Element {
	if e == nil || e.err != nil {
		return e
	}
	if _, err := e.doc.SetStyle(e, styles); err != nil {
		return e.fail(err)
	}
	return e
}

// --- W3C element interface -------------------------------------------------

// NodeType returns the type of the wrapped node.
func (e *Element) NodeType() html.NodeType {
	if e.Node() == nil {
		return html.ErrorNode
	}
	return e.node.Type
}

// NodeName returns the upper-case tag name for elements, "#text" for text
// nodes and "#document" for the document node.
func (e *Element) NodeName() string {
	switch e.NodeType() {
	case html.ElementNode:
		return e.TagName()
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	}
	return ""
}

// TagName returns the upper-case tag name, as browsers do for HTML elements.
func (e *Element) TagName() string {
	if e.NodeType() != html.ElementNode {
		return ""
	}
	return strings.ToUpper(e.node.Data)
}

// HasChildNodes is true if the element has child nodes of any kind.
func (e *Element) HasChildNodes() bool {
	return e.Node() != nil && e.node.FirstChild != nil
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	if e.Node() == nil {
		return ""
	}
	return textContent(e.node)
}

// GetAttribute returns the value of an attribute and whether it is present.
func (e *Element) GetAttribute(key string) (string, bool) {
	if !e.ok() {
		return "", false
	}
	return getAttr(e.node, strings.ToLower(key))
}

// SetAttribute sets an attribute to a value, including the empty string.
// An invalid attribute name records ErrInvalidAttrName on the element.
func (e *Element) SetAttribute(key, value string) {
	if !e.ok() {
		return
	}
	if !isValidName(key) {
		e.fail(fmt.Errorf("set attribute: %w: %q", ErrInvalidAttrName, key))
		return
	}
	setAttr(e.node, strings.ToLower(key), value)
}

// RemoveAttribute removes an attribute, if present.
func (e *Element) RemoveAttribute(key string) {
	if e.ok() {
		removeAttr(e.node, strings.ToLower(key))
	}
}

// Style returns the value of an inline style property, or "" if it is not
// set. The key may be in CSS notation or in camel case.
func (e *Element) Style(key string) string {
	if !e.ok() {
		return ""
	}
	return inlineStyle(e.node, CSSPropertyName(key))
}

// StyleDeclaration returns all inline style properties of the element.
func (e *Element) StyleDeclaration() map[string]string {
	decls := make(map[string]string)
	if !e.ok() {
		return decls
	}
	for _, d := range inlineStyles(e.node) {
		decls[d.Property] = d.Value
	}
	return decls
}

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	if !e.ok() {
		return ""
	}
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			tracer().Debugf("dom: inner HTML of <%s>: %v", e.node.Data, err)
		}
	}
	return b.String()
}

// OuterHTML returns the serialized element.
func (e *Element) OuterHTML() string {
	if !e.ok() {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		tracer().Debugf("dom: outer HTML of <%s>: %v", e.node.Data, err)
	}
	return b.String()
}

// Parent returns the parent element, or nil for detached elements and the
// document element.
func (e *Element) Parent() *Element {
	if !e.ok() || !NodeIsElement(e.node.Parent) {
		return nil
	}
	return e.doc.Augment(e.node.Parent)
}

// Children returns the child elements, skipping text and comment nodes.
func (e *Element) Children() []*Element {
	if !e.ok() {
		return nil
	}
	nodes := children(e.node, NodeIsElement)
	ch := make([]*Element, len(nodes))
	for i, n := range nodes {
		ch[i] = e.doc.Augment(n)
	}
	return ch
}

func (e *Element) String() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.err != nil:
		return fmt.Sprintf("<error: %v>", e.err)
	case e.node.Type != html.ElementNode:
		return e.NodeName()
	}
	return fmt.Sprintf("<%s>", e.node.Data)
}
