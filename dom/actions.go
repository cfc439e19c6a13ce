package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodePredicate is a predicate on HTML nodes, used for walking a tree.
type NodePredicate func(*html.Node) bool

// NodeIsText is a predicate to match text-nodes of a DOM.
var NodeIsText NodePredicate = func(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// NodeIsElement is a predicate to match element-nodes of a DOM.
var NodeIsElement NodePredicate = func(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// NodeHasTag returns a predicate matching elements with a given tag name.
func NodeHasTag(tag string) NodePredicate {
	tag = strings.ToLower(tag)
	return func(n *html.Node) bool {
		return NodeIsElement(n) && n.Data == tag
	}
}

// children collects the direct children of n matching pred.
func children(n *html.Node, pred NodePredicate) []*html.Node {
	var ch []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			ch = append(ch, c)
		}
	}
	return ch
}

// descendants collects all nodes below n matching pred, in document order.
func descendants(n *html.Node, pred NodePredicate) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// firstDescendant returns the first node below n matching pred, or nil.
func firstDescendant(n *html.Node, pred NodePredicate) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if d := firstDescendant(c, pred); d != nil {
			return d
		}
	}
	return nil
}

// rootOf returns the topmost ancestor of n.
func rootOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func textContent(n *html.Node) string {
	if NodeIsText(n) {
		return n.Data
	}
	var b strings.Builder
	for _, t := range descendants(n, NodeIsText) {
		b.WriteString(t.Data)
	}
	return b.String()
}
