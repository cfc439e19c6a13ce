/*
Package w3cdom defines interface types for W3C Document Object Models.

See also https://www.w3schools.com/XML/dom_intro.asp

Status

Early draft, API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"golang.org/x/net/html"
)

// Node represents a W3C-type Node.
type Node interface {
	NodeType() html.NodeType // type of the underlying HTML node (ElementNode, TextNode, etc.)
	NodeName() string        // node name output depends on the node's type
	HasChildNodes() bool     // check for existende of sub-nodes
	TextContent() string     // get text from node and all descendents
}

// Element represents the host primitives of a W3C-type Element which
// chaining helpers are built upon.
type Element interface {
	Node
	TagName() string                     // upper-case tag name, as in browsers
	GetAttribute(string) (string, bool)  // attribute value, false if absent
	SetAttribute(string, string)         // create or overwrite an attribute
	RemoveAttribute(string)              // remove an attribute, if present
	GetBoundingClientRect() DOMRect      // border box relative to the viewport
	InnerHTML() string                   // serialized children
	OuterHTML() string                   // serialized element
	StyleDeclaration() map[string]string // inline style properties
}
