/*
Package dom provides chainable helpers for querying, creating and styling
elements of an HTML document.

Status

Early draft, API may change frequently. Please stay patient.

Overview

A Document owns a tree of golang.org/x/net/html nodes. Clients query
elements with CSS selectors or create new ones, and receive an *Element,
a thin wrapper around the underlying *html.Node:

    doc := dom.NewDocument()
    list, _ := doc.Create("ul", dom.Props{"className": "menu"})
    list.Create("li", dom.Props{"textContent": "first"}).
        SetStyle(dom.Styles{"color": "red"}).
        Attr("data-pos", 1)
    doc.Body().Add(list)

Elements do not own their nodes. Wrapping the same node twice yields two
elements with identical behaviour, and changes through either of them are
visible in the document tree immediately. Query results which do not exist
are reported as nil (Query) or as an empty slice (QueryAll), never as an
error.

Helpers which may fail record the first error on the element they return
(see Element.Err). Calling further helpers on such an element has no effect,
so a chain can be checked once at its end.

Raw Markup

Create accepts raw inner markup. It is parsed and inserted verbatim; no
sanitization whatsoever is performed. Callers are responsible for passing
trusted content only.

Geometry

Element.Rect computes the element's border box with a fresh style cascade
and layout pass over the document (see packages cssom and layout). Results
are never cached. Elements not attached to the document report an empty
rect.

Attribute Access

Attr is a two-mode accessor. A value which is absent or “falsy” (nil,
empty string, false, numeric zero) turns the call into a read:

    e.Attr("data-count", 0)   // reads data-count, does not set it to "0"

Use SetAttribute to set such values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domchain.dom'.
func tracer() tracing.Trace {
	return tracing.Select("domchain.dom")
}
