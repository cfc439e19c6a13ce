package css

import (
	"fmt"

	"github.com/npillmayer/domchain/dom/style"
	"golang.org/x/net/html"
)

// StyleLookup returns the property map computed for an HTML node, or nil if
// the node carries no styles. For the document node it is expected to return
// the root defaults (see style.InitializeDefaultPropertyValues).
type StyleLookup func(*html.Node) *style.PropertyMap

// GetCascadedProperty gets the value of a property. The search cascades to
// parent property maps, if available.
//
// Clients will usually call GetProperty(…) instead as this will respect
// CSS semantics for inherited properties.
//
// The call to GetCascadedProperty will flag an error if the style property
// isn't found (which should not happen, as every inheritable property should
// be included in the root defaults).
func GetCascadedProperty(node *html.Node, key string, styles StyleLookup) (style.Property, error) {
	for n := node; n != nil; n = n.Parent {
		p := GetLocalProperty(styles(n), key)
		if p != style.NullStyle && !p.IsInherit() {
			return p, nil
		}
	}
	return style.NullStyle, fmt.Errorf("cannot find ancestor with property %s -- did you create global properties?", key)
}

// GetProperty gets the value of a property. If the property is not set
// locally on the node and the property is inheritable, the search
// cascades to parent property maps.
//
// Non-inherited properties fall back to the user-agent default for the node.
func GetProperty(node *html.Node, key string, styles StyleLookup) (style.Property, error) {
	if style.IsCascading(key) {
		return GetCascadedProperty(node, key, styles)
	}
	p := GetLocalProperty(styles(node), key)
	if p.IsInherit() && node.Parent != nil {
		return GetProperty(node.Parent, key, styles)
	}
	if p == style.NullStyle || p.IsInitial() || p.IsInherit() {
		p = style.GetUserAgentDefaultProperty(node, key)
	}
	return p, nil
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *style.PropertyMap, key string) style.Property {
	group := pmap.Group(style.GroupNameFromPropertyKey(key))
	if group == nil {
		return style.NullStyle
	}
	p, _ := group.Get(key)
	return p
}
