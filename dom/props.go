package dom

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/npillmayer/domchain/dom/style/cssom/douceuradapter"
	"golang.org/x/net/html"
)

// Props are element properties to set when creating an element, e.g.
//
//     dom.Props{"id": "main", "className": "wide dark", "hidden": true}
//
// Only a fixed set of properties is recognized; see Document.Create.
type Props map[string]any

type propKind uint8

const (
	stringProp propKind = iota // reflected as an attribute with a textual value
	intProp                    // reflected as an attribute with an integer value
	boolProp                   // attribute present or absent
	textProp                   // replaces the children with a text node
	styleProp                  // inline style declarations
)

type propDef struct {
	attr string
	kind propKind
}

// recognizedProps maps element property names to their effect. Property
// names are the DOM names, which differ from attribute names in a few cases
// (className → class).
var recognizedProps = map[string]propDef{
	"id":          {"id", stringProp},
	"className":   {"class", stringProp},
	"title":       {"title", stringProp},
	"lang":        {"lang", stringProp},
	"dir":         {"dir", stringProp},
	"name":        {"name", stringProp},
	"type":        {"type", stringProp},
	"value":       {"value", stringProp},
	"href":        {"href", stringProp},
	"src":         {"src", stringProp},
	"alt":         {"alt", stringProp},
	"placeholder": {"placeholder", stringProp},
	"role":        {"role", stringProp},
	"htmlFor":     {"for", stringProp},
	"tabIndex":    {"tabindex", intProp},
	"hidden":      {"hidden", boolProp},
	"disabled":    {"disabled", boolProp},
	"checked":     {"checked", boolProp},
	"readOnly":    {"readonly", boolProp},
	"required":    {"required", boolProp},
	"selected":    {"selected", boolProp},
	"textContent": {"", textProp},
	"style":       {"style", styleProp},
}

// IsRecognizedProperty returns true if key may be used in Props.
func IsRecognizedProperty(key string) bool {
	_, ok := recognizedProps[key]
	return ok
}

// applyProps sets properties on an element node, in order of their keys.
// It stops at the first property it cannot apply.
func applyProps(n *html.Node, props Props) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		def, ok := recognizedProps[k]
		if !ok {
			return fmt.Errorf("%w: %q on <%s>", ErrUnknownProperty, k, n.Data)
		}
		if err := applyProp(n, k, def, props[k]); err != nil {
			return err
		}
	}
	return nil
}

func applyProp(n *html.Node, key string, def propDef, value any) error {
	invalid := func() error {
		return fmt.Errorf("%w: %s = %#v", ErrPropertyValue, key, value)
	}
	switch def.kind {
	case stringProp:
		s, ok := stringValue(value)
		if !ok {
			return invalid()
		}
		setAttr(n, def.attr, s)
	case intProp:
		i, ok := intValue(value)
		if !ok {
			return invalid()
		}
		setAttr(n, def.attr, strconv.FormatInt(i, 10))
	case boolProp:
		b, ok := value.(bool)
		if !ok {
			return invalid()
		}
		if b {
			setAttr(n, def.attr, "")
		} else {
			removeAttr(n, def.attr)
		}
	case textProp:
		s, ok := stringValue(value)
		if !ok {
			return invalid()
		}
		setTextContent(n, s)
	case styleProp:
		switch v := value.(type) {
		case string:
			rule, err := douceuradapter.ParseInline(v)
			if err != nil {
				return fmt.Errorf("%w: style: %v", ErrPropertyValue, err)
			}
			setAttr(n, def.attr, douceuradapter.FormatInline(rule.DeclarationList()))
		case Styles:
			setInlineStyles(n, v)
		case map[string]string:
			setInlineStyles(n, Styles(v))
		default:
			return invalid()
		}
	}
	return nil
}

func setTextContent(n *html.Node, text string) {
	removeChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// stringValue converts scalar values to their textual attribute form.
func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.String:
		return rv.String(), true
	}
	return "", false
}

func intValue(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint()), true
	}
	return 0, false
}

// isFalsy is true for values which do not count as “supplied” for Attr:
// nil, false, empty strings, numeric zero and NaN, and nil pointers.
func isFalsy(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// --- Attributes ------------------------------------------------------------

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
