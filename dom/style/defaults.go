package style

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
var nonInherited = map[string]string{
	"position":            "static",
	"float":               "none",
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"border-top-style":    "none",
	"border-left-style":   "none",
	"border-right-style":  "none",
	"border-bottom-style": "none",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"top":                        "auto",
	"right":                      "auto",
	"bottom":                     "auto",
	"left":                       "auto",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
// Inherited properties without a UA default yield NullStyle; they are resolved
// against the root defaults from InitializeDefaultPropertyValues.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	if key == "display" {
		return DisplayPropertyForHTMLNode(node)
	}
	if dim, ok := isDimension[key]; ok {
		return Property(dim)
	}
	if p, ok := nonInherited[key]; ok {
		return Property(p)
	}
	return NullStyle
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type == html.TextNode {
		return "inline"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "script", "style", "title", "meta", "link", "template", "noscript", "base":
		return "none"
	case "p":
		return "block-inline"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section", "ul",
		"article", "header", "footer", "nav", "main", "form",
		"pre", "blockquote", "figure", "hr", "fieldset", "dl", "dt", "dd":
		return "block"
	case "img", "input", "button", "select", "textarea":
		return "inline-block"
	case "i", "b", "span", "strong", "em", "a", "code", "small",
		"label", "abbr", "sub", "sup", "br", "u", "s", "q", "mark":
		return "inline"
	}
	tracer().Debugf("unknown HTML element %s will be set to display: block", node.Data)
	return "block"
}

// InitializeDefaultPropertyValues creates an internal data structure to
// hold all the default values for CSS properties.
// In real-world browsers these are the user-agent CSS values.
// fontSize is the root font size, e.g. "16px".
func InitializeDefaultPropertyValues(fontSize Property, additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 8)

	x := NewPropertyGroup(PGX) // special group for extension properties
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	m[PGX] = x

	margins := NewPropertyGroup(PGMargins)
	for _, d := range fourDirs {
		margins.Set("margin-"+d, "0")
	}
	m[PGMargins] = margins

	padding := NewPropertyGroup(PGPadding)
	for _, d := range fourDirs {
		padding.Set("padding-"+d, "0")
	}
	m[PGPadding] = padding

	border := NewPropertyGroup(PGBorder)
	for _, d := range fourDirs {
		border.Set("border-"+d+"-color", "default")
		border.Set("border-"+d+"-width", "medium")
		border.Set("border-"+d+"-style", "none")
	}
	for _, c := range fourCorners {
		border.Set("border-"+c+"-radius", "0")
	}
	m[PGBorder] = border

	dimension := NewPropertyGroup(PGDimension)
	dimension.Set("width", "auto")
	dimension.Set("height", "auto")
	dimension.Set("min-width", "none")
	dimension.Set("min-height", "none")
	dimension.Set("max-width", "none")
	dimension.Set("max-height", "none")
	m[PGDimension] = dimension

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "block")
	display.Set("float", "none")
	display.Set("visibility", "visible")
	display.Set("position", "static")
	m[PGDisplay] = display

	color := NewPropertyGroup(PGColor)
	color.Set("color", "default")
	color.Set("background-color", "default")
	m[PGColor] = color

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("font-size", fontSize)
	text.Set("line-height", "normal")
	m[PGText] = text

	return &PropertyMap{m}
}
