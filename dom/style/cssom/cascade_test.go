package cssom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/domchain/dom/style"
	"github.com/npillmayer/domchain/dom/style/cssom"
	"github.com/npillmayer/domchain/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, s string) *html.Node {
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func find(n *html.Node, id string) *html.Node {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, id); f != nil {
			return f
		}
	}
	return nil
}

func inlineStyles(n *html.Node) cssom.Rule {
	for _, a := range n.Attr {
		if a.Key == "style" {
			r, err := douceuradapter.ParseInline(a.Val)
			if err != nil {
				return nil
			}
			return r
		}
	}
	return nil
}

func sheet(t *testing.T, src string) *douceuradapter.CSSStyles {
	s, err := douceuradapter.Parse(src)
	require.NoError(t, err)
	return s
}

func TestCascadeSpecificity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.style")
	defer teardown()
	//
	doc := parseDoc(t, `<div id="a" class="box"><p id="p">x</p></div>`)
	c := cssom.NewCSSOM(nil)
	c.AddStyles(sheet(t, `
		#a { width: 100px; }
		div.box { width: 50px; color: red; }
		div { width: 10px; color: blue; }
		p { margin: 1px 2px; }
		p::before { color: green; }
	`), cssom.AuthorOrigin)
	require.Equal(t, 1, c.Size())
	cs := c.Style(doc, nil, style.InitializeDefaultPropertyValues("16px", nil))

	a := cs.Styles(find(doc, "a"))
	w, _ := a.Property("width")
	assert.Equal(t, style.Property("100px"), w, "id selector wins")
	col, _ := a.Property("color")
	assert.Equal(t, style.Property("red"), col, "class selector beats type selector")

	p := cs.Styles(find(doc, "p"))
	ml, _ := p.Property("margin-left")
	mt, _ := p.Property("margin-top")
	assert.Equal(t, style.Property("2px"), ml)
	assert.Equal(t, style.Property("1px"), mt)

	fs, _ := cs.Styles(doc).Property("font-size")
	assert.Equal(t, style.Property("16px"), fs, "document node yields root defaults")
}

func TestCascadeOriginsAndImportance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.style")
	defer teardown()
	//
	doc := parseDoc(t, `<div id="a" style="width: 7px; height: 3px; color: black"></div>`)
	c := cssom.NewCSSOM(sheet(t, `div { display: block; height: 1px !important; }`))
	c.AddStyles(sheet(t, `div { width: 20px; color: red !important; display: flex; }`), cssom.AuthorOrigin)
	cs := c.Style(doc, inlineStyles, nil)

	a := cs.Styles(find(doc, "a"))
	w, _ := a.Property("width")
	assert.Equal(t, style.Property("7px"), w, "inline beats author")
	col, _ := a.Property("color")
	assert.Equal(t, style.Property("red"), col, "important author beats inline")
	h, _ := a.Property("height")
	assert.Equal(t, style.Property("1px"), h, "important user-agent beats everything")
	d, _ := a.Property("display")
	assert.Equal(t, style.Property("flex"), d, "author beats user-agent")
}

func TestCascadeSourceOrder(t *testing.T) {
	doc := parseDoc(t, `<p id="p"></p>`)
	c := cssom.NewCSSOM(nil)
	c.AddStyles(sheet(t, `p { color: red; }`), cssom.AuthorOrigin)
	c.AddStyles(sheet(t, `p { color: blue; }`), cssom.AuthorOrigin)
	c.AddStyles(sheet(t, ``), cssom.AuthorOrigin)
	assert.Equal(t, 2, c.Size(), "empty sheets are ignored")
	cs := c.Style(doc, nil, nil)
	col, _ := cs.Styles(find(doc, "p")).Property("color")
	assert.Equal(t, style.Property("blue"), col)
	assert.True(t, cs.Size() >= 4, "html, head, body and p are styled")
}
