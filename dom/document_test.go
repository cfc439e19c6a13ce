package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/domchain/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>t</title><style>.wide { width: 300px; }</style></head>
<body>
  <div id="a"><p class="x">one</p><span class="x">two</span></div>
  <p class="x">three</p>
</body>
</html>`

func parse(t *testing.T, markup string, opts ...dom.Option) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(markup), opts...)
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	require.NotNil(t, doc.Root())
	assert.Equal(t, "HTML", doc.Root().TagName())
	assert.Equal(t, "HEAD", doc.Head().TagName())
	assert.Equal(t, "BODY", doc.Body().TagName())
	assert.Equal(t, "<html><head></head><body></body></html>", doc.String())
}

func TestQueryNoMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := parse(t, page)
	e, err := doc.Query("article", nil)
	assert.NoError(t, err)
	assert.Nil(t, e)
	all, err := doc.QueryAll("article.x > p", nil)
	assert.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestQueryDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := parse(t, page)
	first, err := doc.Query(".x", nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "one", first.TextContent())

	all, err := doc.QueryAll(".x", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	texts := []string{all[0].TextContent(), all[1].TextContent(), all[2].TextContent()}
	assert.Equal(t, []string{"one", "two", "three"}, texts)

	group, err := doc.QueryAll("span, p", nil)
	require.NoError(t, err)
	assert.Len(t, group, 3, "selector lists match each element once")
}

func TestQueryScope(t *testing.T) {
	doc := parse(t, page)
	a, err := doc.Query("#a", nil)
	require.NoError(t, err)
	require.NotNil(t, a)
	inner, err := doc.QueryAll(".x", a)
	require.NoError(t, err)
	assert.Len(t, inner, 2)
	self, err := doc.Query("#a", a)
	require.NoError(t, err)
	assert.Nil(t, self, "the scope element itself is not part of the search")
	nested, err := doc.Query("body div p", a)
	require.NoError(t, err)
	require.NotNil(t, nested, "selectors match against the complete document")
	assert.Equal(t, "one", nested.TextContent())
}

func TestQueryInvalidSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := parse(t, page)
	for _, sel := range []string{"div[", "", "  ", "#"} {
		_, err := doc.Query(sel, nil)
		assert.True(t, errors.Is(err, dom.ErrSelector), "query %q: %v", sel, err)
		_, err = doc.QueryAll(sel, nil)
		assert.True(t, errors.Is(err, dom.ErrSelector), "query-all %q: %v", sel, err)
	}
	_, err := doc.Query("div[", nil)
	var selErr *dom.SelectorError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, "div[", selErr.Selector)
	assert.NotNil(t, errors.Unwrap(err), "cause is preserved")
}

func TestCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	e, err := doc.Create("div", dom.Props{"className": "x"}, "<span>hi</span>")
	require.NoError(t, err)
	require.NotNil(t, e)
	class, ok := e.GetAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "x", class)
	assert.Contains(t, e.InnerHTML(), "<span>hi</span>")
	assert.Nil(t, e.Parent(), "created elements are detached")
	assert.Empty(t, doc.Body().Children())
}

func TestCreateProps(t *testing.T) {
	doc := dom.NewDocument()
	e, err := doc.Create("LABEL", dom.Props{
		"htmlFor":     "name",
		"tabIndex":    3,
		"hidden":      true,
		"disabled":    false,
		"textContent": "Name",
		"style":       "color:red;margin:0",
	})
	require.NoError(t, err)
	assert.Equal(t, "LABEL", e.TagName())
	for key, expected := range map[string]string{"for": "name", "tabindex": "3", "hidden": ""} {
		v, ok := e.GetAttribute(key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, v, key)
	}
	_, ok := e.GetAttribute("disabled")
	assert.False(t, ok)
	assert.Equal(t, "Name", e.TextContent())
	assert.Equal(t, "red", e.Style("color"))
	assert.Equal(t, "0", e.Style("margin"))
}

func TestCreateMarkupReplacesText(t *testing.T) {
	doc := dom.NewDocument()
	e, err := doc.Create("ul", dom.Props{"textContent": "gone"}, "<li>a</li>", "<li>b</li>")
	require.NoError(t, err)
	assert.Equal(t, "<li>a</li><li>b</li>", e.InnerHTML())
	assert.Len(t, e.Children(), 2)
}

func TestCreateMarkupIsNotSanitized(t *testing.T) {
	doc := dom.NewDocument()
	e, err := doc.Create("div", nil, `<img src="x" onerror="alert(1)"><script>evil()</script>`)
	require.NoError(t, err)
	assert.Contains(t, e.InnerHTML(), `onerror="alert(1)"`)
	assert.Contains(t, e.InnerHTML(), `<script>evil()</script>`)
}

func TestCreateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	for _, tag := range []string{"", "1div", "a b", "<p>", "di$v"} {
		_, err := doc.Create(tag, nil)
		assert.True(t, errors.Is(err, dom.ErrInvalidTagName), "tag %q: %v", tag, err)
	}
	for _, tag := range []string{"my-widget", "svg:rect", "h1"} {
		_, err := doc.Create(tag, nil)
		assert.NoError(t, err, tag)
	}
	_, err := doc.Create("div", dom.Props{"onclick": "alert(1)"})
	assert.True(t, errors.Is(err, dom.ErrUnknownProperty), err)
	_, err = doc.Create("input", dom.Props{"checked": "yes"})
	assert.True(t, errors.Is(err, dom.ErrPropertyValue), err)
	_, err = doc.Create("input", dom.Props{"tabIndex": 1.5})
	assert.True(t, errors.Is(err, dom.ErrPropertyValue), err)
	_, err = doc.Create("div", dom.Props{"id": []int{1}})
	assert.True(t, errors.Is(err, dom.ErrPropertyValue), err)
}

func TestSetStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	e, err := doc.Create("div", nil)
	require.NoError(t, err)
	same, err := doc.SetStyle(e, dom.Styles{"color": "red"})
	require.NoError(t, err)
	assert.Same(t, e, same)
	assert.Equal(t, "red", e.Style("color"))

	_, err = doc.SetStyle(e, dom.Styles{"backgroundColor": "blue", "margin-top": "2px"})
	require.NoError(t, err)
	style, _ := e.GetAttribute("style")
	assert.Equal(t, "color: red; background-color: blue; margin-top: 2px;", style)

	_, err = doc.SetStyle(e, dom.Styles{"color": "", "marginTop": "4px !important"})
	require.NoError(t, err)
	style, _ = e.GetAttribute("style")
	assert.Equal(t, "background-color: blue; margin-top: 4px !important;", style)
	assert.Equal(t, map[string]string{"background-color": "blue", "margin-top": "4px"}, e.StyleDeclaration())

	_, err = doc.SetStyle(nil, dom.Styles{"color": "red"})
	assert.True(t, errors.Is(err, dom.ErrNoElement))
}

func TestSetStyleDoesNotValidate(t *testing.T) {
	doc := dom.NewDocument()
	e, _ := doc.Create("div", nil)
	_, err := doc.SetStyle(e, dom.Styles{"fancyness": "very", "width": "banana"})
	require.NoError(t, err)
	assert.Equal(t, "very", e.Style("fancyness"))
	assert.Equal(t, 0.0, e.Rect().Width, "detached element")
	doc.Body().Add(e)
	assert.Equal(t, "banana", e.Style("width"))
	assert.True(t, e.Rect().Width > 0, "unusable width is treated as auto")
}

func TestAugment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := parse(t, page)
	assert.Nil(t, doc.Augment(nil))
	p, err := doc.Query("p", nil)
	require.NoError(t, err)
	e1 := doc.Augment(p.Node())
	e2 := doc.Augment(e1.Node())
	e1.Attr("data-k", "v")
	v, ok := e2.Attr("data-k").Value()
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	e2.SetStyle(dom.Styles{"color": "red"})
	assert.Equal(t, "red", e1.Style("color"))
	assert.Equal(t, e1.OuterHTML(), e2.OuterHTML())
	assert.Equal(t, `<p class="x" data-k="v" style="color: red;">one</p>`, p.OuterHTML())
}

func TestStylesheets(t *testing.T) {
	doc := parse(t, page)
	sheets := doc.Stylesheets()
	require.Len(t, sheets, 1)
	assert.False(t, sheets[0].Empty())
	a, _ := doc.Query("#a", nil)
	a.Attr("class", "wide")
	cs := doc.ComputedStyles()
	w, _ := cs.Styles(a.Node()).Property("width")
	assert.Equal(t, "300px", w.String())
}

func TestRender(t *testing.T) {
	doc := dom.NewDocument()
	doc.Body().Create("p", dom.Props{"textContent": "a < b"})
	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Equal(t, "<html><head></head><body><p>a &lt; b</p></body></html>", b.String())
}

func TestParseMarkupErrorsAreLenient(t *testing.T) {
	doc := parse(t, "<div><p>unclosed")
	p, err := doc.Query("div > p", nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "unclosed", p.TextContent())
}

func TestParsedInlineStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := parse(t, `<div id="d" style="width: 10px; height: 20px">x</div><div id="n" style="display: none">y</div>`)
	d, err := doc.Query("#d", nil)
	require.NoError(t, err)
	assert.Equal(t, "20px", d.Style("height"))
	_, err = doc.SetStyle(d, dom.Styles{"color": "red"})
	require.NoError(t, err)
	style, _ := d.GetAttribute("style")
	assert.Equal(t, "width: 10px; height: 20px; color: red;", style)
	assert.Equal(t, 20.0, d.Rect().Height)

	n, err := doc.Query("#n", nil)
	require.NoError(t, err)
	assert.True(t, n.Rect().IsEmpty(), "last declaration of an attribute counts")
}

func TestSetStyleIgnoresSpillingValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	e, _ := doc.Create("div", nil)
	_, err := doc.SetStyle(e, dom.Styles{
		"color":               "red; width: 500px",
		"color: blue; height": "9px",
		"margin":              "1px",
		"font-family":         `"a;b", serif`,
	})
	require.NoError(t, err)
	assert.Equal(t, "", e.Style("color"))
	assert.Equal(t, "", e.Style("width"))
	assert.Equal(t, "", e.Style("height"))
	assert.Equal(t, "1px", e.Style("margin"))
	assert.Equal(t, map[string]string{"font-family": `"a;b", serif`, "margin": "1px"}, e.StyleDeclaration())
}
