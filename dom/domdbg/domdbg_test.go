package domdbg

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/npillmayer/domchain/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDoc(t *testing.T) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(
		`<div id="main" class="wide dark" style="margin: 4px">hello<span>world</span></div><script>x()</script>`))
	require.NoError(t, err)
	return doc
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := buildDoc(t)
	main, _ := doc.Query("#main", nil)
	var b strings.Builder
	require.NoError(t, ToGraphViz(main, &b, nil))
	dot := b.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `label="div"`)
	assert.Contains(t, dot, `label="span"`)
	assert.Contains(t, dot, `margin-left:</td><td>4px`)
	assert.Contains(t, dot, "node00001 -> node00002")
}

// Set DOMCHAIN_DOTTY to render the diagram with GraphViz.
func TestDotty(t *testing.T) {
	if os.Getenv("DOMCHAIN_DOTTY") == "" {
		t.Skip("DOMCHAIN_DOTTY not set")
	}
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("GraphViz not installed")
	}
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := buildDoc(t)
	Dotty(doc.Body(), t)
}

func TestGraphVizNoElement(t *testing.T) {
	var b strings.Builder
	err := ToGraphViz(nil, &b, nil)
	assert.True(t, errors.Is(err, dom.ErrNoElement))
	assert.Empty(t, b.String())
}

func TestOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domchain.dom")
	defer teardown()
	//
	doc := buildDoc(t)
	out := Outline(doc.Body())
	t.Logf("\n%s", out)
	assert.Contains(t, out, "▩ body")
	assert.Contains(t, out, "▩ div#main.wide.dark")
	assert.Contains(t, out, `► span`)
	assert.Contains(t, out, `"hello"`)
	assert.Contains(t, out, "∅ script")
	assert.Equal(t, "", Outline(nil))
}
