package css

import (
	"testing"

	"github.com/npillmayer/domchain/dom/style"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestParseDisplay(t *testing.T) {
	mode, err := ParseDisplay("block")
	assert.NoError(t, err)
	assert.True(t, mode.IsBlockLevel())
	assert.Equal(t, BlockMode, mode.Outer())

	mode, err = ParseDisplay("list-item")
	assert.NoError(t, err)
	assert.True(t, mode.IsBlockLevel(), "list items are block level")
	assert.True(t, mode.Contains(ListItemMode))

	mode, err = ParseDisplay("inline-block")
	assert.NoError(t, err)
	assert.False(t, mode.IsBlockLevel())
	assert.True(t, mode.Overlaps(InnerBlockMode|TableMode))

	mode, err = ParseDisplay("none")
	assert.NoError(t, err)
	assert.Equal(t, DisplayNone, mode)
	assert.Equal(t, "DisplayNone", mode.String())

	mode, err = ParseDisplay("ruby")
	assert.Error(t, err)
	assert.Equal(t, BlockMode, mode)
}

func TestDisplayFullString(t *testing.T) {
	mode := BlockMode
	mode.Set(InnerInlineMode)
	assert.Equal(t, "BlockMode InnerInlineMode", mode.FullString())
	assert.Equal(t, "▩", mode.Symbol())
}

func TestGetProperty(t *testing.T) {
	root := &html.Node{Type: html.DocumentNode}
	div := &html.Node{Type: html.ElementNode, Data: "div"}
	span := &html.Node{Type: html.ElementNode, Data: "span"}
	root.AppendChild(div)
	div.AppendChild(span)

	defaults := style.InitializeDefaultPropertyValues("16px", nil)
	divStyles := style.NewPropertyMap()
	divStyles.Add("color", "red")
	divStyles.Add("margin", "4px")
	spanStyles := style.NewPropertyMap()
	spanStyles.Add("margin-left", "inherit")
	lookup := func(n *html.Node) *style.PropertyMap {
		switch n {
		case root:
			return defaults
		case div:
			return divStyles
		case span:
			return spanStyles
		}
		return nil
	}

	p, err := GetProperty(span, "color", lookup)
	assert.NoError(t, err)
	assert.Equal(t, style.Property("red"), p, "color is inherited from the div")

	p, err = GetProperty(span, "font-size", lookup)
	assert.NoError(t, err)
	assert.Equal(t, style.Property("16px"), p, "font-size is inherited from the root")

	p, err = GetProperty(span, "margin-top", lookup)
	assert.NoError(t, err)
	assert.Equal(t, style.Property("0"), p, "margins are not inherited")

	p, err = GetProperty(span, "margin-left", lookup)
	assert.NoError(t, err)
	assert.Equal(t, style.Property("4px"), p, "explicit inherit takes the parent's value")

	p, err = GetProperty(span, "display", lookup)
	assert.NoError(t, err)
	assert.Equal(t, style.Property("inline"), p)
}
