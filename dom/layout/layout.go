package layout

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/domchain/css"
	"github.com/npillmayer/domchain/dom/style"
	domcss "github.com/npillmayer/domchain/dom/style/css"
	"github.com/npillmayer/domchain/dom/w3cdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Defaults for an Engine.
const (
	DefaultFontSize   = 16.0 // root font size in px
	DefaultLineHeight = 1.2  // multiplier for `line-height: normal`
	DefaultCharWidth  = 0.5  // average glyph advance, relative to the font size
)

// Engine lays out documents for a viewport.
type Engine struct {
	ViewportWidth  float64
	ViewportHeight float64
	FontSize       float64
	LineHeight     float64
	CharWidth      float64
}

// NewEngine creates a layout engine for a viewport of the given size in px.
func NewEngine(viewportWidth, viewportHeight float64) *Engine {
	return &Engine{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		FontSize:       DefaultFontSize,
		LineHeight:     DefaultLineHeight,
		CharWidth:      DefaultCharWidth,
	}
}

// Boxes maps element nodes to their border boxes.
type Boxes struct {
	rects map[*html.Node]w3cdom.DOMRect
}

// Rect returns the border box of an element. Elements which are not part of
// the laid out tree are reported as not found.
func (b *Boxes) Rect(n *html.Node) (w3cdom.DOMRect, bool) {
	if b == nil {
		return w3cdom.DOMRect{}, false
	}
	r, ok := b.rects[n]
	return r, ok
}

// Len returns the number of elements with a box.
func (b *Boxes) Len() int {
	if b == nil {
		return 0
	}
	return len(b.rects)
}

// Layout performs a layout pass over the tree starting at root, usually a
// document node. styles supplies the computed styles for every element.
func (e *Engine) Layout(root *html.Node, styles domcss.StyleLookup) *Boxes {
	l := &run{
		engine: e,
		styles: styles,
		boxes:  &Boxes{rects: make(map[*html.Node]w3cdom.DOMRect)},
	}
	if root == nil {
		return l.boxes
	}
	switch root.Type {
	case html.DocumentNode:
		l.flow(root, 0, 0, e.ViewportWidth, e.FontSize)
	case html.ElementNode:
		if l.display(root) == domcss.DisplayNone {
			l.hide(root)
		} else {
			l.block(root, 0, 0, e.ViewportWidth, e.FontSize)
		}
	}
	tracer().Debugf("layout: %d boxes for viewport %gx%g", l.boxes.Len(), e.ViewportWidth, e.ViewportHeight)
	return l.boxes
}

// Edges holds the sizes of the four sides of a margin, border or padding.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

var sides = [4]string{"top", "right", "bottom", "left"}

// run is a single layout pass.
type run struct {
	engine *Engine
	styles domcss.StyleLookup
	boxes  *Boxes
}

func (l *run) prop(n *html.Node, key string) style.Property {
	p, err := domcss.GetProperty(n, key, l.styles)
	if err != nil {
		tracer().Debugf("layout: %v", err)
		return style.NullStyle
	}
	return p
}

func (l *run) display(n *html.Node) domcss.DisplayMode {
	mode, err := domcss.ParseDisplay(l.prop(n, "display"))
	if err != nil {
		tracer().Debugf("layout: <%s>: %v", n.Data, err)
	}
	if mode == domcss.NoMode {
		mode = domcss.BlockMode | domcss.InnerBlockMode
	}
	return mode
}

func (l *run) context(containing, font float64) css.Context {
	return css.Context{
		Containing:     css.Pixels(containing),
		FontSize:       css.Pixels(font),
		RootFontSize:   css.Pixels(l.engine.FontSize),
		ViewportWidth:  css.Pixels(l.engine.ViewportWidth),
		ViewportHeight: css.Pixels(l.engine.ViewportHeight),
	}
}

func length(p style.Property, ctx css.Context) (float64, bool) {
	d, err := css.ParseDimen(p.String())
	if err != nil {
		return 0, false
	}
	du, ok := d.Resolve(ctx)
	if !ok {
		return 0, false
	}
	return css.ToPixels(du), true
}

func (l *run) fontSize(n *html.Node, parent float64) float64 {
	p := domcss.GetLocalProperty(l.styles(n), "font-size")
	if p.IsEmpty() || p.IsInherit() {
		return parent
	}
	if fs, ok := length(p, l.context(parent, parent)); ok {
		return fs
	}
	return parent
}

func (l *run) lineHeight(n *html.Node, font float64) float64 {
	p := l.prop(n, "line-height")
	if p.IsEmpty() || p == "normal" {
		return l.engine.LineHeight * font
	}
	if f, err := strconv.ParseFloat(p.String(), 64); err == nil {
		return f * font
	}
	if lh, ok := length(p, l.context(font, font)); ok {
		return lh
	}
	return l.engine.LineHeight * font
}

func (l *run) edges(n *html.Node, prefix string, ctx css.Context) Edges {
	var v [4]float64
	for i, side := range sides {
		v[i], _ = length(l.prop(n, prefix+"-"+side), ctx)
	}
	return Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
}

func (l *run) borders(n *html.Node, ctx css.Context) Edges {
	var v [4]float64
	for i, side := range sides {
		switch l.prop(n, "border-"+side+"-style") {
		case "", "none", "hidden":
			continue
		}
		switch w := l.prop(n, "border-"+side+"-width"); w {
		case "thin":
			v[i] = 1
		case "medium":
			v[i] = 3
		case "thick":
			v[i] = 5
		default:
			v[i], _ = length(w, ctx)
		}
	}
	return Edges{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
}

// size resolves `width` or `height`. Percentage heights need a definite
// containing block height, which we never have, so they behave as auto.
func (l *run) size(n *html.Node, key string, ctx css.Context, vertical bool) (float64, bool) {
	d, err := css.ParseDimen(l.prop(n, key).String())
	if err != nil || d.IsNone() || d.IsAuto() {
		return 0, false
	}
	if vertical && d.Match().Percentage(nil) != nil {
		return 0, false
	}
	du, ok := d.Resolve(ctx)
	if !ok {
		return 0, false
	}
	return math.Max(0, css.ToPixels(du)), true
}

func (l *run) clamp(n *html.Node, v float64, dim string, ctx css.Context, vertical bool) float64 {
	if max, ok := l.size(n, "max-"+dim, ctx, vertical); ok && v > max {
		v = max
	}
	if min, ok := l.size(n, "min-"+dim, ctx, vertical); ok && v < min {
		v = min
	}
	return v
}

func (l *run) isBorderBox(n *html.Node) bool {
	return l.prop(n, "box-sizing") == "border-box"
}

// intrinsic returns the size of replaced elements from their attributes.
func intrinsic(n *html.Node, key string) (float64, bool) {
	if n.DataAtom != atom.Img && n.DataAtom != atom.Canvas && n.DataAtom != atom.Video {
		return 0, false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(a.Val, "px"), 64); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

func (l *run) record(n *html.Node, x, y, w, h float64) {
	l.boxes.rects[n] = w3cdom.DOMRect{X: x, Y: y, Width: w, Height: h}
}

// hide records empty rects for n and all elements below it.
func (l *run) hide(n *html.Node) {
	if n.Type == html.ElementNode {
		l.boxes.rects[n] = w3cdom.DOMRect{}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.hide(c)
	}
}

// block lays out a block-level element with its margin box placed at (x, y)
// in a containing block of width cbWidth. It returns the height of the
// margin box.
func (l *run) block(n *html.Node, x, y, cbWidth, parentFont float64) float64 {
	fs := l.fontSize(n, parentFont)
	ctx := l.context(cbWidth, fs)
	m, b, p := l.edges(n, "margin", ctx), l.borders(n, ctx), l.edges(n, "padding", ctx)
	width, definite := l.size(n, "width", ctx, false)
	if definite && l.isBorderBox(n) {
		width = math.Max(0, width-b.Horizontal()-p.Horizontal())
	}
	if !definite {
		width = math.Max(0, cbWidth-m.Horizontal()-b.Horizontal()-p.Horizontal())
	}
	width = l.clamp(n, width, "width", ctx, false)
	if definite && l.prop(n, "margin-left") == "auto" && l.prop(n, "margin-right") == "auto" {
		if free := cbWidth - width - b.Horizontal() - p.Horizontal(); free > 0 {
			m.Left, m.Right = free/2, free/2
		}
	}
	cx := x + m.Left + b.Left + p.Left
	cy := y + m.Top + b.Top + p.Top
	height, _ := l.flow(n, cx, cy, width, fs)
	if h, ok := l.size(n, "height", ctx, true); ok {
		height = h
		if l.isBorderBox(n) {
			height = math.Max(0, height-b.Vertical()-p.Vertical())
		}
	}
	height = l.clamp(n, height, "height", ctx, true)
	l.record(n, x+m.Left, y+m.Top, width+b.Horizontal()+p.Horizontal(), height+b.Vertical()+p.Vertical())
	return m.Vertical() + b.Vertical() + p.Vertical() + height
}

// atomic lays out an inline-level element as a single box with its margin
// box placed at (x, y). avail is the space left on the current line, cbWidth
// the width of the containing block. It returns the margin box size.
func (l *run) atomic(n *html.Node, mode domcss.DisplayMode, x, y, avail, cbWidth, parentFont float64) (float64, float64) {
	fs := l.fontSize(n, parentFont)
	ctx := l.context(cbWidth, fs)
	m, b, p := l.edges(n, "margin", ctx), l.borders(n, ctx), l.edges(n, "padding", ctx)
	plain := mode.Contains(domcss.InnerInlineMode) // width and height do not apply
	width, definite := 0.0, false
	if !plain {
		if width, definite = l.size(n, "width", ctx, false); !definite {
			width, definite = intrinsic(n, "width")
		} else if l.isBorderBox(n) {
			width = math.Max(0, width-b.Horizontal()-p.Horizontal())
		}
	}
	inner := width
	if !definite {
		inner = math.Max(0, avail-m.Horizontal()-b.Horizontal()-p.Horizontal())
	}
	cx := x + m.Left + b.Left + p.Left
	cy := y + m.Top + b.Top + p.Top
	height, used := l.flow(n, cx, cy, inner, fs)
	if !definite {
		width = math.Min(used, inner)
	}
	if !plain {
		width = l.clamp(n, width, "width", ctx, false)
		if h, ok := l.size(n, "height", ctx, true); ok {
			height = h
			if l.isBorderBox(n) {
				height = math.Max(0, height-b.Vertical()-p.Vertical())
			}
		} else if h, ok := intrinsic(n, "height"); ok {
			height = h
		}
		height = l.clamp(n, height, "height", ctx, true)
	} else if height == 0 {
		height = l.lineHeight(n, fs)
	}
	l.record(n, x+m.Left, y+m.Top, width+b.Horizontal()+p.Horizontal(), height+b.Vertical()+p.Vertical())
	return m.Horizontal() + b.Horizontal() + p.Horizontal() + width,
		m.Vertical() + b.Vertical() + p.Vertical() + height
}

// flow lays out the children of n in normal flow into a content box at
// (x, y) of the given width. It returns the content height and the width
// used by the widest line or block.
func (l *run) flow(n *html.Node, x, y, width, fs float64) (float64, float64) {
	cursor := y
	used := 0.0
	ln := &lineBox{left: x, width: width, lineHeight: l.lineHeight(n, fs)}
	charW := fs * l.engine.CharWidth
	closeLine := func() {
		if ln.used {
			cursor = ln.y + ln.height
			used = math.Max(used, ln.maxWidth)
			ln.reset()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			ln.open(cursor)
			ln.text(c.Data, charW)
		case html.ElementNode:
			mode := l.display(c)
			switch {
			case mode == domcss.DisplayNone:
				l.hide(c)
			case mode.IsBlockLevel():
				closeLine()
				cursor += l.block(c, x, cursor, width, fs)
				used = width
			default:
				ln.open(cursor)
				w, h := l.atomic(c, mode, ln.pen, ln.y, ln.remaining(), width, fs)
				if ln.pen > ln.left && w > ln.remaining() {
					ln.wrap()
					w, h = l.atomic(c, mode, ln.pen, ln.y, ln.remaining(), width, fs)
				}
				ln.place(w, h)
			}
		}
	}
	closeLine()
	return cursor - y, used
}

// lineBox tracks the line currently being filled with inline content.
type lineBox struct {
	left, width float64 // horizontal extent of the containing block
	lineHeight  float64
	pen         float64 // next free x position
	y           float64 // top of the current line
	height      float64 // height of the current line
	maxWidth    float64 // widest line so far
	used        bool
}

func (ln *lineBox) open(y float64) {
	if !ln.used {
		ln.used = true
		ln.y = y
		ln.pen = ln.left
		ln.height = ln.lineHeight
	}
}

func (ln *lineBox) reset() {
	ln.used = false
	ln.maxWidth = 0
}

func (ln *lineBox) remaining() float64 {
	return math.Max(0, ln.left+ln.width-ln.pen)
}

func (ln *lineBox) wrap() {
	ln.y += ln.height
	ln.pen = ln.left
	ln.height = ln.lineHeight
}

func (ln *lineBox) place(w, h float64) {
	ln.pen += w
	ln.height = math.Max(ln.height, h)
	ln.maxWidth = math.Max(ln.maxWidth, ln.pen-ln.left)
}

func (ln *lineBox) text(s string, charW float64) {
	for _, word := range strings.Fields(s) {
		w := float64(utf8.RuneCountInString(word)) * charW
		if ln.pen > ln.left && w > ln.remaining() {
			ln.wrap()
		}
		ln.place(w, ln.lineHeight)
		ln.pen += charW // inter-word space
	}
}
