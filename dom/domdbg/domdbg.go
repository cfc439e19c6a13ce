/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/domchain/dom"
	"github.com/npillmayer/domchain/dom/style"
	domcss "github.com/npillmayer/domchain/dom/style/css"
	"github.com/npillmayer/domchain/dom/style/cssom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
	styles         *cssom.ComputedStyles
}

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// ToGraphViz outputs a diagram for the subtree below an element. The
// diagram is in GraphViz (DOT) format. Clients have to provide the root
// element, a Writer, and an optional list of style parameter groups.
// The diagram will include all computed styles belonging to one of the
// parameter groups.
//
// If the client does not provide a list of style groups, the following
// default will be used:
//
//     - Margins
//     - Padding
//     - Border
//     - Display
//
func ToGraphViz(root *dom.Element, w io.Writer, styleGroups []string) error {
	if root.Node() == nil {
		return fmt.Errorf("cannot draw element: %w", dom.ErrNoElement)
	}
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	gparams.StyleGroups = styleGroups
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	gparams.styles = root.Document().ComputedStyles()
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 256)
	if err = nodes(root.Node(), w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given an element and a testing.T, it will
// create a Graphiviz image of the DOM tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root *dom.Element, t *testing.T) {
	tmpfile, err := ioutil.TempFile(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(root, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

// Outline returns an indented text rendering of the element subtree below
// root. Every element is listed with its computed display mode, id and
// classes; text nodes are shortened.
//
//     .
//     └── ▩ body
//         ├── ▩ div#main.wide
//         │   └── "hello"
//         └── ∅ script
//
func Outline(root *dom.Element) string {
	if root.Node() == nil {
		return ""
	}
	styles := root.Document().ComputedStyles()
	printer := tp.New()
	outline(printer, root.Node(), styles)
	return printer.String()
}

func outline(printer tp.Tree, n *html.Node, styles *cssom.ComputedStyles) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			printer.AddNode(fmt.Sprintf("%q", abbrev(s, 20)))
		}
		return
	case html.ElementNode:
	default:
		return
	}
	label := displaySymbol(n, styles) + " " + selectorLabel(n)
	if n.FirstChild == nil {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		outline(branch, c, styles)
	}
}

func displaySymbol(n *html.Node, styles *cssom.ComputedStyles) string {
	p, err := domcss.GetProperty(n, "display", styles.Styles)
	if err != nil {
		return "?"
	}
	mode, _ := domcss.ParseDisplay(p)
	return mode.Symbol()
}

func selectorLabel(n *html.Node) string {
	var b strings.Builder
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			b.WriteString("#" + a.Val)
		}
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				b.WriteString("." + c)
			}
		}
	}
	return b.String()
}

func abbrev(s string, l int) string {
	r := []rune(s)
	if len(r) <= l {
		return s
	}
	return string(r[:l]) + "…"
}

type node struct {
	N    *html.Node
	Name string
}

// NodeName returns a W3C node name for the templates.
func (n node) NodeName() string {
	if n.N.Type == html.TextNode {
		return "#text"
	}
	return n.N.Data
}

func nodes(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	if err := domNode(n, w, dict, gparams); err != nil {
		return err
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode && ch.Type != html.TextNode {
			continue
		}
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		if err := domEdge(n, ch, w, dict, gparams); err != nil {
			return err
		}
	}
	return nil
}

func domNode(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n] = name
	}
	if err := gparams.NodeTmpl.Execute(w, node{n, name}); err != nil {
		return err
	}
	return domStyles(n, w, dict, gparams)
}

func domStyles(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	pmap := gparams.styles.Styles(n)
	var prev *style.PropertyGroup
	for _, s := range gparams.StyleGroups {
		pg := pmap.Group(s)
		if pg == nil {
			continue
		}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		if prev == nil {
			if err := gparams.PgedgeTmpl.Execute(w, pgedge{dict[n], pg}); err != nil {
				return err
			}
		} else {
			if err := gparams.PgpgTmpl.Execute(w, []*style.PropertyGroup{prev, pg}); err != nil {
				return err
			}
		}
		prev = pg
	}
	return nil
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 *html.Node, n2 *html.Node, w io.Writer, dict map[*html.Node]string,
	gparams *graphParamsType) error {
	//
	e := edge{node{n1, dict[n1]}, node{n2, dict[n2]}}
	return gparams.EdgeTmpl.Execute(w, e)
}

type pgedge struct {
	Name      string
	PropGroup *style.PropertyGroup
}

func shortText(n node) string {
	h := n.N
	s := "\"\\\""
	if len(h.Data) > 10 {
		s += h.Data[:10] + "...\\\"\""
	} else {
		s += h.Data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .NodeName "#text" }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .NodeName }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ printf "pg%p" . }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ printf "pg%p" .PropGroup }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ index . 0 | printf "pg%p"  }} -> {{ index . 1 | printf "pg%p" }} [dir=none weight=1 style="dashed"] ;
`
