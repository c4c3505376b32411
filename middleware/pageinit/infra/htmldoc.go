package infra

import (
	"fmt"
	"io"
	"strings"

	"painel-web/middleware/pageinit/domain"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const SubmitMarkerAttr = domain.SubmitMarkerAttr

// HTMLDocument implementa domain.Document sobre golang.org/x/net/html.
//
// Os handlers de submit ficam em memória; Submit simula o evento no servidor.
type HTMLDocument struct {
	root     *html.Node
	handlers map[*html.Node][]func()
}

var _ domain.Document = (*HTMLDocument)(nil)

func ParseHTML(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &HTMLDocument{root: root, handlers: make(map[*html.Node][]func())}, nil
}

func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *HTMLDocument) Body() domain.Element {
	n := d.find(func(n *html.Node) bool { return n.DataAtom == atom.Body })
	if n == nil {
		return nil
	}
	return &htmlElement{n: n}
}

func (d *HTMLDocument) QueryClass(class string) []domain.Element {
	var out []domain.Element
	d.walk(func(n *html.Node) {
		if hasClass(n, class) {
			out = append(out, &htmlElement{n: n})
		}
	})
	return out
}

func (d *HTMLDocument) QueryAttr(name, value string) []domain.Element {
	var out []domain.Element
	d.walk(func(n *html.Node) {
		if v, ok := getAttr(n, name); ok && v == value {
			out = append(out, &htmlElement{n: n})
		}
	})
	return out
}

func (d *HTMLDocument) Forms() []domain.Form {
	var out []domain.Form
	d.walk(func(n *html.Node) {
		if n.DataAtom == atom.Form {
			out = append(out, &htmlForm{htmlElement: htmlElement{n: n}, doc: d})
		}
	})
	return out
}

func (d *HTMLDocument) ByID(id string) domain.Element {
	if id == "" {
		return nil
	}
	n := d.find(func(n *html.Node) bool {
		v, ok := getAttr(n, "id")
		return ok && v == id
	})
	if n == nil {
		return nil
	}
	return &htmlElement{n: n}
}

// Submit dispara os handlers registrados no formulário, na ordem de registro.
func (d *HTMLDocument) Submit(form domain.Form) {
	f, ok := form.(*htmlForm)
	if !ok {
		return
	}
	for _, fn := range d.handlers[f.n] {
		fn()
	}
}

func (d *HTMLDocument) walk(visit func(*html.Node)) {
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.ElementNode {
			visit(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(d.root)
}

func (d *HTMLDocument) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var rec func(*html.Node) bool
	rec = func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if rec(c) {
				return true
			}
		}
		return false
	}
	rec(d.root)
	return found
}

type htmlElement struct {
	n *html.Node
}

func (e *htmlElement) ID() string {
	v, _ := getAttr(e.n, "id")
	return v
}

func (e *htmlElement) Attr(name string) (string, bool) { return getAttr(e.n, name) }

func (e *htmlElement) SetAttr(name, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *htmlElement) RemoveAttr(name string) {
	out := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		out = append(out, a)
	}
	e.n.Attr = out
}

func (e *htmlElement) HasClass(class string) bool { return hasClass(e.n, class) }

func (e *htmlElement) AddClass(class string) {
	if class == "" || hasClass(e.n, class) {
		return
	}
	classes := classList(e.n)
	e.SetAttr("class", strings.Join(append(classes, class), " "))
}

func (e *htmlElement) RemoveClass(class string) {
	if !hasClass(e.n, class) {
		return
	}
	var kept []string
	for _, c := range classList(e.n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

type htmlForm struct {
	htmlElement
	doc *HTMLDocument
}

func (f *htmlForm) OnSubmit(fn func()) {
	if fn == nil {
		return
	}
	f.doc.handlers[f.n] = append(f.doc.handlers[f.n], fn)
	if _, ok := f.Attr(SubmitMarkerAttr); !ok {
		f.SetAttr(SubmitMarkerAttr, "")
	}
}

// CheckValidity cobre o caso comum da validação nativa: todo controle
// `required` habilitado precisa de valor não vazio (espaços contam, como no navegador).
func (f *htmlForm) CheckValidity() bool {
	valid := true
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if !valid {
			return
		}
		if n.Type == html.ElementNode && isRequiredControl(n) && controlValue(n) == "" {
			valid = false
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(f.n)
	return valid
}

func isRequiredControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Input, atom.Select, atom.Textarea:
	default:
		return false
	}
	if _, ok := getAttr(n, "required"); !ok {
		return false
	}
	if _, ok := getAttr(n, "disabled"); ok {
		return false
	}
	if t, _ := getAttr(n, "type"); n.DataAtom == atom.Input && (t == "hidden" || t == "submit" || t == "button") {
		return false
	}
	return true
}

func controlValue(n *html.Node) string {
	switch n.DataAtom {
	case atom.Textarea:
		return textOf(n)
	case atom.Select:
		return selectValue(n)
	case atom.Input:
		t, _ := getAttr(n, "type")
		if t == "checkbox" || t == "radio" {
			if _, ok := getAttr(n, "checked"); ok {
				return "on"
			}
			return ""
		}
	}
	v, _ := getAttr(n, "value")
	return v
}

// selectValue segue o navegador: sem option "selected", vale a primeira.
func selectValue(n *html.Node) string {
	var opts []*html.Node
	var rec func(*html.Node)
	rec = func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			opts = append(opts, c)
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			rec(cc)
		}
	}
	rec(n)
	if len(opts) == 0 {
		return ""
	}
	chosen := opts[0]
	for _, o := range opts {
		if _, ok := getAttr(o, "selected"); ok {
			chosen = o
			break
		}
	}
	if v, ok := getAttr(chosen, "value"); ok {
		return v
	}
	return strings.TrimSpace(textOf(chosen))
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func classList(n *html.Node) []string {
	v, _ := getAttr(n, "class")
	return strings.Fields(v)
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range classList(n) {
		if c == class {
			return true
		}
	}
	return false
}
