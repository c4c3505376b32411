package application

import (
	"context"
	"errors"

	"painel-web/middleware/pageinit/domain"
)

type fakeElement struct {
	id      string
	attrs   map[string]string
	classes map[string]bool
}

func newElement(id string, classes ...string) *fakeElement {
	el := &fakeElement{id: id, attrs: map[string]string{}, classes: map[string]bool{}}
	for _, c := range classes {
		el.classes[c] = true
	}
	return el
}

func (e *fakeElement) ID() string { return e.id }
func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *fakeElement) SetAttr(name, value string) { e.attrs[name] = value }
func (e *fakeElement) RemoveAttr(name string)      { delete(e.attrs, name) }
func (e *fakeElement) HasClass(c string) bool      { return e.classes[c] }
func (e *fakeElement) AddClass(c string)           { e.classes[c] = true }
func (e *fakeElement) RemoveClass(c string)        { delete(e.classes, c) }

type fakeForm struct {
	*fakeElement
	valid    bool
	handlers []func()
}

func (f *fakeForm) CheckValidity() bool { return f.valid }
func (f *fakeForm) OnSubmit(fn func())  { f.handlers = append(f.handlers, fn) }
func (f *fakeForm) submit() {
	for _, h := range f.handlers {
		h()
	}
}

type fakeDoc struct {
	body     *fakeElement
	elements []*fakeElement
	forms    []*fakeForm
}

func (d *fakeDoc) Body() domain.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *fakeDoc) QueryClass(class string) []domain.Element {
	var out []domain.Element
	for _, el := range d.elements {
		if el.HasClass(class) {
			out = append(out, el)
		}
	}
	return out
}

func (d *fakeDoc) QueryAttr(name, value string) []domain.Element {
	var out []domain.Element
	for _, el := range d.elements {
		if v, ok := el.Attr(name); ok && v == value {
			out = append(out, el)
		}
	}
	return out
}

func (d *fakeDoc) Forms() []domain.Form {
	out := make([]domain.Form, 0, len(d.forms))
	for _, f := range d.forms {
		out = append(out, f)
	}
	return out
}

func (d *fakeDoc) ByID(id string) domain.Element {
	for _, el := range d.elements {
		if el.id == id {
			return el
		}
	}
	return nil
}

type fakeToast struct{ el *fakeElement }

func (t fakeToast) Show() error {
	t.el.AddClass("show")
	return nil
}

type fakeTooltip struct{ title string }

func (t fakeTooltip) Title() string { return t.title }

// fakeKit falha para elementos com atributo "data-fail" e entra em panic com "data-panic".
type fakeKit struct{}

func (fakeKit) NewToast(el domain.Element) (domain.Toast, error) {
	if _, ok := el.Attr("data-fail"); ok {
		return nil, errors.New("toast quebrado")
	}
	if _, ok := el.Attr("data-panic"); ok {
		panic("boom")
	}
	return fakeToast{el: el.(*fakeElement)}, nil
}

func (fakeKit) NewTooltip(el domain.Element) (domain.Tooltip, error) {
	if _, ok := el.Attr("data-panic"); ok {
		panic("boom")
	}
	if _, ok := el.Attr("data-fail"); ok {
		return nil, errors.New("tooltip quebrado")
	}
	title, _ := el.Attr("title")
	return fakeTooltip{title: title}, nil
}

type fakeStorage struct {
	removed []string
	err     error
}

func (s *fakeStorage) Get(context.Context, string, string) (string, bool, error) {
	return "", false, nil
}
func (s *fakeStorage) Set(context.Context, string, string, string) error { return nil }
func (s *fakeStorage) Remove(_ context.Context, scope, key string) error {
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, scope+"/"+key)
	return nil
}
