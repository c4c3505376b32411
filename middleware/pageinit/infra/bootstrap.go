package infra

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"painel-web/middleware/pageinit/domain"
)

var ErrInvalidOption = errors.New("widget: invalid data-bs option")

// BootstrapKit reproduz, no markup, o estado que o Bootstrap 5 deixa nos
// elementos depois de new bootstrap.Toast(el).show() e new bootstrap.Tooltip(el).
type BootstrapKit struct{}

var _ domain.WidgetKit = BootstrapKit{}

type bootstrapToast struct {
	el       domain.Element
	autohide bool
	delay    int
}

func (BootstrapKit) NewToast(el domain.Element) (domain.Toast, error) {
	t := &bootstrapToast{el: el, autohide: true, delay: 5000}

	if v, ok := el.Attr("data-bs-autohide"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: data-bs-autohide=%q", ErrInvalidOption, v)
		}
		t.autohide = b
	}
	if v, ok := el.Attr("data-bs-delay"); ok {
		d, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: data-bs-delay=%q", ErrInvalidOption, v)
		}
		t.delay = d
	}
	return t, nil
}

// Show deixa o toast visível: tira "hide", coloca "show".
func (t *bootstrapToast) Show() error {
	t.el.RemoveClass("hide")
	t.el.AddClass("show")
	t.el.SetAttr("data-bs-autohide", strconv.FormatBool(t.autohide))
	t.el.SetAttr("data-bs-delay", strconv.Itoa(t.delay))
	return nil
}

type bootstrapTooltip struct {
	title string
}

func (t bootstrapTooltip) Title() string { return t.title }

// NewTooltip lê o título de data-bs-title ou title. Como o Bootstrap, move
// title para data-bs-original-title para o navegador não mostrar o nativo.
// Sem título o tooltip é criado mesmo assim e só não tem o que mostrar.
func (BootstrapKit) NewTooltip(el domain.Element) (domain.Tooltip, error) {
	title, _ := el.Attr("data-bs-title")
	if strings.TrimSpace(title) == "" {
		title, _ = el.Attr("title")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return bootstrapTooltip{}, nil
	}

	if _, ok := el.Attr("title"); ok {
		el.RemoveAttr("title")
	}
	el.SetAttr("data-bs-original-title", title)
	el.SetAttr("aria-label", title)
	return bootstrapTooltip{title: title}, nil
}
