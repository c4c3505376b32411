package domain

import "context"

// Element é o mínimo de um nó do documento usado na inicialização.
type Element interface {
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
}

// SubmitMarkerAttr marca os formulários ligados ao spinner; o valor é o id do
// spinner ("" quando a página não tem um).
const SubmitMarkerAttr = "data-submit-loading"

// Form é um <form> com validação nativa e evento de submit.
type Form interface {
	Element
	CheckValidity() bool
	OnSubmit(fn func())
}

// Document representa a página já parseada ("DOM ready").
//
// ByID retorna nil quando o elemento não existe.
type Document interface {
	Body() Element
	QueryClass(class string) []Element
	QueryAttr(name, value string) []Element
	Forms() []Form
	ByID(id string) Element
}

// Storage é o equivalente ao localStorage do navegador, separado por escopo
// (cliente/sessão).
type Storage interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Remove(ctx context.Context, scope, key string) error
}
