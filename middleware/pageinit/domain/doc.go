// Package domain define contratos e tipos da inicialização de página
// (tema, toasts, spinner de envio de formulário e tooltips).
//
// Este pacote não depende de net/http, de parser HTML nem da biblioteca de
// widgets: documento, storage e widgets chegam como interfaces.
package domain
