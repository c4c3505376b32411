// Package utils expõe os pontos de entrada antigos (formatCurrency e debounce)
// encaminhando para os pacotes currency e debounce.
package utils

import (
	"time"

	"painel-web/utils/currency"
	"painel-web/utils/debounce"
)

// FormatCurrency formata em pt-BR / BRL.
func FormatCurrency(v any) (string, error) {
	return currency.BRL().FormatAny(v)
}

// Debounce encaminha para debounce.New; a chamada que dispara recebe o
// argumento da última chamada da rajada.
func Debounce[T any](fn func(T), wait time.Duration) (func(T), error) {
	return debounce.New(fn, wait)
}
