package currency

import "golang.org/x/text/language"

// nbsp separa símbolo e número no pt-BR, igual ao Intl do navegador.
const nbsp = "\u00a0"

type localeFormat struct {
	group     string
	decimal   string
	symbolSep string
	symbols   map[string]string
}

var locales = map[string]localeFormat{
	language.BrazilianPortuguese.String(): {
		group:     ".",
		decimal:   ",",
		symbolSep: nbsp,
		symbols:   map[string]string{"BRL": "R$", "USD": "US$", "EUR": "€"},
	},
	language.AmericanEnglish.String(): {
		group:   ",",
		decimal: ".",
		symbols: map[string]string{"USD": "$", "BRL": "R$", "EUR": "€"},
	},
}

func (l localeFormat) symbol(code string) string {
	if s, ok := l.symbols[code]; ok {
		return s
	}
	return code
}
