// Package currency formata valores monetários para exibição no painel
// (padrão: pt-BR / BRL, "R$ 1.234,50") e valida valores digitados em formulários.
//
// O arredondamento usa github.com/shopspring/decimal (half away from zero, como o
// Intl.NumberFormat do navegador) e a escala da moeda vem de
// golang.org/x/text/currency.
package currency
