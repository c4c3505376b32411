// Package debounce agrupa rajadas de chamadas em uma única execução ao final
// de um período de silêncio (trailing edge).
//
// Uso típico: campos de busca e eventos de input, onde só interessa o último
// valor digitado.
//
//	search, err := debounce.New(func(q string) { buscar(q) }, 300*time.Millisecond)
//	search("a")
//	search("ab")
//	search("abc") // só "abc" chega em buscar, 300ms depois da última chamada
//
// Não há modo leading-edge, cancelamento externo nem retorno de valor.
// Enquanto as chamadas não pararem, a ação nunca executa.
package debounce
