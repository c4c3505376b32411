// Package application contém os casos de uso da inicialização de página.
//
// Ele depende apenas do pacote domain e não conhece net/http nem HTML.
// Ex.: Initializer.Initialize(ctx, scope, doc) aplica tema, toasts, formulários
// e tooltips e devolve um domain.Report.
package application
