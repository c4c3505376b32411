package domain

import (
	"context"
	"time"
)

// StatsEvent representa uma inicialização de página.
//
// Observação: cuidado com cardinalidade de Path (ex.: ids na URL).
type StatsEvent struct {
	Scope  string
	Method string
	Path   string

	Report Report

	At time.Time
}

// StatsStore persiste estatísticas de inicialização.
// O middleware trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
