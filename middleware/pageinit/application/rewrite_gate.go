package application

import (
	"context"
	"time"

	"painel-web/middleware/pageinit/domain"
)

// RewriteGate limita quantas páginas são reescritas em paralelo, sem saber
// nada sobre HTTP.
type RewriteGate struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Acquire tenta adquirir uma vaga.
// - Sem Pool, sempre libera.
// - Se `AcquireTimeout <= 0`, espera até ctx cancelar.
// - Se `AcquireTimeout > 0`, espera até o timeout.
// Retorna (release, ok). Se ok=false, a página segue sem reescrita.
func (g RewriteGate) Acquire(ctx context.Context) (func(), bool) {
	if g.Pool == nil {
		return func() {}, true
	}

	if g.AcquireTimeout <= 0 {
		return g.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, g.AcquireTimeout)
	defer cancel()
	return g.Pool.Acquire(acqCtx)
}
