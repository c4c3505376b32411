package infra

import (
	"context"
	"sync"

	"painel-web/middleware/pageinit/domain"
)

// slotPool é um semáforo baseado em channel.
type slotPool struct {
	sem chan struct{}
}

// NewChanPool cria um pool com capacidade `max` reescritas simultâneas.
// max <= 0 devolve nil (sem limite).
func NewChanPool(max int) domain.SlotPool {
	if max <= 0 {
		return nil
	}
	return &slotPool{sem: make(chan struct{}, max)}
}

// Acquire devolve um release idempotente: chamar duas vezes não libera duas vagas.
func (p *slotPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-p.sem }) }, true
	case <-ctx.Done():
		return nil, false
	}
}
