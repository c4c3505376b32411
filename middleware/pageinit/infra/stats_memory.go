package infra

import (
	"context"
	"maps"
	"sync"

	"painel-web/middleware/pageinit/domain"
)

// Counters soma os relatórios de inicialização.
type Counters struct {
	Pages       int64
	ThemeResets int64
	Toasts      int64
	Forms       int64
	Tooltips    int64
	Failures    int64
}

func (c Counters) plus(rep domain.Report) Counters {
	c.Pages++
	if rep.ThemeReset {
		c.ThemeResets++
	}
	c.Toasts += int64(rep.ToastsShown)
	c.Forms += int64(rep.FormsBound)
	c.Tooltips += int64(rep.TooltipsReady)
	c.Failures += int64(len(rep.Failures))
	return c
}

// MemoryStatsStore guarda os contadores no processo, sem expiração.
// Serve para desenvolvimento e para o example-server.
type MemoryStatsStore struct {
	mu       sync.Mutex
	total    Counters
	byRoute  map[string]Counters
	byScope  map[string]Counters
	failures map[domain.Category]int64

	trackScopes bool
}

var _ domain.StatsStore = (*MemoryStatsStore)(nil)

type MemoryStatsOption func(*MemoryStatsStore)

// WithTrackScopes também conta por escopo (cliente). Desligado por padrão:
// a cardinalidade cresce com o número de sessões.
func WithTrackScopes(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackScopes = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byRoute:  map[string]Counters{},
		byScope:  map[string]Counters{},
		failures: map[domain.Category]int64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total = s.total.plus(ev.Report)

	route := ev.Method + " " + ev.Path
	s.byRoute[route] = s.byRoute[route].plus(ev.Report)

	if s.trackScopes && ev.Scope != "" {
		s.byScope[ev.Scope] = s.byScope[ev.Scope].plus(ev.Report)
	}
	for _, f := range ev.Report.Failures {
		s.failures[f.Category]++
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// ByRoute devolve uma cópia indexada por "METHOD path".
func (s *MemoryStatsStore) ByRoute() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.byRoute)
}

func (s *MemoryStatsStore) ByScope() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.byScope)
}

// FailuresByCategory devolve uma cópia das falhas por categoria de widget.
func (s *MemoryStatsStore) FailuresByCategory() map[domain.Category]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.failures)
}
