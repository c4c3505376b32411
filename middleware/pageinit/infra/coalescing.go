package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"painel-web/middleware/pageinit/domain"
	"painel-web/utils/debounce"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CoalescingStorage agrupa remoções repetidas da mesma chave.
//
// Cada página carregada remove a preferência de tema; uma rajada de páginas do
// mesmo cliente vira um único Remove no storage de baixo, Wait depois da
// última. Get e Set enxergam a remoção pendente (read-your-writes).
//
// As entradas por escopo+chave têm limpeza periódica, como no cache de limiters.
type CoalescingStorage struct {
	next   domain.Storage
	wait   time.Duration
	clock  debounce.Clock
	logger *zap.Logger

	removeTimeout time.Duration
	idleTTL       time.Duration
	cleanupEvery  time.Duration

	mu      sync.Mutex
	entries map[string]*coalesceEntry
}

var _ domain.Storage = (*CoalescingStorage)(nil)

type coalesceEntry struct {
	scope, key string
	remove     func()
	pending    bool
	lastSeen   time.Time
}

type CoalescingOption func(*CoalescingStorage)

func WithCoalesceClock(c debounce.Clock) CoalescingOption {
	return func(s *CoalescingStorage) { s.clock = c }
}

func WithCoalesceLogger(l *zap.Logger) CoalescingOption {
	return func(s *CoalescingStorage) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithCoalesceIdleTTL(d time.Duration) CoalescingOption {
	return func(s *CoalescingStorage) { s.idleTTL = d }
}

func WithCoalesceCleanupEvery(d time.Duration) CoalescingOption {
	return func(s *CoalescingStorage) { s.cleanupEvery = d }
}

func WithRemoveTimeout(d time.Duration) CoalescingOption {
	return func(s *CoalescingStorage) { s.removeTimeout = d }
}

// NewCoalescingStorage retorna erro (debounce.ErrInvalidArgument) se wait < 0.
func NewCoalescingStorage(next domain.Storage, wait time.Duration, opts ...CoalescingOption) (*CoalescingStorage, error) {
	if next == nil {
		return nil, errors.New("coalescing storage: next storage is nil")
	}
	if wait < 0 {
		return nil, debounce.ErrInvalidArgument
	}
	s := &CoalescingStorage{
		next:          next,
		wait:          wait,
		clock:         debounce.RealClock{},
		logger:        zap.NewNop(),
		removeTimeout: 2 * time.Second,
		idleTTL:       15 * time.Minute,
		cleanupEvery:  2 * time.Minute,
		entries:       make(map[string]*coalesceEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *CoalescingStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	ent, ok := s.entries[entryKey(scope, key)]
	pending := ok && ent.pending
	s.mu.Unlock()

	if pending {
		return "", false, nil
	}
	return s.next.Get(ctx, scope, key)
}

// Set grava direto e descarta a remoção pendente da mesma chave.
func (s *CoalescingStorage) Set(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	if ent, ok := s.entries[entryKey(scope, key)]; ok {
		ent.pending = false
		ent.lastSeen = time.Now()
	}
	s.mu.Unlock()

	return s.next.Set(ctx, scope, key, value)
}

// Remove agenda a remoção e retorna imediatamente.
func (s *CoalescingStorage) Remove(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, err := s.entryLocked(scope, key)
	if err != nil {
		return err
	}
	ent.pending = true
	ent.lastSeen = time.Now()
	ent.remove()
	return nil
}

func (s *CoalescingStorage) entryLocked(scope, key string) (*coalesceEntry, error) {
	k := entryKey(scope, key)
	if ent, ok := s.entries[k]; ok {
		return ent, nil
	}

	ent := &coalesceEntry{scope: scope, key: key}
	remove, err := debounce.Func(func() { s.fire(ent) }, s.wait, debounce.WithClock(s.clock))
	if err != nil {
		return nil, err
	}
	ent.remove = remove
	s.entries[k] = ent
	return ent, nil
}

func (s *CoalescingStorage) fire(ent *coalesceEntry) {
	s.mu.Lock()
	if !ent.pending {
		s.mu.Unlock()
		return
	}
	ent.pending = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.removeTimeout)
	defer cancel()
	if err := s.next.Remove(ctx, ent.scope, ent.key); err != nil {
		s.logger.Warn("coalesced remove failed",
			zap.String("scope", ent.scope),
			zap.String("key", ent.key),
			zap.Error(err),
		)
	}
}

const flushParallelism = 8

// Flush executa agora todas as remoções pendentes (ex.: no shutdown).
// Retorna o primeiro erro do storage de baixo.
func (s *CoalescingStorage) Flush(ctx context.Context) error {
	s.mu.Lock()
	var due []*coalesceEntry
	for _, ent := range s.entries {
		if ent.pending {
			ent.pending = false
			due = append(due, ent)
		}
	}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(flushParallelism)
	for _, ent := range due {
		ent := ent
		g.Go(func() error {
			return s.next.Remove(gctx, ent.scope, ent.key)
		})
	}
	return g.Wait()
}

// Cleanup descarta entradas ociosas sem remoção pendente.
func (s *CoalescingStorage) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if !ent.pending && ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func (s *CoalescingStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor inicia uma goroutine que limpa entradas ociosas periodicamente.
// Pare cancelando o contexto.
func (s *CoalescingStorage) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

func entryKey(scope, key string) string { return scope + "\x00" + key }
