package infra

import (
	"context"
	"sync"

	"painel-web/middleware/pageinit/domain"
)

// MemoryStorage guarda preferências em memória, por escopo.
// Útil para testes e desenvolvimento; não expira nada.
type MemoryStorage struct {
	mu      sync.Mutex
	byScope map[string]map[string]string
}

var _ domain.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byScope: make(map[string]map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byScope[scope][key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byScope[scope]
	if !ok {
		m = make(map[string]string)
		s.byScope[scope] = m
	}
	m[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byScope[scope]
	if !ok {
		return nil
	}
	delete(m, key)
	if len(m) == 0 {
		delete(s.byScope, scope)
	}
	return nil
}
