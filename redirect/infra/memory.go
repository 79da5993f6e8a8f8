package infra

import (
	"context"
	"sync"

	"redirect-gateway/redirect/domain"
)

// MemoryLookup é um store em memória.
// Útil para testes e para embutir o handler sem dependências externas.
type MemoryLookup struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryLookup(values map[string]string) *MemoryLookup {
	m := &MemoryLookup{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryLookup) Get(_ context.Context, key domain.Key) (domain.Target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[string(key)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return domain.Target(v), nil
}

// Replace troca o mapeamento inteiro de uma vez.
func (m *MemoryLookup) Replace(values map[string]string) {
	next := make(map[string]string, len(values))
	for k, v := range values {
		next[k] = v
	}

	m.mu.Lock()
	m.values = next
	m.mu.Unlock()
}

func (m *MemoryLookup) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
