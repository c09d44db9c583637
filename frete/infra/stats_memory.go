package infra

import (
	"context"
	"sync"

	"axado-frete/frete/domain"
)

type Counters struct {
	OK     int64
	Failed int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e para o resumo do modo lote.
type MemoryStatsStore struct {
	mu       sync.Mutex
	total    Counters
	byPolicy map[domain.Policy]Counters
	byReason map[string]int64
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		byPolicy: make(map[domain.Policy]Counters),
		byReason: make(map[string]int64),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.QuoteEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.byPolicy[ev.Policy]
	if ev.OK {
		s.total.OK++
		c.OK++
	} else {
		s.total.Failed++
		c.Failed++
		if ev.Reason != "" {
			s.byReason[ev.Reason]++
		}
	}
	s.byPolicy[ev.Policy] = c
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByPolicy() map[domain.Policy]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Policy]Counters, len(s.byPolicy))
	for k, v := range s.byPolicy {
		out[k] = v
	}
	return out
}

func (s *MemoryStatsStore) ByReason() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.byReason))
	for k, v := range s.byReason {
		out[k] = v
	}
	return out
}
