package infra

import (
	"context"
	"sync"

	"axado-frete/frete/domain"

	"golang.org/x/time/rate"
)

// ThrottledStats limita a taxa de eventos enviados ao StatsStore seguinte,
// com um token-bucket (x/time/rate) por política.
//
// Eventos acima da taxa são descartados sem erro: estatística é best-effort
// e um lote grande não deve inundar o Redis.
type ThrottledStats struct {
	next domain.StatsStore

	mu       sync.Mutex
	limiters map[domain.Policy]*rate.Limiter
	rps      rate.Limit
	burst    int
	dropped  int64
}

// NewThrottledStats com rps <= 0 não limita nada.
func NewThrottledStats(next domain.StatsStore, rps float64, burst int) *ThrottledStats {
	if burst <= 0 {
		burst = 1
	}
	return &ThrottledStats{
		next:     next,
		limiters: make(map[domain.Policy]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (s *ThrottledStats) RPS() float64 { return float64(s.rps) }
func (s *ThrottledStats) Burst() int   { return s.burst }

func (s *ThrottledStats) Record(ctx context.Context, ev domain.QuoteEvent) error {
	if s.next == nil {
		return nil
	}
	if s.rps > 0 && !s.limiter(ev.Policy).Allow() {
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
		return nil
	}
	return s.next.Record(ctx, ev)
}

// Dropped retorna quantos eventos foram descartados pelo limite.
func (s *ThrottledStats) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *ThrottledStats) limiter(p domain.Policy) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lim, ok := s.limiters[p]; ok {
		return lim
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.limiters[p] = lim
	return lim
}
