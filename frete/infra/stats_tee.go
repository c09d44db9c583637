package infra

import (
	"context"
	"errors"

	"axado-frete/frete/domain"
)

type teeStats []domain.StatsStore

// TeeStats envia cada evento para todos os stores não-nil.
// Todos recebem o evento mesmo se um falhar; os erros são agregados.
func TeeStats(stores ...domain.StatsStore) domain.StatsStore {
	var out teeStats
	for _, s := range stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (t teeStats) Record(ctx context.Context, ev domain.QuoteEvent) error {
	var errs []error
	for _, s := range t {
		if err := s.Record(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
