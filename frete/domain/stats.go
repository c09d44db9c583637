package domain

import (
	"context"
	"time"
)

// QuoteEvent representa o resultado de uma cotação para fins de estatística.
//
// Reason é um rótulo curto e de baixa cardinalidade ("route_not_found",
// "price_not_found", ...). Vazio quando OK.
type QuoteEvent struct {
	RunID  string
	Policy Policy
	OK     bool
	Reason string

	At time.Time
}

// StatsStore é a estratégia de persistência das estatísticas de cotação.
//
// Implementações podem armazenar em Redis, memória, etc.
// Quem chama trata erro como best-effort (não altera a saída da cotação).
type StatsStore interface {
	Record(ctx context.Context, ev QuoteEvent) error
}
