package frete

import (
	"context"
	"io"

	"axado-frete/frete/domain"
)

// Quoter é o que o adaptador precisa da camada application.
type Quoter interface {
	QuoteAll(ctx context.Context, req domain.QuoteRequest) []domain.Quote
}

// Run calcula todas as políticas para req e escreve uma linha por política.
func Run(ctx context.Context, w io.Writer, q Quoter, req domain.QuoteRequest) error {
	return WriteQuotes(w, q.QuoteAll(ctx, req))
}

func WriteQuotes(w io.Writer, quotes []domain.Quote) error {
	for _, quote := range quotes {
		if _, err := io.WriteString(w, FormatQuote(quote)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
