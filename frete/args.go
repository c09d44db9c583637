package frete

import (
	"errors"
	"fmt"
	"strings"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

// Usage é a mensagem impressa quando os argumentos são inválidos.
const Usage = "right usage: axado <origem> <destino> <nota_fiscal> <peso>"

// ExtractAndValidateArgs converte os argumentos posicionais (sem o nome do
// programa) em uma QuoteRequest. nota_fiscal e peso aceitam frações ("7.5").
func ExtractAndValidateArgs(args []string) (domain.QuoteRequest, error) {
	if len(args) != 4 {
		return domain.QuoteRequest{}, &domain.UsageError{Err: fmt.Errorf("expected 4 arguments, got %d", len(args))}
	}

	nf, err := decimal.NewFromString(strings.TrimSpace(args[2]))
	if err != nil {
		return domain.QuoteRequest{}, &domain.UsageError{Err: errors.New("<nota_fiscal> must be a number")}
	}
	peso, err := decimal.NewFromString(strings.TrimSpace(args[3]))
	if err != nil {
		return domain.QuoteRequest{}, &domain.UsageError{Err: errors.New("<peso> must be a number")}
	}

	return domain.QuoteRequest{
		Origin:        args[0],
		Destination:   args[1],
		DeclaredValue: nf,
		Weight:        peso,
	}, nil
}
