package domain

import "github.com/shopspring/decimal"

// Policy identifica uma política de preço ("tabela" ou "tabela2").
type Policy string

const (
	PolicyTabela  Policy = "tabela"
	PolicyTabela2 Policy = "tabela2"
)

// Policies retorna as políticas na ordem em que são impressas.
func Policies() []Policy {
	return []Policy{PolicyTabela, PolicyTabela2}
}

// Route é uma linha da tabela de rotas da política "tabela".
// A identidade é o par (Origin, Destination).
type Route struct {
	Origin           string
	Destination      string
	DeadlineDays     int
	InsurancePercent int
	PriceKey         string
	FixedFee         int
}

// LimitedRoute é uma linha da tabela de rotas da política "tabela2".
//
// WeightLimit <= 0 significa "sem limite". TaxPercent (ICMS) varia por rota,
// ao contrário da "tabela", onde é uma constante.
type LimitedRoute struct {
	Origin           string
	Destination      string
	WeightLimit      int
	DeadlineDays     int
	InsurancePercent int
	TaxPercent       int
	CustomsPercent   int
	PriceKey         string
}

// PriceBand é uma faixa de peso [Lower, Upper) com preço por kg.
// Open indica a faixa final de uma chave, sem teto.
type PriceBand struct {
	Key        string
	Lower      int
	Upper      int
	Open       bool
	PricePerKg decimal.Decimal
}

// QuoteRequest são os argumentos de uma cotação.
type QuoteRequest struct {
	Origin        string
	Destination   string
	DeclaredValue decimal.Decimal
	Weight        decimal.Decimal
}

// Quote é o resultado de uma política.
//
// Quando OK é false, DeadlineDays e Total não têm significado e Err
// guarda o motivo (apenas para diagnóstico; a saída impressa é "-, -").
type Quote struct {
	Policy       Policy
	DeadlineDays int
	Total        decimal.Decimal
	OK           bool
	Err          error
}

// Unavailable monta uma cotação sem resultado para a política.
func Unavailable(p Policy, err error) Quote {
	return Quote{Policy: p, Err: err}
}
