package application

import (
	"fmt"
	"strings"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

// LimitCheck define em que momento o limite de peso da "tabela2" é verificado.
type LimitCheck int

const (
	// LimitCheckOnMatch verifica o limite apenas na linha que casa com a rota.
	LimitCheckOnMatch LimitCheck = iota
	// LimitCheckOnScan verifica o limite de toda linha lida, antes de comparar
	// origem/destino. Uma rota qualquer com limite excedido aborta a busca.
	LimitCheckOnScan
)

func (c LimitCheck) String() string {
	if c == LimitCheckOnScan {
		return "scan"
	}
	return "match"
}

// ParseLimitCheck aceita "match" (ou vazio) e "scan".
func ParseLimitCheck(s string) (LimitCheck, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "match":
		return LimitCheckOnMatch, nil
	case "scan":
		return LimitCheckOnScan, nil
	default:
		return LimitCheckOnMatch, fmt.Errorf("invalid limit check %q (want match or scan)", s)
	}
}

// ResolveRoute retorna a primeira rota com origem e destino exatamente iguais.
func ResolveRoute(origin, destination string, rows []domain.Route) (domain.Route, error) {
	for _, r := range rows {
		if r.Origin == origin && r.Destination == destination {
			return r, nil
		}
	}
	return domain.Route{}, domain.ErrRouteNotFound
}

// ResolveLimitedRoute é a variante da "tabela2", com limite de peso por rota.
func ResolveLimitedRoute(origin, destination string, weight decimal.Decimal, rows []domain.LimitedRoute, check LimitCheck) (domain.LimitedRoute, error) {
	for _, r := range rows {
		if check == LimitCheckOnScan && exceedsLimit(r.WeightLimit, weight) {
			return domain.LimitedRoute{}, domain.ErrWeightLimitExceeded
		}
		if r.Origin != origin || r.Destination != destination {
			continue
		}
		if exceedsLimit(r.WeightLimit, weight) {
			return domain.LimitedRoute{}, domain.ErrWeightLimitExceeded
		}
		return r, nil
	}
	return domain.LimitedRoute{}, domain.ErrRouteNotFound
}

func exceedsLimit(limit int, weight decimal.Decimal) bool {
	return limit > 0 && weight.GreaterThan(decimal.NewFromInt(int64(limit)))
}

// ResolvePrice retorna o preço por kg da primeira faixa da chave que aceita o peso.
//
// Uma faixa aberta (sem teto) aceita qualquer peso: ela é a última da chave
// e encerra a busca assim que é alcançada.
func ResolvePrice(key string, weight decimal.Decimal, bands []domain.PriceBand) (decimal.Decimal, error) {
	for _, b := range bands {
		if b.Key != key {
			continue
		}
		if b.Open {
			return b.PricePerKg, nil
		}
		lower := decimal.NewFromInt(int64(b.Lower))
		upper := decimal.NewFromInt(int64(b.Upper))
		if lower.LessThanOrEqual(weight) && weight.LessThan(upper) {
			return b.PricePerKg, nil
		}
	}
	return decimal.Zero, domain.ErrPriceNotFound
}
