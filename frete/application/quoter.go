package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

var errNoTables = errors.New("tables not configured")

// Quoter concentra a orquestração das duas políticas.
//
// Para cada política: carrega as tabelas, resolve a rota, resolve a faixa de
// preço e aplica a fórmula. Qualquer falha vira uma Quote indisponível;
// nenhuma falha de uma política afeta a outra.
type Quoter struct {
	Routes domain.RouteSource
	Prices domain.PriceSource

	LimitedRoutes domain.LimitedRouteSource
	LimitedPrices domain.PriceSource

	// TaxPercent é o ICMS fixo da "tabela". Na "tabela2" ele vem da rota.
	TaxPercent decimal.Decimal
	LimitCheck LimitCheck

	// Stats é opcional. Erros ao registrar são apenas logados.
	Stats domain.StatsStore
	RunID string

	// Logger recebe diagnósticos (tabelas ausentes, linhas inválidas).
	// Se nil, nada é logado.
	Logger *log.Logger
}

// QuoteAll calcula todas as políticas, na ordem de impressão.
func (q Quoter) QuoteAll(ctx context.Context, req domain.QuoteRequest) []domain.Quote {
	policies := domain.Policies()
	out := make([]domain.Quote, 0, len(policies))
	for _, p := range policies {
		out = append(out, q.Quote(ctx, p, req))
	}
	return out
}

// Quote calcula uma política.
func (q Quoter) Quote(ctx context.Context, p domain.Policy, req domain.QuoteRequest) domain.Quote {
	var res domain.Quote
	switch p {
	case domain.PolicyTabela:
		res = q.quoteTabela(ctx, req)
	case domain.PolicyTabela2:
		res = q.quoteTabela2(ctx, req)
	default:
		res = domain.Unavailable(p, fmt.Errorf("unknown policy %q", p))
	}

	if res.Err != nil && !isLookupMiss(res.Err) {
		q.logf("%s: %v", p, res.Err)
	}
	q.record(ctx, res)
	return res
}

func (q Quoter) quoteTabela(ctx context.Context, req domain.QuoteRequest) domain.Quote {
	p := domain.PolicyTabela
	if q.Routes == nil || q.Prices == nil {
		return domain.Unavailable(p, errNoTables)
	}

	routes, err := q.Routes.Routes(ctx)
	if err != nil {
		return domain.Unavailable(p, err)
	}
	route, err := ResolveRoute(req.Origin, req.Destination, routes)
	if err != nil {
		return domain.Unavailable(p, err)
	}

	bands, err := q.Prices.PriceBands(ctx)
	if err != nil {
		return domain.Unavailable(p, err)
	}
	price, err := ResolvePrice(route.PriceKey, req.Weight, bands)
	if err != nil {
		return domain.Unavailable(p, err)
	}

	if !validTax(q.TaxPercent) {
		return domain.Unavailable(p, domain.ErrInvalidTaxRate)
	}
	total := PolicyOne(route.InsurancePercent, req.DeclaredValue, route.FixedFee, req.Weight, price, q.TaxPercent)
	return domain.Quote{Policy: p, DeadlineDays: route.DeadlineDays, Total: total, OK: true}
}

func (q Quoter) quoteTabela2(ctx context.Context, req domain.QuoteRequest) domain.Quote {
	p := domain.PolicyTabela2
	if q.LimitedRoutes == nil || q.LimitedPrices == nil {
		return domain.Unavailable(p, errNoTables)
	}

	routes, err := q.LimitedRoutes.LimitedRoutes(ctx)
	if err != nil {
		return domain.Unavailable(p, err)
	}
	route, err := ResolveLimitedRoute(req.Origin, req.Destination, req.Weight, routes, q.LimitCheck)
	if err != nil {
		return domain.Unavailable(p, err)
	}

	bands, err := q.LimitedPrices.PriceBands(ctx)
	if err != nil {
		return domain.Unavailable(p, err)
	}
	price, err := ResolvePrice(route.PriceKey, req.Weight, bands)
	if err != nil {
		return domain.Unavailable(p, err)
	}

	tax := decimal.NewFromInt(int64(route.TaxPercent))
	if !validTax(tax) {
		return domain.Unavailable(p, domain.ErrInvalidTaxRate)
	}
	total := PolicyTwo(route.InsurancePercent, req.DeclaredValue, req.Weight, price, route.CustomsPercent, tax)
	return domain.Quote{Policy: p, DeadlineDays: route.DeadlineDays, Total: total, OK: true}
}

func validTax(percent decimal.Decimal) bool {
	return percent.LessThan(hundred)
}

func (q Quoter) record(ctx context.Context, res domain.Quote) {
	if q.Stats == nil {
		return
	}
	ev := domain.QuoteEvent{
		RunID:  q.RunID,
		Policy: res.Policy,
		OK:     res.OK,
		Reason: Reason(res.Err),
		At:     time.Now(),
	}
	if err := q.Stats.Record(ctx, ev); err != nil {
		q.logf("stats: %v", err)
	}
}

func (q Quoter) logf(format string, args ...any) {
	if q.Logger != nil {
		q.Logger.Printf(format, args...)
	}
}

// isLookupMiss diz se o erro é um "não encontrado" esperado, que não precisa
// de diagnóstico além da linha "-, -".
func isLookupMiss(err error) bool {
	return errors.Is(err, domain.ErrRouteNotFound) ||
		errors.Is(err, domain.ErrPriceNotFound) ||
		errors.Is(err, domain.ErrWeightLimitExceeded)
}

// Reason converte o erro de uma cotação em um rótulo curto para estatísticas.
func Reason(err error) string {
	var resErr *domain.ResourceError
	var rowErr *domain.MalformedRowError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrRouteNotFound):
		return "route_not_found"
	case errors.Is(err, domain.ErrPriceNotFound):
		return "price_not_found"
	case errors.Is(err, domain.ErrWeightLimitExceeded):
		return "weight_limit_exceeded"
	case errors.Is(err, domain.ErrInvalidTaxRate):
		return "invalid_tax_rate"
	case errors.As(err, &resErr):
		return "resource_error"
	case errors.As(err, &rowErr):
		return "malformed_row"
	default:
		return "error"
	}
}
