package infra

import (
	"context"
	"fmt"

	"axado-frete/frete/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresTables lê as tabelas de entrada de uma política a partir do Postgres.
//
// A coluna "ordem" preserva a ordem das linhas, da qual a resolução depende.
// Na tabela de preços, "fim" NULL marca a faixa aberta.
type PostgresTables struct {
	db *pgxpool.Pool

	policy      domain.Policy
	routesTable string
	pricesTable string
}

type PostgresOption func(*PostgresTables)

func WithRoutesTable(name string) PostgresOption {
	return func(t *PostgresTables) { t.routesTable = name }
}

func WithPricesTable(name string) PostgresOption {
	return func(t *PostgresTables) { t.pricesTable = name }
}

// NewPostgresTables usa frete_rotas/frete_precos para a "tabela" e
// frete_rotas2/frete_precos2 para a "tabela2", salvo opção em contrário.
func NewPostgresTables(db *pgxpool.Pool, policy domain.Policy, opts ...PostgresOption) *PostgresTables {
	t := &PostgresTables{
		db:          db,
		policy:      policy,
		routesTable: "frete_rotas",
		pricesTable: "frete_precos",
	}
	if policy == domain.PolicyTabela2 {
		t.routesTable = "frete_rotas2"
		t.pricesTable = "frete_precos2"
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CreateSchema cria as tabelas configuradas, se ainda não existirem.
func (t *PostgresTables) CreateSchema(ctx context.Context) error {
	routes := pgx.Identifier{t.routesTable}.Sanitize()
	prices := pgx.Identifier{t.pricesTable}.Sanitize()

	routesDDL := `CREATE TABLE IF NOT EXISTS ` + routes + ` (
		ordem integer PRIMARY KEY,
		origem text NOT NULL,
		destino text NOT NULL,
		prazo integer NOT NULL,
		seguro integer NOT NULL,
		kg text NOT NULL,
		fixa integer NOT NULL
	)`
	if t.policy == domain.PolicyTabela2 {
		routesDDL = `CREATE TABLE IF NOT EXISTS ` + routes + ` (
			ordem integer PRIMARY KEY,
			origem text NOT NULL,
			destino text NOT NULL,
			limite integer NOT NULL,
			prazo integer NOT NULL,
			seguro integer NOT NULL,
			icms integer NOT NULL,
			alfandega integer NOT NULL,
			kg text NOT NULL
		)`
	}
	pricesDDL := `CREATE TABLE IF NOT EXISTS ` + prices + ` (
		ordem integer PRIMARY KEY,
		nome text NOT NULL,
		inicio integer NOT NULL,
		fim integer,
		preco numeric NOT NULL
	)`

	for _, ddl := range []string{routesDDL, pricesDDL} {
		if _, err := t.db.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Routes implementa domain.RouteSource.
func (t *PostgresTables) Routes(ctx context.Context) ([]domain.Route, error) {
	q := `SELECT origem, destino, prazo, seguro, kg, fixa FROM ` +
		pgx.Identifier{t.routesTable}.Sanitize() + ` ORDER BY ordem`

	rows, err := t.db.Query(ctx, q)
	if err != nil {
		return nil, &domain.ResourceError{Path: t.routesTable, Err: err}
	}
	defer rows.Close()

	var out []domain.Route
	for rows.Next() {
		var r domain.Route
		if err := rows.Scan(&r.Origin, &r.Destination, &r.DeadlineDays, &r.InsurancePercent, &r.PriceKey, &r.FixedFee); err != nil {
			return nil, &domain.MalformedRowError{Path: t.routesTable, Line: len(out) + 1, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ResourceError{Path: t.routesTable, Err: err}
	}
	return out, nil
}

// LimitedRoutes implementa domain.LimitedRouteSource.
func (t *PostgresTables) LimitedRoutes(ctx context.Context) ([]domain.LimitedRoute, error) {
	q := `SELECT origem, destino, limite, prazo, seguro, icms, alfandega, kg FROM ` +
		pgx.Identifier{t.routesTable}.Sanitize() + ` ORDER BY ordem`

	rows, err := t.db.Query(ctx, q)
	if err != nil {
		return nil, &domain.ResourceError{Path: t.routesTable, Err: err}
	}
	defer rows.Close()

	var out []domain.LimitedRoute
	for rows.Next() {
		var r domain.LimitedRoute
		err := rows.Scan(&r.Origin, &r.Destination, &r.WeightLimit, &r.DeadlineDays,
			&r.InsurancePercent, &r.TaxPercent, &r.CustomsPercent, &r.PriceKey)
		if err != nil {
			return nil, &domain.MalformedRowError{Path: t.routesTable, Line: len(out) + 1, Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ResourceError{Path: t.routesTable, Err: err}
	}
	return out, nil
}

// PriceBands implementa domain.PriceSource.
func (t *PostgresTables) PriceBands(ctx context.Context) ([]domain.PriceBand, error) {
	q := `SELECT nome, inicio, fim, preco::text FROM ` +
		pgx.Identifier{t.pricesTable}.Sanitize() + ` ORDER BY ordem`

	rows, err := t.db.Query(ctx, q)
	if err != nil {
		return nil, &domain.ResourceError{Path: t.pricesTable, Err: err}
	}
	defer rows.Close()

	var out []domain.PriceBand
	for rows.Next() {
		var (
			b     domain.PriceBand
			upper *int
			price string
		)
		if err := rows.Scan(&b.Key, &b.Lower, &upper, &price); err != nil {
			return nil, &domain.MalformedRowError{Path: t.pricesTable, Line: len(out) + 1, Err: err}
		}
		if upper == nil {
			b.Open = true
		} else {
			b.Upper = *upper
		}
		b.PricePerKg, err = decimal.NewFromString(price)
		if err != nil {
			return nil, &domain.MalformedRowError{Path: t.pricesTable, Line: len(out) + 1, Column: "preco", Value: price, Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ResourceError{Path: t.pricesTable, Err: err}
	}
	return out, nil
}
