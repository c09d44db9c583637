package domain

import "context"

// Fontes das tabelas de entrada.
//
// As implementações podem ler arquivos CSV/TSV, Postgres, etc.
// Devem devolver as linhas na ordem da tabela: a resolução de rota e de
// faixa de preço depende dessa ordem (a primeira linha que satisfaz vence).
// Cada chamada relê a tabela; nada é cacheado entre cotações.

type RouteSource interface {
	Routes(ctx context.Context) ([]Route, error)
}

type LimitedRouteSource interface {
	LimitedRoutes(ctx context.Context) ([]LimitedRoute, error)
}

type PriceSource interface {
	PriceBands(ctx context.Context) ([]PriceBand, error)
}
