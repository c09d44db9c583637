// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - FileTables: tabelas de rota e preço em CSV/TSV (encoding/csv)
//   - PostgresTables: as mesmas tabelas lidas do Postgres via pgxpool
//   - RedisStatsStore / MemoryStatsStore: contadores de cotação
//   - ThrottledStats: limita a taxa de eventos por política usando golang.org/x/time/rate
package infra
