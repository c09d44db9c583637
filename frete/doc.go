// Package frete fornece o adaptador de linha de comando da cotação de frete.
//
// Visão geral (camadas):
//
//   - domain: tipos e contratos (rotas, faixas, cotação, erros)
//   - application: resolução de rota/preço, fórmulas e orquestração das políticas
//   - infra: leitura das tabelas (CSV/TSV, Postgres) e estatísticas (memória, Redis)
//   - frete (este pacote): validação dos argumentos, formatação da saída e modo lote
//
// Fluxo no binário (cmd/axado):
//
//  1. Valida <origem> <destino> <nota_fiscal> <peso>
//  2. Chama a camada application para cada política ("tabela" e "tabela2")
//  3. Imprime uma linha por política: "tabela:3, 104.79" ou "tabela:-, -"
//
// Variáveis de ambiente com prefixo FRETE_ controlam as tabelas e as
// estatísticas, como FRETE_TABELA_DIR, FRETE_LIMIT_CHECK e FRETE_STATS_ENABLED.
package frete
