// Package application contém os casos de uso da cotação de frete:
// resolução de rota, resolução de faixa de preço, as duas fórmulas de
// preço e a orquestração das políticas.
//
// Ele depende apenas do pacote domain e não conhece arquivos nem a CLI.
// Ex.: Quoter.QuoteAll(ctx, req) retorna uma Quote por política.
package application
