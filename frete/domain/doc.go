// Package domain define os tipos e contratos do domínio de cotação de frete.
//
// Este pacote não depende de arquivos, banco de dados nem da CLI.
// A intenção é permitir testes de unidade puros das regras de cálculo
// e desacoplar essas regras dos detalhes de infraestrutura.
package domain
