package main

import (
	"io"

	"axado-frete/frete/domain"

	"github.com/spf13/cobra"
)

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "axado <origem> <destino> <nota_fiscal> <peso>",
		Short: "Cotação de frete pelas tabelas \"tabela\" e \"tabela2\"",
		Long: `Calcula o frete de uma encomenda pelas duas políticas de preço e imprime
uma linha por política: "tabela:<prazo>, <total>" ou "tabela:-, -".

As tabelas são lidas de FRETE_TABELA_DIR e FRETE_TABELA2_DIR (ou do Postgres
com FRETE_TABLE_SOURCE=postgres).`,
		Example: `  axado florianopolis brasilia 50 7
  axado --lote cotacoes.txt
  echo "florianopolis brasilia 50 7.5" | axado --lote -`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &domain.UsageError{Err: err}
	})

	// flags só antes da origem: "-5" como nota_fiscal é argumento, não flag
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.configFile, "config", "", "arquivo de configuração (chaves sem o prefixo FRETE_)")
	cmd.Flags().StringVar(&opts.lote, "lote", "", "arquivo com uma cotação por linha (\"-\" para stdin)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "loga a configuração em stderr")
	return cmd
}
