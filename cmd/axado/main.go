package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"axado-frete/frete"
	"axado-frete/frete/application"
	"axado-frete/frete/domain"
	"axado-frete/frete/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute roda a CLI e devolve o código de saída do processo.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var usage *domain.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, frete.Usage)
			fmt.Fprintln(stderr, usage.Err)
			return 1
		}
		fmt.Fprintf(stderr, "axado: %v\n", err)
		return 1
	}
	return 0
}

var errInvalidBatchLines = errors.New("batch had invalid lines")

type options struct {
	configFile string
	lote       string
	verbose    bool
}

func run(ctx context.Context, opts options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// argumentos são validados antes de qualquer tabela ser lida
	var req domain.QuoteRequest
	if opts.lote == "" {
		var err error
		if req, err = frete.ExtractAndValidateArgs(args); err != nil {
			return err
		}
	} else if len(args) != 0 {
		return &domain.UsageError{Err: fmt.Errorf("--lote takes no positional arguments, got %d", len(args))}
	}

	cfg, err := readConfig(newViper(), opts.configFile)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger := log.New(stderr, "axado: ", log.LstdFlags)
	runID := uuid.NewString()

	q, cleanup, err := buildQuoter(ctx, cfg, logger, runID)
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.verbose {
		logger.Printf("run=%s tables: source=%s tabela=%q tabela2=%q icms=%s limitCheck=%s", runID, cfg.tableSource, cfg.tabelaDir, cfg.tabela2Dir, cfg.icmsTabela, cfg.limitCheck)
		logger.Printf("run=%s stats: enabled=%v redisAddr=%q bucket=%q ttl=%s maxRPS=%.3f burst=%d", runID, cfg.statsEnabled, cfg.statsRedisAddr, cfg.statsBucket, cfg.statsTTL, cfg.statsMaxRPS, cfg.statsBurst)
	}

	if opts.lote == "" {
		return frete.Run(ctx, stdout, q, req)
	}

	summary := infra.NewMemoryStatsStore()
	q.Stats = infra.TeeStats(q.Stats, summary)
	err = runBatch(ctx, opts.lote, q, stdin, stdout, stderr)
	if opts.verbose {
		total := summary.Total()
		logger.Printf("run=%s batch: ok=%d failed=%d reasons=%v", runID, total.OK, total.Failed, summary.ByReason())
	}
	return err
}

func runBatch(ctx context.Context, path string, q frete.Quoter, stdin io.Reader, stdout, stderr io.Writer) error {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open batch: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	bad, err := frete.RunBatch(ctx, in, stdout, q)
	for _, lineErr := range bad {
		fmt.Fprintf(stderr, "axado: %v\n", lineErr)
	}
	if err != nil {
		return err
	}
	if len(bad) > 0 {
		return errInvalidBatchLines
	}
	return nil
}

// buildQuoter monta as fontes de tabela e o destino das estatísticas.
// cleanup fecha as conexões abertas e deve ser chamado sempre.
func buildQuoter(ctx context.Context, cfg config, logger *log.Logger, runID string) (application.Quoter, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	q := application.Quoter{
		TaxPercent: cfg.icmsTabela,
		LimitCheck: cfg.limitCheck,
		RunID:      runID,
		Logger:     logger,
	}

	switch cfg.tableSource {
	case "postgres":
		db, err := pgxpool.New(ctx, cfg.dbDSN)
		if err != nil {
			return q, cleanup, fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, db.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = db.Ping(pingCtx)
		cancel()
		if err != nil {
			return q, cleanup, fmt.Errorf("postgres ping error: %w", err)
		}

		one := infra.NewPostgresTables(db, domain.PolicyTabela)
		two := infra.NewPostgresTables(db, domain.PolicyTabela2)
		q.Routes, q.Prices = one, one
		q.LimitedRoutes, q.LimitedPrices = two, two
	default:
		one := infra.NewTabelaFiles(cfg.tabelaDir)
		two := infra.NewTabela2Files(cfg.tabela2Dir)
		q.Routes, q.Prices = one, one
		q.LimitedRoutes, q.LimitedPrices = two, two
	}

	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		closers = append(closers, func() { _ = rdb.Close() })

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			return q, cleanup, fmt.Errorf("redis stats ping error: %w", err)
		}

		store := infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackRuns(cfg.statsTrackRuns),
		)
		q.Stats = infra.NewThrottledStats(store, cfg.statsMaxRPS, cfg.statsBurst)
	}

	return q, cleanup, nil
}
