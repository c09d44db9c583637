package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"axado-frete/frete/application"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type config struct {
	tableSource string
	tabelaDir   string
	tabela2Dir  string
	dbDSN       string
	icmsTabela  decimal.Decimal
	limitCheck  application.LimitCheck

	statsEnabled       bool
	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
	statsTrackRuns     bool
	statsMaxRPS        float64
	statsBurst         int
}

// newViper lê variáveis FRETE_* do ambiente. Num arquivo de configuração
// (--config) as chaves vão sem o prefixo: TABELA_DIR=..., ou tabela_dir: ...
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FRETE")
	v.AutomaticEnv()

	v.SetDefault("table_source", "file")
	v.SetDefault("tabela_dir", "tabela")
	v.SetDefault("tabela2_dir", "tabela2")
	v.SetDefault("db_dsn", "")
	v.SetDefault("icms_tabela", application.DefaultTaxPercent)
	v.SetDefault("limit_check", "match")

	v.SetDefault("stats_enabled", false)
	v.SetDefault("stats_redis_addr", "")
	v.SetDefault("stats_redis_password", "")
	v.SetDefault("stats_redis_db", 0)
	v.SetDefault("stats_prefix", "frete:stats")
	v.SetDefault("stats_ttl", 24*time.Hour)
	v.SetDefault("stats_bucket", "minute")
	v.SetDefault("stats_track_runs", false)
	// IMPORTANTE: no modo lote cada linha gera dois eventos; acima desta taxa
	// (por política) os eventos são descartados para não inundar o Redis.
	v.SetDefault("stats_max_rps", 50)
	v.SetDefault("stats_burst", 100)
	return v
}

func readConfig(v *viper.Viper, configFile string) (config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read %s: %w", configFile, err)
		}
	}

	cfg := config{}
	cfg.tableSource = strings.ToLower(strings.TrimSpace(v.GetString("table_source")))
	cfg.tabelaDir = v.GetString("tabela_dir")
	cfg.tabela2Dir = v.GetString("tabela2_dir")
	cfg.dbDSN = v.GetString("db_dsn")

	icms, err := decimal.NewFromString(strings.TrimSpace(v.GetString("icms_tabela")))
	if err != nil {
		return config{}, fmt.Errorf("FRETE_ICMS_TABELA must be a number: %w", err)
	}
	cfg.icmsTabela = icms

	cfg.limitCheck, err = application.ParseLimitCheck(v.GetString("limit_check"))
	if err != nil {
		return config{}, fmt.Errorf("FRETE_LIMIT_CHECK: %w", err)
	}

	cfg.statsEnabled = v.GetBool("stats_enabled")
	cfg.statsRedisAddr = v.GetString("stats_redis_addr")
	cfg.statsRedisPassword = v.GetString("stats_redis_password")
	cfg.statsRedisDB = v.GetInt("stats_redis_db")
	cfg.statsPrefix = v.GetString("stats_prefix")
	cfg.statsTTL = v.GetDuration("stats_ttl")
	cfg.statsBucket = v.GetString("stats_bucket")
	cfg.statsTrackRuns = v.GetBool("stats_track_runs")
	cfg.statsMaxRPS = v.GetFloat64("stats_max_rps")
	cfg.statsBurst = v.GetInt("stats_burst")

	switch cfg.tableSource {
	case "file":
		if strings.TrimSpace(cfg.tabelaDir) == "" || strings.TrimSpace(cfg.tabela2Dir) == "" {
			return config{}, errors.New("FRETE_TABELA_DIR and FRETE_TABELA2_DIR must not be empty")
		}
	case "postgres":
		if strings.TrimSpace(cfg.dbDSN) == "" {
			return config{}, errors.New("FRETE_DB_DSN is required when FRETE_TABLE_SOURCE=postgres")
		}
	default:
		return config{}, fmt.Errorf("FRETE_TABLE_SOURCE must be file or postgres, got %q", cfg.tableSource)
	}

	if cfg.icmsTabela.IsNegative() || cfg.icmsTabela.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return config{}, errors.New("FRETE_ICMS_TABELA must be >= 0 and < 100")
	}
	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("FRETE_STATS_REDIS_ADDR is required when FRETE_STATS_ENABLED=true")
	}
	if cfg.statsMaxRPS < 0 {
		return config{}, errors.New("FRETE_STATS_MAX_RPS must be >= 0")
	}
	if cfg.statsBurst <= 0 {
		return config{}, errors.New("FRETE_STATS_BURST must be > 0")
	}
	return cfg, nil
}
