package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"axado-frete/frete/application"
)

func TestReadConfig_Defaults(t *testing.T) {
	cfg, err := readConfig(newViper(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.tableSource != "file" || cfg.tabelaDir != "tabela" || cfg.tabela2Dir != "tabela2" {
		t.Fatalf("unexpected table defaults: %+v", cfg)
	}
	if cfg.icmsTabela.String() != "6" {
		t.Fatalf("expected default ICMS 6, got %s", cfg.icmsTabela)
	}
	if cfg.limitCheck != application.LimitCheckOnMatch {
		t.Fatalf("expected limit check on match by default, got %s", cfg.limitCheck)
	}
	if cfg.statsEnabled || cfg.statsTTL != 24*time.Hour || cfg.statsPrefix != "frete:stats" {
		t.Fatalf("unexpected stats defaults: %+v", cfg)
	}
}

func TestReadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FRETE_TABELA_DIR", "/srv/tabela")
	t.Setenv("FRETE_ICMS_TABELA", "12.5")
	t.Setenv("FRETE_LIMIT_CHECK", "scan")
	t.Setenv("FRETE_STATS_ENABLED", "true")
	t.Setenv("FRETE_STATS_REDIS_ADDR", "localhost:6379")
	t.Setenv("FRETE_STATS_TTL", "90m")
	t.Setenv("FRETE_STATS_MAX_RPS", "0.5")

	cfg, err := readConfig(newViper(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.tabelaDir != "/srv/tabela" || cfg.icmsTabela.String() != "12.5" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.limitCheck != application.LimitCheckOnScan {
		t.Fatalf("expected scan, got %s", cfg.limitCheck)
	}
	if !cfg.statsEnabled || cfg.statsTTL != 90*time.Minute || cfg.statsMaxRPS != 0.5 {
		t.Fatalf("unexpected stats config: %+v", cfg)
	}
}

func TestReadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axado.env")
	if err := os.WriteFile(path, []byte("TABELA2_DIR=/data/t2\nLIMIT_CHECK=scan\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// o ambiente vence o arquivo
	t.Setenv("FRETE_LIMIT_CHECK", "match")

	cfg, err := readConfig(newViper(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.tabela2Dir != "/data/t2" {
		t.Fatalf("expected tabela2 dir from file, got %q", cfg.tabela2Dir)
	}
	if cfg.limitCheck != application.LimitCheckOnMatch {
		t.Fatalf("expected env to override file, got %s", cfg.limitCheck)
	}
}

func TestReadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"limit check", map[string]string{"FRETE_LIMIT_CHECK": "before"}, "FRETE_LIMIT_CHECK"},
		{"icms not a number", map[string]string{"FRETE_ICMS_TABELA": "seis"}, "FRETE_ICMS_TABELA"},
		{"icms 100", map[string]string{"FRETE_ICMS_TABELA": "100"}, "FRETE_ICMS_TABELA"},
		{"stats without redis", map[string]string{"FRETE_STATS_ENABLED": "true"}, "FRETE_STATS_REDIS_ADDR"},
		{"postgres without dsn", map[string]string{"FRETE_TABLE_SOURCE": "postgres"}, "FRETE_DB_DSN"},
		{"unknown source", map[string]string{"FRETE_TABLE_SOURCE": "s3"}, "FRETE_TABLE_SOURCE"},
		{"burst", map[string]string{"FRETE_STATS_BURST": "0"}, "FRETE_STATS_BURST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := readConfig(newViper(), "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	if _, err := readConfig(newViper(), filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
