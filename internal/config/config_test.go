package config

import (
	"testing"
	"time"

	"github.com/hanabarena/hanab-arena/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceName != "hanab-arena-api" {
		t.Fatalf("ServiceName=%q", cfg.ServiceName)
	}
	if cfg.HanabLiveBaseURL != "https://hanab.live" {
		t.Fatalf("HanabLiveBaseURL=%q", cfg.HanabLiveBaseURL)
	}
	if cfg.HanabLiveTimeout != 4*time.Second {
		t.Fatalf("HanabLiveTimeout=%s", cfg.HanabLiveTimeout)
	}
	if cfg.ArcSessionPrincipalTTL != 30*time.Second {
		t.Fatalf("ArcSessionPrincipalTTL=%s", cfg.ArcSessionPrincipalTTL)
	}
	if !cfg.SeedDemoData {
		t.Fatalf("SeedDemoData should default to true outside prod")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins=%v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ProdDisablesDemoSeed(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SeedDemoData {
		t.Fatalf("SeedDemoData should default to false in prod")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("UptraceDSN=%q", cfg.UptraceDSN)
	}
}

func TestLoad_QStashRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TOKEN")
	}
}

func TestLoad_QStashRequiresJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qs-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://arena.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without INTERNAL_JOB_TOKEN")
	}
}

func TestParseCircuitBreaker(t *testing.T) {
	t.Setenv("ARCSESSION_CIRCUIT_ENABLED", "false")
	t.Setenv("ARCSESSION_CIRCUIT_FAILURE_COUNT", "9")
	t.Setenv("ARCSESSION_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("ARCSESSION_CIRCUIT_HALF_OPEN_MAX_REQ", "4")

	cb, err := parseCircuitBreaker("ARCSESSION")
	if err != nil {
		t.Fatalf("parseCircuitBreaker: %v", err)
	}
	if cb.Enabled {
		t.Fatalf("Enabled should be false")
	}
	if cb.FailureThreshold != 9 || cb.OpenTimeout != 30*time.Second || cb.HalfOpenMaxReq != 4 {
		t.Fatalf("circuit config: %+v", cb)
	}
}

func TestParseCircuitBreaker_RejectsZeroThreshold(t *testing.T) {
	t.Setenv("QSTASH_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := parseCircuitBreaker("QSTASH"); err == nil {
		t.Fatalf("expected error for zero failure count")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"bogus":   logging.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", input, got, want)
		}
	}
}
