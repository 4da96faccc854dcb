package app

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Errorf("unexpected storage driver: %s", cfg.StorageDriver)
	}
	if cfg.KafkaBrokers != "" {
		t.Errorf("kafka should be disabled by default, got %s", cfg.KafkaBrokers)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PROVAPUB_HTTP_ADDR", ":18080")
	t.Setenv("PROVAPUB_METRICS_ADDR", ":19090")
	t.Setenv("PROVAPUB_STORAGE", "Postgres")
	t.Setenv("PROVAPUB_POSTGRES_DSN", "postgres://localhost/prova")
	t.Setenv("PROVAPUB_AUTO_MIGRATE", "true")
	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")

	cfg := ConfigFromEnv()

	if cfg.HTTPAddr != ":18080" {
		t.Errorf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":19090" {
		t.Errorf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Errorf("storage driver should be normalized, got %s", cfg.StorageDriver)
	}
	if cfg.PostgresDSN != "postgres://localhost/prova" {
		t.Errorf("unexpected dsn: %s", cfg.PostgresDSN)
	}
	if !cfg.AutoMigrate {
		t.Error("auto migrate should be enabled")
	}
	if cfg.KafkaBrokers != "localhost:9092,localhost:9093" {
		t.Errorf("unexpected brokers: %s", cfg.KafkaBrokers)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"postgres without dsn",
			func(c *Config) { c.StorageDriver = StoragePostgres },
			"PROVAPUB_POSTGRES_DSN",
		},
		{
			"unknown driver",
			func(c *Config) { c.StorageDriver = "sqlite" },
			"unsupported storage driver",
		},
		{
			"empty http addr",
			func(c *Config) { c.HTTPAddr = "" },
			"http address",
		},
		{
			"empty metrics addr",
			func(c *Config) { c.MetricsAddr = "" },
			"metrics address",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
