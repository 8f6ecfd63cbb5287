package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int    `env:"INPACT_TEST_PORT" envDefault:"123"`
	Name string `env:"INPACT_TEST_NAME" envDefault:"inpact"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("INPACT_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestRequireNonEmptyReportsFirstBlankInKeyOrder(t *testing.T) {
	t.Parallel()

	err := RequireNonEmpty(map[string]string{
		"session secret": "",
		"api key":        " ",
		"base url":       "http://localhost",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "api key is required" {
		t.Fatalf("error = %q, want %q", err.Error(), "api key is required")
	}
	if err := RequireNonEmpty(map[string]string{"a": "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
