package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv 將所有 LEDGER_ 變數設為空值（viper 視為未設定）。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.DBPath != "bank_accounts.db" {
		t.Fatalf("DBPath=%q", cfg.DBPath)
	}
	if cfg.BusyTimeoutMS != 5000 || cfg.CredentialScheme != "sha256" || cfg.BcryptCost != 10 || cfg.LogLevel != "info" || cfg.LogDevelopment {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromDotEnvAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "LEDGER_DB_PATH=from-file.db\nLEDGER_CREDENTIAL_SCHEME=bcrypt\nLEDGER_BCRYPT_COST=4\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEDGER_DB_PATH", "from-env.db")
	t.Setenv("LEDGER_LOG_DEVELOPMENT", "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if cfg.DBPath != "from-env.db" {
		t.Fatalf("env should override file, DBPath=%q", cfg.DBPath)
	}
	if cfg.CredentialScheme != "bcrypt" || cfg.BcryptCost != 4 {
		t.Fatalf("file values not loaded: %+v", cfg)
	}
	if !cfg.LogDevelopment {
		t.Fatal("LogDevelopment should be true")
	}
}

func TestValidate(t *testing.T) {
	base := Config{DBPath: "x.db", BusyTimeoutMS: 10, CredentialScheme: "sha256", BcryptCost: 10, LogLevel: "info"}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty path", func(c *Config) { c.DBPath = " " }},
		{"negative timeout", func(c *Config) { c.BusyTimeoutMS = -1 }},
		{"unknown scheme", func(c *Config) { c.CredentialScheme = "md5" }},
		{"bcrypt cost", func(c *Config) { c.CredentialScheme = "bcrypt"; c.BcryptCost = 2 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
