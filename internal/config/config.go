// internal/config/config.go
//
// 讀取執行設定：工作目錄下的 .env 檔與環境變數（環境變數優先），鍵名皆以 LEDGER_ 開頭。
// 使用獨立的 viper 實例，方便測試時互不干擾。

package config

import (
	"errors"
	"fmt"
	"strings"

	"accountledger/internal/bank"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Config stores all configuration for the application.
type Config struct {
	DBPath           string `mapstructure:"LEDGER_DB_PATH"`
	BusyTimeoutMS    int    `mapstructure:"LEDGER_BUSY_TIMEOUT_MS"`
	CredentialScheme string `mapstructure:"LEDGER_CREDENTIAL_SCHEME"`
	BcryptCost       int    `mapstructure:"LEDGER_BCRYPT_COST"`
	LogLevel         string `mapstructure:"LEDGER_LOG_LEVEL"`
	LogDevelopment   bool   `mapstructure:"LEDGER_LOG_DEVELOPMENT"`
}

var keys = []string{
	"LEDGER_DB_PATH",
	"LEDGER_BUSY_TIMEOUT_MS",
	"LEDGER_CREDENTIAL_SCHEME",
	"LEDGER_BCRYPT_COST",
	"LEDGER_LOG_LEVEL",
	"LEDGER_LOG_DEVELOPMENT",
}

// Load 自 dir 目錄下的 .env 及環境變數讀取設定並驗證；dir 為空時使用目前目錄。
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("LEDGER_DB_PATH", "bank_accounts.db")
	v.SetDefault("LEDGER_BUSY_TIMEOUT_MS", 5000)
	v.SetDefault("LEDGER_CREDENTIAL_SCHEME", bank.SchemeSHA256)
	v.SetDefault("LEDGER_BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("LEDGER_LOG_LEVEL", "info")
	v.SetDefault("LEDGER_LOG_DEVELOPMENT", false)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查設定值是否可用。
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("LEDGER_DB_PATH is required")
	}
	if c.BusyTimeoutMS < 0 {
		return fmt.Errorf("LEDGER_BUSY_TIMEOUT_MS must be >= 0, got %d", c.BusyTimeoutMS)
	}
	if _, err := bank.NewHasher(c.CredentialScheme, c.BcryptCost); err != nil {
		return fmt.Errorf("LEDGER_CREDENTIAL_SCHEME: %w", err)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LEDGER_LOG_LEVEL: %w", err)
	}
	return nil
}
