// Package logger 建立應用程式使用的 zap logger。
// 日誌一律寫到 stderr，stdout 保留給 console 的輸出。
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New 依等級建立 logger；development 為 true 時使用易讀的 console 編碼。
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
