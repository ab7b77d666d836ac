// cmd/ledger/main.go

// 帳戶帳本的命令列入口。
// 此檔案負責載入設定、初始化模組（logger, storage, bank, console），
// 有參數時執行單一指令（例如 `ledger deposit Ann 10`），否則進入互動模式讀取 stdin。
// 收到 SIGINT/SIGTERM 時取消 context，進行中的資料庫操作會中止並回滾。

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountledger/internal/bank"
	"accountledger/internal/config"
	"accountledger/internal/console"
	"accountledger/internal/logger"
	"accountledger/internal/storage/sqlite"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// .env 不存在時忽略；已存在的環境變數不會被覆寫
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.DBPath, time.Duration(cfg.BusyTimeoutMS)*time.Millisecond)
	if err != nil {
		log.Error("open database", zap.String("path", cfg.DBPath), zap.Error(err))
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}()
	if err := store.Initialize(ctx); err != nil {
		log.Error("initialize database", zap.Error(err))
		return 1
	}

	hasher, err := bank.NewHasher(cfg.CredentialScheme, cfg.BcryptCost)
	if err != nil {
		log.Error("credential scheme", zap.Error(err))
		return 2
	}
	b := bank.NewBank(store, bank.WithHasher(hasher), bank.WithLogger(log))
	c := console.New(b, os.Stdout)

	// 單一指令模式：錯誤已由 console 輸出，只需設定結束碼
	if len(args) > 0 {
		c.PromptFrom(os.Stdin)
		if err := c.Exec(ctx, args); err != nil {
			return 1
		}
		return 0
	}

	log.Debug("interactive session started", zap.String("db", cfg.DBPath))
	if err := c.Run(ctx, os.Stdin, isTerminal(os.Stdin)); err != nil && ctx.Err() == nil {
		log.Error("session", zap.Error(err))
		return 1
	}
	return 0
}

// isTerminal 判斷 stdin 是否為互動終端機；以管線輸入腳本時不顯示提示字元。
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
