// internal/console/handler.go
//
// Package console
// ─────────────────────────────────────────────
// 提供文字指令介面，作為 bank 模組的表現層 (Presentation Layer)。
// 每個 handler 僅負責：
//  1. 解析與驗證指令參數
//  2. 呼叫 bank 層執行商業邏輯
//  3. 將結果或錯誤以一致格式輸出
//
// 所有狀態皆由 Bank 從 Store 取得，console 不保存任何帳戶資料。
package console

import (
	"context"
	"fmt"
	"io"

	"accountledger/internal/bank"
)

// Console 為指令層核心結構：
// - Bank：注入商業邏輯層。
// - out：所有輸出（含錯誤訊息）寫入的位置。
// - ask：讀取被省略的密碼參數；為 nil 時密碼必須寫在指令上。
type Console struct {
	Bank *bank.Bank
	out  io.Writer
	ask  func(label string) (string, error)
}

// New 建立 Console。
func New(b *bank.Bank, out io.Writer) *Console {
	return &Console{Bank: b, out: out}
}

// create <owner> <balance> <password> <confirm>
func (c *Console) create(ctx context.Context, args []string) error {
	owner, balance, password, confirm := args[0], args[1], args[2], args[3]
	amount, err := bank.ParseAmount(balance)
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}
	a, err := c.Bank.Open(ctx, owner, amount, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "account %s created\n", a.Owner())
	writeAccount(c.out, a)
	return nil
}

// show <owner>
func (c *Console) show(ctx context.Context, args []string) error {
	a, err := c.Bank.Get(ctx, args[0])
	if err != nil {
		return err
	}
	writeAccount(c.out, a)
	return nil
}

// list
func (c *Console) list(ctx context.Context, _ []string) error {
	accts, err := c.Bank.List(ctx)
	if err != nil {
		return err
	}
	writeList(c.out, accts)
	return nil
}

// deposit <owner> <amount>
func (c *Console) deposit(ctx context.Context, args []string) error {
	amount, err := bank.ParseAmount(args[1])
	if err != nil {
		return err
	}
	a, err := c.Bank.Deposit(ctx, args[0], amount)
	if err != nil {
		return err
	}
	writeAccount(c.out, a)
	return nil
}

// withdraw <owner> <amount> <password>
func (c *Console) withdraw(ctx context.Context, args []string) error {
	amount, err := bank.ParseAmount(args[1])
	if err != nil {
		return err
	}
	a, err := c.Bank.Withdraw(ctx, args[0], args[2], amount)
	if err != nil {
		return err
	}
	writeAccount(c.out, a)
	return nil
}

// transfer <from> <to> <amount> <password>
// 成功後同時輸出雙方最新餘額。
func (c *Console) transfer(ctx context.Context, args []string) error {
	amount, err := bank.ParseAmount(args[2])
	if err != nil {
		return err
	}
	from, to, err := c.Bank.Transfer(ctx, args[0], args[3], args[1], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s transferred from %s to %s\n", bank.FormatCurrency(amount), from.Owner(), to.Owner())
	writeAccount(c.out, from)
	writeAccount(c.out, to)
	return nil
}

// delete <owner> <password>
func (c *Console) remove(ctx context.Context, args []string) error {
	if err := c.Bank.Close(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "account %s deleted\n", args[0])
	return nil
}

// stats
func (c *Console) stats(ctx context.Context, _ []string) error {
	s, err := c.Bank.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "accounts: %d\ntotal:    %s\n", s.Accounts, bank.FormatCurrency(s.Total))
	return nil
}

// export <file>
func (c *Console) export(ctx context.Context, args []string) error {
	n, err := c.Bank.Export(ctx, args[0])
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(c.out, "warning: no accounts to export")
	}
	fmt.Fprintf(c.out, "%d accounts exported to %s\n", n, args[0])
	return nil
}

// import <file>
func (c *Console) importFile(ctx context.Context, args []string) error {
	res, err := c.Bank.Import(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d accounts imported from %s\n", len(res.Imported), args[0])
	for _, owner := range res.Skipped {
		fmt.Fprintf(c.out, "skipped %s: already exists\n", owner)
	}
	return nil
}

// help
func (c *Console) help(context.Context, []string) error {
	writeHelp(c.out)
	return nil
}
