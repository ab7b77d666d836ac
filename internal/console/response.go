// internal/console/response.go
//
// 本檔負責統一輸出格式：帳戶以「持有人 | 餘額（兩位小數）」呈現，
// 錯誤一律經由 writeErr 轉為使用者可讀的訊息。
package console

import (
	"errors"
	"fmt"
	"io"

	"accountledger/internal/bank"
)

var (
	errUnknownCommand   = errors.New("unknown command")
	errUsage            = errors.New("usage")
	errPasswordMismatch = errors.New("passwords do not match")
)

func writeAccount(w io.Writer, a *bank.Account) {
	fmt.Fprintf(w, "%-20s | %12s\n", a.Owner(), bank.FormatCurrency(a.Balance()))
}

func writeList(w io.Writer, accts []*bank.Account) {
	if len(accts) == 0 {
		fmt.Fprintln(w, "no accounts")
		return
	}
	for _, a := range accts {
		writeAccount(w, a)
	}
}

func writeHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
	fmt.Fprintln(w, "  quit")
	fmt.Fprintln(w, "passwords in [] may be omitted and typed at the prompt instead, keeping them out of shell history")
}

// writeErr 輸出錯誤。領域錯誤本身已帶有足夠細節，直接輸出；
// 其他錯誤視為儲存層或系統錯誤，加上前綴提醒使用者操作未完成。
func writeErr(w io.Writer, err error) {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount),
		errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInvalidCredential),
		errors.Is(err, bank.ErrDuplicateOwner),
		errors.Is(err, bank.ErrNotFound),
		errors.Is(err, bank.ErrInvalidOwner),
		errors.Is(err, bank.ErrSameAccount),
		errors.Is(err, errUnknownCommand),
		errors.Is(err, errUsage),
		errors.Is(err, errPasswordMismatch):
		fmt.Fprintf(w, "error: %v\n", err)
	case errors.Is(err, bank.ErrAuthenticationFailed):
		fmt.Fprintln(w, "error: wrong password")
	default:
		fmt.Fprintf(w, "error: operation failed, nothing was changed: %v\n", err)
	}
}
