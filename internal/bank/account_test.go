// internal/bank/account_test.go
//
// Account 的單元測試：存提款、轉帳的全有或全無語意、密碼設定與驗證、快照往返。

package bank

import (
	"errors"
	"testing"

	"accountledger/internal/storage"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newAcct 為小工具：建立帳戶，失敗即讓測試終止。
func newAcct(t *testing.T, owner, balance string) *Account {
	t.Helper()
	a, err := NewAccount(owner, d(balance))
	if err != nil {
		t.Fatalf("NewAccount(%s) err=%v", owner, err)
	}
	return a
}

func TestNewAccountValidation(t *testing.T) {
	if _, err := NewAccount("", decimal.Zero); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("want ErrInvalidOwner, got %v", err)
	}
	if _, err := NewAccount("   ", decimal.Zero); !errors.Is(err, ErrInvalidOwner) {
		t.Fatalf("want ErrInvalidOwner for blank owner, got %v", err)
	}
	if _, err := NewAccount("A", d("-0.01")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	a := newAcct(t, "A", "0")
	if a.CredentialHash() != "" {
		t.Fatalf("new account should have no credential, got %q", a.CredentialHash())
	}
}

// TestDeposit 驗證 deposit(-1)、deposit(0) 失敗，deposit(100) 於餘額 0 時得到 100。
func TestDeposit(t *testing.T) {
	a := newAcct(t, "A", "0")
	for _, amt := range []string{"-1", "0"} {
		if err := a.Deposit(d(amt)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Deposit(%s) want ErrInvalidAmount, got %v", amt, err)
		}
	}
	if !a.Balance().IsZero() {
		t.Fatalf("balance changed by failed deposits: %s", a.Balance())
	}
	if err := a.Deposit(d("100")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(d("100")) {
		t.Fatalf("balance=%s want=100", a.Balance())
	}
}

func TestWithdraw(t *testing.T) {
	a := newAcct(t, "A", "100")

	if err := a.Withdraw(d("0")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if err := a.Withdraw(d("-5")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	// 餘額不足：餘額不變
	if err := a.Withdraw(d("100.01")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(d("100")) {
		t.Fatalf("balance=%s want=100 after failed withdraw", a.Balance())
	}
	// 提領全部餘額允許
	if err := a.Withdraw(d("100")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().IsZero() {
		t.Fatalf("balance=%s want=0", a.Balance())
	}
}

func TestTransfer(t *testing.T) {
	sender := newAcct(t, "A", "100")
	receiver := newAcct(t, "B", "0")

	if err := sender.Transfer(receiver, d("40")); err != nil {
		t.Fatal(err)
	}
	if !sender.Balance().Equal(d("60")) || !receiver.Balance().Equal(d("40")) {
		t.Fatalf("sender=%s receiver=%s want 60/40", sender.Balance(), receiver.Balance())
	}
}

// TestTransferAllOrNothing 驗證任何檢核失敗時兩個帳戶都不會被修改。
func TestTransferAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		target  func(self, other *Account) *Account
		wantErr error
	}{
		{"zero amount", "0", func(_, o *Account) *Account { return o }, ErrInvalidAmount},
		{"negative amount", "-3", func(_, o *Account) *Account { return o }, ErrInvalidAmount},
		{"insufficient", "100.5", func(_, o *Account) *Account { return o }, ErrInsufficientFunds},
		{"nil target", "10", func(_, _ *Account) *Account { return nil }, ErrNotFound},
		{"self", "10", func(s, _ *Account) *Account { return s }, ErrSameAccount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := newAcct(t, "A", "100")
			receiver := newAcct(t, "B", "5")
			err := sender.Transfer(tc.target(sender, receiver), d(tc.amount))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if !sender.Balance().Equal(d("100")) || !receiver.Balance().Equal(d("5")) {
				t.Fatalf("partial transfer: sender=%s receiver=%s", sender.Balance(), receiver.Balance())
			}
		})
	}
}

// TestBalanceNeverNegative 一連串存提款與轉帳（含失敗者），成功的操作後餘額皆非負。
func TestBalanceNeverNegative(t *testing.T) {
	a := newAcct(t, "A", "10")
	b := newAcct(t, "B", "0")
	ops := []func() error{
		func() error { return a.Withdraw(d("3.33")) },
		func() error { return a.Transfer(b, d("6")) },
		func() error { return b.Withdraw(d("6.01")) },
		func() error { return b.Transfer(a, d("2.5")) },
		func() error { return a.Withdraw(d("100")) },
		func() error { return b.Deposit(d("0.01")) },
		func() error { return b.Transfer(a, d("3.51")) },
		func() error { return a.Withdraw(d("6.68")) },
	}
	for i, op := range ops {
		_ = op()
		if a.Balance().IsNegative() || b.Balance().IsNegative() {
			t.Fatalf("step %d: negative balance a=%s b=%s", i, a.Balance(), b.Balance())
		}
	}
	if !a.Balance().IsZero() || !b.Balance().IsZero() {
		t.Fatalf("a=%s b=%s want 0/0", a.Balance(), b.Balance())
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	a := newAcct(t, "A", "0")
	if a.CheckCredential("") || a.CheckCredential("abc123") {
		t.Fatal("unset credential must never match")
	}
	if err := a.SetCredential(""); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("want ErrInvalidCredential, got %v", err)
	}
	if err := a.SetCredential("abc123"); err != nil {
		t.Fatal(err)
	}
	if !a.CheckCredential("abc123") {
		t.Fatal("correct password should match")
	}
	if a.CheckCredential("wrong") {
		t.Fatal("wrong password should not match")
	}
	// 與既有資料相容：hex(sha256("abc123"))
	const want = "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090"
	if a.CredentialHash() != want {
		t.Fatalf("hash=%s want=%s", a.CredentialHash(), want)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	a := newAcct(t, "Ann", "150.00")
	if err := a.SetCredential("pw"); err != nil {
		t.Fatal(err)
	}
	r := a.Record()
	if r.Password != a.CredentialHash() || r.Password == "pw" {
		t.Fatalf("record must hold the hash, got %q", r.Password)
	}
	b, err := FromRecord(r)
	if err != nil {
		t.Fatal(err)
	}
	if b.Owner() != a.Owner() || !b.Balance().Equal(a.Balance()) || b.CredentialHash() != a.CredentialHash() {
		t.Fatalf("round trip mismatch: %+v vs %+v", b.Record(), r)
	}
	if !b.CheckCredential("pw") {
		t.Fatal("restored account should verify the same password")
	}
}

func TestFromRecordKeepsHashVerbatim(t *testing.T) {
	a, err := FromRecord(storage.Record{Owner: "X", Balance: d("1"), Password: "not-a-hex-digest"})
	if err != nil {
		t.Fatal(err)
	}
	if a.CredentialHash() != "not-a-hex-digest" {
		t.Fatalf("hash=%q", a.CredentialHash())
	}
	if _, err := FromRecord(storage.Record{Owner: "X", Balance: d("-1"), Password: "h"}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
}

func TestString(t *testing.T) {
	a := newAcct(t, "Ann", "150.5")
	if got := a.String(); got != "Ann | 150.50" {
		t.Fatalf("String()=%q", got)
	}
}
