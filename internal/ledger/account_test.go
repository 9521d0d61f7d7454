package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestDepositThenWithdrawRestoresBalance(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "100.00"), Savings)

	if err := a.Deposit(dec(t, "50.00")); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if got := a.Balance(); !got.Equal(dec(t, "150.00")) {
		t.Fatalf("balance after deposit = %s, want 150.00", got)
	}

	if err := a.Withdraw(dec(t, "50.00")); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if got := a.Balance(); !got.Equal(dec(t, "100.00")) {
		t.Fatalf("balance after withdraw = %s, want 100.00", got)
	}

	history := a.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Kind != "Deposit" || history[0].Amount != "+50.00" {
		t.Fatalf("first record = %+v, want Deposit +50.00", history[0])
	}
	if history[1].Kind != "Withdrawal" || history[1].Amount != "-50.00" {
		t.Fatalf("second record = %+v, want Withdrawal -50.00", history[1])
	}
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "100.00"), Savings)

	for _, amount := range []string{"0", "-1.00"} {
		if err := a.Deposit(dec(t, amount)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Deposit(%s) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if got := a.Balance(); !got.Equal(dec(t, "100.00")) {
		t.Fatalf("balance mutated on rejected deposit: %s", got)
	}
	if len(a.History()) != 0 {
		t.Fatalf("history grew on rejected deposit")
	}
}

func TestWithdrawRejectsNonPositiveAmounts(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "100.00"), Checking)

	for _, amount := range []string{"0", "-0.01"} {
		if err := a.Withdraw(dec(t, amount)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Withdraw(%s) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if got := a.Balance(); !got.Equal(dec(t, "100.00")) {
		t.Fatalf("balance mutated on rejected withdrawal: %s", got)
	}
	if len(a.History()) != 0 {
		t.Fatalf("history grew on rejected withdrawal")
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "150.00"), Savings)

	err := a.Withdraw(dec(t, "200.00"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	// The message must name both the current balance and the requested amount.
	if !strings.Contains(err.Error(), "150.00") || !strings.Contains(err.Error(), "200.00") {
		t.Fatalf("error message %q missing balance or amount", err.Error())
	}
	if got := a.Balance(); !got.Equal(dec(t, "150.00")) {
		t.Fatalf("balance mutated on rejected withdrawal: %s", got)
	}
	if len(a.History()) != 0 {
		t.Fatalf("history grew on rejected withdrawal")
	}
}

func TestApplyInterestSavings(t *testing.T) {
	balance := dec(t, "100.00")
	a := NewAccount("1000000001", "Ana Perez", balance, Savings)

	earned := a.ApplyInterest()

	want := balance.Mul(Savings.MonthlyRate())
	if !earned.Equal(want) {
		t.Fatalf("earned = %s, want %s", earned, want)
	}
	if got := a.Balance(); !got.Equal(balance.Add(want)) {
		t.Fatalf("balance = %s, want %s", got, balance.Add(want))
	}

	history := a.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Kind != "Interest (Savings)" {
		t.Fatalf("record kind = %q, want Interest (Savings)", history[0].Kind)
	}
	if history[0].Amount != "+"+want.StringFixed(2) {
		t.Fatalf("record amount = %q, want %q", history[0].Amount, "+"+want.StringFixed(2))
	}
}

func TestApplyInterestChecking(t *testing.T) {
	balance := dec(t, "2400.00")
	a := NewAccount("1000000002", "Luis Ramos", balance, Checking)

	earned := a.ApplyInterest()

	want := balance.Mul(Checking.MonthlyRate())
	if !earned.Equal(want) {
		t.Fatalf("earned = %s, want %s", earned, want)
	}
	if got := a.Balance(); !got.Equal(balance.Add(want)) {
		t.Fatalf("balance = %s, want %s", got, balance.Add(want))
	}
	if a.History()[0].Kind != "Interest (Checking)" {
		t.Fatalf("record kind = %q, want Interest (Checking)", a.History()[0].Kind)
	}
}

func TestTransferMovesFundsAndRecordsBothLegs(t *testing.T) {
	src := NewAccount("1000000001", "Ana Perez", dec(t, "150.00"), Savings)
	dst := NewAccount("1000000002", "Luis Ramos", dec(t, "0.00"), Savings)

	if err := src.TransferTo(dst, dec(t, "30.00")); err != nil {
		t.Fatalf("TransferTo: %v", err)
	}

	if got := src.Balance(); !got.Equal(dec(t, "120.00")) {
		t.Fatalf("source balance = %s, want 120.00", got)
	}
	if got := dst.Balance(); !got.Equal(dec(t, "30.00")) {
		t.Fatalf("destination balance = %s, want 30.00", got)
	}

	// One record per leg, no duplicate withdraw/deposit entries.
	srcHistory := src.History()
	if len(srcHistory) != 1 {
		t.Fatalf("source history length = %d, want 1", len(srcHistory))
	}
	if srcHistory[0].Kind != "Transfer to 1000000002" || srcHistory[0].Amount != "-30.00" {
		t.Fatalf("source record = %+v", srcHistory[0])
	}
	dstHistory := dst.History()
	if len(dstHistory) != 1 {
		t.Fatalf("destination history length = %d, want 1", len(dstHistory))
	}
	if dstHistory[0].Kind != "Transfer from 1000000001" || dstHistory[0].Amount != "+30.00" {
		t.Fatalf("destination record = %+v", dstHistory[0])
	}
}

func TestTransferFailureLeavesBothAccountsUntouched(t *testing.T) {
	src := NewAccount("1000000001", "Ana Perez", dec(t, "20.00"), Savings)
	dst := NewAccount("1000000002", "Luis Ramos", dec(t, "5.00"), Checking)

	if err := src.TransferTo(dst, dec(t, "50.00")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if err := src.TransferTo(dst, dec(t, "0")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}

	if !src.Balance().Equal(dec(t, "20.00")) || !dst.Balance().Equal(dec(t, "5.00")) {
		t.Fatalf("balances mutated on failed transfer: %s / %s", src.Balance(), dst.Balance())
	}
	if len(src.History()) != 0 || len(dst.History()) != 0 {
		t.Fatalf("history grew on failed transfer")
	}
}

func TestRecordTimestampsHaveSecondPrecision(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "10.00"), Savings)
	if err := a.Deposit(dec(t, "1.00")); err != nil {
		t.Fatal(err)
	}

	record := a.History()[0]
	if record.Timestamp.Nanosecond() != 0 {
		t.Fatalf("timestamp %v not truncated to the second", record.Timestamp)
	}
	if record.ID == "" {
		t.Fatal("record id is empty")
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"savings", Savings, false},
		{"Checking", Checking, false},
		{"SAVINGS", Savings, false},
		{"current", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("ParseKind(%q) err = %v, want ErrUnknownKind", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseKind(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestBalanceNeverGoesNegative(t *testing.T) {
	a := NewAccount("1000000001", "Ana Perez", dec(t, "10.00"), Savings)

	ops := []func() error{
		func() error { return a.Deposit(dec(t, "5.50")) },
		func() error { return a.Withdraw(dec(t, "25.00")) },
		func() error { return a.Withdraw(dec(t, "15.50")) },
		func() error { return a.Withdraw(dec(t, "10.00")) },
		func() error { return a.Deposit(dec(t, "-3.00")) },
	}
	for i, op := range ops {
		_ = op()
		if a.Balance().Sign() < 0 {
			t.Fatalf("balance went negative after op %d: %s", i, a.Balance())
		}
	}
	if !a.Balance().Equal(dec(t, "0.00")) {
		t.Fatalf("final balance = %s, want 0.00", a.Balance())
	}
}
