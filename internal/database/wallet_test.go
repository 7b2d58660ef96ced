package database

import (
	"context"
	"errors"
	"testing"

	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestWallet_DebitCredit(t *testing.T) {
	service, cleanup := setupServiceTestDB(t)
	defer cleanup()

	ctx := context.Background()
	wallet := service.Wallet("acct1", "USD")

	if err := wallet.Credit(ctx, decimal.NewFromInt(50000), "fund-1"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if err := wallet.Debit(ctx, decimal.NewFromInt(1000), "stake:1"); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}

	balance, err := wallet.GetBalance(ctx)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(49000)) {
		t.Errorf("Expected balance 49000, got %s", balance.String())
	}

	history, err := wallet.GetTransactionHistory(ctx, 10, 0)
	if err != nil {
		t.Fatalf("GetTransactionHistory failed: %v", err)
	}
	if len(history) != 2 || history[0].TransactionType != TransactionTypeDebit {
		t.Errorf("Expected debit as newest of 2 transactions, got %+v", history)
	}
}

func TestWallet_Rejections(t *testing.T) {
	service, cleanup := setupServiceTestDB(t)
	defer cleanup()

	ctx := context.Background()
	wallet := service.Wallet("acct1", "USD")

	if err := wallet.Credit(ctx, decimal.NewFromInt(100), "fund-1"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}

	if err := wallet.Debit(ctx, decimal.NewFromInt(101), "stake:1"); !errors.Is(err, store.ErrInsufficientBalance) {
		t.Errorf("Expected insufficient balance, got: %v", err)
	}
	if err := wallet.Debit(ctx, decimal.Zero, "stake:2"); !errors.Is(err, store.ErrInvalidAmount) {
		t.Errorf("Expected invalid amount, got: %v", err)
	}
	if err := wallet.Credit(ctx, decimal.NewFromInt(-5), "fund-2"); !errors.Is(err, store.ErrInvalidAmount) {
		t.Errorf("Expected invalid amount, got: %v", err)
	}
	if err := wallet.Credit(ctx, decimal.NewFromInt(5), "fund-1"); !errors.Is(err, store.ErrDuplicateTransaction) {
		t.Errorf("Expected duplicate transaction, got: %v", err)
	}

	balance, _ := wallet.GetBalance(ctx)
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance unchanged at 100, got %s", balance.String())
	}
}
