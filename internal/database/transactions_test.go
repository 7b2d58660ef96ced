package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"staking-ledger-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*SubledgerService, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	service := NewSubledgerService(db)

	if err := service.InitSchema(); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestProcessTransaction_Credit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	accountId := "acct1"
	asset := "USD"
	amount := decimal.RequireFromString("1500.25")

	result, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: accountId, Asset: asset, TransactionType: TransactionTypeCredit, Amount: amount, Reference: "fund-1",
	})
	if err != nil {
		t.Fatalf("ProcessTransaction failed: %v", err)
	}

	if result.AccountId != accountId {
		t.Errorf("Expected accountId %s, got %s", accountId, result.AccountId)
	}
	if result.Asset != asset {
		t.Errorf("Expected asset %s, got %s", asset, result.Asset)
	}
	if !result.Amount.Equal(amount) {
		t.Errorf("Expected amount %s, got %s", amount.String(), result.Amount.String())
	}
	if !result.BalanceBefore.IsZero() {
		t.Errorf("Expected balance before 0, got %s", result.BalanceBefore.String())
	}
	if !result.BalanceAfter.Equal(amount) {
		t.Errorf("Expected balance %s, got %s", amount.String(), result.BalanceAfter.String())
	}
}

func TestProcessTransaction_Debit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeCredit, Amount: decimal.NewFromInt(50000), Reference: "fund-1",
	})
	if err != nil {
		t.Fatalf("Initial credit failed: %v", err)
	}

	result, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeDebit, Amount: decimal.NewFromInt(-1000), Reference: "stake:1", RequireFunds: true,
	})
	if err != nil {
		t.Fatalf("ProcessTransaction debit failed: %v", err)
	}

	expectedBalance := decimal.NewFromInt(49000)
	if !result.BalanceAfter.Equal(expectedBalance) {
		t.Errorf("Expected balance %s, got %s", expectedBalance.String(), result.BalanceAfter.String())
	}
}

func TestProcessTransaction_DuplicateHandling(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	params := ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeCredit, Amount: decimal.NewFromInt(1), Reference: "duplicate-ref",
	}

	if _, err := service.ProcessTransaction(ctx, params); err != nil {
		t.Fatalf("First ProcessTransaction failed: %v", err)
	}

	_, err := service.ProcessTransaction(ctx, params)
	if err == nil {
		t.Fatalf("Expected duplicate transaction error, got nil")
	}
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Errorf("Expected duplicate transaction error, got: %v", err)
	}
}

func TestProcessTransaction_RequireFunds(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeCredit, Amount: decimal.NewFromInt(100), Reference: "fund-1",
	})
	if err != nil {
		t.Fatalf("Initial credit failed: %v", err)
	}

	_, err = service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeDebit, Amount: decimal.NewFromInt(-101), Reference: "stake:1", RequireFunds: true,
	})
	if !errors.Is(err, store.ErrInsufficientBalance) {
		t.Fatalf("Expected insufficient balance error, got: %v", err)
	}

	balance, err := service.GetBalance(ctx, "acct1", "USD")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance 100 after rejected debit, got %s", balance.String())
	}

	history, err := service.GetTransactionHistory(ctx, "acct1", "USD", 10, 0)
	if err != nil {
		t.Fatalf("GetTransactionHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected rejected debit to leave no transaction, got %d rows", len(history))
	}
}

func TestProcessTransaction_NegativeBalanceWithoutRequireFunds(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	amount := decimal.NewFromInt(-1)
	result, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeDebit, Amount: amount, Reference: "adj-1",
	})
	if err != nil {
		t.Fatalf("ProcessTransaction with negative balance failed: %v", err)
	}

	if !result.BalanceAfter.Equal(amount) {
		t.Errorf("Expected negative balance %s, got %s", amount.String(), result.BalanceAfter.String())
	}
}

func TestGetTransactionHistory_NewestFirst(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	refs := []string{"fund-1", "fund-2", "fund-3"}
	for _, ref := range refs {
		_, err := service.ProcessTransaction(ctx, ProcessTransactionParams{
			AccountId: "acct1", Asset: "USD", TransactionType: TransactionTypeCredit, Amount: decimal.NewFromInt(10), Reference: ref,
		})
		if err != nil {
			t.Fatalf("ProcessTransaction failed: %v", err)
		}
	}

	history, err := service.GetTransactionHistory(ctx, "acct1", "USD", 2, 0)
	if err != nil {
		t.Fatalf("GetTransactionHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(history))
	}
	if history[0].Reference != "fund-3" {
		t.Errorf("Expected newest transaction first, got %s", history[0].Reference)
	}
	if !history[0].BalanceAfter.Equal(decimal.NewFromInt(30)) {
		t.Errorf("Expected balance after 30, got %s", history[0].BalanceAfter.String())
	}
}
