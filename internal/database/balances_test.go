package database

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupServiceTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	service, err := newServiceFromDB(db)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestGetBalance_NoBalance(t *testing.T) {
	service, cleanup := setupServiceTestDB(t)
	defer cleanup()

	balance, err := service.subledger.GetBalance(context.Background(), "acct1", "USD")
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}

	if !balance.Equal(decimal.Zero) {
		t.Errorf("Expected balance 0, got %s", balance.String())
	}
}

func TestGetAllBalances(t *testing.T) {
	service, cleanup := setupServiceTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := service.Wallet("acct1", "USD").Credit(ctx, decimal.NewFromInt(50000), "fund-usd"); err != nil {
		t.Fatalf("Failed to fund USD wallet: %v", err)
	}
	if err := service.Wallet("acct1", "ETH").Credit(ctx, decimal.RequireFromString("2.5"), "fund-eth"); err != nil {
		t.Fatalf("Failed to fund ETH wallet: %v", err)
	}

	balances, err := service.GetAllBalances(ctx, "acct1")
	if err != nil {
		t.Fatalf("GetAllBalances failed: %v", err)
	}

	if len(balances) != 2 {
		t.Fatalf("Expected 2 balances, got %d", len(balances))
	}

	found := make(map[string]decimal.Decimal)
	for _, balance := range balances {
		found[balance.Asset] = balance.Balance
	}

	if !found["USD"].Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected USD balance 50000, got %s", found["USD"].String())
	}
	if !found["ETH"].Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("Expected ETH balance 2.5, got %s", found["ETH"].String())
	}

	others, err := service.GetAllBalances(ctx, "acct2")
	if err != nil {
		t.Fatalf("GetAllBalances failed: %v", err)
	}
	if len(others) != 0 {
		t.Errorf("Expected no balances for another account, got %d", len(others))
	}
}

func TestReconcileBalance(t *testing.T) {
	service, cleanup := setupServiceTestDB(t)
	defer cleanup()

	ctx := context.Background()
	wallet := service.Wallet("acct1", "USD")

	if err := wallet.Credit(ctx, decimal.RequireFromString("0.1"), "fund-1"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if err := wallet.Credit(ctx, decimal.RequireFromString("0.2"), "fund-2"); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if err := wallet.Debit(ctx, decimal.RequireFromString("0.3"), "stake:1"); err != nil {
		t.Fatalf("Debit failed: %v", err)
	}

	if err := wallet.Reconcile(ctx); err != nil {
		t.Errorf("Expected balances to reconcile, got: %v", err)
	}

	if _, err := service.db.Exec("UPDATE account_balances SET balance = '5' WHERE account_id = 'acct1'"); err != nil {
		t.Fatalf("Failed to tamper with balance: %v", err)
	}
	if err := wallet.Reconcile(ctx); err == nil {
		t.Errorf("Expected reconciliation to fail after tampering")
	}
}
