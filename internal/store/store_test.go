package store

import (
	"errors"
	"testing"
)

// Compile-time checks that the interfaces are importable and usable.
func TestLedgerPersistenceInterfaceExists(t *testing.T) {
	var _ LedgerPersistence
	var _ WalletAccount
	var _ MarketDataSource
	var _ NotificationSink
}

func TestInvalidLockPeriodIsInvalidArgument(t *testing.T) {
	if !errors.Is(ErrInvalidLockPeriod, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidLockPeriod to wrap ErrInvalidArgument")
	}
	if errors.Is(ErrInvalidAmount, ErrInvalidArgument) {
		t.Errorf("ErrInvalidAmount must stay distinct from ErrInvalidArgument")
	}
}
