package wallet

import (
	"context"
	"fmt"
	"sync"

	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ store.WalletAccount = (*Memory)(nil)

// Memory is a WalletAccount held in process memory.
type Memory struct {
	mu      sync.Mutex
	balance decimal.Decimal
	refs    map[string]struct{}
}

func NewMemory(initial decimal.Decimal) *Memory {
	return &Memory{balance: initial, refs: make(map[string]struct{})}
}

func (m *Memory) GetBalance(_ context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance, nil
}

// Debit removes amount from the balance, failing with store.ErrInsufficientBalance
// when the balance does not cover it.
func (m *Memory) Debit(_ context.Context, amount decimal.Decimal, reference string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.claim(reference); err != nil {
		return err
	}
	if amount.GreaterThan(m.balance) {
		delete(m.refs, reference)
		return fmt.Errorf("%w: balance %s, debit %s", store.ErrInsufficientBalance, m.balance.String(), amount.String())
	}

	m.balance = m.balance.Sub(amount)
	zap.L().Debug("Wallet debited", zap.String("reference", reference), zap.String("amount", amount.String()), zap.String("new_balance", m.balance.String()))
	return nil
}

func (m *Memory) Credit(_ context.Context, amount decimal.Decimal, reference string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.claim(reference); err != nil {
		return err
	}
	m.balance = m.balance.Add(amount)
	zap.L().Debug("Wallet credited", zap.String("reference", reference), zap.String("amount", amount.String()), zap.String("new_balance", m.balance.String()))
	return nil
}

// claim records reference so a replayed movement is rejected. Empty references are not tracked.
func (m *Memory) claim(reference string) error {
	if reference == "" {
		return nil
	}
	if _, seen := m.refs[reference]; seen {
		return fmt.Errorf("%w: reference %s already exists", store.ErrDuplicateTransaction, reference)
	}
	m.refs[reference] = struct{}{}
	return nil
}
