package wallet

import (
	"context"
	"sync"
	"testing"

	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_DebitCredit(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(decimal.NewFromInt(100))

	require.NoError(t, w.Debit(ctx, decimal.NewFromInt(40), "d1"))
	require.NoError(t, w.Credit(ctx, decimal.RequireFromString("2.5"), "c1"))

	bal, err := w.GetBalance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("62.5")), "got %s", bal)
}

func TestMemory_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(decimal.NewFromInt(10))

	err := w.Debit(ctx, decimal.NewFromInt(11), "d1")
	assert.ErrorIs(t, err, store.ErrInsufficientBalance)

	bal, _ := w.GetBalance(ctx)
	assert.True(t, bal.Equal(decimal.NewFromInt(10)))

	// A rejected debit does not burn its reference.
	assert.NoError(t, w.Debit(ctx, decimal.NewFromInt(10), "d1"))
}

func TestMemory_DuplicateReference(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(decimal.NewFromInt(10))

	require.NoError(t, w.Credit(ctx, decimal.NewFromInt(1), "ref"))
	assert.ErrorIs(t, w.Credit(ctx, decimal.NewFromInt(1), "ref"), store.ErrDuplicateTransaction)
}

func TestMemory_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(decimal.NewFromInt(10))

	assert.ErrorIs(t, w.Debit(ctx, decimal.Zero, ""), store.ErrInvalidAmount)
	assert.ErrorIs(t, w.Credit(ctx, decimal.NewFromInt(-3), ""), store.ErrInvalidAmount)
}

func TestMemory_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	w := NewMemory(decimal.NewFromInt(100))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Debit(ctx, decimal.NewFromInt(7), ""); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	bal, _ := w.GetBalance(ctx)
	assert.Equal(t, 14, succeeded)
	assert.True(t, bal.Equal(decimal.NewFromInt(2)), "got %s", bal)
}
