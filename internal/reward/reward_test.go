package reward

import (
	"testing"

	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_ConcreteScenario(t *testing.T) {
	got, err := Estimate(decimal.NewFromInt(1000), decimal.RequireFromString("12.5"), 30)
	require.NoError(t, err)

	assert.True(t, Round(got).Equal(decimal.RequireFromString("10.27")), "got %s", got)
}

func TestEstimate_ZeroAPY(t *testing.T) {
	for _, days := range []int{1, 30, 365, 1000} {
		got, err := Estimate(decimal.NewFromInt(5000), decimal.Zero, days)
		require.NoError(t, err)
		assert.True(t, got.IsZero(), "days=%d got %s", days, got)
	}
}

func TestEstimate_FullYear(t *testing.T) {
	got, err := Estimate(decimal.NewFromInt(200), decimal.NewFromInt(10), DaysPerYear)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "got %s", got)
}

func TestEstimate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		apy       decimal.Decimal
		days      int
	}{
		{"zero principal", decimal.Zero, decimal.NewFromInt(5), 30},
		{"negative principal", decimal.NewFromInt(-1), decimal.NewFromInt(5), 30},
		{"negative apy", decimal.NewFromInt(100), decimal.NewFromInt(-1), 30},
		{"zero days", decimal.NewFromInt(100), decimal.NewFromInt(5), 0},
		{"negative days", decimal.NewFromInt(100), decimal.NewFromInt(5), -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Estimate(tt.principal, tt.apy, tt.days)
			assert.ErrorIs(t, err, store.ErrInvalidArgument)
		})
	}
}

func TestEstimate_Monotonic(t *testing.T) {
	base := func(p, apy int64, days int) decimal.Decimal {
		got, err := Estimate(decimal.NewFromInt(p), decimal.NewFromInt(apy), days)
		require.NoError(t, err)
		return got
	}

	prev := decimal.Zero
	for p := int64(1); p <= 10001; p += 500 {
		cur := base(p, 7, 90)
		assert.True(t, cur.GreaterThanOrEqual(prev), "principal %d", p)
		prev = cur
	}

	prev = decimal.Zero
	for apy := int64(0); apy <= 200; apy += 5 {
		cur := base(1000, apy, 90)
		assert.True(t, cur.GreaterThanOrEqual(prev), "apy %d", apy)
		prev = cur
	}

	prev = decimal.Zero
	for days := 1; days <= 730; days += 13 {
		cur := base(1000, 7, days)
		assert.True(t, cur.GreaterThanOrEqual(prev), "days %d", days)
		prev = cur
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(25), decimal.NewFromInt(200)).Equal(decimal.RequireFromString("12.5")))
	assert.True(t, Percent(decimal.NewFromInt(25), decimal.Zero).IsZero())
}
