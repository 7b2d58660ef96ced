package catalog

import (
	"context"
	"testing"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPools = `
assets:
  - id: eth
    symbol: ETH
    name: Ethereum
  - symbol: SOL
    name: Solana
pools:
  - id: eth-30
    asset: ETH
    apy: "12.5"
    min_stake: "100"
    lock_period_days: 30
    is_active: true
  - id: sol-90
    asset: sol
    apy: "7"
    min_stake: "10"
    lock_period_days: 90
    total_staked: "250000"
    is_active: false
`

func testPool(id string) models.Pool {
	return models.Pool{
		Id:             id,
		Asset:          models.Asset{Id: "eth", Symbol: "ETH"},
		APY:            decimal.RequireFromString("12.5"),
		MinStake:       decimal.NewFromInt(100),
		LockPeriodDays: 30,
		IsActive:       true,
	}
}

func TestLoad_FromFileSource(t *testing.T) {
	src, err := ParseFileSource([]byte(testPools))
	require.NoError(t, err)

	c, err := Load(context.Background(), src)
	require.NoError(t, err)

	pools := c.List()
	require.Len(t, pools, 2)
	assert.Equal(t, "eth-30", pools[0].Id)
	assert.Equal(t, "sol-90", pools[1].Id)
	assert.Equal(t, "Ethereum", pools[0].Asset.Name)
	assert.Equal(t, "SOL", pools[1].Asset.Id, "asset id defaults to symbol")
	assert.True(t, pools[0].APY.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, pools[1].TotalStaked.Equal(decimal.NewFromInt(250000)))
	assert.False(t, pools[1].IsActive)
}

func TestLoad_UnknownAsset(t *testing.T) {
	src, err := ParseFileSource([]byte(`
pools:
  - id: btc-7
    asset: BTC
    apy: "3"
    lock_period_days: 7
`))
	require.NoError(t, err)

	_, err = Load(context.Background(), src)
	assert.ErrorContains(t, err, "unknown asset")
}

func TestParseFileSource_InvalidDecimal(t *testing.T) {
	_, err := ParseFileSource([]byte(`
assets:
  - symbol: ETH
pools:
  - id: eth-30
    asset: ETH
    apy: "twelve"
    lock_period_days: 30
`))
	assert.ErrorContains(t, err, "invalid apy")
}

func TestGet(t *testing.T) {
	c, err := New(testPool("a"), testPool("b"))
	require.NoError(t, err)

	p, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b", p.Id)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestList_IsRestartableCopy(t *testing.T) {
	c, err := New(testPool("a"), testPool("b"), testPool("c"))
	require.NoError(t, err)

	first := c.List()
	first[0].Id = "mutated"

	second := c.List()
	assert.Equal(t, []string{"a", "b", "c"}, []string{second[0].Id, second[1].Id, second[2].Id})
}

func TestNew_Validation(t *testing.T) {
	dup := testPool("a")
	_, err := New(testPool("a"), dup)
	assert.ErrorContains(t, err, "duplicate id")

	bad := testPool("x")
	bad.LockPeriodDays = 0
	_, err = New(bad)
	assert.ErrorContains(t, err, "lock period")

	neg := testPool("y")
	neg.APY = decimal.NewFromInt(-1)
	_, err = New(neg)
	assert.ErrorContains(t, err, "apy")
}

func TestRecordStake(t *testing.T) {
	c, err := New(testPool("a"))
	require.NoError(t, err)

	require.NoError(t, c.RecordStake("a", decimal.NewFromInt(1000), decimal.RequireFromString("10.27")))
	require.NoError(t, c.RecordStake("a", decimal.NewFromInt(500), decimal.RequireFromString("5")))

	p, err := c.Get("a")
	require.NoError(t, err)
	assert.True(t, p.TotalStaked.Equal(decimal.NewFromInt(1500)))
	assert.True(t, p.TotalRewards.Equal(decimal.RequireFromString("15.27")))

	assert.ErrorIs(t, c.RecordStake("nope", decimal.NewFromInt(1), decimal.Zero), store.ErrNotFound)
}
