package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPools = `
assets:
  - id: eth
    symbol: ETH
    name: Ethereum
pools:
  - id: eth-30
    asset: ETH
    apy: "12.5"
    min_stake: "100"
    lock_period_days: 30
    is_active: true
`

func testConfig(t *testing.T, backend string) *models.Config {
	t.Helper()
	dir := t.TempDir()
	poolsFile := filepath.Join(dir, "pools.yaml")
	require.NoError(t, os.WriteFile(poolsFile, []byte(testPools), 0o600))

	return &models.Config{
		AccountId: "acct-1",
		Database: models.DatabaseConfig{
			Path:         filepath.Join(dir, "staking.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			PingTimeout:  5 * time.Second,
		},
		Wallet: models.WalletConfig{
			Backend:        backend,
			Asset:          "USD",
			InitialBalance: decimal.NewFromInt(50000),
		},
		MarketData: models.MarketDataConfig{
			Source:    config.MarketDataSourceFile,
			PoolsFile: poolsFile,
		},
	}
}

func TestInitializeServices_MemoryWalletSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.WalletBackendMemory)

	for session := 1; session <= 3; session++ {
		services, err := InitializeServices(ctx, cfg)
		require.NoError(t, err)

		assert.Nil(t, services.DbService, "memory sessions do not open the database")
		assert.Empty(t, services.Accounting.Stakes(), "session %d restored stakes from an earlier session", session)

		result, err := services.Accounting.CreateStake(ctx, "eth-30", decimal.NewFromInt(50000), 30)
		require.NoError(t, err)
		require.True(t, result.Success, result.Error)

		snapshot, err := services.Accounting.Portfolio(ctx, nil)
		require.NoError(t, err)
		assert.True(t, snapshot.AvailableBalance.IsZero())
		assert.Equal(t, "50000", snapshot.TotalStaked.String())
		assert.Equal(t, "50513.70", snapshot.TotalValue.StringFixed(2))

		services.Close()
	}

	_, err := os.Stat(cfg.Database.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestInitializeServices_SqliteWalletRestoresSession(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.WalletBackendSqlite)

	first, err := InitializeServices(ctx, cfg)
	require.NoError(t, err)
	funded, err := FundInitialBalance(ctx, first, cfg)
	require.NoError(t, err)
	assert.True(t, funded)

	result, err := first.Accounting.CreateStake(ctx, "eth-30", decimal.NewFromInt(30000), 30)
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)
	first.Close()

	second, err := InitializeServices(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	funded, err = FundInitialBalance(ctx, second, cfg)
	require.NoError(t, err)
	assert.False(t, funded, "initial funding is applied once per account")

	require.Len(t, second.Accounting.Stakes(), 1)

	snapshot, err := second.Accounting.Portfolio(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "20000", snapshot.AvailableBalance.String())
	assert.Equal(t, "30000", snapshot.TotalStaked.String())

	result, err = second.Accounting.CreateStake(ctx, "eth-30", decimal.NewFromInt(30000), 30)
	require.NoError(t, err)
	assert.False(t, result.Success, "restored stakes keep the wallet debited")
}
