/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"staking-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	WalletBackendMemory   = "memory"
	WalletBackendSqlite   = "sqlite"
	WalletBackendFormance = "formance"

	MarketDataSourceFile  = "file"
	MarketDataSourcePrime = "prime"
)

func Load() (*models.Config, error) {
	pollingInterval, err := getEnvDuration("WATCHER_POLLING_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	initialBalance, err := getEnvDecimal("WALLET_INITIAL_BALANCE", decimal.NewFromInt(50000))
	if err != nil {
		return nil, err
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("WALLET_INITIAL_BALANCE must not be negative: %s", initialBalance.String())
	}

	backend := strings.ToLower(getEnvString("WALLET_BACKEND", WalletBackendSqlite))
	switch backend {
	case WalletBackendMemory, WalletBackendSqlite, WalletBackendFormance:
	default:
		return nil, fmt.Errorf("unsupported WALLET_BACKEND %q (want memory, sqlite or formance)", backend)
	}

	source := strings.ToLower(getEnvString("MARKET_DATA_SOURCE", MarketDataSourceFile))
	switch source {
	case MarketDataSourceFile, MarketDataSourcePrime:
	default:
		return nil, fmt.Errorf("unsupported MARKET_DATA_SOURCE %q (want file or prime)", source)
	}

	return &models.Config{
		AccountId: getEnvString("ACCOUNT_ID", "default"),
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "staking.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Wallet: models.WalletConfig{
			Backend:        backend,
			Asset:          strings.ToUpper(getEnvString("WALLET_ASSET", "USD")),
			InitialBalance: initialBalance,
		},
		MarketData: models.MarketDataConfig{
			Source:    source,
			PoolsFile: getEnvString("POOLS_FILE", "pools.yaml"),
		},
		Watcher: models.WatcherConfig{
			PollingInterval: pollingInterval,
			Quiet:           getEnvBool("WATCHER_QUIET", false),
		},
		Formance: models.FormanceConfig{
			StackURL:     getEnvString("FORMANCE_STACK_URL", ""),
			ClientID:     getEnvString("FORMANCE_CLIENT_ID", ""),
			ClientSecret: getEnvString("FORMANCE_CLIENT_SECRET", ""),
			LedgerName:   getEnvString("FORMANCE_LEDGER", "staking"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	if value := os.Getenv(key); value != "" {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid decimal for %s: %q (%w)", key, value, err)
		}
		return d, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
