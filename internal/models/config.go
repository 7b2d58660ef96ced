package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig
	Wallet     WalletConfig
	MarketData MarketDataConfig
	Watcher    WatcherConfig
	Formance   FormanceConfig
	AccountId  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// WalletConfig selects and seeds the wallet backend
type WalletConfig struct {
	Backend        string // "memory", "sqlite", "formance"
	Asset          string
	InitialBalance decimal.Decimal
}

// MarketDataConfig selects where pools and assets come from
type MarketDataConfig struct {
	Source    string // "file", "prime"
	PoolsFile string
}

// WatcherConfig holds maturity watcher settings
type WatcherConfig struct {
	PollingInterval time.Duration
	Quiet           bool
}

// FormanceConfig holds Formance Stack connection settings
type FormanceConfig struct {
	StackURL     string
	ClientID     string
	ClientSecret string
	LedgerName   string
}
