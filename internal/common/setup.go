package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"staking-ledger-go/internal/api"
	"staking-ledger-go/internal/catalog"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/database"
	"staking-ledger-go/internal/formance"
	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/notify"
	"staking-ledger-go/internal/prime"
	"staking-ledger-go/internal/store"
	"staking-ledger-go/internal/wallet"

	"github.com/coinbase-samples/prime-sdk-go/credentials"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService       *database.Service
	FormanceService *formance.Service
	PrimeService    *prime.Service
	MarketData      store.MarketDataSource
	Accounting      *api.AccountingService
	Wallet          store.WalletAccount
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices opens the database, selects the wallet backend and market data
// source, loads the pool catalog and restores the account's session.
func InitializeServices(ctx context.Context, cfg *models.Config, sinks ...store.NotificationSink) (*Services, error) {
	services := &Services{}

	// A memory wallet starts from the initial balance every session, so stakes and
	// notifications from earlier sessions must not be restored against it.
	var persistence store.LedgerPersistence
	if cfg.Wallet.Backend != config.WalletBackendMemory {
		dbService, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		services.DbService = dbService
		persistence = dbService
	}

	var err error
	services.Wallet, err = services.initializeWallet(ctx, cfg)
	if err != nil {
		services.Close()
		return nil, err
	}

	services.MarketData, err = services.initializeMarketData(ctx, cfg)
	if err != nil {
		services.Close()
		return nil, err
	}

	zap.L().Info("Loading staking pools", zap.String("source", cfg.MarketData.Source))
	pools, err := catalog.Load(ctx, services.MarketData)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to load pool catalog: %w", err)
	}

	accounting, err := api.NewAccountingService(api.Config{
		AccountId:   cfg.AccountId,
		Asset:       cfg.Wallet.Asset,
		Wallet:      services.Wallet,
		Pools:       pools,
		Persistence: persistence,
		Sinks:       append([]store.NotificationSink{notify.LogSink{}}, sinks...),
	})
	if err != nil {
		services.Close()
		return nil, err
	}
	services.Accounting = accounting

	if err := accounting.Restore(ctx); err != nil {
		services.Close()
		return nil, err
	}

	zap.L().Info("Services initialized",
		zap.String("account_id", cfg.AccountId),
		zap.String("wallet_backend", cfg.Wallet.Backend),
		zap.Int("pools", len(pools.List())))

	return services, nil
}

func (s *Services) initializeWallet(ctx context.Context, cfg *models.Config) (store.WalletAccount, error) {
	switch cfg.Wallet.Backend {
	case config.WalletBackendMemory:
		zap.L().Info("Using in-memory wallet",
			zap.String("initial_balance", cfg.Wallet.InitialBalance.String()))
		return wallet.NewMemory(cfg.Wallet.InitialBalance), nil
	case config.WalletBackendFormance:
		formanceService, err := formance.NewService(ctx, cfg.Formance)
		if err != nil {
			return nil, err
		}
		s.FormanceService = formanceService
		return formanceService.Wallet(cfg.AccountId, cfg.Wallet.Asset), nil
	default:
		return s.DbService.Wallet(cfg.AccountId, cfg.Wallet.Asset), nil
	}
}

func (s *Services) initializeMarketData(ctx context.Context, cfg *models.Config) (store.MarketDataSource, error) {
	fileSource, err := catalog.LoadFileSource(cfg.MarketData.PoolsFile)
	if err != nil {
		return nil, err
	}

	if cfg.MarketData.Source != config.MarketDataSourcePrime {
		return fileSource, nil
	}

	zap.L().Info("Loading Prime API credentials")
	creds, err := loadPrimeCredentials()
	if err != nil {
		return nil, err
	}

	primeService, err := prime.NewService(creds)
	if err != nil {
		return nil, err
	}
	s.PrimeService = primeService

	zap.L().Info("Finding default portfolio")
	defaultPortfolio, err := primeService.FindDefaultPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return prime.NewMarketData(primeService, defaultPortfolio.Id, fileSource), nil
}

// FundInitialBalance credits the configured initial balance once per account.
// Memory wallets are seeded at construction and are left untouched.
func FundInitialBalance(ctx context.Context, services *Services, cfg *models.Config) (bool, error) {
	if cfg.Wallet.Backend == config.WalletBackendMemory || !cfg.Wallet.InitialBalance.IsPositive() {
		return false, nil
	}

	reference := fmt.Sprintf("initial-funding:%s", cfg.AccountId)
	err := services.Accounting.Fund(ctx, cfg.Wallet.InitialBalance, reference)
	if errors.Is(err, store.ErrDuplicateTransaction) {
		zap.L().Info("Wallet already funded", zap.String("reference", reference))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Services) Close() {
	if s.FormanceService != nil {
		s.FormanceService.Close()
	}
	if s.Accounting != nil && s.DbService != nil {
		// closes the database through its persistence handle
		s.Accounting.Close()
		return
	}
	if s.DbService != nil {
		s.DbService.Close()
	}
}

func loadPrimeCredentials() (*credentials.Credentials, error) {
	accessKey := os.Getenv("PRIME_ACCESS_KEY")
	passphrase := os.Getenv("PRIME_PASSPHRASE")
	signingKey := os.Getenv("PRIME_SIGNING_KEY")

	if accessKey == "" || passphrase == "" || signingKey == "" {
		return nil, fmt.Errorf("missing required Prime API credentials: PRIME_ACCESS_KEY, PRIME_PASSPHRASE, PRIME_SIGNING_KEY")
	}

	return &credentials.Credentials{
		AccessKey:  accessKey,
		Passphrase: passphrase,
		SigningKey: signingKey,
	}, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
