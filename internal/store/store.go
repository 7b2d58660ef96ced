package store

import (
	"context"
	"errors"
	"fmt"

	"staking-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across the accounting core and all backend implementations.
var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrBelowMinimum           = errors.New("amount below pool minimum stake")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrPoolInactive           = errors.New("pool is not active")
	ErrNotFound               = errors.New("not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidLockPeriod      = fmt.Errorf("%w: lock period", ErrInvalidArgument)
	ErrDuplicateTransaction   = errors.New("duplicate transaction")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// WalletAccount is the spendable balance a stake is debited from.
// Debit must check and debit as one step and fail with ErrInsufficientBalance
// without side effects when the balance does not cover the amount.
type WalletAccount interface {
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	Debit(ctx context.Context, amount decimal.Decimal, reference string) error
	Credit(ctx context.Context, amount decimal.Decimal, reference string) error
}

// MarketDataSource supplies pool and asset records.
type MarketDataSource interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	ListPools(ctx context.Context) ([]models.Pool, error)
}

// NotificationSink receives emitted notifications for display. There is no acknowledgment.
type NotificationSink interface {
	Deliver(ctx context.Context, notification models.Notification)
}

// StakeStore persists stake positions.
type StakeStore interface {
	SaveStake(ctx context.Context, stake models.Stake) error
	ListStakes(ctx context.Context, accountId string) ([]models.Stake, error)
	UpdateStakeStatus(ctx context.Context, stakeId string, status models.StakeStatus) error
}

// NotificationStore persists notifications.
type NotificationStore interface {
	SaveNotification(ctx context.Context, notification models.Notification) error
	ListNotifications(ctx context.Context, accountId string) ([]models.Notification, error)
	SetNotificationRead(ctx context.Context, notificationId string, read bool) error
	DeleteNotifications(ctx context.Context, accountId string) error
}

// LedgerPersistence defines the contract that every persistence backend must satisfy.
type LedgerPersistence interface {
	StakeStore
	NotificationStore

	// --- Lifecycle ---
	Close()
}
