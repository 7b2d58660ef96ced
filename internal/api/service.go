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

package api

import (
	"context"
	"fmt"
	"time"

	"staking-ledger-go/internal/catalog"
	"staking-ledger-go/internal/ledger"
	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/notify"
	"staking-ledger-go/internal/reward"
	"staking-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Config contains the collaborators of an AccountingService
type Config struct {
	AccountId   string
	Asset       string
	Wallet      store.WalletAccount
	Pools       *catalog.Catalog
	Persistence store.LedgerPersistence // optional
	Sinks       []store.NotificationSink
	Clock       func() time.Time
}

// AccountingService owns one account's wallet, stake ledger and notifications for a session
type AccountingService struct {
	accountId   string
	asset       string
	wallet      store.WalletAccount
	pools       *catalog.Catalog
	ledger      *ledger.Ledger
	emitter     *notify.Emitter
	persistence store.LedgerPersistence
	clock       func() time.Time
}

func NewAccountingService(cfg Config) (*AccountingService, error) {
	if cfg.AccountId == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if cfg.Wallet == nil {
		return nil, fmt.Errorf("wallet is required")
	}
	if cfg.Pools == nil {
		return nil, fmt.Errorf("pool catalog is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	s := &AccountingService{
		accountId:   cfg.AccountId,
		asset:       cfg.Asset,
		wallet:      cfg.Wallet,
		pools:       cfg.Pools,
		persistence: cfg.Persistence,
		clock:       clock,
	}

	emitterOpts := []notify.Option{notify.WithClock(clock)}
	var stakeStore store.StakeStore
	if cfg.Persistence != nil {
		stakeStore = cfg.Persistence
		emitterOpts = append(emitterOpts, notify.WithStore(cfg.Persistence))
	}
	for _, sink := range cfg.Sinks {
		emitterOpts = append(emitterOpts, notify.WithSink(sink))
	}
	s.emitter = notify.NewEmitter(cfg.AccountId, emitterOpts...)

	s.ledger = ledger.New(ledger.Config{
		AccountId: cfg.AccountId,
		Pools:     cfg.Pools,
		Wallet:    cfg.Wallet,
		Store:     stakeStore,
		Clock:     clock,
		OnCreated: s.onStakeCreated,
	})

	return s, nil
}

// Restore loads the account's stakes and notifications from persistence
func (s *AccountingService) Restore(ctx context.Context) error {
	if s.persistence == nil {
		return nil
	}

	stakes, err := s.persistence.ListStakes(ctx, s.accountId)
	if err != nil {
		return fmt.Errorf("failed to restore stakes: %w", err)
	}
	s.ledger.Restore(stakes)

	notifications, err := s.persistence.ListNotifications(ctx, s.accountId)
	if err != nil {
		return fmt.Errorf("failed to restore notifications: %w", err)
	}
	s.emitter.Restore(notifications)

	zap.L().Info("Session restored",
		zap.String("account_id", s.accountId),
		zap.Int("stakes", len(stakes)),
		zap.Int("notifications", len(notifications)))
	return nil
}

func (s *AccountingService) HealthCheck(ctx context.Context) error {
	if _, err := s.wallet.GetBalance(ctx); err != nil {
		return fmt.Errorf("wallet health check failed: %w", err)
	}
	return nil
}

func (s *AccountingService) Close() {
	if s.persistence != nil {
		s.persistence.Close()
	}
}

func (s *AccountingService) AccountId() string {
	return s.accountId
}

func (s *AccountingService) Asset() string {
	return s.asset
}

// Pools returns the staking pools in catalog order
func (s *AccountingService) Pools() []models.Pool {
	return s.pools.List()
}

// Pool looks up one pool by id, returning store.ErrNotFound when it does not exist
func (s *AccountingService) Pool(id string) (models.Pool, error) {
	return s.pools.Get(id)
}

func (s *AccountingService) onStakeCreated(ctx context.Context, stake models.Stake, pool models.Pool) {
	s.emitter.Emit(ctx,
		"Stake Created",
		fmt.Sprintf("Staked %s %s in %s for %d days. Estimated reward: %s",
			stake.Amount.String(), s.asset, pool.Id, pool.LockPeriodDays, reward.Round(stake.Reward).StringFixed(2)),
		models.NotificationTypeStaking,
		pool.Asset.Id)
}
