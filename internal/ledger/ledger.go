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

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/reward"
	"staking-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PoolRegistry resolves pools and records advisory counters.
type PoolRegistry interface {
	Get(id string) (models.Pool, error)
	RecordStake(id string, amount, reward decimal.Decimal) error
}

// StakeCreatedFunc is invoked after a stake has been committed.
type StakeCreatedFunc func(ctx context.Context, stake models.Stake, pool models.Pool)

// Config contains the collaborators of a Ledger
type Config struct {
	AccountId string
	Pools     PoolRegistry
	Wallet    store.WalletAccount
	Store     store.StakeStore // optional
	Clock     func() time.Time
	OnCreated StakeCreatedFunc // optional
}

// Ledger is the authoritative in-memory store of one account's stake positions.
// mu serializes the balance check, the wallet debit and the append.
type Ledger struct {
	accountId string
	pools     PoolRegistry
	wallet    store.WalletAccount
	store     store.StakeStore
	clock     func() time.Time
	onCreated StakeCreatedFunc

	mu     sync.Mutex
	stakes []models.Stake
}

func New(cfg Config) *Ledger {
	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Ledger{
		accountId: cfg.AccountId,
		pools:     cfg.Pools,
		wallet:    cfg.Wallet,
		store:     cfg.Store,
		clock:     clock,
		onCreated: cfg.OnCreated,
	}
}

// CreateStake commits amount to a pool for lockDays, debiting the wallet.
// On any failure the wallet and the stake list are left unchanged.
func (l *Ledger) CreateStake(ctx context.Context, poolId string, amount decimal.Decimal, lockDays int) (models.Stake, error) {
	if !amount.IsPositive() {
		return models.Stake{}, fmt.Errorf("%w: amount must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}
	if lockDays <= 0 {
		return models.Stake{}, fmt.Errorf("%w: must be positive, got %d", store.ErrInvalidLockPeriod, lockDays)
	}

	pool, err := l.pools.Get(poolId)
	if err != nil {
		return models.Stake{}, err
	}
	if lockDays != pool.LockPeriodDays {
		return models.Stake{}, fmt.Errorf("%w: pool %s locks for %d days, got %d", store.ErrInvalidLockPeriod, pool.Id, pool.LockPeriodDays, lockDays)
	}
	if !pool.IsActive {
		return models.Stake{}, fmt.Errorf("%w: %s", store.ErrPoolInactive, pool.Id)
	}
	if amount.LessThan(pool.MinStake) {
		return models.Stake{}, fmt.Errorf("%w: %s < %s", store.ErrBelowMinimum, amount.String(), pool.MinStake.String())
	}

	estimated, err := reward.Estimate(amount, pool.APY, lockDays)
	if err != nil {
		return models.Stake{}, err
	}

	stake, err := l.commit(ctx, pool, amount, estimated, lockDays)
	if err != nil {
		return models.Stake{}, err
	}

	if err := l.pools.RecordStake(pool.Id, stake.Amount, stake.Reward); err != nil {
		zap.L().Warn("Failed to update pool counters", zap.String("pool_id", pool.Id), zap.Error(err))
	}
	if l.onCreated != nil {
		l.onCreated(ctx, stake, pool)
	}

	return stake, nil
}

func (l *Ledger) commit(ctx context.Context, pool models.Pool, amount, estimated decimal.Decimal, lockDays int) (models.Stake, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.wallet.GetBalance(ctx)
	if err != nil {
		return models.Stake{}, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	if amount.GreaterThan(balance) {
		return models.Stake{}, fmt.Errorf("%w: balance %s, requested %s", store.ErrInsufficientBalance, balance.String(), amount.String())
	}

	start := l.clock()
	stake := models.Stake{
		Id:        uuid.New().String(),
		AccountId: l.accountId,
		PoolId:    pool.Id,
		Amount:    amount,
		StartDate: start,
		EndDate:   start.Add(time.Duration(lockDays) * day),
		Reward:    estimated,
		Status:    models.StakeStatusActive,
	}

	reference := "stake:" + stake.Id
	if err := l.wallet.Debit(ctx, amount, reference); err != nil {
		return models.Stake{}, fmt.Errorf("failed to debit wallet: %w", err)
	}

	if l.store != nil {
		if err := l.store.SaveStake(ctx, stake); err != nil {
			if creditErr := l.wallet.Credit(ctx, amount, reference+"-reversal"); creditErr != nil {
				zap.L().Error("Failed to credit back wallet after stake persistence failure",
					zap.String("stake_id", stake.Id),
					zap.String("amount", amount.String()),
					zap.Error(creditErr))
				return models.Stake{}, errors.Join(fmt.Errorf("failed to persist stake: %w", err), creditErr)
			}
			return models.Stake{}, fmt.Errorf("failed to persist stake: %w", err)
		}
	}

	l.stakes = append(l.stakes, stake)

	zap.L().Info("Stake created",
		zap.String("stake_id", stake.Id),
		zap.String("account_id", l.accountId),
		zap.String("pool_id", pool.Id),
		zap.String("amount", amount.String()),
		zap.String("reward", estimated.String()),
		zap.Time("end_date", stake.EndDate),
		zap.String("balance_before", balance.String()))

	return stake, nil
}

// ListStakes returns the stakes in creation order. The slice is a copy.
func (l *Ledger) ListStakes() []models.Stake {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Stake(nil), l.stakes...)
}

// Restore replaces the in-memory stakes, typically with what a StakeStore returned.
func (l *Ledger) Restore(stakes []models.Stake) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stakes = append([]models.Stake(nil), stakes...)
}

// RefreshStatuses rewrites each stake's cached status from DerivedStatus and
// returns the stakes whose status changed. Completed stakes are left as is.
func (l *Ledger) RefreshStatuses(ctx context.Context, now time.Time) ([]models.Stake, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []models.Stake
	for i := range l.stakes {
		s := &l.stakes[i]
		if s.Status == models.StakeStatusCompleted {
			continue
		}
		status := DerivedStatus(*s, now)
		if status == s.Status {
			continue
		}
		if l.store != nil {
			if err := l.store.UpdateStakeStatus(ctx, s.Id, status); err != nil {
				return changed, fmt.Errorf("failed to update stake %s status: %w", s.Id, err)
			}
		}
		zap.L().Info("Stake status changed",
			zap.String("stake_id", s.Id),
			zap.String("from", string(s.Status)),
			zap.String("to", string(status)))
		s.Status = status
		changed = append(changed, *s)
	}
	return changed, nil
}

// Views annotates every stake with its derived fields at now.
func (l *Ledger) Views(now time.Time) []models.StakeView {
	stakes := l.ListStakes()
	views := make([]models.StakeView, len(stakes))
	for i, s := range stakes {
		views[i] = View(s, now)
	}
	return views
}
