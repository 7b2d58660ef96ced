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
	"errors"
	"fmt"
	"strings"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/portfolio"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ParseAmount parses user input into a positive amount
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", store.ErrInvalidAmount, input)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}
	return amount, nil
}

// CreateStake commits amount to a pool. Validation failures are reported in the
// result rather than as an error so callers can show them inline.
func (s *AccountingService) CreateStake(ctx context.Context, poolId string, amount decimal.Decimal, lockDays int) (*models.StakeResult, error) {
	zap.L().Info("Processing stake request",
		zap.String("account_id", s.accountId),
		zap.String("pool_id", poolId),
		zap.String("amount", amount.String()),
		zap.Int("lock_days", lockDays))

	stake, err := s.ledger.CreateStake(ctx, poolId, amount, lockDays)
	if err != nil {
		if isRejection(err) {
			zap.L().Info("Stake rejected",
				zap.String("pool_id", poolId),
				zap.String("amount", amount.String()),
				zap.Error(err))
		} else {
			zap.L().Error("Stake processing failed",
				zap.String("pool_id", poolId),
				zap.String("amount", amount.String()),
				zap.Error(err))
		}

		return &models.StakeResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	newBalance, err := s.wallet.GetBalance(ctx)
	if err != nil {
		zap.L().Error("Failed to get updated balance", zap.Error(err))
		newBalance = decimal.Zero
	}

	return &models.StakeResult{
		Success:    true,
		Stake:      &stake,
		NewBalance: newBalance,
	}, nil
}

// isRejection reports whether err is a user-input rejection rather than a backend fault
func isRejection(err error) bool {
	for _, target := range []error{
		store.ErrInvalidAmount,
		store.ErrInvalidArgument,
		store.ErrBelowMinimum,
		store.ErrInsufficientBalance,
		store.ErrPoolInactive,
		store.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Stakes returns the account's stakes in creation order
func (s *AccountingService) Stakes() []models.Stake {
	return s.ledger.ListStakes()
}

// StakeViews returns every stake with its status, progress and days remaining as of now
func (s *AccountingService) StakeViews() []models.StakeView {
	return s.ledger.Views(s.clock())
}

// RefreshStatuses updates cached stake statuses and emits a notification for each
// stake that became unlocked.
func (s *AccountingService) RefreshStatuses(ctx context.Context) ([]models.Stake, error) {
	changed, err := s.ledger.RefreshStatuses(ctx, s.clock())
	for _, stake := range changed {
		if stake.Status != models.StakeStatusUnlocked {
			continue
		}
		assetId := ""
		if pool, poolErr := s.pools.Get(stake.PoolId); poolErr == nil {
			assetId = pool.Asset.Id
		}
		s.emitter.Emit(ctx,
			"Stake Unlocked",
			fmt.Sprintf("Your %s %s stake in %s has completed its lock period. Reward earned: %s",
				stake.Amount.String(), s.asset, stake.PoolId, stake.Reward.StringFixed(2)),
			models.NotificationTypeStaking,
			assetId)
	}
	return changed, err
}

// Portfolio values the account from the wallet balance, the stakes and the given holdings
func (s *AccountingService) Portfolio(ctx context.Context, holdings []models.Holding) (models.Portfolio, error) {
	balance, err := s.wallet.GetBalance(ctx)
	if err != nil {
		zap.L().Error("Failed to get wallet balance", zap.String("account_id", s.accountId), zap.Error(err))
		return models.Portfolio{}, fmt.Errorf("failed to retrieve balance")
	}
	return portfolio.Snapshot(balance, s.ledger.ListStakes(), holdings), nil
}
