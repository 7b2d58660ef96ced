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

package database

import (
	"context"
	"database/sql"
	"fmt"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) SaveStake(ctx context.Context, stake models.Stake) error {
	_, err := s.db.ExecContext(ctx, queryInsertStake,
		stake.Id, stake.AccountId, stake.PoolId, stake.Amount.String(),
		stake.StartDate.UTC(), stake.EndDate.UTC(), stake.Reward.String(), string(stake.Status))
	if err != nil {
		zap.L().Error("Failed to insert stake", zap.String("stake_id", stake.Id), zap.Error(err))
		return fmt.Errorf("unable to insert stake: %w", err)
	}

	zap.L().Debug("Stake stored",
		zap.String("stake_id", stake.Id),
		zap.String("account_id", stake.AccountId),
		zap.String("pool_id", stake.PoolId))
	return nil
}

// ListStakes returns an account's stakes in creation order
func (s *Service) ListStakes(ctx context.Context, accountId string) ([]models.Stake, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAccountStakes, accountId)
	if err != nil {
		zap.L().Error("Failed to query stakes", zap.String("account_id", accountId), zap.Error(err))
		return nil, fmt.Errorf("unable to query stakes: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var stakes []models.Stake
	for rows.Next() {
		var stake models.Stake
		var amountStr, rewardStr, status string
		err := rows.Scan(&stake.Id, &stake.AccountId, &stake.PoolId, &amountStr,
			&stake.StartDate, &stake.EndDate, &rewardStr, &status)
		if err != nil {
			return nil, fmt.Errorf("unable to scan stake row: %w", err)
		}

		if stake.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse stake amount '%s': %w", amountStr, err)
		}
		if stake.Reward, err = decimal.NewFromString(rewardStr); err != nil {
			return nil, fmt.Errorf("failed to parse stake reward '%s': %w", rewardStr, err)
		}
		stake.Status = models.StakeStatus(status)

		stakes = append(stakes, stake)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during stake row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating stake rows: %w", err)
	}

	zap.L().Debug("Retrieved stakes", zap.String("account_id", accountId), zap.Int("count", len(stakes)))
	return stakes, nil
}

func (s *Service) UpdateStakeStatus(ctx context.Context, stakeId string, status models.StakeStatus) error {
	result, err := s.db.ExecContext(ctx, queryUpdateStakeStatus, string(status), stakeId)
	if err != nil {
		return fmt.Errorf("unable to update stake status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: stake %s", store.ErrNotFound, stakeId)
	}
	return nil
}
