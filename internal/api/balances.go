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

	"staking-ledger-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionHistory is implemented by wallets that keep an audit trail
type TransactionHistory interface {
	GetTransactionHistory(ctx context.Context, limit, offset int) ([]models.Transaction, error)
}

// GetBalance returns the current wallet balance
func (s *AccountingService) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := s.wallet.GetBalance(ctx)
	if err != nil {
		zap.L().Error("Failed to get wallet balance",
			zap.String("account_id", s.accountId),
			zap.String("asset", s.asset),
			zap.Error(err))
		return decimal.Zero, fmt.Errorf("failed to retrieve balance")
	}
	return balance, nil
}

// Fund credits the wallet, typically with the initial session balance
func (s *AccountingService) Fund(ctx context.Context, amount decimal.Decimal, reference string) error {
	if err := s.wallet.Credit(ctx, amount, reference); err != nil {
		return fmt.Errorf("failed to fund wallet: %w", err)
	}
	zap.L().Info("Wallet funded",
		zap.String("account_id", s.accountId),
		zap.String("asset", s.asset),
		zap.String("amount", amount.String()),
		zap.String("reference", reference))
	return nil
}

// GetTransactionHistory returns paginated wallet history when the wallet backend keeps one
func (s *AccountingService) GetTransactionHistory(ctx context.Context, limit, offset int) ([]models.TransactionRecord, error) {
	history, ok := s.wallet.(TransactionHistory)
	if !ok {
		return nil, fmt.Errorf("wallet backend does not keep transaction history")
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := history.GetTransactionHistory(ctx, limit, offset)
	if err != nil {
		zap.L().Error("Failed to get transaction history",
			zap.String("account_id", s.accountId),
			zap.String("asset", s.asset),
			zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve transaction history")
	}

	result := make([]models.TransactionRecord, len(transactions))
	for i, tx := range transactions {
		result[i] = models.TransactionRecord{
			Id:          tx.Id,
			Type:        tx.TransactionType,
			Asset:       tx.Asset,
			Amount:      tx.Amount,
			Reference:   tx.Reference,
			Status:      tx.Status,
			ProcessedAt: tx.CreatedAt,
		}
	}

	return result, nil
}
