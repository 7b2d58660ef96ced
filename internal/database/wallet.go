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
	"fmt"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

var _ store.WalletAccount = (*Wallet)(nil)

// Wallet is a WalletAccount backed by the subledger. Each movement is an audited
// transaction and debits are refused inside the database transaction when funds
// are short.
type Wallet struct {
	subledger *SubledgerService
	accountId string
	asset     string
}

func NewWallet(subledger *SubledgerService, accountId, asset string) *Wallet {
	return &Wallet{subledger: subledger, accountId: accountId, asset: asset}
}

func (w *Wallet) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	return w.subledger.GetBalance(ctx, w.accountId, w.asset)
}

func (w *Wallet) Debit(ctx context.Context, amount decimal.Decimal, reference string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}
	_, err := w.subledger.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId:       w.accountId,
		Asset:           w.asset,
		TransactionType: TransactionTypeDebit,
		Amount:          amount.Neg(),
		Reference:       reference,
		RequireFunds:    true,
	})
	return err
}

func (w *Wallet) Credit(ctx context.Context, amount decimal.Decimal, reference string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit must be positive, got %s", store.ErrInvalidAmount, amount.String())
	}
	_, err := w.subledger.ProcessTransaction(ctx, ProcessTransactionParams{
		AccountId:       w.accountId,
		Asset:           w.asset,
		TransactionType: TransactionTypeCredit,
		Amount:          amount,
		Reference:       reference,
	})
	return err
}

// GetTransactionHistory returns the wallet's movements, newest first
func (w *Wallet) GetTransactionHistory(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	return w.subledger.GetTransactionHistory(ctx, w.accountId, w.asset, limit, offset)
}

// Reconcile checks the stored balance against the transaction history
func (w *Wallet) Reconcile(ctx context.Context) error {
	return w.subledger.ReconcileBalance(ctx, w.accountId, w.asset)
}
