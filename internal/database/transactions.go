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
	"errors"
	"fmt"
	"time"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Transaction types recorded in the subledger
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

type ProcessTransactionParams struct {
	AccountId       string
	Asset           string
	TransactionType string
	Amount          decimal.Decimal
	Reference       string
	// RequireFunds rejects the transaction when it would leave a negative balance.
	RequireFunds bool
}

// ProcessTransaction atomically updates balance and records transaction
func (s *SubledgerService) ProcessTransaction(ctx context.Context, params ProcessTransactionParams) (*models.Transaction, error) {

	zap.L().Info("Processing transaction",
		zap.String("account_id", params.AccountId),
		zap.String("asset", params.Asset),
		zap.String("type", params.TransactionType),
		zap.String("amount", params.Amount.String()),
		zap.String("reference", params.Reference))

	// Start database transaction for atomicity
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if params.Reference != "" {
		var existingTxId string
		err := tx.QueryRowContext(ctx, queryCheckDuplicateTransaction, params.Reference).Scan(&existingTxId)
		if err == nil {
			zap.L().Warn("Duplicate transaction reference detected, skipping",
				zap.String("reference", params.Reference),
				zap.String("existing_internal_tx_id", existingTxId))
			return nil, fmt.Errorf("%w: reference %s already exists", ErrDuplicateTransaction, params.Reference)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to check for duplicate transaction: %w", err)
		}
	}

	var currentBalanceStr string
	var balanceId string
	var version int64

	err = tx.QueryRowContext(ctx, queryGetAccountBalance, params.AccountId, params.Asset).Scan(&balanceId, &currentBalanceStr, &version)

	var currentBalance decimal.Decimal
	if errors.Is(err, sql.ErrNoRows) {
		// Create new account balance record
		balanceId = uuid.New().String()
		currentBalance = decimal.Zero
		version = 1

		_, err = tx.ExecContext(ctx, queryInsertAccountBalance, balanceId, params.AccountId, params.Asset, "0", 1)
		if err != nil {
			return nil, fmt.Errorf("failed to create account balance: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get current balance: %w", err)
	} else {
		currentBalance, err = decimal.NewFromString(currentBalanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse current balance '%s': %w", currentBalanceStr, err)
		}
	}

	newBalance := currentBalance.Add(params.Amount)
	if params.RequireFunds && newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, requested %s", store.ErrInsufficientBalance, currentBalance.String(), params.Amount.Neg().String())
	}

	transactionId := uuid.New().String()
	now := time.Now().UTC()
	transaction := &models.Transaction{}

	var amountStr, balanceBeforeStr, balanceAfterStr string
	err = tx.QueryRowContext(ctx, queryInsertTransaction,
		transactionId, params.AccountId, params.Asset, params.TransactionType,
		params.Amount.String(), currentBalance.String(), newBalance.String(),
		params.Reference, "confirmed", now).
		Scan(&transaction.Id, &transaction.AccountId, &transaction.Asset, &transaction.TransactionType,
			&amountStr, &balanceBeforeStr, &balanceAfterStr,
			&transaction.Reference, &transaction.Status, &transaction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := parseAmounts(transaction, amountStr, balanceBeforeStr, balanceAfterStr); err != nil {
		return nil, err
	}

	// Update account balance (with optimistic locking)
	result, err := tx.ExecContext(ctx, queryUpdateAccountBalance, newBalance.String(), transactionId, params.AccountId, params.Asset, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("balance update failed - %w", ErrConcurrentModification)
	}

	if err := s.addJournalEntries(ctx, tx, transaction); err != nil {
		return nil, fmt.Errorf("failed to add journal entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Transaction processed successfully",
		zap.String("transaction_id", transactionId),
		zap.String("account_id", params.AccountId),
		zap.String("asset", params.Asset),
		zap.String("old_balance", currentBalance.String()),
		zap.String("new_balance", newBalance.String()))

	return transaction, nil
}

type journalEntry struct {
	accountType  string
	accountId    string
	debitAmount  decimal.Decimal
	creditAmount decimal.Decimal
}

// addJournalEntries creates double-entry bookkeeping entries
func (s *SubledgerService) addJournalEntries(ctx context.Context, tx *sql.Tx, transaction *models.Transaction) error {
	// Credit: the wallet grows, funded from the system funding account.
	// Debit: the wallet shrinks, moving principal into the staking escrow.
	walletAccount := fmt.Sprintf("%s_%s", transaction.AccountId, transaction.Asset)

	var entries []journalEntry
	switch transaction.TransactionType {
	case TransactionTypeCredit:
		entries = []journalEntry{
			{"account_wallet", walletAccount, transaction.Amount, decimal.Zero},
			{"system_funding", fmt.Sprintf("funding_%s", transaction.Asset), decimal.Zero, transaction.Amount},
		}
	case TransactionTypeDebit:
		entries = []journalEntry{
			{"account_wallet", walletAccount, decimal.Zero, transaction.Amount.Neg()},
			{"staking_escrow", fmt.Sprintf("escrow_%s", transaction.Asset), transaction.Amount.Neg(), decimal.Zero},
		}
	}

	for _, entry := range entries {
		entryId := uuid.New().String()
		_, err := tx.ExecContext(ctx, queryInsertJournalEntry,
			entryId, transaction.Id, entry.accountType, entry.accountId, entry.debitAmount.String(), entry.creditAmount.String())
		if err != nil {
			return err
		}
	}

	return nil
}

// GetTransactionHistory returns paginated transaction history for an account, newest first
func (s *SubledgerService) GetTransactionHistory(ctx context.Context, accountId, asset string, limit, offset int) ([]models.Transaction, error) {
	zap.L().Debug("Getting transaction history",
		zap.String("account_id", accountId),
		zap.String("asset", asset),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	rows, err := s.db.QueryContext(ctx, queryGetTransactionHistory, accountId, asset, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amountStr, balanceBeforeStr, balanceAfterStr string
		err := rows.Scan(&tx.Id, &tx.AccountId, &tx.Asset, &tx.TransactionType,
			&amountStr, &balanceBeforeStr, &balanceAfterStr,
			&tx.Reference, &tx.Status, &tx.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if err := parseAmounts(&tx, amountStr, balanceBeforeStr, balanceAfterStr); err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during transaction row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

func parseAmounts(tx *models.Transaction, amount, before, after string) error {
	var err error
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("failed to parse amount '%s': %w", amount, err)
	}
	tx.BalanceBefore, err = decimal.NewFromString(before)
	if err != nil {
		return fmt.Errorf("failed to parse balance before '%s': %w", before, err)
	}
	tx.BalanceAfter, err = decimal.NewFromString(after)
	if err != nil {
		return fmt.Errorf("failed to parse balance after '%s': %w", after, err)
	}
	return nil
}
