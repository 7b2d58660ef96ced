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

package main

import (
	"context"
	"flag"
	"fmt"

	"staking-ledger-go/internal/common"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/database"
	"staking-ledger-go/internal/models"

	"go.uber.org/zap"
)

func printAssetBalances(balances []models.AccountBalance) {
	for i, balance := range balances {
		fmt.Printf("%s %-8s: %20s (v%d, last_tx: %s, updated: %s)\n",
			common.BoxPrefix(i == len(balances)-1),
			balance.Asset,
			balance.Balance.String(),
			balance.Version,
			common.ShortId(balance.LastTransactionId),
			balance.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printTransaction(tx models.TransactionRecord, currency string, isLast bool) {
	fmt.Printf("%s %-7s %18s  %-10s %s  ref: %s\n",
		common.BoxPrefix(isLast),
		tx.Type,
		common.FormatSignedMoney(tx.Amount, currency),
		tx.Status,
		tx.ProcessedAt.Format("2006-01-02 15:04:05"),
		tx.Reference)
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	limitFlag := flag.Int("limit", 20, "Number of transactions to show (max 100)")
	offsetFlag := flag.Int("offset", 0, "Number of transactions to skip")
	reconcileFlag := flag.Bool("reconcile", false, "Verify the stored balance against the transaction history (sqlite backend)")
	flag.Parse()

	logger.Info("Starting balance query")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	balance, err := services.Accounting.GetBalance(ctx)
	if err != nil {
		logger.Fatal("Failed to get balance", zap.Error(err))
	}

	common.PrintHeader("WALLET BALANCE REPORT", common.DefaultWidth)
	fmt.Printf("\n┌─ Account: %s\n", cfg.AccountId)
	fmt.Printf("│  Backend: %s\n", cfg.Wallet.Backend)
	fmt.Printf("│  Balance: %s\n", common.FormatMoney(balance, cfg.Wallet.Asset))
	common.PrintBoxSeparator(78)

	if services.DbService != nil && cfg.Wallet.Backend == config.WalletBackendSqlite {
		assetBalances, err := services.DbService.GetAllBalances(ctx, cfg.AccountId)
		if err != nil {
			logger.Warn("Asset balances unavailable", zap.Error(err))
		} else if len(assetBalances) > 0 {
			fmt.Printf("│  Assets: %d\n", len(assetBalances))
			printAssetBalances(assetBalances)
			common.PrintBoxSeparator(78)
		}
	}

	transactions, err := services.Accounting.GetTransactionHistory(ctx, *limitFlag, *offsetFlag)
	if err != nil {
		logger.Warn("Transaction history unavailable", zap.Error(err))
	}
	for i, tx := range transactions {
		printTransaction(tx, cfg.Wallet.Asset, i == len(transactions)-1)
	}

	summary := fmt.Sprintf("SUMMARY: %d transactions shown", len(transactions))
	if *reconcileFlag {
		subledgerWallet, ok := services.Wallet.(*database.Wallet)
		if !ok {
			logger.Fatal("Reconciliation requires the sqlite wallet backend", zap.String("backend", cfg.Wallet.Backend))
		}
		if err := subledgerWallet.Reconcile(ctx); err != nil {
			logger.Error("Reconciliation failed", zap.Error(err))
			summary += ", reconciliation FAILED"
		} else {
			summary += ", balance reconciled"
		}
	}
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance query completed",
		zap.String("account_id", cfg.AccountId),
		zap.String("balance", balance.String()),
		zap.Int("transactions", len(transactions)))
}
