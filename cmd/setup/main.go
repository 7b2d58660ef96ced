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
	"fmt"

	"staking-ledger-go/internal/common"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/models"

	"go.uber.org/zap"
)

func printPools(pools []models.Pool) {
	fmt.Printf("\n┌─ Staking pools (%d)\n", len(pools))
	common.PrintBoxSeparator(78)
	for i, pool := range pools {
		isLast := i == len(pools)-1
		status := "active"
		if !pool.IsActive {
			status = "inactive"
		}
		fmt.Printf("%s%-10s %-6s APY %6s  lock %3dd  min %s  (%s)\n",
			common.BoxPrefix(isLast),
			pool.Id,
			pool.Asset.Symbol,
			common.FormatPercent(pool.APY),
			pool.LockPeriodDays,
			pool.MinStake.String(),
			status)
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	zap.L().Info("Initializing staking ledger",
		zap.String("database", cfg.Database.Path),
		zap.String("wallet_backend", cfg.Wallet.Backend),
		zap.String("market_data_source", cfg.MarketData.Source))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	funded, err := common.FundInitialBalance(ctx, services, cfg)
	if err != nil {
		zap.L().Fatal("Failed to fund wallet", zap.Error(err))
	}

	balance, err := services.Accounting.GetBalance(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read wallet balance", zap.Error(err))
	}

	common.PrintHeader("STAKING LEDGER SETUP", common.DefaultWidth)
	fmt.Printf("Account:        %s\n", cfg.AccountId)
	fmt.Printf("Wallet backend: %s\n", cfg.Wallet.Backend)
	fmt.Printf("Balance:        %s\n", common.FormatMoney(balance, cfg.Wallet.Asset))
	if funded {
		fmt.Printf("Funded with:    %s\n", common.FormatMoney(cfg.Wallet.InitialBalance, cfg.Wallet.Asset))
	}
	printPools(services.Accounting.Pools())
	common.PrintFooter("Setup complete", common.DefaultWidth)

	zap.L().Info("Setup complete",
		zap.String("account_id", cfg.AccountId),
		zap.Bool("funded", funded),
		zap.String("balance", balance.String()))
}
