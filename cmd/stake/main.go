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
	"os"

	"staking-ledger-go/internal/api"
	"staking-ledger-go/internal/common"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/reward"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	poolFlag := flag.String("pool", "", "Pool id to stake in (required)")
	amountFlag := flag.String("amount", "", "Amount to stake (required)")
	daysFlag := flag.Int("days", 0, "Lock period in days (defaults to the pool's lock period)")
	flag.Parse()

	if *poolFlag == "" || *amountFlag == "" {
		flag.Usage()
		return 2
	}

	amount, err := api.ParseAmount(*amountFlag)
	if err != nil {
		fmt.Printf("✗ %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	pool, err := services.Accounting.Pool(*poolFlag)
	if err != nil {
		fmt.Printf("✗ Stake rejected: %v\n", err)
		return 1
	}

	lockDays := *daysFlag
	if lockDays == 0 {
		lockDays = pool.LockPeriodDays
	}

	result, err := services.Accounting.CreateStake(ctx, *poolFlag, amount, lockDays)
	if err != nil {
		zap.L().Fatal("Failed to create stake", zap.Error(err))
	}

	if !result.Success {
		fmt.Printf("✗ Stake rejected: %s\n", result.Error)
		return 1
	}

	stake := result.Stake
	common.PrintHeader("STAKE CREATED", common.DefaultWidth)
	fmt.Printf("Stake:       %s\n", stake.Id)
	fmt.Printf("Pool:        %s\n", stake.PoolId)
	fmt.Printf("Amount:      %s\n", common.FormatMoney(stake.Amount, cfg.Wallet.Asset))
	fmt.Printf("Reward:      %s\n", common.FormatMoney(reward.Round(stake.Reward), cfg.Wallet.Asset))
	fmt.Printf("Unlocks:     %s\n", stake.EndDate.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("New balance: %s\n", common.FormatMoney(result.NewBalance, cfg.Wallet.Asset))
	common.PrintFooter(fmt.Sprintf("Status: %s", stake.Status), common.DefaultWidth)
	return 0
}
