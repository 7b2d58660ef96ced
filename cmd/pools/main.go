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
	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/reward"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func printPool(pool models.Pool, sample decimal.Decimal, isLast bool) {
	status := "ACTIVE"
	if !pool.IsActive {
		status = "INACTIVE"
	}
	fmt.Printf("%s%s  %s (%s)  %s\n", common.BoxPrefix(isLast), pool.Id, pool.Asset.Name, pool.Asset.Symbol, status)

	detail := common.BoxDetailPrefix(isLast)
	fmt.Printf("%s   APY %s, lock %d days, minimum %s\n",
		detail, common.FormatPercent(pool.APY), pool.LockPeriodDays, pool.MinStake.String())
	fmt.Printf("%s   Total staked %s, total rewards %s\n",
		detail, pool.TotalStaked.String(), pool.TotalRewards.String())

	if sample.IsPositive() {
		estimate, err := reward.Estimate(sample, pool.APY, pool.LockPeriodDays)
		if err == nil {
			fmt.Printf("%s   Estimated reward on %s: %s\n",
				detail, sample.String(), reward.Round(estimate).StringFixed(2))
		}
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	sampleFlag := flag.String("estimate", "", "Show the estimated reward for this principal in every pool (optional)")
	flag.Parse()

	sample := decimal.Zero
	if *sampleFlag != "" {
		var err error
		sample, err = decimal.NewFromString(*sampleFlag)
		if err != nil {
			zap.L().Fatal("Invalid -estimate amount", zap.String("value", *sampleFlag), zap.Error(err))
		}
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

	assets, err := services.MarketData.ListAssets(ctx)
	if err != nil {
		zap.L().Fatal("Failed to list assets", zap.Error(err))
	}
	pools := services.Accounting.Pools()

	common.PrintHeader(fmt.Sprintf("STAKING POOLS (source: %s)", cfg.MarketData.Source), common.DefaultWidth)
	fmt.Printf("Assets available: %d\n", len(assets))
	common.PrintBoxSeparator(78)
	for i, pool := range pools {
		printPool(pool, sample, i == len(pools)-1)
	}
	common.PrintFooter(fmt.Sprintf("%d pools", len(pools)), common.DefaultWidth)
}
