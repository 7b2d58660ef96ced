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
	"staking-ledger-go/internal/reward"

	"go.uber.org/zap"
)

func printSummary(p models.Portfolio, currency string) {
	fmt.Printf("Total value:    %s\n", common.FormatMoney(p.TotalValue, currency))
	fmt.Printf("Total change:   %s (%s)\n",
		common.FormatSignedMoney(p.TotalChange, currency),
		common.FormatPercent(reward.Round(p.TotalChangePercent)))
	fmt.Printf("Available:      %s\n", common.FormatMoney(p.AvailableBalance, currency))
	fmt.Printf("Staked:         %s\n", common.FormatMoney(p.TotalStaked, currency))
	fmt.Printf("Rewards:        %s\n", common.FormatMoney(p.TotalRewards, currency))
}

func printBreakdown(breakdown []models.CategoryShare, currency string) {
	fmt.Printf("\n┌─ Breakdown\n")
	common.PrintBoxSeparator(78)
	for i, share := range breakdown {
		fmt.Printf("%s%-10s %20s %10s\n",
			common.BoxPrefix(i == len(breakdown)-1),
			share.Category,
			common.FormatMoney(share.Value, currency),
			common.FormatPercent(share.Percent))
	}
}

func printStakes(views []models.StakeView, currency string) {
	fmt.Printf("\n┌─ Stakes (%d)\n", len(views))
	common.PrintBoxSeparator(78)
	if len(views) == 0 {
		fmt.Println("└  none")
		return
	}
	for i, view := range views {
		isLast := i == len(views)-1
		fmt.Printf("%s%s %-10s %s\n",
			common.BoxPrefix(isLast),
			common.ShortId(view.Stake.Id),
			view.Stake.PoolId,
			common.FormatMoney(view.Stake.Amount, currency))
		fmt.Printf("%s   %-9s progress %s, %d days remaining, reward %s, unlocks %s\n",
			common.BoxDetailPrefix(isLast),
			view.Status,
			common.FormatPercent(view.Progress),
			view.DaysRemaining,
			common.FormatMoney(view.Stake.Reward, currency),
			view.Stake.EndDate.Format("2006-01-02"))
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

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if _, err := services.Accounting.RefreshStatuses(ctx); err != nil {
		zap.L().Warn("Failed to refresh stake statuses", zap.Error(err))
	}

	snapshot, err := services.Accounting.Portfolio(ctx, nil)
	if err != nil {
		zap.L().Fatal("Failed to value portfolio", zap.Error(err))
	}

	common.PrintHeader(fmt.Sprintf("PORTFOLIO: %s", cfg.AccountId), common.DefaultWidth)
	printSummary(snapshot, cfg.Wallet.Asset)
	printBreakdown(snapshot.Breakdown, cfg.Wallet.Asset)
	printStakes(services.Accounting.StakeViews(), cfg.Wallet.Asset)
	common.PrintFooter(fmt.Sprintf("Unread notifications: %d", services.Accounting.UnreadCount()), common.DefaultWidth)
}
