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

package portfolio

import (
	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/reward"

	"github.com/shopspring/decimal"
)

// Snapshot values an account from its wallet balance, its stakes and its other holdings.
//
// The wallet balance already excludes staked principal because the ledger debits it
// when the stake is created, so it is taken as the available balance unchanged.
func Snapshot(walletBalance decimal.Decimal, stakes []models.Stake, holdings []models.Holding) models.Portfolio {
	totalStaked := decimal.Zero
	totalRewards := decimal.Zero
	for _, s := range stakes {
		totalStaked = totalStaked.Add(s.Amount)
		totalRewards = totalRewards.Add(s.Reward)
	}

	holdingsValue := decimal.Zero
	holdingsChange := decimal.Zero
	for _, h := range holdings {
		holdingsValue = holdingsValue.Add(h.CurrentValue)
		holdingsChange = holdingsChange.Add(h.Change)
	}

	totalValue := walletBalance.Add(totalStaked).Add(totalRewards).Add(holdingsValue)
	totalChange := totalRewards.Add(holdingsChange)

	breakdown := []models.CategoryShare{
		share(models.CategoryAvailable, walletBalance, totalValue),
		share(models.CategoryStaked, totalStaked, totalValue),
		share(models.CategoryRewards, totalRewards, totalValue),
	}
	if len(holdings) > 0 {
		breakdown = append(breakdown, share(models.CategoryHoldings, holdingsValue, totalValue))
	}

	return models.Portfolio{
		TotalValue:         totalValue,
		TotalChange:        totalChange,
		TotalChangePercent: reward.Percent(totalChange, totalValue.Sub(totalChange)),
		AvailableBalance:   walletBalance,
		TotalStaked:        totalStaked,
		TotalRewards:       totalRewards,
		HoldingsValue:      holdingsValue,
		Breakdown:          breakdown,
		Holdings:           append([]models.Holding(nil), holdings...),
		Stakes:             append([]models.Stake(nil), stakes...),
	}
}

func share(category string, value, total decimal.Decimal) models.CategoryShare {
	percent := reward.Percent(value, total)
	if percent.IsNegative() {
		percent = decimal.Zero
	}
	return models.CategoryShare{Category: category, Value: value, Percent: percent}
}
