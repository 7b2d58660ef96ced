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

package models

import "github.com/shopspring/decimal"

// Category names used in the portfolio breakdown
const (
	CategoryAvailable = "available"
	CategoryStaked    = "staked"
	CategoryRewards   = "rewards"
	CategoryHoldings  = "holdings"
)

// CategoryShare is one slice of the portfolio breakdown
type CategoryShare struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
	Percent  decimal.Decimal `json:"percent"`
}

// Portfolio is a valuation snapshot recomputed on every read
type Portfolio struct {
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalChange        decimal.Decimal `json:"total_change"`
	TotalChangePercent decimal.Decimal `json:"total_change_percent"`
	AvailableBalance   decimal.Decimal `json:"available_balance"`
	TotalStaked        decimal.Decimal `json:"total_staked"`
	TotalRewards       decimal.Decimal `json:"total_rewards"`
	HoldingsValue      decimal.Decimal `json:"holdings_value"`
	Breakdown          []CategoryShare `json:"breakdown"`
	Holdings           []Holding       `json:"holdings"`
	Stakes             []Stake         `json:"stakes"`
}

// Share returns the breakdown entry for a category, or a zero share
func (p Portfolio) Share(category string) CategoryShare {
	for _, s := range p.Breakdown {
		if s.Category == category {
			return s
		}
	}
	return CategoryShare{Category: category, Value: decimal.Zero, Percent: decimal.Zero}
}
