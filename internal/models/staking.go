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

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakeStatus is the lifecycle state of a stake position
type StakeStatus string

const (
	StakeStatusActive    StakeStatus = "active"
	StakeStatusCompleted StakeStatus = "completed"
	StakeStatusUnlocked  StakeStatus = "unlocked"
)

// Asset represents a tradable or stakeable asset
type Asset struct {
	Id      string `json:"id" yaml:"id"`
	Symbol  string `json:"symbol" yaml:"symbol"`
	Name    string `json:"name" yaml:"name"`
	Network string `json:"network,omitempty" yaml:"network"`
}

// Pool represents a staking pool. TotalStaked and TotalRewards are advisory
// display counters; the authoritative record lives in Stake.
type Pool struct {
	Id             string          `json:"id"`
	Asset          Asset           `json:"asset"`
	APY            decimal.Decimal `json:"apy"`
	TotalStaked    decimal.Decimal `json:"total_staked"`
	MinStake       decimal.Decimal `json:"min_stake"`
	LockPeriodDays int             `json:"lock_period_days"`
	TotalRewards   decimal.Decimal `json:"total_rewards"`
	IsActive       bool            `json:"is_active"`
}

// Stake represents a user's committed principal in a pool
type Stake struct {
	Id        string          `json:"id" db:"id"`
	AccountId string          `json:"account_id" db:"account_id"`
	PoolId    string          `json:"pool_id" db:"pool_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	StartDate time.Time       `json:"start_date" db:"start_date"`
	EndDate   time.Time       `json:"end_date" db:"end_date"`
	Reward    decimal.Decimal `json:"reward" db:"reward"`
	Status    StakeStatus     `json:"status" db:"status"`
}

// Holding represents a non-staked asset position valued in the wallet currency
type Holding struct {
	AssetId      string          `json:"asset_id"`
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Change       decimal.Decimal `json:"change"`
}
