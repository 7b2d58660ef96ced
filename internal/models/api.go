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

// StakeResult represents the result of a staking request
type StakeResult struct {
	Success    bool            `json:"success"`
	Stake      *Stake          `json:"stake,omitempty"`
	NewBalance decimal.Decimal `json:"new_balance,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// StakeView is a stake annotated with its derived lifecycle fields at a point in time
type StakeView struct {
	Stake         Stake           `json:"stake"`
	Status        StakeStatus     `json:"status"`
	Progress      decimal.Decimal `json:"progress"`
	DaysRemaining int             `json:"days_remaining"`
}

// TransactionRecord represents a wallet movement in the user's history
type TransactionRecord struct {
	Id          string          `json:"id"`
	Type        string          `json:"type"` // "credit", "stake"
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
	Status      string          `json:"status"`
	ProcessedAt time.Time       `json:"processed_at"`
}
