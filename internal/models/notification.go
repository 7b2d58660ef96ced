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

import "time"

// NotificationType classifies a user-facing notification
type NotificationType string

const (
	NotificationTypeStaking NotificationType = "staking"
	NotificationTypeTrading NotificationType = "trading"
	NotificationTypeMarket  NotificationType = "market"
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Valid reports whether t is a known notification type
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeStaking, NotificationTypeTrading, NotificationTypeMarket,
		NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}

// Notification is a record shown in the user's notification list
type Notification struct {
	Id             string           `json:"id" db:"id"`
	AccountId      string           `json:"account_id" db:"account_id"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	Type           NotificationType `json:"type" db:"type"`
	Timestamp      time.Time        `json:"timestamp" db:"timestamp"`
	Read           bool             `json:"read" db:"read"`
	RelatedAssetId string           `json:"related_asset_id,omitempty" db:"related_asset_id"`
}
