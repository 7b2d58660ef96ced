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

package api

import (
	"context"

	"staking-ledger-go/internal/models"
)

// Notify emits a notification to the account's list and sinks
func (s *AccountingService) Notify(ctx context.Context, title, message string, notificationType models.NotificationType, relatedAssetId string) models.Notification {
	return s.emitter.Emit(ctx, title, message, notificationType, relatedAssetId)
}

// Notifications returns notifications unread first, then newest first
func (s *AccountingService) Notifications() []models.Notification {
	return s.emitter.List()
}

func (s *AccountingService) UnreadCount() int {
	return s.emitter.UnreadCount()
}

func (s *AccountingService) MarkNotificationRead(ctx context.Context, id string) error {
	return s.emitter.MarkRead(ctx, id)
}

func (s *AccountingService) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	return s.emitter.MarkAllRead(ctx)
}

func (s *AccountingService) ClearNotifications(ctx context.Context) error {
	return s.emitter.Clear(ctx)
}
