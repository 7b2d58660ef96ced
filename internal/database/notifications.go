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

package database

import (
	"context"
	"database/sql"
	"fmt"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"go.uber.org/zap"
)

func (s *Service) SaveNotification(ctx context.Context, n models.Notification) error {
	_, err := s.db.ExecContext(ctx, queryInsertNotification,
		n.Id, n.AccountId, n.Title, n.Message, string(n.Type), n.Timestamp.UTC(), n.Read, n.RelatedAssetId)
	if err != nil {
		return fmt.Errorf("unable to insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns an account's notifications, unread first then newest first
func (s *Service) ListNotifications(ctx context.Context, accountId string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, queryGetAccountNotifications, accountId)
	if err != nil {
		zap.L().Error("Failed to query notifications", zap.String("account_id", accountId), zap.Error(err))
		return nil, fmt.Errorf("unable to query notifications: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var notificationType string
		err := rows.Scan(&n.Id, &n.AccountId, &n.Title, &n.Message, &notificationType,
			&n.Timestamp, &n.Read, &n.RelatedAssetId)
		if err != nil {
			return nil, fmt.Errorf("unable to scan notification row: %w", err)
		}
		n.Type = models.NotificationType(notificationType)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during notification row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

func (s *Service) SetNotificationRead(ctx context.Context, notificationId string, read bool) error {
	result, err := s.db.ExecContext(ctx, querySetNotificationRead, read, notificationId)
	if err != nil {
		return fmt.Errorf("unable to update notification: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: notification %s", store.ErrNotFound, notificationId)
	}
	return nil
}

func (s *Service) DeleteNotifications(ctx context.Context, accountId string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteAccountNotifications, accountId)
	if err != nil {
		return fmt.Errorf("unable to delete notifications: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil {
		zap.L().Info("Notifications cleared", zap.String("account_id", accountId), zap.Int64("count", n))
	}
	return nil
}
