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

package notify

import (
	"context"

	"staking-ledger-go/internal/models"

	"go.uber.org/zap"
)

// LogSink writes delivered notifications to the global logger.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, n models.Notification) {
	zap.L().Info("Notification",
		zap.String("type", string(n.Type)),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
		zap.String("related_asset_id", n.RelatedAssetId))
}

// ChannelSink forwards notifications to a buffered channel, dropping them when it is full.
type ChannelSink struct {
	C chan models.Notification
}

func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{C: make(chan models.Notification, size)}
}

func (s *ChannelSink) Deliver(_ context.Context, n models.Notification) {
	select {
	case s.C <- n:
	default:
		zap.L().Warn("Notification channel full, dropping", zap.String("notification_id", n.Id))
	}
}
