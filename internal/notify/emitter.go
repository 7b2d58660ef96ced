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
	"fmt"
	"sort"
	"sync"
	"time"

	"staking-ledger-go/internal/models"
	"staking-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Emitter records user-facing notifications for one account and fans them out to sinks.
type Emitter struct {
	accountId string
	store     store.NotificationStore
	sinks     []store.NotificationSink
	clock     func() time.Time

	mu            sync.RWMutex
	notifications []models.Notification
}

type Option func(*Emitter)

// WithStore persists every notification and every read/clear operation.
func WithStore(s store.NotificationStore) Option {
	return func(e *Emitter) { e.store = s }
}

// WithSink adds a sink that receives every emitted notification.
func WithSink(s store.NotificationSink) Option {
	return func(e *Emitter) { e.sinks = append(e.sinks, s) }
}

func WithClock(clock func() time.Time) Option {
	return func(e *Emitter) { e.clock = clock }
}

func NewEmitter(accountId string, opts ...Option) *Emitter {
	e := &Emitter{
		accountId: accountId,
		clock:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit appends an unread notification. It never fails: persistence errors are logged.
func (e *Emitter) Emit(ctx context.Context, title, message string, notificationType models.NotificationType, relatedAssetId string) models.Notification {
	if !notificationType.Valid() {
		zap.L().Warn("Unknown notification type, using info", zap.String("type", string(notificationType)))
		notificationType = models.NotificationTypeInfo
	}

	n := models.Notification{
		Id:             uuid.New().String(),
		AccountId:      e.accountId,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		Timestamp:      e.clock(),
		Read:           false,
		RelatedAssetId: relatedAssetId,
	}

	e.mu.Lock()
	e.notifications = append(e.notifications, n)
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.SaveNotification(ctx, n); err != nil {
			zap.L().Error("Failed to persist notification",
				zap.String("notification_id", n.Id),
				zap.Error(err))
		}
	}

	for _, sink := range e.sinks {
		sink.Deliver(ctx, n)
	}

	zap.L().Debug("Notification emitted",
		zap.String("notification_id", n.Id),
		zap.String("type", string(n.Type)),
		zap.String("title", n.Title))

	return n
}

// List returns notifications for display: unread first, then newest first.
func (e *Emitter) List() []models.Notification {
	e.mu.RLock()
	out := append([]models.Notification(nil), e.notifications...)
	e.mu.RUnlock()

	SortForDisplay(out)
	return out
}

// SortForDisplay orders notifications unread first, then by timestamp descending.
func SortForDisplay(ns []models.Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Read != ns[j].Read {
			return !ns[i].Read
		}
		return ns[i].Timestamp.After(ns[j].Timestamp)
	})
}

func (e *Emitter) UnreadCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	count := 0
	for _, n := range e.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read.
func (e *Emitter) MarkRead(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.notifications {
		if e.notifications[i].Id != id {
			continue
		}
		if e.store != nil {
			if err := e.store.SetNotificationRead(ctx, id, true); err != nil {
				return fmt.Errorf("failed to mark notification read: %w", err)
			}
		}
		e.notifications[i].Read = true
		return nil
	}
	return fmt.Errorf("%w: notification %s", store.ErrNotFound, id)
}

// MarkAllRead marks every unread notification as read and returns how many changed.
func (e *Emitter) MarkAllRead(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	marked := 0
	for i := range e.notifications {
		if e.notifications[i].Read {
			continue
		}
		if e.store != nil {
			if err := e.store.SetNotificationRead(ctx, e.notifications[i].Id, true); err != nil {
				return marked, fmt.Errorf("failed to mark notification read: %w", err)
			}
		}
		e.notifications[i].Read = true
		marked++
	}
	return marked, nil
}

// Clear removes every notification of the account.
func (e *Emitter) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store != nil {
		if err := e.store.DeleteNotifications(ctx, e.accountId); err != nil {
			return fmt.Errorf("failed to clear notifications: %w", err)
		}
	}
	e.notifications = nil
	return nil
}

// Restore replaces the in-memory notifications, typically with what a NotificationStore returned.
func (e *Emitter) Restore(notifications []models.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifications = append([]models.Notification(nil), notifications...)
}
