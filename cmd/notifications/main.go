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
	"flag"
	"fmt"

	"staking-ledger-go/internal/common"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/models"

	"go.uber.org/zap"
)

func printNotification(n models.Notification, isLast bool) {
	marker := "●"
	if n.Read {
		marker = "○"
	}
	fmt.Printf("%s%s [%s] %s  (%s)\n",
		common.BoxPrefix(isLast),
		marker,
		n.Type,
		n.Title,
		n.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("%s   %s\n", common.BoxDetailPrefix(isLast), n.Message)
	fmt.Printf("%s   id: %s\n", common.BoxDetailPrefix(isLast), n.Id)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	readFlag := flag.String("read", "", "Mark the notification with this id as read")
	readAllFlag := flag.Bool("read-all", false, "Mark every notification as read")
	clearFlag := flag.Bool("clear", false, "Delete all notifications")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	accounting := services.Accounting

	switch {
	case *clearFlag:
		if err := accounting.ClearNotifications(ctx); err != nil {
			zap.L().Fatal("Failed to clear notifications", zap.Error(err))
		}
		fmt.Println("✓ Notifications cleared")
		return
	case *readAllFlag:
		count, err := accounting.MarkAllNotificationsRead(ctx)
		if err != nil {
			zap.L().Fatal("Failed to mark notifications read", zap.Error(err))
		}
		fmt.Printf("✓ Marked %d notifications as read\n", count)
	case *readFlag != "":
		if err := accounting.MarkNotificationRead(ctx, *readFlag); err != nil {
			zap.L().Fatal("Failed to mark notification read", zap.String("id", *readFlag), zap.Error(err))
		}
		fmt.Printf("✓ Marked %s as read\n", *readFlag)
	}

	notifications := accounting.Notifications()

	common.PrintHeader(fmt.Sprintf("NOTIFICATIONS (%d unread)", accounting.UnreadCount()), common.DefaultWidth)
	for i, n := range notifications {
		printNotification(n, i == len(notifications)-1)
	}
	common.PrintFooter(fmt.Sprintf("%d notifications", len(notifications)), common.DefaultWidth)
}
