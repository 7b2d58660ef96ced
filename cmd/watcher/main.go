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
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staking-ledger-go/internal/common"
	"staking-ledger-go/internal/config"
	"staking-ledger-go/internal/notify"
	"staking-ledger-go/internal/watcher"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = zap.NewProduction()
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting maturity watcher", zap.String("account_id", cfg.AccountId))

	alerts := notify.NewChannelSink(64)
	services, err := common.InitializeServices(ctx, cfg, alerts)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	w := watcher.NewMaturityWatcher(watcher.MaturityWatcherConfig{
		Refresher:       services.Accounting,
		PollingInterval: cfg.Watcher.PollingInterval,
		Quiet:           cfg.Watcher.Quiet,
	})
	if err := w.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start maturity watcher", zap.Error(err))
	}

	zap.L().Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for running := true; running; {
		select {
		case n := <-alerts.C:
			fmt.Printf("🔔 %s: %s\n", n.Title, n.Message)
		case <-sigChan:
			running = false
		}
	}

	zap.L().Info("Shutdown signal received, stopping watcher...")

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
		polls, unlocked := w.Stats()
		zap.L().Info("Maturity watcher stopped gracefully",
			zap.Int("polls", polls),
			zap.Int("unlocked", unlocked))
	case <-time.After(30 * time.Second):
		zap.L().Warn("Forced shutdown after timeout")
	}
}
