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

package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"staking-ledger-go/internal/models"

	"go.uber.org/zap"
)

// StatusRefresher rewrites cached stake statuses and reports the stakes that changed.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context) ([]models.Stake, error)
}

// MaturityWatcherConfig contains configuration for MaturityWatcher
type MaturityWatcherConfig struct {
	Refresher       StatusRefresher
	PollingInterval time.Duration
	// Quiet suppresses console output; structured logs are still written.
	Quiet bool
}

// MaturityWatcher periodically refreshes stake statuses so unlocked stakes are
// persisted and announced without waiting for a read.
type MaturityWatcher struct {
	refresher       StatusRefresher
	pollingInterval time.Duration
	quiet           bool

	mutex    sync.Mutex
	polls    int
	unlocked int

	// Control channels
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

func NewMaturityWatcher(cfg MaturityWatcherConfig) *MaturityWatcher {
	return &MaturityWatcher{
		refresher:       cfg.Refresher,
		pollingInterval: cfg.PollingInterval,
		quiet:           cfg.Quiet,
		stopChan:        make(chan struct{}),
		doneChan:        make(chan struct{}),
	}
}

// Start runs one refresh immediately and then one per polling interval until Stop
// is called or ctx is done.
func (w *MaturityWatcher) Start(ctx context.Context) error {
	if w.refresher == nil {
		return fmt.Errorf("watcher requires a status refresher")
	}
	if w.pollingInterval <= 0 {
		return fmt.Errorf("polling interval must be positive, got %v", w.pollingInterval)
	}

	go w.pollLoop(ctx)

	zap.L().Info("Maturity watcher started", zap.Duration("polling_interval", w.pollingInterval))
	return nil
}

// Stop gracefully stops the watcher and waits for the current poll to finish.
func (w *MaturityWatcher) Stop() {
	w.stopOnce.Do(func() {
		zap.L().Info("Stopping maturity watcher")
		close(w.stopChan)
	})
	<-w.doneChan
	zap.L().Info("Maturity watcher stopped")
}

// Done is closed once the poll loop has exited.
func (w *MaturityWatcher) Done() <-chan struct{} {
	return w.doneChan
}

// Stats returns how many polls ran and how many stakes unlocked so far.
func (w *MaturityWatcher) Stats() (polls, unlocked int) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.polls, w.unlocked
}

func (w *MaturityWatcher) pollLoop(ctx context.Context) {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.pollingInterval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// ANSI color helpers for console output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

func (w *MaturityWatcher) poll(ctx context.Context) {
	changed, err := w.refresher.RefreshStatuses(ctx)

	unlocked := 0
	for _, stake := range changed {
		if stake.Status == models.StakeStatusUnlocked {
			unlocked++
		}
	}

	w.mutex.Lock()
	w.polls++
	w.unlocked += unlocked
	w.mutex.Unlock()

	if !w.quiet {
		fmt.Printf("%s[%s] Checked stake maturities%s\n", colorCyan, time.Now().Format("15:04:05"), colorReset)
		for _, stake := range changed {
			fmt.Printf("  %s✓ %s %s %s -> %s%s\n",
				colorGreen, stake.PoolId, stake.Amount.String(), stake.Id, stake.Status, colorReset)
		}
		if err != nil {
			fmt.Printf("  %s✗ %s%s\n", colorRed, err, colorReset)
		}
	}

	if err != nil {
		zap.L().Error("Failed to refresh stake statuses", zap.Error(err))
		return
	}
	if len(changed) > 0 {
		zap.L().Info("Stake statuses refreshed",
			zap.Int("changed", len(changed)),
			zap.Int("unlocked", unlocked))
	}
}
