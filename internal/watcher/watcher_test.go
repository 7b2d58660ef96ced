package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"staking-ledger-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRefresher struct {
	mu      sync.Mutex
	calls   int
	results [][]models.Stake
	err     error
}

func (r *scriptedRefresher) RefreshStatuses(context.Context) ([]models.Stake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if len(r.results) == 0 {
		return nil, nil
	}
	next := r.results[0]
	r.results = r.results[1:]
	return next, nil
}

func (r *scriptedRefresher) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestMaturityWatcher_PollsUntilStopped(t *testing.T) {
	refresher := &scriptedRefresher{results: [][]models.Stake{
		{{Id: "s1", Status: models.StakeStatusUnlocked}},
		nil,
		{{Id: "s2", Status: models.StakeStatusUnlocked}, {Id: "s3", Status: models.StakeStatusActive}},
	}}
	w := NewMaturityWatcher(MaturityWatcherConfig{Refresher: refresher, PollingInterval: 5 * time.Millisecond, Quiet: true})

	require.NoError(t, w.Start(context.Background()))
	require.Eventually(t, func() bool { return refresher.Calls() >= 3 }, time.Second, time.Millisecond)
	w.Stop()

	polls, unlocked := w.Stats()
	assert.GreaterOrEqual(t, polls, 3)
	assert.Equal(t, 2, unlocked)

	calls := refresher.Calls()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, refresher.Calls(), "no polls after Stop")
}

func TestMaturityWatcher_PollsImmediately(t *testing.T) {
	refresher := &scriptedRefresher{}
	w := NewMaturityWatcher(MaturityWatcherConfig{Refresher: refresher, PollingInterval: time.Hour, Quiet: true})

	require.NoError(t, w.Start(context.Background()))
	require.Eventually(t, func() bool { return refresher.Calls() == 1 }, time.Second, time.Millisecond)
	w.Stop()
}

func TestMaturityWatcher_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewMaturityWatcher(MaturityWatcherConfig{Refresher: &scriptedRefresher{}, PollingInterval: time.Millisecond, Quiet: true})

	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after context cancel")
	}
	w.Stop()
}

func TestMaturityWatcher_ErrorsDoNotStopLoop(t *testing.T) {
	refresher := &scriptedRefresher{err: errors.New("database is locked")}
	w := NewMaturityWatcher(MaturityWatcherConfig{Refresher: refresher, PollingInterval: time.Millisecond, Quiet: true})

	require.NoError(t, w.Start(context.Background()))
	require.Eventually(t, func() bool { return refresher.Calls() >= 3 }, time.Second, time.Millisecond)
	w.Stop()

	_, unlocked := w.Stats()
	assert.Equal(t, 0, unlocked)
}

func TestMaturityWatcher_StartValidation(t *testing.T) {
	w := NewMaturityWatcher(MaturityWatcherConfig{PollingInterval: time.Second})
	assert.Error(t, w.Start(context.Background()))

	w = NewMaturityWatcher(MaturityWatcherConfig{Refresher: &scriptedRefresher{}})
	assert.Error(t, w.Start(context.Background()))
}
