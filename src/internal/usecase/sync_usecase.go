package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Empire688682/chipsub-mobile/src/internal/entity"
	"github.com/Empire688682/chipsub-mobile/src/internal/gateway/backend"
	"github.com/Empire688682/chipsub-mobile/src/internal/model/converter"
	"github.com/Empire688682/chipsub-mobile/src/pkg/log"
)

const refreshKey = "wallet-refresh"

// SyncUseCase keeps the local wallet snapshot synchronized with the
// backend: a fixed-interval poll while a session is active, plus explicit
// out-of-band refreshes after purchases.
type SyncUseCase struct {
	Log      log.Log
	Backend  backend.Client
	Interval time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	snapshot entity.WalletSnapshot
	lastErr  error
	userID   string
	cancel   context.CancelFunc
}

func NewSyncUseCase(logger log.Log, client backend.Client, interval time.Duration) *SyncUseCase {
	if interval <= 0 {
		interval = 180 * time.Second
	}
	return &SyncUseCase{
		Log:      logger,
		Backend:  client,
		Interval: interval,
	}
}

// Start schedules the interval refresh for userID, replacing any previous
// schedule. Start does not fetch; the cold fetch is an explicit RefreshNow
// by the session layer once credentials are durably persisted.
func (u *SyncUseCase) Start(userID string) {
	u.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	u.mu.Lock()
	u.userID = userID
	u.cancel = cancel
	u.mu.Unlock()

	go u.loop(ctx)
}

func (u *SyncUseCase) loop(ctx context.Context) {
	ticker := time.NewTicker(u.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.Refresh(ctx)
		}
	}
}

// Stop cancels the interval timer and discards the snapshot. Called on
// logout before credentials are cleared.
func (u *SyncUseCase) Stop() {
	u.mu.Lock()
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
	u.userID = ""
	u.snapshot = entity.WalletSnapshot{}
	u.lastErr = nil
	u.mu.Unlock()
}

// Refresh fetches balance and transactions for the active session.
// Concurrent callers collapse into one in-flight request and share its
// result. A failed fetch keeps the previous snapshot in place and is
// reported to the logger, never to the caller. Without a session this is
// a no-op returning the last known snapshot.
func (u *SyncUseCase) Refresh(ctx context.Context) entity.WalletSnapshot {
	u.mu.RLock()
	userID := u.userID
	u.mu.RUnlock()

	if userID == "" {
		u.mu.RLock()
		defer u.mu.RUnlock()
		return u.snapshot
	}

	v, err, _ := u.group.Do(refreshKey, func() (interface{}, error) {
		data, err := u.Backend.FetchWalletSnapshot(ctx, userID)
		if err != nil {
			return nil, err
		}
		return converter.RealTimeDataToSnapshot(data, time.Now()), nil
	})

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		u.lastErr = err
		u.Log.Error("sync-refresh", err.Error(), "Refresh", userID)
		return u.snapshot
	}
	u.lastErr = nil
	u.snapshot = v.(entity.WalletSnapshot)
	return u.snapshot
}

// RefreshNow is the out-of-band trigger used right after a purchase
// completes. It shares the single-flight guard with the interval ticks.
func (u *SyncUseCase) RefreshNow(ctx context.Context) entity.WalletSnapshot {
	return u.Refresh(ctx)
}

// Snapshot returns the latest snapshot and whether it is stale: the last
// refresh failed, nothing was fetched yet, or the data is older than two
// intervals.
func (u *SyncUseCase) Snapshot() (entity.WalletSnapshot, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	stale := u.lastErr != nil ||
		u.snapshot.FetchedAt.IsZero() ||
		time.Since(u.snapshot.FetchedAt) > 2*u.Interval
	return u.snapshot, stale
}
