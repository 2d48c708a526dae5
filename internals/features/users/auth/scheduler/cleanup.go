package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	authRepo "readingroom_backend/internals/features/users/auth/repository"
)

const (
	cleanupInterval = 24 * time.Hour
	cleanupTimeout  = time.Minute
)

// BlacklistCleanup deletes blacklist entries that expired more than TTL ago.
type BlacklistCleanup struct {
	Tokens   authRepo.TokenRepository
	TTL      time.Duration
	Interval time.Duration
	Now      func() time.Time
	Log      *zap.Logger
	// OnPurged, when set, receives the number of entries each pass removed.
	OnPurged func(n int64)
}

func NewBlacklistCleanup(tokens authRepo.TokenRepository, ttlDays int, log *zap.Logger) *BlacklistCleanup {
	if ttlDays < 0 {
		ttlDays = 0
	}
	return &BlacklistCleanup{
		Tokens:   tokens,
		TTL:      time.Duration(ttlDays) * 24 * time.Hour,
		Interval: cleanupInterval,
		Now:      func() time.Time { return time.Now().UTC() },
		Log:      log,
	}
}

// RunOnce performs a single cleanup pass.
func (b *BlacklistCleanup) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()
	return b.Tokens.CleanupExpiredBlacklist(ctx, b.Now().Add(-b.TTL))
}

// Run loops until ctx is cancelled. Single pass failures are logged and
// retried on the next tick; only a panic escapes to the caller.
func (b *BlacklistCleanup) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		b.Log.Info("[CLEANUP] running token_blacklist cleanup")
		if n, err := b.RunOnce(ctx); err != nil {
			b.Log.Error("[CLEANUP] failed", zap.Error(err))
		} else {
			b.Log.Info("[CLEANUP] done", zap.Int64("deleted", n))
			if b.OnPurged != nil {
				b.OnPurged(n)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
