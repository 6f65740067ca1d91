package staffauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var errRevocationUnavailable = errors.New("revocation backend unavailable")

// RevocationList records access tokens invalidated before their natural
// expiry. Entries live in a single Redis sorted set scored by the token's
// expiry time, so membership checks are one round-trip and the reaper can
// trim everything expired with one range delete.
//
// A token present in the list must never again pass verification, even if
// its signature and expiry are otherwise valid.
type RevocationList struct {
	redis *redis.Client
	key   string
}

// NewRevocationList describes the newrevocationlist operation and its observable behavior.
//
// NewRevocationList may return an error when input validation, dependency calls, or security checks fail.
func NewRevocationList(client *redis.Client, key string) *RevocationList {
	if key == "" {
		key = "staffauth:revoked"
	}
	return &RevocationList{redis: client, key: key}
}

// Revoke inserts the token with its expiry as score. Revoking an
// already-revoked token overwrites the score and is a no-op success.
func (l *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if l == nil || l.redis == nil {
		return ErrEngineNotReady
	}
	err := l.redis.ZAdd(ctx, l.key, redis.Z{
		Score:  float64(expiresAt.Unix()),
		Member: token,
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", errRevocationUnavailable, err)
	}
	return nil
}

// Contains reports whether the token has been revoked.
func (l *RevocationList) Contains(ctx context.Context, token string) (bool, error) {
	if l == nil || l.redis == nil {
		return false, ErrEngineNotReady
	}
	_, err := l.redis.ZScore(ctx, l.key, token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", errRevocationUnavailable, err)
	}
	return true, nil
}

// ReapExpired deletes every entry whose expiry is at or before now and
// returns the number removed. An expired-but-not-yet-reaped entry is
// harmless: the token fails its own expiry check before the list is
// consulted, so reaping is storage hygiene, not a security boundary.
func (l *RevocationList) ReapExpired(ctx context.Context, now time.Time) (int64, error) {
	if l == nil || l.redis == nil {
		return 0, ErrEngineNotReady
	}
	max := strconv.FormatInt(now.Unix(), 10)
	removed, err := l.redis.ZRemRangeByScore(ctx, l.key, "-inf", max).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errRevocationUnavailable, err)
	}
	return removed, nil
}

// Reaper periodically evicts expired revocation entries. It is an explicitly
// owned background task: process initialization starts it with Run and stops
// it by cancelling the context, never as a side effect of construction.
type Reaper struct {
	list     *RevocationList
	interval time.Duration
}

// NewReaper describes the newreaper operation and its observable behavior.
//
// NewReaper may return an error when input validation, dependency calls, or security checks fail.
func NewReaper(list *RevocationList, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Reaper{list: list, interval: interval}
}

// Run blocks until ctx is cancelled, reaping once per interval. Missed or
// delayed runs are tolerated; cleanup is eventual.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.list.ReapExpired(ctx, time.Now()); err != nil {
				log.Print("staffauth: revocation reap failed")
			}
		}
	}
}
