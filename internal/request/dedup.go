package request

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupPrefix = "dedup:blood_request:v1:"

// DedupGuard rejects repeated blood-request submissions with the same identity
// (requester email, blood group, city, state) inside a time window. The guard
// fails open: if Redis is unreachable the submission proceeds, so a cache
// outage can never block a request for blood.
type DedupGuard struct {
	cache  *redis.Client
	window time.Duration
	logger *slog.Logger
}

// NewDedupGuard builds a Redis-backed submission guard. A nil client or
// non-positive window disables deduplication.
func NewDedupGuard(cache *redis.Client, window time.Duration, logger *slog.Logger) *DedupGuard {
	return &DedupGuard{cache: cache, window: window, logger: logger}
}

// Reserve claims the submission identity for the window. It returns false when
// an identical submission already holds the window.
func (g *DedupGuard) Reserve(ctx context.Context, sub Submission) bool {
	if g == nil || g.cache == nil || g.window <= 0 {
		return true
	}

	key := dedupPrefix + strings.Join([]string{
		strings.ToLower(sub.Email), sub.BloodGroup, sub.City, sub.State,
	}, "|")

	ok, err := g.cache.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.window).Result()
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("dedup guard unavailable, allowing submission", "error", err)
		}
		return true
	}
	return ok
}
