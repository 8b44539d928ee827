// Package gate decides whether a user may search: access is reserved for
// subscribers of the configured channel.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
)

// StatusFetcher resolves a user's membership status in a chat. The returned
// status is the platform's role classification (creator, administrator,
// member, restricted, left, kicked).
type StatusFetcher interface {
	MemberStatus(ctx context.Context, chatID, userID int64) (string, error)
}

// Gate checks channel membership, optionally memoizing verdicts in Redis for
// a short TTL so repeated queries do not hammer the chat platform. Without
// Redis every check goes straight to the platform.
type Gate struct {
	fetcher   StatusFetcher
	channelID int64
	cache     *redis.Client
	ttl       time.Duration
	logger    *slog.Logger
}

type Option func(*Gate)

// WithCache enables the Redis verdict cache.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(g *Gate) {
		g.cache = client
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

func New(fetcher StatusFetcher, channelID int64, logger *slog.Logger, opts ...Option) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	gate := &Gate{
		fetcher:   fetcher,
		channelID: channelID,
		ttl:       5 * time.Minute,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(gate)
		}
	}
	return gate
}

// IsSubscribed reports whether the user belongs to the gated channel. Check
// failures deny access rather than granting it.
func (g *Gate) IsSubscribed(ctx context.Context, userID int64) bool {
	if g.channelID == 0 {
		// Gating disabled by configuration.
		return true
	}

	if verdict, ok := g.cachedVerdict(ctx, userID); ok {
		metrics.MembershipChecksTotal.WithLabelValues("cache", verdictLabel(verdict)).Inc()
		return verdict
	}

	status, err := g.fetcher.MemberStatus(ctx, g.channelID, userID)
	if err != nil {
		metrics.MembershipChecksTotal.WithLabelValues("api", "error").Inc()
		g.logger.Warn("membership check failed",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return false
	}

	subscribed := isSubscribedStatus(status)
	metrics.MembershipChecksTotal.WithLabelValues("api", verdictLabel(subscribed)).Inc()
	g.storeVerdict(ctx, userID, subscribed)
	return subscribed
}

func isSubscribedStatus(status string) bool {
	switch status {
	case "creator", "administrator", "member":
		return true
	default:
		return false
	}
}

func (g *Gate) cachedVerdict(ctx context.Context, userID int64) (bool, bool) {
	if g.cache == nil {
		return false, false
	}
	value, err := g.cache.Get(ctx, g.cacheKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			g.logger.Debug("membership cache read failed", slog.String("error", err.Error()))
		}
		return false, false
	}
	return value == "1", true
}

func (g *Gate) storeVerdict(ctx context.Context, userID int64, subscribed bool) {
	if g.cache == nil {
		return
	}
	value := "0"
	if subscribed {
		value = "1"
	}
	if err := g.cache.Set(ctx, g.cacheKey(userID), value, g.ttl).Err(); err != nil {
		g.logger.Debug("membership cache write failed", slog.String("error", err.Error()))
	}
}

func (g *Gate) cacheKey(userID int64) string {
	return fmt.Sprintf("moviebot:member:%d:%d", g.channelID, userID)
}

func verdictLabel(subscribed bool) string {
	if subscribed {
		return "subscribed"
	}
	return "not_subscribed"
}
