package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
)

// broadcastSender delivers one message to one user.
type broadcastSender interface {
	Send(ctx context.Context, userID int64, text string) error
}

// Broadcaster fans a message out to all registered users. Delivery is paced
// below the platform's messages-per-second ceiling and bounded in concurrency
// so a large user base cannot exhaust connections.
type Broadcaster struct {
	sender      broadcastSender
	limiter     *rate.Limiter
	concurrency int64
	logger      *slog.Logger
}

func NewBroadcaster(sender broadcastSender, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		sender: sender,
		// Telegram allows ~30 messages/second to distinct users; stay under.
		limiter:     rate.NewLimiter(rate.Limit(25), 5),
		concurrency: 4,
		logger:      logger,
	}
}

// Broadcast sends text to every id, skipping none. It returns how many sends
// succeeded, how many users have blocked the bot, and how many failed for
// other reasons. Cancelling ctx stops the fan-out early.
func (br *Broadcaster) Broadcast(ctx context.Context, ids []int64, text string) (sent, blocked, failed int) {
	sem := semaphore.NewWeighted(br.concurrency)
	var mu sync.Mutex

	for _, id := range ids {
		if err := br.limiter.Wait(ctx); err != nil {
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		go func(id int64) {
			defer sem.Release(1)
			err := br.sender.Send(ctx, id, text)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				metrics.BroadcastMessagesTotal.WithLabelValues("sent").Inc()
				sent++
			case isBlockedByUser(err):
				metrics.BroadcastMessagesTotal.WithLabelValues("blocked").Inc()
				blocked++
			default:
				metrics.BroadcastMessagesTotal.WithLabelValues("failed").Inc()
				failed++
				br.logger.Debug("broadcast delivery failed",
					slog.Int64("userID", id),
					slog.String("error", err.Error()),
				)
			}
		}(id)
	}

	// Wait for in-flight sends regardless of why the loop ended.
	_ = sem.Acquire(context.Background(), br.concurrency)
	return sent, blocked, failed
}

func isBlockedByUser(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "bot was blocked") ||
		strings.Contains(lower, "user is deactivated") ||
		strings.Contains(lower, "chat not found")
}
