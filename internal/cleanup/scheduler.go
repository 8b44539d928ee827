// Package cleanup removes previously sent result messages after a fixed
// delay. Deletions are one-shot, best-effort and independent of each other:
// they are never retried, never persisted, and silently dropped when the
// process shuts down first.
package cleanup

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kniranjan1001/telegram-seach-bot/internal/metrics"
)

// Deleter removes one message from a chat.
type Deleter interface {
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// Scheduler owns the pending one-shot deletion timers. Each scheduled
// deletion captures only the (chat id, message id) pair it needs.
type Scheduler struct {
	deleter Deleter
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

func NewScheduler(deleter Deleter, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		deleter: deleter,
		logger:  logger,
		timeout: 10 * time.Second,
		timers:  make(map[*time.Timer]struct{}),
	}
}

// Schedule enqueues a deferred deletion that fires no earlier than delay from
// now. Scheduling after Close is a no-op.
func (s *Scheduler) Schedule(chatID, messageID int64, delay time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		metrics.DeletionsTotal.WithLabelValues("skipped").Inc()
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.fire(timer, chatID, messageID)
	})
	s.timers[timer] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("deletion scheduled",
		slog.Int64("chatID", chatID),
		slog.Int64("messageID", messageID),
		slog.Duration("delay", delay),
	)
}

func (s *Scheduler) fire(timer *time.Timer, chatID, messageID int64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		metrics.DeletionsTotal.WithLabelValues("skipped").Inc()
		return
	}
	delete(s.timers, timer)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.deleter.DeleteMessage(ctx, chatID, messageID)
	switch {
	case err == nil:
		metrics.DeletionsTotal.WithLabelValues("deleted").Inc()
		s.logger.Info("message deleted",
			slog.Int64("chatID", chatID),
			slog.Int64("messageID", messageID),
		)
	case isAlreadyGone(err):
		// Terminal success: someone else removed it first.
		metrics.DeletionsTotal.WithLabelValues("already_gone").Inc()
		s.logger.Debug("message already gone",
			slog.Int64("chatID", chatID),
			slog.Int64("messageID", messageID),
		)
	default:
		metrics.DeletionsTotal.WithLabelValues("failed").Inc()
		s.logger.Warn("message deletion failed",
			slog.Int64("chatID", chatID),
			slog.Int64("messageID", messageID),
			slog.String("error", err.Error()),
		)
	}
}

// Close stops all pending timers and turns any timer that already fired into
// a no-op. Pending deletions are abandoned, not flushed: stale messages are
// acceptable after a restart.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for timer := range s.timers {
		timer.Stop()
	}
	s.timers = nil
}

// Pending reports the number of deletions not yet fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func isAlreadyGone(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "message to delete not found") ||
		strings.Contains(lower, "message can't be deleted") ||
		strings.Contains(lower, "not found")
}
