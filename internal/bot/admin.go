package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

const broadcastTimeout = 10 * time.Minute

func (b *Bot) isAdmin(user *gotgbot.User) bool {
	return user != nil && b.cfg.AdminUserID != 0 && user.Id == b.cfg.AdminUserID
}

func (b *Bot) handleBroadcast(tg *gotgbot.Bot, ctx *ext.Context) error {
	if !b.isAdmin(ctx.EffectiveUser) {
		return nil
	}
	text := strings.TrimSpace(commandPayload(ctx.EffectiveMessage.Text))
	if text == "" {
		_, err := ctx.EffectiveMessage.Reply(tg, "Usage: /broadcast <message>", nil)
		return err
	}
	if b.users == nil {
		_, err := ctx.EffectiveMessage.Reply(tg, "User store is not configured.", nil)
		return err
	}

	bctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
	defer cancel()

	ids, err := b.users.ListIDs(bctx)
	if err != nil {
		return fmt.Errorf("list broadcast recipients: %w", err)
	}

	broadcaster := NewBroadcaster(NewTelegramAPI(tg), b.logger)
	sent, blocked, failed := broadcaster.Broadcast(bctx, ids, text)
	b.logger.Info("broadcast finished",
		slog.Int("recipients", len(ids)),
		slog.Int("sent", sent),
		slog.Int("blocked", blocked),
		slog.Int("failed", failed),
	)

	_, err = ctx.EffectiveMessage.Reply(tg, fmt.Sprintf(
		"Broadcast done: %d sent, %d blocked, %d failed (of %d users).",
		sent, blocked, failed, len(ids)), nil)
	return err
}

func (b *Bot) handleUserList(tg *gotgbot.Bot, ctx *ext.Context) error {
	if !b.isAdmin(ctx.EffectiveUser) {
		return nil
	}
	if b.users == nil {
		_, err := ctx.EffectiveMessage.Reply(tg, "User store is not configured.", nil)
		return err
	}
	cctx, cancel := context.WithTimeout(context.Background(), registerTimeout)
	defer cancel()

	count, err := b.users.Count(cctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	_, err = ctx.EffectiveMessage.Reply(tg, fmt.Sprintf("Registered users: %d", count), nil)
	return err
}

func (b *Bot) handleHealth(tg *gotgbot.Bot, ctx *ext.Context) error {
	uptime := time.Since(b.started).Round(time.Second)
	_, err := ctx.EffectiveMessage.Reply(tg, fmt.Sprintf("Alive. Uptime: %s", uptime), nil)
	return err
}
