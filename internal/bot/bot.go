// Package bot wires the lookup pipeline to Telegram: command and free-text
// handlers, subscription gating, the loading-message edit flow, scheduled
// result deletion and the admin surface.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/callbackquery"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"

	"github.com/kniranjan1001/telegram-seach-bot/internal/app"
	"github.com/kniranjan1001/telegram-seach-bot/internal/cleanup"
	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
	"github.com/kniranjan1001/telegram-seach-bot/internal/gate"
	"github.com/kniranjan1001/telegram-seach-bot/internal/present"
)

// UserStore is the narrow slice of the user repository the bot needs.
type UserStore interface {
	Save(ctx context.Context, user domain.User) error
	Count(ctx context.Context) (int64, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

// Lookuper runs one free-text query through the lookup pipeline.
type Lookuper interface {
	Lookup(ctx context.Context, query string) domain.LookupResult
}

type Bot struct {
	bot       *gotgbot.Bot
	updater   *ext.Updater
	lookup    Lookuper
	presenter *present.Presenter
	gate      *gate.Gate
	users     UserStore
	cleaner   *cleanup.Scheduler
	cfg       app.Config
	logger    *slog.Logger
	started   time.Time
}

func New(
	tg *gotgbot.Bot,
	lookupService Lookuper,
	presenter *present.Presenter,
	memberGate *gate.Gate,
	users UserStore,
	cleaner *cleanup.Scheduler,
	cfg app.Config,
	logger *slog.Logger,
) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{
		bot:       tg,
		lookup:    lookupService,
		presenter: presenter,
		gate:      memberGate,
		users:     users,
		cleaner:   cleaner,
		cfg:       cfg,
		logger:    logger,
		started:   time.Now(),
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: b.onDispatchError,
	})
	dispatcher.AddHandler(handlers.NewCommand("start", b.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("search", b.handleSearchCommand))
	dispatcher.AddHandler(handlers.NewCommand("broadcast", b.handleBroadcast))
	dispatcher.AddHandler(handlers.NewCommand("userlist", b.handleUserList))
	dispatcher.AddHandler(handlers.NewCommand("health", b.handleHealth))
	dispatcher.AddHandler(handlers.NewCallback(callbackquery.Equal("about"), b.handleAbout))
	dispatcher.AddHandler(handlers.NewCallback(callbackquery.Equal("back_to_start"), b.handleBackToStart))
	dispatcher.AddHandler(handlers.NewMessage(plainText, b.handleFreeText))

	b.updater = ext.NewUpdater(dispatcher, nil)
	return b
}

// plainText selects ordinary text messages; commands have their own handlers.
func plainText(msg *gotgbot.Message) bool {
	return message.Text(msg) && !message.Command(msg)
}

// Run starts receiving updates and blocks until ctx is cancelled. Webhook
// mode is used when configured, long polling otherwise.
func (b *Bot) Run(ctx context.Context) error {
	if b.cfg.WebhookURL != "" {
		if err := b.startWebhook(); err != nil {
			return err
		}
	} else {
		if err := b.startPolling(); err != nil {
			return err
		}
	}
	b.logger.Info("bot started",
		slog.String("username", b.bot.Username),
		slog.Bool("webhook", b.cfg.WebhookURL != ""),
	)

	<-ctx.Done()
	return b.updater.Stop()
}

func (b *Bot) startPolling() error {
	return b.updater.StartPolling(b.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 10 * time.Second,
			},
		},
	})
}

func (b *Bot) startWebhook() error {
	urlPath := b.bot.Token
	if err := b.updater.StartWebhook(b.bot, urlPath, ext.WebhookOpts{
		ListenAddr: b.cfg.WebhookAddr,
	}); err != nil {
		return fmt.Errorf("start webhook listener: %w", err)
	}
	_, err := b.bot.SetWebhook(b.cfg.WebhookURL+"/"+urlPath, &gotgbot.SetWebhookOpts{
		DropPendingUpdates: true,
	})
	if err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}
	return nil
}

func (b *Bot) onDispatchError(_ *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
	attrs := []slog.Attr{slog.String("error", err.Error())}
	if ctx != nil && ctx.EffectiveChat != nil {
		attrs = append(attrs, slog.Int64("chatID", ctx.EffectiveChat.Id))
	}
	b.logger.LogAttrs(context.Background(), slog.LevelError, "update handling failed", attrs...)
	return ext.DispatcherActionNoop
}
