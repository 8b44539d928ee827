package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

const (
	searchTimeout   = 45 * time.Second
	registerTimeout = 5 * time.Second

	aboutText = "I search a community-maintained movie catalog and hand back download links. " +
		"Send me a movie name (or use /search <name>) and pick a result. " +
		"Results are removed after a short while, so save what you need."

	usageHint = "Send me a movie name to search, for example: Jungle Cruise"
)

func (b *Bot) handleStart(tg *gotgbot.Bot, ctx *ext.Context) error {
	b.registerUser(ctx.EffectiveUser)

	name := "there"
	if ctx.EffectiveUser != nil && ctx.EffectiveUser.FirstName != "" {
		name = ctx.EffectiveUser.FirstName
	}
	text := fmt.Sprintf("Hi %s! Send me a movie name and I'll look it up in the catalog for you.", name)
	markup := b.startKeyboard()
	_, err := ctx.EffectiveMessage.Reply(tg, text, &gotgbot.SendMessageOpts{
		ReplyMarkup: markup,
	})
	return err
}

func (b *Bot) handleAbout(tg *gotgbot.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	_, _, err := tg.EditMessageText(aboutText, &gotgbot.EditMessageTextOpts{
		ChatId:    cq.Message.GetChat().Id,
		MessageId: cq.Message.GetMessageId(),
		ReplyMarkup: gotgbot.InlineKeyboardMarkup{
			InlineKeyboard: [][]gotgbot.InlineKeyboardButton{
				{{Text: "Back", CallbackData: "back_to_start"}},
			},
		},
	})
	if err != nil {
		return err
	}
	_, err = cq.Answer(tg, nil)
	return err
}

func (b *Bot) handleBackToStart(tg *gotgbot.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	name := "there"
	if cq.From.FirstName != "" {
		name = cq.From.FirstName
	}
	text := fmt.Sprintf("Hi %s! Send me a movie name and I'll look it up in the catalog for you.", name)
	markup := b.startKeyboard()
	_, _, err := tg.EditMessageText(text, &gotgbot.EditMessageTextOpts{
		ChatId:      cq.Message.GetChat().Id,
		MessageId:   cq.Message.GetMessageId(),
		ReplyMarkup: markup,
	})
	if err != nil {
		return err
	}
	_, err = cq.Answer(tg, nil)
	return err
}

func (b *Bot) handleSearchCommand(tg *gotgbot.Bot, ctx *ext.Context) error {
	query := strings.TrimSpace(commandPayload(ctx.EffectiveMessage.Text))
	return b.runSearch(tg, ctx, query)
}

func (b *Bot) handleFreeText(tg *gotgbot.Bot, ctx *ext.Context) error {
	query := strings.TrimSpace(ctx.EffectiveMessage.Text)
	return b.runSearch(tg, ctx, query)
}

// runSearch is the main user flow: register, gate, show a loading message,
// run the lookup, edit the loading message into the result, and schedule the
// result for deletion.
func (b *Bot) runSearch(tg *gotgbot.Bot, ctx *ext.Context, query string) error {
	b.registerUser(ctx.EffectiveUser)

	searchCtx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	if ctx.EffectiveUser != nil && !b.gate.IsSubscribed(searchCtx, ctx.EffectiveUser.Id) {
		_, err := ctx.EffectiveMessage.Reply(tg,
			"You need to join our channel before searching.",
			&gotgbot.SendMessageOpts{ReplyMarkup: b.joinKeyboard()},
		)
		return err
	}

	if query == "" {
		_, err := ctx.EffectiveMessage.Reply(tg, usageHint, nil)
		return err
	}

	chatID := ctx.EffectiveChat.Id
	_, _ = tg.SendChatAction(chatID, "typing", nil)

	loading, err := ctx.EffectiveMessage.Reply(tg,
		fmt.Sprintf("Searching for %q…", query), nil)
	if err != nil {
		return fmt.Errorf("send loading message: %w", err)
	}

	result := b.lookup.Lookup(searchCtx, query)
	presentable := b.presenter.Present(result)

	if presentable.IsList() {
		_, _, err = tg.EditMessageText(
			fmt.Sprintf("Results for %q:", query),
			&gotgbot.EditMessageTextOpts{
				ChatId:      chatID,
				MessageId:   loading.MessageId,
				ReplyMarkup: resultKeyboard(presentable),
			},
		)
	} else {
		_, _, err = tg.EditMessageText(presentable.Advisory, &gotgbot.EditMessageTextOpts{
			ChatId:    chatID,
			MessageId: loading.MessageId,
		})
	}
	if err != nil {
		return fmt.Errorf("edit result message: %w", err)
	}

	b.cleaner.Schedule(chatID, loading.MessageId, b.cfg.DeleteAfter)
	return nil
}

// registerUser records the user on first contact. Failures are logged and
// swallowed: registration must never block a search.
func (b *Bot) registerUser(user *gotgbot.User) {
	if user == nil || b.users == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), registerTimeout)
	defer cancel()

	err := b.users.Save(ctx, domain.User{
		ID:        user.Id,
		Username:  user.Username,
		FirstName: user.FirstName,
	})
	if err != nil {
		b.logger.Warn("user registration failed",
			slog.Int64("userID", user.Id),
			slog.String("error", err.Error()),
		)
	}
}

// commandPayload strips the leading /command token, leaving its arguments.
func commandPayload(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}
	_, rest, found := strings.Cut(text, " ")
	if !found {
		return ""
	}
	return rest
}
