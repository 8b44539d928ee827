package bot

import (
	"context"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

// TelegramAPI adapts the raw client to the narrow interfaces the gate, the
// cleanup scheduler and the broadcaster consume. The client itself takes no
// context, so context deadlines are translated into per-request timeouts.
type TelegramAPI struct {
	bot *gotgbot.Bot
}

func NewTelegramAPI(b *gotgbot.Bot) TelegramAPI {
	return TelegramAPI{bot: b}
}

func (a TelegramAPI) MemberStatus(ctx context.Context, chatID, userID int64) (string, error) {
	member, err := a.bot.GetChatMember(chatID, userID, &gotgbot.GetChatMemberOpts{
		RequestOpts: requestOpts(ctx),
	})
	if err != nil {
		return "", err
	}
	return member.MergeChatMember().Status, nil
}

func (a TelegramAPI) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	_, err := a.bot.DeleteMessage(chatID, messageID, &gotgbot.DeleteMessageOpts{
		RequestOpts: requestOpts(ctx),
	})
	return err
}

// Send delivers one broadcast message to a user's private chat.
func (a TelegramAPI) Send(ctx context.Context, userID int64, text string) error {
	_, err := a.bot.SendMessage(userID, text, &gotgbot.SendMessageOpts{
		RequestOpts: requestOpts(ctx),
	})
	return err
}

func requestOpts(ctx context.Context) *gotgbot.RequestOpts {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return &gotgbot.RequestOpts{Timeout: remaining}
}
