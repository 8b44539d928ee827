package bot

import (
	"github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/kniranjan1001/telegram-seach-bot/internal/domain"
)

// resultKeyboard turns a presentable's actions into an inline keyboard with
// one button per row, preserving order.
func resultKeyboard(p domain.Presentable) gotgbot.InlineKeyboardMarkup {
	rows := make([][]gotgbot.InlineKeyboardButton, 0, len(p.Actions))
	for _, action := range p.Actions {
		rows = append(rows, []gotgbot.InlineKeyboardButton{{
			Text: action.Label,
			Url:  action.Destination,
		}})
	}
	return gotgbot.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (b *Bot) startKeyboard() gotgbot.InlineKeyboardMarkup {
	rows := [][]gotgbot.InlineKeyboardButton{
		{{Text: "About", CallbackData: "about"}},
	}
	if b.cfg.RequestURL != "" {
		rows = append(rows, []gotgbot.InlineKeyboardButton{
			{Text: "Request a movie", Url: b.cfg.RequestURL},
		})
	}
	return gotgbot.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func (b *Bot) joinKeyboard() gotgbot.InlineKeyboardMarkup {
	rows := [][]gotgbot.InlineKeyboardButton{}
	if b.cfg.ChannelURL != "" {
		rows = append(rows, []gotgbot.InlineKeyboardButton{
			{Text: "Join the channel", Url: b.cfg.ChannelURL},
		})
	}
	return gotgbot.InlineKeyboardMarkup{InlineKeyboard: rows}
}
