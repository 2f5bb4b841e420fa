package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

// Префиксы callback data. Аргумент идет сразу за префиксом.
var callbackPrefixes = []struct {
	prefix  string
	command dialogue.Command
}{
	{"lang_", dialogue.CmdLanguage},
	{"cur_", dialogue.CmdCurrency},
	{"month_", dialogue.CmdMonth},
	{"util_cat_", dialogue.CmdUtilityCategory},
	{"debt_add_", dialogue.CmdDebtAdd},
	{"debt_list_", dialogue.CmdDebtList},
	{"debt_pay_", dialogue.CmdDebtPay},
	{"debt_full_", dialogue.CmdDebtFull},
	{"debt_part_", dialogue.CmdDebtPartial},
}

// Callback без аргумента
var callbackActions = map[string]dialogue.Command{
	"util_add":     dialogue.CmdUtilityAdd,
	"util_stats":   dialogue.CmdUtilityStats,
	"util_monthly": dialogue.CmdUtilityMonthly,
	"set_language": dialogue.CmdSettingsLanguage,
	"set_currency": dialogue.CmdSettingsCurrency,
}

func callbackData(cmd dialogue.Command, arg string) string {
	for _, p := range callbackPrefixes {
		if p.command == cmd {
			return p.prefix + arg
		}
	}
	for data, c := range callbackActions {
		if c == cmd {
			return data
		}
	}
	return string(cmd)
}

func parseCallback(data string) (dialogue.Command, string, bool) {
	if cmd, ok := callbackActions[data]; ok {
		return cmd, "", true
	}
	for _, p := range callbackPrefixes {
		if arg, ok := strings.CutPrefix(data, p.prefix); ok && arg != "" {
			return p.command, arg, true
		}
	}
	return "", "", false
}

// eventFromMessage переводит сообщение в событие диалога. Кнопки главного меню
// узнаются на любом языке, чтобы смена языка не ломала старую клавиатуру.
func eventFromMessage(message *tgbotapi.Message) (dialogue.Event, bool) {
	if message.From == nil || message.Chat == nil {
		return dialogue.Event{}, false
	}
	ev := dialogue.Event{
		UserID:         message.From.ID,
		ClientLanguage: message.From.LanguageCode,
	}

	if message.IsCommand() {
		if message.Command() == "start" {
			ev.Command = dialogue.CmdStart
		} else {
			ev.Command = dialogue.CmdMenu
		}
		return ev, true
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return dialogue.Event{}, false
	}
	if key, ok := locale.MenuKey(text); ok {
		ev.Command = dialogue.CmdMenu
		ev.Arg = string(key)
		return ev, true
	}
	ev.Command = dialogue.CmdText
	ev.Arg = text
	return ev, true
}

func eventFromCallback(callback *tgbotapi.CallbackQuery) (dialogue.Event, bool) {
	if callback.From == nil {
		return dialogue.Event{}, false
	}
	cmd, arg, ok := parseCallback(callback.Data)
	if !ok {
		return dialogue.Event{}, false
	}
	return dialogue.Event{
		UserID:         callback.From.ID,
		ClientLanguage: callback.From.LanguageCode,
		Command:        cmd,
		Arg:            arg,
	}, true
}

// HandleUpdate обрабатывает одно обновление Telegram
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	var (
		ev     dialogue.Event
		chatID int64
		ok     bool
	)

	switch {
	case update.Message != nil:
		ev, ok = eventFromMessage(update.Message)
		if ok {
			chatID = update.Message.Chat.ID
		}
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		// Отвечаем на callback, чтобы убрать loading indicator
		if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
			b.logger.WarnContext(ctx, "failed to answer callback", log.FieldError, err)
		}
		if callback.Message == nil || callback.Message.Chat == nil {
			return nil
		}
		chatID = callback.Message.Chat.ID
		ev, ok = eventFromCallback(callback)
	}
	if !ok {
		return nil
	}

	b.logger.DebugContext(ctx, "event received",
		log.FieldUserID, ev.UserID,
		log.FieldChatID, chatID,
		log.FieldCommand, string(ev.Command))

	reply, err := b.dialogue.Handle(ctx, ev)
	if err != nil {
		lang := locale.Match(ev.ClientLanguage, locale.Default)
		b.send(ctx, tgbotapi.NewMessage(chatID, locale.T(lang, locale.Failed)))
		return fmt.Errorf("dialogue: %w", err)
	}

	b.deliver(ctx, chatID, reply)
	return nil
}
