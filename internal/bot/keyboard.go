package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

func mainKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(locale.MenuKeys); i += 2 {
		row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(locale.T(lang, locale.MenuKeys[i])))
		if i+1 < len(locale.MenuKeys) {
			row = append(row, tgbotapi.NewKeyboardButton(locale.T(lang, locale.MenuKeys[i+1])))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

// inlineGrid раскладывает кнопки по perRow в ряд
func inlineGrid(buttons []tgbotapi.InlineKeyboardButton, perRow int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for len(buttons) > 0 {
		n := min(perRow, len(buttons))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons[:n]...))
		buttons = buttons[n:]
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func button(text string, cmd dialogue.Command, arg string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, callbackData(cmd, arg))
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(locale.Languages))
	for _, code := range locale.Languages {
		buttons = append(buttons, button(locale.LanguageName(code), dialogue.CmdLanguage, code))
	}
	return inlineGrid(buttons, 1)
}

func currencyKeyboard(codes []string) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(codes))
	for _, code := range codes {
		buttons = append(buttons, button(code, dialogue.CmdCurrency, code))
	}
	return inlineGrid(buttons, 3)
}

func monthKeyboard(lang string, year int) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, 12)
	for m := time.January; m <= time.December; m++ {
		buttons = append(buttons, button(locale.MonthName(lang, m), dialogue.CmdMonth, fmt.Sprintf("%d-%02d", year, int(m))))
	}
	return inlineGrid(buttons, 3)
}

func debtMenuKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("➕ "+locale.T(lang, locale.TheyOwe), dialogue.CmdDebtAdd, string(model.TheyOwe)),
			button("➕ "+locale.T(lang, locale.IOwe), dialogue.CmdDebtAdd, string(model.IOwe)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("📜 "+locale.Label(lang, locale.TheyOwe), dialogue.CmdDebtList, string(model.TheyOwe)),
			button("📜 "+locale.Label(lang, locale.IOwe), dialogue.CmdDebtList, string(model.IOwe)),
		),
		tgbotapi.NewInlineKeyboardRow(
			button(locale.T(lang, locale.DebtList), dialogue.CmdDebtList, dialogue.DebtListAll),
		),
	)
}

func debtListKeyboard(lang string, debts []model.Debt) *tgbotapi.InlineKeyboardMarkup {
	if len(debts) == 0 {
		return nil
	}
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(debts))
	for _, d := range debts {
		buttons = append(buttons, button(locale.T(lang, locale.PayDebt)+": "+d.Person, dialogue.CmdDebtPay, d.ID))
	}
	kb := inlineGrid(buttons, 1)
	return &kb
}

func debtActionsKeyboard(lang string, debtID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		button(locale.T(lang, locale.FullPay), dialogue.CmdDebtFull, debtID),
		button(locale.T(lang, locale.PartialPay), dialogue.CmdDebtPartial, debtID),
	))
}

func utilityMenuKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return inlineGrid([]tgbotapi.InlineKeyboardButton{
		button(locale.T(lang, locale.AddUtility), dialogue.CmdUtilityAdd, ""),
		button(locale.T(lang, locale.UtilityMonthly), dialogue.CmdUtilityMonthly, ""),
		button(locale.T(lang, locale.UtilityStats), dialogue.CmdUtilityStats, ""),
	}, 1)
}

func utilityCategoryKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(locale.UtilityCategories))
	for _, c := range locale.UtilityCategories {
		buttons = append(buttons, button(locale.CategoryName(lang, c), dialogue.CmdUtilityCategory, c))
	}
	return inlineGrid(buttons, 2)
}

func settingsKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		button(locale.T(lang, locale.SettingsLanguage), dialogue.CmdSettingsLanguage, ""),
		button(locale.T(lang, locale.SettingsCurrency), dialogue.CmdSettingsCurrency, ""),
	))
}

func adKeyboard(lang, url string, delay time.Duration) tgbotapi.InlineKeyboardMarkup {
	seconds := int(delay.Round(time.Second) / time.Second)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL(locale.T(lang, locale.WatchAd, seconds), url),
	))
}
