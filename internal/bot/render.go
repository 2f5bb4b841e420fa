package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

const dateLayout = "02.01.2006"

// compose собирает текст и клавиатуру ответа. markup == nil означает без клавиатуры.
func compose(r *dialogue.Reply) (string, any) {
	lang := r.Language
	t := func(key locale.Key, args ...any) string { return locale.T(lang, key, args...) }

	switch r.Prompt {
	case dialogue.PromptWelcome:
		return t(locale.Welcome), mainKeyboard(lang)
	case dialogue.PromptMainMenu:
		return t(locale.MainMenu), mainKeyboard(lang)
	case dialogue.PromptChooseLanguage:
		return t(locale.ChooseLanguage), languageKeyboard()
	case dialogue.PromptChooseCurrency:
		return t(locale.ChooseCurrency), currencyKeyboard(r.Currencies)
	case dialogue.PromptEnterAmount:
		if r.Category != "" {
			return locale.CategoryName(lang, r.Category) + "\n" + t(locale.EnterAmountDesc), nil
		}
		return t(locale.EnterAmountDesc), nil
	case dialogue.PromptTxCurrency:
		return t(locale.ChooseTxCurrency), currencyKeyboard(r.Currencies)
	case dialogue.PromptTransaction:
		return t(locale.Saved) + "\n" + transactionLine(r.Transaction), nil
	case dialogue.PromptTotals:
		return formatTotals(lang, r.Totals), nil
	case dialogue.PromptChooseMonth:
		return t(locale.ChooseMonth), monthKeyboard(lang, r.Year)
	case dialogue.PromptEnterDay:
		return t(locale.EnterDay), nil
	case dialogue.PromptMonthlyReport:
		m := r.Monthly
		return fmt.Sprintf("📅 %s %d\n\n%s", locale.MonthName(lang, m.Month), m.Year, formatTotals(lang, &m.Totals)), nil
	case dialogue.PromptDailyReport:
		return formatDaily(lang, r.Daily), nil

	case dialogue.PromptDebtMenu:
		return t(locale.MenuDebts), debtMenuKeyboard(lang)
	case dialogue.PromptEnterDebt:
		return directionLabel(lang, r.Direction) + "\n" + t(locale.EnterDebtInfo), nil
	case dialogue.PromptDebtSaved:
		return t(locale.Saved) + "\n" + directionLabel(lang, r.Debt.Direction) + ": " + debtLine(r.Debt), nil
	case dialogue.PromptDebtList:
		text := formatDebts(lang, r.Direction, r.Debts)
		if kb := debtListKeyboard(lang, r.Debts); kb != nil {
			return text, *kb
		}
		return text, nil
	case dialogue.PromptDebtActions:
		if r.Debt.Paid {
			return debtLine(r.Debt) + "\n" + t(locale.DebtPaid), nil
		}
		return debtLine(r.Debt), debtActionsKeyboard(lang, r.Debt.ID)
	case dialogue.PromptEnterPayment:
		return debtLine(r.Debt) + "\n" + t(locale.EnterPayment), nil
	case dialogue.PromptDebtPaid:
		if r.Debt.Paid {
			return t(locale.DebtPaid) + "\n" + r.Debt.Person, nil
		}
		return t(locale.DebtRemaining, locale.FormatMoney(r.Debt.Amount, r.Debt.Currency)), nil
	case dialogue.PromptDebtNotFound:
		return t(locale.DebtNotFound), nil

	case dialogue.PromptUtilityMenu:
		return t(locale.MenuUtilities), utilityMenuKeyboard(lang)
	case dialogue.PromptChooseUtility:
		return t(locale.ChooseUtility), utilityCategoryKeyboard(lang)
	case dialogue.PromptUtilitySaved:
		u := r.Utility
		return fmt.Sprintf("%s\n%s: %s (%s)", t(locale.Saved), locale.CategoryName(lang, u.Category),
			locale.FormatMoney(u.Amount, u.Currency), u.Description), nil
	case dialogue.PromptUtilityStats:
		return formatCategoryStats(lang, r.Currency, r.Categories), nil
	case dialogue.PromptUtilityMonth:
		return formatUtilityMonth(lang, r.UtilityMonth), nil

	case dialogue.PromptConverterInput:
		return t(locale.ConverterPrompt), nil
	case dialogue.PromptConverted:
		c := r.Conversion
		return fmt.Sprintf("%s\n%s = %s", t(locale.Converted),
			locale.FormatMoney(c.Amount, c.From), locale.FormatMoney(c.Result, c.To)), nil

	case dialogue.PromptSettingsMenu:
		return t(locale.MenuSettings), settingsKeyboard(lang)
	case dialogue.PromptLanguageChanged:
		return t(locale.LanguageChanged), mainKeyboard(lang)
	case dialogue.PromptCurrencyChanged:
		return t(locale.CurrencyChanged, r.Currency), mainKeyboard(lang)

	case dialogue.PromptInvalid:
		return t(r.Hint), nil
	}
	return t(locale.Failed), nil
}

func transactionLine(tx *model.Transaction) string {
	icon := "💸"
	if tx.Kind == model.KindIncome {
		icon = "💰"
	}
	return fmt.Sprintf("%s %s: %s", icon, tx.Description, locale.FormatMoney(tx.Amount, tx.Currency))
}

func debtLine(d *model.Debt) string {
	return d.Person + ": " + locale.FormatMoney(d.Amount, d.Currency)
}

func directionLabel(lang string, d model.DebtDirection) string {
	if d == model.IOwe {
		return locale.T(lang, locale.IOwe)
	}
	return locale.T(lang, locale.TheyOwe)
}

func formatTotals(lang string, totals *service.Totals) string {
	return fmt.Sprintf("%s: %s\n%s: %s\n%s: %s",
		locale.T(lang, locale.TotalIncome), locale.FormatMoney(totals.Income, totals.Currency),
		locale.T(lang, locale.TotalExpense), locale.FormatMoney(totals.Expense, totals.Currency),
		locale.T(lang, locale.NetProfit), locale.FormatMoney(totals.Net, totals.Currency))
}

func formatDaily(lang string, report *service.DailyReport) string {
	if len(report.Items) == 0 {
		return locale.T(lang, locale.NoData)
	}
	var sb strings.Builder
	sb.WriteString("🔍 " + report.Date.Format(dateLayout) + "\n")
	for _, item := range report.Items {
		icon := "💸"
		if item.Kind == model.KindIncome {
			icon = "💰"
		}
		fmt.Fprintf(&sb, "\n%s %s: %s", icon, item.Description, locale.FormatMoney(item.Amount, report.Currency))
		if item.OriginalCurrency != report.Currency {
			fmt.Fprintf(&sb, " (%s)", locale.FormatMoney(item.OriginalAmount, item.OriginalCurrency))
		}
	}
	return sb.String()
}

// formatDebts без направления помечает каждый долг значком стороны
func formatDebts(lang string, direction model.DebtDirection, debts []model.Debt) string {
	header := locale.T(lang, locale.DebtList)
	if direction != "" {
		header += " - " + directionLabel(lang, direction)
	}
	if len(debts) == 0 {
		return header + "\n\n" + locale.T(lang, locale.NoData)
	}
	var sb strings.Builder
	sb.WriteString(header + "\n")
	for i := range debts {
		line := debtLine(&debts[i])
		if direction == "" {
			line = directionIcon(debts[i].Direction) + " " + line
		}
		fmt.Fprintf(&sb, "\n%d. %s", i+1, line)
	}
	return sb.String()
}

func directionIcon(d model.DebtDirection) string {
	if d == model.IOwe {
		return "🔴"
	}
	return "🟢"
}

func formatCategoryStats(lang, currency string, stats []service.CategoryAmount) string {
	if len(stats) == 0 {
		return locale.T(lang, locale.NoData)
	}
	var sb strings.Builder
	sb.WriteString(locale.T(lang, locale.UtilityStats) + "\n")
	for _, c := range stats {
		fmt.Fprintf(&sb, "\n%s: %s", locale.CategoryName(lang, c.Category), locale.FormatMoney(c.Amount, currency))
	}
	return sb.String()
}

func formatUtilityMonth(lang string, report *service.UtilityMonth) string {
	header := fmt.Sprintf("%s: %s %d", locale.T(lang, locale.UtilityMonthly), locale.MonthName(lang, report.Month), report.Year)
	if len(report.Items) == 0 {
		return header + "\n\n" + locale.T(lang, locale.NoData)
	}
	var sb strings.Builder
	sb.WriteString(header + "\n")
	for _, item := range report.Items {
		fmt.Fprintf(&sb, "\n%s: %s (%s)", locale.CategoryName(lang, item.Category),
			locale.FormatMoney(item.Amount, report.Currency), item.Description)
	}
	fmt.Fprintf(&sb, "\n\n%s: %s", locale.T(lang, locale.Total), locale.FormatMoney(report.Total, report.Currency))
	return sb.String()
}

// deliver отправляет ответ. Отчеты с рекламной паузой сначала показывают
// ссылку на рекламу, а через adDelay то же сообщение заменяется результатом.
func (b *Bot) deliver(ctx context.Context, chatID int64, r *dialogue.Reply) {
	text, markup := compose(r)

	if !r.Interstitial || b.adURL == "" {
		msg := tgbotapi.NewMessage(chatID, text)
		if markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, ok := b.send(ctx, msg); ok {
			b.sendChart(ctx, chatID, r)
		}
		return
	}

	wait := tgbotapi.NewMessage(chatID, locale.T(r.Language, locale.PleaseWait))
	wait.ReplyMarkup = adKeyboard(r.Language, b.adURL, b.adDelay)
	sent, ok := b.send(ctx, wait)
	if !ok {
		return
	}

	reveal := func(ctx context.Context) {
		timer := time.NewTimer(b.adDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-b.quit:
		}

		if _, ok := b.send(ctx, tgbotapi.NewEditMessageText(chatID, sent.MessageID, text)); ok {
			b.sendChart(ctx, chatID, r)
		}
	}

	if b.blockingAd {
		reveal(ctx)
		return
	}

	b.pending.Add(1)
	go func() {
		defer b.pending.Done()
		reveal(context.WithoutCancel(ctx))
	}()
}

func (b *Bot) sendChart(ctx context.Context, chatID int64, r *dialogue.Reply) {
	if b.charts == nil {
		return
	}

	var (
		png []byte
		err error
	)
	switch r.Prompt {
	case dialogue.PromptTotals:
		png, err = b.charts.BalanceChart(r.Language, locale.Label(r.Language, locale.MenuStats), *r.Totals)
	case dialogue.PromptMonthlyReport:
		png, err = b.charts.MonthlyChart(r.Language, r.Monthly)
	case dialogue.PromptUtilityStats:
		png, err = b.charts.CategoryPie(r.Language, r.Categories, r.Currency)
	default:
		return
	}
	if err != nil {
		b.logger.WarnContext(ctx, "failed to render chart",
			log.FieldOperation, log.OpRender,
			log.FieldError, err)
		return
	}
	if png == nil {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: png})
	b.send(ctx, photo)
}
