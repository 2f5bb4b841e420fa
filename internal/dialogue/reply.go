package dialogue

import (
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

// Prompt что показать пользователю после обработки события.
// Тексты и клавиатуры подбирает транспорт.
type Prompt string

const (
	PromptMainMenu        Prompt = "main_menu"
	PromptWelcome         Prompt = "welcome"
	PromptChooseLanguage  Prompt = "choose_language"
	PromptChooseCurrency  Prompt = "choose_currency"
	PromptEnterAmount     Prompt = "enter_amount"
	PromptTxCurrency      Prompt = "tx_currency"
	PromptTransaction     Prompt = "transaction_saved"
	PromptTotals          Prompt = "totals"
	PromptChooseMonth     Prompt = "choose_month"
	PromptEnterDay        Prompt = "enter_day"
	PromptMonthlyReport   Prompt = "monthly_report"
	PromptDailyReport     Prompt = "daily_report"
	PromptDebtMenu        Prompt = "debt_menu"
	PromptEnterDebt       Prompt = "enter_debt"
	PromptDebtSaved       Prompt = "debt_saved"
	PromptDebtList        Prompt = "debt_list"
	PromptDebtActions     Prompt = "debt_actions"
	PromptEnterPayment    Prompt = "enter_payment"
	PromptDebtPaid        Prompt = "debt_paid"
	PromptDebtNotFound    Prompt = "debt_not_found"
	PromptUtilityMenu     Prompt = "utility_menu"
	PromptChooseUtility   Prompt = "choose_utility"
	PromptUtilitySaved    Prompt = "utility_saved"
	PromptUtilityStats    Prompt = "utility_stats"
	PromptUtilityMonth    Prompt = "utility_month"
	PromptConverterInput  Prompt = "converter_input"
	PromptConverted       Prompt = "converted"
	PromptSettingsMenu    Prompt = "settings_menu"
	PromptLanguageChanged Prompt = "language_changed"
	PromptCurrencyChanged Prompt = "currency_changed"
	PromptInvalid         Prompt = "invalid"
	PromptFailed          Prompt = "failed"
)

// Conversion результат разового пересчета
type Conversion struct {
	Amount decimal.Decimal
	From   string
	Result decimal.Decimal
	To     string
}

// Reply ответ машины состояний. Заполнены только поля, нужные для Prompt.
type Reply struct {
	Prompt   Prompt
	Language string
	// Currency базовая валюта пользователя
	Currency string
	Hint     locale.Key

	// Interstitial результат показывается после рекламной паузы
	Interstitial bool

	Currencies []string
	Year       int
	Category   string

	Transaction  *model.Transaction
	Debt         *model.Debt
	Debts        []model.Debt
	Direction    model.DebtDirection
	Utility      *model.Utility
	Totals       *service.Totals
	Monthly      *service.MonthlyReport
	Daily        *service.DailyReport
	Categories   []service.CategoryAmount
	UtilityMonth *service.UtilityMonth
	Conversion   *Conversion
}
