package dialogue

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

// State шаг многошагового диалога. Пустая строка означает отсутствие активного сценария.
type State string

const (
	StateIdle State = ""

	StateRegistrationLanguage State = "registration.language"
	StateRegistrationCurrency State = "registration.currency"

	StateSettingsLanguage State = "settings.language"
	StateSettingsCurrency State = "settings.currency"

	StateTransactionAmount   State = "transaction.amount"
	StateTransactionCurrency State = "transaction.currency"

	StateDebtInput   State = "debt.input"
	StateDebtPayment State = "debt.payment"

	StateUtilityCategory State = "utility.category"
	StateUtilityAmount   State = "utility.amount"

	StateReportMonth State = "report.month"
	StateReportDay   State = "report.day"

	StateConvertInput State = "convert.input"
)

var knownStates = map[State]bool{
	StateIdle:                 true,
	StateRegistrationLanguage: true,
	StateRegistrationCurrency: true,
	StateSettingsLanguage:     true,
	StateSettingsCurrency:     true,
	StateTransactionAmount:    true,
	StateTransactionCurrency:  true,
	StateDebtInput:            true,
	StateDebtPayment:          true,
	StateUtilityCategory:      true,
	StateUtilityAmount:        true,
	StateReportMonth:          true,
	StateReportDay:            true,
	StateConvertInput:         true,
}

// Known сообщает, относится ли тег к известным шагам
func (s State) Known() bool {
	return knownStates[s]
}

// ReportKind какой отчет строится после выбора месяца
type ReportKind string

const (
	ReportMonthly ReportKind = "monthly"
	ReportDaily   ReportKind = "daily"
	ReportUtility ReportKind = "utility"
)

// Data поля, собранные на предыдущих шагах сценария
type Data struct {
	Kind        model.TransactionKind `json:"kind,omitempty"`
	Amount      decimal.Decimal       `json:"amount"`
	Description string                `json:"description,omitempty"`
	Language    string                `json:"language,omitempty"`
	Direction   model.DebtDirection   `json:"direction,omitempty"`
	DebtID      string                `json:"debt_id,omitempty"`
	Category    string                `json:"category,omitempty"`
	Report      ReportKind            `json:"report,omitempty"`
	Year        int                   `json:"year,omitempty"`
	Month       time.Month            `json:"month,omitempty"`
}

// Session состояние диалога одного пользователя
type Session struct {
	State State `json:"state"`
	Data  Data  `json:"data"`
}

// Idle сообщает, что у пользователя нет активного сценария
func (s Session) Idle() bool {
	return s.State == StateIdle
}
