package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/currency"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

// ErrUnknownState в хранилище оказался тег, которого нет среди шагов
var ErrUnknownState = errors.New("unknown dialogue state")

// Tracker операции учета, которые вызывают завершающие шаги диалогов
type Tracker interface {
	Now() time.Time

	GetOrCreateUser(ctx context.Context, telegramID int64) (*model.User, error)
	Register(ctx context.Context, telegramID int64, language, currency string) (*model.User, error)
	SetLanguage(ctx context.Context, telegramID int64, language string) (*model.User, error)
	SetCurrency(ctx context.Context, telegramID int64, currency string) (*model.User, error)

	AddTransaction(ctx context.Context, userID int64, kind model.TransactionKind, amount decimal.Decimal, currency, description string) (*model.Transaction, error)
	AddUtility(ctx context.Context, userID int64, category string, amount decimal.Decimal, currency, description string) (*model.Utility, error)

	AddDebt(ctx context.Context, userID int64, person string, amount decimal.Decimal, currency string, direction model.DebtDirection) (*model.Debt, error)
	ListDebts(ctx context.Context, userID int64, direction model.DebtDirection) ([]model.Debt, error)
	GetDebt(ctx context.Context, userID int64, debtID string) (*model.Debt, error)
	PayDebt(ctx context.Context, userID int64, debtID string, amount *decimal.Decimal) (*model.Debt, error)

	Totals(ctx context.Context, userID int64, target string) (*service.Totals, error)
	MonthlyReport(ctx context.Context, userID int64, year int, month time.Month, target string) (*service.MonthlyReport, error)
	DailyReport(ctx context.Context, userID int64, year int, month time.Month, day int, target string) (*service.DailyReport, error)
	SortedCategoryStats(ctx context.Context, userID int64, target string) ([]service.CategoryAmount, error)
	UtilityMonth(ctx context.Context, userID int64, year int, month time.Month, target string) (*service.UtilityMonth, error)

	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
}

// Machine ведет многошаговые диалоги. События одного пользователя
// обрабатываются строго по очереди, разных пользователей параллельно.
type Machine struct {
	tracker         Tracker
	store           Store
	locks           *userLocks
	defaultLanguage string
	logger          *log.Logger
}

type Option func(*Machine)

func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithDefaultLanguage язык подсказок до регистрации, если язык клиента не поддерживается
func WithDefaultLanguage(lang string) Option {
	return func(m *Machine) {
		if locale.Supported(lang) {
			m.defaultLanguage = lang
		}
	}
}

func NewMachine(tracker Tracker, store Store, opts ...Option) *Machine {
	m := &Machine{
		tracker:         tracker,
		store:           store,
		locks:           newUserLocks(),
		defaultLanguage: locale.Default,
		logger:          log.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent(log.ComponentDialogue)
	return m
}

// turn одно событие вместе с контекстом, в котором оно обрабатывается
type turn struct {
	ctx     context.Context
	ev      Event
	user    *model.User
	session Session
}

func (t *turn) lang(fallback string) string {
	if t.user != nil && t.user.Language != "" {
		return t.user.Language
	}
	if t.session.Data.Language != "" {
		return t.session.Data.Language
	}
	return locale.Match(t.ev.ClientLanguage, fallback)
}

func (t *turn) base() string {
	if t.user == nil {
		return ""
	}
	return t.user.Currency
}

// Handle обрабатывает одно событие пользователя и возвращает, что ему показать.
// Ошибка возвращается только для испорченной сессии, все остальное выражено в Reply.
func (m *Machine) Handle(ctx context.Context, ev Event) (*Reply, error) {
	unlock := m.locks.lock(ev.UserID)
	defer unlock()

	session, err := m.store.Get(ctx, ev.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.State.Known() {
		m.save(ctx, ev.UserID, Session{})
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, session.State)
	}

	t := &turn{ctx: ctx, ev: ev, session: session}
	user, err := m.tracker.GetOrCreateUser(ctx, ev.UserID)
	if err != nil {
		reply, next := m.failed(t, "load user", err)
		m.save(ctx, ev.UserID, next)
		return reply, nil
	}
	t.user = user

	reply, next := m.route(t)
	if next.State != session.State {
		m.logger.DebugContext(ctx, "dialogue transition",
			log.FieldUserID, ev.UserID,
			log.FieldCommand, string(ev.Command),
			"from", string(session.State),
			"to", string(next.State))
	}
	m.save(ctx, ev.UserID, next)
	return reply, nil
}

func (m *Machine) save(ctx context.Context, userID int64, session Session) {
	if err := m.store.Put(ctx, userID, session); err != nil {
		m.logger.ErrorContext(ctx, "failed to save session",
			log.FieldUserID, userID,
			log.FieldState, string(session.State),
			log.FieldError, err)
	}
}

func (m *Machine) route(t *turn) (*Reply, Session) {
	if t.ev.Command == CmdStart {
		return m.start(t)
	}
	if !t.user.Registered() {
		switch t.session.State {
		case StateRegistrationLanguage, StateRegistrationCurrency:
			if !t.ev.Command.TopLevel() {
				return m.step(t)
			}
		}
		return m.beginRegistration(t)
	}
	if t.ev.Command.TopLevel() {
		return m.topLevel(t)
	}
	return m.step(t)
}

func (m *Machine) reply(t *turn, prompt Prompt) *Reply {
	return &Reply{
		Prompt:   prompt,
		Language: t.lang(m.defaultLanguage),
		Currency: t.base(),
	}
}

// invalid оставляет сессию как есть и показывает подсказку
func (m *Machine) invalid(t *turn, err error) (*Reply, Session) {
	r := m.reply(t, PromptInvalid)
	r.Hint = locale.HintUseKeyboard
	var verr *ValidationError
	if errors.As(err, &verr) {
		r.Hint = verr.Hint
	}
	return r, t.session
}

// failed завершающий шаг не удался; сессия все равно сбрасывается
func (m *Machine) failed(t *turn, op string, err error) (*Reply, Session) {
	m.logger.ErrorContext(t.ctx, "dialogue action failed",
		log.FieldUserID, t.ev.UserID,
		log.FieldState, string(t.session.State),
		log.FieldOperation, op,
		log.FieldError, err)
	return m.reply(t, PromptFailed), Session{}
}

func (m *Machine) start(t *turn) (*Reply, Session) {
	if t.user.Registered() {
		return m.reply(t, PromptWelcome), Session{}
	}
	return m.beginRegistration(t)
}

func (m *Machine) beginRegistration(t *turn) (*Reply, Session) {
	t.session = Session{}
	r := m.reply(t, PromptChooseLanguage)
	return r, Session{State: StateRegistrationLanguage}
}

func (m *Machine) chooseMonth(t *turn, kind ReportKind) (*Reply, Session) {
	r := m.reply(t, PromptChooseMonth)
	r.Year = m.tracker.Now().Year()
	return r, Session{State: StateReportMonth, Data: Data{Report: kind}}
}

// topLevel действия меню; любая незавершенная сессия при этом сбрасывается
func (m *Machine) topLevel(t *turn) (*Reply, Session) {
	ctx, userID, base := t.ctx, t.ev.UserID, t.base()
	t.session = Session{}

	switch t.ev.Command {
	case CmdMenu:
		return m.menu(t)

	case CmdDebtAdd:
		direction := model.DebtDirection(t.ev.Arg)
		if !direction.Valid() {
			return m.reply(t, PromptDebtMenu), Session{}
		}
		r := m.reply(t, PromptEnterDebt)
		r.Direction = direction
		return r, Session{State: StateDebtInput, Data: Data{Direction: direction}}

	case CmdDebtList:
		var direction model.DebtDirection
		if t.ev.Arg != DebtListAll {
			direction = model.DebtDirection(t.ev.Arg)
			if !direction.Valid() {
				return m.reply(t, PromptDebtMenu), Session{}
			}
		}
		debts, err := m.tracker.ListDebts(ctx, userID, direction)
		if err != nil {
			return m.failed(t, "list debts", err)
		}
		r := m.reply(t, PromptDebtList)
		r.Direction = direction
		r.Debts = debts
		return r, Session{}

	case CmdDebtPay, CmdDebtPartial:
		debt, err := m.tracker.GetDebt(ctx, userID, t.ev.Arg)
		if errors.Is(err, model.ErrNotFound) {
			return m.reply(t, PromptDebtNotFound), Session{}
		}
		if err != nil {
			return m.failed(t, "get debt", err)
		}
		if t.ev.Command == CmdDebtPay || debt.Paid {
			r := m.reply(t, PromptDebtActions)
			r.Debt = debt
			return r, Session{}
		}
		r := m.reply(t, PromptEnterPayment)
		r.Debt = debt
		return r, Session{State: StateDebtPayment, Data: Data{DebtID: debt.ID}}

	case CmdDebtFull:
		return m.payDebt(t, t.ev.Arg, nil)

	case CmdUtilityAdd:
		return m.reply(t, PromptChooseUtility), Session{State: StateUtilityCategory}

	case CmdUtilityStats:
		stats, err := m.tracker.SortedCategoryStats(ctx, userID, base)
		if err != nil {
			return m.failed(t, "utility stats", err)
		}
		r := m.reply(t, PromptUtilityStats)
		r.Categories = stats
		r.Interstitial = true
		return r, Session{}

	case CmdUtilityMonthly:
		return m.chooseMonth(t, ReportUtility)

	case CmdSettingsLanguage:
		return m.reply(t, PromptChooseLanguage), Session{State: StateSettingsLanguage}

	case CmdSettingsCurrency:
		r := m.reply(t, PromptChooseCurrency)
		r.Currencies = currency.Main
		return r, Session{State: StateSettingsCurrency}
	}

	return m.reply(t, PromptMainMenu), Session{}
}

func (m *Machine) menu(t *turn) (*Reply, Session) {
	switch locale.Key(t.ev.Arg) {
	case locale.MenuExpense:
		return m.reply(t, PromptEnterAmount), Session{State: StateTransactionAmount, Data: Data{Kind: model.KindExpense}}
	case locale.MenuIncome:
		return m.reply(t, PromptEnterAmount), Session{State: StateTransactionAmount, Data: Data{Kind: model.KindIncome}}
	case locale.MenuStats:
		totals, err := m.tracker.Totals(t.ctx, t.ev.UserID, t.base())
		if err != nil {
			return m.failed(t, "totals", err)
		}
		r := m.reply(t, PromptTotals)
		r.Totals = totals
		r.Interstitial = true
		return r, Session{}
	case locale.MenuMonthly:
		return m.chooseMonth(t, ReportMonthly)
	case locale.MenuDaily:
		return m.chooseMonth(t, ReportDaily)
	case locale.MenuDebts:
		return m.reply(t, PromptDebtMenu), Session{}
	case locale.MenuUtilities:
		return m.reply(t, PromptUtilityMenu), Session{}
	case locale.MenuConverter:
		return m.reply(t, PromptConverterInput), Session{State: StateConvertInput}
	case locale.MenuSettings:
		return m.reply(t, PromptSettingsMenu), Session{}
	}
	return m.reply(t, PromptMainMenu), Session{}
}

// currencyArg валюта из кнопки или набранная вручную
func currencyArg(ev Event) (string, bool) {
	switch ev.Command {
	case CmdCurrency, CmdText:
		return currency.Normalize(ev.Arg)
	}
	return "", false
}

// step обрабатывает ввод на текущем шаге сценария
func (m *Machine) step(t *turn) (*Reply, Session) {
	ctx, ev, data := t.ctx, t.ev, t.session.Data

	switch t.session.State {
	case StateIdle:
		return m.reply(t, PromptMainMenu), Session{}

	case StateRegistrationLanguage:
		if ev.Command != CmdLanguage || !locale.Supported(ev.Arg) {
			return m.invalid(t, nil)
		}
		next := Session{State: StateRegistrationCurrency, Data: Data{Language: ev.Arg}}
		t.session = next
		r := m.reply(t, PromptChooseCurrency)
		r.Currencies = currency.Main
		return r, next

	case StateRegistrationCurrency:
		code, ok := currencyArg(ev)
		if !ok {
			return m.invalid(t, invalid(locale.HintCurrency))
		}
		user, err := m.tracker.Register(ctx, ev.UserID, t.lang(m.defaultLanguage), code)
		if err != nil {
			return m.failed(t, "register", err)
		}
		t.user = user
		return m.reply(t, PromptWelcome), Session{}

	case StateSettingsLanguage:
		if ev.Command != CmdLanguage || !locale.Supported(ev.Arg) {
			return m.invalid(t, nil)
		}
		user, err := m.tracker.SetLanguage(ctx, ev.UserID, ev.Arg)
		if err != nil {
			return m.failed(t, "set language", err)
		}
		t.user = user
		return m.reply(t, PromptLanguageChanged), Session{}

	case StateSettingsCurrency:
		code, ok := currencyArg(ev)
		if !ok {
			return m.invalid(t, invalid(locale.HintCurrency))
		}
		user, err := m.tracker.SetCurrency(ctx, ev.UserID, code)
		if err != nil {
			return m.failed(t, "set currency", err)
		}
		t.user = user
		return m.reply(t, PromptCurrencyChanged), Session{}

	case StateTransactionAmount:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintAmountDesc))
		}
		amount, description, err := ParseAmountDescription(ev.Arg, DefaultDescription)
		if err != nil {
			return m.invalid(t, err)
		}
		data.Amount = amount
		data.Description = description
		r := m.reply(t, PromptTxCurrency)
		r.Currencies = currency.TransactionChoices(t.base())
		return r, Session{State: StateTransactionCurrency, Data: data}

	case StateTransactionCurrency:
		code, ok := currencyArg(ev)
		if !ok {
			return m.invalid(t, invalid(locale.HintCurrency))
		}
		tx, err := m.tracker.AddTransaction(ctx, ev.UserID, data.Kind, data.Amount, code, data.Description)
		if err != nil {
			return m.failed(t, "add transaction", err)
		}
		r := m.reply(t, PromptTransaction)
		r.Transaction = tx
		return r, Session{}

	case StateDebtInput:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintDebt))
		}
		person, amount, code, err := ParseDebt(ev.Arg, t.base())
		if err != nil {
			return m.invalid(t, err)
		}
		debt, err := m.tracker.AddDebt(ctx, ev.UserID, person, amount, code, data.Direction)
		if err != nil {
			return m.failed(t, "add debt", err)
		}
		r := m.reply(t, PromptDebtSaved)
		r.Debt = debt
		return r, Session{}

	case StateDebtPayment:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintPayment))
		}
		amount, err := ParsePayment(ev.Arg)
		if err != nil {
			return m.invalid(t, err)
		}
		return m.payDebt(t, data.DebtID, &amount)

	case StateUtilityCategory:
		if ev.Command != CmdUtilityCategory || !locale.IsUtilityCategory(ev.Arg) {
			return m.invalid(t, nil)
		}
		r := m.reply(t, PromptEnterAmount)
		r.Category = ev.Arg
		return r, Session{State: StateUtilityAmount, Data: Data{Category: ev.Arg}}

	case StateUtilityAmount:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintAmountDesc))
		}
		label := locale.CategoryLabel(t.lang(m.defaultLanguage), data.Category)
		amount, description, err := ParseAmountDescription(ev.Arg, label)
		if err != nil {
			return m.invalid(t, err)
		}
		utility, err := m.tracker.AddUtility(ctx, ev.UserID, data.Category, amount, t.base(), description)
		if err != nil {
			return m.failed(t, "add utility", err)
		}
		r := m.reply(t, PromptUtilitySaved)
		r.Utility = utility
		return r, Session{}

	case StateReportMonth:
		if ev.Command != CmdMonth {
			return m.invalid(t, nil)
		}
		year, month, ok := ParseMonth(ev.Arg)
		if !ok {
			return m.invalid(t, nil)
		}
		return m.monthChosen(t, year, time.Month(month))

	case StateReportDay:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintDay))
		}
		day, err := ParseDay(ev.Arg)
		if err != nil {
			return m.invalid(t, err)
		}
		report, err := m.tracker.DailyReport(ctx, ev.UserID, data.Year, data.Month, day, t.base())
		if err != nil {
			return m.failed(t, "daily report", err)
		}
		r := m.reply(t, PromptDailyReport)
		r.Daily = report
		return r, Session{}

	case StateConvertInput:
		if ev.Command != CmdText {
			return m.invalid(t, invalid(locale.HintConversion))
		}
		amount, from, err := ParseConversion(ev.Arg)
		if err != nil {
			return m.invalid(t, err)
		}
		r := m.reply(t, PromptConverted)
		r.Conversion = &Conversion{
			Amount: amount,
			From:   from,
			Result: m.tracker.Convert(ctx, amount, from, t.base()),
			To:     t.base(),
		}
		return r, Session{}
	}

	return m.reply(t, PromptMainMenu), Session{}
}

func (m *Machine) monthChosen(t *turn, year int, month time.Month) (*Reply, Session) {
	ctx, userID, base := t.ctx, t.ev.UserID, t.base()

	switch t.session.Data.Report {
	case ReportMonthly:
		report, err := m.tracker.MonthlyReport(ctx, userID, year, month, base)
		if err != nil {
			return m.failed(t, "monthly report", err)
		}
		r := m.reply(t, PromptMonthlyReport)
		r.Monthly = report
		r.Interstitial = true
		return r, Session{}

	case ReportDaily:
		r := m.reply(t, PromptEnterDay)
		r.Year = year
		return r, Session{State: StateReportDay, Data: Data{Report: ReportDaily, Year: year, Month: month}}

	case ReportUtility:
		report, err := m.tracker.UtilityMonth(ctx, userID, year, month, base)
		if err != nil {
			return m.failed(t, "utility month", err)
		}
		r := m.reply(t, PromptUtilityMonth)
		r.UtilityMonth = report
		r.Interstitial = true
		return r, Session{}
	}

	return m.reply(t, PromptMainMenu), Session{}
}

// payDebt погашает долг полностью (amount == nil) или частично
func (m *Machine) payDebt(t *turn, debtID string, amount *decimal.Decimal) (*Reply, Session) {
	debt, err := m.tracker.PayDebt(t.ctx, t.ev.UserID, debtID, amount)
	if errors.Is(err, model.ErrNotFound) {
		return m.reply(t, PromptDebtNotFound), Session{}
	}
	if err != nil {
		return m.failed(t, "pay debt", err)
	}
	r := m.reply(t, PromptDebtPaid)
	r.Debt = debt
	return r, Session{}
}
