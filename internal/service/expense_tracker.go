package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

// Repository определяет интерфейс для работы с хранилищем данных
type Repository interface {
	GetUser(ctx context.Context, telegramID int64) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error)
	CreateDebt(ctx context.Context, debt *model.Debt) error
	GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error)
	GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error)
	UpdateDebt(ctx context.Context, debt *model.Debt) error
	CreateUtility(ctx context.Context, utility *model.Utility) error
	GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error)
}

// Converter переводит сумму в другую валюту
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal
}

// ExpenseTracker предоставляет методы для работы с финансовыми данными
type ExpenseTracker struct {
	repo      Repository
	converter Converter
	now       func() time.Time
	logger    *log.Logger
}

type Option func(*ExpenseTracker)

// WithClock подменяет текущее время, используется в тестах
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseTracker) { s.now = now }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *ExpenseTracker) { s.logger = logger.WithComponent(log.ComponentService) }
}

// NewExpenseTracker создает новый экземпляр ExpenseTracker
func NewExpenseTracker(repo Repository, converter Converter, opts ...Option) *ExpenseTracker {
	s := &ExpenseTracker{
		repo:      repo,
		converter: converter,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    log.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now текущее время трекера
func (s *ExpenseTracker) Now() time.Time {
	return s.now()
}

// GetOrCreateUser возвращает пользователя, создавая пустую запись при первом обращении
func (s *ExpenseTracker) GetOrCreateUser(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &model.User{TelegramID: telegramID, CreatedAt: s.now()}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "user created", log.FieldUserID, telegramID)
	return user, nil
}

// Register сохраняет язык и валюту одной записью
func (s *ExpenseTracker) Register(ctx context.Context, telegramID int64, language, currency string) (*model.User, error) {
	user, err := s.GetOrCreateUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	user.Language = language
	user.Currency = currency
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// SetLanguage меняет язык зарегистрированного пользователя
func (s *ExpenseTracker) SetLanguage(ctx context.Context, telegramID int64, language string) (*model.User, error) {
	return s.updateUser(ctx, telegramID, func(u *model.User) { u.Language = language })
}

// SetCurrency меняет базовую валюту зарегистрированного пользователя
func (s *ExpenseTracker) SetCurrency(ctx context.Context, telegramID int64, currency string) (*model.User, error) {
	return s.updateUser(ctx, telegramID, func(u *model.User) { u.Currency = currency })
}

func (s *ExpenseTracker) updateUser(ctx context.Context, telegramID int64, apply func(*model.User)) (*model.User, error) {
	user, err := s.repo.GetUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.Registered() {
		return nil, model.ErrNotRegistered
	}
	apply(user)
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// AddTransaction сохраняет доход или расход с текущим временем
func (s *ExpenseTracker) AddTransaction(ctx context.Context, userID int64, kind model.TransactionKind, amount decimal.Decimal, currency, description string) (*model.Transaction, error) {
	transaction := &model.Transaction{
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		Currency:    currency,
		Description: strings.TrimSpace(description),
		Date:        s.now(),
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}
	transaction.GenerateID()
	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return transaction, nil
}

// AddUtility сохраняет коммунальный платеж
func (s *ExpenseTracker) AddUtility(ctx context.Context, userID int64, category string, amount decimal.Decimal, currency, description string) (*model.Utility, error) {
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}
	utility := &model.Utility{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Currency:    currency,
		Description: strings.TrimSpace(description),
		Date:        s.now(),
	}
	utility.GenerateID()
	if err := s.repo.CreateUtility(ctx, utility); err != nil {
		return nil, fmt.Errorf("failed to create utility: %w", err)
	}
	return utility, nil
}

// Convert разовая конвертация без сохранения
func (s *ExpenseTracker) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	return s.converter.Convert(ctx, amount, from, to)
}

// monthWindow возвращает [первый момент месяца, первый момент следующего месяца)
func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// sortedCategories упорядочивает категории по убыванию суммы
func sortedCategories(stats map[string]decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(stats))
	for name, amount := range stats {
		out = append(out, CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
