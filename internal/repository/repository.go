package repository

import (
	"context"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

// Repository хранилище пользователей, операций, долгов и коммунальных платежей.
// Все методы возвращают model.ErrNotFound, если запись не найдена.
type Repository interface {
	// Пользователи
	GetUser(ctx context.Context, telegramID int64) (*model.User, error)
	SaveUser(ctx context.Context, user *model.User) error

	// Транзакции
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error)

	// Долги
	CreateDebt(ctx context.Context, debt *model.Debt) error
	GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error)
	GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error)
	UpdateDebt(ctx context.Context, debt *model.Debt) error

	// Коммунальные платежи
	CreateUtility(ctx context.Context, utility *model.Utility) error
	GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error)
}
