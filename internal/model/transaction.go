package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind тип операции: доход или расход
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid сообщает, является ли тип одним из допустимых
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// GenerateID генерирует новый UUID для транзакции, если он еще не установлен
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Validate проверяет инварианты транзакции
func (t *Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// TransactionFilter ограничивает выборку транзакций и коммунальных платежей.
// StartDate включается в интервал, EndDate нет.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Kind      TransactionKind
}

// Contains сообщает, попадает ли момент t в интервал фильтра
func (f TransactionFilter) Contains(t time.Time) bool {
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !t.Before(*f.EndDate) {
		return false
	}
	return true
}
