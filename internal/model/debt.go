package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtDirection направление долга
type DebtDirection string

const (
	TheyOwe DebtDirection = "they_owe"
	IOwe    DebtDirection = "i_owe"
)

func (d DebtDirection) Valid() bool {
	return d == TheyOwe || d == IOwe
}

// Debt долг между пользователем и другим человеком.
// Amount хранит остаток и уменьшается платежами до нуля.
type Debt struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id"`
	Person    string          `json:"person_name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Direction DebtDirection   `json:"debt_type"`
	Paid      bool            `json:"is_paid"`
	CreatedAt time.Time       `json:"created_at"`
}

func (d *Debt) GenerateID() {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
}

// Pay применяет платеж. Nil означает полное погашение.
func (d *Debt) Pay(amount *decimal.Decimal) {
	if amount == nil || amount.GreaterThanOrEqual(d.Amount) {
		d.Amount = decimal.Zero
		d.Paid = true
		return
	}
	d.Amount = d.Amount.Sub(*amount)
}

// DebtFilter выбирает долги пользователя
type DebtFilter struct {
	Direction  DebtDirection
	UnpaidOnly bool
}

func (f DebtFilter) Match(d *Debt) bool {
	if f.UnpaidOnly && d.Paid {
		return false
	}
	if f.Direction != "" && d.Direction != f.Direction {
		return false
	}
	return true
}
