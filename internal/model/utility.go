package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Utility коммунальный платеж, всегда учитывается как расход
type Utility struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (u *Utility) GenerateID() {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
}
