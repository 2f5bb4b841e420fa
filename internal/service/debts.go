package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

// AddDebt записывает новый долг на полную сумму
func (s *ExpenseTracker) AddDebt(ctx context.Context, userID int64, person string, amount decimal.Decimal, currency string, direction model.DebtDirection) (*model.Debt, error) {
	if !direction.Valid() {
		return nil, model.ErrInvalidDirection
	}
	if !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}
	debt := &model.Debt{
		UserID:    userID,
		Person:    strings.TrimSpace(person),
		Amount:    amount,
		Currency:  currency,
		Direction: direction,
		CreatedAt: s.now(),
	}
	debt.GenerateID()
	if err := s.repo.CreateDebt(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return debt, nil
}

// ListDebts возвращает непогашенные долги; пустое направление означает все
func (s *ExpenseTracker) ListDebts(ctx context.Context, userID int64, direction model.DebtDirection) ([]model.Debt, error) {
	debts, err := s.repo.GetDebts(ctx, userID, model.DebtFilter{Direction: direction, UnpaidOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

// GetDebt возвращает долг пользователя или model.ErrNotFound
func (s *ExpenseTracker) GetDebt(ctx context.Context, userID int64, debtID string) (*model.Debt, error) {
	return s.repo.GetDebt(ctx, debtID, userID)
}

// PayDebt применяет платеж к долгу. Nil amount означает полное погашение;
// платеж не меньше остатка тоже гасит долг полностью.
func (s *ExpenseTracker) PayDebt(ctx context.Context, userID int64, debtID string, amount *decimal.Decimal) (*model.Debt, error) {
	if amount != nil && !amount.IsPositive() {
		return nil, model.ErrInvalidAmount
	}

	debt, err := s.repo.GetDebt(ctx, debtID, userID)
	if err != nil {
		return nil, err
	}
	debt.Pay(amount)
	if err := s.repo.UpdateDebt(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	s.logger.InfoContext(ctx, "debt payment applied",
		log.FieldUserID, userID,
		"debt_id", debtID,
		"paid", debt.Paid)
	return debt, nil
}
