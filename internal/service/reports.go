package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

// Totals доходы и расходы в одной валюте
type Totals struct {
	Currency string
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Net      decimal.Decimal
}

// MonthlyReport итоги календарного месяца; коммунальные платежи входят в расходы
type MonthlyReport struct {
	Year  int
	Month time.Month
	Totals
}

// DailyItem одна операция дневного отчета
type DailyItem struct {
	Kind             model.TransactionKind
	Description      string
	Amount           decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	Date             time.Time
}

type DailyReport struct {
	Date     time.Time
	Currency string
	Items    []DailyItem
}

// CategoryAmount сумма по одной категории коммунальных платежей
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// UtilityMonth коммунальные платежи за месяц
type UtilityMonth struct {
	Year     int
	Month    time.Month
	Currency string
	Items    []UtilityItem
	Total    decimal.Decimal
}

type UtilityItem struct {
	Category    string
	Description string
	Amount      decimal.Decimal
}

// sumTransactions конвертирует каждую операцию отдельно и только потом суммирует
func (s *ExpenseTracker) sumTransactions(ctx context.Context, transactions []model.Transaction, target string) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range transactions {
		converted := s.converter.Convert(ctx, t.Amount, t.Currency, target)
		switch t.Kind {
		case model.KindIncome:
			income = income.Add(converted)
		case model.KindExpense:
			expense = expense.Add(converted)
		}
	}
	return income, expense
}

// Totals считает доходы и расходы за все время
func (s *ExpenseTracker) Totals(ctx context.Context, userID int64, target string) (*Totals, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	income, expense := s.sumTransactions(ctx, transactions, target)
	return &Totals{
		Currency: target,
		Income:   income,
		Expense:  expense,
		Net:      income.Sub(expense),
	}, nil
}

// MonthlyReport считает итоги за месяц. Декабрь корректно переходит на январь следующего года.
func (s *ExpenseTracker) MonthlyReport(ctx context.Context, userID int64, year int, month time.Month, target string) (*MonthlyReport, error) {
	start, end := monthWindow(year, month)
	filter := model.TransactionFilter{StartDate: &start, EndDate: &end}

	transactions, err := s.repo.GetTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get month transactions: %w", err)
	}
	utilities, err := s.repo.GetUtilities(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get month utilities: %w", err)
	}

	income, expense := s.sumTransactions(ctx, transactions, target)
	for _, u := range utilities {
		expense = expense.Add(s.converter.Convert(ctx, u.Amount, u.Currency, target))
	}

	return &MonthlyReport{
		Year:  year,
		Month: month,
		Totals: Totals{
			Currency: target,
			Income:   income,
			Expense:  expense,
			Net:      income.Sub(expense),
		},
	}, nil
}

// DailyReport возвращает операции за один день. Несуществующая дата
// (например, 31 февраля) дает пустой отчет, а не ошибку.
func (s *ExpenseTracker) DailyReport(ctx context.Context, userID int64, year int, month time.Month, day int, target string) (*DailyReport, error) {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	report := &DailyReport{Date: start, Currency: target, Items: []DailyItem{}}
	if start.Year() != year || start.Month() != month || start.Day() != day {
		return report, nil
	}
	end := start.AddDate(0, 0, 1)

	transactions, err := s.repo.GetTransactions(ctx, userID, model.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to get day transactions: %w", err)
	}

	for _, t := range transactions {
		report.Items = append(report.Items, DailyItem{
			Kind:             t.Kind,
			Description:      t.Description,
			Amount:           s.converter.Convert(ctx, t.Amount, t.Currency, target),
			OriginalAmount:   t.Amount,
			OriginalCurrency: t.Currency,
			Date:             t.Date,
		})
	}
	return report, nil
}

// CategoryStats суммирует коммунальные платежи по категориям за все время
func (s *ExpenseTracker) CategoryStats(ctx context.Context, userID int64, target string) (map[string]decimal.Decimal, error) {
	utilities, err := s.repo.GetUtilities(ctx, userID, model.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get utilities: %w", err)
	}

	stats := make(map[string]decimal.Decimal)
	for _, u := range utilities {
		converted := s.converter.Convert(ctx, u.Amount, u.Currency, target)
		stats[u.Category] = stats[u.Category].Add(converted)
	}
	return stats, nil
}

// SortedCategoryStats то же, что CategoryStats, но по убыванию суммы
func (s *ExpenseTracker) SortedCategoryStats(ctx context.Context, userID int64, target string) ([]CategoryAmount, error) {
	stats, err := s.CategoryStats(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	return sortedCategories(stats), nil
}

// UtilityMonth перечисляет коммунальные платежи месяца и их итог
func (s *ExpenseTracker) UtilityMonth(ctx context.Context, userID int64, year int, month time.Month, target string) (*UtilityMonth, error) {
	start, end := monthWindow(year, month)
	utilities, err := s.repo.GetUtilities(ctx, userID, model.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to get month utilities: %w", err)
	}

	result := &UtilityMonth{Year: year, Month: month, Currency: target, Total: decimal.Zero}
	for _, u := range utilities {
		converted := s.converter.Convert(ctx, u.Amount, u.Currency, target)
		result.Items = append(result.Items, UtilityItem{
			Category:    u.Category,
			Description: u.Description,
			Amount:      converted,
		})
		result.Total = result.Total.Add(converted)
	}
	return result, nil
}
