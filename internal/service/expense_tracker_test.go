package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/currency"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
	"github.com/ivanoskov/smartbalance_bot/internal/repository"
)

type staticRates map[string]float64

func (s staticRates) Rate(_ context.Context, from, to string) float64 {
	if r, ok := s[from+"_"+to]; ok {
		return r
	}
	return currency.FallbackRate
}

var testNow = time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC)

func newTracker(rates staticRates) (*ExpenseTracker, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	tracker := NewExpenseTracker(repo, currency.NewConverter(rates),
		WithClock(func() time.Time { return testNow }))
	return tracker, repo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addTx(t *testing.T, repo *repository.MemoryRepository, kind model.TransactionKind, amount, cur string, date time.Time) {
	t.Helper()
	err := repo.CreateTransaction(context.Background(), &model.Transaction{
		UserID: 1, Kind: kind, Amount: dec(amount), Currency: cur, Description: amount, Date: date,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func addUtility(t *testing.T, repo *repository.MemoryRepository, category, amount, cur string, date time.Time) {
	t.Helper()
	err := repo.CreateUtility(context.Background(), &model.Utility{
		UserID: 1, Category: category, Amount: dec(amount), Currency: cur, Date: date,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestTotalsEmpty(t *testing.T) {
	tracker, _ := newTracker(nil)

	got, err := tracker.Totals(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	assertDec(t, "Income", got.Income, "0")
	assertDec(t, "Expense", got.Expense, "0")
	assertDec(t, "Net", got.Net, "0")
}

func TestTotalsConvertsEachEntry(t *testing.T) {
	tracker, repo := newTracker(staticRates{"EUR_USD": 1.005})

	addTx(t, repo, model.KindIncome, "1", "EUR", testNow)
	addTx(t, repo, model.KindIncome, "1", "EUR", testNow)
	addTx(t, repo, model.KindIncome, "10.50", "USD", testNow)
	addTx(t, repo, model.KindExpense, "3.25", "USD", testNow)

	got, err := tracker.Totals(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}
	// 1 EUR -> 1.01 USD дважды, а не 2 EUR -> 2.01 USD
	assertDec(t, "Income", got.Income, "12.52")
	assertDec(t, "Expense", got.Expense, "3.25")
	assertDec(t, "Net", got.Net, "9.27")
	if !got.Net.Equal(got.Income.Sub(got.Expense)) {
		t.Error("Net must equal Income - Expense")
	}
}

func TestMonthlyReportDecemberRollover(t *testing.T) {
	tracker, repo := newTracker(nil)

	addTx(t, repo, model.KindIncome, "1000", "USD", time.Date(2024, 11, 30, 23, 59, 59, 0, time.UTC))
	addTx(t, repo, model.KindIncome, "200", "USD", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	addTx(t, repo, model.KindExpense, "50", "USD", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))
	addTx(t, repo, model.KindExpense, "7000", "USD", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	addUtility(t, repo, "electricity", "30", "USD", time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC))
	addUtility(t, repo, "water", "999", "USD", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	got, err := tracker.MonthlyReport(context.Background(), 1, 2024, time.December, "USD")
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	assertDec(t, "Income", got.Income, "200")
	assertDec(t, "Expense", got.Expense, "80")
	assertDec(t, "Net", got.Net, "120")
	if got.Year != 2024 || got.Month != time.December {
		t.Errorf("period = %d-%v, want 2024-December", got.Year, got.Month)
	}
}

func TestMonthlyReportConvertsUtilities(t *testing.T) {
	tracker, repo := newTracker(staticRates{"UZS_USD": 0.000079})

	addUtility(t, repo, "gas", "150000", "UZS", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))

	got, err := tracker.MonthlyReport(context.Background(), 1, 2024, time.June, "USD")
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	assertDec(t, "Expense", got.Expense, "11.85")
	assertDec(t, "Net", got.Net, "-11.85")
}

func TestDailyReport(t *testing.T) {
	tracker, repo := newTracker(staticRates{"RUB_USD": 0.0111})

	addTx(t, repo, model.KindExpense, "1000", "RUB", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	addTx(t, repo, model.KindIncome, "5", "USD", time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC))
	addTx(t, repo, model.KindIncome, "9", "USD", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		month     time.Month
		day       int
		wantItems int
	}{
		{"whole day", time.March, 3, 2},
		{"empty day", time.March, 5, 0},
		{"nonexistent date", time.February, 31, 0},
		{"zero day", time.March, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tracker.DailyReport(context.Background(), 1, 2024, tt.month, tt.day, "USD")
			if err != nil {
				t.Fatalf("DailyReport() error = %v", err)
			}
			if got.Items == nil {
				t.Fatal("Items must be an empty slice, not nil")
			}
			if len(got.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(got.Items), tt.wantItems)
			}
		})
	}

	got, _ := tracker.DailyReport(context.Background(), 1, 2024, time.March, 3, "USD")
	for _, item := range got.Items {
		if item.OriginalCurrency == "RUB" {
			assertDec(t, "converted", item.Amount, "11.1")
		}
	}
}

func TestCategoryStats(t *testing.T) {
	tracker, repo := newTracker(nil)

	addUtility(t, repo, "electricity", "100", "USD", testNow)
	addUtility(t, repo, "electricity", "50", "USD", testNow)
	addUtility(t, repo, "water", "20", "USD", testNow)

	got, err := tracker.CategoryStats(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("CategoryStats() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CategoryStats() = %v, want 2 categories", got)
	}
	assertDec(t, "electricity", got["electricity"], "150")
	assertDec(t, "water", got["water"], "20")

	sorted, err := tracker.SortedCategoryStats(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("SortedCategoryStats() error = %v", err)
	}
	if sorted[0].Category != "electricity" {
		t.Errorf("first category = %s, want electricity", sorted[0].Category)
	}
}

func TestUtilityMonth(t *testing.T) {
	tracker, repo := newTracker(nil)

	addUtility(t, repo, "internet", "15", "USD", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	addUtility(t, repo, "water", "5.5", "USD", time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC))
	addUtility(t, repo, "gas", "40", "USD", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	got, err := tracker.UtilityMonth(context.Background(), 1, 2024, time.April, "USD")
	if err != nil {
		t.Fatalf("UtilityMonth() error = %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(got.Items))
	}
	assertDec(t, "Total", got.Total, "20.5")
}

func TestPayDebt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		payment    *decimal.Decimal
		wantAmount string
		wantPaid   bool
	}{
		{"full shortcut", nil, "0", true},
		{"partial", ptr("40"), "60", false},
		{"equal to remaining", ptr("100"), "0", true},
		{"more than remaining", ptr("250"), "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := newTracker(nil)
			debt, err := tracker.AddDebt(ctx, 1, "Ali", dec("100"), "USD", model.TheyOwe)
			if err != nil {
				t.Fatalf("AddDebt() error = %v", err)
			}

			got, err := tracker.PayDebt(ctx, 1, debt.ID, tt.payment)
			if err != nil {
				t.Fatalf("PayDebt() error = %v", err)
			}
			assertDec(t, "Amount", got.Amount, tt.wantAmount)
			if got.Paid != tt.wantPaid {
				t.Errorf("Paid = %v, want %v", got.Paid, tt.wantPaid)
			}

			unpaid, _ := tracker.ListDebts(ctx, 1, "")
			if wantLen := map[bool]int{true: 0, false: 1}[tt.wantPaid]; len(unpaid) != wantLen {
				t.Errorf("ListDebts() = %d debts, want %d", len(unpaid), wantLen)
			}
		})
	}
}

func TestPayDebtNotFound(t *testing.T) {
	ctx := context.Background()
	tracker, _ := newTracker(nil)
	debt, _ := tracker.AddDebt(ctx, 1, "Ali", dec("100"), "USD", model.IOwe)

	if _, err := tracker.PayDebt(ctx, 1, "missing", nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("PayDebt(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := tracker.PayDebt(ctx, 2, debt.ID, nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("PayDebt(other user) error = %v, want ErrNotFound", err)
	}
	if _, err := tracker.PayDebt(ctx, 1, debt.ID, ptr("0")); !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("PayDebt(0) error = %v, want ErrInvalidAmount", err)
	}

	left, _ := tracker.GetDebt(ctx, 1, debt.ID)
	assertDec(t, "untouched debt", left.Amount, "100")
}

func TestAddDebtValidation(t *testing.T) {
	tracker, _ := newTracker(nil)
	ctx := context.Background()

	if _, err := tracker.AddDebt(ctx, 1, "A", dec("1"), "USD", "lent"); !errors.Is(err, model.ErrInvalidDirection) {
		t.Errorf("error = %v, want ErrInvalidDirection", err)
	}
	if _, err := tracker.AddDebt(ctx, 1, "A", dec("-1"), "USD", model.IOwe); !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestUserLifecycle(t *testing.T) {
	tracker, _ := newTracker(nil)
	ctx := context.Background()

	u, err := tracker.GetOrCreateUser(ctx, 7)
	if err != nil {
		t.Fatalf("GetOrCreateUser() error = %v", err)
	}
	if u.Registered() {
		t.Error("new user must not be registered")
	}
	if _, err := tracker.SetLanguage(ctx, 7, "en"); !errors.Is(err, model.ErrNotRegistered) {
		t.Errorf("SetLanguage() before registration error = %v, want ErrNotRegistered", err)
	}

	if _, err := tracker.Register(ctx, 7, "uz", "UZS"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	u, err = tracker.SetCurrency(ctx, 7, "USD")
	if err != nil {
		t.Fatalf("SetCurrency() error = %v", err)
	}
	if u.Language != "uz" || u.Currency != "USD" {
		t.Errorf("user = %+v, want uz/USD", u)
	}
	if !u.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, testNow)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	tracker, repo := newTracker(nil)
	ctx := context.Background()

	if _, err := tracker.AddTransaction(ctx, 1, model.KindExpense, dec("0"), "USD", "x"); !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
	saved, err := tracker.AddTransaction(ctx, 1, model.KindIncome, dec("50000"), "UZS", " salary ")
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if saved.Description != "salary" || !saved.Date.Equal(testNow) {
		t.Errorf("saved = %+v", saved)
	}
	all, _ := repo.GetTransactions(ctx, 1, model.TransactionFilter{})
	if len(all) != 1 {
		t.Errorf("stored %d transactions, want 1", len(all))
	}
}

func ptr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
