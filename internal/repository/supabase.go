package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

var _ Repository = (*SupabaseRepository)(nil)

// Таблицы в Supabase
const (
	tableUsers        = "users"
	tableTransactions = "transactions"
	tableDebts        = "debts"
	tableUtilities    = "utilities"
)

type SupabaseRepository struct {
	client *supabase.Client
	logger *log.Logger
}

func NewSupabaseRepository(url, key string, logger *log.Logger) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &SupabaseRepository{
		client: client,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Колонка id имеет тип uuid, PostgREST отвечает ошибкой на любую другую строку
func validDebtID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *SupabaseRepository) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	data, _, err := r.client.From(tableUsers).
		Select("*", "", false).
		Eq("telegram_id", idString(telegramID)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if len(users) == 0 {
		return nil, model.ErrNotFound
	}
	return &users[0], nil
}

func (r *SupabaseRepository) SaveUser(ctx context.Context, user *model.User) error {
	_, _, err := r.client.From(tableUsers).
		Insert(user, true, "telegram_id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	transaction.GenerateID()
	_, count, err := r.client.From(tableTransactions).Insert(transaction, false, "", "minimal", "").Execute()
	if err != nil {
		r.logger.ErrorContext(ctx, "insert failed",
			log.FieldOperation, log.OpCreate,
			"table", tableTransactions,
			log.FieldError, err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	r.logger.DebugContext(ctx, "transaction created", "id", transaction.ID, "count", count)
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From(tableTransactions).
		Select("*", "", false).
		Eq("user_id", idString(userID))

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(time.RFC3339Nano))
	}
	if filter.EndDate != nil {
		query = query.Lt("date", filter.EndDate.Format(time.RFC3339Nano))
	}
	if filter.Kind != "" {
		query = query.Eq("type", string(filter.Kind))
	}

	// Сначала новые
	query = query.Order("date", nil)

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) CreateDebt(ctx context.Context, debt *model.Debt) error {
	debt.GenerateID()
	if _, _, err := r.client.From(tableDebts).Insert(debt, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error) {
	if !validDebtID(id) {
		return nil, model.ErrNotFound
	}
	data, _, err := r.client.From(tableDebts).
		Select("*", "", false).
		Eq("id", id).
		Eq("user_id", idString(userID)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	var debts []model.Debt
	if err := json.Unmarshal(data, &debts); err != nil {
		return nil, fmt.Errorf("failed to parse debt: %w", err)
	}
	if len(debts) == 0 {
		return nil, model.ErrNotFound
	}
	return &debts[0], nil
}

func (r *SupabaseRepository) GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error) {
	query := r.client.From(tableDebts).
		Select("*", "", false).
		Eq("user_id", idString(userID))
	if filter.UnpaidOnly {
		query = query.Eq("is_paid", "false")
	}
	if filter.Direction != "" {
		query = query.Eq("debt_type", string(filter.Direction))
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}

	var debts []model.Debt
	if err := json.Unmarshal(data, &debts); err != nil {
		return nil, fmt.Errorf("failed to parse debts: %w", err)
	}
	return debts, nil
}

func (r *SupabaseRepository) UpdateDebt(ctx context.Context, debt *model.Debt) error {
	if !validDebtID(debt.ID) {
		return model.ErrNotFound
	}
	data, _, err := r.client.From(tableDebts).
		Update(map[string]any{"amount": debt.Amount, "is_paid": debt.Paid}, "representation", "").
		Eq("id", debt.ID).
		Eq("user_id", idString(debt.UserID)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}

	var updated []model.Debt
	if err := json.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("failed to parse updated debt: %w", err)
	}
	if len(updated) == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SupabaseRepository) CreateUtility(ctx context.Context, utility *model.Utility) error {
	utility.GenerateID()
	if _, _, err := r.client.From(tableUtilities).Insert(utility, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create utility: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error) {
	query := r.client.From(tableUtilities).
		Select("*", "", false).
		Eq("user_id", idString(userID))

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(time.RFC3339Nano))
	}
	if filter.EndDate != nil {
		query = query.Lt("date", filter.EndDate.Format(time.RFC3339Nano))
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get utilities: %w", err)
	}

	var utilities []model.Utility
	if err := json.Unmarshal(data, &utilities); err != nil {
		return nil, fmt.Errorf("failed to parse utilities: %w", err)
	}
	return utilities, nil
}
