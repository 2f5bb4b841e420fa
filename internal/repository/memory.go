package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository хранит данные в памяти процесса
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[int64]model.User
	transactions []model.Transaction
	debts        map[string]model.Debt
	utilities    []model.Utility
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[int64]model.User),
		debts: make(map[string]model.Debt),
	}
}

func (r *MemoryRepository) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[telegramID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) SaveUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.TelegramID] = *user
	return nil
}

func (r *MemoryRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	transaction.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *transaction)
	return nil
}

func (r *MemoryRepository) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Transaction
	for _, t := range r.transactions {
		if t.UserID != userID || !filter.Contains(t.Date) {
			continue
		}
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryRepository) CreateDebt(ctx context.Context, debt *model.Debt) error {
	debt.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.debts[debt.ID] = *debt
	return nil
}

func (r *MemoryRepository) GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.debts[id]
	if !ok || d.UserID != userID {
		return nil, model.ErrNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Debt
	for _, d := range r.debts {
		if d.UserID == userID && filter.Match(&d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) UpdateDebt(ctx context.Context, debt *model.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.debts[debt.ID]
	if !ok || existing.UserID != debt.UserID {
		return model.ErrNotFound
	}
	r.debts[debt.ID] = *debt
	return nil
}

func (r *MemoryRepository) CreateUtility(ctx context.Context, utility *model.Utility) error {
	utility.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.utilities = append(r.utilities, *utility)
	return nil
}

func (r *MemoryRepository) GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Utility
	for _, u := range r.utilities {
		if u.UserID == userID && filter.Contains(u.Date) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
