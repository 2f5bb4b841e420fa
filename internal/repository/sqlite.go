package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository хранит данные в файле SQLite.
// Время хранится в UTC как Unix-наносекунды, суммы как десятичные строки.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func toUnix(t time.Time) int64 { return t.UTC().UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }

func (r *SQLiteRepository) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	var (
		u       model.User
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT telegram_id, language, main_currency, created_at FROM users WHERE telegram_id = ?`,
		telegramID,
	).Scan(&u.TelegramID, &u.Language, &u.Currency, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromUnix(created)
	return &u, nil
}

func (r *SQLiteRepository) SaveUser(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (telegram_id, language, main_currency, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (telegram_id) DO UPDATE SET
			language = excluded.language,
			main_currency = excluded.main_currency`,
		user.TelegramID, user.Language, user.Currency, toUnix(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	t.GenerateID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, currency, description, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, string(t.Kind), t.Amount.String(), t.Currency, t.Description, toUnix(t.Date),
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// whereWindow дописывает условия фильтра к запросу
func whereWindow(query string, args []any, filter model.TransactionFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(query)
	if filter.StartDate != nil {
		sb.WriteString(" AND date >= ?")
		args = append(args, toUnix(*filter.StartDate))
	}
	if filter.EndDate != nil {
		sb.WriteString(" AND date < ?")
		args = append(args, toUnix(*filter.EndDate))
	}
	return sb.String(), args
}

func (r *SQLiteRepository) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	query, args := whereWindow(
		`SELECT id, user_id, type, amount, currency, description, date FROM transactions WHERE user_id = ?`,
		[]any{userID}, filter)
	if filter.Kind != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Kind))
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var (
			t      model.Transaction
			kind   string
			amount string
			date   int64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &amount, &t.Currency, &t.Description, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse transaction amount %q: %w", amount, err)
		}
		t.Kind = model.TransactionKind(kind)
		t.Date = fromUnix(date)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateDebt(ctx context.Context, d *model.Debt) error {
	d.GenerateID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO debts (id, user_id, person_name, amount, currency, debt_type, is_paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.Person, d.Amount.String(), d.Currency, string(d.Direction), d.Paid, toUnix(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

const debtColumns = `id, user_id, person_name, amount, currency, debt_type, is_paid, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDebt(s rowScanner) (*model.Debt, error) {
	var (
		d         model.Debt
		amount    string
		direction string
		created   int64
	)
	if err := s.Scan(&d.ID, &d.UserID, &d.Person, &amount, &d.Currency, &direction, &d.Paid, &created); err != nil {
		return nil, err
	}
	var err error
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse debt amount %q: %w", amount, err)
	}
	d.Direction = model.DebtDirection(direction)
	d.CreatedAt = fromUnix(created)
	return &d, nil
}

func (r *SQLiteRepository) GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE id = ? AND user_id = ?`, id, userID)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = ?`
	args := []any{userID}
	if filter.UnpaidOnly {
		query += " AND is_paid = 0"
	}
	if filter.Direction != "" {
		query += " AND debt_type = ?"
		args = append(args, string(filter.Direction))
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get debts: %w", err)
	}
	defer rows.Close()

	var out []model.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateDebt(ctx context.Context, d *model.Debt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET amount = ?, is_paid = ? WHERE id = ? AND user_id = ?`,
		d.Amount.String(), d.Paid, d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) CreateUtility(ctx context.Context, u *model.Utility) error {
	u.GenerateID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO utilities (id, user_id, category, amount, currency, description, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.UserID, u.Category, u.Amount.String(), u.Currency, u.Description, toUnix(u.Date),
	)
	if err != nil {
		return fmt.Errorf("create utility: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error) {
	query, args := whereWindow(
		`SELECT id, user_id, category, amount, currency, description, date FROM utilities WHERE user_id = ?`,
		[]any{userID}, filter)
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get utilities: %w", err)
	}
	defer rows.Close()

	var out []model.Utility
	for rows.Next() {
		var (
			u      model.Utility
			amount string
			date   int64
		)
		if err := rows.Scan(&u.ID, &u.UserID, &u.Category, &amount, &u.Currency, &u.Description, &date); err != nil {
			return nil, fmt.Errorf("scan utility: %w", err)
		}
		if u.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse utility amount %q: %w", amount, err)
		}
		u.Date = fromUnix(date)
		out = append(out, u)
	}
	return out, rows.Err()
}
