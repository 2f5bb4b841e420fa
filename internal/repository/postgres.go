package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/model"
)

var _ Repository = (*PostgresRepository)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	telegram_id   BIGINT PRIMARY KEY,
	language      TEXT NOT NULL DEFAULT '',
	main_currency TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS transactions (
	id          UUID PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	type        TEXT NOT NULL CHECK (type IN ('income', 'expense')),
	amount      NUMERIC NOT NULL,
	currency    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE TABLE IF NOT EXISTS debts (
	id          UUID PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	person_name TEXT NOT NULL,
	amount      NUMERIC NOT NULL,
	currency    TEXT NOT NULL,
	debt_type   TEXT NOT NULL CHECK (debt_type IN ('they_owe', 'i_owe')),
	is_paid     BOOLEAN NOT NULL DEFAULT false,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_debts_user ON debts(user_id, is_paid);
CREATE TABLE IF NOT EXISTS utilities (
	id          UUID PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	category    TEXT NOT NULL,
	amount      NUMERIC NOT NULL,
	currency    TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	date        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_utilities_user_date ON utilities(user_id, date);
`

// PostgresRepository хранит данные в PostgreSQL через пул pgx
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}
	if err := r.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// RunMigrations создает таблицы, если их еще нет
func (r *PostgresRepository) RunMigrations(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT telegram_id, language, main_currency, created_at FROM users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&u.TelegramID, &u.Language, &u.Currency, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepository) SaveUser(ctx context.Context, user *model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (telegram_id, language, main_currency, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE SET
			language = EXCLUDED.language,
			main_currency = EXCLUDED.main_currency`,
		user.TelegramID, user.Language, user.Currency, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	t.GenerateID()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, currency, description, date)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`,
		t.ID, t.UserID, string(t.Kind), t.Amount.String(), t.Currency, t.Description, t.Date,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// windowArgs дописывает условия по дате в стиле $n
func windowArgs(query string, args []any, filter model.TransactionFilter) (string, []any) {
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}
	return query, args
}

func (r *PostgresRepository) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	query, args := windowArgs(
		`SELECT id::text, user_id, type, amount::text, currency, description, date FROM transactions WHERE user_id = $1`,
		[]any{userID}, filter)
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
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
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &amount, &t.Currency, &t.Description, &t.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse transaction amount %q: %w", amount, err)
		}
		t.Kind = model.TransactionKind(kind)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateDebt(ctx context.Context, d *model.Debt) error {
	d.GenerateID()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO debts (id, user_id, person_name, amount, currency, debt_type, is_paid, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`,
		d.ID, d.UserID, d.Person, d.Amount.String(), d.Currency, string(d.Direction), d.Paid, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

const pgDebtColumns = `id::text, user_id, person_name, amount::text, currency, debt_type, is_paid, created_at`

func scanPgDebt(row pgx.Row) (*model.Debt, error) {
	var (
		d         model.Debt
		amount    string
		direction string
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Person, &amount, &d.Currency, &direction, &d.Paid, &d.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse debt amount %q: %w", amount, err)
	}
	d.Direction = model.DebtDirection(direction)
	return &d, nil
}

func (r *PostgresRepository) GetDebt(ctx context.Context, id string, userID int64) (*model.Debt, error) {
	d, err := scanPgDebt(r.pool.QueryRow(ctx,
		`SELECT `+pgDebtColumns+` FROM debts WHERE id::text = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get debt: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) GetDebts(ctx context.Context, userID int64, filter model.DebtFilter) ([]model.Debt, error) {
	query := `SELECT ` + pgDebtColumns + ` FROM debts WHERE user_id = $1`
	args := []any{userID}
	if filter.UnpaidOnly {
		query += " AND NOT is_paid"
	}
	if filter.Direction != "" {
		args = append(args, string(filter.Direction))
		query += fmt.Sprintf(" AND debt_type = $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get debts: %w", err)
	}
	defer rows.Close()

	var out []model.Debt
	for rows.Next() {
		d, err := scanPgDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateDebt(ctx context.Context, d *model.Debt) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE debts SET amount = $1::numeric, is_paid = $2 WHERE id::text = $3 AND user_id = $4`,
		d.Amount.String(), d.Paid, d.ID, d.UserID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateUtility(ctx context.Context, u *model.Utility) error {
	u.GenerateID()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO utilities (id, user_id, category, amount, currency, description, date)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`,
		u.ID, u.UserID, u.Category, u.Amount.String(), u.Currency, u.Description, u.Date,
	)
	if err != nil {
		return fmt.Errorf("create utility: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetUtilities(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Utility, error) {
	query, args := windowArgs(
		`SELECT id::text, user_id, category, amount::text, currency, description, date FROM utilities WHERE user_id = $1`,
		[]any{userID}, filter)
	query += " ORDER BY date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get utilities: %w", err)
	}
	defer rows.Close()

	var out []model.Utility
	for rows.Next() {
		var (
			u      model.Utility
			amount string
		)
		if err := rows.Scan(&u.ID, &u.UserID, &u.Category, &amount, &u.Currency, &u.Description, &u.Date); err != nil {
			return nil, fmt.Errorf("scan utility: %w", err)
		}
		if u.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse utility amount %q: %w", amount, err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
