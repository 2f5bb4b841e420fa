package repository

import (
	"context"
	"fmt"

	"github.com/ivanoskov/smartbalance_bot/internal/config"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

type Options struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
}

// Result хранилище и функция освобождения его ресурсов
type Result struct {
	Repository Repository
	Cleanup    func() error
}

// Open создает хранилище выбранного типа
func Open(ctx context.Context, opts Options, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentStorage)
	noop := func() error { return nil }

	switch opts.Backend {
	case config.BackendMemory, "":
		logger.Info("initialized memory backend", log.FieldBackend, config.BackendMemory)
		return &Result{Repository: NewMemoryRepository(), Cleanup: noop}, nil

	case config.BackendSQLite:
		repo, err := NewSQLiteRepository(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		logger.Info("initialized sqlite backend", log.FieldBackend, config.BackendSQLite, "db_path", opts.SQLitePath)
		return &Result{Repository: repo, Cleanup: repo.Close}, nil

	case config.BackendPostgres:
		repo, err := NewPostgresRepository(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres repository: %w", err)
		}
		logger.Info("initialized postgres backend", log.FieldBackend, config.BackendPostgres)
		return &Result{Repository: repo, Cleanup: repo.Close}, nil

	case config.BackendSupabase:
		repo, err := NewSupabaseRepository(opts.SupabaseURL, opts.SupabaseKey, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize supabase repository: %w", err)
		}
		logger.Info("initialized supabase backend", log.FieldBackend, config.BackendSupabase)
		return &Result{Repository: repo, Cleanup: noop}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", opts.Backend)
	}
}
