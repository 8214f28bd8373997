package main

import (
	"context"
	"fmt"
	"log/slog"

	httpAdapter "github.com/lorrc/supporthub-backend/internal/adapters/primary/http"
	"github.com/lorrc/supporthub-backend/internal/adapters/secondary/postgres"
	"github.com/lorrc/supporthub-backend/internal/adapters/secondary/sqlite"
	"github.com/lorrc/supporthub-backend/internal/config"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// store bundles the repositories of whichever driver was configured.
type store struct {
	customers ports.CustomerRepository
	agents    ports.AgentRepository
	tickets   ports.TicketRepository
	comments  ports.CommentRepository
	tx        ports.TransactionManager
	health    httpAdapter.HealthChecker
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", "driver", config.DriverPostgres)

	return &store{
		customers: postgres.NewCustomerRepository(pool),
		agents:    postgres.NewAgentRepository(pool),
		tickets:   postgres.NewTicketRepository(pool),
		comments:  postgres.NewCommentRepository(pool),
		tx:        postgres.NewTransactionManager(pool),
		health:    pool,
		close:     pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	db, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", "driver", config.DriverSQLite, "path", cfg.SQLite.Path)

	gdb := db.DB()
	return &store{
		customers: sqlite.NewCustomerRepository(gdb),
		agents:    sqlite.NewAgentRepository(gdb),
		tickets:   sqlite.NewTicketRepository(gdb),
		comments:  sqlite.NewCommentRepository(gdb),
		tx:        sqlite.NewTransactionManager(gdb),
		health:    db,
		close: func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close sqlite store", "error", err)
			}
		},
	}, nil
}
