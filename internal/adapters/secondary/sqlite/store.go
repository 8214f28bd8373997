// Package sqlite is the embedded persistence adapter, built on gorm over a
// pure Go SQLite driver. It keeps the same relational layout and referential
// rules as the PostgreSQL schema.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
        id         INTEGER PRIMARY KEY AUTOINCREMENT,
        name       TEXT     NOT NULL,
        email      TEXT     NOT NULL,
        created_at DATETIME NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email ON customers (email)`,
	`CREATE TABLE IF NOT EXISTS agents (
        id           INTEGER PRIMARY KEY AUTOINCREMENT,
        display_name TEXT     NOT NULL,
        email        TEXT     NOT NULL,
        created_at   DATETIME NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_agents_email ON agents (email)`,
	`CREATE TABLE IF NOT EXISTS tickets (
        id                INTEGER PRIMARY KEY AUTOINCREMENT,
        customer_id       INTEGER  NOT NULL REFERENCES customers (id) ON DELETE RESTRICT,
        assigned_agent_id INTEGER  REFERENCES agents (id) ON DELETE SET NULL,
        category          TEXT     NOT NULL,
        status            TEXT     NOT NULL,
        priority          TEXT     NOT NULL,
        title             TEXT     NOT NULL,
        description       TEXT     NOT NULL,
        created_at        DATETIME NOT NULL,
        updated_at        DATETIME NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_customer_id ON tickets (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_assigned_agent_id ON tickets (assigned_agent_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
        id          INTEGER PRIMARY KEY AUTOINCREMENT,
        ticket_id   INTEGER  NOT NULL REFERENCES tickets (id) ON DELETE CASCADE,
        agent_id    INTEGER  REFERENCES agents (id) ON DELETE RESTRICT,
        customer_id INTEGER  REFERENCES customers (id) ON DELETE RESTRICT,
        body        TEXT     NOT NULL,
        created_at  DATETIME NOT NULL,
        CHECK ((agent_id IS NULL) <> (customer_id IS NULL))
    )`,
	`CREATE INDEX IF NOT EXISTS idx_comments_ticket_id ON comments (ticket_id)`,
}

// Store owns the gorm handle of one SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := ensureDirectory(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormsqlite.Open(dsn(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// One connection: the foreign_keys pragma is per connection and an
	// in-memory database lives only as long as its connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, stmt := range schema {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func ensureDirectory(path string) error {
	candidate := strings.TrimSpace(path)
	if candidate == "" || candidate == MemoryPath {
		return nil
	}
	candidate = strings.TrimPrefix(candidate, "file:")
	if idx := strings.Index(candidate, "?"); idx >= 0 {
		candidate = candidate[:idx]
	}

	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite directory %q: %w", dir, err)
	}
	return nil
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
