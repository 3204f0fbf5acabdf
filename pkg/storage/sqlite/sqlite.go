package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kasuboski/gapz/pkg/logger"
	"github.com/kasuboski/gapz/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var _ storage.Storage = (*SQLite)(nil)

type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// querier is satisfied by *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new sqlite database given a path to the database file
func New(ctx context.Context, filePath string) (storage.Storage, error) {
	log := logger.FromCtx(ctx)

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	// every connection to :memory: is a separate database
	if strings.Contains(filePath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("couldn't open database %q: %w", filePath, err)
	}

	log.Debugw("opened database", zap.String("path", filePath))
	return &SQLite{
		db: db,
	}, nil
}

// RunMigrations brings the schema up to the latest embedded migration
func (s *SQLite) RunMigrations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return runMigrations(ctx, s.db)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// inTx runs fn in a transaction, committing when fn returns nil
func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromCtx(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Debugw("failed to init transaction", zap.Error(err))
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Debugw("failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	return tx.Commit()
}

// mapError converts driver errors to storage errors
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
