package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/tasktracker-server/database"
)

// Connection is the shared pgx pool used by all postgres repositories.
type Connection struct {
	*pgxpool.Pool
}

type migrateFunc func(ctx context.Context, dsn string) error

// NewConnection applies pending migrations, then opens a pool and checks that
// the server answers.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	return newConnection(ctx, dsn, database.Migrate)
}

func newConnection(ctx context.Context, dsn string, migrate migrateFunc) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if err := migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

// Ping backs the health endpoint.
func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return errors.New("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}
