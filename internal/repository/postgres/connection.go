package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/authkeeper/database"
)

// PoolOptions tunes the connection pool. Zero values keep pgx defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
}

// Connection wraps the pgx pool shared by the account repository and the transactor.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a pool for dsn, verifies it with a ping and applies
// pending schema migrations.
func NewConnection(ctx context.Context, dsn string, opts PoolOptions) (*Connection, error) {
	conf, err := poolConfig(dsn, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

func poolConfig(dsn string, opts PoolOptions) (*pgxpool.Config, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if opts.MaxConns > 0 {
		conf.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		conf.MinConns = opts.MinConns
	}
	if conf.MinConns > conf.MaxConns {
		return nil, fmt.Errorf("min connections %d exceed max connections %d", conf.MinConns, conf.MaxConns)
	}
	if opts.MaxConnIdleTime > 0 {
		conf.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	return conf, nil
}

func (s *Connection) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	return nil
}

// Ping reports whether the database answers. Used by the health checks.
func (s *Connection) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return errors.New("connection pool is nil")
	}
	return s.Pool.Ping(ctx)
}
