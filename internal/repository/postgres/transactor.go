package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.Transactor = (*Transactor)(nil)

type beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// Transactor runs account store operations inside a single pgx transaction.
type Transactor struct {
	db beginner
}

func NewTransactor(db *Connection) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction begins a transaction, hands fn an AccountStore bound to it
// and commits when fn returns nil. Any error or panic rolls the transaction
// back, which also returns the connection to the pool.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, accounts model.AccountStore) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", model.ErrStoreFailure, err)
	}

	// Rollback after a successful commit is a no-op returning ErrTxClosed.
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, newAccountRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", model.ErrStoreFailure, err)
	}

	return nil
}
