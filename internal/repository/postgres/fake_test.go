package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/authkeeper/internal/model"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("fakeRow: column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("fakeRow: unsupported destination")
		}
	}
	return nil
}

type recordedQuery struct {
	sql  string
	args []any
}

type fakeQuerier struct {
	row     fakeRow
	queries []recordedQuery
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	return pgconn.NewCommandTag("OK"), nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.queries = append(q.queries, recordedQuery{sql: sql, args: args})
	return q.row
}

// fakeTx records commit and rollback calls. Methods not overridden panic.
type fakeTx struct {
	pgx.Tx
	querier     *fakeQuerier
	commitErr   error
	committed   bool
	rolledBack  int
	commitCalls int
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.commitCalls++
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack++
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.querier.Exec(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.querier.QueryRow(ctx, sql, args...)
}

type fakeBeginner struct {
	tx      *fakeTx
	err     error
	options []pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	b.options = append(b.options, opts)
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func accountRow(a model.Account) fakeRow {
	return fakeRow{values: []any{
		a.ID, a.ExternalID, a.GivenName, a.FamilyName, a.Patronymic,
		a.Email, a.PasswordHash, string(a.Role), a.IsActive, a.CreatedAt, a.UpdatedAt,
	}}
}
