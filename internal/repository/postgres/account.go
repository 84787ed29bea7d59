package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// uniqueViolationCode is the SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

const accountColumns = `id, external_id, given_name, family_name, patronymic, email,
			  password_hash, role, is_active, created_at, updated_at`

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements AccountStore over the users table.
type AccountRepository struct {
	db querier
}

func newAccountRepository(q querier) *AccountRepository {
	return &AccountRepository{db: q}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + `
			  FROM users WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("%w: failed to get account by email: %w", model.ErrStoreFailure, err)
	}

	return account, nil
}

func (r *AccountRepository) FindByExternalID(ctx context.Context, externalID uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + `
			  FROM users WHERE external_id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("%w: failed to get account by external id: %w", model.ErrStoreFailure, err)
	}

	return account, nil
}

func (r *AccountRepository) Insert(ctx context.Context, draft model.AccountDraft) (int64, error) {
	query := `INSERT INTO users (external_id, given_name, family_name, patronymic, email, password_hash, role, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		draft.ExternalID, draft.GivenName, draft.FamilyName, draft.Patronymic,
		draft.Email, draft.PasswordHash, string(draft.Role), draft.IsActive,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", model.ErrUniqueViolation, draft.Email)
		}
		return 0, fmt.Errorf("%w: failed to insert account: %w", model.ErrStoreFailure, err)
	}

	return id, nil
}

func (r *AccountRepository) Update(ctx context.Context, filter model.AccountFilter, update model.AccountUpdate) (int64, error) {
	query, args, err := buildUpdate(filter, update)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("%w: failed to update account: %w", model.ErrStoreFailure, err)
	}

	return id, nil
}

func (r *AccountRepository) Delete(ctx context.Context, filter model.AccountFilter) (int64, error) {
	where, args, err := whereClause(filter, 1)
	if err != nil {
		return 0, err
	}
	query := `DELETE FROM users WHERE ` + where + ` RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("%w: failed to delete account: %w", model.ErrStoreFailure, err)
	}

	return id, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	var role string
	err := row.Scan(
		&account.ID, &account.ExternalID, &account.GivenName, &account.FamilyName, &account.Patronymic,
		&account.Email, &account.PasswordHash, &role, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return model.Account{}, err
	}
	account.Role = model.Role(role)

	return account, nil
}

// buildUpdate renders an UPDATE touching only the non-nil fields of update.
// An empty update still resolves the row so a missing account is reported.
func buildUpdate(filter model.AccountFilter, update model.AccountUpdate) (string, []any, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.GivenName != nil {
		add("given_name", *update.GivenName)
	}
	if update.FamilyName != nil {
		add("family_name", *update.FamilyName)
	}
	if update.Patronymic != nil {
		add("patronymic", *update.Patronymic)
	}
	if update.PasswordHash != nil {
		add("password_hash", *update.PasswordHash)
	}
	if update.Role != nil {
		add("role", string(*update.Role))
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}

	where, whereArgs, err := whereClause(filter, len(args)+1)
	if err != nil {
		return "", nil, err
	}
	args = append(args, whereArgs...)

	if len(sets) == 0 {
		return `SELECT id FROM users WHERE ` + where, args, nil
	}

	sets = append(sets, "updated_at = NOW()")
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE ` + where + ` RETURNING id`

	return query, args, nil
}

// whereClause renders the filter starting at placeholder $start.
func whereClause(filter model.AccountFilter, start int) (string, []any, error) {
	if filter.IsZero() {
		return "", nil, fmt.Errorf("%w: empty account filter", model.ErrValidation)
	}

	var conds []string
	var args []any
	if filter.Email != "" {
		args = append(args, filter.Email)
		conds = append(conds, fmt.Sprintf("email = $%d", start+len(args)-1))
	}
	if filter.ExternalID != uuid.Nil {
		args = append(args, filter.ExternalID)
		conds = append(conds, fmt.Sprintf("external_id = $%d", start+len(args)-1))
	}

	return strings.Join(conds, " AND "), args, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
