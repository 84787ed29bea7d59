package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByExternalID(ctx context.Context, externalID uuid.UUID) (Account, error)
	Insert(ctx context.Context, draft AccountDraft) (int64, error)
	Update(ctx context.Context, filter AccountFilter, update AccountUpdate) (int64, error)
	Delete(ctx context.Context, filter AccountFilter) (int64, error)
}

// Transactor runs fn inside a single store transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, accounts AccountStore) error) error
}

// Account represents a stored identity record.
type Account struct {
	ID           int64
	ExternalID   uuid.UUID
	GivenName    string
	FamilyName   string
	Patronymic   string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountDraft contains the fields required to insert a new account.
type AccountDraft struct {
	ExternalID   uuid.UUID
	GivenName    string
	FamilyName   string
	Patronymic   string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
}

// AccountFilter selects a single account either by email or by external ID.
type AccountFilter struct {
	Email      string
	ExternalID uuid.UUID
}

// ByEmail builds a filter matching the account with the given email.
func ByEmail(email string) AccountFilter {
	return AccountFilter{Email: email}
}

// ByExternalID builds a filter matching the account with the given external ID.
func ByExternalID(id uuid.UUID) AccountFilter {
	return AccountFilter{ExternalID: id}
}

// IsZero reports whether the filter selects nothing.
func (f AccountFilter) IsZero() bool {
	return f.Email == "" && f.ExternalID == uuid.Nil
}

// AccountUpdate lists the fields to change. Nil fields are left untouched.
type AccountUpdate struct {
	GivenName    *string
	FamilyName   *string
	Patronymic   *string
	PasswordHash *string
	Role         *Role
	IsActive     *bool
}

// IsEmpty reports whether the update changes nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u.GivenName == nil && u.FamilyName == nil && u.Patronymic == nil &&
		u.PasswordHash == nil && u.Role == nil && u.IsActive == nil
}

// RegisterParams contains registration input.
type RegisterParams struct {
	GivenName       string
	FamilyName      string
	Patronymic      string
	Email           string
	Password        string
	ConfirmPassword string
}

// ChangePasswordParams contains password change input.
type ChangePasswordParams struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// ProfileUpdate contains the name fields a user may edit. Nil fields are kept.
type ProfileUpdate struct {
	GivenName  *string
	FamilyName *string
	Patronymic *string
}
