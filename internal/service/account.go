package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/password"
)

// Account implements the account lifecycle: registration, login, profile
// and password changes, role management and deletion.
type Account struct {
	transactor      model.Transactor
	hasher          model.PasswordHasher
	tokens          model.TokenManager
	elevationSecret string
	logger          *logger.Logger
}

// NewAccount creates a new Account service.
func NewAccount(
	transactor model.Transactor,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	elevationSecret string,
	logger *logger.Logger,
) *Account {
	return &Account{
		transactor:      transactor,
		hasher:          hasher,
		tokens:          tokens,
		elevationSecret: elevationSecret,
		logger:          logger,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active simple_user account.
func (s *Account) Register(ctx context.Context, params model.RegisterParams) (model.Account, error) {
	email := NormalizeEmail(params.Email)

	s.logger.Debug("Account service: starting registration",
		"email", email)

	if err := password.CheckPolicy(params.Password, params.ConfirmPassword); err != nil {
		s.logger.Info("Account service: registration rejected by password policy",
			"email", email,
			"error", err.Error())
		return model.Account{}, err
	}

	hash, err := s.hasher.Hash(ctx, params.Password)
	if err != nil {
		s.logger.Error("Account service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	draft := model.AccountDraft{
		ExternalID:   uuid.New(),
		GivenName:    params.GivenName,
		FamilyName:   params.FamilyName,
		Patronymic:   params.Patronymic,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSimpleUser,
		IsActive:     true,
	}

	var account model.Account
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		_, err := accounts.FindByEmail(ctx, email)
		if err == nil {
			return model.ErrDuplicateAccount
		}
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to get account by email: %w", err)
		}

		id, err := accounts.Insert(ctx, draft)
		if errors.Is(err, model.ErrUniqueViolation) {
			return model.ErrDuplicateAccount
		}
		if err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}

		account = model.Account{
			ID:           id,
			ExternalID:   draft.ExternalID,
			GivenName:    draft.GivenName,
			FamilyName:   draft.FamilyName,
			Patronymic:   draft.Patronymic,
			Email:        draft.Email,
			PasswordHash: draft.PasswordHash,
			Role:         draft.Role,
			IsActive:     draft.IsActive,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateAccount) {
			s.logger.Info("Account service: account already exists",
				"email", email)
			return model.Account{}, err
		}
		s.logger.Error("Account service: failed to register account",
			"email", email,
			"error", err.Error())
		return model.Account{}, err
	}

	s.logger.Info("Account service: account registered",
		"email", email,
		"external_id", account.ExternalID)

	return account, nil
}

// Login verifies credentials and issues an access token. Unknown email,
// deactivated account and wrong password all yield ErrInvalidCredentials and
// each runs exactly one password comparison.
func (s *Account) Login(ctx context.Context, email, plaintext string) (string, error) {
	email = NormalizeEmail(email)

	s.logger.Debug("Account service: starting login",
		"email", email)

	var account model.Account
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		var err error
		account, err = accounts.FindByEmail(ctx, email)
		return err
	})
	if errors.Is(err, model.ErrNotFound) {
		// empty hash runs the decoy comparison
		s.hasher.Verify(ctx, plaintext, "")
		s.logger.Info("Account service: login for unknown email",
			"email", email)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("Account service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get account by email: %w", err)
	}

	matched := s.hasher.Verify(ctx, plaintext, account.PasswordHash)
	if !account.IsActive {
		s.logger.Info("Account service: login for deactivated account",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	if !matched {
		s.logger.Info("Account service: login with wrong password",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(model.Claims{
		Email: account.Email,
		Role:  account.Role,
	})
	if err != nil {
		s.logger.Error("Account service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Account service: login succeeded",
		"email", email,
		"role", account.Role)

	return token, nil
}

// GetProfile returns the caller's account.
func (s *Account) GetProfile(ctx context.Context, identity model.Claims) (model.Account, error) {
	var account model.Account
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		var err error
		account, err = accounts.FindByEmail(ctx, identity.Email)
		return err
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("Account service: failed to get profile",
				"email", identity.Email,
				"error", err.Error())
		}
		return model.Account{}, err
	}

	return account, nil
}

// ChangePassword replaces the caller's password after verifying the current
// one. Both bcrypt calls run between the read and the write transaction; the
// write is refused if the stored hash changed in between.
func (s *Account) ChangePassword(ctx context.Context, identity model.Claims, params model.ChangePasswordParams) error {
	s.logger.Debug("Account service: starting password change",
		"email", identity.Email)

	err := s.changePassword(ctx, identity, params)
	if err != nil {
		s.logger.Info("Account service: password change failed",
			"email", identity.Email,
			"error", err.Error())
		return err
	}

	s.logger.Info("Account service: password changed",
		"email", identity.Email)

	return nil
}

func (s *Account) changePassword(ctx context.Context, identity model.Claims, params model.ChangePasswordParams) error {
	var account model.Account
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		var err error
		account, err = accounts.FindByEmail(ctx, identity.Email)
		return err
	})
	if err != nil {
		return err
	}
	if !account.IsActive {
		return model.ErrForbidden
	}

	if !s.hasher.Verify(ctx, params.CurrentPassword, account.PasswordHash) {
		return model.ErrInvalidCredentials
	}

	if err := password.CheckPolicy(params.NewPassword, params.ConfirmNewPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(ctx, params.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		current, err := accounts.FindByExternalID(ctx, account.ExternalID)
		if err != nil {
			return err
		}
		if !current.IsActive {
			return model.ErrForbidden
		}
		// verified against a hash that has since been replaced
		if current.PasswordHash != account.PasswordHash {
			return model.ErrInvalidCredentials
		}

		_, err = accounts.Update(ctx, model.ByExternalID(account.ExternalID), model.AccountUpdate{PasswordHash: &hash})
		return err
	})
}

// UpdateProfile applies a partial name update to the caller's account.
func (s *Account) UpdateProfile(ctx context.Context, identity model.Claims, update model.ProfileUpdate) (model.Account, error) {
	var account model.Account
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		var err error
		account, err = accounts.FindByEmail(ctx, identity.Email)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return model.ErrForbidden
		}

		change := model.AccountUpdate{
			GivenName:  update.GivenName,
			FamilyName: update.FamilyName,
			Patronymic: update.Patronymic,
		}
		if change.IsEmpty() {
			return nil
		}

		if _, err := accounts.Update(ctx, model.ByExternalID(account.ExternalID), change); err != nil {
			return err
		}

		account, err = accounts.FindByExternalID(ctx, account.ExternalID)
		return err
	})
	if err != nil {
		s.logger.Info("Account service: profile update failed",
			"email", identity.Email,
			"error", err.Error())
		return model.Account{}, err
	}

	s.logger.Info("Account service: profile updated",
		"email", identity.Email)

	return account, nil
}

// activeCaller rejects tokens whose account was deactivated or removed after
// the token was issued.
func activeCaller(ctx context.Context, accounts model.AccountStore, identity model.Claims) error {
	caller, err := accounts.FindByEmail(ctx, identity.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("failed to get caller account: %w", err)
	}
	if !caller.IsActive {
		return model.ErrForbidden
	}
	return nil
}

// ChangeRole lets an admin move another account to targetRole.
func (s *Account) ChangeRole(ctx context.Context, identity model.Claims, targetRole model.Role, targetID uuid.UUID) error {
	if !identity.IsAdmin() {
		s.logger.Info("Account service: role change by non-admin",
			"email", identity.Email)
		return model.ErrForbidden
	}
	if !targetRole.Valid() {
		return fmt.Errorf("%w: unknown role %q", model.ErrValidation, targetRole)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		if err := activeCaller(ctx, accounts, identity); err != nil {
			return err
		}

		target, err := accounts.FindByExternalID(ctx, targetID)
		if err != nil {
			return err
		}
		if target.Role == targetRole || target.Role == model.RoleAdmin {
			return model.ErrInvalidTransition
		}

		_, err = accounts.Update(ctx, model.ByExternalID(targetID), model.AccountUpdate{Role: &targetRole})
		return err
	})
	if err != nil {
		s.logger.Info("Account service: role change failed",
			"email", identity.Email,
			"target", targetID,
			"role", targetRole,
			"error", err.Error())
		return err
	}

	s.logger.Info("Account service: role changed",
		"email", identity.Email,
		"target", targetID,
		"role", targetRole)

	return nil
}

// ElevateSelf grants the caller the admin role when secret matches the
// configured elevation secret.
func (s *Account) ElevateSelf(ctx context.Context, identity model.Claims, secret string) error {
	if identity.IsAdmin() {
		return model.ErrForbidden
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.elevationSecret)) != 1 {
		s.logger.Info("Account service: elevation with wrong secret",
			"email", identity.Email)
		return model.ErrInvalidCredentials
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		account, err := accounts.FindByEmail(ctx, identity.Email)
		if err != nil {
			return err
		}
		if !account.IsActive || account.Role == model.RoleAdmin {
			return model.ErrForbidden
		}

		role := model.RoleAdmin
		_, err = accounts.Update(ctx, model.ByExternalID(account.ExternalID), model.AccountUpdate{Role: &role})
		return err
	})
	if err != nil {
		s.logger.Info("Account service: elevation failed",
			"email", identity.Email,
			"error", err.Error())
		return err
	}

	s.logger.Warn("Account service: account elevated to admin",
		"email", identity.Email)

	return nil
}

// SoftDelete deactivates the caller's own account. A non-empty targetEmail
// must name the caller.
func (s *Account) SoftDelete(ctx context.Context, identity model.Claims, targetEmail string) error {
	email := identity.Email
	if targetEmail != "" && NormalizeEmail(targetEmail) != email {
		s.logger.Info("Account service: soft delete of another account",
			"email", email,
			"target", targetEmail)
		return model.ErrForbidden
	}

	inactive := false
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		_, err := accounts.Update(ctx, model.ByEmail(email), model.AccountUpdate{IsActive: &inactive})
		return err
	})
	if err != nil {
		s.logger.Info("Account service: soft delete failed",
			"email", email,
			"error", err.Error())
		return err
	}

	s.logger.Info("Account service: account deactivated",
		"email", email)

	return nil
}

// HardDelete permanently removes a non-admin account. Only admins may call it.
func (s *Account) HardDelete(ctx context.Context, identity model.Claims, targetEmail string) error {
	if !identity.IsAdmin() {
		return model.ErrForbidden
	}
	target := NormalizeEmail(targetEmail)

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, accounts model.AccountStore) error {
		if err := activeCaller(ctx, accounts, identity); err != nil {
			return err
		}

		account, err := accounts.FindByEmail(ctx, target)
		if err != nil {
			return err
		}
		if account.Role == model.RoleAdmin {
			return model.ErrForbidden
		}

		_, err = accounts.Delete(ctx, model.ByExternalID(account.ExternalID))
		return err
	})
	if err != nil {
		s.logger.Info("Account service: hard delete failed",
			"email", identity.Email,
			"target", target,
			"error", err.Error())
		return err
	}

	s.logger.Warn("Account service: account deleted",
		"email", identity.Email,
		"target", target)

	return nil
}
