package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/api/http/httpx"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// AccountService defines account lifecycle operations.
type AccountService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, identity model.Claims) (model.Account, error)
	ChangePassword(ctx context.Context, identity model.Claims, params model.ChangePasswordParams) error
	UpdateProfile(ctx context.Context, identity model.Claims, update model.ProfileUpdate) (model.Account, error)
	ChangeRole(ctx context.Context, identity model.Claims, targetRole model.Role, targetID uuid.UUID) error
	ElevateSelf(ctx context.Context, identity model.Claims, secret string) error
	SoftDelete(ctx context.Context, identity model.Claims, targetEmail string) error
	HardDelete(ctx context.Context, identity model.Claims, targetEmail string) error
}

// Account handles HTTP endpoints for accounts.
type Account struct {
	service        AccountService
	contextManager model.ContextManager
	tokenTTL       time.Duration
	secureCookie   bool
	validate       *validator.Validate
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(
	service AccountService,
	contextManager model.ContextManager,
	tokenTTL time.Duration,
	secureCookie bool,
	logger *logger.Logger,
) *Account {
	return &Account{
		service:        service,
		contextManager: contextManager,
		tokenTTL:       tokenTTL,
		secureCookie:   secureCookie,
		validate:       newValidator(),
		logger:         logger,
	}
}

// decode reads and validates a JSON body. With optional set an empty body
// leaves target untouched.
func (h *Account) decode(w http.ResponseWriter, r *http.Request, target any, optional bool) error {
	if err := httpx.DecodeJSON(w, r, target); err != nil {
		if optional && errors.Is(err, httpx.ErrEmptyBody) {
			return nil
		}
		return fmt.Errorf("%w: %s", model.ErrValidation, err.Error())
	}
	if err := h.validate.Struct(target); err != nil {
		return validationError(err)
	}
	return nil
}

func (h *Account) claims(w http.ResponseWriter, r *http.Request) (model.Claims, bool) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing access token")
	}
	return claims, ok
}

func (h *Account) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, model.ErrValidation) {
		h.logger.Debug("Account handler: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}
	httpx.RespondError(w, err)
}

// Register creates a new account.
func (h *Account) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.service.Register(r.Context(), model.RegisterParams{
		GivenName:       req.GivenName,
		FamilyName:      req.FamilyName,
		Patronymic:      req.Patronymic,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]string{
		"external_id": account.ExternalID.String(),
	})
}

// Login verifies credentials and sets the access token cookie.
func (h *Account) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.SetTokenCookie(w, token, h.tokenTTL, h.secureCookie)
	httpx.JSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Logout clears the access token cookie.
func (h *Account) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearTokenCookie(w, h.secureCookie)
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// GetProfile returns the caller's profile.
func (h *Account) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	account, err := h.service.GetProfile(r.Context(), identity)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, newProfileResponse(account))
}

// UpdateProfile applies a partial name update to the caller's profile.
func (h *Account) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.service.UpdateProfile(r.Context(), identity, model.ProfileUpdate{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Patronymic: req.Patronymic,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, newProfileResponse(account))
}

// ChangePassword replaces the caller's password.
func (h *Account) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	err := h.service.ChangePassword(r.Context(), identity, model.ChangePasswordParams{
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "password changed"})
}

// ElevateSelf grants the caller the admin role. The cookie is cleared so the
// next login issues a token with the new role.
func (h *Account) ElevateSelf(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req elevateRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.ElevateSelf(r.Context(), identity, req.Secret); err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.ClearTokenCookie(w, h.secureCookie)
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "role changed to admin, please log in again"})
}

// SoftDelete deactivates the caller's account and clears the cookie.
func (h *Account) SoftDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req softDeleteRequest
	if err := h.decode(w, r, &req, true); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.SoftDelete(r.Context(), identity, req.Email); err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.ClearTokenCookie(w, h.secureCookie)
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "account deactivated"})
}

// ChangeRole changes the role of the account named in the URL.
func (h *Account) ChangeRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "external_id"))
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: external_id must be a UUID", model.ErrValidation))
		return
	}

	var req changeRoleRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.ChangeRole(r.Context(), identity, role, targetID); err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "role changed"})
}

// HardDelete permanently removes the account named in the body.
func (h *Account) HardDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req emailRequest
	if err := h.decode(w, r, &req, false); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.HardDelete(r.Context(), identity, req.Email); err != nil {
		h.fail(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, messageResponse{Message: "account deleted"})
}
