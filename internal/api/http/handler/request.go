package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/authkeeper/internal/model"
)

type registerRequest struct {
	GivenName       string `json:"given_name" validate:"required,min=2,max=50"`
	FamilyName      string `json:"family_name" validate:"required,min=2,max=50"`
	Patronymic      string `json:"patronymic" validate:"required,min=2,max=50"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=50"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required,max=72"`
	NewPassword        string `json:"new_password" validate:"required,min=8,max=50"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}

type updateProfileRequest struct {
	GivenName  *string `json:"given_name" validate:"omitempty,min=2,max=50"`
	FamilyName *string `json:"family_name" validate:"omitempty,min=2,max=50"`
	Patronymic *string `json:"patronymic" validate:"omitempty,min=2,max=50"`
}

type elevateRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin simple_user"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type softDeleteRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type profileResponse struct {
	ExternalID string `json:"external_id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Patronymic string `json:"patronymic"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

func newProfileResponse(a model.Account) profileResponse {
	return profileResponse{
		ExternalID: a.ExternalID.String(),
		GivenName:  a.GivenName,
		FamilyName: a.FamilyName,
		Patronymic: a.Patronymic,
		Email:      a.Email,
		Role:       a.Role.String(),
		IsActive:   a.IsActive,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// newValidator returns a validator reporting fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator output into a model.ErrValidation.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", model.ErrValidation, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return fmt.Errorf("%w: %s", model.ErrValidation, strings.Join(msgs, "; "))
}
