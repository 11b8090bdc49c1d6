package model

import (
	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

// ChangePasswordRequest is sent to the backend to rotate the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordChange is the raw profile form including the confirmation field.
type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Request validates the form and returns the request to send.
func (f PasswordChange) Request() (ChangePasswordRequest, error) {
	if f.CurrentPassword == "" || f.NewPassword == "" || f.ConfirmPassword == "" {
		return ChangePasswordRequest{}, apperrors.Validation("All fields are required")
	}
	if f.NewPassword != f.ConfirmPassword {
		return ChangePasswordRequest{}, apperrors.ValidationField(
			"confirm_password", "New password and confirmation do not match")
	}
	if err := validatePasswordLength("new_password", f.NewPassword, "New password"); err != nil {
		return ChangePasswordRequest{}, err
	}
	if f.NewPassword == f.CurrentPassword {
		return ChangePasswordRequest{}, apperrors.ValidationField(
			"new_password", "New password must be different from current password")
	}
	return ChangePasswordRequest{CurrentPassword: f.CurrentPassword, NewPassword: f.NewPassword}, nil
}
