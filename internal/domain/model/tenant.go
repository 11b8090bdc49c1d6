package model

import (
	"strings"

	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

// TenantRegisterRequest creates a tenant together with its first admin.
type TenantRegisterRequest struct {
	TenantName    string `json:"tenant_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// Tenant is the backend's view of a registered tenant.
type Tenant struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TenantRegistration is the raw registration form including the confirmation field.
type TenantRegistration struct {
	TenantName      string
	AdminEmail      string
	AdminPassword   string
	ConfirmPassword string
}

// Request validates the form and returns the trimmed request to send.
// Passwords are compared as typed.
func (f TenantRegistration) Request() (TenantRegisterRequest, error) {
	req := TenantRegisterRequest{
		TenantName:    strings.TrimSpace(f.TenantName),
		AdminEmail:    strings.TrimSpace(f.AdminEmail),
		AdminPassword: f.AdminPassword,
	}

	if req.TenantName == "" || req.AdminEmail == "" || req.AdminPassword == "" || f.ConfirmPassword == "" {
		return TenantRegisterRequest{}, apperrors.Validation("All fields are required")
	}
	if req.AdminPassword != f.ConfirmPassword {
		return TenantRegisterRequest{}, apperrors.ValidationField("confirm_password", "Passwords do not match")
	}
	if err := validatePasswordLength("admin_password", req.AdminPassword, "Password"); err != nil {
		return TenantRegisterRequest{}, err
	}
	return req, nil
}
