package model

import (
	"strings"
	"unicode/utf8"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

// MinPasswordLength is the shortest password the portal will forward.
const MinPasswordLength = 8

// ErrNoChanges is returned by DiffUser when an edit would send an empty patch.
var ErrNoChanges = apperrors.Validation("No changes to save")

// User is a member of the caller's tenant.
type User struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Role      domainauth.Role `json:"role"`
	CreatedAt string          `json:"created_at"`
}

// UserList is one page of tenant users plus the unpaged total.
type UserList struct {
	Items []User `json:"items"`
	Total int    `json:"total"`
}

// UserListOptions selects a page of users. Page is 0-based.
type UserListOptions struct {
	Page     int
	PageSize int
	Search   string
}

// Skip is the backend offset for the requested page.
func (o UserListOptions) Skip() int {
	if o.Page < 0 || o.PageSize <= 0 {
		return 0
	}
	return o.Page * o.PageSize
}

// CreateUserRequest creates a user in the caller's tenant.
type CreateUserRequest struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domainauth.Role `json:"role"`
}

// Normalize trims user-entered fields in place.
// The password is sent exactly as typed.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Role = domainauth.Role(strings.ToLower(strings.TrimSpace(string(r.Role))))
}

// Validate validates the CreateUserRequest fields.
func (r *CreateUserRequest) Validate() error {
	if r.Email == "" {
		return apperrors.ValidationField("email", "Email is required")
	}
	if err := validatePasswordLength("password", r.Password, "Password"); err != nil {
		return err
	}
	if !r.Role.Valid() {
		return apperrors.ValidationField("role", "Role must be admin or user")
	}
	return nil
}

// UpdateUserRequest is a partial update; nil fields are left untouched by the backend.
type UpdateUserRequest struct {
	Email    *string          `json:"email,omitempty"`
	Role     *domainauth.Role `json:"role,omitempty"`
	Password *string          `json:"password,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Email == nil && r.Role == nil && r.Password == nil
}

// UserEdit is the raw form input for editing a user.
type UserEdit struct {
	Email    string
	Role     string
	Password string
}

// DiffUser builds a patch holding only the fields that differ from orig.
// Blank inputs mean "keep". A blank password keeps the current one.
func DiffUser(orig User, edit UserEdit) (UpdateUserRequest, error) {
	var req UpdateUserRequest

	if email := strings.TrimSpace(edit.Email); email != "" && email != orig.Email {
		req.Email = &email
	}
	if roleRaw := strings.TrimSpace(edit.Role); roleRaw != "" {
		role, err := domainauth.ParseRole(roleRaw)
		if err != nil {
			return UpdateUserRequest{}, apperrors.ValidationField("role", "Role must be admin or user")
		}
		if role != orig.Role {
			req.Role = &role
		}
	}
	if password := strings.TrimSpace(edit.Password); password != "" {
		req.Password = &password
	}

	if req.IsEmpty() {
		return UpdateUserRequest{}, ErrNoChanges
	}
	return req, nil
}

func validatePasswordLength(field, password, label string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperrors.ValidationField(field, label+" must be at least 8 characters")
	}
	return nil
}
