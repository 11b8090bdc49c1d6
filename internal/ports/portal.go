package ports

import (
	"context"
	"io"

	"github.com/ragportal/portal-ui/internal/domain/model"
)

// ChatAPI answers questions over the tenant's documents.
type ChatAPI interface {
	Ask(ctx context.Context, q model.ChatQuery) (model.ChatAnswer, error)
}

// DocumentsAPI manages the tenant's document library.
type DocumentsAPI interface {
	ListDocuments(ctx context.Context, page, limit int) (model.DocumentPage, error)
	UploadDocument(ctx context.Context, in UploadInput) (model.Document, error)
	UploadURL(ctx context.Context, rawURL string) (model.Document, error)
	IngestDocument(ctx context.Context, id int64) error
}

// UploadInput carries a file to forward as a multipart upload.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UsersAPI manages users within the caller's tenant.
type UsersAPI interface {
	ListUsers(ctx context.Context, opts model.UserListOptions) (model.UserList, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// AccountAPI covers unauthenticated tenant registration and the caller's own password.
type AccountAPI interface {
	RegisterTenant(ctx context.Context, req model.TenantRegisterRequest) (model.Tenant, error)
	ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error
}

// PortalAPI is the full backend surface used by the feature screens.
type PortalAPI interface {
	AuthAPI
	ChatAPI
	DocumentsAPI
	UsersAPI
	AccountAPI
}
