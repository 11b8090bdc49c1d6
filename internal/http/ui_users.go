package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ragportal/portal-ui/internal/backend"
	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/domain/model"
	"github.com/ragportal/portal-ui/internal/http/validation"
)

const (
	usersTableTarget = "users-table"
	maxSearchLength  = 200

	errMsgLoadUsers  = "Failed to load users"
	errMsgCreateUser = "Failed to create user"
	errMsgUpdateUser = "Failed to update user"
	errMsgDeleteUser = "Failed to delete user"
)

//nolint:gochecknoglobals // static page metadata
var (
	usersMeta = PageMeta{Title: "Users - RAG Portal", PageTitle: "Users", CurrentPage: PageUsers}
	roleNames = []string{string(domainauth.RoleAdmin), string(domainauth.RoleUser)}
)

// Users lists users in the caller's tenant, one 0-based page at a time,
// optionally filtered by search.
// GET /app/users.
func (h *UIHandlers) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := getPageParams(q, 0)
	search := strings.TrimSpace(q.Get("search"))
	if len([]rune(search)) > maxSearchLength {
		search = string([]rune(search)[:maxSearchLength])
	}

	fetch := func(ctx context.Context, data map[string]any) error {
		data["Search"] = search
		data["Roles"] = roleNames
		data["RefreshURL"] = buildPageURL(UsersPath, r.URL.Query(), p)
		list, err := api(r).ListUsers(ctx, model.UserListOptions{Page: p.Page, PageSize: p.PageSize, Search: search})
		if err != nil {
			data["ErrorMessage"] = errMsgLoadUsers
			return fmt.Errorf("list users: %w", err)
		}
		data["Users"] = list.Items
		data["Pagination"] = buildPagination(r, UsersPath, p, len(list.Items), list.Total)
		return nil
	}

	if HXTarget(r) == usersTableTarget {
		data := basePageData(r, usersMeta)
		if err := fetch(r.Context(), data); err != nil {
			h.logger().WarnContext(r.Context(), "user list refresh failed", "error", err)
			HTMX(w).Toast(errMsgLoadUsers, ToastError)
			markPageError(data)
		}
		h.renderFragment(w, r, usersTableTarget, data)
		return
	}

	h.Page(w, r, PageSpec{Meta: usersMeta, Fetch: fetch})
}

// CreateUser adds a user to the caller's tenant.
// POST /app/users.
func (h *UIHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := model.CreateUserRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     domainauth.Role(r.PostFormValue("role")),
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		h.finishAction(w, r, actionResult{Message: userMessage(err, errMsgCreateUser), Kind: ToastError, Redirect: UsersPath})
		return
	}
	if msg := validation.Email("Email")(req.Email); msg != "" {
		h.finishAction(w, r, actionResult{Message: msg, Kind: ToastError, Redirect: UsersPath})
		return
	}

	user, err := api(r).CreateUser(r.Context(), req)
	if err != nil {
		h.logger().WarnContext(r.Context(), "user create failed", "error", err)
		h.finishAction(w, r, actionResult{Message: backend.UserMessage(err, errMsgCreateUser), Kind: ToastError, Redirect: UsersPath})
		return
	}

	h.logger().InfoContext(r.Context(), "user created", "user_id", user.ID, "role", string(user.Role))
	h.finishAction(w, r, actionResult{
		Message:  "User created",
		Kind:     ToastSuccess,
		Event:    EventUsersChanged,
		Redirect: UsersPath,
	})
}

// UpdateUser sends only the fields that differ from the values the edit form
// was rendered with.
// POST /app/users/{id}.
func (h *UIHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDFromPath(r)
	if !ok {
		h.finishAction(w, r, actionResult{Message: errMsgUpdateUser, Kind: ToastError, Redirect: UsersPath})
		return
	}

	orig := model.User{
		ID:    id,
		Email: strings.TrimSpace(r.PostFormValue("orig_email")),
		Role:  domainauth.Role(strings.TrimSpace(r.PostFormValue("orig_role"))),
	}
	edit := model.UserEdit{
		Email:    r.PostFormValue("email"),
		Role:     r.PostFormValue("role"),
		Password: r.PostFormValue("password"),
	}

	req, err := model.DiffUser(orig, edit)
	if err != nil {
		kind := ToastError
		if errors.Is(err, model.ErrNoChanges) {
			kind = ToastInfo
		}
		h.finishAction(w, r, actionResult{Message: userMessage(err, errMsgUpdateUser), Kind: kind, Redirect: UsersPath})
		return
	}
	if req.Email != nil {
		if msg := validation.Email("Email")(*req.Email); msg != "" {
			h.finishAction(w, r, actionResult{Message: msg, Kind: ToastError, Redirect: UsersPath})
			return
		}
	}
	if req.Password != nil {
		if msg := validation.MinLength("Password", model.MinPasswordLength)(*req.Password); msg != "" {
			h.finishAction(w, r, actionResult{Message: msg, Kind: ToastError, Redirect: UsersPath})
			return
		}
	}

	if _, err := api(r).UpdateUser(r.Context(), id, req); err != nil {
		h.logger().WarnContext(r.Context(), "user update failed", "user_id", id, "error", err)
		h.finishAction(w, r, actionResult{Message: backend.UserMessage(err, errMsgUpdateUser), Kind: ToastError, Redirect: UsersPath})
		return
	}

	h.finishAction(w, r, actionResult{
		Message:  "User updated successfully",
		Kind:     ToastSuccess,
		Event:    EventUsersChanged,
		Redirect: UsersPath,
	})
}

// DeleteUser removes a user from the caller's tenant.
// POST /app/users/{id}/delete.
func (h *UIHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDFromPath(r)
	if !ok {
		h.finishAction(w, r, actionResult{Message: errMsgDeleteUser, Kind: ToastError, Redirect: UsersPath})
		return
	}

	if err := api(r).DeleteUser(r.Context(), id); err != nil {
		h.logger().WarnContext(r.Context(), "user delete failed", "user_id", id, "error", err)
		h.finishAction(w, r, actionResult{Message: backend.UserMessage(err, errMsgDeleteUser), Kind: ToastError, Redirect: UsersPath})
		return
	}

	h.logger().InfoContext(r.Context(), "user deleted", "user_id", id)
	h.finishAction(w, r, actionResult{
		Message:  "User deleted",
		Kind:     ToastSuccess,
		Event:    EventUsersChanged,
		Redirect: UsersPath,
	})
}

func userIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
