package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/domain/model"
	"github.com/ragportal/portal-ui/internal/http/validation"
)

const (
	registeredNotice = "Tenant registered. You can now log in."
	maxEmailLength   = 254
	maxTenantLength  = 200
)

//nolint:gochecknoglobals // static page metadata
var (
	loginMeta    = PageMeta{Title: "Sign in - RAG Portal", PageTitle: "Sign in", CurrentPage: PageLogin}
	registerMeta = PageMeta{Title: "Register tenant - RAG Portal", PageTitle: "Register tenant", CurrentPage: PageRegister}
)

// LoginPage renders the sign-in form. Authenticated visitors go straight to chat.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if MustSession(r.Context()).Session.User() != nil {
		redirect(w, r, HomePath)
		return
	}
	data := basePageData(r, loginMeta)
	if r.URL.Query().Get("registered") == "1" {
		data["Notice"] = registeredNotice
	}
	h.renderPage(w, r, data)
}

// Login exchanges the submitted credentials for a session.
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	form := map[string]any{"Email": email}

	v := validation.New().
		Validate("email", email, validation.Required("Email", maxEmailLength), validation.Email("Email")).
		Validate("password", password, validation.Present("Password"))
	if !v.Valid() {
		RenderError(ErrorOpts{
			W: w, R: r,
			FieldErrors: v.Errors(),
			Renderer:    h.renderPage,
			PageMeta:    loginMeta,
			Data:        form,
			StatusCode:  http.StatusUnprocessableEntity,
		})
		return
	}

	bs := MustSession(r.Context())
	if err := bs.Session.LoginUser(r.Context(), domainauth.Credentials{Email: email, Password: password}); err != nil {
		h.logger().InfoContext(r.Context(), "login failed", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:      err,
			Fallback: "Login failed",
			Renderer: h.renderPage,
			PageMeta: loginMeta,
			Data:     form,
		})
		return
	}

	redirect(w, r, HomePath)
}

// RegisterPage renders the tenant registration form.
// GET /register-tenant.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, basePageData(r, registerMeta))
}

// RegisterTenant creates a tenant with its first admin and sends the visitor
// to the sign-in page.
// POST /register-tenant.
func (h *UIHandlers) RegisterTenant(w http.ResponseWriter, r *http.Request) {
	form := model.TenantRegistration{
		TenantName:      r.PostFormValue("tenant_name"),
		AdminEmail:      r.PostFormValue("admin_email"),
		AdminPassword:   r.PostFormValue("admin_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	echo := map[string]any{
		"TenantName": strings.TrimSpace(form.TenantName),
		"AdminEmail": strings.TrimSpace(form.AdminEmail),
	}

	req, err := form.Request()
	if err == nil {
		v := validation.New().
			Validate("tenant_name", req.TenantName, validation.Required("Tenant name", maxTenantLength)).
			Validate("admin_email", req.AdminEmail, validation.Email("Admin email"))
		if !v.Valid() {
			RenderError(ErrorOpts{
				W: w, R: r,
				FieldErrors: v.Errors(),
				Renderer:    h.renderPage,
				PageMeta:    registerMeta,
				Data:        echo,
				StatusCode:  http.StatusUnprocessableEntity,
			})
			return
		}
		_, err = MustSession(r.Context()).API.RegisterTenant(r.Context(), req)
		if err != nil {
			h.logger().WarnContext(r.Context(), "tenant registration failed", "error", err)
		}
	}
	if err != nil {
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:      err,
			Fallback: "Failed to register tenant",
			Renderer: h.renderPage,
			PageMeta: registerMeta,
			Data:     echo,
		})
		return
	}

	redirect(w, r, LoginPath+"?registered=1")
}

// Logout drops the browser's token and returns to the sign-in page.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	MustSession(r.Context()).Session.Logout(r.Context())
	redirect(w, r, LoginPath)
}

// redirect navigates the browser; htmx callers get Hx-Redirect instead of a 303.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
