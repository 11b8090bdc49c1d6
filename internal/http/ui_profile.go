package httpx

import (
	"net/http"

	"github.com/ragportal/portal-ui/internal/domain/model"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

const errMsgChangePassword = "Failed to change password"

//nolint:gochecknoglobals // static page metadata
var profileMeta = PageMeta{Title: "Profile - RAG Portal", PageTitle: "Profile", CurrentPage: PageProfile}

// Profile shows the signed-in identity and the password form.
// GET /app/profile.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: profileMeta})
}

// ChangePassword rotates the caller's password. HTMX callers get the form
// back, cleared on success; failures keep what was typed out of the response.
// POST /app/profile/password.
func (h *UIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	form := model.PasswordChange{
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	req, err := form.Request()
	if err == nil {
		if err = api(r).ChangePassword(r.Context(), req); err != nil {
			h.logger().WarnContext(r.Context(), "password change failed", "error", err)
		}
	}

	if err != nil {
		msg := userMessage(err, errMsgChangePassword)
		if !IsHTMX(r) {
			RenderError(ErrorOpts{
				W: w, R: r,
				Err:      err,
				Fallback: errMsgChangePassword,
				Renderer: h.renderPage,
				PageMeta: profileMeta,
			})
			return
		}
		data := basePageData(r, profileMeta)
		if field := apperrors.GetField(err); field != "" {
			data["Errors"] = map[string]string{field: apperrors.GetMessage(err)}
		}
		HTMX(w).Toast(msg, ToastError)
		h.renderFragment(w, r, "password-form", data)
		return
	}

	h.logger().InfoContext(r.Context(), "password changed")
	if !IsHTMX(r) {
		http.Redirect(w, r, ProfilePath, http.StatusSeeOther)
		return
	}
	HTMX(w).Toast("Password changed successfully", ToastSuccess)
	h.renderFragment(w, r, "password-form", basePageData(r, profileMeta))
}
