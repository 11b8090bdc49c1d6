package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/ragportal/portal-ui/internal/backend"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

// ErrorRenderer is a function that renders an error template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional, can be nil if only field errors)
	Err error
	// Fallback is shown when Err carries no user-facing message.
	Fallback string
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	// Renderer is typically h.renderPage
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data preserves form input across the re-render.
	Data map[string]any
	// StatusCode overrides DetermineErrorStatus when non-zero.
	StatusCode int
	// ShowToast also sends the message as a showToast event.
	ShowToast bool
}

// DetermineErrorStatus picks the status for a re-rendered form.
// Validation failures are 422; backend 4xx statuses pass through; anything
// else returns 0 so the caller keeps the default 200.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return 0
	}
	if apperrors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return 0
}

// RenderError re-renders a page with a general message and any field errors
// derived from err.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)

	fieldErrors := opts.FieldErrors
	if field := apperrors.GetField(opts.Err); field != "" {
		if fieldErrors == nil {
			fieldErrors = map[string]string{}
		}
		fieldErrors[field] = apperrors.GetMessage(opts.Err)
	}
	builder.WithFieldErrors(fieldErrors)

	message := userMessage(opts.Err, opts.Fallback)
	if message == "" && len(fieldErrors) > 0 {
		message = firstFieldError(fieldErrors)
	}
	if message != "" {
		builder.WithError(message)
	}

	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && message != "" {
		HTMX(opts.W).Toast(message, ToastError)
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err)
	}
	if status != 0 {
		opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		opts.W.WriteHeader(status)
	}

	opts.Renderer(opts.W, opts.R, builder.Build())
}

// userMessage maps err to the text shown to the user: a validation message,
// the backend's detail, or fallback. Returns "" for a nil error.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	case errors.Is(err, context.Canceled):
		return "Request was canceled."
	case apperrors.IsValidation(err):
		if msg := apperrors.GetMessage(err); msg != "" {
			return msg
		}
	}

	if fallback == "" {
		fallback = "An error occurred. Please try again."
	}
	return backend.UserMessage(err, fallback)
}

func firstFieldError(fieldErrors map[string]string) string {
	for _, field := range []string{"email", "tenant_name", "admin_email", "password", "admin_password", "confirm_password"} {
		if msg, ok := fieldErrors[field]; ok {
			return msg
		}
	}
	for _, msg := range fieldErrors {
		return msg
	}
	return ""
}
