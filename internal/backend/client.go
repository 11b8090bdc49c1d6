// Package backend is the HTTP client for the RAG backend API. Every request
// goes through a BearerTransport bound to one token slot.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"github.com/ragportal/portal-ui/internal/ports"
)

const maxErrorBody = 64 << 10

// Options groups dependencies for Client.
type Options struct {
	// BaseURL is the fixed backend origin, e.g. http://127.0.0.1:8000.
	BaseURL string
	// Tokens is the slot the transport reads the bearer token from.
	Tokens ports.TokenStorage
	// Transport is the underlying round tripper (optional, defaults to http.DefaultTransport).
	Transport http.RoundTripper
	// Timeout bounds each request (optional).
	Timeout time.Duration
	// DetailPaths are JMESPath expressions for error messages (optional).
	DetailPaths []string
	// OnUnauthorized runs after a 401 on an authenticated feature call (optional).
	OnUnauthorized func(ctx context.Context)
	Logger         *slog.Logger
}

// Client calls the backend on behalf of one session.
type Client struct {
	base   *url.URL
	http   *http.Client
	detail *DetailExtractor
	logger *slog.Logger
}

var _ ports.PortalAPI = (*Client)(nil)

// New constructs a Client. BaseURL must be absolute.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base url %q must be absolute", opts.BaseURL)
	}

	detail, err := NewDetailExtractor(opts.DetailPaths)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &BearerTransport{
				Base:           opts.Transport,
				Tokens:         opts.Tokens,
				OnUnauthorized: opts.OnUnauthorized,
				Logger:         logger,
			},
		},
		detail: detail,
		logger: logger,
	}, nil
}

// request describes one backend call.
type request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        io.Reader
	ContentType string
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and decodes a 2xx JSON body into out (when non-nil).
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, in request, out any) error {
	req, err := http.NewRequestWithContext(ctx, in.Method, c.endpoint(in.Path, in.Query), in.Body)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s", in.Method, in.Path)
	}
	req.Header.Set("Accept", "application/json")
	if in.ContentType != "" {
		req.Header.Set("Content-Type", in.ContentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeBackend, "%s %s", in.Method, in.Path)
	}
	defer func() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close backend response body", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method: in.Method,
			Path:   in.Path,
			Status: resp.StatusCode,
			Detail: c.detail.Extract(body),
			Body:   body,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeBackend, "decode %s %s", in.Method, in.Path)
	}
	return nil
}

// doJSON encodes in (when non-nil) as the JSON request body.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	req := request{Method: method, Path: path}
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s %s", method, path)
		}
		req.Body = &buf
		req.ContentType = "application/json"
	}
	return c.do(ctx, req, out)
}
