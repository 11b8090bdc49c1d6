package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// ErrUnauthorized matches any APIError carrying a 401 status via errors.Is.
var ErrUnauthorized = errors.New("backend: unauthorized")

// APIError is a non-2xx response from the backend, returned unchanged to callers.
type APIError struct {
	Method string
	Path   string
	Status int
	// Detail is the human-readable message extracted from the body, if any.
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Detail returns the backend-provided message carried by err, or "".
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// UserMessage returns the backend detail when present, else fallback.
func UserMessage(err error, fallback string) string {
	if d := Detail(err); d != "" {
		return d
	}
	return fallback
}

// DetailExtractor pulls a message out of an error body by trying JMESPath
// expressions in order until one yields a non-empty string.
type DetailExtractor struct {
	paths []string
}

// DefaultDetailPaths covers FastAPI's HTTPException and validation error shapes.
func DefaultDetailPaths() []string {
	return []string{"detail", "detail[0].msg", "message"}
}

// NewDetailExtractor compiles each expression up front so a typo fails at startup.
func NewDetailExtractor(paths []string) (*DetailExtractor, error) {
	if len(paths) == 0 {
		paths = DefaultDetailPaths()
	}
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := jmespath.Compile(p); err != nil {
			return nil, fmt.Errorf("compile detail path %q: %w", p, err)
		}
		clean = append(clean, p)
	}
	return &DetailExtractor{paths: clean}, nil
}

// Extract returns the first string match, or "" when the body is not JSON or nothing matches.
func (d *DetailExtractor) Extract(body []byte) string {
	if d == nil || len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	for _, p := range d.paths {
		v, err := jmespath.Search(p, doc)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
