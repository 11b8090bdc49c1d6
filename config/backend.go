package config

import (
	"strings"
	"time"
)

const defaultBackendBaseURL = "http://127.0.0.1:8000"

// BackendConfig describes how the portal reaches the RAG backend API.
type BackendConfig struct {
	// BaseURL is the fixed origin every backend request is resolved against.
	BaseURL string `env:"BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// ErrorDetailPaths are JMESPath expressions tried in order to pull a
	// human-readable message out of an error response body.
	ErrorDetailPaths []string `env:"ERROR_DETAIL_PATHS" envDefault:"detail;detail[0].msg;message" envSeparator:";"`
}

// Sanitize applies guardrails to backend configuration values.
func (c *BackendConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBackendBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}

	paths := make([]string, 0, len(c.ErrorDetailPaths))
	for _, p := range c.ErrorDetailPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	c.ErrorDetailPaths = paths
}
