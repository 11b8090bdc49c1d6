package config

import (
	"strings"
	"time"
)

// SessionConfig controls the browser session registry and the durable token slot.
type SessionConfig struct {
	// CookieName names the opaque browser session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"portal_sid"`

	// KeyPrefix is prepended to the browser session id to form the Redis token key.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"portal:token:"`

	// TokenTTL is how long a stored token survives without being rewritten.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// TokenKey, when set, seals tokens with AES-256-GCM before they are stored.
	// A 64-character hex value is used as the key; anything else is hashed.
	TokenKey string `env:"TOKEN_KEY" envDefault:""`

	// RegistrySize caps the number of in-memory session stores.
	RegistrySize int `env:"REGISTRY_SIZE" envDefault:"10000"`

	// RegistryTTL evicts in-memory session stores idle for this long.
	RegistryTTL time.Duration `env:"REGISTRY_TTL" envDefault:"30m"`

	// PendingTimeout bounds how long a gated request waits for identity resolution.
	PendingTimeout time.Duration `env:"PENDING_TIMEOUT" envDefault:"10s"`

	// SerializeLogin makes concurrent logins from one browser run one at a time.
	SerializeLogin bool `env:"SERIALIZE_LOGIN" envDefault:"false"`
}

// Sanitize applies guardrails to session configuration values.
func (c *SessionConfig) Sanitize() {
	c.CookieName = strings.TrimSpace(c.CookieName)
	c.TokenKey = strings.TrimSpace(c.TokenKey)
	if c.CookieName == "" {
		c.CookieName = "portal_sid"
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		c.KeyPrefix = "portal:token:"
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.PendingTimeout <= 0 {
		c.PendingTimeout = 10 * time.Second
	}
	if c.RegistrySize < 1 {
		c.RegistrySize = 1
	}
	if c.RegistryTTL <= 0 {
		c.RegistryTTL = 30 * time.Minute
	}
}
