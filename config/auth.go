package config

import (
	"fmt"
	"strings"
)

// UnauthorizedPolicy selects how a 401 from the backend on an authenticated call is handled.
type UnauthorizedPolicy string

const (
	// UnauthorizedPassthrough surfaces the 401 to the screen that made the call.
	UnauthorizedPassthrough UnauthorizedPolicy = "passthrough"
	// UnauthorizedLogout purges the session and sends the browser to the login page.
	UnauthorizedLogout UnauthorizedPolicy = "logout"
)

// UnmarshalText implements encoding.TextUnmarshaler for UnauthorizedPolicy.
func (p *UnauthorizedPolicy) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "passthrough", "logout":
		*p = UnauthorizedPolicy(v)
		return nil
	default:
		return fmt.Errorf("invalid UnauthorizedPolicy: %q (valid options: passthrough, logout)", v)
	}
}

// AuthConfig groups authentication-related configuration.
type AuthConfig struct {
	// UnauthorizedPolicy controls centralized handling of backend 401 responses.
	UnauthorizedPolicy UnauthorizedPolicy `env:"AUTH_UNAUTHORIZED_POLICY" envDefault:"passthrough"`
}

// LogoutOnUnauthorized reports whether a backend 401 should end the session.
func (c AuthConfig) LogoutOnUnauthorized() bool {
	return c.UnauthorizedPolicy == UnauthorizedLogout
}
