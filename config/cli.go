package config

// CLIConfig holds settings only the terminal client reads.
type CLIConfig struct {
	// TokenFile overrides where the bearer token is kept between runs.
	TokenFile string `env:"RAGPORTAL_TOKEN_FILE"`

	// Password is used by login when -password is not given.
	Password string `env:"RAGPORTAL_PASSWORD"`
}
