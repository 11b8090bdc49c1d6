// Package filetoken stores the CLI's bearer token in a single file.
package filetoken

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ragportal/portal-ui/internal/ports"
)

// Slot is a token slot backed by one file. Writes replace the file atomically
// and leave it readable by the owner only.
type Slot struct {
	path string
}

var _ ports.TokenStorage = (*Slot)(nil)

// New returns a slot at path.
func New(path string) *Slot {
	return &Slot{path: path}
}

// DefaultPath is $XDG_CONFIG_HOME/ragportal/token (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "ragportal", "token"), nil
}

// Path returns the backing file path.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *Slot) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear(ctx)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return errors.Join(cause, fmt.Errorf("remove temp token file: %w", rmErr))
		}
		return cause
	}

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return cleanup(fmt.Errorf("chmod token file: %w", err))
	}
	if _, err := tmp.WriteString(token + "\n"); err != nil {
		_ = tmp.Close()
		return cleanup(fmt.Errorf("write token file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close token file: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return cleanup(fmt.Errorf("replace token file: %w", err))
	}
	return nil
}

func (s *Slot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
