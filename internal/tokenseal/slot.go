package tokenseal

import (
	"context"
	"fmt"

	"github.com/ragportal/portal-ui/internal/ports"
)

// Slot wraps a token slot so only sealed tokens are stored in it.
// A stored value that cannot be opened is reported as a read error wrapping
// ports.ErrTokenUnreadable.
type Slot struct {
	inner  ports.TokenStorage
	sealer *Sealer
}

var _ ports.TokenStorage = (*Slot)(nil)

// Wrap seals everything written to inner.
func Wrap(inner ports.TokenStorage, sealer *Sealer) *Slot {
	return &Slot{inner: inner, sealer: sealer}
}

func (s *Slot) Load(ctx context.Context) (string, error) {
	raw, err := s.inner.Load(ctx)
	if err != nil || raw == "" {
		return "", err
	}
	token, err := s.sealer.Open(raw)
	if err != nil {
		return "", fmt.Errorf("load token: %w: %w", ports.ErrTokenUnreadable, err)
	}
	return token, nil
}

func (s *Slot) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.inner.Clear(ctx)
	}
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return s.inner.Save(ctx, sealed)
}

func (s *Slot) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}
