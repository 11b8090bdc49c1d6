package tokenseal

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	fakes "github.com/ragportal/portal-ui/internal/mocks/auth"
	"github.com/ragportal/portal-ui/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSealer(t *testing.T) *Sealer {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	s, err := NewSealer(key)
	require.NoError(t, err)
	return s
}

func TestSealer_RoundTrip(t *testing.T) {
	s := testSealer(t)

	sealed, err := s.Seal("tok-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "v1:"))
	assert.NotContains(t, sealed, "tok-1")

	again, err := s.Seal("tok-1")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	token, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestSealer_InvalidKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	assert.ErrorContains(t, err, "must be 32 bytes")

	_, err = NewSealer(make([]byte, 64))
	assert.ErrorContains(t, err, "must be 32 bytes")
}

func TestSealer_OpenRejects(t *testing.T) {
	s := testSealer(t)

	_, err := s.Open("plain-token")
	assert.ErrorIs(t, err, ErrUnsealed)

	_, err = s.Open("v1:!!!invalid!!!")
	assert.Error(t, err)

	_, err = s.Open("v1:" + base64.StdEncoding.EncodeToString([]byte("x")))
	assert.ErrorContains(t, err, "too short")

	other, err := NewSealer(make([]byte, 32))
	require.NoError(t, err)
	sealed, err := other.Seal("tok-1")
	require.NoError(t, err)
	_, err = s.Open(sealed)
	assert.Error(t, err, "wrong key must not open")
}

func TestDeriveKey(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	key, err := DeriveKey(hexKey)
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), key[0])
	assert.Len(t, key, 32)

	key, err = DeriveKey("a passphrase")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = DeriveKey("  ")
	assert.Error(t, err)
}

func TestSlot_SealsAtRest(t *testing.T) {
	ctx := context.Background()
	inner := fakes.NewMemoryTokenStorage("")
	slot := Wrap(inner, testSealer(t))

	require.NoError(t, slot.Save(ctx, "tok-1"))
	assert.True(t, strings.HasPrefix(inner.Peek(), "v1:"))

	token, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, slot.Save(ctx, ""))
	assert.Empty(t, inner.Peek())

	token, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSlot_PlaintextIsReadError(t *testing.T) {
	inner := fakes.NewMemoryTokenStorage("legacy-plain")
	slot := Wrap(inner, testSealer(t))

	token, err := slot.Load(context.Background())

	assert.ErrorIs(t, err, ErrUnsealed)
	assert.ErrorIs(t, err, ports.ErrTokenUnreadable)
	assert.Empty(t, token)
}

func TestSlot_TransientReadErrorIsNotUnreadable(t *testing.T) {
	inner := fakes.NewMemoryTokenStorage("")
	inner.LoadErr = errors.New("redis unavailable")
	slot := Wrap(inner, testSealer(t))

	_, err := slot.Load(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrTokenUnreadable)
}
