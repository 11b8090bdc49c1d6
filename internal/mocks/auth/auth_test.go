package auth

import (
	"context"
	"errors"
	"testing"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewMemoryTokenStorage("")

	tok, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, slot.Save(ctx, "t1"))
	tok, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)

	require.NoError(t, slot.Clear(ctx))
	assert.Empty(t, slot.Peek())
	assert.Equal(t, 1, slot.Saves)
	assert.Equal(t, 1, slot.Clears)
}

func TestMemoryTokenStorage_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	slot := NewMemoryTokenStorage("keep")
	slot.SaveErr = boom
	slot.ClearErr = boom

	require.ErrorIs(t, slot.Save(ctx, "new"), boom)
	require.ErrorIs(t, slot.Clear(ctx), boom)
	assert.Equal(t, "keep", slot.Peek())

	slot.LoadErr = boom
	_, err := slot.Load(ctx)
	require.ErrorIs(t, err, boom)
}

func TestFakeAuthAPI_LoginAndMe(t *testing.T) {
	ctx := context.Background()
	slot := NewMemoryTokenStorage("")
	api := NewFakeAuthAPI(slot)
	creds := domainauth.Credentials{Email: "a@x.io", Password: "pw123456"}
	id := domainauth.Identity{ID: 1, TenantID: 1, Email: "a@x.io", Role: domainauth.RoleAdmin}
	api.AddAccount(creds, "t1", id)

	_, err := api.Login(ctx, domainauth.Credentials{Email: "a@x.io", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	tok, err := api.Login(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)

	_, err = api.Me(ctx)
	require.ErrorIs(t, err, ErrUnknownToken)

	require.NoError(t, slot.Save(ctx, tok))
	got, err := api.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, int32(2), api.LoginCalls.Load())
	assert.Equal(t, int32(2), api.MeCalls.Load())
}
