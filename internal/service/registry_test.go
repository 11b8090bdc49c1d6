package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ragportal/portal-ui/internal/mocks"
	fakes "github.com/ragportal/portal-ui/internal/mocks/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func countingFactory(t *testing.T, calls *atomic.Int32) SessionFactory {
	t.Helper()
	ctrl := gomock.NewController(t)
	return func(browserID string) (*BrowserSession, error) {
		calls.Add(1)
		slot := fakes.NewMemoryTokenStorage("")
		api := mocks.NewMockPortalAPI(ctrl)
		return &BrowserSession{
			ID:      browserID,
			Session: NewSessionService(SessionServiceOptions{API: api, Tokens: slot}),
			API:     api,
		}, nil
	}
}

func TestNewSessionRegistry_RequiresFactory(t *testing.T) {
	assert.Panics(t, func() { NewSessionRegistry(SessionRegistryOptions{}) })
}

func TestSessionRegistry_AcquireReturnsSameScope(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{Factory: countingFactory(t, &calls)})

	a1, err := reg.Acquire("browser-a")
	require.NoError(t, err)
	a2, err := reg.Acquire("browser-a")
	require.NoError(t, err)
	b, err := reg.Acquire("browser-b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.Same(t, a1.Session, a2.Session)
	assert.NotSame(t, a1, b)
	assert.Equal(t, "browser-b", b.ID)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, reg.Len())
}

func TestSessionRegistry_EmptyID(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{Factory: countingFactory(t, &calls)})

	_, err := reg.Acquire("")
	require.ErrorIs(t, err, ErrEmptyBrowserID)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSessionRegistry_FactoryError(t *testing.T) {
	boom := errors.New("bad config")
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: func(string) (*BrowserSession, error) { return nil, boom },
	})

	_, err := reg.Acquire("browser-a")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, reg.Len())
}

func TestSessionRegistry_Forget(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{Factory: countingFactory(t, &calls)})

	first, err := reg.Acquire("browser-a")
	require.NoError(t, err)
	reg.Forget("browser-a")
	second, err := reg.Acquire("browser-a")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSessionRegistry_EvictsBySize(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: countingFactory(t, &calls),
		Cache:   RegistryCacheConfig{Size: 2},
	})

	for _, id := range []string{"a", "b", "c"} {
		_, err := reg.Acquire(id)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, reg.Len())
	_, err := reg.Acquire("a")
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestSessionRegistry_ExpiresIdleEntries(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{
		Factory: countingFactory(t, &calls),
		Cache:   RegistryCacheConfig{TTL: 20 * time.Millisecond},
	})

	_, err := reg.Acquire("a")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
	_, err = reg.Acquire("a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSessionRegistry_ConcurrentAcquire(t *testing.T) {
	var calls atomic.Int32
	reg := NewSessionRegistry(SessionRegistryOptions{Factory: countingFactory(t, &calls)})

	var wg sync.WaitGroup
	got := make([]*BrowserSession, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bs, err := reg.Acquire("shared")
			assert.NoError(t, err)
			got[i] = bs
		}(i)
	}
	wg.Wait()

	for _, bs := range got {
		assert.Same(t, got[0], bs)
	}
	assert.Equal(t, int32(1), calls.Load())
}
