package httpx

import (
	"context"
	"sync"
	"testing"
	"time"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a SessionSource whose snapshot tests set directly.
type fakeSource struct {
	mu        sync.Mutex
	snap      domainauth.Snapshot
	observers map[int]func(domainauth.Snapshot)
	next      int
}

func newFakeSource(s domainauth.Snapshot) *fakeSource {
	return &fakeSource{snap: s, observers: map[int]func(domainauth.Snapshot){}}
}

func (f *fakeSource) Snapshot() domainauth.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSource) Subscribe(fn func(domainauth.Snapshot)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.observers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.observers, id)
	}
}

func (f *fakeSource) set(s domainauth.Snapshot) {
	f.mu.Lock()
	f.snap = s
	obs := make([]func(domainauth.Snapshot), 0, len(f.observers))
	for _, fn := range f.observers {
		obs = append(obs, fn)
	}
	f.mu.Unlock()
	for _, fn := range obs {
		fn(s)
	}
}

func (f *fakeSource) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.observers)
}

func authenticated() domainauth.Snapshot {
	u := memberIdentity
	return domainauth.Snapshot{Token: testToken, User: &u, State: domainauth.StateAuthenticated}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		snap domainauth.Snapshot
		want GateDecision
	}{
		{"uninitialized", domainauth.Snapshot{State: domainauth.StateUninitialized}, GatePending},
		{"loading", domainauth.Snapshot{Token: testToken, Loading: true, State: domainauth.StateLoading}, GatePending},
		{"authenticated", authenticated(), GateAllow},
		{"anonymous", domainauth.Snapshot{State: domainauth.StateAnonymous}, GateRedirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.snap))
		})
	}
}

func TestGateDecision_String(t *testing.T) {
	assert.Equal(t, "pending", GatePending.String())
	assert.Equal(t, "allow", GateAllow.String())
	assert.Equal(t, "redirect", GateRedirect.String())
	assert.Equal(t, "unknown", GateDecision(42).String())
}

func TestGuard_ConclusiveImmediately(t *testing.T) {
	src := newFakeSource(domainauth.Snapshot{State: domainauth.StateAnonymous})
	g := NewGuard(src)
	defer g.Close()

	d, err := g.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, GateRedirect, d)
}

func TestGuard_WakesWhenResolutionLands(t *testing.T) {
	src := newFakeSource(domainauth.Snapshot{Token: testToken, Loading: true, State: domainauth.StateLoading})
	g := NewGuard(src)
	defer g.Close()
	assert.Equal(t, GatePending, g.Decision())

	done := make(chan GateDecision, 1)
	go func() {
		d, _ := g.Wait(context.Background())
		done <- d
	}()

	src.set(authenticated())

	select {
	case d := <-done:
		assert.Equal(t, GateAllow, d)
	case <-time.After(2 * time.Second):
		t.Fatal("guard did not wake on store change")
	}
}

func TestGuard_ReReadsStoreInsteadOfTrustingNotification(t *testing.T) {
	src := newFakeSource(domainauth.Snapshot{State: domainauth.StateLoading, Loading: true})
	g := NewGuard(src)
	defer g.Close()

	// A stale notification must not override what the store now holds.
	src.mu.Lock()
	src.snap = domainauth.Snapshot{State: domainauth.StateAnonymous}
	src.mu.Unlock()
	g.observe(authenticated())

	assert.Equal(t, GateRedirect, g.Decision())
}

func TestGuard_WaitHonorsContext(t *testing.T) {
	src := newFakeSource(domainauth.Snapshot{State: domainauth.StateUninitialized})
	g := NewGuard(src)
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d, err := g.Wait(ctx)
	assert.Equal(t, GatePending, d)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuard_CloseUnsubscribes(t *testing.T) {
	src := newFakeSource(domainauth.Snapshot{State: domainauth.StateAnonymous})
	g := NewGuard(src)
	assert.Equal(t, 1, src.subscribers())

	g.Close()
	g.Close()
	assert.Equal(t, 0, src.subscribers())
}
