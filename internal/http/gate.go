package httpx

import (
	"context"
	"sync"

	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
)

// GateDecision is the auth gate's verdict for a session.
type GateDecision int

const (
	// GatePending means an identity resolution is still in flight.
	GatePending GateDecision = iota
	// GateAllow renders the protected content.
	GateAllow
	// GateRedirect sends the visitor to the login page.
	GateRedirect
)

func (d GateDecision) String() string {
	switch d {
	case GatePending:
		return "pending"
	case GateAllow:
		return "allow"
	case GateRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decide maps a session snapshot to a gate decision.
func Decide(s domainauth.Snapshot) GateDecision {
	switch {
	case s.State == domainauth.StateUninitialized, s.Loading:
		return GatePending
	case s.User != nil:
		return GateAllow
	default:
		return GateRedirect
	}
}

// SessionSource is the part of the session store the gate observes.
type SessionSource interface {
	Snapshot() domainauth.Snapshot
	Subscribe(fn func(domainauth.Snapshot)) (cancel func())
}

// Guard tracks the gate decision for one session store. It re-evaluates on
// every change the store publishes, so waiters wake as soon as a resolution
// lands instead of polling.
type Guard struct {
	src    SessionSource
	cancel func()

	mu       sync.Mutex
	decision GateDecision
	changed  chan struct{}
}

// NewGuard subscribes to src. Call Close to release the subscription.
func NewGuard(src SessionSource) *Guard {
	g := &Guard{src: src, changed: make(chan struct{})}
	g.cancel = src.Subscribe(g.observe)
	// Evaluate after subscribing so a change between the two is not missed.
	g.evaluate()
	return g
}

// Notifications may arrive out of order; the store is re-read instead of
// trusting the delivered snapshot.
func (g *Guard) observe(domainauth.Snapshot) {
	g.evaluate()
}

func (g *Guard) evaluate() {
	d := Decide(g.src.Snapshot())

	g.mu.Lock()
	defer g.mu.Unlock()
	if d == g.decision {
		return
	}
	g.decision = d
	close(g.changed)
	g.changed = make(chan struct{})
}

// Decision returns the current verdict without blocking.
func (g *Guard) Decision() GateDecision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

// Wait blocks until the decision is conclusive or ctx ends. On ctx end it
// returns GatePending with the context error.
func (g *Guard) Wait(ctx context.Context) (GateDecision, error) {
	for {
		g.mu.Lock()
		d, ch := g.decision, g.changed
		g.mu.Unlock()

		if d != GatePending {
			return d, nil
		}
		select {
		case <-ctx.Done():
			return GatePending, ctx.Err()
		case <-ch:
		}
	}
}

// Close unsubscribes from the store. It is safe to call more than once.
func (g *Guard) Close() {
	if g.cancel != nil {
		g.cancel()
	}
}
