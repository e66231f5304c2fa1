// Package session keeps the per-customer cart and coupon state between
// storefront calls.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/coupon"
	apperrors "github.com/fekuna/omnipos-storefront-service/pkg/errors"
	"github.com/google/uuid"
)

// Session is the handle every cart and coupon operation works on. Callers go
// through Manager.With so only one call touches a session at a time.
type Session struct {
	ID          string
	CustomerRef string
	Cart        *cart.Cart
	Coupons     *coupon.Engine
	CreatedAt   time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	registry *coupon.Registry
	idleTTL  time.Duration
}

// NewManager creates an in-memory session store. Sessions idle for longer
// than idleTTL are dropped by Sweep; zero disables expiry.
func NewManager(registry *coupon.Registry, idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		registry: registry,
		idleTTL:  idleTTL,
	}
}

func (m *Manager) Create(customerRef string) *Session {
	now := time.Now()
	s := &Session{
		ID:          uuid.New().String(),
		CustomerRef: customerRef,
		Cart:        cart.New(),
		Coupons:     coupon.NewEngine(m.registry),
		CreatedAt:   now,
		lastUsed:    now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	return s, nil
}

// With runs fn while holding the session lock. A session swept or discarded
// while With waited for the lock is reported as not found.
func (m *Manager) With(id string, fn func(*Session) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !m.holds(s) {
		return &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	s.lastUsed = time.Now()
	return fn(s)
}

func (m *Manager) holds(s *Session) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[s.ID] == s
}

func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	delete(m.sessions, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if !s.mu.TryLock() {
			continue
		}
		// delete under the session lock so a waiting With sees the removal
		if now.Sub(s.lastUsed) > m.idleTTL {
			delete(m.sessions, id)
			n++
		}
		s.mu.Unlock()
	}
	return n
}

// Run sweeps every interval until ctx is done. A non-positive interval
// disables sweeping.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
