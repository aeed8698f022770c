package security

import (
	"sync"
	"time"

	"github.com/dstarikov/shipshape/internal/model"
)

// WindowState is the per-session fixed-window counter. Entries are created
// lazily, mutated within a window, and replaced outright once the window
// expires, never merged.
type WindowState struct {
	Count   int
	ResetAt time.Time
}

// Store holds rate-limit state keyed by session id. The limiter is the sole
// owner of the map: no other component reads or writes it. The in-memory
// implementation is per-process; a multi-instance deployment must supply a
// shared backend here or limits will be under-enforced across instances.
type Store interface {
	Get(key string) (WindowState, bool)
	Set(key string, state WindowState)
}

// MemoryStore is the default process-lifetime Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]WindowState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]WindowState)}
}

// Get returns the state for a key.
func (s *MemoryStore) Get(key string) (WindowState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.entries[key]
	return st, ok
}

// Set stores the state for a key.
func (s *MemoryStore) Set(key string, state WindowState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = state
}

// RateLimiter enforces a fixed-window request budget per session id.
// The check-and-increment is serialized under the limiter's own lock, so
// concurrent in-flight requests never lose updates.
type RateLimiter struct {
	mu          sync.Mutex
	store       Store
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a limiter. A nil store gets a fresh MemoryStore
// and a nil clock gets time.Now; tests inject both.
func NewRateLimiter(maxRequests int, window time.Duration, store Store, now func() time.Time) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		now:         now,
	}
}

// Check admits or denies one request for the session. An expired or absent
// window conceptually restarts at count zero, but the fresh state is only
// persisted if the request is admitted; denials report remaining 0 and the
// window's original expiry.
func (l *RateLimiter) Check(sessionID string) model.RateLimitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.store.Get(sessionID)
	if !ok || !now.Before(state.ResetAt) {
		state = WindowState{Count: 0, ResetAt: now.Add(l.window)}
	}

	if state.Count >= l.maxRequests {
		return model.RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   state.ResetAt,
		}
	}

	state.Count++
	l.store.Set(sessionID, state)

	return model.RateLimitResult{
		Allowed:   true,
		Remaining: l.maxRequests - state.Count,
		ResetAt:   state.ResetAt,
	}
}
