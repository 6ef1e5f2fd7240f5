package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/braginaliz/web-larek/pkg/errors"
)

var liveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "storefront_live_sessions",
		Help: "Number of sessions currently held by the manager",
	},
)

// Manager owns the live sessions. Sessions that stay idle past the TTL are
// evicted by a background sweep.
type Manager struct {
	shop   ShopAPI
	logger *slog.Logger
	ttl    time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	// nowFunc is swapped in tests to fake idle time.
	nowFunc func() time.Time
	done    chan struct{}
}

// NewManager creates a session manager and starts its eviction sweep.
func NewManager(shop ShopAPI, ttl time.Duration, logger *slog.Logger) *Manager {
	m := &Manager{
		shop:     shop,
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		nowFunc:  time.Now,
		done:     make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// Create builds a new session, loads its catalog, and registers it. A failed
// catalog fetch does not fail creation; the session starts with an empty
// catalog and the client can retry the load.
func (m *Manager) Create(ctx context.Context) *Session {
	s := newSession(uuid.New().String(), m.shop, m.logger)

	if err := s.LoadCatalog(ctx); err != nil {
		m.logger.WarnContext(ctx, "session created with empty catalog",
			slog.String("session_id", s.ID()),
			slog.String("error", err.Error()),
		)
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	liveSessions.Inc()

	m.logger.InfoContext(ctx, "session created",
		slog.String("session_id", s.ID()),
	)
	return s
}

// Get returns the session by id and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("session", id)
	}
	s.touch(m.nowFunc())
	return s, nil
}

// Delete removes the session by id. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		liveSessions.Dec()
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the eviction sweep.
func (m *Manager) Close() {
	close(m.done)
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

// sweep evicts sessions idle past the TTL.
func (m *Manager) sweep() {
	now := m.nowFunc()

	m.mu.Lock()
	var evicted []string
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	for _, id := range evicted {
		liveSessions.Dec()
		m.logger.Info("idle session evicted",
			slog.String("session_id", id),
		)
	}
}
