// Package session tracks API sessions and their screening history in
// memory. A session is a lightweight activity record, not an identity:
// handles are signed so forged or expired ones can be rejected cheaply,
// but nothing here authenticates a user.
package session

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout is how long a session stays alive without activity.
const DefaultTimeout = time.Hour

// maxHistoryPerSession caps the per-session history ring.
const maxHistoryPerSession = 100

// History entry statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Session is one tracked API session.
type Session struct {
	ID           string    `json:"session_id"`
	UserID       string    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	RequestCount int       `json:"request_count"`
}

// HistoryEntry is one recorded API call in a session's history.
type HistoryEntry struct {
	Timestamp     time.Time       `json:"timestamp"`
	Endpoint      string          `json:"endpoint"`
	Method        string          `json:"method"`
	RequestData   json.RawMessage `json:"request_data,omitempty"`
	ResponseData  json.RawMessage `json:"response_data,omitempty"`
	ExecutionTime float64         `json:"execution_time,omitempty"`
	Status        string          `json:"status"`
}

// Request describes an API call to record against a session.
type Request struct {
	Endpoint      string
	Method        string
	RequestData   json.RawMessage
	ResponseData  json.RawMessage
	ExecutionTime float64
	Success       bool
}

// Config configures a Manager.
type Config struct {
	// Timeout is the inactivity window. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Secret signs session handles. A random key is generated when empty,
	// which invalidates outstanding handles across restarts.
	Secret []byte
	Logger *zap.Logger
	Now    func() time.Time
}

// Manager owns the session table and per-session history. Safe for
// concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	history  map[string][]HistoryEntry

	timeout time.Duration
	secret  []byte
	logger  *zap.Logger
	now     func() time.Time
}

// New returns a Manager. It fails only when no secret is given and
// generating one fails.
func New(cfg Config) (*Manager, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := cfg.Secret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("session: generate secret: %w", err)
		}
	}

	logger.Info("session manager initialized", zap.Duration("timeout", timeout))
	return &Manager{
		sessions: make(map[string]*Session),
		history:  make(map[string][]HistoryEntry),
		timeout:  timeout,
		secret:   secret,
		logger:   logger,
		now:      now,
	}, nil
}

// Create starts a new session and returns it along with its signed
// handle. userID is optional annotation, not identity.
func (m *Manager) Create(userID string) (*Session, string, error) {
	now := m.now()
	s := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
	}

	token, err := m.issueToken(s)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", s.ID))
	snapshot := *s
	return &snapshot, token, nil
}

// Get returns a snapshot of the session, or nil when it is unknown or
// has expired. Expired sessions are destroyed on access.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	if m.expired(s) {
		m.destroyLocked(id)
		return nil
	}
	snapshot := *s
	return &snapshot
}

// Touch refreshes the session's activity window and bumps its request
// count. Unknown IDs are ignored.
func (m *Manager) Touch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.LastActivity = m.now()
		s.RequestCount++
	}
}

// Destroy removes a session. Its history stays readable until the next
// cleanup pass. Reports whether a session was removed.
func (m *Manager) Destroy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.destroyLocked(id)
}

func (m *Manager) destroyLocked(id string) bool {
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.logger.Info("session destroyed", zap.String("session_id", id))
	return true
}

// Record appends an API call to the session's history ring. The history
// is kept even if the session is unknown, so late recordings after an
// expiry are not lost.
func (m *Manager) Record(sessionID string, req Request) {
	status := StatusError
	if req.Success {
		status = StatusSuccess
	}
	entry := HistoryEntry{
		Timestamp:     m.now(),
		Endpoint:      req.Endpoint,
		Method:        req.Method,
		RequestData:   req.RequestData,
		ResponseData:  req.ResponseData,
		ExecutionTime: req.ExecutionTime,
		Status:        status,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append(m.history[sessionID], entry)
	if len(entries) > maxHistoryPerSession {
		entries = append([]HistoryEntry(nil), entries[len(entries)-maxHistoryPerSession:]...)
	}
	m.history[sessionID] = entries
}

// History returns the most recent limit entries for a session, oldest
// first. A non-positive limit returns the full history.
func (m *Manager) History(sessionID string, limit int) []HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.history[sessionID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// ActiveSessions returns snapshots of all live sessions ordered by
// creation time. Expired sessions found along the way are destroyed.
func (m *Manager) ActiveSessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

func (m *Manager) activeLocked() []Session {
	var expired []string
	active := make([]Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		if m.expired(s) {
			expired = append(expired, id)
			continue
		}
		active = append(active, *s)
	}
	for _, id := range expired {
		m.destroyLocked(id)
	}

	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.Before(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})
	return active
}

// CleanupExpired destroys expired sessions and drops history that no
// longer belongs to any session. Returns how many sessions were removed.
func (m *Manager) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []string
	for id, s := range m.sessions {
		if m.expired(s) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		m.destroyLocked(id)
	}
	for id := range m.history {
		if _, ok := m.sessions[id]; !ok {
			delete(m.history, id)
		}
	}

	if len(expired) > 0 {
		m.logger.Info("cleaned up expired sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// MostActive identifies the busiest live session in a stats report.
type MostActive struct {
	SessionID    string    `json:"session_id"`
	RequestCount int       `json:"request_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stats summarizes the manager's current state.
type Stats struct {
	TotalActiveSessions       int         `json:"total_active_sessions"`
	TotalSessionHistory       int         `json:"total_session_history"`
	SessionTimeoutSeconds     float64     `json:"session_timeout"`
	AverageRequestsPerSession float64     `json:"average_requests_per_session"`
	MostActiveSession         *MostActive `json:"most_active_session,omitempty"`
}

// Stats reports live session counts and activity. Ties for the busiest
// session break toward the older session.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.activeLocked()
	stats := Stats{
		TotalActiveSessions:   len(active),
		TotalSessionHistory:   len(m.history),
		SessionTimeoutSeconds: m.timeout.Seconds(),
	}
	if len(active) == 0 {
		return stats
	}

	total := 0
	busiest := active[0]
	for _, s := range active {
		total += s.RequestCount
		if s.RequestCount > busiest.RequestCount {
			busiest = s
		}
	}
	stats.AverageRequestsPerSession = float64(total) / float64(len(active))
	stats.MostActiveSession = &MostActive{
		SessionID:    busiest.ID,
		RequestCount: busiest.RequestCount,
		CreatedAt:    busiest.CreatedAt,
	}
	return stats
}

// expired reports whether the session's activity window has lapsed.
// Callers hold the lock.
func (m *Manager) expired(s *Session) bool {
	return m.now().After(s.LastActivity.Add(m.timeout))
}
