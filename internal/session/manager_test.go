package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionEpoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// fakeClock is an advanceable clock for expiry tests.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.at
}

func (c *fakeClock) Advance(d time.Duration) {
	c.at = c.at.Add(d)
}

func newTestManager(t *testing.T, timeout time.Duration) (*Manager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{at: sessionEpoch}
	m, err := New(Config{
		Timeout: timeout,
		Secret:  []byte("test-signing-secret"),
		Now:     clock.Now,
	})
	require.NoError(t, err)
	return m, clock
}

func TestCreate_ReturnsVerifiableHandle(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	s, token, err := m.Create("user-1")
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", s.UserID)
	assert.True(t, s.CreatedAt.Equal(sessionEpoch))
	assert.Zero(t, s.RequestCount)

	id, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)
}

func TestCreate_DistinctIDs(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	first, _, err := m.Create("")
	require.NoError(t, err)
	second, _, err := m.Create("")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGet_UnknownSession(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	assert.Nil(t, m.Get("nope"))
}

func TestGet_ExpiryBoundary(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)
	s, _, err := m.Create("")
	require.NoError(t, err)

	// Alive exactly at the timeout...
	clock.Advance(time.Minute)
	assert.NotNil(t, m.Get(s.ID))

	// ...and destroyed one tick past it.
	clock.Advance(time.Nanosecond)
	assert.Nil(t, m.Get(s.ID))
	assert.Nil(t, m.Get(s.ID))
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	s, _, err := m.Create("")
	require.NoError(t, err)

	got := m.Get(s.ID)
	require.NotNil(t, got)
	got.RequestCount = 99

	assert.Zero(t, m.Get(s.ID).RequestCount)
}

func TestTouch_ExtendsActivityWindow(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)
	s, _, err := m.Create("")
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	m.Touch(s.ID)
	clock.Advance(50 * time.Second)

	got := m.Get(s.ID)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.RequestCount)
	assert.True(t, got.LastActivity.Equal(sessionEpoch.Add(50*time.Second)))
}

func TestDestroy(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	s, _, err := m.Create("")
	require.NoError(t, err)

	assert.True(t, m.Destroy(s.ID))
	assert.False(t, m.Destroy(s.ID))
	assert.Nil(t, m.Get(s.ID))
}

func TestRecord_StatusFollowsOutcome(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	m.Record("sid", Request{Endpoint: "/api/v1/screen/resume", Method: "POST", Success: true, ExecutionTime: 0.25})
	m.Record("sid", Request{Endpoint: "/api/v1/screen/resume", Method: "POST", Success: false})

	history := m.History("sid", 0)
	require.Len(t, history, 2)
	assert.Equal(t, StatusSuccess, history[0].Status)
	assert.Equal(t, 0.25, history[0].ExecutionTime)
	assert.Equal(t, StatusError, history[1].Status)
}

func TestRecord_HistoryRingCapped(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	for i := 0; i < maxHistoryPerSession+5; i++ {
		m.Record("sid", Request{Endpoint: fmt.Sprintf("/call/%d", i), Method: "GET", Success: true})
	}

	history := m.History("sid", 0)
	require.Len(t, history, maxHistoryPerSession)
	// The five oldest entries fell off the ring.
	assert.Equal(t, "/call/5", history[0].Endpoint)
	assert.Equal(t, fmt.Sprintf("/call/%d", maxHistoryPerSession+4), history[len(history)-1].Endpoint)
}

func TestHistory_LimitKeepsMostRecent(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	for i := 0; i < 5; i++ {
		m.Record("sid", Request{Endpoint: fmt.Sprintf("/call/%d", i), Method: "GET", Success: true})
	}

	recent := m.History("sid", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "/call/3", recent[0].Endpoint)
	assert.Equal(t, "/call/4", recent[1].Endpoint)

	assert.Len(t, m.History("sid", 0), 5)
}

func TestHistory_UnknownSessionEmpty(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	assert.Empty(t, m.History("nope", 10))
}

func TestActiveSessions_PrunesExpired(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)
	stale, _, err := m.Create("")
	require.NoError(t, err)
	clock.Advance(45 * time.Second)
	fresh, _, err := m.Create("")
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	active := m.ActiveSessions()
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)
	assert.Nil(t, m.Get(stale.ID))
}

func TestCleanupExpired_DropsOrphanHistory(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)
	s, _, err := m.Create("")
	require.NoError(t, err)
	m.Record(s.ID, Request{Endpoint: "/api/v1/screen/resume", Method: "POST", Success: true})

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, m.CleanupExpired())
	assert.Empty(t, m.History(s.ID, 0))
	assert.Zero(t, m.Stats().TotalSessionHistory)

	assert.Zero(t, m.CleanupExpired())
}

func TestStats_ActivityAggregates(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	busy, _, err := m.Create("")
	require.NoError(t, err)
	quiet, _, err := m.Create("")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		m.Touch(busy.ID)
	}
	m.Touch(quiet.ID)
	m.Record(busy.ID, Request{Endpoint: "/api/v1/screen/resume", Method: "POST", Success: true})

	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalActiveSessions)
	assert.Equal(t, 1, stats.TotalSessionHistory)
	assert.Equal(t, 3600.0, stats.SessionTimeoutSeconds)
	assert.InDelta(t, 2.0, stats.AverageRequestsPerSession, 1e-9)
	require.NotNil(t, stats.MostActiveSession)
	assert.Equal(t, busy.ID, stats.MostActiveSession.SessionID)
	assert.Equal(t, 3, stats.MostActiveSession.RequestCount)
}

func TestStats_EmptyManager(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	stats := m.Stats()
	assert.Zero(t, stats.TotalActiveSessions)
	assert.Zero(t, stats.AverageRequestsPerSession)
	assert.Nil(t, stats.MostActiveSession)
}

func TestVerifyToken_RejectsExpired(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)
	_, token, err := m.Create("")
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = m.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsForeignSignature(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	other, err := New(Config{
		Secret: []byte("some-other-secret"),
		Now:    func() time.Time { return sessionEpoch },
	})
	require.NoError(t, err)

	_, token, err := m.Create("")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	_, err := m.VerifyToken("")
	assert.Error(t, err)
	_, err = m.VerifyToken("not.a.token")
	assert.Error(t, err)
}
