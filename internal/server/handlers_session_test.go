package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSession provisions a session through the API and returns its ID
// and signed token.
func createSession(t *testing.T, s *Server, userID string) (string, string) {
	t.Helper()

	var req *http.Request
	if userID == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/session/create", nil)
	} else {
		req = postJSON(t, "/api/v1/session/create", SessionCreateRequest{UserID: userID})
	}
	w := doRequest(s, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	envelope := decodeEnvelope(t, w)
	var data SessionCreateData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotNil(t, data.Session)
	require.NotEmpty(t, data.Token)
	return data.Session.ID, data.Token
}

// historyRequest builds a GET for one session's history carrying the
// given bearer token.
func historyRequest(sessionID, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/session/%s/history", sessionID), nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSessionCreate(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/api/v1/session/create", nil))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Session created", envelope.Message)

	var data SessionCreateData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotNil(t, data.Session)
	assert.NotEmpty(t, data.Session.ID)
	assert.Empty(t, data.Session.UserID)
	assert.Zero(t, data.Session.RequestCount)
	assert.NotEmpty(t, data.Token)
}

func TestSessionCreate_WithUserID(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, postJSON(t, "/api/v1/session/create", SessionCreateRequest{
		UserID: "recruiter-7",
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)

	var data SessionCreateData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotNil(t, data.Session)
	assert.Equal(t, "recruiter-7", data.Session.UserID)
}

func TestSessionHistory_RecordsScreeningCalls(t *testing.T) {
	s := newTestServer(t)
	sessionID, token := createSession(t, s, "recruiter-7")

	screen := postJSON(t, "/api/v1/screen/resume", ScreenResumeRequest{
		Resume: testResume(),
		Job:    testJob(),
	})
	screen.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(s, screen)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(s, historyRequest(sessionID, token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	envelope := decodeEnvelope(t, w)

	var data SessionHistoryData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, sessionID, data.SessionID)
	require.Equal(t, 1, data.Count)
	entry := data.History[0]
	assert.Equal(t, "/api/v1/screen/resume", entry.Endpoint)
	assert.Equal(t, http.MethodPost, entry.Method)
	assert.Equal(t, "success", entry.Status)
	assert.NotEmpty(t, entry.RequestData)
	assert.NotEmpty(t, entry.ResponseData)
}

func TestSessionHistory_LimitParam(t *testing.T) {
	s := newTestServer(t)
	sessionID, token := createSession(t, s, "")

	for i := 0; i < 3; i++ {
		screen := postJSON(t, "/api/v1/screen/resume", ScreenResumeRequest{
			Resume: testResume(),
			Job:    testJob(),
		})
		screen.Header.Set("Authorization", "Bearer "+token)
		w := doRequest(s, screen)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := doRequest(s, historyRequest(sessionID, token))
	envelope := decodeEnvelope(t, w)
	var data SessionHistoryData
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, 3, data.Count)

	req := historyRequest(sessionID, token)
	req.URL.RawQuery = "limit=2"
	w = doRequest(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, 2, data.Count)
}

func TestSessionHistory_InvalidLimit(t *testing.T) {
	s := newTestServer(t)
	sessionID, token := createSession(t, s, "")

	req := historyRequest(sessionID, token)
	req.URL.RawQuery = "limit=abc"
	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotEmpty(t, envelope.Errors)
	assert.Contains(t, envelope.Errors[0], "invalid limit")
}

func TestSessionHistory_NoToken(t *testing.T) {
	s := newTestServer(t)
	sessionID, _ := createSession(t, s, "")

	w := doRequest(s, historyRequest(sessionID, ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotEmpty(t, envelope.Errors)
	assert.Contains(t, envelope.Errors[0], "a valid session token is required")
}

func TestSessionHistory_ForgedToken(t *testing.T) {
	s := newTestServer(t)
	sessionID, _ := createSession(t, s, "")

	w := doRequest(s, historyRequest(sessionID, "not-a-real-token"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionHistory_TokenMismatch(t *testing.T) {
	s := newTestServer(t)
	_, tokenA := createSession(t, s, "recruiter-a")
	sessionB, _ := createSession(t, s, "recruiter-b")

	w := doRequest(s, historyRequest(sessionB, tokenA))

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotEmpty(t, envelope.Errors)
	assert.Contains(t, envelope.Errors[0], "does not match")
}

func TestSessionHistory_DestroyedSession(t *testing.T) {
	s := newTestServer(t)
	sessionID, token := createSession(t, s, "")

	require.True(t, s.sessions.Destroy(sessionID))

	w := doRequest(s, historyRequest(sessionID, token))

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotEmpty(t, envelope.Errors)
	assert.Contains(t, envelope.Errors[0], "session not found or expired")
}
