package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier maps known tokens to session IDs for unit tests.
type stubVerifier struct {
	sessions map[string]string
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{sessions: make(map[string]string)}
}

func (v *stubVerifier) addToken(token, sessionID string) {
	v.sessions[token] = sessionID
}

func (v *stubVerifier) VerifyToken(tokenString string) (string, error) {
	sessionID, ok := v.sessions[tokenString]
	if !ok {
		return "", fmt.Errorf("invalid token")
	}
	return sessionID, nil
}

func TestRequestID_SetsHeaderAndContext(t *testing.T) {
	var contextID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = GetRequestID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	headerID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, headerID)
	assert.Equal(t, headerID, contextID)
}

func TestRequestID_FreshPerRequest(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
}

func TestGetRequestID_MissingMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	assert.Empty(t, GetRequestID(req))
}

func TestSessionContext_ValidToken(t *testing.T) {
	verifier := newStubVerifier()
	verifier.addToken("good-token", "session-123")

	var sessionID string
	var sessionErr error
	handler := SessionContext(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, sessionErr = GetSessionID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data/stats", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.NoError(t, sessionErr)
	assert.Equal(t, "session-123", sessionID)
}

func TestSessionContext_InvalidTokenPassesThrough(t *testing.T) {
	verifier := newStubVerifier()

	handlerCalled := false
	handler := SessionContext(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		_, err := GetSessionID(r)
		assert.Error(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data/stats", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionContext_NoHeaderPassesThrough(t *testing.T) {
	verifier := newStubVerifier()

	handlerCalled := false
	handler := SessionContext(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		_, err := GetSessionID(r)
		assert.Error(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/data/stats", nil))

	assert.True(t, handlerCalled)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"standard", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer", "", false},
		{"extra parts", "Bearer abc 123", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/data/stats", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, ok := BearerToken(req)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}
