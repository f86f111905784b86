package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shashank8104/resume-intelligence/internal/server/middleware"
	"github.com/shashank8104/resume-intelligence/internal/session"
)

// SessionCreateRequest is the optional body for /api/v1/session/create.
type SessionCreateRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// SessionCreateData is the data payload for a created session.
type SessionCreateData struct {
	Session *session.Session `json:"session"`
	Token   string           `json:"token"`
}

// SessionHistoryData is the data payload for a session's history.
type SessionHistoryData struct {
	SessionID string                 `json:"session_id"`
	History   []session.HistoryEntry `json:"history"`
	Count     int                    `json:"count"`
}

// handleSessionCreate starts a tracked session and returns its signed
// handle.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// The body is optional; an absent one means an unannotated session.
	var req SessionCreateRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}

	created, token, err := s.sessions.Create(req.UserID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, start, "failed to create session: "+err.Error())
		return
	}

	s.respond(w, http.StatusCreated, start, SessionCreateData{
		Session: created,
		Token:   token,
	}, "Session created")
}

// handleSessionHistory returns the recorded screening calls for one
// session. The caller must present the session's own handle; forged or
// expired handles fail before any session lookup.
func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestedID := r.PathValue("id")
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, start, "a valid session token is required")
		return
	}
	if sessionID != requestedID {
		s.respondError(w, http.StatusForbidden, start, "session token does not match the requested session")
		return
	}

	if s.sessions.Get(sessionID) == nil {
		s.respondError(w, http.StatusNotFound, start, "session not found or expired")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.respondError(w, http.StatusBadRequest, start, "invalid limit: "+raw)
			return
		}
		limit = parsed
	}

	history := s.sessions.History(sessionID, limit)
	s.respond(w, http.StatusOK, start, SessionHistoryData{
		SessionID: sessionID,
		History:   history,
		Count:     len(history),
	}, "")
}
