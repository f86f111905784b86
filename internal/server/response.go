package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success       bool     `json:"success"`
	Data          any      `json:"data,omitempty"`
	Message       string   `json:"message,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	ExecutionTime float64  `json:"execution_time"`
}

// HealthCheck is the health endpoint payload.
type HealthCheck struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// maxBodyBytes bounds request bodies; resumes are small JSON documents.
const maxBodyBytes = 10 << 20

// respond writes a success envelope.
func (s *Server) respond(w http.ResponseWriter, status int, start time.Time, data any, message string) {
	s.writeJSON(w, status, APIResponse{
		Success:       true,
		Data:          data,
		Message:       message,
		ExecutionTime: time.Since(start).Seconds(),
	})
}

// respondError writes a failure envelope.
func (s *Server) respondError(w http.ResponseWriter, status int, start time.Time, errs ...string) {
	s.writeJSON(w, status, APIResponse{
		Success:       false,
		Errors:        errs,
		ExecutionTime: time.Since(start).Seconds(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// decodeBody parses a bounded JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
