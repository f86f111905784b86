package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shashank8104/resume-intelligence/internal/evaluation"
	"github.com/shashank8104/resume-intelligence/internal/synth"
)

// evaluationSeed keeps the default evaluation run reproducible so
// repeated calls measure the model, not the sample.
const evaluationSeed = 42

// EvaluateData is the data payload for /api/v1/evaluate/models.
type EvaluateData struct {
	Report  *evaluation.Report   `json:"report"`
	History []*evaluation.Report `json:"history,omitempty"`
}

// handleEvaluateModels runs a comprehensive evaluation on a synthetic
// labeled set and reports the metrics alongside recent runs.
func (s *Server) handleEvaluateModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	seed := int64(evaluationSeed)
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, start, "invalid seed: "+raw)
			return
		}
		seed = parsed
	}

	generator := synth.New(synth.Config{Seed: seed, Logger: s.logger})
	report := s.evaluator.RunComprehensive(generator)

	s.respond(w, http.StatusOK, start, EvaluateData{
		Report:  report,
		History: s.evaluator.History(0),
	}, "Model evaluation completed")
}
