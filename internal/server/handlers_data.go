package server

import (
	"net/http"
	"time"

	"github.com/shashank8104/resume-intelligence/internal/storage"
	"github.com/shashank8104/resume-intelligence/internal/synth"
)

// topSkillCount bounds the skill frequency list in the stats payload.
const topSkillCount = 10

// Bounds on one generation request.
const (
	defaultGenerateCount = 10
	maxGenerateCount     = 500
)

// DataStats is the data payload for /api/v1/data/stats.
type DataStats struct {
	Stats     *storage.Stats       `json:"stats"`
	TopSkills []storage.SkillCount `json:"top_skills,omitempty"`
}

// GenerateRequest is the body for /api/v1/data/generate.
type GenerateRequest struct {
	NumResumes int   `json:"num_resumes"`
	NumJobs    int   `json:"num_jobs"`
	Seed       int64 `json:"seed,omitempty"`
}

// GenerateData is the data payload for a generation run.
type GenerateData struct {
	ResumeIDs []string `json:"resume_ids"`
	JobIDs    []string `json:"job_ids"`
}

// handleDataStats reports what the flat-file dataset currently holds.
func (s *Server) handleDataStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data := DataStats{Stats: s.store.Stats()}
	if topSkills, err := s.store.SkillFrequency(topSkillCount); err == nil {
		data.TopSkills = topSkills
	}

	s.respond(w, http.StatusOK, start, data, "")
}

// handleDataGenerate fabricates a synthetic dataset and stores it.
func (s *Server) handleDataGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}
	if req.NumResumes <= 0 {
		req.NumResumes = defaultGenerateCount
	}
	if req.NumJobs <= 0 {
		req.NumJobs = defaultGenerateCount
	}
	if req.NumResumes > maxGenerateCount || req.NumJobs > maxGenerateCount {
		s.respondError(w, http.StatusBadRequest, start, "generation request too large")
		return
	}

	generator := synth.New(synth.Config{Seed: req.Seed, Logger: s.logger})
	dataset := generator.Dataset(req.NumResumes, req.NumJobs)

	saved, err := s.store.BulkSaveDataset(dataset)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, start, "failed to store dataset: "+err.Error())
		return
	}

	s.respond(w, http.StatusCreated, start, GenerateData{
		ResumeIDs: saved.ResumeIDs,
		JobIDs:    saved.JobIDs,
	}, "Synthetic dataset generated")
}
