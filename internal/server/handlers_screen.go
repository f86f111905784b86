package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/documents"
	"github.com/shashank8104/resume-intelligence/internal/explain"
	"github.com/shashank8104/resume-intelligence/internal/server/middleware"
	"github.com/shashank8104/resume-intelligence/internal/session"
	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/internal/validation"
)

// ScreenResumeRequest is the body for /api/v1/screen/resume.
type ScreenResumeRequest struct {
	Resume  *types.Resume         `json:"resume"`
	Job     *types.JobDescription `json:"job"`
	Explain bool                  `json:"explain"`
}

// ScreenResumeData is the data payload for a single screening.
type ScreenResumeData struct {
	Result      *types.ScreeningResult `json:"screening_result"`
	Explanation *explain.Explanation   `json:"explanation,omitempty"`
}

// ScreenBatchRequest is the body for /api/v1/screen/batch.
type ScreenBatchRequest struct {
	Resumes []*types.Resume       `json:"resumes"`
	Job     *types.JobDescription `json:"job"`
	Explain bool                  `json:"explain"`
}

// ScreenBatchData is the data payload for a batch screening.
type ScreenBatchData struct {
	Results        []*types.ScreeningResult `json:"results"`
	TotalProcessed int                      `json:"total_processed"`
	JobTitle       string                   `json:"job_title"`
}

// handleScreenResume screens one resume against one job description.
func (s *Server) handleScreenResume(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScreenResumeRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}

	documents.NormalizeResume(req.Resume)
	documents.NormalizeJob(req.Job)
	if err := validation.CheckResume(req.Resume); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}
	if err := validation.CheckJob(req.Job); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}

	result, err := s.newScreener().Screen(req.Resume, req.Job, req.Explain)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, start, "screening failed: "+err.Error())
		return
	}

	data := ScreenResumeData{Result: result}
	if req.Explain {
		explanation, err := s.explainer.Explain(req.Resume, req.Job, result)
		if err != nil {
			s.logger.Warn("failed to build explanation", zap.Error(err))
		} else {
			data.Explanation = explanation
		}
	}

	s.persistResult(r, req.Job.Title, resumeLabel(req.Resume), result)
	s.recordSession(r, start, req, data, true)
	s.respond(w, http.StatusOK, start, data, "Resume screened successfully")
}

// handleScreenBatch screens a set of resumes against one job description.
// Entries that cannot be screened yield placeholder results rather than
// failing the batch.
func (s *Server) handleScreenBatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScreenBatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}

	if len(req.Resumes) == 0 {
		s.respondError(w, http.StatusBadRequest, start, "at least one resume is required")
		return
	}
	documents.NormalizeJob(req.Job)
	if err := validation.CheckJob(req.Job); err != nil {
		s.respondError(w, http.StatusBadRequest, start, err.Error())
		return
	}
	for _, resume := range req.Resumes {
		documents.NormalizeResume(resume)
	}

	results := s.newScreener().ScreenBatch(req.Resumes, req.Job, req.Explain)
	data := ScreenBatchData{
		Results:        results,
		TotalProcessed: len(results),
		JobTitle:       req.Job.Title,
	}

	if s.database != nil {
		for i, result := range results {
			s.persistResult(r, req.Job.Title, resumeLabel(req.Resumes[i]), result)
		}
	}
	s.recordSession(r, start, req, data, true)
	s.respond(w, http.StatusOK, start, data, "Batch screening completed")
}

// persistResult saves one screening run to the results store when it is
// configured. Failures degrade to a warning.
func (s *Server) persistResult(r *http.Request, jobTitle, resumeID string, result *types.ScreeningResult) {
	if s.database == nil {
		return
	}
	if _, err := s.database.SaveRun(r.Context(), jobTitle, resumeID, result); err != nil {
		s.logger.Warn("failed to persist screening run",
			zap.String("resume_id", resumeID), zap.Error(err))
	}
}

// recordSession appends the call to the caller's session history when a
// verified session handle accompanied the request.
func (s *Server) recordSession(r *http.Request, start time.Time, reqBody, respData any, success bool) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		return
	}

	requestJSON, _ := json.Marshal(reqBody)
	responseJSON, _ := json.Marshal(respData)
	s.sessions.Touch(sessionID)
	s.sessions.Record(sessionID, session.Request{
		Endpoint:      r.URL.Path,
		Method:        r.Method,
		RequestData:   requestJSON,
		ResponseData:  responseJSON,
		ExecutionTime: time.Since(start).Seconds(),
		Success:       success,
	})
}

// resumeLabel derives the identifier recorded alongside a screening run.
func resumeLabel(resume *types.Resume) string {
	if resume == nil || resume.ContactInfo.FullName == "" {
		return "unknown"
	}
	return resume.ContactInfo.FullName
}
