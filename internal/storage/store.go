// Package storage keeps resumes and job descriptions as JSON files under
// a data directory, alongside metadata indexes that make listing and
// stats cheap. Resumes are anonymized by default before they touch disk.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// ErrNotFound reports a lookup for a record that is not in the store.
var ErrNotFound = errors.New("storage: record not found")

const (
	idLength = 12

	resumesDirName  = "resumes"
	jobsDirName     = "job_descriptions"
	metadataDirName = "metadata"

	resumeIndexFile = "resumes_metadata.json"
	jobIndexFile    = "jobs_metadata.json"
)

// Config configures a Store.
type Config struct {
	// Dir is the data directory root. Defaults to "data".
	Dir    string
	Logger *zap.Logger
	Now    func() time.Time
}

// Store is a flat-file record store. Safe for concurrent use.
type Store struct {
	root        string
	resumesDir  string
	jobsDir     string
	metadataDir string

	logger *zap.Logger
	now    func() time.Time
	seq    atomic.Uint64

	mu sync.Mutex
}

// New creates the data directory layout and returns a Store.
func New(cfg Config) (*Store, error) {
	root := cfg.Dir
	if root == "" {
		root = "data"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		root:        root,
		resumesDir:  filepath.Join(root, resumesDirName),
		jobsDir:     filepath.Join(root, jobsDirName),
		metadataDir: filepath.Join(root, metadataDirName),
		logger:      logger,
		now:         now,
	}
	for _, dir := range []string{s.resumesDir, s.jobsDir, s.metadataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create %s: %w", dir, err)
		}
	}
	logger.Info("data storage initialized", zap.String("dir", root))
	return s, nil
}

// Dir returns the data directory root.
func (s *Store) Dir() string {
	return s.root
}

// SaveResume stores one resume and updates the resume index. When
// anonymize is true the contact block is scrubbed first. Returns the
// new record ID.
func (s *Store) SaveResume(resume *types.Resume, tags Tags, anonymize bool) (string, error) {
	if resume == nil {
		return "", errors.New("storage: resume is nil")
	}
	record, err := s.writeResumeRecord(resume, tags, anonymize)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.loadResumeIndex()
	index[record.ID] = summarizeResume(record)
	if err := s.saveResumeIndex(index); err != nil {
		return "", err
	}

	s.logger.Info("resume saved", zap.String("id", record.ID))
	return record.ID, nil
}

// SaveJob stores one job description and updates the job index. Returns
// the new record ID.
func (s *Store) SaveJob(job *types.JobDescription, tags Tags) (string, error) {
	if job == nil {
		return "", errors.New("storage: job description is nil")
	}
	record, err := s.writeJobRecord(job, tags)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.loadJobIndex()
	index[record.ID] = summarizeJob(record)
	if err := s.saveJobIndex(index); err != nil {
		return "", err
	}

	s.logger.Info("job description saved", zap.String("id", record.ID))
	return record.ID, nil
}

// LoadResume reads one resume record by ID. Returns ErrNotFound when no
// such record exists.
func (s *Store) LoadResume(id string) (*ResumeRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.resumesDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read resume %s: %w", id, err)
	}
	var record ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("storage: decode resume %s: %w", id, err)
	}
	return &record, nil
}

// LoadJob reads one job record by ID. Returns ErrNotFound when no such
// record exists.
func (s *Store) LoadJob(id string) (*JobRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.jobsDir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read job %s: %w", id, err)
	}
	var record JobRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("storage: decode job %s: %w", id, err)
	}
	return &record, nil
}

// ListResumes returns resume summaries ordered by store time. A non-empty
// role filters on the role tag; a positive limit caps the result.
func (s *Store) ListResumes(role string, limit int) []ResumeSummary {
	s.mu.Lock()
	index := s.loadResumeIndex()
	s.mu.Unlock()

	summaries := make([]ResumeSummary, 0, len(index))
	for _, summary := range index {
		if role != "" && summary.Role != role {
			continue
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].StoredAt.Equal(summaries[j].StoredAt) {
			return summaries[i].StoredAt.Before(summaries[j].StoredAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// ListJobs returns job summaries ordered by store time. A non-empty role
// filters on the role tag; a positive limit caps the result.
func (s *Store) ListJobs(role string, limit int) []JobSummary {
	s.mu.Lock()
	index := s.loadJobIndex()
	s.mu.Unlock()

	summaries := make([]JobSummary, 0, len(index))
	for _, summary := range index {
		if role != "" && summary.Role != role {
			continue
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].StoredAt.Equal(summaries[j].StoredAt) {
			return summaries[i].StoredAt.Before(summaries[j].StoredAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// DeleteResume removes a resume record and its index entry.
func (s *Store) DeleteResume(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.resumesDir, id+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: resume %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("storage: delete resume %s: %w", id, err)
	}
	index := s.loadResumeIndex()
	delete(index, id)
	if err := s.saveResumeIndex(index); err != nil {
		return err
	}
	s.logger.Info("resume deleted", zap.String("id", id))
	return nil
}

// DeleteJob removes a job record and its index entry.
func (s *Store) DeleteJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.jobsDir, id+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage: job %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("storage: delete job %s: %w", id, err)
	}
	index := s.loadJobIndex()
	delete(index, id)
	if err := s.saveJobIndex(index); err != nil {
		return err
	}
	s.logger.Info("job description deleted", zap.String("id", id))
	return nil
}

// Stats describes the stored dataset.
type Stats struct {
	TotalResumes           int            `json:"total_resumes"`
	TotalJobDescriptions   int            `json:"total_job_descriptions"`
	ResumeRoles            map[string]int `json:"resume_roles"`
	ResumeExperienceLevels map[string]int `json:"resume_experience_levels"`
	JobRoles               map[string]int `json:"job_roles"`
	JobLevels              map[string]int `json:"job_levels"`
	DataDirectory          string         `json:"data_directory"`
	LastUpdated            time.Time      `json:"last_updated"`
}

// Stats aggregates role and level counts over both indexes. Records
// without a tag are counted under "unknown".
func (s *Store) Stats() *Stats {
	s.mu.Lock()
	resumeIndex := s.loadResumeIndex()
	jobIndex := s.loadJobIndex()
	s.mu.Unlock()

	stats := &Stats{
		TotalResumes:           len(resumeIndex),
		TotalJobDescriptions:   len(jobIndex),
		ResumeRoles:            make(map[string]int),
		ResumeExperienceLevels: make(map[string]int),
		JobRoles:               make(map[string]int),
		JobLevels:              make(map[string]int),
		DataDirectory:          s.root,
		LastUpdated:            s.now().UTC(),
	}
	for _, summary := range resumeIndex {
		stats.ResumeRoles[orUnknown(summary.Role)]++
		stats.ResumeExperienceLevels[orUnknown(summary.ExperienceLevel)]++
	}
	for _, summary := range jobIndex {
		stats.JobRoles[orUnknown(summary.Role)]++
		stats.JobLevels[orUnknown(summary.ExperienceLevel)]++
	}
	return stats
}

func (s *Store) writeResumeRecord(resume *types.Resume, tags Tags, anonymize bool) (*ResumeRecord, error) {
	if anonymize {
		resume = anonymizeResume(resume)
	}
	payload, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("storage: encode resume: %w", err)
	}

	record := &ResumeRecord{
		ID:              s.generateID(payload),
		Role:            tags.Role,
		ExperienceLevel: tags.ExperienceLevel,
		StoredAt:        s.now().UTC(),
		Resume:          resume,
	}
	if err := s.writeJSON(filepath.Join(s.resumesDir, record.ID+".json"), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) writeJobRecord(job *types.JobDescription, tags Tags) (*JobRecord, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("storage: encode job description: %w", err)
	}

	record := &JobRecord{
		ID:       s.generateID(payload),
		Role:     tags.Role,
		StoredAt: s.now().UTC(),
		Job:      job,
	}
	if err := s.writeJSON(filepath.Join(s.jobsDir, record.ID+".json"), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// loadResumeIndex reads the resume index. A missing or unreadable index
// starts over empty; the next save rewrites it.
func (s *Store) loadResumeIndex() map[string]ResumeSummary {
	index := make(map[string]ResumeSummary)
	data, err := os.ReadFile(filepath.Join(s.metadataDir, resumeIndexFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read resume index", zap.Error(err))
		}
		return index
	}
	if err := json.Unmarshal(data, &index); err != nil {
		s.logger.Warn("could not decode resume index", zap.Error(err))
		return make(map[string]ResumeSummary)
	}
	return index
}

func (s *Store) saveResumeIndex(index map[string]ResumeSummary) error {
	return s.writeJSON(filepath.Join(s.metadataDir, resumeIndexFile), index)
}

func (s *Store) loadJobIndex() map[string]JobSummary {
	index := make(map[string]JobSummary)
	data, err := os.ReadFile(filepath.Join(s.metadataDir, jobIndexFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read job index", zap.Error(err))
		}
		return index
	}
	if err := json.Unmarshal(data, &index); err != nil {
		s.logger.Warn("could not decode job index", zap.Error(err))
		return make(map[string]JobSummary)
	}
	return index
}

func (s *Store) saveJobIndex(index map[string]JobSummary) error {
	return s.writeJSON(filepath.Join(s.metadataDir, jobIndexFile), index)
}

// generateID derives a short unique ID from the payload, the clock and a
// process-local sequence number, so identical payloads still get
// distinct IDs.
func (s *Store) generateID(payload []byte) string {
	h := sha256.New()
	h.Write([]byte(s.now().UTC().Format(time.RFC3339Nano)))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.FormatUint(s.seq.Add(1), 10)))
	h.Write([]byte("|"))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))[:idLength]
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
