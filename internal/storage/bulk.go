package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shashank8104/resume-intelligence/internal/synth"
)

// bulkWriters bounds how many record files are written concurrently.
const bulkWriters = 8

// BulkResult holds the IDs assigned during a bulk save, in input order.
type BulkResult struct {
	ResumeIDs []string `json:"resume_ids"`
	JobIDs    []string `json:"job_ids"`
}

// BulkSaveDataset stores every record of a generated dataset. Resumes
// are anonymized. Record files are written concurrently; the metadata
// indexes are updated once at the end.
func (s *Store) BulkSaveDataset(ds *synth.Dataset) (*BulkResult, error) {
	if ds == nil {
		return nil, errors.New("storage: dataset is nil")
	}

	resumeRecords := make([]*ResumeRecord, len(ds.Resumes))
	jobRecords := make([]*JobRecord, len(ds.Jobs))

	var g errgroup.Group
	g.SetLimit(bulkWriters)
	for i := range ds.Resumes {
		g.Go(func() error {
			tagged := ds.Resumes[i]
			tags := Tags{Role: tagged.Role, ExperienceLevel: string(tagged.Level)}
			record, err := s.writeResumeRecord(tagged.Resume, tags, true)
			if err != nil {
				return err
			}
			resumeRecords[i] = record
			return nil
		})
	}
	for i := range ds.Jobs {
		g.Go(func() error {
			tagged := ds.Jobs[i]
			record, err := s.writeJobRecord(tagged.Job, Tags{Role: tagged.Role})
			if err != nil {
				return err
			}
			jobRecords[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	resumeIndex := s.loadResumeIndex()
	jobIndex := s.loadJobIndex()
	for _, record := range resumeRecords {
		resumeIndex[record.ID] = summarizeResume(record)
	}
	for _, record := range jobRecords {
		jobIndex[record.ID] = summarizeJob(record)
	}
	resumeErr := s.saveResumeIndex(resumeIndex)
	jobErr := s.saveJobIndex(jobIndex)
	s.mu.Unlock()
	if resumeErr != nil {
		return nil, resumeErr
	}
	if jobErr != nil {
		return nil, jobErr
	}

	result := &BulkResult{
		ResumeIDs: make([]string, len(resumeRecords)),
		JobIDs:    make([]string, len(jobRecords)),
	}
	for i, record := range resumeRecords {
		result.ResumeIDs[i] = record.ID
	}
	for i, record := range jobRecords {
		result.JobIDs[i] = record.ID
	}

	s.logger.Info("dataset saved",
		zap.Int("resumes", len(result.ResumeIDs)),
		zap.Int("jobs", len(result.JobIDs)))
	return result, nil
}

// SkillCount is one entry of a skill frequency ranking.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SkillFrequency ranks skills by how many stored resumes mention them,
// case-insensitively. Most frequent first, ties broken alphabetically.
// A non-positive limit returns the full ranking.
func (s *Store) SkillFrequency(limit int) ([]SkillCount, error) {
	entries, err := os.ReadDir(s.resumesDir)
	if err != nil {
		return nil, fmt.Errorf("storage: read resumes dir: %w", err)
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.resumesDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("storage: read %s: %w", entry.Name(), err)
		}
		var record ResumeRecord
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.Warn("skipping unreadable resume record", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if record.Resume == nil {
			continue
		}
		for _, skill := range record.Resume.FlattenedSkills() {
			counts[strings.ToLower(skill)]++
		}
	}

	ranking := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		ranking = append(ranking, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Skill < ranking[j].Skill
	})
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}
