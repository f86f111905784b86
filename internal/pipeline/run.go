// Package pipeline orchestrates batch screening runs: it acquires the
// job description, loads candidate files concurrently, scores them
// sequentially, and optionally explains and persists each result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shashank8104/resume-intelligence/internal/db"
	"github.com/shashank8104/resume-intelligence/internal/documents"
	"github.com/shashank8104/resume-intelligence/internal/explain"
	"github.com/shashank8104/resume-intelligence/internal/ingestion"
	"github.com/shashank8104/resume-intelligence/internal/llm"
	"github.com/shashank8104/resume-intelligence/internal/screening"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// defaultLoaders bounds how many resume files are read concurrently.
const defaultLoaders = 8

// Step names for progress events.
const (
	StepJob     = "job_description"
	StepResumes = "resume_loading"
	StepScreen  = "screening"
	StepPersist = "persistence"
)

// Category names for progress events.
const (
	CategoryIngestion = "ingestion"
	CategoryScreening = "screening"
	CategoryStorage   = "storage"
)

// ProgressEvent represents a progress update during a batch run.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called as the run advances.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a batch screening run.
type RunOptions struct {
	// Job source: a job description JSON file or a posting URL to
	// ingest. Exactly one must be set.
	JobPath string
	JobURL  string

	// Resume sources: explicit files, plus every .json file directly
	// under ResumeDir.
	ResumePaths []string
	ResumeDir   string

	// Explain attaches a detailed explanation to each scored result.
	Explain bool

	// Loaders bounds concurrent resume file reads. Zero selects the
	// default.
	Loaders int

	// Screening knobs, handed to the engine unchanged.
	MaxFeatures    int
	SectionWeights map[string]float64

	// Ingestion knobs for URL mode.
	GeminiAPIKey string
	UseBrowser   bool

	// DatabaseURL enables the results store. Connection failures
	// degrade to a warning; the run continues without persistence.
	DatabaseURL string

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Item is the outcome for one candidate file, in input order.
type Item struct {
	ResumeID    string                 `json:"resume_id"`
	Path        string                 `json:"path"`
	Rank        int                    `json:"rank,omitempty"`
	Result      *types.ScreeningResult `json:"result,omitempty"`
	Explanation *explain.Explanation   `json:"explanation,omitempty"`
	RunID       string                 `json:"run_id,omitempty"`
	LoadError   string                 `json:"load_error,omitempty"`
}

// RunResult is the full outcome of a batch screening run.
type RunResult struct {
	Job    *types.JobDescription `json:"job"`
	Source *ingestion.Source     `json:"source,omitempty"`
	Items  []Item                `json:"items"`
}

// Leaderboard returns the scored items in rank order.
func (r *RunResult) Leaderboard() []Item {
	board := make([]Item, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Result != nil {
			board = append(board, item)
		}
	}
	sort.Slice(board, func(i, j int) bool {
		return board[i].Rank < board[j].Rank
	})
	return board
}

// emitProgress calls the progress callback if configured.
func emitProgress(opts *RunOptions, step, category, message, runID string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}

// Run executes a batch screening run. Candidate files that fail to load
// are reported on their item and excluded from scoring; scoring itself
// is sequential and order-preserving.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var database *db.DB
	if opts.DatabaseURL != "" {
		conn, err := db.Connect(ctx, opts.DatabaseURL)
		if err == nil {
			err = conn.EnsureSchema(ctx)
			if err != nil {
				conn.Close()
			}
		}
		if err != nil {
			logger.Warn("failed to connect to results store, continuing without persistence",
				zap.Error(err))
		} else {
			database = conn
			defer database.Close()
		}
	}

	job, source, err := loadJob(ctx, &opts, logger)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, StepJob, CategoryIngestion,
		fmt.Sprintf("Loaded job description: %s at %s", job.Title, job.Company), "", job)

	paths, err := resumePaths(opts)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("pipeline: no resume files to screen")
	}

	items, resumes := loadResumes(paths, opts.Loaders)
	loaded := 0
	for _, resume := range resumes {
		if resume != nil {
			loaded++
		}
	}
	emitProgress(&opts, StepResumes, CategoryIngestion,
		fmt.Sprintf("Loaded %d of %d resume files", loaded, len(paths)), "", nil)
	if loaded == 0 {
		return nil, errors.New("pipeline: every resume file failed to load")
	}

	engine := screening.New(screening.Config{
		SectionWeights: opts.SectionWeights,
		MaxFeatures:    opts.MaxFeatures,
		Logger:         logger,
	})
	screened := make([]*types.Resume, 0, loaded)
	for _, resume := range resumes {
		if resume != nil {
			screened = append(screened, resume)
		}
	}
	results := engine.ScreenBatch(screened, job, opts.Explain)

	explainer := explain.New(logger)
	next := 0
	for i := range items {
		if resumes[i] == nil {
			continue
		}
		result := results[next]
		next++
		items[i].Result = result
		emitProgress(&opts, StepScreen, CategoryScreening,
			fmt.Sprintf("Screened %s: score %.2f", items[i].ResumeID, result.OverallScore), "", nil)

		if opts.Explain {
			explanation, err := explainer.Explain(resumes[i], job, result)
			if err != nil {
				logger.Warn("failed to build explanation",
					zap.String("resume_id", items[i].ResumeID), zap.Error(err))
			} else {
				items[i].Explanation = explanation
			}
		}

		if database != nil {
			runID, err := database.SaveRun(ctx, job.Title, items[i].ResumeID, result)
			if err != nil {
				logger.Warn("failed to persist screening run",
					zap.String("resume_id", items[i].ResumeID), zap.Error(err))
			} else {
				items[i].RunID = runID.String()
				emitProgress(&opts, StepPersist, CategoryStorage,
					fmt.Sprintf("Persisted screening run for %s", items[i].ResumeID), items[i].RunID, nil)
			}
		}
	}

	assignRanks(items)
	logger.Info("batch screening run complete",
		zap.String("job_title", job.Title),
		zap.Int("candidates", len(items)),
		zap.Int("scored", loaded))
	return &RunResult{Job: job, Source: source, Items: items}, nil
}

// loadJob acquires the job description from the configured source.
func loadJob(ctx context.Context, opts *RunOptions, logger *zap.Logger) (*types.JobDescription, *ingestion.Source, error) {
	switch {
	case opts.JobURL != "" && opts.JobPath != "":
		return nil, nil, errors.New("pipeline: provide either a job file or a job URL, not both")
	case opts.JobURL != "":
		var client llm.Client
		if opts.GeminiAPIKey != "" {
			c, err := llm.NewClient(ctx, nil, opts.GeminiAPIKey)
			if err != nil {
				logger.Warn("failed to initialize LLM client, using heuristic parser", zap.Error(err))
			} else {
				client = c
				defer c.Close()
			}
		}
		ingester := ingestion.New(ingestion.Options{
			Logger:     logger,
			Client:     client,
			UseBrowser: opts.UseBrowser,
		})
		job, source, err := ingester.FromURL(ctx, opts.JobURL)
		if err != nil {
			return nil, nil, fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		return job, source, nil
	case opts.JobPath != "":
		job, err := documents.LoadJob(opts.JobPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load job description: %w", err)
		}
		return job, nil, nil
	default:
		return nil, nil, errors.New("pipeline: a job file or a job URL is required")
	}
}

// resumePaths collects the candidate files: explicit paths first, then
// the .json files directly under ResumeDir, sorted, without duplicates.
func resumePaths(opts RunOptions) ([]string, error) {
	paths := append([]string(nil), opts.ResumePaths...)
	if opts.ResumeDir != "" {
		matches, err := filepath.Glob(filepath.Join(opts.ResumeDir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list resume dir: %w", err)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}

	seen := make(map[string]struct{}, len(paths))
	unique := paths[:0]
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		unique = append(unique, path)
	}
	return unique, nil
}

// loadResumes reads candidate files with bounded concurrency. Failures
// are recorded on the item rather than aborting the run.
func loadResumes(paths []string, limit int) ([]Item, []*types.Resume) {
	if limit <= 0 {
		limit = defaultLoaders
	}

	items := make([]Item, len(paths))
	resumes := make([]*types.Resume, len(paths))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			items[i] = Item{ResumeID: resumeID(path), Path: path}
			resume, err := documents.LoadResume(path)
			if err != nil {
				items[i].LoadError = err.Error()
				return nil
			}
			resumes[i] = resume
			return nil
		})
	}
	// Loader goroutines record failures per item and never return one.
	_ = g.Wait()
	return items, resumes
}

// resumeID derives a stable identifier from the file name.
func resumeID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// assignRanks orders scored items by overall score descending, resume ID
// ascending on ties, and writes 1-based ranks back onto the items.
func assignRanks(items []Item) {
	scored := make([]int, 0, len(items))
	for i := range items {
		if items[i].Result != nil {
			scored = append(scored, i)
		}
	}
	sort.Slice(scored, func(a, b int) bool {
		left, right := items[scored[a]], items[scored[b]]
		if left.Result.OverallScore != right.Result.OverallScore {
			return left.Result.OverallScore > right.Result.OverallScore
		}
		return left.ResumeID < right.ResumeID
	})
	for rank, idx := range scored {
		items[idx].Rank = rank + 1
	}
}
