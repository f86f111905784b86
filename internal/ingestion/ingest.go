// Package ingestion turns job postings into structured job descriptions.
// A posting arrives as a URL or a local file; the pipeline fetches it,
// reduces the HTML to readable text, cleans the text, and parses it with
// the configured LLM or with deterministic heuristics when no model is
// available.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/fetch"
	"github.com/shashank8104/resume-intelligence/internal/llm"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

var (
	// ErrFetchFailed wraps transport failures while retrieving a posting.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrExtractionFailed wraps failures reducing HTML to text.
	ErrExtractionFailed = errors.New("content extraction failed")
	// ErrSparsePosting marks text too thin to yield a usable description.
	ErrSparsePosting = errors.New("posting text too sparse to parse")
)

// Parser names reported in Source.
const (
	ParserGemini    = "gemini"
	ParserHeuristic = "heuristic"
)

// minPostingChars is the least cleaned text worth parsing at all.
const minPostingChars = 120

// Source records where a job description came from and how it was parsed.
type Source struct {
	URL         string    `json:"url,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	FetchedAt   time.Time `json:"fetched_at"`
	ContentHash string    `json:"content_hash"`
	Chars       int       `json:"chars"`
	Parser      string    `json:"parser"`
	BrowserUsed bool      `json:"browser_used,omitempty"`
}

// Options configures an Ingester.
type Options struct {
	// Logger receives pipeline progress; nil means silent.
	Logger *zap.Logger
	// Client enables LLM parsing. With no client the heuristic parser runs.
	Client llm.Client
	// UseBrowser allows the headless-browser fallback for script-rendered
	// postings.
	UseBrowser bool
}

// Ingester runs the posting-to-description pipeline.
type Ingester struct {
	logger     *zap.Logger
	client     llm.Client
	useBrowser bool
	now        func() time.Time
}

// New builds an Ingester from options.
func New(opts Options) *Ingester {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{
		logger:     logger,
		client:     opts.Client,
		useBrowser: opts.UseBrowser,
		now:        time.Now,
	}
}

// FromURL fetches a posting, extracts and cleans its text, and parses it
// into a job description.
func (i *Ingester) FromURL(ctx context.Context, urlStr string) (*types.JobDescription, *Source, error) {
	platform := fetch.DetectPlatform(urlStr)
	i.logger.Debug("fetching job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	browserUsed := false
	if i.useBrowser && fetch.ShouldUseBrowser(text) {
		i.logger.Debug("content below threshold, rendering with browser",
			zap.Int("chars", len(text)))
		html, berr := fetch.RenderSimple(ctx, urlStr, i.logger)
		if berr != nil {
			i.logger.Warn("browser rendering failed, keeping HTTP content", zap.Error(berr))
		} else if rendered, rerr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); rerr == nil {
			text = rendered
			browserUsed = true
		}
	}

	cleaned := CleanText(text)
	job, parser, err := i.parse(ctx, cleaned)
	if err != nil {
		return nil, nil, err
	}

	src := &Source{
		URL:         urlStr,
		Platform:    string(platform),
		FetchedAt:   i.now().UTC(),
		ContentHash: contentHash(cleaned),
		Chars:       len(cleaned),
		Parser:      parser,
		BrowserUsed: browserUsed,
	}
	i.logger.Info("ingested job posting",
		zap.String("url", urlStr),
		zap.String("parser", parser),
		zap.Int("chars", len(cleaned)))
	return job, src, nil
}

// FromFile parses a posting saved locally, either as plain text or as an
// HTML page saved from a browser.
func (i *Ingester) FromFile(ctx context.Context, path string) (*types.JobDescription, *Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read posting file: %w", err)
	}

	text := string(data)
	if isHTMLFile(path) {
		extracted, xerr := fetch.ExtractMainText(text, fetch.DefaultTextSelectors())
		if xerr != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrExtractionFailed, xerr)
		}
		text = extracted
	}

	cleaned := CleanText(text)
	job, parser, err := i.parse(ctx, cleaned)
	if err != nil {
		return nil, nil, err
	}

	src := &Source{
		URL:         path,
		Platform:    "local",
		FetchedAt:   i.now().UTC(),
		ContentHash: contentHash(cleaned),
		Chars:       len(cleaned),
		Parser:      parser,
	}
	return job, src, nil
}

// parse runs the LLM parser when a client is configured and falls back to
// heuristics when it fails or is absent.
func (i *Ingester) parse(ctx context.Context, text string) (*types.JobDescription, string, error) {
	if len(text) < minPostingChars {
		return nil, "", fmt.Errorf("%w: %d chars", ErrSparsePosting, len(text))
	}

	if i.client != nil {
		job, err := parseWithLLM(ctx, i.client, text)
		if err == nil {
			return job, ParserGemini, nil
		}
		i.logger.Warn("LLM parsing failed, falling back to heuristics", zap.Error(err))
	}

	job := ParsePosting(text)
	if err := job.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSparsePosting, err)
	}
	return job, ParserHeuristic, nil
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func isHTMLFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
