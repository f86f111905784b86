// Package server provides the HTTP REST API for resume screening.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/db"
	"github.com/shashank8104/resume-intelligence/internal/evaluation"
	"github.com/shashank8104/resume-intelligence/internal/explain"
	"github.com/shashank8104/resume-intelligence/internal/screening"
	"github.com/shashank8104/resume-intelligence/internal/server/middleware"
	"github.com/shashank8104/resume-intelligence/internal/server/ratelimit"
	"github.com/shashank8104/resume-intelligence/internal/session"
	"github.com/shashank8104/resume-intelligence/internal/storage"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Config holds server configuration.
type Config struct {
	Addr           string
	DatabaseURL    string
	DataDir        string
	SessionSecret  []byte
	SessionTimeout time.Duration
	SectionWeights map[string]float64
	MaxFeatures    int
	Logger         *zap.Logger
}

// Server wires the screening engine, data stores, and session manager
// behind the REST API.
type Server struct {
	httpServer  *http.Server
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter

	sectionWeights map[string]float64
	maxFeatures    int

	explainer *explain.Explainer
	store     *storage.Store
	sessions  *session.Manager
	evaluator *evaluation.Evaluator
	database  *db.DB
}

// New creates a new server instance. A missing database URL, or one that
// cannot be reached, leaves the server running without the results store.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := storage.New(storage.Config{Dir: cfg.DataDir, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data storage: %w", err)
	}

	sessions, err := session.New(session.Config{
		Timeout: cfg.SessionTimeout,
		Secret:  cfg.SessionSecret,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	s := &Server{
		logger:         logger,
		sectionWeights: cfg.SectionWeights,
		maxFeatures:    cfg.MaxFeatures,
		explainer:      explain.New(logger),
		store:          store,
		sessions:       sessions,
	}
	s.evaluator = evaluation.New(evaluation.Config{
		Logger: logger,
		NewScreener: func() evaluation.Screener {
			return s.newScreener()
		},
	})
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err == nil {
			err = conn.EnsureSchema(context.Background())
			if err != nil {
				conn.Close()
			}
		}
		if err != nil {
			logger.Warn("failed to connect to results store, continuing without persistence",
				zap.Error(err))
		} else {
			s.database = conn
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/screen/resume", s.handleScreenResume)
	mux.HandleFunc("POST /api/v1/screen/batch", s.handleScreenBatch)
	mux.HandleFunc("GET /api/v1/data/stats", s.handleDataStats)
	mux.HandleFunc("POST /api/v1/data/generate", s.handleDataGenerate)
	mux.HandleFunc("GET /api/v1/evaluate/models", s.handleEvaluateModels)
	mux.HandleFunc("POST /api/v1/session/create", s.handleSessionCreate)
	mux.HandleFunc("GET /api/v1/session/{id}/history", s.handleSessionHistory)

	withSession := middleware.SessionContext(sessions)
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(middleware.RequestID(withSession(s.withLogging(s.withCORS(mux))))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the fully wired handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// newScreener builds a fresh pipeline. Pipelines are single-worker and
// freeze their keyword vocabulary on first use, so sharing one across
// requests would make scores depend on request order.
func (s *Server) newScreener() *screening.Pipeline {
	return screening.New(screening.Config{
		SectionWeights: s.sectionWeights,
		MaxFeatures:    s.maxFeatures,
		Logger:         s.logger,
	})
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.String("request_id", middleware.GetRequestID(r)),
			zap.Duration("duration", time.Since(start)))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	deps := map[string]string{
		"screening_engine": "operational",
		"data_storage":     "operational",
		"session_manager":  "operational",
		"results_store":    "not_configured",
	}
	status := "healthy"
	if s.database != nil {
		deps["results_store"] = "operational"
		if err := s.database.Ping(r.Context()); err != nil {
			deps["results_store"] = "unreachable"
			status = "degraded"
		}
	}

	s.respond(w, http.StatusOK, start, HealthCheck{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Version:      Version,
		Dependencies: deps,
	}, "")
}

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr; a deployment behind
// a trusted proxy would read X-Forwarded-For instead.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate
// limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.respondError(w, http.StatusTooManyRequests, time.Now(),
		"Rate limit exceeded. Please try again later.")
}
