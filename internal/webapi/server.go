// Package webapi exposes the Clarion assessment pipeline over HTTP. The
// server is a thin adapter: all scoring lives in the scoring and session
// packages, and handlers only translate between JSON and domain types.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/feedback"
	"github.com/clarionvoice/clarion/internal/health"
	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/observe"
	"github.com/clarionvoice/clarion/internal/phonetic"
	"github.com/clarionvoice/clarion/internal/scoring"
	"github.com/clarionvoice/clarion/internal/session"
	"github.com/clarionvoice/clarion/pkg/audio"
)

// shutdownTimeout bounds graceful shutdown after the run context ends.
const shutdownTimeout = 15 * time.Second

// maxScoreBody caps the request body for POST /v1/score.
const maxScoreBody = 1 << 20

// Config carries the dependencies of a [Server]. Catalog and Store are
// required; Analyzer and Metrics fall back to package defaults.
type Config struct {
	ListenAddr string
	Catalog    *catalog.Catalog
	Store      history.Store
	Analyzer   *phonetic.Analyzer
	Metrics    *observe.Metrics
}

// Server is the Clarion HTTP server.
type Server struct {
	addr     string
	catalog  *catalog.Catalog
	engine   *scoring.Engine
	composer *feedback.Composer
	analyzer *phonetic.Analyzer
	store    history.Store
	metrics  *observe.Metrics
}

// New creates a server from cfg.
func New(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("webapi: catalog is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("webapi: store is required")
	}
	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = phonetic.New()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	addr := cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	return &Server{
		addr:     addr,
		catalog:  cfg.Catalog,
		engine:   scoring.NewEngine(cfg.Catalog),
		composer: feedback.NewComposer(cfg.Catalog),
		analyzer: analyzer,
		store:    cfg.Store,
		metrics:  metrics,
	}, nil
}

// Handler builds the full route table wrapped in the observability
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("GET /v1/history", s.handleHistory)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.Handle("GET /metrics", promhttp.Handler())

	health.New(health.StoreChecker(s.store)).Register(mux)

	mw := observe.Middleware(s.metrics,
		"/v1/score", "/v1/history", "/v1/catalog",
		"/metrics", "/healthz", "/readyz",
	)
	return mw(mux)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webapi: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webapi: shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// scoreRequest is the body of POST /v1/score: one completed test run.
type scoreRequest struct {
	Utterances []utteranceInput `json:"utterances"`
}

// utteranceInput pairs extracted features with the sentence they answer.
type utteranceInput struct {
	SentenceID int              `json:"sentenceId"`
	Features   audio.FeatureSet `json:"features"`
	Transcript string           `json:"transcript,omitempty"`
}

// scoreResponse is the body returned by POST /v1/score.
type scoreResponse struct {
	ID         string                   `json:"id"`
	Timestamp  time.Time                `json:"timestamp"`
	Result     scoring.SessionResult    `json:"result"`
	Utterances []scoring.UtteranceScore `json:"utterances"`
	Feedback   feedback.Report          `json:"feedback"`
	Progress   *scoring.Progress        `json:"progress,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req scoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}
	if len(req.Utterances) == 0 {
		writeError(w, http.StatusBadRequest, "utterances must not be empty")
		return
	}

	assessment, err := session.New(session.Config{
		Engine:   s.engine,
		Catalog:  s.catalog,
		Analyzer: s.analyzer,
		Store:    s.store,
		Metrics:  s.metrics,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.ActiveAssessments.Add(ctx, 1)
	defer s.metrics.ActiveAssessments.Add(ctx, -1)

	scores := make([]scoring.UtteranceScore, 0, len(req.Utterances))
	for i, u := range req.Utterances {
		start := time.Now()
		score, err := assessment.Submit(ctx, u.Features, u.SentenceID, u.Transcript)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("utterances[%d]: %v", i, err))
			return
		}
		s.metrics.ScoringDuration.Record(ctx, time.Since(start).Seconds())
		s.metrics.RecordUtteranceScored(ctx, string(score.Category), score.RoundName)
		scores = append(scores, score)
	}

	ctx, span := observe.StartSpan(ctx, "session.finalize")
	outcome, err := assessment.Finalize(ctx)
	span.End()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.RecordSessionCompleted(ctx, string(outcome.Result.Confidence), outcome.Result.Level.Tier)

	observe.Logger(ctx).Info("session scored",
		"utterances", len(scores),
		"overall", outcome.Result.OverallScore,
		"level", outcome.Result.Level.Name,
	)

	writeJSON(w, http.StatusOK, scoreResponse{
		ID:         outcome.Record.ID,
		Timestamp:  outcome.Record.Timestamp,
		Result:     outcome.Result,
		Utterances: scores,
		Feedback:   s.composer.Compose(outcome.Result),
		Progress:   outcome.Progress,
	})
}

// historyResponse is the body returned by GET /v1/history.
type historyResponse struct {
	Records []history.SessionRecord `json:"records"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []history.SessionRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Records: records})
}

// catalogResponse is the body returned by GET /v1/catalog.
type catalogResponse struct {
	Rounds []catalog.Round `json:"rounds"`
	Levels []catalog.Level `json:"levels"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Rounds: s.catalog.Rounds,
		Levels: s.catalog.Levels,
	})
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}
