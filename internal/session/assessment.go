// Package session orchestrates a single pronunciation assessment: it
// collects per-utterance scores and analyses as the speaker works
// through the catalog, then finalizes them into a persisted session
// result with progress deltas against the previous session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/observe"
	"github.com/clarionvoice/clarion/internal/phonetic"
	"github.com/clarionvoice/clarion/internal/scoring"
	"github.com/clarionvoice/clarion/pkg/audio"
)

// ErrNoUtterances is returned by Finalize when nothing was submitted.
var ErrNoUtterances = errors.New("session: no utterances submitted")

// Assessment accumulates utterance scores for one assessment run.
// All methods are safe for concurrent use, though a typical host drives
// one utterance at a time.
type Assessment struct {
	engine   *scoring.Engine
	catalog  *catalog.Catalog
	analyzer *phonetic.Analyzer
	store    history.Store
	metrics  *observe.Metrics

	mu       sync.Mutex
	scores   []scoring.UtteranceScore
	analyses []scoring.UtteranceAnalysis
	done     bool
}

// Config carries the dependencies of an [Assessment]. Engine, Catalog
// and Store are required; Analyzer is optional and only used when
// transcripts are submitted; Metrics falls back to the package default.
type Config struct {
	Engine   *scoring.Engine
	Catalog  *catalog.Catalog
	Analyzer *phonetic.Analyzer
	Store    history.Store
	Metrics  *observe.Metrics
}

// New creates an assessment from cfg.
func New(cfg Config) (*Assessment, error) {
	if cfg.Engine == nil {
		return nil, errors.New("session: engine is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("session: store is required")
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &Assessment{
		engine:   cfg.Engine,
		catalog:  cfg.Catalog,
		analyzer: cfg.Analyzer,
		store:    cfg.Store,
		metrics:  metrics,
	}, nil
}

// Submit scores one utterance against the sentence identified by
// sentenceID. When transcript is non-empty and an analyzer is
// configured, per-phoneme observations are derived from it and feed the
// phoneme component of the score; otherwise the engine's default
// applies. The utterance score is returned and retained for Finalize.
func (a *Assessment) Submit(ctx context.Context, features audio.FeatureSet, sentenceID int, transcript string) (scoring.UtteranceScore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done {
		return scoring.UtteranceScore{}, errors.New("session: already finalized")
	}

	sentence, _, err := a.catalog.SentenceByID(sentenceID)
	if err != nil {
		return scoring.UtteranceScore{}, fmt.Errorf("session: submit: %w", err)
	}

	var analysis scoring.UtteranceAnalysis
	if transcript != "" && a.analyzer != nil {
		start := time.Now()
		analysis = a.analyzer.Analyze(sentence, transcript)
		a.metrics.AnalysisDuration.Record(ctx, time.Since(start).Seconds())
	} else {
		analysis = scoring.UtteranceAnalysis{SentenceID: sentenceID}
	}

	score, err := a.engine.ScoreUtteranceByID(features, sentenceID, analysis.Observations)
	if err != nil {
		return scoring.UtteranceScore{}, fmt.Errorf("session: submit: %w", err)
	}

	a.scores = append(a.scores, score)
	a.analyses = append(a.analyses, analysis)
	return score, nil
}

// Count reports how many utterances have been submitted.
func (a *Assessment) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.scores)
}

// Outcome is the result of a finalized assessment.
type Outcome struct {
	Record history.SessionRecord
	Result scoring.SessionResult

	// Progress is nil for the first recorded session.
	Progress *scoring.Progress
}

// Finalize aggregates all submitted utterances into a session result,
// computes progress against the previous persisted session when one
// exists, appends the record to the history store and updates the
// previous-level marker. An assessment can be finalized only once.
func (a *Assessment) Finalize(ctx context.Context) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done {
		return Outcome{}, errors.New("session: already finalized")
	}
	if len(a.scores) == 0 {
		return Outcome{}, ErrNoUtterances
	}

	result := a.engine.BuildSessionResult(a.scores, a.analyses)

	var progress *scoring.Progress
	previous, err := history.Latest(ctx, a.store)
	if err != nil {
		return Outcome{}, fmt.Errorf("session: load previous session: %w", err)
	}
	if previous != nil {
		progress = scoring.TrackProgress(&result, &previous.Result)
	}

	record, err := a.store.Append(ctx, result)
	if err != nil {
		return Outcome{}, fmt.Errorf("session: persist session: %w", err)
	}
	if err := a.store.SetPreviousLevel(ctx, result.Level.Tier); err != nil {
		return Outcome{}, fmt.Errorf("session: record level: %w", err)
	}

	a.done = true
	return Outcome{Record: record, Result: result, Progress: progress}, nil
}
