package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/feedback"
	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/observe"
	"github.com/clarionvoice/clarion/internal/phonetic"
	"github.com/clarionvoice/clarion/internal/scoring"
	"github.com/clarionvoice/clarion/internal/session"
	"github.com/clarionvoice/clarion/pkg/audio"
)

// manifest describes a recorded session for one-shot scoring.
type manifest struct {
	Utterances []manifestUtterance `yaml:"utterances"`
}

// manifestUtterance pairs a WAV recording with the sentence it answers.
type manifestUtterance struct {
	WAV        string `yaml:"wav"`
	SentenceID int    `yaml:"sentence_id"`
	Transcript string `yaml:"transcript"`
}

// runManifest scores every recording in the manifest, prints the report,
// and persists the session to the history store.
func runManifest(
	ctx context.Context,
	path string,
	cat *catalog.Catalog,
	analyzer *phonetic.Analyzer,
	store history.Store,
) int {
	m, err := loadManifest(path)
	if err != nil {
		slog.Error("failed to load manifest", "err", err)
		return 1
	}
	if len(m.Utterances) == 0 {
		slog.Error("manifest lists no utterances", "path", path)
		return 1
	}

	metrics := observe.DefaultMetrics()
	assessment, err := session.New(session.Config{
		Engine:   scoring.NewEngine(cat),
		Catalog:  cat,
		Analyzer: analyzer,
		Store:    store,
		Metrics:  metrics,
	})
	if err != nil {
		slog.Error("failed to create assessment", "err", err)
		return 1
	}

	for i, u := range m.Utterances {
		clip, err := audio.ReadWAVFile(u.WAV)
		if err != nil {
			slog.Error("failed to read recording", "index", i, "wav", u.WAV, "err", err)
			return 1
		}

		report := audio.CheckQuality(clip)
		if !report.Valid {
			for _, reason := range report.Reasons {
				metrics.RecordQualityRejection(ctx, reason)
			}
			slog.Error("recording rejected by quality gate",
				"index", i,
				"wav", u.WAV,
				"issues", strings.Join(report.Issues, "; "),
			)
			return 1
		}

		start := time.Now()
		features := audio.ExtractFeatures(clip)
		metrics.ExtractionDuration.Record(ctx, time.Since(start).Seconds())

		score, err := assessment.Submit(ctx, features, u.SentenceID, u.Transcript)
		if err != nil {
			slog.Error("failed to score utterance", "index", i, "wav", u.WAV, "err", err)
			return 1
		}
		slog.Debug("utterance scored",
			"sentence_id", u.SentenceID,
			"score", score.Score,
			"category", score.Category,
		)
	}

	outcome, err := assessment.Finalize(ctx)
	if err != nil {
		slog.Error("failed to finalize session", "err", err)
		return 1
	}

	composer := feedback.NewComposer(cat)
	printReport(outcome, composer.Compose(outcome.Result))
	return 0
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %q: %w", path, err)
	}
	defer f.Close()

	m := &manifest{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode manifest %q: %w", path, err)
	}
	return m, nil
}

// printReport writes a human-readable session report to stdout.
func printReport(outcome session.Outcome, rep feedback.Report) {
	res := outcome.Result

	fmt.Printf("Overall score: %d (reliability %d, confidence %s)\n",
		res.OverallScore, res.Reliability, res.Confidence)
	fmt.Printf("Level: %s %s (%d-%d)\n",
		res.Level.Name, res.Level.Title, res.Level.MinScore, res.Level.MaxScore)
	fmt.Println()

	fmt.Printf("%s\n%s\n", rep.Main.Title, rep.Main.Message)
	fmt.Println()

	if len(rep.Rounds) > 0 {
		fmt.Println("Rounds:")
		for _, r := range rep.Rounds {
			fmt.Printf("  %-24s %3d (%s)\n", r.Round, r.Score, r.Category)
		}
		fmt.Println()
	}

	if len(res.PhonemeStats) > 0 {
		fmt.Println("Phonemes (worst first):")
		for _, p := range res.PhonemeStats {
			fmt.Printf("  %-24s %3d (%s)\n", p.Phoneme, p.Average, p.Evaluation)
		}
		fmt.Println()
	}

	if len(res.Improvements) > 0 {
		fmt.Println("Work on:")
		for _, imp := range res.Improvements {
			fmt.Printf("  [%s] %s: %s\n", imp.Priority, imp.Name, imp.Description)
		}
		fmt.Println()
	}

	if outcome.Progress != nil {
		fmt.Printf("Change since last session: %+d points\n\n", outcome.Progress.Overall)
	}

	fmt.Println(rep.Motivation)
}
