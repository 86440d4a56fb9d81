package feedback_test

import (
	"strings"
	"testing"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/feedback"
	"github.com/clarionvoice/clarion/internal/scoring"
)

func sessionFixture() scoring.SessionResult {
	return scoring.SessionResult{
		OverallScore: 72,
		Reliability:  85,
		Confidence:   scoring.ConfidenceHigh,
		Level: scoring.LevelResult{
			Tier: 6, Name: "S6", Score: 72, RawScore: 72,
			Title: "Advanced",
		},
		RoundScores: map[string]scoring.RoundScore{
			"Basic Clarity":          {Average: 82, Weighted: 32.8, Count: 7},
			"Phoneme Discrimination": {Average: 64, Weighted: 19.2, Count: 7},
		},
		PhonemeStats: []scoring.PhonemeStat{
			{Phoneme: "L/R", Average: 55, Count: 3, Evaluation: scoring.EvalPoor},
			{Phoneme: "Vowels", Average: 88, Count: 4, Evaluation: scoring.EvalGood},
		},
		Strengths: []scoring.Strength{
			{Type: "phoneme", Name: "Vowels", Score: 88, Description: "Your Vowels pronunciation is very accurate."},
			{Type: "round", Name: "Basic Clarity", Score: 82, Description: "Strong performance in the Basic Clarity round."},
		},
		Improvements: []scoring.Improvement{
			{Type: "phoneme", Name: "L/R", Score: 55, Priority: scoring.PriorityHigh,
				Description: "You are having difficulty distinguishing L from R.",
				Exercises:   []string{"Check the tongue position difference between L and R in a mirror"}},
			{Type: "round", Name: "Phoneme Discrimination", Score: 64, Priority: scoring.PriorityMedium,
				Description: "The Phoneme Discrimination round needs additional practice.",
				Exercises:   []string{"Practise tongue twisters"}},
		},
	}
}

func TestCompose_MainFeedback(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	report := composer.Compose(sessionFixture())

	if report.Level != "S6" || report.OverallScore != 72 {
		t.Errorf("header = %s/%d", report.Level, report.OverallScore)
	}
	if report.Main.Title == "" || report.Main.Message == "" || report.Main.Focus == "" {
		t.Errorf("incomplete main feedback: %+v", report.Main)
	}
	// Score 72 is in the "good" range.
	if !strings.Contains(report.Main.Message, "Solid pronunciation") {
		t.Errorf("message = %q, want good-range text", report.Main.Message)
	}
}

func TestCompose_RoundFeedbackInCatalogOrder(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	report := composer.Compose(sessionFixture())

	if len(report.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2 (unattempted round skipped)", len(report.Rounds))
	}
	if report.Rounds[0].Round != "Basic Clarity" || report.Rounds[1].Round != "Phoneme Discrimination" {
		t.Errorf("round order = %s, %s", report.Rounds[0].Round, report.Rounds[1].Round)
	}

	clarity := report.Rounds[0]
	if clarity.Score != 82 {
		t.Errorf("clarity score = %d", clarity.Score)
	}
	if clarity.Feedback == "" || clarity.Tip == "" || clarity.Details == "" {
		t.Errorf("incomplete round feedback: %+v", clarity)
	}
	// 82 is in the high detail tier.
	if !strings.Contains(clarity.Details, "Near-perfect") {
		t.Errorf("details = %q, want high-tier text", clarity.Details)
	}

	discrimination := report.Rounds[1]
	if !strings.Contains(discrimination.Feedback, "hard for you") {
		t.Errorf("feedback = %q, want fair-band text for 64", discrimination.Feedback)
	}
}

func TestCompose_PhonemeFeedbackKeepsWorstFirst(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	report := composer.Compose(sessionFixture())

	if len(report.Phonemes) != 2 {
		t.Fatalf("phoneme feedbacks = %d, want 2", len(report.Phonemes))
	}
	if report.Phonemes[0].Phoneme != "L/R" {
		t.Errorf("first phoneme = %s, want the weakest", report.Phonemes[0].Phoneme)
	}
	if report.Phonemes[0].Priority != scoring.PriorityHigh {
		t.Errorf("L/R priority = %s, want high", report.Phonemes[0].Priority)
	}
	if report.Phonemes[1].Priority != scoring.PriorityLow {
		t.Errorf("Vowels priority = %s, want low", report.Phonemes[1].Priority)
	}
	for _, p := range report.Phonemes {
		if p.Tip == "" {
			t.Errorf("phoneme %s has no tip", p.Phoneme)
		}
	}
}

func TestCompose_Summary(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	report := composer.Compose(sessionFixture())

	if report.Summary.Strengths.Count != 2 {
		t.Errorf("strength count = %d", report.Summary.Strengths.Count)
	}
	if !strings.Contains(report.Summary.Strengths.Message, "Vowels") {
		t.Errorf("strengths message = %q", report.Summary.Strengths.Message)
	}
	if report.Summary.Improvements.HighPriority != 1 {
		t.Errorf("high priority count = %d", report.Summary.Improvements.HighPriority)
	}
	if !strings.Contains(report.Summary.Improvements.Message, "L/R") {
		t.Errorf("improvements message = %q, want most urgent named", report.Summary.Improvements.Message)
	}
	if report.Summary.Priority != "high" {
		t.Errorf("priority = %s, want high", report.Summary.Priority)
	}
}

func TestCompose_ActionPlan(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	report := composer.Compose(sessionFixture())

	if len(report.Plan.Daily) < 2 {
		t.Fatalf("daily plan = %d blocks, want at least 2", len(report.Plan.Daily))
	}
	// The urgent L/R improvement gets a targeted drill block.
	if report.Plan.Daily[0].Focus != "L/R" {
		t.Errorf("first daily block focus = %q, want L/R", report.Plan.Daily[0].Focus)
	}

	// Tier 6 learners get the full week.
	if len(report.Plan.Weekly) != 7 {
		t.Errorf("weekly plan = %d days, want 7", len(report.Plan.Weekly))
	}

	if len(report.Plan.Immediate) != 3 {
		t.Fatalf("immediate actions = %d, want 3", len(report.Plan.Immediate))
	}
	if !strings.Contains(report.Plan.Immediate[0].Action, "L/R") {
		t.Errorf("first action = %q, want the urgent improvement", report.Plan.Immediate[0].Action)
	}
}

func TestCompose_WeeklyPlanByTier(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())

	beginner := sessionFixture()
	beginner.Level.Tier = 2
	beginner.Level.Name = "S2"
	got := composer.Compose(beginner)
	if len(got.Plan.Weekly) != 4 {
		t.Errorf("beginner weekly plan = %d days, want 4", len(got.Plan.Weekly))
	}
	for _, day := range got.Plan.Weekly {
		if !strings.HasSuffix(day.Focus, "(foundation)") {
			t.Errorf("beginner day focus = %q", day.Focus)
		}
		if len(day.Exercises) > 2 {
			t.Errorf("beginner day has %d exercises, want at most 2", len(day.Exercises))
		}
	}

	advanced := sessionFixture()
	advanced.Level.Tier = 8
	advanced.Level.Name = "S8"
	got = composer.Compose(advanced)
	if len(got.Plan.Weekly) != 7 {
		t.Errorf("advanced weekly plan = %d days, want 7", len(got.Plan.Weekly))
	}
	for _, day := range got.Plan.Weekly {
		if !strings.HasSuffix(day.Focus, "(advanced)") {
			t.Errorf("advanced day focus = %q", day.Focus)
		}
	}
}

func TestCompose_EmptySession(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())

	empty := scoring.SessionResult{
		Confidence: scoring.ConfidenceVeryLow,
		Level:      scoring.LevelResult{Tier: 1, Name: "S1"},
	}
	report := composer.Compose(empty)

	if len(report.Rounds) != 0 || len(report.Phonemes) != 0 {
		t.Errorf("empty session should produce no detail sections: %+v", report)
	}
	if report.Summary.Strengths.Count != 0 || report.Summary.Strengths.Message == "" {
		t.Errorf("strengths summary = %+v", report.Summary.Strengths)
	}
	if report.Summary.Priority != "none" {
		t.Errorf("priority = %s, want none", report.Summary.Priority)
	}
	if len(report.Plan.Daily) != 2 {
		t.Errorf("daily plan should fall back to defaults, got %d", len(report.Plan.Daily))
	}
	if report.Motivation == "" {
		t.Error("motivation should never be empty")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	t.Parallel()
	composer := feedback.NewComposer(catalog.Builtin())
	fixture := sessionFixture()

	first := composer.Compose(fixture)
	second := composer.Compose(fixture)
	if first.Motivation != second.Motivation {
		t.Error("motivation changed between identical runs")
	}
	if first.Main != second.Main {
		t.Error("main feedback changed between identical runs")
	}
}
