package scoring_test

import (
	"testing"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/scoring"
)

func TestAggregateRounds_Empty(t *testing.T) {
	t.Parallel()
	got := scoring.AggregateRounds(nil)
	if len(got) != 0 {
		t.Errorf("AggregateRounds(nil) = %v, want empty map", got)
	}
}

func TestAggregateRounds_GroupsByRound(t *testing.T) {
	t.Parallel()
	scores := []scoring.UtteranceScore{
		{SentenceID: 1, RoundName: "Basic Clarity", RoundWeight: 0.4, Score: 80},
		{SentenceID: 2, RoundName: "Basic Clarity", RoundWeight: 0.4, Score: 91},
		{SentenceID: 8, RoundName: "Phoneme Discrimination", RoundWeight: 0.3, Score: 60},
	}

	got := scoring.AggregateRounds(scores)
	if len(got) != 2 {
		t.Fatalf("rounds = %d, want 2", len(got))
	}

	clarity := got["Basic Clarity"]
	if clarity.Average != 86 {
		t.Errorf("clarity average = %d, want 86", clarity.Average)
	}
	// mean(80*0.4, 91*0.4) = mean(32, 36.4) = 34.2
	if clarity.Weighted != 34.2 {
		t.Errorf("clarity weighted = %v, want 34.2", clarity.Weighted)
	}
	if clarity.Count != 2 {
		t.Errorf("clarity count = %d, want 2", clarity.Count)
	}

	phoneme := got["Phoneme Discrimination"]
	if phoneme.Average != 60 || phoneme.Weighted != 18.0 || phoneme.Count != 1 {
		t.Errorf("phoneme round = %+v", phoneme)
	}

	if _, ok := got["Intonation & Rhythm"]; ok {
		t.Error("unattempted round should be absent, not zero-filled")
	}
}

func TestOverallScore_Empty(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())
	got := engine.OverallScore(map[string]scoring.RoundScore{})
	want := scoring.Overall{Score: 0, Reliability: 0, Confidence: scoring.ConfidenceVeryLow}
	if got != want {
		t.Errorf("OverallScore({}) = %+v, want %+v", got, want)
	}
}

func TestOverallScore_PartialSession(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())

	// Only 2 of 3 rounds attempted: normalise by their combined weight
	// (0.7), not by the full catalog weight.
	rounds := map[string]scoring.RoundScore{
		"Basic Clarity":       {Average: 90, Weighted: 36.0, Count: 7},
		"Intonation & Rhythm": {Average: 80, Weighted: 24.0, Count: 6},
	}

	got := engine.OverallScore(rounds)

	// (36*0.4 + 24*0.3) / 0.7 = 30.857 -> 31
	if got.Score != 31 {
		t.Errorf("score = %d, want 31", got.Score)
	}
	// stddev of {90, 80} is 5 -> reliability 90 -> very-high.
	if got.Reliability != 90 {
		t.Errorf("reliability = %d, want 90", got.Reliability)
	}
	if got.Confidence != scoring.ConfidenceVeryHigh {
		t.Errorf("confidence = %s, want very-high", got.Confidence)
	}
}

func TestOverallScore_SpreadLowersReliability(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())

	rounds := map[string]scoring.RoundScore{
		"Basic Clarity":          {Average: 95, Weighted: 38.0, Count: 7},
		"Phoneme Discrimination": {Average: 35, Weighted: 10.5, Count: 7},
	}

	got := engine.OverallScore(rounds)
	// stddev of {95, 35} is 30 -> reliability 40 -> very-low.
	if got.Reliability != 40 {
		t.Errorf("reliability = %d, want 40", got.Reliability)
	}
	if got.Confidence != scoring.ConfidenceVeryLow {
		t.Errorf("confidence = %s, want very-low", got.Confidence)
	}
}

func TestClassifyLevel_ReliabilityAdjustment(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())

	cases := []struct {
		overall, reliability int
		wantScore, wantTier  int
	}{
		// High reliability passes through unchanged.
		{80, 85, 80, 6},
		// Medium reliability: 80*0.95 = 76, still tier 6.
		{80, 70, 76, 6},
		// Low reliability: 80*0.9 = 72, classified conservatively.
		{80, 55, 72, 6},
		// Adjustment can cross a tier boundary: 90*0.9 = 81 -> tier 7.
		{90, 40, 81, 7},
		{100, 95, 100, 10},
		{0, 0, 0, 1},
	}
	for _, tc := range cases {
		got := engine.ClassifyLevel(tc.overall, tc.reliability)
		if got.Score != tc.wantScore {
			t.Errorf("ClassifyLevel(%d,%d).Score = %d, want %d", tc.overall, tc.reliability, got.Score, tc.wantScore)
		}
		if got.Tier != tc.wantTier {
			t.Errorf("ClassifyLevel(%d,%d).Tier = %d, want %d", tc.overall, tc.reliability, got.Tier, tc.wantTier)
		}
		if got.RawScore != tc.overall {
			t.Errorf("ClassifyLevel(%d,%d).RawScore = %d", tc.overall, tc.reliability, got.RawScore)
		}
	}
}

func TestClassifyLevel_CarriesLevelMetadata(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())
	got := engine.ClassifyLevel(59, 90)
	if got.Tier != 4 || got.Name != "S4" {
		t.Errorf("tier/name = %d/%s, want 4/S4", got.Tier, got.Name)
	}
	if got.Title == "" || got.Description == "" || got.Feedback == "" || got.Color == "" {
		t.Errorf("level metadata incomplete: %+v", got)
	}
	if got.MinScore != 51 || got.MaxScore != 60 {
		t.Errorf("band = [%d,%d], want [51,60]", got.MinScore, got.MaxScore)
	}
}

func TestBuildSessionResult(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(catalog.Builtin())

	scores := []scoring.UtteranceScore{
		{SentenceID: 1, RoundName: "Basic Clarity", RoundWeight: 0.4, Score: 85},
		{SentenceID: 2, RoundName: "Basic Clarity", RoundWeight: 0.4, Score: 79},
		{SentenceID: 8, RoundName: "Phoneme Discrimination", RoundWeight: 0.3, Score: 74},
	}
	analyses := []scoring.UtteranceAnalysis{
		{SentenceID: 8, Observations: []scoring.PhonemeObservation{
			{Phoneme: "L/R", Accuracy: 55, Issue: "tongue position"},
			{Phoneme: "Vowels", Accuracy: 88},
		}},
	}

	got := engine.BuildSessionResult(scores, analyses)

	if len(got.RoundScores) != 2 {
		t.Errorf("rounds = %d, want 2", len(got.RoundScores))
	}
	if got.OverallScore <= 0 || got.OverallScore > 100 {
		t.Errorf("overall = %d, out of range", got.OverallScore)
	}
	if got.Level.Tier < 1 || got.Level.Tier > 10 {
		t.Errorf("tier = %d", got.Level.Tier)
	}
	if len(got.PhonemeStats) != 2 {
		t.Fatalf("phoneme stats = %d, want 2", len(got.PhonemeStats))
	}
	if got.PhonemeStats[0].Phoneme != "L/R" {
		t.Errorf("worst phoneme = %s, want L/R first", got.PhonemeStats[0].Phoneme)
	}

	// L/R at 55 must show up as a high-priority improvement.
	foundLR := false
	for _, imp := range got.Improvements {
		if imp.Type == "phoneme" && imp.Name == "L/R" {
			foundLR = true
			if imp.Priority != scoring.PriorityHigh {
				t.Errorf("L/R priority = %s, want high", imp.Priority)
			}
		}
	}
	if !foundLR {
		t.Error("expected L/R improvement entry")
	}
}
