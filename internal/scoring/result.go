// Package scoring turns per-utterance acoustic measurements into weighted
// pronunciation scores, aggregates them across assessment rounds, and
// derives a reliability-adjusted proficiency level with ranked strengths
// and improvement priorities.
//
// All scoring is pure data transformation. The engine holds no session
// state; callers collect [UtteranceScore] values and hand the full list to
// the aggregation functions when a session completes.
package scoring

// Category buckets a single utterance score.
type Category string

const (
	CategoryExcellent Category = "excellent"
	CategoryGood      Category = "good"
	CategoryFair      Category = "fair"
	CategoryPoor      Category = "poor"
)

// CategoryForScore maps a final utterance score to its bucket.
func CategoryForScore(score float64) Category {
	switch {
	case score >= 85:
		return CategoryExcellent
	case score >= 70:
		return CategoryGood
	case score >= 50:
		return CategoryFair
	default:
		return CategoryPoor
	}
}

// Confidence expresses how much the overall score can be trusted, derived
// from cross-round reliability.
type Confidence string

const (
	ConfidenceVeryHigh Confidence = "very-high"
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
	ConfidenceVeryLow  Confidence = "very-low"
)

// ConfidenceForReliability maps a reliability score to its confidence
// bucket.
func ConfidenceForReliability(reliability float64) Confidence {
	switch {
	case reliability >= 90:
		return ConfidenceVeryHigh
	case reliability >= 80:
		return ConfidenceHigh
	case reliability >= 70:
		return ConfidenceMedium
	case reliability >= 60:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// Breakdown carries the sub-scores that went into an utterance score, each
// already clamped to [0,100].
type Breakdown struct {
	Base         int `json:"base"`
	Speed        int `json:"speed"`
	Consistency  int `json:"consistency"`
	Completeness int `json:"completeness"`
	Phoneme      int `json:"phoneme"`
}

// UtteranceScore is the scored result of one recorded attempt at a
// sentence. Immutable once returned.
type UtteranceScore struct {
	SentenceID  int     `json:"sentenceId"`
	RoundName   string  `json:"roundName"`
	RoundWeight float64 `json:"roundWeight"`

	// Score is the final utterance score in [0,100].
	Score int `json:"score"`

	Breakdown Breakdown `json:"breakdown"`
	Category  Category  `json:"category"`

	// DifficultyMultiplier records the bonus factor that was applied.
	DifficultyMultiplier float64 `json:"difficultyMultiplier"`
}

// RoundScore aggregates the utterance scores of one round.
type RoundScore struct {
	// Average is the arithmetic mean of utterance scores, rounded.
	Average int `json:"average"`

	// Weighted is the mean of score multiplied by the round weight,
	// rounded to one decimal.
	Weighted float64 `json:"weighted"`

	// Count is the number of utterances scored in the round.
	Count int `json:"count"`
}

// Overall is the session-wide composite score.
type Overall struct {
	Score       int        `json:"score"`
	Reliability int        `json:"reliability"`
	Confidence  Confidence `json:"confidence"`
}

// LevelResult is the proficiency classification of a completed session.
type LevelResult struct {
	// Tier is the one-based position on the proficiency scale.
	Tier int `json:"tier"`

	// Name is the level code, e.g. "S6".
	Name string `json:"name"`

	// Score is the reliability-adjusted score the classification used.
	Score int `json:"score"`

	// RawScore is the overall score before reliability adjustment.
	RawScore int `json:"rawScore"`

	Reliability int    `json:"reliability"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Feedback    string `json:"feedback"`
	Color       string `json:"color"`
	MinScore    int    `json:"minScore"`
	MaxScore    int    `json:"maxScore"`
}

// PhonemeObservation is one measured accuracy value for a phoneme category
// within a single utterance.
type PhonemeObservation struct {
	// Phoneme names the category, e.g. "L/R" or "Vowels".
	Phoneme string `json:"phoneme"`

	// Accuracy is the measured accuracy in [0,100].
	Accuracy int `json:"accuracy"`

	// Issue describes the detected problem when accuracy is low. Empty
	// when nothing stood out.
	Issue string `json:"issue,omitempty"`
}

// UtteranceAnalysis pairs a sentence with its phoneme observations.
type UtteranceAnalysis struct {
	SentenceID   int                  `json:"sentenceId"`
	Observations []PhonemeObservation `json:"observations"`
}

// IssueCount is one recurring issue with its occurrence count.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// Evaluation buckets a phoneme category's average accuracy.
type Evaluation string

const (
	EvalExcellent        Evaluation = "excellent"
	EvalGood             Evaluation = "good"
	EvalFair             Evaluation = "fair"
	EvalNeedsImprovement Evaluation = "needs-improvement"
	EvalPoor             Evaluation = "poor"
)

// EvaluationForAverage maps a phoneme average to its evaluation bucket.
func EvaluationForAverage(average int) Evaluation {
	switch {
	case average >= 90:
		return EvalExcellent
	case average >= 80:
		return EvalGood
	case average >= 70:
		return EvalFair
	case average >= 60:
		return EvalNeedsImprovement
	default:
		return EvalPoor
	}
}

// PhonemeStat summarises one phoneme category across a whole session.
type PhonemeStat struct {
	Phoneme string `json:"phoneme"`
	Average int    `json:"average"`
	Count   int    `json:"count"`

	// IssueCount is the number of low-accuracy occurrences.
	IssueCount int `json:"issueCount"`

	// MainIssues lists the up-to-three most frequent issues, most common
	// first.
	MainIssues []IssueCount `json:"mainIssues,omitempty"`

	// WeakSentences lists up to three sentence IDs where the category
	// scored below threshold.
	WeakSentences []int `json:"weakSentences,omitempty"`

	Category   string     `json:"category"`
	Evaluation Evaluation `json:"evaluation"`
}

// Priority orders improvement recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Strength is one identified strong area.
type Strength struct {
	// Type is "phoneme" or "round".
	Type        string `json:"type"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Improvement is one identified weak area with recommended exercises.
type Improvement struct {
	// Type is "phoneme" or "round".
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

// SessionResult is the complete outcome of a finished assessment session.
// Created exactly once per session and immutable afterwards.
type SessionResult struct {
	OverallScore int        `json:"overallScore"`
	Reliability  int        `json:"reliability"`
	Confidence   Confidence `json:"confidence"`

	Level LevelResult `json:"level"`

	// RoundScores maps round name to its aggregate. Rounds with no
	// attempted utterances are absent.
	RoundScores map[string]RoundScore `json:"roundScores"`

	// PhonemeStats is sorted ascending by average, worst first.
	PhonemeStats []PhonemeStat `json:"phonemeStats"`

	Strengths    []Strength    `json:"strengths"`
	Improvements []Improvement `json:"improvements"`
}

// Delta is the change in one metric between two sessions.
type Delta struct {
	// Change is the absolute point difference, current minus previous.
	Change int `json:"change"`

	// Percent is the relative change in percent of the previous value.
	Percent float64 `json:"percent"`
}

// Progress compares a session against the previous one.
type Progress struct {
	// Overall is the overall-score point difference.
	Overall int `json:"overall"`

	// Rounds holds per-round average deltas for rounds present in both
	// sessions.
	Rounds map[string]Delta `json:"rounds"`

	// Phonemes holds per-category average deltas for categories present
	// in both sessions.
	Phonemes map[string]Delta `json:"phonemes"`
}
