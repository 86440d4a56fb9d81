package scoring

import (
	"fmt"
	"math"
	"sync"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/pkg/audio"
)

// Sub-score weights of the utterance score. Fixed by design.
const (
	weightClarity      = 0.6
	weightSpeed        = 0.1
	weightConsistency  = 0.2
	weightCompleteness = 0.1
)

// phonemeShare is the fraction of the final score contributed by phoneme
// accuracy, added on top of the weighted acoustic sub-scores.
const phonemeShare = 0.2

// defaultPhonemeScore is used when no phoneme observations are available.
const defaultPhonemeScore = 75

// phonemeWeights ranks how much each phoneme category matters to overall
// intelligibility. Categories not listed here weigh defaultPhonemeWeight.
var phonemeWeights = map[string]float64{
	"L/R":        0.15,
	"P/F":        0.10,
	"TH":         0.15,
	"S/Z":        0.10,
	"Vowels":     0.20,
	"Consonants": 0.10,
	"Intonation": 0.10,
	"Rhythm":     0.10,
}

const defaultPhonemeWeight = 0.05

// Engine computes utterance and session scores against a catalog.
//
// Scoring itself is pure; the engine only carries the catalog reference and
// a memoisation cache, so a single Engine is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog

	mu    sync.Mutex
	cache map[cacheKey]UtteranceScore
}

type cacheKey struct {
	sentenceID   int
	duration     float64
	phonemeScore float64
}

// NewEngine returns an engine scoring against the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog: c,
		cache:   make(map[cacheKey]UtteranceScore),
	}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// ScoreUtterance scores one recorded attempt at a sentence from its
// acoustic features and optional phoneme observations. The result is
// deterministic for identical inputs.
func (e *Engine) ScoreUtterance(features audio.FeatureSet, sentence catalog.Sentence, round catalog.Round, observations []PhonemeObservation) (UtteranceScore, error) {
	if features.Duration <= 0 {
		return UtteranceScore{}, fmt.Errorf("%w: sentence %d", ErrNoDuration, sentence.ID)
	}
	if sentence.IdealDuration <= 0 {
		return UtteranceScore{}, fmt.Errorf("%w: sentence %d", ErrNoIdealDuration, sentence.ID)
	}
	if !sentence.Difficulty.IsValid() {
		return UtteranceScore{}, fmt.Errorf("%w: sentence %d has difficulty %q", ErrUnknownDifficulty, sentence.ID, sentence.Difficulty)
	}

	phonemeScore := phonemeAccuracy(observations)

	key := cacheKey{sentenceID: sentence.ID, duration: features.Duration, phonemeScore: phonemeScore}
	e.mu.Lock()
	if cached, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	base := clamp01(float64(features.Clarity))
	speed := speedScore(features.Duration, sentence.IdealDuration)
	consistency := clamp01(100 - features.ZeroCrossingRate*500)
	completeness := clamp01(100 - features.ZeroCrossingRate*300)
	multiplier := sentence.Difficulty.Multiplier()

	weighted := (base*weightClarity+
		speed*weightSpeed+
		consistency*weightConsistency+
		completeness*weightCompleteness)*multiplier +
		phonemeScore*phonemeShare

	final := clamp01(weighted)

	result := UtteranceScore{
		SentenceID:  sentence.ID,
		RoundName:   round.Name,
		RoundWeight: round.Weight,
		Score:       int(math.Round(final)),
		Breakdown: Breakdown{
			Base:         int(math.Round(base)),
			Speed:        int(math.Round(speed)),
			Consistency:  int(math.Round(consistency)),
			Completeness: int(math.Round(completeness)),
			Phoneme:      int(math.Round(phonemeScore)),
		},
		Category:             CategoryForScore(final),
		DifficultyMultiplier: multiplier,
	}

	e.mu.Lock()
	e.cache[key] = result
	e.mu.Unlock()
	return result, nil
}

// ScoreUtteranceByID resolves the sentence by ID before scoring.
func (e *Engine) ScoreUtteranceByID(features audio.FeatureSet, sentenceID int, observations []PhonemeObservation) (UtteranceScore, error) {
	sentence, round, err := e.catalog.SentenceByID(sentenceID)
	if err != nil {
		return UtteranceScore{}, fmt.Errorf("%w: id %d", ErrUnknownSentence, sentenceID)
	}
	return e.ScoreUtterance(features, sentence, round, observations)
}

// Reset drops the memoisation cache.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cache = make(map[cacheKey]UtteranceScore)
	e.mu.Unlock()
}

// speedScore bands the ratio of actual to ideal duration. The bands are a
// deliberate coarse step function so measurement noise near a boundary
// cannot swing the score by more than one band.
func speedScore(actual, ideal float64) float64 {
	ratio := actual / ideal
	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return 100
	case ratio >= 0.6 && ratio <= 1.4:
		return 80
	case ratio >= 0.4 && ratio <= 1.6:
		return 60
	case ratio >= 0.2 && ratio <= 1.8:
		return 40
	default:
		return 20
	}
}

// phonemeAccuracy computes the weighted mean accuracy of the observations,
// or the default score when there are none.
func phonemeAccuracy(observations []PhonemeObservation) float64 {
	if len(observations) == 0 {
		return defaultPhonemeScore
	}

	totalWeight := 0.0
	weightedSum := 0.0
	for _, obs := range observations {
		weight, ok := phonemeWeights[obs.Phoneme]
		if !ok {
			weight = defaultPhonemeWeight
		}
		totalWeight += weight
		weightedSum += float64(obs.Accuracy) * weight
	}
	if totalWeight == 0 {
		return defaultPhonemeScore
	}
	return weightedSum / totalWeight
}

// clamp01 clamps a score into [0,100]. Upstream feature derivation can
// produce small out-of-range floating point artifacts, so every boundary
// clamps defensively.
func clamp01(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
