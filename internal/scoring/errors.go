package scoring

import "errors"

// Scoring rejects malformed input outright rather than substituting zeros,
// since a silent zero would corrupt every aggregate downstream.
var (
	// ErrNoDuration is returned when the feature set has a non-positive
	// duration.
	ErrNoDuration = errors.New("scoring: feature set has no duration")

	// ErrNoIdealDuration is returned when the sentence has no ideal
	// duration to compare against.
	ErrNoIdealDuration = errors.New("scoring: sentence has no ideal duration")

	// ErrUnknownDifficulty is returned when the sentence difficulty is
	// not one of the known values.
	ErrUnknownDifficulty = errors.New("scoring: unknown sentence difficulty")

	// ErrUnknownSentence is returned when a sentence cannot be resolved
	// by its ID.
	ErrUnknownSentence = errors.New("scoring: unknown sentence")
)
