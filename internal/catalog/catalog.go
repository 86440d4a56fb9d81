// Package catalog holds the assessment sentence bank: the rounds, the
// sentences with their target phonemes, and the level criteria used to map
// an overall score to a named proficiency level.
//
// A builtin English catalog ships with the binary; deployments can replace
// it with a YAML file via [LoadFile].
package catalog

import (
	"errors"
	"fmt"
)

// Difficulty classifies how demanding a sentence is to articulate.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Multiplier returns the score multiplier applied to utterances of this
// difficulty. Harder sentences earn a bonus.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.1
	case DifficultyHard:
		return 1.2
	default:
		return 1.0
	}
}

// Color returns the display color associated with the difficulty.
func (d Difficulty) Color() string {
	switch d {
	case DifficultyEasy:
		return "#4CAF50"
	case DifficultyMedium:
		return "#FF9800"
	case DifficultyHard:
		return "#F44336"
	default:
		return "#757575"
	}
}

// Sentence is a single assessment prompt.
type Sentence struct {
	// ID is unique across the whole catalog, not just within a round.
	ID int `yaml:"id" json:"id"`

	// Text is the prompt the speaker reads aloud.
	Text string `yaml:"text" json:"text"`

	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`

	// TargetPhonemes lists the IPA phonemes the sentence exercises, in
	// order of appearance.
	TargetPhonemes []string `yaml:"target_phonemes" json:"targetPhonemes"`

	// Focus is a short human-readable note on what the sentence trains.
	Focus string `yaml:"focus" json:"focus"`

	// ReferenceDuration is how long a native speaker takes, in seconds.
	ReferenceDuration float64 `yaml:"reference_duration" json:"referenceDuration"`

	// IdealDuration is the recommended target for a learner, in seconds.
	IdealDuration float64 `yaml:"ideal_duration" json:"idealDuration"`

	// Instructions carries extra per-sentence guidance. Usually empty.
	Instructions string `yaml:"instructions,omitempty" json:"instructions,omitempty"`

	// PhonemeTags names the phoneme categories the sentence belongs to,
	// e.g. "L/R" or "Vowels". Categories drive per-phoneme weighting.
	PhonemeTags []string `yaml:"phoneme_tags" json:"phonemeTags"`
}

// Round groups sentences that test one skill area and carries the weight of
// that area in the overall score.
type Round struct {
	ID          int        `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Weight      float64    `yaml:"weight" json:"weight"`
	Description string     `yaml:"description" json:"description"`
	Sentences   []Sentence `yaml:"sentences" json:"sentences"`
}

// Level is one band of the proficiency scale.
type Level struct {
	// Name is the short level code, "S1" through "S10".
	Name string `yaml:"name" json:"name"`

	MinScore int `yaml:"min_score" json:"minScore"`
	MaxScore int `yaml:"max_score" json:"maxScore"`

	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Feedback    string `yaml:"feedback" json:"feedback"`
	Color       string `yaml:"color" json:"color"`
}

// Catalog is a complete sentence bank with its level criteria.
type Catalog struct {
	Rounds []Round `yaml:"rounds" json:"rounds"`
	Levels []Level `yaml:"levels" json:"levels"`
}

// TotalSentences returns the number of sentences across all rounds.
func (c *Catalog) TotalSentences() int {
	n := 0
	for _, r := range c.Rounds {
		n += len(r.Sentences)
	}
	return n
}

// AllSentences returns every sentence in catalog order, flattened across
// rounds. The returned slice is freshly allocated.
func (c *Catalog) AllSentences() []Sentence {
	out := make([]Sentence, 0, c.TotalSentences())
	for _, r := range c.Rounds {
		out = append(out, r.Sentences...)
	}
	return out
}

// Sentence returns the sentence at the given zero-based catalog index and
// the round it belongs to.
func (c *Catalog) Sentence(index int) (Sentence, Round, error) {
	if index < 0 {
		return Sentence{}, Round{}, fmt.Errorf("catalog: sentence index %d out of range", index)
	}
	for _, r := range c.Rounds {
		if index < len(r.Sentences) {
			return r.Sentences[index], r, nil
		}
		index -= len(r.Sentences)
	}
	return Sentence{}, Round{}, fmt.Errorf("catalog: sentence index out of range (have %d sentences)", c.TotalSentences())
}

// SentenceByID looks a sentence up by its catalog-wide ID.
func (c *Catalog) SentenceByID(id int) (Sentence, Round, error) {
	for _, r := range c.Rounds {
		for _, s := range r.Sentences {
			if s.ID == id {
				return s, r, nil
			}
		}
	}
	return Sentence{}, Round{}, fmt.Errorf("catalog: no sentence with id %d", id)
}

// LevelForScore maps an overall score to its proficiency level. Scores
// outside every band fall back to the first level.
func (c *Catalog) LevelForScore(score int) Level {
	for _, lvl := range c.Levels {
		if score >= lvl.MinScore && score <= lvl.MaxScore {
			return lvl
		}
	}
	if len(c.Levels) > 0 {
		return c.Levels[0]
	}
	return Level{}
}

// weightTolerance bounds float drift when checking that round weights sum
// to one.
const weightTolerance = 1e-6

// Validate checks catalog consistency: every round and sentence well formed,
// round weights summing to 1, unique sentence IDs, and level bands covering
// 0 through 100 without gaps or overlaps.
func (c *Catalog) Validate() error {
	if len(c.Rounds) == 0 {
		return errors.New("catalog: no rounds defined")
	}

	weightSum := 0.0
	seen := make(map[int]bool)
	for _, r := range c.Rounds {
		if r.Name == "" {
			return fmt.Errorf("catalog: round %d has no name", r.ID)
		}
		if r.Weight <= 0 {
			return fmt.Errorf("catalog: round %q has non-positive weight %v", r.Name, r.Weight)
		}
		if len(r.Sentences) == 0 {
			return fmt.Errorf("catalog: round %q has no sentences", r.Name)
		}
		weightSum += r.Weight

		for _, s := range r.Sentences {
			if s.Text == "" {
				return fmt.Errorf("catalog: sentence %d in round %q has no text", s.ID, r.Name)
			}
			if !s.Difficulty.IsValid() {
				return fmt.Errorf("catalog: sentence %d has unknown difficulty %q", s.ID, s.Difficulty)
			}
			if s.ReferenceDuration <= 0 {
				return fmt.Errorf("catalog: sentence %d has non-positive reference duration", s.ID)
			}
			if s.IdealDuration <= 0 {
				return fmt.Errorf("catalog: sentence %d has non-positive ideal duration", s.ID)
			}
			if seen[s.ID] {
				return fmt.Errorf("catalog: duplicate sentence id %d", s.ID)
			}
			seen[s.ID] = true
		}
	}
	if diff := weightSum - 1.0; diff > weightTolerance || diff < -weightTolerance {
		return fmt.Errorf("catalog: round weights sum to %v, want 1.0", weightSum)
	}

	if len(c.Levels) == 0 {
		return errors.New("catalog: no levels defined")
	}
	next := 0
	for i, lvl := range c.Levels {
		if lvl.Name == "" {
			return fmt.Errorf("catalog: level %d has no name", i)
		}
		if lvl.MinScore != next {
			return fmt.Errorf("catalog: level %q starts at %d, want %d", lvl.Name, lvl.MinScore, next)
		}
		if lvl.MaxScore < lvl.MinScore {
			return fmt.Errorf("catalog: level %q has max %d below min %d", lvl.Name, lvl.MaxScore, lvl.MinScore)
		}
		next = lvl.MaxScore + 1
	}
	if next != 101 {
		return fmt.Errorf("catalog: level bands end at %d, want 100", next-1)
	}
	return nil
}
