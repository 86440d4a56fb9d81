package scoring

import (
	"fmt"
	"sort"
)

// Selection thresholds for strengths and improvements.
const (
	strongPhonemeAverage = 85
	strongRoundAverage   = 80
	weakAverage          = 70
	highPriorityAverage  = 60
	maxRecommendations   = 5
)

// IdentifyStrengths selects the strongest phoneme categories and rounds,
// phonemes first, truncated to five. Phoneme stats are expected in the
// worst-first order produced by [AnalyzePhonemeDetails]; rounds are scanned
// in catalog order so the result is deterministic.
func (e *Engine) IdentifyStrengths(phonemes []PhonemeStat, rounds map[string]RoundScore) []Strength {
	var strengths []Strength

	for _, p := range phonemes {
		if p.Average >= strongPhonemeAverage {
			strengths = append(strengths, Strength{
				Type:        "phoneme",
				Name:        p.Phoneme,
				Score:       p.Average,
				Description: fmt.Sprintf("Your %s pronunciation is very accurate.", p.Phoneme),
			})
		}
	}

	for _, round := range e.catalog.Rounds {
		rs, ok := rounds[round.Name]
		if !ok || rs.Average < strongRoundAverage {
			continue
		}
		strengths = append(strengths, Strength{
			Type:        "round",
			Name:        round.Name,
			Score:       rs.Average,
			Description: fmt.Sprintf("Strong performance in the %s round.", round.Name),
		})
	}

	if len(strengths) > maxRecommendations {
		strengths = strengths[:maxRecommendations]
	}
	return strengths
}

// IdentifyImprovements selects the weakest phoneme categories and rounds,
// each with a description and recommended exercises, sorted by priority and
// then ascending score, truncated to five.
func (e *Engine) IdentifyImprovements(phonemes []PhonemeStat, rounds map[string]RoundScore) []Improvement {
	var improvements []Improvement

	for _, p := range phonemes {
		if p.Average >= weakAverage {
			continue
		}
		improvements = append(improvements, Improvement{
			Type:        "phoneme",
			Name:        p.Phoneme,
			Score:       p.Average,
			Priority:    priorityFor(p.Average),
			Description: improvementDescription(p.Phoneme),
			Exercises:   phonemeExercises(p.Phoneme),
		})
	}

	for _, round := range e.catalog.Rounds {
		rs, ok := rounds[round.Name]
		if !ok || rs.Average >= weakAverage {
			continue
		}
		improvements = append(improvements, Improvement{
			Type:        "round",
			Name:        round.Name,
			Score:       rs.Average,
			Priority:    priorityFor(rs.Average),
			Description: fmt.Sprintf("The %s round needs additional practice.", round.Name),
			Exercises:   roundExercises(round.Name),
		})
	}

	sort.SliceStable(improvements, func(i, j int) bool {
		pi, pj := priorityRank(improvements[i].Priority), priorityRank(improvements[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return improvements[i].Score < improvements[j].Score
	})
	if len(improvements) > maxRecommendations {
		improvements = improvements[:maxRecommendations]
	}
	return improvements
}

func priorityFor(average int) Priority {
	if average < highPriorityAverage {
		return PriorityHigh
	}
	return PriorityMedium
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// improvementDescriptions explains what a weak phoneme category means.
var improvementDescriptions = map[string]string{
	"L/R":        "You are having difficulty distinguishing L from R.",
	"P/F":        "Make the difference between P and F more distinct.",
	"TH":         "Watch your tongue position on TH sounds.",
	"Vowels":     "Pay closer attention to vowel length and mouth shape.",
	"Intonation": "Practise the intonation patterns of full sentences.",
}

func improvementDescription(phoneme string) string {
	if d, ok := improvementDescriptions[phoneme]; ok {
		return d
	}
	return fmt.Sprintf("Your %s pronunciation needs improvement.", phoneme)
}

// phonemeExerciseTable maps phoneme categories to concrete drills.
var phonemeExerciseTable = map[string][]string{
	"L/R": {
		"Check the tongue position difference between L and R in a mirror",
		"Repeat 'red lorry, yellow lorry'",
		"Strengthen tongue muscles with tongue twister drills",
	},
	"P/F": {
		"Hold a strip of paper in front of your mouth and practise P",
		"Practise F with your upper teeth on your lower lip",
		"Repeat 'Peter Piper picked a peck...'",
	},
	"TH": {
		"Practise placing the tongue lightly between the teeth",
		"Contrast 'thin' and 'sin'",
		"Compare 'this' and 'dis'",
	},
	"Vowels": {
		"Practise the vowel length difference in 'sheep' and 'ship'",
		"Contrast 'pool' and 'pull'",
		"Drill mouth shapes against a vowel chart",
	},
	"Intonation": {
		"Contrast the intonation of questions and statements",
		"Practise emphasising the key word of a sentence",
		"Shadow native-speaker recordings",
	},
}

// genericExercises is the fallback drill list for unmapped categories.
var genericExercises = []string{
	"Listen to native pronunciation and repeat",
	"Practise slowly and precisely",
	"Record yourself and listen back",
}

func phonemeExercises(phoneme string) []string {
	if ex, ok := phonemeExerciseTable[phoneme]; ok {
		return ex
	}
	return genericExercises
}

// roundExerciseTable maps round names to practice suggestions.
var roundExerciseTable = map[string][]string{
	"Basic Clarity": {
		"Repeat everyday expressions",
		"Speak slowly and precisely",
		"Practise linking between words",
	},
	"Phoneme Discrimination": {
		"Practise tongue twisters",
		"Contrast similar phoneme pairs",
		"Check your mouth shape in a mirror",
	},
	"Intonation & Rhythm": {
		"Practise sentence stress patterns",
		"Clap out the rhythm of each sentence",
		"Sing along to build rhythmic feel",
	},
}

var genericRoundExercises = []string{
	"Basic pronunciation drills",
	"Imitate native-speaker recordings",
}

func roundExercises(round string) []string {
	if ex, ok := roundExerciseTable[round]; ok {
		return ex
	}
	return genericRoundExercises
}
