// Package phonetic derives per-category pronunciation accuracy by aligning
// a recognised transcript against the reference text of the spoken
// sentence.
//
// The alignment proceeds in two stages per reference word:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the reference word and every transcript word. A transcript word that
//     shares a code is a phonetic candidate, meaning the speaker produced
//     something that sounds like the target even if the recogniser spelled
//     it differently.
//
//  2. Jaro-Winkler ranking: the candidate with the highest Jaro-Winkler
//     similarity determines the word's accuracy. Without a phonetic
//     candidate the best pure string similarity is used, discounted since
//     the sounds demonstrably diverged.
//
// Word accuracies are then grouped into the sentence's phoneme-tag
// categories (words containing L or R feed the "L/R" category and so on),
// producing the observations the scoring engine weighs.
package phonetic

import (
	"math"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/scoring"
)

const (
	defaultPhoneticThreshold = 0.70

	// nonPhoneticDiscount is applied to the similarity of a word whose
	// phonetic codes did not overlap any transcript word.
	nonPhoneticDiscount = 0.85

	// issueThreshold is the accuracy below which a category observation
	// carries an issue description.
	issueThreshold = 70
)

// Option is a functional option for configuring an [Analyzer].
type Option func(*Analyzer)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched word to count as fully recognised. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.phoneticThreshold = threshold
	}
}

// Analyzer aligns transcripts against reference sentences. All methods are
// safe for concurrent use; the Analyzer is read-only after construction.
type Analyzer struct {
	phoneticThreshold float64
}

// New returns an [Analyzer] configured with the supplied options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{phoneticThreshold: defaultPhoneticThreshold}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze compares the recognised transcript against the sentence text and
// returns one observation per phoneme tag of the sentence. An empty
// transcript yields no observations, leaving the scoring engine on its
// neutral default.
func (a *Analyzer) Analyze(sentence catalog.Sentence, transcript string) scoring.UtteranceAnalysis {
	analysis := scoring.UtteranceAnalysis{SentenceID: sentence.ID}

	refWords := tokenize(sentence.Text)
	hypWords := tokenize(transcript)
	if len(refWords) == 0 || len(hypWords) == 0 {
		return analysis
	}

	accuracies := make([]int, len(refWords))
	for i, ref := range refWords {
		accuracies[i] = a.wordAccuracy(ref, hypWords)
	}

	for _, tag := range sentence.PhonemeTags {
		accuracy := categoryAccuracy(tag, refWords, accuracies)
		obs := scoring.PhonemeObservation{
			Phoneme:  tag,
			Accuracy: accuracy,
		}
		if accuracy < issueThreshold {
			obs.Issue = issueFor(tag)
		}
		analysis.Observations = append(analysis.Observations, obs)
	}
	return analysis
}

// wordAccuracy scores how well one reference word was recognised, in
// [0,100].
func (a *Analyzer) wordAccuracy(ref string, hypWords []string) int {
	refPrimary, refSecondary := matchr.DoubleMetaphone(ref)

	bestPhonetic := 0.0
	bestPlain := 0.0
	for _, hyp := range hypWords {
		score := matchr.JaroWinkler(ref, hyp, false)
		if score > bestPlain {
			bestPlain = score
		}
		if codesOverlap(refPrimary, refSecondary, hyp) && score > bestPhonetic {
			bestPhonetic = score
		}
	}

	similarity := bestPlain * nonPhoneticDiscount
	if bestPhonetic >= a.phoneticThreshold {
		similarity = bestPhonetic
	}
	return int(math.Round(math.Min(1, similarity) * 100))
}

// codesOverlap reports whether hyp shares a Double Metaphone code with the
// reference word's codes.
func codesOverlap(refPrimary, refSecondary, hyp string) bool {
	hypPrimary, hypSecondary := matchr.DoubleMetaphone(hyp)
	for _, rc := range []string{refPrimary, refSecondary} {
		if rc == "" {
			continue
		}
		if rc == hypPrimary || rc == hypSecondary {
			return true
		}
	}
	return false
}

// categoryAccuracy averages the accuracies of the words relevant to a
// phoneme tag. Sentence-level tags average over every word.
func categoryAccuracy(tag string, words []string, accuracies []int) int {
	total, count := 0, 0
	for i, word := range words {
		if !wordCarriesTag(tag, word) {
			continue
		}
		total += accuracies[i]
		count++
	}
	if count == 0 {
		// No word carries the tag's sounds; fall back to the whole
		// sentence.
		for _, acc := range accuracies {
			total += acc
		}
		count = len(accuracies)
	}
	return int(math.Round(float64(total) / float64(count)))
}

// wordCarriesTag reports whether a word exercises the sounds of a phoneme
// category. Prosodic and unmapped tags apply to the whole sentence.
func wordCarriesTag(tag, word string) bool {
	switch tag {
	case "L/R":
		return strings.ContainsAny(word, "lr")
	case "P/F":
		return strings.ContainsAny(word, "pf")
	case "TH":
		return strings.Contains(word, "th")
	case "S/Z":
		return strings.ContainsAny(word, "sz")
	case "Consonants":
		return strings.ContainsAny(word, "bcdfghjklmnpqrstvwxz")
	default:
		// Vowels, Intonation, Rhythm and custom tags span every word.
		return true
	}
}

// issueTemplates describes what a low score in a category typically means.
var issueTemplates = map[string]string{
	"L/R":        "L and R sounds were hard to tell apart",
	"P/F":        "P and F sounds blurred together",
	"TH":         "TH came out closer to S or D",
	"S/Z":        "sibilants were indistinct",
	"Vowels":     "vowel length did not match the target",
	"Consonants": "consonant clusters lost sounds",
	"Intonation": "the pitch contour stayed flat",
	"Rhythm":     "the stress pattern drifted from the target",
}

func issueFor(tag string) string {
	if issue, ok := issueTemplates[tag]; ok {
		return issue
	}
	return "several words in this category were unclear"
}

// tokenize lowercases the text and splits it into words, stripping
// punctuation.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == '\'':
			// Contractions keep their letters: "didn't" -> "didnt".
			return -1
		default:
			return ' '
		}
	}, text)
	return strings.Fields(cleaned)
}
