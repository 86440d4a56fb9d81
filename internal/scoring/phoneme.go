package scoring

import (
	"math"
	"sort"
)

// weakAccuracyThreshold marks an observation as an issue worth reporting.
const weakAccuracyThreshold = 70

// maxMainIssues bounds how many recurring issues a stat reports.
const maxMainIssues = 3

// maxWeakSentences bounds how many weak sentence IDs a stat reports.
const maxWeakSentences = 3

// phonemeCategories labels each phoneme tag with its skill group.
var phonemeCategories = map[string]string{
	"L/R":        "consonant contrast",
	"P/F":        "consonant contrast",
	"TH":         "dental consonant",
	"S/Z":        "sibilant",
	"Vowels":     "vowel",
	"Consonants": "consonant",
	"Intonation": "intonation",
	"Rhythm":     "rhythm",
}

// PhonemeCategory returns the skill group of a phoneme tag.
func PhonemeCategory(phoneme string) string {
	if cat, ok := phonemeCategories[phoneme]; ok {
		return cat
	}
	return "other"
}

// AnalyzePhonemeDetails collects per-phoneme statistics across all
// utterances of a session: average accuracy, occurrence count, recurring
// issues, and the sentences where the category fell short.
//
// The result is sorted ascending by average, worst first. Downstream
// strength and improvement selection relies on that order. Ties keep
// first-seen order.
func AnalyzePhonemeDetails(analyses []UtteranceAnalysis) []PhonemeStat {
	type acc struct {
		total       int
		count       int
		issues      []string
		sentenceIDs []int
	}
	stats := make(map[string]*acc)
	var order []string

	for _, analysis := range analyses {
		for _, obs := range analysis.Observations {
			a := stats[obs.Phoneme]
			if a == nil {
				a = &acc{}
				stats[obs.Phoneme] = a
				order = append(order, obs.Phoneme)
			}
			a.total += obs.Accuracy
			a.count++
			if obs.Accuracy < weakAccuracyThreshold {
				a.issues = append(a.issues, obs.Issue)
				a.sentenceIDs = append(a.sentenceIDs, analysis.SentenceID)
			}
		}
	}

	results := make([]PhonemeStat, 0, len(order))
	for _, phoneme := range order {
		a := stats[phoneme]
		average := int(math.Round(float64(a.total) / float64(a.count)))

		weak := a.sentenceIDs
		if len(weak) > maxWeakSentences {
			weak = weak[:maxWeakSentences]
		}

		results = append(results, PhonemeStat{
			Phoneme:       phoneme,
			Average:       average,
			Count:         a.count,
			IssueCount:    len(a.issues),
			MainIssues:    mostCommonIssues(a.issues),
			WeakSentences: weak,
			Category:      PhonemeCategory(phoneme),
			Evaluation:    EvaluationForAverage(average),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Average < results[j].Average
	})
	return results
}

// mostCommonIssues returns the up-to-three most frequent issue strings,
// most common first, ties broken by first appearance.
func mostCommonIssues(issues []string) []IssueCount {
	if len(issues) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, issue := range issues {
		if counts[issue] == 0 {
			order = append(order, issue)
		}
		counts[issue]++
	}

	out := make([]IssueCount, 0, len(order))
	for _, issue := range order {
		out = append(out, IssueCount{Issue: issue, Count: counts[issue]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > maxMainIssues {
		out = out[:maxMainIssues]
	}
	return out
}
