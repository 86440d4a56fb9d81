package scoring

import "math"

// AggregateRounds groups utterance scores by round. Rounds with no
// attempted utterances are absent from the result, not zero-filled, so a
// partially completed session aggregates only what was attempted.
func AggregateRounds(scores []UtteranceScore) map[string]RoundScore {
	type acc struct {
		total    int
		weighted float64
		count    int
	}
	byRound := make(map[string]*acc)
	for _, s := range scores {
		a := byRound[s.RoundName]
		if a == nil {
			a = &acc{}
			byRound[s.RoundName] = a
		}
		a.total += s.Score
		a.weighted += float64(s.Score) * s.RoundWeight
		a.count++
	}

	out := make(map[string]RoundScore, len(byRound))
	for name, a := range byRound {
		out[name] = RoundScore{
			Average:  int(math.Round(float64(a.total) / float64(a.count))),
			Weighted: math.Round(a.weighted/float64(a.count)*10) / 10,
			Count:    a.count,
		}
	}
	return out
}

// OverallScore combines round aggregates into the session composite. Only
// rounds present in both the catalog and the aggregate contribute; their
// weighted scores are normalised by the combined weight of those rounds, so
// skipping a round does not drag the score down beyond the missing data
// itself. An empty aggregate yields a zero score with very-low confidence.
func (e *Engine) OverallScore(rounds map[string]RoundScore) Overall {
	totalWeighted := 0.0
	totalWeight := 0.0
	for _, round := range e.catalog.Rounds {
		rs, ok := rounds[round.Name]
		if !ok {
			continue
		}
		totalWeighted += rs.Weighted * round.Weight
		totalWeight += round.Weight
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = totalWeighted / totalWeight
	}

	reliability := reliabilityScore(rounds)
	return Overall{
		Score:       int(math.Round(clamp01(overall))),
		Reliability: int(math.Round(reliability)),
		Confidence:  ConfidenceForReliability(reliability),
	}
}

// reliabilityScore measures cross-round consistency: the smaller the
// spread of round averages, the more the composite can be trusted.
func reliabilityScore(rounds map[string]RoundScore) float64 {
	if len(rounds) == 0 {
		return 0
	}

	mean := 0.0
	for _, rs := range rounds {
		mean += float64(rs.Average)
	}
	mean /= float64(len(rounds))

	variance := 0.0
	for _, rs := range rounds {
		diff := float64(rs.Average) - mean
		variance += diff * diff
	}
	variance /= float64(len(rounds))

	return clamp01(100 - 2*math.Sqrt(variance))
}

// ClassifyLevel maps an overall score to a proficiency level, adjusting
// low-reliability sessions downward first. An inconsistent session is
// classified conservatively instead of rewarding a possibly noisy high
// score.
func (e *Engine) ClassifyLevel(overallScore, reliability int) LevelResult {
	adjusted := float64(overallScore)
	switch {
	case reliability >= 80:
		// trusted as-is
	case reliability >= 60:
		adjusted *= 0.95
	default:
		adjusted *= 0.9
	}
	score := int(math.Round(clamp01(adjusted)))

	lvl := e.catalog.LevelForScore(score)
	tier := 1
	for i, l := range e.catalog.Levels {
		if l.Name == lvl.Name {
			tier = i + 1
			break
		}
	}

	return LevelResult{
		Tier:        tier,
		Name:        lvl.Name,
		Score:       score,
		RawScore:    overallScore,
		Reliability: reliability,
		Title:       lvl.Title,
		Description: lvl.Description,
		Feedback:    lvl.Feedback,
		Color:       lvl.Color,
		MinScore:    lvl.MinScore,
		MaxScore:    lvl.MaxScore,
	}
}

// BuildSessionResult runs the full aggregation pipeline over a finished
// session's utterance scores and phoneme analyses.
func (e *Engine) BuildSessionResult(scores []UtteranceScore, analyses []UtteranceAnalysis) SessionResult {
	rounds := AggregateRounds(scores)
	overall := e.OverallScore(rounds)
	phonemes := AnalyzePhonemeDetails(analyses)

	return SessionResult{
		OverallScore: overall.Score,
		Reliability:  overall.Reliability,
		Confidence:   overall.Confidence,
		Level:        e.ClassifyLevel(overall.Score, overall.Reliability),
		RoundScores:  rounds,
		PhonemeStats: phonemes,
		Strengths:    e.IdentifyStrengths(phonemes, rounds),
		Improvements: e.IdentifyImprovements(phonemes, rounds),
	}
}
