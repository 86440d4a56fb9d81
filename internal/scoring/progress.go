package scoring

import "math"

// TrackProgress compares a finished session against the previous one and
// returns the per-metric deltas, or nil when there is no previous session.
// Only rounds and phoneme categories present in both sessions are compared.
func TrackProgress(current, previous *SessionResult) *Progress {
	if current == nil || previous == nil {
		return nil
	}

	progress := &Progress{
		Overall:  current.OverallScore - previous.OverallScore,
		Rounds:   make(map[string]Delta),
		Phonemes: make(map[string]Delta),
	}

	for name, cur := range current.RoundScores {
		prev, ok := previous.RoundScores[name]
		if !ok {
			continue
		}
		progress.Rounds[name] = delta(cur.Average, prev.Average)
	}

	prevPhonemes := make(map[string]PhonemeStat, len(previous.PhonemeStats))
	for _, p := range previous.PhonemeStats {
		prevPhonemes[p.Phoneme] = p
	}
	for _, cur := range current.PhonemeStats {
		prev, ok := prevPhonemes[cur.Phoneme]
		if !ok {
			continue
		}
		progress.Phonemes[cur.Phoneme] = delta(cur.Average, prev.Average)
	}

	return progress
}

// delta computes the absolute and relative change between two averages. A
// zero previous value yields a zero percentage to keep the result finite.
func delta(current, previous int) Delta {
	d := Delta{Change: current - previous}
	if previous != 0 {
		d.Percent = math.Round((float64(current)/float64(previous)-1)*1000) / 10
	}
	return d
}
