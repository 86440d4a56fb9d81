package audio

import "math"

const (
	// syllableWindow is the energy-analysis window for speech-rate
	// estimation (~30 ms of audio).
	syllableWindow = 0.03

	// syllableThreshold is the window RMS level above which a window counts
	// as voiced for onset detection.
	syllableThreshold = 0.02
)

// ExtractFeatures computes the full [FeatureSet] for a clip. The extraction
// is deterministic: the same clip always yields the same features. An empty
// clip yields a zero FeatureSet with the clarity floor applied.
func ExtractFeatures(clip Clip) FeatureSet {
	rms, peak := volume(clip.Samples)
	return FeatureSet{
		Duration:           clip.Duration(),
		RMS:                rms,
		Peak:               peak,
		ZeroCrossingRate:   ZeroCrossingRate(clip.Samples),
		SpectralCentroidHz: SpectralCentroid(clip),
		FormantsHz:         FormantPeaks(clip),
		SpeechRate:         SpeechRate(clip),
		Clarity:            ClarityScore(clip),
	}
}

// volume returns the root-mean-square amplitude and the peak sample (sign
// preserved) of the buffer.
func volume(samples []float64) (rms, peak float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
		if math.Abs(s) > math.Abs(peak) {
			peak = s
		}
	}
	return math.Sqrt(sum / float64(len(samples))), peak
}

// ZeroCrossingRate returns the number of sign changes between consecutive
// samples divided by the total sample count. Zero is treated as
// non-negative, matching the crossing definition used by the scoring
// consistency model.
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples))
}

// SpeechRate estimates the syllable rate in syllables per second by counting
// energy onsets: a ~30 ms window whose RMS rises above the voicing threshold
// while the previous window was below it counts as one syllable onset.
//
// A clip shorter than one window, or one that never crosses the threshold,
// yields 0.
func SpeechRate(clip Clip) float64 {
	if clip.SampleRate <= 0 {
		return 0
	}
	window := int(float64(clip.SampleRate) * syllableWindow)
	if window <= 0 || len(clip.Samples) < window {
		return 0
	}

	onsets := 0
	voiced := false
	for i := 0; i+window <= len(clip.Samples); i += window {
		e := windowRMS(clip.Samples[i : i+window])
		if e > syllableThreshold && !voiced {
			onsets++
			voiced = true
		} else if e <= syllableThreshold {
			voiced = false
		}
	}

	duration := clip.Duration()
	if duration <= 0 {
		return 0
	}
	return float64(onsets) / duration
}

// windowRMS returns the RMS energy of one analysis window.
func windowRMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
