package audio

import "math"

// Clarity proxy tuning. The proxy estimates perceptual legibility from
// short-window energy statistics alone so it can run single-pass against a
// live meter as well as a completed recording.
const (
	// clarityWindow is the energy-sampling window (~50 ms).
	clarityWindow = 0.05

	// clarityHistory bounds the number of recent energy samples a
	// [ClarityMeter] retains.
	clarityHistory = 60

	// fullScaleRMS is the window RMS mapped to a clarity of 100. Typical
	// conversational speech peaks around 0.2 RMS on normalised PCM.
	fullScaleRMS = 0.2

	// flatVariance marks a signal as too flat / near-silent: monotone
	// input earns a x0.7 penalty.
	flatVariance = 1e-6

	// noisyVariance marks a signal as erratic: variance above it earns a
	// x0.8 penalty.
	noisyVariance = 0.01

	// lowVolumeMean marks the mean energy as too quiet, earning the
	// strongest penalty (x0.6).
	lowVolumeMean = 0.01
)

// ClarityMeter computes the 0-100 volume-based clarity proxy from a rolling
// window of short-window energy samples. It is the live-feedback variant of
// [ClarityScore]: push one window RMS at a time with Add and read the
// current estimate with Score.
//
// Not safe for concurrent use; a meter belongs to a single recording.
type ClarityMeter struct {
	samples []float64
	pos     int
	full    bool
}

// NewClarityMeter returns a meter with the default rolling-window size.
func NewClarityMeter() *ClarityMeter {
	return &ClarityMeter{samples: make([]float64, clarityHistory)}
}

// Add records one short-window energy sample (window RMS in [0,1]).
func (m *ClarityMeter) Add(energy float64) {
	m.samples[m.pos] = energy
	m.pos++
	if m.pos >= len(m.samples) {
		m.pos = 0
		m.full = true
	}
}

// Score returns the current clarity estimate in [0,100].
func (m *ClarityMeter) Score() int {
	n := m.pos
	if m.full {
		n = len(m.samples)
	}
	return clarityFromEnergies(m.samples[:n])
}

// Reset clears all recorded samples.
func (m *ClarityMeter) Reset() {
	m.pos = 0
	m.full = false
}

// ClarityScore computes the clarity proxy for a completed clip by windowing
// it into ~50 ms energy samples and applying the same statistics the live
// meter uses. An empty or silent clip is floored by the low-volume penalty.
func ClarityScore(clip Clip) int {
	if clip.SampleRate <= 0 || len(clip.Samples) == 0 {
		return 0
	}
	window := int(float64(clip.SampleRate) * clarityWindow)
	if window <= 0 {
		return 0
	}

	var energies []float64
	for i := 0; i < len(clip.Samples); i += window {
		end := min(i+window, len(clip.Samples))
		energies = append(energies, windowRMS(clip.Samples[i:end]))
	}
	return clarityFromEnergies(energies)
}

// clarityFromEnergies maps a set of short-window energy samples to [0,100]:
// the normalised mean, multiplicatively penalised when the variance says the
// signal is too flat (x0.7) or too noisy (x0.8), and when the mean itself is
// below the low-volume floor (x0.6).
func clarityFromEnergies(energies []float64) int {
	if len(energies) == 0 {
		return 0
	}

	var mean float64
	for _, e := range energies {
		mean += e
	}
	mean /= float64(len(energies))

	var variance float64
	for _, e := range energies {
		d := e - mean
		variance += d * d
	}
	variance /= float64(len(energies))

	score := mean / fullScaleRMS * 100

	if variance < flatVariance {
		score *= 0.7
	} else if variance > noisyVariance {
		score *= 0.8
	}
	if mean < lowVolumeMean {
		score *= 0.6
	}

	return int(math.Round(clampScore(score)))
}

// clampScore clamps v to [0,100].
func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
