// Package audio derives acoustic features from recorded mono PCM buffers.
//
// The package is the measurement half of the Clarion assessment pipeline:
// it turns a raw waveform into a [FeatureSet] that the scoring engine
// consumes. All analysis is pure computation over the sample slice — no
// audio devices, codecs, or I/O beyond the WAV reader in wav.go.
package audio

// FeatureSet holds the acoustic measurements derived from a single recorded
// utterance. A FeatureSet is immutable once computed; the scoring engine
// treats it as a value.
type FeatureSet struct {
	// Duration is the utterance length in seconds. Always > 0 for a
	// non-empty buffer.
	Duration float64 `json:"duration"`

	// RMS is the root-mean-square amplitude over the full buffer, in [0,1]
	// for normalised PCM input.
	RMS float64 `json:"rms"`

	// Peak is the sample with the largest absolute value, sign preserved.
	Peak float64 `json:"peak"`

	// ZeroCrossingRate is the number of sign changes between consecutive
	// samples divided by the sample count. Used downstream as a
	// consistency/completeness proxy.
	ZeroCrossingRate float64 `json:"zero_crossing_rate"`

	// SpectralCentroidHz is the magnitude-weighted mean frequency of the
	// power spectrum.
	SpectralCentroidHz float64 `json:"spectral_centroid_hz"`

	// FormantsHz holds up to three rough formant estimates: the frequencies
	// of the three largest spectral peaks, in descending magnitude order.
	FormantsHz []float64 `json:"formants_hz"`

	// SpeechRate is the estimated syllable rate in syllables per second,
	// derived from energy-onset counting.
	SpeechRate float64 `json:"speech_rate"`

	// Clarity is the 0-100 volume-based clarity proxy computed by
	// [ClarityScore]. It feeds the scoring engine's base sub-score.
	Clarity int `json:"clarity"`
}

// Clip is a decoded mono audio buffer ready for analysis.
type Clip struct {
	// Samples are normalised mono PCM samples in [-1,1].
	Samples []float64

	// SampleRate in Hz.
	SampleRate int
}

// Duration returns the clip length in seconds. Returns 0 when the sample
// rate is not positive.
func (c Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}
