package audio

import (
	"fmt"
	"math"
)

// Recording quality thresholds. A recording outside these bounds is not
// worth scoring and the caller should ask the speaker to retry.
const (
	minRecordingSeconds = 0.5
	maxRecordingSeconds = 10

	// minVolumeDB is the quietest acceptable average level in dBFS.
	minVolumeDB = -40

	// maxPeakDB is the loudest acceptable peak in dBFS before clipping is
	// assumed.
	maxPeakDB = -5

	// maxSilenceRatio is the largest acceptable fraction of 100 ms windows
	// classified as silent.
	maxSilenceRatio = 0.5

	// silenceWindow is the silence-detection window (~100 ms).
	silenceWindow = 0.1

	// silenceThreshold is the window RMS below which a window is silent.
	silenceThreshold = 0.01
)

// Rejection reason codes, one per quality check. Stable identifiers fit for
// metric labels, unlike the human-readable issue texts.
const (
	ReasonTooShort  = "too_short"
	ReasonTooLong   = "too_long"
	ReasonTooQuiet  = "too_quiet"
	ReasonClipping  = "clipping"
	ReasonTooSilent = "too_silent"
)

// QualityReport is the result of a recording quality check.
type QualityReport struct {
	// Valid is true when the recording passed every check.
	Valid bool `json:"valid"`

	// Issues describes each failed check in the order tested. Empty when
	// Valid.
	Issues []string `json:"issues,omitempty"`

	// Reasons holds the machine-readable code of each failed check,
	// parallel to Issues.
	Reasons []string `json:"reasons,omitempty"`

	// AvgVolumeDB is the overall RMS level in dBFS.
	AvgVolumeDB float64 `json:"avg_volume_db"`

	// PeakDB is the peak level in dBFS.
	PeakDB float64 `json:"peak_db"`

	// SilenceRatio is the fraction of windows classified as silent, in
	// [0,1].
	SilenceRatio float64 `json:"silence_ratio"`
}

// CheckQuality gates a recording before scoring: duration bounds, average
// volume, clipping, and silence ratio. It never rejects based on content —
// only on whether there is a usable signal to analyse.
func CheckQuality(clip Clip) QualityReport {
	var report QualityReport

	duration := clip.Duration()
	if duration < minRecordingSeconds {
		report.reject(ReasonTooShort,
			fmt.Sprintf("recording too short: %.2fs (minimum %.1fs)", duration, float64(minRecordingSeconds)))
	}
	if duration > maxRecordingSeconds {
		report.reject(ReasonTooLong,
			fmt.Sprintf("recording too long: %.2fs (maximum %ds)", duration, maxRecordingSeconds))
	}

	rms, peak := volume(clip.Samples)
	report.AvgVolumeDB = toDB(rms)
	report.PeakDB = toDB(math.Abs(peak))

	if report.AvgVolumeDB < minVolumeDB {
		report.reject(ReasonTooQuiet,
			fmt.Sprintf("volume too low: %.1f dBFS (minimum %d dBFS)", report.AvgVolumeDB, minVolumeDB))
	}
	if report.PeakDB > maxPeakDB {
		report.reject(ReasonClipping,
			fmt.Sprintf("volume too high: %.1f dBFS peak (clipping above %d dBFS)", report.PeakDB, maxPeakDB))
	}

	report.SilenceRatio = silenceRatio(clip)
	if report.SilenceRatio > maxSilenceRatio {
		report.reject(ReasonTooSilent,
			fmt.Sprintf("too much silence: %.0f%% of the recording", report.SilenceRatio*100))
	}

	report.Valid = len(report.Issues) == 0
	return report
}

// reject records one failed check.
func (r *QualityReport) reject(reason, issue string) {
	r.Reasons = append(r.Reasons, reason)
	r.Issues = append(r.Issues, issue)
}

// silenceRatio returns the fraction of ~100 ms windows whose RMS falls below
// the silence threshold.
func silenceRatio(clip Clip) float64 {
	if clip.SampleRate <= 0 || len(clip.Samples) == 0 {
		return 1
	}
	window := int(float64(clip.SampleRate) * silenceWindow)
	if window <= 0 {
		return 1
	}

	silent, total := 0, 0
	for i := 0; i < len(clip.Samples); i += window {
		end := min(i+window, len(clip.Samples))
		if windowRMS(clip.Samples[i:end]) < silenceThreshold {
			silent++
		}
		total++
	}
	if total == 0 {
		return 1
	}
	return float64(silent) / float64(total)
}

// toDB converts a linear amplitude to dBFS. Zero amplitude maps to a large
// negative floor rather than -Inf so reports stay JSON-encodable.
func toDB(amplitude float64) float64 {
	if amplitude <= 0 {
		return -120
	}
	return 20 * math.Log10(amplitude)
}
