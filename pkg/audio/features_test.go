package audio_test

import (
	"math"
	"testing"

	"github.com/clarionvoice/clarion/pkg/audio"
)

// sine generates a mono sine wave clip at the given frequency, amplitude and
// duration.
func sine(freqHz, amplitude, seconds float64, rate int) audio.Clip {
	n := int(seconds * float64(rate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/float64(rate))
	}
	return audio.Clip{Samples: samples, SampleRate: rate}
}

// silence generates a mono clip of zeros.
func silence(seconds float64, rate int) audio.Clip {
	return audio.Clip{Samples: make([]float64, int(seconds*float64(rate))), SampleRate: rate}
}

func TestZeroCrossingRate_Sine(t *testing.T) {
	t.Parallel()
	// A 100 Hz sine at 16 kHz crosses zero 200 times per second, so the
	// per-sample rate should be about 200/16000 = 0.0125.
	clip := sine(100, 0.5, 1.0, 16000)
	zcr := audio.ZeroCrossingRate(clip.Samples)
	if zcr < 0.010 || zcr > 0.015 {
		t.Errorf("zcr = %v, want about 0.0125", zcr)
	}
}

func TestZeroCrossingRate_Empty(t *testing.T) {
	t.Parallel()
	if got := audio.ZeroCrossingRate(nil); got != 0 {
		t.Errorf("zcr of empty buffer = %v, want 0", got)
	}
}

func TestVolumeAndPeak(t *testing.T) {
	t.Parallel()
	clip := sine(440, 0.5, 0.5, 16000)
	fs := audio.ExtractFeatures(clip)

	// RMS of a 0.5-amplitude sine is 0.5/sqrt(2) ≈ 0.3536.
	if math.Abs(fs.RMS-0.3536) > 0.01 {
		t.Errorf("rms = %v, want about 0.3536", fs.RMS)
	}
	if math.Abs(math.Abs(fs.Peak)-0.5) > 0.01 {
		t.Errorf("peak = %v, want magnitude about 0.5", fs.Peak)
	}
}

func TestPeak_SignPreserved(t *testing.T) {
	t.Parallel()
	clip := audio.Clip{Samples: []float64{0.1, -0.9, 0.3}, SampleRate: 16000}
	fs := audio.ExtractFeatures(clip)
	if fs.Peak != -0.9 {
		t.Errorf("peak = %v, want -0.9 (sign preserved)", fs.Peak)
	}
}

func TestSpectralCentroid_TracksFrequency(t *testing.T) {
	t.Parallel()
	low := audio.SpectralCentroid(sine(200, 0.5, 0.5, 16000))
	high := audio.SpectralCentroid(sine(2000, 0.5, 0.5, 16000))
	if low >= high {
		t.Errorf("centroid of 200 Hz tone (%v) should be below 2 kHz tone (%v)", low, high)
	}
	if high < 1000 {
		t.Errorf("centroid of 2 kHz tone = %v, want >= 1000", high)
	}
}

func TestFormantPeaks_SineDominantFrequency(t *testing.T) {
	t.Parallel()
	peaks := audio.FormantPeaks(sine(800, 0.5, 0.5, 16000))
	if len(peaks) == 0 {
		t.Fatal("no spectral peaks found for a pure tone")
	}
	// The strongest peak must sit near the tone frequency; FFT bin width at
	// 16 kHz / 4096 is about 3.9 Hz, windowing spreads it a little.
	if math.Abs(peaks[0]-800) > 20 {
		t.Errorf("dominant peak at %v Hz, want about 800 Hz", peaks[0])
	}
	if len(peaks) > 3 {
		t.Errorf("got %d peaks, want at most 3", len(peaks))
	}
}

func TestSpeechRate_CountsOnsets(t *testing.T) {
	t.Parallel()
	const rate = 16000
	// Build two seconds alternating 200 ms of tone and 300 ms of silence:
	// four distinct energy onsets in 2 seconds -> 2 syllables/sec.
	var samples []float64
	for range 4 {
		samples = append(samples, sine(300, 0.3, 0.2, rate).Samples...)
		samples = append(samples, make([]float64, int(0.3*rate))...)
	}
	clip := audio.Clip{Samples: samples, SampleRate: rate}

	got := audio.SpeechRate(clip)
	if got < 1.5 || got > 2.5 {
		t.Errorf("speech rate = %v, want about 2.0", got)
	}
}

func TestSpeechRate_SilentAndShortBuffers(t *testing.T) {
	t.Parallel()
	if got := audio.SpeechRate(silence(1.0, 16000)); got != 0 {
		t.Errorf("speech rate of silence = %v, want 0", got)
	}
	short := audio.Clip{Samples: make([]float64, 10), SampleRate: 16000}
	if got := audio.SpeechRate(short); got != 0 {
		t.Errorf("speech rate of sub-window buffer = %v, want 0", got)
	}
}

func TestExtractFeatures_Deterministic(t *testing.T) {
	t.Parallel()
	clip := sine(440, 0.4, 1.0, 16000)
	a := audio.ExtractFeatures(clip)
	b := audio.ExtractFeatures(clip)
	if a.RMS != b.RMS || a.ZeroCrossingRate != b.ZeroCrossingRate ||
		a.SpectralCentroidHz != b.SpectralCentroidHz || a.Clarity != b.Clarity {
		t.Errorf("repeated extraction differs: %+v vs %+v", a, b)
	}
}
