package audio

import (
	"math"
	"math/cmplx"
	"sort"
)

// analysisSize is the FFT length used for spectral analysis. The analysed
// slice is taken from the centre of the utterance, which for short spoken
// sentences lands inside voiced speech rather than leading/trailing silence.
const analysisSize = 4096

// powerSpectrum computes the single-sided magnitude spectrum of a
// Hann-windowed slice taken from the centre of samples. The returned slice
// has analysisSize/2 bins; bin i corresponds to frequency
// i*sampleRate/analysisSize.
func powerSpectrum(samples []float64) []float64 {
	frame := make([]complex128, analysisSize)

	start := 0
	if len(samples) > analysisSize {
		start = (len(samples) - analysisSize) / 2
	}
	n := min(len(samples)-start, analysisSize)
	for i := range n {
		// Hann window.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(analysisSize-1)))
		frame[i] = complex(samples[start+i]*w, 0)
	}

	fft(frame)

	mags := make([]float64, analysisSize/2)
	for i := range mags {
		mags[i] = cmplx.Abs(frame[i])
	}
	return mags
}

// fft performs an in-place radix-2 Cooley-Tukey FFT. len(x) must be a power
// of two.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		ang := -2 * math.Pi / float64(length)
		wl := cmplx.Exp(complex(0, ang))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			for j := 0; j < length/2; j++ {
				u := x[i+j]
				v := x[i+j+length/2] * w
				x[i+j] = u + v
				x[i+j+length/2] = u - v
				w *= wl
			}
		}
	}
}

// SpectralCentroid returns the magnitude-weighted mean frequency of the
// clip's power spectrum, in Hz. Returns 0 for an empty or silent clip.
func SpectralCentroid(clip Clip) float64 {
	if len(clip.Samples) == 0 || clip.SampleRate <= 0 {
		return 0
	}
	mags := powerSpectrum(clip.Samples)

	var total, weighted float64
	for i, m := range mags {
		total += m
		weighted += m * float64(i)
	}
	if total == 0 {
		return 0
	}
	binWidth := float64(clip.SampleRate) / float64(analysisSize)
	return (weighted / total) * binWidth
}

// FormantPeaks returns rough formant estimates: the frequencies of the up to
// three largest local maxima in the power spectrum, in descending magnitude
// order. True formant analysis needs LPC; spectral peaks are the deliberate
// coarse substitute used throughout Clarion.
func FormantPeaks(clip Clip) []float64 {
	if len(clip.Samples) == 0 || clip.SampleRate <= 0 {
		return nil
	}
	mags := powerSpectrum(clip.Samples)
	binWidth := float64(clip.SampleRate) / float64(analysisSize)

	type peak struct {
		freq float64
		mag  float64
	}
	var peaks []peak
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] > mags[i-1] && mags[i] > mags[i+1] && mags[i] > 0 {
			peaks = append(peaks, peak{freq: float64(i) * binWidth, mag: mags[i]})
		}
	}

	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].mag > peaks[j].mag })
	if len(peaks) > 3 {
		peaks = peaks[:3]
	}

	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.freq
	}
	return out
}
