package audio

// DecodePCM16 converts little-endian int16 PCM bytes into normalised float64
// samples in [-1,1]. A trailing odd byte is ignored.
func DecodePCM16(data []byte) []float64 {
	n := len(data) / 2
	out := make([]float64, n)
	for i := range n {
		s := int16(data[i*2]) | int16(data[i*2+1])<<8
		out[i] = float64(s) / 32768.0
	}
	return out
}

// DownmixStereo averages interleaved L/R sample pairs into a mono buffer.
// A trailing unpaired sample is dropped.
func DownmixStereo(samples []float64) []float64 {
	frames := len(samples) / 2
	out := make([]float64, frames)
	for i := range frames {
		out[i] = (samples[i*2] + samples[i*2+1]) / 2
	}
	return out
}

// Resample converts mono samples from srcRate to dstRate using linear
// interpolation. If the rates match, or either rate is not positive, the
// input is returned unchanged.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate <= 0 || dstRate <= 0 || srcRate == dstRate || len(samples) < 2 {
		return samples
	}
	dstLen := int(int64(len(samples)) * int64(dstRate) / int64(srcRate))
	if dstLen == 0 {
		return nil
	}

	out := make([]float64, dstLen)
	ratio := float64(srcRate) / float64(dstRate)

	for i := range dstLen {
		srcPos := float64(i) * ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		s0 := samples[srcIdx]
		s1 := s0
		if srcIdx+1 < len(samples) {
			s1 = samples[srcIdx+1]
		}
		out[i] = s0*(1-frac) + s1*frac
	}
	return out
}

// Normalize converts a decoded buffer with arbitrary rate and channel count
// into a mono [Clip] at targetRate. channels must be 1 or 2; other values
// are treated as interleaved frames of which only the first channel is kept.
func Normalize(samples []float64, sampleRate, channels, targetRate int) Clip {
	mono := samples
	switch {
	case channels == 2:
		mono = DownmixStereo(samples)
	case channels > 2:
		frames := len(samples) / channels
		mono = make([]float64, frames)
		for i := range frames {
			mono[i] = samples[i*channels]
		}
	}
	if targetRate > 0 && sampleRate != targetRate {
		mono = Resample(mono, sampleRate, targetRate)
		sampleRate = targetRate
	}
	return Clip{Samples: mono, SampleRate: sampleRate}
}
